package auth

import "context"

// RefreshTokenRepository persists issued refresh tokens so logout can
// revoke them server-side.
type RefreshTokenRepository interface {
	Store(ctx context.Context, userID, token string, expiresAt int64) error
	Get(ctx context.Context, token string) (RefreshToken, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}
