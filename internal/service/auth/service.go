package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/kantorkita/hrms-backend-go/internal/domain/auth"
	"github.com/kantorkita/hrms-backend-go/internal/domain/user"
	"github.com/kantorkita/hrms-backend-go/internal/pkg/jwt"
	"github.com/kantorkita/hrms-backend-go/internal/pkg/oauth"
)

type Service interface {
	Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, user.User, error)
	LoginWithEmployeeCode(ctx context.Context, req auth.LoginWithEmployeeCodeRequest) (auth.TokenResponse, user.User, error)
	Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error

	GoogleRedirectURL(userAgent string) string
	LoginWithGoogle(ctx context.Context, code string) (auth.TokenResponse, user.User, error)

	// Register creates a new account; callers must enforce admin access.
	Register(ctx context.Context, req user.RegisterRequest) (user.User, error)
}

type serviceImpl struct {
	userRepo  user.Repository
	tokenRepo auth.RefreshTokenRepository
	jwt       jwt.Service
	google    oauth.GoogleService
}

func NewService(
	userRepo user.Repository,
	tokenRepo auth.RefreshTokenRepository,
	jwtService jwt.Service,
	google oauth.GoogleService,
) Service {
	return &serviceImpl{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		jwt:       jwtService,
		google:    google,
	}
}

func (s *serviceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, user.User, error) {
	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, user.User{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, user.User{}, err
	}
	return s.issueForPassword(ctx, u, req.Password)
}

func (s *serviceImpl) LoginWithEmployeeCode(ctx context.Context, req auth.LoginWithEmployeeCodeRequest) (auth.TokenResponse, user.User, error) {
	u, err := s.userRepo.GetByEmployeeCode(ctx, req.EmployeeCode)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, user.User{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, user.User{}, err
	}
	return s.issueForPassword(ctx, u, req.Password)
}

func (s *serviceImpl) issueForPassword(ctx context.Context, u user.User, password string) (auth.TokenResponse, user.User, error) {
	if !u.IsActive {
		return auth.TokenResponse{}, user.User{}, user.ErrUserDeactivated
	}
	if u.PasswordHash == nil {
		return auth.TokenResponse{}, user.User{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(password)); err != nil {
		return auth.TokenResponse{}, user.User{}, auth.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, u)
	if err != nil {
		return auth.TokenResponse{}, user.User{}, err
	}
	return tokens, u, nil
}

func (s *serviceImpl) issueTokens(ctx context.Context, u user.User) (auth.TokenResponse, error) {
	accessToken, accessExp, err := s.jwt.GenerateAccessToken(u.ID, u.Role, u.DivisionID)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	refreshToken, refreshExp, err := s.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	if err := s.tokenRepo.Store(ctx, u.ID, refreshToken, refreshExp); err != nil {
		return auth.TokenResponse{}, err
	}

	return auth.TokenResponse{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		ExpiresAt:    accessExp,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh rotates the refresh token: the presented token is revoked and a
// fresh pair is issued.
func (s *serviceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	userID, err := s.jwt.DecodeRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	stored, err := s.tokenRepo.Get(ctx, refreshToken)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	if stored.Revoked {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}
	if stored.ExpiresAt < time.Now().Unix() {
		return auth.TokenResponse{}, auth.ErrTokenExpired
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	if !u.IsActive {
		return auth.TokenResponse{}, user.ErrUserDeactivated
	}

	if err := s.tokenRepo.Revoke(ctx, refreshToken); err != nil {
		return auth.TokenResponse{}, err
	}
	return s.issueTokens(ctx, u)
}

func (s *serviceImpl) Logout(ctx context.Context, refreshToken string) error {
	userID, err := s.jwt.DecodeRefreshToken(refreshToken)
	if err != nil {
		return auth.ErrInvalidToken
	}
	return s.tokenRepo.RevokeAllForUser(ctx, userID)
}

func (s *serviceImpl) GoogleRedirectURL(userAgent string) string {
	state := s.google.GenerateState(userAgent)
	return s.google.RedirectURL(state)
}

// LoginWithGoogle signs in an existing account by its verified Google email.
// Accounts are provisioned by HR, never auto-created from OAuth.
func (s *serviceImpl) LoginWithGoogle(ctx context.Context, code string) (auth.TokenResponse, user.User, error) {
	token, err := s.google.VerifyToken(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, user.User{}, auth.ErrInvalidToken
	}
	info, err := s.google.VerifyUser(ctx, token)
	if err != nil {
		return auth.TokenResponse{}, user.User{}, auth.ErrInvalidToken
	}

	u, err := s.userRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, user.User{}, auth.ErrOAuthUserNotFound
		}
		return auth.TokenResponse{}, user.User{}, err
	}
	if !u.IsActive {
		return auth.TokenResponse{}, user.User{}, user.ErrUserDeactivated
	}

	tokens, err := s.issueTokens(ctx, u)
	if err != nil {
		return auth.TokenResponse{}, user.User{}, err
	}
	return tokens, u, nil
}

func (s *serviceImpl) Register(ctx context.Context, req user.RegisterRequest) (user.User, error) {
	role := user.Role(req.Role)
	if !role.Valid() {
		return user.User{}, user.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, err
	}
	passwordHash := string(hash)

	u := user.User{
		EmployeeCode: req.EmployeeCode,
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: &passwordHash,
		Role:         role,
		DivisionID:   req.DivisionID,
	}
	if req.HireDate != nil {
		hireDate, err := time.Parse("2006-01-02", *req.HireDate)
		if err != nil {
			return user.User{}, err
		}
		u.HireDate = &hireDate
	}

	return s.userRepo.Create(ctx, u)
}
