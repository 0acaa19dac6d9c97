package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kantorkita/hrms-backend-go/internal/domain/user"
)

const testSecret = "test-secret-key-for-jwt"

func TestGenerateAccessToken_CarriesClaims(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	divisionID := "division-1"
	tokenString, expiresAt, err := svc.GenerateAccessToken("user-1", user.RoleManager, &divisionID)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, time.Now().Unix())

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	userID, _ := token.Get("user_id")
	role, _ := token.Get("role")
	tokenType, _ := token.Get("type")
	div, _ := token.Get("division_id")

	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "manager", role)
	assert.Equal(t, "access", tokenType)
	assert.Equal(t, "division-1", div)
}

func TestGenerateAccessToken_NoDivision(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	tokenString, _, err := svc.GenerateAccessToken("user-1", user.RoleAdmin, nil)
	require.NoError(t, err)

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	_, hasDivision := token.Get("division_id")
	assert.False(t, hasDivision)
}

func TestDecodeRefreshToken_RoundTrip(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	tokenString, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	userID, err := svc.DecodeRefreshToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestDecodeRefreshToken_RejectsAccessToken(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	tokenString, _, err := svc.GenerateAccessToken("user-1", user.RoleEmployee, nil)
	require.NoError(t, err)

	_, err = svc.DecodeRefreshToken(tokenString)
	assert.Error(t, err)
}

func TestDecodeRefreshToken_RejectsGarbage(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	_, err := svc.DecodeRefreshToken("not-a-token")
	assert.Error(t, err)
}

func TestGenerateAccessToken_InvalidExpiration(t *testing.T) {
	svc := NewJWTService(testSecret, "banana", "24h")

	_, _, err := svc.GenerateAccessToken("user-1", user.RoleEmployee, nil)
	assert.Error(t, err)
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	expiresAt := time.Now().Add(24 * time.Hour).Unix()
	cookie := svc.RefreshTokenCookie("token-value", expiresAt)

	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, "token-value", cookie.Value)
	assert.True(t, cookie.HttpOnly)
}
