package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthenticator(accessExp, refreshExp time.Duration) *JWTAuthenticator {
	return NewJWTAuthenticator("access-secret", "refresh-secret", "revtrack", "RevTrack", accessExp, refreshExp)
}

func TestGenerateAndValidatePair(t *testing.T) {
	a := newTestAuthenticator(time.Hour, 24*time.Hour)

	access, refresh, err := a.GenerateTokens(42, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	token, err := a.ValidateAccessToken(access)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.EqualValues(t, 42, claims["sub"])
}

func TestAccessTokenCarriesRole(t *testing.T) {
	a := newTestAuthenticator(time.Hour, 24*time.Hour)

	access, _, err := a.GenerateTokens(7, "user")
	require.NoError(t, err)

	token, err := a.ValidateAccessToken(access)
	require.NoError(t, err)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "user", claims["role"])
}

func TestTokensUseSeparateSecrets(t *testing.T) {
	a := newTestAuthenticator(time.Hour, 24*time.Hour)

	access, refresh, err := a.GenerateTokens(1, "user")
	require.NoError(t, err)

	_, err = a.ValidateAccessToken(refresh)
	assert.Error(t, err, "refresh token must not pass as access token")

	_, err = a.ValidateRefreshToken(access)
	assert.Error(t, err, "access token must not pass as refresh token")
}

func TestExpiredTokenRejected(t *testing.T) {
	a := newTestAuthenticator(-time.Minute, 24*time.Hour)

	access, _, err := a.GenerateTokens(1, "user")
	require.NoError(t, err)

	_, err = a.ValidateAccessToken(access)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	a := newTestAuthenticator(time.Hour, 24*time.Hour)

	_, err := a.ValidateAccessToken("not.a.token")
	assert.Error(t, err)
}
