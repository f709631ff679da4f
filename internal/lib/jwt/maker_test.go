package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	maker := NewJWTMaker("access_secret", "refresh_secret", 15*time.Minute)

	token, err := maker.GenerateAccessToken(42, "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseAccessToken(token)
	require.NoError(t, err)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	maker := NewJWTMaker("access_secret", "refresh_secret", 15*time.Minute)

	token, err := maker.GenerateRefreshToken(7, "user@example.com")
	require.NoError(t, err)

	claims, err := maker.ParseRefreshToken(token)
	require.NoError(t, err)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, 7, userID)
}

func TestTokensSignedWithDifferentSecrets(t *testing.T) {
	maker := NewJWTMaker("access_secret", "refresh_secret", 15*time.Minute)

	accessToken, err := maker.GenerateAccessToken(1, "user@example.com")
	require.NoError(t, err)
	refreshToken, err := maker.GenerateRefreshToken(1, "user@example.com")
	require.NoError(t, err)

	_, err = maker.ParseRefreshToken(accessToken)
	assert.Error(t, err)
	_, err = maker.ParseAccessToken(refreshToken)
	assert.Error(t, err)
}

func TestParseExpiredAccessToken(t *testing.T) {
	maker := NewJWTMaker("access_secret", "refresh_secret", -time.Minute)

	token, err := maker.GenerateAccessToken(1, "user@example.com")
	require.NoError(t, err)

	_, err = maker.ParseAccessToken(token)
	assert.Error(t, err)
}

func TestParseForeignToken(t *testing.T) {
	maker := NewJWTMaker("access_secret", "refresh_secret", 15*time.Minute)
	foreign := NewJWTMaker("another_secret", "another_refresh", 15*time.Minute)

	token, err := foreign.GenerateAccessToken(1, "user@example.com")
	require.NoError(t, err)

	_, err = maker.ParseAccessToken(token)
	assert.Error(t, err)
}
