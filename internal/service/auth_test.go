package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthServiceRoundTrip(t *testing.T) {
	auth := NewAuthService("secret", time.Hour)

	token, err := auth.GenerateJWT("user-1")
	require.NoError(t, err)

	userID, err := auth.VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestAuthServiceRejectsBadTokens(t *testing.T) {
	auth := NewAuthService("secret", time.Hour)

	other, err := NewAuthService("other", time.Hour).GenerateJWT("user-1")
	require.NoError(t, err)
	_, err = auth.VerifyJWT(other)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := NewAuthService("secret", -time.Minute).GenerateJWT("user-1")
	require.NoError(t, err)
	_, err = auth.VerifyJWT(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = auth.VerifyJWT(noUser)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = auth.VerifyJWT("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
