package services

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"churchconnect/internal/middleware"
	"churchconnect/internal/models"
)

func TestHashAndCheckPassword(t *testing.T) {
	auth := NewAuthService([]byte("test-secret"))

	hash, err := auth.HashPassword("hunter22")
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", hash)

	require.True(t, auth.CheckPassword(hash, "hunter22"))
	require.False(t, auth.CheckPassword(hash, "hunter23"))
}

func TestGenerateAccessToken(t *testing.T) {
	secret := []byte("test-secret")
	auth := NewAuthService(secret)

	user := &models.User{ID: 42, Email: "a@example.com", RoleID: 20}
	tokenStr, err := auth.GenerateAccessToken(user)
	require.NoError(t, err)

	claims := &middleware.Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	require.Equal(t, 42, claims.UserID)
	require.Equal(t, 20, claims.RoleID)
	require.Equal(t, "a@example.com", claims.Subject)
}

func TestTokenSignedWithWrongSecretRejected(t *testing.T) {
	auth := NewAuthService([]byte("other-secret"))
	tokenStr, err := auth.GenerateAccessToken(&models.User{ID: 1})
	require.NoError(t, err)

	claims := &middleware.Claims{}
	_, err = jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.Error(t, err)
}
