package jwtutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	util := NewJWTUtil(&JWTConfig{
		SigningKey:      "test-signing-key",
		ExpirationHours: 1,
	})

	token, err := util.GenerateToken("seller@example.com", 42, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := util.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "seller@example.com", claims.Email)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateTokenWrongKey(t *testing.T) {
	issuer := NewJWTUtil(&JWTConfig{SigningKey: "key-a", ExpirationHours: 1})
	verifier := NewJWTUtil(&JWTConfig{SigningKey: "key-b", ExpirationHours: 1})

	token, err := issuer.GenerateToken("seller@example.com", 42, "user")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	util := NewJWTUtil(&JWTConfig{
		SigningKey:      "test-signing-key",
		ExpirationHours: -1,
	})

	token, err := util.GenerateToken("seller@example.com", 42, "user")
	require.NoError(t, err)

	_, err = util.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateGarbageToken(t *testing.T) {
	util := NewJWTUtil(&JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})

	_, err := util.ValidateToken("not-a-token")
	assert.Error(t, err)
}
