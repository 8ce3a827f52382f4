package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	m := NewJWTManager("test-secret", "docforge")

	token, err := m.GenerateToken("tenant-1", "user_2abc", "access", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "tenant-1", claims.TenantID)
	assert.Equal(t, "user_2abc", claims.Subject)
	assert.Equal(t, "access", claims.Type)
	assert.Equal(t, "docforge", claims.Issuer)
}

func TestParseTokenWrongSecret(t *testing.T) {
	m := NewJWTManager("test-secret", "docforge")
	token, err := m.GenerateToken("tenant-1", "user_2abc", "access", time.Hour)
	require.NoError(t, err)

	other := NewJWTManager("other-secret", "docforge")
	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenExpired(t *testing.T) {
	m := NewJWTManager("test-secret", "docforge")
	token, err := m.GenerateToken("tenant-1", "user_2abc", "access", -time.Minute)
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestParseTokenGarbage(t *testing.T) {
	m := NewJWTManager("test-secret", "docforge")

	_, err := m.ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
