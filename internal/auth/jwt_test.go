package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Minute)

	token, err := manager.GenerateAccessToken("user-1", "maria@escola.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "maria@escola.com", claims.Email)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Minute)
	other := NewJWTManager("other-secret", time.Minute)

	token, err := manager.GenerateAccessToken("user-1", "maria@escola.com")
	require.NoError(t, err)

	_, err = other.ParseAndValidate(token)
	assert.Error(t, err)
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)

	token, err := manager.GenerateAccessToken("user-1", "maria@escola.com")
	require.NoError(t, err)

	_, err = manager.ParseAndValidate(token)
	assert.Error(t, err)
}

func TestJWTRejectsGarbage(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Minute)

	_, err := manager.ParseAndValidate("not-a-token")
	assert.Error(t, err)
}

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptPasswordHasherWithCost(4)

	hash, err := hasher.Hash("super-secret")
	require.NoError(t, err)
	require.NotEqual(t, "super-secret", hash)

	assert.NoError(t, hasher.Compare(hash, "super-secret"))
	assert.Error(t, hasher.Compare(hash, "wrong-secret"))
}
