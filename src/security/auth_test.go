package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/wilqq-the/btc-tracker/src/config"
)

func setupConfig(t *testing.T) {
	t.Helper()
	if config.Cfg == nil {
		config.Cfg = &config.AppConfig{AccessTokenExpiry: time.Hour}
	}
}

func TestTokenRoundTrip(t *testing.T) {
	setupConfig(t)
	a := NewAuthService("test-secret-key-of-sufficient-length")

	token, err := a.GenerateToken("42")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sub, err := a.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "42", sub)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	setupConfig(t)
	issuer := NewAuthService("issuer-secret-key-of-sufficient-len")
	verifier := NewAuthService("different-secret-key-of-sufficient")

	token, err := issuer.GenerateToken("42")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	a := NewAuthService("test-secret-key-of-sufficient-length")
	_, err := a.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	a := NewAuthService("irrelevant")

	hash, err := a.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.NoError(t, a.CompareHashAndPassword(hash, "correct horse battery staple"))
	assert.Error(t, a.CompareHashAndPassword(hash, "wrong password"))
}

func TestPasswordHashUsesDeclaredCost(t *testing.T) {
	a := NewAuthService("irrelevant")

	hash, err := a.HashPassword("correct horse battery staple")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcryptCost, cost)
}
