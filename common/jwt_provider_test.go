package common

import (
	"testing"
	"time"

	"go-admin-panel/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jwtTestConfig struct {
	expiresIn time.Duration
	secret    string
	issuer    string
}

func (c jwtTestConfig) AccessTokenExpiresIn() time.Duration { return c.expiresIn }
func (c jwtTestConfig) AccessTokenSecret() string           { return c.secret }
func (c jwtTestConfig) TokenIssuer() string                 { return c.issuer }

func TestJWTProviderRoundTrip(t *testing.T) {
	provider := NewJWTProvider(jwtTestConfig{
		expiresIn: time.Hour,
		secret:    "test-secret",
		issuer:    "go-admin-panel",
	})

	token, err := provider.Generate(domain.TokenTypeAccess, "u-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := provider.Verify(domain.TokenTypeAccess, token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Sub)
	assert.Equal(t, "go-admin-panel", claims.Issuer)
}

func TestJWTProviderRejectsExpiredToken(t *testing.T) {
	provider := NewJWTProvider(jwtTestConfig{
		expiresIn: -time.Minute,
		secret:    "test-secret",
		issuer:    "go-admin-panel",
	})

	token, err := provider.Generate(domain.TokenTypeAccess, "u-1")
	require.NoError(t, err)

	_, err = provider.Verify(domain.TokenTypeAccess, token)
	assert.Error(t, err)
}

func TestJWTProviderRejectsWrongSecret(t *testing.T) {
	provider := NewJWTProvider(jwtTestConfig{expiresIn: time.Hour, secret: "secret-a", issuer: "x"})
	other := NewJWTProvider(jwtTestConfig{expiresIn: time.Hour, secret: "secret-b", issuer: "x"})

	token, err := provider.Generate(domain.TokenTypeAccess, "u-1")
	require.NoError(t, err)

	_, err = other.Verify(domain.TokenTypeAccess, token)
	assert.Error(t, err)
}

func TestJWTProviderRejectsGarbage(t *testing.T) {
	provider := NewJWTProvider(jwtTestConfig{expiresIn: time.Hour, secret: "s", issuer: "x"})

	_, err := provider.Verify(domain.TokenTypeAccess, "not-a-token")
	assert.Error(t, err)
}
