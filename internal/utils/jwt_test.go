package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func parseToken(t *testing.T, raw, secret string) (jwt.MapClaims, error) {
	t.Helper()
	tok, err := jwt.Parse(raw, func(tk *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims, nil
}

func TestNewAccessTokenClaims(t *testing.T) {
	at, err := NewAccessToken(testSecret, 42, "a@x.com", "user", 60)
	require.NoError(t, err)
	require.NotEmpty(t, at.Token)

	claims, err := parseToken(t, at.Token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, "a@x.com", claims["email"])
	assert.Equal(t, "user", claims["role"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), int64(exp), 5,
		"exp should be about one hour out")
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), at.Exp, 5*time.Second)
}

func TestNewAccessTokenRoleEmbedded(t *testing.T) {
	at, err := NewAccessToken(testSecret, 1, "admin@x.com", "admin", 60)
	require.NoError(t, err)
	claims, err := parseToken(t, at.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims["role"])
}

func TestExpiredTokenRejected(t *testing.T) {
	// A negative TTL produces a token that expired a minute ago.
	at, err := NewAccessToken(testSecret, 7, "a@x.com", "user", -1)
	require.NoError(t, err)

	_, err = parseToken(t, at.Token, testSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestWrongSecretRejected(t *testing.T) {
	at, err := NewAccessToken(testSecret, 7, "a@x.com", "user", 60)
	require.NoError(t, err)

	_, err = parseToken(t, at.Token, "other-secret")
	assert.Error(t, err)
}
