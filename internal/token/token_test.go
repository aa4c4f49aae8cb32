package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func TestExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	raw := sign(t, jwt.MapClaims{"sub": "drjohnson", "exp": exp.Unix()})

	got, ok := Expiry(raw)

	require.True(t, ok)
	assert.True(t, got.Equal(exp))
}

func TestExpiry_NoExpClaim(t *testing.T) {
	raw := sign(t, jwt.MapClaims{"sub": "drjohnson"})

	_, ok := Expiry(raw)

	assert.False(t, ok)
}

func TestExpiry_OpaqueToken(t *testing.T) {
	_, ok := Expiry("not-a-jwt-at-all")

	assert.False(t, ok)
}

func TestExpired(t *testing.T) {
	now := time.Now()

	live := sign(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()})
	assert.False(t, Expired(live, now))

	stale := sign(t, jwt.MapClaims{"exp": now.Add(-time.Hour).Unix()})
	assert.True(t, Expired(stale, now))

	// Непрозрачные токены не истекают на клиенте
	assert.False(t, Expired("opaque-session-token", now))
	assert.False(t, Expired("", now))
}
