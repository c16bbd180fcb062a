package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestExpired(t *testing.T) {
	assert.False(t, Expired(signedToken(t, time.Now().Add(time.Hour))))
	assert.True(t, Expired(signedToken(t, time.Now().Add(-time.Hour))))
	assert.True(t, Expired("not-a-jwt"))
}

func TestTokenStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	tok := signedToken(t, time.Now().Add(time.Hour))

	s := NewTokenStore(path)
	require.NoError(t, s.Load()) // missing file is fine
	assert.Empty(t, s.Token())

	require.NoError(t, s.Save(tok))
	assert.Equal(t, tok, s.Token())

	// a fresh store picks the token up from disk
	s2 := NewTokenStore(path)
	require.NoError(t, s2.Load())
	assert.Equal(t, tok, s2.Token())

	s2.Clear()
	assert.Empty(t, s2.Token())
}

func TestTokenStore_ExpiredTokenIsNotReturned(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	s := NewTokenStore(path)
	require.NoError(t, s.Save(signedToken(t, time.Now().Add(-time.Minute))))
	assert.Empty(t, s.Token())
}
