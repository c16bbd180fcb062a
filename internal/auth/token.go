package auth

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenStore keeps the bearer token for the current user, persisted to a
// file so sessions survive restarts. The client never verifies the signature
// (it does not hold the server secret); it only inspects the claims to know
// when a token is dead and login is required again.
type TokenStore struct {
	path string

	mu    sync.Mutex
	token string
}

func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

// Load reads the persisted token, if any. A missing file is not an error.
func (s *TokenStore) Load() error {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.token = string(b)
	s.mu.Unlock()
	return nil
}

func (s *TokenStore) Save(token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Clear drops the token in memory and on disk, forcing a fresh login.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	_ = os.Remove(s.path)
}

// Token returns the current token, or "" when expired or absent.
func (s *TokenStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" || Expired(s.token) {
		return ""
	}
	return s.token
}

// Expired reports whether the token's exp claim has passed. Malformed tokens
// count as expired.
func Expired(token string) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return time.Now().After(claims.ExpiresAt.Time)
}
