// Package auth implements the single-credential gate: one static
// username/password pair and opaque session tokens with an expiry. There is
// no per-user state behind the gate.
package auth

import (
	"crypto/subtle"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidCredentials is returned by Login on a bad username or password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Gate verifies credentials and tracks issued session tokens. Safe for
// concurrent use.
type Gate struct {
	username string
	password string
	ttl      time.Duration

	mu       sync.Mutex
	sessions map[string]time.Time // token -> expiry
	now      func() time.Time
}

// NewGate builds a gate for the given credential pair. Tokens expire after
// ttl.
func NewGate(username, password string, ttl time.Duration) *Gate {
	return &Gate{
		username: username,
		password: password,
		ttl:      ttl,
		sessions: make(map[string]time.Time),
		now:      time.Now,
	}
}

// Login checks the credential pair in constant time and issues a session
// token on success.
func (g *Gate) Login(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(g.password)) == 1
	if !userOK || !passOK {
		return "", ErrInvalidCredentials
	}
	token := uuid.NewString()
	g.mu.Lock()
	g.sessions[token] = g.now().Add(g.ttl)
	g.mu.Unlock()
	return token, nil
}

// Check reports whether token names a live session, pruning it when expired.
func (g *Gate) Check(token string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	expiry, ok := g.sessions[token]
	if !ok {
		return false
	}
	if g.now().After(expiry) {
		delete(g.sessions, token)
		return false
	}
	return true
}

// Logout drops the session; unknown tokens are a no-op.
func (g *Gate) Logout(token string) {
	g.mu.Lock()
	delete(g.sessions, token)
	g.mu.Unlock()
}
