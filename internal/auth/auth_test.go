package auth

import (
	"testing"
	"time"
)

func TestLoginAndCheck(t *testing.T) {
	g := NewGate("admin", "s3cret", time.Hour)

	if _, err := g.Login("admin", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("bad password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := g.Login("root", "s3cret"); err != ErrInvalidCredentials {
		t.Fatalf("bad username: err = %v, want ErrInvalidCredentials", err)
	}

	token, err := g.Login("admin", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if !g.Check(token) {
		t.Fatal("fresh token should be live")
	}
	if g.Check("not-a-token") {
		t.Fatal("unknown token should fail")
	}

	g.Logout(token)
	if g.Check(token) {
		t.Fatal("logged-out token should fail")
	}
}

func TestSessionExpiry(t *testing.T) {
	g := NewGate("admin", "s3cret", time.Minute)
	now := time.Now()
	g.now = func() time.Time { return now }

	token, err := g.Login("admin", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !g.Check(token) {
		t.Fatal("token should be live before expiry")
	}
	now = now.Add(2 * time.Minute)
	if g.Check(token) {
		t.Fatal("token should expire")
	}
	// Expired tokens are pruned, not just rejected.
	g.mu.Lock()
	_, still := g.sessions[token]
	g.mu.Unlock()
	if still {
		t.Fatal("expired token should be pruned")
	}
}

func TestTokensAreUnique(t *testing.T) {
	g := NewGate("admin", "s3cret", time.Hour)
	a, _ := g.Login("admin", "s3cret")
	b, _ := g.Login("admin", "s3cret")
	if a == b {
		t.Fatal("tokens must be unique per login")
	}
}
