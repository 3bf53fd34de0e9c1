package auth

import (
	"testing"
	"time"

	"github.com/opentocoder/docker-panel/internal/clock"
	"github.com/opentocoder/docker-panel/internal/users"
)

var testUser = users.User{
	ID:       7,
	Username: "alice",
	Role:     users.RoleAdmin,
}

func newTestTokenService() (*TokenService, *clock.MockClock) {
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return NewTokenService([]byte("test-secret"), clk), clk
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc, clk := newTestTokenService()

	tok, err := svc.Sign(testUser)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}

	sess, ok := svc.Verify(tok)
	if !ok {
		t.Fatal("Verify rejected a freshly signed token")
	}
	if sess.UserID != testUser.ID || sess.Username != testUser.Username || sess.Role != testUser.Role {
		t.Errorf("claims mismatch: got %+v", sess)
	}
	if want := clk.Now().Add(TokenValidity); !sess.ExpiresAt.Equal(want) {
		t.Errorf("ExpiresAt = %v, want %v", sess.ExpiresAt, want)
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc, clk := newTestTokenService()

	tok, err := svc.Sign(testUser)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}

	clk.Advance(TokenValidity + time.Minute)

	if _, ok := svc.Verify(tok); ok {
		t.Error("expired token must not verify")
	}
}

func TestTokenService_Tampered(t *testing.T) {
	svc, _ := newTestTokenService()

	tok, err := svc.Sign(testUser)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}

	// Flip one character somewhere in the payload.
	mid := len(tok) / 2
	altered := tok[:mid] + flip(tok[mid]) + tok[mid+1:]

	if _, ok := svc.Verify(altered); ok {
		t.Error("tampered token must not verify")
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	svc, clk := newTestTokenService()

	tok, err := svc.Sign(testUser)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}

	other := NewTokenService([]byte("different-secret"), clk)
	if _, ok := other.Verify(tok); ok {
		t.Error("token signed with another secret must not verify")
	}
}

func TestTokenService_Malformed(t *testing.T) {
	svc, _ := newTestTokenService()

	for _, tok := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJub25lIn0.."} {
		if _, ok := svc.Verify(tok); ok {
			t.Errorf("malformed token %q must not verify", tok)
		}
	}
}

func flip(b byte) string {
	if b == 'A' {
		return "B"
	}
	return "A"
}
