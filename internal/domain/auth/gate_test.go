package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}

func newTestGate(t *testing.T) (*Gate, *Issuer) {
	t.Helper()
	issuer := newTestIssuer(t)
	gate, err := NewGate(issuer, newFakeRepo(t, "admin", "correct-horse"), nopLogger{})
	if err != nil {
		t.Fatalf("NewGate error: %v", err)
	}
	return gate, issuer
}

func TestGateAuthorizeNoToken(t *testing.T) {
	gate, _ := newTestGate(t)

	_, err := gate.Authorize(context.Background(), "")
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestGateAuthorizeValidToken(t *testing.T) {
	gate, issuer := newTestGate(t)

	token, err := issuer.Issue("admin")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	admin, err := gate.Authorize(context.Background(), token)
	if err != nil {
		t.Fatalf("Authorize error: %v", err)
	}
	if admin == nil || admin.Username != "admin" {
		t.Fatalf("unexpected admin: %+v", admin)
	}
}

func TestGateAuthorizeExpiredToken(t *testing.T) {
	gate, _ := newTestGate(t)

	past := time.Now().Add(-time.Hour)
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(past),
		ExpiresAt: jwt.NewNumericDate(past.Add(time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("unit-test-secret"))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}

	_, err = gate.Authorize(context.Background(), token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestGateAuthorizeTamperedToken(t *testing.T) {
	gate, issuer := newTestGate(t)

	token, err := issuer.Issue("admin")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	flipped := "A"
	if token[len(token)-1] == 'A' {
		flipped = "B"
	}

	_, err = gate.Authorize(context.Background(), token[:len(token)-1]+flipped)
	if !errors.Is(err, ErrTokenSignatureInvalid) {
		t.Fatalf("expected ErrTokenSignatureInvalid, got %v", err)
	}
}

// A verified token naming anyone but the stored administrator is a
// hard denial, not a lookup miss.
func TestGateAuthorizeUnknownSubject(t *testing.T) {
	gate, issuer := newTestGate(t)

	token, err := issuer.Issue("intruder")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = gate.Authorize(context.Background(), token)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestGateAuthorizeStorageFailure(t *testing.T) {
	issuer := newTestIssuer(t)
	boom := errors.New("store unreachable")
	gate, err := NewGate(issuer, &fakeAdminRepo{failWith: boom}, nopLogger{})
	if err != nil {
		t.Fatalf("NewGate error: %v", err)
	}

	token, err := issuer.Issue("admin")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = gate.Authorize(context.Background(), token)
	if !errors.Is(err, boom) {
		t.Fatalf("expected storage error to propagate, got %v", err)
	}
}

func TestRejectionReason(t *testing.T) {
	cases := map[error]string{
		ErrTokenExpired:          "expired",
		ErrTokenSignatureInvalid: "bad_signature",
		ErrTokenMalformed:        "malformed",
		ErrUnauthorized:          "unknown_subject",
		ErrUnauthenticated:       "no_token",
		errors.New("boom"):       "error",
	}
	for err, want := range cases {
		if got := RejectionReason(err); got != want {
			t.Fatalf("RejectionReason(%v) = %q, want %q", err, got, want)
		}
	}
}
