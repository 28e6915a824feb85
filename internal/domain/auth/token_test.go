package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestIssuer(t *testing.T) *Issuer {
	t.Helper()
	issuer, err := NewIssuer("unit-test-secret")
	if err != nil {
		t.Fatalf("NewIssuer error: %v", err)
	}
	return issuer
}

func TestIssuerRequiresSecret(t *testing.T) {
	if _, err := NewIssuer(""); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	issuer := newTestIssuer(t)

	for _, subject := range []string{"admin", "someone-else", "a"} {
		token, err := issuer.Issue(subject)
		if err != nil {
			t.Fatalf("Issue(%q) error: %v", subject, err)
		}
		got, err := issuer.Verify(token)
		if err != nil {
			t.Fatalf("Verify error for %q: %v", subject, err)
		}
		if got != subject {
			t.Fatalf("Verify returned %q, want %q", got, subject)
		}
	}
}

func TestIssueRejectsEmptySubject(t *testing.T) {
	issuer := newTestIssuer(t)
	if _, err := issuer.Issue(""); err == nil {
		t.Fatal("expected error for empty subject")
	}
}

// A token whose lifetime has passed but whose MAC is intact must
// surface expiry, never a signature problem.
func TestVerifyExpiredToken(t *testing.T) {
	issuer := newTestIssuer(t)

	past := time.Now().Add(-2 * time.Hour)
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(past),
		ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("unit-test-secret"))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}

	_, err = issuer.Verify(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	issuer := newTestIssuer(t)

	token, err := issuer.Issue("admin")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// Swap the last signature character for a different valid base64url
	// byte so decoding succeeds but the MAC no longer matches.
	flipped := "A"
	if strings.HasSuffix(token, "A") {
		flipped = "B"
	}
	tampered := token[:len(token)-1] + flipped

	_, err = issuer.Verify(tampered)
	if !errors.Is(err, ErrTokenSignatureInvalid) {
		t.Fatalf("expected ErrTokenSignatureInvalid, got %v", err)
	}
}

func TestVerifyForeignKey(t *testing.T) {
	issuer := newTestIssuer(t)

	other, err := NewIssuer("some-other-secret")
	if err != nil {
		t.Fatalf("NewIssuer error: %v", err)
	}
	token, err := other.Issue("admin")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = issuer.Verify(token)
	if !errors.Is(err, ErrTokenSignatureInvalid) {
		t.Fatalf("expected ErrTokenSignatureInvalid, got %v", err)
	}
}

func TestVerifyMalformedTokens(t *testing.T) {
	issuer := newTestIssuer(t)

	for _, token := range []string{"", "garbage", "a.b", "one.two.three"} {
		_, err := issuer.Verify(token)
		if !errors.Is(err, ErrTokenMalformed) {
			t.Fatalf("Verify(%q): expected ErrTokenMalformed, got %v", token, err)
		}
	}
}

func TestVerifyRejectsUnsignedAlgorithm(t *testing.T) {
	issuer := newTestIssuer(t)

	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	if _, err := issuer.Verify(token); err == nil {
		t.Fatal("expected alg=none token to be rejected")
	}
}

func TestIssuerTTL(t *testing.T) {
	issuer := newTestIssuer(t).WithTTL(30 * time.Minute)
	if issuer.TTL() != 30*time.Minute {
		t.Fatalf("TTL = %v, want 30m", issuer.TTL())
	}

	// Non-positive TTLs keep the previous value.
	issuer.WithTTL(0)
	if issuer.TTL() != 30*time.Minute {
		t.Fatalf("TTL after WithTTL(0) = %v, want 30m", issuer.TTL())
	}
}
