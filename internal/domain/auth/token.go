package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	platerr "portfolio-server-go/internal/platform/errors"
)

// Issuer signs and verifies the session tokens carried in the auth
// cookie. Tokens are HS256 JWTs; the signing key lives for the process
// lifetime, so a restart with a new key invalidates every session.
type Issuer struct {
	secretKey []byte
	ttl       time.Duration
}

// NewIssuer builds a token issuer using the provided secret.
func NewIssuer(secret string) (*Issuer, error) {
	if secret == "" {
		return nil, platerr.New(platerr.KindAuth, "issuer.new", "signing secret cannot be empty")
	}
	return &Issuer{
		secretKey: []byte(secret),
		ttl:       time.Hour,
	}, nil
}

// WithTTL customises the token lifetime.
func (i *Issuer) WithTTL(ttl time.Duration) *Issuer {
	if ttl > 0 {
		i.ttl = ttl
	}
	return i
}

// TTL reports the configured token lifetime; the session cookie's
// Max-Age is aligned with it.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs a token for the given subject, valid from now for the
// configured TTL.
func (i *Issuer) Issue(subject string) (string, error) {
	if subject == "" {
		return "", platerr.New(platerr.KindAuth, "issuer.issue", "subject cannot be empty")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		ID:        uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secretKey)
	if err != nil {
		return "", platerr.Wrap(platerr.KindAuth, "issuer.issue", "failed to sign token", err)
	}
	return signed, nil
}

// Verify checks the token and returns its subject. Failures map onto
// the sentinel taxonomy: ErrTokenExpired, ErrTokenSignatureInvalid, or
// ErrTokenMalformed. The signature is checked before any claim, and
// the HMAC comparison is constant-time, so an expired token with a
// valid signature always reports expiry, never a signature problem.
func (i *Issuer) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secretKey, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrTokenSignatureInvalid
		default:
			return "", ErrTokenMalformed
		}
	}
	if !token.Valid {
		return "", ErrTokenMalformed
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrTokenMalformed
	}
	return claims.Subject, nil
}
