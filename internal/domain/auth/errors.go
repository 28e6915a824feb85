package auth

import "errors"

// Every authentication failure maps onto exactly one of these. They
// are logged with their distinct cause; responses never echo which one
// occurred beyond authenticated/not.
var (
	// ErrInvalidCredentials covers login failures. Unknown username
	// and wrong password intentionally collapse into this one value.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUnauthenticated means no token was presented.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrTokenExpired means the signature checked out but the token's
	// lifetime has passed.
	ErrTokenExpired = errors.New("session expired")

	// ErrTokenSignatureInvalid means the MAC did not match; the token
	// was tampered with or signed under a different key.
	ErrTokenSignatureInvalid = errors.New("token signature invalid")

	// ErrTokenMalformed means the token could not be parsed at all.
	ErrTokenMalformed = errors.New("token malformed")

	// ErrUnauthorized means the token verified but its subject is not
	// the administrator.
	ErrUnauthorized = errors.New("subject not authorized")
)

// Logger is the minimal logging surface the auth domain needs. The
// platform logger satisfies it.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}
