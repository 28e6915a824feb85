package auth

import (
	"context"

	"portfolio-server-go/internal/domain/auth/aggregate"
	"portfolio-server-go/internal/domain/auth/repository"
	platerr "portfolio-server-go/internal/platform/errors"
)

// Gate is the single decision point for protected requests: it takes
// whatever token the transport extracted and answers with the admin
// identity or a sentinel error. Handlers behind the gate never
// re-check permissions.
type Gate struct {
	issuer *Issuer
	admins repository.AdminRepository
	logger Logger
}

func NewGate(issuer *Issuer, admins repository.AdminRepository, logger Logger) (*Gate, error) {
	if issuer == nil {
		return nil, platerr.New(platerr.KindAuth, "gate.new", "issuer is required")
	}
	if admins == nil {
		return nil, platerr.New(platerr.KindAuth, "gate.new", "admin repository is required")
	}
	if logger == nil {
		return nil, platerr.New(platerr.KindAuth, "gate.new", "logger is required")
	}
	return &Gate{issuer: issuer, admins: admins, logger: logger}, nil
}

// Authorize walks the request through its terminal states: no token,
// token rejected, subject unknown, or authorized. Each rejection class
// is logged distinctly; the expired case is routine, the others are
// worth watching.
func (g *Gate) Authorize(ctx context.Context, token string) (*aggregate.AdminUser, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	subject, err := g.issuer.Verify(token)
	if err != nil {
		switch err {
		case ErrTokenExpired:
			g.logger.Debug("[AUTH] token expired")
		case ErrTokenSignatureInvalid:
			g.logger.Warn("[AUTH] token with invalid signature rejected")
		default:
			g.logger.Warn("[AUTH] malformed token rejected")
		}
		return nil, err
	}

	admin, err := g.admins.FindByUsername(ctx, subject)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		g.logger.Warn("[AUTH] valid token for unknown subject %q rejected", subject)
		return nil, ErrUnauthorized
	}

	return admin, nil
}

// RejectionReason folds a gate error into the audit-event vocabulary.
func RejectionReason(err error) string {
	switch err {
	case ErrTokenExpired:
		return "expired"
	case ErrTokenSignatureInvalid:
		return "bad_signature"
	case ErrTokenMalformed:
		return "malformed"
	case ErrUnauthorized:
		return "unknown_subject"
	case ErrUnauthenticated:
		return "no_token"
	default:
		return "error"
	}
}
