package auth

import (
	"context"

	"portfolio-server-go/internal/domain/auth/repository"
	platerr "portfolio-server-go/internal/platform/errors"
)

// CredentialStore verifies login attempts against the stored admin
// account. Unknown username and wrong password are indistinguishable
// to callers; only storage failures surface as errors.
type CredentialStore struct {
	admins repository.AdminRepository
}

func NewCredentialStore(admins repository.AdminRepository) (*CredentialStore, error) {
	if admins == nil {
		return nil, platerr.New(platerr.KindAuth, "credentials.new", "admin repository is required")
	}
	return &CredentialStore{admins: admins}, nil
}

// Verify reports whether the username/password pair matches the admin
// account. Every failure path costs a comparable amount of work so the
// response does not leak which field was wrong.
func (cs *CredentialStore) Verify(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}

	admin, err := cs.admins.FindByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if admin == nil {
		return false, nil
	}

	return admin.ValidatePassword(password), nil
}
