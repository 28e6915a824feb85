package storage

import (
	"context"

	"portfolio-server-go/internal/domain/auth/aggregate"
	"portfolio-server-go/internal/platform/errors"
)

// SeedAdmin creates the administrator account on first run. It does
// nothing when an account already exists. Returns true when a new
// account was written.
func SeedAdmin(ctx context.Context, username, password string) (bool, error) {
	repo := NewAdminRepository(GetDB())

	count, err := repo.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	// Refuse to seed a blank password; the operator must set
	// PORTFOLIO_ADMIN_PASSWORD before the first start.
	if password == "" {
		return false, errors.New(errors.KindStorage, "admin.seed", "admin password must be configured before first run")
	}

	admin, err := aggregate.NewAdminUser(username, password)
	if err != nil {
		return false, err
	}
	if err := repo.Save(ctx, admin); err != nil {
		return false, err
	}
	return true, nil
}
