package repository

import (
	"context"

	"portfolio-server-go/internal/domain/auth/aggregate"
)

// AdminRepository persists the administrator account. FindByUsername
// returns (nil, nil) when no such user exists; errors are reserved for
// storage failures.
type AdminRepository interface {
	// Save inserts the admin account and fills in its ID.
	Save(ctx context.Context, admin *aggregate.AdminUser) error

	// FindByUsername looks the admin up by login name.
	FindByUsername(ctx context.Context, username string) (*aggregate.AdminUser, error)

	// Count reports how many admin rows exist (0 or 1 in practice;
	// used by startup provisioning).
	Count(ctx context.Context) (int64, error)
}
