package storage

import (
	"context"

	"gorm.io/gorm"

	"portfolio-server-go/internal/domain/auth/aggregate"
	"portfolio-server-go/internal/domain/auth/repository"
	"portfolio-server-go/internal/platform/errors"
)

type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates the GORM-backed admin account repository.
func NewAdminRepository(db *gorm.DB) repository.AdminRepository {
	return &adminRepository{
		db: db,
	}
}

func (r *adminRepository) Save(ctx context.Context, admin *aggregate.AdminUser) error {
	model := r.toModel(admin)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return errors.Wrap(errors.KindStorage, "admin.save", "failed to save admin user", err)
	}
	admin.ID = int(model.ID)
	return nil
}

func (r *adminRepository) FindByUsername(ctx context.Context, username string) (*aggregate.AdminUser, error) {
	var model AdminUser
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(errors.KindStorage, "admin.find_by_username", "failed to find admin user", err)
	}
	return r.fromModel(&model), nil
}

func (r *adminRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&AdminUser{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(errors.KindStorage, "admin.count", "failed to count admin users", err)
	}
	return count, nil
}

func (r *adminRepository) toModel(admin *aggregate.AdminUser) *AdminUser {
	return &AdminUser{
		ID:           uint(admin.ID),
		Username:     admin.Username,
		PasswordHash: admin.PasswordHash,
		CreatedAt:    admin.CreatedAt,
	}
}

func (r *adminRepository) fromModel(model *AdminUser) *aggregate.AdminUser {
	return &aggregate.AdminUser{
		ID:           int(model.ID),
		Username:     model.Username,
		PasswordHash: model.PasswordHash,
		CreatedAt:    model.CreatedAt,
	}
}
