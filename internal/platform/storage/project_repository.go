package storage

import (
	"context"
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"portfolio-server-go/internal/domain/content/aggregate"
	"portfolio-server-go/internal/domain/content/repository"
	"portfolio-server-go/internal/platform/errors"
)

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates the GORM-backed project repository.
func NewProjectRepository(db *gorm.DB) repository.ProjectRepository {
	return &projectRepository{
		db: db,
	}
}

func (r *projectRepository) Save(ctx context.Context, project *aggregate.Project) error {
	model := r.toModel(project)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return errors.Wrap(errors.KindStorage, "project.save", "failed to save project", err)
	}
	project.ID = int(model.ID)
	return nil
}

func (r *projectRepository) Update(ctx context.Context, project *aggregate.Project) error {
	model := r.toModel(project)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return errors.Wrap(errors.KindStorage, "project.update", "failed to update project", err)
	}
	return nil
}

func (r *projectRepository) FindByID(ctx context.Context, id int) (*aggregate.Project, error) {
	var model Project
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(errors.KindStorage, "project.find_by_id", "failed to find project", err)
	}
	return r.fromModel(&model), nil
}

func (r *projectRepository) List(ctx context.Context, featuredOnly bool, limit int) ([]*aggregate.Project, error) {
	query := r.db.WithContext(ctx).Order("display_order ASC, created_at DESC")
	if featuredOnly {
		query = query.Where("featured = ?", true)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []Project
	if err := query.Find(&models).Error; err != nil {
		return nil, errors.Wrap(errors.KindStorage, "project.list", "failed to list projects", err)
	}

	projects := make([]*aggregate.Project, len(models))
	for i, model := range models {
		projects[i] = r.fromModel(&model)
	}
	return projects, nil
}

func (r *projectRepository) Delete(ctx context.Context, id int) error {
	if err := r.db.WithContext(ctx).Delete(&Project{}, id).Error; err != nil {
		return errors.Wrap(errors.KindStorage, "project.delete", "failed to delete project", err)
	}
	return nil
}

func (r *projectRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Project{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(errors.KindStorage, "project.count", "failed to count projects", err)
	}
	return count, nil
}

func (r *projectRepository) toModel(project *aggregate.Project) *Project {
	model := &Project{
		ID:           uint(project.ID),
		Title:        project.Title,
		Description:  project.Description,
		TechStack:    project.TechStack,
		Featured:     project.Featured,
		DisplayOrder: project.DisplayOrder,
		CreatedAt:    project.CreatedAt,
	}

	if project.Links != (aggregate.ProjectLinks{}) {
		if data, err := json.Marshal(project.Links); err == nil {
			model.Links = datatypes.JSON(data)
		}
	}

	return model
}

func (r *projectRepository) fromModel(model *Project) *aggregate.Project {
	project := &aggregate.Project{
		ID:           int(model.ID),
		Title:        model.Title,
		Description:  model.Description,
		TechStack:    model.TechStack,
		Featured:     model.Featured,
		DisplayOrder: model.DisplayOrder,
		CreatedAt:    model.CreatedAt,
	}

	if len(model.Links) > 0 {
		_ = json.Unmarshal(model.Links, &project.Links)
	}

	return project
}
