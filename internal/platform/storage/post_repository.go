package storage

import (
	"context"

	"gorm.io/gorm"

	"portfolio-server-go/internal/domain/content/aggregate"
	"portfolio-server-go/internal/domain/content/repository"
	"portfolio-server-go/internal/platform/errors"
)

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates the GORM-backed post repository.
func NewPostRepository(db *gorm.DB) repository.PostRepository {
	return &postRepository{
		db: db,
	}
}

func (r *postRepository) Save(ctx context.Context, post *aggregate.Post) error {
	model := r.toModel(post)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return errors.Wrap(errors.KindStorage, "post.save", "failed to save post", err)
	}
	post.ID = int(model.ID)
	return nil
}

func (r *postRepository) Update(ctx context.Context, post *aggregate.Post) error {
	model := r.toModel(post)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return errors.Wrap(errors.KindStorage, "post.update", "failed to update post", err)
	}
	post.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *postRepository) FindByID(ctx context.Context, id int) (*aggregate.Post, error) {
	var model Post
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(errors.KindStorage, "post.find_by_id", "failed to find post", err)
	}
	return r.fromModel(&model), nil
}

func (r *postRepository) FindBySlug(ctx context.Context, slug string) (*aggregate.Post, error) {
	var model Post
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(errors.KindStorage, "post.find_by_slug", "failed to find post", err)
	}
	return r.fromModel(&model), nil
}

func (r *postRepository) SlugExists(ctx context.Context, slug string, excludeID int) (bool, error) {
	query := r.db.WithContext(ctx).Model(&Post{}).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", uint(excludeID))
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, errors.Wrap(errors.KindStorage, "post.slug_exists", "failed to check slug", err)
	}
	return count > 0, nil
}

func (r *postRepository) List(ctx context.Context, includeDrafts bool, limit int) ([]*aggregate.Post, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if !includeDrafts {
		query = query.Where("published = ?", true)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []Post
	if err := query.Find(&models).Error; err != nil {
		return nil, errors.Wrap(errors.KindStorage, "post.list", "failed to list posts", err)
	}

	posts := make([]*aggregate.Post, len(models))
	for i, model := range models {
		posts[i] = r.fromModel(&model)
	}
	return posts, nil
}

func (r *postRepository) ListRecentlyUpdated(ctx context.Context, limit int) ([]*aggregate.Post, error) {
	query := r.db.WithContext(ctx).Order("updated_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []Post
	if err := query.Find(&models).Error; err != nil {
		return nil, errors.Wrap(errors.KindStorage, "post.list_recently_updated", "failed to list posts", err)
	}

	posts := make([]*aggregate.Post, len(models))
	for i, model := range models {
		posts[i] = r.fromModel(&model)
	}
	return posts, nil
}

func (r *postRepository) Delete(ctx context.Context, id int) error {
	if err := r.db.WithContext(ctx).Delete(&Post{}, id).Error; err != nil {
		return errors.Wrap(errors.KindStorage, "post.delete", "failed to delete post", err)
	}
	return nil
}

func (r *postRepository) Count(ctx context.Context, publishedOnly bool) (int64, error) {
	query := r.db.WithContext(ctx).Model(&Post{})
	if publishedOnly {
		query = query.Where("published = ?", true)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, errors.Wrap(errors.KindStorage, "post.count", "failed to count posts", err)
	}
	return count, nil
}

func (r *postRepository) toModel(post *aggregate.Post) *Post {
	return &Post{
		ID:        uint(post.ID),
		Title:     post.Title,
		Slug:      post.Slug,
		Content:   post.Content,
		Excerpt:   post.Excerpt,
		Published: post.Published,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

func (r *postRepository) fromModel(model *Post) *aggregate.Post {
	return &aggregate.Post{
		ID:        int(model.ID),
		Title:     model.Title,
		Slug:      model.Slug,
		Content:   model.Content,
		Excerpt:   model.Excerpt,
		Published: model.Published,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
