package repository

import (
	"context"

	"portfolio-server-go/internal/domain/content/aggregate"
)

// PostRepository persists blog posts. Find methods return (nil, nil)
// when no row matches.
type PostRepository interface {
	// Save inserts a new post and fills in its ID.
	Save(ctx context.Context, post *aggregate.Post) error

	// Update persists changes to an existing post.
	Update(ctx context.Context, post *aggregate.Post) error

	// FindByID looks a post up by primary key.
	FindByID(ctx context.Context, id int) (*aggregate.Post, error)

	// FindBySlug looks a post up by its URL slug.
	FindBySlug(ctx context.Context, slug string) (*aggregate.Post, error)

	// SlugExists reports whether another post already uses slug.
	// excludeID ignores one post (pass 0 when creating).
	SlugExists(ctx context.Context, slug string, excludeID int) (bool, error)

	// List returns posts newest-first. Drafts are included only when
	// includeDrafts is set. limit <= 0 means no limit.
	List(ctx context.Context, includeDrafts bool, limit int) ([]*aggregate.Post, error)

	// ListRecentlyUpdated returns posts by most recent edit, drafts
	// included. limit <= 0 means no limit.
	ListRecentlyUpdated(ctx context.Context, limit int) ([]*aggregate.Post, error)

	// Delete removes a post by ID.
	Delete(ctx context.Context, id int) error

	// Count tallies posts, optionally only published ones.
	Count(ctx context.Context, publishedOnly bool) (int64, error)
}

// ProjectRepository persists portfolio projects.
type ProjectRepository interface {
	Save(ctx context.Context, project *aggregate.Project) error

	Update(ctx context.Context, project *aggregate.Project) error

	FindByID(ctx context.Context, id int) (*aggregate.Project, error)

	// List returns projects ordered by display order, then newest
	// first. featuredOnly restricts to featured rows. limit <= 0
	// means no limit.
	List(ctx context.Context, featuredOnly bool, limit int) ([]*aggregate.Project, error)

	Delete(ctx context.Context, id int) error

	Count(ctx context.Context) (int64, error)
}
