package service

import (
	"context"
	"fmt"

	"portfolio-server-go/internal/domain/content/aggregate"
	"portfolio-server-go/internal/domain/content/repository"
	"portfolio-server-go/internal/domain/events"
	"portfolio-server-go/internal/platform/errors"
)

// ContentService owns all writes to posts and projects, including slug
// uniqueness. Reads pass through with visibility rules applied.
type ContentService struct {
	posts    repository.PostRepository
	projects repository.ProjectRepository
}

func NewContentService(posts repository.PostRepository, projects repository.ProjectRepository) *ContentService {
	return &ContentService{
		posts:    posts,
		projects: projects,
	}
}

// PostInput carries the editable fields of a post.
type PostInput struct {
	Title     string
	Content   string
	Excerpt   string
	Published bool
}

// ProjectInput carries the editable fields of a project.
type ProjectInput struct {
	Title        string
	Description  string
	TechStack    string
	LiveURL      string
	SourceURL    string
	ImageURL     string
	Featured     bool
	DisplayOrder int
}

// ContentStats feeds the admin dashboard.
type ContentStats struct {
	TotalPosts     int64 `json:"total_posts"`
	PublishedPosts int64 `json:"published_posts"`
	DraftPosts     int64 `json:"draft_posts"`
	TotalProjects  int64 `json:"total_projects"`
}

// CreatePost validates the input, assigns a unique slug, and saves.
func (s *ContentService) CreatePost(ctx context.Context, in PostInput) (*aggregate.Post, error) {
	post, err := aggregate.NewPost(in.Title, in.Content, in.Excerpt, in.Published)
	if err != nil {
		return nil, err
	}

	slug, err := s.uniquePostSlug(ctx, Slugify(post.Title), 0)
	if err != nil {
		return nil, err
	}
	post.Slug = slug

	if err := s.posts.Save(ctx, post); err != nil {
		return nil, errors.Wrap(errors.KindStorage, "content.create_post", "failed to save post", err)
	}

	events.PublishAsync(events.EventPostSaved, events.ContentEventData{
		Kind: "post", ID: post.ID, Slug: post.Slug,
	})
	return post, nil
}

// UpdatePost applies the input to an existing post. When the title
// changes, the slug follows it only if the new slug is free; a
// conflicting slug keeps the old one so existing links never break.
func (s *ContentService) UpdatePost(ctx context.Context, id int, in PostInput) (*aggregate.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errors.New(errors.KindDomain, "content.update_post", "post not found")
	}

	if err := post.Apply(in.Title, in.Content, in.Excerpt, in.Published); err != nil {
		return nil, err
	}

	if newSlug := Slugify(post.Title); newSlug != "" && newSlug != post.Slug {
		taken, err := s.posts.SlugExists(ctx, newSlug, post.ID)
		if err != nil {
			return nil, err
		}
		if !taken {
			post.Slug = newSlug
		}
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, errors.Wrap(errors.KindStorage, "content.update_post", "failed to update post", err)
	}

	events.PublishAsync(events.EventPostSaved, events.ContentEventData{
		Kind: "post", ID: post.ID, Slug: post.Slug,
	})
	return post, nil
}

func (s *ContentService) DeletePost(ctx context.Context, id int) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return errors.New(errors.KindDomain, "content.delete_post", "post not found")
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return errors.Wrap(errors.KindStorage, "content.delete_post", "failed to delete post", err)
	}

	events.PublishAsync(events.EventPostDeleted, events.ContentEventData{
		Kind: "post", ID: id, Slug: post.Slug,
	})
	return nil
}

// GetPost returns the post or (nil, nil) when it does not exist.
func (s *ContentService) GetPost(ctx context.Context, id int) (*aggregate.Post, error) {
	return s.posts.FindByID(ctx, id)
}

// GetPostBySlug applies the visibility rule: drafts resolve only when
// includeDrafts is set. Invisible and missing are indistinguishable.
func (s *ContentService) GetPostBySlug(ctx context.Context, slug string, includeDrafts bool) (*aggregate.Post, error) {
	post, err := s.posts.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post == nil || !post.VisibleTo(includeDrafts) {
		return nil, nil
	}
	return post, nil
}

func (s *ContentService) ListPosts(ctx context.Context, includeDrafts bool) ([]*aggregate.Post, error) {
	return s.posts.List(ctx, includeDrafts, 0)
}

// RecentPosts returns the newest published posts for the home page.
func (s *ContentService) RecentPosts(ctx context.Context, limit int) ([]*aggregate.Post, error) {
	return s.posts.List(ctx, false, limit)
}

// RecentlyEdited returns posts by last edit, drafts included, for the
// admin dashboard.
func (s *ContentService) RecentlyEdited(ctx context.Context, limit int) ([]*aggregate.Post, error) {
	return s.posts.ListRecentlyUpdated(ctx, limit)
}

func (s *ContentService) CreateProject(ctx context.Context, in ProjectInput) (*aggregate.Project, error) {
	project, err := aggregate.NewProject(in.Title, in.Description, in.TechStack,
		projectLinks(in), in.Featured, in.DisplayOrder)
	if err != nil {
		return nil, err
	}

	if err := s.projects.Save(ctx, project); err != nil {
		return nil, errors.Wrap(errors.KindStorage, "content.create_project", "failed to save project", err)
	}

	events.PublishAsync(events.EventProjectSaved, events.ContentEventData{
		Kind: "project", ID: project.ID,
	})
	return project, nil
}

func (s *ContentService) UpdateProject(ctx context.Context, id int, in ProjectInput) (*aggregate.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, errors.New(errors.KindDomain, "content.update_project", "project not found")
	}

	if err := project.Apply(in.Title, in.Description, in.TechStack,
		projectLinks(in), in.Featured, in.DisplayOrder); err != nil {
		return nil, err
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, errors.Wrap(errors.KindStorage, "content.update_project", "failed to update project", err)
	}

	events.PublishAsync(events.EventProjectSaved, events.ContentEventData{
		Kind: "project", ID: project.ID,
	})
	return project, nil
}

func (s *ContentService) DeleteProject(ctx context.Context, id int) error {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if project == nil {
		return errors.New(errors.KindDomain, "content.delete_project", "project not found")
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		return errors.Wrap(errors.KindStorage, "content.delete_project", "failed to delete project", err)
	}

	events.PublishAsync(events.EventProjectDeleted, events.ContentEventData{
		Kind: "project", ID: id,
	})
	return nil
}

func (s *ContentService) GetProject(ctx context.Context, id int) (*aggregate.Project, error) {
	return s.projects.FindByID(ctx, id)
}

func (s *ContentService) ListProjects(ctx context.Context) ([]*aggregate.Project, error) {
	return s.projects.List(ctx, false, 0)
}

func (s *ContentService) FeaturedProjects(ctx context.Context, limit int) ([]*aggregate.Project, error) {
	return s.projects.List(ctx, true, limit)
}

func (s *ContentService) Stats(ctx context.Context) (ContentStats, error) {
	total, err := s.posts.Count(ctx, false)
	if err != nil {
		return ContentStats{}, err
	}
	published, err := s.posts.Count(ctx, true)
	if err != nil {
		return ContentStats{}, err
	}
	projects, err := s.projects.Count(ctx)
	if err != nil {
		return ContentStats{}, err
	}

	return ContentStats{
		TotalPosts:     total,
		PublishedPosts: published,
		DraftPosts:     total - published,
		TotalProjects:  projects,
	}, nil
}

// uniquePostSlug returns base unchanged when free, otherwise the first
// free base-N starting from N=1.
func (s *ContentService) uniquePostSlug(ctx context.Context, base string, excludeID int) (string, error) {
	if base == "" {
		base = "untitled"
	}

	taken, err := s.posts.SlugExists(ctx, base, excludeID)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s-%d", base, counter)
		taken, err := s.posts.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}

func projectLinks(in ProjectInput) aggregate.ProjectLinks {
	return aggregate.ProjectLinks{
		Live:   in.LiveURL,
		Source: in.SourceURL,
		Image:  in.ImageURL,
	}
}
