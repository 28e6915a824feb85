package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authagg "portfolio-server-go/internal/domain/auth/aggregate"
	"portfolio-server-go/internal/domain/content/aggregate"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:test-%d?mode=memory&cache=shared", time.Now().UnixNano())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := testDB.AutoMigrate(&AdminUser{}, &Post{}, &Project{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return testDB
}

func newTestPost(t *testing.T, title, slug string, published bool) *aggregate.Post {
	t.Helper()
	post, err := aggregate.NewPost(title, "Some **markdown** body.", "", published)
	if err != nil {
		t.Fatalf("new post: %v", err)
	}
	post.Slug = slug
	return post
}

func TestPostRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository(newTestDB(t))

	post := newTestPost(t, "First Post", "first-post", true)
	if err := repo.Save(ctx, post); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if post.ID == 0 {
		t.Fatalf("expected ID to be assigned after save")
	}

	got, err := repo.FindByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if got == nil || got.Title != "First Post" || got.Slug != "first-post" {
		t.Fatalf("unexpected post: %+v", got)
	}

	bySlug, err := repo.FindBySlug(ctx, "first-post")
	if err != nil {
		t.Fatalf("FindBySlug error: %v", err)
	}
	if bySlug == nil || bySlug.ID != post.ID {
		t.Fatalf("unexpected post by slug: %+v", bySlug)
	}

	if err := got.Apply("First Post Revised", got.Content, got.Excerpt, false); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	updated, err := repo.FindByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("FindByID after update error: %v", err)
	}
	if updated.Title != "First Post Revised" || updated.Published {
		t.Fatalf("update not persisted: %+v", updated)
	}

	if err := repo.Delete(ctx, post.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	missing, err := repo.FindByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("FindByID after delete error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil after delete, got %+v", missing)
	}
}

func TestPostRepositoryMissingIsNil(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository(newTestDB(t))

	got, err := repo.FindByID(ctx, 42)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing post, got %+v", got)
	}

	bySlug, err := repo.FindBySlug(ctx, "no-such-slug")
	if err != nil {
		t.Fatalf("FindBySlug error: %v", err)
	}
	if bySlug != nil {
		t.Fatalf("expected nil for missing slug, got %+v", bySlug)
	}
}

func TestPostRepositorySlugExists(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository(newTestDB(t))

	post := newTestPost(t, "Taken", "taken", true)
	if err := repo.Save(ctx, post); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	exists, err := repo.SlugExists(ctx, "taken", 0)
	if err != nil {
		t.Fatalf("SlugExists error: %v", err)
	}
	if !exists {
		t.Fatalf("expected slug to exist")
	}

	// The owning post does not conflict with itself.
	exists, err = repo.SlugExists(ctx, "taken", post.ID)
	if err != nil {
		t.Fatalf("SlugExists error: %v", err)
	}
	if exists {
		t.Fatalf("expected slug to be free when excluding owner")
	}

	exists, err = repo.SlugExists(ctx, "free", 0)
	if err != nil {
		t.Fatalf("SlugExists error: %v", err)
	}
	if exists {
		t.Fatalf("expected unused slug to be free")
	}
}

func TestPostRepositoryListFiltersDrafts(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository(newTestDB(t))

	now := time.Now()
	published := newTestPost(t, "Published", "published", true)
	published.CreatedAt = now.Add(-2 * time.Hour)
	draft := newTestPost(t, "Draft", "draft", false)
	draft.CreatedAt = now.Add(-1 * time.Hour)
	newest := newTestPost(t, "Newest", "newest", true)
	newest.CreatedAt = now

	for _, p := range []*aggregate.Post{published, draft, newest} {
		if err := repo.Save(ctx, p); err != nil {
			t.Fatalf("Save error: %v", err)
		}
	}

	visible, err := repo.List(ctx, false, 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(visible) != 2 {
		t.Fatalf("expected 2 published posts, got %d", len(visible))
	}
	if visible[0].Slug != "newest" || visible[1].Slug != "published" {
		t.Fatalf("unexpected order: %s, %s", visible[0].Slug, visible[1].Slug)
	}

	all, err := repo.List(ctx, true, 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 posts with drafts, got %d", len(all))
	}

	limited, err := repo.List(ctx, true, 1)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(limited) != 1 || limited[0].Slug != "newest" {
		t.Fatalf("unexpected limited list: %+v", limited)
	}

	total, err := repo.Count(ctx, false)
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected 3 total posts, got %d", total)
	}
	publishedCount, err := repo.Count(ctx, true)
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if publishedCount != 2 {
		t.Fatalf("expected 2 published posts, got %d", publishedCount)
	}
}

func TestProjectRepositoryLinksRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(newTestDB(t))

	links := aggregate.ProjectLinks{
		Live:   "https://example.com",
		Source: "https://github.com/owner/repo",
	}
	project, err := aggregate.NewProject("Site", "A site.", "Go, SQLite", links, true, 1)
	if err != nil {
		t.Fatalf("new project: %v", err)
	}

	if err := repo.Save(ctx, project); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if project.ID == 0 {
		t.Fatalf("expected ID to be assigned after save")
	}

	got, err := repo.FindByID(ctx, project.ID)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if got == nil || got.Links != links {
		t.Fatalf("links did not round trip: %+v", got)
	}

	got.Links = aggregate.ProjectLinks{}
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	cleared, err := repo.FindByID(ctx, project.ID)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if cleared.Links != (aggregate.ProjectLinks{}) {
		t.Fatalf("expected links cleared, got %+v", cleared.Links)
	}
}

func TestProjectRepositoryListOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(newTestDB(t))

	specs := []struct {
		title    string
		featured bool
		order    int
	}{
		{"Third", false, 3},
		{"First", true, 1},
		{"Second", true, 2},
	}
	for _, s := range specs {
		project, err := aggregate.NewProject(s.title, "desc", "Go", aggregate.ProjectLinks{}, s.featured, s.order)
		if err != nil {
			t.Fatalf("new project: %v", err)
		}
		if err := repo.Save(ctx, project); err != nil {
			t.Fatalf("Save error: %v", err)
		}
	}

	all, err := repo.List(ctx, false, 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(all) != 3 || all[0].Title != "First" || all[1].Title != "Second" || all[2].Title != "Third" {
		t.Fatalf("unexpected order: %+v", all)
	}

	featured, err := repo.List(ctx, true, 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(featured) != 2 || featured[0].Title != "First" {
		t.Fatalf("unexpected featured list: %+v", featured)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 projects, got %d", count)
	}
}

func TestAdminRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewAdminRepository(newTestDB(t))

	missing, err := repo.FindByUsername(ctx, "owner")
	if err != nil {
		t.Fatalf("FindByUsername error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing admin, got %+v", missing)
	}

	admin, err := authagg.NewAdminUser("owner", "hunter2-but-longer")
	if err != nil {
		t.Fatalf("new admin: %v", err)
	}
	if err := repo.Save(ctx, admin); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if admin.ID == 0 {
		t.Fatalf("expected ID to be assigned after save")
	}

	got, err := repo.FindByUsername(ctx, "owner")
	if err != nil {
		t.Fatalf("FindByUsername error: %v", err)
	}
	if got == nil || got.Username != "owner" {
		t.Fatalf("unexpected admin: %+v", got)
	}
	if !got.ValidatePassword("hunter2-but-longer") {
		t.Fatalf("expected stored hash to validate original password")
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 admin, got %d", count)
	}
}

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()

	db = newTestDB(t)
	defer func() { db = nil }()

	if _, err := SeedAdmin(ctx, "owner", ""); err == nil {
		t.Fatalf("expected error when seeding with blank password")
	}

	created, err := SeedAdmin(ctx, "owner", "initial-password")
	if err != nil {
		t.Fatalf("SeedAdmin error: %v", err)
	}
	if !created {
		t.Fatalf("expected first seed to create the account")
	}

	// Second run is a no-op even with a different password.
	created, err = SeedAdmin(ctx, "owner", "other-password")
	if err != nil {
		t.Fatalf("SeedAdmin error: %v", err)
	}
	if created {
		t.Fatalf("expected second seed to be a no-op")
	}

	repo := NewAdminRepository(db)
	admin, err := repo.FindByUsername(ctx, "owner")
	if err != nil {
		t.Fatalf("FindByUsername error: %v", err)
	}
	if admin == nil || !admin.ValidatePassword("initial-password") {
		t.Fatalf("expected original seeded password to remain valid")
	}
}
