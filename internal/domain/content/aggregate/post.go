package aggregate

import (
	"strings"
	"time"

	"portfolio-server-go/internal/platform/errors"
)

const (
	MaxTitleLength   = 200
	MaxExcerptLength = 500
)

// Post is a blog entry. Content is raw markdown; rendering happens at
// the transport layer. Unpublished posts are drafts only the admin sees.
type Post struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	Excerpt   string    `json:"excerpt,omitempty"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewPost validates and builds an unsaved post. The slug is assigned by
// the content service, which owns uniqueness.
func NewPost(title, content, excerpt string, published bool) (*Post, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	excerpt = strings.TrimSpace(excerpt)

	if err := validatePostFields(title, content, excerpt); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Post{
		Title:     title,
		Content:   content,
		Excerpt:   excerpt,
		Published: published,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Apply updates the mutable fields. Slug management stays with the
// caller so uniqueness checks happen in one place.
func (p *Post) Apply(title, content, excerpt string, published bool) error {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	excerpt = strings.TrimSpace(excerpt)

	if err := validatePostFields(title, content, excerpt); err != nil {
		return err
	}

	p.Title = title
	p.Content = content
	p.Excerpt = excerpt
	p.Published = published
	p.UpdatedAt = time.Now()
	return nil
}

// VisibleTo reports whether a reader may see this post.
func (p *Post) VisibleTo(admin bool) bool {
	return p.Published || admin
}

func validatePostFields(title, content, excerpt string) error {
	if title == "" || content == "" {
		return errors.New(errors.KindDomain, "post.validate", "title and content are required")
	}
	if len(title) > MaxTitleLength {
		return errors.New(errors.KindDomain, "post.validate", "title exceeds 200 characters")
	}
	if len(excerpt) > MaxExcerptLength {
		return errors.New(errors.KindDomain, "post.validate", "excerpt exceeds 500 characters")
	}
	return nil
}
