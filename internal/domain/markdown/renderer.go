// Package markdown converts post and project bodies to HTML. Rendered
// fragments are memoized in the platform cache keyed by content kind,
// ID, and last update, so edits naturally miss the stale entry.
package markdown

import (
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/russross/blackfriday/v2"

	"portfolio-server-go/internal/platform/cache"
)

// Cache key layout: markdown:<kind>:<id>:<updatedAt unix>. Event
// handlers invalidate with KeyPrefix(kind, id).
const keyFormat = "markdown:%s:%d:%d"

// Kind labels for cached fragments.
const (
	KindPost    = "post"
	KindProject = "project"
)

// Renderer converts markdown to HTML, optionally memoized.
type Renderer struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewRenderer builds a renderer. cache may be nil to disable
// memoization.
func NewRenderer(c cache.Cache, ttl time.Duration) *Renderer {
	return &Renderer{
		cache: c,
		ttl:   ttl,
	}
}

// Render converts markdown to HTML without touching the cache.
func (r *Renderer) Render(content string) template.HTML {
	return Render(content)
}

// RenderCached converts markdown to HTML through the cache. Cache
// failures degrade to a direct render.
func (r *Renderer) RenderCached(ctx context.Context, kind string, id int, updatedAt time.Time, content string) template.HTML {
	if r.cache == nil {
		return Render(content)
	}

	key := fmt.Sprintf(keyFormat, kind, id, updatedAt.Unix())
	if cached, ok, err := r.cache.Get(ctx, key); err == nil && ok {
		return template.HTML(cached)
	}

	html := Render(content)
	_ = r.cache.Set(ctx, key, string(html), r.ttl)
	return html
}

// KeyPrefix returns the cache prefix covering every rendered revision
// of one piece of content.
func KeyPrefix(kind string, id int) string {
	return fmt.Sprintf("markdown:%s:%d:", kind, id)
}

// Render converts markdown to HTML. External links open in a new tab.
func Render(content string) template.HTML {
	if content == "" {
		return template.HTML("")
	}

	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.CommonHTMLFlags | blackfriday.HrefTargetBlank,
	})
	html := blackfriday.Run(
		[]byte(content),
		blackfriday.WithExtensions(blackfriday.CommonExtensions),
		blackfriday.WithRenderer(renderer),
	)
	return template.HTML(html)
}
