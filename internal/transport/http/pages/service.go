// Package pages renders the public site: home, about, projects, blog,
// and contact. Everything here is readable without a session; a
// logged-in admin additionally sees draft posts.
package pages

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-server-go/internal/domain/content/service"
	"portfolio-server-go/internal/domain/markdown"
	"portfolio-server-go/internal/platform/config"
	"portfolio-server-go/internal/platform/errors"
	"portfolio-server-go/internal/platform/logging"
	httptransport "portfolio-server-go/internal/transport/http"
)

// Service handles the public page routes.
type Service struct {
	config        *config.Config
	content       *service.ContentService
	renderer      *markdown.Renderer
	optionalAdmin gin.HandlerFunc
	logger        *logging.Logger
}

// NewService creates the public pages transport service.
func NewService(
	cfg *config.Config,
	content *service.ContentService,
	renderer *markdown.Renderer,
	optionalAdmin gin.HandlerFunc,
	logger *logging.Logger,
) (*Service, error) {
	if cfg == nil {
		return nil, errors.New(errors.KindConfig, "pages.new", "config is required")
	}
	if content == nil {
		return nil, errors.New(errors.KindConfig, "pages.new", "content service is required")
	}
	if renderer == nil {
		return nil, errors.New(errors.KindConfig, "pages.new", "markdown renderer is required")
	}
	if logger == nil {
		return nil, errors.New(errors.KindConfig, "pages.new", "logger is required")
	}

	service := &Service{
		config:        cfg,
		content:       content,
		renderer:      renderer,
		optionalAdmin: optionalAdmin,
		logger:        logger,
	}

	return service, nil
}

// Register wires the public page routes.
func (s *Service) Register(ctx context.Context, router *gin.RouterGroup) error {
	group := router.Group("")
	if s.optionalAdmin != nil {
		group.Use(s.optionalAdmin)
	}

	group.GET("/", s.handleHome)
	group.GET("/about", s.handleAbout)
	group.GET("/projects", s.handleProjects)
	group.GET("/blog", s.handleBlogIndex)
	group.GET("/blog/:slug", s.handleBlogPost)
	group.GET("/contact", s.handleContact)

	s.logger.InfoTag("HTTP", "public page routes registered")
	return nil
}

// baseContext carries the fields every page template expects.
func (s *Service) baseContext(c *gin.Context, active string) gin.H {
	return gin.H{
		"Site":   s.config.Site,
		"Admin":  httptransport.AdminFromContext(c),
		"Active": active,
	}
}

func (s *Service) renderError(c *gin.Context, op string, err error) {
	s.logger.ErrorTag("HTTP", "%s failed: %v", op, err)
	c.HTML(http.StatusInternalServerError, "500.html", gin.H{"Site": s.config.Site})
}

func (s *Service) handleHome(c *gin.Context) {
	ctx := c.Request.Context()

	featured, err := s.content.FeaturedProjects(ctx, 3)
	if err != nil {
		s.renderError(c, "home.featured_projects", err)
		return
	}
	recent, err := s.content.RecentPosts(ctx, 3)
	if err != nil {
		s.renderError(c, "home.recent_posts", err)
		return
	}

	data := s.baseContext(c, "home")
	data["FeaturedProjects"] = featured
	data["RecentPosts"] = recent
	c.HTML(http.StatusOK, "home.html", data)
}

func (s *Service) handleAbout(c *gin.Context) {
	data := s.baseContext(c, "about")
	data["Title"] = "About"
	c.HTML(http.StatusOK, "about.html", data)
}

func (s *Service) handleProjects(c *gin.Context) {
	projects, err := s.content.ListProjects(c.Request.Context())
	if err != nil {
		s.renderError(c, "projects.list", err)
		return
	}

	data := s.baseContext(c, "projects")
	data["Title"] = "Projects"
	data["Projects"] = projects
	c.HTML(http.StatusOK, "projects.html", data)
}

// handleBlogIndex lists posts newest first. Drafts appear only for the
// admin.
func (s *Service) handleBlogIndex(c *gin.Context) {
	isAdmin := httptransport.AdminFromContext(c) != nil

	posts, err := s.content.ListPosts(c.Request.Context(), isAdmin)
	if err != nil {
		s.renderError(c, "blog.list", err)
		return
	}

	data := s.baseContext(c, "blog")
	data["Title"] = "Blog"
	data["Posts"] = posts
	c.HTML(http.StatusOK, "blog.html", data)
}

// handleBlogPost renders one post. An unpublished slug is a 404 for
// everyone but the admin, indistinguishable from a missing one.
func (s *Service) handleBlogPost(c *gin.Context) {
	ctx := c.Request.Context()
	isAdmin := httptransport.AdminFromContext(c) != nil

	post, err := s.content.GetPostBySlug(ctx, c.Param("slug"), isAdmin)
	if err != nil {
		s.renderError(c, "blog.get_post", err)
		return
	}
	if post == nil {
		c.HTML(http.StatusNotFound, "404.html", gin.H{"Site": s.config.Site})
		return
	}

	data := s.baseContext(c, "blog")
	data["Title"] = post.Title
	data["Post"] = post
	data["Content"] = s.renderer.RenderCached(ctx, markdown.KindPost, post.ID, post.UpdatedAt, post.Content)
	data["ReadingTime"] = markdown.ReadingTime(post.Content)
	c.HTML(http.StatusOK, "post.html", data)
}

func (s *Service) handleContact(c *gin.Context) {
	data := s.baseContext(c, "contact")
	data["Title"] = "Contact"
	c.HTML(http.StatusOK, "contact.html", data)
}
