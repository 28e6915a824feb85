// Package admin exposes the protected management surface: the
// dashboard, post and project editors, and the stats API. Every route
// sits behind the session gate; handlers never re-check permissions.
package admin

import (
	"context"
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio-server-go/internal/domain/content/aggregate"
	"portfolio-server-go/internal/domain/content/service"
	"portfolio-server-go/internal/platform/cache"
	"portfolio-server-go/internal/platform/config"
	"portfolio-server-go/internal/platform/errors"
	"portfolio-server-go/internal/platform/logging"
	"portfolio-server-go/internal/platform/sysinfo"
	httptransport "portfolio-server-go/internal/transport/http"
)

// Service handles the admin routes.
type Service struct {
	config       *config.Config
	content      *service.ContentService
	cache        cache.Cache
	requireAdmin gin.HandlerFunc
	logger       *logging.Logger
}

// NewService creates the admin transport service.
func NewService(
	cfg *config.Config,
	content *service.ContentService,
	renderCache cache.Cache,
	requireAdmin gin.HandlerFunc,
	logger *logging.Logger,
) (*Service, error) {
	if cfg == nil {
		return nil, errors.New(errors.KindConfig, "admin.new", "config is required")
	}
	if content == nil {
		return nil, errors.New(errors.KindConfig, "admin.new", "content service is required")
	}
	if requireAdmin == nil {
		return nil, errors.New(errors.KindConfig, "admin.new", "auth middleware is required")
	}
	if logger == nil {
		return nil, errors.New(errors.KindConfig, "admin.new", "logger is required")
	}

	service := &Service{
		config:       cfg,
		content:      content,
		cache:        renderCache,
		requireAdmin: requireAdmin,
		logger:       logger,
	}

	return service, nil
}

// Register wires the admin HTML routes behind the session gate.
func (s *Service) Register(ctx context.Context, router *gin.RouterGroup) error {
	group := router.Group("/admin")
	group.Use(s.requireAdmin)

	group.GET("", s.handleDashboard)

	group.GET("/posts/new", s.handleNewPostForm)
	group.POST("/posts", s.handleCreatePost)
	group.GET("/posts/:id/edit", s.handleEditPostForm)
	group.POST("/posts/:id", s.handleUpdatePost)
	group.POST("/posts/:id/delete", s.handleDeletePost)

	group.GET("/projects/new", s.handleNewProjectForm)
	group.POST("/projects", s.handleCreateProject)
	group.GET("/projects/:id/edit", s.handleEditProjectForm)
	group.POST("/projects/:id", s.handleUpdateProject)
	group.POST("/projects/:id/delete", s.handleDeleteProject)

	s.logger.InfoTag("HTTP", "admin routes registered")
	return nil
}

// RegisterAPI wires the JSON endpoints behind the same gate.
func (s *Service) RegisterAPI(ctx context.Context, api *gin.RouterGroup) error {
	group := api.Group("/admin")
	group.Use(s.requireAdmin)

	group.GET("/stats", s.handleStats)
	return nil
}

func (s *Service) baseContext(c *gin.Context) gin.H {
	return gin.H{
		"Site":   s.config.Site,
		"Admin":  httptransport.AdminFromContext(c),
		"Active": "admin",
	}
}

func (s *Service) renderError(c *gin.Context, op string, err error) {
	s.logger.ErrorTag("ADMIN", "%s failed: %v", op, err)
	c.HTML(http.StatusInternalServerError, "500.html", gin.H{"Site": s.config.Site})
}

func (s *Service) renderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", gin.H{"Site": s.config.Site})
}

func (s *Service) postEditorContext(c *gin.Context, post *aggregate.Post, action string) gin.H {
	data := s.baseContext(c)
	data["Title"] = action + " Post"
	data["Post"] = post
	data["Action"] = action
	return data
}

func (s *Service) projectEditorContext(c *gin.Context, project *aggregate.Project, action string) gin.H {
	data := s.baseContext(c)
	data["Title"] = action + " Project"
	data["Project"] = project
	data["Action"] = action
	return data
}

// domainMessage extracts the user-facing message from a validation
// error, or "" when the error is infrastructure.
func domainMessage(err error) string {
	var domainErr *errors.Error
	if stderrors.As(err, &domainErr) && domainErr.Kind == errors.KindDomain {
		return domainErr.Message
	}
	return ""
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ---- dashboard ----

func (s *Service) handleDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := s.content.Stats(ctx)
	if err != nil {
		s.renderError(c, "dashboard.stats", err)
		return
	}
	recent, err := s.content.RecentlyEdited(ctx, 5)
	if err != nil {
		s.renderError(c, "dashboard.recent_posts", err)
		return
	}
	projects, err := s.content.ListProjects(ctx)
	if err != nil {
		s.renderError(c, "dashboard.projects", err)
		return
	}

	data := s.baseContext(c)
	data["Title"] = "Dashboard"
	data["Stats"] = stats
	data["RecentPosts"] = recent
	data["Projects"] = projects
	data["System"] = sysinfo.Snapshot(ctx)
	if s.cache != nil {
		if cacheStats, err := s.cache.Stats(ctx); err == nil {
			data["CacheStats"] = cacheStats
		}
	}
	c.HTML(http.StatusOK, "dashboard.html", data)
}

// handleStats feeds the dashboard refresh endpoint.
func (s *Service) handleStats(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := s.content.Stats(ctx)
	if err != nil {
		httptransport.RespondError(c, http.StatusInternalServerError, "failed to load stats", nil)
		return
	}

	payload := gin.H{
		"content": stats,
		"system":  sysinfo.Snapshot(ctx),
	}
	if s.cache != nil {
		if cacheStats, err := s.cache.Stats(ctx); err == nil {
			payload["cache"] = cacheStats
		}
	}
	httptransport.RespondSuccess(c, http.StatusOK, payload, "")
}

// ---- posts ----

func postFormInput(c *gin.Context) service.PostInput {
	return service.PostInput{
		Title:     strings.TrimSpace(c.PostForm("title")),
		Content:   strings.TrimSpace(c.PostForm("content")),
		Excerpt:   strings.TrimSpace(c.PostForm("excerpt")),
		Published: c.PostForm("published") == "on",
	}
}

func (s *Service) handleNewPostForm(c *gin.Context) {
	c.HTML(http.StatusOK, "editor.html", s.postEditorContext(c, nil, "Create"))
}

func (s *Service) handleCreatePost(c *gin.Context) {
	post, err := s.content.CreatePost(c.Request.Context(), postFormInput(c))
	if err != nil {
		if msg := domainMessage(err); msg != "" {
			data := s.postEditorContext(c, nil, "Create")
			data["Error"] = msg
			c.HTML(http.StatusOK, "editor.html", data)
			return
		}
		s.renderError(c, "posts.create", err)
		return
	}

	c.Redirect(http.StatusFound, "/admin/posts/"+strconv.Itoa(post.ID)+"/edit?saved=1")
}

func (s *Service) handleEditPostForm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.renderNotFound(c)
		return
	}

	post, err := s.content.GetPost(c.Request.Context(), id)
	if err != nil {
		s.renderError(c, "posts.edit_form", err)
		return
	}
	if post == nil {
		s.renderNotFound(c)
		return
	}

	data := s.postEditorContext(c, post, "Update")
	data["Saved"] = c.Query("saved") == "1"
	c.HTML(http.StatusOK, "editor.html", data)
}

func (s *Service) handleUpdatePost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.renderNotFound(c)
		return
	}

	post, err := s.content.UpdatePost(c.Request.Context(), id, postFormInput(c))
	if err != nil {
		if msg := domainMessage(err); msg != "" {
			if msg == "post not found" {
				s.renderNotFound(c)
				return
			}
			current, findErr := s.content.GetPost(c.Request.Context(), id)
			if findErr != nil || current == nil {
				s.renderNotFound(c)
				return
			}
			data := s.postEditorContext(c, current, "Update")
			data["Error"] = msg
			c.HTML(http.StatusOK, "editor.html", data)
			return
		}
		s.renderError(c, "posts.update", err)
		return
	}

	c.Redirect(http.StatusFound, "/admin/posts/"+strconv.Itoa(post.ID)+"/edit?saved=1")
}

func (s *Service) handleDeletePost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.renderNotFound(c)
		return
	}

	if err := s.content.DeletePost(c.Request.Context(), id); err != nil {
		if domainMessage(err) != "" {
			s.renderNotFound(c)
			return
		}
		s.renderError(c, "posts.delete", err)
		return
	}

	c.Redirect(http.StatusFound, "/admin")
}

// ---- projects ----

func projectFormInput(c *gin.Context) service.ProjectInput {
	order, _ := strconv.Atoi(c.PostForm("order"))
	return service.ProjectInput{
		Title:        strings.TrimSpace(c.PostForm("title")),
		Description:  strings.TrimSpace(c.PostForm("description")),
		TechStack:    strings.TrimSpace(c.PostForm("tech_stack")),
		LiveURL:      strings.TrimSpace(c.PostForm("url")),
		SourceURL:    strings.TrimSpace(c.PostForm("github_url")),
		ImageURL:     strings.TrimSpace(c.PostForm("image_url")),
		Featured:     c.PostForm("featured") == "on",
		DisplayOrder: order,
	}
}

func (s *Service) handleNewProjectForm(c *gin.Context) {
	c.HTML(http.StatusOK, "project_editor.html", s.projectEditorContext(c, nil, "Create"))
}

func (s *Service) handleCreateProject(c *gin.Context) {
	project, err := s.content.CreateProject(c.Request.Context(), projectFormInput(c))
	if err != nil {
		if msg := domainMessage(err); msg != "" {
			data := s.projectEditorContext(c, nil, "Create")
			data["Error"] = msg
			c.HTML(http.StatusOK, "project_editor.html", data)
			return
		}
		s.renderError(c, "projects.create", err)
		return
	}

	c.Redirect(http.StatusFound, "/admin/projects/"+strconv.Itoa(project.ID)+"/edit?saved=1")
}

func (s *Service) handleEditProjectForm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.renderNotFound(c)
		return
	}

	project, err := s.content.GetProject(c.Request.Context(), id)
	if err != nil {
		s.renderError(c, "projects.edit_form", err)
		return
	}
	if project == nil {
		s.renderNotFound(c)
		return
	}

	data := s.projectEditorContext(c, project, "Update")
	data["Saved"] = c.Query("saved") == "1"
	c.HTML(http.StatusOK, "project_editor.html", data)
}

func (s *Service) handleUpdateProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.renderNotFound(c)
		return
	}

	project, err := s.content.UpdateProject(c.Request.Context(), id, projectFormInput(c))
	if err != nil {
		if msg := domainMessage(err); msg != "" {
			if msg == "project not found" {
				s.renderNotFound(c)
				return
			}
			current, findErr := s.content.GetProject(c.Request.Context(), id)
			if findErr != nil || current == nil {
				s.renderNotFound(c)
				return
			}
			data := s.projectEditorContext(c, current, "Update")
			data["Error"] = msg
			c.HTML(http.StatusOK, "project_editor.html", data)
			return
		}
		s.renderError(c, "projects.update", err)
		return
	}

	c.Redirect(http.StatusFound, "/admin/projects/"+strconv.Itoa(project.ID)+"/edit?saved=1")
}

func (s *Service) handleDeleteProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.renderNotFound(c)
		return
	}

	if err := s.content.DeleteProject(c.Request.Context(), id); err != nil {
		if domainMessage(err) != "" {
			s.renderNotFound(c)
			return
		}
		s.renderError(c, "projects.delete", err)
		return
	}

	c.Redirect(http.StatusFound, "/admin")
}
