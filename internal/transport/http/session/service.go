// Package session exposes the login, logout, and session-cookie flow
// over HTTP.
package session

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio-server-go/internal/domain/auth"
	"portfolio-server-go/internal/domain/events"
	"portfolio-server-go/internal/platform/config"
	"portfolio-server-go/internal/platform/errors"
	"portfolio-server-go/internal/platform/logging"
	httptransport "portfolio-server-go/internal/transport/http"
)

// Service handles the authentication routes.
type Service struct {
	config        *config.Config
	credentials   *auth.CredentialStore
	issuer        *auth.Issuer
	cookies       *auth.SessionCookies
	optionalAdmin gin.HandlerFunc
	logger        *logging.Logger
}

// NewService creates the session transport service.
func NewService(
	cfg *config.Config,
	credentials *auth.CredentialStore,
	issuer *auth.Issuer,
	cookies *auth.SessionCookies,
	optionalAdmin gin.HandlerFunc,
	logger *logging.Logger,
) (*Service, error) {
	if cfg == nil {
		return nil, errors.New(errors.KindConfig, "session.new", "config is required")
	}
	if credentials == nil {
		return nil, errors.New(errors.KindConfig, "session.new", "credential store is required")
	}
	if issuer == nil {
		return nil, errors.New(errors.KindConfig, "session.new", "token issuer is required")
	}
	if cookies == nil {
		return nil, errors.New(errors.KindConfig, "session.new", "session cookies are required")
	}
	if logger == nil {
		return nil, errors.New(errors.KindConfig, "session.new", "logger is required")
	}

	service := &Service{
		config:        cfg,
		credentials:   credentials,
		issuer:        issuer,
		cookies:       cookies,
		optionalAdmin: optionalAdmin,
		logger:        logger,
	}

	return service, nil
}

// Register wires the authentication routes.
func (s *Service) Register(ctx context.Context, router *gin.RouterGroup) error {
	login := router.Group("/auth")
	if s.optionalAdmin != nil {
		login.GET("/login", s.optionalAdmin, s.handleLoginForm)
	} else {
		login.GET("/login", s.handleLoginForm)
	}
	login.POST("/login", s.handleLogin)
	login.GET("/logout", s.handleLogout)

	s.logger.InfoTag("HTTP", "session routes registered")
	return nil
}

// handleLoginForm shows the login page, or sends an already
// authenticated admin straight to the dashboard.
func (s *Service) handleLoginForm(c *gin.Context) {
	if httptransport.AdminFromContext(c) != nil {
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	c.HTML(http.StatusOK, "login.html", gin.H{
		"Site":  s.config.Site,
		"Title": "Sign in",
	})
}

// handleLogin verifies the submitted credentials and starts a session.
// Both unknown-username and wrong-password collapse to one generic
// message.
func (s *Service) handleLogin(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	ok, err := s.credentials.Verify(c.Request.Context(), username, password)
	if err != nil {
		s.logger.ErrorTag("AUTH", "credential check failed: %v", err)
		c.HTML(http.StatusInternalServerError, "500.html", gin.H{"Site": s.config.Site})
		return
	}

	if !ok {
		s.logger.WarnTag("AUTH", "failed login for %q from %s", username, c.ClientIP())
		events.PublishAsync(events.EventLoginFailed, events.AuthEventData{
			Username: username,
			RemoteIP: c.ClientIP(),
			Reason:   "invalid_credentials",
			At:       time.Now(),
		})
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Site":  s.config.Site,
			"Title": "Sign in",
			"Error": "Invalid username or password",
		})
		return
	}

	token, err := s.issuer.Issue(username)
	if err != nil {
		s.logger.ErrorTag("AUTH", "token issue failed: %v", err)
		c.HTML(http.StatusInternalServerError, "500.html", gin.H{"Site": s.config.Site})
		return
	}

	s.cookies.Issue(c.Writer, token)
	s.logger.InfoTag("AUTH", "admin %q logged in from %s", username, c.ClientIP())
	events.PublishAsync(events.EventLoginSucceeded, events.AuthEventData{
		Username: username,
		RemoteIP: c.ClientIP(),
		At:       time.Now(),
	})

	c.Redirect(http.StatusFound, "/admin")
}

// handleLogout clears the session cookie. The token itself simply ages
// out; nothing is stored server side.
func (s *Service) handleLogout(c *gin.Context) {
	s.cookies.Clear(c.Writer)
	c.Redirect(http.StatusFound, "/")
}
