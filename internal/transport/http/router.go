package httptransport

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portfolio-server-go/internal/domain/markdown"
	"portfolio-server-go/internal/platform/config"
	"portfolio-server-go/internal/platform/logging"
	"portfolio-server-go/internal/platform/observability"
)

// Options configures the HTTP router builder.
type Options struct {
	Config *config.Config
	Logger *logging.Logger

	// TemplateDir and StaticDir override the config paths when set.
	// Tests point them at fixture directories.
	TemplateDir string
	StaticDir   string
}

// Router bundles together the gin engine and common route groups.
type Router struct {
	Engine *gin.Engine
	Root   *gin.RouterGroup
	API    *gin.RouterGroup
}

// Build constructs a gin engine pre-configured with recovery, request
// logging, CORS, static assets, and the HTML template set.
func Build(opts Options) (*Router, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("http router requires config")
	}
	logger := opts.Logger

	if opts.Config.Server.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.CustomRecovery(recoveryHandler(opts.Config, logger)))
	engine.Use(loggingMiddleware(logger))

	engine.SetTrustedProxies([]string{"0.0.0.0"})

	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	templateDir := opts.TemplateDir
	if templateDir == "" {
		templateDir = opts.Config.Web.TemplateDir
	}
	engine.SetFuncMap(templateFuncs())
	pattern := filepath.Join(templateDir, "*.html")
	if matches, err := filepath.Glob(pattern); err == nil && len(matches) > 0 {
		engine.LoadHTMLGlob(pattern)
	} else if logger != nil {
		logger.WarnTag("HTTP", "no templates found under %s", templateDir)
	}

	staticDir := opts.StaticDir
	if staticDir == "" {
		staticDir = opts.Config.Web.StaticDir
	}
	engine.Use(static.Serve("/static", static.LocalFile(staticDir, false)))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	site := opts.Config.Site
	engine.NoRoute(func(c *gin.Context) {
		if isAPIRequest(c) {
			RespondError(c, http.StatusNotFound, "not found", nil)
			return
		}
		c.HTML(http.StatusNotFound, "404.html", gin.H{"Site": site})
	})

	return &Router{
		Engine: engine,
		Root:   engine.Group(""),
		API:    engine.Group("/api"),
	}, nil
}

func isAPIRequest(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}

func recoveryHandler(cfg *config.Config, logger *logging.Logger) gin.RecoveryFunc {
	site := cfg.Site
	return func(c *gin.Context, recovered interface{}) {
		if logger != nil {
			logger.ErrorTag("HTTP", "panic recovered on %s %s: %v",
				c.Request.Method, c.Request.URL.Path, recovered)
		}
		if isAPIRequest(c) {
			RespondError(c, http.StatusInternalServerError, "internal server error", nil)
			c.Abort()
			return
		}
		c.HTML(http.StatusInternalServerError, "500.html", gin.H{"Site": site})
		c.Abort()
	}
}

func loggingMiddleware(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Writer.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()

		if logger != nil {
			logger.Info(
				"[HTTP] %s %s -> %d (%s) rid=%s",
				c.Request.Method,
				c.Request.URL.Path,
				status,
				duration,
				requestID[:8],
			)
		}

		observability.RecordMetric(c.Request.Context(), "http_request_duration_ms",
			float64(duration.Milliseconds()), map[string]string{
				"method": c.Request.Method,
				"path":   c.FullPath(),
				"status": strconv.Itoa(status),
			})
	}
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"markdown":    markdown.Render,
		"excerpt":     markdown.Excerpt,
		"readingTime": markdown.ReadingTime,
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
	}
}
