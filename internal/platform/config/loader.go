package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"portfolio-server-go/internal/platform/errors"
)

// Environment overrides use this prefix, e.g. PORTFOLIO_PORT=9000.
const envPrefix = "PORTFOLIO_"

// Secret substituted in debug mode so a bare `PORTFOLIO_DEBUG=1 go run`
// works without a .env file. Refused outside debug by validate.
const debugSecret = "dev-secret-key-change-in-production"

// Loader assembles the runtime configuration from defaults, an optional
// YAML file, and PORTFOLIO_* environment variables (highest priority).
type Loader struct {
	useDotEnv bool
	path      string
}

func NewLoader() *Loader {
	return &Loader{
		useDotEnv: true,
		path:      "config.yaml",
	}
}

// WithDotEnv toggles loading variables from a .env file before reading config.
func (l *Loader) WithDotEnv(enabled bool) *Loader {
	l.useDotEnv = enabled
	return l
}

// WithPath overrides the YAML file location (useful for tests).
func (l *Loader) WithPath(path string) *Loader {
	if path != "" {
		l.path = path
	}
	return l
}

// Result captures the loaded configuration and its origin path. Path is
// empty when no config file was found and defaults plus env were used.
type Result struct {
	Config *Config
	Path   string
}

func (l *Loader) Load() (*Result, error) {
	if l.useDotEnv {
		// Missing .env is fine, the process env is authoritative anyway.
		_ = godotenv.Load()
	}

	cfg := DefaultConfig()
	path := ""

	if data, err := os.ReadFile(l.path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(errors.KindConfig, "load", "invalid config file", err)
		}
		path = l.path
	}

	l.applyEnv(cfg)

	if cfg.Server.Debug && cfg.Auth.Secret == "" {
		cfg.Auth.Secret = debugSecret
	}

	if err := l.validate(cfg); err != nil {
		return nil, err
	}

	return &Result{Config: cfg, Path: path}, nil
}

func (l *Loader) applyEnv(cfg *Config) {
	envString("HOST", &cfg.Server.Host)
	envInt("PORT", &cfg.Server.Port)
	envBool("DEBUG", &cfg.Server.Debug)

	envString("SECRET", &cfg.Auth.Secret)
	envDuration("TOKEN_TTL", &cfg.Auth.TokenTTL)
	envString("COOKIE_NAME", &cfg.Auth.CookieName)
	envString("ADMIN_USERNAME", &cfg.Auth.AdminUsername)
	envString("ADMIN_PASSWORD", &cfg.Auth.AdminPassword)

	envString("DB_PATH", &cfg.Database.Path)

	envString("CACHE_DRIVER", &cfg.Cache.Driver)
	envDuration("CACHE_TTL", &cfg.Cache.TTL)
	envString("REDIS_ADDR", &cfg.Cache.Redis.Addr)
	envString("REDIS_USERNAME", &cfg.Cache.Redis.Username)
	envString("REDIS_PASSWORD", &cfg.Cache.Redis.Password)
	envInt("REDIS_DB", &cfg.Cache.Redis.DB)

	envString("LOG_LEVEL", &cfg.Log.Level)
	envString("LOG_DIR", &cfg.Log.Dir)
	envString("LOG_FILE", &cfg.Log.File)

	envString("SITE_NAME", &cfg.Site.Name)
	envString("SITE_TAGLINE", &cfg.Site.Tagline)
	envString("SITE_AUTHOR", &cfg.Site.Author)
	envString("SITE_EMAIL", &cfg.Site.Email)
	envString("SITE_GITHUB_URL", &cfg.Site.GitHubURL)
	envString("SITE_LINKEDIN_URL", &cfg.Site.LinkedInURL)
	envString("SITE_COMPANY", &cfg.Site.Company)
	envString("SITE_COMPANY_URL", &cfg.Site.CompanyURL)

	envString("TEMPLATE_DIR", &cfg.Web.TemplateDir)
	envString("STATIC_DIR", &cfg.Web.StaticDir)
}

func (l *Loader) validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return errors.New(errors.KindConfig, "validate",
			fmt.Sprintf("server port %d out of range", cfg.Server.Port))
	}
	if cfg.Auth.Secret == "" {
		return errors.New(errors.KindConfig, "validate",
			"auth secret is required outside debug mode (set PORTFOLIO_SECRET)")
	}
	if cfg.Auth.TokenTTL <= 0 {
		return errors.New(errors.KindConfig, "validate", "token ttl must be positive")
	}
	if cfg.Auth.CookieName == "" {
		return errors.New(errors.KindConfig, "validate", "session cookie name is required")
	}
	if cfg.Auth.AdminUsername == "" {
		return errors.New(errors.KindConfig, "validate", "admin username is required")
	}
	switch cfg.Cache.Driver {
	case "", "memory", "redis":
	default:
		return errors.New(errors.KindConfig, "validate",
			fmt.Sprintf("unknown cache driver %q", cfg.Cache.Driver))
	}
	return nil
}

func envString(key string, target *string) {
	if v, ok := os.LookupEnv(envPrefix + key); ok {
		*target = v
	}
}

func envInt(key string, target *int) {
	if v, ok := os.LookupEnv(envPrefix + key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*target = n
		}
	}
}

func envBool(key string, target *bool) {
	if v, ok := os.LookupEnv(envPrefix + key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*target = b
		}
	}
}

// envDuration accepts Go duration strings ("30m") and falls back to
// treating a bare integer as minutes, matching the historical
// ACCESS_TOKEN_EXPIRE_MINUTES knob.
func envDuration(key string, target *time.Duration) {
	v, ok := os.LookupEnv(envPrefix + key)
	if !ok {
		return
	}
	if d, err := time.ParseDuration(v); err == nil {
		*target = d
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*target = time.Duration(n) * time.Minute
	}
}
