package config

import "time"

// DefaultConfig returns the configuration used when no file or
// environment overrides are present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:  "0.0.0.0",
			Port:  8080,
			Debug: false,
		},
		Site: SiteConfig{
			Name:    "My Portfolio",
			Tagline: "Software engineer and occasional writer",
			Author:  "Site Owner",
		},
		Auth: AuthConfig{
			Secret:        "",
			TokenTTL:      time.Hour,
			CookieName:    "portfolio_session",
			AdminUsername: "admin",
			AdminPassword: "",
		},
		Database: DatabaseConfig{
			Path: "data/portfolio.db",
		},
		Cache: CacheConfig{
			Driver: "memory",
			TTL:    time.Hour,
			Redis: RedisCacheConfig{
				Addr:   "127.0.0.1:6379",
				Prefix: "portfolio:",
			},
		},
		Log: LogConfig{
			Level: "INFO",
			Dir:   "data/logs",
			File:  "server.log",
		},
		Web: WebConfig{
			TemplateDir: "web/templates",
			StaticDir:   "web/static",
		},
	}
}
