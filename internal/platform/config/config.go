package config

import (
	"time"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Site     SiteConfig     `yaml:"site"`
	Auth     AuthConfig     `yaml:"auth"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Log      LogConfig      `yaml:"log"`
	Web      WebConfig      `yaml:"web"`
}

type ServerConfig struct {
	Host  string `yaml:"host"`
	Port  int    `yaml:"port"`
	Debug bool   `yaml:"debug"`
}

// SiteConfig carries the owner-facing text rendered into every page.
type SiteConfig struct {
	Name        string `yaml:"name"`
	Tagline     string `yaml:"tagline"`
	Author      string `yaml:"author"`
	Email       string `yaml:"email"`
	GitHubURL   string `yaml:"github_url"`
	LinkedInURL string `yaml:"linkedin_url"`
	Company     string `yaml:"company"`
	CompanyURL  string `yaml:"company_url"`
}

type AuthConfig struct {
	Secret        string        `yaml:"secret"`
	TokenTTL      time.Duration `yaml:"token_ttl"`
	CookieName    string        `yaml:"cookie_name"`
	AdminUsername string        `yaml:"admin_username"`
	AdminPassword string        `yaml:"admin_password"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type CacheConfig struct {
	Driver string           `yaml:"driver"`
	TTL    time.Duration    `yaml:"ttl"`
	Redis  RedisCacheConfig `yaml:"redis,omitempty"`
}

type RedisCacheConfig struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
	Prefix   string `yaml:"prefix,omitempty"`
}

type LogConfig struct {
	Level string `yaml:"log_level"`
	Dir   string `yaml:"log_dir"`
	File  string `yaml:"log_file"`
}

type WebConfig struct {
	TemplateDir string `yaml:"template_dir"`
	StaticDir   string `yaml:"static_dir"`
}

// SecureCookies reports whether session cookies must carry the Secure flag.
// Debug deployments run over plain HTTP, everything else is assumed TLS.
func (c *Config) SecureCookies() bool {
	return !c.Server.Debug
}
