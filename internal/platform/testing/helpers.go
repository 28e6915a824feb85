// Package testing carries shared fixtures for package tests.
package testing

import (
	"path/filepath"
	"testing"
	"time"

	"portfolio-server-go/internal/platform/config"
	"portfolio-server-go/internal/platform/logging"
)

// SetupTestConfig returns a debug-mode config with every path rooted
// under the test's temp dir.
func SetupTestConfig(t *testing.T) *config.Config {
	t.Helper()

	tmp := t.TempDir()
	return &config.Config{
		Server: config.ServerConfig{
			Host:  "127.0.0.1",
			Port:  8080,
			Debug: true,
		},
		Site: config.SiteConfig{
			Name:    "Test Portfolio",
			Tagline: "Things I build",
			Author:  "Test Author",
		},
		Auth: config.AuthConfig{
			Secret:        "test-secret",
			TokenTTL:      15 * time.Minute,
			CookieName:    "portfolio_session",
			AdminUsername: "admin",
			AdminPassword: "test-password",
		},
		Database: config.DatabaseConfig{
			Path: filepath.Join(tmp, "portfolio.db"),
		},
		Cache: config.CacheConfig{
			Driver: "memory",
			TTL:    time.Minute,
		},
		Log: config.LogConfig{
			Level: "debug",
			Dir:   filepath.Join(tmp, "logs"),
			File:  "test.log",
		},
		Web: config.WebConfig{
			TemplateDir: filepath.Join(tmp, "templates"),
			StaticDir:   filepath.Join(tmp, "static"),
		},
	}
}

// SetupTestLogger builds a debug logger writing under the test's temp
// dir and closes it when the test finishes.
func SetupTestLogger(t *testing.T) *logging.Logger {
	t.Helper()

	logger, err := logging.New(logging.Config{
		Level: "debug",
		Dir:   t.TempDir(),
		File:  "test.log",
	})
	if err != nil {
		t.Fatalf("failed to create test logger: %v", err)
	}
	t.Cleanup(func() { logger.Close() })

	return logger
}

func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error but got nil")
	}
}

func AssertEqual(t *testing.T, expected, actual interface{}) {
	t.Helper()
	if expected != actual {
		t.Fatalf("expected %v, got %v", expected, actual)
	}
}
