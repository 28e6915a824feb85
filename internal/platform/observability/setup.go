// Package observability offers lightweight span and metric hooks that
// log through slog. It carries no exporter; spans and metrics land in
// the structured log where they can be scraped.
package observability

import (
	"context"
	"log/slog"
	"sync"
)

// Config captures observability toggles.
type Config struct {
	Enabled bool
}

// ShutdownFunc tears down any observability sinks.
type ShutdownFunc func(context.Context) error

var (
	hooksMu    sync.RWMutex
	hooksLog   *slog.Logger
	hooksState Config
)

func currentHooks() (*slog.Logger, Config) {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return hooksLog, hooksState
}

// Setup installs the instrumentation logger. When cfg.Enabled is false
// the hooks stay registered but emit nothing.
func Setup(ctx context.Context, cfg Config, logger *slog.Logger) (ShutdownFunc, error) {
	hooksMu.Lock()
	hooksLog = logger
	hooksState = cfg
	hooksMu.Unlock()

	if logger != nil {
		if cfg.Enabled {
			logger.InfoContext(ctx, "[OBS] instrumentation hooks enabled")
		} else {
			logger.InfoContext(ctx, "[OBS] instrumentation hooks disabled")
		}
	}
	return func(context.Context) error { return nil }, nil
}
