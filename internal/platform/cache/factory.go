package cache

import (
	"fmt"
)

// Driver identifiers supported by the render cache.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// New creates a render cache based on the provided configuration.
func New(cfg Config) (Cache, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverMemory
	}

	switch driver {
	case DriverMemory:
		return NewMemory(cfg), nil
	case DriverRedis:
		return NewRedis(cfg)
	default:
		return nil, fmt.Errorf("unsupported cache driver: %s", driver)
	}
}
