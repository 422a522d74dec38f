// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataDir holds the generated lookup tables (colors.json, species.json).
	DataDir string `koanf:"data_dir"`

	// SpriteBaseURL is the root of the external sprite object store.
	SpriteBaseURL string `koanf:"sprite_base_url"`

	// SpriteTimeoutMS bounds each individual sprite fetch.
	SpriteTimeoutMS int `koanf:"sprite_timeout_ms"`

	// CacheTTLSeconds is the freshness window for cached responses.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// CacheCapacity bounds the number of cached responses.
	CacheCapacity int `koanf:"cache_capacity"`

	// TaskQueueSize bounds the background task queue.
	TaskQueueSize int `koanf:"task_queue_size"`

	// TaskWorkers sets the number of background task workers.
	TaskWorkers int `koanf:"task_workers"`

	// DefaultGame is the game variant assumed when a request names none.
	DefaultGame string `koanf:"default_game"`
}

// New creates a Config using defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use and currently
// unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9090",
		DataDir:         "data",
		SpriteBaseURL:   "https://sprites.broodsheet.dev",
		SpriteTimeoutMS: 5000,
		CacheTTLSeconds: 86400,
		CacheCapacity:   10000,
		TaskQueueSize:   1024,
		TaskWorkers:     4,
		DefaultGame:     "ASA",
	}
}
