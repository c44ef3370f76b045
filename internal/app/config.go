package app

import (
	"errors"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ManifestPath points at the directory of .hcl node kind manifests.
	// Empty means only compiled-in kinds are available.
	ManifestPath string
	// CanvasURL is an optional socket.io endpoint for the visual bridge.
	// Empty keeps visual writes on the logging renderer.
	CanvasURL string

	LogFormat string
	LogLevel  string

	// FrameInterval is the batching granularity of the consistency layer.
	FrameInterval time.Duration
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.FrameInterval < 0 {
		return nil, errors.New("FrameInterval must not be negative")
	}
	return &cfg, nil
}
