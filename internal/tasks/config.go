package tasks

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/mrlokans/library/internal/config"
)

// Config sizes the worker pool of the catalog's background queue.
type Config struct {
	Workers         int
	ReleaseAfter    time.Duration // stuck tasks go back to the queue after this
	CleanupInterval time.Duration // how often finished tasks are pruned
}

// DefaultConfig returns the queue settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Workers:         2,
		ReleaseAfter:    15 * time.Minute,
		CleanupInterval: time.Hour,
	}
}

// FromSettings overlays the environment-driven settings on DefaultConfig.
// Zero values keep the defaults.
func FromSettings(s config.Tasks) Config {
	cfg := DefaultConfig()
	if s.Workers > 0 {
		cfg.Workers = s.Workers
	}
	if s.ReleaseAfter > 0 {
		cfg.ReleaseAfter = s.ReleaseAfter
	}
	if s.CleanupInterval > 0 {
		cfg.CleanupInterval = s.CleanupInterval
	}
	return cfg
}

// DatabasePath returns the queue database that sits next to the catalog
// database: library.db -> library-tasks.db.
func DatabasePath(catalogPath string) string {
	ext := filepath.Ext(catalogPath)
	return strings.TrimSuffix(catalogPath, ext) + "-tasks" + ext
}
