// Package logging wires decred/slog the way the teacher repo does: one
// shared backend, one Logger per subsystem ("TABLE", "GAME", "SERVER", ...).
package logging

import (
	"io"
	"os"

	"github.com/decred/slog"
)

// Config controls backend construction.
type Config struct {
	DebugLevel string    // trace, debug, info, warn, error, critical, off
	Writer     io.Writer // defaults to os.Stdout
}

// Backend hands out per-subsystem loggers sharing one sink and level.
type Backend struct {
	backend *slog.Backend
	level   slog.Level
}

// NewBackend constructs a Backend from cfg.
func NewBackend(cfg Config) (*Backend, error) {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}

	level := slog.LevelInfo
	if cfg.DebugLevel != "" {
		if lvl, ok := slog.LevelFromString(cfg.DebugLevel); ok {
			level = lvl
		}
	}

	return &Backend{
		backend: slog.NewBackend(w),
		level:   level,
	}, nil
}

// Logger returns the named subsystem's logger, leveled per the backend's
// configured DebugLevel.
func (b *Backend) Logger(subsystem string) slog.Logger {
	l := b.backend.Logger(subsystem)
	l.SetLevel(b.level)
	return l
}
