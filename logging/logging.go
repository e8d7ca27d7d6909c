// Package logging builds the slog logger shared by every component. The
// terminal belongs to the UI, so records go to a file or nowhere.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/odvcencio/furry-hints/config"
)

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// New returns a text logger writing to w at level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	if w == nil {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Open builds a logger from cfg. An empty file yields a discard logger. The
// returned close func is never nil.
func Open(cfg config.LogConfig) (*slog.Logger, func() error, error) {
	noop := func() error { return nil }
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, noop, err
	}
	if cfg.File == "" {
		return Discard(), noop, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, noop, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, noop, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level), f.Close, nil
}
