package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/odvcencio/furry-hints/config"
)

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)
	logger.Info("hidden")
	logger.Warn("label capacity exceeded", "unlabeled", 3)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record should be filtered: %q", out)
	}
	if !strings.Contains(out, "unlabeled=3") {
		t.Fatalf("expected key/value attributes, got %q", out)
	}
}

func TestOpen_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "hints.log")
	logger, closeFn, err := Open(config.LogConfig{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	logger.Debug("scan", "count", 4)
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "count=4") {
		t.Fatalf("expected record in file, got %q", data)
	}
}

func TestOpen_NoFileDiscards(t *testing.T) {
	logger, closeFn, err := Open(config.LogConfig{Level: "info"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if logger == nil || closeFn == nil {
		t.Fatalf("expected logger and close func")
	}
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestOpen_BadLevel(t *testing.T) {
	if _, closeFn, err := Open(config.LogConfig{Level: "loud"}); err == nil || closeFn == nil {
		t.Fatalf("expected level error and a non-nil close func")
	}
}
