package qlog

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLogger_FormatsAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(slog.LevelInfo, &buf)

	log.Info("render started", "pid", 42, "log", "/tmp/render_log.txt")

	got := buf.String()
	if !strings.Contains(got, "render started pid=42, log=/tmp/render_log.txt") {
		t.Errorf("unexpected output %q", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Error("expected trailing newline")
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(slog.LevelWarn, &buf)

	log.Debug("resolving")
	log.Info("resolved")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}

	log.Error("spawn failed")
	if !strings.HasPrefix(buf.String(), "❌ spawn failed") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestLogger_WithKeepsAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(slog.LevelDebug, &buf).With("job", "abc")

	log.Debug("building command", "mode", "external")

	if !strings.Contains(buf.String(), "building command job=abc, mode=external") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	log := Discard()
	if log.Enabled(context.Background(), slog.LevelError) {
		t.Error("discard logger should not be enabled for errors")
	}
}
