package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/nerrad567/homegate/internal/infrastructure/config"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("line %q is not JSON: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestNew_DefaultFields(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(config.LoggingConfig{Level: "info", Format: "json"}, "1.2.3", &buf)

	log.Info("reading stored", "room", "salon")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	entry := lines[0]
	if entry["service"] != ServiceName || entry["version"] != "1.2.3" {
		t.Errorf("default fields = %v", entry)
	}
	if entry["msg"] != "reading stored" || entry["room"] != "salon" {
		t.Errorf("entry = %v", entry)
	}
}

func TestNew_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(config.LoggingConfig{Level: "warn", Format: "json"}, "dev", &buf)

	log.Info("dropped")
	log.Warn("kept")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 || lines[0]["msg"] != "kept" {
		t.Errorf("lines = %v, want only the warning", lines)
	}
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(config.LoggingConfig{Level: "debug", Format: "TEXT"}, "dev", &buf)

	log.Debug("mqtt message", "topic", "homegate/sensors/salon/gas")

	out := buf.String()
	if !strings.Contains(out, "msg=\"mqtt message\"") || !strings.Contains(out, "service=homegate") {
		t.Errorf("text output = %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLogger_Component(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(config.LoggingConfig{Format: "json"}, "dev", &buf)

	child := log.Component("sensor")
	if child == log {
		t.Fatal("Component() returned the parent logger")
	}
	child.Info("gas alert sent")
	log.Info("parent entry")

	lines := decodeLines(t, &buf)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0]["component"] != "sensor" {
		t.Errorf("child entry = %v", lines[0])
	}
	if _, ok := lines[1]["component"]; ok {
		t.Errorf("parent entry carries component: %v", lines[1])
	}
}

func TestOutputFor(t *testing.T) {
	for _, output := range []string{"stdout", "stderr", "discard", ""} {
		if outputFor(output) == nil {
			t.Errorf("outputFor(%q) = nil", output)
		}
	}
}

func TestDiscard(t *testing.T) {
	log := Discard()
	log.Error("never printed")
	if log.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Discard() logger enables debug")
	}
}
