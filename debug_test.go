package artistloader

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" DEBUG ", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogger_LevelAndComponent(t *testing.T) {
	old := logger()
	t.Cleanup(func() {
		SetLogger(old)
		SetLogLevel(slog.LevelInfo)
	})

	var buf bytes.Buffer
	SetLogger(NewLogger(&buf, slog.LevelWarn))
	logger().Info("hidden")
	logger().Warn("shown")
	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(buf.String(), "component=artistloader") {
		t.Errorf("output lacks component: %q", buf.String())
	}

	SetLogLevel(slog.LevelDebug)
	if !logger().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("SetLogLevel did not lower the level")
	}
}

func TestSetLogger_Nil(t *testing.T) {
	old := logger()
	t.Cleanup(func() { SetLogger(old) })

	SetLogger(nil)
	if logger() == nil {
		t.Fatal("nil logger stored")
	}
	logger().Error("discarded")
}

func TestScene_DebugLog(t *testing.T) {
	old := logger()
	t.Cleanup(func() {
		SetLogger(old)
		SetLogLevel(slog.LevelInfo)
	})
	var buf bytes.Buffer
	SetLogger(NewLogger(&buf, slog.LevelInfo))

	s := newTestScene(t)
	s.debugLog(frameStats{nodes: 1})
	if buf.Len() != 0 {
		t.Errorf("stats logged outside debug mode: %q", buf.String())
	}
	s.SetDebugMode(true)
	s.debugLog(frameStats{nodes: 2, widgets: 7})
	if out := buf.String(); !strings.Contains(out, "nodes=2") || !strings.Contains(out, "widgets=7") {
		t.Errorf("debug output = %q", out)
	}
}
