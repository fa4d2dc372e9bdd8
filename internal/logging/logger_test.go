package logging

import (
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		raw  string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, c := range cases {
		if got := parseLevel(c.raw); got != c.want {
			t.Fatalf("%q: expected %v, got %v", c.raw, c.want, got)
		}
	}
}

func TestNewLoggerNeverNil(t *testing.T) {
	if NewLogger(Config{}) == nil {
		t.Fatalf("expected logger from zero config")
	}
	if NewLogger(Config{Level: "debug", Format: "json", Service: "svc", Version: "1.0"}) == nil {
		t.Fatalf("expected logger from full config")
	}
}
