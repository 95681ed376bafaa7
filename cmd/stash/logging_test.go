package main

import (
	"log/slog"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		raw     string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"-4", slog.LevelDebug, false},
		{"8", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tc := range cases {
		got, err := parseLogLevel(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseLogLevel(%q): expected error", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseLogLevel(%q): %v", tc.raw, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestSelectedLogLevel(t *testing.T) {
	cases := []struct {
		flag, env, config string
		wantLevel         string
		wantSource        string
	}{
		{"debug", "warn", "error", "debug", "flag"},
		{"", "warn", "error", "warn", "env"},
		{"", "", "error", "error", "config"},
		{"", "", "", "", "default"},
		{"  ", "", "info", "info", "config"},
	}
	for _, tc := range cases {
		level, source := selectedLogLevel(tc.flag, tc.env, tc.config)
		if level != tc.wantLevel || source != tc.wantSource {
			t.Errorf("selectedLogLevel(%q, %q, %q) = (%q, %q), want (%q, %q)",
				tc.flag, tc.env, tc.config, level, source, tc.wantLevel, tc.wantSource)
		}
	}
}
