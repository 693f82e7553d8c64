package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" INFO ":  zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": defaultZapLevel,
	}
	for in, want := range cases {
		if got := toZapLevel(in); got != want {
			t.Fatalf("toZapLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewWritesFilteredLinesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "nimbus.log")
	log, err := New(path, WarnLevel)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Infow("hidden", "k", 1)
	log.Warnw("snapshot failed", "kind", "forecast")
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	text := string(data)
	if strings.Contains(text, "hidden") {
		t.Fatalf("info line written at warn level: %q", text)
	}
	if !strings.Contains(text, "\tWARN\tsnapshot failed") {
		t.Fatalf("log = %q, want a WARN line", text)
	}
	if !strings.Contains(text, `"kind": "forecast"`) {
		t.Fatalf("log = %q, want structured fields", text)
	}
	if log.Path() != path {
		t.Fatalf("Path = %q, want %q", log.Path(), path)
	}
}

func TestNewRejectsEmptyPath(t *testing.T) {
	if _, err := New("  ", InfoLevel); err == nil {
		t.Fatalf("New returned nil error for empty path")
	}
}

func TestNopIsSafe(t *testing.T) {
	log := Nop()
	log.Errorw("ignored")
	if log.Path() != "" {
		t.Fatalf("Nop Path = %q, want empty", log.Path())
	}
	if err := log.Close(); err != nil {
		t.Fatalf("Nop Close: %v", err)
	}
}
