package adapter

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfig_DemoLectures(t *testing.T) {
	cfg := DefaultConfig()
	lectures := cfg.LectureList()
	if len(lectures) != 2 {
		t.Fatalf("expected 2 demo lectures, got %d", len(lectures))
	}
	if lectures[0].ID != "intro-to-react" || !lectures[0].HasDuration() {
		t.Fatalf("unexpected first lecture: %+v", lectures[0])
	}
	if cfg.Tracking.MinUpdateSeconds != 1 {
		t.Fatalf("expected 1s minimum update, got %g", cfg.Tracking.MinUpdateSeconds)
	}
}

func TestLoadConfigFile_OverridesAndReplacesCatalog(t *testing.T) {
	path := writeConfig(t, `
storage:
  driver: sqlite
  path: /tmp/lectures-test
tracking:
  min_update_seconds: 2.5
lectures:
  - id: algebra-1
    title: Linear Algebra 1
    duration: 3600
  - title: missing id is skipped
`)

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Driver != "sqlite" || cfg.Storage.Path != "/tmp/lectures-test" {
		t.Fatalf("unexpected storage config: %+v", cfg.Storage)
	}
	if cfg.Tracking.MinUpdateSeconds != 2.5 {
		t.Fatalf("expected 2.5, got %g", cfg.Tracking.MinUpdateSeconds)
	}
	// Unset keys keep their defaults
	if cfg.Tracking.SeekStepSeconds != 10 || cfg.Tracking.TickMillis != 250 {
		t.Fatalf("expected default seek/tick, got %+v", cfg.Tracking)
	}

	lectures := cfg.LectureList()
	if len(lectures) != 1 {
		t.Fatalf("expected configured catalog to replace defaults, got %+v", lectures)
	}
	if lectures[0].ID != "algebra-1" || lectures[0].Duration != 3600 {
		t.Fatalf("unexpected lecture: %+v", lectures[0])
	}
}

func TestLoadConfigFile_EnvOverride(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: debug\n")
	t.Setenv("LECTURES_LOGGING_LEVEL", "error")
	t.Setenv("LECTURES_STORAGE_DRIVER", "sqlite")

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Logging.Level != "error" {
		t.Fatalf("expected env to win, got %q", cfg.Logging.Level)
	}
	if cfg.Storage.Driver != "sqlite" {
		t.Fatalf("expected env driver, got %q", cfg.Storage.Driver)
	}
}

func TestLoadConfigFile_Invalid(t *testing.T) {
	path := writeConfig(t, "storage: [unterminated\n")
	if _, err := LoadConfigFile(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestClearStorage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := ClearStorage(&StorageConfig{Path: dir}); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("expected data dir removed, stat err = %v", err)
	}
	if err := ClearStorage(&StorageConfig{}); err != nil {
		t.Fatalf("memory storage clear should be a no-op, got %v", err)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"Error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn")
	logger.Info("hidden")
	logger.Warn("shown", "videoID", "intro-to-react")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered: %s", out)
	}
	if !strings.Contains(out, `"videoID":"intro-to-react"`) {
		t.Fatalf("expected structured attribute in output: %s", out)
	}
}

func TestSetupLogger_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "lectures.log")
	logger, err := SetupLogger(&LoggingConfig{File: path, Level: "info"})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	logger.Info("hello")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("expected log line, got %q", data)
	}
}
