package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir which requires Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoad_MissingStudioURLIsConfigError(t *testing.T) {
	t.Setenv(EnvStudioURL, "")
	chdir(t, t.TempDir())

	_, err := Load("")
	if err == nil {
		t.Fatalf("expected config error")
	}
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
}

func TestLoad_DefaultsApply(t *testing.T) {
	t.Setenv(EnvStudioURL, "https://studio.example.com")
	t.Setenv(EnvVideosDir, "")
	chdir(t, t.TempDir())

	s, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s.VideosDir != DefaultVideosDir {
		t.Fatalf("expected default videos dir, got %q", s.VideosDir)
	}
	if s.StageTimeoutSeconds != DefaultStageTimeoutSeconds {
		t.Fatalf("expected default stage timeout, got %d", s.StageTimeoutSeconds)
	}
	if s.DebuggerURL != DefaultDebuggerURL {
		t.Fatalf("expected default debugger URL, got %q", s.DebuggerURL)
	}
}

func TestLoad_SettingsFileAndEnvOverride(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)
	t.Setenv(EnvStudioURL, "https://studio.example.com")
	t.Setenv(EnvVideosDir, "incoming")

	settings := `videos_dir: clips
retry_attempts: 5
stage_timeout_seconds: 7
color_mode: never
description_template: "Hello KEYWORD"
`
	path := filepath.Join(tmp, "uploader.yaml")
	if err := os.WriteFile(path, []byte(settings), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s.VideosDir != "incoming" {
		t.Fatalf("env must override settings file, got %q", s.VideosDir)
	}
	if s.RetryAttempts != 5 || s.StageTimeoutSeconds != 7 {
		t.Fatalf("settings file not applied: %+v", s)
	}
	if s.ColorMode != "never" {
		t.Fatalf("expected color mode never, got %q", s.ColorMode)
	}
	if s.DescriptionTemplate != "Hello KEYWORD" {
		t.Fatalf("unexpected template: %q", s.DescriptionTemplate)
	}
}

func TestLoad_MalformedSettingsFileIsConfigError(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)
	t.Setenv(EnvStudioURL, "https://studio.example.com")

	path := filepath.Join(tmp, "uploader.yaml")
	if err := os.WriteFile(path, []byte("videos_dir: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ConfigError, got %v", err)
	}
}

func TestLoad_DotEnvSuppliesStudioURL(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)
	t.Setenv(EnvStudioURL, "")
	os.Unsetenv(EnvStudioURL)

	if err := SaveEnv(filepath.Join(tmp, ".env"), "https://studio.example.com/channel"); err != nil {
		t.Fatal(err)
	}

	s, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s.StudioURL != "https://studio.example.com/channel" {
		t.Fatalf("expected studio URL from .env, got %q", s.StudioURL)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)
	t.Setenv(EnvStudioURL, "https://studio.example.com")
	t.Setenv(EnvVideosDir, "")

	in := defaultSettings()
	in.VideosDir = "clips"
	in.RetryAttempts = 9
	path := filepath.Join(tmp, "uploader.yaml")
	if err := Save(path, in); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), "studio") {
		t.Fatalf("studio URL must not be persisted: %s", raw)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s.VideosDir != "clips" || s.RetryAttempts != 9 {
		t.Fatalf("round trip lost fields: %+v", s)
	}
}
