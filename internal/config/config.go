// Package config loads runtime settings: the required studio URL from the
// process environment (optionally via .env) and tunables from an optional
// uploader.yaml settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read at startup.
const (
	EnvStudioURL = "STUDIO_URL"
	EnvVideosDir = "VIDEOS_DIR"
)

// DefaultSettingsPath is where the optional settings file is looked up.
const DefaultSettingsPath = "uploader.yaml"

// Defaults applied when a field is absent from environment and settings file.
const (
	DefaultVideosDir                = "videos"
	DefaultDebuggerURL              = "http://127.0.0.1:9222"
	DefaultStageTimeoutSeconds      = 20
	DefaultProcessingTimeoutSeconds = 300
	DefaultRetryAttempts            = 3
	DefaultRetryDelayMillis         = 500
	DefaultColorMode                = "auto"
)

// ConfigError is a fatal startup misconfiguration: the process must not
// start a batch with it unresolved.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration: %s: %v", e.Reason, e.Err)
	}
	return "configuration: " + e.Reason
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Settings holds everything tunable about a run. StudioURL comes from the
// environment only; the rest may come from uploader.yaml with env overrides
// where noted.
type Settings struct {
	StudioURL string `yaml:"-" json:"studio_url"`

	VideosDir                string `yaml:"videos_dir" json:"videos_dir"`
	DebuggerURL              string `yaml:"debugger_url" json:"debugger_url"`
	ChromePath               string `yaml:"chrome_path,omitempty" json:"chrome_path,omitempty"`
	LaunchChrome             bool   `yaml:"launch_chrome" json:"launch_chrome"`
	StageTimeoutSeconds      int    `yaml:"stage_timeout_seconds" json:"stage_timeout_seconds"`
	ProcessingTimeoutSeconds int    `yaml:"processing_timeout_seconds" json:"processing_timeout_seconds"`
	RetryAttempts            int    `yaml:"retry_attempts" json:"retry_attempts"`
	RetryDelayMillis         int    `yaml:"retry_delay_ms" json:"retry_delay_ms"`
	DescriptionTemplate      string `yaml:"description_template,omitempty" json:"description_template,omitempty"`
	ColorMode                string `yaml:"color_mode" json:"color_mode"`
	LogFile                  string `yaml:"log_file,omitempty" json:"log_file,omitempty"`
}

func defaultSettings() Settings {
	return Settings{
		VideosDir:                DefaultVideosDir,
		DebuggerURL:              DefaultDebuggerURL,
		StageTimeoutSeconds:      DefaultStageTimeoutSeconds,
		ProcessingTimeoutSeconds: DefaultProcessingTimeoutSeconds,
		RetryAttempts:            DefaultRetryAttempts,
		RetryDelayMillis:         DefaultRetryDelayMillis,
		ColorMode:                DefaultColorMode,
	}
}

// ReadFile loads the optional settings file on top of the defaults, without
// consulting the environment. Commands that never talk to the studio (scan,
// doctor) use it directly since they work without STUDIO_URL.
func ReadFile(settingsPath string) (Settings, error) {
	s := defaultSettings()

	path := strings.TrimSpace(settingsPath)
	if path == "" {
		path = DefaultSettingsPath
	}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &s); err != nil {
			return Settings{}, &ConfigError{Reason: "parse " + path, Err: err}
		}
	case errors.Is(err, fs.ErrNotExist):
		// optional file
	default:
		return Settings{}, &ConfigError{Reason: "read " + path, Err: err}
	}
	return normalize(s), nil
}

// Load assembles settings from defaults, the optional settings file, and the
// environment. A missing settings file is fine; a missing STUDIO_URL is a
// ConfigError and must abort before any discovery or browser work starts.
func Load(settingsPath string) (Settings, error) {
	// .env is a convenience for local setups; absence is not an error.
	_ = godotenv.Load()

	s, err := ReadFile(settingsPath)
	if err != nil {
		return Settings{}, err
	}

	s.StudioURL = strings.TrimSpace(os.Getenv(EnvStudioURL))
	if v := strings.TrimSpace(os.Getenv(EnvVideosDir)); v != "" {
		s.VideosDir = v
	}

	s = normalize(s)
	if s.StudioURL == "" {
		return Settings{}, &ConfigError{Reason: EnvStudioURL + " environment variable is required"}
	}
	return s, nil
}

func normalize(s Settings) Settings {
	if strings.TrimSpace(s.VideosDir) == "" {
		s.VideosDir = DefaultVideosDir
	}
	if strings.TrimSpace(s.DebuggerURL) == "" {
		s.DebuggerURL = DefaultDebuggerURL
	}
	if s.StageTimeoutSeconds <= 0 {
		s.StageTimeoutSeconds = DefaultStageTimeoutSeconds
	}
	if s.ProcessingTimeoutSeconds <= 0 {
		s.ProcessingTimeoutSeconds = DefaultProcessingTimeoutSeconds
	}
	if s.RetryAttempts <= 0 {
		s.RetryAttempts = DefaultRetryAttempts
	}
	if s.RetryDelayMillis <= 0 {
		s.RetryDelayMillis = DefaultRetryDelayMillis
	}
	switch strings.ToLower(strings.TrimSpace(s.ColorMode)) {
	case "always":
		s.ColorMode = "always"
	case "never":
		s.ColorMode = "never"
	default:
		s.ColorMode = DefaultColorMode
	}
	return s
}

// Save writes the settings file. StudioURL is excluded on purpose: it lives
// in the environment, not on disk next to the videos.
func Save(path string, s Settings) error {
	out, err := yaml.Marshal(normalize(s))
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}

// SaveEnv writes a .env file holding the studio URL.
func SaveEnv(path, studioURL string) error {
	line := fmt.Sprintf("%s=%s\n", EnvStudioURL, strings.TrimSpace(studioURL))
	return os.WriteFile(path, []byte(line), 0o600)
}
