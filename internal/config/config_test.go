package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"karaokesync/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLogDir := filepath.Join(tempHome, ".local", "share", "karaokesync", "logs")
	if cfg.Paths.LogDir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogDir)
	}
	if cfg.Karaoke.DisplayMode != "word" {
		t.Fatalf("expected word display mode by default, got %q", cfg.Karaoke.DisplayMode)
	}
	if cfg.Karaoke.HighlightStyle != "preserve" {
		t.Fatalf("expected preserve highlight style by default, got %q", cfg.Karaoke.HighlightStyle)
	}
	if cfg.Karaoke.HighlightColor != "#00ff00" {
		t.Fatalf("unexpected default highlight color %q", cfg.Karaoke.HighlightColor)
	}
	if !cfg.History.Enabled {
		t.Fatal("expected history enabled by default")
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "karaokesync.toml")

	type payload struct {
		Karaoke struct {
			DisplayMode    string `toml:"display_mode"`
			HighlightStyle string `toml:"highlight_style"`
			Workers        int    `toml:"workers"`
		} `toml:"karaoke"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Karaoke.DisplayMode = "Line-Plus-Next"
	custom.Karaoke.HighlightStyle = "LINE_ALL"
	custom.Karaoke.Workers = 3
	custom.Logging.Format = "JSON"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Karaoke.DisplayMode != "line_plus_next" {
		t.Fatalf("expected canonical display mode, got %q", cfg.Karaoke.DisplayMode)
	}
	if cfg.Karaoke.HighlightStyle != "line_all" {
		t.Fatalf("expected canonical highlight style, got %q", cfg.Karaoke.HighlightStyle)
	}
	if cfg.Karaoke.Workers != 3 {
		t.Fatalf("expected 3 workers, got %d", cfg.Karaoke.Workers)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected json log format, got %q", cfg.Logging.Format)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "karaokesync.toml")
	if err := os.WriteFile(configPath, []byte("[karaoke]\ndisplay = \"line\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "karaokesync.toml")
	if err := os.WriteFile(configPath, []byte("[karaoke]\ndisplay_mode = \"word\"\nhighlight_style = \"preserve\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("KARAOKESYNC_DISPLAY_MODE", "line")
	t.Setenv("KARAOKESYNC_HIGHLIGHT_STYLE", "none")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Karaoke.DisplayMode != "line" {
		t.Errorf("expected display mode from env, got %q", cfg.Karaoke.DisplayMode)
	}
	if cfg.Karaoke.HighlightStyle != "none" {
		t.Errorf("expected highlight style from env, got %q", cfg.Karaoke.HighlightStyle)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "display_mode") {
		t.Fatalf("sample config missing display_mode: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Karaoke.HighlightColor != "#00ff00" {
		t.Fatalf("expected sample highlight color, got %q", cfg.Karaoke.HighlightColor)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.Karaoke.DisplayMode = "karaoke"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown display mode")
	}

	cfg = config.Default()
	cfg.Karaoke.HighlightStyle = "rainbow"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown highlight style")
	}

	cfg = config.Default()
	cfg.Karaoke.HighlightColor = "green"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-hex color")
	}

	cfg = config.Default()
	cfg.Karaoke.Workers = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative workers")
	}

	cfg = config.Default()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported log format")
	}

	cfg = config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}
