package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/henri123lemoine/aligns/internal/view"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Page.Title != "ALIGNs: Psychometric Analysis" {
		t.Errorf("Expected default title, got %q", cfg.Page.Title)
	}

	if cfg.Page.Layout != "wide" {
		t.Errorf("Expected layout 'wide', got %q", cfg.Page.Layout)
	}

	if cfg.NavigationMode() != view.ModeUnified {
		t.Errorf("Expected unified navigation, got %q", cfg.NavigationMode())
	}

	if cfg.StartView() != view.Home {
		t.Errorf("Expected start view Home, got %v", cfg.StartView())
	}

	if !cfg.UI.ShowHelp {
		t.Error("Expected ShowHelp to be true")
	}

	if cfg.SessionIdle() != 30*time.Minute {
		t.Errorf("Expected session idle 30m, got %v", cfg.SessionIdle())
	}

	if warnings := cfg.Validate(); len(warnings) != 0 {
		t.Errorf("Expected no warnings for default config, got %v", warnings)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantWarning bool
	}{
		{"default config is valid", func(*Config) {}, false},
		{"invalid layout", func(c *Config) { c.Page.Layout = "narrow" }, true},
		{"invalid navigation mode", func(c *Config) { c.Navigation.Mode = "both" }, true},
		{"split mode is valid", func(c *Config) { c.Navigation.Mode = "split" }, false},
		{"unknown default view", func(c *Config) { c.Navigation.DefaultView = "settings" }, true},
		{"display name default view", func(c *Config) { c.Navigation.DefaultView = "Explore Factor" }, false},
		{"invalid theme", func(c *Config) { c.UI.Theme = "neon" }, true},
		{"bar width too small", func(c *Config) { c.UI.BarWidth = 2 }, true},
		{"sidebar too narrow", func(c *Config) { c.UI.SidebarWidth = 4 }, true},
		{"empty server addr", func(c *Config) { c.Server.Addr = "" }, true},
		{"session idle not a duration", func(c *Config) { c.Server.SessionIdle = "soon" }, true},
		{"negative session idle", func(c *Config) { c.Server.SessionIdle = "-5m" }, true},
		{"session idle disabled", func(c *Config) { c.Server.SessionIdle = "0" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			warnings := cfg.Validate()
			hasWarning := len(warnings) > 0
			if hasWarning != tt.wantWarning {
				t.Errorf("Validate() warnings = %v, wantWarning %v", warnings, tt.wantWarning)
			}
		})
	}
}

func TestSessionIdle(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"30m", 30 * time.Minute},
		{"90s", 90 * time.Second},
		{"0", 0},
		{"", defaultSessionIdle},
		{"soon", defaultSessionIdle},
		{"-1h", defaultSessionIdle},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Server.SessionIdle = tt.value
		if got := cfg.SessionIdle(); got != tt.want {
			t.Errorf("SessionIdle() with %q = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestLoadPreservesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	tomlContent := `[navigation]
mode = "split"
default_view = "explore"

[ui]
theme = "dark"

[server]
open_browser = true
open_command = "firefox {url}"
session_idle = "5m"

[keys]
cancel = "ctrl+g"
`
	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.NavigationMode() != view.ModeSplit {
		t.Errorf("Expected split mode, got %q", cfg.NavigationMode())
	}
	if cfg.StartView() != view.Explore {
		t.Errorf("Expected start view Explore, got %v", cfg.StartView())
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("Expected theme 'dark', got %q", cfg.UI.Theme)
	}
	if !cfg.Server.OpenBrowser {
		t.Error("Expected OpenBrowser to be true")
	}
	if cfg.Server.OpenCommand != "firefox {url}" {
		t.Errorf("Expected open command 'firefox {url}', got %q", cfg.Server.OpenCommand)
	}
	if cfg.SessionIdle() != 5*time.Minute {
		t.Errorf("Expected session idle 5m, got %v", cfg.SessionIdle())
	}
	if cfg.Keys.Cancel != "ctrl+g" {
		t.Errorf("Expected cancel key 'ctrl+g', got %q", cfg.Keys.Cancel)
	}

	// Unspecified values keep defaults, booleans included
	if !cfg.UI.ShowHelp {
		t.Error("ShowHelp should default to true when not specified")
	}
	if cfg.UI.BarWidth != 40 {
		t.Errorf("Expected bar width 40, got %d", cfg.UI.BarWidth)
	}
	if cfg.Server.SessionCookie != "aligns_session" {
		t.Errorf("Expected session cookie 'aligns_session', got %q", cfg.Server.SessionCookie)
	}
	if cfg.Server.Addr != "127.0.0.1:8501" {
		t.Errorf("Expected addr '127.0.0.1:8501', got %q", cfg.Server.Addr)
	}
	if cfg.Keys.Select != "enter,space" {
		t.Errorf("Expected select key default 'enter,space', got %q", cfg.Keys.Select)
	}

	s := cfg.NewSession()
	if s.Current() != view.Explore || s.Mode() != view.ModeSplit {
		t.Errorf("NewSession() = (%v, %q), want (Explore, split)", s.Current(), s.Mode())
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("Expected default config, got %+v", cfg)
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[page\ntitle = "), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromPath(configPath); err == nil {
		t.Error("Expected error for malformed TOML")
	}
}

func TestCreateDefaultConfigFileRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aligns", "config.toml")

	if err := CreateDefaultConfigFile(path, false); err != nil {
		t.Fatalf("CreateDefaultConfigFile failed: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("Round-tripped config differs from defaults: %+v", cfg)
	}

	// Second write refuses without force
	if err := CreateDefaultConfigFile(path, false); err == nil {
		t.Error("Expected error when config already exists")
	}
	if err := CreateDefaultConfigFile(path, true); err != nil {
		t.Errorf("Forced write failed: %v", err)
	}
}

func TestDefaultConfigContentListsEveryKey(t *testing.T) {
	content := generateDefaultConfigContent()

	keys := reflect.TypeOf(KeysConfig{})
	for i := 0; i < keys.NumField(); i++ {
		name := keys.Field(i).Tag.Get("toml")
		if !strings.Contains(content, "# "+name+" = ") {
			t.Errorf("Generated config is missing key binding %q", name)
		}
	}

	if !strings.Contains(content, "session_idle = ") {
		t.Error("Generated config is missing server.session_idle")
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := ConfigPath(); got != "/tmp/xdg/aligns/config.toml" {
		t.Errorf("ConfigPath() = %q, want /tmp/xdg/aligns/config.toml", got)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	path := ConfigPath()
	if filepath.Base(path) != "config.toml" || filepath.Base(filepath.Dir(path)) != "aligns" {
		t.Errorf("ConfigPath() = %q, want .../aligns/config.toml", path)
	}
}
