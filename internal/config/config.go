// Package config handles aligns configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/pelletier/go-toml/v2"

	"github.com/henri123lemoine/aligns/internal/view"
)

const defaultSessionIdle = 30 * time.Minute

// Config represents aligns configuration.
type Config struct {
	Page       PageConfig       `toml:"page"`
	Navigation NavigationConfig `toml:"navigation"`
	UI         UIConfig         `toml:"ui"`
	Server     ServerConfig     `toml:"server"`
	Keys       KeysConfig       `toml:"keys"`
}

// PageConfig contains page metadata and chrome.
type PageConfig struct {
	// Browser tab title
	Title string `toml:"title"`

	// Icon shown next to the title
	Icon string `toml:"icon"`

	// Content width: "wide" (full width) or "centered"
	Layout string `toml:"layout"`

	// Footer line under every view
	Footer string `toml:"footer"`
}

// NavigationConfig contains router settings.
type NavigationConfig struct {
	// "unified": the sidebar follows Home-page buttons
	// "split": buttons change the view but the sidebar keeps its selection
	Mode string `toml:"mode"`

	// View shown when a session starts
	DefaultView string `toml:"default_view"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// Color theme: auto, dark, light
	Theme string `toml:"theme"`

	// Show the key help line
	ShowHelp bool `toml:"show_help"`

	// Longest bar in the terminal bar chart, in cells
	BarWidth int `toml:"bar_width"`

	// Sidebar width in cells
	SidebarWidth int `toml:"sidebar_width"`
}

// ServerConfig contains settings for `aligns serve`.
type ServerConfig struct {
	// Listen address
	Addr string `toml:"addr"`

	// Name of the session cookie
	SessionCookie string `toml:"session_cookie"`

	// Drop browser sessions idle this long (Go duration, "0" keeps them)
	SessionIdle string `toml:"session_idle"`

	// Open the dashboard in a browser once serving
	OpenBrowser bool `toml:"open_browser"`

	// Command used to open the browser. Empty means the platform default.
	// Template variables: {url}, {addr}
	OpenCommand string `toml:"open_command"`
}

// KeysConfig contains keybinding settings.
type KeysConfig struct {
	Up     string `toml:"up"`
	Down   string `toml:"down"`
	Left   string `toml:"left"`
	Right  string `toml:"right"`
	Select string `toml:"select"`
	Cancel string `toml:"cancel"`
	Focus  string `toml:"focus"`
	Search string `toml:"search"`
	Help   string `toml:"help"`
	Quit   string `toml:"quit"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Page: PageConfig{
			Title:  "ALIGNs: Psychometric Analysis",
			Icon:   "📊",
			Layout: "wide",
			Footer: "© 2025 ALIGNs",
		},
		Navigation: NavigationConfig{
			Mode:        string(view.ModeUnified),
			DefaultView: view.Home.Slug(),
		},
		UI: UIConfig{
			Theme:        "auto",
			ShowHelp:     true,
			BarWidth:     40,
			SidebarWidth: 24,
		},
		Server: ServerConfig{
			Addr:          "127.0.0.1:8501",
			SessionCookie: "aligns_session",
			SessionIdle:   "30m",
		},
		Keys: KeysConfig{
			Up:     "up,k",
			Down:   "down,j",
			Left:   "left,h",
			Right:  "right,l",
			Select: "enter,space",
			Cancel: "esc",
			Focus:  "tab",
			Search: "/",
			Help:   "?",
			Quit:   "q,ctrl+c",
		},
	}
}

// NavigationMode returns the configured mode, defaulting to unified.
func (c *Config) NavigationMode() view.Mode {
	if view.Mode(c.Navigation.Mode) == view.ModeSplit {
		return view.ModeSplit
	}
	return view.ModeUnified
}

// StartView returns the configured default view. Unknown names give Home.
func (c *Config) StartView() view.View {
	v, _ := view.Parse(c.Navigation.DefaultView)
	return v
}

// NewSession starts a router session using the navigation settings.
func (c *Config) NewSession() *view.Session {
	return view.NewSession(c.NavigationMode(), c.StartView())
}

// SessionIdle returns the browser session idle timeout. Empty or invalid
// values give the default; zero disables expiry.
func (c *Config) SessionIdle() time.Duration {
	if d, err := time.ParseDuration(c.Server.SessionIdle); err == nil && d >= 0 {
		return d
	}
	return defaultSessionIdle
}

// ConfigPath returns the path to the config file.
// Uses ~/.config/aligns/config.toml (XDG style) on all Unix systems.
func ConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "aligns", "config.toml")
	}
	home := os.Getenv("HOME")
	if home != "" {
		return filepath.Join(home, ".config", "aligns", "config.toml")
	}
	// Fallback to os.UserConfigDir() for Windows
	configDir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "aligns", "config.toml")
	}
	return filepath.Join(configDir, "aligns", "config.toml")
}

// Load loads configuration from the config file.
func Load() (*Config, error) {
	return LoadFromPath(ConfigPath())
}

// LoadFromPath loads configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file, use defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	// go-toml/v2 only overwrites fields present in the file, so defaults
	// survive for everything left unspecified.
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// CreateDefaultConfigFile writes a commented default config file to path.
// An existing file is left alone unless force is set.
func CreateDefaultConfigFile(path string, force bool) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	fileLock := flock.New(path + ".lock")
	if err := fileLock.Lock(); err != nil {
		return fmt.Errorf("lock config: %w", err)
	}
	defer fileLock.Unlock()

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}

	content := generateDefaultConfigContent()
	return os.WriteFile(path, []byte(content), 0644)
}

// generateDefaultConfigContent generates a commented config file.
func generateDefaultConfigContent() string {
	var b strings.Builder
	cfg := DefaultConfig()

	b.WriteString("# ALIGNs dashboard configuration\n\n")

	b.WriteString("[page]\n")
	b.WriteString("# Browser tab title and icon\n")
	fmt.Fprintf(&b, "title = %q\n", cfg.Page.Title)
	fmt.Fprintf(&b, "icon = %q\n", cfg.Page.Icon)
	b.WriteString("# Content width: \"wide\" or \"centered\"\n")
	fmt.Fprintf(&b, "layout = %q\n", cfg.Page.Layout)
	fmt.Fprintf(&b, "footer = %q\n\n", cfg.Page.Footer)

	b.WriteString("[navigation]\n")
	b.WriteString("# \"unified\" - sidebar follows the Home page buttons\n")
	b.WriteString("# \"split\" - buttons change the view, the sidebar keeps its selection\n")
	fmt.Fprintf(&b, "mode = %q\n", cfg.Navigation.Mode)
	b.WriteString("# home, visualize, explore, explore-factor, implicit-definition\n")
	fmt.Fprintf(&b, "default_view = %q\n\n", cfg.Navigation.DefaultView)

	b.WriteString("[ui]\n")
	b.WriteString("# Color theme: \"auto\", \"dark\", or \"light\"\n")
	fmt.Fprintf(&b, "theme = %q\n", cfg.UI.Theme)
	fmt.Fprintf(&b, "show_help = %v\n", cfg.UI.ShowHelp)
	b.WriteString("# Longest terminal bar, in cells (5-200)\n")
	fmt.Fprintf(&b, "bar_width = %d\n", cfg.UI.BarWidth)
	fmt.Fprintf(&b, "sidebar_width = %d\n\n", cfg.UI.SidebarWidth)

	b.WriteString("[server]\n")
	fmt.Fprintf(&b, "addr = %q\n", cfg.Server.Addr)
	fmt.Fprintf(&b, "session_cookie = %q\n", cfg.Server.SessionCookie)
	b.WriteString("# Forget browser sessions idle this long (\"0\" keeps them)\n")
	fmt.Fprintf(&b, "session_idle = %q\n", cfg.Server.SessionIdle)
	fmt.Fprintf(&b, "open_browser = %v\n", cfg.Server.OpenBrowser)
	b.WriteString("# Browser command, {url} and {addr} are expanded (empty = platform default)\n")
	fmt.Fprintf(&b, "# open_command = %q\n\n", "xdg-open {url}")

	b.WriteString("[keys]\n")
	b.WriteString("# Keybindings (comma-separated for multiple keys)\n")
	fmt.Fprintf(&b, "# up = %q\n", cfg.Keys.Up)
	fmt.Fprintf(&b, "# down = %q\n", cfg.Keys.Down)
	fmt.Fprintf(&b, "# left = %q\n", cfg.Keys.Left)
	fmt.Fprintf(&b, "# right = %q\n", cfg.Keys.Right)
	fmt.Fprintf(&b, "# select = %q\n", cfg.Keys.Select)
	fmt.Fprintf(&b, "# cancel = %q\n", cfg.Keys.Cancel)
	fmt.Fprintf(&b, "# focus = %q\n", cfg.Keys.Focus)
	fmt.Fprintf(&b, "# search = %q\n", cfg.Keys.Search)
	fmt.Fprintf(&b, "# help = %q\n", cfg.Keys.Help)
	fmt.Fprintf(&b, "# quit = %q\n", cfg.Keys.Quit)

	return b.String()
}

// Validate validates the configuration and returns warnings.
func (c *Config) Validate() []string {
	var warnings []string

	if c.Page.Layout != "" &&
		c.Page.Layout != "wide" &&
		c.Page.Layout != "centered" {
		warnings = append(warnings, fmt.Sprintf("Invalid value for page.layout: %s (expected wide or centered)", c.Page.Layout))
	}

	if c.Navigation.Mode != "" &&
		c.Navigation.Mode != string(view.ModeUnified) &&
		c.Navigation.Mode != string(view.ModeSplit) {
		warnings = append(warnings, fmt.Sprintf("Invalid value for navigation.mode: %s (expected unified or split)", c.Navigation.Mode))
	}

	if c.Navigation.DefaultView != "" {
		if _, ok := view.Parse(c.Navigation.DefaultView); !ok {
			warnings = append(warnings, fmt.Sprintf("Unknown navigation.default_view: %s (falling back to home)", c.Navigation.DefaultView))
		}
	}

	if c.UI.Theme != "" &&
		c.UI.Theme != "auto" &&
		c.UI.Theme != "dark" &&
		c.UI.Theme != "light" {
		warnings = append(warnings, fmt.Sprintf("Invalid value for ui.theme: %s (expected auto, dark, or light)", c.UI.Theme))
	}

	if c.UI.BarWidth != 0 && (c.UI.BarWidth < 5 || c.UI.BarWidth > 200) {
		warnings = append(warnings, fmt.Sprintf("ui.bar_width must be 5-200, got %d", c.UI.BarWidth))
	}

	if c.UI.SidebarWidth != 0 && c.UI.SidebarWidth < 12 {
		warnings = append(warnings, fmt.Sprintf("ui.sidebar_width must be at least 12, got %d", c.UI.SidebarWidth))
	}

	if c.Server.Addr == "" {
		warnings = append(warnings, "server.addr is empty")
	}

	if c.Server.SessionIdle != "" {
		if d, err := time.ParseDuration(c.Server.SessionIdle); err != nil || d < 0 {
			warnings = append(warnings, fmt.Sprintf("Invalid value for server.session_idle: %s (expected a duration such as 30m)", c.Server.SessionIdle))
		}
	}

	return warnings
}
