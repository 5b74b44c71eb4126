package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/henri123lemoine/aligns/internal/config"
	"github.com/henri123lemoine/aligns/internal/ui"
)

// KeyMap defines all keybindings.
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Actions
	Select key.Binding
	Focus  key.Binding
	Search key.Binding

	// General
	Cancel key.Binding
	Quit   key.Binding
	Help   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous button"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next button"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "open / choose"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search variables"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// KeyMapFromConfig creates a KeyMap from config settings.
func KeyMapFromConfig(cfg *config.KeysConfig) KeyMap {
	km := DefaultKeyMap()

	override(&km.Up, cfg.Up, "up")
	override(&km.Down, cfg.Down, "down")
	override(&km.Left, cfg.Left, "previous button")
	override(&km.Right, cfg.Right, "next button")
	override(&km.Select, cfg.Select, "open / choose")
	override(&km.Cancel, cfg.Cancel, "cancel")
	override(&km.Focus, cfg.Focus, "switch pane")
	override(&km.Search, cfg.Search, "search variables")
	override(&km.Help, cfg.Help, "help")
	override(&km.Quit, cfg.Quit, "quit")

	return km
}

// override replaces b when list names at least one key.
func override(b *key.Binding, list, desc string) {
	keys := parseKeys(list)
	if len(keys) == 0 {
		return
	}
	*b = key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(list, desc),
	)
}

// parseKeys parses a comma-separated list of keys. "space" names the
// space bar, which bubbletea reports as " ".
func parseKeys(s string) []string {
	parts := strings.Split(s, ",")
	var keys []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "space" {
			p = " "
		}
		if p != "" {
			keys = append(keys, p)
		}
	}
	return keys
}

// HelpSections groups the bindings for the help screen.
func (k KeyMap) HelpSections() []ui.HelpSection {
	section := func(title string, bindings ...key.Binding) ui.HelpSection {
		s := ui.HelpSection{Title: title}
		for _, b := range bindings {
			h := b.Help()
			s.Bindings = append(s.Bindings, ui.HelpBinding{Keys: h.Key, Desc: h.Desc})
		}
		return s
	}
	return []ui.HelpSection{
		section("Navigation", k.Up, k.Down, k.Left, k.Right, k.Focus),
		section("Actions", k.Select, k.Search),
		section("General", k.Cancel, k.Help, k.Quit),
	}
}
