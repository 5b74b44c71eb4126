// Package ui handles terminal UI rendering.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors follow the web stylesheet: blue sidebar, dark titles, grey chrome.
var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#0056b3", Dark: "#4da3ff"}
	ColorAccent    = lipgloss.AdaptiveColor{Light: "#007acc", Dark: "#3fb0ff"}
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#3a3a3a"}
	ColorMuted     = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#9a9a9a"}
	ColorText      = lipgloss.AdaptiveColor{Light: "#222222", Dark: "#e6e6e6"}
	ColorDanger    = lipgloss.Color("1")
	ColorOnPrimary = lipgloss.Color("#ffffff")
)

// Styles
var (
	// Box styles
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(1, 2)

	SidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(ColorPrimary).
			PaddingRight(1)

	SidebarTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(ColorOnPrimary).
			Background(ColorAccent).
			Padding(0, 2).
			MarginRight(1)

	ButtonActiveStyle = ButtonStyle.
				Background(ColorPrimary).
				Bold(true).
				Underline(true)

	BarStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	TableBorderStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				Padding(0, 1)

	TableCellStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	InputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Symbols
const (
	SymbolCursor     = "›"
	SymbolRadioOn    = "◉"
	SymbolRadioOff   = "○"
	SymbolBar        = "█"
	SymbolBullet     = "•"
	SymbolDivider    = "─"
	SymbolEmptyTable = "(no rows)"
)

// ApplyTheme forces a light or dark palette. "auto" leaves detection to lipgloss.
func ApplyTheme(theme string) {
	switch theme {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}
}
