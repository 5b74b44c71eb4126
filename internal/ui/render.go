package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/henri123lemoine/aligns/internal/view"
)

// Focus says which pane receives navigation keys.
type Focus int

const (
	FocusSidebar Focus = iota
	FocusContent
)

// HelpBinding represents a keybinding for help display.
type HelpBinding struct {
	Keys string
	Desc string
}

// HelpSection represents a section of help bindings.
type HelpSection struct {
	Title    string
	Bindings []HelpBinding
}

// RenderParams contains all parameters needed for rendering.
type RenderParams struct {
	Page          view.Page
	Width         int
	Height        int
	Focus         Focus
	SidebarCursor int
	ActionCursor  int

	// Explore option list: indices into the select's options that are
	// currently visible, and the cursor position within them.
	OptionIndices []int
	OptionCursor  int
	Searching     bool
	SearchInput   string

	Footer       string
	ShowHelp     bool
	HelpScreen   bool
	HelpSections []HelpSection
	BarWidth     int
	SidebarWidth int
	Err          error
}

// MinWidth is the absolute minimum terminal width we try to support.
const MinWidth = 60

// MinHeight is the absolute minimum terminal height we try to support.
const MinHeight = 10

const (
	defaultBarWidth     = 40
	defaultSidebarWidth = 24
)

// Render renders the full UI.
func Render(p RenderParams) string {
	if p.Width < MinWidth {
		p.Width = MinWidth
	}
	if p.Height < MinHeight {
		p.Height = MinHeight
	}
	if p.SidebarWidth <= 0 {
		p.SidebarWidth = defaultSidebarWidth
	}
	if p.BarWidth <= 0 {
		p.BarWidth = defaultBarWidth
	}

	if p.HelpScreen {
		return renderHelp(p)
	}

	// box border + padding, sidebar, its border and gap
	contentWidth := p.Width - 6 - p.SidebarWidth - 3
	if contentWidth < 20 {
		contentWidth = 20
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		renderSidebar(p),
		"  ",
		renderContent(p, contentWidth),
	)

	var b strings.Builder
	b.WriteString(body + "\n")
	b.WriteString(DividerStyle.Render(strings.Repeat(SymbolDivider, p.Width-6)) + "\n")
	b.WriteString(FooterStyle.Render(p.Footer))
	if p.ShowHelp {
		b.WriteString("\n" + HelpStyle.Render(helpLine(p)))
	}
	return wrapInBox(b.String(), p.Width, p.Height)
}

// renderSidebar renders the navigation radio list.
func renderSidebar(p RenderParams) string {
	var b strings.Builder
	b.WriteString(SidebarTitleStyle.Render("Navigation") + "\n")
	b.WriteString(MutedStyle.Render("Go to") + "\n\n")

	for i, v := range view.All() {
		cursor := "  "
		if p.Focus == FocusSidebar && i == p.SidebarCursor {
			cursor = SelectedStyle.Render(SymbolCursor + " ")
		}
		radio := SymbolRadioOff
		label := NormalStyle.Render(v.String())
		if v == p.Page.Sidebar {
			radio = SymbolRadioOn
			label = SelectedStyle.Render(v.String())
		}
		b.WriteString(cursor + radio + " " + label)
		if i < len(view.All())-1 {
			b.WriteString("\n")
		}
	}

	return SidebarStyle.Width(p.SidebarWidth).Render(b.String())
}

// renderContent renders the page for the current view.
func renderContent(p RenderParams, width int) string {
	page := p.Page
	var parts []string

	if p.Err != nil {
		parts = append(parts, ErrorStyle.Width(width).Render("Error: "+p.Err.Error()))
	}

	parts = append(parts, TitleStyle.Width(width).Render(page.Title))
	if page.Subtitle != "" {
		parts = append(parts, SubtitleStyle.Width(width).Render(page.Subtitle))
	}
	parts = append(parts, CardStyle.Width(width-2).Render(page.Card))

	for _, block := range page.Blocks {
		if block.Heading != "" {
			parts = append(parts, HeaderStyle.Render(block.Heading))
		}
		switch block.Kind {
		case view.BlockActions:
			parts = append(parts, renderActions(block.Actions, p))
		case view.BlockTable:
			parts = append(parts, renderTable(block.Table, width))
		case view.BlockChart:
			parts = append(parts, renderChart(block.Chart, p.BarWidth, width))
		case view.BlockSelect:
			parts = append(parts, renderSelect(block.Select, p))
		case view.BlockDefinitions:
			parts = append(parts, renderDefinitions(block.Definitions, width))
		}
	}

	return lipgloss.NewStyle().Width(width).Render(strings.Join(parts, "\n\n"))
}

// renderActions renders the Home page button row.
func renderActions(actions []view.Action, p RenderParams) string {
	buttons := make([]string, 0, len(actions))
	for i, a := range actions {
		style := ButtonStyle
		if p.Focus == FocusContent && i == p.ActionCursor {
			style = ButtonActiveStyle
		}
		buttons = append(buttons, style.Render(a.Label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

// renderTable renders a read-only data table.
func renderTable(t *view.Table, width int) string {
	if t == nil {
		return ""
	}
	if len(t.Rows) == 0 {
		return MutedStyle.Render(strings.Join(t.Columns, " │ ")) + "\n" + MutedStyle.Render(SymbolEmptyTable)
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(TableBorderStyle).
		Width(width).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		}).
		Headers(t.Columns...).
		Rows(t.Rows...)

	return tbl.Render()
}

// renderChart renders a horizontal bar chart, one bar per point.
func renderChart(c *view.Chart, barWidth, width int) string {
	if c == nil {
		return ""
	}
	if len(c.Points) == 0 {
		return MutedStyle.Render("No data to chart.")
	}

	labelWidth := 0
	maxValue := 0.0
	for _, pt := range c.Points {
		labelWidth = max(labelWidth, lipgloss.Width(pt.Label))
		if pt.Value > maxValue {
			maxValue = pt.Value
		}
	}
	// leave room for " 1.41" after the bar
	labelWidth = min(labelWidth, max(10, width-barWidth-8))

	var lines []string
	for _, pt := range c.Points {
		label := truncate(pt.Label, labelWidth)
		label += strings.Repeat(" ", labelWidth-lipgloss.Width(label))
		lines = append(lines, MutedStyle.Render(label)+" "+
			BarStyle.Render(bar(pt.Value, maxValue, barWidth))+" "+
			NormalStyle.Render(view.FormatScore(pt.Value)))
	}
	lines = append(lines, MutedStyle.Render(fmt.Sprintf("%s by %s", c.YAxis, c.XAxis)))
	return strings.Join(lines, "\n")
}

// bar returns a bar scaled so that maxValue fills width cells.
func bar(value, maxValue float64, width int) string {
	if maxValue <= 0 || value <= 0 {
		return ""
	}
	n := int(value / maxValue * float64(width))
	if n < 1 {
		n = 1
	}
	if n > width {
		n = width
	}
	return strings.Repeat(SymbolBar, n)
}

// renderSelect renders the Explore option list.
func renderSelect(s *view.Select, p RenderParams) string {
	if s == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(NormalStyle.Render(s.Label) + "\n")

	if p.Searching || p.SearchInput != "" {
		b.WriteString(InputStyle.Render(p.SearchInput) + "\n")
	}

	if len(s.Options) == 0 {
		b.WriteString(MutedStyle.Render("No options."))
		return b.String()
	}
	if len(p.OptionIndices) == 0 {
		b.WriteString(MutedStyle.Render("No matches found."))
		return b.String()
	}

	for pos, idx := range p.OptionIndices {
		if idx < 0 || idx >= len(s.Options) {
			continue
		}
		cursor := "  "
		if p.Focus == FocusContent && pos == p.OptionCursor {
			cursor = SelectedStyle.Render(SymbolCursor + " ")
		}
		radio := SymbolRadioOff
		label := NormalStyle.Render(s.Options[idx])
		if idx == s.Index {
			radio = SymbolRadioOn
			label = SelectedStyle.Render(s.Options[idx])
		}
		b.WriteString(cursor + radio + " " + label)
		if pos < len(p.OptionIndices)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderDefinitions renders a bulleted term list.
func renderDefinitions(defs []view.Definition, width int) string {
	lines := make([]string, 0, len(defs))
	for _, d := range defs {
		line := SymbolBullet + " " + HeaderStyle.Render(d.Term+":") + " " + NormalStyle.Render(d.Text)
		lines = append(lines, lipgloss.NewStyle().Width(width).Render(line))
	}
	return strings.Join(lines, "\n")
}

// renderHelp renders the help screen.
func renderHelp(p RenderParams) string {
	var b strings.Builder
	contentWidth := p.Width - 6

	b.WriteString(HeaderStyle.Render("HELP") + "\n")
	b.WriteString(DividerStyle.Render(strings.Repeat(SymbolDivider, contentWidth)) + "\n\n")

	for i, section := range p.HelpSections {
		b.WriteString(NormalStyle.Render(section.Title) + "\n")
		b.WriteString(DividerStyle.Render(strings.Repeat(SymbolDivider, 40)) + "\n")
		for _, binding := range section.Bindings {
			// Pad keys to 10 chars for alignment
			keys := binding.Keys
			if len(keys) < 10 {
				keys = keys + strings.Repeat(" ", 10-len(keys))
			}
			b.WriteString(MutedStyle.Render("  "+keys) + " " + binding.Desc + "\n")
		}
		if i < len(p.HelpSections)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n" + DividerStyle.Render(strings.Repeat(SymbolDivider, contentWidth)) + "\n")
	b.WriteString(HelpStyle.Render("Press any key to close"))

	return wrapInBox(b.String(), p.Width, p.Height)
}

// helpLine returns the one-line key hint for the focused pane.
func helpLine(p RenderParams) string {
	if p.Searching {
		return "type to narrow • enter keep • esc clear"
	}
	if p.Focus == FocusSidebar {
		return compactHelp(
			"↑/↓ move • enter open • tab content • ? help • q quit",
			"↑↓•enter•tab•?•q",
			p.Width,
		)
	}
	switch p.Page.View {
	case view.Home:
		return compactHelp("←/→ choose • enter open • tab sidebar • ? help • q quit", "←→•enter•tab•?•q", p.Width)
	case view.Explore:
		return compactHelp("↑/↓ choose • enter filter • / search • tab sidebar • ? help • q quit", "↑↓•enter•/•tab•?•q", p.Width)
	}
	return compactHelp("tab sidebar • ? help • q quit", "tab•?•q", p.Width)
}

// truncate shortens s to width cells, ending in an ellipsis.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

// wrapInBox wraps content in a box.
func wrapInBox(content string, width, height int) string {
	boxWidth := width - 2
	if boxWidth < MinWidth-2 {
		boxWidth = MinWidth - 2
	}

	// Don't force height - let content determine size
	style := BoxStyle.Width(boxWidth)

	return style.Render(content)
}

// compactHelp returns a shortened help string for small terminals.
func compactHelp(full, compact string, width int) string {
	if width >= 80 {
		return full
	}
	return compact
}
