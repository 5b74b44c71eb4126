package app

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/henri123lemoine/aligns/internal/config"
	"github.com/henri123lemoine/aligns/internal/dataset"
	"github.com/henri123lemoine/aligns/internal/log"
	"github.com/henri123lemoine/aligns/internal/ui"
	"github.com/henri123lemoine/aligns/internal/view"
)

// Model is the main application model.
type Model struct {
	// Configuration
	config *config.Config

	// Data
	table   *dataset.Table
	session *view.Session
	page    view.Page

	// Cursors
	focus         ui.Focus
	sidebarCursor int
	actionCursor  int
	optionCursor  int

	// Explore option search
	searching      bool
	searchInput    textinput.Model
	visibleOptions []int

	// UI
	width    int
	height   int
	keys     KeyMap
	showHelp bool

	// Config warnings, shown until the first key press
	err error

	// Exit behavior
	shouldQuit bool
}

// New creates a new Model over tbl.
func New(cfg *config.Config, tbl *dataset.Table) Model {
	searchInput := textinput.New()
	searchInput.Placeholder = "search variables..."
	searchInput.Prompt = "/ "
	searchInput.CharLimit = 50

	m := Model{
		config:      cfg,
		table:       tbl,
		session:     cfg.NewSession(),
		keys:        KeyMapFromConfig(&cfg.Keys),
		searchInput: searchInput,
		focus:       ui.FocusSidebar,
	}
	if warnings := cfg.Validate(); len(warnings) > 0 {
		m.err = errors.New("config: " + strings.Join(warnings, "; "))
	}
	m.sidebarCursor = indexOf(m.session.Sidebar())
	m.refresh()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		m.err = nil
		if m.showHelp {
			// Any key closes help
			m.showHelp = false
			return m, nil
		}
		if m.searching {
			return m.handleSearchKeys(msg)
		}
		if key.Matches(msg, m.keys.Quit) {
			m.shouldQuit = true
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Help) {
			m.showHelp = true
			return m, nil
		}
		if key.Matches(msg, m.keys.Focus) {
			m.toggleFocus()
			return m, nil
		}
		if m.focus == ui.FocusSidebar {
			return m.handleSidebarKeys(msg)
		}
		return m.handleContentKeys(msg)

	case NavigateMsg:
		m.navigate(msg.Intent)
		return m, nil

	case SelectVariableMsg:
		m.session.Select(msg.Variable)
		slog.Debug("select variable", "variable", msg.Variable)
		m.refresh()
		return m, nil
	}

	return m, nil
}

// navigate sends an intent through the session router.
func (m *Model) navigate(in view.Intent) {
	changed := m.session.Navigate(in)
	slog.Debug("navigate", "intent", in.String(), "changed", changed, "current", m.session.Current().Slug())

	m.sidebarCursor = indexOf(m.session.Sidebar())
	if changed {
		m.actionCursor = 0
		m.optionCursor = 0
		m.searching = false
		m.searchInput.Reset()
	}
	m.refresh()
	if sel := m.exploreSelect(); changed && sel != nil {
		for pos, idx := range m.visibleOptions {
			if idx == sel.Index {
				m.optionCursor = pos
				break
			}
		}
	}
}

// refresh rebuilds the page for the current view.
func (m *Model) refresh() {
	defer log.Timed("build page")()
	m.page = view.Build(m.session, m.table)
	m.applyFilter()
}

func (m *Model) toggleFocus() {
	if m.focus == ui.FocusSidebar {
		m.focus = ui.FocusContent
		return
	}
	m.focus = ui.FocusSidebar
}

// handleSidebarKeys handles key presses while the sidebar has focus.
func (m Model) handleSidebarKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	views := view.All()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.sidebarCursor > 0 {
			m.sidebarCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.sidebarCursor < len(views)-1 {
			m.sidebarCursor++
		}
	case key.Matches(msg, m.keys.Select):
		return m, navigateCmd(view.Intent{Source: view.SourceSidebar, Target: views[m.sidebarCursor]})
	}
	return m, nil
}

// handleContentKeys handles key presses in the content pane.
func (m Model) handleContentKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.page.View {
	case view.Home:
		return m.handleHomeKeys(msg)
	case view.Explore:
		return m.handleExploreKeys(msg)
	}
	return m, nil
}

// handleHomeKeys moves between and presses the Home page buttons.
func (m Model) handleHomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	actions := view.Actions()
	switch {
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Up):
		if m.actionCursor > 0 {
			m.actionCursor--
		}
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Down):
		if m.actionCursor < len(actions)-1 {
			m.actionCursor++
		}
	case key.Matches(msg, m.keys.Select):
		return m, navigateCmd(view.Intent{Source: view.SourceAction, Target: actions[m.actionCursor]})
	}
	return m, nil
}

// handleExploreKeys moves through the variable options and applies one.
func (m Model) handleExploreKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.optionCursor > 0 {
			m.optionCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.optionCursor < len(m.visibleOptions)-1 {
			m.optionCursor++
		}
	case key.Matches(msg, m.keys.Select):
		if v, ok := m.optionAtCursor(); ok {
			return m, selectCmd(v)
		}
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Cancel):
		if m.searchInput.Value() != "" {
			m.searchInput.Reset()
			m.applyFilter()
		}
	}
	return m, nil
}

// handleSearchKeys handles key presses while typing a search.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.shouldQuit = true
		return m, tea.Quit
	case tea.KeyEsc:
		m.searching = false
		m.searchInput.Reset()
		m.searchInput.Blur()
		m.applyFilter()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.searchInput.Blur()
		if v, ok := m.optionAtCursor(); ok {
			return m, selectCmd(v)
		}
		return m, nil
	case tea.KeyUp, tea.KeyDown:
		return m.handleExploreKeys(msg)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.optionCursor = 0
	m.applyFilter()
	return m, cmd
}

// optionSource implements fuzzy.Source over the Explore options.
type optionSource []string

func (o optionSource) String(i int) string {
	return o[i]
}

func (o optionSource) Len() int {
	return len(o)
}

// applyFilter narrows the Explore options using fuzzy matching on the
// search input. Matching only affects which options are listed; the
// table filter itself stays an exact match.
func (m *Model) applyFilter() {
	sel := m.exploreSelect()
	if sel == nil {
		m.visibleOptions = nil
		m.optionCursor = 0
		return
	}

	filter := m.searchInput.Value()
	m.visibleOptions = nil
	if filter == "" {
		for i := range sel.Options {
			m.visibleOptions = append(m.visibleOptions, i)
		}
	} else {
		for _, match := range fuzzy.FindFrom(filter, optionSource(sel.Options)) {
			m.visibleOptions = append(m.visibleOptions, match.Index)
		}
	}

	// Ensure cursor is in bounds
	if m.optionCursor >= len(m.visibleOptions) {
		m.optionCursor = len(m.visibleOptions) - 1
	}
	if m.optionCursor < 0 {
		m.optionCursor = 0
	}
}

// exploreSelect returns the select block of the current page, if any.
func (m Model) exploreSelect() *view.Select {
	for _, b := range m.page.Blocks {
		if b.Kind == view.BlockSelect {
			return b.Select
		}
	}
	return nil
}

func (m Model) optionAtCursor() (string, bool) {
	sel := m.exploreSelect()
	if sel == nil || m.optionCursor >= len(m.visibleOptions) {
		return "", false
	}
	return sel.Options[m.visibleOptions[m.optionCursor]], true
}

// View renders the UI.
func (m Model) View() string {
	searchView := ""
	if m.searching || m.searchInput.Value() != "" {
		searchView = m.searchInput.View()
	}
	return ui.Render(ui.RenderParams{
		Page:          m.page,
		Width:         m.width,
		Height:        m.height,
		Focus:         m.focus,
		SidebarCursor: m.sidebarCursor,
		ActionCursor:  m.actionCursor,
		OptionIndices: m.visibleOptions,
		OptionCursor:  m.optionCursor,
		Searching:     m.searching,
		SearchInput:   searchView,
		Footer:        m.config.Page.Footer,
		ShowHelp:      m.config.UI.ShowHelp,
		HelpScreen:    m.showHelp,
		HelpSections:  m.keys.HelpSections(),
		BarWidth:      m.config.UI.BarWidth,
		SidebarWidth:  m.config.UI.SidebarWidth,
		Err:           m.err,
	})
}

// Session returns the router session.
func (m Model) Session() *view.Session {
	return m.session
}

// ShouldQuit returns true if the app should quit.
func (m Model) ShouldQuit() bool {
	return m.shouldQuit
}

// Commands

func navigateCmd(in view.Intent) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Intent: in}
	}
}

func selectCmd(variable string) tea.Cmd {
	return func() tea.Msg {
		return SelectVariableMsg{Variable: variable}
	}
}

// Helper functions

func indexOf(v view.View) int {
	for i, candidate := range view.All() {
		if candidate == v {
			return i
		}
	}
	return 0
}
