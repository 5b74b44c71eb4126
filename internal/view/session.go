package view

import "fmt"

// Source identifies which control produced a navigation intent.
type Source int

const (
	SourceSidebar Source = iota
	SourceAction
)

func (s Source) String() string {
	if s == SourceAction {
		return "action"
	}
	return "sidebar"
}

// ParseSource parses "sidebar" or "action". Anything else is the sidebar.
func ParseSource(s string) Source {
	if s == "action" || s == "button" {
		return SourceAction
	}
	return SourceSidebar
}

// Mode controls whether the sidebar follows action-button navigation.
type Mode string

const (
	// ModeUnified keeps the sidebar highlight and the current view in lockstep.
	ModeUnified Mode = "unified"
	// ModeSplit lets action buttons move the current view while the sidebar
	// highlight stays put.
	ModeSplit Mode = "split"
)

// Intent is a request to show a view.
type Intent struct {
	Source Source
	Target View
}

func (i Intent) String() string {
	return fmt.Sprintf("%s->%s", i.Source, i.Target.Slug())
}

// Session is the per-user router state: which view is showing, what the
// sidebar highlights and the Explore selection.
type Session struct {
	mode     Mode
	current  View
	sidebar  View
	variable string
	selected bool
}

// NewSession returns a session starting at start. Invalid starts become Home.
func NewSession(mode Mode, start View) *Session {
	if !start.Valid() {
		start = Home
	}
	if mode != ModeSplit {
		mode = ModeUnified
	}
	return &Session{mode: mode, current: start, sidebar: start}
}

// Mode returns the navigation mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// Current returns the view to render. Invalid state reads as Home.
func (s *Session) Current() View {
	if !s.current.Valid() {
		return Home
	}
	return s.current
}

// Sidebar returns the view highlighted in the sidebar.
func (s *Session) Sidebar() View {
	if !s.sidebar.Valid() {
		return Home
	}
	return s.sidebar
}

// Navigate applies an intent and reports whether the current view changed.
// Action intents are only honoured while Home is showing.
func (s *Session) Navigate(in Intent) bool {
	target := in.Target
	if !target.Valid() {
		target = Home
	}

	switch in.Source {
	case SourceAction:
		if s.Current() != Home || target == Home {
			return false
		}
		if s.mode == ModeUnified {
			s.sidebar = target
		}
	default:
		s.sidebar = target
	}

	changed := s.Current() != target
	s.current = target
	return changed
}

// Select records the Explore filter value.
func (s *Session) Select(variable string) {
	s.variable = variable
	s.selected = true
}

// Selection returns the Explore filter value and whether one was chosen.
func (s *Session) Selection() (string, bool) {
	return s.variable, s.selected
}
