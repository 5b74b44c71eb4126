package app

import (
	"github.com/henri123lemoine/aligns/internal/view"
)

// Message types for the bubbletea app.

// NavigateMsg asks the router to show a view. Sidebar entries and Home page
// buttons both produce it.
type NavigateMsg struct {
	Intent view.Intent
}

// SelectVariableMsg sets the Explore filter.
type SelectVariableMsg struct {
	Variable string
}
