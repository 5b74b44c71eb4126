// Package ui provides rendering functions for the ALIGNs terminal UI.
//
// Render takes RenderParams, built around a view.Page, and produces the
// terminal output: a navigation sidebar, the page blocks (buttons, tables,
// bar charts, option lists, definitions) and the footer. Rendering is pure
// and separated from state management, which lives in internal/app.
package ui
