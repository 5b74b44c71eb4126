// Package view routes a dashboard session between its five views and
// describes each view as a render-ready Page.
//
// Session is the per-user router. Every control, sidebar or Home-page
// button, goes through Session.Navigate. Build turns the session's current
// view and the dataset into a Page without touching any presentation layer;
// internal/ui and internal/web draw Pages for the terminal and the browser.
package view
