// Package app provides the Bubble Tea application model for the ALIGNs
// terminal dashboard.
//
// Model owns one view.Session and translates key presses into navigation
// intents. The sidebar and the Home page buttons both emit NavigateMsg, so
// every view change goes through Session.Navigate. Explore adds an option
// list with fuzzy search; choosing an option emits SelectVariableMsg.
//
// The main type is Model, which implements the Bubble Tea interface
// (Init, Update, View) and hands rendering to internal/ui.
package app
