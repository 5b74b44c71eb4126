// Package web serves the dashboard to a browser.
//
// Every browser gets its own router session, identified by a cookie, so
// navigating in one tab never moves another visitor. Sessions idle past
// the configured timeout are dropped. Pages are rendered from
// the same view.Page model the terminal app draws, through an embedded
// html/template; bar charts are served separately as SVG.
//
// Routes:
//
//	GET  /                 current view (?variable= sets the Explore filter)
//	POST /navigate         form fields view, source (sidebar or action)
//	GET  /chart/{view}.svg bar chart for a view that has one
//	GET  /healthz          liveness
package web
