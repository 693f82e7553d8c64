// Package ui is the Bubble Tea front end for nimbus.
//
// # Structure
//
// Model owns a session.Controller and a screen, the controller's Renderer.
// Key presses become controller operations; the commands they return run
// the collaborator requests off the event loop and their results come back
// through Update, where the controller consumes them first. View only reads
// what the controller last rendered into the screen.
//
//   - app.go: Model, key routing, Run
//   - view.go, header.go: search box, favorites bar, weather panels
//   - logs.go: the log overlay (ctrl+l), tailing the zap log file
//   - modal.go, help.go: notices raised by the controller and key help
//   - theme.go: palettes, cycled from the favorites bar with T
//
// # Focus
//
// Plain keys go to the search box or the favorites bar, whichever has
// focus; tab switches. Leaving the search box closes the suggestion list.
// Global bindings (ctrl+t, ctrl+w, ctrl+f, ctrl+r, ctrl+l, f1) work from
// both.
//
// # Layout
//
// Below LayoutCompactWidth the forecast is cut to three days and the
// hourly strip is hidden. From LayoutWideWidth the current conditions and
// the forecast sit side by side.
package ui
