// Package session is the interactive core of nimbus: the debounced,
// keyboard-driven place search, the selection pipeline that turns a chosen
// place into weather, the unit toggles that redraw cached payloads, and
// the favorites list.
//
// A Controller owns a state.Session and talks to the outside through two
// seams: weatherapi.API for the collaborator and Renderer for the view.
// Operations return a tea.Cmd; the command performs the request off the
// event loop and its result comes back through Update. Results are
// checked against the debounce handle, the selection attempt or the
// selection generation before they touch the session, so a late response
// never overwrites newer state.
package session
