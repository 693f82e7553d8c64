// Package state holds the session state of the weather client.
//
// # Overview
//
// Session is the single explicit state object behind the search box, the
// selected place, the cached weather payloads and the favorites set. It
// replaces ad-hoc globals: every change goes through a small method that
// takes the current state and an event and leaves the session consistent.
//
// # Ownership
//
// There is no locking. A Session belongs to the Bubble Tea event loop:
// network calls run inside commands and come back as messages, and only
// the loop applies those messages. Two guards keep late messages honest:
//
//	debounce handle     ArmDebounce returns a handle; DebounceFired accepts
//	                    only the newest one, so at most one autocomplete
//	                    request starts per pause in typing.
//
//	selection tokens    BeginSelection numbers detail lookups and
//	                    CommitPlace bumps Generation. Weather results carry
//	                    the generation they were fetched for and Store*
//	                    rejects anything older.
//
// Autocomplete results carry the handle that started them and are matched
// against the current input, so a slow response for "par" cannot replace
// the list shown for "paris". CancelSearch voids the request in flight
// once a suggestion is chosen.
//
// # Invariants
//
//   - -1 <= Query.Active < len(Query.Suggestions)
//   - at most one Place; replacing it clears every snapshot
//   - a snapshot is returned only for the place it was fetched for
//   - Favorites has unique, non-empty place ids
//
// # Usage
//
//	s := state.New()
//	h := s.ArmDebounce("par")
//	if s.DebounceFired(h) {
//		// start autocomplete for s.Term()
//	}
//	s.ApplySuggestions(h, "par", list)
//	s.MoveDown()
//	sug, _ := s.Selected()
//
//	attempt := s.BeginSelection()
//	gen, ok := s.CommitPlace(attempt, place, state.KindCount)
//	s.StoreWeather(gen, raw)
//	if s.Settled(gen) {
//		// all fetches for this place are done
//	}
package state
