// Package logtail reads the tail of the nimbus log file for the in-app
// log overlay.
//
// Read keeps a ring buffer of the last maxLines lines so memory stays
// O(maxLines) however large the file has grown; a non-positive limit reads
// everything. Missing files are not an error: nil, nil is returned until the
// logger has written something.
//
// Parse understands zap's console encoding:
//
//	2026-10-16T09:00:00Z	WARN	forecast fetch failed	{"place": "p1"}
//
// and Filter drops entries below a level, keeping unparsed continuation
// lines attached to the entry before them. Styling is left to the UI.
package logtail
