package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the width below which the hourly strip is
	// dropped and the forecast shows fewer columns.
	LayoutCompactWidth = 80

	// LayoutWideWidth is the width from which the current conditions and
	// the forecast sit side by side.
	LayoutWideWidth = 110
)

// Log overlay limits.
const (
	// LogTailLines is how many lines of the log file the overlay keeps.
	LogTailLines = 500

	// LogRefreshInterval is how often the overlay rereads the file while
	// following.
	LogRefreshInterval = 2 * time.Second
)

// maxSuggestionRows caps the visible dropdown height.
const maxSuggestionRows = 6
