package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which buttons stack vertically.
	LayoutCompactWidth = 72

	// ModalWidth is the width of the settings and help overlays.
	ModalWidth = 56
)

// Level widget timing.
const (
	// LevelResetDelay is how long a full bar stays on screen after a level up.
	LevelResetDelay = 500 * time.Millisecond

	// LevelHideDelay is how long the level widget stays visible after activity.
	LevelHideDelay = 3 * time.Second

	// LevelBarWidth is the width of the progress bar in cells.
	LevelBarWidth = 30
)

// Timing constants.
const (
	// DefaultUIInterval is the default snapshot refresh interval.
	DefaultUIInterval = time.Second

	// AnimationInterval paces the banner shimmer.
	AnimationInterval = 120 * time.Millisecond

	// StatusMessageTTL is how long a transient status message stays.
	StatusMessageTTL = 4 * time.Second
)
