// Package prefs persists the homepage's user preferences and level progress.
//
// Preferences are tri-state (Enabled, Disabled, Unset) and stored as the
// strings "enabled" and "disabled" under useSystemDefault, darkMode,
// backgroundMotion and visualEffects. Level progress is a JSON record
// {"level":N,"clicks":M} under levelProgress.
//
// Every mutation is written through to the storage backend immediately.
// Storage failures never stop the program: reads fall back to the last known
// value and writes keep the in-memory state for the session.
//
// ThemeController resolves the rendered theme:
//
//	useSystemDefault  darkMode   rendered
//	enabled           ignored    live system signal (subscribed)
//	disabled/unset    enabled    dark
//	disabled/unset    other      light
//
// darkMode keeps its stored value while the system default is on, so turning
// the system default off restores the last manual choice.
package prefs
