// Package ui renders the homepage in the terminal with Bubble Tea.
//
// # Layout
//
// The page has three bands:
//
//   - Header: the name banner, tagline, load status and transient messages
//   - Body: the clickable avatar, the level widget and the link buttons
//   - Footer: the version line and key hints
//
// Settings, diagnostics and help are overlays drawn by placeModal on top of
// the page. Only one overlay is open at a time and it receives keys first.
//
// # Data Flow
//
// The model never fetches documents itself. The app package loads them into a
// state.Store and the model copies a snapshot on every tick. Preference
// changes go through prefs.ThemeController; system theme changes arrive as
// appearanceMsg values sent from the controller's OnChange hook.
//
// # Timers
//
// The level widget uses two timers: a hide timer restarted on every click and
// a reset timer that returns the bar to the stored progress after a level-up.
// Each timer message carries a generation number and is ignored when a newer
// timer has been started, so bursts of clicks never flicker.
//
// # Motion
//
// With background motion off the spinner and banner shimmer stop entirely:
// no animation ticks are scheduled and the spinner is replaced by static text.
package ui
