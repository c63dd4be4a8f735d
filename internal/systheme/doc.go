// Package systheme exposes the host's "prefers dark" preference as a Signal
// with change subscriptions.
//
// FileSignal watches an appearance file (for example one maintained by a
// desktop theme switcher) and falls back to a probe value, usually the
// terminal background detected by lipgloss. Static is a settable signal for
// tests and for hosts without an appearance file.
package systheme
