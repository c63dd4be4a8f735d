// Package state holds the presentation snapshot shared between the document
// loaders and the UI.
//
// # Architecture
//
//	Producers (loaders):              Consumer (UI):
//	┌──────────────────────┐          ┌──────────────────┐
//	│ LoadLinks()          │          │                  │
//	│   ApplyLinks()       │          │                  │
//	│   LinksUnavailable() │─────────→│ store.Snapshot() │
//	│ LoadVersion()        │ (mutex)  │      ↓           │
//	│   ApplyVersion()     │          │  render on tick  │
//	│   VersionUnavailable │          │                  │
//	└──────────────────────┘          └──────────────────┘
//
// The two loaders run concurrently and each touches only its own fields, so
// their results may land in any order.
//
// # Link Targets
//
// The Store is created with the button ids the UI expects. ApplyLinks fills
// each one from the parsed document and marks the ones the document lacks as
// unavailable with a reason. LinksUnavailable marks every button unavailable
// after retries are exhausted. The UI never navigates to an unavailable
// target; it shows the reason instead.
//
// # Version Text
//
//	ApplyVersion(rec)        → "Version: 1.2.3" or "Version: N/A"
//	VersionUnavailable(err)  → "Version: Error loading"
//
// Snapshot returns copies, so callers may keep and mutate them freely.
package state
