// Package app is the composition root for homepage.
//
// # Startup
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()              Read config.toml / config.yaml + env
//	       ├─────> logging.New()              JSON file logger
//	       ├─────> storage.Open()             file, sqlite or memory backend
//	       ├─────> prefs.LoadProgress()       Validate the level record
//	       ├─────> systheme.NewFileSignal()   Watch the appearance file
//	       ├─────> ThemeController.Start()    Resolve the initial appearance
//	       ├─────> runLoaders()               links + version, concurrently
//	       └─────> ui.Run()                   Start TUI (blocks)
//
// The loaders run in the background so the page renders at once in its
// loading state; results land in the shared state.Store which the UI reads on
// every tick.
//
// # Error Handling
//
// Only a bad configuration file or a UI failure is returned from Run. Every
// other failure degrades:
//
//   - Log file cannot be created: logging is disabled
//   - Storage cannot be opened: preferences are kept in memory for the session
//   - Appearance file cannot be watched: the terminal background is used
//   - A document cannot be loaded: its fallback is shown
package app
