// Package config loads homepage configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/homepage/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. HOMEPAGE_* environment variables override file values
//  5. Blank fields are filled with defaults, then the result is validated
//
// Files ending in .yaml or .yml are parsed as YAML; everything else as TOML.
//
// # Default Values
//
//   - Site: https://toxic5018.me serving link.xml and version.xml
//   - Fetch: 3 attempts, 1000 ms between attempts, 5 s request timeout
//   - Storage: file backend at ~/.local/share/homepage/prefs.toml
//   - Appearance file: ~/.config/homepage/appearance
//   - Log file: ~/.local/state/homepage/homepage.log at info level
//   - Links: ids 1-4 labelled YouTube, TikTok, Discord, GitHub
//
// # TOML Format
//
//	name = "toxic5018"
//	site_url = "https://toxic5018.me"
//	attempts = 3
//	retry_delay_ms = 1000
//
//	[storage]
//	backend = "sqlite"
//	path = "~/.local/share/homepage/prefs.db"
//
//	[[links]]
//	id = "1"
//	label = "YouTube"
//
// # Environment Overrides
//
//   - HOMEPAGE_SITE_URL, HOMEPAGE_LINKS_PATH, HOMEPAGE_VERSION_PATH
//   - HOMEPAGE_ATTEMPTS, HOMEPAGE_RETRY_DELAY_MS, HOMEPAGE_REQUEST_TIMEOUT_SECONDS
//   - HOMEPAGE_STORAGE_BACKEND, HOMEPAGE_STORAGE_PATH
//   - HOMEPAGE_APPEARANCE_PATH, HOMEPAGE_LOG_FILE, HOMEPAGE_LOG_LEVEL
//   - HOMEPAGE_NAME, HOMEPAGE_TAGLINE
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files, parse
// errors and validation failures. A missing file is NOT an error.
package config
