// Package config loads flightsearch's TOML configuration file.
//
// # Overview
//
// The config file tells flightsearch where the airport/favorites database
// lives, where to write its log, how verbose that log is, and where the
// preferences file (search text, scroll offset, theme) is kept.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/flightsearch/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/flightsearch/config.toml
//   - Database: ~/.local/share/flightsearch/flights.db
//   - Log file: ~/.local/share/flightsearch/flightsearch.log
//   - Log level: info
//   - Preferences: ~/.config/flightsearch/prefs.toml
//
// # TOML Format
//
//	database_path = "~/.local/share/flightsearch/flights.db"
//	log_path = "~/.local/share/flightsearch/flightsearch.log"
//	log_level = "info"
//	prefs_path = "~/.config/flightsearch/prefs.toml"
//
// All fields are optional. Tilde expansion is performed automatically.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//   - A log_level other than debug, info, warn or error
//
// Missing config files are NOT an error. flightsearch works out of the box.
package config
