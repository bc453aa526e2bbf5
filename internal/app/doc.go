// Package app is the composition root for flightsearch.
//
// It loads the configuration, starts file logging, opens the SQLite database
// and hands the airport and favorite repositories plus the preference store
// to the search screen:
//
//	Run()
//	  ├─> config.Load()        config.toml, flags override paths
//	  ├─> logging.New()        JSON log file (the screen owns stdout)
//	  ├─> db.Open()            SQLite + schema migration
//	  ├─> db.EnsureSeeded()    bundled airports on first start
//	  └─> ui.Run()             search screen (blocks)
//
// Any failure before ui.Run is returned to the caller and the screen never
// opens. Failures once the screen is up are logged and the screen keeps
// running.
//
// Seed and ListFavorites back the non-interactive subcommands and share the
// same initialization.
package app
