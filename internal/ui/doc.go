// Package ui provides the terminal search screen for flightsearch.
//
// # Architecture Overview
//
// The screen is a single Bubble Tea model. Update handles key presses and the
// results of background commands; View renders from model state only. Slow
// work (airport queries, flight derivation, favorite writes) runs as tea.Cmd
// functions and reports back as messages.
//
// # Package Structure
//
//   - app.go: Model, Options, key routing and Run
//   - search.go: the search flow for edits of the search field
//   - flights.go: flight derivation, the favorites list and favorite toggles
//   - persist.go: restoring and snapshotting search text and scroll offset
//   - navigation.go: cursor and scroll bookkeeping
//   - header.go, list.go, help.go: rendering
//   - theme.go, style_helpers.go: Lipgloss themes and background helpers
//
// # Lists
//
// The list shows one of three things:
//
//   - Favorites: every saved route, shown while the search field is blank
//   - Airports: the airports matching the search text
//   - Flights: every destination from the selected departure airport
//
// Flights are held in a flight.Board and addressed by route, so a favorite
// toggle updates the row for its route even if the list changed meanwhile.
//
// # Background Work
//
// Searches, derivations and favorite listings each run as a named task (see
// package task). Starting one cancels the previous task of the same kind and
// results from a superseded task are dropped, so the list always reflects
// the most recent query. Favorite writes run on the screen lifetime context
// and are never superseded.
//
// # State Persistence
//
// Losing terminal focus or quitting saves the search text and the first
// visible row. On start the saved state is restored from the preference
// store's watch stream; restoring never writes back.
//
// # Keyboard Shortcuts
//
// Search field:
//   - type: search airports (blank shows favorites)
//   - up/down: move the highlight
//   - enter: select highlighted airport
//   - ctrl+f: toggle favorite on highlighted flight
//
// List:
//   - j/k, up/down, pgup/pgdown, g/G: navigate
//   - enter: select airport or toggle favorite
//   - space/f: toggle favorite
//   - d: remove favorite (favorites list)
//   - T: cycle theme
//   - ?: help
//   - q: quit
//
// Anywhere: tab switches focus, esc clears the search, ctrl+c quits.
package ui
