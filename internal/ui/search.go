package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/flightsearch/internal/airport"
	"github.com/five82/flightsearch/internal/task"
)

// queryChanged runs the search flow for the current field value. A blank
// query shows the favorites; anything else searches airports. Work started
// for an earlier value is cancelled first.
func (m Model) queryChanged() (Model, tea.Cmd) {
	m.cursor, m.offset = 0, 0
	if m.query() == "" {
		m.tasks.Cancel(task.Search, task.Flights)
		return m, m.loadFavorites()
	}
	m.tasks.Cancel(task.Flights, task.Favorites)
	return m, m.searchAirports(m.query())
}

// searchAirports starts a search task, superseding any search in flight.
func (m Model) searchAirports(query string) tea.Cmd {
	ctx, handle := m.tasks.Start(task.Search)
	lookup := m.airports
	return func() tea.Msg {
		airports, err := lookup.Search(ctx, query)
		return searchResultMsg{handle: handle, query: query, airports: airports, err: err}
	}
}

func (m Model) handleSearchResult(msg searchResultMsg) Model {
	if !m.tasks.Current(msg.handle) {
		return m
	}
	m.tasks.Finish(msg.handle)

	if msg.err != nil {
		if !errors.Is(msg.err, context.Canceled) {
			m.logger.Warnw("airport search failed", "query", msg.query, "error", msg.err)
		}
		return m
	}

	m.mode = modeAirports
	m.results = msg.airports
	m.board = nil
	m.clampCursor()
	m.applyPendingOffset()
	return m
}

// selectAirport makes a the departure: its code becomes the search text
// without re-running the search, and its flights are derived.
func (m Model) selectAirport(a airport.Airport) (Model, tea.Cmd) {
	if m.prefs != nil {
		if err := m.prefs.SaveSearchQuery(a.IATACode); err != nil {
			m.reportWriteError("save search query", err)
		} else {
			m.persisted.SearchQuery = a.IATACode
		}
	}

	m.input.SetValue(a.IATACode)
	m.input.CursorEnd()
	m.tasks.Cancel(task.Search, task.Favorites)
	m.departure = a
	m.cursor, m.offset = 0, 0
	return m, m.deriveFlights(a, false)
}
