package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/flightsearch/internal/airport"
	"github.com/five82/flightsearch/internal/favorite"
	"github.com/five82/flightsearch/internal/flight"
	"github.com/five82/flightsearch/internal/task"
)

// deriveFlights starts a flights task for departure.
func (m Model) deriveFlights(departure airport.Airport, reload bool) tea.Cmd {
	ctx, handle := m.tasks.Start(task.Flights)
	lookup, favs := m.airports, m.favorites
	return func() tea.Msg {
		msg := flightsMsg{handle: handle, departure: departure, reload: reload}
		destinations, err := lookup.Destinations(ctx, departure.IATACode)
		if err != nil {
			msg.err = err
			return msg
		}
		msg.flights, msg.err = flight.Derive(ctx, departure, destinations, favs)
		return msg
	}
}

func (m Model) handleFlights(msg flightsMsg) Model {
	if !m.tasks.Current(msg.handle) {
		return m
	}
	m.tasks.Finish(msg.handle)

	if msg.err != nil {
		if !errors.Is(msg.err, context.Canceled) {
			m.logger.Warnw("flight derivation failed", "departure", msg.departure.IATACode, "error", msg.err)
		}
		return m
	}
	if msg.reload && m.mode != modeFlights {
		return m
	}

	m.setBoard(modeFlights, flight.NewBoard(msg.flights), msg.reload)
	return m
}

// loadFavorites starts a favorites task listing every saved route.
func (m Model) loadFavorites() tea.Cmd {
	return m.favoritesCmd(false)
}

func (m Model) favoritesCmd(reload bool) tea.Cmd {
	ctx, handle := m.tasks.Start(task.Favorites)
	lookup, favs := m.airports, m.favorites
	return func() tea.Msg {
		msg := favoritesMsg{handle: handle, reload: reload}
		saved, err := favs.All(ctx)
		if err != nil {
			msg.err = err
			return msg
		}
		msg.flights, msg.err = flight.FromFavorites(ctx, saved, lookup)
		return msg
	}
}

func (m Model) handleFavorites(msg favoritesMsg) Model {
	if !m.tasks.Current(msg.handle) {
		return m
	}
	m.tasks.Finish(msg.handle)

	if msg.err != nil {
		if !errors.Is(msg.err, context.Canceled) {
			m.logger.Warnw("loading favorites failed", "error", msg.err)
		}
		return m
	}
	if msg.reload && m.mode != modeFavorites {
		return m
	}

	m.setBoard(modeFavorites, flight.NewBoard(msg.flights), msg.reload)
	return m
}

// setBoard swaps in a new flight list. A reload keeps the highlighted route
// when it is still present.
func (m *Model) setBoard(mode listMode, board *flight.Board, reload bool) {
	var keep favorite.Route
	hadSelection := false
	if reload {
		if f, ok := m.selectedFlight(); ok {
			keep, hadSelection = f.Route(), true
		}
	}

	m.mode = mode
	m.board = board
	m.results = nil

	if hadSelection {
		if idx := board.IndexOf(keep); idx >= 0 {
			m.cursor = idx
		}
	}
	m.clampCursor()
	m.applyPendingOffset()
}

// toggleSelected flips the saved state of the highlighted route. The write
// runs on the screen lifetime context so a later search cannot cancel it.
func (m Model) toggleSelected() (Model, tea.Cmd) {
	f, ok := m.selectedFlight()
	if !ok {
		return m, nil
	}
	route := f.Route()
	ctx, favs := m.tasks.Context(), m.favorites
	return m, func() tea.Msg {
		saved, err := favs.Toggle(ctx, route)
		return toggledMsg{route: route, saved: saved, err: err}
	}
}

// removeSelected deletes the highlighted saved route.
func (m Model) removeSelected() (Model, tea.Cmd) {
	f, ok := m.selectedFlight()
	if !ok {
		return m, nil
	}
	route := f.Route()
	ctx, favs := m.tasks.Context(), m.favorites
	return m, func() tea.Msg {
		err := favs.Remove(ctx, route.Favorite())
		return toggledMsg{route: route, saved: false, err: err}
	}
}

// handleToggled applies a favorite write to the row with the same route,
// wherever it sits in the list now.
func (m Model) handleToggled(msg toggledMsg) Model {
	if msg.err != nil {
		m.reportWriteError("update favorite "+msg.route.String(), msg.err)
		return m
	}
	m.lastErr = ""

	if m.mode == modeFavorites && !msg.saved {
		m.board.Remove(msg.route)
		m.clampCursor()
		return m
	}
	m.board.SetFavorite(msg.route, msg.saved)
	return m
}

// handleFavoritesChanged refreshes whichever list joins favorite state.
func (m Model) handleFavoritesChanged() (tea.Model, tea.Cmd) {
	wait := waitForFavorites(m.ctx, m.favoritesCh)
	if m.tasks.Running(task.Search) {
		return m, wait
	}
	switch m.mode {
	case modeFlights:
		return m, tea.Batch(wait, m.deriveFlights(m.departure, true))
	case modeFavorites:
		if m.query() == "" {
			return m, tea.Batch(wait, m.favoritesCmd(true))
		}
	}
	return m, wait
}
