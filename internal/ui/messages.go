package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/flightsearch/internal/airport"
	"github.com/five82/flightsearch/internal/favorite"
	"github.com/five82/flightsearch/internal/flight"
	"github.com/five82/flightsearch/internal/prefs"
	"github.com/five82/flightsearch/internal/task"
)

// Messages

// searchResultMsg carries the airports matching one issued query.
type searchResultMsg struct {
	handle   task.Handle
	query    string
	airports []airport.Airport
	err      error
}

// flightsMsg carries the derived flights for a departure. reload is set when
// the derivation refreshes the list already on screen.
type flightsMsg struct {
	handle    task.Handle
	departure airport.Airport
	flights   []flight.Flight
	reload    bool
	err       error
}

// favoritesMsg carries the saved routes shown for an empty query.
type favoritesMsg struct {
	handle  task.Handle
	flights []flight.Flight
	reload  bool
	err     error
}

// toggledMsg reports the outcome of a favorite write for one route.
type toggledMsg struct {
	route favorite.Route
	saved bool
	err   error
}

type prefsMsg prefs.State

type favoritesChangedMsg struct{}

// shutdownMsg asks the screen to quit as if the user had.
type shutdownMsg struct{}

// Commands

func waitForPrefs(ctx context.Context, ch <-chan prefs.State) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case st, ok := <-ch:
			if !ok {
				return nil
			}
			return prefsMsg(st)
		case <-ctx.Done():
			return nil
		}
	}
}

func waitForFavorites(ctx context.Context, ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			return favoritesChangedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}
