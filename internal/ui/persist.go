package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/flightsearch/internal/prefs"
)

// handlePrefs applies a watched preference state. The first state restores
// the previous session; later ones are applied only when they differ from
// what this screen last persisted, so the screen's own saves are no-ops.
func (m Model) handlePrefs(st prefs.State) (tea.Model, tea.Cmd) {
	wait := waitForPrefs(m.ctx, m.prefsCh)

	first := !m.prefsSeen
	if !first && st == m.persisted {
		return m, wait
	}
	previous := m.persisted
	m.prefsSeen = true
	m.persisted = st

	if first || st.ScrollPosition != previous.ScrollPosition {
		m.pendingOffset = st.ScrollPosition
	}

	// Restoring a value never writes it back.
	if st.SearchQuery != m.input.Value() {
		m.input.SetValue(st.SearchQuery)
		m.input.CursorEnd()
		next, cmd := m.queryChanged()
		return next, tea.Batch(wait, cmd)
	}
	if first {
		next, cmd := m.queryChanged()
		return next, tea.Batch(wait, cmd)
	}
	m.applyPendingOffset()
	return m, wait
}

// saveState snapshots the search text and first visible row. A failed save
// is logged and the screen carries on.
func (m *Model) saveState() {
	if m.prefs == nil {
		return
	}
	st := prefs.State{SearchQuery: m.input.Value(), ScrollPosition: m.offset}
	if err := m.prefs.SaveState(st); err != nil {
		m.reportWriteError("save screen state", err)
		return
	}
	m.persisted = st
}
