package ui

// defaultVisibleRows is used before the first window size is known.
const defaultVisibleRows = 10

// visibleRows returns how many list rows fit on screen.
func (m Model) visibleRows() int {
	if m.height <= 0 {
		return defaultVisibleRows
	}
	// header, input, command bar and the box borders
	return maxInt(m.height-chromeHeight, 1)
}

// moveCursor moves the highlight by delta rows and scrolls it into view.
func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

// clampCursor keeps the cursor on a row and the row on screen.
func (m *Model) clampCursor() {
	n := m.rowCount()
	switch {
	case n == 0:
		m.cursor, m.offset = 0, 0
		return
	case m.cursor >= n:
		m.cursor = n - 1
	case m.cursor < 0:
		m.cursor = 0
	}
	m.keepCursorVisible()
}

func (m *Model) keepCursorVisible() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if maxOffset := maxInt(m.rowCount()-visible, 0); m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// applyPendingOffset scrolls a restored offset into view once the list has
// rows to scroll.
func (m *Model) applyPendingOffset() {
	if m.pendingOffset == noOffset || m.rowCount() == 0 {
		return
	}
	target := m.pendingOffset
	m.pendingOffset = noOffset
	if target >= m.rowCount() {
		target = m.rowCount() - 1
	}
	m.offset = target
	m.cursor = target
	if maxOffset := maxInt(m.rowCount()-m.visibleRows(), 0); m.offset > maxOffset {
		m.offset = maxOffset
	}
}
