package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/flightsearch/internal/airport"
	"github.com/five82/flightsearch/internal/flight"
)

// renderList renders the result list, or the empty-state message in place
// of the list when there is nothing to show.
func (m Model) renderList() string {
	height := m.visibleRows() + 2 // + borders
	focused := m.focus == paneList

	if m.rowCount() == 0 {
		styles := m.theme.Styles()
		msg := styles.MutedText.Render(m.emptyMessage())
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, msg)
	}

	bgColor := ternary(focused, m.theme.FocusBg, m.theme.SurfaceAlt)
	innerWidth := m.width - 2

	end := minInt(m.offset+m.visibleRows(), m.rowCount())
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(i, innerWidth, bgColor))
	}
	return m.renderTitledBox(m.listTitle(), strings.Join(lines, "\n"), m.width, height, focused)
}

// emptyMessage is shown instead of an empty list.
func (m Model) emptyMessage() string {
	switch m.mode {
	case modeAirports:
		return emptySearchMessage
	case modeFlights:
		return emptyFlightsMessage
	default:
		return emptyFavoritesMessage
	}
}

// renderRow renders row i of the current list.
func (m Model) renderRow(i, width int, bgColor string) string {
	selected := i == m.cursor
	rowBg := ternary(selected, m.theme.SelectionBg, bgColor)
	bg := NewBgStyle(rowBg)
	styles := m.theme.Styles().WithBackground(rowBg)

	var content string
	if m.mode == modeAirports {
		content = formatAirportRow(m.results[i], width, bg, styles)
	} else if f, ok := m.board.At(i); ok {
		content = formatFlightRow(f, width, bg, styles)
	}
	return bg.FillLine(content, width)
}

// formatAirportRow renders "CODE  Name".
func formatAirportRow(a airport.Airport, width int, bg BgStyle, styles Styles) string {
	code := bg.Render(padRight(a.IATACode, 5), styles.AccentText.Bold(true))
	name := bg.Render(truncate(a.Name, maxInt(width-6, 1)), styles.Text)
	return bg.Space() + code + name
}

// formatFlightRow renders "★ DEP Name → DEST Name". Narrow terminals drop
// the departure name first.
func formatFlightRow(f flight.Flight, width int, bg BgStyle, styles Styles) string {
	mark := bg.Render("☆", styles.EmptyMark)
	if f.Favorite {
		mark = bg.Render("★", styles.FavoriteMark)
	}

	// mark, codes, arrow and spacing
	fixed := 14
	var depName, destName string
	if width >= LayoutWideWidth {
		nameWidth := maxInt((width-fixed)/2-1, 1)
		depName = truncate(f.Departure.Name, nameWidth)
		destName = truncate(f.Destination.Name, nameWidth)
	} else {
		destName = truncate(f.Destination.Name, maxInt(width-fixed, 1))
	}

	parts := []string{
		mark,
		bg.Render(f.Departure.IATACode, styles.AccentText.Bold(true)),
	}
	if depName != "" {
		parts = append(parts, bg.Render(depName, styles.MutedText))
	}
	parts = append(parts,
		bg.Render("→", styles.FaintText),
		bg.Render(f.Destination.IATACode, styles.AccentText.Bold(true)),
	)
	if destName != "" {
		parts = append(parts, bg.Render(destName, styles.Text))
	}
	return bg.Space() + bg.Join(parts, " ")
}

func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
		bgColorStr = m.theme.FocusBg
	} else {
		borderColorStr = m.theme.Border
		bgColorStr = m.theme.SurfaceAlt
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	// Build the top border with embedded title
	innerWidth := width - 2
	titleLen := lipgloss.Width(title)
	leftPad := maxInt((innerWidth-titleLen-2)/2, 0)
	rightPad := maxInt(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", maxInt(innerWidth, 0)), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(maxInt(innerWidth, 0)).Background(bg.Color())

	contentLines := strings.Split(content, "\n")
	boxHeight := height - 2

	paddedLines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		paddedLines = append(paddedLines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(paddedLines, "\n") + "\n" + bottomBorder
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
