package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderMain renders the full screen.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderInput())
	b.WriteString("\n")
	b.WriteString(m.renderList())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())

	return b.String()
}

// renderHeader renders the title, list summary and last write error.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{
		bg.Render("flightsearch", styles.Logo),
		bg.Render(m.listTitle(), styles.AccentText),
		bg.Render(fmt.Sprintf("%d", m.rowCount()), styles.MutedText),
	}

	if m.mode != modeAirports && m.width >= LayoutCompactWidth {
		saved := 0
		for _, f := range m.board.Flights() {
			if f.Favorite {
				saved++
			}
		}
		parts = append(parts, bg.Render(fmt.Sprintf("★ %d", saved), styles.WarningText))
	}

	if m.lastErr != "" {
		limit := maxInt(m.width/2, 20)
		parts = append(parts, bg.Render(truncate(m.lastErr, limit), styles.DangerText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, sep))
}

// renderInput renders the search field line.
func (m Model) renderInput() string {
	bgColor := ternary(m.focus == paneInput, m.theme.FocusBg, m.theme.SurfaceAlt)
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bgColor)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(m.input.View())
}

// listTitle names the current list.
func (m Model) listTitle() string {
	switch m.mode {
	case modeAirports:
		return "Airports"
	case modeFlights:
		return "Flights from " + m.departure.IATACode
	default:
		return "Favorite routes"
	}
}

func (m Model) renderCommandBar() string {
	// Command bar uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.focus == paneInput && m.mode == modeAirports:
		commands = []cmd{
			{"enter", "Select"},
			{"up/down", "Navigate"},
			{"Tab", "List"},
			{"esc", "Clear"},
		}
	case m.focus == paneInput:
		commands = []cmd{
			{"ctrl+f", "Favorite"},
			{"up/down", "Navigate"},
			{"Tab", "List"},
			{"esc", "Clear"},
		}
	case m.mode == modeAirports:
		commands = []cmd{
			{"enter", "Select"},
			{"j/k", "Navigate"},
			{"Tab", "Search"},
			{"q", "Quit"},
			{"?", "More"},
		}
	case m.mode == modeFavorites:
		commands = []cmd{
			{"f", "Favorite"},
			{"d", "Remove"},
			{"j/k", "Navigate"},
			{"Tab", "Search"},
			{"q", "Quit"},
			{"?", "More"},
		}
	default: // flights
		commands = []cmd{
			{"f", "Favorite"},
			{"j/k", "Navigate"},
			{"Tab", "Search"},
			{"q", "Quit"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	// Add theme indicator
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Footer.Width(m.width).Render(strings.Join(segments, sep))
}
