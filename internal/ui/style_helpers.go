package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle renders text segments that share one background color. Every
// character, spaces included, carries the background, so rows and bars have
// no gaps where ANSI resets fall between segments.
type BgStyle struct {
	bg    lipgloss.Color
	space string
}

func NewBgStyle(bgColor string) BgStyle {
	bg := lipgloss.Color(bgColor)
	return BgStyle{
		bg:    bg,
		space: lipgloss.NewStyle().Background(bg).Render(" "),
	}
}

// Render applies style on the shared background. Spaces inside text are
// painted too; consecutive spaces are kept.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	styled := style.Background(b.bg)
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = styled.Render(w)
		}
	}
	return strings.Join(words, b.space)
}

// Space returns a single styled space.
func (b BgStyle) Space() string {
	return b.space
}

func (b BgStyle) Spaces(n int) string {
	return b.Sep(strings.Repeat(" ", n))
}

// Sep paints a literal separator such as ":" on the background.
func (b BgStyle) Sep(sep string) string {
	return lipgloss.NewStyle().Background(b.bg).Render(sep)
}

func (b BgStyle) Join(parts []string, sep string) string {
	return strings.Join(parts, b.Sep(sep))
}

func (b BgStyle) Color() lipgloss.Color {
	return b.bg
}

// FillLine pads a rendered row to width so the background reaches the
// right border.
func (b BgStyle) FillLine(content string, width int) string {
	return lipgloss.NewStyle().Background(b.bg).Width(width).Render(content)
}
