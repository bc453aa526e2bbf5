package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is a named color palette for the search screen.
type Theme struct {
	Name string

	// Backgrounds
	Background  string // help overlay backdrop
	Surface     string // header and command bar
	SurfaceAlt  string // unfocused input and list
	FocusBg     string // focused input and list
	SelectionBg string // highlighted row

	Border      string
	BorderFocus string

	// Text colors
	Text     string
	Muted    string
	Faint    string
	Accent   string
	Warning  string // logo, help keys, saved count
	Danger   string // last write error
	Favorite string // ★ on saved routes
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		// Text styles
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		// Component styles
		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		FavoriteMark: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Favorite)).
			Bold(true),

		EmptyMark: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	// Bars
	Header lipgloss.Style
	Footer lipgloss.Style
	Logo   lipgloss.Style

	// Favorite markers
	FavoriteMark lipgloss.Style
	EmptyMark    lipgloss.Style
}

// WithBackground returns a copy of s with every style painted on bgColor,
// so text never shows the terminal's own background through it.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	paint := func(st lipgloss.Style) lipgloss.Style { return st.Background(bg) }

	return Styles{
		Text:         paint(s.Text),
		MutedText:    paint(s.MutedText),
		FaintText:    paint(s.FaintText),
		AccentText:   paint(s.AccentText),
		WarningText:  paint(s.WarningText),
		DangerText:   paint(s.DangerText),
		Header:       paint(s.Header),
		Footer:       paint(s.Footer),
		Logo:         paint(s.Logo),
		FavoriteMark: paint(s.FavoriteMark),
		EmptyMark:    paint(s.EmptyMark),
	}
}

// themeOrder is the cycle order of the T key; the first entry is the default.
var themeOrder = []Theme{nightfoxTheme(), kanagawaTheme(), slateTheme()}

// GetTheme returns a theme by name, or the default theme.
func GetTheme(name string) Theme {
	for _, t := range themeOrder {
		if t.Name == name {
			return t
		}
	}
	return themeOrder[0]
}

// NextTheme returns the theme name after current in the cycle.
func NextTheme(current string) string {
	for i, t := range themeOrder {
		if t.Name == current {
			return themeOrder[(i+1)%len(themeOrder)].Name
		}
	}
	return themeOrder[0].Name
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	names := make([]string, len(themeOrder))
	for i, t := range themeOrder {
		names[i] = t.Name
	}
	return names
}

// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
func nightfoxTheme() Theme {
	return Theme{
		Name: "Nightfox",

		Background:  "#131a24", // bg0
		Surface:     "#192330", // bg1
		SurfaceAlt:  "#212e3f", // bg2
		FocusBg:     "#29394f", // bg3
		SelectionBg: "#2b3b51", // sel0
		Border:      "#39506d", // bg4
		BorderFocus: "#719cd6", // blue

		Text:     "#cdcecf", // fg1
		Muted:    "#738091", // comment
		Faint:    "#71839b", // fg3
		Accent:   "#719cd6", // blue
		Warning:  "#dbc074", // yellow
		Danger:   "#c94f6d", // red
		Favorite: "#f4a261", // orange
	}
}

// Kanagawa palette: https://github.com/rebelot/kanagawa.nvim
func kanagawaTheme() Theme {
	return Theme{
		Name: "Kanagawa",

		Background:  "#16161D", // sumiInk0
		Surface:     "#1F1F28", // sumiInk3
		SurfaceAlt:  "#2A2A37", // sumiInk4
		FocusBg:     "#2A2A37", // sumiInk4
		SelectionBg: "#2D4F67", // waveBlue1
		Border:      "#54546D", // sumiInk6
		BorderFocus: "#7E9CD8", // crystalBlue

		Text:     "#DCD7BA", // fujiWhite
		Muted:    "#C8C093", // oldWhite
		Faint:    "#727169", // fujiGray
		Accent:   "#7E9CD8", // crystalBlue
		Warning:  "#E6C384", // carpYellow
		Danger:   "#E46876", // waveRed
		Favorite: "#FF9E3B", // roninYellow
	}
}

// Slate palette from the Tailwind CSS slate and sky scales.
func slateTheme() Theme {
	return Theme{
		Name: "Slate",

		Background:  "#020617", // slate-950
		Surface:     "#0f172a", // slate-900
		SurfaceAlt:  "#1e293b", // slate-800
		FocusBg:     "#283548",
		SelectionBg: "#0284c7", // sky-600
		Border:      "#334155", // slate-700
		BorderFocus: "#38bdf8", // sky-400

		Text:     "#f1f5f9", // slate-100
		Muted:    "#94a3b8", // slate-400
		Faint:    "#64748b", // slate-500
		Accent:   "#38bdf8", // sky-400
		Warning:  "#f59e0b", // amber-500
		Danger:   "#ef4444", // red-500
		Favorite: "#fbbf24", // amber-400
	}
}
