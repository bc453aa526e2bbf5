package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the search screen.
type keyMap struct {
	// Global
	Quit       key.Binding
	ForceQuit  key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	Escape     key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// List actions
	Select         key.Binding
	ToggleFavorite key.Binding
	Delete         key.Binding

	// Search input
	InputUp        key.Binding
	InputDown      key.Binding
	InputFavorite  key.Binding
	InputSelection key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit from anywhere"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "Switch input/list"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Clear search"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g/home", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G/end", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdown", "Page down"),
		),

		// List actions
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Select airport / toggle favorite"),
		),
		ToggleFavorite: key.NewBinding(
			key.WithKeys(" ", "f"),
			key.WithHelp("space/f", "Toggle favorite"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "Remove favorite route"),
		),

		// Search input: plain letters must reach the text field.
		InputUp: key.NewBinding(
			key.WithKeys("up"),
		),
		InputDown: key.NewBinding(
			key.WithKeys("down"),
		),
		InputFavorite: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "Toggle favorite"),
		),
		InputSelection: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Select highlighted airport"),
		),
	}
}

// helpSectionTitles names the groups returned by FullHelp, in order.
var helpSectionTitles = []string{"Search", "Navigation", "List", "General"}

// FullHelp returns key bindings for the help overlay, grouped as
// helpSectionTitles.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.InputSelection, k.InputFavorite, k.Escape},
		{k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown},
		{k.Select, k.ToggleFavorite, k.Delete},
		{k.Tab, k.CycleTheme, k.Help, k.Quit, k.ForceQuit},
	}
}
