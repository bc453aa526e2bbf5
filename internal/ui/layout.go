package ui

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 80

	// LayoutWideWidth is the minimum width to show airport names on both
	// ends of a flight row.
	LayoutWideWidth = 110
)

// chromeHeight is the number of screen lines that are not list rows:
// header, search input, command bar and the list box borders.
const chromeHeight = 5

// Empty-state messages.
const (
	emptySearchMessage    = "No results found"
	emptyFavoritesMessage = "No favorite routes yet"
	emptyFlightsMessage   = "No destinations"
)
