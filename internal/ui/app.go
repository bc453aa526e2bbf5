package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/flightsearch/internal/airport"
	"github.com/five82/flightsearch/internal/favorite"
	"github.com/five82/flightsearch/internal/flight"
	"github.com/five82/flightsearch/internal/logging"
	"github.com/five82/flightsearch/internal/prefs"
	"github.com/five82/flightsearch/internal/task"
)

// listMode is what the result list currently shows.
type listMode int

const (
	modeFavorites listMode = iota
	modeAirports
	modeFlights
)

// pane is the focused half of the screen.
type pane int

const (
	paneInput pane = iota
	paneList
)

// noOffset marks that no restored scroll offset is waiting to be applied.
const noOffset = -1

// FavoriteStore is the favorites persistence the screen reads and writes.
type FavoriteStore interface {
	All(ctx context.Context) ([]favorite.Favorite, error)
	IsRouteFavorite(ctx context.Context, departure, destination string) (bool, error)
	Toggle(ctx context.Context, route favorite.Route) (bool, error)
	Remove(ctx context.Context, fav favorite.Favorite) error
	Subscribe() (<-chan struct{}, func())
}

// PrefsStore is the preference persistence the screen restores from and
// snapshots into.
type PrefsStore interface {
	Theme() string
	Watch() (<-chan prefs.State, func())
	SaveSearchQuery(query string) error
	SaveState(state prefs.State) error
	SaveTheme(name string) error
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Logger    *zap.SugaredLogger
	Airports  airport.Lookup
	Favorites FavoriteStore
	Prefs     PrefsStore
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Collaborators
	ctx       context.Context
	logger    *zap.SugaredLogger
	airports  airport.Lookup
	favorites FavoriteStore
	prefs     PrefsStore
	tasks     *task.Registry

	// UI state
	theme    Theme
	keys     keyMap
	width    int
	height   int
	ready    bool
	focus    pane
	showHelp bool
	input    textinput.Model

	// List state
	mode      listMode
	results   []airport.Airport
	board     *flight.Board
	departure airport.Airport
	cursor    int
	offset    int
	lastErr   string

	// Persistence
	persisted     prefs.State
	prefsSeen     bool
	pendingOffset int
	prefsCh       <-chan prefs.State
	stopPrefs     func()
	favoritesCh   <-chan struct{}
	stopFavorites func()
}

// New creates a new Bubble Tea model and subscribes to the stores.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "Search airports by code or name"
	input.CharLimit = 64
	input.Focus()

	themeName := ""
	if opts.Prefs != nil {
		themeName = opts.Prefs.Theme()
	}

	m := Model{
		ctx:           ctx,
		logger:        logging.OrNop(opts.Logger),
		airports:      opts.Airports,
		favorites:     opts.Favorites,
		prefs:         opts.Prefs,
		tasks:         task.NewRegistry(ctx),
		theme:         GetTheme(themeName),
		keys:          DefaultKeyMap(),
		input:         input,
		mode:          modeFavorites,
		pendingOffset: noOffset,
		stopPrefs:     func() {},
		stopFavorites: func() {},
	}
	if opts.Prefs != nil {
		m.prefsCh, m.stopPrefs = opts.Prefs.Watch()
	}
	if opts.Favorites != nil {
		m.favoritesCh, m.stopFavorites = opts.Favorites.Subscribe()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.prefsCh != nil {
		// The first watched state drives the initial list.
		cmds = append(cmds, waitForPrefs(m.ctx, m.prefsCh))
	} else {
		cmds = append(cmds, m.loadFavorites())
	}
	cmds = append(cmds, waitForFavorites(m.ctx, m.favoritesCh))
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = maxInt(msg.Width-6, 10)
		m.ready = true
		m.keepCursorVisible()
		return m, nil

	case tea.BlurMsg:
		m.saveState()
		return m, nil

	case tea.FocusMsg:
		return m, nil

	case shutdownMsg:
		return m.quit()

	case prefsMsg:
		return m.handlePrefs(prefs.State(msg))

	case favoritesChangedMsg:
		return m.handleFavoritesChanged()

	case searchResultMsg:
		return m.handleSearchResult(msg), nil

	case flightsMsg:
		return m.handleFlights(msg), nil

	case favoritesMsg:
		return m.handleFavorites(msg), nil

	case toggledMsg:
		return m.handleToggled(msg), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m.quit()

	case key.Matches(msg, m.keys.Tab):
		m.toggleFocus()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.setFocus(paneInput)
		if m.input.Value() == "" {
			return m, nil
		}
		m.input.SetValue("")
		m.pendingOffset = noOffset
		return m.queryChanged()
	}

	if m.focus == paneInput {
		return m.handleInputKey(msg)
	}
	return m.handleListKey(msg)
}

// handleInputKey routes keys while the search field has focus. Anything that
// is not a list shortcut goes to the text field, and a changed value counts
// as a user edit.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.InputUp):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keys.InputDown):
		m.moveCursor(1)
		return m, nil
	case key.Matches(msg, m.keys.InputSelection):
		if m.mode == modeAirports {
			return m.activate()
		}
		return m, nil
	case key.Matches(msg, m.keys.InputFavorite):
		if m.mode != modeAirports {
			return m.toggleSelected()
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	m.pendingOffset = noOffset
	next, searchCmd := m.queryChanged()
	return next, tea.Batch(cmd, searchCmd)
}

// handleListKey routes keys while the result list has focus.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefs != nil {
			if err := m.prefs.SaveTheme(m.theme.Name); err != nil {
				m.reportWriteError("save theme", err)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.visibleRows())
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.visibleRows())
	case key.Matches(msg, m.keys.Top):
		m.moveCursor(-m.rowCount())
	case key.Matches(msg, m.keys.Bottom):
		m.moveCursor(m.rowCount())

	case key.Matches(msg, m.keys.Select):
		return m.activate()

	case key.Matches(msg, m.keys.ToggleFavorite):
		if m.mode != modeAirports {
			return m.toggleSelected()
		}

	case key.Matches(msg, m.keys.Delete):
		if m.mode == modeFavorites {
			return m.removeSelected()
		}
	}
	return m, nil
}

// activate selects the highlighted airport or toggles the highlighted flight.
func (m Model) activate() (tea.Model, tea.Cmd) {
	if m.mode == modeAirports {
		if m.cursor < 0 || m.cursor >= len(m.results) {
			return m, nil
		}
		return m.selectAirport(m.results[m.cursor])
	}
	return m.toggleSelected()
}

func (m *Model) toggleFocus() {
	if m.focus == paneInput {
		m.setFocus(paneList)
		return
	}
	m.setFocus(paneInput)
}

func (m *Model) setFocus(p pane) {
	m.focus = p
	if p == paneInput {
		m.input.Focus()
		return
	}
	m.input.Blur()
}

// quit snapshots the screen state, cancels outstanding work and exits.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.saveState()
	m.tasks.CancelAll()
	m.stopPrefs()
	m.stopFavorites()
	return m, tea.Quit
}

// reportWriteError logs a failed user-initiated write and surfaces it in the
// header. The screen keeps running.
func (m *Model) reportWriteError(action string, err error) {
	m.logger.Errorw(action+" failed", "error", err)
	m.lastErr = action + ": " + err.Error()
}

// rowCount returns the number of rows in the current list.
func (m Model) rowCount() int {
	if m.mode == modeAirports {
		return len(m.results)
	}
	return m.board.Len()
}

// selectedFlight returns the highlighted flight, if the list shows flights.
func (m Model) selectedFlight() (flight.Flight, bool) {
	if m.mode == modeAirports {
		return flight.Flight{}, false
	}
	return m.board.At(m.cursor)
}

// query returns the trimmed search text.
func (m Model) query() string {
	return strings.TrimSpace(m.input.Value())
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled. Cancellation quits the screen the same way the user would.
func Run(ctx context.Context, opts Options) error {
	if opts.Context == nil {
		opts.Context = ctx
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			p.Send(shutdownMsg{})
		case <-done:
		}
	}()

	_, err := p.Run()
	return err
}
