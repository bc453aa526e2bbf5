package prefs

import "sync"

// State is the persisted screen state: the last search text and the first
// visible row of the result list.
type State struct {
	SearchQuery    string
	ScrollPosition int
}

// Store is the live preferences file. Saves go straight to disk and are
// published to watchers.
type Store struct {
	path string

	mu       sync.Mutex
	prefs    Prefs
	watchers map[int]chan State
	nextID   int
}

// Open loads the preferences at path (defaults when missing) into a Store.
func Open(path string) *Store {
	p, _ := Load(path)
	return &Store{
		path:     path,
		prefs:    p,
		watchers: make(map[int]chan State),
	}
}

// Current returns the stored screen state.
func (s *Store) Current() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stateOf(s.prefs)
}

// Theme returns the stored theme name.
func (s *Store) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.Theme
}

// Watch returns a channel carrying the current state immediately and then
// every distinct state after it. A slow reader only sees the latest value.
// Call the returned func to stop watching.
func (s *Store) Watch() (<-chan State, func()) {
	ch := make(chan State, 1)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = ch
	ch <- stateOf(s.prefs)
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.watchers, id)
			s.mu.Unlock()
		})
	}
}

// SaveSearchQuery persists the search text.
func (s *Store) SaveSearchQuery(query string) error {
	return s.update(func(p *Prefs) { p.SearchQuery = query })
}

// SaveScrollPosition persists the first visible row. Negative values are
// stored as zero.
func (s *Store) SaveScrollPosition(position int) error {
	return s.update(func(p *Prefs) { p.ScrollPosition = position })
}

// SaveState persists both screen values with a single write.
func (s *Store) SaveState(state State) error {
	return s.update(func(p *Prefs) {
		p.SearchQuery = state.SearchQuery
		p.ScrollPosition = state.ScrollPosition
	})
}

// SaveTheme persists the theme name.
func (s *Store) SaveTheme(name string) error {
	return s.update(func(p *Prefs) { p.Theme = name })
}

// update applies fn and writes the result. Unchanged values write nothing;
// a failed write leaves the in-memory state untouched.
func (s *Store) update(fn func(*Prefs)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.prefs
	fn(&next)
	if next.ScrollPosition < 0 {
		next.ScrollPosition = 0
	}
	if next == s.prefs {
		return nil
	}

	if err := Save(s.path, next); err != nil {
		return err
	}

	changed := stateOf(next) != stateOf(s.prefs)
	s.prefs = next
	if changed {
		s.broadcast(stateOf(next))
	}
	return nil
}

func (s *Store) broadcast(state State) {
	for _, ch := range s.watchers {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- state:
		default:
		}
	}
}

func stateOf(p Prefs) State {
	return State{SearchQuery: p.SearchQuery, ScrollPosition: p.ScrollPosition}
}
