package flight

import "github.com/five82/flightsearch/internal/favorite"

// Board is the displayed flight list, addressed by route rather than by
// position. Order is the order flights were added; a route appears once.
type Board struct {
	order   []favorite.Route
	byRoute map[favorite.Route]Flight
}

// NewBoard builds a board from flights. Later duplicates of a route are dropped.
func NewBoard(flights []Flight) *Board {
	b := &Board{byRoute: make(map[favorite.Route]Flight, len(flights))}
	for _, f := range flights {
		route := f.Route()
		if _, ok := b.byRoute[route]; ok {
			continue
		}
		b.order = append(b.order, route)
		b.byRoute[route] = f
	}
	return b
}

// Len returns the number of flights.
func (b *Board) Len() int {
	if b == nil {
		return 0
	}
	return len(b.order)
}

// At returns the flight at display position i.
func (b *Board) At(i int) (Flight, bool) {
	if b == nil || i < 0 || i >= len(b.order) {
		return Flight{}, false
	}
	return b.byRoute[b.order[i]], true
}

// Get returns the flight for route.
func (b *Board) Get(route favorite.Route) (Flight, bool) {
	if b == nil {
		return Flight{}, false
	}
	f, ok := b.byRoute[route]
	return f, ok
}

// IndexOf returns the display position of route, or -1.
func (b *Board) IndexOf(route favorite.Route) int {
	if b == nil {
		return -1
	}
	for i, r := range b.order {
		if r == route {
			return i
		}
	}
	return -1
}

// Flights returns a copy of the flights in display order.
func (b *Board) Flights() []Flight {
	if b == nil {
		return nil
	}
	out := make([]Flight, 0, len(b.order))
	for _, r := range b.order {
		out = append(out, b.byRoute[r])
	}
	return out
}

// SetFavorite updates the favorite flag of route. It reports whether the
// route is on the board.
func (b *Board) SetFavorite(route favorite.Route, saved bool) bool {
	if b == nil {
		return false
	}
	f, ok := b.byRoute[route]
	if !ok {
		return false
	}
	f.Favorite = saved
	b.byRoute[route] = f
	return true
}

// Remove drops route from the board. It reports whether it was present.
func (b *Board) Remove(route favorite.Route) bool {
	idx := b.IndexOf(route)
	if idx < 0 {
		return false
	}
	b.order = append(b.order[:idx], b.order[idx+1:]...)
	delete(b.byRoute, route)
	return true
}
