package favorite

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository handles favorite table operations
type Repository struct {
	db    *gorm.DB
	locks routeLocks

	mu      sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

// NewRepository creates a new favorite repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:    db,
		locks: routeLocks{held: make(map[Route]*routeLock)},
		subs:  make(map[int]chan struct{}),
	}
}

// All returns every favorite in insertion order.
func (r *Repository) All(ctx context.Context) ([]Favorite, error) {
	var favorites []Favorite
	if err := r.db.WithContext(ctx).Order("id").Find(&favorites).Error; err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return favorites, nil
}

// IsRouteFavorite reports whether departure -> destination is saved.
func (r *Repository) IsRouteFavorite(ctx context.Context, departure, destination string) (bool, error) {
	route := NewRoute(departure, destination)
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Favorite{}).
		Where("departure_code = ? AND destination_code = ?", route.Departure, route.Destination).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("favorite status %s: %w", route, err)
	}
	return count > 0, nil
}

// Get returns the favorite for departure -> destination, or nil when the
// route is not saved.
func (r *Repository) Get(ctx context.Context, departure, destination string) (*Favorite, error) {
	route := NewRoute(departure, destination)
	var fav Favorite
	err := r.db.WithContext(ctx).
		Where("departure_code = ? AND destination_code = ?", route.Departure, route.Destination).
		First(&fav).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get favorite %s: %w", route, err)
	}
	return &fav, nil
}

// Add saves a favorite. Adding a route that is already saved is a no-op.
func (r *Repository) Add(ctx context.Context, fav Favorite) error {
	row := fav.Route().Favorite()
	if row.DepartureCode == "" || row.DestinationCode == "" {
		return fmt.Errorf("add favorite: incomplete route %s", fav.Route())
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row)
	if result.Error != nil {
		return fmt.Errorf("add favorite %s: %w", row.Route(), result.Error)
	}
	if result.RowsAffected > 0 {
		r.notify()
	}
	return nil
}

// Remove deletes a favorite, by ID when known and by route otherwise.
func (r *Repository) Remove(ctx context.Context, fav Favorite) error {
	tx := r.db.WithContext(ctx)
	if fav.ID != 0 {
		tx = tx.Where("id = ?", fav.ID)
	} else {
		route := fav.Route()
		tx = tx.Where("departure_code = ? AND destination_code = ?", route.Departure, route.Destination)
	}
	result := tx.Delete(&Favorite{})
	if result.Error != nil {
		return fmt.Errorf("remove favorite %s: %w", fav.Route(), result.Error)
	}
	if result.RowsAffected > 0 {
		r.notify()
	}
	return nil
}

// Toggle flips the saved state of route and returns the new state.
// Concurrent toggles of the same route are serialized.
func (r *Repository) Toggle(ctx context.Context, route Route) (bool, error) {
	route = NewRoute(route.Departure, route.Destination)
	unlock := r.locks.lock(route)
	defer unlock()

	saved, err := r.IsRouteFavorite(ctx, route.Departure, route.Destination)
	if err != nil {
		return false, err
	}
	if saved {
		fav, err := r.Get(ctx, route.Departure, route.Destination)
		if err != nil {
			return true, err
		}
		if fav != nil {
			if err := r.Remove(ctx, *fav); err != nil {
				return true, err
			}
		}
		return false, nil
	}
	if err := r.Add(ctx, route.Favorite()); err != nil {
		return false, err
	}
	return true, nil
}

// Subscribe returns a channel that receives a signal after every change.
// Signals are coalesced when the reader falls behind. Call the returned
// func to stop receiving.
func (r *Repository) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = ch
	r.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.subs, id)
			r.mu.Unlock()
		})
	}
}

func (r *Repository) notify() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ch := range r.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

type routeLock struct {
	mu   sync.Mutex
	refs int
}

// routeLocks hands out one mutex per route, dropping it once unused.
type routeLocks struct {
	mu   sync.Mutex
	held map[Route]*routeLock
}

func (l *routeLocks) lock(route Route) func() {
	l.mu.Lock()
	rl, ok := l.held[route]
	if !ok {
		rl = &routeLock{}
		l.held[route] = rl
	}
	rl.refs++
	l.mu.Unlock()

	rl.mu.Lock()
	return func() {
		rl.mu.Unlock()
		l.mu.Lock()
		rl.refs--
		if rl.refs == 0 {
			delete(l.held, route)
		}
		l.mu.Unlock()
	}
}
