package airport

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

const (
	cacheExpiration = 10 * time.Minute
	cacheCleanup    = 20 * time.Minute
)

// Repository implements Lookup over the airport table.
type Repository struct {
	db    *gorm.DB
	cache *cache.Cache
}

var _ Lookup = (*Repository)(nil)

// NewRepository creates a new airport repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:    db,
		cache: cache.New(cacheExpiration, cacheCleanup),
	}
}

// Search returns airports whose code or name contains query, busiest first.
// A blank query matches nothing.
func (r *Repository) Search(ctx context.Context, query string) ([]Airport, error) {
	needle := strings.ToUpper(strings.TrimSpace(query))
	if needle == "" {
		return nil, nil
	}

	key := "search:" + needle
	if cached, ok := r.cached(key); ok {
		return cached, nil
	}

	pattern := "%" + escapeLike(needle) + "%"
	var airports []Airport
	err := r.db.WithContext(ctx).
		Where(`search_key LIKE ? ESCAPE '\'`, pattern).
		Order("passengers DESC").
		Order("iata_code").
		Find(&airports).Error
	if err != nil {
		return nil, fmt.Errorf("search airports %q: %w", query, err)
	}

	r.cache.SetDefault(key, airports)
	return clone(airports), nil
}

// Destinations returns every airport reachable from code, i.e. all airports
// except the departure itself, busiest first.
func (r *Repository) Destinations(ctx context.Context, code string) ([]Airport, error) {
	code = NormalizeCode(code)

	key := "dest:" + code
	if cached, ok := r.cached(key); ok {
		return cached, nil
	}

	var airports []Airport
	err := r.db.WithContext(ctx).
		Where("iata_code <> ?", code).
		Order("passengers DESC").
		Order("iata_code").
		Find(&airports).Error
	if err != nil {
		return nil, fmt.Errorf("destinations from %q: %w", code, err)
	}

	r.cache.SetDefault(key, airports)
	return clone(airports), nil
}

// ByCodes resolves a set of IATA codes. Unknown codes are absent from the map.
func (r *Repository) ByCodes(ctx context.Context, codes []string) (map[string]Airport, error) {
	out := make(map[string]Airport, len(codes))
	if len(codes) == 0 {
		return out, nil
	}

	normalized := make([]string, 0, len(codes))
	for _, c := range codes {
		if c = NormalizeCode(c); c != "" {
			normalized = append(normalized, c)
		}
	}

	var airports []Airport
	if err := r.db.WithContext(ctx).Where("iata_code IN ?", normalized).Find(&airports).Error; err != nil {
		return nil, fmt.Errorf("airports by code: %w", err)
	}
	for _, a := range airports {
		out[a.IATACode] = a
	}
	return out, nil
}

// Count returns total number of airports
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Airport{}).Count(&count).Error
	return count, err
}

// Replace swaps the whole dataset for airports in one transaction.
func (r *Repository) Replace(ctx context.Context, airports []Airport) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&Airport{}).Error; err != nil {
			return fmt.Errorf("delete airports: %w", err)
		}
		if len(airports) == 0 {
			return nil
		}
		rows := make([]Airport, len(airports))
		for i, a := range airports {
			a.SearchKey = SearchKeyFor(a.IATACode, a.Name)
			rows[i] = a
		}
		if err := tx.CreateInBatches(rows, 100).Error; err != nil {
			return fmt.Errorf("insert airports: %w", err)
		}
		return nil
	})
	r.cache.Flush()
	return err
}

// FillSearchKeys computes the search key of rows stored without one and
// returns how many were updated.
func (r *Repository) FillSearchKeys(ctx context.Context) (int, error) {
	var missing []Airport
	if err := r.db.WithContext(ctx).Where("search_key = ''").Find(&missing).Error; err != nil {
		return 0, fmt.Errorf("find airports without search key: %w", err)
	}
	if len(missing) == 0 {
		return 0, nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, a := range missing {
			err := tx.Model(&Airport{}).
				Where("id = ?", a.ID).
				Update("search_key", SearchKeyFor(a.IATACode, a.Name)).Error
			if err != nil {
				return fmt.Errorf("update search key for %s: %w", a.IATACode, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	r.cache.Flush()
	return len(missing), nil
}

func (r *Repository) cached(key string) ([]Airport, bool) {
	v, ok := r.cache.Get(key)
	if !ok {
		return nil, false
	}
	airports, ok := v.([]Airport)
	if !ok {
		return nil, false
	}
	return clone(airports), true
}

func clone(airports []Airport) []Airport {
	if len(airports) == 0 {
		return nil
	}
	dup := make([]Airport, len(airports))
	copy(dup, airports)
	return dup
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
