// Package flight derives the route list shown for a departure airport and
// joins each route against the saved favorites.
package flight

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/five82/flightsearch/internal/airport"
	"github.com/five82/flightsearch/internal/favorite"
)

// joinLimit bounds concurrent favorite lookups during a derivation.
const joinLimit = 8

// Flight pairs a departure with a destination. Favorite reflects the
// favorites store at the time the flight was joined.
type Flight struct {
	Departure   airport.Airport
	Destination airport.Airport
	Favorite    bool
}

// Route returns the identity of the flight.
func (f Flight) Route() favorite.Route {
	return favorite.NewRoute(f.Departure.IATACode, f.Destination.IATACode)
}

// FavoriteChecker reports the saved state of a route.
type FavoriteChecker interface {
	IsRouteFavorite(ctx context.Context, departure, destination string) (bool, error)
}

// NameResolver resolves IATA codes to airports.
type NameResolver interface {
	ByCodes(ctx context.Context, codes []string) (map[string]airport.Airport, error)
}

// Derive builds one flight per distinct destination and joins its favorite
// status. The departure itself and repeated destinations are skipped. Any
// failed lookup fails the whole derivation.
func Derive(ctx context.Context, departure airport.Airport, destinations []airport.Airport, favs FavoriteChecker) ([]Flight, error) {
	seen := map[string]struct{}{airport.NormalizeCode(departure.IATACode): {}}
	flights := make([]Flight, 0, len(destinations))
	for _, dest := range destinations {
		code := airport.NormalizeCode(dest.IATACode)
		if code == "" {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		flights = append(flights, Flight{Departure: departure, Destination: dest})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(joinLimit)
	for i := range flights {
		g.Go(func() error {
			route := flights[i].Route()
			saved, err := favs.IsRouteFavorite(gctx, route.Departure, route.Destination)
			if err != nil {
				return err
			}
			flights[i].Favorite = saved
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("join favorites for %s: %w", departure.IATACode, err)
	}
	return flights, nil
}

// FromFavorites turns saved routes into flights, resolving airport names.
// Codes missing from the dataset keep an empty name.
func FromFavorites(ctx context.Context, favorites []favorite.Favorite, names NameResolver) ([]Flight, error) {
	if len(favorites) == 0 {
		return nil, nil
	}

	codes := make([]string, 0, len(favorites)*2)
	for _, fav := range favorites {
		codes = append(codes, fav.DepartureCode, fav.DestinationCode)
	}
	airports, err := names.ByCodes(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("resolve favorite airports: %w", err)
	}

	resolve := func(code string) airport.Airport {
		if a, ok := airports[code]; ok {
			return a
		}
		return airport.Airport{IATACode: code}
	}

	flights := make([]Flight, 0, len(favorites))
	for _, fav := range favorites {
		route := fav.Route()
		flights = append(flights, Flight{
			Departure:   resolve(route.Departure),
			Destination: resolve(route.Destination),
			Favorite:    true,
		})
	}
	return flights, nil
}
