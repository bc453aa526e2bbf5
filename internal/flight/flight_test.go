package flight

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/flightsearch/internal/airport"
	"github.com/five82/flightsearch/internal/favorite"
)

type fakeFavorites struct {
	mu    sync.Mutex
	saved map[favorite.Route]bool
	err   error
	calls int
}

func (f *fakeFavorites) IsRouteFavorite(_ context.Context, dep, dest string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.saved[favorite.NewRoute(dep, dest)], nil
}

type fakeNames struct {
	airports map[string]airport.Airport
	err      error
}

func (f fakeNames) ByCodes(_ context.Context, codes []string) (map[string]airport.Airport, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := map[string]airport.Airport{}
	for _, c := range codes {
		if a, ok := f.airports[c]; ok {
			out[c] = a
		}
	}
	return out, nil
}

var (
	sea = airport.Airport{IATACode: "SEA", Name: "Seattle-Tacoma International Airport"}
	pdx = airport.Airport{IATACode: "PDX", Name: "Portland International Airport"}
	lax = airport.Airport{IATACode: "LAX", Name: "Los Angeles International Airport"}
)

func TestDerive_JoinsEachFlightIndependently(t *testing.T) {
	favs := &fakeFavorites{saved: map[favorite.Route]bool{
		favorite.NewRoute("SEA", "LAX"): true,
	}}

	flights, err := Derive(context.Background(), sea, []airport.Airport{pdx, lax}, favs)
	require.NoError(t, err)
	require.Len(t, flights, 2)

	assert.Equal(t, "PDX", flights[0].Destination.IATACode)
	assert.False(t, flights[0].Favorite)
	assert.Equal(t, "LAX", flights[1].Destination.IATACode)
	assert.True(t, flights[1].Favorite)
	assert.Equal(t, favorite.NewRoute("SEA", "LAX"), flights[1].Route())
}

func TestDerive_SkipsDeparturesAndDuplicates(t *testing.T) {
	favs := &fakeFavorites{}

	flights, err := Derive(context.Background(), sea, []airport.Airport{pdx, sea, pdx, {IATACode: " "}, lax}, favs)
	require.NoError(t, err)
	require.Len(t, flights, 2)
	assert.Equal(t, 2, favs.calls)
}

func TestDerive_FailureFailsDerivation(t *testing.T) {
	favs := &fakeFavorites{err: errors.New("database is locked")}

	flights, err := Derive(context.Background(), sea, []airport.Airport{pdx, lax}, favs)
	require.Error(t, err)
	assert.Nil(t, flights)
	assert.Contains(t, err.Error(), "SEA")
}

func TestDerive_NoDestinations(t *testing.T) {
	flights, err := Derive(context.Background(), sea, nil, &fakeFavorites{})
	require.NoError(t, err)
	assert.Empty(t, flights)
}

func TestFromFavorites(t *testing.T) {
	names := fakeNames{airports: map[string]airport.Airport{"SEA": sea, "PDX": pdx}}
	favs := []favorite.Favorite{
		{ID: 1, DepartureCode: "SEA", DestinationCode: "PDX"},
		{ID: 2, DepartureCode: "PDX", DestinationCode: "XXX"},
	}

	flights, err := FromFavorites(context.Background(), favs, names)
	require.NoError(t, err)
	require.Len(t, flights, 2)

	assert.True(t, flights[0].Favorite)
	assert.Equal(t, pdx.Name, flights[0].Destination.Name)
	assert.Equal(t, "XXX", flights[1].Destination.IATACode)
	assert.Empty(t, flights[1].Destination.Name)
}

func TestFromFavorites_Errors(t *testing.T) {
	_, err := FromFavorites(context.Background(),
		[]favorite.Favorite{{DepartureCode: "SEA", DestinationCode: "PDX"}},
		fakeNames{err: errors.New("boom")})
	assert.Error(t, err)

	flights, err := FromFavorites(context.Background(), nil, fakeNames{})
	require.NoError(t, err)
	assert.Empty(t, flights)
}
