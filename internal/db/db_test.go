package db

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/five82/flightsearch/internal/airport"
	"github.com/five82/flightsearch/internal/favorite"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := Open(filepath.Join(t.TempDir(), "nested", "flights.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gdb) })
	return gdb
}

func TestOpen_CreatesSchema(t *testing.T) {
	gdb := openTestDB(t)

	assert.True(t, gdb.Migrator().HasTable(&airport.Airport{}))
	assert.True(t, gdb.Migrator().HasTable(&favorite.Favorite{}))
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestParseAirports_NormalizesAndSkipsInvalid(t *testing.T) {
	input := `[
		{"iata_code": " sea ", "name": " Seattle-Tacoma International Airport ", "passengers": 100},
		{"iata_code": "SEA", "name": "Duplicate", "passengers": 1},
		{"iata_code": "TOOLONG", "name": "Bad code", "passengers": 1},
		{"iata_code": "PDX", "name": "", "passengers": 1},
		{"iata_code": "OPO", "name": "Francisco Sá Carneiro Airport", "passengers": -5}
	]`

	airports, err := ParseAirports(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, airports, 2)

	assert.Equal(t, "SEA", airports[0].IATACode)
	assert.Equal(t, "Seattle-Tacoma International Airport", airports[0].Name)
	assert.Equal(t, int64(100), airports[0].Passengers)
	assert.Equal(t, "OPO", airports[1].IATACode)
	assert.Zero(t, airports[1].Passengers)
}

func TestParseAirports_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", `{"iata_code":`},
		{"empty list", `[]`},
		{"nothing valid", `[{"iata_code": "X", "name": "n"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAirports(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestSeed_ReplacesAirports(t *testing.T) {
	gdb := openTestDB(t)
	ctx := context.Background()

	n, err := Seed(ctx, gdb, strings.NewReader(`[{"iata_code":"SEA","name":"Seattle","passengers":3}]`), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = Seed(ctx, gdb, strings.NewReader(`[
		{"iata_code":"PDX","name":"Portland","passengers":2},
		{"iata_code":"LAX","name":"Los Angeles","passengers":5}
	]`), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var codes []string
	require.NoError(t, gdb.Model(&airport.Airport{}).Order("iata_code").Pluck("iata_code", &codes).Error)
	assert.Equal(t, []string{"LAX", "PDX"}, codes)
}

func TestSeed_InvalidDatasetKeepsExisting(t *testing.T) {
	gdb := openTestDB(t)
	ctx := context.Background()

	_, err := Seed(ctx, gdb, strings.NewReader(`[{"iata_code":"SEA","name":"Seattle","passengers":3}]`), nil)
	require.NoError(t, err)

	_, err = Seed(ctx, gdb, strings.NewReader(`not json`), nil)
	require.Error(t, err)

	count, err := airport.NewRepository(gdb).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestEnsureSeeded_OnlyWhenEmpty(t *testing.T) {
	gdb := openTestDB(t)
	ctx := context.Background()
	repo := airport.NewRepository(gdb)

	require.NoError(t, EnsureSeeded(ctx, gdb, nil))
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Greater(t, count, int64(10))

	got, err := repo.Search(ctx, "portland")
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "PDX", got[0].IATACode)

	_, err = Seed(ctx, gdb, strings.NewReader(`[{"iata_code":"SEA","name":"Seattle","passengers":3}]`), nil)
	require.NoError(t, err)
	require.NoError(t, EnsureSeeded(ctx, gdb, nil))
	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "existing dataset must not be reseeded")
}

func TestEnsureSeeded_FillsMissingSearchKeys(t *testing.T) {
	gdb := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, gdb.Create(&airport.Airport{IATACode: "ZRH", Name: "Zürich Airport"}).Error)
	require.NoError(t, gdb.Model(&airport.Airport{}).Where("iata_code = ?", "ZRH").Update("search_key", "").Error)

	require.NoError(t, EnsureSeeded(ctx, gdb, nil))

	got, err := airport.NewRepository(gdb).Search(ctx, "zürich")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ZRH", got[0].IATACode)
}
