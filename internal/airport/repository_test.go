package airport

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "airports.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "open test database")
	require.NoError(t, db.AutoMigrate(&Airport{}), "migrate")
	return db
}

func seededRepo(t *testing.T) *Repository {
	t.Helper()
	repo := NewRepository(setupTestDB(t))
	require.NoError(t, repo.Replace(context.Background(), []Airport{
		{IATACode: "SEA", Name: "Seattle-Tacoma International Airport", Passengers: 49849520},
		{IATACode: "PDX", Name: "Portland International Airport", Passengers: 19074460},
		{IATACode: "LAX", Name: "Los Angeles International Airport", Passengers: 87534384},
		{IATACode: "OPO", Name: "Francisco Sá Carneiro Airport", Passengers: 5053134},
		{IATACode: "ZRH", Name: "Zürich Airport", Passengers: 2},
		{IATACode: "ZZ_", Name: "Odd 100% Field", Passengers: 1},
	}))
	return repo
}

func codes(airports []Airport) []string {
	out := make([]string, 0, len(airports))
	for _, a := range airports {
		out = append(out, a.IATACode)
	}
	return out
}

func TestSearch_MatchesCodeOrNameCaseInsensitive(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	got, err := repo.Search(ctx, "portland")
	require.NoError(t, err)
	assert.Equal(t, []string{"PDX"}, codes(got))

	got, err = repo.Search(ctx, "opo")
	require.NoError(t, err)
	assert.Equal(t, []string{"OPO"}, codes(got))

	// "Airport" appears in most names, so "por" matches broadly.
	got, err = repo.Search(ctx, "por")
	require.NoError(t, err)
	assert.Equal(t, []string{"LAX", "SEA", "PDX", "OPO", "ZRH"}, codes(got))

	got, err = repo.Search(ctx, "  lax ")
	require.NoError(t, err)
	assert.Equal(t, []string{"LAX"}, codes(got))

	for _, query := range []string{"sá", "Sá", "SÁ", "sá carneiro"} {
		got, err = repo.Search(ctx, query)
		require.NoError(t, err)
		assert.Equal(t, []string{"OPO"}, codes(got), "query %q", query)
	}
	for _, query := range []string{"zür", "Zürich", "ZÜRICH"} {
		got, err = repo.Search(ctx, query)
		require.NoError(t, err)
		assert.Equal(t, []string{"ZRH"}, codes(got), "query %q", query)
	}
}

func TestSearch_DoesNotMatchAcrossCodeAndName(t *testing.T) {
	repo := seededRepo(t)

	got, err := repo.Search(context.Background(), "pdx portland")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFillSearchKeys_BackfillsOldRows(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	// Rows written before the search_key column existed.
	require.NoError(t, db.Create(&Airport{IATACode: "ZRH", Name: "Zürich Airport"}).Error)
	require.NoError(t, db.Model(&Airport{}).Where("iata_code = ?", "ZRH").Update("search_key", "").Error)

	got, err := repo.Search(ctx, "zür")
	require.NoError(t, err)
	assert.Empty(t, got)

	n, err := repo.FillSearchKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err = repo.Search(ctx, "zür")
	require.NoError(t, err)
	assert.Equal(t, []string{"ZRH"}, codes(got), "cache flushed after backfill")

	n, err = repo.FillSearchKeys(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSearch_OrderedByPassengers(t *testing.T) {
	repo := seededRepo(t)

	got, err := repo.Search(context.Background(), "international")
	require.NoError(t, err)
	assert.Equal(t, []string{"LAX", "SEA", "PDX"}, codes(got))
}

func TestSearch_BlankAndNoMatch(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	got, err := repo.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = repo.Search(ctx, "xyz")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearch_WildcardsMatchLiterally(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	got, err := repo.Search(ctx, "%")
	require.NoError(t, err)
	assert.Equal(t, []string{"ZZ_"}, codes(got))

	got, err = repo.Search(ctx, "_")
	require.NoError(t, err)
	assert.Equal(t, []string{"ZZ_"}, codes(got))
}

func TestSearch_ResultsAreCopies(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	first, err := repo.Search(ctx, "sea")
	require.NoError(t, err)
	require.Len(t, first, 1)
	first[0].Name = "mutated"

	second, err := repo.Search(ctx, "sea")
	require.NoError(t, err)
	assert.Equal(t, "Seattle-Tacoma International Airport", second[0].Name)
}

func TestDestinations_ExcludesDeparture(t *testing.T) {
	repo := seededRepo(t)

	got, err := repo.Destinations(context.Background(), "sea")
	require.NoError(t, err)
	assert.Equal(t, []string{"LAX", "PDX", "OPO", "ZRH", "ZZ_"}, codes(got))
}

func TestByCodes(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	got, err := repo.ByCodes(ctx, []string{"sea", "PDX", "NOPE", ""})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Portland International Airport", got["PDX"].Name)
	assert.Equal(t, "SEA", got["SEA"].IATACode)

	empty, err := repo.ByCodes(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestReplace_FlushesCache(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	got, err := repo.Search(ctx, "sea")
	require.NoError(t, err)
	require.Len(t, got, 1)

	require.NoError(t, repo.Replace(ctx, []Airport{{IATACode: "BOS", Name: "Logan International Airport"}}))

	got, err = repo.Search(ctx, "sea")
	require.NoError(t, err)
	assert.Empty(t, got)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestSearch_CancelledContext(t *testing.T) {
	repo := seededRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Search(ctx, "lax")
	assert.Error(t, err)
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "SEA", NormalizeCode("  sea "))
	assert.Equal(t, "", NormalizeCode("   "))
}
