package repository

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/shenikar/estate_tracker/internal/models"
	"github.com/shenikar/estate_tracker/internal/service"
	"github.com/shenikar/estate_tracker/pkg/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteRepo(t *testing.T) service.LocationStore {
	ctx := context.Background()
	db, err := sqlite.NewSQLiteDB(ctx, filepath.Join(t.TempDir(), "locations.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, sqlite.Migrate(db))
	return NewSQLiteLocationRepository(db)
}

func sampleAt(place, day string, hour int) *models.LocationSample {
	captured, err := time.Parse(time.RFC3339, fmt.Sprintf("%sT%02d:00:00Z", day, hour))
	if err != nil {
		panic(err)
	}
	return models.NewLocationSample(models.Fix{
		Latitude:  39.78,
		Longitude: -89.65,
		Timestamp: captured,
	}, place, captured.Add(time.Second), time.UTC)
}

func TestSQLiteAppend_AssignsSequentialIDs(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	ctx := context.Background()

	first, err := repo.Append(ctx, sampleAt("Springfield", "2024-01-01", 9))
	require.NoError(t, err)
	second, err := repo.Append(ctx, sampleAt("Springfield", "2024-01-01", 10))
	require.NoError(t, err)

	assert.Greater(t, second, first)
}

func TestSQLiteAggregateByPlace_Scenario(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	ctx := context.Background()

	for _, s := range []*models.LocationSample{
		sampleAt("Springfield", "2024-01-01", 9),
		sampleAt("Capital City", "2024-01-01", 12),
		sampleAt("Springfield", "2024-01-02", 9),
		sampleAt("Springfield", "2024-01-02", 18),
	} {
		_, err := repo.Append(ctx, s)
		require.NoError(t, err)
	}

	stats, err := repo.AggregateByPlace(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.PlaceStats{
		{Place: "Springfield", DaysSpent: 2},
		{Place: "Capital City", DaysSpent: 1},
	}, stats)

	// Повторный запрос без записей дает тот же результат
	again, err := repo.AggregateByPlace(ctx)
	require.NoError(t, err)
	assert.Equal(t, stats, again)
}

func TestSQLiteAggregateByPlace_CountsDistinctDays(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	ctx := context.Background()
	rnd := rand.New(rand.NewSource(42))

	places := []string{"Soho", "Mitte", "Old Town", "Shelbyville"}
	days := []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04", "2024-03-05"}
	expected := make(map[string]map[string]struct{})

	for i := 0; i < 200; i++ {
		place := places[rnd.Intn(len(places))]
		day := days[rnd.Intn(len(days))]
		if expected[place] == nil {
			expected[place] = make(map[string]struct{})
		}
		expected[place][day] = struct{}{}

		_, err := repo.Append(ctx, sampleAt(place, day, rnd.Intn(24)))
		require.NoError(t, err)
	}

	stats, err := repo.AggregateByPlace(ctx)
	require.NoError(t, err)
	require.Len(t, stats, len(expected))

	for i, s := range stats {
		assert.Equal(t, len(expected[s.Place]), s.DaysSpent, "place %s", s.Place)
		if i > 0 {
			assert.GreaterOrEqual(t, stats[i-1].DaysSpent, s.DaysSpent)
		}
	}
}

func TestSQLiteAggregateByPlace_TiesKeepInsertionOrder(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	ctx := context.Background()

	for _, place := range []string{"Zeta", "Alpha", "Mid"} {
		_, err := repo.Append(ctx, sampleAt(place, "2024-05-01", 8))
		require.NoError(t, err)
	}

	stats, err := repo.AggregateByPlace(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 3)
	assert.Equal(t, "Zeta", stats[0].Place)
	assert.Equal(t, "Alpha", stats[1].Place)
	assert.Equal(t, "Mid", stats[2].Place)
}

func TestSQLiteListAll_NewestFirst(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.Append(ctx, sampleAt("Springfield", "2024-01-02", 9))
	require.NoError(t, err)
	_, err = repo.Append(ctx, sampleAt("Springfield", "2024-01-01", 9))
	require.NoError(t, err)
	_, err = repo.Append(ctx, sampleAt("Capital City", "2024-01-03", 9))
	require.NoError(t, err)

	samples, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, samples, 3)

	assert.Equal(t, "2024-01-03", samples[0].DayKey)
	assert.Equal(t, "2024-01-02", samples[1].DayKey)
	assert.Equal(t, "2024-01-01", samples[2].DayKey)
	assert.Equal(t, "Capital City", samples[0].Place)
	assert.True(t, samples[0].CapturedAt.Equal(time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)))
	assert.True(t, samples[0].RecordedAt.After(samples[0].CapturedAt))
}

func TestSQLiteClear_EmptiesAggregation(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.Append(ctx, sampleAt("Springfield", "2024-01-01", 9))
	require.NoError(t, err)

	require.NoError(t, repo.Clear(ctx))

	stats, err := repo.AggregateByPlace(ctx)
	require.NoError(t, err)
	assert.Empty(t, stats)

	samples, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestSQLiteAppend_ClosedDatabaseIsStorageError(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.NewSQLiteDB(ctx, filepath.Join(t.TempDir(), "closed.db"))
	require.NoError(t, err)
	require.NoError(t, sqlite.Migrate(db))
	repo := NewSQLiteLocationRepository(db)
	require.NoError(t, db.Close())

	_, err = repo.Append(ctx, sampleAt("Springfield", "2024-01-01", 9))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrStorage)

	_, err = repo.AggregateByPlace(ctx)
	assert.ErrorIs(t, err, models.ErrStorage)
}
