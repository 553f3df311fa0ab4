package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/shenikar/estate_tracker/internal/models"
	"github.com/shenikar/estate_tracker/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestPresenter(t *testing.T) (*statsPresenter, *mocks.MockLocationStore) {
	ctrl := gomock.NewController(t)
	storeMock := mocks.NewMockLocationStore(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	return NewStatsPresenter(storeMock, logger).(*statsPresenter), storeMock
}

func TestLoad_ReturnsAggregate(t *testing.T) {
	p, storeMock := newTestPresenter(t)
	ctx := context.Background()
	expected := []models.PlaceStats{{Place: "A", DaysSpent: 2}, {Place: "B", DaysSpent: 1}}

	storeMock.EXPECT().AggregateByPlace(ctx).Return(expected, nil).Times(1)

	stats, err := p.Load(ctx)

	require.NoError(t, err)
	assert.Equal(t, expected, stats)
}

func TestLoad_EmptyStoreGivesEmptySlice(t *testing.T) {
	p, storeMock := newTestPresenter(t)
	ctx := context.Background()

	storeMock.EXPECT().AggregateByPlace(ctx).Return(nil, nil)

	stats, err := p.Refresh(ctx)

	require.NoError(t, err)
	assert.NotNil(t, stats)
	assert.Empty(t, stats)
}

func TestLoad_StorageError(t *testing.T) {
	p, storeMock := newTestPresenter(t)
	ctx := context.Background()

	storeMock.EXPECT().AggregateByPlace(ctx).Return(nil, models.ErrStorage)

	_, err := p.Load(ctx)

	assert.ErrorIs(t, err, models.ErrStorage)
}

func TestChartView_ScalesToMax(t *testing.T) {
	p, _ := newTestPresenter(t)
	stats := []models.PlaceStats{{Place: "A", DaysSpent: 10}, {Place: "B", DaysSpent: 5}}

	view := p.ChartView(stats)

	assert.Equal(t, ChartTitle, view.Title)
	assert.Equal(t, 10, view.ScaleMax)
	assert.Equal(t, 15, view.TotalDays)
	require.Len(t, view.Bars, 2)
	assert.InDelta(t, 250.0, view.Bars[0].Height, 1e-9)
	assert.InDelta(t, 125.0, view.Bars[1].Height, 1e-9)
	assert.Equal(t, "#3498db", view.Bars[0].Color)
	assert.Equal(t, "#2ecc71", view.Bars[1].Color)
}

func TestChartView_MinimumScale(t *testing.T) {
	p, _ := newTestPresenter(t)

	view := p.ChartView([]models.PlaceStats{{Place: "A", DaysSpent: 1}})

	assert.Equal(t, 5, view.ScaleMax)
	assert.InDelta(t, 50.0, view.Bars[0].Height, 1e-9)
}

func TestChartView_PaletteWraps(t *testing.T) {
	p, _ := newTestPresenter(t)
	stats := make([]models.PlaceStats, len(ChartPalette)+1)
	for i := range stats {
		stats[i] = models.PlaceStats{Place: string(rune('A' + i)), DaysSpent: 1}
	}

	view := p.ChartView(stats)

	assert.Equal(t, ChartPalette[0], view.Bars[len(ChartPalette)].Color)
}

func TestChartView_Empty(t *testing.T) {
	p, _ := newTestPresenter(t)

	view := p.ChartView(nil)

	assert.Empty(t, view.Bars)
	assert.Equal(t, 0, view.TotalDays)
	assert.Equal(t, 5, view.ScaleMax)
}

func TestTableView_TotalRow(t *testing.T) {
	p, _ := newTestPresenter(t)
	stats := []models.PlaceStats{{Place: "A", DaysSpent: 2}, {Place: "B", DaysSpent: 1}}

	view := p.TableView(stats)

	assert.Equal(t, []models.TableRow{{Place: "A", DaysSpent: 2}, {Place: "B", DaysSpent: 1}}, view.Rows)
	assert.Equal(t, 3, view.Total)
}

func TestClear(t *testing.T) {
	t.Run("without confirmation deletes nothing", func(t *testing.T) {
		p, _ := newTestPresenter(t)

		err := p.Clear(context.Background(), false)

		assert.ErrorIs(t, err, models.ErrConfirmationRequired)
	})

	t.Run("confirmed", func(t *testing.T) {
		p, storeMock := newTestPresenter(t)
		ctx := context.Background()
		storeMock.EXPECT().Clear(ctx).Return(nil).Times(1)

		require.NoError(t, p.Clear(ctx, true))
	})

	t.Run("storage error", func(t *testing.T) {
		p, storeMock := newTestPresenter(t)
		ctx := context.Background()
		storeMock.EXPECT().Clear(ctx).Return(models.ErrStorage)

		assert.ErrorIs(t, p.Clear(ctx, true), models.ErrStorage)
	})
}

func TestSamples(t *testing.T) {
	p, storeMock := newTestPresenter(t)
	ctx := context.Background()
	expected := []*models.LocationSample{{ID: 2, Place: "B"}, {ID: 1, Place: "A"}}

	storeMock.EXPECT().ListAll(ctx).Return(expected, nil)

	samples, err := p.Samples(ctx)

	require.NoError(t, err)
	assert.Equal(t, expected, samples)
}

func TestSamples_StorageError(t *testing.T) {
	p, storeMock := newTestPresenter(t)
	ctx := context.Background()

	storeMock.EXPECT().ListAll(ctx).Return(nil, models.ErrStorage)

	_, err := p.Samples(ctx)

	assert.ErrorIs(t, err, models.ErrStorage)
}
