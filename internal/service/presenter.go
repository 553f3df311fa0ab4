package service

//go:generate mockgen -source=presenter.go -destination=mocks/presenter_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/shenikar/estate_tracker/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	ChartTitle = "Time Spent at Different Locations"
	// ChartHeight - высота области столбцов в пикселях
	ChartHeight = 250
	// minChartScale не дает диаграмме сжиматься при малых значениях
	minChartScale = 5
)

// ChartPalette - цвета столбцов, назначаются по кругу
var ChartPalette = []string{
	"#3498db",
	"#2ecc71",
	"#e74c3c",
	"#f39c12",
	"#9b59b6",
	"#1abc9c",
	"#e67e22",
	"#34495e",
}

// StatsPresenter определяет контракт представления статистики
type StatsPresenter interface {
	Load(ctx context.Context) ([]models.PlaceStats, error)
	Refresh(ctx context.Context) ([]models.PlaceStats, error)
	Samples(ctx context.Context) ([]*models.LocationSample, error)
	ChartView(stats []models.PlaceStats) models.ChartView
	TableView(stats []models.PlaceStats) models.TableView
	Clear(ctx context.Context, confirmed bool) error
}

type statsPresenter struct {
	store  LocationStore
	logger *logrus.Logger
}

func NewStatsPresenter(store LocationStore, logger *logrus.Logger) StatsPresenter {
	return &statsPresenter{
		store:  store,
		logger: logger,
	}
}

// Load читает агрегат из хранилища
func (p *statsPresenter) Load(ctx context.Context) ([]models.PlaceStats, error) {
	return p.load(ctx, "Load")
}

// Refresh перечитывает агрегат. Результат отражает все записи, сделанные до вызова.
func (p *statsPresenter) Refresh(ctx context.Context) ([]models.PlaceStats, error) {
	return p.load(ctx, "Refresh")
}

func (p *statsPresenter) load(ctx context.Context, method string) ([]models.PlaceStats, error) {
	log := p.logger.WithFields(logrus.Fields{
		"service": "presenter",
		"method":  method,
	})

	stats, err := p.store.AggregateByPlace(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to aggregate samples by place")
		return nil, fmt.Errorf("service: could not load stats: %w", err)
	}
	if stats == nil {
		stats = []models.PlaceStats{}
	}

	log.WithField("places", len(stats)).Debug("Stats loaded")
	return stats, nil
}

// Samples возвращает все сэмплы, новые первыми
func (p *statsPresenter) Samples(ctx context.Context) ([]*models.LocationSample, error) {
	samples, err := p.store.ListAll(ctx)
	if err != nil {
		p.logger.WithFields(logrus.Fields{
			"service": "presenter",
			"method":  "Samples",
		}).WithError(err).Error("Failed to list samples")
		return nil, fmt.Errorf("service: could not list samples: %w", err)
	}
	if samples == nil {
		samples = []*models.LocationSample{}
	}
	return samples, nil
}

// ChartView строит столбчатую диаграмму: высота столбца пропорциональна дням
func (p *statsPresenter) ChartView(stats []models.PlaceStats) models.ChartView {
	scale := minChartScale
	total := 0
	for _, s := range stats {
		if s.DaysSpent > scale {
			scale = s.DaysSpent
		}
		total += s.DaysSpent
	}

	bars := make([]models.Bar, 0, len(stats))
	for i, s := range stats {
		bars = append(bars, models.Bar{
			Place:     s.Place,
			DaysSpent: s.DaysSpent,
			Height:    float64(s.DaysSpent) / float64(scale) * ChartHeight,
			Color:     ChartPalette[i%len(ChartPalette)],
		})
	}

	return models.ChartView{
		Title:     ChartTitle,
		ScaleMax:  scale,
		Height:    ChartHeight,
		Bars:      bars,
		TotalDays: total,
	}
}

// TableView строит таблицу с итоговой строкой
func (p *statsPresenter) TableView(stats []models.PlaceStats) models.TableView {
	rows := make([]models.TableRow, 0, len(stats))
	total := 0
	for _, s := range stats {
		rows = append(rows, models.TableRow{Place: s.Place, DaysSpent: s.DaysSpent})
		total += s.DaysSpent
	}
	return models.TableView{Rows: rows, Total: total}
}

// Clear удаляет все сэмплы, только после явного подтверждения
func (p *statsPresenter) Clear(ctx context.Context, confirmed bool) error {
	log := p.logger.WithFields(logrus.Fields{
		"service": "presenter",
		"method":  "Clear",
	})

	if !confirmed {
		log.Info("Clear requested without confirmation, nothing deleted")
		return models.ErrConfirmationRequired
	}

	if err := p.store.Clear(ctx); err != nil {
		log.WithError(err).Error("Failed to clear samples")
		return fmt.Errorf("service: could not clear samples: %w", err)
	}

	log.Info("All samples cleared")
	return nil
}
