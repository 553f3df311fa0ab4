package service

import (
	"context"

	"github.com/shenikar/estate_tracker/internal/models"
)

// LocationStore определяет контракт хранилища сэмплов. Все ошибки оборачивают models.ErrStorage.
type LocationStore interface {
	Append(ctx context.Context, sample *models.LocationSample) (int64, error)
	ListAll(ctx context.Context) ([]*models.LocationSample, error)
	AggregateByPlace(ctx context.Context) ([]models.PlaceStats, error)
	Clear(ctx context.Context) error
}
