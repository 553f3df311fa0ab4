package v1

import (
	"time"

	"github.com/shenikar/estate_tracker/internal/models"
)

// PushFixRequest DTO для фикса, присланного устройством
// @Description DTO для фикса, присланного устройством
type PushFixRequest struct {
	Latitude  *float64   `json:"latitude" validate:"required,latitude"`
	Longitude *float64   `json:"longitude" validate:"required,longitude"`
	Accuracy  float64    `json:"accuracy" validate:"gte=0"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// ClearLocationsRequest DTO для удаления всех сэмплов
// @Description DTO для удаления всех сэмплов, confirm обязателен
type ClearLocationsRequest struct {
	Confirm *bool `json:"confirm" validate:"required"`
}

// SetPermissionRequest DTO для выдачи или отзыва разрешения
// @Description DTO для выдачи или отзыва разрешения
type SetPermissionRequest struct {
	Granted *bool `json:"granted" validate:"required"`
}

// FixResponse DTO для ответа с фиксом
// @Description DTO для ответа с фиксом
type FixResponse struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  float64   `json:"accuracy"`
	Timestamp time.Time `json:"timestamp"`
}

// SampleResponse DTO для ответа с сохраненным сэмплом
// @Description DTO для ответа с сохраненным сэмплом
type SampleResponse struct {
	ID         int64     `json:"id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Place      string    `json:"place"`
	DayKey     string    `json:"day_key"`
	CapturedAt time.Time `json:"captured_at"`
	RecordedAt time.Time `json:"recorded_at"`
}

// StatusResponse DTO для ответа с состоянием трекинга
// @Description DTO для ответа с состоянием трекинга
type StatusResponse struct {
	State           string          `json:"state"`
	Mode            string          `json:"mode"`
	IntervalSeconds int64           `json:"interval_seconds"`
	LastFix         *FixResponse    `json:"last_fix,omitempty"`
	LastSample      *SampleResponse `json:"last_sample,omitempty"`
	LastError       string          `json:"last_error,omitempty"`
}

// StatsResponse DTO для ответа со статистикой
// @Description DTO для ответа со статистикой: агрегат, диаграмма и таблица
type StatsResponse struct {
	Places []models.PlaceStats `json:"places"`
	Chart  models.ChartView    `json:"chart"`
	Table  models.TableView    `json:"table"`
}

// PermissionsResponse DTO для ответа с текущей выдачей разрешений
// @Description DTO для ответа с текущей выдачей разрешений
type PermissionsResponse struct {
	Granted map[string]bool `json:"granted"`
}
