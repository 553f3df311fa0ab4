package models

import (
	"time"
)

// DayKeyLayout форматирует календарную дату сэмпла
const DayKeyLayout = "2006-01-02"

// Fix - одно показание GPS, Timestamp берется с устройства
type Fix struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  float64   `json:"accuracy"`
	Timestamp time.Time `json:"timestamp"`
}

// LocationSample представляет сохраненную точку с названием места
type LocationSample struct {
	ID         int64     `json:"id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	CapturedAt time.Time `json:"captured_at"`
	RecordedAt time.Time `json:"recorded_at"`
	Place      string    `json:"place"`
	DayKey     string    `json:"day_key"`
}

// NewLocationSample собирает сэмпл из фикса. dayKey считается по времени фикса в зоне loc,
// а не по времени записи.
func NewLocationSample(fix Fix, place string, recordedAt time.Time, loc *time.Location) *LocationSample {
	if loc == nil {
		loc = time.UTC
	}
	return &LocationSample{
		Latitude:   fix.Latitude,
		Longitude:  fix.Longitude,
		CapturedAt: fix.Timestamp,
		RecordedAt: recordedAt,
		Place:      place,
		DayKey:     DayKeyFor(fix.Timestamp, loc),
	}
}

// DayKeyFor возвращает дату YYYY-MM-DD для момента t в зоне loc
func DayKeyFor(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayKeyLayout)
}

// PlaceStats - агрегат по месту, в базе не хранится
type PlaceStats struct {
	Place     string `json:"place"`
	DaysSpent int    `json:"days_spent"`
}
