package repository

import (
	"fmt"
	"time"

	"github.com/shenikar/estate_tracker/internal/models"
)

// timeLayout - ISO-8601 с миллисекундами фиксированной ширины, строки сортируются как время
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", models.ErrStorage, op, err)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
