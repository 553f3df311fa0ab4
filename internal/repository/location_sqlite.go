package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/shenikar/estate_tracker/internal/models"
	"github.com/shenikar/estate_tracker/internal/service"
)

type SQLiteLocationRepository struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

func NewSQLiteLocationRepository(db *sql.DB) service.LocationStore {
	return &SQLiteLocationRepository{
		db:  db,
		now: time.Now,
	}
}

// Append сохраняет сэмпл и возвращает присвоенный id
func (r *SQLiteLocationRepository) Append(ctx context.Context, sample *models.LocationSample) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sample.RecordedAt.IsZero() {
		sample.RecordedAt = r.now()
	}

	query := `
		INSERT INTO locations (lat, lon, time, estate, dayKey, capturedAt)
		VALUES (?, ?, ?, ?, ?, ?);
	`
	res, err := r.db.ExecContext(ctx, query,
		sample.Latitude,
		sample.Longitude,
		formatTime(sample.RecordedAt),
		sample.Place,
		sample.DayKey,
		formatTime(sample.CapturedAt),
	)
	if err != nil {
		return 0, storageErr("failed to insert location", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("failed to read inserted id", err)
	}
	sample.ID = id
	return id, nil
}

// ListAll возвращает все сэмплы, новые первыми. Для строк без capturedAt берется время записи.
func (r *SQLiteLocationRepository) ListAll(ctx context.Context) ([]*models.LocationSample, error) {
	query := `
		SELECT id, lat, lon, time, estate, dayKey, capturedAt
		FROM locations
		ORDER BY COALESCE(capturedAt, time) DESC, id DESC;
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storageErr("failed to list locations", err)
	}
	defer rows.Close()

	samples := make([]*models.LocationSample, 0)
	for rows.Next() {
		var (
			sample     models.LocationSample
			recorded   string
			capturedAt sql.NullString
		)
		if err := rows.Scan(
			&sample.ID,
			&sample.Latitude,
			&sample.Longitude,
			&recorded,
			&sample.Place,
			&sample.DayKey,
			&capturedAt,
		); err != nil {
			return nil, storageErr("failed to scan location row", err)
		}

		if sample.RecordedAt, err = parseTime(recorded); err != nil {
			return nil, storageErr(fmt.Sprintf("bad time in row %d", sample.ID), err)
		}
		sample.CapturedAt = sample.RecordedAt
		if capturedAt.Valid {
			if sample.CapturedAt, err = parseTime(capturedAt.String); err != nil {
				return nil, storageErr(fmt.Sprintf("bad capturedAt in row %d", sample.ID), err)
			}
		}
		samples = append(samples, &sample)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("error list iteration", err)
	}
	return samples, nil
}

// AggregateByPlace считает различные dayKey по каждому месту. При равенстве раньше идет место,
// впервые записанное раньше.
func (r *SQLiteLocationRepository) AggregateByPlace(ctx context.Context) ([]models.PlaceStats, error) {
	query := `
		SELECT estate, COUNT(DISTINCT dayKey) AS daysSpent, MIN(id) AS firstID
		FROM locations
		GROUP BY estate
		ORDER BY daysSpent DESC, firstID ASC;
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storageErr("failed to aggregate locations", err)
	}
	defer rows.Close()

	stats := make([]models.PlaceStats, 0)
	for rows.Next() {
		var (
			s       models.PlaceStats
			firstID int64
		)
		if err := rows.Scan(&s.Place, &s.DaysSpent, &firstID); err != nil {
			return nil, storageErr("failed to scan stats row", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("error stats iteration", err)
	}
	return stats, nil
}

// Clear удаляет все сэмплы без возможности восстановления
func (r *SQLiteLocationRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM locations;`); err != nil {
		return storageErr("failed to clear locations", err)
	}
	return nil
}
