package repository

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/estate_tracker/internal/models"
	"github.com/shenikar/estate_tracker/internal/service"
)

type PostgresLocationRepository struct {
	db  *pgxpool.Pool
	mu  sync.Mutex
	now func() time.Time
}

func NewPostgresLocationRepository(db *pgxpool.Pool) service.LocationStore {
	return &PostgresLocationRepository{
		db:  db,
		now: time.Now,
	}
}

// Append создает новую запись о местоположении в бд
func (r *PostgresLocationRepository) Append(ctx context.Context, sample *models.LocationSample) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sample.RecordedAt.IsZero() {
		sample.RecordedAt = r.now()
	}

	query := `
		INSERT INTO locations (lat, lon, time, estate, day_key, captured_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id;
	`
	err := r.db.QueryRow(ctx, query,
		sample.Latitude,
		sample.Longitude,
		sample.RecordedAt.UTC(),
		sample.Place,
		sample.DayKey,
		sample.CapturedAt.UTC(),
	).Scan(&sample.ID)
	if err != nil {
		return 0, storageErr("failed to insert location", err)
	}
	return sample.ID, nil
}

// ListAll возвращает все записи, новые первыми
func (r *PostgresLocationRepository) ListAll(ctx context.Context) ([]*models.LocationSample, error) {
	query := `
		SELECT id, lat, lon, time, estate, day_key, captured_at
		FROM locations
		ORDER BY captured_at DESC, id DESC;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, storageErr("failed to list locations", err)
	}
	defer rows.Close()

	samples := make([]*models.LocationSample, 0)
	for rows.Next() {
		sample := &models.LocationSample{}
		err := rows.Scan(
			&sample.ID,
			&sample.Latitude,
			&sample.Longitude,
			&sample.RecordedAt,
			&sample.Place,
			&sample.DayKey,
			&sample.CapturedAt,
		)
		if err != nil {
			return nil, storageErr("failed to scan location row", err)
		}
		samples = append(samples, sample)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("error list iteration", err)
	}
	return samples, nil
}

// AggregateByPlace возвращает количество различных дней по каждому месту
func (r *PostgresLocationRepository) AggregateByPlace(ctx context.Context) ([]models.PlaceStats, error) {
	query := `
		SELECT estate, COUNT(DISTINCT day_key) AS days_spent
		FROM locations
		GROUP BY estate
		ORDER BY days_spent DESC, MIN(id) ASC;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, storageErr("failed to aggregate locations", err)
	}
	defer rows.Close()

	stats := make([]models.PlaceStats, 0)
	for rows.Next() {
		var s models.PlaceStats
		if err := rows.Scan(&s.Place, &s.DaysSpent); err != nil {
			return nil, storageErr("failed to scan stats row", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("error stats iteration", err)
	}
	return stats, nil
}

// Clear удаляет все записи
func (r *PostgresLocationRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.db.Exec(ctx, `DELETE FROM locations;`); err != nil {
		return storageErr("failed to clear locations", err)
	}
	return nil
}
