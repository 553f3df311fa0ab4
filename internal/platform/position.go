package platform

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shenikar/estate_tracker/internal/models"
)

// locationGrant сообщает, разрешен ли сейчас доступ к геолокации
type locationGrant interface {
	LocationGranted() bool
}

// PushedPositionSource хранит последний фикс, присланный устройством.
// CurrentPosition ждет свежий фикс, пока не истечет контекст.
type PushedPositionSource struct {
	maxAge time.Duration
	grants locationGrant

	mu      sync.Mutex
	latest  *models.Fix
	updated chan struct{}

	now func() time.Time
}

// NewPushedPositionSource создает источник. Фикс старше maxAge считается устаревшим.
func NewPushedPositionSource(maxAge time.Duration, grants locationGrant) *PushedPositionSource {
	return &PushedPositionSource{
		maxAge:  maxAge,
		grants:  grants,
		updated: make(chan struct{}),
		now:     time.Now,
	}
}

// Push принимает фикс от устройства и будит ожидающих
func (s *PushedPositionSource) Push(fix models.Fix) models.Fix {
	if fix.Timestamp.IsZero() {
		fix.Timestamp = s.now()
	}

	s.mu.Lock()
	s.latest = &fix
	close(s.updated)
	s.updated = make(chan struct{})
	s.mu.Unlock()

	return fix
}

// CurrentPosition возвращает свежий фикс или ErrPositionUnavailable по истечении ctx
func (s *PushedPositionSource) CurrentPosition(ctx context.Context) (models.Fix, error) {
	for {
		if s.grants != nil && !s.grants.LocationGranted() {
			return models.Fix{}, fmt.Errorf("%w: location access revoked", models.ErrPermissionDenied)
		}

		s.mu.Lock()
		if s.latest != nil && s.fresh(*s.latest) {
			fix := *s.latest
			s.mu.Unlock()
			return fix, nil
		}
		wait := s.updated
		s.mu.Unlock()

		select {
		case <-wait:
		case <-ctx.Done():
			return models.Fix{}, fmt.Errorf("%w: no fresh fix: %w", models.ErrPositionUnavailable, ctx.Err())
		}
	}
}

func (s *PushedPositionSource) fresh(fix models.Fix) bool {
	if s.maxAge <= 0 {
		return true
	}
	return s.now().Sub(fix.Timestamp) <= s.maxAge
}
