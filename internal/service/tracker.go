package service

//go:generate mockgen -source=tracker.go -destination=mocks/tracker_mock.go -package=mocks
//go:generate mockgen -source=location.go -destination=mocks/location_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shenikar/estate_tracker/internal/models"
	"github.com/shenikar/estate_tracker/internal/observability"
	"github.com/shenikar/estate_tracker/internal/webhook"
	"github.com/sirupsen/logrus"
)

// Geocoder превращает координаты в название места
type Geocoder interface {
	ResolvePlace(ctx context.Context, lat, lon float64) (string, error)
}

// PositionSource выдает текущий фикс. Отзыв разрешения сообщается через models.ErrPermissionDenied.
type PositionSource interface {
	CurrentPosition(ctx context.Context) (models.Fix, error)
}

// PermissionRequester запрашивает разрешение платформы
type PermissionRequester interface {
	Request(ctx context.Context, permission models.Permission) (bool, error)
}

// WakeScheduler - сервис периодического пробуждения. Обработчик обязан подтвердить token через Finish.
type WakeScheduler interface {
	Register(ctx context.Context, cfg models.ScheduleConfig, handler func(ctx context.Context, token string)) error
	Unregister() error
	Finish(token string)
}

// Tracker определяет контракт контроллера трекинга
type Tracker interface {
	StartTracking(ctx context.Context) error
	StopTracking(ctx context.Context) error
	RunCycle(ctx context.Context) (*models.LocationSample, error)
	HandleWake(ctx context.Context, token string)
	Status() models.TrackingStatus
}

// TrackerDeps - внешние зависимости контроллера
type TrackerDeps struct {
	Store       LocationStore
	Geocoder    Geocoder
	Positions   PositionSource
	Permissions PermissionRequester
	Scheduler   WakeScheduler
	Publisher   webhook.FixPublisher
	Logger      *logrus.Logger
}

// TrackerOptions - настройки контроллера
type TrackerOptions struct {
	Schedule   models.ScheduleConfig
	FixTimeout time.Duration
	Location   *time.Location
}

type tracker struct {
	store       LocationStore
	geocoder    Geocoder
	positions   PositionSource
	permissions PermissionRequester
	scheduler   WakeScheduler
	publisher   webhook.FixPublisher
	logger      *logrus.Logger
	opts        TrackerOptions

	// lifecycleMu упорядочивает Start/Stop, cycleMu допускает один цикл за раз
	lifecycleMu sync.Mutex
	cycleMu     sync.Mutex

	mu         sync.RWMutex
	state      models.TrackingState
	lastFix    *models.Fix
	lastSample *models.LocationSample
	lastErr    error

	now func() time.Time
}

func NewTracker(deps TrackerDeps, opts TrackerOptions) Tracker {
	if opts.FixTimeout <= 0 {
		opts.FixTimeout = 30 * time.Second
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Schedule.Mode == "" {
		opts.Schedule.Mode = models.ModeForeground
	}
	publisher := deps.Publisher
	if publisher == nil {
		publisher = webhook.NopPublisher{}
	}
	return &tracker{
		store:       deps.Store,
		geocoder:    deps.Geocoder,
		positions:   deps.Positions,
		permissions: deps.Permissions,
		scheduler:   deps.Scheduler,
		publisher:   publisher,
		logger:      deps.Logger,
		opts:        opts,
		state:       models.StateIdle,
		now:         time.Now,
	}
}

// StartTracking запрашивает разрешения, регистрирует расписание и делает первый цикл
func (t *tracker) StartTracking(ctx context.Context) error {
	t.lifecycleMu.Lock()
	defer t.lifecycleMu.Unlock()

	log := t.logger.WithFields(logrus.Fields{
		"service": "tracker",
		"method":  "StartTracking",
		"mode":    t.opts.Schedule.Mode,
	})

	if t.currentState() == models.StateActive {
		log.Debug("Tracking already active")
		return nil
	}

	t.setState(models.StateRequestingPermission)
	if err := t.requestPermissions(ctx, log); err != nil {
		log.WithError(err).Warn("Required permission not granted, tracking not started")
		t.setState(models.StateIdle)
		return err
	}

	if err := t.scheduler.Register(ctx, t.opts.Schedule, t.HandleWake); err != nil {
		log.WithError(err).Error("Failed to register wake schedule")
		t.setState(models.StateIdle)
		return fmt.Errorf("service: could not register wake schedule: %w", err)
	}

	// Первый цикл синхронный: без фикса трекинг не стартует
	_, err := t.runCycle(ctx, triggerStart)
	if errors.Is(err, models.ErrPositionUnavailable) {
		log.WithError(err).Warn("Initial fix failed, aborting tracking")
		if unregErr := t.scheduler.Unregister(); unregErr != nil {
			log.WithError(unregErr).Error("Failed to unregister wake schedule")
		}
		t.setState(models.StateIdle)
		return fmt.Errorf("service: initial fix failed: %w", err)
	}
	if err != nil {
		log.WithError(err).Warn("Initial cycle did not store a sample")
	}

	t.setState(models.StateActive)
	log.WithField("interval", t.opts.Schedule.MinimumInterval).Info("Location tracking started")
	return nil
}

// StopTracking снимает расписание и переводит контроллер в idle
func (t *tracker) StopTracking(ctx context.Context) error {
	t.lifecycleMu.Lock()
	defer t.lifecycleMu.Unlock()

	log := t.logger.WithFields(logrus.Fields{
		"service": "tracker",
		"method":  "StopTracking",
	})

	if t.currentState() == models.StateIdle {
		log.Debug("Tracking already stopped")
		return nil
	}

	err := t.scheduler.Unregister()
	t.setState(models.StateIdle)
	if err != nil {
		log.WithError(err).Error("Failed to unregister wake schedule")
		return fmt.Errorf("service: could not unregister wake schedule: %w", err)
	}

	log.Info("Location tracking stopped")
	return nil
}

// RunCycle выполняет цикл по запросу. Если цикл уже идет, возвращает ErrCycleInProgress.
func (t *tracker) RunCycle(ctx context.Context) (*models.LocationSample, error) {
	return t.runCycle(ctx, triggerManual)
}

// HandleWake - обработчик пробуждения. Finish вызывается всегда, даже при ошибке цикла.
func (t *tracker) HandleWake(ctx context.Context, token string) {
	defer t.scheduler.Finish(token)

	log := t.logger.WithFields(logrus.Fields{
		"service": "tracker",
		"method":  "HandleWake",
		"token":   token,
	})

	if t.currentState() != models.StateActive {
		log.Debug("Wake received while tracking is not active")
		return
	}

	sample, err := t.runCycle(ctx, triggerWake)
	switch {
	case err == nil:
		log.WithField("sample_id", sample.ID).Debug("Scheduled cycle stored a sample")
	case errors.Is(err, errNotActive):
		log.Debug("Tracking stopped before scheduled cycle began")
	case errors.Is(err, models.ErrCycleInProgress):
		log.Debug("Scheduled cycle coalesced with a running one")
	case errors.Is(err, models.ErrStorage):
		log.WithError(err).Error("Scheduled cycle failed to store a sample")
	default:
		log.WithError(err).Info("Scheduled cycle skipped")
	}
}

// Status возвращает снимок состояния
func (t *tracker) Status() models.TrackingStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()

	status := models.TrackingStatus{
		State:    t.state,
		Mode:     t.opts.Schedule.Mode,
		Interval: t.opts.Schedule.MinimumInterval,
	}
	if t.lastFix != nil {
		fix := *t.lastFix
		status.LastFix = &fix
	}
	if t.lastSample != nil {
		sample := *t.lastSample
		status.LastSample = &sample
	}
	if t.lastErr != nil {
		status.LastError = t.lastErr.Error()
	}
	return status
}

// cycleTrigger - источник цикла
type cycleTrigger int

const (
	// triggerStart - первый цикл внутри StartTracking, lifecycleMu уже захвачен
	triggerStart cycleTrigger = iota
	triggerManual
	triggerWake
)

// errNotActive - пробуждение пришло после остановки трекинга
var errNotActive = errors.New("tracking is not active")

func (t *tracker) runCycle(ctx context.Context, trigger cycleTrigger) (*models.LocationSample, error) {
	if trigger == triggerStart {
		t.cycleMu.Lock()
	} else if !t.cycleMu.TryLock() {
		observability.RecordCycle(observability.OutcomeSkippedInFlight, time.Now())
		return nil, models.ErrCycleInProgress
	}

	// Stop мог пройти, пока пробуждение ждало своей очереди
	if trigger == triggerWake && t.currentState() != models.StateActive {
		t.cycleMu.Unlock()
		return nil, errNotActive
	}

	sample, err := t.cycle(ctx)
	t.cycleMu.Unlock()

	t.mu.Lock()
	t.lastErr = err
	t.mu.Unlock()

	// Отзыв разрешения обрабатываем уже без cycleMu. Старт откатывается сам.
	if trigger != triggerStart && errors.Is(err, models.ErrPermissionDenied) {
		t.revert(err)
	}
	return sample, err
}

// publish отдает фикс наблюдателям; ошибка наблюдателя цикл не ломает
func (t *tracker) publish(ctx context.Context, event webhook.FixEvent, log *logrus.Entry) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := t.publisher.Publish(pubCtx, event); err != nil {
		log.WithError(err).Warn("Failed to publish fix event")
	}
}

// revert останавливает активный трекинг после отзыва разрешения
func (t *tracker) revert(cause error) {
	t.lifecycleMu.Lock()
	defer t.lifecycleMu.Unlock()

	if t.currentState() != models.StateActive {
		return
	}

	log := t.logger.WithFields(logrus.Fields{
		"service": "tracker",
		"method":  "revert",
	})
	log.WithError(cause).Warn("Permission revoked, stopping tracking")

	if err := t.scheduler.Unregister(); err != nil {
		log.WithError(err).Error("Failed to unregister wake schedule")
	}
	t.setState(models.StateIdle)
}

func (t *tracker) requestPermissions(ctx context.Context, log *logrus.Entry) error {
	for _, p := range models.PermissionOrder {
		required := t.isRequired(p)
		granted, err := t.permissions.Request(ctx, p)
		if err != nil {
			if required {
				return fmt.Errorf("%w: %s: %w", models.ErrPermissionDenied, p, err)
			}
			log.WithError(err).WithField("permission", p).Warn("Optional permission request failed")
			continue
		}
		if !granted {
			if required {
				return fmt.Errorf("%w: %s", models.ErrPermissionDenied, p)
			}
			log.WithField("permission", p).Warn("Optional permission denied")
		}
	}
	return nil
}

func (t *tracker) isRequired(p models.Permission) bool {
	switch p {
	case models.PermissionFineLocation, models.PermissionCoarseLocation:
		return true
	case models.PermissionBackgroundLocation:
		return t.opts.Schedule.Mode == models.ModeBackground
	default:
		return false
	}
}

func (t *tracker) currentState() models.TrackingState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

func (t *tracker) setState(state models.TrackingState) {
	t.mu.Lock()
	t.state = state
	t.mu.Unlock()
	observability.RecordTrackingActive(state == models.StateActive)
}
