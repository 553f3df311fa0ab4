package platform

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/estate_tracker/internal/models"
	"github.com/shenikar/estate_tracker/internal/observability"
	"github.com/sirupsen/logrus"
)

const (
	wakeFired          = "fired"
	wakeSkippedPending = "skipped_pending"
	wakeExpired        = "expired"
)

var (
	ErrInvalidInterval       = errors.New("scheduler: minimum interval must be positive")
	ErrUnsupportedConstraint = errors.New("scheduler: unsupported constraint")
)

// Scheduler будит обработчик с заданным интервалом. Каждое пробуждение получает
// непрозрачный токен, который обработчик подтверждает через Finish.
//
// В foreground-режиме обработчик вызывается в горутине тикера, пропущенные тики теряются.
// В background-режиме интервал не меньше minBackground, задача идет в своей горутине
// с таймаутом taskTimeout, а пока предыдущий токен не подтвержден, новые пробуждения пропускаются.
type Scheduler struct {
	logger        *logrus.Logger
	minBackground time.Duration
	taskTimeout   time.Duration

	mu       sync.Mutex
	cancel   context.CancelFunc
	pending  map[string]time.Time
	interval time.Duration

	now func() time.Time
}

func NewScheduler(logger *logrus.Logger, minBackground, taskTimeout time.Duration) *Scheduler {
	return &Scheduler{
		logger:        logger,
		minBackground: minBackground,
		taskTimeout:   taskTimeout,
		pending:       make(map[string]time.Time),
		now:           time.Now,
	}
}

// Register заменяет текущую регистрацию новой. Регистрация живет до Unregister, а не до ctx.
func (s *Scheduler) Register(ctx context.Context, cfg models.ScheduleConfig, handler func(ctx context.Context, token string)) error {
	if cfg.MinimumInterval <= 0 {
		return ErrInvalidInterval
	}
	if cfg.RequiredNetworkType != "" && cfg.RequiredNetworkType != "none" {
		return fmt.Errorf("%w: network type %q", ErrUnsupportedConstraint, cfg.RequiredNetworkType)
	}
	if cfg.RequiresCharging {
		return fmt.Errorf("%w: requires charging", ErrUnsupportedConstraint)
	}

	log := s.logger.WithFields(logrus.Fields{
		"service": "scheduler",
		"method":  "Register",
		"mode":    cfg.Mode,
	})

	interval := cfg.MinimumInterval
	if cfg.Mode == models.ModeBackground && interval < s.minBackground {
		log.WithFields(logrus.Fields{
			"requested": interval,
			"floor":     s.minBackground,
		}).Info("Background interval raised to platform minimum")
		interval = s.minBackground
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.pending = make(map[string]time.Time)
	s.interval = interval
	s.mu.Unlock()

	go s.loop(loopCtx, interval, cfg.Mode, handler)

	log.WithField("interval", interval).Info("Wake schedule registered")
	return nil
}

// Unregister снимает регистрацию. Не ждет работающий обработчик, поэтому его можно вызывать из него.
func (s *Scheduler) Unregister() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel == nil {
		return nil
	}
	s.cancel()
	s.cancel = nil
	s.pending = make(map[string]time.Time)
	s.interval = 0

	s.logger.WithFields(logrus.Fields{
		"service": "scheduler",
		"method":  "Unregister",
	}).Info("Wake schedule unregistered")
	return nil
}

// Finish подтверждает завершение пробуждения
func (s *Scheduler) Finish(token string) {
	s.mu.Lock()
	_, ok := s.pending[token]
	delete(s.pending, token)
	s.mu.Unlock()

	if !ok {
		s.logger.WithFields(logrus.Fields{
			"service": "scheduler",
			"method":  "Finish",
			"token":   token,
		}).Debug("Finish for unknown or expired token")
	}
}

// Registered сообщает, есть ли активная регистрация
func (s *Scheduler) Registered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// Interval возвращает действующий интервал, 0 без регистрации
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

func (s *Scheduler) loop(ctx context.Context, interval time.Duration, mode models.TrackingMode, handler func(ctx context.Context, token string)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fire(ctx, mode, handler)
		}
	}
}

func (s *Scheduler) fire(ctx context.Context, mode models.TrackingMode, handler func(ctx context.Context, token string)) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "scheduler",
		"method":  "fire",
	})

	s.mu.Lock()
	// Регистрацию могли снять между тиком и захватом мьютекса
	if ctx.Err() != nil {
		s.mu.Unlock()
		return
	}
	s.expireLocked(log)
	if mode == models.ModeBackground && len(s.pending) > 0 {
		s.mu.Unlock()
		observability.RecordWake(wakeSkippedPending)
		log.Debug("Previous wake not finished, skipping")
		return
	}
	token := uuid.NewString()
	s.pending[token] = s.now().Add(s.taskTimeout)
	s.mu.Unlock()

	observability.RecordWake(wakeFired)

	if mode != models.ModeBackground {
		handler(ctx, token)
		return
	}

	taskCtx, cancel := context.WithTimeout(ctx, s.taskTimeout)
	go func() {
		defer cancel()
		handler(taskCtx, token)
	}()
}

func (s *Scheduler) expireLocked(log *logrus.Entry) {
	if s.taskTimeout <= 0 {
		return
	}
	now := s.now()
	for token, deadline := range s.pending {
		if now.After(deadline) {
			delete(s.pending, token)
			observability.RecordWake(wakeExpired)
			log.WithField("token", token).Warn("Wake token expired without Finish")
		}
	}
}
