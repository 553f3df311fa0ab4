package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shenikar/estate_tracker/internal/models"
	"github.com/shenikar/estate_tracker/internal/platform"
	"github.com/shenikar/estate_tracker/internal/service/mocks"
	"github.com/shenikar/estate_tracker/internal/webhook"
	webhook_mocks "github.com/shenikar/estate_tracker/internal/webhook/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type trackerMocks struct {
	store       *mocks.MockLocationStore
	geocoder    *mocks.MockGeocoder
	positions   *mocks.MockPositionSource
	permissions *mocks.MockPermissionRequester
	scheduler   *mocks.MockWakeScheduler
	publisher   *webhook_mocks.MockFixPublisher
}

// newTestTracker - вспомогательная функция для создания контроллера с моками.
func newTestTracker(t *testing.T, mode models.TrackingMode) (*tracker, *trackerMocks) {
	ctrl := gomock.NewController(t)
	m := &trackerMocks{
		store:       mocks.NewMockLocationStore(ctrl),
		geocoder:    mocks.NewMockGeocoder(ctrl),
		positions:   mocks.NewMockPositionSource(ctrl),
		permissions: mocks.NewMockPermissionRequester(ctrl),
		scheduler:   mocks.NewMockWakeScheduler(ctrl),
		publisher:   webhook_mocks.NewMockFixPublisher(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	tr := NewTracker(TrackerDeps{
		Store:       m.store,
		Geocoder:    m.geocoder,
		Positions:   m.positions,
		Permissions: m.permissions,
		Scheduler:   m.scheduler,
		Publisher:   m.publisher,
		Logger:      logger,
	}, TrackerOptions{
		Schedule: models.ScheduleConfig{
			MinimumInterval:     15 * time.Minute,
			StopOnTermination:   true,
			RequiredNetworkType: "none",
			Mode:                mode,
		},
		FixTimeout: time.Second,
		Location:   time.UTC,
	})
	return tr.(*tracker), m
}

func testFix() models.Fix {
	return models.Fix{
		Latitude:  51.5136,
		Longitude: -0.1365,
		Accuracy:  12,
		Timestamp: time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC),
	}
}

func grantAll(m *trackerMocks) {
	m.permissions.EXPECT().
		Request(gomock.Any(), gomock.Any()).
		Return(true, nil).
		Times(len(models.PermissionOrder))
}

func TestStartTracking_Success(t *testing.T) {
	// Подготовка
	tr, m := newTestTracker(t, models.ModeForeground)
	ctx := context.Background()
	fix := testFix()

	// Ожидания
	grantAll(m)
	m.scheduler.EXPECT().Register(gomock.Any(), tr.opts.Schedule, gomock.Any()).Return(nil).Times(1)
	m.positions.EXPECT().CurrentPosition(gomock.Any()).Return(fix, nil).Times(1)
	m.geocoder.EXPECT().ResolvePlace(gomock.Any(), fix.Latitude, fix.Longitude).Return("Soho", nil).Times(1)
	m.store.EXPECT().
		Append(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, s *models.LocationSample) (int64, error) {
			assert.Equal(t, "Soho", s.Place)
			assert.Equal(t, "2024-03-10", s.DayKey)
			assert.Equal(t, fix.Timestamp, s.CapturedAt)
			return 1, nil
		}).
		Times(1)
	m.publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e webhook.FixEvent) error {
			assert.True(t, e.Persisted)
			assert.Equal(t, int64(1), e.SampleID)
			return nil
		}).
		Times(1)

	// Действие
	err := tr.StartTracking(ctx)

	// Проверки
	require.NoError(t, err)
	status := tr.Status()
	assert.Equal(t, models.StateActive, status.State)
	require.NotNil(t, status.LastSample)
	assert.Equal(t, int64(1), status.LastSample.ID)
	require.NotNil(t, status.LastFix)
	assert.Equal(t, fix, *status.LastFix)
}

func TestStartTracking_PermissionDenied(t *testing.T) {
	tr, m := newTestTracker(t, models.ModeForeground)

	// Запросы идут по порядку и останавливаются на первом отказе.
	// Register и Append не ожидаются: любой вызов провалит тест.
	m.permissions.EXPECT().
		Request(gomock.Any(), models.PermissionFineLocation).
		Return(false, nil).
		Times(1)

	err := tr.StartTracking(context.Background())

	require.ErrorIs(t, err, models.ErrPermissionDenied)
	assert.Equal(t, models.StateIdle, tr.Status().State)
}

func TestStartTracking_BackgroundModeRequiresBackgroundPermission(t *testing.T) {
	tr, m := newTestTracker(t, models.ModeBackground)

	gomock.InOrder(
		m.permissions.EXPECT().Request(gomock.Any(), models.PermissionFineLocation).Return(true, nil),
		m.permissions.EXPECT().Request(gomock.Any(), models.PermissionCoarseLocation).Return(true, nil),
		m.permissions.EXPECT().Request(gomock.Any(), models.PermissionBackgroundLocation).Return(false, nil),
	)

	err := tr.StartTracking(context.Background())

	require.ErrorIs(t, err, models.ErrPermissionDenied)
	assert.Equal(t, models.StateIdle, tr.Status().State)
}

func TestStartTracking_OptionalPermissionsDeniedInForeground(t *testing.T) {
	tr, m := newTestTracker(t, models.ModeForeground)
	fix := testFix()

	m.permissions.EXPECT().Request(gomock.Any(), models.PermissionFineLocation).Return(true, nil)
	m.permissions.EXPECT().Request(gomock.Any(), models.PermissionCoarseLocation).Return(true, nil)
	m.permissions.EXPECT().Request(gomock.Any(), models.PermissionBackgroundLocation).Return(false, nil)
	m.permissions.EXPECT().Request(gomock.Any(), models.PermissionNotifications).Return(false, errors.New("not supported"))
	m.scheduler.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	m.positions.EXPECT().CurrentPosition(gomock.Any()).Return(fix, nil)
	m.geocoder.EXPECT().ResolvePlace(gomock.Any(), fix.Latitude, fix.Longitude).Return("Soho", nil)
	m.store.EXPECT().Append(gomock.Any(), gomock.Any()).Return(int64(1), nil)
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	err := tr.StartTracking(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.StateActive, tr.Status().State)
}

func TestStartTracking_InitialFixFailureAborts(t *testing.T) {
	tr, m := newTestTracker(t, models.ModeForeground)

	grantAll(m)
	m.scheduler.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)
	m.positions.EXPECT().CurrentPosition(gomock.Any()).Return(models.Fix{}, models.ErrPositionUnavailable).Times(1)
	m.scheduler.EXPECT().Unregister().Return(nil).Times(1)

	err := tr.StartTracking(context.Background())

	require.ErrorIs(t, err, models.ErrPositionUnavailable)
	assert.Equal(t, models.StateIdle, tr.Status().State)
}

// startWithTimeout запускает StartTracking и падает, если старт не вернулся вовремя
func startWithTimeout(t *testing.T, tr *tracker) error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- tr.StartTracking(context.Background()) }()

	select {
	case err := <-done:
		return err
	case <-time.After(3 * time.Second):
		t.Fatalf("StartTracking did not return, state=%s", tr.Status().State)
		return nil
	}
}

func TestStartTracking_PermissionRevokedDuringInitialFix(t *testing.T) {
	tr, m := newTestTracker(t, models.ModeForeground)

	grantAll(m)
	m.scheduler.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)
	m.positions.EXPECT().
		CurrentPosition(gomock.Any()).
		Return(models.Fix{}, fmt.Errorf("%w: location access revoked", models.ErrPermissionDenied)).
		Times(1)
	m.scheduler.EXPECT().Unregister().Return(nil).Times(1)

	err := startWithTimeout(t, tr)

	require.ErrorIs(t, err, models.ErrPermissionDenied)
	assert.ErrorIs(t, err, models.ErrPositionUnavailable)
	assert.Equal(t, models.StateIdle, tr.Status().State)

	// lifecycleMu свободен: остановка не блокируется
	require.NoError(t, tr.StopTracking(context.Background()))
}

func TestStartTracking_RevokedWhileWaitingForPushedFix(t *testing.T) {
	ctrl := gomock.NewController(t)
	scheduler := mocks.NewMockWakeScheduler(ctrl)
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	perms := platform.NewStaticPermissions(models.PermissionOrder)
	positions := platform.NewPushedPositionSource(time.Minute, perms)

	tr := NewTracker(TrackerDeps{
		Store:       mocks.NewMockLocationStore(ctrl),
		Geocoder:    mocks.NewMockGeocoder(ctrl),
		Positions:   positions,
		Permissions: perms,
		Scheduler:   scheduler,
		Logger:      logger,
	}, TrackerOptions{
		Schedule:   models.ScheduleConfig{MinimumInterval: 5 * time.Minute, Mode: models.ModeForeground},
		FixTimeout: 2 * time.Second,
	}).(*tracker)

	registered := make(chan struct{})
	scheduler.EXPECT().
		Register(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, models.ScheduleConfig, func(context.Context, string)) error {
			close(registered)
			return nil
		}).
		Times(1)
	scheduler.EXPECT().Unregister().Return(nil).Times(1)

	done := make(chan error, 1)
	go func() { done <- tr.StartTracking(context.Background()) }()

	<-registered
	require.NoError(t, perms.Set(models.PermissionFineLocation, false))
	positions.Push(testFix())

	select {
	case err := <-done:
		require.ErrorIs(t, err, models.ErrPermissionDenied)
	case <-time.After(3 * time.Second):
		t.Fatalf("StartTracking did not return, state=%s", tr.Status().State)
	}
	assert.Equal(t, models.StateIdle, tr.Status().State)
	require.NoError(t, tr.StopTracking(context.Background()))
}

func TestStartTracking_InitialGeocodeFailureStaysActive(t *testing.T) {
	tr, m := newTestTracker(t, models.ModeForeground)
	fix := testFix()

	grantAll(m)
	m.scheduler.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	m.positions.EXPECT().CurrentPosition(gomock.Any()).Return(fix, nil)
	m.geocoder.EXPECT().ResolvePlace(gomock.Any(), fix.Latitude, fix.Longitude).Return("", errors.New("boom"))
	m.publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e webhook.FixEvent) error {
			assert.False(t, e.Persisted)
			assert.NotEmpty(t, e.Error)
			return nil
		})

	err := tr.StartTracking(context.Background())

	require.NoError(t, err)
	status := tr.Status()
	assert.Equal(t, models.StateActive, status.State)
	assert.Nil(t, status.LastSample)
	assert.Contains(t, status.LastError, "geocode failure")
}

func TestStartTracking_RegisterFailure(t *testing.T) {
	tr, m := newTestTracker(t, models.ModeBackground)

	grantAll(m)
	m.scheduler.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("unsupported constraint"))

	err := tr.StartTracking(context.Background())

	require.Error(t, err)
	assert.Equal(t, models.StateIdle, tr.Status().State)
}

func TestStartTracking_AlreadyActiveIsNoop(t *testing.T) {
	tr, _ := newTestTracker(t, models.ModeForeground)
	tr.setState(models.StateActive)

	err := tr.StartTracking(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.StateActive, tr.Status().State)
}

func TestStopTracking(t *testing.T) {
	t.Run("active", func(t *testing.T) {
		tr, m := newTestTracker(t, models.ModeForeground)
		tr.setState(models.StateActive)
		m.scheduler.EXPECT().Unregister().Return(nil).Times(1)

		require.NoError(t, tr.StopTracking(context.Background()))
		assert.Equal(t, models.StateIdle, tr.Status().State)
	})

	t.Run("idle is noop", func(t *testing.T) {
		tr, _ := newTestTracker(t, models.ModeForeground)

		require.NoError(t, tr.StopTracking(context.Background()))
		assert.Equal(t, models.StateIdle, tr.Status().State)
	})
}

func TestRunCycle_FixTimeoutWritesNothing(t *testing.T) {
	tr, m := newTestTracker(t, models.ModeForeground)
	tr.opts.FixTimeout = 20 * time.Millisecond

	m.positions.EXPECT().
		CurrentPosition(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (models.Fix, error) {
			<-ctx.Done()
			return models.Fix{}, ctx.Err()
		})

	sample, err := tr.RunCycle(context.Background())

	require.ErrorIs(t, err, models.ErrPositionUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, sample)
	assert.Equal(t, models.StateIdle, tr.Status().State)
}

func TestRunCycle_GeocodeFailureWritesNothing(t *testing.T) {
	tr, m := newTestTracker(t, models.ModeForeground)
	fix := testFix()

	m.positions.EXPECT().CurrentPosition(gomock.Any()).Return(fix, nil)
	m.geocoder.EXPECT().ResolvePlace(gomock.Any(), fix.Latitude, fix.Longitude).Return("", errors.New("no result"))
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	sample, err := tr.RunCycle(context.Background())

	require.ErrorIs(t, err, models.ErrGeocodeFailure)
	assert.Nil(t, sample)
	// Фикс запоминается, даже если сэмпл не сохранен
	require.NotNil(t, tr.Status().LastFix)
}

func TestRunCycle_StorageFailure(t *testing.T) {
	tr, m := newTestTracker(t, models.ModeForeground)
	fix := testFix()

	m.positions.EXPECT().CurrentPosition(gomock.Any()).Return(fix, nil)
	m.geocoder.EXPECT().ResolvePlace(gomock.Any(), fix.Latitude, fix.Longitude).Return("Soho", nil)
	m.store.EXPECT().Append(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("disk full"))
	m.publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e webhook.FixEvent) error {
			assert.False(t, e.Persisted)
			assert.Equal(t, "Soho", e.Place)
			return nil
		})

	_, err := tr.RunCycle(context.Background())

	require.ErrorIs(t, err, models.ErrStorage)
}

func TestRunCycle_PublishFailureDoesNotFailCycle(t *testing.T) {
	tr, m := newTestTracker(t, models.ModeForeground)
	fix := testFix()

	m.positions.EXPECT().CurrentPosition(gomock.Any()).Return(fix, nil)
	m.geocoder.EXPECT().ResolvePlace(gomock.Any(), fix.Latitude, fix.Longitude).Return("Soho", nil)
	m.store.EXPECT().Append(gomock.Any(), gomock.Any()).Return(int64(7), nil)
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	sample, err := tr.RunCycle(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(7), sample.ID)
}

func TestRunCycle_DayKeyFollowsFixTimestamp(t *testing.T) {
	tr, m := newTestTracker(t, models.ModeForeground)
	tr.opts.Location = time.FixedZone("JST", 9*60*60)
	// Запись происходит на следующий день, dayKey берется из фикса
	tr.now = func() time.Time { return time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC) }

	fix := testFix()
	fix.Timestamp = time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC) // 11 марта в Токио

	m.positions.EXPECT().CurrentPosition(gomock.Any()).Return(fix, nil)
	m.geocoder.EXPECT().ResolvePlace(gomock.Any(), gomock.Any(), gomock.Any()).Return("Shibuya", nil)
	m.store.EXPECT().Append(gomock.Any(), gomock.Any()).Return(int64(1), nil)
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	sample, err := tr.RunCycle(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "2024-03-11", sample.DayKey)
	assert.Equal(t, time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), sample.RecordedAt)
}

func TestRunCycle_CoalescesOverlappingCycles(t *testing.T) {
	tr, m := newTestTracker(t, models.ModeForeground)
	fix := testFix()

	entered := make(chan struct{})
	release := make(chan struct{})

	m.positions.EXPECT().
		CurrentPosition(gomock.Any()).
		DoAndReturn(func(context.Context) (models.Fix, error) {
			close(entered)
			<-release
			return fix, nil
		}).
		Times(1)
	m.geocoder.EXPECT().ResolvePlace(gomock.Any(), gomock.Any(), gomock.Any()).Return("Soho", nil).Times(1)
	m.store.EXPECT().Append(gomock.Any(), gomock.Any()).Return(int64(1), nil).Times(1)
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	done := make(chan error, 1)
	go func() {
		_, err := tr.RunCycle(context.Background())
		done <- err
	}()

	<-entered
	_, err := tr.RunCycle(context.Background())
	assert.ErrorIs(t, err, models.ErrCycleInProgress)

	close(release)
	require.NoError(t, <-done)
}

func TestRunCycle_PermissionRevokedStopsTracking(t *testing.T) {
	tr, m := newTestTracker(t, models.ModeForeground)
	tr.setState(models.StateActive)

	m.positions.EXPECT().CurrentPosition(gomock.Any()).Return(models.Fix{}, models.ErrPermissionDenied)
	m.scheduler.EXPECT().Unregister().Return(nil).Times(1)

	_, err := tr.RunCycle(context.Background())

	require.ErrorIs(t, err, models.ErrPermissionDenied)
	assert.ErrorIs(t, err, models.ErrPositionUnavailable)
	assert.Equal(t, models.StateIdle, tr.Status().State)
}

func TestHandleWake_AlwaysFinishes(t *testing.T) {
	t.Run("not active", func(t *testing.T) {
		tr, m := newTestTracker(t, models.ModeBackground)
		m.scheduler.EXPECT().Finish("token-1").Times(1)

		tr.HandleWake(context.Background(), "token-1")
	})

	t.Run("cycle fails", func(t *testing.T) {
		tr, m := newTestTracker(t, models.ModeBackground)
		tr.setState(models.StateActive)

		m.positions.EXPECT().CurrentPosition(gomock.Any()).Return(models.Fix{}, models.ErrPositionUnavailable)
		m.scheduler.EXPECT().Finish("token-2").Times(1)

		tr.HandleWake(context.Background(), "token-2")
		assert.Equal(t, models.StateActive, tr.Status().State)
	})

	t.Run("stopped before cycle lock", func(t *testing.T) {
		tr, _ := newTestTracker(t, models.ModeBackground)

		// Пробуждение прошло проверку до Stop. Ни позиция, ни запись не запрашиваются.
		sample, err := tr.runCycle(context.Background(), triggerWake)

		require.ErrorIs(t, err, errNotActive)
		assert.Nil(t, sample)
	})

	t.Run("cycle stores sample", func(t *testing.T) {
		tr, m := newTestTracker(t, models.ModeBackground)
		tr.setState(models.StateActive)
		fix := testFix()

		m.positions.EXPECT().CurrentPosition(gomock.Any()).Return(fix, nil)
		m.geocoder.EXPECT().ResolvePlace(gomock.Any(), fix.Latitude, fix.Longitude).Return("Soho", nil)
		m.store.EXPECT().Append(gomock.Any(), gomock.Any()).Return(int64(3), nil)
		m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
		m.scheduler.EXPECT().Finish("token-3").Times(1)

		tr.HandleWake(context.Background(), "token-3")
		require.NotNil(t, tr.Status().LastSample)
		assert.Equal(t, int64(3), tr.Status().LastSample.ID)
	})
}
