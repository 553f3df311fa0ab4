package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shenikar/estate_tracker/internal/config"
	"github.com/shenikar/estate_tracker/internal/geocoder"
	v1 "github.com/shenikar/estate_tracker/internal/handler/http/v1"
	"github.com/shenikar/estate_tracker/internal/platform"
	"github.com/shenikar/estate_tracker/internal/repository"
	"github.com/shenikar/estate_tracker/internal/service"
	"github.com/shenikar/estate_tracker/internal/webhook"
	"github.com/shenikar/estate_tracker/pkg/logger"
	"github.com/shenikar/estate_tracker/pkg/postgres"
	redisclient "github.com/shenikar/estate_tracker/pkg/redis"
	"github.com/shenikar/estate_tracker/pkg/sqlite"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/estate_tracker/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// openStore открывает хранилище сэмплов по STORE_DRIVER
func openStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (service.LocationStore, func(), error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		log.Info("Running database migrations...")
		if err := postgres.Migrate(cfg.DatabaseURL); err != nil {
			return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
		}
		log.Info("Database migrations applied successfully")

		dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		log.Info("Successfully connected to PostgreSQL")
		return repository.NewPostgresLocationRepository(dbpool), dbpool.Close, nil

	default:
		db, err := sqlite.NewSQLiteDB(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open SQLite: %w", err)
		}
		log.Info("Running database migrations...")
		if err := sqlite.Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
		}
		log.WithField("path", cfg.SQLitePath).Info("Successfully opened SQLite store")
		return repository.NewSQLiteLocationRepository(db), func() { _ = db.Close() }, nil
	}
}

func openPublisher(ctx context.Context, cfg *config.Config, log *logrus.Logger) (webhook.FixPublisher, func(), error) {
	switch cfg.FixEventsSink {
	case config.SinkRedis:
		redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("Successfully connected to Redis")

		// Воркер нужен только при настроенном вебхуке, иначе очередь читают сторонние потребители
		if cfg.WebhookURL != "" {
			webhook.NewWebhookWorker(redisClient, log, cfg).Start(ctx)
		}
		return webhook.NewRedisFixPublisher(redisClient), func() { _ = redisClient.Close() }, nil

	case config.SinkKafka:
		publisher := webhook.NewKafkaFixPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		log.WithField("topic", cfg.KafkaTopic).Info("Publishing fix events to Kafka")
		return publisher, func() { _ = publisher.Close() }, nil

	default:
		return webhook.NopPublisher{}, func() {}, nil
	}
}

// @title Estate Tracker API
// @version 1.0
// @description Location tracker that samples GPS fixes, reverse-geocodes them to places and reports distinct days spent per place.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Хранилище сэмплов
	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to open location store: %v", err)
	}
	defer closeStore()

	// Наблюдатели фиксов
	publisher, closePublisher, err := openPublisher(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to set up fix events sink: %v", err)
	}
	defer closePublisher()

	// Платформа: разрешения, источник позиций, планировщик
	permissions := platform.NewStaticPermissions(cfg.GrantedPermissions)
	positions := platform.NewPushedPositionSource(cfg.FixMaxAge, permissions)
	scheduler := platform.NewScheduler(log, cfg.BackgroundMinInterval, cfg.BackgroundTaskTimeout)

	// Инициализация сервисов
	tracker := service.NewTracker(service.TrackerDeps{
		Store:       store,
		Geocoder:    geocoder.NewClient(cfg.GeocoderURL, cfg.GeocoderAPIKey, cfg.GeocoderTimeout, log),
		Positions:   positions,
		Permissions: permissions,
		Scheduler:   scheduler,
		Publisher:   publisher,
		Logger:      log,
	}, service.TrackerOptions{
		Schedule:   cfg.ScheduleConfig(),
		FixTimeout: cfg.FixTimeout,
		Location:   cfg.Timezone,
	})
	presenter := service.NewStatsPresenter(store, log)

	// Инициализация хэндлеров
	handler := v1.NewHandler(tracker, presenter, positions, permissions, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Метрики и Swagger UI
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Первый фикс приходит через HTTP, поэтому старт идет после запуска сервера
	if cfg.StartOnBoot {
		go func() {
			if err := tracker.StartTracking(ctx); err != nil {
				log.WithError(err).Warn("Tracking not started on boot")
			}
		}()
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	// Прерываем незавершенный старт и фоновые воркеры
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if cfg.StopOnTermination {
		if err := tracker.StopTracking(shutdownCtx); err != nil {
			log.WithError(err).Error("Failed to stop tracking")
		}
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
