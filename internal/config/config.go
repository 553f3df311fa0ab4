package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shenikar/estate_tracker/internal/models"
)

const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"

	SinkNone  = "none"
	SinkRedis = "redis"
	SinkKafka = "kafka"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Store Config
	StoreDriver string `env:"STORE_DRIVER" envDefault:"sqlite"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"./data/LocationTracker.db"`
	DatabaseURL string `env:"DATABASE_URL"`

	// Geocoder Config
	GeocoderURL     string        `env:"GEOCODER_URL" envDefault:"https://us1.locationiq.com/v1/reverse"`
	GeocoderAPIKey  string        `env:"GEOCODER_API_KEY"`
	GeocoderTimeout time.Duration `env:"GEOCODER_TIMEOUT" envDefault:"10s"`

	// Tracking Config
	TrackingMode          models.TrackingMode `env:"TRACKING_MODE" envDefault:"foreground"`
	TrackingInterval      time.Duration       `env:"TRACKING_INTERVAL_MINUTES" envDefault:"5"`
	BackgroundMinInterval time.Duration       `env:"BACKGROUND_MIN_INTERVAL" envDefault:"15m"`
	BackgroundTaskTimeout time.Duration       `env:"BACKGROUND_TASK_TIMEOUT" envDefault:"45s"`
	FixTimeout            time.Duration       `env:"FIX_TIMEOUT" envDefault:"30s"`
	FixMaxAge             time.Duration       `env:"FIX_MAX_AGE" envDefault:"2m"`
	Timezone              *time.Location      `env:"TRACKER_TIMEZONE" envDefault:"UTC"`
	StartOnBoot           bool                `env:"START_ON_BOOT" envDefault:"false"`
	StopOnTermination     bool                `env:"STOP_ON_TERMINATION" envDefault:"true"`
	GrantedPermissions    []models.Permission `env:"GRANTED_PERMISSIONS"`

	// Fix events Config
	FixEventsSink string   `env:"FIX_EVENTS_SINK" envDefault:"none"`
	RedisAddr     string   `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass     string   `env:"REDIS_PASSWORD"`
	RedisDB       int      `env:"REDIS_DB" envDefault:"0"`
	KafkaBrokers  []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaTopic    string   `env:"KAFKA_TOPIC" envDefault:"location_fixes"`

	// Webhook Config
	WebhookURL     string        `env:"WEBHOOK_URL"`
	WebhookSecret  string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		StoreDriver:           strings.ToLower(getEnv("STORE_DRIVER", StoreSQLite)),
		SQLitePath:            getEnv("SQLITE_PATH", "./data/LocationTracker.db"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		GeocoderURL:           getEnv("GEOCODER_URL", "https://us1.locationiq.com/v1/reverse"),
		GeocoderAPIKey:        os.Getenv("GEOCODER_API_KEY"),
		GeocoderTimeout:       getEnvAsDuration("GEOCODER_TIMEOUT", 10*time.Second),
		TrackingMode:          models.TrackingMode(strings.ToLower(getEnv("TRACKING_MODE", string(models.ModeForeground)))),
		TrackingInterval:      time.Duration(getEnvAsInt("TRACKING_INTERVAL_MINUTES", 5)) * time.Minute,
		BackgroundMinInterval: getEnvAsDuration("BACKGROUND_MIN_INTERVAL", 15*time.Minute),
		BackgroundTaskTimeout: getEnvAsDuration("BACKGROUND_TASK_TIMEOUT", 45*time.Second),
		FixTimeout:            getEnvAsDuration("FIX_TIMEOUT", 30*time.Second),
		FixMaxAge:             getEnvAsDuration("FIX_MAX_AGE", 2*time.Minute),
		StartOnBoot:           getEnvAsBool("START_ON_BOOT", false),
		StopOnTermination:     getEnvAsBool("STOP_ON_TERMINATION", true),
		FixEventsSink:         strings.ToLower(getEnv("FIX_EVENTS_SINK", SinkNone)),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:             os.Getenv("REDIS_PASSWORD"),
		RedisDB:               getEnvAsInt("REDIS_DB", 0),
		KafkaBrokers:          splitAndTrim(getEnv("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:            getEnv("KAFKA_TOPIC", "location_fixes"),
		WebhookURL:            os.Getenv("WEBHOOK_URL"),
		WebhookSecret:         os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:        getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		APIKeys:               splitAndTrim(os.Getenv("API_KEYS")),
	}

	loc, err := time.LoadLocation(getEnv("TRACKER_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid TRACKER_TIMEZONE: %w", err)
	}
	cfg.Timezone = loc

	// По умолчанию выданы все разрешения
	granted := splitAndTrim(getEnv("GRANTED_PERMISSIONS", joinPermissions(models.PermissionOrder)))
	for _, p := range granted {
		cfg.GrantedPermissions = append(cfg.GrantedPermissions, models.Permission(p))
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite store")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required for the postgres store")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.TrackingMode {
	case models.ModeForeground, models.ModeBackground:
	default:
		return fmt.Errorf("unsupported TRACKING_MODE %q", c.TrackingMode)
	}

	switch c.FixEventsSink {
	case SinkNone, SinkRedis, SinkKafka:
	default:
		return fmt.Errorf("unsupported FIX_EVENTS_SINK %q", c.FixEventsSink)
	}

	if c.TrackingInterval <= 0 {
		return fmt.Errorf("TRACKING_INTERVAL_MINUTES must be positive")
	}
	if c.FixTimeout <= 0 {
		return fmt.Errorf("FIX_TIMEOUT must be positive")
	}
	return nil
}

// ScheduleConfig собирает параметры регистрации периодического пробуждения
func (c *Config) ScheduleConfig() models.ScheduleConfig {
	return models.ScheduleConfig{
		MinimumInterval:     c.TrackingInterval,
		AllowOnBoot:         c.StartOnBoot,
		StopOnTermination:   c.StopOnTermination,
		RequiredNetworkType: "none",
		RequiresCharging:    false,
		Mode:                c.TrackingMode,
	}
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func joinPermissions(perms []models.Permission) string {
	names := make([]string, len(perms))
	for i, p := range perms {
		names[i] = string(p)
	}
	return strings.Join(names, ",")
}
