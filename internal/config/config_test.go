package config

import (
	"testing"
	"time"

	"github.com/shenikar/estate_tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("TRACKING_MODE", "foreground")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, StoreSQLite, cfg.StoreDriver)
	assert.Equal(t, 5*time.Minute, cfg.TrackingInterval)
	assert.Equal(t, 30*time.Second, cfg.FixTimeout)
	assert.Equal(t, models.ModeForeground, cfg.TrackingMode)
	assert.Equal(t, time.UTC, cfg.Timezone)
	assert.Equal(t, models.PermissionOrder, cfg.GrantedPermissions)
	assert.Empty(t, cfg.APIKeys)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("TRACKING_MODE", "background")
	t.Setenv("TRACKING_INTERVAL_MINUTES", "20")
	t.Setenv("TRACKER_TIMEZONE", "Europe/Moscow")
	t.Setenv("GRANTED_PERMISSIONS", "fine_location, coarse_location")
	t.Setenv("API_KEYS", " key-1 , key-2 ")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, models.ModeBackground, cfg.TrackingMode)
	assert.Equal(t, 20*time.Minute, cfg.TrackingInterval)
	assert.Equal(t, "Europe/Moscow", cfg.Timezone.String())
	assert.Equal(t, []models.Permission{models.PermissionFineLocation, models.PermissionCoarseLocation}, cfg.GrantedPermissions)
	assert.Equal(t, []string{"key-1", "key-2"}, cfg.APIKeys)

	sc := cfg.ScheduleConfig()
	assert.Equal(t, 20*time.Minute, sc.MinimumInterval)
	assert.Equal(t, "none", sc.RequiredNetworkType)
	assert.False(t, sc.RequiresCharging)
}

func TestLoadConfig_PostgresRequiresURL(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoadConfig_InvalidMode(t *testing.T) {
	t.Setenv("TRACKING_MODE", "sometimes")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.ErrorContains(t, err, "TRACKING_MODE")
}
