package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BOOKING_HORIZON_DAYS", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("APP_ENV", "")

	cfg := Load()

	assert.Equal(t, 30, cfg.HorizonDays)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("BOOKING_HORIZON_DAYS", "14")
	t.Setenv("REQUEST_TIMEOUT", "2s")
	t.Setenv("READ_RETRY_ATTEMPTS", "not-a-number")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 14, cfg.HorizonDays)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 3, cfg.ReadRetryAttempts)
}

func TestAllowedOriginsList(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://app.tutors.test, ,https://admin.tutors.test ")

	cfg := Load()
	assert.Equal(t, []string{"https://app.tutors.test", "https://admin.tutors.test"}, cfg.AllowedOrigins)
}
