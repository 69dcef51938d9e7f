package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDevelopment(t *testing.T) {
	cfg := &Config{Environment: "development"}
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg = &Config{Environment: "production"}
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.IsProduction())

	cfg = &Config{Environment: "staging"}
	assert.False(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadWithOptions(t *testing.T) {
	t.Setenv("INSTANTLY_API_KEY", "test-api-key")
	t.Setenv("INSTANTLY_API_URL", "https://api.example.test/v2/")
	t.Setenv("INSTANTLY_TIMEOUT", "12s")
	t.Setenv("CRON_SECRET", "cron-secret")
	t.Setenv("SYNC_FULL_SCHEDULE", "0 */6 * * *")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("DB_HOST", "testhost")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "testuser")
	t.Setenv("DB_PASSWORD", "testpass")
	t.Setenv("DB_NAME", "sync_test")
	t.Setenv("ENVIRONMENT", "development")

	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "testhost", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "testuser", cfg.Database.User)
	assert.Equal(t, "testpass", cfg.Database.Password)
	assert.Equal(t, "sync_test", cfg.Database.DBName)
	assert.Equal(t, "test-api-key", cfg.Instantly.APIKey)
	assert.Equal(t, "https://api.example.test/v2", cfg.Instantly.BaseURL)
	assert.Equal(t, 12*time.Second, cfg.Instantly.Timeout)
	assert.Equal(t, "cron-secret", cfg.Sync.CronSecret)
	assert.Equal(t, "0 */6 * * *", cfg.Sync.FullSchedule)
	assert.Equal(t, "", cfg.Sync.RefreshSchedule)
	assert.Equal(t, 1, cfg.Sync.StepMaxAttempts)
	assert.Equal(t, "postgres", cfg.StorageDriver)
	assert.False(t, cfg.UsesMemoryStorage())
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadWithOptions_Defaults(t *testing.T) {
	t.Setenv("INSTANTLY_API_KEY", "key")

	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "https://api.instantly.ai/api/v2", cfg.Instantly.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Instantly.Timeout)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "campaign-sync", cfg.Tracing.ServiceName)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Sync.StepRetryDelay)
	assert.Equal(t, 6, cfg.Sync.RefreshRateLimit)
	assert.Equal(t, time.Minute, cfg.Sync.RefreshRateWindow)
}

func TestLoadWithOptions_Validation(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		t.Setenv("INSTANTLY_API_KEY", "")

		_, err := LoadWithOptions(LoadOptions{})
		require.Error(t, err)
		assert.Equal(t, "INSTANTLY_API_KEY is required", err.Error())
	})

	t.Run("unsupported storage driver", func(t *testing.T) {
		t.Setenv("INSTANTLY_API_KEY", "key")
		t.Setenv("STORAGE_DRIVER", "mongo")

		_, err := LoadWithOptions(LoadOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported STORAGE_DRIVER")
	})

	t.Run("memory storage and attempts floor", func(t *testing.T) {
		t.Setenv("INSTANTLY_API_KEY", "key")
		t.Setenv("STORAGE_DRIVER", "MEMORY")
		t.Setenv("SYNC_STEP_MAX_ATTEMPTS", "0")

		cfg, err := LoadWithOptions(LoadOptions{})
		require.NoError(t, err)
		assert.True(t, cfg.UsesMemoryStorage())
		assert.Equal(t, 1, cfg.Sync.StepMaxAttempts)
	})
}

func TestLoad(t *testing.T) {
	t.Setenv("INSTANTLY_API_KEY", "key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "key", cfg.Instantly.APIKey)
}
