package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []string{".jpg", ".jpeg", ".png", ".mp4", ".mov"}, cfg.App.AllowedFormats)
	assert.Equal(t, int64(200*1024*1024), cfg.App.MaxUploadSize)
	assert.Equal(t, int64(50_000_000), cfg.App.MaxImagePixels)
	assert.Equal(t, "random", cfg.Detection.Engine)
	assert.Zero(t, cfg.Detection.Seed)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("APP_ALLOWED_FORMATS", "PNG,.mov")
	t.Setenv("SERVER_CORS_ORIGINS", "http://a.test http://b.test")
	t.Setenv("DETECTION_ENGINE", "Random")
	t.Setenv("DETECTION_SEED", "42")
	t.Setenv("APP_MAX_IMAGE_PIXELS", "1000")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{".png", ".mov"}, cfg.App.AllowedFormats)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "random", cfg.Detection.Engine)
	assert.Equal(t, int64(42), cfg.Detection.Seed)
	assert.Equal(t, int64(1000), cfg.App.MaxImagePixels)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoadRejectsNonPositiveUploadSize(t *testing.T) {
	t.Setenv("APP_MAX_UPLOAD_SIZE", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsNonPositivePixelLimit(t *testing.T) {
	t.Setenv("APP_MAX_IMAGE_PIXELS", "-1")

	_, err := Load()
	assert.Error(t, err)
}
