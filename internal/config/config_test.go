package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/placebridge/internal/config"
	"github.com/UnknownOlympus/placebridge/internal/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")

	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.InDelta(t, 300.0, cfg.Convert.MaxDistanceMeters, 0)
	assert.Equal(t, 100, cfg.Convert.MaxEntries)
	assert.Equal(t, 4, cfg.Convert.Workers)
	assert.Equal(t, 6, cfg.Convert.RedirectMaxHops)
	assert.Equal(t, 15*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, httpclient.DefaultUserAgent, cfg.HTTP.UserAgent)
	assert.False(t, cfg.HTTP.Trace)
	assert.Zero(t, cfg.API.RateLimit)
	assert.Equal(t, "*", cfg.API.AllowOrigin)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PLACEBRIDGE_ENV", "local")
	t.Setenv("PLACEBRIDGE_PORT", "9090")
	t.Setenv("PLACEBRIDGE_CONVERT_MAX_ENTRIES", "20")
	t.Setenv("PLACEBRIDGE_CONVERT_WORKERS", "1")
	t.Setenv("PLACEBRIDGE_HTTP_TIMEOUT", "2s")
	t.Setenv("PLACEBRIDGE_HTTP_TRACE", "true")
	t.Setenv("PLACEBRIDGE_API_RATE_LIMIT", "2.5")

	cfg, err := config.Load("")

	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 20, cfg.Convert.MaxEntries)
	assert.Equal(t, 1, cfg.Convert.Workers)
	assert.Equal(t, 2*time.Second, cfg.HTTP.Timeout)
	assert.True(t, cfg.HTTP.Trace)
	assert.InDelta(t, 2.5, cfg.API.RateLimit, 0)
}

func TestLoad_FromFile(t *testing.T) {
	defer filet.CleanUp(t)

	dir := filet.TmpDir(t, "")
	path := filepath.Join(dir, "placebridge.yaml")
	filet.File(t, path, `
env: development
convert:
  max_distance_meters: 150
  workers: 8
api:
  allow_origin: https://example.com
`)
	t.Setenv("PLACEBRIDGE_CONVERT_WORKERS", "2")

	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Env)
	assert.InDelta(t, 150.0, cfg.Convert.MaxDistanceMeters, 0)
	assert.Equal(t, 2, cfg.Convert.Workers, "environment wins over the file")
	assert.Equal(t, 100, cfg.Convert.MaxEntries)
	assert.Equal(t, "https://example.com", cfg.API.AllowOrigin)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))

		require.Error(t, err)
	})

	t.Run("port is not a number", func(t *testing.T) {
		t.Setenv("PLACEBRIDGE_PORT", "error_value")

		_, err := config.Load("")

		require.Error(t, err)
	})

	t.Run("max entries", func(t *testing.T) {
		t.Setenv("PLACEBRIDGE_CONVERT_MAX_ENTRIES", "0")

		_, err := config.Load("")

		require.ErrorIs(t, err, config.ErrInvalidMaxEntries)
	})

	t.Run("workers", func(t *testing.T) {
		t.Setenv("PLACEBRIDGE_CONVERT_WORKERS", "-1")

		_, err := config.Load("")

		require.ErrorIs(t, err, config.ErrInvalidWorkers)
	})

	t.Run("max distance", func(t *testing.T) {
		t.Setenv("PLACEBRIDGE_CONVERT_MAX_DISTANCE_METERS", "-5")

		_, err := config.Load("")

		require.ErrorIs(t, err, config.ErrInvalidMaxDistance)
	})
}

func TestMustLoad(t *testing.T) {
	t.Setenv("PLACEBRIDGE_ENV", "local")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
}

func TestMustLoad_WorkersError(t *testing.T) {
	t.Setenv("PLACEBRIDGE_CONVERT_WORKERS", "0")

	assert.PanicsWithValue(t, "failed to load configuration: convert.workers must be positive", func() {
		config.MustLoad()
	})
}

func TestMustLoad_FileError(t *testing.T) {
	t.Setenv("PLACEBRIDGE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Panics(t, func() {
		config.MustLoad()
	})
}
