package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range append(services, "APP_HOST", "REQUEST_TIMEOUT", "LOW_STOCK_THRESHOLD", "CORS_ORIGINS") {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.AppHost)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, float64(10), cfg.LowStockThreshold)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)

	_, err = cfg.BaseURL(RecipesAPI)
	assert.ErrorIs(t, err, ErrMissingBaseURL)
	assert.Contains(t, err.Error(), RecipesAPI)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv(RecipesAPI, "http://recipes.local:8004")
	t.Setenv("IMAGE_API_URL", "http://images.local/")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("LOW_STOCK_THRESHOLD", "3")
	t.Setenv("CORS_ORIGINS", "http://a.local, http://b.local,")

	cfg, err := Load()
	require.NoError(t, err)

	url, err := cfg.BaseURL(RecipesAPI)
	require.NoError(t, err)
	assert.Equal(t, "http://recipes.local:8004", url)
	assert.Equal(t, "http://images.local", cfg.ImageBaseURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, float64(3), cfg.LowStockThreshold)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.CORSOrigins)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "soon")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("REQUEST_TIMEOUT", "1s")
	t.Setenv("LOW_STOCK_THRESHOLD", "-1")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadEnvDoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_HOST=0.0.0.0:9000\nLOG_LEVEL=debug\n"), 0o600))

	t.Setenv("APP_HOST", "127.0.0.1:7000")
	t.Setenv("LOG_LEVEL", "")
	os.Unsetenv("LOG_LEVEL")

	require.NoError(t, LoadEnv(path))

	assert.Equal(t, "127.0.0.1:7000", os.Getenv("APP_HOST"))
	assert.Equal(t, "debug", os.Getenv("LOG_LEVEL"))

	assert.Error(t, LoadEnv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestServiceName(t *testing.T) {
	assert.Equal(t, "recipes", ServiceName(RecipesAPI))
	assert.Equal(t, "type", ServiceName(TypesAPI))
}
