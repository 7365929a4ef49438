package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAACyberV99/VibeFlix/internal/constants"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ENV_FILE", filepath.Join(dir, "missing.env"))
	t.Setenv("CONFIG_FILE", filepath.Join(dir, "missing.json"))
	for _, key := range []string{"TMDB_API_KEY", "PORT", "LOG_LEVEL", "HTTP_TIMEOUT", "SESSION_TTL",
		"SESSION_CAPACITY", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "LOCALE", "TMDB_BASE_URL", "TMDB_IMAGE_BASE_URL"} {
		t.Setenv(key, "")
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultPort, cfg.Port)
	assert.Equal(t, constants.TMDBBaseURL, cfg.TMDBBaseURL)
	assert.Equal(t, time.Duration(0), cfg.HTTPTimeout)
	assert.True(t, cfg.NeedsSetup(), "placeholder key requires setup")
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	file := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"TMDB_API_KEY":"from-file","PORT":"8080","SESSION_TTL":"2h","HTTP_TIMEOUT":"5s"}`), 0o600))
	t.Setenv("CONFIG_FILE", file)
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.TMDBAPIKey)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.False(t, cfg.NeedsSetup())
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("RATE_LIMIT_RPS=2.5\nSESSION_CAPACITY=7\n"), 0o600))
	t.Setenv("ENV_FILE", envFile)
	t.Setenv("RATE_LIMIT_RPS", "")
	os.Unsetenv("RATE_LIMIT_RPS")
	os.Unsetenv("SESSION_CAPACITY")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, 7, cfg.SessionCapacity)
}

func TestLoadRejectsBadValues(t *testing.T) {
	isolate(t)
	t.Setenv("SESSION_CAPACITY", "lots")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.SessionCapacity = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.HTTPTimeout = -time.Second
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Locale = ""
	require.NoError(t, cfg.Validate())
	assert.Equal(t, constants.DefaultLocale, cfg.Locale)
}
