package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, 30*time.Second, cfg.AppRequestTimeout)
	assert.Equal(t, "THB", cfg.CurrencyCode)
	assert.Equal(t, 7.0, cfg.DefaultVATPercentage)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.TestMode)
}

func TestLoadConfigTestMode(t *testing.T) {
	t.Setenv("APP_TEST_MODE", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.TestMode)
}

func TestLoadConfigRejectsBadVAT(t *testing.T) {
	t.Setenv("DEFAULT_VAT_PERCENTAGE", "140")

	_, err := LoadConfig()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CURRENCY_CODE=USD\nAPP_ENV=production\n"), 0o600))
	t.Setenv("APP_ENV", "staging")
	t.Setenv("CURRENCY_CODE", "")
	require.NoError(t, os.Unsetenv("CURRENCY_CODE"))

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))

	assert.Equal(t, "USD", os.Getenv("CURRENCY_CODE"))
	assert.Equal(t, "staging", os.Getenv("APP_ENV"))
}
