package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "API_URL", "SESSION_TTL_SECONDS", "CORS_ORIGINS", "CONTENT_DIR", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "http://localhost:8080", cfg.APIURL)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.ContentDir)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("STOREFRONT_ADDR", ":9000")
	t.Setenv("API_TIMEOUT_SECONDS", "3")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "not-a-number")
	t.Setenv("CORS_ORIGINS", "https://a.test, ,https://b.test")

	cfg := FromEnv()

	assert.Equal(t, ":9000", cfg.StorefrontAddr)
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORSOrigins)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("CDN_URL=https://cdn.test\nHTTP_ADDR=:7000\n"), 0o600))
	t.Setenv("HTTP_ADDR", ":6000")
	t.Setenv("CDN_URL", "")
	require.NoError(t, os.Unsetenv("CDN_URL"))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.test", cfg.CDNURL)
	assert.Equal(t, ":6000", cfg.HTTPAddr, "process environment wins")
}

func TestLoad_MissingFileIsIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}
