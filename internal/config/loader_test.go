package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, 300, cfg.Cache.TTLSeconds)
	assert.Equal(t, 300*time.Second, cfg.Cache.TTL())
	assert.Equal(t, 10, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("api_key: file-key\ncache:\n  ttl_seconds: 60\nrate_limit:\n  requests_per_second: 5\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, 60, cfg.Cache.TTLSeconds)
	assert.Equal(t, 5, cfg.RateLimit.RequestsPerSecond)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("SEMRUSH_API_KEY", "env-key")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
	require.NoError(t, cfg.RequireAPIKey())
}

func TestValidateRejectsNonPositiveRateLimit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rate_limit:\n  requests_per_second: 0\n"), 0o600))

	_, err := Load(viper.New(), path)
	require.Error(t, err)
}

func TestRequireAPIKeyFailsWhenMissing(t *testing.T) {
	cfg := &Config{}
	require.Error(t, cfg.RequireAPIKey())

	cfg.APIKey = "   "
	require.Error(t, cfg.RequireAPIKey())
}

func TestRedactedMasksCredential(t *testing.T) {
	cfg := Config{APIKey: "secret-key"}
	assert.Equal(t, "********", cfg.Redacted().APIKey)
	assert.Equal(t, "secret-key", cfg.APIKey)
}
