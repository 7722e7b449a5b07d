package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ":8000", cfg.HTTPAddr)
	assert.Equal(t, "http://localhost:3000", cfg.AllowedOrigin)
	assert.Equal(t, "findash", cfg.MetricsNamespace)
	assert.False(t, cfg.Debug)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8000", cfg.HTTPAddr)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "findash.yaml")
	data := []byte("http_addr: \":9000\"\nallowed_origin: \"https://dash.example.com\"\ndebug: true\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, "https://dash.example.com", cfg.AllowedOrigin)
	assert.True(t, cfg.Debug)
	// Untouched keys keep their defaults.
	assert.Equal(t, "findash", cfg.MetricsNamespace)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http_addr: [unterminated"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "findash.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http_addr: \":9000\"\n"), 0o644))

	t.Setenv("FINDASH_HTTP_ADDR", ":7777")
	t.Setenv("FINDASH_METRICS_NAMESPACE", "custom")
	t.Setenv("FINDASH_DEBUG", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7777", cfg.HTTPAddr)
	assert.Equal(t, "custom", cfg.MetricsNamespace)
	assert.True(t, cfg.Debug)
}

func TestEnvIgnoresInvalidDebugValue(t *testing.T) {
	t.Setenv("FINDASH_DEBUG", "definitely")
	cfg := DefaultConfig()
	assert.False(t, cfg.Debug)
}
