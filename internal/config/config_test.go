package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data := []byte(`
base_url: https://dist.example.com/releases
local_dir: /opt/assist/local
http_timeout: 30s
`)

	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "https://dist.example.com/releases", cfg.BaseURL)
	assert.Equal(t, "/opt/assist/local", cfg.LocalDir)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("base_url: [broken"))
	assert.Error(t, err)
}

func TestMergeOverlaysOnlyNonEmpty(t *testing.T) {
	cfg := defaults()
	cfg.merge(&Config{LocalDir: "/srv/mirror"})

	assert.Equal(t, defaultBaseURL, cfg.BaseURL)
	assert.Equal(t, "/srv/mirror", cfg.LocalDir)
	assert.Equal(t, 60*time.Second, cfg.HTTPTimeout)

	cfg.merge(nil)
	assert.Equal(t, "/srv/mirror", cfg.LocalDir)
}

func TestFinalizeTrimsTrailingSlash(t *testing.T) {
	cfg := &Config{BaseURL: "https://dist.example.com/releases/ ", CacheDir: t.TempDir(), LocalDir: "local"}
	require.NoError(t, cfg.finalize())

	assert.Equal(t, "https://dist.example.com/releases", cfg.BaseURL)
	assert.Equal(t, 60*time.Second, cfg.HTTPTimeout)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("CODEASSIST_BASE_URL", "https://mirror.internal/assist")
	t.Setenv("CODEASSIST_HTTP_TIMEOUT", "15s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://mirror.internal/assist", cfg.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.NotEmpty(t, cfg.CacheDir)
	assert.NotEmpty(t, cfg.LocalDir)
}
