// Package config carries the installer's own settings: where releases are
// served from, where the bundled fallback mirror lives, and where downloads
// are cached. Values come from built-in defaults, an optional YAML file, and
// CODEASSIST_* environment overrides, in that order.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	defaultBaseURL = "https://storage.googleapis.com/code-assist-releases"

	// envPrefix scopes environment overrides, e.g. CODEASSIST_BASE_URL.
	envPrefix = "CODEASSIST"

	// configFileName is looked up beside the executable and in the working
	// directory when CODEASSIST_CONFIG is unset.
	configFileName = "codeassist.yaml"

	localDirName = "local"
)

// Config describes distribution endpoints and local directories.
type Config struct {
	// BaseURL is the root of the remote distribution bucket.
	BaseURL string `yaml:"base_url" envconfig:"BASE_URL"`

	// LocalDir is the bundled fallback store mirroring the remote layout.
	LocalDir string `yaml:"local_dir" envconfig:"LOCAL_DIR"`

	// CacheDir receives downloaded artifacts before verification.
	CacheDir string `yaml:"cache_dir" envconfig:"CACHE_DIR"`

	// HTTPTimeout bounds every remote request.
	HTTPTimeout time.Duration `yaml:"http_timeout" envconfig:"HTTP_TIMEOUT"`
}

// Load assembles the effective configuration: defaults, then the YAML file if
// one exists, then environment overrides.
func Load() (*Config, error) {
	cfg := defaults()

	path := configFilePath()
	if path != "" {
		fileCfg, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		cfg.merge(fileCfg)
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to read environment overrides")
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		BaseURL:     defaultBaseURL,
		HTTPTimeout: 60 * time.Second,
	}
}

func configFilePath() string {
	if path := os.Getenv(envPrefix + "_CONFIG"); path != "" {
		return path
	}

	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName
	}

	return ""
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file: %s", path)
	}
	return Parse(data)
}

// Parse decodes configuration data from bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse installer configuration")
	}
	return &cfg, nil
}

// merge overlays non-empty values from other onto c.
func (c *Config) merge(other *Config) {
	if other == nil {
		return
	}
	if trimmed := strings.TrimSpace(other.BaseURL); trimmed != "" {
		c.BaseURL = trimmed
	}
	if trimmed := strings.TrimSpace(other.LocalDir); trimmed != "" {
		c.LocalDir = trimmed
	}
	if trimmed := strings.TrimSpace(other.CacheDir); trimmed != "" {
		c.CacheDir = trimmed
	}
	if other.HTTPTimeout > 0 {
		c.HTTPTimeout = other.HTTPTimeout
	}
}

// finalize fills directory defaults that depend on the runtime environment.
func (c *Config) finalize() error {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}

	if c.LocalDir == "" {
		c.LocalDir = discoverLocalDir()
	}

	if c.CacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.Wrap(err, "failed to determine home directory")
		}
		c.CacheDir = filepath.Join(home, ".assist", "downloads")
	}

	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 60 * time.Second
	}

	return nil
}

// discoverLocalDir prefers a mirror shipped beside the executable and falls
// back to one in the working directory.
func discoverLocalDir() string {
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), localDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return localDirName
	}
	return filepath.Join(wd, localDirName)
}
