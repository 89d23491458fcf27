// Package config loads imagefy settings from ~/.imagefy/config.yaml with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// HomeEnv overrides the ~/.imagefy base directory (for testing).
	HomeEnv = "IMAGEFY_HOME"
	// DefaultHomeDir is the default base directory under the user's home.
	DefaultHomeDir = ".imagefy"

	FunctionURLEnv    = "IMAGEFY_FUNCTION_URL"
	AnonKeyEnv        = "IMAGEFY_ANON_KEY"
	RequestTimeoutEnv = "IMAGEFY_REQUEST_TIMEOUT"
	MetricsAddrEnv    = "IMAGEFY_METRICS_ADDR"
)

// ErrMissingFunctionURL is returned by Validate when no endpoint is configured.
var ErrMissingFunctionURL = errors.New("function_url is not configured (set it in config.yaml or " + FunctionURLEnv + ")")

// Config holds everything the client needs to talk to the generation
// endpoint and where to keep local files.
type Config struct {
	FunctionURL    string        `yaml:"function_url"`
	AnonKey        string        `yaml:"anon_key"`
	RequestTimeout time.Duration `yaml:"request_timeout"` // 0 = no deadline
	DownloadsDir   string        `yaml:"downloads_dir"`
	SessionFile    string        `yaml:"session_file"`
	LogFile        string        `yaml:"log_file"`
	MetricsAddr    string        `yaml:"metrics_addr"` // empty = metrics server disabled
}

// HomeDir returns the imagefy base directory, honoring IMAGEFY_HOME.
func HomeDir() (string, error) {
	if base := os.Getenv(HomeEnv); base != "" {
		return base, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultHomeDir), nil
}

// DefaultPath returns the config file location inside HomeDir.
func DefaultPath() (string, error) {
	base, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Default returns a Config with file locations rooted at base.
func Default(base string) Config {
	return Config{
		DownloadsDir: filepath.Join(base, "downloads"),
		SessionFile:  filepath.Join(base, "session.yaml"),
		LogFile:      filepath.Join(base, "imagefy.log"),
	}
}

// Load reads the config file at path (DefaultPath when empty), fills in
// defaults and applies env overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	base, err := HomeDir()
	if err != nil {
		return Config{}, err
	}
	if path == "" {
		path = filepath.Join(base, "config.yaml")
	}
	cfg := Default(base)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(FunctionURLEnv); v != "" {
		c.FunctionURL = v
	}
	if v := os.Getenv(AnonKeyEnv); v != "" {
		c.AnonKey = v
	}
	if v := os.Getenv(MetricsAddrEnv); v != "" {
		c.MetricsAddr = v
	}
	if v := os.Getenv(RequestTimeoutEnv); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", RequestTimeoutEnv, err)
		}
		c.RequestTimeout = d
	}
	return nil
}

// Validate reports settings that make generation impossible.
func (c Config) Validate() error {
	if c.FunctionURL == "" {
		return ErrMissingFunctionURL
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative, got %s", c.RequestTimeout)
	}
	return nil
}
