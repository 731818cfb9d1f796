// Package config loads and saves greencarbon's TOML configuration.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rotisserie/eris"
	"golang.org/x/text/language"

	"github.com/theirongolddev/greencarbon/internal/predict"
)

// Env vars that override the configured API base URL, in precedence order.
const (
	EnvAPIURL       = "GREENCARBON_API_URL"
	EnvLegacyAPIURL = "NEXT_PUBLIC_API_URL"
)

// Config holds all greencarbon configuration.
type Config struct {
	API        APIConfig        `toml:"api"`
	Appearance AppearanceConfig `toml:"appearance"`
	Display    DisplayConfig    `toml:"display"`
	Log        LogConfig        `toml:"log"`
}

// APIConfig holds prediction backend settings.
type APIConfig struct {
	BaseURL    string `toml:"base_url,omitempty"`
	TimeoutSec int    `toml:"timeout_sec"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DisplayConfig holds report formatting settings.
type DisplayConfig struct {
	Locale string `toml:"locale"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			TimeoutSec: 60,
		},
		Appearance: AppearanceConfig{
			Theme: "forest-dark",
		},
		Display: DisplayConfig{
			Locale: "ko",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "greencarbon")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "greencarbon")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// CacheDir returns the XDG-compliant cache directory, used for logs.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "greencarbon")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "greencarbon")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config at path over the defaults.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	//nolint:gosec // config path is under the user's config dir
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, eris.Wrap(err, "config: reading file")
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, eris.Wrap(err, "config: parsing file")
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(Path(), cfg)
}

// SaveTo writes the config to path, creating its directory.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrap(err, "config: creating dir")
	}

	//nolint:gosec // config path is under the user's config dir
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return eris.Wrap(err, "config: creating file")
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return eris.Wrap(err, "config: encoding")
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// GetBaseURL returns the API base URL from env vars or config, in that order,
// falling back to the local development backend. Trailing slashes are stripped.
func GetBaseURL(cfg Config) string {
	if u := os.Getenv(EnvAPIURL); u != "" {
		return predict.NormalizeBaseURL(u)
	}
	if u := os.Getenv(EnvLegacyAPIURL); u != "" {
		return predict.NormalizeBaseURL(u)
	}
	return predict.NormalizeBaseURL(cfg.API.BaseURL)
}

// Timeout returns the per-request timeout.
func (c APIConfig) Timeout() time.Duration {
	if c.TimeoutSec <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.TimeoutSec) * time.Second
}

// Tag parses the display locale, falling back to Korean.
func (c DisplayConfig) Tag() language.Tag {
	if c.Locale == "" {
		return language.Korean
	}
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Korean
	}
	return tag
}
