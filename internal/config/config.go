// Package config handles configuration file loading and startup path resolution.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultDelimiter = ","
	DefaultListen    = "127.0.0.1:7878"
	DefaultDebounce  = 150 * time.Millisecond
)

// Config represents the timetable configuration.
type Config struct {
	Paths    PathsConfig    `toml:"paths"`
	Schedule ScheduleConfig `toml:"schedule"`
	Server   ServerConfig   `toml:"server"`
	DBus     DBusConfig     `toml:"dbus"`
	Watch    WatchConfig    `toml:"watch"`
}

// PathsConfig overrides the paths resolved from the working directory.
type PathsConfig struct {
	Theme string `toml:"theme"` // Empty = resolve from working directory
	Data  string `toml:"data"`  // Empty = resolve from working directory
}

// ScheduleConfig holds schedule file options.
type ScheduleConfig struct {
	Delimiter    string `toml:"delimiter"`     // Single character field separator
	StrictBounds bool   `toml:"strict_bounds"` // Fail out of range saves instead of skipping
}

// ServerConfig holds HTTP/WebSocket bridge settings.
type ServerConfig struct {
	Enabled bool   `toml:"enabled"`
	Listen  string `toml:"listen"`
}

// DBusConfig holds D-Bus bridge settings.
type DBusConfig struct {
	Enabled bool `toml:"enabled"`
}

// WatchConfig holds file watching settings.
type WatchConfig struct {
	Enabled  bool     `toml:"enabled"`
	Debounce Duration `toml:"debounce"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Schedule: ScheduleConfig{
			Delimiter:    DefaultDelimiter,
			StrictBounds: false,
		},
		Server: ServerConfig{
			Enabled: true,
			Listen:  DefaultListen,
		},
		DBus: DBusConfig{
			Enabled: false,
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: Duration(DefaultDebounce),
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "timetable", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if _, err := c.Schedule.Comma(); err != nil {
		return err
	}
	if c.Server.Enabled && c.Server.Listen == "" {
		return errors.New("server.listen must be set when the server is enabled")
	}
	if c.Watch.Debounce < 0 {
		return errors.New("watch.debounce must not be negative")
	}
	return nil
}

// Comma returns the configured delimiter as a rune.
func (s ScheduleConfig) Comma() (rune, error) {
	if s.Delimiter == "" {
		return ',', nil
	}
	r, size := utf8.DecodeRuneInString(s.Delimiter)
	if size != len(s.Delimiter) || r == utf8.RuneError {
		return 0, fmt.Errorf("schedule.delimiter must be a single character, got %q", s.Delimiter)
	}
	if r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("schedule.delimiter %q is not allowed", s.Delimiter)
	}
	return r, nil
}
