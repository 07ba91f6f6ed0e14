package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wricardo/freecell/game/action"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

const appName = "freecell"

// Stats backends
const (
	StatsJSON   = "json"
	StatsSQLite = "sqlite"
)

// Config is the whole configuration file
type Config struct {
	Game   GameConfig    `toml:"game" json:"game"`
	Keys   action.Keymap `toml:"keys" json:"keys"`
	Stats  StatsConfig   `toml:"stats" json:"stats"`
	Server ServerConfig  `toml:"server" json:"server"`
}

// GameConfig tunes play pacing
type GameConfig struct {
	// SweepBatch is the number of cards one tick may send home
	SweepBatch       int `toml:"sweep_batch" json:"sweep_batch"`
	TickIntervalMS   int `toml:"tick_interval_ms" json:"tick_interval_ms"`
	MessageTimeoutMS int `toml:"message_timeout_ms" json:"message_timeout_ms"`
}

// StatsConfig selects where stats are kept. An empty File means the
// default path for the backend.
type StatsConfig struct {
	Backend string `toml:"backend" json:"backend"`
	File    string `toml:"file" json:"file"`
}

// ServerConfig is used by the serve command
type ServerConfig struct {
	Host        string `toml:"host" json:"host"`
	Port        int    `toml:"port" json:"port"`
	SessionsDir string `toml:"sessions_dir" json:"sessions_dir"`
	AutoSweep   bool   `toml:"auto_sweep" json:"auto_sweep"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Game: GameConfig{
			SweepBatch:       3,
			TickIntervalMS:   100,
			MessageTimeoutMS: 1000,
		},
		Keys: action.DefaultKeymap(),
		Stats: StatsConfig{
			Backend: StatsJSON,
		},
		Server: ServerConfig{
			Host:      "localhost",
			Port:      8080,
			AutoSweep: true,
		},
	}
}

// Validate checks value ranges and the key bindings
func (c *Config) Validate() error {
	if c.Game.SweepBatch < 1 {
		return fmt.Errorf("%w: sweep_batch must be at least 1, got %d", ErrInvalidConfig, c.Game.SweepBatch)
	}
	if c.Game.TickIntervalMS < 10 {
		return fmt.Errorf("%w: tick_interval_ms must be at least 10, got %d", ErrInvalidConfig, c.Game.TickIntervalMS)
	}
	if c.Game.MessageTimeoutMS < 0 {
		return fmt.Errorf("%w: message_timeout_ms cannot be negative", ErrInvalidConfig)
	}
	if err := c.Keys.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch c.Stats.Backend {
	case StatsJSON, StatsSQLite:
	default:
		return fmt.Errorf("%w: unknown stats backend %q", ErrInvalidConfig, c.Stats.Backend)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	return nil
}

// TickInterval returns the sweep tick period
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Game.TickIntervalMS) * time.Millisecond
}

// MessageTimeout returns how long a message stays on screen
func (c *Config) MessageTimeout() time.Duration {
	return time.Duration(c.Game.MessageTimeoutMS) * time.Millisecond
}

// StatsPath returns the stats file for the configured backend
func (c *Config) StatsPath() string {
	if c.Stats.File != "" {
		return c.Stats.File
	}
	name := "stats.json"
	if c.Stats.Backend == StatsSQLite {
		name = "stats.db"
	}
	return filepath.Join(GetXDGConfigHome(), appName, name)
}

// SessionsPath returns the directory for persisted server sessions
func (c *Config) SessionsPath() string {
	if c.Server.SessionsDir != "" {
		return c.Server.SessionsDir
	}
	return filepath.Join(GetXDGDataHome(), appName, "sessions")
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), appName, "config.toml")
}
