// Package config provides configuration management for the FreeCell game.
//
// The config package handles:
//   - Loading the TOML configuration file from the XDG config directory
//   - Creating the file with defaults on first run
//   - Validation of pacing values, key bindings and the stats backend
//   - Resolving default locations for stats and server sessions
//
// Configuration Format:
//
// The file lives at $XDG_CONFIG_HOME/freecell/config.toml and has four
// tables:
//   - [game]: sweep_batch, tick_interval_ms, message_timeout_ms
//   - [keys]: columns, reserve, pile, cancel
//   - [stats]: backend ("json" or "sqlite") and an optional file
//   - [server]: host, port, sessions_dir, auto_sweep
//
// Keys missing from the file keep their default value; unknown keys are
// rejected so typos do not go unnoticed.
//
// Usage:
//
//	manager, err := config.NewManager("")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	cfg := manager.Get()
//	interval := cfg.TickInterval()
package config
