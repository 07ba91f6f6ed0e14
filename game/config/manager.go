package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

// Manager loads the configuration file, creating it with defaults when it
// does not exist, and caches the result
type Manager struct {
	path   string
	config *Config
	mu     sync.RWMutex
}

// NewManager loads the configuration at path. An empty path means the XDG
// default location.
func NewManager(path string) (*Manager, error) {
	if path == "" {
		path = GetConfigFilePath()
	}

	m := &Manager{path: path}
	if err := m.Reload(); err != nil {
		return nil, err
	}
	return m, nil
}

// Path returns the configuration file location
func (m *Manager) Path() string {
	return m.path
}

// Get returns a copy of the current configuration
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cp := *m.config
	cp.Keys.Columns = append([]string(nil), m.config.Keys.Columns...)
	cp.Keys.Cancel = append([]string(nil), m.config.Keys.Cancel...)
	return &cp
}

// Reload reads the file again. A missing file is created with defaults.
func (m *Manager) Reload() error {
	if _, err := os.Stat(m.path); os.IsNotExist(err) {
		config := Default()
		if err := writeFile(m.path, config); err != nil {
			return err
		}
		m.set(config)
		return nil
	}

	config, err := Load(m.path)
	if err != nil {
		return err
	}
	m.set(config)
	return nil
}

// Save validates config and writes it to disk
func (m *Manager) Save(config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	if err := writeFile(m.path, config); err != nil {
		return err
	}
	m.set(config)
	return nil
}

func (m *Manager) set(config *Config) {
	m.mu.Lock()
	m.config = config
	m.mu.Unlock()
}

// Load decodes the file at path over the defaults, so keys missing from
// the file keep their default value. Unknown keys are an error.
func Load(path string) (*Config, error) {
	config := Default()

	meta, err := toml.DecodeFile(path, config)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(keys, ", "))
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func writeFile(path string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}
