package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps Stats as a JSON document
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the file at path. The file and its
// directory are created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file
func (f *FileStore) Path() string {
	return f.path
}

// Load reads the stats. A missing file yields zero Stats and keys absent
// from the document keep their zero value.
func (f *FileStore) Load() (Stats, error) {
	var s Stats

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("failed to read stats file: %w", err)
	}

	if err := json.Unmarshal(data, &s); err != nil {
		return Stats{}, fmt.Errorf("failed to parse stats file: %w", err)
	}
	return s, nil
}

// Save writes the stats, replacing the file atomically
func (f *FileStore) Save(s Stats) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("failed to create stats directory: %w", err)
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	data = append(data, '\n')

	tempFile := f.path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write stats file: %w", err)
	}
	if err := os.Rename(tempFile, f.path); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename stats file: %w", err)
	}
	return nil
}
