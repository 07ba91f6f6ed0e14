package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/freecell/game/service"
	"github.com/wricardo/freecell/game/table"
)

// FilePersistence implements SessionPersistence using file system storage,
// one JSON file per session
type FilePersistence struct {
	sessionsDir string
	opts        table.Options
}

// NewFilePersistence creates a new file-based session persistence layer.
// opts are used for tables rebuilt on Load.
func NewFilePersistence(sessionsDir string, opts table.Options) (*FilePersistence, error) {
	// Create sessions directory if it doesn't exist
	if err := os.MkdirAll(sessionsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	return &FilePersistence{
		sessionsDir: sessionsDir,
		opts:        opts,
	}, nil
}

// Dir returns the sessions directory
func (fp *FilePersistence) Dir() string {
	return fp.sessionsDir
}

// Save persists a session to a JSON file
func (fp *FilePersistence) Save(session *service.Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}
	if !ValidSessionID(session.ID) {
		return ErrInvalidSessionID
	}

	data := PersistedSessionData{
		ID:             session.ID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		Recorded:       session.Recorded,
		Game:           session.Table.Save(),
	}

	// Marshal to JSON with indentation for readability
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	// Write through a temporary file and rename
	filePath := fp.getFilePath(session.ID)
	tmp := filePath + ".tmp"
	if err := os.WriteFile(tmp, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, filePath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Load retrieves a session from a JSON file
func (fp *FilePersistence) Load(id string) (*service.Session, error) {
	if !ValidSessionID(id) {
		return nil, ErrInvalidSessionID
	}
	filePath := fp.getFilePath(id)

	// Check if file exists
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, ErrSessionNotFound
	}

	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	data, err := DecodeSessionData(jsonData)
	if err != nil {
		return nil, err
	}

	tbl, err := table.Restore(data.Game, fp.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to restore table: %w", err)
	}

	return &service.Session{
		ID:             data.ID,
		Table:          tbl,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
		Recorded:       data.Recorded,
	}, nil
}

// DecodeSessionData parses a session file without restoring the table
func DecodeSessionData(jsonData []byte) (*PersistedSessionData, error) {
	var data PersistedSessionData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}
	if data.Game.Field == nil {
		return nil, fmt.Errorf("session %q has no game field", data.ID)
	}
	return &data, nil
}

// Delete removes a session file
func (fp *FilePersistence) Delete(id string) error {
	if !fp.Exists(id) {
		return ErrSessionNotFound
	}

	if err := os.Remove(fp.getFilePath(id)); err != nil {
		return fmt.Errorf("failed to remove session file: %w", err)
	}

	return nil
}

// ListAll returns all persisted session IDs
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var sessionIDs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasSuffix(name, ".json") {
			// Remove .json extension to get session ID
			sessionIDs = append(sessionIDs, strings.TrimSuffix(name, ".json"))
		}
	}

	return sessionIDs, nil
}

// Exists checks if a session file exists
func (fp *FilePersistence) Exists(id string) bool {
	if !ValidSessionID(id) {
		return false
	}
	_, err := os.Stat(fp.getFilePath(id))
	return err == nil
}

// getFilePath returns the full file path for a session ID
func (fp *FilePersistence) getFilePath(id string) string {
	return filepath.Join(fp.sessionsDir, fmt.Sprintf("%s.json", id))
}
