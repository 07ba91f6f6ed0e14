// Package history keeps a linear undo/redo list of field snapshots.
//
// Snapshots are deep copies. Nothing the manager stores is shared with the
// live field or with a field it hands back, so further play can never
// change recorded history.
package history

import (
	"fmt"

	"github.com/wricardo/freecell/game/engine"
)

// Manager is a list of pre-move snapshots plus a cursor. A negative cursor
// means the live field is current; otherwise the snapshot at the cursor is,
// and the last snapshot holds the live field captured by the first undo.
type Manager struct {
	snapshots []*engine.Field
	cursor    int
}

// New returns an empty history
func New() *Manager {
	return &Manager{cursor: -1}
}

// Push records the field as it was before a move. If an undo is in
// progress, the redo branch is dropped first, starting at the cursor: the
// snapshot there is the live field, which is the one being pushed.
func (m *Manager) Push(snapshot *engine.Field) {
	if m.cursor >= 0 {
		m.snapshots = m.snapshots[:m.cursor]
		m.cursor = -1
	}
	m.snapshots = append(m.snapshots, snapshot.Copy())
}

// Undo steps back one move. live is the current field; on the first undo it
// is captured so Redo can return to it. The returned field should become
// live. ok is false when there is nothing to undo.
func (m *Manager) Undo(live *engine.Field) (field *engine.Field, ok bool) {
	switch {
	case len(m.snapshots) == 0:
		return nil, false
	case m.cursor < 0:
		m.cursor = len(m.snapshots) - 1
		m.snapshots = append(m.snapshots, live.Copy())
	case m.cursor > 0:
		m.cursor--
	default:
		return nil, false
	}
	return m.snapshots[m.cursor].Copy(), true
}

// Redo steps forward again after Undo. Stepping past the captured live
// field pops it back out and ends the undo. ok is false when no undo is in
// progress.
func (m *Manager) Redo() (field *engine.Field, ok bool) {
	if m.cursor < 0 {
		return nil, false
	}

	m.cursor++
	if m.cursor == len(m.snapshots) {
		last := m.snapshots[len(m.snapshots)-1]
		m.snapshots = m.snapshots[:len(m.snapshots)-1]
		m.cursor = -1
		return last, true
	}
	return m.snapshots[m.cursor].Copy(), true
}

// Len returns the number of stored snapshots, including a captured live
// field while an undo is in progress
func (m *Manager) Len() int {
	return len(m.snapshots)
}

// Cursor returns the index of the current snapshot, or -1 at the live field
func (m *Manager) Cursor() int {
	return m.cursor
}

// CanUndo reports whether Undo would change anything
func (m *Manager) CanUndo() bool {
	return len(m.snapshots) > 0 && m.cursor != 0
}

// CanRedo reports whether Redo would change anything
func (m *Manager) CanRedo() bool {
	return m.cursor >= 0
}

// Reset forgets all history
func (m *Manager) Reset() {
	m.snapshots = nil
	m.cursor = -1
}

// Record is the serialisable form of a Manager
type Record struct {
	Snapshots []*engine.Field `json:"snapshots"`
	Cursor    int             `json:"cursor"`
}

// Export returns a deep copy of the history for persistence
func (m *Manager) Export() Record {
	rec := Record{
		Snapshots: make([]*engine.Field, 0, len(m.snapshots)),
		Cursor:    m.cursor,
	}
	for _, s := range m.snapshots {
		rec.Snapshots = append(rec.Snapshots, s.Copy())
	}
	return rec
}

// Restore rebuilds a Manager from a Record, validating every snapshot
func Restore(rec Record) (*Manager, error) {
	if rec.Cursor < -1 || rec.Cursor >= len(rec.Snapshots) {
		return nil, fmt.Errorf("history cursor %d out of range for %d snapshots", rec.Cursor, len(rec.Snapshots))
	}
	if rec.Cursor >= 0 && len(rec.Snapshots) < 2 {
		return nil, fmt.Errorf("history cursor %d set without a captured live field", rec.Cursor)
	}

	m := &Manager{cursor: rec.Cursor}
	for i, s := range rec.Snapshots {
		if s == nil {
			return nil, fmt.Errorf("history snapshot %d is missing", i)
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("history snapshot %d: %w", i, err)
		}
		m.snapshots = append(m.snapshots, s.Copy())
	}
	return m, nil
}
