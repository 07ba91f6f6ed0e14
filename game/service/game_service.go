package service

import (
	"context"
	"time"

	"github.com/wricardo/freecell/game/table"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, seed *uint64) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Input(ctx context.Context, sessionID string, req InputRequest) (*InputResult, error)
	Undo(ctx context.Context, sessionID string) (*HistoryResult, error)
	Redo(ctx context.Context, sessionID string) (*HistoryResult, error)
	Sweep(ctx context.Context, sessionID string) (*SweepResult, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*GameState, error)

	// Stats
	GetStats(ctx context.Context) (*StatsInfo, error)
	ClearStats(ctx context.Context) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, seed uint64) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// Session represents an active game session
type Session struct {
	ID             string
	Table          *table.Table
	CreatedAt      time.Time
	LastAccessedAt time.Time

	// Recorded is set once the game's result has been written to stats
	Recorded bool
}
