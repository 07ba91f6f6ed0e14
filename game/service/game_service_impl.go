package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/wricardo/freecell/game/action"
	"github.com/wricardo/freecell/game/stats"
)

// MaxInputTokens bounds the tokens accepted by one Input call
const MaxInputTokens = 200

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrStatsDisabled = errors.New("stats are not enabled")
)

// Options tune the service
type Options struct {
	// AutoSweep sends every safe card home after each successful move,
	// undo or redo
	AutoSweep bool

	// Stats receives finished games. Nil disables stats.
	Stats stats.Store

	// RecentGames is how many logged games GetStats returns
	RecentGames int
}

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	opts     Options
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, opts Options) GameService {
	if opts.RecentGames <= 0 {
		opts.RecentGames = 10
	}
	return &gameServiceImpl{
		sessions: sessions,
		opts:     opts,
	}
}

// CreateSession deals a new game. A nil seed picks a random one.
func (s *gameServiceImpl) CreateSession(ctx context.Context, seed *uint64) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dealSeed := uint64(rand.Uint32())
	if seed != nil {
		dealSeed = *seed
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", dealSeed)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return sessionInfo(session), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return sessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}

	return result, nil
}

// DeleteSession removes a session. A played game that was not won counts
// as an abandoned game.
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, err := s.sessions.Get(sessionID); err == nil {
		if sess.Table.Played() && !sess.Table.Won() && !sess.Recorded {
			s.record(sess)
		}
	}

	return s.sessions.Delete(sessionID)
}

// Input feeds keys or tokens to a session's table
func (s *gameServiceImpl) Input(ctx context.Context, sessionID string, req InputRequest) (*InputResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	tokens, err := parseInput(sess.Table.Keymap(), req)
	if err != nil {
		return nil, err
	}

	result := &InputResult{
		Success: true,
		Steps:   make([]StepResult, 0, len(tokens)),
	}
	for _, tok := range tokens {
		out := sess.Table.Input(tok)
		result.Steps = append(result.Steps, stepResult(tok, out))
		switch out.Status {
		case action.Moved:
			result.Moved++
		case action.Rejected:
			result.Success = false
			result.Message = out.Message
		}
	}

	if result.Moved > 0 && s.opts.AutoSweep {
		result.Swept = sess.Table.SweepAll()
	}
	result.StatsSaved = s.recordWin(sess)
	result.GameState = buildGameState(sess.Table)

	s.persist(sessionID)
	return result, nil
}

// Undo steps a session back one move
func (s *gameServiceImpl) Undo(ctx context.Context, sessionID string) (*HistoryResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	result := &HistoryResult{Changed: sess.Table.Undo()}
	s.afterHistory(sessionID, sess, result)
	return result, nil
}

// Redo reverses the last undo of a session
func (s *gameServiceImpl) Redo(ctx context.Context, sessionID string) (*HistoryResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	result := &HistoryResult{Changed: sess.Table.Redo()}
	s.afterHistory(sessionID, sess, result)
	return result, nil
}

func (s *gameServiceImpl) afterHistory(sessionID string, sess *Session, result *HistoryResult) {
	if result.Changed {
		if s.opts.AutoSweep {
			result.Swept = sess.Table.SweepAll()
		}
		s.recordWin(sess)
		s.persist(sessionID)
	}
	result.GameState = buildGameState(sess.Table)
}

// Sweep sends every safe card home
func (s *gameServiceImpl) Sweep(ctx context.Context, sessionID string) (*SweepResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	result := &SweepResult{Swept: sess.Table.SweepAll()}
	s.recordWin(sess)
	if result.Swept > 0 {
		s.persist(sessionID)
	}
	result.GameState = buildGameState(sess.Table)
	return result, nil
}

// GetGameState retrieves the current state of a session's table
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return buildGameState(sess.Table), nil
}

// GetStats loads the stats, with the most recent games when the store
// keeps a log
func (s *gameServiceImpl) GetStats(ctx context.Context) (*StatsInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.opts.Stats == nil {
		return nil, ErrStatsDisabled
	}

	st, err := s.opts.Stats.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	info := newStatsInfo(st)
	if logger, ok := s.opts.Stats.(stats.GameLogger); ok {
		recent, err := logger.RecentGames(s.opts.RecentGames)
		if err != nil {
			return nil, fmt.Errorf("failed to load recent games: %w", err)
		}
		info.Recent = recent
	}
	return info, nil
}

// ClearStats resets the stored stats
func (s *gameServiceImpl) ClearStats(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opts.Stats == nil {
		return ErrStatsDisabled
	}
	if err := stats.Clear(s.opts.Stats); err != nil {
		return fmt.Errorf("failed to clear stats: %w", err)
	}
	return nil
}

// recordWin records a won game once. It reports whether stats were saved.
func (s *gameServiceImpl) recordWin(sess *Session) bool {
	if !sess.Table.Won() || sess.Recorded {
		return false
	}
	return s.record(sess)
}

func (s *gameServiceImpl) record(sess *Session) bool {
	if s.opts.Stats == nil {
		return false
	}

	sess.Recorded = true
	game := stats.Game{
		Seed:       sess.Table.Seed(),
		Won:        sess.Table.Won(),
		Seconds:    stats.Seconds(sess.Table.Elapsed()),
		Moves:      sess.Table.Moves(),
		FinishedAt: time.Now(),
	}
	if _, err := stats.Record(s.opts.Stats, game); err != nil {
		log.Printf("Warning: Failed to record game for session %s: %v", sess.ID, err)
		return false
	}
	return true
}

func (s *gameServiceImpl) persist(sessionID string) {
	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s: %v", sessionID, err)
	}
}

func sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		Seed:           sess.Table.Seed(),
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      buildGameState(sess.Table),
	}
}

// parseInput turns a request into tokens. Every key or token is checked
// before any is fed.
func parseInput(km action.Keymap, req InputRequest) ([]action.Token, error) {
	var tokens []action.Token

	switch {
	case req.Keys != "":
		for _, r := range req.Keys {
			tok, ok := km.Classify(string(r))
			if !ok {
				return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidInput, r)
			}
			tokens = append(tokens, tok)
		}
	case len(req.Tokens) > 0:
		for _, raw := range req.Tokens {
			tok, err := action.ParseToken(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			tokens = append(tokens, tok)
		}
	default:
		return nil, fmt.Errorf("%w: keys or tokens required", ErrInvalidInput)
	}

	if len(tokens) > MaxInputTokens {
		return nil, fmt.Errorf("%w: at most %d tokens per call", ErrInvalidInput, MaxInputTokens)
	}
	return tokens, nil
}
