package service

import (
	"time"

	"github.com/wricardo/freecell/game/action"
	"github.com/wricardo/freecell/game/stats"
	"github.com/wricardo/freecell/game/table"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string     `json:"id"`
	Seed           uint64     `json:"seed"`
	CreatedAt      time.Time  `json:"created_at"`
	LastAccessedAt time.Time  `json:"last_accessed_at"`
	GameState      *GameState `json:"game_state"`
}

// GameState is the client view of a table
type GameState struct {
	Seed           uint64     `json:"seed"`
	Reserve        []string   `json:"reserve"`
	Piles          []string   `json:"piles"`
	Columns        [][]string `json:"columns"`
	Board          string     `json:"board"`
	Pending        []string   `json:"pending,omitempty"`
	Message        string     `json:"message,omitempty"`
	FreeReserve    int        `json:"free_reserve"`
	FreeColumns    int        `json:"free_columns"`
	Remaining      int        `json:"remaining"`
	Moves          int        `json:"moves"`
	CanUndo        bool       `json:"can_undo"`
	CanRedo        bool       `json:"can_redo"`
	Sweeping       bool       `json:"sweeping"`
	Won            bool       `json:"won"`
	ElapsedSeconds int64      `json:"elapsed_seconds"`
	Elapsed        string     `json:"elapsed"`
}

// InputRequest carries either raw keys ("ar") or tokens ("0", "reserve").
// Keys wins when both are set.
type InputRequest struct {
	Keys   string   `json:"keys,omitempty"`
	Tokens []string `json:"tokens,omitempty"`
}

// StepResult is the outcome of one fed token
type StepResult struct {
	Token   string `json:"token"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// InputResult contains the result of an input sequence
type InputResult struct {
	Success    bool         `json:"success"`
	Moved      int          `json:"moved"`
	Swept      int          `json:"swept"`
	Steps      []StepResult `json:"steps"`
	Message    string       `json:"message,omitempty"`
	GameState  *GameState   `json:"game_state"`
	StatsSaved bool         `json:"stats_saved,omitempty"`
}

// HistoryResult is returned by Undo and Redo
type HistoryResult struct {
	Changed   bool       `json:"changed"`
	Swept     int        `json:"swept"`
	GameState *GameState `json:"game_state"`
}

// SweepResult is returned by Sweep
type SweepResult struct {
	Swept     int        `json:"swept"`
	GameState *GameState `json:"game_state"`
}

// StatsInfo is the stats view with the derived values filled in
type StatsInfo struct {
	stats.Stats
	WinRate     int          `json:"win_rate"`
	AverageTime int64        `json:"average_time"`
	Recent      []stats.Game `json:"recent,omitempty"`
}

func newStatsInfo(s stats.Stats) *StatsInfo {
	return &StatsInfo{
		Stats:       s,
		WinRate:     s.WinRate(),
		AverageTime: s.AverageTime(),
	}
}

func buildGameState(t *table.Table) *GameState {
	eng := t.Engine()

	reserve := make([]string, 0, len(eng.Reserve()))
	for _, c := range eng.Reserve() {
		reserve = append(reserve, c.Code())
	}

	piles := make([]string, 0, len(eng.Piles()))
	for _, pile := range eng.Piles() {
		top := ""
		if len(pile) > 0 {
			top = pile[len(pile)-1].Code()
		}
		piles = append(piles, top)
	}

	columns := make([][]string, 0, len(eng.Columns()))
	for _, col := range eng.Columns() {
		codes := make([]string, 0, len(col))
		for _, c := range col {
			codes = append(codes, c.Code())
		}
		columns = append(columns, codes)
	}

	elapsed := stats.Seconds(t.Elapsed())
	return &GameState{
		Seed:           t.Seed(),
		Reserve:        reserve,
		Piles:          piles,
		Columns:        columns,
		Board:          t.Board(),
		Pending:        t.Pending(),
		Message:        t.Message(),
		FreeReserve:    eng.FreeReserve(),
		FreeColumns:    eng.FreeColumns(),
		Remaining:      eng.Remaining(),
		Moves:          t.Moves(),
		CanUndo:        t.CanUndo(),
		CanRedo:        t.CanRedo(),
		Sweeping:       t.Sweeping(),
		Won:            t.Won(),
		ElapsedSeconds: elapsed,
		Elapsed:        stats.FormatTime(elapsed),
	}
}

func stepResult(tok action.Token, out action.Outcome) StepResult {
	return StepResult{
		Token:   tok.String(),
		Status:  out.Status.String(),
		Message: out.Message,
	}
}
