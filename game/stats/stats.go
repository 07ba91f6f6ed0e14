// Package stats records games played and won, and keeps them in a Store.
//
// Times are whole seconds. Two stores are provided: FileStore keeps the
// record as a small JSON document, SQLiteStore keeps it in a database
// together with a log of every finished game.
package stats

import (
	"fmt"
	"time"
)

// Stats is the running record across games
type Stats struct {
	Games       int   `json:"games"`
	Won         int   `json:"won"`
	TotalTime   int64 `json:"total_time"`
	LowestTime  int64 `json:"lowest_time"`
	HighestTime int64 `json:"highest_time"`
}

// AddGame counts an abandoned game
func (s *Stats) AddGame() {
	s.Games++
}

// AddGameWon counts a game won in the given number of seconds
func (s *Stats) AddGameWon(seconds int64) {
	s.Games++
	s.Won++
	s.TotalTime += seconds
	if s.LowestTime == 0 || seconds < s.LowestTime {
		s.LowestTime = seconds
	}
	if seconds > s.HighestTime {
		s.HighestTime = seconds
	}
}

// AverageTime returns the mean winning time, 0 with no wins
func (s Stats) AverageTime() int64 {
	if s.Won == 0 {
		return 0
	}
	return s.TotalTime / int64(s.Won)
}

// WinRate returns the percentage of games won, rounded down
func (s Stats) WinRate() int {
	if s.Games == 0 {
		return 0
	}
	return s.Won * 100 / s.Games
}

// Clear resets every counter
func (s *Stats) Clear() {
	*s = Stats{}
}

// Seconds converts a game duration to the unit Stats uses
func Seconds(d time.Duration) int64 {
	return int64(d / time.Second)
}

// FormatTime renders seconds as m:ss
func FormatTime(seconds int64) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Game is one finished game, as logged by stores that keep history
type Game struct {
	ID         string    `json:"id"`
	Seed       uint64    `json:"seed"`
	Won        bool      `json:"won"`
	Seconds    int64     `json:"seconds"`
	Moves      int       `json:"moves"`
	FinishedAt time.Time `json:"finished_at"`
}

// Store loads and saves Stats. A missing store loads as zero Stats.
type Store interface {
	Load() (Stats, error)
	Save(Stats) error
}

// GameLogger is implemented by stores that also keep a per-game log
type GameLogger interface {
	LogGame(Game) error
	RecentGames(limit int) ([]Game, error)
}

// Record applies a finished game to the stored stats and saves them. If
// the store keeps a game log, the game is logged too.
func Record(store Store, g Game) (Stats, error) {
	s, err := store.Load()
	if err != nil {
		return s, fmt.Errorf("load stats: %w", err)
	}
	if g.Won {
		s.AddGameWon(g.Seconds)
	} else {
		s.AddGame()
	}
	if err := store.Save(s); err != nil {
		return s, fmt.Errorf("save stats: %w", err)
	}
	if logger, ok := store.(GameLogger); ok {
		if err := logger.LogGame(g); err != nil {
			return s, fmt.Errorf("log game: %w", err)
		}
	}
	return s, nil
}

// Clear resets the stored stats. Stores that keep a game log drop it too.
func Clear(store Store) error {
	if c, ok := store.(interface{ Clear() error }); ok {
		return c.Clear()
	}
	return store.Save(Stats{})
}
