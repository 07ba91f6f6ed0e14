package stats

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps the aggregate Stats in a single row and logs every
// finished game in a games table
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and ensures the schema
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS stats (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			games INTEGER NOT NULL,
			won INTEGER NOT NULL,
			total_time INTEGER NOT NULL,
			lowest_time INTEGER NOT NULL,
			highest_time INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS games (
			game_id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			won INTEGER NOT NULL,
			seconds INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			finished_at TEXT NOT NULL
		);`

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the aggregate row; an empty database yields zero Stats
func (s *SQLiteStore) Load() (Stats, error) {
	var st Stats
	err := s.db.QueryRow(
		`SELECT games, won, total_time, lowest_time, highest_time FROM stats WHERE id = 1`,
	).Scan(&st.Games, &st.Won, &st.TotalTime, &st.LowestTime, &st.HighestTime)
	if err == sql.ErrNoRows {
		return Stats{}, nil
	}
	if err != nil {
		return Stats{}, fmt.Errorf("load stats: %w", err)
	}
	return st, nil
}

// Save upserts the aggregate row
func (s *SQLiteStore) Save(st Stats) error {
	_, err := s.db.Exec(
		`INSERT INTO stats (id, games, won, total_time, lowest_time, highest_time)
		 VALUES (1, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			games = excluded.games,
			won = excluded.won,
			total_time = excluded.total_time,
			lowest_time = excluded.lowest_time,
			highest_time = excluded.highest_time`,
		st.Games, st.Won, st.TotalTime, st.LowestTime, st.HighestTime,
	)
	if err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	return nil
}

// LogGame appends a finished game. A missing ID or finish time is filled in.
func (s *SQLiteStore) LogGame(g Game) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	if g.FinishedAt.IsZero() {
		g.FinishedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO games (game_id, seed, won, seconds, moves, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		g.ID,
		int64(g.Seed),
		g.Won,
		g.Seconds,
		g.Moves,
		g.FinishedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	return nil
}

// RecentGames returns up to limit logged games, newest first
func (s *SQLiteStore) RecentGames(limit int) ([]Game, error) {
	rows, err := s.db.Query(
		`SELECT game_id, seed, won, seconds, moves, finished_at
		 FROM games ORDER BY finished_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		var (
			g        Game
			seed     int64
			finished string
		)
		if err := rows.Scan(&g.ID, &seed, &g.Won, &g.Seconds, &g.Moves, &finished); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		g.Seed = uint64(seed)
		g.FinishedAt, err = time.Parse(time.RFC3339, finished)
		if err != nil {
			return nil, fmt.Errorf("parse finish time for game %s: %w", g.ID, err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// Clear deletes the aggregate row and the game log
func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM stats; DELETE FROM games;`); err != nil {
		return fmt.Errorf("clear stats: %w", err)
	}
	return nil
}
