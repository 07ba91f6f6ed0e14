package stats

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "stats.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_Empty(t *testing.T) {
	store := openTestDB(t)

	s, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s != (Stats{}) {
		t.Errorf("Expected zero stats, got %+v", s)
	}
}

func TestSQLiteStore_SaveLoad(t *testing.T) {
	store := openTestDB(t)

	first := Stats{Games: 1, Won: 1, TotalTime: 90, LowestTime: 90, HighestTime: 90}
	if err := store.Save(first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	second := Stats{Games: 3, Won: 2, TotalTime: 200, LowestTime: 90, HighestTime: 110}
	if err := store.Save(second); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != second {
		t.Errorf("Expected %+v, got %+v", second, got)
	}
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.db")

	store, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Stats{Games: 4, Won: 1, TotalTime: 30, LowestTime: 30, HighestTime: 30}
	if err := store.Save(want); err != nil {
		t.Fatal(err)
	}
	store.Close()

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	got, err := reopened.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("Expected %+v after reopen, got %+v", want, got)
	}
}

func TestSQLiteStore_GameLog(t *testing.T) {
	store := openTestDB(t)
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	if _, err := Record(store, Game{Seed: 1, Won: true, Seconds: 100, Moves: 80, FinishedAt: base}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if _, err := Record(store, Game{Seed: 2, Moves: 3, FinishedAt: base.Add(time.Hour)}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	games, err := store.RecentGames(10)
	if err != nil {
		t.Fatalf("RecentGames failed: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("Expected 2 games, got %d", len(games))
	}
	if games[0].Seed != 2 || games[0].Won {
		t.Errorf("Expected newest game first, got %+v", games[0])
	}
	if games[1].Seed != 1 || !games[1].Won || games[1].Seconds != 100 || games[1].Moves != 80 {
		t.Errorf("Unexpected first game %+v", games[1])
	}
	if games[0].ID == "" || games[0].ID == games[1].ID {
		t.Error("Expected distinct generated game IDs")
	}
	if !games[1].FinishedAt.Equal(base) {
		t.Errorf("Expected finish time %v, got %v", base, games[1].FinishedAt)
	}

	s, _ := store.Load()
	if s.Games != 2 || s.Won != 1 {
		t.Errorf("Expected aggregate 2/1, got %d/%d", s.Games, s.Won)
	}

	limited, _ := store.RecentGames(1)
	if len(limited) != 1 {
		t.Errorf("Expected limit to apply, got %d games", len(limited))
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if games, _ := store.RecentGames(10); len(games) != 0 {
		t.Errorf("Expected empty log after clear, got %d", len(games))
	}
	if s, _ := store.Load(); s != (Stats{}) {
		t.Errorf("Expected zero stats after clear, got %+v", s)
	}
}
