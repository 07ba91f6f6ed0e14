package table

import (
	"strings"
	"testing"

	"github.com/wricardo/freecell/game/engine"
)

func TestBoard_FreshDeal(t *testing.T) {
	tbl := New(7, Options{Clock: newClock()})
	lines := strings.Split(tbl.Board(), "\n")

	if len(lines) != 9 {
		t.Fatalf("Expected 9 lines, got %d:\n%s", len(lines), tbl.Board())
	}
	if lines[0] != "  ..  ..  ..  ..  |  ..  ..  ..  .." {
		t.Errorf("Unexpected top row %q", lines[0])
	}
	if lines[1] != "   A   S   D   F   G   H   J   K" {
		t.Errorf("Unexpected label row %q", lines[1])
	}

	cols := tbl.Engine().Columns()
	first := strings.Fields(lines[2])
	if len(first) != 8 || first[0] != cols[0][0].Code() || first[7] != cols[7][0].Code() {
		t.Errorf("Unexpected first card row %q", lines[2])
	}
	if got := len(strings.Fields(lines[8])); got != 4 {
		t.Errorf("Expected 4 cards on the last row, got %d", got)
	}
}

func TestBoard_ReserveAndPiles(t *testing.T) {
	tbl := NewWithEngine(0, engine.New(orderedDeck()), Options{Clock: newClock()})
	if _, err := tbl.Keys("ar"); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(tbl.Board(), "\n")
	if lines[0] != "  AC  ..  ..  ..  |  ..  ..  ..  .." {
		t.Errorf("Unexpected top row %q", lines[0])
	}

	tbl.SweepAll()
	if !tbl.Won() {
		t.Fatal("Expected the ordered deal to be won by sweeping")
	}
	lines = strings.Split(tbl.Board(), "\n")
	if lines[0] != "  ..  ..  ..  ..  |  KC  KH  KS  KD" {
		t.Errorf("Unexpected top row after win %q", lines[0])
	}
	if len(lines) != 2 {
		t.Errorf("Expected no column rows after win, got %d lines", len(lines))
	}
}
