package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wricardo/freecell/game/engine"
)

// orderedDeck deals every ace and two onto a column top
func orderedDeck() []engine.Card {
	deck := make([]engine.Card, 0, engine.DeckSize)
	for rank := engine.MaxRank; rank >= engine.MinRank; rank-- {
		for _, suit := range engine.Suits {
			deck = append(deck, engine.NewCard(suit, rank))
		}
	}
	return deck
}

func TestAnalyzeEngine_OrderedDeck(t *testing.T) {
	a := analyzeEngine(0, engine.New(orderedDeck()))

	if a.AceDepth != [engine.PileSlots]int{} {
		t.Errorf("Expected every ace on top, got %v", a.AceDepth)
	}
	if a.BuriedKings != 0 {
		t.Errorf("Expected no buried kings, got %d", a.BuriedKings)
	}
	if a.SweptHome != engine.DeckSize {
		t.Errorf("Expected the sweep to clear the board, got %d", a.SweptHome)
	}
	if a.Rating() != "Easy" {
		t.Errorf("Expected Easy, got %s (score %d)", a.Rating(), a.Score())
	}
}

func TestAnalyzeEngine_LeavesBoardAlone(t *testing.T) {
	eng := engine.New(orderedDeck())
	before := eng.Snapshot()

	analyzeEngine(0, eng)

	if !eng.State().Equal(before) {
		t.Error("Expected the analysis to run on a copy")
	}
}

func TestAnalyzeEngine_Deal(t *testing.T) {
	a := analyzeEngine(7, engine.Deal(7))
	b := analyzeEngine(7, engine.Deal(7))
	if a != b {
		t.Errorf("Expected the same analysis for the same seed: %+v vs %+v", a, b)
	}

	for k, d := range a.AceDepth {
		if d < 0 || d > 6 {
			t.Errorf("Ace %d depth %d out of range", k, d)
		}
	}
	if a.BuriedKings < 0 || a.BuriedKings > 4 {
		t.Errorf("Buried kings %d out of range", a.BuriedKings)
	}
	for i, n := range a.TopRuns {
		if n < 1 {
			t.Errorf("Column %d run %d, every dealt column has a top card", i, n)
		}
	}
}

func TestRating(t *testing.T) {
	tests := []struct {
		name string
		a    DealAnalysis
		want string
	}{
		{"shallow aces", DealAnalysis{AceDepth: [4]int{1, 2, 0, 3}}, "Easy"},
		{"buried kings", DealAnalysis{AceDepth: [4]int{3, 3, 3, 0}, BuriedKings: 2}, "Medium"},
		{"deep aces", DealAnalysis{AceDepth: [4]int{6, 5, 5, 4}, BuriedKings: 1}, "Hard"},
		{"sweep helps", DealAnalysis{AceDepth: [4]int{6, 5, 5, 4}, SweptHome: 4}, "Medium"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Rating(); got != tt.want {
				t.Errorf("Rating() = %s (score %d), want %s", got, tt.a.Score(), tt.want)
			}
		})
	}
}

func TestPrintAnalysis(t *testing.T) {
	eng := engine.New(orderedDeck())
	var buf bytes.Buffer
	printAnalysis(&buf, analyzeEngine(0, eng), eng)

	out := buf.String()
	for _, want := range []string{
		"AC covered by 0 cards",
		"✅ No buried kings",
		"✅ 52 cards go home before the first move",
		"Rating: Easy",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}
