package engine

import (
	"errors"
	"testing"
)

func TestCanTop(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"5H", "6S", true},
		{"5H", "6H", false},
		{"5H", "6D", false},
		{"5C", "6D", true},
		{"5H", "7S", false},
		{"6S", "5H", false},
		{"QD", "KC", true},
	}

	for _, tt := range tests {
		got := CanTop(MustParseCard(tt.a), MustParseCard(tt.b))
		if got != tt.want {
			t.Errorf("CanTop(%s, %s): expected %v, got %v", tt.a, tt.b, tt.want, got)
		}
	}
}

func TestCanMoveToPile(t *testing.T) {
	eng := buildEngine(t, layout{piles: map[Suit]int{Spades: 4}})

	tests := []struct {
		code string
		want bool
	}{
		{"AH", true},
		{"2H", false},
		{"5S", true},
		{"6S", false},
		{"4S", false},
		{"AS", false},
	}

	for _, tt := range tests {
		if got := eng.CanMoveToPile(MustParseCard(tt.code)); got != tt.want {
			t.Errorf("CanMoveToPile(%s): expected %v, got %v", tt.code, tt.want, got)
		}
	}
}

func TestShouldAutoAdvance_AcesOnEmptyPiles(t *testing.T) {
	eng := buildEngine(t, layout{})
	for _, suit := range Suits {
		if !eng.ShouldAutoAdvance(NewCard(suit, 1)) {
			t.Errorf("Expected ace of %s to auto-advance on empty piles", suit)
		}
	}
}

func TestShouldAutoAdvance_Threshold(t *testing.T) {
	tests := []struct {
		name  string
		piles map[Suit]int
		card  string
		want  bool
	}{
		// minBlack=2 minRed=0: black threshold min(5, 2) = 2
		{"black held by red piles", map[Suit]int{Clubs: 2, Spades: 2}, "3C", false},
		// red threshold min(4, 3) = 3
		{"red ace free", map[Suit]int{Clubs: 2, Spades: 2}, "AH", true},
		// minBlack=2 minRed=1: black threshold min(5, 3) = 3
		{"black three safe", map[Suit]int{Clubs: 2, Spades: 2, Hearts: 1, Diamonds: 1}, "3C", true},
		// minBlack=1 minRed=4: black threshold min(4, 6) = 4
		{"black limited by black", map[Suit]int{Clubs: 4, Spades: 1, Hearts: 4, Diamonds: 4}, "5C", false},
		// minBlack=1 minRed=3: red threshold min(3, 6) = 3
		{"red limited by black", map[Suit]int{Clubs: 1, Spades: 1, Hearts: 3, Diamonds: 4}, "4H", false},
		{"red two safe", map[Suit]int{Clubs: 1, Spades: 1, Hearts: 1, Diamonds: 1}, "2H", true},
		{"cannot move", map[Suit]int{}, "2H", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := buildEngine(t, layout{piles: tt.piles})
			if got := eng.ShouldAutoAdvance(MustParseCard(tt.card)); got != tt.want {
				t.Errorf("ShouldAutoAdvance(%s): expected %v, got %v", tt.card, tt.want, got)
			}
		})
	}
}

func TestCountGroup(t *testing.T) {
	eng := buildEngine(t, layout{
		columns: [][]string{
			{},
			{"7H"},
			{"KS", "9C", "8D", "7S"},
			{"9C", "8C"},
			{"2D", "10S", "9H", "8S", "7D", "6C"},
		},
	})

	tests := []struct {
		col  int
		want int
	}{
		{0, 0},
		{1, 1},
		{2, 3},
		{3, 1},
		{4, 5},
		{-1, 0},
		{ColumnSlots, 0},
	}

	for _, tt := range tests {
		if got := eng.CountGroup(tt.col); got != tt.want {
			t.Errorf("CountGroup(%d): expected %d, got %d", tt.col, tt.want, got)
		}
	}
}

// capacityLayout has two free reserve slots, one empty column (2) and a
// seven card run on column 0.
func capacityLayout(t *testing.T) *Engine {
	return buildEngine(t, layout{
		reserve: []string{"KC", "KH"},
		columns: [][]string{
			{"9S", "8H", "7C", "6D", "5S", "4H", "3C"},
			{"QD"},
			{},
			{"JS"},
			{"JH"},
			{"JC"},
			{"JD"},
			{"QS"},
		},
	})
}

func TestMoveCapacity(t *testing.T) {
	eng := capacityLayout(t)

	if got := eng.MoveCapacity(0, 1); got != 6 {
		t.Errorf("Expected capacity (1+2)*2^1 = 6 to a non-empty column, got %d", got)
	}
	if got := eng.MoveCapacity(0, 2); got != 3 {
		t.Errorf("Expected capacity (1+2)*2^0 = 3 to an empty column, got %d", got)
	}
	if got := eng.MoveCapacity(1, 3); got != 1 {
		t.Errorf("Expected capacity capped by a single card group, got %d", got)
	}
	if got := eng.MoveCapacity(2, 1); got != 0 {
		t.Errorf("Expected capacity 0 from an empty column, got %d", got)
	}
}

func TestMoveGroup_ExceedsCapacity(t *testing.T) {
	eng := capacityLayout(t)
	before := eng.Snapshot()

	err := eng.MoveGroup(0, 1, 7)
	if !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("Expected ErrInvalidMove, got %v", err)
	}
	if !eng.State().Equal(before) {
		t.Error("Failed MoveGroup changed the field")
	}
}

func TestMoveGroup(t *testing.T) {
	t.Run("onto matching card", func(t *testing.T) {
		eng := buildEngine(t, layout{
			columns: [][]string{{"KS", "6D", "5S", "4H"}, {"7C"}, {"2H"}},
		})
		if err := eng.MoveGroup(0, 1, 3); err != nil {
			t.Fatalf("MoveGroup failed: %v", err)
		}
		got := eng.Columns()
		if len(got[0]) != 1 || got[0][0] != MustParseCard("KS") {
			t.Errorf("Unexpected source column: %v", got[0])
		}
		want := []string{"7C", "6D", "5S", "4H"}
		if len(got[1]) != len(want) {
			t.Fatalf("Expected %d cards on destination, got %d", len(want), len(got[1]))
		}
		for i, code := range want {
			if got[1][i] != MustParseCard(code) {
				t.Errorf("Destination position %d: expected %s, got %s", i, code, got[1][i].Code())
			}
		}
	})

	t.Run("onto empty column", func(t *testing.T) {
		eng := buildEngine(t, layout{
			columns: [][]string{{"6D", "5S"}, {"2H"}},
		})
		if err := eng.MoveGroup(0, 2, 2); err != nil {
			t.Fatalf("MoveGroup failed: %v", err)
		}
		if eng.State().Columns[2].Len() != 2 || !eng.State().Columns[0].Empty() {
			t.Error("Group was not moved to the empty column")
		}
	})

	t.Run("bad placement", func(t *testing.T) {
		eng := buildEngine(t, layout{
			columns: [][]string{{"6D", "5S"}, {"7H"}},
		})
		before := eng.Snapshot()
		if err := eng.MoveGroup(0, 1, 2); !errors.Is(err, ErrInvalidMove) {
			t.Errorf("Expected ErrInvalidMove, got %v", err)
		}
		if !eng.State().Equal(before) {
			t.Error("Failed MoveGroup changed the field")
		}
	})

	t.Run("invalid arguments", func(t *testing.T) {
		eng := buildEngine(t, layout{
			columns: [][]string{{"6D"}, {"7C"}},
		})
		if err := eng.MoveGroup(0, 0, 1); !errors.Is(err, ErrInvalidMove) {
			t.Errorf("Same column: expected ErrInvalidMove, got %v", err)
		}
		if err := eng.MoveGroup(0, 1, 0); !errors.Is(err, ErrInvalidMove) {
			t.Errorf("Zero cards: expected ErrInvalidMove, got %v", err)
		}
		if err := eng.MoveGroup(3, 1, 1); !errors.Is(err, ErrMoveFromEmpty) {
			t.Errorf("Empty source: expected ErrMoveFromEmpty, got %v", err)
		}
		if err := eng.MoveGroup(0, 9, 1); !errors.Is(err, ErrInvalidMove) {
			t.Errorf("Bad index: expected ErrInvalidMove, got %v", err)
		}
	})
}

func TestMoveFromReserve_Empty(t *testing.T) {
	eng := buildEngine(t, layout{reserve: []string{"4C", "", "JD"}})
	before := eng.Reserve()

	_, err := eng.MoveFromReserve(1)
	if !errors.Is(err, ErrMoveFromEmpty) {
		t.Fatalf("Expected ErrMoveFromEmpty, got %v", err)
	}
	if eng.Reserve() != before {
		t.Error("Failed MoveFromReserve changed the reserve")
	}

	card, err := eng.MoveFromReserve(2)
	if err != nil {
		t.Fatalf("MoveFromReserve failed: %v", err)
	}
	if card != MustParseCard("JD") {
		t.Errorf("Expected JD, got %s", card.Code())
	}
	if !eng.Reserve()[2].IsZero() {
		t.Error("Slot was not emptied")
	}
}

func TestMoveToReserve(t *testing.T) {
	eng := buildEngine(t, layout{reserve: []string{"4C", "", "JD", "2S"}})

	if err := eng.MoveToReserve(MustParseCard("9H")); err != nil {
		t.Fatalf("MoveToReserve failed: %v", err)
	}
	if eng.Reserve()[1] != MustParseCard("9H") {
		t.Error("Card did not take the first empty slot")
	}

	if err := eng.MoveToReserve(MustParseCard("9D")); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("Expected ErrInvalidMove on full reserve, got %v", err)
	}
}

func TestMoveToColumn(t *testing.T) {
	eng := buildEngine(t, layout{columns: [][]string{{"8S"}}})

	if err := eng.MoveToColumn(MustParseCard("7D"), 0); err != nil {
		t.Errorf("MoveToColumn failed: %v", err)
	}
	if err := eng.MoveToColumn(MustParseCard("6H"), 0); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("Expected ErrInvalidMove for same color, got %v", err)
	}
	if err := eng.MoveToColumn(MustParseCard("6H"), 1); err != nil {
		t.Errorf("MoveToColumn to empty column failed: %v", err)
	}
}

func TestMoveToColumn_PanicsOnResidentCard(t *testing.T) {
	eng := buildEngine(t, layout{columns: [][]string{{"8S"}, {"7D"}}})
	defer func() {
		if recover() == nil {
			t.Error("Expected panic when placing a card that is still on the field")
		}
	}()
	eng.MoveToColumn(MustParseCard("7D"), 0)
}

func TestMoveToPile(t *testing.T) {
	eng := buildEngine(t, layout{piles: map[Suit]int{Diamonds: 1}})

	if err := eng.MoveToPile(MustParseCard("3D")); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("Expected ErrInvalidMove, got %v", err)
	}
	if err := eng.MoveToPile(MustParseCard("2D")); err != nil {
		t.Errorf("MoveToPile failed: %v", err)
	}
	if eng.PileTop(Diamonds) != MustParseCard("2D") {
		t.Errorf("Expected 2D on top of diamonds, got %s", eng.PileTop(Diamonds).Code())
	}
}

func TestZoneMoves(t *testing.T) {
	eng := buildEngine(t, layout{
		reserve: []string{"AS", "", "", "9D"},
		columns: [][]string{{"AH"}, {"10C"}, {}},
	})

	if err := eng.ColumnToPile(0); err != nil {
		t.Errorf("ColumnToPile failed: %v", err)
	}
	if err := eng.ColumnToPile(1); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("Expected ErrInvalidMove for 10C, got %v", err)
	}
	if err := eng.ColumnToPile(2); !errors.Is(err, ErrMoveFromEmpty) {
		t.Errorf("Expected ErrMoveFromEmpty, got %v", err)
	}
	if err := eng.ReserveToPile(0); err != nil {
		t.Errorf("ReserveToPile failed: %v", err)
	}
	if err := eng.ReserveToPile(0); !errors.Is(err, ErrMoveFromEmpty) {
		t.Errorf("Expected ErrMoveFromEmpty, got %v", err)
	}
	if err := eng.ReserveToColumn(3, 1); err != nil {
		t.Errorf("ReserveToColumn failed: %v", err)
	}
	if err := eng.ColumnToReserve(1); err != nil {
		t.Errorf("ColumnToReserve failed: %v", err)
	}
	if eng.Reserve()[0] != MustParseCard("9D") {
		t.Errorf("Expected 9D in first free slot, got %s", eng.Reserve()[0].Code())
	}
	if err := eng.ReserveToColumn(0, 0); err != nil {
		t.Errorf("ReserveToColumn to empty column failed: %v", err)
	}
}
