package engine

import (
	"errors"
	"math/rand/v2"
	"testing"
)

// layout describes a partial field for rule tests. Piles are filled from
// the ace up to the given rank.
type layout struct {
	reserve []string
	piles   map[Suit]int
	columns [][]string
}

func buildEngine(t *testing.T, l layout) *Engine {
	t.Helper()

	f := &Field{}
	for i, code := range l.reserve {
		if code != "" {
			f.Reserve[i] = MustParseCard(code)
		}
	}
	for i := range f.Piles {
		f.Piles[i] = Column{}
	}
	for suit, top := range l.piles {
		for rank := 1; rank <= top; rank++ {
			f.Piles[suit].Push(NewCard(suit, rank))
		}
	}
	for i := range f.Columns {
		f.Columns[i] = Column{}
	}
	for i, codes := range l.columns {
		for _, code := range codes {
			f.Columns[i].Push(MustParseCard(code))
		}
	}
	return &Engine{field: f}
}

// orderedDeck returns a deck that deals every ace and two onto column tops,
// so a sweep alone clears the field.
func orderedDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for rank := MaxRank; rank >= MinRank; rank-- {
		for _, suit := range Suits {
			deck = append(deck, NewCard(suit, rank))
		}
	}
	return deck
}

func TestNew_DealsRoundRobin(t *testing.T) {
	deck := NewDeck()
	eng := New(deck)

	cols := eng.Columns()
	for i, col := range cols {
		want := 7
		if i >= 4 {
			want = 6
		}
		if len(col) != want {
			t.Errorf("Column %d: expected %d cards, got %d", i, want, len(col))
		}
	}

	if cols[0][0] != deck[0] || cols[1][0] != deck[1] || cols[0][1] != deck[8] {
		t.Error("Cards were not dealt round-robin")
	}

	if eng.FreeReserve() != ReserveSlots {
		t.Errorf("Expected %d free reserve slots, got %d", ReserveSlots, eng.FreeReserve())
	}
	if eng.Remaining() != DeckSize {
		t.Errorf("Expected %d remaining cards, got %d", DeckSize, eng.Remaining())
	}
	if err := eng.State().Validate(); err != nil {
		t.Errorf("Fresh field invalid: %v", err)
	}
}

func TestNew_PanicsOnMalformedDeck(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for a 51-card deck")
		}
	}()
	New(NewDeck()[1:])
}

func TestNewFromField_Validates(t *testing.T) {
	eng := Deal(1)
	f := eng.Snapshot()
	f.Columns[0].Push(f.Columns[1].Top())

	if _, err := NewFromField(f); err == nil {
		t.Error("Expected error for field with duplicated card")
	}

	restored, err := NewFromField(eng.State())
	if err != nil {
		t.Fatalf("Failed to restore valid field: %v", err)
	}
	if !restored.State().Equal(eng.State()) {
		t.Error("Restored field differs from source")
	}
}

func TestSnapshot_Independent(t *testing.T) {
	eng := Deal(3)
	snap := eng.Snapshot()
	before := snap.Copy()

	if err := eng.ColumnToReserve(0); err != nil {
		t.Fatalf("ColumnToReserve failed: %v", err)
	}
	if !snap.Equal(before) {
		t.Error("Mutating the live field changed a snapshot")
	}

	snap.Columns[1].Pop()
	if eng.State().Columns[1].Len() != 7 {
		t.Error("Mutating a snapshot changed the live field")
	}
}

func TestSetState(t *testing.T) {
	eng := Deal(5)
	snap := eng.Snapshot()

	if err := eng.ColumnToReserve(2); err != nil {
		t.Fatalf("ColumnToReserve failed: %v", err)
	}
	if err := eng.SetState(snap); err != nil {
		t.Fatalf("SetState failed: %v", err)
	}
	if !eng.State().Equal(snap) {
		t.Error("SetState did not restore the snapshot")
	}

	// The snapshot must stay untouched by later play
	if err := eng.ColumnToReserve(2); err != nil {
		t.Fatalf("ColumnToReserve failed: %v", err)
	}
	if !snap.Reserve[0].IsZero() {
		t.Error("Snapshot aliased with live field after SetState")
	}

	if err := eng.SetState(nil); err == nil {
		t.Error("Expected error for nil state")
	}
}

func TestIsWon(t *testing.T) {
	eng := buildEngine(t, layout{
		piles: map[Suit]int{Clubs: 13, Hearts: 13, Spades: 13, Diamonds: 13},
	})
	if !eng.IsWon() {
		t.Error("Expected empty columns to be a win")
	}

	eng = buildEngine(t, layout{
		piles:   map[Suit]int{Clubs: 13, Hearts: 13, Spades: 13, Diamonds: 12},
		columns: [][]string{{"KD"}},
	})
	if eng.IsWon() {
		t.Error("Expected non-empty column to not be a win")
	}
}

func TestLocate(t *testing.T) {
	eng := buildEngine(t, layout{
		reserve: []string{"", "9C"},
		piles:   map[Suit]int{Hearts: 2},
		columns: [][]string{{"KS", "QH"}, {"5D"}},
	})

	tests := []struct {
		code string
		want Location
	}{
		{"9C", Location{Zone: ZoneReserve, Index: 1}},
		{"AH", Location{Zone: ZonePile, Index: int(Hearts), Depth: 1}},
		{"KS", Location{Zone: ZoneColumn, Index: 0, Depth: 1}},
		{"5D", Location{Zone: ZoneColumn, Index: 1, Depth: 0}},
		{"2C", Location{Zone: ZoneNone, Index: -1}},
	}

	for _, tt := range tests {
		if got := eng.Locate(MustParseCard(tt.code)); got != tt.want {
			t.Errorf("%s: expected %+v, got %+v", tt.code, tt.want, got)
		}
	}
}

// Random legal and illegal play must never break the deck invariant, and
// every rejected move must leave the field untouched.
func TestInvariant_RandomPlay(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		eng := Deal(seed)
		rng := rand.New(rand.NewPCG(seed, 99))

		for step := 0; step < 400; step++ {
			before := eng.Snapshot()

			var err error
			switch rng.IntN(6) {
			case 0:
				err = eng.MoveGroup(rng.IntN(ColumnSlots), rng.IntN(ColumnSlots), 1+rng.IntN(5))
			case 1:
				err = eng.ColumnToReserve(rng.IntN(ColumnSlots))
			case 2:
				err = eng.ReserveToColumn(rng.IntN(ReserveSlots), rng.IntN(ColumnSlots))
			case 3:
				err = eng.ColumnToPile(rng.IntN(ColumnSlots))
			case 4:
				err = eng.ReserveToPile(rng.IntN(ReserveSlots))
			case 5:
				eng.SweepStep(1 + rng.IntN(3))
			}

			if err != nil {
				if !errors.Is(err, ErrInvalidMove) && !errors.Is(err, ErrMoveFromEmpty) {
					t.Fatalf("seed %d step %d: unexpected error type: %v", seed, step, err)
				}
				if !eng.State().Equal(before) {
					t.Fatalf("seed %d step %d: rejected move changed the field: %v", seed, step, err)
				}
			}

			if err := eng.State().Validate(); err != nil {
				t.Fatalf("seed %d step %d: invariant broken: %v", seed, step, err)
			}
		}
	}
}
