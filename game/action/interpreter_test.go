package action

import (
	"testing"

	"github.com/wricardo/freecell/game/engine"
)

type recorder struct {
	snapshots []*engine.Field
}

func (r *recorder) Push(s *engine.Field) {
	r.snapshots = append(r.snapshots, s)
}

// setup builds a valid field. Cards not placed explicitly are stacked on
// the last column so the deck stays complete.
func setup(t *testing.T, reserve []string, piles map[engine.Suit]int, columns [][]string) *engine.Engine {
	t.Helper()

	f := &engine.Field{}
	used := make(map[engine.Card]bool)
	place := func(code string) engine.Card {
		c := engine.MustParseCard(code)
		if used[c] {
			t.Fatalf("card %s placed twice", code)
		}
		used[c] = true
		return c
	}

	for i, code := range reserve {
		if code != "" {
			f.Reserve[i] = place(code)
		}
	}
	for suit, top := range piles {
		for rank := 1; rank <= top; rank++ {
			f.Piles[suit].Push(place(engine.NewCard(suit, rank).Code()))
		}
	}
	for i, codes := range columns {
		if i >= engine.ColumnSlots-1 {
			t.Fatal("the last column is reserved for leftover cards")
		}
		for _, code := range codes {
			f.Columns[i].Push(place(code))
		}
	}
	for _, c := range engine.NewDeck() {
		if !used[c] {
			f.Columns[engine.ColumnSlots-1].Push(c)
		}
	}

	eng, err := engine.NewFromField(f)
	if err != nil {
		t.Fatalf("invalid test layout: %v", err)
	}
	return eng
}

// openLayout has two free reserve slots and one free column
func openLayout(t *testing.T) *engine.Engine {
	return setup(t,
		[]string{"QH", "", "AD", ""},
		map[engine.Suit]int{engine.Clubs: 1},
		[][]string{
			{"9C", "8H", "7S", "6D"},
			{"8D"},
			{"2C"},
			{"KD"},
			{},
			{"5S"},
			{"KS"},
		})
}

// blockedLayout has no free reserve slot and no free column
func blockedLayout(t *testing.T) *engine.Engine {
	return setup(t,
		[]string{"QH", "AD", "3H", "4H"},
		nil,
		[][]string{
			{"9C", "8H", "7S", "6D"},
			{"8D"},
			{"2C"},
			{"KD"},
			{"5S"},
			{"KS"},
			{"JC"},
		})
}

func col(t *testing.T, eng *engine.Engine, i int) []string {
	t.Helper()
	var codes []string
	for _, c := range eng.Columns()[i] {
		codes = append(codes, c.Code())
	}
	return codes
}

func expectColumn(t *testing.T, eng *engine.Engine, i int, want ...string) {
	t.Helper()
	got := col(t, eng, i)
	if len(got) != len(want) {
		t.Errorf("Column %d: expected %v, got %v", i, want, got)
		return
	}
	for j := range want {
		if got[j] != want[j] {
			t.Errorf("Column %d: expected %v, got %v", i, want, got)
			return
		}
	}
}

func TestInterpreter(t *testing.T) {
	tests := []struct {
		name    string
		layout  func(*testing.T) *engine.Engine
		tokens  []Token
		status  Status
		message string
		check   func(*testing.T, *engine.Engine)
	}{
		{
			name:    "pile as source",
			layout:  openLayout,
			tokens:  []Token{Pile()},
			status:  Rejected,
			message: MsgFromPile,
		},
		{
			name:    "empty column as source",
			layout:  openLayout,
			tokens:  []Token{Column(4)},
			status:  Rejected,
			message: MsgColumnEmpty,
		},
		{
			name:    "column out of range",
			layout:  openLayout,
			tokens:  []Token{Column(9)},
			status:  Rejected,
			message: MsgInvalidColumn,
		},
		{
			name:   "same column twice goes to reserve",
			layout: openLayout,
			tokens: []Token{Column(0), Column(0)},
			status: Moved,
			check: func(t *testing.T, eng *engine.Engine) {
				expectColumn(t, eng, 0, "9C", "8H", "7S")
				if got := eng.Reserve()[1].Code(); got != "6D" {
					t.Errorf("Expected 6D in the first free slot, got %q", got)
				}
			},
		},
		{
			name:   "column to reserve",
			layout: openLayout,
			tokens: []Token{Column(5), Reserve()},
			status: Moved,
			check: func(t *testing.T, eng *engine.Engine) {
				expectColumn(t, eng, 5)
				if got := eng.Reserve()[1].Code(); got != "5S" {
					t.Errorf("Expected 5S in reserve, got %q", got)
				}
			},
		},
		{
			name:    "column to full reserve",
			layout:  blockedLayout,
			tokens:  []Token{Column(0), Reserve()},
			status:  Rejected,
			message: MsgNoFreeReserve,
		},
		{
			name:    "same column twice with full reserve",
			layout:  blockedLayout,
			tokens:  []Token{Column(0), Column(0)},
			status:  Rejected,
			message: MsgNoFreeReserve,
		},
		{
			name:   "column to pile",
			layout: openLayout,
			tokens: []Token{Column(2), Pile()},
			status: Moved,
			check: func(t *testing.T, eng *engine.Engine) {
				if top := eng.PileTop(engine.Clubs); top.Code() != "2C" {
					t.Errorf("Expected 2C on clubs, got %q", top.Code())
				}
			},
		},
		{
			name:    "column to pile out of order",
			layout:  openLayout,
			tokens:  []Token{Column(3), Pile()},
			status:  Rejected,
			message: MsgToPile,
		},
		{
			name:   "smallest matching run moves",
			layout: openLayout,
			tokens: []Token{Column(0), Column(1)},
			status: Moved,
			check: func(t *testing.T, eng *engine.Engine) {
				expectColumn(t, eng, 0, "9C", "8H")
				expectColumn(t, eng, 1, "8D", "7S", "6D")
			},
		},
		{
			name:   "single card onto column",
			layout: openLayout,
			tokens: []Token{Column(5), Column(0)},
			status: Moved,
			check: func(t *testing.T, eng *engine.Engine) {
				expectColumn(t, eng, 0, "9C", "8H", "7S", "6D", "5S")
			},
		},
		{
			name:   "empty destination takes as many as capacity allows",
			layout: openLayout,
			tokens: []Token{Column(0), Column(4)},
			status: Moved,
			check: func(t *testing.T, eng *engine.Engine) {
				// (1 + 2 free slots) << 0, the destination is the only free column
				expectColumn(t, eng, 4, "8H", "7S", "6D")
				expectColumn(t, eng, 0, "9C")
			},
		},
		{
			name:    "no card in run fits",
			layout:  openLayout,
			tokens:  []Token{Column(0), Column(3)},
			status:  Rejected,
			message: MsgNoPlacement,
		},
		{
			name:    "run longer than capacity",
			layout:  blockedLayout,
			tokens:  []Token{Column(0), Column(1)},
			status:  Rejected,
			message: MsgNoCapacity,
		},
		{
			name:    "destination column out of range",
			layout:  openLayout,
			tokens:  []Token{Column(0), Column(8)},
			status:  Rejected,
			message: MsgInvalidColumn,
		},
		{
			name:   "reserve to column",
			layout: openLayout,
			tokens: []Token{Reserve(), Column(0), Column(6)},
			status: Moved,
			check: func(t *testing.T, eng *engine.Engine) {
				expectColumn(t, eng, 6, "KS", "QH")
				if !eng.Reserve()[0].IsZero() {
					t.Error("Expected reserve slot 0 to be empty")
				}
			},
		},
		{
			name:    "reserve to column illegal",
			layout:  openLayout,
			tokens:  []Token{Reserve(), Column(0), Column(3)},
			status:  Rejected,
			message: MsgToColumn,
		},
		{
			name:   "reserve to empty column",
			layout: openLayout,
			tokens: []Token{Reserve(), Column(0), Column(4)},
			status: Moved,
			check: func(t *testing.T, eng *engine.Engine) {
				expectColumn(t, eng, 4, "QH")
			},
		},
		{
			name:   "reserve to pile",
			layout: openLayout,
			tokens: []Token{Reserve(), Column(2), Pile()},
			status: Moved,
			check: func(t *testing.T, eng *engine.Engine) {
				if top := eng.PileTop(engine.Diamonds); top.Code() != "AD" {
					t.Errorf("Expected AD on diamonds, got %q", top.Code())
				}
			},
		},
		{
			name:    "reserve to pile illegal",
			layout:  openLayout,
			tokens:  []Token{Reserve(), Column(0), Pile()},
			status:  Rejected,
			message: MsgToPile,
		},
		{
			name:    "empty reserve slot",
			layout:  openLayout,
			tokens:  []Token{Reserve(), Column(1)},
			status:  Rejected,
			message: MsgReserveEmpty,
		},
		{
			name:    "reserve slot out of range",
			layout:  openLayout,
			tokens:  []Token{Reserve(), Column(5)},
			status:  Rejected,
			message: MsgInvalidReserve,
		},
		{
			name:    "reserve twice",
			layout:  openLayout,
			tokens:  []Token{Reserve(), Reserve()},
			status:  Rejected,
			message: MsgInvalidAction,
		},
		{
			name:    "reserve then pile",
			layout:  openLayout,
			tokens:  []Token{Reserve(), Pile()},
			status:  Rejected,
			message: MsgInvalidAction,
		},
		{
			name:    "reserve slot then reserve",
			layout:  openLayout,
			tokens:  []Token{Reserve(), Column(0), Reserve()},
			status:  Rejected,
			message: MsgInvalidAction,
		},
		{
			name:   "cancel after source",
			layout: openLayout,
			tokens: []Token{Column(0), Cancel()},
			status: Cancelled,
		},
		{
			name:   "cancel after reserve slot",
			layout: openLayout,
			tokens: []Token{Reserve(), Column(0), Cancel()},
			status: Cancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := tt.layout(t)
			rec := &recorder{}
			in := NewInterpreter(eng, rec)
			before := eng.Snapshot()

			var out Outcome
			for i, tok := range tt.tokens {
				out = in.Feed(tok)
				if i < len(tt.tokens)-1 && out.Status != Pending {
					t.Fatalf("token %d (%s): expected pending, got %s %q", i, tok, out.Status, out.Message)
				}
			}

			if out.Status != tt.status {
				t.Fatalf("Expected status %s, got %s (%q, %v)", tt.status, out.Status, out.Message, out.Err)
			}
			if out.Message != tt.message {
				t.Errorf("Expected message %q, got %q", tt.message, out.Message)
			}
			if !in.Idle() || len(in.Pending()) != 0 {
				t.Error("Expected interpreter to be idle after a resolved action")
			}

			if tt.status == Moved {
				if len(rec.snapshots) != 1 {
					t.Fatalf("Expected one recorded snapshot, got %d", len(rec.snapshots))
				}
				if !rec.snapshots[0].Equal(before) {
					t.Error("Recorded snapshot is not the pre-move field")
				}
			} else {
				if len(rec.snapshots) != 0 {
					t.Errorf("Expected nothing recorded, got %d snapshots", len(rec.snapshots))
				}
				if !eng.State().Equal(before) {
					t.Error("Field changed without a completed move")
				}
			}

			if err := eng.State().Validate(); err != nil {
				t.Errorf("Field invalid: %v", err)
			}
			if tt.check != nil {
				tt.check(t, eng)
			}
		})
	}
}

func TestInterpreter_Pending(t *testing.T) {
	eng := openLayout(t)
	in := NewInterpreter(eng, nil)
	keys := DefaultKeymap()

	if out := in.Feed(Reserve()); out.Status != Pending || out.Done() {
		t.Fatalf("Expected pending, got %s", out.Status)
	}
	if out := in.Feed(Column(0)); out.Status != Pending {
		t.Fatalf("Expected pending, got %s", out.Status)
	}

	labels := keys.Labels(in.Pending())
	if len(labels) != 2 || labels[0] != "R" || labels[1] != "A" {
		t.Errorf("Expected [R A], got %v", labels)
	}
	if in.Idle() {
		t.Error("Expected interpreter to be busy")
	}

	// A nil recorder is allowed
	if out := in.Feed(Column(6)); out.Status != Moved {
		t.Fatalf("Expected move, got %s %q", out.Status, out.Message)
	}
}

func TestInterpreter_RecoversAfterReject(t *testing.T) {
	eng := openLayout(t)
	rec := &recorder{}
	in := NewInterpreter(eng, rec)

	in.Feed(Column(0))
	if out := in.Feed(Column(3)); out.Status != Rejected {
		t.Fatalf("Expected rejection, got %s", out.Status)
	}

	in.Feed(Column(0))
	if out := in.Feed(Column(1)); out.Status != Moved {
		t.Fatalf("Expected the next action to start fresh, got %s %q", out.Status, out.Message)
	}
	if len(rec.snapshots) != 1 {
		t.Errorf("Expected one snapshot, got %d", len(rec.snapshots))
	}
}

func TestInterpreter_FollowsSetState(t *testing.T) {
	eng := openLayout(t)
	in := NewInterpreter(eng, nil)
	start := eng.Snapshot()

	in.Feed(Column(5))
	in.Feed(Column(0))

	// The interpreter reads the engine it was given, so restoring a
	// snapshot is visible to it immediately
	if err := eng.SetState(start); err != nil {
		t.Fatal(err)
	}
	in.Feed(Column(5))
	if out := in.Feed(Column(0)); out.Status != Moved {
		t.Errorf("Expected move after restore, got %s %q", out.Status, out.Message)
	}
}
