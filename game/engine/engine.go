package engine

import "fmt"

// Engine owns a live Field and implements the FreeCell rules over it.
// It is not safe for concurrent use; one control loop drives it.
type Engine struct {
	field *Field
}

// New deals deck onto a fresh field. deck must contain each of the 52 cards
// exactly once; a malformed deck is a caller bug and panics.
func New(deck []Card) *Engine {
	return &Engine{field: NewField(deck)}
}

// NewFromField creates an engine over a copy of an existing field, for
// example one restored from disk. The field must satisfy the invariants.
func NewFromField(field *Field) (*Engine, error) {
	if err := field.Validate(); err != nil {
		return nil, err
	}
	return &Engine{field: field.Copy()}, nil
}

// Deal creates an engine from the deck shuffled by seed
func Deal(seed uint64) *Engine {
	return New(ShuffledDeck(seed))
}

// State returns the live field. Callers must treat it as read-only.
func (e *Engine) State() *Field {
	return e.field
}

// SetState replaces the live field with a copy of field, which is how a
// history snapshot becomes live again.
func (e *Engine) SetState(field *Field) error {
	if field == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if err := field.Validate(); err != nil {
		return err
	}
	e.field = field.Copy()
	return nil
}

// Snapshot returns an independent deep copy of the live field
func (e *Engine) Snapshot() *Field {
	return e.field.Copy()
}

// Copy returns an independent engine over a deep copy of the field
func (e *Engine) Copy() *Engine {
	return &Engine{field: e.field.Copy()}
}

// Reserve returns the reserve slots; the zero Card marks an empty slot
func (e *Engine) Reserve() [ReserveSlots]Card {
	return e.field.Reserve
}

// Piles returns copies of the suit piles, indexed by Suit
func (e *Engine) Piles() [PileSlots][]Card {
	var piles [PileSlots][]Card
	for i, p := range e.field.Piles {
		piles[i] = p.Cards()
	}
	return piles
}

// Columns returns copies of the playing columns
func (e *Engine) Columns() [ColumnSlots][]Card {
	var cols [ColumnSlots][]Card
	for i, c := range e.field.Columns {
		cols[i] = c.Cards()
	}
	return cols
}

// PileTop returns the top card of a suit's pile, or the zero card
func (e *Engine) PileTop(suit Suit) Card {
	return e.field.Piles[suit].Top()
}

// FreeReserve counts empty reserve slots
func (e *Engine) FreeReserve() int {
	n := 0
	for _, c := range e.field.Reserve {
		if c.IsZero() {
			n++
		}
	}
	return n
}

// FreeColumns counts empty playing columns
func (e *Engine) FreeColumns() int {
	n := 0
	for _, col := range e.field.Columns {
		if col.Empty() {
			n++
		}
	}
	return n
}

// Remaining counts cards not yet on a pile
func (e *Engine) Remaining() int {
	n := DeckSize
	for _, p := range e.field.Piles {
		n -= p.Len()
	}
	return n
}

// Locate returns where card currently is
func (e *Engine) Locate(card Card) Location {
	return e.field.Locate(card)
}

// IsWon reports whether every playing column is empty
func (e *Engine) IsWon() bool {
	for _, col := range e.field.Columns {
		if !col.Empty() {
			return false
		}
	}
	return true
}
