package engine

import (
	"fmt"
)

// Field is the complete playing field: reserve slots, one pile per suit and
// the playing columns. It is plain data; the rules live on Engine.
type Field struct {
	Reserve [ReserveSlots]Card  `json:"reserve"`
	Piles   [PileSlots]Column   `json:"piles"`
	Columns [ColumnSlots]Column `json:"columns"`
}

// NewField deals deck round-robin across the playing columns. The deck must
// hold each of the 52 cards exactly once; anything else panics.
func NewField(deck []Card) *Field {
	if err := CheckDeck(deck); err != nil {
		panic("engine: " + err.Error())
	}

	f := &Field{}
	for i := range f.Piles {
		f.Piles[i] = Column{}
	}
	for i := range f.Columns {
		f.Columns[i] = make(Column, 0, DeckSize/ColumnSlots+1)
	}
	for i, c := range deck {
		f.Columns[i%ColumnSlots].Push(c)
	}
	return f
}

// Copy returns a deep copy sharing no storage with f
func (f *Field) Copy() *Field {
	cp := &Field{Reserve: f.Reserve}
	for i := range f.Piles {
		cp.Piles[i] = f.Piles[i].Clone()
	}
	for i := range f.Columns {
		cp.Columns[i] = f.Columns[i].Clone()
	}
	return cp
}

// Equal reports whether both fields hold the same cards in the same places
func (f *Field) Equal(other *Field) bool {
	if f == nil || other == nil {
		return f == other
	}
	if f.Reserve != other.Reserve {
		return false
	}
	for i := range f.Piles {
		if !columnsEqual(f.Piles[i], other.Piles[i]) {
			return false
		}
	}
	for i := range f.Columns {
		if !columnsEqual(f.Columns[i], other.Columns[i]) {
			return false
		}
	}
	return true
}

func columnsEqual(a, b Column) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Cards returns every card on the field: reserve, piles, then columns
func (f *Field) Cards() []Card {
	cards := make([]Card, 0, DeckSize)
	for _, c := range f.Reserve {
		if !c.IsZero() {
			cards = append(cards, c)
		}
	}
	for _, p := range f.Piles {
		cards = append(cards, p...)
	}
	for _, col := range f.Columns {
		cards = append(cards, col...)
	}
	return cards
}

// Validate checks the field invariants: exactly one full deck across all
// zones, and every pile holding its own suit in rank order from the ace.
func (f *Field) Validate() error {
	if f == nil {
		return fmt.Errorf("field cannot be nil")
	}
	if err := CheckDeck(f.Cards()); err != nil {
		return fmt.Errorf("field validation: %v", err)
	}
	for i, p := range f.Piles {
		for j, c := range p {
			if c.Suit != Suit(i) {
				return fmt.Errorf("field validation: %s pile holds %s", Suit(i), c.Code())
			}
			if c.Rank != j+1 {
				return fmt.Errorf("field validation: %s pile position %d holds rank %d", Suit(i), j+1, c.Rank)
			}
		}
	}
	return nil
}

// Zone names where a card lives on the field
type Zone string

const (
	ZoneNone    Zone = ""
	ZoneReserve Zone = "reserve"
	ZonePile    Zone = "pile"
	ZoneColumn  Zone = "column"
)

// Location is the position of a card on the field. Depth counts cards above
// it, so the top card of a column has depth 0.
type Location struct {
	Zone  Zone `json:"zone"`
	Index int  `json:"index"`
	Depth int  `json:"depth"`
}

// Locate finds card on the field. Zone is ZoneNone when the card is held by
// no zone, which only happens in the middle of a relocation.
func (f *Field) Locate(card Card) Location {
	for i, c := range f.Reserve {
		if c == card {
			return Location{Zone: ZoneReserve, Index: i}
		}
	}
	for i, p := range f.Piles {
		for j, c := range p {
			if c == card {
				return Location{Zone: ZonePile, Index: i, Depth: len(p) - 1 - j}
			}
		}
	}
	for i, col := range f.Columns {
		for j, c := range col {
			if c == card {
				return Location{Zone: ZoneColumn, Index: i, Depth: len(col) - 1 - j}
			}
		}
	}
	return Location{Zone: ZoneNone, Index: -1}
}
