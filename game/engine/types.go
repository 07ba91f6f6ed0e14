package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Suit identifies one of the four card suits. The numeric value doubles as
// the index of the suit's pile on the field.
type Suit int

const (
	Clubs Suit = iota
	Hearts
	Spades
	Diamonds
)

// Color of a suit
type Color int

const (
	Black Color = iota
	Red
)

const (
	// Layout constants
	ReserveSlots = 4
	PileSlots    = 4
	ColumnSlots  = 8

	MinRank  = 1
	MaxRank  = 13
	DeckSize = PileSlots * MaxRank
)

var (
	// ErrInvalidMove is returned when a relocation breaks placement, capacity
	// or pile ordering rules. The field is left unchanged.
	ErrInvalidMove = errors.New("invalid move")

	// ErrMoveFromEmpty is returned when the source slot or column holds no card.
	ErrMoveFromEmpty = errors.New("move from empty slot")
)

// Suits lists every suit in pile order
var Suits = [PileSlots]Suit{Clubs, Hearts, Spades, Diamonds}

var suitNames = [PileSlots]string{"club", "heart", "spade", "diamond"}
var suitLetters = [PileSlots]string{"C", "H", "S", "D"}
var suitGlyphs = [PileSlots]string{"♣", "♥", "♠", "♦"}

// Valid reports whether s is one of the four suits
func (s Suit) Valid() bool {
	return s >= Clubs && s <= Diamonds
}

// Color returns red for hearts and diamonds, black otherwise
func (s Suit) Color() Color {
	if s == Hearts || s == Diamonds {
		return Red
	}
	return Black
}

// Glyph returns the unicode suit symbol
func (s Suit) Glyph() string {
	if !s.Valid() {
		return "?"
	}
	return suitGlyphs[s]
}

// Letter returns the one-letter suit code used in card codes
func (s Suit) Letter() string {
	if !s.Valid() {
		return "?"
	}
	return suitLetters[s]
}

func (s Suit) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Suit(%d)", int(s))
	}
	return suitNames[s]
}

// MarshalText encodes the suit by name
func (s Suit) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid suit %d", int(s))
	}
	return []byte(suitNames[s]), nil
}

// UnmarshalText accepts a suit name ("heart"), its plural, or its letter ("H")
func (s *Suit) UnmarshalText(text []byte) error {
	parsed, err := ParseSuit(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSuit parses a suit name, plural name, letter or glyph
func ParseSuit(text string) (Suit, error) {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, suit := range Suits {
		if t == suitNames[suit] || t == suitNames[suit]+"s" ||
			t == strings.ToLower(suitLetters[suit]) || t == suitGlyphs[suit] {
			return suit, nil
		}
	}
	return 0, fmt.Errorf("unknown suit %q", text)
}

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}
