package engine

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Card is an immutable playing card. The zero Card means "no card" and is
// how an empty reserve slot is represented.
type Card struct {
	Suit Suit
	Rank int
}

var rankNames = map[int]string{
	1:  "A",
	11: "J",
	12: "Q",
	13: "K",
}

// NewCard returns the card with the given suit and rank. It panics on values
// outside the deck, which is always a programming error.
func NewCard(suit Suit, rank int) Card {
	if !suit.Valid() || rank < MinRank || rank > MaxRank {
		panic(fmt.Sprintf("engine: no such card: suit %d rank %d", int(suit), rank))
	}
	return Card{Suit: suit, Rank: rank}
}

// IsZero reports whether c is the empty card
func (c Card) IsZero() bool {
	return c.Rank == 0
}

// Valid reports whether c is one of the 52 cards of a deck
func (c Card) Valid() bool {
	return c.Suit.Valid() && c.Rank >= MinRank && c.Rank <= MaxRank
}

// Color returns the color of the card's suit
func (c Card) Color() Color {
	return c.Suit.Color()
}

// Name returns the rank label: A, 2..10, J, Q or K
func (c Card) Name() string {
	if name, ok := rankNames[c.Rank]; ok {
		return name
	}
	return strconv.Itoa(c.Rank)
}

// Code returns the compact text form, e.g. "AH" or "10S". The zero card
// has an empty code.
func (c Card) Code() string {
	if c.IsZero() {
		return ""
	}
	return c.Name() + c.Suit.Letter()
}

// String renders the card the way the board shows it, e.g. "♥ Q"
func (c Card) String() string {
	if c.IsZero() {
		return "____"
	}
	return fmt.Sprintf("%s %2s", c.Suit.Glyph(), c.Name())
}

// MarshalText encodes the card as its code
func (c Card) MarshalText() ([]byte, error) {
	if !c.IsZero() && !c.Valid() {
		return nil, fmt.Errorf("invalid card %d/%d", int(c.Suit), c.Rank)
	}
	return []byte(c.Code()), nil
}

// UnmarshalText decodes a card code; the empty string yields the zero card
func (c *Card) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*c = Card{}
		return nil
	}
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCard parses a card code such as "AH", "10s" or "qd"
func ParseCard(code string) (Card, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	runes := []rune(code)
	if len(runes) < 2 {
		return Card{}, fmt.Errorf("invalid card code %q", code)
	}

	rankPart, suitPart := string(runes[:len(runes)-1]), string(runes[len(runes)-1])
	suit, err := ParseSuit(suitPart)
	if err != nil {
		return Card{}, fmt.Errorf("invalid card code %q: %w", code, err)
	}

	rank := 0
	switch rankPart {
	case "A":
		rank = 1
	case "J":
		rank = 11
	case "Q":
		rank = 12
	case "K":
		rank = 13
	case "T":
		rank = 10
	default:
		n, err := strconv.Atoi(rankPart)
		if err != nil || n < MinRank || n > MaxRank {
			return Card{}, fmt.Errorf("invalid card code %q: bad rank", code)
		}
		rank = n
	}

	return Card{Suit: suit, Rank: rank}, nil
}

// MustParseCard is ParseCard for literals known to be valid
func MustParseCard(code string) Card {
	c, err := ParseCard(code)
	if err != nil {
		panic(err)
	}
	return c
}

// NewDeck returns the 52 cards ordered by suit, then rank
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for rank := MinRank; rank <= MaxRank; rank++ {
			deck = append(deck, Card{Suit: suit, Rank: rank})
		}
	}
	return deck
}

// Shuffle shuffles deck in place with the given random source
func Shuffle(deck []Card, rng *rand.Rand) []Card {
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// ShuffledDeck returns a fresh deck shuffled deterministically from seed
func ShuffledDeck(seed uint64) []Card {
	return Shuffle(NewDeck(), rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// CheckDeck reports why deck is not exactly one of each of the 52 cards
func CheckDeck(deck []Card) error {
	if len(deck) != DeckSize {
		return fmt.Errorf("deck has %d cards, want %d", len(deck), DeckSize)
	}
	seen := make(map[Card]bool, DeckSize)
	for _, c := range deck {
		if !c.Valid() {
			return fmt.Errorf("deck contains invalid card %d/%d", int(c.Suit), c.Rank)
		}
		if seen[c] {
			return fmt.Errorf("deck contains %s twice", c.Code())
		}
		seen[c] = true
	}
	return nil
}
