package engine

import "slices"

// Column is an ordered sequence of cards addressed at the top (the last
// element). It serves for playing columns and suit piles.
type Column []Card

// Len returns the number of cards
func (c Column) Len() int {
	return len(c)
}

// Empty reports whether the column holds no cards
func (c Column) Empty() bool {
	return len(c) == 0
}

// Top returns the top card, or the zero card if the column is empty
func (c Column) Top() Card {
	if len(c) == 0 {
		return Card{}
	}
	return c[len(c)-1]
}

// TopRank returns the rank of the top card, or 0 for an empty column
func (c Column) TopRank() int {
	return c.Top().Rank
}

// Push places card on top
func (c *Column) Push(card Card) {
	*c = append(*c, card)
}

// Pop removes and returns the top card. It panics on an empty column;
// callers check Empty first.
func (c *Column) Pop() Card {
	s := *c
	card := s[len(s)-1]
	*c = s[:len(s)-1]
	return card
}

// Contains reports whether card is anywhere in the column
func (c Column) Contains(card Card) bool {
	return slices.Contains(c, card)
}

// Cards returns an independent copy of the contents, bottom first
func (c Column) Cards() []Card {
	return slices.Clone([]Card(c))
}

// Clone returns an independent copy of the column
func (c Column) Clone() Column {
	if c == nil {
		return Column{}
	}
	return slices.Clone(c)
}

// GroupLen returns the length of the maximal run at the top in which every
// card can be placed on the card below it. A non-empty column always has a
// group of at least one card.
func (c Column) GroupLen() int {
	if len(c) == 0 {
		return 0
	}
	n := 1
	for i := len(c) - 1; i > 0; i-- {
		if !CanTop(c[i], c[i-1]) {
			break
		}
		n++
	}
	return n
}
