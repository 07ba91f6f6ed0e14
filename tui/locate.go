package tui

import (
	"strconv"

	"github.com/wricardo/freecell/game/engine"
)

// locator highlights every card of a chosen color and rank. Both must be
// chosen before anything is highlighted.
type locator struct {
	active bool
	color  engine.Color
	hasCol bool
	rank   int
}

var locateRanks = map[string]int{
	"a": 1,
	"0": 10,
	"j": 11,
	"q": 12,
	"k": 13,
}

// key applies a key press. It reports whether locating should continue.
func (l *locator) key(k string) bool {
	switch k {
	case " ", "esc":
		*l = locator{}
		return false
	case "b":
		l.color, l.hasCol = engine.Black, true
	case "r":
		l.color, l.hasCol = engine.Red, true
	default:
		if rank, ok := locateRanks[k]; ok {
			l.rank = rank
		} else if n, err := strconv.Atoi(k); err == nil && n >= 2 && n <= 9 {
			l.rank = n
		}
	}
	return true
}

// match reports whether c should be highlighted
func (l locator) match(c engine.Card) bool {
	return l.active && l.hasCol && l.rank != 0 && !c.IsZero() &&
		c.Color() == l.color && c.Rank == l.rank
}

// labels is what the footer shows while locating, e.g. ["L", "R", "Q"]
func (l locator) labels() []string {
	color, rank := "?", "?"
	if l.hasCol {
		color = "B"
		if l.color == engine.Red {
			color = "R"
		}
	}
	if l.rank != 0 {
		rank = engine.Card{Rank: l.rank}.Name()
	}
	return []string{"L", color, rank}
}
