package action

import (
	"fmt"
	"strconv"
)

// Kind identifies the zone a token refers to
type Kind int

const (
	KindColumn Kind = iota
	KindReserve
	KindPile
	KindCancel
)

func (k Kind) String() string {
	switch k {
	case KindColumn:
		return "column"
	case KindReserve:
		return "reserve"
	case KindPile:
		return "pile"
	case KindCancel:
		return "cancel"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Token is one abstract input event. Index is only meaningful for
// KindColumn; after a reserve token it selects the reserve slot instead.
type Token struct {
	Kind  Kind `json:"kind"`
	Index int  `json:"index,omitempty"`
}

// Column returns the token for playing column i
func Column(i int) Token {
	return Token{Kind: KindColumn, Index: i}
}

// Reserve returns the reserve zone token
func Reserve() Token {
	return Token{Kind: KindReserve}
}

// Pile returns the suit pile zone token
func Pile() Token {
	return Token{Kind: KindPile}
}

// Cancel returns the token that discards a pending action
func Cancel() Token {
	return Token{Kind: KindCancel}
}

func (t Token) String() string {
	if t.Kind == KindColumn {
		return fmt.Sprintf("column(%d)", t.Index)
	}
	return t.Kind.String()
}

// ParseToken parses the textual form used by the HTTP API: "reserve",
// "pile", "cancel" or a column number 0-7.
func ParseToken(s string) (Token, error) {
	switch s {
	case "reserve", "r":
		return Reserve(), nil
	case "pile", "foundation", "t":
		return Pile(), nil
	case "cancel":
		return Cancel(), nil
	}

	i, err := strconv.Atoi(s)
	if err != nil {
		return Token{}, fmt.Errorf("unknown token %q", s)
	}
	return Column(i), nil
}
