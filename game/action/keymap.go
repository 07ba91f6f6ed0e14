package action

import (
	"fmt"
	"strings"

	"github.com/wricardo/freecell/game/engine"
)

// Keymap classifies raw key names, as reported by the terminal, into tokens.
// Column keys double as reserve slot keys after the reserve key.
type Keymap struct {
	Columns []string `toml:"columns" json:"columns"`
	Reserve string   `toml:"reserve" json:"reserve"`
	Pile    string   `toml:"pile" json:"pile"`
	Cancel  []string `toml:"cancel" json:"cancel"`
}

// DefaultKeymap returns the home-row layout
func DefaultKeymap() Keymap {
	return Keymap{
		Columns: []string{"a", "s", "d", "f", "g", "h", "j", "k"},
		Reserve: "r",
		Pile:    "t",
		Cancel:  []string{" ", "esc"},
	}
}

// Validate checks that every column has a key and no key is bound twice
func (k Keymap) Validate() error {
	if len(k.Columns) != engine.ColumnSlots {
		return fmt.Errorf("keymap needs %d column keys, got %d", engine.ColumnSlots, len(k.Columns))
	}

	seen := make(map[string]string)
	bind := func(key, what string) error {
		if key == "" {
			return fmt.Errorf("keymap: empty key for %s", what)
		}
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("keymap: key %q bound to both %s and %s", key, prev, what)
		}
		seen[key] = what
		return nil
	}

	for i, key := range k.Columns {
		if err := bind(key, fmt.Sprintf("column %d", i)); err != nil {
			return err
		}
	}
	if err := bind(k.Reserve, "reserve"); err != nil {
		return err
	}
	if err := bind(k.Pile, "pile"); err != nil {
		return err
	}
	for _, key := range k.Cancel {
		if err := bind(key, "cancel"); err != nil {
			return err
		}
	}
	return nil
}

// Classify maps a key name to its token. ok is false for keys that are not
// part of the action vocabulary.
func (k Keymap) Classify(key string) (tok Token, ok bool) {
	for i, c := range k.Columns {
		if key == c {
			return Column(i), true
		}
	}
	switch key {
	case k.Reserve:
		return Reserve(), true
	case k.Pile:
		return Pile(), true
	}
	for _, c := range k.Cancel {
		if key == c {
			return Cancel(), true
		}
	}
	return Token{}, false
}

// Label returns the text shown for a pending token, the upper-cased key
func (k Keymap) Label(t Token) string {
	switch t.Kind {
	case KindColumn:
		if t.Index >= 0 && t.Index < len(k.Columns) {
			return strings.ToUpper(k.Columns[t.Index])
		}
		return fmt.Sprint(t.Index)
	case KindReserve:
		return strings.ToUpper(k.Reserve)
	case KindPile:
		return strings.ToUpper(k.Pile)
	}
	return ""
}

// Labels renders a pending buffer, e.g. ["R", "A"]
func (k Keymap) Labels(tokens []Token) []string {
	labels := make([]string, 0, len(tokens))
	for _, t := range tokens {
		labels = append(labels, k.Label(t))
	}
	return labels
}
