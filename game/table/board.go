package table

import (
	"fmt"
	"strings"

	"github.com/wricardo/freecell/game/action"
	"github.com/wricardo/freecell/game/engine"
)

const boardCell = 4

// Board renders the field as plain text. The first row holds the reserve
// and the pile tops, the second the column key labels, and the columns
// follow top to bottom.
func (t *Table) Board() string {
	return RenderBoard(t.eng, t.opts.Keymap)
}

// RenderBoard renders eng with the column labels of km
func RenderBoard(eng *engine.Engine, km action.Keymap) string {
	var b strings.Builder

	for _, c := range eng.Reserve() {
		b.WriteString(slotCell(c))
	}
	b.WriteString("  |")
	for _, suit := range engine.Suits {
		b.WriteString(slotCell(eng.PileTop(suit)))
	}
	writeLine(&b)

	for i := 0; i < engine.ColumnSlots; i++ {
		fmt.Fprintf(&b, "%*s", boardCell, km.Label(action.Column(i)))
	}
	writeLine(&b)

	columns := eng.Columns()
	depth := 0
	for _, col := range columns {
		depth = max(depth, len(col))
	}
	for row := 0; row < depth; row++ {
		for _, col := range columns {
			code := ""
			if row < len(col) {
				code = col[row].Code()
			}
			fmt.Fprintf(&b, "%*s", boardCell, code)
		}
		writeLine(&b)
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func slotCell(c engine.Card) string {
	if c.IsZero() {
		return fmt.Sprintf("%*s", boardCell, "..")
	}
	return fmt.Sprintf("%*s", boardCell, c.Code())
}

// writeLine ends the current row, dropping trailing blanks
func writeLine(b *strings.Builder) {
	s := strings.TrimRight(b.String(), " ")
	b.Reset()
	b.WriteString(s)
	b.WriteByte('\n')
}
