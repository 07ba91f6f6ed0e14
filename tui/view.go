package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/wricardo/freecell/game/action"
	"github.com/wricardo/freecell/game/engine"
	"github.com/wricardo/freecell/game/stats"
)

const defaultWidth = 80

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	var body string
	switch {
	case m.mode == modeStats:
		body = m.statsView()
	case m.mode == modeHelp:
		body = m.helpView()
	case m.table.Paused():
		body = "Paused"
	case m.table.Won():
		body = BannerStyle.Render("You won!") + "\n\n" +
			HintStyle.Render("n: new game   S: stats   q: quit")
	default:
		body = m.boardView()
	}

	var b strings.Builder
	b.WriteString(m.titleBar(width))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, body))
	b.WriteString("\n\n")
	b.WriteString(m.footer(width))
	return b.String()
}

func (m Model) titleBar(width int) string {
	clock := " " + stats.FormatTime(stats.Seconds(m.table.Elapsed())) + " "
	title := fmt.Sprintf(" FreeCell #%d", m.table.Seed())
	gap := max(width-lipgloss.Width(title)-lipgloss.Width(clock), 1)
	return TitleStyle.Render(title+strings.Repeat(" ", gap)) + ClockStyle.Render(clock)
}

func (m Model) footer(width int) string {
	left := ""
	if m.message != "" {
		left = MessageStyle.Render(m.message)
	}

	pending := m.table.Pending()
	if m.mode == modeLocate {
		pending = m.locate.labels()
	}
	right := ""
	if len(pending) > 0 {
		right = PendingStyle.Render(strings.Join(pending, " "))
	}

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// boardView draws the reserve and foundation row, the column labels and
// the columns
func (m Model) boardView() string {
	eng := m.table.Engine()
	km := m.table.Keymap()

	var b strings.Builder
	b.WriteString(km.Label(action.Reserve()) + " [ ")
	for _, c := range eng.Reserve() {
		b.WriteString(m.card(c) + " ")
	}
	b.WriteString("] [ ")
	for _, pile := range eng.Piles() {
		b.WriteString(m.pile(pile) + " ")
	}
	b.WriteString("] " + km.Label(action.Pile()))
	b.WriteString("\n\n")

	labels := make([]string, 0, engine.ColumnSlots)
	for i := 0; i < engine.ColumnSlots; i++ {
		labels = append(labels, fmt.Sprintf(" %-2s ", km.Label(action.Column(i))))
	}
	b.WriteString(ColumnLabelStyle.Render(strings.Join(labels, "  ")))

	columns := eng.Columns()
	depth := 0
	for _, col := range columns {
		depth = max(depth, len(col))
	}
	for row := 0; row < depth; row++ {
		b.WriteString("\n")
		cells := make([]string, 0, engine.ColumnSlots)
		for _, col := range columns {
			if row < len(col) {
				cells = append(cells, m.card(col[row]))
			} else {
				cells = append(cells, "    ")
			}
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
	}
	return b.String()
}

func (m Model) card(c engine.Card) string {
	if c.IsZero() {
		return EmptySlotStyle.Render(c.String())
	}
	style := BlackCardStyle
	if c.Color() == engine.Red {
		style = RedCardStyle
	}
	if m.locate.match(c) {
		style = style.Inherit(HighlightStyle)
	}
	return style.Render(c.String())
}

// pile shows the top card, highlighted when any card of the pile matches
func (m Model) pile(cards []engine.Card) string {
	if len(cards) == 0 {
		return EmptySlotStyle.Render(engine.Card{}.String())
	}
	top := cards[len(cards)-1]
	style := BlackCardStyle
	if top.Color() == engine.Red {
		style = RedCardStyle
	}
	for _, c := range cards {
		if m.locate.match(c) {
			style = style.Inherit(HighlightStyle)
			break
		}
	}
	return style.Render(top.String())
}

func (m Model) statsView() string {
	st, err := m.loadStats()
	if err != nil {
		return fmt.Sprintf("Could not load stats: %v", err)
	}

	lines := []string{
		HeadingStyle.Render("STATS"),
		"",
		fmt.Sprintf("Games played: %5d", st.Games),
		fmt.Sprintf("Games won:    %5d", st.Won),
		fmt.Sprintf("Average time: %5s", stats.FormatTime(st.AverageTime())),
		fmt.Sprintf("Lowest time:  %5s", stats.FormatTime(st.LowestTime)),
		fmt.Sprintf("Highest time: %5s", stats.FormatTime(st.HighestTime)),
		"",
		HintStyle.Render("Press 'c' to clear, 'p' to go back"),
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m Model) helpView() string {
	km := m.table.Keymap()

	lines := []string{
		HeadingStyle.Render("HELP"),
		"",
		"Each move is a source then a destination.",
		fmt.Sprintf("%-8s columns", strings.Join(km.Columns, "")),
		fmt.Sprintf("%-8s reserve (then a column key for the cell)", km.Reserve),
		fmt.Sprintf("%-8s foundation", km.Pile),
		fmt.Sprintf("%-8s cancel", "space"),
		"",
	}
	for _, binding := range m.keys.Bindings() {
		h := binding.Help()
		lines = append(lines, fmt.Sprintf("%-8s %s", h.Key, h.Desc))
	}
	lines = append(lines, "", HintStyle.Render("Locate: l, then r or b, then a 2-9 0 j q k"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
