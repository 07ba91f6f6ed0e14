// Package tui is the terminal front end: a bubbletea program that feeds
// key presses to a table, runs the foundation sweep on a tick and keeps
// stats.
package tui

import (
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/wricardo/freecell/game/action"
	"github.com/wricardo/freecell/game/stats"
	"github.com/wricardo/freecell/game/table"
)

const (
	defaultTickInterval   = 100 * time.Millisecond
	defaultMessageTimeout = time.Second
)

// Options configure a Model
type Options struct {
	Table          table.Options
	Stats          stats.Store
	TickInterval   time.Duration
	MessageTimeout time.Duration

	// NextSeed picks the seed of each new game. Random when nil.
	NextSeed func() uint64
}

type mode int

const (
	modePlay mode = iota
	modeLocate
	modeConfirm
	modeStats
	modeHelp
)

// Model is the bubbletea model of one terminal session. Games are played
// one after another on it.
type Model struct {
	opts  Options
	keys  KeyMap
	clock table.Clock

	table    *table.Table
	recorded bool

	mode    mode
	locate  locator
	confirm func(Model) (Model, tea.Cmd)

	message      string
	messageUntil time.Time

	width    int
	height   int
	quitting bool
}

// New starts a model on a fresh deal. A nil seed picks a random one.
func New(seed *uint64, opts Options) Model {
	opts = opts.withDefaults()
	s := opts.NextSeed()
	if seed != nil {
		s = *seed
	}
	return NewWithTable(table.New(s, opts.Table), opts)
}

// NewWithTable starts a model on an existing table
func NewWithTable(t *table.Table, opts Options) Model {
	opts = opts.withDefaults()
	return Model{
		opts:  opts,
		keys:  DefaultKeyMap(),
		clock: opts.Table.Clock,
		table: t,
	}
}

func (o Options) withDefaults() Options {
	if o.TickInterval <= 0 {
		o.TickInterval = defaultTickInterval
	}
	if o.MessageTimeout <= 0 {
		o.MessageTimeout = defaultMessageTimeout
	}
	if o.Table.Clock == nil {
		o.Table.Clock = table.SystemClock
	}
	if o.NextSeed == nil {
		o.NextSeed = func() uint64 { return uint64(rand.Uint32()) }
	}
	return o
}

// Table returns the game in progress
func (m Model) Table() *table.Table { return m.table }

// Message returns the footer message
func (m Model) Message() string { return m.message }

// Quitting reports whether the program is shutting down
func (m Model) Quitting() bool { return m.quitting }

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return TickCmd(m.opts.TickInterval)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case TickMsg:
		return m.handleTick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.table.Tick()
	if m.table.Won() && !m.recorded {
		m = m.gameOver()
	}

	if !m.messageUntil.IsZero() && !m.clock.Now().Before(m.messageUntil) {
		m.clearMessage()
	}

	if m.quitting {
		return m, nil
	}
	return m, TickCmd(m.opts.TickInterval)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeConfirm:
		return m.handleConfirm(msg)
	case modeStats:
		return m.handleStatsKey(msg)
	case modeHelp:
		m.mode = modePlay
		m.table.Resume()
		return m, nil
	case modeLocate:
		if !m.locate.key(msg.String()) {
			m.mode = modePlay
		}
		return m, nil
	}

	switch {
	case m.table.Won():
		return m.handleWonKey(msg)
	case m.table.Paused():
		return m.handlePausedKey(msg)
	}

	if out, ok := m.table.Key(msg.String()); ok {
		if out.Status == action.Rejected {
			m.setMessage(out.Message)
		} else {
			m.clearMessage()
		}
		if m.table.Won() {
			m = m.gameOver()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Undo):
		m.table.Undo()
	case key.Matches(msg, m.keys.Redo):
		m.table.Redo()
	case key.Matches(msg, m.keys.Locate):
		m.table.Input(action.Cancel())
		m.locate = locator{active: true}
		m.mode = modeLocate
	case key.Matches(msg, m.keys.Pause):
		m.table.Pause()
	case key.Matches(msg, m.keys.NewGame):
		m.ask("Start a new game?", func(m Model) (Model, tea.Cmd) {
			return m.newGame(), nil
		})
	case key.Matches(msg, m.keys.ForceQuit):
		return m.quit()
	case key.Matches(msg, m.keys.Quit):
		m.ask("Quit game?", func(m Model) (Model, tea.Cmd) {
			return m.quit()
		})
	case key.Matches(msg, m.keys.Stats):
		m.table.Pause()
		m.mode = modeStats
	case key.Matches(msg, m.keys.Help):
		m.table.Pause()
		m.mode = modeHelp
	case key.Matches(msg, m.keys.Redraw):
		return m, tea.ClearScreen
	}
	return m, nil
}

func (m Model) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	onYes := m.confirm
	m.confirm = nil
	m.mode = modePlay
	m.clearMessage()
	if msg.String() == "y" && onYes != nil {
		return onYes(m)
	}
	return m, nil
}

func (m Model) handleStatsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "p", "esc", "S":
		m.mode = modePlay
		m.table.Resume()
	case "q", "ctrl+c":
		return m.quit()
	case "c":
		m.clearStats()
	}
	return m, nil
}

func (m Model) handleWonKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NewGame):
		return m.newGame(), nil
	case key.Matches(msg, m.keys.Quit, m.keys.ForceQuit):
		return m.quit()
	case key.Matches(msg, m.keys.Stats):
		m.mode = modeStats
	}
	return m, nil
}

func (m Model) handlePausedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Pause):
		m.table.Resume()
	case key.Matches(msg, m.keys.Quit, m.keys.ForceQuit):
		return m.quit()
	}
	return m, nil
}

func (m *Model) ask(prompt string, onYes func(Model) (Model, tea.Cmd)) {
	m.mode = modeConfirm
	m.confirm = onYes
	m.message = prompt + " (y/n)"
	m.messageUntil = time.Time{}
}

func (m *Model) setMessage(msg string) {
	m.message = msg
	m.messageUntil = m.clock.Now().Add(m.opts.MessageTimeout)
}

func (m *Model) clearMessage() {
	m.message = ""
	m.messageUntil = time.Time{}
	m.table.ClearMessage()
}

func (m Model) newGame() Model {
	m.abandon()
	m.table = table.New(m.opts.NextSeed(), m.opts.Table)
	m.recorded = false
	m.mode = modePlay
	m.locate = locator{}
	m.clearMessage()
	return m
}

func (m Model) quit() (Model, tea.Cmd) {
	m.abandon()
	m.quitting = true
	return m, tea.Quit
}

// abandon counts the current game as lost if any move was made
func (m *Model) abandon() {
	if m.table.Played() && !m.table.Won() {
		m.record(false)
	}
}

func (m Model) gameOver() Model {
	m.locate = locator{}
	if m.mode == modeLocate {
		m.mode = modePlay
	}
	m.record(true)
	return m
}

func (m *Model) record(won bool) {
	if m.recorded || m.opts.Stats == nil {
		return
	}
	m.recorded = true

	game := stats.Game{
		Seed:       m.table.Seed(),
		Won:        won,
		Seconds:    stats.Seconds(m.table.Elapsed()),
		Moves:      m.table.Moves(),
		FinishedAt: m.clock.Now(),
	}
	if _, err := stats.Record(m.opts.Stats, game); err != nil {
		log.Printf("Warning: Failed to save stats: %v", err)
		m.setMessage(fmt.Sprintf("Could not save stats: %v", err))
	}
}

func (m *Model) clearStats() {
	if m.opts.Stats == nil {
		return
	}
	if err := stats.Clear(m.opts.Stats); err != nil {
		log.Printf("Warning: Failed to clear stats: %v", err)
		m.setMessage(fmt.Sprintf("Could not clear stats: %v", err))
	}
}

// loadStats reads the store for the stats screen
func (m Model) loadStats() (stats.Stats, error) {
	if m.opts.Stats == nil {
		return stats.Stats{}, nil
	}
	return m.opts.Stats.Load()
}
