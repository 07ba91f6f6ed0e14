package table

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/wricardo/freecell/game/action"
	"github.com/wricardo/freecell/game/engine"
	"github.com/wricardo/freecell/game/history"
)

const (
	// DefaultSweepBatch is how many cards one Tick may send home
	DefaultSweepBatch = 3

	MsgGameOver = "Game is over"
	MsgPaused   = "Game is paused"
)

var ErrUnknownKey = errors.New("unknown key")

// Clock supplies the current time. Tests inject a manual clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock
var SystemClock Clock = systemClock{}

// Options tune a table
type Options struct {
	SweepBatch int
	Keymap     action.Keymap
	Clock      Clock
}

// DefaultOptions returns the options used when none are given
func DefaultOptions() Options {
	return Options{
		SweepBatch: DefaultSweepBatch,
		Keymap:     action.DefaultKeymap(),
		Clock:      SystemClock,
	}
}

func (o Options) withDefaults() Options {
	if o.SweepBatch < 1 {
		o.SweepBatch = DefaultSweepBatch
	}
	if len(o.Keymap.Columns) == 0 {
		o.Keymap = action.DefaultKeymap()
	}
	if o.Clock == nil {
		o.Clock = SystemClock
	}
	return o
}

// Table is one game in progress. It ties the engine to the action
// interpreter and the undo history, schedules sweeps and keeps the clock.
// A Table is not safe for concurrent use.
type Table struct {
	seed   uint64
	eng    *engine.Engine
	hist   *history.Manager
	interp *action.Interpreter
	opts   Options

	started    time.Time
	pausedAt   time.Time
	pausedFor  time.Duration
	finishedAt time.Time
	paused     bool
	won        bool
	sweeping   bool
	message    string
}

// New deals the game for seed
func New(seed uint64, opts Options) *Table {
	return NewWithEngine(seed, engine.Deal(seed), opts)
}

// NewWithEngine starts a game on an existing engine
func NewWithEngine(seed uint64, eng *engine.Engine, opts Options) *Table {
	opts = opts.withDefaults()
	hist := history.New()
	return &Table{
		seed:     seed,
		eng:      eng,
		hist:     hist,
		interp:   action.NewInterpreter(eng, hist),
		opts:     opts,
		started:  opts.Clock.Now(),
		sweeping: true,
	}
}

// Seed returns the seed the game was dealt from
func (t *Table) Seed() uint64 { return t.seed }

// Engine exposes the live engine for queries. Mutate it only through the
// table.
func (t *Table) Engine() *engine.Engine { return t.eng }

// Keymap returns the key bindings in use
func (t *Table) Keymap() action.Keymap { return t.opts.Keymap }

// Message returns the last rejection message, if any
func (t *Table) Message() string { return t.message }

// ClearMessage drops the current message
func (t *Table) ClearMessage() { t.message = "" }

// Pending returns the labels of the buffered action, e.g. ["R", "A"]
func (t *Table) Pending() []string {
	return t.opts.Keymap.Labels(t.interp.Pending())
}

// Input feeds one token to the interpreter. A completed move schedules a
// sweep for the following ticks.
func (t *Table) Input(tok action.Token) action.Outcome {
	switch {
	case t.won:
		return action.Outcome{Status: action.Rejected, Message: MsgGameOver}
	case t.paused:
		return action.Outcome{Status: action.Rejected, Message: MsgPaused}
	}

	out := t.interp.Feed(tok)
	switch out.Status {
	case action.Moved:
		t.sweeping = true
		t.message = ""
		if t.eng.IsWon() {
			t.finish()
		}
	case action.Rejected:
		t.message = out.Message
	default:
		t.message = ""
	}
	return out
}

// Key classifies a raw key and feeds it. ok is false when the key is not an
// action key; nothing happens then.
func (t *Table) Key(key string) (out action.Outcome, ok bool) {
	tok, ok := t.opts.Keymap.Classify(key)
	if !ok {
		return action.Outcome{}, false
	}
	return t.Input(tok), true
}

// Keys feeds every character of keys as one key press. All characters are
// classified before any is fed, so an unknown key changes nothing.
func (t *Table) Keys(keys string) ([]action.Outcome, error) {
	tokens := make([]action.Token, 0, len(keys))
	for _, r := range keys {
		tok, ok := t.opts.Keymap.Classify(string(r))
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKey, r)
		}
		tokens = append(tokens, tok)
	}
	return t.Tokens(tokens), nil
}

// Tokens feeds a token sequence and returns every outcome
func (t *Table) Tokens(tokens []action.Token) []action.Outcome {
	outs := make([]action.Outcome, 0, len(tokens))
	for _, tok := range tokens {
		outs = append(outs, t.Input(tok))
	}
	return outs
}

// Undo makes the previous snapshot live. It reports whether anything
// changed.
func (t *Table) Undo() bool {
	if t.won || t.paused {
		return false
	}
	field, ok := t.hist.Undo(t.eng.State())
	if !ok {
		return false
	}
	return t.restore(field)
}

// Redo reverses the last Undo
func (t *Table) Redo() bool {
	if t.won || t.paused {
		return false
	}
	field, ok := t.hist.Redo()
	if !ok {
		return false
	}
	return t.restore(field)
}

func (t *Table) restore(field *engine.Field) bool {
	if err := t.eng.SetState(field); err != nil {
		log.Printf("Warning: history snapshot rejected: %v", err)
		return false
	}
	t.interp.Reset()
	t.message = ""
	t.sweeping = true
	if t.eng.IsWon() {
		t.finish()
	}
	return true
}

// CanUndo reports whether Undo would do anything
func (t *Table) CanUndo() bool { return !t.won && t.hist.CanUndo() }

// CanRedo reports whether Redo would do anything
func (t *Table) CanRedo() bool { return !t.won && t.hist.CanRedo() }

// Tick runs one bounded sweep step if a sweep is scheduled. It reports
// whether any card moved, which means the board needs a redraw.
func (t *Table) Tick() bool {
	if t.paused || t.won || !t.sweeping {
		return false
	}
	moved := t.eng.SweepStep(t.opts.SweepBatch)
	if !moved {
		t.sweeping = false
	}
	if t.eng.IsWon() {
		t.finish()
	}
	return moved
}

// SweepAll runs the whole sweep at once and returns the cards moved
func (t *Table) SweepAll() int {
	if t.paused || t.won {
		return 0
	}
	moved := t.eng.Sweep()
	t.sweeping = false
	if t.eng.IsWon() {
		t.finish()
	}
	return moved
}

// Sweeping reports whether a sweep is scheduled
func (t *Table) Sweeping() bool { return t.sweeping }

func (t *Table) finish() {
	t.won = true
	t.sweeping = false
	t.finishedAt = t.opts.Clock.Now()
	t.interp.Reset()
	t.message = ""
}

// Won reports whether the game has been won
func (t *Table) Won() bool { return t.won }

// Played reports whether at least one move was made. Abandoning a game
// that was never played does not count as a loss.
func (t *Table) Played() bool { return t.hist.Len() > 0 }

// Moves returns the number of recorded moves, counting undone moves that
// can still be redone. While an undo is in progress the history also holds
// the captured live field, which is not a move.
func (t *Table) Moves() int {
	if t.hist.Cursor() >= 0 {
		return t.hist.Len() - 1
	}
	return t.hist.Len()
}

// Pause stops the clock and discards any pending action
func (t *Table) Pause() {
	if t.paused || t.won {
		return
	}
	t.paused = true
	t.pausedAt = t.opts.Clock.Now()
	t.interp.Reset()
}

// Resume restarts the clock after Pause
func (t *Table) Resume() {
	if !t.paused {
		return
	}
	t.paused = false
	t.pausedFor += t.opts.Clock.Now().Sub(t.pausedAt)
}

// Paused reports whether the game is paused
func (t *Table) Paused() bool { return t.paused }

// Elapsed returns playing time, excluding pauses
func (t *Table) Elapsed() time.Duration {
	end := t.opts.Clock.Now()
	switch {
	case t.won:
		end = t.finishedAt
	case t.paused:
		end = t.pausedAt
	}
	return end.Sub(t.started) - t.pausedFor
}
