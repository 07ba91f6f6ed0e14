package table

import (
	"fmt"
	"time"

	"github.com/wricardo/freecell/game/action"
	"github.com/wricardo/freecell/game/engine"
	"github.com/wricardo/freecell/game/history"
)

// Saved is the persistent form of a Table. Pending input is not saved.
type Saved struct {
	Seed           uint64         `json:"seed"`
	Field          *engine.Field  `json:"field"`
	History        history.Record `json:"history"`
	ElapsedSeconds int64          `json:"elapsed_seconds"`
	Won            bool           `json:"won"`
	Sweeping       bool           `json:"sweeping"`
}

// Save captures the table. A paused table is saved as if resumed.
func (t *Table) Save() Saved {
	return Saved{
		Seed:           t.seed,
		Field:          t.eng.Snapshot(),
		History:        t.hist.Export(),
		ElapsedSeconds: int64(t.Elapsed() / time.Second),
		Won:            t.won,
		Sweeping:       t.sweeping,
	}
}

// Restore rebuilds a table from Save output. The clock resumes from the
// saved elapsed time.
func Restore(s Saved, opts Options) (*Table, error) {
	if s.Field == nil {
		return nil, fmt.Errorf("saved table has no field")
	}
	eng, err := engine.NewFromField(s.Field)
	if err != nil {
		return nil, fmt.Errorf("saved field: %w", err)
	}
	hist, err := history.Restore(s.History)
	if err != nil {
		return nil, err
	}

	t := NewWithEngine(s.Seed, eng, opts)
	t.hist = hist
	t.interp = action.NewInterpreter(eng, hist)
	t.started = t.opts.Clock.Now().Add(-time.Duration(s.ElapsedSeconds) * time.Second)
	t.sweeping = s.Sweeping
	if s.Won {
		t.won = true
		t.finishedAt = t.opts.Clock.Now()
	}
	return t, nil
}
