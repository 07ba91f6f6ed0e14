package action

import (
	"github.com/wricardo/freecell/game/engine"
)

// Status is the result class of feeding one token
type Status int

const (
	// Pending means the token was buffered and more input is needed
	Pending Status = iota
	// Moved means a move completed and the field changed
	Moved
	// Rejected means the buffered action was invalid and was discarded
	Rejected
	// Cancelled means the buffer was discarded on request
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Moved:
		return "moved"
	case Rejected:
		return "rejected"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Rejection messages shown to the player
const (
	MsgInvalidAction  = "Invalid action"
	MsgInvalidColumn  = "Invalid column"
	MsgColumnEmpty    = "Column is empty"
	MsgFromPile       = "Cannot move cards from foundation"
	MsgNoFreeReserve  = "No free reserve slots"
	MsgToPile         = "Cannot move to foundation"
	MsgToColumn       = "Cannot move to column"
	MsgNoPlacement    = "Cannot move cards"
	MsgNoCapacity     = "Not enough free cells to move"
	MsgInvalidReserve = "Invalid reserve slot"
	MsgReserveEmpty   = "Reserve slot is empty"
)

// Outcome reports what a token did. Err carries the engine error behind a
// rejection, if there was one.
type Outcome struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
	Err     error  `json:"-"`
}

// Done reports whether the buffer was resolved one way or another
func (o Outcome) Done() bool {
	return o.Status != Pending
}

// Recorder receives the field as it was before each completed move
type Recorder interface {
	Push(snapshot *engine.Field)
}

type state int

const (
	stateIdle state = iota
	// a column was chosen as source
	stateSource
	// reserve chosen, slot pending
	stateReserveSlot
	// reserve slot chosen, destination pending
	stateReserveDest
)

type transition func(in *Interpreter, tok Token) Outcome

// transitions is the complete token grammar. Pairs missing from the table
// resolve to "Invalid action".
var transitions = map[state]map[Kind]transition{
	stateIdle: {
		KindColumn:  (*Interpreter).selectColumn,
		KindReserve: (*Interpreter).selectReserve,
		KindPile:    (*Interpreter).pileSource,
	},
	stateSource: {
		KindColumn:  (*Interpreter).columnToColumn,
		KindReserve: (*Interpreter).columnToReserve,
		KindPile:    (*Interpreter).columnToPile,
	},
	stateReserveSlot: {
		KindColumn: (*Interpreter).selectSlot,
	},
	stateReserveDest: {
		KindColumn: (*Interpreter).reserveToColumn,
		KindPile:   (*Interpreter).reserveToPile,
	},
}

// Interpreter buffers input tokens until they form a complete move, then
// applies the move to the engine. It is driven by a single control loop.
type Interpreter struct {
	eng      *engine.Engine
	recorder Recorder

	state  state
	buffer []Token
	src    int
}

// NewInterpreter returns an idle interpreter over eng. Every completed move
// hands its pre-move snapshot to rec, which may be nil.
func NewInterpreter(eng *engine.Engine, rec Recorder) *Interpreter {
	return &Interpreter{eng: eng, recorder: rec}
}

// Feed consumes one token
func (in *Interpreter) Feed(tok Token) Outcome {
	if tok.Kind == KindCancel {
		in.Reset()
		return Outcome{Status: Cancelled}
	}

	in.buffer = append(in.buffer, tok)

	step, ok := transitions[in.state][tok.Kind]
	if !ok {
		return in.reject(MsgInvalidAction, nil)
	}
	return step(in, tok)
}

// Pending returns a copy of the buffered tokens
func (in *Interpreter) Pending() []Token {
	return append([]Token(nil), in.buffer...)
}

// Idle reports whether no action is buffered
func (in *Interpreter) Idle() bool {
	return in.state == stateIdle
}

// Reset discards the buffer without touching the engine
func (in *Interpreter) Reset() {
	in.state = stateIdle
	in.buffer = in.buffer[:0]
	in.src = 0
}

func (in *Interpreter) selectColumn(tok Token) Outcome {
	if !validColumn(tok.Index) {
		return in.reject(MsgInvalidColumn, nil)
	}
	if in.eng.State().Columns[tok.Index].Empty() {
		return in.reject(MsgColumnEmpty, nil)
	}
	in.src = tok.Index
	in.state = stateSource
	return Outcome{Status: Pending}
}

func (in *Interpreter) selectReserve(Token) Outcome {
	in.state = stateReserveSlot
	return Outcome{Status: Pending}
}

func (in *Interpreter) pileSource(Token) Outcome {
	return in.reject(MsgFromPile, nil)
}

func (in *Interpreter) selectSlot(tok Token) Outcome {
	if tok.Index < 0 || tok.Index >= engine.ReserveSlots {
		return in.reject(MsgInvalidReserve, nil)
	}
	if in.eng.Reserve()[tok.Index].IsZero() {
		return in.reject(MsgReserveEmpty, nil)
	}
	in.src = tok.Index
	in.state = stateReserveDest
	return Outcome{Status: Pending}
}

func (in *Interpreter) columnToReserve(Token) Outcome {
	src := in.src
	return in.apply(MsgNoFreeReserve, func() error {
		return in.eng.ColumnToReserve(src)
	})
}

func (in *Interpreter) columnToPile(Token) Outcome {
	src := in.src
	return in.apply(MsgToPile, func() error {
		return in.eng.ColumnToPile(src)
	})
}

func (in *Interpreter) columnToColumn(tok Token) Outcome {
	src, dest := in.src, tok.Index
	if dest == src {
		return in.columnToReserve(tok)
	}
	if !validColumn(dest) {
		return in.reject(MsgInvalidColumn, nil)
	}

	n, msg := in.groupSize(src, dest)
	if msg != "" {
		return in.reject(msg, nil)
	}
	return in.apply(MsgNoPlacement, func() error {
		return in.eng.MoveGroup(src, dest, n)
	})
}

func (in *Interpreter) reserveToPile(Token) Outcome {
	slot := in.src
	return in.apply(MsgToPile, func() error {
		return in.eng.ReserveToPile(slot)
	})
}

func (in *Interpreter) reserveToColumn(tok Token) Outcome {
	slot, dest := in.src, tok.Index
	return in.apply(MsgToColumn, func() error {
		return in.eng.ReserveToColumn(slot, dest)
	})
}

// groupSize picks how many cards a column to column move relocates. An
// empty destination takes as many as legally possible; otherwise the
// shortest run from the top whose bottom card fits on the destination.
func (in *Interpreter) groupSize(src, dest int) (int, string) {
	capacity := in.eng.MoveCapacity(src, dest)

	target := in.eng.State().Columns[dest]
	if target.Empty() {
		return capacity, ""
	}

	from := in.eng.State().Columns[src]
	group := in.eng.CountGroup(src)
	for i := 0; i < group; i++ {
		if engine.CanTop(from[from.Len()-1-i], target.Top()) {
			if i+1 > capacity {
				return 0, MsgNoCapacity
			}
			return i + 1, ""
		}
	}
	return 0, MsgNoPlacement
}

// apply runs one engine mutation. The pre-move snapshot is recorded only
// when the mutation succeeds; a failed mutation leaves the field unchanged.
func (in *Interpreter) apply(failMsg string, move func() error) Outcome {
	// Copied on every attempt, rejected ones included; a field is 52 cards
	before := in.eng.Snapshot()
	if err := move(); err != nil {
		return in.reject(failMsg, err)
	}
	if in.recorder != nil {
		// During an undo, before equals the snapshot at the history cursor.
		// Push drops that snapshot with the redo branch, then appends before.
		in.recorder.Push(before)
	}
	in.Reset()
	return Outcome{Status: Moved}
}

func (in *Interpreter) reject(msg string, err error) Outcome {
	in.Reset()
	return Outcome{Status: Rejected, Message: msg, Err: err}
}

func validColumn(i int) bool {
	return i >= 0 && i < engine.ColumnSlots
}
