package engine

import "fmt"

// CanTop reports whether card a may be placed on card b in a playing column
func CanTop(a, b Card) bool {
	return a.Color() != b.Color() && a.Rank == b.Rank-1
}

// CanMoveToPile reports whether card may go onto its suit's pile now
func (e *Engine) CanMoveToPile(card Card) bool {
	if !card.Valid() {
		return false
	}
	return e.field.Piles[card.Suit].TopRank() == card.Rank-1
}

// ShouldAutoAdvance reports whether card is safe to send to its pile during
// a sweep. A card is kept in play while some opposite-color card two ranks
// lower could still need it as a base.
func (e *Engine) ShouldAutoAdvance(card Card) bool {
	if !e.CanMoveToPile(card) {
		return false
	}

	minBlack, minRed := MaxRank, MaxRank
	for _, suit := range Suits {
		top := e.field.Piles[suit].TopRank()
		if suit.Color() == Black {
			minBlack = min(minBlack, top)
		} else {
			minRed = min(minRed, top)
		}
	}

	var threshold int
	if card.Color() == Black {
		threshold = min(minBlack+3, minRed+2)
	} else {
		threshold = min(minBlack+2, minRed+3)
	}
	return card.Rank <= threshold
}

// CountGroup returns the size of the ordered run on top of column i
func (e *Engine) CountGroup(i int) int {
	if !validColumn(i) {
		return 0
	}
	return e.field.Columns[i].GroupLen()
}

// MoveCapacity returns how many cards may move together from column src to
// column dest. Every free reserve slot adds one card and every free column
// other than the destination doubles the total. The result never exceeds
// the ordered run actually on top of src.
func (e *Engine) MoveCapacity(src, dest int) int {
	if !validColumn(src) || !validColumn(dest) {
		return 0
	}

	free := e.FreeColumns()
	if e.field.Columns[dest].Empty() {
		free--
	}
	capacity := (1 + e.FreeReserve()) << max(free, 0)

	return min(capacity, e.CountGroup(src))
}

// MoveToPile places a free card on its suit pile
func (e *Engine) MoveToPile(card Card) error {
	e.mustBeFree(card)
	if !e.CanMoveToPile(card) {
		return fmt.Errorf("%w: %s cannot go on the %s pile", ErrInvalidMove, card.Code(), card.Suit)
	}
	e.field.Piles[card.Suit].Push(card)
	return nil
}

// MoveToColumn places a free card on column i
func (e *Engine) MoveToColumn(card Card, i int) error {
	e.mustBeFree(card)
	if !validColumn(i) {
		return fmt.Errorf("%w: no column %d", ErrInvalidMove, i)
	}
	col := &e.field.Columns[i]
	if !col.Empty() && !CanTop(card, col.Top()) {
		return fmt.Errorf("%w: %s cannot go on %s", ErrInvalidMove, card.Code(), col.Top().Code())
	}
	col.Push(card)
	return nil
}

// MoveToReserve places a free card in the first empty reserve slot
func (e *Engine) MoveToReserve(card Card) error {
	e.mustBeFree(card)
	slot := e.freeSlot()
	if slot < 0 {
		return fmt.Errorf("%w: no free reserve slot", ErrInvalidMove)
	}
	e.field.Reserve[slot] = card
	return nil
}

// MoveFromReserve empties slot i and returns its card. The card is then
// held by no zone until the caller places it.
func (e *Engine) MoveFromReserve(i int) (Card, error) {
	if i < 0 || i >= ReserveSlots {
		return Card{}, fmt.Errorf("%w: no reserve slot %d", ErrInvalidMove, i)
	}
	card := e.field.Reserve[i]
	if card.IsZero() {
		return Card{}, fmt.Errorf("%w: reserve slot %d", ErrMoveFromEmpty, i)
	}
	e.field.Reserve[i] = Card{}
	return card, nil
}

// PopColumn removes and returns the top card of column i. The card is then
// held by no zone until the caller places it.
func (e *Engine) PopColumn(i int) (Card, error) {
	if !validColumn(i) {
		return Card{}, fmt.Errorf("%w: no column %d", ErrInvalidMove, i)
	}
	col := &e.field.Columns[i]
	if col.Empty() {
		return Card{}, fmt.Errorf("%w: column %d", ErrMoveFromEmpty, i)
	}
	return col.Pop(), nil
}

// MoveGroup relocates the top n cards of column src onto column dest,
// keeping their order. Nothing changes unless the whole move is legal.
func (e *Engine) MoveGroup(src, dest, n int) error {
	if !validColumn(src) || !validColumn(dest) || src == dest {
		return fmt.Errorf("%w: columns %d to %d", ErrInvalidMove, src, dest)
	}

	from := &e.field.Columns[src]
	to := &e.field.Columns[dest]
	if from.Empty() {
		return fmt.Errorf("%w: column %d", ErrMoveFromEmpty, src)
	}

	capacity := e.MoveCapacity(src, dest)
	if n < 1 || n > capacity {
		return fmt.Errorf("%w: cannot move %d cards, capacity is %d", ErrInvalidMove, n, capacity)
	}

	run := (*from)[from.Len()-n:]
	if !to.Empty() && !CanTop(run[0], to.Top()) {
		return fmt.Errorf("%w: %s cannot go on %s", ErrInvalidMove, run[0].Code(), to.Top().Code())
	}

	*to = append(*to, run...)
	*from = (*from)[:from.Len()-n]
	return nil
}

// ColumnToPile moves the top card of column i to its pile
func (e *Engine) ColumnToPile(i int) error {
	card, err := e.columnTop(i)
	if err != nil {
		return err
	}
	if !e.CanMoveToPile(card) {
		return fmt.Errorf("%w: %s cannot go on the %s pile", ErrInvalidMove, card.Code(), card.Suit)
	}
	e.field.Columns[i].Pop()
	e.field.Piles[card.Suit].Push(card)
	return nil
}

// ColumnToReserve moves the top card of column i to the first free slot
func (e *Engine) ColumnToReserve(i int) error {
	card, err := e.columnTop(i)
	if err != nil {
		return err
	}
	slot := e.freeSlot()
	if slot < 0 {
		return fmt.Errorf("%w: no free reserve slot", ErrInvalidMove)
	}
	e.field.Columns[i].Pop()
	e.field.Reserve[slot] = card
	return nil
}

// ReserveToPile moves the card in reserve slot i to its pile
func (e *Engine) ReserveToPile(i int) error {
	card, err := e.reserveCard(i)
	if err != nil {
		return err
	}
	if !e.CanMoveToPile(card) {
		return fmt.Errorf("%w: %s cannot go on the %s pile", ErrInvalidMove, card.Code(), card.Suit)
	}
	e.field.Reserve[i] = Card{}
	e.field.Piles[card.Suit].Push(card)
	return nil
}

// ReserveToColumn moves the card in reserve slot i onto column dest
func (e *Engine) ReserveToColumn(i, dest int) error {
	card, err := e.reserveCard(i)
	if err != nil {
		return err
	}
	if !e.CanMoveToColumn(card, dest) {
		return fmt.Errorf("%w: %s cannot go on column %d", ErrInvalidMove, card.Code(), dest)
	}
	e.field.Reserve[i] = Card{}
	e.field.Columns[dest].Push(card)
	return nil
}

// CanMoveToColumn reports whether card may be placed on column i
func (e *Engine) CanMoveToColumn(card Card, i int) bool {
	if !validColumn(i) {
		return false
	}
	col := e.field.Columns[i]
	return col.Empty() || CanTop(card, col.Top())
}

func (e *Engine) columnTop(i int) (Card, error) {
	if !validColumn(i) {
		return Card{}, fmt.Errorf("%w: no column %d", ErrInvalidMove, i)
	}
	col := e.field.Columns[i]
	if col.Empty() {
		return Card{}, fmt.Errorf("%w: column %d", ErrMoveFromEmpty, i)
	}
	return col.Top(), nil
}

func (e *Engine) reserveCard(i int) (Card, error) {
	if i < 0 || i >= ReserveSlots {
		return Card{}, fmt.Errorf("%w: no reserve slot %d", ErrInvalidMove, i)
	}
	card := e.field.Reserve[i]
	if card.IsZero() {
		return Card{}, fmt.Errorf("%w: reserve slot %d", ErrMoveFromEmpty, i)
	}
	return card, nil
}

func (e *Engine) freeSlot() int {
	for i, c := range e.field.Reserve {
		if c.IsZero() {
			return i
		}
	}
	return -1
}

// mustBeFree panics if card is not a real card or is still held by a zone.
// Placing a resident card would duplicate it.
func (e *Engine) mustBeFree(card Card) {
	if !card.Valid() {
		panic(fmt.Sprintf("engine: invalid card %d/%d", int(card.Suit), card.Rank))
	}
	if loc := e.field.Locate(card); loc.Zone != ZoneNone {
		panic(fmt.Sprintf("engine: %s is still in %s %d", card.Code(), loc.Zone, loc.Index))
	}
}

func validColumn(i int) bool {
	return i >= 0 && i < ColumnSlots
}
