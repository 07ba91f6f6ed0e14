package engine

// Sweep moves every card that is safe to auto-advance onto its pile, scanning
// reserve slots then column tops until a full scan moves nothing. It returns
// the number of cards moved.
func (e *Engine) Sweep() int {
	moved := 0
	for {
		n := e.sweepScan(-1)
		if n == 0 {
			return moved
		}
		moved += n
	}
}

// SweepStep performs one scan like Sweep but stops after limit cards have
// moved. It reports whether anything moved. Calling it until it returns
// false reaches the same field as a single Sweep.
func (e *Engine) SweepStep(limit int) bool {
	if limit < 1 {
		return false
	}
	return e.sweepScan(limit) > 0
}

// sweepScan runs one pass over the reserve and column tops. A negative limit
// means no limit.
func (e *Engine) sweepScan(limit int) int {
	moved := 0
	done := func() bool {
		return limit >= 0 && moved >= limit
	}

	for i, card := range e.field.Reserve {
		if done() {
			return moved
		}
		if !card.IsZero() && e.ShouldAutoAdvance(card) {
			e.field.Reserve[i] = Card{}
			e.field.Piles[card.Suit].Push(card)
			moved++
		}
	}

	for i := range e.field.Columns {
		if done() {
			return moved
		}
		col := &e.field.Columns[i]
		if !col.Empty() && e.ShouldAutoAdvance(col.Top()) {
			card := col.Pop()
			e.field.Piles[card.Suit].Push(card)
			moved++
		}
	}

	return moved
}
