// Package engine provides the core rules for a game of FreeCell.
//
// The engine package implements:
//   - Cards, suits and the 52-card deck, with a compact text code ("QH")
//   - The playing field: 4 reserve slots, 4 suit piles and 8 playing columns
//   - Placement legality and multi-card move capacity
//   - The safe auto-advance heuristic and the sweep that applies it
//   - Field validation and deep copies for undo history
//
// Core Types:
//
// Engine owns a live Field and exposes queries and mutators. Every mutator
// validates before touching the field, so a failed move (ErrInvalidMove or
// ErrMoveFromEmpty) leaves the field exactly as it was.
//
// Usage:
//
//	eng := engine.Deal(seed)
//
//	// Move the top card of the first column onto the third
//	if err := eng.MoveGroup(0, 2, 1); errors.Is(err, engine.ErrInvalidMove) {
//		log.Printf("rejected: %v", err)
//	}
//
//	// Let safe cards go home, a few at a time
//	for eng.SweepStep(3) {
//	}
//
// Game Rules:
//
// A card may be placed on a column whose top card is one rank higher and of
// the opposite color, or on an empty column. Piles are built up by suit from
// the ace. Groups of ordered cards move together when there are enough free
// reserve slots and empty columns to park them. The game is won when every
// playing column is empty.
package engine
