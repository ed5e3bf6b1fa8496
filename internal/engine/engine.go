// Package engine holds the move-selection and perft harness driven by the
// UCI front-end. Move selection is a uniform random pick over the legal
// moves; anything smarter is out of scope for this engine.
package engine

import (
	"math/rand/v2"
	"sync/atomic"

	"github.com/hailam/mcc/internal/board"
)

// Engine selects moves and runs perft counts over a position.
type Engine struct {
	rng  *rand.Rand
	stop atomic.Bool
}

// New creates an engine with a randomly seeded move picker.
func New() *Engine {
	return &Engine{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// NewSeeded creates an engine with a deterministic move picker, for tests.
func NewSeeded(seed uint64) *Engine {
	return &Engine{
		rng: rand.New(rand.NewPCG(seed, seed)),
	}
}

// BestMove returns a uniformly random legal move, or NoMove if the side to
// move has none (checkmate or stalemate).
func (e *Engine) BestMove(pos *board.Position) board.Move {
	moves := pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		return board.NoMove
	}
	return moves.Get(e.rng.IntN(moves.Len()))
}

// Stop requests that a running perft abandon its count. The flag is polled
// at node boundaries; it never interrupts a move application.
func (e *Engine) Stop() {
	e.stop.Store(true)
}

// Perft counts the leaf nodes of the legal move tree at the given depth.
// Returns the count so far if stopped.
func (e *Engine) Perft(pos *board.Position, depth int) uint64 {
	e.stop.Store(false)
	return e.perft(pos, depth)
}

func (e *Engine) perft(pos *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := pos.GenerateLegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}

	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		if e.stop.Load() {
			break
		}
		m := moves.Get(i)
		undo := pos.MakeMove(m)
		nodes += e.perft(pos, depth-1)
		pos.UnmakeMove(m, undo)
	}
	return nodes
}

// DivideEntry is one root move with its subtree node count.
type DivideEntry struct {
	Move  board.Move
	Nodes uint64
}

// Divide runs perft split by root move, the standard tool for pinning down
// a generation bug to one branch. Each root move is applied to a copy.
func (e *Engine) Divide(pos *board.Position, depth int) []DivideEntry {
	moves := pos.GenerateLegalMoves()
	entries := make([]DivideEntry, 0, moves.Len())

	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		child := pos.Copy()
		child.MakeMove(m)
		entries = append(entries, DivideEntry{
			Move:  m,
			Nodes: e.perft(child, depth-1),
		})
	}

	return entries
}
