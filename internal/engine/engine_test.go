package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/mcc/internal/board"
)

func TestBestMoveIsLegal(t *testing.T) {
	eng := NewSeeded(1)

	fens := []string{
		board.StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}

	for _, fen := range fens {
		pos, err := board.ParseFEN(fen)
		require.NoError(t, err)

		// The pick is random; sample repeatedly.
		for i := 0; i < 50; i++ {
			m := eng.BestMove(pos)
			assert.True(t, pos.GenerateLegalMoves().Contains(m),
				"BestMove returned %s, not legal in %q", m, fen)
		}
	}
}

func TestBestMoveNoLegalMoves(t *testing.T) {
	eng := NewSeeded(1)

	mate, err := board.ParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.NoError(t, err)
	assert.Equal(t, board.NoMove, eng.BestMove(mate), "checkmated side has no move")

	stale, err := board.ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)
	assert.Equal(t, board.NoMove, eng.BestMove(stale), "stalemated side has no move")
}

func TestPerftCounts(t *testing.T) {
	eng := New()
	pos := board.NewPosition()

	tests := []struct {
		depth int
		want  uint64
	}{
		{0, 1},
		{1, 20},
		{2, 400},
		{3, 8902},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, eng.Perft(pos.Copy(), tc.depth), "perft(%d)", tc.depth)
	}
}

func TestPerftLeavesPositionIntact(t *testing.T) {
	eng := New()
	pos := board.NewPosition()
	before := pos.ToFEN()

	eng.Perft(pos, 3)
	assert.Equal(t, before, pos.ToFEN(), "perft must unmake every move")
}

func TestDivideSumsToPerft(t *testing.T) {
	eng := New()
	pos := board.NewPosition()

	entries := eng.Divide(pos, 3)
	require.Len(t, entries, 20)

	var total uint64
	for _, e := range entries {
		total += e.Nodes
	}
	assert.Equal(t, uint64(8902), total)
}

func TestStopAbandonsPerft(t *testing.T) {
	eng := New()
	eng.Stop()

	// A stopped engine still terminates and reports a partial count; the
	// next Perft call clears the flag.
	pos := board.NewPosition()
	partial := eng.perft(pos, 4)
	assert.Less(t, partial, uint64(197281))

	assert.Equal(t, uint64(400), eng.Perft(pos, 2))
}
