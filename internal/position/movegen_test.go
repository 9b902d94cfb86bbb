package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrel-engine/kestrel/internal/bitboard"
)

func perft(p *Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	legal := p.GenLegalMoves()
	if depth == 1 {
		return uint64(legal.N)
	}
	var nodes uint64
	for _, m := range legal.Slice() {
		child := Make(p, m)
		nodes += perft(&child, depth-1)
	}
	return nodes
}

func TestPerftStartPosition(t *testing.T) {
	var p Position
	require.NoError(t, p.Set(startFEN))

	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, perft(&p, c.depth), "depth %d", c.depth)
	}
}

func TestPerftStartPositionDepth5(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	var p Position
	require.NoError(t, p.Set(startFEN))
	assert.Equal(t, uint64(4865609), perft(&p, 5))
}

func TestPerftKiwipete(t *testing.T) {
	var p Position
	kiwipete := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	require.NoError(t, p.Set(kiwipete))
	assert.Equal(t, uint64(4085603), perft(&p, 4))
}

func TestGenLegalMovesInCheckOnlyEscapes(t *testing.T) {
	var p Position
	// White king in check from black rook down the e-file; it may step
	// off the file but not remain on it, since the rook still rakes it.
	require.NoError(t, p.Set("4r3/8/8/8/8/8/8/4K3 w - - 0 1"))
	legal := p.GenLegalMoves()
	dests := map[string]bool{}
	for _, m := range legal.Slice() {
		require.Equal(t, "e1", m.From().String())
		dests[m.To().String()] = true
	}
	assert.True(t, dests["d1"])
	assert.True(t, dests["f1"])
	assert.True(t, dests["d2"])
	assert.True(t, dests["f2"])
	assert.False(t, dests["e2"], "e2 stays on the checking rook's file")
}

func TestGenLegalMovesPinnedPieceCannotMoveOffLine(t *testing.T) {
	var p Position
	require.NoError(t, p.Set("4k3/8/8/4n3/8/8/8/4RK2 b - - 0 1"))
	legal := p.GenLegalMoves()
	e5, _ := bitboard.ParseSquare("e5")
	for _, m := range legal.Slice() {
		if m.From() == e5 {
			t.Fatalf("pinned knight should have no legal moves, got %s", m)
		}
	}
}

func TestEnPassantCaptureGenerated(t *testing.T) {
	var p Position
	require.NoError(t, p.Set("rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3"))
	legal := p.GenLegalMoves()
	found := false
	for _, m := range legal.Slice() {
		if m.String() == "e5f6" {
			found = true
		}
	}
	assert.True(t, found, "expected en-passant capture e5f6 to be generated")
}

func TestCastlingMoveGenerated(t *testing.T) {
	var p Position
	require.NoError(t, p.Set("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"))
	legal := p.GenLegalMoves()
	kingside, queenside := false, false
	for _, m := range legal.Slice() {
		if m.From().String() == "e1" && m.To().String() == "h1" {
			kingside = true
		}
		if m.From().String() == "e1" && m.To().String() == "a1" {
			queenside = true
		}
	}
	assert.True(t, kingside)
	assert.True(t, queenside)
}

func TestSEEUndefendedCaptureIsPositive(t *testing.T) {
	var p Position
	// White pawn e4 can capture black knight d5, undefended: clearly winning.
	require.NoError(t, p.Set("4k3/8/8/3n4/4P3/8/8/4K3 w - - 0 1"))
	legal := p.GenLegalMoves()
	for _, m := range legal.Slice() {
		if m.String() == "e4d5" {
			assert.Greater(t, p.SEE(m), 0)
		}
	}
}
