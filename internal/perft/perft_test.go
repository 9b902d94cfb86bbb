package perft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrel-engine/kestrel/internal/bitboard"
	"github.com/kestrel-engine/kestrel/internal/position"
	"github.com/kestrel-engine/kestrel/internal/zobrist"
)

func TestMain(m *testing.M) {
	bitboard.Init()
	zobrist.Init()
	m.Run()
}

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func TestPerftStartPosition(t *testing.T) {
	var p position.Position
	require.NoError(t, p.Set(startFEN))

	assert.Equal(t, uint64(20), Perft(&p, 1))
	assert.Equal(t, uint64(400), Perft(&p, 2))
	assert.Equal(t, uint64(8902), Perft(&p, 3))
}

func TestVerboseStartPositionDepth3(t *testing.T) {
	var p position.Position
	require.NoError(t, p.Set(startFEN))

	var r Result
	nodes, _, _ := Verbose(&p, 3, &r, true)

	assert.Equal(t, uint64(8902), nodes)
	assert.Equal(t, uint64(34), r.Captures)
	assert.Equal(t, uint64(0), r.EPCaptures)
	assert.Equal(t, uint64(0), r.Castles)
	assert.Equal(t, uint64(12), r.Checks)
	assert.Equal(t, uint64(0), r.DoubleChecks)
}

func TestDivideSumsToPerft(t *testing.T) {
	var p position.Position
	require.NoError(t, p.Set(startFEN))

	moves, counts := Divide(&p, 3)
	require.Len(t, moves, 20)

	var sum uint64
	for _, c := range counts {
		sum += c
	}
	assert.Equal(t, Perft(&p, 3), sum)
}
