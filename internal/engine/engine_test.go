package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrel-engine/kestrel/internal/bitboard"
	"github.com/kestrel-engine/kestrel/internal/position"
	"github.com/kestrel-engine/kestrel/internal/uci"
	"github.com/kestrel-engine/kestrel/internal/zobrist"
)

func TestMain(m *testing.M) {
	bitboard.Init()
	zobrist.Init()
	m.Run()
}

func TestSetOptionHashRoundsDownToPowerOfTwo(t *testing.T) {
	e := New()
	require.NoError(t, e.SetOption("Hash", "100"))
	assert.Equal(t, 64, e.Options().HashMB)
}

func TestSetOptionChess960(t *testing.T) {
	e := New()
	require.NoError(t, e.SetOption("UCI_Chess960", "true"))
	assert.True(t, e.Chess960())
}

func TestSetOptionRejectsUnknownName(t *testing.T) {
	e := New()
	assert.Error(t, e.SetOption("Bogus", "1"))
}

func TestGoFindsMateInOne(t *testing.T) {
	e := New()
	var root position.Position
	require.NoError(t, root.Set("4k3/8/4K3/8/8/8/8/7R w - - 0 1"))
	e.SetPosition(root, []uint64{uint64(root.Key)})

	best := e.Go(uci.Limits{Depth: 4}, nil)
	assert.Equal(t, "h1h8", best.String())
}

func TestToSearchLimitsUsesClockWhenNoMoveTime(t *testing.T) {
	opts := DefaultOptions()
	l := uci.Limits{WhiteTime: 10 * time.Second, MovesToGo: 10}
	sl := toSearchLimits(l, opts, bitboard.White)
	assert.Greater(t, sl.MoveTime, time.Duration(0))
}
