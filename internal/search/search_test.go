package search

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrel-engine/kestrel/internal/bitboard"
	"github.com/kestrel-engine/kestrel/internal/position"
	"github.com/kestrel-engine/kestrel/internal/tt"
	"github.com/kestrel-engine/kestrel/internal/zobrist"
)

func TestMain(m *testing.M) {
	bitboard.Init()
	zobrist.Init()
	m.Run()
}

func TestWorkerSearchFindsMateInOne(t *testing.T) {
	var root position.Position
	require.NoError(t, root.Set("4k3/8/4K3/8/8/8/8/7R w - - 0 1"))

	var stop atomic.Bool
	w := NewWorker(0, tt.New(1), &stop)
	history := []zobrist.Key{root.Key}

	move, score, pv := w.Search(root, history, 4, nil)

	assert.Equal(t, "h1h8", move.String())
	assert.True(t, score >= Mate-MaxPly)
	require.NotEmpty(t, pv)
	assert.Equal(t, move, pv[0])
}

func TestWorkerSearchReportsEachIteration(t *testing.T) {
	var root position.Position
	require.NoError(t, root.Set("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"))

	var stop atomic.Bool
	w := NewWorker(0, tt.New(1), &stop)
	history := []zobrist.Key{root.Key}

	var depths []int
	w.Search(root, history, 3, func(it IterInfo) {
		depths = append(depths, it.Depth)
	})

	require.Len(t, depths, 3)
	assert.Equal(t, []int{1, 2, 3}, depths)
}

func TestWorkerSearchStopsEarlyWhenFlagged(t *testing.T) {
	var root position.Position
	require.NoError(t, root.Set("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"))

	var stop atomic.Bool
	stop.Store(true)
	w := NewWorker(0, tt.New(1), &stop)
	history := []zobrist.Key{root.Key}

	move, _, _ := w.Search(root, history, 10, nil)
	// Stopped before completing even depth 1, so no line was ever adopted.
	assert.Equal(t, position.Move(0), move)
}
