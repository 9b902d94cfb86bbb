package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrel-engine/kestrel/internal/position"
	"github.com/kestrel-engine/kestrel/internal/zobrist"
)

func TestCoordinatorRunFindsMateInOneWithMultipleThreads(t *testing.T) {
	var root position.Position
	require.NoError(t, root.Set("4k3/8/4K3/8/8/8/8/7R w - - 0 1"))

	coord := NewCoordinator(4, 1)
	history := []zobrist.Key{root.Key}

	move := coord.Run(context.Background(), root, history, Limits{Depth: 4}, nil)
	assert.Equal(t, "h1h8", move.String())
}

func TestCoordinatorRunReportsOnlyMainWorkerInfo(t *testing.T) {
	var root position.Position
	require.NoError(t, root.Set("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"))

	coord := NewCoordinator(2, 1)
	history := []zobrist.Key{root.Key}

	var reports int
	coord.Run(context.Background(), root, history, Limits{Depth: 2}, func(Info) {
		reports++
	})
	assert.Equal(t, 2, reports)
}

func TestCoordinatorRunHonorsDepthLimitAcrossThreadCounts(t *testing.T) {
	var root position.Position
	require.NoError(t, root.Set("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"))

	for _, threads := range []int{1, 2, 4} {
		coord := NewCoordinator(threads, 1)
		history := []zobrist.Key{root.Key}
		move := coord.Run(context.Background(), root, history, Limits{Depth: 2}, nil)
		assert.NotEqual(t, position.Move(0), move, "threads=%d", threads)
	}
}
