package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrel-engine/kestrel/internal/bitboard"
	"github.com/kestrel-engine/kestrel/internal/position"
)

func TestMain(m *testing.M) {
	bitboard.Init()
	m.Run()
}

func TestSortPutsTTMoveFirst(t *testing.T) {
	var p position.Position
	require.NoError(t, p.Set("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"))
	legal := p.GenLegalMoves()
	moves := append([]position.Move(nil), legal.Slice()...)
	require.NotEmpty(t, moves)

	ttMove := moves[len(moves)-1]
	var killers Killers
	var hist History
	Sort(&p, moves, ttMove, &killers, &hist, 0)

	assert.Equal(t, ttMove, moves[0])
}

func TestSortPrefersWinningCaptureOverQuiet(t *testing.T) {
	var p position.Position
	// Black knight hangs on d5; white can take it with a pawn or move quietly.
	require.NoError(t, p.Set("rnbqkb1r/pppp1ppp/8/3n4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 1"))
	legal := p.GenLegalMoves()
	moves := append([]position.Move(nil), legal.Slice()...)

	from, _ := bitboard.ParseSquare("e4")
	to, _ := bitboard.ParseSquare("d5")
	capture := position.NewMove(from, to)
	require.Contains(t, moves, capture)

	var killers Killers
	var hist History
	Sort(&p, moves, 0, &killers, &hist, 0)

	assert.Equal(t, capture, moves[0])
}

func TestSortPutsKillerAboveOtherQuietMoves(t *testing.T) {
	var p position.Position
	require.NoError(t, p.Set("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"))
	legal := p.GenLegalMoves()
	moves := append([]position.Move(nil), legal.Slice()...)

	from, _ := bitboard.ParseSquare("g1")
	to, _ := bitboard.ParseSquare("f3")
	killerMove := position.NewMove(from, to)
	require.Contains(t, moves, killerMove)

	var killers Killers
	killers.Add(0, killerMove)
	var hist History

	Sort(&p, moves, 0, &killers, &hist, 0)
	assert.Equal(t, killerMove, moves[0])
}

func TestHistoryBonusIncreasesScore(t *testing.T) {
	var hist History
	from, to := bitboard.Square(1), bitboard.Square(2)
	before := hist.get(bitboard.White, from, to)
	hist.Bonus(bitboard.White, from, to, 4)
	assert.Greater(t, hist.get(bitboard.White, from, to), before)
}

func TestHistoryPenalizeDecreasesScore(t *testing.T) {
	var hist History
	from, to := bitboard.Square(1), bitboard.Square(2)
	hist.Bonus(bitboard.White, from, to, 4)
	afterBonus := hist.get(bitboard.White, from, to)
	hist.Penalize(bitboard.White, from, to, 4)
	assert.Less(t, hist.get(bitboard.White, from, to), afterBonus)
}

func TestKillersAddAvoidsDuplicateAtSameSlot(t *testing.T) {
	var killers Killers
	m := position.NewMove(bitboard.Square(8), bitboard.Square(16))
	killers.Add(0, m)
	killers.Add(0, m)
	k1, k2 := killers.at(0)
	assert.Equal(t, m, k1)
	assert.Equal(t, position.Move(0), k2)
}
