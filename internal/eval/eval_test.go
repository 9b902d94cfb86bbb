package eval

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

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func TestEvaluateStartPositionIsJustTempo(t *testing.T) {
	var p position.Position
	require.NoError(t, p.Set(startFEN))
	// Every positional term is mirror-symmetric at the start position, so
	// only the side-to-move tempo bonus should show through.
	assert.Equal(t, Score(tempoBonus), Evaluate(&p))
}

func TestEvaluateRewardsMaterialAdvantage(t *testing.T) {
	var p position.Position
	// White is up a queen.
	require.NoError(t, p.Set("rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"))
	assert.Greater(t, int(Evaluate(&p)), 500)
}

func TestEvaluateBishopPairBonus(t *testing.T) {
	var withPair, withoutPair position.Position
	require.NoError(t, withPair.Set("4k3/8/8/8/8/8/8/2B1KB2 w - - 0 1"))
	require.NoError(t, withoutPair.Set("4k3/8/8/8/8/8/8/2B1KN2 w - - 0 1"))
	assert.Greater(t, int(Evaluate(&withPair)), int(Evaluate(&withoutPair)))
}

func TestEvaluateRooksPreferOpenFiles(t *testing.T) {
	var openFile, blockedFile position.Position
	require.NoError(t, openFile.Set("4k3/8/8/8/8/8/1P6/R3K3 w - - 0 1"))
	require.NoError(t, blockedFile.Set("4k3/8/8/8/8/8/P7/R3K3 w - - 0 1"))
	assert.Greater(t, int(Evaluate(&openFile)), int(Evaluate(&blockedFile)))
}
