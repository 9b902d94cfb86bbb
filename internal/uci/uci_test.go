package uci

import (
	"testing"
	"time"

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

func TestParsePositionStartposWithMoves(t *testing.T) {
	root, history, err := parsePosition([]string{"startpos", "moves", "e2e4", "e7e5"})
	require.NoError(t, err)
	assert.Equal(t, bitboard.White, root.Turn)
	assert.Len(t, history, 3)
}

func TestParsePositionFEN(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	root, history, err := parsePosition([]string{"fen", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R", "w", "KQkq", "-", "0", "1"})
	require.NoError(t, err)
	assert.Equal(t, fen, root.Get())
	assert.Len(t, history, 1)
}

func TestParsePositionRejectsIllegalMove(t *testing.T) {
	_, _, err := parsePosition([]string{"startpos", "moves", "e2e5"})
	assert.Error(t, err)
}

func TestParseGoSubcommands(t *testing.T) {
	l := parseGo([]string{"wtime", "60000", "btime", "55000", "winc", "1000", "movestogo", "20"})
	assert.Equal(t, 60000*time.Millisecond, l.WhiteTime)
	assert.Equal(t, 20, l.MovesToGo)
}

func TestParseSetOptionWithSpacesInName(t *testing.T) {
	name, value := parseSetOption([]string{"name", "Time", "Buffer", "value", "120"})
	assert.Equal(t, "Time Buffer", name)
	assert.Equal(t, "120", value)
}

func TestFormatMoveStandardCastling(t *testing.T) {
	var p position.Position
	require.NoError(t, p.Set("rnbqk2r/pppp1ppp/5n2/4p3/4P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4"))
	m, ok := ParseMove(&p, "e1g1")
	require.True(t, ok)
	assert.Equal(t, "e1g1", FormatMove(&p, m, false))
	assert.Equal(t, "e1h1", FormatMove(&p, m, true))
}

func TestFormatBestMoveNoMove(t *testing.T) {
	var p position.Position
	require.NoError(t, p.Set(startFEN))
	assert.Equal(t, "bestmove 0000", FormatBestMove(&p, 0, false))
}
