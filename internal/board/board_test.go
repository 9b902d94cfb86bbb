package board

import (
	"strings"
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

func TestFormatStartPosition(t *testing.T) {
	var p position.Position
	require.NoError(t, p.Set("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"))

	out := Format(&p)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 9)

	assert.True(t, strings.HasPrefix(lines[0], "8  "))
	assert.Contains(t, lines[0], "♜") // black rook on a8
	assert.True(t, strings.HasPrefix(lines[7], "1  "))
	assert.Contains(t, lines[7], "♖") // white rook on a1
	assert.Equal(t, "   a  b  c  d  e  f  g  h", lines[8])
}

func TestFormatEmptySquareIsDot(t *testing.T) {
	var p position.Position
	require.NoError(t, p.Set("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"))
	out := Format(&p)
	assert.Contains(t, out, ".")
}
