// Package board renders a Position as a human-readable unicode board,
// used by debug tooling and tests; it carries no engine logic of its own.
package board

import (
	"strings"

	"github.com/kestrel-engine/kestrel/internal/bitboard"
	"github.com/kestrel-engine/kestrel/internal/position"
)

// pieceSymbols indexes [color][kind], following bitboard.PieceKind's
// Knight-Bishop-Rook-Queen-King-Pawn order.
var pieceSymbols = [2][6]rune{
	bitboard.White: {'♘', '♗', '♖', '♕', '♔', '♙'},
	bitboard.Black: {'♞', '♝', '♜', '♛', '♚', '♟'},
}

// Format renders pos as an 8x8 unicode board, rank 8 at the top, with file
// and rank labels, mirroring the teacher's FormatPosition layout.
func Format(pos *position.Position) string {
	var b strings.Builder

	for rank := 7; rank >= 0; rank-- {
		b.WriteByte(byte('1' + rank))
		b.WriteString("  ")
		for file := 0; file < 8; file++ {
			sq := bitboard.FromFileRank(file, rank)
			b.WriteRune(symbolAt(pos, sq))
			b.WriteString("  ")
		}
		b.WriteByte('\n')
	}
	b.WriteString("   a  b  c  d  e  f  g  h\n")
	return b.String()
}

func symbolAt(pos *position.Position, sq bitboard.Square) rune {
	k := pos.PieceAt(sq)
	if k == bitboard.NoPiece {
		return '.'
	}
	return pieceSymbols[pos.ColorAt(sq)][k]
}
