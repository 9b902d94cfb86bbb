// Package position implements the board representation, legal move
// generation, incremental copy-make mutation, FEN I/O, and Static Exchange
// Evaluation — components P and G of the engine core.
package position

import (
	"strings"

	"github.com/kestrel-engine/kestrel/internal/bitboard"
)

// Move is a 16-bit encoded chess move: to:6 | from:6 | promo:4. The promo
// field holds a bitboard.PieceKind (Knight/Bishop/Rook/Queen) or NoPiece (6)
// when the move is not a promotion.
type Move uint16

// NewMove builds a non-promotion move.
func NewMove(from, to bitboard.Square) Move {
	return Move(to) | Move(from)<<6 | Move(bitboard.NoPiece)<<12
}

// NewPromotion builds a promotion move to the given piece kind.
func NewPromotion(from, to bitboard.Square, promo bitboard.PieceKind) Move {
	return Move(to) | Move(from)<<6 | Move(promo)<<12
}

func (m Move) To() bitboard.Square   { return bitboard.Square(m & 0x3F) }
func (m Move) From() bitboard.Square { return bitboard.Square((m >> 6) & 0x3F) }
func (m Move) Promo() bitboard.PieceKind {
	return bitboard.PieceKind((m >> 12) & 0xF)
}
func (m Move) IsPromotion() bool { return m.Promo() != bitboard.NoPiece }

// String renders the move in its native "king captures own rook" castling
// notation (e.g. e1h1), the form Chess960/Shredder UCI uses. Callers that
// need standard UCI's two-square-hop castling notation (e1g1) when
// UCI_Chess960 is off should use uci.FormatMove instead.
func (m Move) String() string {
	var b strings.Builder
	b.WriteString(m.From().String())
	b.WriteString(m.To().String())
	if m.IsPromotion() {
		b.WriteByte("nbrq"[m.Promo()])
	}
	return b.String()
}

// MoveList stores generated moves in a preallocated array to avoid
// allocation during search; the maximum legal move count in any reachable
// chess position is 218.
type MoveList struct {
	Moves [218]Move
	N     int
}

// Push appends a move to the list.
func (l *MoveList) Push(m Move) {
	l.Moves[l.N] = m
	l.N++
}

// Slice returns the populated prefix of Moves.
func (l *MoveList) Slice() []Move { return l.Moves[:l.N] }
