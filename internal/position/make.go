package position

import (
	"github.com/kestrel-engine/kestrel/internal/bitboard"
	"github.com/kestrel-engine/kestrel/internal/zobrist"
)

// Make returns the child position produced by applying m to parent. The
// caller must ensure m is at least pseudo-legal. Make implements copy-make:
// it copies parent by value and mutates the copy, leaving parent untouched.
func Make(parent *Position, m Move) Position {
	child := *parent
	child.makeInPlace(m)
	child.finish()
	return child
}

// Toggle returns the "null move" child: side to move flips, en-passant is
// cleared, nothing else changes. Used by search's null-move pruning.
func Toggle(parent *Position) Position {
	child := *parent
	child.Key ^= zobrist.EnPassantKey[child.EPSquare]
	child.EPSquare = NoSquare
	child.Key ^= zobrist.EnPassantKey[NoSquare]
	child.Turn = child.Turn.Opposite()
	child.Key ^= zobrist.TurnKey
	child.finish()
	return child
}

func (p *Position) makeInPlace(m Move) {
	us, them := p.Turn, p.Turn.Opposite()
	from, to := m.From(), m.To()
	moved := p.PieceOn[from]

	// Clear the old en-passant key; a new one (or the "none" key) is XORed
	// back in once the new EPSquare is known.
	p.Key ^= zobrist.EnPassantKey[p.EPSquare]

	p.Rule50++

	isEnPassant := moved == bitboard.Pawn && p.EPSquare != NoSquare && to == p.EPSquare
	isCastling := moved == bitboard.King && p.ByColor[us].Test(to)

	switch {
	case isCastling:
		p.makeCastling(us, from, to)

	case isEnPassant:
		var capSq bitboard.Square
		if us == bitboard.White {
			capSq = to - 8
		} else {
			capSq = to + 8
		}
		p.remove(them, bitboard.Pawn, capSq)
		p.remove(us, bitboard.Pawn, from)
		p.put(us, bitboard.Pawn, to)
		p.Rule50 = 0

	default:
		// Capture removal, with color-on-target lookup: the only
		// self-capture Kestrel ever generates is castling, already
		// handled above, so any occupant here belongs to "them".
		if captured := p.PieceOn[to]; captured != bitboard.NoPiece {
			p.remove(them, captured, to)
			p.revokeCastlingAt(to)
			p.Rule50 = 0
		}

		p.remove(us, moved, from)
		if m.IsPromotion() {
			p.put(us, m.Promo(), to)
		} else {
			p.put(us, moved, to)
		}
	}

	p.EPSquare = NoSquare
	if moved == bitboard.Pawn {
		p.Rule50 = 0
		if diff := int(to) - int(from); diff == 16 || diff == -16 {
			candidate := bitboard.Square((int(from) + int(to)) / 2)
			// Only record an en-passant square if an enemy pawn could
			// actually capture there; otherwise there is nothing for a
			// later "to == EPSquare" test to ever match, and recording it
			// anyway would only churn the Zobrist key and TT/repetition
			// comparisons for no benefit.
			if bitboard.PawnAttacks(us, candidate)&p.ByPiece[bitboard.Pawn]&p.ByColor[them] != 0 {
				p.EPSquare = candidate
			}
		}
	}
	p.Key ^= zobrist.EnPassantKey[p.EPSquare]

	switch moved {
	case bitboard.Rook:
		p.revokeCastlingAt(from)
	case bitboard.King:
		p.revokeCastlingColor(us)
	}

	if us == bitboard.Black {
		p.FullMove++
	}
	p.Turn = them
	p.Key ^= zobrist.TurnKey
}

// makeCastling performs the "king captures own rook" encoded castling move:
// rookSq (the move's `to`) names the rook; the final king/rook squares are
// derived from the originating rank and whether the rook sits kingside or
// queenside of the king.
func (p *Position) makeCastling(us bitboard.Color, kingFrom, rookSq bitboard.Square) {
	rank := kingFrom.Rank()
	kingside := rookSq.File() > kingFrom.File()

	newKingFile, newRookFile := 2, 3
	if kingside {
		newKingFile, newRookFile = 6, 5
	}
	newKingSq := bitboard.FromFileRank(newKingFile, rank)
	newRookSq := bitboard.FromFileRank(newRookFile, rank)

	// Revoke both of our castling rights before the rook's square moves
	// out from under CastleRooks — afterward ByColor[us] no longer marks
	// the vacated rook square, so a rights bit cleared later would miss it.
	p.revokeCastlingColor(us)

	p.remove(us, bitboard.King, kingFrom)
	p.remove(us, bitboard.Rook, rookSq)
	// Placing king then rook (rather than rook then king) avoids a
	// transient double-occupancy of the rook's destination in the rare
	// case newRookSq == kingFrom or similar overlap in small Chess960 boards.
	p.put(us, bitboard.King, newKingSq)
	p.put(us, bitboard.Rook, newRookSq)
}

// revokeCastlingAt clears a single rook square's castling right, if set.
func (p *Position) revokeCastlingAt(sq bitboard.Square) {
	if p.CastleRooks.Test(sq) {
		p.Key ^= zobrist.CastlingKey[sq]
		p.CastleRooks = p.CastleRooks.Clear(sq)
	}
}

// revokeCastlingColor clears every remaining castling right for color c.
func (p *Position) revokeCastlingColor(c bitboard.Color) {
	for rooks := p.CastleRooks & p.ByColor[c]; rooks != 0; {
		p.revokeCastlingAt(rooks.PopLSB())
	}
}
