package uci

import (
	"github.com/kestrel-engine/kestrel/internal/bitboard"
	"github.com/kestrel-engine/kestrel/internal/position"
)

// isCastling reports whether m, played from pos, is a castling move encoded
// in native "king captures own rook" form.
func isCastling(pos *position.Position, m position.Move) bool {
	from := m.From()
	return pos.PieceAt(from) == bitboard.King && pos.ByColor[pos.Turn].Test(m.To())
}

// FormatMove renders m, played from pos, in the protocol notation §6
// specifies: plain from-square+to-square(+promotion) for everything but
// castling, where the two conventions disagree. chess960 off renders
// castling as the king's two-square hop (e1g1); on renders the native
// king-takes-rook form already stored in m (e1h1).
func FormatMove(pos *position.Position, m position.Move, chess960 bool) string {
	if chess960 || !isCastling(pos, m) {
		return m.String()
	}
	from, rookSq := m.From(), m.To()
	rank := from.Rank()
	kingside := rookSq.File() > from.File()
	kingFile := 2
	if kingside {
		kingFile = 6
	}
	to := bitboard.FromFileRank(kingFile, rank)
	return from.String() + to.String()
}

// ParseMove resolves a UCI move token (e2e4, e7e8q, or either castling
// convention) against pos's legal moves.
func ParseMove(pos *position.Position, tok string) (position.Move, bool) {
	if len(tok) < 4 {
		return 0, false
	}
	from, ok := bitboard.ParseSquare(tok[0:2])
	if !ok {
		return 0, false
	}
	to, ok := bitboard.ParseSquare(tok[2:4])
	if !ok {
		return 0, false
	}
	var promo bitboard.PieceKind = bitboard.NoPiece
	if len(tok) == 5 {
		switch tok[4] {
		case 'n':
			promo = bitboard.Knight
		case 'b':
			promo = bitboard.Bishop
		case 'r':
			promo = bitboard.Rook
		case 'q':
			promo = bitboard.Queen
		default:
			return 0, false
		}
	}

	legal := pos.GenLegalMoves()
	for _, m := range legal.Slice() {
		if m.From() != from || m.Promo() != promo {
			continue
		}
		if m.To() == to {
			return m, true
		}
		// Standard-notation castling: to is the king's landing square,
		// not the rook's, so match it against the converted form too.
		if isCastling(pos, m) && promo == bitboard.NoPiece {
			rank := from.Rank()
			kingside := m.To().File() > from.File()
			kingFile := 2
			if kingside {
				kingFile = 6
			}
			if bitboard.FromFileRank(kingFile, rank) == to {
				return m, true
			}
		}
	}
	return 0, false
}
