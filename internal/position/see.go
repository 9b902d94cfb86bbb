package position

import "github.com/kestrel-engine/kestrel/internal/bitboard"

// SEE (Static Exchange Evaluation) returns the net material gain, in
// PieceValue units, of playing move m and letting both sides trade on its
// destination square with the least valuable attacker each time. Used by
// move ordering and by search's capture-pruning to discard captures that
// lose material even after every recapture.
func (p *Position) SEE(m Move) int {
	to := m.To()
	us := p.Turn

	var gain [32]int
	depth := 0
	gain[0] = pieceSEEValue(p.PieceOn[to])
	if m.IsPromotion() {
		gain[0] += pieceSEEValue(m.Promo()) - pieceSEEValue(bitboard.Pawn)
	}

	occ := p.Occupied() &^ bitboard.Bit(m.From())
	if p.PieceOn[m.From()] == bitboard.Pawn && to == p.EPSquare {
		// En passant: the captured pawn stands behind to, not on it.
		gain[0] = pieceSEEValue(bitboard.Pawn)
		captured := to - 8
		if us == bitboard.Black {
			captured = to + 8
		}
		occ &^= bitboard.Bit(captured)
	}
	attackerValue := pieceSEEValue(p.PieceOn[m.From()])
	if m.IsPromotion() {
		attackerValue = pieceSEEValue(m.Promo())
	}

	side := us.Opposite()
	for {
		depth++
		gain[depth] = attackerValue - gain[depth-1]
		if maxInt(-gain[depth-1], gain[depth]) < 0 {
			break
		}

		attackers := p.AttackersTo(to, occ) & occ & p.ByColor[side]
		sq, kind, ok := leastValuableAttacker(p, attackers)
		if !ok {
			break
		}
		occ &^= bitboard.Bit(sq)
		attackerValue = pieceSEEValue(kind)
		side = side.Opposite()
	}

	for depth--; depth > 0; depth-- {
		gain[depth-1] = -maxInt(-gain[depth-1], gain[depth])
	}
	return gain[0]
}

// leastValuableAttacker picks the cheapest piece among attackers, the
// standard SEE heuristic: a side always recaptures with its least valuable
// piece first, since that minimizes what it risks losing in turn.
func leastValuableAttacker(p *Position, attackers bitboard.Bitboard) (bitboard.Square, bitboard.PieceKind, bool) {
	order := [6]bitboard.PieceKind{
		bitboard.Pawn, bitboard.Knight, bitboard.Bishop,
		bitboard.Rook, bitboard.Queen, bitboard.King,
	}
	for _, k := range order {
		if bb := attackers & p.ByPiece[k]; bb != 0 {
			return bb.LSB(), k, true
		}
	}
	return 0, bitboard.NoPiece, false
}

func pieceSEEValue(k bitboard.PieceKind) int {
	switch k {
	case bitboard.NoPiece:
		return 0
	case bitboard.King:
		return 20000
	default:
		return PieceValue[k]
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
