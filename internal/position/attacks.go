package position

import "github.com/kestrel-engine/kestrel/internal/bitboard"

// AttackersTo returns every piece, of either color, attacking square sq
// given occupancy occ. Used by SEE and by finish's check derivation.
func (p *Position) AttackersTo(sq bitboard.Square, occ bitboard.Bitboard) bitboard.Bitboard {
	var a bitboard.Bitboard
	a |= bitboard.PawnAttacks(bitboard.Black, sq) & p.ByPiece[bitboard.Pawn] & p.ByColor[bitboard.White]
	a |= bitboard.PawnAttacks(bitboard.White, sq) & p.ByPiece[bitboard.Pawn] & p.ByColor[bitboard.Black]
	a |= bitboard.KnightAttacks(sq) & p.ByPiece[bitboard.Knight]
	a |= bitboard.KingAttacks(sq) & p.ByPiece[bitboard.King]
	bq := p.ByPiece[bitboard.Bishop] | p.ByPiece[bitboard.Queen]
	a |= bitboard.BishopAttacks(sq, occ) & bq
	rq := p.ByPiece[bitboard.Rook] | p.ByPiece[bitboard.Queen]
	a |= bitboard.RookAttacks(sq, occ) & rq
	return a
}

// CalcPins returns the bitboard of friendly pieces pinned to our king: for
// every enemy slider that would attack our king through exactly one
// blocker, that blocker — if friendly — is included.
func (p *Position) CalcPins() bitboard.Bitboard {
	us, them := p.Turn, p.Turn.Opposite()
	kingSq := (p.ByPiece[bitboard.King] & p.ByColor[us]).LSB()

	enemyBQ := (p.ByPiece[bitboard.Bishop] | p.ByPiece[bitboard.Queen]) & p.ByColor[them]
	enemyRQ := (p.ByPiece[bitboard.Rook] | p.ByPiece[bitboard.Queen]) & p.ByColor[them]

	candidates := bitboard.BishopAttacks(kingSq, bitboard.Empty)&enemyBQ |
		bitboard.RookAttacks(kingSq, bitboard.Empty)&enemyRQ

	var pinned bitboard.Bitboard
	occ := p.Occupied()
	for candidates != 0 {
		s := candidates.PopLSB()
		between := bitboard.Segment(kingSq, s) &^ bitboard.Bit(s)
		blockers := between & occ
		if blockers.Count() == 1 && blockers&p.ByColor[us] != 0 {
			pinned |= blockers
		}
	}
	return pinned
}
