// Package eval computes a static evaluation of a position: material and
// piece-square value (tracked incrementally on Position itself), plus pawn
// structure, mobility, king safety, bishop pair, rook files, and tempo,
// tapered between midgame and endgame by remaining material.
package eval

import (
	"github.com/kestrel-engine/kestrel/internal/bitboard"
	"github.com/kestrel-engine/kestrel/internal/position"
)

// Score is a centipawn-like evaluation from White's point of view.
type Score int

// Evaluate returns the static evaluation of pos from White's perspective,
// recomputing pawn structure on every call. Search negates it for Black as
// needed; search instead calls EvaluateCached with its own worker-owned
// PawnCache, since pawn structure is by far the slowest-moving part of a
// position across a search tree.
func Evaluate(pos *position.Position) Score {
	return evaluate(pos, nil)
}

// EvaluateCached is Evaluate but reuses cache's pawn-structure entries
// across calls instead of recomputing every time.
func EvaluateCached(pos *position.Position, cache *PawnCache) Score {
	return evaluate(pos, cache)
}

func evaluate(pos *position.Position, cache *PawnCache) Score {
	var op, eg int

	op += int(pos.PST.Op)
	eg += int(pos.PST.Eg)

	var pawnOp, pawnEg int
	if cache != nil {
		pawnOp, pawnEg = cache.score(pos)
	} else {
		pawnOp, pawnEg = computePawnStructure(pos)
	}
	op += pawnOp
	eg += pawnEg

	mob := mobility(pos)
	op += mob
	eg += mob

	op += bishopPair(pos)
	eg += bishopPair(pos)

	rookOp, rookEg := rookFiles(pos)
	op += rookOp
	eg += rookEg

	kingOp, kingEg := kingSafety(pos)
	op += kingOp
	eg += kingEg

	phase := pos.PieceMaterial[bitboard.White] + pos.PieceMaterial[bitboard.Black]
	if phase > position.StartMaterial {
		phase = position.StartMaterial
	}

	blended := (op*phase + eg*(position.StartMaterial-phase)) / position.StartMaterial

	if pos.Turn == bitboard.White {
		blended += tempoBonus
	} else {
		blended -= tempoBonus
	}
	return Score(blended)
}

// mobility counts pseudo-legal non-pawn, non-king destinations as a cheap
// proxy for piece activity, White minus Black.
func mobility(pos *position.Position) int {
	occ := pos.Occupied()
	var white, black int
	for n := pos.ByPiece[bitboard.Knight] & pos.ByColor[bitboard.White]; n != 0; {
		white += bitboard.KnightAttacks(n.PopLSB()).Count()
	}
	for n := pos.ByPiece[bitboard.Knight] & pos.ByColor[bitboard.Black]; n != 0; {
		black += bitboard.KnightAttacks(n.PopLSB()).Count()
	}
	for b := pos.ByPiece[bitboard.Bishop] & pos.ByColor[bitboard.White]; b != 0; {
		white += bitboard.BishopAttacks(b.PopLSB(), occ).Count()
	}
	for b := pos.ByPiece[bitboard.Bishop] & pos.ByColor[bitboard.Black]; b != 0; {
		black += bitboard.BishopAttacks(b.PopLSB(), occ).Count()
	}
	for r := pos.ByPiece[bitboard.Rook] & pos.ByColor[bitboard.White]; r != 0; {
		white += bitboard.RookAttacks(r.PopLSB(), occ).Count()
	}
	for r := pos.ByPiece[bitboard.Rook] & pos.ByColor[bitboard.Black]; r != 0; {
		black += bitboard.RookAttacks(r.PopLSB(), occ).Count()
	}
	for q := pos.ByPiece[bitboard.Queen] & pos.ByColor[bitboard.White]; q != 0; {
		white += bitboard.QueenAttacks(q.PopLSB(), occ).Count()
	}
	for q := pos.ByPiece[bitboard.Queen] & pos.ByColor[bitboard.Black]; q != 0; {
		black += bitboard.QueenAttacks(q.PopLSB(), occ).Count()
	}
	return (white - black) * 2
}

// bishopPair rewards owning both bishops, which cooperate better than two
// same-colored minors.
func bishopPair(pos *position.Position) int {
	score := 0
	if (pos.ByPiece[bitboard.Bishop] & pos.ByColor[bitboard.White]).Count() >= 2 {
		score += bishopPairBonus
	}
	if (pos.ByPiece[bitboard.Bishop] & pos.ByColor[bitboard.Black]).Count() >= 2 {
		score -= bishopPairBonus
	}
	return score
}

// rookFiles rewards rooks on open (no pawns of either color) and
// semi-open (no friendly pawn) files.
func rookFiles(pos *position.Position) (op, eg int) {
	pawns := pos.ByPiece[bitboard.Pawn]
	whitePawns := pawns & pos.ByColor[bitboard.White]
	blackPawns := pawns & pos.ByColor[bitboard.Black]

	for r := pos.ByPiece[bitboard.Rook] & pos.ByColor[bitboard.White]; r != 0; {
		file := bitboard.FileBB(r.PopLSB().File())
		switch {
		case pawns&file == 0:
			op += rookOpenFileBonus
			eg += rookOpenFileBonus
		case whitePawns&file == 0:
			op += rookSemiOpenFileBonus
			eg += rookSemiOpenFileBonus
		}
	}
	for r := pos.ByPiece[bitboard.Rook] & pos.ByColor[bitboard.Black]; r != 0; {
		file := bitboard.FileBB(r.PopLSB().File())
		switch {
		case pawns&file == 0:
			op -= rookOpenFileBonus
			eg -= rookOpenFileBonus
		case blackPawns&file == 0:
			op -= rookSemiOpenFileBonus
			eg -= rookSemiOpenFileBonus
		}
	}
	return op, eg
}

// kingSafety penalizes a king left on an open or semi-open file, a rough
// but cheap substitute for pawn-shield/attacker-count schemes; the penalty
// is scaled down in the endgame, where an exposed king matters far less.
func kingSafety(pos *position.Position) (op, eg int) {
	pawns := pos.ByPiece[bitboard.Pawn]

	wKing := (pos.ByPiece[bitboard.King] & pos.ByColor[bitboard.White]).LSB()
	if pawns&bitboard.FileBB(wKing.File()) == 0 {
		op -= kingOpenFilePenalty
	}
	bKing := (pos.ByPiece[bitboard.King] & pos.ByColor[bitboard.Black]).LSB()
	if pawns&bitboard.FileBB(bKing.File()) == 0 {
		op += kingOpenFilePenalty
	}
	return op, eg / 4
}
