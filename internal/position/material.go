package position

import "github.com/kestrel-engine/kestrel/internal/bitboard"

// Pair is a tapered evaluation term: independent midgame (Op) and endgame
// (Eg) components, combined later by a material-weighted blend. It is
// defined here, rather than in internal/eval, because Position itself
// maintains an incremental Pair (PST) as part of its invariants (spec.md
// §3); internal/eval imports this type rather than duplicating it.
type Pair struct {
	Op, Eg int16
}

// Add/Sub return a new Pair offset by another.
func (p Pair) Add(o Pair) Pair { return Pair{p.Op + o.Op, p.Eg + o.Eg} }
func (p Pair) Sub(o Pair) Pair { return Pair{p.Op - o.Op, p.Eg - o.Eg} }
func (p Pair) Neg() Pair       { return Pair{-p.Op, -p.Eg} }

// PieceValue gives each piece kind's material value in centipawn-like
// units, shared by PST/incremental-material bookkeeping, Static Exchange
// Evaluation, and evaluation's material term. Values follow the familiar
// 1/3/3/5/9 scale (King has no material value: it is never captured).
var PieceValue = [6]int{
	bitboard.Knight: 325,
	bitboard.Bishop: 325,
	bitboard.Rook:   500,
	bitboard.Queen:  975,
	bitboard.King:   0,
	bitboard.Pawn:   100,
}

// pstTable[kind] is indexed by the square as seen from White's point of
// view (A1=0..H8=63); Black's contribution is mirrored vertically when
// accumulated (square ^ 56). Values are small, hand-placed tapered bonuses
// in the spirit of Demolito's pst.c — not tuned, since tune.c's parameter
// harness is explicitly out of scope (spec.md §1 Non-goals).
var pstTable = [6][64]Pair{
	bitboard.Pawn: {
		{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0},
		{5, 10}, {10, 10}, {10, 10}, {-20, 10}, {-20, 10}, {10, 10}, {10, 10}, {5, 10},
		{5, 5}, {-5, 5}, {-10, 5}, {0, 5}, {0, 5}, {-10, 5}, {-5, 5}, {5, 5},
		{0, 10}, {0, 10}, {0, 10}, {20, 15}, {20, 15}, {0, 10}, {0, 10}, {0, 10},
		{5, 20}, {5, 20}, {10, 25}, {25, 30}, {25, 30}, {10, 25}, {5, 20}, {5, 20},
		{10, 35}, {10, 35}, {20, 40}, {30, 45}, {30, 45}, {20, 40}, {10, 35}, {10, 35},
		{50, 55}, {50, 55}, {50, 55}, {50, 55}, {50, 55}, {50, 55}, {50, 55}, {50, 55},
		{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0},
	},
	bitboard.Knight: {
		{-50, -40}, {-40, -30}, {-30, -20}, {-30, -20}, {-30, -20}, {-30, -20}, {-40, -30}, {-50, -40},
		{-40, -30}, {-20, -20}, {0, -5}, {5, -5}, {5, -5}, {0, -5}, {-20, -20}, {-40, -30},
		{-30, -20}, {5, -5}, {10, 10}, {15, 15}, {15, 15}, {10, 10}, {5, -5}, {-30, -20},
		{-30, -20}, {0, -5}, {15, 15}, {20, 20}, {20, 20}, {15, 15}, {0, -5}, {-30, -20},
		{-30, -20}, {5, -5}, {15, 15}, {20, 20}, {20, 20}, {15, 15}, {5, -5}, {-30, -20},
		{-30, -20}, {0, -5}, {10, 10}, {15, 15}, {15, 15}, {10, 10}, {0, -5}, {-30, -20},
		{-40, -30}, {-20, -20}, {0, -5}, {0, -5}, {0, -5}, {0, -5}, {-20, -20}, {-40, -30},
		{-50, -40}, {-40, -30}, {-30, -20}, {-30, -20}, {-30, -20}, {-30, -20}, {-40, -30}, {-50, -40},
	},
	bitboard.Bishop: {
		{-20, -20}, {-10, -10}, {-10, -10}, {-10, -10}, {-10, -10}, {-10, -10}, {-10, -10}, {-20, -20},
		{-10, -10}, {5, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {5, 0}, {-10, -10},
		{-10, -10}, {10, 0}, {10, 5}, {10, 5}, {10, 5}, {10, 5}, {10, 0}, {-10, -10},
		{-10, -10}, {0, 0}, {10, 5}, {15, 10}, {15, 10}, {10, 5}, {0, 0}, {-10, -10},
		{-10, -10}, {5, 0}, {10, 5}, {15, 10}, {15, 10}, {10, 5}, {5, 0}, {-10, -10},
		{-10, -10}, {0, 0}, {10, 5}, {10, 5}, {10, 5}, {10, 5}, {0, 0}, {-10, -10},
		{-10, -10}, {5, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {5, 0}, {-10, -10},
		{-20, -20}, {-10, -10}, {-10, -10}, {-10, -10}, {-10, -10}, {-10, -10}, {-10, -10}, {-20, -20},
	},
	bitboard.Rook: {
		{0, 0}, {0, 0}, {5, 0}, {10, 0}, {10, 0}, {5, 0}, {0, 0}, {0, 0},
		{-5, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-5, 0},
		{-5, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-5, 0},
		{-5, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-5, 0},
		{-5, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-5, 0},
		{-5, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-5, 0},
		{5, 5}, {10, 5}, {10, 5}, {10, 5}, {10, 5}, {10, 5}, {10, 5}, {5, 5},
		{0, 0}, {0, 0}, {0, 0}, {5, 0}, {5, 0}, {0, 0}, {0, 0}, {0, 0},
	},
	bitboard.Queen: {
		{-20, -20}, {-10, -10}, {-10, -10}, {-5, -5}, {-5, -5}, {-10, -10}, {-10, -10}, {-20, -20},
		{-10, -10}, {0, 0}, {5, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-10, -10},
		{-10, -10}, {5, 0}, {5, 5}, {5, 5}, {5, 5}, {5, 5}, {0, 0}, {-10, -10},
		{0, 0}, {0, 0}, {5, 5}, {5, 10}, {5, 10}, {5, 5}, {0, 0}, {-5, -5},
		{-5, -5}, {0, 0}, {5, 5}, {5, 10}, {5, 10}, {5, 5}, {0, 0}, {-5, -5},
		{-10, -10}, {0, 0}, {5, 5}, {5, 5}, {5, 5}, {5, 5}, {0, 0}, {-10, -10},
		{-10, -10}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-10, -10},
		{-20, -20}, {-10, -10}, {-10, -10}, {-5, -5}, {-5, -5}, {-10, -10}, {-10, -10}, {-20, -20},
	},
	bitboard.King: {
		{20, -50}, {30, -30}, {10, -30}, {0, -30}, {0, -30}, {10, -30}, {30, -30}, {20, -50},
		{20, -30}, {20, -10}, {0, -10}, {0, -10}, {0, -10}, {0, -10}, {20, -10}, {20, -30},
		{-10, -30}, {-20, -10}, {-20, 20}, {-20, 30}, {-20, 30}, {-20, 20}, {-20, -10}, {-10, -30},
		{-20, -30}, {-30, -10}, {-30, 30}, {-40, 40}, {-40, 40}, {-30, 30}, {-30, -10}, {-20, -30},
		{-30, -30}, {-40, -10}, {-40, 30}, {-50, 40}, {-50, 40}, {-40, 30}, {-40, -10}, {-30, -30},
		{-30, -30}, {-40, -10}, {-40, 20}, {-50, 30}, {-50, 30}, {-40, 20}, {-40, -10}, {-30, -30},
		{-30, -30}, {-40, -10}, {-40, -10}, {-50, -10}, {-50, -10}, {-40, -10}, {-40, -10}, {-30, -30},
		{-30, -50}, {-40, -30}, {-40, -30}, {-50, -30}, {-50, -30}, {-40, -30}, {-40, -30}, {-30, -50},
	},
}

// PST returns the material value plus piece-square bonus for a piece of
// kind k and color c on square sq, from that piece's own point of view:
// Black's square is mirrored here, and the caller (Position.put/remove)
// negates Black's contribution.
func PST(k bitboard.PieceKind, c bitboard.Color, sq bitboard.Square) Pair {
	if c == bitboard.Black {
		sq ^= 56
	}
	v := int16(PieceValue[k])
	return pstTable[k][sq].Add(Pair{v, v})
}

// StartMaterial is the material total (pieceWeights at 4*(N+B+R)+2*Q) used
// as the blend denominator in evaluation's tapered score (spec.md §4.5.9).
var StartMaterial = 4*(PieceValue[bitboard.Knight]+PieceValue[bitboard.Bishop]+PieceValue[bitboard.Rook]) +
	2*PieceValue[bitboard.Queen]
