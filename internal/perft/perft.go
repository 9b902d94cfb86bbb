// Package perft walks the legal move generation tree to a fixed depth and
// counts leaf nodes, the standard cross-check for a move generator's
// correctness against published counts.
//
// See https://www.chessprogramming.org/Perft_Results
package perft

import (
	"github.com/kestrel-engine/kestrel/internal/bitboard"
	"github.com/kestrel-engine/kestrel/internal/position"
)

// Result breaks a perft count down by move category, for locating which
// kind of move a mismatch against a published count hides in.
type Result struct {
	Nodes        uint64
	Captures     uint64
	EPCaptures   uint64
	Castles      uint64
	Promotions   uint64
	Checks       uint64
	DoubleChecks uint64
}

// Perft counts leaf nodes reachable from pos in exactly depth plies of
// strictly legal moves.
func Perft(pos *position.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	legal := pos.GenLegalMoves()
	if depth == 1 {
		return uint64(legal.N)
	}
	var nodes uint64
	for _, m := range legal.Slice() {
		child := position.Make(pos, m)
		nodes += Perft(&child, depth-1)
	}
	return nodes
}

// Verbose runs the same walk as Perft but also tallies move categories into
// r. At the root (isRoot) it additionally returns the per-move subtree
// counts in pos.GenLegalMoves order — the "divide" used to bisect a
// mismatch against a published count down to the offending root move.
func Verbose(pos *position.Position, depth int, r *Result, isRoot bool) (nodes uint64, divideMoves []string, divideCounts []uint64) {
	legal := pos.GenLegalMoves()

	for _, m := range legal.Slice() {
		if isCastlingMove(pos, m) {
			r.Castles++
		} else if isEnPassantCapture(pos, m) {
			r.Captures++
			r.EPCaptures++
		} else if pos.PieceAt(m.To()) != bitboard.NoPiece {
			r.Captures++
		}
		if m.IsPromotion() {
			r.Promotions++
		}

		child := position.Make(pos, m)
		if child.InCheck() {
			r.Checks++
			if child.Checkers.Count() > 1 {
				r.DoubleChecks++
			}
		}

		var sub uint64
		if depth <= 1 {
			sub = 1
		} else {
			sub, _, _ = Verbose(&child, depth-1, r, false)
		}
		nodes += sub
		if isRoot {
			divideMoves = append(divideMoves, m.String())
			divideCounts = append(divideCounts, sub)
		}
	}

	r.Nodes = nodes
	return nodes, divideMoves, divideCounts
}

func isEnPassantCapture(pos *position.Position, m position.Move) bool {
	return pos.PieceAt(m.From()) == bitboard.Pawn &&
		pos.EPSquare != position.NoSquare && m.To() == pos.EPSquare
}

func isCastlingMove(pos *position.Position, m position.Move) bool {
	return pos.PieceAt(m.From()) == bitboard.King &&
		pos.ByColor[pos.Turn].Test(m.To())
}

// Divide runs one ply of Perft per legal root move, reporting each move's
// subtree count in UCI long-algebraic notation.
func Divide(pos *position.Position, depth int) (moves []string, counts []uint64) {
	legal := pos.GenLegalMoves()
	for _, m := range legal.Slice() {
		child := position.Make(pos, m)
		var n uint64
		if depth <= 1 {
			n = 1
		} else {
			n = Perft(&child, depth-1)
		}
		moves = append(moves, m.String())
		counts = append(counts, n)
	}
	return moves, counts
}
