// Package order ranks a position's legal moves so that search explores the
// most promising ones first: the transposition-table move, winning and
// equal captures by SEE, killer quiet moves, then the rest by history
// heuristic score.
package order

import (
	"sort"

	"github.com/kestrel-engine/kestrel/internal/bitboard"
	"github.com/kestrel-engine/kestrel/internal/position"
)

// Score buckets, highest first; ties within a bucket break by the
// bucket-specific secondary key folded into the same int.
const (
	scoreTT          = 1 << 30
	scoreGoodCap     = 1 << 29
	scoreKiller      = 1 << 28
	scoreQuiet       = 0
	scoreLosingCap   = -(1 << 29)
	mvvLvaMultiplier = 64
)

// History is the quiet-move history heuristic table, indexed by side to
// move and the move's from/to squares; higher is "has caused more cutoffs".
type History struct {
	table [2][64][64]int
}

// Bonus rewards a quiet move that produced a beta cutoff by depth², with
// the "history gravity" term that keeps the table from saturating. Penalize
// is its counterpart, lowering a move's score by the same amount.
func (h *History) Bonus(c bitboard.Color, from, to bitboard.Square, depth int) {
	bonus := depth * depth
	cur := &h.table[c][from][to]
	*cur += bonus - (*cur * bonus / 16384)
}

func (h *History) Penalize(c bitboard.Color, from, to bitboard.Square, depth int) {
	malus := depth * depth
	cur := &h.table[c][from][to]
	*cur -= malus + (*cur * malus / 16384)
}

func (h *History) get(c bitboard.Color, from, to bitboard.Square) int {
	return h.table[c][from][to]
}

// Killers holds up to two quiet moves per ply that caused a beta cutoff
// without being captures, tried early at sibling nodes of the same depth.
const maxPly = 256

type Killers struct {
	moves [maxPly][2]position.Move
}

// Add records m as the newest killer at ply, evicting the older one.
func (k *Killers) Add(ply int, m position.Move) {
	if k.moves[ply][0] == m {
		return
	}
	k.moves[ply][1] = k.moves[ply][0]
	k.moves[ply][0] = m
}

func (k *Killers) at(ply int) (position.Move, position.Move) {
	return k.moves[ply][0], k.moves[ply][1]
}

// Sort reorders moves in place, most promising first, for the node
// identified by pos/ply. ttMove (the zero Move if none) is tried first;
// captures are scored by SEE (MVV-LVA as a cheap proxy folded in), then
// killers, then history for quiet moves.
func Sort(pos *position.Position, moves []position.Move, ttMove position.Move, killers *Killers, hist *History, ply int) {
	k1, k2 := killers.at(ply)
	scores := make([]int, len(moves))
	for i, m := range moves {
		scores[i] = scoreMove(pos, m, ttMove, k1, k2, hist)
	}
	sort.Sort(&byScore{moves, scores})
}

func scoreMove(pos *position.Position, m, ttMove, k1, k2 position.Move, hist *History) int {
	if m == ttMove {
		return scoreTT
	}
	target := pos.PieceAt(m.To())
	isCapture := target != bitboard.NoPiece || (pos.PieceAt(m.From()) == bitboard.Pawn && m.To() == pos.EPSquare)
	if isCapture || m.IsPromotion() {
		see := pos.SEE(m)
		victim := target
		if victim == bitboard.NoPiece {
			victim = bitboard.Pawn // en passant
		}
		mover := pos.PieceAt(m.From())
		mvvLva := int(victim)*mvvLvaMultiplier - int(mover)
		if see >= 0 {
			return scoreGoodCap + mvvLva
		}
		return scoreLosingCap + mvvLva
	}
	if m == k1 || m == k2 {
		return scoreKiller
	}
	return scoreQuiet + hist.get(pos.Turn, m.From(), m.To())
}

type byScore struct {
	moves  []position.Move
	scores []int
}

func (b *byScore) Len() int      { return len(b.moves) }
func (b *byScore) Swap(i, j int) {
	b.moves[i], b.moves[j] = b.moves[j], b.moves[i]
	b.scores[i], b.scores[j] = b.scores[j], b.scores[i]
}
func (b *byScore) Less(i, j int) bool { return b.scores[i] > b.scores[j] }
