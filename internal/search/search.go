// Package search implements iterative-deepening, parallel (Lazy SMP)
// principal variation search with quiescence, built around Position's
// copy-make semantics: each recursive call owns its own child Position
// value, so workers never share mutable board state, only the
// transposition table.
package search

import (
	"sync/atomic"

	"github.com/kestrel-engine/kestrel/internal/bitboard"
	"github.com/kestrel-engine/kestrel/internal/eval"
	"github.com/kestrel-engine/kestrel/internal/order"
	"github.com/kestrel-engine/kestrel/internal/position"
	"github.com/kestrel-engine/kestrel/internal/tt"
	"github.com/kestrel-engine/kestrel/internal/zobrist"
)

// Inf is used as the initial alpha-beta window bound; Mate is the score
// magnitude assigned to the side delivering checkmate at ply 0.
const (
	Inf    = 32000
	Mate   = tt.MateValue
	MaxPly = tt.MaxPly
)

// Worker runs one search thread (Lazy SMP: every worker searches the same
// root independently and cooperates only through the shared Table).
type Worker struct {
	ID       int
	Table    *tt.Table
	Killers  order.Killers
	Hist     order.History
	PawnHash eval.PawnCache
	// Nodes is a plain counter, not atomic: only this worker's own
	// goroutine increments it, and the node-limit watchdog tolerates
	// reading a slightly stale value.
	Nodes uint64
	Stop  *atomic.Bool

	root position.Position
	path []zobrist.Key // keys from the root to the current node, for repetition detection
}

// NewWorker creates a worker bound to a shared transposition table and a
// shared stop flag (checked periodically to abort a search in progress).
func NewWorker(id int, table *tt.Table, stop *atomic.Bool) *Worker {
	return &Worker{ID: id, Table: table, Stop: stop}
}

func (w *Worker) aborted() bool {
	return w.Stop != nil && w.Stop.Load()
}

// IterInfo is reported once per completed iterative-deepening depth.
type IterInfo struct {
	Depth int
	Score int
	Nodes uint64
	PV    []position.Move
}

// Search runs iterative deepening from root to maxDepth (or until Stop is
// set), returning the best move and score found at the last fully
// completed depth; a depth-1 iteration cut short by Stop is still adopted
// (and reported to onIter), so that a move is returned whenever one was
// searched. bestLine accumulates the principal variation. history is
// the Zobrist key of every position played in the real game since the last
// irreversible move (pawn push or capture), oldest first, so repetitions
// that started before the search root are still detected. onIter, if
// non-nil, is called after every depth that completes without being
// aborted mid-iteration, and after depth 1 in any case.
func (w *Worker) Search(root position.Position, history []zobrist.Key, maxDepth int, onIter func(IterInfo)) (position.Move, int, []position.Move) {
	w.root = root
	w.path = append(w.path[:0], history...)
	var bestMove position.Move
	var bestScore int
	var bestLine []position.Move

	score := 0
	for depth := 1; depth <= maxDepth; depth++ {
		if w.aborted() {
			break
		}
		s, line := w.aspirate(depth, score)
		if w.aborted() && depth > 1 {
			break
		}
		score = s
		bestScore = s
		if len(line) > 0 {
			bestMove = line[0]
			bestLine = line
		}
		if onIter != nil {
			onIter(IterInfo{Depth: depth, Score: s, Nodes: w.Nodes, PV: bestLine})
		}
	}
	return bestMove, bestScore, bestLine
}

// aspirate runs one iterative-deepening depth with an aspiration window
// centered on the previous iteration's score, widening and re-searching on
// a fail-high/fail-low until the true score is bracketed.
func (w *Worker) aspirate(depth, prevScore int) (int, []position.Move) {
	if depth <= 4 {
		return w.rootSearch(depth, -Inf, Inf)
	}

	window := 25
	alpha, beta := prevScore-window, prevScore+window
	for {
		score, line := w.rootSearch(depth, alpha, beta)
		if w.aborted() {
			return score, line
		}
		if score <= alpha {
			alpha -= window
			window *= 2
			continue
		}
		if score >= beta {
			beta += window
			window *= 2
			continue
		}
		return score, line
	}
}

func (w *Worker) rootSearch(depth, alpha, beta int) (int, []position.Move) {
	w.Table.NewSearch()
	pos := w.root
	legal := pos.GenLegalMoves()
	moves := legal.Slice()

	var ttMove position.Move
	if e, ok := w.Table.Probe(pos.Key, 0); ok {
		ttMove = e.Move
	}
	order.Sort(&pos, moves, ttMove, &w.Killers, &w.Hist, 0)

	best := -Inf
	var bestMove position.Move
	var bestLine []position.Move
	a := alpha

	for i, m := range moves {
		child := position.Make(&pos, m)
		var score int
		var line []position.Move
		if i == 0 {
			score, line = w.negamax(&child, depth-1, 1, -beta, -a, 0)
			score = -score
		} else {
			score, _ = w.negamax(&child, depth-1, 1, -a-1, -a, 0)
			score = -score
			if score > a && score < beta {
				score, line = w.negamax(&child, depth-1, 1, -beta, -a, 0)
				score = -score
			}
		}
		if w.aborted() {
			break
		}
		if score > best {
			best = score
			bestMove = m
			bestLine = append([]position.Move{m}, line...)
		}
		if best > a {
			a = best
		}
		if a >= beta {
			break
		}
	}

	bound := tt.Exact
	if best <= alpha {
		bound = tt.Upper
	} else if best >= beta {
		bound = tt.Lower
	}
	w.Table.Store(pos.Key, bestMove, best, depth, bound, 0)
	return best, bestLine
}

// negamax searches one node, returning the score from the side-to-move's
// perspective and (when it improves alpha) the continuation below it. skip,
// when nonzero, excludes that one move from consideration and disables TT
// probing/storing for the node — used only by the singular-extension
// verification search below, which re-enters the same node rather than a
// child one.
func (w *Worker) negamax(pos *position.Position, depth, ply, alpha, beta int, skip position.Move) (int, []position.Move) {
	w.Nodes++
	if w.aborted() {
		return 0, nil
	}

	w.path = append(w.path, pos.Key)
	defer func() { w.path = w.path[:len(w.path)-1] }()
	if w.isRepetition(pos) {
		return 0, nil
	}

	pvNode := beta-alpha > 1
	inCheck := pos.InCheck()

	var ttMove position.Move
	var ttHit bool
	var ttEntry tt.Entry
	if skip == 0 {
		if e, ok := w.Table.Probe(pos.Key, ply); ok {
			ttHit = true
			ttEntry = e
			ttMove = e.Move
			if e.Depth >= depth && !pvNode {
				switch e.Bound {
				case tt.Exact:
					return e.Score, nil
				case tt.Lower:
					if e.Score >= beta {
						return e.Score, nil
					}
				case tt.Upper:
					if e.Score <= alpha {
						return e.Score, nil
					}
				}
			}
		}
	}

	if depth <= 0 {
		return w.quiescence(pos, ply, alpha, beta), nil
	}

	staticEval := w.sideToMoveEval(pos)

	// Razoring: a static eval far below alpha at shallow depth almost never
	// recovers, so drop straight into quiescence instead of a full search.
	if !pvNode && !inCheck && depth >= 1 && depth <= 2 && staticEval+razorMargin[depth] < alpha {
		q := w.quiescence(pos, ply, alpha, beta)
		if q < alpha {
			return q, nil
		}
	}

	// Null-move pruning: skip a turn and see if the opponent is still in
	// trouble even with a free move; only sound when not in check and with
	// enough non-pawn material left to avoid zugzwang positions.
	if skip == 0 && !pvNode && !inCheck && depth >= 3 && pos.PieceMaterial[pos.Turn] > 0 {
		child := position.Toggle(pos)
		reduction := nullMoveReduction(depth)
		score, _ := w.negamax(&child, depth-1-reduction, ply+1, -beta, -beta+1, 0)
		score = -score
		if score >= beta {
			return beta, nil
		}
	}

	legal := pos.GenLegalMoves()
	moves := legal.Slice()
	if len(moves) == 0 {
		if inCheck {
			return -Mate + ply, nil
		}
		return 0, nil
	}

	order.Sort(pos, moves, ttMove, &w.Killers, &w.Hist, ply)

	// Singular extension: when the TT move alone beats every alternative by
	// a wide margin at reduced depth, it is likely forced, so the main
	// search extends it by a ply instead of searching it at the same depth
	// as its siblings. See original_source/src/search.c for the shape this
	// reproduces.
	extension := 0
	if skip == 0 && ttHit && ttMove != 0 && depth >= 5 &&
		ttEntry.Depth >= depth-3 && ttEntry.Bound != tt.Upper {
		singularBeta := ttEntry.Score - 2*depth
		sScore, _ := w.negamax(pos, depth-4, ply, singularBeta-1, singularBeta, ttMove)
		if sScore < singularBeta {
			extension = 1
		}
	}

	best := -Inf
	var bestMove position.Move
	var bestLine []position.Move
	a := alpha

	for i, m := range moves {
		if m == skip {
			continue
		}
		isCapture := pos.PieceAt(m.To()) != bitboard.NoPiece
		isQuiet := !isCapture && !m.IsPromotion() && !inCheck

		// Futility pruning: near the leaves, a quiet move that cannot even
		// in principle close a large eval gap is not worth searching.
		if !pvNode && isQuiet && depth >= 1 && depth <= 2 && staticEval+futilityMargin[depth] <= a && i > 0 {
			continue
		}

		// Late move reductions: search quiet moves beyond the first few at
		// reduced depth first, re-searching at full depth only if they
		// beat alpha.
		reduction := 0
		if isQuiet {
			reduction = lmrReduction(depth, i)
		}

		newDepth := depth - 1
		if m == ttMove {
			newDepth += extension
		}

		child := position.Make(pos, m)
		var score int
		var line []position.Move
		if i == 0 {
			score, line = w.negamax(&child, newDepth, ply+1, -beta, -a, 0)
			score = -score
		} else {
			score, _ = w.negamax(&child, newDepth-reduction, ply+1, -a-1, -a, 0)
			score = -score
			if score > a {
				score, line = w.negamax(&child, newDepth, ply+1, -beta, -a, 0)
				score = -score
			}
		}

		if w.aborted() {
			return best, bestLine
		}

		if score > best {
			best = score
			bestMove = m
			bestLine = append([]position.Move{m}, line...)
		}
		if best > a {
			a = best
		}
		if a >= beta {
			if isQuiet {
				w.Killers.Add(ply, m)
				w.Hist.Bonus(pos.Turn, m.From(), m.To(), depth)
			}
			break
		}
	}

	if skip != 0 {
		return best, bestLine
	}

	bound := tt.Exact
	if best <= alpha {
		bound = tt.Upper
	} else if best >= beta {
		bound = tt.Lower
	}
	w.Table.Store(pos.Key, bestMove, best, depth, bound, ply)
	return best, bestLine
}

// quiescence extends the search along capture/check lines past the nominal
// depth limit, so the static evaluation is never trusted at a node where a
// material-winning capture is still on the board.
func (w *Worker) quiescence(pos *position.Position, ply, alpha, beta int) int {
	w.Nodes++
	inCheck := pos.InCheck()

	standPat := w.sideToMoveEval(pos)
	if !inCheck {
		if standPat >= beta {
			return beta
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	legal := pos.GenLegalMoves()
	moves := legal.Slice()
	if len(moves) == 0 {
		if inCheck {
			return -Mate + ply
		}
		return 0
	}

	var captures []position.Move
	for _, m := range moves {
		isCapture := pos.PieceAt(m.To()) != bitboard.NoPiece ||
			(pos.PieceAt(m.From()) == bitboard.Pawn && pos.EPSquare != position.NoSquare && m.To() == pos.EPSquare)
		if inCheck || isCapture || m.IsPromotion() {
			captures = append(captures, m)
		}
	}
	order.Sort(pos, captures, 0, &w.Killers, &w.Hist, ply)

	best := standPat
	for _, m := range captures {
		if !inCheck && pos.SEE(m) < 0 {
			continue // losing capture, not worth extending into
		}
		child := position.Make(pos, m)
		score := -w.quiescence(&child, ply+1, -beta, -alpha)
		if score > best {
			best = score
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

func (w *Worker) sideToMoveEval(pos *position.Position) int {
	s := int(eval.EvaluateCached(pos, &w.PawnHash))
	if pos.Turn == bitboard.Black {
		s = -s
	}
	return s
}

// isRepetition reports whether pos.Key has already occurred on the current
// search path an even number of plies back (same side to move), or whether
// the fifty-move counter alone forces a draw. Two occurrences are enough to
// call a draw inside search, even though three are required at the board
// level — the extra margin saves the engine from walking into a line it
// would refuse to repeat a third time anyway.
func (w *Worker) isRepetition(pos *position.Position) bool {
	if pos.Rule50 >= 100 {
		return true
	}
	n := len(w.path)
	limit := pos.Rule50
	if limit > n-1 {
		limit = n - 1
	}
	for i := 2; i <= limit; i += 2 {
		if w.path[n-1-i] == pos.Key {
			return true
		}
	}
	return false
}
