package eval

import (
	"github.com/kestrel-engine/kestrel/internal/bitboard"
	"github.com/kestrel-engine/kestrel/internal/position"
	"github.com/kestrel-engine/kestrel/internal/zobrist"
)

// pawnEntry caches the tapered pawn-structure score for one PawnKingKey.
type pawnEntry struct {
	key    zobrist.Key
	op, eg int
}

// pawnHashSize is a small power of two: pawn structure changes far less
// often than the full position, so a modest table captures most hits
// without competing for memory against the main transposition table.
const pawnHashSize = 1 << 14

// PawnCache caches computePawnStructure results keyed by PawnKingKey. It is owned
// by one search Worker and never shared, matching the engine's "per-thread
// pawn hash" design rather than a table guarded by a mutex.
type PawnCache struct {
	entries [pawnHashSize]pawnEntry
}

func (c *PawnCache) score(pos *position.Position) (op, eg int) {
	idx := uint64(pos.PawnKingKey) % pawnHashSize
	e := c.entries[idx]
	if e.key == pos.PawnKingKey {
		return e.op, e.eg
	}
	op, eg = computePawnStructure(pos)
	c.entries[idx] = pawnEntry{key: pos.PawnKingKey, op: op, eg: eg}
	return op, eg
}

// computePawnStructure scores isolated, doubled, and passed pawns, White
// minus Black, tapered between midgame and endgame components.
func computePawnStructure(pos *position.Position) (op, eg int) {
	whitePawns := pos.ByPiece[bitboard.Pawn] & pos.ByColor[bitboard.White]
	blackPawns := pos.ByPiece[bitboard.Pawn] & pos.ByColor[bitboard.Black]

	op += pawnTermsFor(whitePawns, blackPawns, bitboard.White) * 2
	eg += pawnTermsFor(whitePawns, blackPawns, bitboard.White) * 3
	op -= pawnTermsFor(blackPawns, whitePawns, bitboard.Black) * 2
	eg -= pawnTermsFor(blackPawns, whitePawns, bitboard.Black) * 3
	return op, eg
}

// pawnTermsFor scores one color's pawns against the opponent's from that
// color's own point of view (negative when penalties outweigh bonuses); the
// caller sign-adjusts it per color.
func pawnTermsFor(own, enemy bitboard.Bitboard, c bitboard.Color) int {
	score := 0
	for p := own; p != 0; {
		sq := p.PopLSB()
		file := sq.File()

		adjacent := bitboard.FileBB(file)
		if file > 0 {
			adjacent |= bitboard.FileBB(file - 1)
		}
		if file < 7 {
			adjacent |= bitboard.FileBB(file + 1)
		}
		neighborFiles := adjacent &^ bitboard.FileBB(file)
		if own&neighborFiles == 0 {
			score -= isolatedPawnPenalty
		}

		if (own & bitboard.FileBB(file)).Count() > 1 {
			score -= doubledPawnPenalty / 2 // halved: counted once per pawn on the file
		}

		if isPassed(sq, enemy, adjacent, c) {
			score += passedPawnBonus + passedRankBonus(sq, c)
		}
	}
	return score
}

// isPassed reports whether no enemy pawn on sq's file or either adjacent
// file stands between sq and its promotion rank.
func isPassed(sq bitboard.Square, enemy, span bitboard.Bitboard, c bitboard.Color) bool {
	var ahead bitboard.Bitboard
	if c == bitboard.White {
		for r := sq.Rank() + 1; r < 8; r++ {
			ahead |= bitboard.RankBB(r)
		}
	} else {
		for r := sq.Rank() - 1; r >= 0; r-- {
			ahead |= bitboard.RankBB(r)
		}
	}
	return enemy&span&ahead == 0
}

// passedRankBonus scales a passed pawn's bonus by how close it is to
// promoting.
func passedRankBonus(sq bitboard.Square, c bitboard.Color) int {
	rank := sq.Rank()
	if c == bitboard.Black {
		rank = 7 - rank
	}
	return rank * 4
}
