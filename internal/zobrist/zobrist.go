// Package zobrist provides the deterministic Zobrist hash key tables and the
// per-worker repetition stack used to detect draws by repetition.
//
// Keys are filled once, at Init, by a SplitMix64 generator seeded from zero
// so that every run of the engine (and every test) sees bit-identical keys —
// a property the teacher's zobrist.go gets from math/rand/v2 with no fixed
// seed; spec.md requires reproducibility (§8 invariant 9, determinism under
// Threads=1), so Kestrel seeds deterministically instead.
package zobrist

import "github.com/kestrel-engine/kestrel/internal/bitboard"

// Key is a 64-bit Zobrist hash.
type Key uint64

var (
	// PieceKey[color][kind][square].
	PieceKey [2][6][64]Key
	// CastlingKey[square] is XORed in for every rook square that still
	// carries a castling right; a castling-rights set's key is the XOR of
	// CastlingKey over its member rook squares (see CastlingSetKey).
	CastlingKey [64]Key
	// EnPassantKey[square], index 64 means "no en-passant square".
	EnPassantKey [65]Key
	// TurnKey is XORed in when it is Black's move.
	TurnKey Key
)

// splitMix64 is the standard SplitMix64 generator: fast, small, and
// well-distributed enough for hash-key generation (it is not a
// cryptographic PRNG, nor does it need to be).
type splitMix64 struct{ state uint64 }

func (g *splitMix64) next() uint64 {
	g.state += 0x9E3779B97F4A7C15
	z := g.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Init fills every Zobrist key table from a SplitMix64 stream seeded at
// zero. Call once, before building any Position.
func Init() {
	g := &splitMix64{state: 0}
	for c := 0; c < 2; c++ {
		for k := 0; k < 6; k++ {
			for sq := 0; sq < 64; sq++ {
				PieceKey[c][k][sq] = Key(g.next())
			}
		}
	}
	for sq := 0; sq < 64; sq++ {
		CastlingKey[sq] = Key(g.next())
	}
	for sq := 0; sq < 65; sq++ {
		EnPassantKey[sq] = Key(g.next())
	}
	TurnKey = Key(g.next())
}

// CastlingSetKey hashes a bitboard of rook squares that still carry
// castling rights, as the XOR of each member square's CastlingKey.
func CastlingSetKey(rooks bitboard.Bitboard) Key {
	var k Key
	for rooks != 0 {
		k ^= CastlingKey[rooks.PopLSB()]
	}
	return k
}
