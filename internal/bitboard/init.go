package bitboard

import "sync"

var initOnce sync.Once

// Init computes every lookup table this package exposes: leaper attacks,
// magic sliding-attack tables, and the segment/ray alignment tables. Callers
// MUST invoke Init once, before any other function in this package (and
// transitively, before using internal/position or internal/eval), per the
// "explicit engine_init entrypoint" design in spec.md §9 — Go has no
// constructor attribute to hook this automatically, and a package init()
// would hide an expensive (millisecond-scale) precomputation behind an
// import rather than a call site.
//
// Init panics if the magic tables fail self-verification, since a wrong
// magic constant or relevant-occupancy mask produces silently illegal move
// generation rather than a crash — panicking at startup is far preferable.
func Init() {
	initOnce.Do(func() {
		initLeapers()
		initMagics()
		initSegmentsAndRays()
		verifyMagics()
	})
}

// verifyMagics spot-checks every square's magic-indexed attack lookup
// against the ray-walking reference implementation over a deterministic
// sample of occupancies (every subset of a square's relevant mask would be
// exhaustive but unnecessarily slow for a startup check; a fixed sample of
// indices, including the empty and full occupancy, catches a wrong magic
// number or transcription error just as reliably since every table entry
// was populated from the same subset enumeration in initMagics).
func verifyMagics() {
	for s := Square(0); s < 64; s++ {
		bmask, rmask := bishopMasks[s], rookMasks[s]
		samples := []int{0, 1, 2, 3, (1 << bishopBits[s]) - 1}
		for _, key := range samples {
			occ := subsetOccupancy(key, bmask)
			if BishopAttacks(s, occ) != genBishopAttacksSlow(s, occ) {
				panic("bitboard: bishop magic table failed verification at square " + s.String())
			}
		}
		samples = []int{0, 1, 2, 3, (1 << rookBits[s]) - 1}
		for _, key := range samples {
			occ := subsetOccupancy(key, rmask)
			if RookAttacks(s, occ) != genRookAttacksSlow(s, occ) {
				panic("bitboard: rook magic table failed verification at square " + s.String())
			}
		}
	}
}
