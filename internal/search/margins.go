package search

// Pruning margins, indexed by depth. Demolito's search.c derives its
// equivalents from an external Texel-tuning harness (out of scope here);
// these reproduce the same shape — monotonically increasing with depth —
// with hand-placed constants rather than tuned ones.

// razorMargin[d] is how far below alpha the static eval must fall at depth
// d for razoring to drop straight into quiescence.
var razorMargin = [3]int{0, 300, 600}

// futilityMargin[d] bounds how much a quiet move could plausibly swing the
// score at depth d; used to skip moves that cannot close the gap to alpha.
var futilityMargin = [3]int{0, 150, 300}

// nullMoveReduction returns the null-move search's depth reduction at depth.
func nullMoveReduction(depth int) int {
	return 2 + depth/4
}

// lmrReduction returns the late-move-reduction amount for the i'th quiet
// move searched at depth (0-indexed), or 0 before LMR applies.
func lmrReduction(depth, i int) int {
	if depth < 3 || i < 3 {
		return 0
	}
	if i >= 8 {
		return 2
	}
	return 1
}
