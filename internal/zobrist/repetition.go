package zobrist

// maxRepetitionDepth bounds the repetition stack; spec.md §3 notes 2048 is
// sufficient (no real game or search line approaches that many plies from
// the root).
const maxRepetitionDepth = 2048

// Stack is an ordered sequence of position keys reached from the search (or
// game) root, one push per position. It is not safe for concurrent use.
// internal/search does not use it: each search Worker keeps its own key
// slice seeded from the game history passed to Search.
type Stack struct {
	keys []Key
}

// NewStack returns an empty repetition stack with the capacity spec.md
// recommends pre-reserved.
func NewStack() *Stack {
	return &Stack{keys: make([]Key, 0, maxRepetitionDepth)}
}

// Clear empties the stack.
func (s *Stack) Clear() { s.keys = s.keys[:0] }

// Push appends a key, recording a position reached from the root.
func (s *Stack) Push(k Key) { s.keys = append(s.keys, k) }

// Pop removes the most recently pushed key.
func (s *Stack) Pop() {
	if len(s.keys) > 0 {
		s.keys = s.keys[:len(s.keys)-1]
	}
}

// Len reports how many keys are on the stack.
func (s *Stack) Len() int { return len(s.keys) }

// Truncate resets the stack to its first n entries; n beyond the current
// length leaves the stack unchanged.
func (s *Stack) Truncate(n int) {
	if n <= len(s.keys) {
		s.keys = s.keys[:n]
	}
}

// Back returns the key n entries below the top (Back(0) is the current
// top), or 0 if the stack is too shallow.
func (s *Stack) Back(n int) Key {
	i := len(s.keys) - 1 - n
	if i < 0 {
		return 0
	}
	return s.keys[i]
}

// MoveKey returns the XOR of the two keys that produced the move n plies
// ago (keys[top-n] ^ keys[top-n-1]), or 0 if there isn't enough history. It
// is used to namespace context-indexed history tables (refutation and
// follow-up move ordering) by "which move was just played", without storing
// full Move values in the index.
func (s *Stack) MoveKey(n int) Key {
	top := len(s.keys) - 1
	i, j := top-n, top-n-1
	if i < 0 || j < 0 {
		return 0
	}
	return s.keys[i] ^ s.keys[j]
}

// Repetition reports whether the current (top) position is a draw by
// repetition: true immediately once rule50 reaches the 100-halfmove claim
// threshold, or if any prior position separated from the top by an even,
// positive offset no greater than rule50 shares its key. The even-offset,
// "two occurrences is enough" check is deliberate (spec.md §4.2): inside a
// search tree a genuine threefold cannot always be observed before the
// horizon, so a single matching predecessor is treated as a repetition to
// steer the search away from the line.
func (s *Stack) Repetition(rule50 int) bool {
	if rule50 >= 100 {
		return true
	}
	top := len(s.keys) - 1
	if top < 0 {
		return false
	}
	key := s.keys[top]
	for offset := 2; offset <= rule50 && offset <= top; offset += 2 {
		if s.keys[top-offset] == key {
			return true
		}
	}
	return false
}
