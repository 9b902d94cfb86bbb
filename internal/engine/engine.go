// Package engine wires position, evaluation, the transposition table, and
// search together behind the uci.Engine interface, and owns the options a
// UCI controller can change at runtime.
package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/op/go-logging"

	"github.com/kestrel-engine/kestrel/internal/bitboard"
	"github.com/kestrel-engine/kestrel/internal/position"
	"github.com/kestrel-engine/kestrel/internal/search"
	"github.com/kestrel-engine/kestrel/internal/uci"
	"github.com/kestrel-engine/kestrel/internal/zobrist"
)

var log = logging.MustGetLogger("engine")

// Options holds every setoption-adjustable value, in their UCI units
// (Hash in MB, Time Buffer in milliseconds).
type Options struct {
	HashMB     int
	Threads    int
	Contempt   int
	Level      int
	Chess960   bool
	TimeBuffer time.Duration
	Ponder     bool
}

// DefaultOptions mirrors the "option ... default" values uci.Loop reports.
func DefaultOptions() Options {
	return Options{
		HashMB:     16,
		Threads:    1,
		Contempt:   0,
		Level:      0,
		Chess960:   false,
		TimeBuffer: 60 * time.Millisecond,
		Ponder:     false,
	}
}

// Engine implements uci.Engine.
type Engine struct {
	mu    sync.Mutex
	opts  Options
	coord *search.Coordinator

	root    position.Position
	history []uint64

	cancel context.CancelFunc
}

// New builds an Engine with DefaultOptions and a freshly allocated
// transposition table.
func New() *Engine { return NewWithOptions(DefaultOptions()) }

// NewWithOptions builds an Engine starting from opts, e.g. as loaded by
// internal/config at startup.
func NewWithOptions(opts Options) *Engine {
	e := &Engine{opts: opts}
	e.coord = search.NewCoordinator(e.opts.Threads, e.opts.HashMB)
	var start position.Position
	start.Set("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	e.root = start
	e.history = []uint64{uint64(start.Key)}
	return e
}

// Options returns a snapshot of the current options, for persistence.
func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts
}

// Chess960 reports the current UCI_Chess960 option, for move-notation
// selection in the protocol layer.
func (e *Engine) Chess960() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts.Chess960
}

// NewGame clears the transposition table and resets per-game worker state,
// per spec.md §6's ucinewgame row.
func (e *Engine) NewGame() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.coord = search.NewCoordinator(e.opts.Threads, e.opts.HashMB)
	log.Info("ucinewgame: table reallocated")
}

// SetPosition installs root (and its full key history, oldest first) as the
// position the next "go" searches from.
func (e *Engine) SetPosition(root position.Position, history []uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.root = root
	e.history = history
}

// SetOption applies one setoption name/value pair. Unrecognized names are
// logged and otherwise ignored, matching UCI's tolerant convention.
func (e *Engine) SetOption(name, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch name {
	case "Hash":
		mb, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("Hash: %w", err)
		}
		e.opts.HashMB = roundDownPow2(mb)
		e.coord = search.NewCoordinator(e.opts.Threads, e.opts.HashMB)
		log.Infof("Hash set to %d MB", e.opts.HashMB)

	case "Threads":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("Threads: %w", err)
		}
		if n < 1 {
			n = 1
		}
		if n > 256 {
			n = 256
		}
		e.opts.Threads = n
		e.coord.Threads = n
		log.Infof("Threads set to %d", n)

	case "Contempt":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("Contempt: %w", err)
		}
		e.opts.Contempt = clamp(n, -100, 100)

	case "Level":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("Level: %w", err)
		}
		e.opts.Level = clamp(n, 0, 15)
		if e.opts.Level != 0 {
			// A nonzero level forces a small hash and a shorter depth/node
			// budget, per spec.md's setoption row; Go() reads Level
			// directly, so no further bookkeeping is needed here.
			e.opts.HashMB = 1
			e.coord = search.NewCoordinator(e.opts.Threads, e.opts.HashMB)
		}

	case "UCI_Chess960":
		e.opts.Chess960 = strings.EqualFold(value, "true")

	case "Time Buffer":
		ms, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("Time Buffer: %w", err)
		}
		e.opts.TimeBuffer = time.Duration(ms) * time.Millisecond

	case "Ponder":
		e.opts.Ponder = strings.EqualFold(value, "true")

	default:
		return fmt.Errorf("unrecognized option %q", name)
	}
	return nil
}

func roundDownPow2(n int) int {
	if n < 1 {
		return 1
	}
	size := 1
	for size*2 <= n {
		size *= 2
	}
	return size
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// Go launches a search under limits, calling onInfo after each completed
// iteration, and blocks until the search ends (by limit, by Stop, or
// because no legal move exists).
func (e *Engine) Go(limits uci.Limits, onInfo func(uci.Info)) position.Move {
	e.mu.Lock()
	root := e.root
	history := make([]zobrist.Key, len(e.history))
	for i, k := range e.history {
		history[i] = zobrist.Key(k)
	}
	opts := e.opts
	coord := e.coord
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.mu.Unlock()
	defer cancel()

	sl := toSearchLimits(limits, opts, root.Turn)

	move := coord.Run(ctx, root, history, sl, func(i search.Info) {
		if onInfo == nil {
			return
		}
		onInfo(uci.Info{
			Depth:    i.Depth,
			Score:    mateAwareScore(i.Score),
			Mate:     isMateScore(i.Score),
			Nodes:    i.Nodes,
			Time:     i.Time,
			Hashfull: coord.Table.Hashfull(),
			PV:       i.PV,
		})
	})
	return move
}

// Stop aborts the search in progress, if any, per spec.md §6's stop row.
func (e *Engine) Stop() {
	e.mu.Lock()
	cancel := e.cancel
	e.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func isMateScore(score int) bool {
	return score >= search.Mate-search.MaxPly || score <= -search.Mate+search.MaxPly
}

// mateAwareScore converts an internal centipawn/mate-distance score into
// the unit "info score" reports it in: plies-to-mate when isMateScore,
// unchanged centipawns otherwise.
func mateAwareScore(score int) int {
	if score >= search.Mate-search.MaxPly {
		pliesToMate := search.Mate - score
		return (pliesToMate + 1) / 2
	}
	if score <= -search.Mate+search.MaxPly {
		pliesToMate := search.Mate + score
		return -(pliesToMate + 1) / 2
	}
	return score
}

// defaultMovesToGo is assumed when the controller doesn't send movestogo,
// a conservative guess at how many moves remain until the next time control.
const defaultMovesToGo = 30

// toSearchLimits converts the protocol's absolute clock figures into a
// single move-time budget, applying the level throttle and the configured
// time buffer.
func toSearchLimits(l uci.Limits, opts Options, turn bitboard.Color) search.Limits {
	sl := search.Limits{
		Depth:    l.Depth,
		Nodes:    l.Nodes,
		Infinite: l.Infinite || l.Ponder,
	}

	switch {
	case l.MoveTime > 0:
		sl.MoveTime = l.MoveTime
	case !sl.Infinite && hasClock(l, turn):
		remaining, inc := l.WhiteTime, l.WhiteInc
		if turn == bitboard.Black {
			remaining, inc = l.BlackTime, l.BlackInc
		}
		movesToGo := l.MovesToGo
		if movesToGo <= 0 {
			movesToGo = defaultMovesToGo
		}
		budget := remaining/time.Duration(movesToGo) + inc
		if budget > remaining {
			budget = remaining
		}
		sl.MoveTime = budget
	}

	if opts.Level != 0 && opts.Level < 15 {
		capDepth := 2 + opts.Level
		if sl.Depth == 0 || sl.Depth > capDepth {
			sl.Depth = capDepth
		}
		if sl.MoveTime == 0 || sl.MoveTime > 2*time.Second {
			sl.MoveTime = 2 * time.Second
		}
	}

	if sl.MoveTime > opts.TimeBuffer {
		sl.MoveTime -= opts.TimeBuffer
	} else if sl.MoveTime > 0 {
		sl.MoveTime = 50 * time.Millisecond
	}
	return sl
}

func hasClock(l uci.Limits, turn bitboard.Color) bool {
	if turn == bitboard.Black {
		return l.BlackTime > 0
	}
	return l.WhiteTime > 0
}
