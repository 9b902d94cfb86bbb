package search

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kestrel-engine/kestrel/internal/position"
	"github.com/kestrel-engine/kestrel/internal/tt"
	"github.com/kestrel-engine/kestrel/internal/zobrist"
)

// Limits bounds a single search: whichever condition is reached first ends
// it. A zero value in Depth/Nodes/MoveTime means "no limit of that kind".
type Limits struct {
	Depth    int
	Nodes    uint64
	MoveTime time.Duration
	Infinite bool
}

// Info is delivered once per iterative-deepening iteration of the main
// worker, mirroring the UCI "info" command's fields; nothing is reported
// between iterations.
type Info struct {
	Depth int
	Score int
	Nodes uint64
	Time  time.Duration
	PV    []position.Move
}

// Coordinator runs Lazy SMP: every worker iterative-deepens the same root
// independently, sharing only the transposition table, under
// golang.org/x/sync/errgroup supervision. The lowest-ID worker's result is
// reported, since in Lazy SMP every worker converges toward the same best
// move and the helper threads exist only to enrich the shared table.
type Coordinator struct {
	Table   *tt.Table
	Threads int
}

// NewCoordinator allocates a Coordinator with its own transposition table
// sized to sizeMB megabytes.
func NewCoordinator(threads, sizeMB int) *Coordinator {
	if threads < 1 {
		threads = 1
	}
	return &Coordinator{Table: tt.New(sizeMB), Threads: threads}
}

// Run searches root under limits, calling onInfo after each main-worker
// iteration completes, and returns the best move found.
func (c *Coordinator) Run(ctx context.Context, root position.Position, history []zobrist.Key, limits Limits, onInfo func(Info)) position.Move {
	var stop atomic.Bool
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if limits.MoveTime > 0 {
		timer := time.AfterFunc(limits.MoveTime, func() { stop.Store(true); cancel() })
		defer timer.Stop()
	}
	go func() {
		<-ctx.Done()
		stop.Store(true)
	}()

	maxDepth := limits.Depth
	if maxDepth == 0 {
		maxDepth = MaxPly - 1
	}

	workers := make([]*Worker, c.Threads)
	for i := range workers {
		workers[i] = NewWorker(i, c.Table, &stop)
	}

	var g errgroup.Group
	results := make([]struct {
		move  position.Move
		score int
		line  []position.Move
		nodes uint64
	}, c.Threads)

	start := time.Now()
	for i, w := range workers {
		i, w := i, w
		g.Go(func() error {
			var onIter func(IterInfo)
			if i == 0 && onInfo != nil {
				onIter = func(it IterInfo) {
					onInfo(Info{
						Depth: it.Depth,
						Score: it.Score,
						Nodes: it.Nodes,
						Time:  time.Since(start),
						PV:    it.PV,
					})
				}
			}
			m, s, line := w.Search(root, history, maxDepth, onIter)
			results[i].move, results[i].score, results[i].line, results[i].nodes = m, s, line, w.Nodes
			return nil
		})
		if limits.Nodes > 0 {
			go watchNodeLimit(w, limits.Nodes, &stop)
		}
	}
	g.Wait()

	return results[0].move
}

func watchNodeLimit(w *Worker, limit uint64, stop *atomic.Bool) {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		if w.Nodes >= limit {
			stop.Store(true)
			return
		}
		if stop.Load() {
			return
		}
	}
}
