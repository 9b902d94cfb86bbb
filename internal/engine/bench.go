package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/kestrel-engine/kestrel/internal/position"
	"github.com/kestrel-engine/kestrel/internal/search"
)

// benchFEN is a small fixed suite of positions exercising the opening,
// middlegame, and endgame, searched to a fixed depth for node/NPS regression
// comparison across engine builds; Demolito's test.c bench command does the
// same job with its own suite.
var benchFEN = []string{
	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"4k3/8/4K3/8/8/8/8/7R w - - 0 1",
}

// BenchResult summarizes one -bench run.
type BenchResult struct {
	Nodes    uint64
	Elapsed  time.Duration
	NPS      uint64
}

// Bench searches the fixed suite to depth, single-threaded, and reports
// total nodes and nodes-per-second. It exists for build-to-build regression
// comparison, not as an automated pass/fail test.
func Bench(depth int) BenchResult {
	coord := search.NewCoordinator(1, 16)
	var totalNodes uint64
	start := time.Now()

	for _, fen := range benchFEN {
		var pos position.Position
		if err := pos.Set(fen); err != nil {
			continue
		}
		limits := search.Limits{Depth: depth}
		var nodes uint64
		coord.Run(context.Background(), pos, nil, limits, func(i search.Info) {
			nodes = i.Nodes
		})
		totalNodes += nodes
	}

	elapsed := time.Since(start)
	nps := uint64(0)
	if elapsed > 0 {
		nps = uint64(float64(totalNodes) / elapsed.Seconds())
	}
	return BenchResult{Nodes: totalNodes, Elapsed: elapsed, NPS: nps}
}

// String renders a bench result the way a UCI log line would.
func (r BenchResult) String() string {
	return fmt.Sprintf("%d nodes %d nps %s", r.Nodes, r.NPS, r.Elapsed)
}
