// Package uci implements the Universal Chess Interface text protocol: the
// command loop that reads controller commands from a reader and writes
// engine responses to a writer, independent of the search/position/option
// internals it drives.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/op/go-logging"

	"github.com/kestrel-engine/kestrel/internal/position"
)

var log = logging.MustGetLogger("uci")

// Name and Author are reported in response to the "uci" command.
const (
	Name   = "Kestrel"
	Author = "Kestrel authors"
)

// Engine is the set of operations the protocol loop drives. engine.Engine
// satisfies it; defining the interface here keeps the protocol layer
// decoupled from search/table construction.
type Engine interface {
	NewGame()
	SetPosition(root position.Position, history []uint64)
	Go(limits Limits, onInfo func(Info)) position.Move
	Stop()
	SetOption(name, value string) error
	Chess960() bool
}

// Limits mirrors the "go" command's subcommands.
type Limits struct {
	Depth     int
	Nodes     uint64
	MoveTime  time.Duration
	WhiteTime time.Duration
	BlackTime time.Duration
	WhiteInc  time.Duration
	BlackInc  time.Duration
	MovesToGo int
	Infinite  bool
	Ponder    bool
}

// Info mirrors one "info" output line's fields.
type Info struct {
	Depth    int
	Score    int
	Mate     bool
	Nodes    uint64
	Time     time.Duration
	Hashfull int
	PV       []position.Move
}

// Loop reads commands from r until "quit" or EOF, writing responses to w.
func Loop(r io.Reader, w io.Writer, eng Engine) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var root position.Position
	root.Set(startFEN)
	var history []uint64

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "uci":
			fmt.Fprintf(w, "id name %s\n", Name)
			fmt.Fprintf(w, "id author %s\n", Author)
			for _, o := range optionList {
				fmt.Fprintln(w, o)
			}
			fmt.Fprintln(w, "uciok")

		case "isready":
			fmt.Fprintln(w, "readyok")

		case "ucinewgame":
			eng.NewGame()
			root.Set(startFEN)
			history = nil

		case "setoption":
			name, value := parseSetOption(fields[1:])
			if err := eng.SetOption(name, value); err != nil {
				log.Warningf("setoption %s: %v", name, err)
			}

		case "position":
			newRoot, newHistory, err := parsePosition(fields[1:])
			if err != nil {
				log.Errorf("position: %v", err)
				continue
			}
			root, history = newRoot, newHistory
			eng.SetPosition(root, history)

		case "go":
			limits := parseGo(fields[1:])
			searchRoot := root
			best := eng.Go(limits, func(i Info) {
				fmt.Fprintln(w, FormatInfo(&searchRoot, i, eng.Chess960()))
			})
			fmt.Fprintln(w, FormatBestMove(&searchRoot, best, eng.Chess960()))

		case "stop":
			eng.Stop()

		case "ponderhit":
			// Search treats ponder and infinite identically (no
			// pondering logic beyond the infinite flag); nothing to do.

		case "quit":
			return

		default:
			log.Debugf("ignoring unknown command %q", fields[0])
		}
	}
}

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// parsePosition handles "[startpos|fen <F>] [moves <m1> <m2> ...]".
func parsePosition(fields []string) (position.Position, []uint64, error) {
	var root position.Position
	i := 0
	switch {
	case len(fields) == 0:
		return root, nil, fmt.Errorf("missing startpos/fen")
	case fields[0] == "startpos":
		if err := root.Set(startFEN); err != nil {
			return root, nil, err
		}
		i = 1
	case fields[0] == "fen":
		j := 1
		for j < len(fields) && fields[j] != "moves" {
			j++
		}
		fen := strings.Join(fields[1:j], " ")
		if err := root.Set(fen); err != nil {
			return root, nil, err
		}
		i = j
	default:
		return root, nil, fmt.Errorf("expected startpos/fen, got %q", fields[0])
	}

	history := []uint64{uint64(root.Key)}
	if i < len(fields) && fields[i] == "moves" {
		for _, tok := range fields[i+1:] {
			m, ok := ParseMove(&root, tok)
			if !ok {
				return root, nil, fmt.Errorf("illegal move %q", tok)
			}
			root = position.Make(&root, m)
			history = append(history, uint64(root.Key))
		}
	}
	return root, history, nil
}

// parseGo parses the "go" subcommand list into Limits.
func parseGo(fields []string) Limits {
	var l Limits
	for i := 0; i < len(fields); i++ {
		switch fields[i] {
		case "depth":
			i++
			l.Depth = atoiOr(fields, i, 0)
		case "nodes":
			i++
			l.Nodes = uint64(atoiOr(fields, i, 0))
		case "movetime":
			i++
			l.MoveTime = time.Duration(atoiOr(fields, i, 0)) * time.Millisecond
		case "wtime":
			i++
			l.WhiteTime = time.Duration(atoiOr(fields, i, 0)) * time.Millisecond
		case "btime":
			i++
			l.BlackTime = time.Duration(atoiOr(fields, i, 0)) * time.Millisecond
		case "winc":
			i++
			l.WhiteInc = time.Duration(atoiOr(fields, i, 0)) * time.Millisecond
		case "binc":
			i++
			l.BlackInc = time.Duration(atoiOr(fields, i, 0)) * time.Millisecond
		case "movestogo":
			i++
			l.MovesToGo = atoiOr(fields, i, 0)
		case "infinite":
			l.Infinite = true
		case "ponder":
			l.Ponder = true
			l.Infinite = true
		}
	}
	return l
}

func atoiOr(fields []string, i, def int) int {
	if i < 0 || i >= len(fields) {
		return def
	}
	n, err := strconv.Atoi(fields[i])
	if err != nil {
		return def
	}
	return n
}

// parseSetOption splits "name <N...> value <V...>" into its two halves; both
// N and V may contain embedded spaces (e.g. "Time Buffer").
func parseSetOption(fields []string) (name, value string) {
	var nameParts, valueParts []string
	mode := ""
	for _, f := range fields {
		switch f {
		case "name":
			mode = "name"
			continue
		case "value":
			mode = "value"
			continue
		}
		if mode == "name" {
			nameParts = append(nameParts, f)
		} else if mode == "value" {
			valueParts = append(valueParts, f)
		}
	}
	return strings.Join(nameParts, " "), strings.Join(valueParts, " ")
}

var optionList = []string{
	"option name Hash type spin default 16 min 1 max 33554432",
	"option name Threads type spin default 1 min 1 max 256",
	"option name Contempt type spin default 0 min -100 max 100",
	"option name Level type spin default 0 min 0 max 15",
	"option name UCI_Chess960 type check default false",
	"option name Time Buffer type spin default 60 min 0 max 10000",
	"option name Ponder type check default false",
}

// FormatInfo renders one "info" line. root is the position the PV starts
// from, needed to resolve each PV move's castling notation in turn.
func FormatInfo(root *position.Position, i Info, chess960 bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "info depth %d score ", i.Depth)
	if i.Mate {
		fmt.Fprintf(&b, "mate %d", i.Score)
	} else {
		fmt.Fprintf(&b, "cp %d", i.Score)
	}
	nps := uint64(0)
	if i.Time > 0 {
		nps = uint64(float64(i.Nodes) / i.Time.Seconds())
	}
	fmt.Fprintf(&b, " time %d nodes %d nps %d hashfull %d pv",
		i.Time.Milliseconds(), i.Nodes, nps, i.Hashfull)
	pos := *root
	for _, m := range i.PV {
		b.WriteByte(' ')
		b.WriteString(FormatMove(&pos, m, chess960))
		pos = position.Make(&pos, m)
	}
	return b.String()
}

// FormatBestMove renders the final "bestmove" line. The zero Move (no legal
// moves available) is rendered as "0000", UCI's convention for "no move".
func FormatBestMove(root *position.Position, m position.Move, chess960 bool) string {
	if m == 0 {
		return "bestmove 0000"
	}
	return "bestmove " + FormatMove(root, m, chess960)
}
