// Command mcc-perft validates the move generator by counting leaf nodes of
// the legal move tree. With no flags it walks the starting position up to
// the requested depth and compares against the published reference counts.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hailam/mcc/internal/board"
	"github.com/hailam/mcc/internal/engine"
)

var (
	fen    = flag.String("fen", board.StartFEN, "position to search from")
	depth  = flag.Int("depth", 5, "maximum perft depth")
	divide = flag.Bool("divide", false, "split the count by root move")
)

// Reference counts for the starting position, depths 0-6.
var startPosExpected = []uint64{1, 20, 400, 8902, 197281, 4865609, 119060324}

func main() {
	flag.Parse()

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mcc-perft: %v\n", err)
		os.Exit(1)
	}

	eng := engine.New()
	p := message.NewPrinter(language.English)

	if *divide {
		start := time.Now()
		entries := eng.Divide(pos, *depth)
		var total uint64
		for _, e := range entries {
			p.Printf("%s: %d\n", e.Move, e.Nodes)
			total += e.Nodes
		}
		p.Printf("\nTotal: %d nodes in %v\n", total, time.Since(start).Round(time.Millisecond))
		return
	}

	ok := true
	for d := 1; d <= *depth; d++ {
		start := time.Now()
		nodes := eng.Perft(pos.Copy(), d)
		elapsed := time.Since(start)

		var nps float64
		if elapsed > 0 {
			nps = float64(nodes) / elapsed.Seconds()
		}

		if *fen == board.StartFEN && d < len(startPosExpected) {
			status := "ok"
			if nodes != startPosExpected[d] {
				status = p.Sprintf("FAIL, expected %d", startPosExpected[d])
				ok = false
			}
			p.Printf("perft(%d) = %12d  [%s]  %v  (%.0f nps)\n", d, nodes, status, elapsed.Round(time.Millisecond), nps)
		} else {
			p.Printf("perft(%d) = %12d  %v  (%.0f nps)\n", d, nodes, elapsed.Round(time.Millisecond), nps)
		}
	}

	if !ok {
		os.Exit(1)
	}
}
