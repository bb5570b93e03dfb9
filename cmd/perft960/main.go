//
// FrankyGo - UCI chess engine in GO for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Command perft960 is a Chess960 perft runner: it parses a (possibly
// Shredder-style) FEN, generates legal move trees by copy-make, and counts
// leaves at a given depth, optionally through a direct-mapped transposition
// cache.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/sync/semaphore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/frankkopp/perft960/internal/config"
	"github.com/frankkopp/perft960/internal/logging"
	"github.com/frankkopp/perft960/internal/movegen"
	"github.com/frankkopp/perft960/internal/perftcache"
	"github.com/frankkopp/perft960/internal/position"
	"github.com/frankkopp/perft960/internal/util"
)

var out = message.NewPrinter(language.German)

// benchSuite is the fixed 12-position benchmark (6 classical, 6 Chess960),
// run at depth 6. The sum of all depth-0..6 node counts across the suite
// is the single strongest end-to-end correctness check this program has.
var benchSuite = []string{
	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 0 1",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 1",
	"bqnb1rkr/pp3ppp/3ppn2/2p5/5P2/P2P4/NPP1P1PP/BQ1BNRKR w HFhf - 0 1",
	"bnqbnr1r/p1p1ppkp/3p4/1p4p1/P7/3NP2P/1PPP1PP1/BNQB1RKR w HF - 0 1",
	"nrbq2kr/ppppppb1/5n1p/5Pp1/8/P5P1/1PPPP2P/NRBQNBKR w HBhb - 0 1",
	"1r1bkqbr/pppp1ppp/2nnp3/8/2P5/N4P2/PP1PP1PP/1RNBKQBR w Hh - 0 1",
	"rkqnbbnr/ppppppp1/8/7p/3N4/6PP/PPPPPP2/RKQNBB1R w HAa - 0 1",
	"rbqkr1bn/pp1ppp2/2p1n2p/6p1/8/4BPNP/PPPPP1P1/RBQKRN2 w EAea - 0 1",
}

// benchDepth is the per-position depth the suite is run to; the suite sums
// every depth from 0 through benchDepth, not just the leaf depth.
const benchDepth = 6

// benchTotalWant is the literal the bench command MUST reproduce; any other
// total is a BrokenMoveGenerator condition.
const benchTotalWant uint64 = 21_799_671_196

func main() {
	profileFlag := flag.Bool("profile", false, "wrap the run in CPU profiling (github.com/pkg/profile)")
	loglvl := flag.String("loglvl", "", "standard log level\n(critical|error|warning|notice|info|debug)")
	configFile := flag.String("config", "./config.toml", "path to configuration settings file")
	flag.Usage = printHelp
	flag.Parse()

	if *profileFlag {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	config.ConfFile = *configFile
	config.Setup()
	if lvl, found := config.LogLevels[*loglvl]; found {
		config.Settings.Log.Level = lvl
	}
	log := logging.GetLog()
	log.Debugf("configuration: %+v", config.Settings)

	args := flag.Args()
	if len(args) == 0 {
		printHelp()
		os.Exit(1)
	}

	var err error
	switch args[0] {
	case "perft":
		err = runPerft(args[1:])
	case "bench":
		err = runBench(args[1:])
	case "split":
		err = runSplit(args[1:])
	case "hash":
		err = runHash(args[1:])
	case "fen":
		err = runFen(args[1:])
	case "version":
		printVersion()
	case "help":
		printHelp()
	default:
		printHelp()
		os.Exit(1)
	}
	if err != nil {
		log.Criticalf("%v", err)
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func printHelp() {
	out.Println("perft960 - Chess960 perft engine")
	out.Println("usage:")
	out.Println("  perft960 perft <FEN> <depth> [<hash_mb>]")
	out.Println("  perft960 bench [<hash_mb>]")
	out.Println("  perft960 split <FEN> <depth> [<hash_mb>]")
	out.Println("  perft960 hash <N_mb>")
	out.Println("  perft960 fen <FEN>")
	out.Println("  perft960 version")
	out.Println("  perft960 help")
}

func printVersion() {
	out.Println("perft960 - Chess960 perft engine")
	out.Println("module: github.com/frankkopp/perft960")
	out.Printf("Go runtime: %s, %d CPU\n", runtime.Version(), runtime.NumCPU())
	out.Println("features: Shredder-FEN intake, copy-make move generation,")
	out.Println("          direct-mapped (key,depth) perft cache, bench/split/perft/hash/fen verbs")
}

func hashSizeOrDefault(args []string, index int) (int, error) {
	if len(args) <= index {
		return config.Settings.Perft.DefaultHashSizeMB, nil
	}
	var mb int
	if _, err := fmt.Sscanf(args[index], "%d", &mb); err != nil {
		return 0, fmt.Errorf("bad hash size %q: %w", args[index], err)
	}
	return mb, nil
}

func newCache(mb int) (*perftcache.Cache, error) {
	c, err := perftcache.New(mb)
	if err != nil {
		return nil, fmt.Errorf("%w: cache allocation failed at %d MB", err, mb)
	}
	return c, nil
}

// runPerft implements `perft <FEN> <depth> [<hash_mb>]`: prints per-depth
// node counts, nodes/sec, and wall-clock time from depth 0 up to the
// requested depth, then the cumulative total across all of them.
func runPerft(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("perft: need <FEN> <depth> [<hash_mb>]")
	}
	fen := args[0]
	var depth int
	if _, err := fmt.Sscanf(args[1], "%d", &depth); err != nil {
		return fmt.Errorf("bad depth %q: %w", args[1], err)
	}
	mb, err := hashSizeOrDefault(args, 2)
	if err != nil {
		return err
	}
	cache, err := newCache(mb)
	if err != nil {
		return err
	}
	pos, layout, err := position.ParseFEN(fen)
	if err != nil {
		return err
	}

	var cumulative uint64
	for d := 0; d <= depth; d++ {
		start := time.Now()
		nodes := movegen.Perft(pos, &layout, d, cache)
		elapsed := time.Since(start)
		cumulative += nodes
		out.Printf("depth %2d: %20d nodes  %12d nps  %v\n", d, nodes, util.Nps(nodes, elapsed), elapsed)
	}
	out.Printf("cumulative: %d\n", cumulative)
	return nil
}

// runBench implements `bench [<hash_mb>]`: runs the fixed 12-position suite
// at benchDepth, each position's depth-0..benchDepth totals concurrently
// (positions are independent: each goroutine parses its own position and
// builds its own cache, so no mutable state is shared and every recursive
// perft run stays single-threaded — concurrency here is only across the 12
// independent top-level runs, bounded by a semaphore sized to the
// configured worker count).
func runBench(args []string) error {
	mb, err := hashSizeOrDefault(args, 0)
	if err != nil {
		return err
	}

	workers := config.Settings.Perft.Workers
	if workers < 1 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))

	totals := make([]uint64, len(benchSuite))
	errs := make([]error, len(benchSuite))
	var wg sync.WaitGroup
	start := time.Now()
	for i, fen := range benchSuite {
		i, fen := i, fen
		if err := sem.Acquire(context.Background(), 1); err != nil {
			return fmt.Errorf("bench: %w", err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			cache, cerr := newCache(mb)
			if cerr != nil {
				errs[i] = cerr
				return
			}
			pos, layout, perr := position.ParseFEN(fen)
			if perr != nil {
				errs[i] = perr
				return
			}
			var sum uint64
			for d := 0; d <= benchDepth; d++ {
				sum += movegen.Perft(pos, &layout, d, cache)
			}
			totals[i] = sum
		}()
	}
	wg.Wait()
	for _, e := range errs {
		if e != nil {
			return e
		}
	}

	var grandTotal uint64
	for i, fen := range benchSuite {
		out.Printf("[ #%d: %s ] %d\n", i+1, fen, totals[i])
		grandTotal += totals[i]
	}
	elapsed := time.Since(start)
	out.Println("==============================================")
	out.Printf("total: %d  (%v, %d nps)\n", grandTotal, elapsed, util.Nps(grandTotal, elapsed))

	if grandTotal != benchTotalWant {
		return fmt.Errorf("BrokenMoveGenerator: bench total %d != expected %d", grandTotal, benchTotalWant)
	}
	return nil
}

// runSplit implements `split <FEN> <depth> [<hash_mb>]`: per-root-move
// perft counts at depth-1, in generator order (never sorted, per §8
// property 13 / §9's order-property note).
func runSplit(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("split: need <FEN> <depth> [<hash_mb>]")
	}
	fen := args[0]
	var depth int
	if _, err := fmt.Sscanf(args[1], "%d", &depth); err != nil {
		return fmt.Errorf("bad depth %q: %w", args[1], err)
	}
	mb, err := hashSizeOrDefault(args, 2)
	if err != nil {
		return err
	}
	cache, err := newCache(mb)
	if err != nil {
		return err
	}
	pos, layout, err := position.ParseFEN(fen)
	if err != nil {
		return err
	}

	entries, total := movegen.Split(pos, &layout, depth, cache)
	for _, e := range entries {
		out.Printf("%s: %d\n", e.Move, e.Nodes)
	}
	out.Printf("moves: %d  total: %d\n", len(entries), total)
	return nil
}

// runHash implements `hash <N_mb>`: reports the cache capacity that would
// result from the requested size, after clamping to [MinSizeMB, MaxSizeMB]
// and rounding down to a power of two.
func runHash(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("hash: need <N_mb>")
	}
	var mb int
	if _, err := fmt.Sscanf(args[0], "%d", &mb); err != nil {
		return fmt.Errorf("bad hash size %q: %w", args[0], err)
	}
	cache, err := newCache(mb)
	if err != nil {
		return err
	}
	out.Printf("hash: requested %d MB, clamped to [%d, %d], capacity %d entries (%d bytes)\n",
		mb, perftcache.MinSizeMB, perftcache.MaxSizeMB, cache.Capacity(), cache.SizeBytes())
	return nil
}

// runFen implements `fen <FEN>`: validates intake (BadFen / BadBoard /
// IllegalPosition) and prints the resulting board.
func runFen(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("fen: need <FEN>")
	}
	pos, layout, err := position.ParseFEN(args[0])
	if err != nil {
		return err
	}
	out.Println(pos.String())
	out.Printf("key: %x\n", pos.Key())
	out.Printf("king squares: white=%s black=%s\n", layout.KingSq[0], layout.KingSq[1])
	return nil
}
