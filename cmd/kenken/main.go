// Command kenken solves or counts solutions to a KenKen puzzle given
// on the command line in kkdesc's textual format.
//
// Usage examples:
//
//	kenken -n 2 -desc "a+5|a,a|b=1" -tier hard
//	kenken -n 4 -desc "..." -limit 2          # uniqueness check
//	kenken -n 4 -desc "..." -cpuprofile out.prof
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"

	"github.com/kenkenlogic/kenken/engine"
	"github.com/kenkenlogic/kenken/kkdesc"
)

func main() {
	n := flag.Int("n", 0, "grid size (required)")
	desc := flag.String("desc", "", "puzzle description in kkdesc format (required)")
	tierName := flag.String("tier", "hard", "propagation tier: none, easy, normal, hard")
	limit := flag.Int("limit", 1, "stop after this many solutions; 2 doubles as a uniqueness check")
	cpuProfile := flag.String("cpuprofile", "", "write a CPU profile to this path")
	verbose := flag.Bool("v", false, "log solver span markers to stderr")
	flag.Parse()

	if *n <= 0 || *desc == "" {
		fmt.Fprintln(os.Stderr, "usage: kenken -n N -desc DESC [-tier T] [-limit L] [-cpuprofile FILE] [-v]")
		os.Exit(2)
	}

	tier, err := parseTier(*tierName)
	if err != nil {
		log.Fatalf("kenken: %v", err)
	}

	puzzle, err := kkdesc.Parse(*n, *desc)
	if err != nil {
		log.Fatalf("kenken: %v", err)
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("kenken: %v", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalf("kenken: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	var tracer *engine.Tracer
	if *verbose {
		tracer = engine.NewTracer(log.New(os.Stderr, "", log.LstdFlags))
	}

	if *limit <= 1 {
		grid, ok := engine.SolveOneTraced(puzzle, engine.DefaultRuleset(), tier, tracer)
		if !ok {
			fmt.Println("unsatisfiable")
			os.Exit(1)
		}
		printGrid(grid)
		return
	}

	count := engine.CountUpToTraced(puzzle, engine.DefaultRuleset(), tier, *limit, tracer)
	fmt.Printf("solutions: %d", count)
	if count >= *limit {
		fmt.Printf(" (capped at limit=%d)", *limit)
	}
	fmt.Println()
}

func parseTier(name string) (engine.Tier, error) {
	switch name {
	case "none":
		return engine.TierNone, nil
	case "easy":
		return engine.TierEasy, nil
	case "normal":
		return engine.TierNormal, nil
	case "hard":
		return engine.TierHard, nil
	default:
		return 0, fmt.Errorf("unknown tier %q", name)
	}
}

func printGrid(g *engine.Grid) {
	for _, row := range g.Rows() {
		for i, v := range row {
			if i > 0 {
				fmt.Print(" ")
			}
			fmt.Print(v)
		}
		fmt.Println()
	}
}
