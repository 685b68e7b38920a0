// Package kkgen generates KenKen puzzles: a randomized Latin square
// filling, greedy region-growing cage assignment, and a uniqueness
// pass driven by engine.CountUpTo: each attempt fills a fresh Latin
// square and re-cuts cages, until the puzzle has exactly one solution
// or the attempt budget runs out.
package kkgen

import (
	"fmt"
	"math/rand"

	"github.com/kenkenlogic/kenken/engine"
)

// Options configures puzzle generation.
type Options struct {
	N           int
	Seed        int64
	MaxCageSize int // 0 means 4
	MaxAttempts int // 0 means 200
}

// Generate produces a puzzle with a unique solution for opts.N, along
// with the solution grid used to construct it. It retries with fresh
// Latin squares and cage groupings until CountUpTo confirms uniqueness
// or opts.MaxAttempts is exhausted.
func Generate(opts Options) (*engine.Puzzle, *engine.Grid, error) {
	n := opts.N
	if n <= 0 || n > engine.MaxN {
		return nil, nil, fmt.Errorf("kkgen: invalid grid size %d", n)
	}
	maxCage := opts.MaxCageSize
	if maxCage <= 0 {
		maxCage = 4
	}
	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 200
	}

	rng := rand.New(rand.NewSource(opts.Seed))

	for attempt := 0; attempt < maxAttempts; attempt++ {
		solution := randomLatinSquare(n, rng)
		cages := groupIntoCages(n, solution, maxCage, rng)

		p, err := engine.NewPuzzle(n, cages)
		if err != nil {
			continue // region cut produced an invalid cage; try again
		}
		if engine.CountUpTo(p, engine.DefaultRuleset(), engine.TierHard, 2) != 1 {
			continue
		}

		values := make([]int, n*n)
		for r := 0; r < n; r++ {
			for c := 0; c < n; c++ {
				values[r*n+c] = solution[r][c]
			}
		}
		return p, &engine.Grid{N: n, Values: values}, nil
	}
	return nil, nil, fmt.Errorf("kkgen: failed to generate a unique %dx%d puzzle in %d attempts", n, n, maxAttempts)
}

// randomLatinSquare builds an n x n Latin square from the cyclic square
// (r+c)%n+1 by applying a random row permutation and a random column
// permutation — every outcome of this process is itself a valid Latin
// square, and the two random permutations give enough variety for
// cage-cutting to differ from one attempt to the next under a fixed
// seed.
func randomLatinSquare(n int, rng *rand.Rand) [][]int {
	base := make([][]int, n)
	for r := 0; r < n; r++ {
		base[r] = make([]int, n)
		for c := 0; c < n; c++ {
			base[r][c] = (r+c)%n + 1
		}
	}

	rowPerm := rng.Perm(n)
	colPerm := rng.Perm(n)

	square := make([][]int, n)
	for r := 0; r < n; r++ {
		square[r] = make([]int, n)
		for c := 0; c < n; c++ {
			square[r][c] = base[rowPerm[r]][colPerm[c]]
		}
	}
	return square
}

// groupIntoCages partitions the grid into cages by randomized region
// growing: repeatedly pick an uncovered cell, grow a region into its
// uncovered orthogonal neighbors up to a random size in [1, maxCage],
// then pick an operation that the region's actual values satisfy.
func groupIntoCages(n int, solution [][]int, maxCage int, rng *rand.Rand) []engine.Cage {
	covered := make([]bool, n*n)
	var cages []engine.Cage

	cellID := func(r, c int) int { return r*n + c }
	neighbors := func(cell int) []int {
		r, c := cell/n, cell%n
		var out []int
		if r > 0 {
			out = append(out, cellID(r-1, c))
		}
		if r < n-1 {
			out = append(out, cellID(r+1, c))
		}
		if c > 0 {
			out = append(out, cellID(r, c-1))
		}
		if c < n-1 {
			out = append(out, cellID(r, c+1))
		}
		return out
	}

	for start := 0; start < n*n; start++ {
		if covered[start] {
			continue
		}
		targetSize := 1 + rng.Intn(maxCage)
		region := []int{start}
		covered[start] = true
		frontier := append([]int{}, neighbors(start)...)

		for len(region) < targetSize && len(frontier) > 0 {
			idx := rng.Intn(len(frontier))
			cand := frontier[idx]
			frontier[idx] = frontier[len(frontier)-1]
			frontier = frontier[:len(frontier)-1]
			if covered[cand] {
				continue
			}
			region = append(region, cand)
			covered[cand] = true
			frontier = append(frontier, neighbors(cand)...)
		}

		cages = append(cages, cageFor(n, solution, region, rng))
	}
	return cages
}

// cageFor picks an operation and target consistent with region's actual
// values. Single-cell regions are always Eq. Two-cell regions pick a
// random one of Add/Sub/Mul/Div among those the pair's values satisfy:
// Add and Mul always, Sub when the values differ, Div when one divides
// the other. Larger regions use Add or Mul on a coin flip of rng; the
// Mul target is the plain product of the values, with no range check.
func cageFor(n int, solution [][]int, region []int, rng *rand.Rand) engine.Cage {
	vals := make([]int, len(region))
	for i, cell := range region {
		vals[i] = solution[cell/n][cell%n]
	}

	if len(region) == 1 {
		return engine.Cage{Cells: region, Op: engine.OpEq, Target: int64(vals[0])}
	}

	if len(region) == 2 {
		a, b := vals[0], vals[1]
		choices := []engine.Op{engine.OpAdd}
		if a != b {
			choices = append(choices, engine.OpSub)
		}
		if (a%b == 0) || (b%a == 0) {
			choices = append(choices, engine.OpDiv)
		}
		choices = append(choices, engine.OpMul)
		op := choices[rng.Intn(len(choices))]
		switch op {
		case engine.OpSub:
			diff := a - b
			if diff < 0 {
				diff = -diff
			}
			return engine.Cage{Cells: region, Op: engine.OpSub, Target: int64(diff)}
		case engine.OpDiv:
			var q int64
			if a%b == 0 {
				q = int64(a / b)
			} else {
				q = int64(b / a)
			}
			return engine.Cage{Cells: region, Op: engine.OpDiv, Target: q}
		case engine.OpMul:
			product := int64(1)
			for _, v := range vals {
				product *= int64(v)
			}
			return engine.Cage{Cells: region, Op: engine.OpMul, Target: product}
		default:
			sum := int64(0)
			for _, v := range vals {
				sum += int64(v)
			}
			return engine.Cage{Cells: region, Op: engine.OpAdd, Target: sum}
		}
	}

	if rng.Intn(2) == 0 {
		sum := int64(0)
		for _, v := range vals {
			sum += int64(v)
		}
		return engine.Cage{Cells: region, Op: engine.OpAdd, Target: sum}
	}
	product := int64(1)
	for _, v := range vals {
		product *= int64(v)
	}
	return engine.Cage{Cells: region, Op: engine.OpMul, Target: product}
}
