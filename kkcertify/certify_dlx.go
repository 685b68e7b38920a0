package kkcertify

import (
	"context"
	"fmt"

	"github.com/kenkenlogic/kenken/engine"
)

// CertifyDLX independently counts solutions to p by reducing the Latin
// square structure (not the cages — see below) to an exact-cover
// problem and running Knuth's Algorithm X via dancing links, filtering
// each raw Latin-square cover against every cage with engine.Satisfies.
// It counts at most limit cage-satisfying solutions.
//
// The exact-cover matrix only encodes "every cell filled exactly once,
// every row has every value exactly once, every column has every value
// exactly once" — cage arithmetic has no natural exact-cover column, so
// it is checked post-hoc per raw candidate. That makes this a toy
// certifier suited to the small grids (N <= 6 or so) the test corpus
// certifies against, not a scalable second engine: the number of raw
// Latin squares to filter grows enormously with N. maxRawCandidates
// bounds how many raw covers Algorithm X is allowed to enumerate before
// giving up; exhausted=true on return means that bound was hit without
// reaching limit cage-satisfying solutions, i.e. the result is
// inconclusive rather than a certified count.
func CertifyDLX(ctx context.Context, p *engine.Puzzle, limit int, maxRawCandidates int) (count int, exhausted bool, err error) {
	if limit <= 0 {
		return 0, false, fmt.Errorf("kkcertify: limit must be positive")
	}
	n := p.N
	numCols := 3 * n * n
	names := make([]string, numCols)
	colCell := func(cell int) int { return cell }
	colRowVal := func(row, v int) int { return n*n + row*n + (v - 1) }
	colColVal := func(col, v int) int { return 2*n*n + col*n + (v - 1) }
	for cell := 0; cell < n*n; cell++ {
		names[colCell(cell)] = fmt.Sprintf("cell%d", cell)
	}
	for r := 0; r < n; r++ {
		for v := 1; v <= n; v++ {
			names[colRowVal(r, v)] = fmt.Sprintf("row%dval%d", r, v)
		}
	}
	for c := 0; c < n; c++ {
		for v := 1; v <= n; v++ {
			names[colColVal(c, v)] = fmt.Sprintf("col%dval%d", c, v)
		}
	}

	m := newDLXMatrix(numCols, names)

	// rowID encodes (cell, value) as cell*n + (v-1) so a solution (a
	// list of rowIDs) can be decoded straight back into a grid.
	for cell := 0; cell < n*n; cell++ {
		row, col := p.Row(cell), p.Col(cell)
		for v := 1; v <= n; v++ {
			rowID := cell*n + (v - 1)
			m.addRow(rowID, []int{colCell(cell), colRowVal(row, v), colColVal(col, v)})
		}
	}

	cancelled := func() bool { return ctx.Err() != nil }

	// Collect a bounded batch of raw Latin-square covers (cage-blind),
	// then filter each against every cage. limit on search() here is
	// maxRawCandidates, not the caller's solution limit: cage filtering
	// happens only after raw enumeration stops.
	var found [][]int
	m.search(maxRawCandidates, cancelled, nil, &found)

	var accepted int
	for _, sol := range found {
		values := make([]int, n*n)
		for _, rowID := range sol {
			cell := rowID / n
			v := rowID%n + 1
			values[cell] = v
		}
		if cageConstraintsSatisfied(p, values) {
			accepted++
			if accepted >= limit {
				break
			}
		}
	}

	exhausted = len(found) >= maxRawCandidates && accepted < limit
	return accepted, exhausted, ctx.Err()
}

func cageConstraintsSatisfied(p *engine.Puzzle, values []int) bool {
	for i := range p.Cages {
		cage := &p.Cages[i]
		tuple := make([]int, len(cage.Cells))
		for j, cell := range cage.Cells {
			tuple[j] = values[cell]
		}
		if !engine.Satisfies(p, cage, tuple) {
			return false
		}
	}
	return true
}
