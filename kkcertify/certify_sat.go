package kkcertify

import (
	"context"

	"github.com/kenkenlogic/kenken/engine"
)

// satLiteral is a 1-indexed DIMACS-style literal: positive means the
// variable is asserted true, negative means asserted false.
type satLiteral int

// satSolver is a minimal DPLL solver: unit propagation plus
// chronological branching, no clause learning or restarts. It exists to
// cross-check engine's answer from an entirely different algorithm
// family (SAT rather than constraint propagation + search), not to be
// fast — see CertifySAT.
type satSolver struct {
	numVars int
	clauses [][]satLiteral
	assign  []int8 // 0 unknown, 1 true, -1 false, indexed by var-1
}

func newSATSolver(numVars int) *satSolver {
	return &satSolver{numVars: numVars, assign: make([]int8, numVars)}
}

func (s *satSolver) addClause(lits ...satLiteral) {
	s.clauses = append(s.clauses, lits)
}

func litVar(l satLiteral) int {
	if l < 0 {
		return int(-l) - 1
	}
	return int(l) - 1
}

func litSatisfied(l satLiteral, assign []int8) bool {
	v := assign[litVar(l)]
	if l > 0 {
		return v == 1
	}
	return v == -1
}

func litFalsified(l satLiteral, assign []int8) bool {
	v := assign[litVar(l)]
	if l > 0 {
		return v == -1
	}
	return v == 1
}

// solveAll enumerates satisfying assignments up to limit, invoking
// onSolution with each one (as a values-by-var boolean array) and
// stopping once limit have been found or ctx is cancelled.
func (s *satSolver) solveAll(ctx context.Context, limit int, onSolution func([]int8)) int {
	found := 0
	var rec func() bool // returns true to stop the whole search
	rec = func() bool {
		if ctx.Err() != nil {
			return true
		}
		// Unit propagation to a fixpoint, tracking assignments made so
		// they can be undone on backtrack.
		var trail []int
		ok := true
	propagate:
		for {
			progressed := false
			for _, clause := range s.clauses {
				unassignedCount := 0
				var unit satLiteral
				satisfied := false
				for _, l := range clause {
					if litSatisfied(l, s.assign) {
						satisfied = true
						break
					}
					if !litFalsified(l, s.assign) {
						unassignedCount++
						unit = l
					}
				}
				if satisfied {
					continue
				}
				if unassignedCount == 0 {
					ok = false
					break propagate
				}
				if unassignedCount == 1 {
					v := litVar(unit)
					if unit > 0 {
						s.assign[v] = 1
					} else {
						s.assign[v] = -1
					}
					trail = append(trail, v)
					progressed = true
				}
			}
			if !progressed {
				break
			}
		}

		stop := false
		if ok {
			branch := -1
			for v := 0; v < s.numVars; v++ {
				if s.assign[v] == 0 {
					branch = v
					break
				}
			}
			if branch == -1 {
				found++
				onSolution(s.assign)
				stop = found >= limit
			} else {
				for _, val := range [2]int8{1, -1} {
					s.assign[branch] = val
					if rec() {
						stop = true
					}
					s.assign[branch] = 0
					if stop {
						break
					}
				}
			}
		}

		for _, v := range trail {
			s.assign[v] = 0
		}
		return stop
	}
	rec()
	return found
}

// buildKenKenCNF encodes p's Latin-square and cage constraints as CNF
// over variables x[cell][v] = cell*n + (v-1), matching CertifyDLX's
// cell*n+(v-1) row-ID scheme so the two certifiers decode solutions the
// same way.
func buildKenKenCNF(p *engine.Puzzle) *satSolver {
	n := p.N
	s := newSATSolver(n * n * n)
	v := func(cell, val int) satLiteral { return satLiteral(cell*n + (val - 1) + 1) }

	for cell := 0; cell < n*n; cell++ {
		lits := make([]satLiteral, 0, n)
		for val := 1; val <= n; val++ {
			lits = append(lits, v(cell, val))
		}
		s.addClause(lits...)
		for a := 1; a <= n; a++ {
			for b := a + 1; b <= n; b++ {
				s.addClause(-v(cell, a), -v(cell, b))
			}
		}
	}

	for r := 0; r < n; r++ {
		for val := 1; val <= n; val++ {
			lits := make([]satLiteral, 0, n)
			for c := 0; c < n; c++ {
				lits = append(lits, v(p.CellID(r, c), val))
			}
			s.addClause(lits...)
		}
		for a := 0; a < n; a++ {
			for b := a + 1; b < n; b++ {
				for val := 1; val <= n; val++ {
					s.addClause(-v(p.CellID(r, a), val), -v(p.CellID(r, b), val))
				}
			}
		}
	}
	for c := 0; c < n; c++ {
		for val := 1; val <= n; val++ {
			lits := make([]satLiteral, 0, n)
			for r := 0; r < n; r++ {
				lits = append(lits, v(p.CellID(r, c), val))
			}
			s.addClause(lits...)
		}
		for a := 0; a < n; a++ {
			for b := a + 1; b < n; b++ {
				for val := 1; val <= n; val++ {
					s.addClause(-v(p.CellID(a, c), val), -v(p.CellID(b, c), val))
				}
			}
		}
	}

	for i := range p.Cages {
		cage := &p.Cages[i]
		forbidCageTuples(s, p, cage, v)
	}
	return s
}

// forbidCageTuples enumerates every value tuple for cage.Cells and adds
// a blocking clause for each one that fails engine.Satisfies. This is
// the part of the encoding that does not scale: it is exponential in
// cage size, acceptable only for the small cages (size <= ~4) this
// toy certifier is meant to check.
func forbidCageTuples(s *satSolver, p *engine.Puzzle, cage *engine.Cage, v func(cell, val int) satLiteral) {
	n := p.N
	k := len(cage.Cells)
	tuple := make([]int, k)

	var rec func(pos int)
	rec = func(pos int) {
		if pos == k {
			if !engine.Satisfies(p, cage, tuple) {
				lits := make([]satLiteral, k)
				for i, cell := range cage.Cells {
					lits[i] = -v(cell, tuple[i])
				}
				s.addClause(lits...)
			}
			return
		}
		for val := 1; val <= n; val++ {
			tuple[pos] = val
			rec(pos + 1)
		}
	}
	rec(0)
}

// CertifySAT independently counts solutions to p (up to limit) via DPLL
// over the CNF encoding buildKenKenCNF produces. Like CertifyDLX this is
// a toy certifier: the cage encoding is exponential in cage size, so it
// is only practical for the small puzzles the test corpus certifies.
func CertifySAT(ctx context.Context, p *engine.Puzzle, limit int) int {
	s := buildKenKenCNF(p)
	return s.solveAll(ctx, limit, func([]int8) {})
}
