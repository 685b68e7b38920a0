package engine

// SolveOne returns the first complete assignment satisfying puzzle under
// ruleset at the given propagation tier, or (nil, false) if the puzzle is
// unsatisfiable. When propagation alone drives every domain to a
// singleton, SolveOne returns without ever recursing into a branch.
func SolveOne(p *Puzzle, r Ruleset, t Tier) (*Grid, bool) {
	return SolveOneTraced(p, r, t, nil)
}

// SolveOneTraced is SolveOne with an optional Tracer for observational
// span markers; passing nil behaves exactly like SolveOne.
func SolveOneTraced(p *Puzzle, r Ruleset, t Tier, tracer *Tracer) (*Grid, bool) {
	s := newState(p, r, t, tracer)
	tracer.Enter("solve")
	count, first := search(s, 1)
	return first, count >= 1
}

// CountUpTo depth-first enumerates complete assignments of puzzle under
// ruleset at tier t, terminating as soon as the count reaches limit. With
// limit=2 this is the uniqueness oracle: the return value is 1 if and
// only if the puzzle has a unique solution. The result saturates at limit.
func CountUpTo(p *Puzzle, r Ruleset, t Tier, limit int) int {
	return CountUpToTraced(p, r, t, limit, nil)
}

// CountUpToTraced is CountUpTo with an optional Tracer.
func CountUpToTraced(p *Puzzle, r Ruleset, t Tier, limit int, tracer *Tracer) int {
	if limit <= 0 {
		return 0
	}
	s := newState(p, r, t, tracer)
	tracer.Enter("solve")
	count, _ := search(s, limit)
	return count
}

// search runs the recursive backtracking driver to completion or until
// limit solutions have been found, whichever comes first. It returns the
// number of solutions found (capped at limit) and the first one found, if
// any.
func search(s *State, limit int) (count int, first *Grid) {
	searchRec(s, limit, &count, &first)
	return count, first
}

// searchRec is the recursive core of §4.G: propagate to fixpoint, select
// an MRV cell, fork on each candidate value in ascending order, and
// recurse, undoing the trail to its pre-branch snapshot on every return.
func searchRec(s *State, limit int, count *int, first **Grid) (stop bool) {
	if !propagate(s) {
		return false
	}

	cell, found := selectMRV(s)
	if !found {
		*count++
		if *first == nil {
			*first = s.snapshotGrid()
		}
		return *count >= limit
	}

	values := s.domains[cell].Values()
	for _, v := range values {
		mark := s.mark()
		s.tracer.Enter("branch")

		_, ok := s.intersectDomain(cell, MaskOf(v))
		if ok {
			s.assignIfSingleton(cell)
			if searchRec(s, limit, count, first) {
				s.undoTo(mark)
				return true
			}
		}

		s.undoTo(mark)
		s.tracer.Enter("backtrack")
	}
	return false
}
