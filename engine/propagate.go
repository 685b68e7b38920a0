package engine

// propagate runs the fixpoint loop interleaving unit propagation (§4.F)
// with cage tuple propagation (§4.D via the cache in §4.E) until no mask
// changes in a full round or a contradiction appears. It returns false on
// contradiction; the caller must then abandon this branch (or, at the
// root, report Unsatisfiable).
func propagate(s *State) bool {
	for {
		s.tracer.Enter("propagate")

		if !verifyLatin(s) {
			return false
		}

		changed := false

		ok := unitPropagate(s, &changed)
		if !ok {
			return false
		}

		ok = cagePropagate(s, &changed)
		if !ok {
			return false
		}

		if !changed {
			return true
		}
	}
}

// verifyLatin is a cheap safety net: it catches the case where two
// distinct cells in the same row or column are each already singleton on
// the same value (possible when two Eq cages fix conflicting cells before
// a propagation round has had a chance to prune between them).
func verifyLatin(s *State) bool {
	n := s.p.N
	for r := 0; r < n; r++ {
		var seen Mask
		for c := 0; c < n; c++ {
			d := s.domains[s.p.CellID(r, c)]
			if d.IsEmpty() {
				return false
			}
			if d.IsSingleton() {
				v := d.SingletonValue()
				if seen.Has(v) {
					return false
				}
				seen = seen.With(v)
			}
		}
	}
	for c := 0; c < n; c++ {
		var seen Mask
		for r := 0; r < n; r++ {
			d := s.domains[s.p.CellID(r, c)]
			if d.IsSingleton() {
				v := d.SingletonValue()
				if seen.Has(v) {
					return false
				}
				seen = seen.With(v)
			}
		}
	}
	return true
}

// unitPropagate applies naked-singles elimination unconditionally, hidden
// singles at Tier >= Normal, and naked pairs/triples at Tier::Hard,
// across every row and column (§4.F).
func unitPropagate(s *State, changed *bool) bool {
	n := s.p.N

	for r := 0; r < n; r++ {
		if !propagateUnitAssigned(s, changed, rowCells(s.p, r), s.rowAssigned[r]) {
			return false
		}
	}
	for c := 0; c < n; c++ {
		if !propagateUnitAssigned(s, changed, colCells(s.p, c), s.colAssigned[c]) {
			return false
		}
	}

	if s.tier >= TierNormal {
		for r := 0; r < n; r++ {
			if !hiddenSingles(s, changed, rowCells(s.p, r)) {
				return false
			}
		}
		for c := 0; c < n; c++ {
			if !hiddenSingles(s, changed, colCells(s.p, c)) {
				return false
			}
		}
	}

	if s.tier == TierHard {
		for r := 0; r < n; r++ {
			nakedSubsets(s, changed, rowCells(s.p, r))
		}
		for c := 0; c < n; c++ {
			nakedSubsets(s, changed, colCells(s.p, c))
		}
	}

	return true
}

func rowCells(p *Puzzle, r int) []int {
	cells := make([]int, p.N)
	for c := 0; c < p.N; c++ {
		cells[c] = p.CellID(r, c)
	}
	return cells
}

func colCells(p *Puzzle, c int) []int {
	cells := make([]int, p.N)
	for r := 0; r < p.N; r++ {
		cells[r] = p.CellID(r, c)
	}
	return cells
}

// propagateUnitAssigned removes every already-placed value in the unit
// from each of the unit's not-yet-singleton cells (naked singles).
func propagateUnitAssigned(s *State, changed *bool, cells []int, assigned Mask) bool {
	if assigned.IsEmpty() {
		return true
	}
	keep := assigned.Complement(s.p.N)
	for _, cell := range cells {
		if s.domains[cell].IsSingleton() {
			continue
		}
		chg, ok := s.intersectDomain(cell, keep)
		if !ok {
			return false
		}
		if chg {
			*changed = true
			s.assignIfSingleton(cell)
		}
	}
	return true
}

// hiddenSingles assigns any value that has exactly one candidate cell
// left in the unit.
func hiddenSingles(s *State, changed *bool, cells []int) bool {
	n := s.p.N
	for v := 1; v <= n; v++ {
		candidate := -1
		count := 0
		placed := false
		for _, cell := range cells {
			d := s.domains[cell]
			if d.IsSingleton() {
				if d.SingletonValue() == v {
					placed = true
					break
				}
				continue
			}
			if d.Has(v) {
				count++
				candidate = cell
			}
		}
		if placed {
			continue
		}
		if count == 0 {
			return false // v has nowhere to go in this unit: contradiction
		}
		if count == 1 {
			chg, ok := s.intersectDomain(candidate, MaskOf(v))
			if !ok {
				return false
			}
			if chg {
				*changed = true
				s.assignIfSingleton(candidate)
			}
		}
	}
	return true
}

// nakedSubsets removes a size-2 or size-3 identical domain shared by
// exactly that many unassigned cells from every other unassigned cell in
// the unit.
func nakedSubsets(s *State, changed *bool, cells []int) {
	for _, size := range [2]int{2, 3} {
		for _, cell := range cells {
			d := s.domains[cell]
			if d.Popcount() != size {
				continue
			}
			matching := 0
			for _, other := range cells {
				if s.domains[other] == d {
					matching++
				}
			}
			if matching != size {
				continue
			}
			keep := d.Complement(s.p.N)
			for _, other := range cells {
				if s.domains[other] == d {
					continue
				}
				if s.domains[other].IsSingleton() {
					continue
				}
				chg, ok := s.intersectDomain(other, keep)
				if ok && chg {
					*changed = true
					s.assignIfSingleton(other)
				}
			}
		}
	}
}

// cagePropagate runs the tuple enumerator for every cage the tier's
// enumeration policy selects, consulting and then populating the cage
// cache, and applies each cage's any-masks (and, at Tier::Hard, its
// unit-forced values) back onto the domains. Regardless of tier, a cage
// whose cells are all already singleton is checked directly against
// Satisfies: that is a plain O(1) verification, not enumeration, and
// skipping it at Tier::None would let the search accept any Latin
// square without ever consulting the cage's operation or target.
func cagePropagate(s *State, changed *bool) bool {
	for ci := range s.p.Cages {
		cage := &s.p.Cages[ci]
		k := len(cage.Cells)

		unassigned := 0
		for _, cell := range cage.Cells {
			if !s.domains[cell].IsSingleton() {
				unassigned++
			}
		}

		if s.tier == TierNone {
			if unassigned == 0 {
				tuple := s.scratch.tuple[:k]
				for i, cell := range cage.Cells {
					tuple[i] = s.domains[cell].SingletonValue()
				}
				if !Satisfies(s.p, cage, tuple) {
					return false
				}
			}
			continue
		}
		if s.tier == TierEasy && unassigned > 2 {
			continue
		}

		doms := s.scratch.cageDoms[:k]
		for i, cell := range cage.Cells {
			doms[i] = s.domains[cell]
		}

		key := makeCacheKey(cage.Op, s.tier, cage.Target, cage.Cells, doms)
		var res EnumerateResult
		var ok bool
		if entry, hit := s.cache.Lookup(key); hit {
			res.AnyMasks, res.UnitForced, ok = entry.anyMasks, entry.forced, entry.ok
		} else {
			res, ok = Enumerate(s.p, cage, doms, s.tier, s.scratch)
			s.cache.Insert(key, res.AnyMasks, res.UnitForced, ok)
		}
		if !ok {
			return false
		}

		for i, cell := range cage.Cells {
			chg, aok := s.intersectDomain(cell, res.AnyMasks[i])
			if !aok {
				return false
			}
			if chg {
				*changed = true
				s.assignIfSingleton(cell)
			}
		}

		if s.tier == TierHard && res.UnitForced != nil {
			if !applyUnitForced(s, changed, cage, res.UnitForced) {
				return false
			}
		}
	}
	return true
}

// inCageCell reports whether cell belongs to cage. cage.Cells is sorted
// ascending (NewPuzzle's invariant), so this is a plain linear scan.
func inCageCell(cage *Cage, cell int) bool {
	for _, c := range cage.Cells {
		if c == cell {
			return true
		}
	}
	return false
}

// applyUnitForced removes, from every cell outside cage that shares a
// unit with it, any value the cage is guaranteed to place within that
// unit under every satisfying tuple (§4.D's Tier::Hard cross-unit
// deduction).
func applyUnitForced(s *State, changed *bool, cage *Cage, forced []forcedEntry) bool {
	for _, fe := range forced {
		if fe.mask.IsEmpty() {
			continue
		}
		var cells []int
		if fe.kind == unitRow {
			cells = rowCells(s.p, fe.idx)
		} else {
			cells = colCells(s.p, fe.idx)
		}
		keep := fe.mask.Complement(s.p.N)
		for _, cell := range cells {
			if inCageCell(cage, cell) {
				continue
			}
			if s.domains[cell].IsSingleton() {
				continue
			}
			chg, ok := s.intersectDomain(cell, keep)
			if !ok {
				return false
			}
			if chg {
				*changed = true
				s.assignIfSingleton(cell)
			}
		}
	}
	return true
}
