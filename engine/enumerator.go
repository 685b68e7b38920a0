package engine

// unitKind distinguishes a row unit from a column unit in cross-unit
// deductions.
type unitKind int

const (
	unitRow unitKind = iota
	unitCol
)

// forcedEntry records one row or column unit the cage is guaranteed to
// place some value into, under every satisfying tuple folded in so far.
// EnumerateResult keeps these in a plain slice, built and scanned by
// linear search over cage-sized data rather than a map — ordering-
// sensitive code never iterates a hash table (§4.H).
type forcedEntry struct {
	kind unitKind
	idx  int
	mask Mask
}

// EnumerateResult is the output of the tuple enumerator for one cage: the
// per-cell any-masks (§4.D's primary output) plus, at Tier::Hard only, the
// set of values the cage is guaranteed to place somewhere within a shared
// row/column across every satisfying tuple ("unit-forced" values). A
// caller may use UnitForced to remove those values from the cage's peers
// in that unit — the cross-unit deduction §4.D requires at Tier::Hard.
type EnumerateResult struct {
	AnyMasks   []Mask
	UnitForced []forcedEntry
}

// Enumerate computes the any-mask vector for cage given its cells' current
// domains (domains[i] corresponds to cage.Cells[i]). It returns ok=false
// if no tuple satisfies the cage (a contradiction); the returned result is
// then meaningless. The returned any-masks are conservative (never drop a
// value with a supporting tuple) and tight to the level tier requests — in
// this implementation the general path is always run to full strength
// once invoked; tier only gates whether and how much extra cross-unit
// information is computed (Tier::Hard) and, at the call site in the
// propagator, whether Enumerate is invoked for this cage at all
// (Tier::Easy only invokes it for 1-2 unassigned cells).
func Enumerate(p *Puzzle, cage *Cage, domains []Mask, tier Tier, scratch *Scratch) (EnumerateResult, bool) {
	k := len(cage.Cells)

	// Fast path 1: every cell already singleton.
	allSingleton := true
	for i := 0; i < k; i++ {
		if !domains[i].IsSingleton() {
			allSingleton = false
			break
		}
	}
	if allSingleton {
		tuple := scratch.tuple[:k]
		for i := 0; i < k; i++ {
			tuple[i] = domains[i].SingletonValue()
		}
		if !Satisfies(p, cage, tuple) {
			return EnumerateResult{}, false
		}
		out := make([]Mask, k)
		copy(out, domains)
		return EnumerateResult{AnyMasks: out}, true
	}

	// Fast path 2: Eq (k=1).
	if cage.Op == OpEq {
		am := domains[0].Intersect(MaskOf(int(cage.Target)))
		if am.IsEmpty() {
			return EnumerateResult{}, false
		}
		return EnumerateResult{AnyMasks: []Mask{am}}, true
	}

	// Fast path 3: 2-cell Sub/Div, computed directly by pairwise check.
	if k == 2 && (cage.Op == OpSub || cage.Op == OpDiv) {
		return enumeratePair(p, cage, domains, tier)
	}

	return enumerateGeneral(p, cage, domains, tier, scratch)
}

func enumeratePair(p *Puzzle, cage *Cage, domains []Mask, tier Tier) (EnumerateResult, bool) {
	sameUnit := p.Row(cage.Cells[0]) == p.Row(cage.Cells[1]) || p.Col(cage.Cells[0]) == p.Col(cage.Cells[1])
	var any0, any1 Mask
	var forced []forcedEntry
	found := false
	domains[0].Iterate(func(v1 int) {
		domains[1].Iterate(func(v2 int) {
			if sameUnit && v1 == v2 {
				return
			}
			if !EvaluateOp(cage.Op, cage.Target, []int{v1, v2}) {
				return
			}
			found = true
			any0 = any0.With(v1)
			any1 = any1.With(v2)
			if tier == TierHard {
				recordUnitForced(&forced, p, cage.Cells, []int{v1, v2})
			}
		})
	})
	if !found {
		return EnumerateResult{}, false
	}
	return EnumerateResult{AnyMasks: []Mask{any0, any1}, UnitForced: forced}, true
}

func enumerateGeneral(p *Puzzle, cage *Cage, domains []Mask, tier Tier, scratch *Scratch) (EnumerateResult, bool) {
	k := len(cage.Cells)
	tuple := scratch.tuple[:k]
	rowOf := scratch.rowOf[:k]
	colOf := scratch.colOf[:k]
	for i, cell := range cage.Cells {
		rowOf[i] = p.Row(cell)
		colOf[i] = p.Col(cell)
	}

	minSuffix := scratch.minSuffix[:k+1]
	maxSuffix := scratch.maxSuffix[:k+1]
	minSuffix[k], maxSuffix[k] = 0, 0
	for i := k - 1; i >= 0; i-- {
		minSuffix[i] = minSuffix[i+1] + int64(domains[i].Lowest())
		maxSuffix[i] = maxSuffix[i+1] + int64(domains[i].Highest())
	}

	any := scratch.anyMaskBuf[:k]
	for i := range any {
		any[i] = 0
	}

	var forced []forcedEntry
	found := false

	var recurse func(pos int, partialSum, partialProduct int64)
	recurse = func(pos int, partialSum, partialProduct int64) {
		if pos == k {
			if !EvaluateOp(cage.Op, cage.Target, tuple) {
				return
			}
			found = true
			for i, v := range tuple {
				any[i] = any[i].With(v)
			}
			if tier == TierHard {
				recordUnitForced(&forced, p, cage.Cells, tuple)
			}
			return
		}
		if cage.Op == OpAdd {
			remaining := cage.Target - partialSum
			if remaining < minSuffix[pos] || remaining > maxSuffix[pos] {
				return
			}
		}
		domains[pos].Iterate(func(v int) {
			if cage.Op == OpMul && partialProduct*int64(v) > cage.Target {
				return
			}
			for j := 0; j < pos; j++ {
				if (rowOf[j] == rowOf[pos] || colOf[j] == colOf[pos]) && tuple[j] == v {
					return
				}
			}
			tuple[pos] = v
			ns, np := partialSum, partialProduct
			switch cage.Op {
			case OpAdd:
				ns = partialSum + int64(v)
			case OpMul:
				np = partialProduct * int64(v)
			}
			recurse(pos+1, ns, np)
		})
	}
	recurse(0, 0, 1)

	if !found {
		return EnumerateResult{}, false
	}
	out := make([]Mask, k)
	copy(out, any)
	return EnumerateResult{AnyMasks: out, UnitForced: forced}, true
}

// recordUnitForced intersects, into acc, the set of values a single
// satisfying tuple places within each row/column the cage touches. After
// all tuples have been folded in, the acc entry for a unit holds the
// values the cage is guaranteed to place somewhere in that unit under
// every satisfying assignment — safe to remove from the unit's other
// cells. Both passes scan cells/acc linearly (cage sizes are small; there
// is no map anywhere in this path), so the resulting order depends only
// on cage-declared cell order and ascending value iteration, never on
// hash iteration (§4.H).
func recordUnitForced(acc *[]forcedEntry, p *Puzzle, cells []int, tuple []int) {
	mergeLeaf(acc, unitRow, cells, tuple, func(cell int) int { return p.Row(cell) })
	mergeLeaf(acc, unitCol, cells, tuple, func(cell int) int { return p.Col(cell) })
}

// mergeLeaf folds one tuple's placements into acc for a single unit kind:
// first it unions, per unit index, the values this tuple places there
// (a cage can own more than one cell in the same row/column), then it
// intersects that union into acc's running per-unit set.
func mergeLeaf(acc *[]forcedEntry, kind unitKind, cells []int, tuple []int, unitOf func(int) int) {
	var idxs []int
	var leaf []Mask
	for i, cell := range cells {
		u := unitOf(cell)
		pos := -1
		for j, x := range idxs {
			if x == u {
				pos = j
				break
			}
		}
		if pos == -1 {
			idxs = append(idxs, u)
			leaf = append(leaf, MaskOf(tuple[i]))
		} else {
			leaf[pos] = leaf[pos].With(tuple[i])
		}
	}
	for i, u := range idxs {
		mergeForced(acc, kind, u, leaf[i])
	}
}

func mergeForced(acc *[]forcedEntry, kind unitKind, idx int, mask Mask) {
	for i := range *acc {
		if (*acc)[i].kind == kind && (*acc)[i].idx == idx {
			(*acc)[i].mask = (*acc)[i].mask.Intersect(mask)
			return
		}
	}
	*acc = append(*acc, forcedEntry{kind: kind, idx: idx, mask: mask})
}
