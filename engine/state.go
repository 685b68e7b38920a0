package engine

// trailKind distinguishes what a trail entry's prior value restores.
type trailKind int

const (
	trailDomain trailKind = iota
	trailRow
	trailCol
)

// trailEntry is one undo record: (kind, idx, prior_mask). The trail is an
// append-only stack; truncating it and restoring each entry's prior value
// in reverse order undoes exactly the mutations made since a snapshot,
// with no deep copy of State (§3, §9).
type trailEntry struct {
	kind  trailKind
	idx   int
	prior Mask
}

// State is the mutable, search-owned state for one solve_one/count_up_to
// call: per-cell domains, per-unit assigned-value masks, the undo trail,
// and the cage cache. State exists only inside the scope of a single
// solver call; on return all of it is discarded (§3).
type State struct {
	p           *Puzzle
	ruleset     Ruleset
	tier        Tier
	domains     []Mask
	rowAssigned []Mask
	colAssigned []Mask
	trail       []trailEntry
	cache       *CageCache
	scratch     *Scratch
	tracer      *Tracer
}

func newState(p *Puzzle, r Ruleset, t Tier, tracer *Tracer) *State {
	n := p.N
	s := &State{
		p:           p,
		ruleset:     r,
		tier:        t,
		domains:     make([]Mask, p.CellCount()),
		rowAssigned: make([]Mask, n),
		colAssigned: make([]Mask, n),
		cache:       NewCageCache(n),
		scratch:     NewScratch(),
		tracer:      tracer,
	}
	full := FullMask(n)
	for i := range s.domains {
		s.domains[i] = full
	}
	return s
}

// mark returns the current trail length, a snapshot to later restore to.
func (s *State) mark() int { return len(s.trail) }

// undoTo restores every trail entry recorded since mark, in reverse order,
// and truncates the trail to mark — O(1) amortized per entry, no deep copy.
func (s *State) undoTo(mark int) {
	for i := len(s.trail) - 1; i >= mark; i-- {
		e := s.trail[i]
		switch e.kind {
		case trailDomain:
			s.domains[e.idx] = e.prior
		case trailRow:
			s.rowAssigned[e.idx] = e.prior
		case trailCol:
			s.colAssigned[e.idx] = e.prior
		}
	}
	s.trail = s.trail[:mark]
}

// intersectDomain narrows cell's domain by m, recording the prior mask on
// the trail when it actually changes. It returns (changed, ok); ok is
// false if the narrowed domain is empty (a contradiction).
func (s *State) intersectDomain(cell int, m Mask) (changed bool, ok bool) {
	cur := s.domains[cell]
	next := cur.Intersect(m)
	if next == cur {
		return false, true
	}
	s.trail = append(s.trail, trailEntry{kind: trailDomain, idx: cell, prior: cur})
	s.domains[cell] = next
	return true, !next.IsEmpty()
}

// assignIfSingleton folds a newly-singleton cell's value into its row and
// column assigned-value masks, recording undo entries for each mask it
// touches. Call after any intersectDomain that reports changed=true.
func (s *State) assignIfSingleton(cell int) {
	d := s.domains[cell]
	if !d.IsSingleton() {
		return
	}
	v := d.SingletonValue()
	r, c := s.p.Row(cell), s.p.Col(cell)
	if !s.rowAssigned[r].Has(v) {
		s.trail = append(s.trail, trailEntry{kind: trailRow, idx: r, prior: s.rowAssigned[r]})
		s.rowAssigned[r] = s.rowAssigned[r].With(v)
	}
	if !s.colAssigned[c].Has(v) {
		s.trail = append(s.trail, trailEntry{kind: trailCol, idx: c, prior: s.colAssigned[c]})
		s.colAssigned[c] = s.colAssigned[c].With(v)
	}
}

// snapshotGrid reads every cell's singleton value into a Grid. Callers
// must only call this once every domain is a singleton.
func (s *State) snapshotGrid() *Grid {
	vals := make([]int, len(s.domains))
	for i, d := range s.domains {
		vals[i] = d.SingletonValue()
	}
	return &Grid{N: s.p.N, Values: vals}
}
