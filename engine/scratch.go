package engine

// Scratch is the per-call reusable arena the tuple enumerator draws on.
// One Scratch is allocated per solve_one/count_up_to call and threaded
// through every propagation round and every search branch; its buffers
// are sized once (to MaxN) and sliced down per cage, so steady-state
// enumeration performs no heap allocation (§4.D, §9 "scratch allocation
// in hot loops").
type Scratch struct {
	tuple      []int
	rowOf      []int
	colOf      []int
	minSuffix  []int64
	maxSuffix  []int64
	anyMaskBuf []Mask
	cageDoms   []Mask
}

// NewScratch allocates a Scratch sized for grids up to MaxN.
func NewScratch() *Scratch {
	return &Scratch{
		tuple:      make([]int, MaxN),
		rowOf:      make([]int, MaxN),
		colOf:      make([]int, MaxN),
		minSuffix:  make([]int64, MaxN+1),
		maxSuffix:  make([]int64, MaxN+1),
		anyMaskBuf: make([]Mask, MaxN),
		cageDoms:   make([]Mask, MaxN),
	}
}
