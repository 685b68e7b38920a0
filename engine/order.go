package engine

// selectMRV picks the unassigned cell with the smallest domain (Minimum
// Remaining Values), tie-breaking by the lowest row-major cell id — the
// deterministic ordering discipline of §4.G/§4.H. It returns found=false
// once every cell is a singleton.
func selectMRV(s *State) (cell int, found bool) {
	best := -1
	bestSize := 0
	for id, d := range s.domains {
		size := d.Popcount()
		if size <= 1 {
			continue
		}
		if best == -1 || size < bestSize {
			best = id
			bestSize = size
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}
