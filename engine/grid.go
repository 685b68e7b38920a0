package engine

// Grid is an N x N row-major array of values in 1..N — the shape the
// external API returns from SolveOne.
type Grid struct {
	N      int
	Values []int
}

// At returns the value at (row, col).
func (g *Grid) At(row, col int) int { return g.Values[row*g.N+col] }

// Rows returns the grid as a slice of row slices, convenient for display
// and for golden-corpus comparisons.
func (g *Grid) Rows() [][]int {
	rows := make([][]int, g.N)
	for r := 0; r < g.N; r++ {
		row := make([]int, g.N)
		copy(row, g.Values[r*g.N:(r+1)*g.N])
		rows[r] = row
	}
	return rows
}

// Equal reports whether two grids hold identical values.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.N != o.N || len(g.Values) != len(o.Values) {
		return false
	}
	for i := range g.Values {
		if g.Values[i] != o.Values[i] {
			return false
		}
	}
	return true
}
