package engine

import (
	"math"
	"sort"
)

// Op identifies a cage's arithmetic operation.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpEq
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	case OpEq:
		return "eq"
	default:
		return "unknown"
	}
}

// Cage is an ordered, non-empty list of distinct cell ids sharing an
// arithmetic constraint. Cells are stored in row-major order once a Cage
// has passed through NewPuzzle; this ordering is mandatory for determinism
// and cage-cache key stability (§4.B, §4.H).
type Cage struct {
	Cells  []int
	Op     Op
	Target int64
}

// Ruleset holds the closed set of rule options. Validate reads SubTwoOnly
// and DivTwoOnly to gate Sub/Div cage arity; no flag restricts the
// propagation tier. The baseline ("Keen") ruleset has every flag on.
type Ruleset struct {
	// Digits fixes the value alphabet to 1..N. Always true in this engine;
	// kept as a field so callers can see the option exists in the closed
	// set described by the external API.
	Digits bool
	// Latin names row/column uniqueness. The solver always enforces
	// row/column uniqueness and does not read this field.
	Latin bool
	// SubTwoOnly restricts Sub cages to exactly two cells.
	SubTwoOnly bool
	// DivTwoOnly restricts Div cages to exactly two cells.
	DivTwoOnly bool
}

// DefaultRuleset returns the baseline Keen ruleset: digits 1..N, Latin row
// and column uniqueness, Sub/Div restricted to two-cell cages.
func DefaultRuleset() Ruleset {
	return Ruleset{Digits: true, Latin: true, SubTwoOnly: true, DivTwoOnly: true}
}

// Puzzle is an immutable puzzle description: grid size, the cage list, and
// the cell-to-cage index. A Puzzle is built once via NewPuzzle, validated,
// and then read only for the lifetime of every solver call it's handed to.
type Puzzle struct {
	N          int
	Cages      []Cage
	CellToCage []int
}

// CellCount returns the number of cells in the grid (N*N).
func (p *Puzzle) CellCount() int { return p.N * p.N }

// Row returns the row of a row-major cell id.
func (p *Puzzle) Row(cell int) int { return cell / p.N }

// Col returns the column of a row-major cell id.
func (p *Puzzle) Col(cell int) int { return cell % p.N }

// CellID returns the row-major cell id for (row, col).
func (p *Puzzle) CellID(row, col int) int { return row*p.N + col }

// NewPuzzle builds and structurally validates a Puzzle: cages must
// partition the grid exactly once, cage cells must be distinct, cage
// arity must match its operation, and every target must be a positive
// integer representable without overflow. Cages are copied and their
// cell lists sorted into row-major order.
func NewPuzzle(n int, cages []Cage) (*Puzzle, error) {
	if n <= 0 || n > MaxN {
		return nil, NewInvalidPuzzleError(ReasonBadTarget, "grid size out of range")
	}

	cellCount := n * n
	owner := make([]int, cellCount)
	for i := range owner {
		owner[i] = -1
	}

	built := make([]Cage, len(cages))
	for ci, c := range cages {
		if len(c.Cells) == 0 {
			return nil, NewInvalidPuzzleError(ReasonBadOpArity, "cage has no cells")
		}
		if c.Target <= 0 {
			return nil, NewInvalidPuzzleError(ReasonBadTarget, "target must be positive")
		}

		cells := make([]int, len(c.Cells))
		copy(cells, c.Cells)
		sort.Ints(cells)
		for i := 1; i < len(cells); i++ {
			if cells[i] == cells[i-1] {
				return nil, NewInvalidPuzzleError(ReasonOverlappingCages, "cage has duplicate cell")
			}
		}
		for _, cell := range cells {
			if cell < 0 || cell >= cellCount {
				return nil, NewInvalidPuzzleError(ReasonMissingCells, "cell id out of range")
			}
			if owner[cell] != -1 {
				return nil, NewInvalidPuzzleError(ReasonOverlappingCages, "cell claimed by two cages")
			}
			owner[cell] = ci
		}

		switch c.Op {
		case OpSub, OpDiv:
			if len(cells) != 2 {
				return nil, NewInvalidPuzzleError(ReasonBadOpArity, "sub/div cages must have exactly 2 cells")
			}
		case OpEq:
			if len(cells) != 1 {
				return nil, NewInvalidPuzzleError(ReasonBadOpArity, "eq cages must have exactly 1 cell")
			}
		case OpAdd, OpMul:
			// arity >= 1 already guaranteed above
		default:
			return nil, NewInvalidPuzzleError(ReasonBadOpArity, "unknown operation")
		}

		if c.Op == OpMul {
			if maxP, overflowed := maxProduct(n, len(cells)); !overflowed && c.Target > maxP {
				return nil, NewInvalidPuzzleError(ReasonTargetOverflow, "mul target unreachable for cage size")
			}
		}

		built[ci] = Cage{Cells: cells, Op: c.Op, Target: c.Target}
	}

	for cell, o := range owner {
		if o == -1 {
			_ = cell
			return nil, NewInvalidPuzzleError(ReasonMissingCells, "cages do not cover every cell")
		}
	}

	return &Puzzle{N: n, Cages: built, CellToCage: owner}, nil
}

// maxProduct returns n^k as an int64 along with whether computing it
// overflowed int64. On overflow the caller should not reject the cage on
// magnitude grounds: the cage's Target is itself an int64 and therefore
// strictly smaller than an n^k that doesn't fit in 64 bits.
func maxProduct(n, k int) (int64, bool) {
	result := int64(1)
	nn := int64(n)
	for i := 0; i < k; i++ {
		if nn != 0 && result > math.MaxInt64/nn {
			return 0, true
		}
		result *= nn
	}
	return result, false
}

// Validate re-checks a Puzzle against a Ruleset's gated restrictions
// (sub_two_only, div_two_only) and re-confirms the structural partition
// invariants NewPuzzle already establishes, so that a Puzzle assembled or
// mutated by a caller outside NewPuzzle can still be validated before use.
func Validate(p *Puzzle, r Ruleset) error {
	if p == nil {
		return NewInvalidPuzzleError(ReasonMissingCells, "nil puzzle")
	}
	seen := make([]bool, p.CellCount())
	for _, cage := range p.Cages {
		if len(cage.Cells) == 0 {
			return NewInvalidPuzzleError(ReasonBadOpArity, "cage has no cells")
		}
		if cage.Target <= 0 {
			return NewInvalidPuzzleError(ReasonBadTarget, "target must be positive")
		}
		for _, cell := range cage.Cells {
			if cell < 0 || cell >= p.CellCount() {
				return NewInvalidPuzzleError(ReasonMissingCells, "cell id out of range")
			}
			if seen[cell] {
				return NewInvalidPuzzleError(ReasonOverlappingCages, "cell claimed by two cages")
			}
			seen[cell] = true
		}
		switch cage.Op {
		case OpSub:
			if r.SubTwoOnly && len(cage.Cells) != 2 {
				return NewInvalidPuzzleError(ReasonBadOpArity, "sub_two_only requires exactly 2 cells")
			}
		case OpDiv:
			if r.DivTwoOnly && len(cage.Cells) != 2 {
				return NewInvalidPuzzleError(ReasonBadOpArity, "div_two_only requires exactly 2 cells")
			}
		case OpEq:
			if len(cage.Cells) != 1 {
				return NewInvalidPuzzleError(ReasonBadOpArity, "eq cages must have exactly 1 cell")
			}
		}
	}
	for cell, ok := range seen {
		if !ok {
			_ = cell
			return NewInvalidPuzzleError(ReasonMissingCells, "cages do not cover every cell")
		}
	}
	return nil
}
