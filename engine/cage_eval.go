package engine

// Satisfies decides whether tuple (ordered the same way as cage.Cells)
// satisfies cage's operation and target, and that values at cells sharing
// a row or column within the cage differ (§4.C). Values at cells that
// neither share a row nor a column may repeat even within the cage.
func Satisfies(p *Puzzle, cage *Cage, tuple []int) bool {
	if !latinOK(p, cage, tuple) {
		return false
	}
	return EvaluateOp(cage.Op, cage.Target, tuple)
}

// latinOK reports whether tuple respects row/column uniqueness among the
// cage's own cells, ignoring pairs of cells that share neither a row nor a
// column.
func latinOK(p *Puzzle, cage *Cage, tuple []int) bool {
	for i := 0; i < len(cage.Cells); i++ {
		ri, ci := p.Row(cage.Cells[i]), p.Col(cage.Cells[i])
		for j := i + 1; j < len(cage.Cells); j++ {
			rj, cj := p.Row(cage.Cells[j]), p.Col(cage.Cells[j])
			if (ri == rj || ci == cj) && tuple[i] == tuple[j] {
				return false
			}
		}
	}
	return true
}

// EvaluateOp decides whether tuple satisfies op/target alone, without
// regard to Latin constraints. k = len(tuple) is assumed to already match
// the arity the operation requires (NewPuzzle enforces this for cages
// built through it).
func EvaluateOp(op Op, target int64, tuple []int) bool {
	switch op {
	case OpAdd:
		var sum int64
		for _, v := range tuple {
			sum += int64(v)
		}
		return sum == target
	case OpMul:
		product := int64(1)
		for _, v := range tuple {
			product *= int64(v)
			if product > target {
				// Early out: all values are positive, product only grows.
				return false
			}
		}
		return product == target
	case OpSub:
		a, b := int64(tuple[0]), int64(tuple[1])
		diff := a - b
		if diff < 0 {
			diff = -diff
		}
		return diff == target
	case OpDiv:
		a, b := int64(tuple[0]), int64(tuple[1])
		return (a%b == 0 && a/b == target) || (b%a == 0 && b/a == target)
	case OpEq:
		return int64(tuple[0]) == target
	default:
		return false
	}
}
