package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateOpAdd(t *testing.T) {
	assert.True(t, EvaluateOp(OpAdd, 6, []int{1, 2, 3}))
	assert.False(t, EvaluateOp(OpAdd, 7, []int{1, 2, 3}))
}

func TestEvaluateOpMul(t *testing.T) {
	assert.True(t, EvaluateOp(OpMul, 24, []int{2, 3, 4}))
	assert.False(t, EvaluateOp(OpMul, 25, []int{2, 3, 4}))
}

func TestEvaluateOpSub(t *testing.T) {
	assert.True(t, EvaluateOp(OpSub, 2, []int{5, 3}))
	assert.True(t, EvaluateOp(OpSub, 2, []int{3, 5}))
	assert.False(t, EvaluateOp(OpSub, 3, []int{5, 3}))
}

func TestEvaluateOpDiv(t *testing.T) {
	assert.True(t, EvaluateOp(OpDiv, 2, []int{6, 3}))
	assert.True(t, EvaluateOp(OpDiv, 2, []int{3, 6}))
	assert.False(t, EvaluateOp(OpDiv, 2, []int{5, 3}))
}

func TestEvaluateOpEq(t *testing.T) {
	assert.True(t, EvaluateOp(OpEq, 4, []int{4}))
	assert.False(t, EvaluateOp(OpEq, 4, []int{5}))
}

func TestSatisfiesRespectsLatinWithinCage(t *testing.T) {
	p, err := NewPuzzle(3, []Cage{
		{Cells: []int{0, 1, 2}, Op: OpAdd, Target: 6},
		{Cells: []int{3, 4}, Op: OpSub, Target: 1},
		{Cells: []int{5}, Op: OpEq, Target: 3},
		{Cells: []int{6, 7, 8}, Op: OpAdd, Target: 6},
	})
	assert.NoError(t, err)

	cage := &p.Cages[0] // cells 0,1,2: same row, must be pairwise distinct
	assert.True(t, Satisfies(p, cage, []int{1, 2, 3}))
	assert.False(t, Satisfies(p, cage, []int{2, 2, 2})) // sums to 6 but repeats within the row
}
