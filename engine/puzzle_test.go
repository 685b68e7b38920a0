package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPuzzleRejectsOverlap(t *testing.T) {
	_, err := NewPuzzle(2, []Cage{
		{Cells: []int{0, 1}, Op: OpAdd, Target: 3},
		{Cells: []int{1, 2, 3}, Op: OpAdd, Target: 6},
	})
	assert.Error(t, err)
	var ipe *InvalidPuzzleError
	assert.ErrorAs(t, err, &ipe)
	assert.Equal(t, ReasonOverlappingCages, ipe.Reason)
}

func TestNewPuzzleRejectsMissingCells(t *testing.T) {
	_, err := NewPuzzle(2, []Cage{
		{Cells: []int{0, 1, 2}, Op: OpAdd, Target: 4},
	})
	assert.Error(t, err)
	var ipe *InvalidPuzzleError
	assert.ErrorAs(t, err, &ipe)
	assert.Equal(t, ReasonMissingCells, ipe.Reason)
}

func TestNewPuzzleRejectsBadArity(t *testing.T) {
	_, err := NewPuzzle(2, []Cage{
		{Cells: []int{0, 1, 2}, Op: OpSub, Target: 1},
		{Cells: []int{3}, Op: OpEq, Target: 1},
	})
	assert.Error(t, err)
	var ipe *InvalidPuzzleError
	assert.ErrorAs(t, err, &ipe)
	assert.Equal(t, ReasonBadOpArity, ipe.Reason)
}

func TestNewPuzzleRejectsUnreachableMulTarget(t *testing.T) {
	_, err := NewPuzzle(2, []Cage{
		{Cells: []int{0, 1, 2, 3}, Op: OpMul, Target: 100},
	})
	assert.Error(t, err)
	var ipe *InvalidPuzzleError
	assert.ErrorAs(t, err, &ipe)
	assert.Equal(t, ReasonTargetOverflow, ipe.Reason)
}

func TestNewPuzzleSortsCageCellsRowMajor(t *testing.T) {
	p, err := NewPuzzle(2, []Cage{
		{Cells: []int{3, 0, 2, 1}, Op: OpAdd, Target: 6},
	})
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, p.Cages[0].Cells)
}

func TestValidateRulesetGating(t *testing.T) {
	p, err := NewPuzzle(3, []Cage{
		{Cells: []int{0, 1, 2}, Op: OpAdd, Target: 6},
		{Cells: []int{3, 4}, Op: OpSub, Target: 1},
		{Cells: []int{5}, Op: OpEq, Target: 3},
		{Cells: []int{6, 7, 8}, Op: OpAdd, Target: 6},
	})
	assert.NoError(t, err)
	assert.NoError(t, Validate(p, DefaultRuleset()))

	loose := DefaultRuleset()
	loose.SubTwoOnly = false
	assert.NoError(t, Validate(p, loose))
}

func TestRowColCellID(t *testing.T) {
	p, err := NewPuzzle(3, []Cage{
		{Cells: []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, Op: OpAdd, Target: 45},
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, p.Row(4))
	assert.Equal(t, 1, p.Col(4))
	assert.Equal(t, 4, p.CellID(1, 1))
	assert.Equal(t, 9, p.CellCount())
}
