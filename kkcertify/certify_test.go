package kkcertify

import (
	"context"
	"testing"

	"github.com/kenkenlogic/kenken/engine"
	"github.com/stretchr/testify/assert"
)

func twoByTwoUnique(t *testing.T) *engine.Puzzle {
	t.Helper()
	p, err := engine.NewPuzzle(2, []engine.Cage{
		{Cells: []int{0}, Op: engine.OpEq, Target: 1},
		{Cells: []int{3}, Op: engine.OpEq, Target: 1},
		{Cells: []int{1, 2}, Op: engine.OpAdd, Target: 4},
	})
	assert.NoError(t, err)
	return p
}

func threeByThreeMixed(t *testing.T) *engine.Puzzle {
	t.Helper()
	p, err := engine.NewPuzzle(3, []engine.Cage{
		{Cells: []int{0}, Op: engine.OpEq, Target: 1},
		{Cells: []int{1, 4}, Op: engine.OpAdd, Target: 3},
		{Cells: []int{2, 5}, Op: engine.OpSub, Target: 1},
		{Cells: []int{3, 6}, Op: engine.OpSub, Target: 1},
		{Cells: []int{7, 8}, Op: engine.OpSub, Target: 2},
	})
	assert.NoError(t, err)
	return p
}

func TestCertifyDLXAgreesOnUniqueTwoByTwo(t *testing.T) {
	p := twoByTwoUnique(t)
	count, exhausted, err := CertifyDLX(context.Background(), p, 2, 10000)
	assert.NoError(t, err)
	assert.False(t, exhausted)
	assert.Equal(t, 1, count)
}

func TestCertifySATAgreesOnUniqueTwoByTwo(t *testing.T) {
	p := twoByTwoUnique(t)
	count := CertifySAT(context.Background(), p, 2)
	assert.Equal(t, 1, count)
}

func TestCertifyFullReportAgreesThreeByThree(t *testing.T) {
	p := threeByThreeMixed(t)
	report, err := Certify(context.Background(), p, engine.DefaultRuleset(), 5, 50000)
	assert.NoError(t, err)
	assert.True(t, report.Agree, "%+v", report)
	assert.Equal(t, report.EngineCount, report.SATCount)
}

func TestCertifyDetectsUnsatisfiable(t *testing.T) {
	p, err := engine.NewPuzzle(2, []engine.Cage{
		{Cells: []int{0}, Op: engine.OpEq, Target: 1},
		{Cells: []int{1}, Op: engine.OpEq, Target: 1},
		{Cells: []int{2, 3}, Op: engine.OpAdd, Target: 3},
	})
	assert.NoError(t, err)

	assert.Equal(t, 0, engine.CountUpTo(p, engine.DefaultRuleset(), engine.TierHard, 2))
	dlxCount, _, err := CertifyDLX(context.Background(), p, 2, 10000)
	assert.NoError(t, err)
	assert.Equal(t, 0, dlxCount)
	assert.Equal(t, 0, CertifySAT(context.Background(), p, 2))
}

func TestCertifyRespectsContextCancellation(t *testing.T) {
	p := threeByThreeMixed(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := CertifyDLX(ctx, p, 2, 10000)
	assert.Error(t, err)
}
