package kkdesc

import (
	"testing"

	"github.com/kenkenlogic/kenken/engine"
	"github.com/stretchr/testify/assert"
)

func TestParseTwoByTwo(t *testing.T) {
	// Cage "a" is an L-shape over (0,0),(0,1),(1,0): with domain {1,2}
	// and (0,0) forced to differ from both its row- and column-mate,
	// the only reachable sums are 4 (a[0]=2) and 5 (a[0]=1); only the
	// sum=5 branch survives the column clash with cage "b" pinned to 1.
	p, err := Parse(2, "a+5|a,a|b=1")
	assert.NoError(t, err)
	assert.Equal(t, 2, p.N)
	assert.Equal(t, 2, len(p.Cages))

	grid, ok := engine.SolveOne(p, engine.DefaultRuleset(), engine.TierHard)
	assert.True(t, ok)
	assert.Equal(t, 1, grid.At(1, 1))
}

func TestParseRejectsWrongRowCount(t *testing.T) {
	_, err := Parse(2, "a+3|a")
	assert.Error(t, err)
}

func TestParseRejectsWrongCellCount(t *testing.T) {
	_, err := Parse(2, "a+3|a|a,a|b=1")
	assert.Error(t, err)
}

func TestParseRejectsMissingOperator(t *testing.T) {
	_, err := Parse(2, "a|a,a|b=1")
	assert.Error(t, err)
}

func TestParseRejectsDuplicateOperator(t *testing.T) {
	_, err := Parse(2, "a+3|a+3,a|b=1")
	assert.Error(t, err)
}

func TestFormatRoundTrip(t *testing.T) {
	p, err := Parse(2, "a+3|a,a|b=1")
	assert.NoError(t, err)

	out, err := Format(p)
	assert.NoError(t, err)

	p2, err := Parse(2, out)
	assert.NoError(t, err)
	assert.Equal(t, p.Cages, p2.Cages)
}

func TestFormatCanonicalLetterOrder(t *testing.T) {
	// Cage "b" appears before cage "a" in the input text, but Format
	// must relabel by first-cell row-major order (the single-cell cage
	// at (0,0) becomes letter "a"), and must write the operator back
	// onto each cage's row-major anchor cell regardless of where Parse
	// originally found it.
	p, err := Parse(2, "b=1|a,a|a+7")
	assert.NoError(t, err)

	out, err := Format(p)
	assert.NoError(t, err)
	assert.Equal(t, "a=1|b+7,b|b", out)
}
