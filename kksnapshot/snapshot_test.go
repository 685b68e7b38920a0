package kksnapshot

import (
	"bytes"
	"encoding/gob"
	"testing"

	"github.com/kenkenlogic/kenken/engine"
	"github.com/stretchr/testify/assert"
)

func testPuzzle(t *testing.T) *engine.Puzzle {
	t.Helper()
	p, err := engine.NewPuzzle(2, []engine.Cage{
		{Cells: []int{0}, Op: engine.OpEq, Target: 1},
		{Cells: []int{3}, Op: engine.OpEq, Target: 1},
		{Cells: []int{1, 2}, Op: engine.OpAdd, Target: 4},
	})
	assert.NoError(t, err)
	return p
}

func TestEncodeDecodeRoundTripWithSolution(t *testing.T) {
	p := testPuzzle(t)
	grid, ok := engine.SolveOne(p, engine.DefaultRuleset(), engine.TierHard)
	assert.True(t, ok)

	data, err := Encode(p, grid)
	assert.NoError(t, err)

	p2, grid2, err := Decode(data)
	assert.NoError(t, err)
	assert.Equal(t, p.N, p2.N)
	assert.Equal(t, p.Cages, p2.Cages)
	assert.True(t, grid.Equal(grid2))
}

func TestEncodeDecodeRoundTripWithoutSolution(t *testing.T) {
	p := testPuzzle(t)
	data, err := Encode(p, nil)
	assert.NoError(t, err)

	p2, grid2, err := Decode(data)
	assert.NoError(t, err)
	assert.Equal(t, p.Cages, p2.Cages)
	assert.Nil(t, grid2)
}

func TestDecodeRejectsUnknownVersion(t *testing.T) {
	p := testPuzzle(t)
	data, err := Encode(p, nil)
	assert.NoError(t, err)

	var snap Snapshot
	assert.NoError(t, gob.NewDecoder(bytes.NewReader(data)).Decode(&snap))
	snap.Version = 99

	var buf bytes.Buffer
	assert.NoError(t, gob.NewEncoder(&buf).Encode(snap))

	_, _, err = Decode(buf.Bytes())
	assert.Error(t, err)
}
