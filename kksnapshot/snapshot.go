// Package kksnapshot persists a Puzzle and an optional solved Grid as a
// single versioned binary blob via encoding/gob, the same serialization
// choice the teacher's examples use for their own persisted fixtures.
package kksnapshot

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/kenkenlogic/kenken/engine"
)

// formatVersion is bumped whenever the wire shape of Snapshot changes.
// Decode rejects any blob whose version it doesn't recognize rather than
// guessing at a layout.
const formatVersion = 1

// cageRecord mirrors engine.Cage field-for-field; it exists only so gob
// registration stays independent of engine's internal layout.
type cageRecord struct {
	Cells  []int
	Op     int
	Target int64
}

// Snapshot is the versioned on-disk representation of a puzzle and,
// optionally, its solution.
type Snapshot struct {
	Version  int
	N        int
	Cages    []cageRecord
	HasGrid  bool
	GridVals []int
}

// Encode serializes p (and, if non-nil, solution) into a gob-encoded
// byte slice.
func Encode(p *engine.Puzzle, solution *engine.Grid) ([]byte, error) {
	snap := Snapshot{Version: formatVersion, N: p.N}
	snap.Cages = make([]cageRecord, len(p.Cages))
	for i, c := range p.Cages {
		snap.Cages[i] = cageRecord{Cells: c.Cells, Op: int(c.Op), Target: c.Target}
	}
	if solution != nil {
		snap.HasGrid = true
		snap.GridVals = solution.Values
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return nil, fmt.Errorf("kksnapshot: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode reverses Encode, reconstructing the Puzzle (re-validating it
// through engine.NewPuzzle) and the solution grid, if one was stored.
func Decode(data []byte) (*engine.Puzzle, *engine.Grid, error) {
	var snap Snapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return nil, nil, fmt.Errorf("kksnapshot: decode: %w", err)
	}
	if snap.Version != formatVersion {
		return nil, nil, fmt.Errorf("kksnapshot: unsupported snapshot version %d", snap.Version)
	}

	cages := make([]engine.Cage, len(snap.Cages))
	for i, c := range snap.Cages {
		cages[i] = engine.Cage{Cells: c.Cells, Op: engine.Op(c.Op), Target: c.Target}
	}
	p, err := engine.NewPuzzle(snap.N, cages)
	if err != nil {
		return nil, nil, fmt.Errorf("kksnapshot: decoded puzzle failed validation: %w", err)
	}

	var grid *engine.Grid
	if snap.HasGrid {
		grid = &engine.Grid{N: snap.N, Values: snap.GridVals}
	}
	return p, grid, nil
}
