// Package kkdesc parses and formats the compact textual puzzle
// description used by the cmd/kenken CLI and the golden test corpus.
//
// A description is n comma-separated rows. Each row is n '|'-separated
// cell tokens, read left to right in the same order as the grid's
// columns. A cell token starts with a cage letter (a-z, then A-Z,
// supporting up to 52 cages) and, on exactly one cell per cage, is
// followed immediately by an operator and the cage's integer target:
//
//	+N  Add, target N
//	-N  Sub, target N
//	*N  Mul, target N
//	/N  Div, target N
//	=N  Eq,  target N
//
// Parse accepts the operator on any one cell of the cage; Format always
// writes it on the cage's anchor, its first cell in row-major order.
// Every other cell belonging to that cage carries only its letter.
// For example, on a 2x2 grid a single Add=3 cage covering (0,0),(0,1),
// (1,0) and an Eq=1 cage covering (1,1) alone is:
//
//	a+3|a,a|b=1
package kkdesc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kenkenlogic/kenken/engine"
)

type cageAccum struct {
	letter byte
	cells  []int
	op     engine.Op
	target int64
	opSet  bool
}

// Parse decodes desc into a Puzzle over an n x n grid.
func Parse(n int, desc string) (*engine.Puzzle, error) {
	rows := strings.Split(desc, ",")
	if len(rows) != n {
		return nil, fmt.Errorf("kkdesc: expected %d rows, got %d", n, len(rows))
	}

	accums := make(map[byte]*cageAccum)
	var order []byte

	for r, rowStr := range rows {
		cells := strings.Split(rowStr, "|")
		if len(cells) != n {
			return nil, fmt.Errorf("kkdesc: row %d: expected %d cells, got %d", r, n, len(cells))
		}
		for c, tok := range cells {
			if tok == "" {
				return nil, fmt.Errorf("kkdesc: row %d col %d: empty cell token", r, c)
			}
			letter := tok[0]
			if !isCageLetter(letter) {
				return nil, fmt.Errorf("kkdesc: row %d col %d: %q is not a cage letter", r, c, tok[:1])
			}
			cellID := r*n + c

			acc, ok := accums[letter]
			if !ok {
				acc = &cageAccum{letter: letter}
				accums[letter] = acc
				order = append(order, letter)
			}
			acc.cells = append(acc.cells, cellID)

			rest := tok[1:]
			if rest == "" {
				continue
			}
			op, err := parseOp(rest[0])
			if err != nil {
				return nil, fmt.Errorf("kkdesc: row %d col %d: %w", r, c, err)
			}
			target, err := strconv.ParseInt(rest[1:], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("kkdesc: row %d col %d: bad target %q: %w", r, c, rest[1:], err)
			}
			if acc.opSet {
				return nil, fmt.Errorf("kkdesc: cage %q: operator specified more than once", string(letter))
			}
			acc.op, acc.target, acc.opSet = op, target, true
		}
	}

	cages := make([]engine.Cage, 0, len(order))
	for _, letter := range order {
		acc := accums[letter]
		if !acc.opSet {
			return nil, fmt.Errorf("kkdesc: cage %q: no operator specified on any cell", string(letter))
		}
		cages = append(cages, engine.Cage{Cells: acc.cells, Op: acc.op, Target: acc.target})
	}

	return engine.NewPuzzle(n, cages)
}

func isCageLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func parseOp(b byte) (engine.Op, error) {
	switch b {
	case '+':
		return engine.OpAdd, nil
	case '-':
		return engine.OpSub, nil
	case '*':
		return engine.OpMul, nil
	case '/':
		return engine.OpDiv, nil
	case '=':
		return engine.OpEq, nil
	default:
		return 0, fmt.Errorf("unknown operator %q", string(b))
	}
}

func opSymbol(op engine.Op) (byte, error) {
	switch op {
	case engine.OpAdd:
		return '+', nil
	case engine.OpSub:
		return '-', nil
	case engine.OpMul:
		return '*', nil
	case engine.OpDiv:
		return '/', nil
	case engine.OpEq:
		return '=', nil
	default:
		return 0, fmt.Errorf("kkdesc: unknown op %v", op)
	}
}

// Format renders p back into the textual description Parse accepts.
// Cage letters are assigned a, b, c, ... in order of each cage's first
// (row-major) cell, so Format(Parse(n, d)) reproduces a canonical form
// of d even when d used a different letter assignment.
func Format(p *engine.Puzzle) (string, error) {
	if len(p.Cages) > 52 {
		return "", fmt.Errorf("kkdesc: %d cages exceeds the 52-letter alphabet", len(p.Cages))
	}

	letterOf := make(map[int]byte, len(p.Cages)) // cage index -> letter
	anchorOf := make(map[int]int, len(p.Cages))   // cage index -> anchor cell
	for cell, ci := range p.CellToCage {
		if _, seen := letterOf[ci]; !seen {
			letterOf[ci] = cageLetter(len(letterOf))
			anchorOf[ci] = cell
		}
	}

	n := p.N
	var rows []string
	for r := 0; r < n; r++ {
		var cells []string
		for c := 0; c < n; c++ {
			cellID := p.CellID(r, c)
			ci := p.CellToCage[cellID]
			cage := p.Cages[ci]
			tok := string(letterOf[ci])
			if anchorOf[ci] == cellID {
				sym, err := opSymbol(cage.Op)
				if err != nil {
					return "", err
				}
				tok += string(sym) + strconv.FormatInt(cage.Target, 10)
			}
			cells = append(cells, tok)
		}
		rows = append(rows, strings.Join(cells, "|"))
	}
	return strings.Join(rows, ","), nil
}

func cageLetter(i int) byte {
	if i < 26 {
		return byte('a' + i)
	}
	return byte('A' + (i - 26))
}
