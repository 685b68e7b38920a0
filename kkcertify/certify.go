// Package kkcertify cross-checks engine's solution count against two
// independent algorithms — Knuth's Algorithm X (dancing links) over an
// exact-cover reduction, and a small DPLL SAT solver over a CNF
// encoding — so a bug shared between engine's propagator and its
// search driver would still be caught by at least one outside witness.
// Both certifiers are intentionally "toy": correct, but exponential in
// ways engine's tiered propagation and cage cache are specifically
// designed to avoid, so they are only practical on the small puzzles a
// test corpus certifies, not as a production alternative to engine.
package kkcertify

import (
	"context"
	"fmt"

	"github.com/kenkenlogic/kenken/engine"
)

// Report is the outcome of cross-checking all three counting methods.
type Report struct {
	EngineCount int
	DLXCount    int
	DLXExhausted bool
	SATCount    int
	Agree       bool
}

// Certify runs engine.CountUpTo, CertifyDLX, and CertifySAT against p,
// each capped at limit, and reports whether they agree. DLXExhausted
// true means CertifyDLX hit its raw-candidate bound before confirming
// agreement or disagreement; callers should treat that result as
// inconclusive rather than a contradiction.
func Certify(ctx context.Context, p *engine.Puzzle, r engine.Ruleset, limit int, maxRawCandidates int) (Report, error) {
	if err := engine.Validate(p, r); err != nil {
		return Report{}, fmt.Errorf("kkcertify: %w", err)
	}

	engineCount := engine.CountUpTo(p, r, engine.TierHard, limit)

	dlxCount, exhausted, err := CertifyDLX(ctx, p, limit, maxRawCandidates)
	if err != nil {
		return Report{}, fmt.Errorf("kkcertify: dlx: %w", err)
	}

	satCount := CertifySAT(ctx, p, limit)

	agree := satCount == engineCount && (exhausted || dlxCount == engineCount)
	return Report{
		EngineCount:  engineCount,
		DLXCount:     dlxCount,
		DLXExhausted: exhausted,
		SATCount:     satCount,
		Agree:        agree,
	}, nil
}
