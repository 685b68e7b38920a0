package engine

import (
	"log"
	"sync/atomic"
)

// Tracer records observational span markers and counters during a solve.
// It never influences search order or results (§4.G); every method is a
// safe no-op on a nil *Tracer, following the teacher's
// ContextMonitor(logger *log.Logger) convention where a nil logger means
// "no logging" rather than a distinct disabled mode.
type Tracer struct {
	logger     *log.Logger
	branches   int64
	backtracks int64
	propRounds int64
}

// NewTracer returns a Tracer that writes span markers to logger. logger may
// be nil, in which case spans are counted but never printed.
func NewTracer(logger *log.Logger) *Tracer {
	return &Tracer{logger: logger}
}

// Enter records a span marker. kind is one of "solve", "propagate",
// "branch", "backtrack" per §4.G's tracing hooks.
func (t *Tracer) Enter(kind string) {
	if t == nil {
		return
	}
	switch kind {
	case "branch":
		atomic.AddInt64(&t.branches, 1)
	case "backtrack":
		atomic.AddInt64(&t.backtracks, 1)
	case "propagate":
		atomic.AddInt64(&t.propRounds, 1)
	}
	if t.logger != nil {
		t.logger.Printf("span=%s", kind)
	}
}

// Counts is a snapshot of the tracer's span counters, useful for asserting
// the determinism property in §8 (identical internal branch counts across
// identical runs).
type Counts struct {
	Branches   int64
	Backtracks int64
	PropRounds int64
}

// Snapshot returns the current counters. Safe to call on a nil *Tracer.
func (t *Tracer) Snapshot() Counts {
	if t == nil {
		return Counts{}
	}
	return Counts{
		Branches:   atomic.LoadInt64(&t.branches),
		Backtracks: atomic.LoadInt64(&t.backtracks),
		PropRounds: atomic.LoadInt64(&t.propRounds),
	}
}
