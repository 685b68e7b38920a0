package kkgen

import (
	"runtime"
	"sync"

	"github.com/kenkenlogic/kenken/engine"
)

// workerPool is a small fixed-size pool of goroutines draining a shared
// task channel, adapted from the teacher's internal/parallel worker-pool
// shape down to the single concern this package needs: run N independent
// generation attempts concurrently and stop at the first success. The
// teacher's pool additionally tracks queue depth, dynamically scales
// worker count, and detects deadlocks — none of which apply to a
// fixed, short-lived batch of attempts, so this keeps only the
// task-channel-plus-worker-loop core.
type workerPool struct {
	tasks chan func()
	wg    sync.WaitGroup
}

func newWorkerPool(workers int) *workerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	p := &workerPool{tasks: make(chan func(), workers*2)}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer p.wg.Done()
			for task := range p.tasks {
				task()
			}
		}()
	}
	return p
}

func (p *workerPool) submit(task func()) {
	p.tasks <- task
}

func (p *workerPool) closeAndWait() {
	close(p.tasks)
	p.wg.Wait()
}

// GenerateParallel runs up to workers concurrent generation attempts (each
// with an independently seeded RNG derived from opts.Seed) and returns as
// soon as one succeeds; the remaining in-flight attempts are drained and
// joined in the background rather than interrupted mid-retry-loop, since
// Generate has no cancellation point of its own. It exists for the same
// reason the teacher reaches for a worker pool around its own goal search:
// a single generation attempt can fail its uniqueness retry loop outright
// on an unlucky seed, and running several candidate seeds at once
// amortizes that variance across cores instead of paying for it serially.
func GenerateParallel(opts Options, workers int) (*engine.Puzzle, *engine.Grid, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	type result struct {
		puzzle *engine.Puzzle
		grid   *engine.Grid
		err    error
	}

	resultCh := make(chan result, workers)
	pool := newWorkerPool(workers)
	for i := 0; i < workers; i++ {
		attempt := opts
		attempt.Seed = opts.Seed + int64(i)*2654435761
		pool.submit(func() {
			p, g, err := Generate(attempt)
			resultCh <- result{p, g, err}
		})
	}

	var firstErr error
	for i := 0; i < workers; i++ {
		r := <-resultCh
		if r.err == nil {
			go func() {
				for j := i + 1; j < workers; j++ {
					<-resultCh
				}
				pool.closeAndWait()
			}()
			return r.puzzle, r.grid, nil
		}
		if firstErr == nil {
			firstErr = r.err
		}
	}
	pool.closeAndWait()
	return nil, nil, firstErr
}
