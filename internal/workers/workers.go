package workers

import (
	"context"
	"sync"
)

// Workers aggregates long-lived workers and runs them together.
type Workers struct {
	workers []Worker
}

// NewWorkers builds an aggregate over the given workers. Nil entries are
// dropped so callers can pass optionally-constructed workers directly.
func NewWorkers(workers ...Worker) *Workers {
	w := &Workers{}
	for _, worker := range workers {
		if worker != nil {
			w.workers = append(w.workers, worker)
		}
	}
	return w
}

// Run starts every worker in its own goroutine and blocks until all of them
// have returned, which they do when ctx is cancelled.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Add(1)
		go func(worker Worker) {
			defer wg.Done()
			worker.Run(ctx)
		}(worker)
	}
	wg.Wait()
}
