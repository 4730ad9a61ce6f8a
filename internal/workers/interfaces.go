// Package workers provides abstractions for managing and running the
// agent's long-lived background workers (the poll loop and the status
// server) in a unified way.
package workers

import "context"

// Worker is the interface implemented by any long-lived background worker.
// Run blocks until ctx is cancelled and the worker has fully wound down.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    <-ctx.Done()
//	}
type Worker interface {
	Run(ctx context.Context)
}
