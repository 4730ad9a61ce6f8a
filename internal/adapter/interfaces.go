package adapter

//go:generate mockgen -source=interfaces.go -destination=../mock/object_store_mock.go -package=mock

import (
	"context"
	"io"
	"time"
)

// ObjectInfo describes one entry returned by a source-store listing.
type ObjectInfo struct {
	// Key is the opaque store identifier of the object.
	Key string
	// Size is the object size in bytes as reported by the store.
	Size int64
	// Date is the calendar date inferred from the object's path.
	Date time.Time
}

// SourceClient is the read side of an object store. Implementations are
// assumed to be already authenticated; credential resolution happens
// outside the engine.
type SourceClient interface {
	// List returns all objects under prefix whose inferred date falls in
	// the inclusive [from, to] window. An empty result is not an error.
	List(ctx context.Context, prefix string, from, to time.Time) ([]ObjectInfo, error)

	// OpenRead opens a streaming reader for one object.
	OpenRead(ctx context.Context, key string) (io.ReadCloser, error)
}

// DestinationClient is the write side of an object store.
type DestinationClient interface {
	// OpenWrite opens a byte-accepting sink for key. The object is
	// finalized only when Close is called; an abandoned or aborted sink
	// must never surface as a committed object.
	OpenWrite(ctx context.Context, key string) (io.WriteCloser, error)
}

// Aborter is optionally implemented by write sinks that can discard an
// in-progress upload. Callers that hit a copy error type-assert for it
// before walking away from the sink.
type Aborter interface {
	Abort() error
}
