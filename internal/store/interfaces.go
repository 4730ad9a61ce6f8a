package store

//go:generate mockgen -source=interfaces.go -destination=../mock/state_store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/reportwise/costsync/models"
)

// StateStore is the durable mapping of delivered file identifiers to
// transfer metadata. It is the single source of truth for dedup decisions.
//
// Implementations must guarantee that a record is never observable before
// its durable write completed, and that concurrent readers only ever see
// fully-written snapshots. All mutating calls are expected to arrive from a
// single logical writer (the scheduler's serialization point); Contains and
// Snapshot may be called concurrently with it.
type StateStore interface {
	// Load reads the durable state into memory. A missing backing file or
	// empty table is a normal first run and yields an empty state, not an
	// error. Unparsable durable contents are logged and recovered by
	// starting from an empty state.
	Load(ctx context.Context) error

	// Contains reports whether key already has a transfer record.
	Contains(key string) bool

	// RecordSuccess merges record into the state and performs an atomic
	// durable write before returning. An existing record for the same key
	// is overwritten.
	RecordSuccess(ctx context.Context, record models.TransferRecord) error

	// MarkSynced durably stamps the completion time of a cycle.
	MarkSynced(ctx context.Context, at time.Time) error

	// Prune removes records transferred before cutoff and returns how many
	// were dropped.
	Prune(ctx context.Context, cutoff time.Time) (int, error)

	// Snapshot returns a copy of the in-memory state for inspection.
	Snapshot() models.TransferState

	// Close releases any resources held by the backend.
	Close() error
}
