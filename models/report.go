package models

import (
	"time"

	"github.com/google/uuid"
)

// TransferFailure attributes one per-file failure to its candidate so that
// no error in a cycle is ever silently swallowed.
type TransferFailure struct {
	// SourceKey identifies the candidate that failed.
	SourceKey string `json:"sourceKey"`

	// Reason is the final error message after all retries were exhausted.
	Reason string `json:"reason"`
}

// SyncReport summarizes one discovery+transfer cycle. It is built fresh per
// cycle and surfaced to the caller and logs; it is never persisted.
type SyncReport struct {
	// CycleID correlates log lines belonging to the same cycle.
	CycleID uuid.UUID `json:"cycleId"`

	Discovered  int `json:"discovered"`
	Transferred int `json:"transferred"`
	Skipped     int `json:"skipped"`
	Failed      int `json:"failed"`

	// BytesTransferred is the total payload moved this cycle.
	BytesTransferred int64 `json:"bytesTransferred"`

	// DurationMillis is the elapsed wall time of the whole cycle.
	DurationMillis int64 `json:"durationMillis"`

	// Errors lists per-file failures in the order they were recorded.
	Errors []TransferFailure `json:"errors,omitempty"`

	// StartedAtUTC is when the cycle began.
	StartedAtUTC time.Time `json:"startedAtUTC"`

	// Forced reports whether the cycle ran in force mode.
	Forced bool `json:"forced"`
}
