// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The costsync Authors

package models

import "time"

// TransferRecord is the durable proof that a single file was delivered to
// the destination store. Records are keyed by the source key and make up
// the dedup history consulted on every cycle.
type TransferRecord struct {
	// Key is the dedup key, unique per source object.
	Key string `json:"key"`

	// SizeBytes is the number of bytes actually copied.
	SizeBytes int64 `json:"sizeBytes"`

	// TransferredAtUTC is the UTC completion time of the copy.
	TransferredAtUTC time.Time `json:"transferredAtUTC"`

	// DurationMillis is the wall time of the copy in milliseconds.
	DurationMillis int64 `json:"durationMillis"`
}

// TransferState is the full durable dedup state: every delivered file's
// record plus the timestamp of the most recently completed cycle.
//
// The state is loaded once at process start, mutated in memory by the
// scheduler's single state writer, and flushed after each successful
// transfer so a mid-cycle crash loses at most the in-flight transfers.
type TransferState struct {
	// Records maps dedup key to its TransferRecord. No ordering semantics.
	Records map[string]TransferRecord `json:"records"`

	// LastSyncUTC is the UTC timestamp of the most recently completed cycle.
	LastSyncUTC time.Time `json:"lastSyncUTC"`
}

// NewTransferState returns an empty state ready for use on first run.
func NewTransferState() TransferState {
	return TransferState{Records: make(map[string]TransferRecord)}
}
