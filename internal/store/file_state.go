// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The costsync Authors

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/reportwise/costsync/internal/logger"
	"github.com/reportwise/costsync/models"
)

// fileState is the default [StateStore] implementation: a single JSON file
// at a configured path, rewritten atomically (write-to-temp-then-rename) on
// every record update so a concurrent reader or a crash never observes a
// half-written file.
//
// Unknown top-level JSON fields found in an existing file are carried
// through rewrites untouched, keeping the file forward-compatible with
// newer agent versions.
type fileState struct {
	path   string
	logger *logger.Logger

	mu    sync.RWMutex
	state models.TransferState
	// extra holds top-level JSON fields this version does not know about.
	extra map[string]json.RawMessage
}

// NewFileState constructs a file-backed [StateStore] at path. The file is
// not touched until Load or the first RecordSuccess.
func NewFileState(path string, log *logger.Logger) StateStore {
	return &fileState{
		path:   path,
		logger: log,
		state:  models.NewTransferState(),
		extra:  make(map[string]json.RawMessage),
	}
}

func (f *fileState) Load(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		// First run: nothing persisted yet.
		f.state = models.NewTransferState()
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading state file: %w", err)
	}

	state, extra, err := decodeState(raw)
	if err != nil {
		// Losing dedup history is recoverable (re-transfer, destination
		// overwrite); refusing to run is not. Start from empty.
		f.logger.Warn().Err(err).Str("path", f.path).
			Msg("state file unparsable, starting from empty state")
		f.state = models.NewTransferState()
		f.extra = make(map[string]json.RawMessage)
		return nil
	}

	f.state = state
	f.extra = extra
	f.logger.Debug().Int("records", len(state.Records)).Msg("state loaded")
	return nil
}

func (f *fileState) Contains(key string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.state.Records[key]
	return ok
}

func (f *fileState) RecordSuccess(_ context.Context, record models.TransferRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	previous, existed := f.state.Records[record.Key]
	f.state.Records[record.Key] = record

	if err := f.flushLocked(); err != nil {
		// Roll the in-memory map back so Contains keeps agreeing with the
		// durable file.
		if existed {
			f.state.Records[record.Key] = previous
		} else {
			delete(f.state.Records, record.Key)
		}
		return fmt.Errorf("%w: %w", ErrStateWrite, err)
	}

	return nil
}

func (f *fileState) MarkSynced(_ context.Context, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	previous := f.state.LastSyncUTC
	f.state.LastSyncUTC = at.UTC()

	if err := f.flushLocked(); err != nil {
		f.state.LastSyncUTC = previous
		return fmt.Errorf("%w: %w", ErrStateWrite, err)
	}
	return nil
}

func (f *fileState) Prune(_ context.Context, cutoff time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pruned := make(map[string]models.TransferRecord)
	for key, record := range f.state.Records {
		if record.TransferredAtUTC.Before(cutoff) {
			delete(f.state.Records, key)
			pruned[key] = record
		}
	}

	if len(pruned) == 0 {
		return 0, nil
	}

	if err := f.flushLocked(); err != nil {
		// Restore the dropped records so memory keeps agreeing with disk.
		for key, record := range pruned {
			f.state.Records[key] = record
		}
		return 0, fmt.Errorf("%w: %w", ErrStateWrite, err)
	}
	return len(pruned), nil
}

func (f *fileState) Snapshot() models.TransferState {
	f.mu.RLock()
	defer f.mu.RUnlock()

	snapshot := models.TransferState{
		Records:     make(map[string]models.TransferRecord, len(f.state.Records)),
		LastSyncUTC: f.state.LastSyncUTC,
	}
	for key, record := range f.state.Records {
		snapshot.Records[key] = record
	}
	return snapshot
}

func (f *fileState) Close() error { return nil }

// flushLocked serializes the current state to a temp file in the target
// directory and renames it over the real file. Callers must hold f.mu.
func (f *fileState) flushLocked() error {
	payload, err := encodeState(f.state, f.extra)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp state file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp state file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp state file: %w", err)
	}

	if err = os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp state file: %w", err)
	}
	return nil
}

// decodeState parses a state file, splitting known fields from unknown
// top-level fields so the latter survive rewrites.
func decodeState(raw []byte) (models.TransferState, map[string]json.RawMessage, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return models.TransferState{}, nil, fmt.Errorf("%w: %w", ErrStateCorrupt, err)
	}

	state := models.NewTransferState()
	extra := make(map[string]json.RawMessage)

	for key, value := range top {
		switch key {
		case "records":
			if err := json.Unmarshal(value, &state.Records); err != nil {
				return models.TransferState{}, nil, fmt.Errorf("%w: %w", ErrStateCorrupt, err)
			}
		case "lastSyncUTC":
			if err := json.Unmarshal(value, &state.LastSyncUTC); err != nil {
				return models.TransferState{}, nil, fmt.Errorf("%w: %w", ErrStateCorrupt, err)
			}
		default:
			extra[key] = value
		}
	}

	if state.Records == nil {
		state.Records = make(map[string]models.TransferRecord)
	}
	return state, extra, nil
}

// encodeState merges known fields over any preserved unknown fields and
// marshals the result.
func encodeState(state models.TransferState, extra map[string]json.RawMessage) ([]byte, error) {
	top := make(map[string]any, len(extra)+2)
	for key, value := range extra {
		top[key] = value
	}
	top["records"] = state.Records
	top["lastSyncUTC"] = state.LastSyncUTC

	return json.MarshalIndent(top, "", "  ")
}
