// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The costsync Authors

package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reportwise/costsync/internal/logger"
	"github.com/reportwise/costsync/models"
)

func newTestFileState(t *testing.T) (StateStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")
	return NewFileState(path, logger.Nop()), path
}

func record(key string, transferredAt time.Time) models.TransferRecord {
	return models.TransferRecord{
		Key:              key,
		SizeBytes:        1024,
		TransferredAtUTC: transferredAt,
		DurationMillis:   250,
	}
}

// TestFileState_Load_FirstRun verifies that a missing state file yields an
// empty state, not an error.
func TestFileState_Load_FirstRun(t *testing.T) {
	s, _ := newTestFileState(t)

	require.NoError(t, s.Load(context.Background()))

	snapshot := s.Snapshot()
	assert.Empty(t, snapshot.Records)
	assert.True(t, snapshot.LastSyncUTC.IsZero())
}

// TestFileState_RecordSuccess_Persists verifies that a recorded transfer
// survives a full reload from disk.
func TestFileState_RecordSuccess_Persists(t *testing.T) {
	s, path := newTestFileState(t)
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	now := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, s.RecordSuccess(ctx, record("reports/a.csv.gz", now)))
	assert.True(t, s.Contains("reports/a.csv.gz"))

	// A fresh store over the same path must see the same record.
	reloaded := NewFileState(path, logger.Nop())
	require.NoError(t, reloaded.Load(ctx))
	assert.True(t, reloaded.Contains("reports/a.csv.gz"))

	got := reloaded.Snapshot().Records["reports/a.csv.gz"]
	assert.Equal(t, int64(1024), got.SizeBytes)
	assert.Equal(t, now, got.TransferredAtUTC)
}

// TestFileState_RecordSuccess_Overwrites verifies force-mode semantics: a
// second record for the same key replaces the first.
func TestFileState_RecordSuccess_Overwrites(t *testing.T) {
	s, _ := newTestFileState(t)
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	first := record("k", time.Now().UTC())
	require.NoError(t, s.RecordSuccess(ctx, first))

	second := first
	second.SizeBytes = 4096
	require.NoError(t, s.RecordSuccess(ctx, second))

	assert.Equal(t, int64(4096), s.Snapshot().Records["k"].SizeBytes)
	assert.Len(t, s.Snapshot().Records, 1)
}

// TestFileState_Load_CorruptFile verifies recovery: unparsable contents are
// logged and replaced by an empty state instead of aborting the agent.
func TestFileState_Load_CorruptFile(t *testing.T) {
	s, path := newTestFileState(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	require.NoError(t, s.Load(context.Background()))
	assert.Empty(t, s.Snapshot().Records)

	// The store must be usable after recovery.
	require.NoError(t, s.RecordSuccess(context.Background(), record("k", time.Now().UTC())))
	assert.True(t, s.Contains("k"))
}

// TestFileState_UnknownFieldsPreserved verifies forward compatibility:
// top-level JSON fields written by a newer agent survive rewrites.
func TestFileState_UnknownFieldsPreserved(t *testing.T) {
	s, path := newTestFileState(t)
	ctx := context.Background()

	seed := `{"records": {}, "lastSyncUTC": "0001-01-01T00:00:00Z", "schemaHint": {"v": 2}}`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o600))

	require.NoError(t, s.Load(ctx))
	require.NoError(t, s.RecordSuccess(ctx, record("k", time.Now().UTC())))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var top map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &top))
	assert.Contains(t, top, "schemaHint")
	assert.JSONEq(t, `{"v": 2}`, string(top["schemaHint"]))
	assert.Contains(t, top, "records")
}

// TestFileState_NoTempLeftovers verifies the temp-then-rename write leaves
// no intermediate files behind.
func TestFileState_NoTempLeftovers(t *testing.T) {
	s, path := newTestFileState(t)
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))
	require.NoError(t, s.RecordSuccess(ctx, record("k", time.Now().UTC())))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(path), entries[0].Name())
}

// TestFileState_MarkSynced verifies the cycle timestamp round-trips.
func TestFileState_MarkSynced(t *testing.T) {
	s, path := newTestFileState(t)
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	at := time.Date(2025, 11, 25, 6, 0, 0, 0, time.UTC)
	require.NoError(t, s.MarkSynced(ctx, at))

	reloaded := NewFileState(path, logger.Nop())
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, at, reloaded.Snapshot().LastSyncUTC)
}

// TestFileState_Prune verifies that only records older than the cutoff are
// dropped and the count is reported.
func TestFileState_Prune(t *testing.T) {
	s, _ := newTestFileState(t)
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	old := time.Now().UTC().Add(-96 * time.Hour)
	fresh := time.Now().UTC()
	require.NoError(t, s.RecordSuccess(ctx, record("old-1", old)))
	require.NoError(t, s.RecordSuccess(ctx, record("old-2", old)))
	require.NoError(t, s.RecordSuccess(ctx, record("fresh", fresh)))

	dropped, err := s.Prune(ctx, time.Now().UTC().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, dropped)

	assert.False(t, s.Contains("old-1"))
	assert.False(t, s.Contains("old-2"))
	assert.True(t, s.Contains("fresh"))
}

// TestFileState_Prune_FlushFailureRollsBack verifies a failed durable write
// restores the pruned records so memory keeps agreeing with disk.
func TestFileState_Prune_FlushFailureRollsBack(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	s := NewFileState(filepath.Join(dir, "state.json"), logger.Nop())
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	old := record("reports/2025/01/01/old.csv.gz", time.Now().UTC().Add(-96*time.Hour))
	require.NoError(t, s.RecordSuccess(ctx, old))

	// Take the backing directory away so the next flush cannot succeed.
	require.NoError(t, os.RemoveAll(dir))

	pruned, err := s.Prune(ctx, time.Now().UTC())
	require.ErrorIs(t, err, ErrStateWrite)
	assert.Zero(t, pruned)
	assert.True(t, s.Contains(old.Key))
}

// TestFileState_CrashSafety simulates a restart after N successful copies:
// a fresh process over the same file sees exactly those N records.
func TestFileState_CrashSafety(t *testing.T) {
	s, path := newTestFileState(t)
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	keys := []string{"a", "b", "c"}
	for _, key := range keys {
		require.NoError(t, s.RecordSuccess(ctx, record(key, time.Now().UTC())))
	}
	// No explicit shutdown: every RecordSuccess already flushed durably.

	restarted := NewFileState(path, logger.Nop())
	require.NoError(t, restarted.Load(ctx))
	assert.Len(t, restarted.Snapshot().Records, len(keys))
	for _, key := range keys {
		assert.True(t, restarted.Contains(key))
	}
}

// TestFileState_Snapshot_IsCopy verifies that mutating a snapshot does not
// leak into the store.
func TestFileState_Snapshot_IsCopy(t *testing.T) {
	s, _ := newTestFileState(t)
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))
	require.NoError(t, s.RecordSuccess(ctx, record("k", time.Now().UTC())))

	snapshot := s.Snapshot()
	delete(snapshot.Records, "k")

	assert.True(t, s.Contains("k"))
}
