// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The costsync Authors

package service_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reportwise/costsync/internal/adapter"
	"github.com/reportwise/costsync/internal/config"
	"github.com/reportwise/costsync/internal/logger"
	"github.com/reportwise/costsync/internal/service"
	"github.com/reportwise/costsync/internal/store"
)

// TestSyncFlow_EndToEnd drives a full cycle through real components: local
// source and destination trees, a JSON state file, and the actual
// discoverer, copier, and scheduler. A second cycle over the same source
// must skip everything.
func TestSyncFlow_EndToEnd(t *testing.T) {
	sourceRoot := t.TempDir()
	destRoot := t.TempDir()
	statePath := filepath.Join(t.TempDir(), "state.json")
	log := logger.Nop()

	today := time.Now().UTC()
	dayDir := filepath.Join(sourceRoot, "FOCUS Reports", today.Format("2006/01/02"))
	require.NoError(t, os.MkdirAll(dayDir, 0o755))
	for i := 0; i < 6; i++ {
		name := fmt.Sprintf("report-%d.csv.gz", i)
		require.NoError(t, os.WriteFile(filepath.Join(dayDir, name), []byte("payload-"+name), 0o644))
	}

	agentCfg := config.Agent{
		LookbackDays:           3,
		MaxConcurrentTransfers: 3,
		ChunkSizeBytes:         4,
		MaxRetries:             3,
		BackoffBase:            time.Millisecond,
		BackoffMax:             5 * time.Millisecond,
	}
	sourceCfg := config.Source{Prefix: "FOCUS Reports"}

	source := adapter.NewLocalClient(sourceRoot, log)
	destination := adapter.NewLocalClient(destRoot, log)
	state := store.NewFileState(statePath, log)
	require.NoError(t, state.Load(context.Background()))
	defer state.Close()

	runner := service.NewSyncRunner(
		service.NewDiscoverer(source, agentCfg, sourceCfg, log),
		service.NewTransferScheduler(service.NewStreamCopier(source, destination, agentCfg, log), state, agentCfg, log),
		state,
		agentCfg,
		log,
	)

	first, err := runner.Run(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 6, first.Discovered)
	assert.Equal(t, 6, first.Transferred)
	assert.Equal(t, 0, first.Skipped)
	assert.Equal(t, 0, first.Failed)
	assert.Positive(t, first.BytesTransferred)

	// Every file lands flat under the destination root, renamed with its
	// inferred date.
	wantName := today.Format(time.DateOnly) + "_report-0.csv.gz"
	got, err := os.ReadFile(filepath.Join(destRoot, wantName))
	require.NoError(t, err)
	assert.Equal(t, "payload-report-0.csv.gz", string(got))

	entries, err := os.ReadDir(destRoot)
	require.NoError(t, err)
	assert.Len(t, entries, 6)

	second, err := runner.Run(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 6, second.Discovered)
	assert.Equal(t, 0, second.Transferred)
	assert.Equal(t, 6, second.Skipped)
	assert.Equal(t, 0, second.Failed)

	// State survived both cycles durably.
	reloaded := store.NewFileState(statePath, log)
	require.NoError(t, reloaded.Load(context.Background()))
	assert.Len(t, reloaded.Snapshot().Records, 6)
	assert.False(t, reloaded.Snapshot().LastSyncUTC.IsZero())
}
