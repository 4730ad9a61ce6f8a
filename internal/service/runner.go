// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The costsync Authors

package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/reportwise/costsync/internal/config"
	"github.com/reportwise/costsync/internal/logger"
	"github.com/reportwise/costsync/internal/store"
	"github.com/reportwise/costsync/models"
)

type syncRunner struct {
	discoverer Discoverer
	scheduler  Scheduler
	state      store.StateStore
	retention  int
	logger     *logger.Logger
	now        func() time.Time
}

// NewSyncRunner wires a [Discoverer], a [Scheduler], and the state store
// into a [CycleRunner].
func NewSyncRunner(discoverer Discoverer, scheduler Scheduler, state store.StateStore, agentCfg config.Agent, log *logger.Logger) CycleRunner {
	return &syncRunner{
		discoverer: discoverer,
		scheduler:  scheduler,
		state:      state,
		retention:  agentCfg.RetentionDays,
		logger:     log,
		now:        time.Now,
	}
}

// Run performs one full cycle: discover, schedule transfers, stamp the sync
// time, and prune expired records. The returned report always carries a
// fresh cycle ID and the cycle duration, even when discovery fails.
func (r *syncRunner) Run(ctx context.Context, forced bool) (models.SyncReport, error) {
	start := r.now()
	report := models.SyncReport{
		CycleID:      uuid.New(),
		StartedAtUTC: start.UTC(),
		Forced:       forced,
	}

	candidates, oversized, err := r.discoverer.Discover(ctx)
	if err != nil {
		report.DurationMillis = time.Since(start).Milliseconds()
		return report, err
	}
	report.Discovered = len(candidates) + oversized
	report.Skipped = oversized

	outcome := r.scheduler.Schedule(ctx, candidates, forced)
	report.Transferred = outcome.Transferred
	report.Skipped += outcome.Skipped
	report.Failed = outcome.Failed
	report.BytesTransferred = outcome.BytesTransferred
	report.Errors = outcome.Errors

	// The stamp marks cycle completion, not success of every file; per-file
	// failures are carried in the report instead.
	if err := r.state.MarkSynced(ctx, r.now().UTC()); err != nil {
		r.logger.Warn().Err(err).Msg("failed to stamp last sync time")
	}

	if r.retention > 0 {
		cutoff := r.now().UTC().AddDate(0, 0, -r.retention)
		pruned, err := r.state.Prune(ctx, cutoff)
		if err != nil {
			r.logger.Warn().Err(err).Msg("failed to prune expired transfer records")
		} else if pruned > 0 {
			r.logger.Info().Int("pruned", pruned).Time("cutoff", cutoff).Msg("pruned expired transfer records")
		}
	}

	report.DurationMillis = time.Since(start).Milliseconds()

	r.logger.Info().
		Str("cycle_id", report.CycleID.String()).
		Int("discovered", report.Discovered).
		Int("transferred", report.Transferred).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Int64("bytes", report.BytesTransferred).
		Int64("duration_ms", report.DurationMillis).
		Bool("forced", report.Forced).
		Msg("sync cycle complete")

	return report, nil
}
