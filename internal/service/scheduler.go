// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The costsync Authors

package service

import (
	"context"
	"sync"
	"time"

	"github.com/reportwise/costsync/internal/config"
	"github.com/reportwise/costsync/internal/logger"
	"github.com/reportwise/costsync/internal/store"
	"github.com/reportwise/costsync/models"
)

// outcome is the terminal result of one candidate's copy attempts.
type outcome struct {
	candidate models.Candidate
	record    models.TransferRecord
	attempts  int
	err       error
}

type transferScheduler struct {
	copier      Copier
	state       store.StateStore
	workers     int
	maxAttempts int
	backoffBase time.Duration
	backoffMax  time.Duration
	logger      *logger.Logger

	// sleep is replaceable in tests so retry backoff does not slow them.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewTransferScheduler builds a [Scheduler] with a worker pool bounded by
// agentCfg.MaxConcurrentTransfers.
func NewTransferScheduler(copier Copier, state store.StateStore, agentCfg config.Agent, log *logger.Logger) Scheduler {
	return &transferScheduler{
		copier:      copier,
		state:       state,
		workers:     agentCfg.MaxConcurrentTransfers,
		maxAttempts: agentCfg.MaxRetries,
		backoffBase: agentCfg.BackoffBase,
		backoffMax:  agentCfg.BackoffMax,
		logger:      log,
		sleep:       sleepContext,
	}
}

// Schedule partitions the candidates into already-transferred skips and
// pending copies, fans the pending ones out to the worker pool, and folds
// the outcomes back in. All state writes happen on the collecting goroutine,
// so the state store sees at most one writer per cycle.
//
// Cancellation stops the dispatch of new candidates and interrupts backoff
// waits; copies already in flight run on a detached context so they reach
// their own completion or per-attempt deadline, and their outcomes are
// still collected and durably recorded.
func (s *transferScheduler) Schedule(ctx context.Context, candidates []models.Candidate, forced bool) ScheduleResult {
	var result ScheduleResult

	pending := make([]models.Candidate, 0, len(candidates))
	for _, candidate := range candidates {
		if !forced && s.state.Contains(candidate.SourceKey) {
			result.Skipped++
			continue
		}
		pending = append(pending, candidate)
	}

	if len(pending) == 0 {
		return result
	}

	jobs := make(chan models.Candidate)
	outcomes := make(chan outcome)

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for candidate := range jobs {
				record, attempts, err := s.copyWithRetry(ctx, candidate)
				outcomes <- outcome{candidate: candidate, record: record, attempts: attempts, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, candidate := range pending {
			if ctx.Err() != nil {
				return
			}
			select {
			case jobs <- candidate:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	for out := range outcomes {
		s.collect(ctx, out, &result)
	}

	return result
}

// collect folds one outcome into the result. A successful copy whose state
// write fails is reported as failed even though the bytes landed: the next
// cycle will re-copy it, which is safe because destination writes are
// byte-idempotent.
func (s *transferScheduler) collect(ctx context.Context, out outcome, result *ScheduleResult) {
	if out.err != nil {
		s.logger.Error().Err(out.err).
			Str("key", out.candidate.SourceKey).
			Int("attempts", out.attempts).
			Msg("transfer failed")
		result.Failed++
		result.Errors = append(result.Errors, models.TransferFailure{
			SourceKey: out.candidate.SourceKey,
			Reason:    out.err.Error(),
		})
		return
	}

	// The record write must survive mid-cycle cancellation: the copy already
	// landed, and dropping the write would re-copy the file next cycle.
	if err := s.state.RecordSuccess(context.WithoutCancel(ctx), out.record); err != nil {
		s.logger.Error().Err(err).
			Str("key", out.candidate.SourceKey).
			Msg("transfer succeeded but state write failed")
		result.Failed++
		result.Errors = append(result.Errors, models.TransferFailure{
			SourceKey: out.candidate.SourceKey,
			Reason:    err.Error(),
		})
		return
	}

	result.Transferred++
	result.BytesTransferred += out.record.SizeBytes
}

// copyWithRetry runs copy attempts with exponential backoff until one
// succeeds, the attempt ceiling is hit, or the context is cancelled during
// a backoff wait. Each attempt runs on a context detached from cycle
// cancellation: a dispatched copy is never killed mid-stream, only bounded
// by the copier's own per-attempt deadline.
func (s *transferScheduler) copyWithRetry(ctx context.Context, candidate models.Candidate) (models.TransferRecord, int, error) {
	var lastErr error
	delay := s.backoffBase
	attemptCtx := context.WithoutCancel(ctx)

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		record, err := s.copier.Copy(attemptCtx, candidate)
		if err == nil {
			return record, attempt, nil
		}
		lastErr = err

		if attempt == s.maxAttempts {
			return models.TransferRecord{}, attempt, lastErr
		}

		s.logger.Warn().Err(err).
			Str("key", candidate.SourceKey).
			Int("attempt", attempt).
			Dur("backoff", delay).
			Msg("copy attempt failed, retrying")

		if err := s.sleep(ctx, delay); err != nil {
			return models.TransferRecord{}, attempt, lastErr
		}

		delay *= 2
		if delay > s.backoffMax {
			delay = s.backoffMax
		}
	}

	return models.TransferRecord{}, s.maxAttempts, lastErr
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
