// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The costsync Authors

package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/reportwise/costsync/internal/config"
	"github.com/reportwise/costsync/internal/logger"
	"github.com/reportwise/costsync/models"
)

// PollLoop drives the [CycleRunner] repeatedly. One cycle runs immediately
// on Start; after each cycle completes the loop sleeps for the full
// interval before the next one, so cycles never overlap and a long cycle is
// never chased by an immediate follow-up.
type PollLoop struct {
	runner   CycleRunner
	interval time.Duration
	forced   bool
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	reportMu   sync.RWMutex
	lastReport *models.SyncReport
}

// NewPollLoop creates an idle PollLoop. A non-positive interval defaults to
// 15 minutes.
func NewPollLoop(runner CycleRunner, agentCfg config.Agent, log *logger.Logger) *PollLoop {
	interval := agentCfg.PollInterval
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &PollLoop{
		runner:   runner,
		interval: interval,
		forced:   agentCfg.Force,
		logger:   log,
	}
}

// Start stops any previously running loop, then launches the polling
// goroutine. The goroutine exits when ctx is cancelled or Stop is called.
func (p *PollLoop) Start(ctx context.Context) {
	p.Stop()

	p.mu.Lock()
	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()

		p.runCycle(loopCtx)

		// The interval is a sleep after completion, not a fixed cadence: a
		// cycle that outruns it must still be followed by a full pause.
		t := time.NewTimer(p.interval)
		defer t.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-t.C:
				p.runCycle(loopCtx)
				t.Reset(p.interval)
			}
		}
	}()
}

// Stop cancels the polling goroutine and blocks until it has fully exited,
// including any cycle in flight. Safe to call when the loop is not running.
func (p *PollLoop) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}

// RunOnce executes exactly one cycle synchronously and returns its report.
// Used by the -once flag and by operators triggering a manual pass.
func (p *PollLoop) RunOnce(ctx context.Context) (models.SyncReport, error) {
	report, err := p.runner.Run(ctx, p.forced)
	p.storeReport(report)
	return report, err
}

// LastReport returns the most recent cycle report, if any cycle has
// completed yet.
func (p *PollLoop) LastReport() (models.SyncReport, bool) {
	p.reportMu.RLock()
	defer p.reportMu.RUnlock()
	if p.lastReport == nil {
		return models.SyncReport{}, false
	}
	return *p.lastReport, true
}

func (p *PollLoop) runCycle(ctx context.Context) {
	report, err := p.runner.Run(ctx, p.forced)
	p.storeReport(report)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		var discoveryErr *DiscoveryError
		if errors.As(err, &discoveryErr) {
			p.logger.Error().Err(err).Msg("cycle aborted at discovery, will retry next tick")
			return
		}
		p.logger.Error().Err(err).Msg("cycle failed, will retry next tick")
	}
}

func (p *PollLoop) storeReport(report models.SyncReport) {
	p.reportMu.Lock()
	p.lastReport = &report
	p.reportMu.Unlock()
}
