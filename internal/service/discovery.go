// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The costsync Authors

package service

import (
	"context"
	"time"

	"github.com/reportwise/costsync/internal/adapter"
	"github.com/reportwise/costsync/internal/config"
	"github.com/reportwise/costsync/internal/logger"
	"github.com/reportwise/costsync/models"
)

type discoverer struct {
	source   adapter.SourceClient
	prefix   string
	lookback int
	maxSize  int64
	logger   *logger.Logger

	// now is replaceable in tests. The window is computed from it exactly
	// once per Discover call so a cycle crossing midnight stays consistent.
	now func() time.Time
}

// NewDiscoverer builds a [Discoverer] over the given source store.
func NewDiscoverer(source adapter.SourceClient, agentCfg config.Agent, sourceCfg config.Source, log *logger.Logger) Discoverer {
	return &discoverer{
		source:   source,
		prefix:   sourceCfg.Prefix,
		lookback: agentCfg.LookbackDays,
		maxSize:  agentCfg.MaxFileSizeBytes,
		logger:   log,
		now:      time.Now,
	}
}

// Discover lists the source store over the inclusive window
// [today-lookback, today] and maps each listed object to a transfer
// candidate. Objects exceeding the size guard are dropped and counted in the
// second return value. Any listing failure aborts the whole pass with a
// *DiscoveryError: a partial listing must never shrink the candidate set, or
// missed files would silently look like an empty day.
func (d *discoverer) Discover(ctx context.Context) ([]models.Candidate, int, error) {
	today := d.now().UTC().Truncate(24 * time.Hour)
	from := today.AddDate(0, 0, -d.lookback)

	infos, err := d.source.List(ctx, d.prefix, from, today)
	if err != nil {
		return nil, 0, &DiscoveryError{Err: err}
	}

	candidates := make([]models.Candidate, 0, len(infos))
	oversized := 0
	for _, info := range infos {
		if d.maxSize > 0 && info.Size > d.maxSize {
			d.logger.Warn().
				Str("key", info.Key).
				Int64("size", info.Size).
				Int64("limit", d.maxSize).
				Msg("skipping object over size limit")
			oversized++
			continue
		}
		candidates = append(candidates, models.Candidate{
			SourceKey:    info.Key,
			InferredDate: info.Date,
			SizeBytes:    info.Size,
		})
	}

	d.logger.Debug().
		Time("from", from).
		Time("to", today).
		Int("candidates", len(candidates)).
		Int("oversized", oversized).
		Msg("discovery pass complete")

	return candidates, oversized, nil
}
