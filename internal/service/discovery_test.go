// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The costsync Authors

package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reportwise/costsync/internal/adapter"
	"github.com/reportwise/costsync/internal/config"
	"github.com/reportwise/costsync/internal/logger"
)

// stubSource is a hand-rolled SourceClient stub; the generated mocks live in
// a package that imports this one, so they cannot be used here.
type stubSource struct {
	infos []adapter.ObjectInfo
	err   error

	gotPrefix string
	gotFrom   time.Time
	gotTo     time.Time
}

func (s *stubSource) List(_ context.Context, prefix string, from, to time.Time) ([]adapter.ObjectInfo, error) {
	s.gotPrefix, s.gotFrom, s.gotTo = prefix, from, to
	return s.infos, s.err
}

func (s *stubSource) OpenRead(context.Context, string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

func newTestDiscoverer(source adapter.SourceClient, lookback int, maxSize int64) *discoverer {
	d := NewDiscoverer(source, config.Agent{
		LookbackDays:     lookback,
		MaxFileSizeBytes: maxSize,
	}, config.Source{Prefix: "FOCUS Reports/"}, logger.Nop()).(*discoverer)
	d.now = func() time.Time {
		return time.Date(2025, 11, 25, 13, 30, 0, 0, time.UTC)
	}
	return d
}

// TestDiscoverer_WindowBounds verifies that the inclusive window
// [today-lookback, today] is derived once from the current date.
func TestDiscoverer_WindowBounds(t *testing.T) {
	source := &stubSource{}
	d := newTestDiscoverer(source, 3, 0)

	_, _, err := d.Discover(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "FOCUS Reports/", source.gotPrefix)
	assert.Equal(t, time.Date(2025, 11, 22, 0, 0, 0, 0, time.UTC), source.gotFrom)
	assert.Equal(t, time.Date(2025, 11, 25, 0, 0, 0, 0, time.UTC), source.gotTo)
}

// TestDiscoverer_MapsCandidates verifies that listing fields carry over into
// candidates, including the renamed destination key.
func TestDiscoverer_MapsCandidates(t *testing.T) {
	source := &stubSource{infos: []adapter.ObjectInfo{
		{Key: "FOCUS Reports/2025/11/24/a.csv.gz", Size: 42, Date: time.Date(2025, 11, 24, 0, 0, 0, 0, time.UTC)},
		{Key: "FOCUS Reports/2025/11/25/b.csv.gz", Size: 7, Date: time.Date(2025, 11, 25, 0, 0, 0, 0, time.UTC)},
	}}
	d := newTestDiscoverer(source, 3, 0)

	candidates, oversized, err := d.Discover(context.Background())
	require.NoError(t, err)
	assert.Zero(t, oversized)
	require.Len(t, candidates, 2)

	assert.Equal(t, "FOCUS Reports/2025/11/24/a.csv.gz", candidates[0].SourceKey)
	assert.Equal(t, int64(42), candidates[0].SizeBytes)
	assert.Equal(t, "2025-11-24_a.csv.gz", candidates[0].DestinationKey())
}

// TestDiscoverer_SizeGuard verifies that oversized objects are excluded from
// the candidate set and counted separately.
func TestDiscoverer_SizeGuard(t *testing.T) {
	source := &stubSource{infos: []adapter.ObjectInfo{
		{Key: "r/2025/11/24/small.csv.gz", Size: 100, Date: time.Date(2025, 11, 24, 0, 0, 0, 0, time.UTC)},
		{Key: "r/2025/11/24/huge.csv.gz", Size: 10_000, Date: time.Date(2025, 11, 24, 0, 0, 0, 0, time.UTC)},
	}}
	d := newTestDiscoverer(source, 3, 1000)

	candidates, oversized, err := d.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, oversized)
	require.Len(t, candidates, 1)
	assert.Equal(t, "r/2025/11/24/small.csv.gz", candidates[0].SourceKey)
}

// TestDiscoverer_ListFailure verifies that a listing failure aborts the whole
// pass and is wrapped in a DiscoveryError.
func TestDiscoverer_ListFailure(t *testing.T) {
	listErr := errors.New("connection refused")
	source := &stubSource{err: listErr}
	d := newTestDiscoverer(source, 3, 0)

	candidates, oversized, err := d.Discover(context.Background())
	assert.Nil(t, candidates)
	assert.Zero(t, oversized)

	var discoveryErr *DiscoveryError
	require.ErrorAs(t, err, &discoveryErr)
	assert.ErrorIs(t, err, listErr)
}
