package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/reportwise/costsync/models"
)

// Discoverer lists source-store entries within the current lookback window
// and resolves them to transfer candidates.
type Discoverer interface {
	// Discover returns the eligible candidates plus the number of
	// discovered objects skipped by the size guard. A listing failure is
	// returned as *DiscoveryError and is fatal to the cycle.
	Discover(ctx context.Context) ([]models.Candidate, int, error)
}

// Copier copies one candidate from the source store to the destination
// store. Each call opens a fresh stream pair; retrying is the scheduler's
// responsibility, never the copier's.
type Copier interface {
	Copy(ctx context.Context, candidate models.Candidate) (models.TransferRecord, error)
}

// ScheduleResult aggregates the per-item terminal outcomes of one
// scheduling pass.
type ScheduleResult struct {
	Transferred      int
	Skipped          int
	Failed           int
	BytesTransferred int64
	Errors           []models.TransferFailure
}

// Scheduler fans candidates out to a bounded pool of copy workers and fans
// the outcomes back in through a single state-writing collector.
type Scheduler interface {
	Schedule(ctx context.Context, candidates []models.Candidate, forced bool) ScheduleResult
}

// CycleRunner executes one full discovery+transfer cycle.
type CycleRunner interface {
	Run(ctx context.Context, forced bool) (models.SyncReport, error)
}
