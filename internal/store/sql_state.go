// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The costsync Authors

package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/reportwise/costsync/internal/logger"
	"github.com/reportwise/costsync/models"
)

// sqlState is the [StateStore] implementation over a relational database
// (sqlite for a single agent, postgres for a fleet sharing one dedup
// history). Records live in the transfer_records table; the cycle timestamp
// lives in a single-row sync_meta table.
//
// An in-memory cache mirrors the table so Contains and Snapshot never touch
// the database; the cache is only updated after the corresponding durable
// write committed.
type sqlState struct {
	db      *DB
	logger  *logger.Logger
	builder sq.StatementBuilderType

	mu       sync.RWMutex
	cache    map[string]models.TransferRecord
	lastSync time.Time
}

// NewSQLState constructs a SQL-backed [StateStore] on an already connected
// and migrated database handle.
func NewSQLState(db *DB, log *logger.Logger) StateStore {
	return &sqlState{
		db:      db,
		logger:  log,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		cache:   make(map[string]models.TransferRecord),
	}
}

func (s *sqlState) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, args, err := s.builder.
		Select("dedup_key", "size_bytes", "transferred_at", "duration_ms").
		From("transfer_records").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	cache := make(map[string]models.TransferRecord)
	for rows.Next() {
		var record models.TransferRecord
		if err := rows.Scan(&record.Key, &record.SizeBytes, &record.TransferredAtUTC, &record.DurationMillis); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		cache[record.Key] = record
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	lastSync, err := s.loadLastSync(ctx)
	if err != nil {
		return err
	}

	s.cache = cache
	s.lastSync = lastSync
	s.logger.Debug().Int("records", len(cache)).Msg("state loaded")
	return nil
}

func (s *sqlState) loadLastSync(ctx context.Context) (time.Time, error) {
	query, args, err := s.builder.
		Select("last_sync_utc").
		From("sync_meta").
		Where(sq.Eq{"id": 1}).
		ToSql()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var lastSync sql.NullTime
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&lastSync); err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if !lastSync.Valid {
		return time.Time{}, nil
	}
	return lastSync.Time.UTC(), nil
}

func (s *sqlState) Contains(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.cache[key]
	return ok
}

func (s *sqlState) RecordSuccess(ctx context.Context, record models.TransferRecord) error {
	query, args, err := s.builder.
		Insert("transfer_records").
		Columns("dedup_key", "size_bytes", "transferred_at", "duration_ms").
		Values(record.Key, record.SizeBytes, record.TransferredAtUTC, record.DurationMillis).
		Suffix(`ON CONFLICT (dedup_key) DO UPDATE SET
			size_bytes = EXCLUDED.size_bytes,
			transferred_at = EXCLUDED.transferred_at,
			duration_ms = EXCLUDED.duration_ms`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if !isUniqueViolation(err) {
			return fmt.Errorf("%w: %w", ErrStateWrite, err)
		}
		// Another agent inserted the same key between our upsert's read and
		// write (shared postgres state, forced re-run). Retry as an update.
		if err := s.updateRecord(ctx, record); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.cache[record.Key] = record
	s.mu.Unlock()
	return nil
}

func (s *sqlState) updateRecord(ctx context.Context, record models.TransferRecord) error {
	query, args, err := s.builder.
		Update("transfer_records").
		Set("size_bytes", record.SizeBytes).
		Set("transferred_at", record.TransferredAtUTC).
		Set("duration_ms", record.DurationMillis).
		Where(sq.Eq{"dedup_key": record.Key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrStateWrite, err)
	}
	return nil
}

func (s *sqlState) MarkSynced(ctx context.Context, at time.Time) error {
	query, args, err := s.builder.
		Update("sync_meta").
		Set("last_sync_utc", at.UTC()).
		Where(sq.Eq{"id": 1}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrStateWrite, err)
	}

	s.mu.Lock()
	s.lastSync = at.UTC()
	s.mu.Unlock()
	return nil
}

func (s *sqlState) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	query, args, err := s.builder.
		Delete("transfer_records").
		Where(sq.Lt{"transferred_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrStateWrite, err)
	}

	dropped, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	s.mu.Lock()
	for key, record := range s.cache {
		if record.TransferredAtUTC.Before(cutoff) {
			delete(s.cache, key)
		}
	}
	s.mu.Unlock()

	return int(dropped), nil
}

func (s *sqlState) Snapshot() models.TransferState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := models.TransferState{
		Records:     make(map[string]models.TransferRecord, len(s.cache)),
		LastSyncUTC: s.lastSync,
	}
	for key, record := range s.cache {
		snapshot.Records[key] = record
	}
	return snapshot
}

func (s *sqlState) Close() error {
	return s.db.Close()
}
