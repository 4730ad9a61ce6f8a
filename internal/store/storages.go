package store

import (
	"context"
	"fmt"

	"github.com/reportwise/costsync/internal/config"
	"github.com/reportwise/costsync/internal/logger"
)

// NewStateStore builds the [StateStore] selected by cfg.Backend. SQL
// backends are connected and migrated before being returned; the caller
// still has to call Load.
func NewStateStore(ctx context.Context, cfg config.State, log *logger.Logger) (StateStore, error) {
	switch cfg.Backend {
	case config.StateBackendFile:
		return NewFileState(cfg.Path, log), nil

	case config.StateBackendSQLite:
		db, err := NewConnectSQLite(ctx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("connecting sqlite state: %w", err)
		}
		if err := db.Migrate(); err != nil {
			return nil, fmt.Errorf("migrating sqlite state: %w", err)
		}
		return NewSQLState(db, log), nil

	case config.StateBackendPostgres:
		db, err := NewConnectPostgres(ctx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("connecting postgres state: %w", err)
		}
		if err := db.Migrate(); err != nil {
			return nil, fmt.Errorf("migrating postgres state: %w", err)
		}
		return NewSQLState(db, log), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
