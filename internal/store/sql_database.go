package store

import (
	"database/sql"

	"github.com/reportwise/costsync/internal/logger"
	"github.com/reportwise/costsync/migrations"
)

// DB wraps the database handle shared by the SQL state backends.
type DB struct {
	*sql.DB
	dialect string
	logger  *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}
