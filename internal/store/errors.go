package store

import "errors"

// Sentinel errors returned by state store implementations. Callers should
// use [errors.Is] to match against these values.
var (
	// ErrStateCorrupt is returned (wrapped) when the durable state exists
	// but cannot be parsed. The engine recovers by starting from an empty
	// state: losing dedup history is recoverable, refusing to run is not.
	ErrStateCorrupt = errors.New("state file is corrupt")

	// ErrStateWrite is returned (wrapped) when a durable write fails after
	// a copy already succeeded. The copy is not re-attempted automatically;
	// the failure is surfaced per-file so an operator can force a re-run.
	ErrStateWrite = errors.New("state write failed")

	// ErrUnknownBackend is returned when the configured state backend name
	// is not one of file, sqlite or postgres.
	ErrUnknownBackend = errors.New("unknown state backend")
)

// Low-level database operation errors, returned (or wrapped) by the SQL
// state store when an operation fails before any domain logic applies.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRows is returned when scanning column values during
	// result-set iteration fails.
	ErrScanningRows = errors.New("failed to scan transfer record rows")
)
