// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The costsync Authors

package config

import (
	"time"
)

// State backend names accepted in [State.Backend].
const (
	StateBackendFile     = "file"
	StateBackendSQLite   = "sqlite"
	StateBackendPostgres = "postgres"
)

// StructuredConfig is the top-level configuration container for the costsync
// agent. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, an optional JSON
// file, and built-in defaults (in that priority order; first source wins).
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Agent holds the sync engine settings: cycle spacing, date window,
	// concurrency, chunking, and retry policy.
	Agent Agent `envPrefix:"AGENT_"`

	// Source holds settings for the source object store the agent reads
	// cost-report files from.
	Source Source `envPrefix:"SOURCE_"`

	// Destination holds settings for the destination object store files are
	// delivered to.
	Destination Destination `envPrefix:"DESTINATION_"`

	// State holds settings for the durable dedup state backend.
	State State `envPrefix:"STATE_"`

	// Server holds settings for the status inspection HTTP endpoint.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged underneath the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Agent holds the sync engine settings.
type Agent struct {
	// PollInterval is the sleep between daemon cycles (e.g. "15m").
	// Env: AGENT_POLL_INTERVAL
	PollInterval time.Duration `env:"POLL_INTERVAL"`

	// LookbackDays sizes the inclusive discovery window
	// [today-LookbackDays, today].
	// Env: AGENT_LOOKBACK_DAYS
	LookbackDays int `env:"LOOKBACK_DAYS"`

	// MaxConcurrentTransfers bounds the copy worker pool.
	// Env: AGENT_MAX_CONCURRENT_TRANSFERS
	MaxConcurrentTransfers int `env:"MAX_CONCURRENT_TRANSFERS"`

	// ChunkSizeBytes is the copy buffer size. Files are streamed in chunks
	// of this size and never held fully in memory.
	// Env: AGENT_CHUNK_SIZE_BYTES
	ChunkSizeBytes int `env:"CHUNK_SIZE_BYTES"`

	// MaxRetries is the per-file attempt ceiling before the file is
	// reported as failed.
	// Env: AGENT_MAX_RETRIES
	MaxRetries int `env:"MAX_RETRIES"`

	// BackoffBase is the first retry delay; each subsequent retry doubles
	// it up to BackoffMax.
	// Env: AGENT_BACKOFF_BASE
	BackoffBase time.Duration `env:"BACKOFF_BASE"`

	// BackoffMax caps the exponential retry delay.
	// Env: AGENT_BACKOFF_MAX
	BackoffMax time.Duration `env:"BACKOFF_MAX"`

	// CopyTimeout is the overall deadline for one copy attempt, bounding
	// how long a stalled transfer can occupy a pool slot. Zero disables it.
	// Env: AGENT_COPY_TIMEOUT
	CopyTimeout time.Duration `env:"COPY_TIMEOUT"`

	// MaxFileSizeBytes skips discovered objects larger than this size.
	// Zero disables the guard.
	// Env: AGENT_MAX_FILE_SIZE_BYTES
	MaxFileSizeBytes int64 `env:"MAX_FILE_SIZE_BYTES"`

	// RetentionDays prunes transfer records older than this many days after
	// each successful cycle. Zero keeps records forever.
	// Env: AGENT_RETENTION_DAYS
	RetentionDays int `env:"RETENTION_DAYS"`

	// RunOnce makes the agent perform exactly one cycle and exit instead of
	// polling. Env: AGENT_RUN_ONCE
	RunOnce bool `env:"RUN_ONCE"`

	// Force bypasses the dedup state entirely: every discovered file is
	// re-transferred and its record overwritten.
	// Env: AGENT_FORCE
	Force bool `env:"FORCE"`
}

// Source holds connection settings for the source object store.
type Source struct {
	// URL locates the store. Supported schemes: "file://" for a local
	// directory tree and "http(s)://" for the HTTP object API.
	// Env: SOURCE_URL
	URL string `env:"URL"`

	// Prefix is the key prefix the cost-report exporter writes under,
	// e.g. "FOCUS Reports/". Date components are appended per day.
	// Env: SOURCE_PREFIX
	Prefix string `env:"PREFIX"`

	// RequestTimeout bounds individual listing requests.
	// Env: SOURCE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Destination holds connection settings for the destination object store.
type Destination struct {
	// URL locates the store. Same schemes as [Source.URL].
	// Env: DESTINATION_URL
	URL string `env:"URL"`

	// RequestTimeout bounds individual write-stream setups.
	// Env: DESTINATION_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// State holds settings for the durable dedup state backend.
type State struct {
	// Backend selects the state implementation: "file" (default),
	// "sqlite", or "postgres".
	// Env: STATE_BACKEND
	Backend string `env:"BACKEND"`

	// Path is the state file location for the "file" backend.
	// Env: STATE_PATH
	Path string `env:"PATH"`

	// DSN is the connection string for the SQL backends (an sqlite file
	// path or a postgres URI).
	// Env: STATE_DSN
	DSN string `env:"DSN"`
}

// Server holds settings for the status inspection endpoint.
type Server struct {
	// StatusAddress is the TCP address the status HTTP server listens on,
	// in "host:port" format. Empty disables the server.
	// Env: SERVER_STATUS_ADDRESS
	StatusAddress string `env:"STATUS_ADDRESS"`

	// RequestTimeout is the maximum duration allowed for one inbound
	// status request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetStructuredConfig loads, merges, and validates the agent configuration
// from all available sources in the following priority order (first source
// wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
