// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The costsync Authors

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// agent invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or one of the sentinel errors
// declared in errors.go otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Agent.LookbackDays < 0 ||
		cfg.Agent.MaxConcurrentTransfers <= 0 ||
		cfg.Agent.ChunkSizeBytes <= 0 ||
		cfg.Agent.MaxRetries <= 0 {
		return ErrInvalidAgentConfigs
	}

	if cfg.Source.URL == "" {
		return ErrInvalidSourceConfigs
	}

	if cfg.Destination.URL == "" {
		return ErrInvalidDestinationConfigs
	}

	switch cfg.State.Backend {
	case StateBackendFile:
		if cfg.State.Path == "" {
			return ErrInvalidStateConfigs
		}
	case StateBackendSQLite, StateBackendPostgres:
		if cfg.State.DSN == "" {
			return ErrInvalidStateConfigs
		}
	default:
		return ErrInvalidStateConfigs
	}

	return nil
}
