package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAgentConfigs indicates invalid sync engine settings
	// (for example, a negative lookback window or zero worker count).
	ErrInvalidAgentConfigs = errors.New("invalid agent configuration")
	// ErrInvalidSourceConfigs indicates invalid source store settings
	// (for example, a missing URL).
	ErrInvalidSourceConfigs = errors.New("invalid source configuration")
	// ErrInvalidDestinationConfigs indicates invalid destination store
	// settings (for example, a missing URL).
	ErrInvalidDestinationConfigs = errors.New("invalid destination configuration")
	// ErrInvalidStateConfigs indicates invalid dedup state settings
	// (for example, an unknown backend or a SQL backend without a DSN).
	ErrInvalidStateConfigs = errors.New("invalid state configuration")
)
