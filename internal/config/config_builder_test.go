// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The costsync Authors

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildFrom merges the given configs through the builder without touching
// env or flags, then appends defaults, mirroring GetStructuredConfig.
func buildFrom(t *testing.T, configs ...*StructuredConfig) (*StructuredConfig, error) {
	t.Helper()
	b := newConfigBuilder()
	b.configs = append(b.configs, configs...)
	return b.withDefaults().build()
}

// validSource returns a minimal config that passes validation on its own
// once defaults are merged in.
func validSource() *StructuredConfig {
	return &StructuredConfig{
		Source:      Source{URL: "file:///exports"},
		Destination: Destination{URL: "file:///delivered"},
	}
}

func TestBuild_DefaultsApplied(t *testing.T) {
	cfg, err := buildFrom(t, validSource())
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.Agent.PollInterval)
	assert.Equal(t, 3, cfg.Agent.LookbackDays)
	assert.Equal(t, 3, cfg.Agent.MaxConcurrentTransfers)
	assert.Equal(t, 8<<20, cfg.Agent.ChunkSizeBytes)
	assert.Equal(t, 3, cfg.Agent.MaxRetries)
	assert.Equal(t, time.Second, cfg.Agent.BackoffBase)
	assert.Equal(t, 30*time.Second, cfg.Agent.BackoffMax)
	assert.Equal(t, StateBackendFile, cfg.State.Backend)
	assert.Equal(t, "costsync-state.json", cfg.State.Path)
}

func TestBuild_EarlierSourceWins(t *testing.T) {
	env := validSource()
	env.Agent.LookbackDays = 10

	json := &StructuredConfig{Agent: Agent{LookbackDays: 2, MaxRetries: 5}}

	cfg, err := buildFrom(t, env, json)
	require.NoError(t, err)

	// env beats json
	assert.Equal(t, 10, cfg.Agent.LookbackDays)
	// json beats defaults
	assert.Equal(t, 5, cfg.Agent.MaxRetries)
}

func TestBuild_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:    "missing source URL",
			mutate:  func(cfg *StructuredConfig) { cfg.Source.URL = "" },
			wantErr: ErrInvalidSourceConfigs,
		},
		{
			name:    "missing destination URL",
			mutate:  func(cfg *StructuredConfig) { cfg.Destination.URL = "" },
			wantErr: ErrInvalidDestinationConfigs,
		},
		{
			name:    "negative lookback",
			mutate:  func(cfg *StructuredConfig) { cfg.Agent.LookbackDays = -1 },
			wantErr: ErrInvalidAgentConfigs,
		},
		{
			name:    "unknown state backend",
			mutate:  func(cfg *StructuredConfig) { cfg.State.Backend = "etcd" },
			wantErr: ErrInvalidStateConfigs,
		},
		{
			name: "sqlite without DSN",
			mutate: func(cfg *StructuredConfig) {
				cfg.State.Backend = StateBackendSQLite
				cfg.State.DSN = ""
			},
			wantErr: ErrInvalidStateConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := buildFrom(t, validSource())
			require.NoError(t, err)

			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.validate(), tt.wantErr)
		})
	}
}

func TestBuild_NegativeLookbackRejected(t *testing.T) {
	bad := validSource()
	bad.Agent.LookbackDays = -3

	_, err := buildFrom(t, bad)
	require.ErrorIs(t, err, ErrInvalidAgentConfigs)
}
