// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The costsync Authors

package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/reportwise/costsync/internal/logger"
	"github.com/reportwise/costsync/models"
)

// statusResponse is the body of GET /api/status.
type statusResponse struct {
	// LastReport is absent until the first cycle has completed.
	LastReport *models.SyncReport `json:"lastReport,omitempty"`

	// LastSyncUTC is the durable stamp of the last completed cycle. Unlike
	// LastReport it survives restarts.
	LastSyncUTC *time.Time `json:"lastSyncUTC,omitempty"`

	// RecordCount is the number of files the dedup state knows about.
	RecordCount int `json:"recordCount"`
}

func (s *StatusServer) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

func (s *StatusServer) status(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	snapshot := s.state.Snapshot()
	response := statusResponse{
		RecordCount: len(snapshot.Records),
	}
	if !snapshot.LastSyncUTC.IsZero() {
		response.LastSyncUTC = &snapshot.LastSyncUTC
	}
	if report, ok := s.source.LastReport(); ok {
		response.LastReport = &report
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error().Err(err).Msg("encoding status response")
	}
}
