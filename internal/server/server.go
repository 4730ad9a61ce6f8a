// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The costsync Authors

// Package server exposes the agent's status inspection endpoint over HTTP.
// The endpoint is read-only: it reports the last cycle and the size of the
// dedup state, and never triggers transfers.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/reportwise/costsync/internal/config"
	"github.com/reportwise/costsync/internal/logger"
	"github.com/reportwise/costsync/internal/store"
	"github.com/reportwise/costsync/models"
)

// ReportSource yields the most recent cycle report, if any.
type ReportSource interface {
	LastReport() (models.SyncReport, bool)
}

// StatusServer serves the status endpoint configured by config.Server.
type StatusServer struct {
	server *http.Server
	state  store.StateStore
	source ReportSource
	logger *logger.Logger
}

// NewStatusServer builds the status server. The caller is expected to have
// checked that cfg.StatusAddress is non-empty.
func NewStatusServer(cfg config.Server, state store.StateStore, source ReportSource, log *logger.Logger) *StatusServer {
	s := &StatusServer{
		state:  state,
		source: source,
		logger: log,
	}
	s.server = &http.Server{
		Addr:              cfg.StatusAddress,
		Handler:           s.routes(cfg.RequestTimeout),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *StatusServer) routes(requestTimeout time.Duration) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(s.withLogging)
	if requestTimeout > 0 {
		router.Use(middleware.Timeout(requestTimeout))
	}

	router.Get("/healthz", s.healthz)
	router.Get("/api/status", s.status)

	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully. It
// satisfies the workers.Worker contract.
func (s *StatusServer) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("status server shutdown")
		}
	}()

	s.logger.Info().Str("address", s.server.Addr).Msg("status server listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error().Err(err).Msg("status server stopped")
	}
}

// Handler exposes the routed handler for tests.
func (s *StatusServer) Handler() http.Handler {
	return s.server.Handler
}
