// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The costsync Authors

package server

import (
	"net/http"
	"time"
)

// responseWriter captures status and size for the request log line.
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (w *responseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(p)
	w.size += n
	return n, err
}

// withLogging attaches the server's logger to the request context and emits
// one line per handled request.
func (s *StatusServer) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lw := &responseWriter{ResponseWriter: w}
		ctx := s.logger.WithContext(r.Context())
		next.ServeHTTP(lw, r.WithContext(ctx))

		s.logger.Info().
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", lw.status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Send()
	})
}
