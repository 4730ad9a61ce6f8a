// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The costsync Authors

package service

import (
	"context"
	"io"
	"time"

	"github.com/reportwise/costsync/internal/adapter"
	"github.com/reportwise/costsync/internal/config"
	"github.com/reportwise/costsync/internal/logger"
	"github.com/reportwise/costsync/models"
)

type streamCopier struct {
	source      adapter.SourceClient
	destination adapter.DestinationClient
	chunkSize   int
	timeout     time.Duration
	logger      *logger.Logger
}

// NewStreamCopier builds a [Copier] that moves bytes in fixed-size chunks.
// Memory per in-flight transfer is one chunk buffer regardless of file size.
func NewStreamCopier(source adapter.SourceClient, destination adapter.DestinationClient, agentCfg config.Agent, log *logger.Logger) Copier {
	return &streamCopier{
		source:      source,
		destination: destination,
		chunkSize:   agentCfg.ChunkSizeBytes,
		timeout:     agentCfg.CopyTimeout,
		logger:      log,
	}
}

// Copy opens a fresh read stream and a fresh write stream for the candidate
// and pumps the payload through chunk by chunk. The destination object is
// finalized only when every chunk has been written and the write stream
// closed cleanly; on any failure the sink is aborted so no partial object
// becomes visible under the final key.
func (c *streamCopier) Copy(ctx context.Context, candidate models.Candidate) (models.TransferRecord, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()

	src, err := c.source.OpenRead(ctx, candidate.SourceKey)
	if err != nil {
		return models.TransferRecord{}, &TransferError{Key: candidate.SourceKey, Err: err}
	}
	defer src.Close()

	sink, err := c.destination.OpenWrite(ctx, candidate.DestinationKey())
	if err != nil {
		return models.TransferRecord{}, &TransferError{Key: candidate.SourceKey, Err: err}
	}

	written, err := c.pump(ctx, sink, src)
	if err != nil {
		discard(sink)
		return models.TransferRecord{}, &TransferError{Key: candidate.SourceKey, Err: err}
	}

	if err := sink.Close(); err != nil {
		return models.TransferRecord{}, &TransferError{Key: candidate.SourceKey, Err: err}
	}

	c.logger.Debug().
		Str("source", candidate.SourceKey).
		Str("destination", candidate.DestinationKey()).
		Int64("bytes", written).
		Msg("copied object")

	return models.TransferRecord{
		Key:              candidate.SourceKey,
		SizeBytes:        written,
		TransferredAtUTC: time.Now().UTC(),
		DurationMillis:   time.Since(start).Milliseconds(),
	}, nil
}

// pump moves bytes through a single chunk buffer, checking the context
// between chunks so a cancelled or expired deadline stops the transfer at
// the next chunk boundary.
func (c *streamCopier) pump(ctx context.Context, dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, c.chunkSize)
	var written int64
	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		n, readErr := src.Read(buf)
		if n > 0 {
			wn, writeErr := dst.Write(buf[:n])
			written += int64(wn)
			if writeErr != nil {
				return written, writeErr
			}
			if wn < n {
				return written, io.ErrShortWrite
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, readErr
		}
	}
}

// discard tears down a failed write stream without finalizing it. Sinks
// without an explicit Abort are simply left unclosed; such stores own the
// cleanup of their unfinished uploads.
func discard(sink io.WriteCloser) {
	if aborter, ok := sink.(adapter.Aborter); ok {
		_ = aborter.Abort()
	}
}
