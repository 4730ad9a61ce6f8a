// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The costsync Authors

package service_test

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/reportwise/costsync/internal/adapter"
	"github.com/reportwise/costsync/internal/config"
	"github.com/reportwise/costsync/internal/logger"
	"github.com/reportwise/costsync/internal/mock"
	"github.com/reportwise/costsync/internal/service"
	"github.com/reportwise/costsync/models"
)

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// TestStreamCopier_FreshStreamsPerAttempt verifies every Copy call opens its
// own read and write stream pair, so a retried attempt never reuses a
// stream from a failed one.
func TestStreamCopier_FreshStreamsPerAttempt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	candidate := models.Candidate{
		SourceKey:    "FOCUS Reports/2025/11/24/a.csv.gz",
		InferredDate: time.Date(2025, 11, 24, 0, 0, 0, 0, time.UTC),
		SizeBytes:    7,
	}

	source := mock.NewMockSourceClient(ctrl)
	source.EXPECT().OpenRead(gomock.Any(), candidate.SourceKey).
		DoAndReturn(func(context.Context, string) (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("payload")), nil
		}).Times(2)

	destination := mock.NewMockDestinationClient(ctrl)
	destination.EXPECT().OpenWrite(gomock.Any(), "2025-11-24_a.csv.gz").
		DoAndReturn(func(context.Context, string) (io.WriteCloser, error) {
			return nopWriteCloser{io.Discard}, nil
		}).Times(2)

	copier := service.NewStreamCopier(source, destination, config.Agent{ChunkSizeBytes: 4}, logger.Nop())

	for i := 0; i < 2; i++ {
		record, err := copier.Copy(context.Background(), candidate)
		require.NoError(t, err)
		assert.Equal(t, int64(7), record.SizeBytes)
	}
}

// TestStreamCopier_NoSinkWhenSourceMissing verifies no destination stream is
// ever opened for an object the source cannot serve.
func TestStreamCopier_NoSinkWhenSourceMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	candidate := models.Candidate{
		SourceKey:    "FOCUS Reports/2025/11/24/gone.csv.gz",
		InferredDate: time.Date(2025, 11, 24, 0, 0, 0, 0, time.UTC),
	}

	source := mock.NewMockSourceClient(ctrl)
	source.EXPECT().OpenRead(gomock.Any(), candidate.SourceKey).
		Return(nil, fmt.Errorf("%w: %s", adapter.ErrObjectNotFound, candidate.SourceKey))

	// The destination mock gets no expectations: any OpenWrite fails the test.
	destination := mock.NewMockDestinationClient(ctrl)

	copier := service.NewStreamCopier(source, destination, config.Agent{ChunkSizeBytes: 4}, logger.Nop())

	_, err := copier.Copy(context.Background(), candidate)
	require.ErrorIs(t, err, adapter.ErrObjectNotFound)

	var transferErr *service.TransferError
	assert.ErrorAs(t, err, &transferErr)
}
