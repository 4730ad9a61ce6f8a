// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The costsync Authors

package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/reportwise/costsync/internal/logger"
)

// localClient serves a directory tree as an object store. Source listings
// expect the exporter layout <root>/<prefix>YYYY/MM/DD/<file>; destination
// writes land flat under the root.
//
// Used for development and end-to-end tests; it implements both
// [SourceClient] and [DestinationClient].
type localClient struct {
	root   string
	logger *logger.Logger
}

// NewLocalClient constructs a filesystem-backed store rooted at root.
func NewLocalClient(root string, log *logger.Logger) *localClient {
	return &localClient{root: root, logger: log}
}

func (l *localClient) List(_ context.Context, prefix string, from, to time.Time) ([]ObjectInfo, error) {
	var infos []ObjectInfo

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		dayPrefix := path.Join(prefix, day.Format("2006/01/02"))
		dayDir := filepath.Join(l.root, filepath.FromSlash(dayPrefix))

		entries, err := os.ReadDir(dayDir)
		if errors.Is(err, os.ErrNotExist) {
			// No exports for this day.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", dayPrefix, err)
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				return nil, fmt.Errorf("stating %s: %w", entry.Name(), err)
			}
			infos = append(infos, ObjectInfo{
				Key:  path.Join(dayPrefix, entry.Name()),
				Size: info.Size(),
				Date: day,
			})
		}
	}

	return infos, nil
}

func (l *localClient) OpenRead(_ context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(l.root, filepath.FromSlash(key)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", key, err)
	}
	return f, nil
}

func (l *localClient) OpenWrite(_ context.Context, key string) (io.WriteCloser, error) {
	if err := os.MkdirAll(l.root, 0o755); err != nil {
		return nil, fmt.Errorf("creating destination root: %w", err)
	}

	// Write to a temp file and rename on Close so a failed copy never
	// surfaces as a committed object.
	tmp, err := os.CreateTemp(l.root, "."+filepath.Base(key)+".partial-*")
	if err != nil {
		return nil, fmt.Errorf("creating partial object: %w", err)
	}

	return &localWriter{
		file:  tmp,
		final: filepath.Join(l.root, filepath.FromSlash(key)),
	}, nil
}

// localWriter finalizes the object on Close and discards it on Abort.
type localWriter struct {
	file  *os.File
	final string
}

func (w *localWriter) Write(p []byte) (int, error) {
	return w.file.Write(p)
}

func (w *localWriter) Close() error {
	if err := w.file.Sync(); err != nil {
		w.file.Close()
		os.Remove(w.file.Name())
		return fmt.Errorf("syncing partial object: %w", err)
	}
	if err := w.file.Close(); err != nil {
		os.Remove(w.file.Name())
		return fmt.Errorf("closing partial object: %w", err)
	}
	if err := os.Rename(w.file.Name(), w.final); err != nil {
		os.Remove(w.file.Name())
		return fmt.Errorf("committing object: %w", err)
	}
	return nil
}

func (w *localWriter) Abort() error {
	w.file.Close()
	return os.Remove(w.file.Name())
}
