package adapter

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reportwise/costsync/internal/logger"
)

// seedExport writes a fake export file under <root>/<prefix>YYYY/MM/DD/.
func seedExport(t *testing.T, root, prefix string, day time.Time, name, contents string) {
	t.Helper()
	dir := filepath.Join(root, filepath.FromSlash(prefix), day.Format("2006/01/02"))
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLocalClient_List_Window(t *testing.T) {
	root := t.TempDir()
	client := NewLocalClient(root, logger.Nop())

	seedExport(t, root, "FOCUS Reports", day(2025, 11, 23), "early.csv.gz", "x")
	seedExport(t, root, "FOCUS Reports", day(2025, 11, 24), "report-a.csv.gz", "aaaa")
	seedExport(t, root, "FOCUS Reports", day(2025, 11, 25), "report-b.csv.gz", "bb")
	seedExport(t, root, "FOCUS Reports", day(2025, 11, 26), "late.csv.gz", "x")

	infos, err := client.List(context.Background(), "FOCUS Reports", day(2025, 11, 24), day(2025, 11, 25))
	require.NoError(t, err)
	require.Len(t, infos, 2)

	assert.Equal(t, "FOCUS Reports/2025/11/24/report-a.csv.gz", infos[0].Key)
	assert.Equal(t, int64(4), infos[0].Size)
	assert.Equal(t, day(2025, 11, 24), infos[0].Date)

	assert.Equal(t, "FOCUS Reports/2025/11/25/report-b.csv.gz", infos[1].Key)
	assert.Equal(t, day(2025, 11, 25), infos[1].Date)
}

func TestLocalClient_List_EmptyWindow(t *testing.T) {
	client := NewLocalClient(t.TempDir(), logger.Nop())

	infos, err := client.List(context.Background(), "FOCUS Reports", day(2025, 1, 1), day(2025, 1, 3))
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestLocalClient_OpenRead(t *testing.T) {
	root := t.TempDir()
	client := NewLocalClient(root, logger.Nop())
	seedExport(t, root, "reports", day(2025, 11, 24), "r.csv.gz", "payload")

	rc, err := client.OpenRead(context.Background(), "reports/2025/11/24/r.csv.gz")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))
}

func TestLocalClient_OpenRead_NotFound(t *testing.T) {
	client := NewLocalClient(t.TempDir(), logger.Nop())

	_, err := client.OpenRead(context.Background(), "missing/key.csv.gz")
	require.ErrorIs(t, err, ErrObjectNotFound)
}

func TestLocalClient_OpenWrite_CommitsOnClose(t *testing.T) {
	root := t.TempDir()
	client := NewLocalClient(root, logger.Nop())

	w, err := client.OpenWrite(context.Background(), "2025-11-24_report.csv.gz")
	require.NoError(t, err)

	_, err = w.Write([]byte("delivered"))
	require.NoError(t, err)

	// Not visible until finalized.
	_, statErr := os.Stat(filepath.Join(root, "2025-11-24_report.csv.gz"))
	assert.True(t, os.IsNotExist(statErr))

	require.NoError(t, w.Close())

	got, err := os.ReadFile(filepath.Join(root, "2025-11-24_report.csv.gz"))
	require.NoError(t, err)
	assert.Equal(t, "delivered", string(got))
}

func TestLocalClient_OpenWrite_AbortDiscards(t *testing.T) {
	root := t.TempDir()
	client := NewLocalClient(root, logger.Nop())

	w, err := client.OpenWrite(context.Background(), "2025-11-24_report.csv.gz")
	require.NoError(t, err)

	_, err = w.Write([]byte("partial"))
	require.NoError(t, err)

	aborter, ok := w.(Aborter)
	require.True(t, ok)
	require.NoError(t, aborter.Abort())

	// Neither the object nor any partial file may remain.
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
