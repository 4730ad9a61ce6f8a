package adapter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/reportwise/costsync/internal/logger"
)

// HTTPClientConfig configures an HTTP object store client.
type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// httpClient speaks a plain HTTP object API:
//
//	GET /objects?prefix=&from=&to=  -> JSON listing [{key,size,date}]
//	GET /objects/{key}              -> object byte stream
//	PUT /objects/{key}              -> upload, committed on 2xx
//
// It implements both [SourceClient] and [DestinationClient].
type httpClient struct {
	// client carries the whole-request timeout and serves the bounded
	// listing calls only.
	client *resty.Client
	// stream serves object reads and writes. It deliberately has no
	// whole-request timeout: a steadily progressing transfer must be
	// allowed to outlive any fixed duration regardless of object size.
	// Stalls are caught by the response-header timeout here and by the
	// engine's per-attempt copy deadline.
	stream *resty.Client
	logger *logger.Logger
}

// NewHTTPClient constructs an HTTP object store client for cfg.BaseURL.
func NewHTTPClient(cfg HTTPClientConfig, log *logger.Logger) *httpClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	base := strings.TrimRight(cfg.BaseURL, "/")

	cli := resty.New().
		SetBaseURL(base).
		SetTimeout(cfg.Timeout)

	stream := resty.New().
		SetBaseURL(base).
		SetTransport(&http.Transport{
			ResponseHeaderTimeout: cfg.Timeout,
		})

	return &httpClient{client: cli, stream: stream, logger: log}
}

// listedObject is the wire shape of one listing entry.
type listedObject struct {
	Key  string `json:"key"`
	Size int64  `json:"size"`
	Date string `json:"date"`
}

func (h *httpClient) List(ctx context.Context, prefix string, from, to time.Time) ([]ObjectInfo, error) {
	var listing []listedObject

	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"prefix": prefix,
			"from":   from.Format(time.DateOnly),
			"to":     to.Format(time.DateOnly),
		}).
		SetResult(&listing).
		Get("/objects")
	if err != nil {
		return nil, fmt.Errorf("list request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list request: unexpected status %s", resp.Status())
	}

	infos := make([]ObjectInfo, 0, len(listing))
	for _, obj := range listing {
		date, err := time.Parse(time.DateOnly, obj.Date)
		if err != nil {
			return nil, fmt.Errorf("parsing listed date %q for %s: %w", obj.Date, obj.Key, err)
		}
		infos = append(infos, ObjectInfo{Key: obj.Key, Size: obj.Size, Date: date})
	}
	return infos, nil
}

func (h *httpClient) OpenRead(ctx context.Context, key string) (io.ReadCloser, error) {
	resp, err := h.stream.R().
		SetContext(ctx).
		SetDoNotParseResponse(true). // hand the raw stream to the copier
		Get("/objects/" + url.PathEscape(key))
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		resp.RawBody().Close()
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, key)
	}
	if resp.IsError() {
		resp.RawBody().Close()
		return nil, fmt.Errorf("read request: unexpected status %s", resp.Status())
	}

	return resp.RawBody(), nil
}

func (h *httpClient) OpenWrite(ctx context.Context, key string) (io.WriteCloser, error) {
	// resty buffers io.Reader bodies to support retries, which would pull
	// the whole object into memory. The upload goes through the underlying
	// http.Client instead so bytes stream straight from the pipe.
	pr, pw := io.Pipe()

	target := strings.TrimRight(h.stream.BaseURL, "/") + "/objects/" + url.PathEscape(key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, pr)
	if err != nil {
		pw.Close()
		return nil, fmt.Errorf("building write request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	writer := &httpWriter{pw: pw, done: make(chan error, 1)}

	go func() {
		resp, err := h.stream.GetClient().Do(req)
		if err != nil {
			// Unblock a writer stuck in Write.
			pr.CloseWithError(err)
			writer.done <- fmt.Errorf("write request: %w", err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			pr.CloseWithError(fmt.Errorf("status %s", resp.Status))
			writer.done <- fmt.Errorf("write request: unexpected status %s", resp.Status)
			return
		}
		writer.done <- nil
	}()

	return writer, nil
}

// httpWriter streams bytes into an in-flight PUT. Close completes the
// upload and reports the server's verdict; Abort cancels it so the store
// never finalizes the object.
type httpWriter struct {
	pw   *io.PipeWriter
	done chan error
}

func (w *httpWriter) Write(p []byte) (int, error) {
	return w.pw.Write(p)
}

func (w *httpWriter) Close() error {
	if err := w.pw.Close(); err != nil {
		return err
	}
	return <-w.done
}

func (w *httpWriter) Abort() error {
	w.pw.CloseWithError(fmt.Errorf("upload aborted"))
	<-w.done
	return nil
}
