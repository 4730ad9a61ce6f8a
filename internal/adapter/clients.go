package adapter

import (
	"fmt"
	"net/url"

	"github.com/reportwise/costsync/internal/config"
	"github.com/reportwise/costsync/internal/logger"
)

// NewSourceClient builds the [SourceClient] selected by cfg.URL's scheme:
// "file" for a local directory tree, "http"/"https" for the HTTP object API.
func NewSourceClient(cfg config.Source, log *logger.Logger) (SourceClient, error) {
	parsed, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing source URL: %w", err)
	}

	switch parsed.Scheme {
	case "file":
		return NewLocalClient(parsed.Path, log), nil
	case "http", "https":
		return NewHTTPClient(HTTPClientConfig{
			BaseURL: cfg.URL,
			Timeout: cfg.RequestTimeout,
		}, log), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, parsed.Scheme)
	}
}

// NewDestinationClient builds the [DestinationClient] selected by cfg.URL's
// scheme. Same schemes as [NewSourceClient].
func NewDestinationClient(cfg config.Destination, log *logger.Logger) (DestinationClient, error) {
	parsed, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing destination URL: %w", err)
	}

	switch parsed.Scheme {
	case "file":
		return NewLocalClient(parsed.Path, log), nil
	case "http", "https":
		return NewHTTPClient(HTTPClientConfig{
			BaseURL: cfg.URL,
			Timeout: cfg.RequestTimeout,
		}, log), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, parsed.Scheme)
	}
}
