package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
)

// UserAgent is sent with every document request.
var UserAgent = "dnslists"

// ErrUnexpectedStatus is returned when a source answers with anything but
// 200 OK.
var ErrUnexpectedStatus = errors.New("dnslists: unexpected HTTP status")

// maxDocumentSize caps how much of a source document is read.
const maxDocumentSize = 16 << 20

// ClientOptions configure the HTTP client used to fetch source documents.
type ClientOptions struct {
	// Timeout bounds each request attempt. Zero means no timeout.
	Timeout time.Duration

	// Retries is the number of retries after a failed attempt.
	Retries int

	// Logger receives retry diagnostics. Nil disables them.
	Logger *slog.Logger
}

// NewClient returns a retrying HTTP client backed by a pooled transport.
func NewClient(opts ClientOptions) *retryablehttp.Client {
	client := retryablehttp.NewClient()

	client.HTTPClient = cleanhttp.DefaultPooledClient()
	client.HTTPClient.Timeout = opts.Timeout

	client.RetryMax = opts.Retries
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 5 * time.Second

	// A nil *slog.Logger stored in the interface would not be nil.
	if opts.Logger != nil {
		client.Logger = opts.Logger
	} else {
		client.Logger = nil
	}

	return client
}

// Fetch downloads the document at url.
func Fetch(ctx context.Context, client *retryablehttp.Client, url string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dnslists: error creating HTTP request: %w", err)
	}

	req.Header.Set("User-Agent", UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dnslists: error performing HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %q returned %d (%s)", ErrUnexpectedStatus, url, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("dnslists: error reading HTTP response body: %w", err)
	}

	return body, nil
}
