package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/poiesic/lexfeed/backfill"
)

const defaultUserAgent = "lexfeed/1.0 (+https://github.com/poiesic/lexfeed)"

// Fetcher retrieves raw feed bytes over HTTP with a connect/read timeout and
// bounded retry. Retries use exponential backoff with jitter so repeated
// polls do not hammer a struggling authority server.
type Fetcher struct {
	client      *http.Client
	maxAttempts int
	retryDelay  time.Duration
	maxBody     int64
	userAgent   string
	logger      *slog.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithTimeout sets the per-request timeout. Default 30s.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.client.Timeout = d
	}
}

// WithMaxAttempts bounds the retry loop. Default 3.
func WithMaxAttempts(n int) FetcherOption {
	return func(f *Fetcher) {
		f.maxAttempts = n
	}
}

// WithRetryDelay sets the base backoff delay. Default 2s.
func WithRetryDelay(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.retryDelay = d
	}
}

// WithUserAgent overrides the request User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.client = client
	}
}

// NewFetcher creates a Fetcher with the given options.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:      &http.Client{Timeout: 30 * time.Second},
		maxAttempts: 3,
		retryDelay:  2 * time.Second,
		maxBody:     10 << 20, // 10 MiB
		userAgent:   defaultUserAgent,
		logger:      slog.Default().With("component", "feed-fetcher"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves the body at url. Server errors (5xx) and transport errors
// are retried; client errors (4xx) fail immediately since retrying cannot
// help.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	var terminalErr error
	err := backfill.RetryWithBackoff(ctx, func() error {
		data, retryable, err := f.fetchOnce(ctx, url)
		if err != nil {
			if !retryable {
				// Returning nil stops the retry loop; retrying a 4xx
				// cannot help.
				terminalErr = err
				return nil
			}
			return err
		}
		body = data
		return nil
	}, f.maxAttempts, f.retryDelay)
	if err == nil {
		err = terminalErr
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetchFailed, url, err)
	}
	return body, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) (data []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/html;q=0.9, */*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
		return nil, true, fmt.Errorf("server returned %d", resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return nil, false, fmt.Errorf("request rejected with %d", resp.StatusCode)
	}

	data, err = io.ReadAll(io.LimitReader(resp.Body, f.maxBody))
	if err != nil {
		return nil, true, err
	}
	return data, false, nil
}
