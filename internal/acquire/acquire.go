// Package acquire turns a file path or URL into full CSV text. Acquisition
// is the cancellable, fallible step that runs before the parser; any timeout
// or cancellation a caller wants belongs here, never inside the parse.
package acquire

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultMaxBytes caps acquired text at the documented upload bound.
const DefaultMaxBytes = 50 << 20

// Fetcher downloads remote CSV exports. A single value is shared across
// concurrent requests, so all configuration is resolved at construction and
// Fetch never writes to the receiver.
type Fetcher struct {
	client     *http.Client
	userAgent  string
	maxBytes   int64
	maxRetries uint64
}

// NewFetcher builds a ready-to-share Fetcher. Zero values pick the defaults:
// DefaultMaxBytes for the size cap and three retries.
func NewFetcher(maxBytes int64, maxRetries uint64) *Fetcher {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if maxRetries == 0 {
		maxRetries = 3
	}
	return &Fetcher{
		client:     &http.Client{Timeout: 30 * time.Second},
		userAgent:  "brewpulse-backend",
		maxBytes:   maxBytes,
		maxRetries: maxRetries,
	}
}

// Fetch downloads the full text behind url, retrying transient failures
// with capped exponential backoff. Client errors (4xx) are not retried.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	var text string
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", f.userAgent)

		resp, err := f.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return backoff.Permanent(fmt.Errorf("fetch %s: %s", url, resp.Status))
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("fetch %s: %s", url, resp.Status)
		}

		data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
		if err != nil {
			return err
		}
		if int64(len(data)) > f.maxBytes {
			return backoff.Permanent(fmt.Errorf("fetch %s: response exceeds %d bytes", url, f.maxBytes))
		}
		text = string(data)
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), f.maxRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return "", err
	}
	return text, nil
}

// ReadFile reads a local CSV export in full.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
