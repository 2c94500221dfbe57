package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
)

const (
	// DefaultAttempts is the number of tries made for a remote resource.
	DefaultAttempts = 3

	// DefaultBackoff is the wait before the second attempt; it doubles after each failure.
	DefaultBackoff = 200 * time.Millisecond
)

// errRetryable marks a remote failure worth trying again.
var errRetryable = errors.New("retryable")

// fetcher reads local files and http(s) resources. Remote reads are retried with exponential
// backoff; local reads are not.
type fetcher struct {
	client   *http.Client
	attempts int
	backoff  time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
}

func newFetcher() *fetcher {
	return &fetcher{
		client:   http.DefaultClient,
		attempts: DefaultAttempts,
		backoff:  DefaultBackoff,
		sleep:    sleepContext,
	}
}

// OpenResource reads the whole resource at path using the default retry policy.
//
// Parameters:
//   - ctx: cancels remote attempts and backoff waits
//   - path: a local path (with optional ~ prefix) or an http(s) URL
//
// Returns:
//   - []byte: the resource contents
//   - error: error if every attempt fails
func OpenResource(ctx context.Context, path string) ([]byte, error) {
	return newFetcher().fetch(ctx, path)
}

func (f *fetcher) fetch(ctx context.Context, path string) ([]byte, error) {
	if !isRemote(path) {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, fmt.Errorf("failed to expand %s: %w", path, err)
		}
		data, err := os.ReadFile(expanded)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return data, nil
	}

	attempts := max(f.attempts, 1)
	wait := f.backoff
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		data, err := f.get(ctx, path)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if !errors.Is(err, errRetryable) || attempt == attempts {
			break
		}
		logger.Warningf("fetch %s failed (attempt %d/%d), retrying in %s: %v", path, attempt, attempts, wait, err)
		if err := f.sleep(ctx, wait); err != nil {
			return nil, fmt.Errorf("fetch %s: %w", path, err)
		}
		wait *= 2
	}
	return nil, fmt.Errorf("fetch %s: %w", path, lastErr)
}

func (f *fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", errRetryable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %s", errRetryable, resp.Status)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: %s", ErrRemoteStatus, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", errRetryable, err)
	}
	return data, nil
}

func isRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
