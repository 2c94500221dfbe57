package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flakyServer(t *testing.T, failures int32, failStatus int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= failures {
			w.WriteHeader(failStatus)
			return
		}
		_, _ = w.Write([]byte(tetrahedronOBJ))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func testFetcher(client *http.Client) (*fetcher, *[]time.Duration) {
	var waits []time.Duration
	f := newFetcher()
	f.client = client
	f.sleep = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}
	return f, &waits
}

func TestFetchRetriesServerErrors(t *testing.T) {
	srv, calls := flakyServer(t, 2, http.StatusServiceUnavailable)
	f, waits := testFetcher(srv.Client())

	data, err := f.fetch(context.Background(), srv.URL+"/wolf.obj")
	require.NoError(t, err)
	assert.Equal(t, tetrahedronOBJ, string(data))
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, []time.Duration{200 * time.Millisecond, 400 * time.Millisecond}, *waits)
}

func TestFetchGivesUpAfterAttempts(t *testing.T) {
	srv, calls := flakyServer(t, 10, http.StatusInternalServerError)
	f, waits := testFetcher(srv.Client())

	_, err := f.fetch(context.Background(), srv.URL+"/wolf.obj")
	require.Error(t, err)
	assert.Equal(t, int32(DefaultAttempts), calls.Load())
	assert.Len(t, *waits, DefaultAttempts-1)
}

func TestFetchDoesNotRetryClientErrors(t *testing.T) {
	srv, calls := flakyServer(t, 10, http.StatusNotFound)
	f, waits := testFetcher(srv.Client())

	_, err := f.fetch(context.Background(), srv.URL+"/missing.obj")
	assert.ErrorIs(t, err, ErrRemoteStatus)
	assert.Equal(t, int32(1), calls.Load())
	assert.Empty(t, *waits)
}

func TestFetchStopsOnCancel(t *testing.T) {
	srv, calls := flakyServer(t, 10, http.StatusBadGateway)
	f := newFetcher()
	f.client = srv.Client()

	ctx, cancel := context.WithCancel(context.Background())
	f.sleep = func(ctx context.Context, d time.Duration) error {
		cancel()
		return sleepContext(ctx, d)
	}

	_, err := f.fetch(ctx, srv.URL+"/wolf.obj")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(1), calls.Load())
}

func TestLoaderUsesHTTPClient(t *testing.T) {
	srv, calls := flakyServer(t, 1, http.StatusTooManyRequests)
	l := NewLoader(WithHTTPClient(srv.Client()), WithRetry(2, time.Millisecond))

	m, err := l.Load(context.Background(), srv.URL+"/tetra.obj")
	require.NoError(t, err)
	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, int32(2), calls.Load())
}

func TestOpenResourceLocal(t *testing.T) {
	path := writeTemp(t, "face.txt", "abc")
	data, err := OpenResource(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))
}
