package loader

import (
	"net/http"
	"time"

	"github.com/Carmen-Shannon/oxy-gallery/engine/model"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithModel is an option builder that pre-populates the model cache with a model.
//
// Parameters:
//   - key: the cache key for the model
//   - model: the model to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the model option to a loader
func WithModel(key string, model model.Model) LoaderBuilderOption {
	return func(l *loader) {
		l.modelCache[key] = model
	}
}

// WithWorkers sets the maximum number of concurrent asynchronous loads.
//
// Parameters:
//   - workers: the worker count, values below 1 are ignored
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker count to a loader
func WithWorkers(workers int) LoaderBuilderOption {
	return func(l *loader) {
		if workers > 0 {
			l.workers = workers
		}
	}
}

// WithHTTPClient sets the client used for remote resources.
//
// Parameters:
//   - client: the HTTP client
//
// Returns:
//   - LoaderBuilderOption: a function that applies the client to a loader
func WithHTTPClient(client *http.Client) LoaderBuilderOption {
	return func(l *loader) {
		if client != nil {
			l.fetcher.client = client
		}
	}
}

// WithRetry sets the remote retry policy.
//
// Parameters:
//   - attempts: total tries per resource
//   - backoff: the first wait, doubled after each failure
//
// Returns:
//   - LoaderBuilderOption: a function that applies the policy to a loader
func WithRetry(attempts int, backoff time.Duration) LoaderBuilderOption {
	return func(l *loader) {
		l.fetcher.attempts = attempts
		l.fetcher.backoff = backoff
	}
}

// WithFallbackColor sets the solid color used when a cube map cannot be read.
//
// Parameters:
//   - hex: the color as 0xRRGGBB
//
// Returns:
//   - LoaderBuilderOption: a function that applies the color to a loader
func WithFallbackColor(hex uint32) LoaderBuilderOption {
	return func(l *loader) {
		l.fallbackColor = hex
	}
}
