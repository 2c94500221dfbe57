package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/Carmen-Shannon/oxy-gallery/engine/model"
	"github.com/Carmen-Shannon/oxy-gallery/log"
)

var logger = log.New("loader")

var (
	// ErrUnsupportedFormat is returned for file formats no backend can decode.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrEmptyMesh is returned when a file decodes to no triangles.
	ErrEmptyMesh = errors.New("empty mesh")

	// ErrMalformedMesh is returned when a mesh file cannot be parsed.
	ErrMalformedMesh = errors.New("malformed mesh")

	// ErrRemoteStatus is returned when a remote resource answers with a client error.
	ErrRemoteStatus = errors.New("remote resource unavailable")
)

// Result is the outcome of an asynchronous load. Exactly one of Model and Err is set.
type Result struct {
	Path  string
	Model model.Model
	Err   error
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	modelCache map[string]model.Model
	backends   map[LoaderBackendType]loaderBackend

	fetcher       *fetcher
	fallbackColor uint32

	workers int
	pool     worker.DynamicWorkerPool
	poolOnce sync.Once
	taskID   atomic.Int64
}

// Loader loads and caches meshes and environment maps. Meshes are decoded by a backend
// selected from the file extension and cached by path.
type Loader interface {
	// Load reads and decodes a mesh, returning the cached model when the path was loaded
	// before. The returned model carries whatever normals the file provides; callers run
	// Validate and ComputeVertexNormals before drawing.
	//
	// Parameters:
	//   - ctx: cancels remote reads
	//   - path: a local path or http(s) URL ending in .obj or .stl
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: error if reading or decoding fails
	Load(ctx context.Context, path string) (model.Model, error)

	// LoadAsync runs Load on the loader's worker pool. The returned channel receives exactly
	// one Result and is never closed.
	//
	// Parameters:
	//   - ctx: cancels remote reads
	//   - path: the mesh to load
	//
	// Returns:
	//   - <-chan Result: the pending result
	LoadAsync(ctx context.Context, path string) <-chan Result

	// LoadReader decodes a mesh from a reader and caches it under name.
	//
	// Parameters:
	//   - name: the cache key
	//   - r: the reader providing the encoded mesh
	//   - backendType: the format of the data
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: error if decoding fails
	LoadReader(name string, r io.Reader, backendType LoaderBackendType) (model.Model, error)

	// LoadCubeMap reads six faces ordered +X, -X, +Y, -Y, +Z, -Z. When any face cannot be
	// read or decoded a warning is logged and a solid fallback cube map is returned, so the
	// result is always usable.
	//
	// Parameters:
	//   - ctx: cancels remote reads
	//   - faces: the face paths or URLs
	//
	// Returns:
	//   - *common.CubeMap: the cube map or the fallback
	LoadCubeMap(ctx context.Context, faces [6]string) *common.CubeMap

	// Get retrieves a cached model by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - model.Model: the cached model or nil
	Get(name string) model.Model

	// Models returns a copy of the model cache.
	//
	// Returns:
	//   - map[string]model.Model: all cached models keyed by name
	Models() map[string]model.Model
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with the OBJ and STL backends registered.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided options
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		modelCache:    make(map[string]model.Model),
		backends:      make(map[LoaderBackendType]loaderBackend),
		fetcher:       newFetcher(),
		fallbackColor: DefaultFallbackColor,
		workers:       max(runtime.NumCPU()/2, 1),
	}
	for _, t := range []LoaderBackendType{BackendTypeOBJ, BackendTypeSTL} {
		b, _ := newLoaderBackend(t)
		l.backends[t] = b
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(ctx context.Context, path string) (model.Model, error) {
	if cached := l.Get(path); cached != nil {
		return cached, nil
	}

	backendType, err := BackendTypeFor(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	start := time.Now()
	data, err := l.fetcher.fetch(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	m, err := l.LoadReader(path, bytes.NewReader(data), backendType)
	if err != nil {
		return nil, err
	}
	logger.Infof("loaded %s (%d vertices, %d triangles) in %s", path, m.VertexCount(), m.IndexCount()/3, time.Since(start))
	return m, nil
}

func (l *loader) LoadAsync(ctx context.Context, path string) <-chan Result {
	out := make(chan Result, 1)
	id := int(l.taskID.Add(1))

	l.startPool()
	l.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			m, err := l.Load(ctx, path)
			out <- Result{Path: path, Model: m, Err: err}
			return m, err
		},
	})
	return out
}

func (l *loader) LoadReader(name string, r io.Reader, backendType LoaderBackendType) (model.Model, error) {
	if cached := l.Get(name); cached != nil {
		return cached, nil
	}

	l.mu.RLock()
	backend, ok := l.backends[backendType]
	l.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: no %s backend", ErrUnsupportedFormat, backendType)
	}

	imported, err := backend.LoadReader(r, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}

	m := model.NewModel(model.WithImportedMesh(*imported))

	l.mu.Lock()
	l.modelCache[name] = m
	l.mu.Unlock()

	return m, nil
}

func (l *loader) Get(name string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]model.Model, len(l.modelCache))
	for k, v := range l.modelCache {
		result[k] = v
	}
	return result
}

// startPool creates the async pool on first use. Loaders that only read synchronously never
// start workers.
func (l *loader) startPool() {
	l.poolOnce.Do(func() {
		l.pool = worker.NewDynamicWorkerPool(l.workers, 64, 1*time.Second)
	})
}
