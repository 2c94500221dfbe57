package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-gallery/engine/model"
)

// LoaderBackendType identifies the mesh file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeOBJ selects the Wavefront OBJ backend.
	BackendTypeOBJ LoaderBackendType = iota

	// BackendTypeSTL selects the STL backend, ASCII or binary.
	BackendTypeSTL
)

// String returns the lowercase format name.
func (t LoaderBackendType) String() string {
	switch t {
	case BackendTypeOBJ:
		return "obj"
	case BackendTypeSTL:
		return "stl"
	default:
		return "unknown"
	}
}

// loaderBackend decodes one mesh file format into CPU geometry.
type loaderBackend interface {
	// LoadReader decodes a mesh from a reader.
	//
	// Parameters:
	//   - r: the reader providing the encoded mesh
	//   - name: the name given to the mesh, also used in error messages
	//
	// Returns:
	//   - *model.ImportedMesh: the decoded geometry
	//   - error: error if decoding fails
	LoadReader(r io.Reader, name string) (*model.ImportedMesh, error)
}

// BackendTypeFor selects a backend from a path's file extension. Query strings on URLs are
// ignored.
//
// Parameters:
//   - path: a file path or URL
//
// Returns:
//   - LoaderBackendType: the backend for the extension
//   - error: an error wrapping ErrUnsupportedFormat for unknown extensions
func BackendTypeFor(path string) (LoaderBackendType, error) {
	if i := strings.IndexAny(path, "?#"); i >= 0 && isRemote(path) {
		path = path[:i]
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".obj":
		return BackendTypeOBJ, nil
	case ".stl":
		return BackendTypeSTL, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func newLoaderBackend(backendType LoaderBackendType) (loaderBackend, error) {
	switch backendType {
	case BackendTypeOBJ:
		return newOBJLoaderBackend(), nil
	case BackendTypeSTL:
		return newSTLLoaderBackend(), nil
	default:
		return nil, fmt.Errorf("%w: backend %d", ErrUnsupportedFormat, backendType)
	}
}
