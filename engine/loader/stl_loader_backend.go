package loader

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-gallery/engine/model"
)

const (
	stlHeaderSize   = 80
	stlTriangleSize = 50
)

// stlLoaderBackendImpl decodes ASCII and binary STL. Facet normals are discarded and
// coincident corners are welded so the mesh can be smooth-shaded.
type stlLoaderBackendImpl struct{}

var _ loaderBackend = &stlLoaderBackendImpl{}

func newSTLLoaderBackend() loaderBackend {
	return &stlLoaderBackendImpl{}
}

type stlWelder struct {
	mesh  model.ImportedMesh
	index map[[3]float32]uint32
}

func (w *stlWelder) add(p [3]float32) {
	idx, ok := w.index[p]
	if !ok {
		idx = uint32(len(w.mesh.Positions))
		w.mesh.Positions = append(w.mesh.Positions, p)
		w.index[p] = idx
	}
	w.mesh.Indices = append(w.mesh.Indices, idx)
}

func (b *stlLoaderBackendImpl) LoadReader(r io.Reader, name string) (*model.ImportedMesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	w := &stlWelder{index: make(map[[3]float32]uint32)}
	w.mesh.Name = name

	if isBinarySTL(data) {
		err = decodeBinarySTL(data, w)
	} else {
		err = decodeASCIISTL(data, w)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedMesh, name, err)
	}

	if len(w.mesh.Indices) == 0 {
		return nil, fmt.Errorf("%w: %s has no facets", ErrEmptyMesh, name)
	}
	return &w.mesh, nil
}

// isBinarySTL reports whether the triangle count in the header matches the payload size.
// ASCII files that happen to start with "solid" are still detected as binary when the
// sizes agree, which is how exporters that write "solid" into binary headers are handled.
func isBinarySTL(data []byte) bool {
	if len(data) < stlHeaderSize+4 {
		return false
	}
	n := binary.LittleEndian.Uint32(data[stlHeaderSize:])
	return uint64(len(data)) == stlHeaderSize+4+uint64(n)*stlTriangleSize
}

func decodeBinarySTL(data []byte, w *stlWelder) error {
	n := int(binary.LittleEndian.Uint32(data[stlHeaderSize:]))
	off := stlHeaderSize + 4
	for t := 0; t < n; t++ {
		// Skip the 12-byte facet normal.
		base := off + 12
		for c := 0; c < 3; c++ {
			var p [3]float32
			for k := 0; k < 3; k++ {
				bits := binary.LittleEndian.Uint32(data[base+c*12+k*4:])
				p[k] = math.Float32frombits(bits)
			}
			w.add(p)
		}
		off += stlTriangleSize
	}
	return nil
}

func decodeASCIISTL(data []byte, w *stlWelder) error {
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("solid")) {
		return fmt.Errorf("neither ASCII nor binary STL")
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	line, corners := 0, 0
	for scanner.Scan() {
		line++
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}
		switch tokens[0] {
		case "vertex":
			if len(tokens) != 4 {
				return fmt.Errorf("line %d: vertex expects 3 coordinates; got %d", line, len(tokens)-1)
			}
			var p [3]float32
			for k := 0; k < 3; k++ {
				f, err := strconv.ParseFloat(tokens[k+1], 32)
				if err != nil {
					return fmt.Errorf("line %d: could not parse coordinate %q", line, tokens[k+1])
				}
				p[k] = float32(f)
			}
			w.add(p)
			corners++
		case "endloop":
			if corners%3 != 0 {
				return fmt.Errorf("line %d: facet loop has %d vertices", line, corners%3)
			}
		}
	}
	return scanner.Err()
}
