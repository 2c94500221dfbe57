package loader

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-gallery/engine/model"
)

// objLoaderBackendImpl decodes the geometry subset of Wavefront OBJ: v, vn and f records.
// Polygons are fan-triangulated. Texture coordinates, groups and material libraries are
// skipped.
type objLoaderBackendImpl struct{}

var _ loaderBackend = &objLoaderBackendImpl{}

func newOBJLoaderBackend() loaderBackend {
	return &objLoaderBackendImpl{}
}

// objVertexKey identifies an output vertex by its position and normal indices.
type objVertexKey struct {
	v, n int
}

type objParser struct {
	name string
	line int

	positions [][3]float32
	normals   [][3]float32

	out         model.ImportedMesh
	outNormals  [][3]float32
	vertexIndex map[objVertexKey]uint32
	allNormals  bool
}

func (b *objLoaderBackendImpl) LoadReader(r io.Reader, name string) (*model.ImportedMesh, error) {
	p := &objParser{
		name:        name,
		vertexIndex: make(map[objVertexKey]uint32),
		allNormals:  true,
	}
	p.out.Name = name

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		p.line++
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 || strings.HasPrefix(tokens[0], "#") {
			continue
		}

		var err error
		switch tokens[0] {
		case "v":
			var v [3]float32
			if v, err = parseVec3(tokens); err == nil {
				p.positions = append(p.positions, v)
			}
		case "vn":
			var v [3]float32
			if v, err = parseVec3(tokens); err == nil {
				p.normals = append(p.normals, v)
			}
		case "f":
			err = p.parseFace(tokens[1:])
		}
		if err != nil {
			return nil, p.emitError(err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	if len(p.out.Positions) == 0 || len(p.out.Indices) == 0 {
		return nil, fmt.Errorf("%w: %s has no faces", ErrEmptyMesh, name)
	}
	if p.allNormals {
		p.out.Normals = p.outNormals
	}
	return &p.out, nil
}

func (p *objParser) emitError(err error) error {
	return fmt.Errorf("%w: [%s: %d] %v", ErrMalformedMesh, p.name, p.line, err)
}

func (p *objParser) parseFace(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("face needs at least 3 vertices; got %d", len(args))
	}

	corners := make([]uint32, len(args))
	for i, arg := range args {
		idx, err := p.resolveCorner(arg)
		if err != nil {
			return fmt.Errorf("face argument %d: %w", i, err)
		}
		corners[i] = idx
	}

	for i := 1; i+1 < len(corners); i++ {
		p.out.Indices = append(p.out.Indices, corners[0], corners[i], corners[i+1])
	}
	return nil
}

// resolveCorner maps a v, v/t, v/t/n or v//n reference to an output vertex index.
func (p *objParser) resolveCorner(arg string) (uint32, error) {
	parts := strings.Split(arg, "/")

	v, err := resolveIndex(parts[0], len(p.positions))
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}

	n := -1
	if len(parts) == 3 && parts[2] != "" {
		if n, err = resolveIndex(parts[2], len(p.normals)); err != nil {
			return 0, fmt.Errorf("normal: %w", err)
		}
	} else {
		p.allNormals = false
	}

	key := objVertexKey{v: v, n: n}
	if idx, ok := p.vertexIndex[key]; ok {
		return idx, nil
	}

	idx := uint32(len(p.out.Positions))
	p.out.Positions = append(p.out.Positions, p.positions[v])
	if n >= 0 {
		p.outNormals = append(p.outNormals, p.normals[n])
	} else {
		p.outNormals = append(p.outNormals, [3]float32{})
	}
	p.vertexIndex[key] = idx
	return idx, nil
}

// resolveIndex converts a 1-based or negative relative OBJ index into a 0-based index.
func resolveIndex(token string, count int) (int, error) {
	i, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("could not parse index %q", token)
	}
	switch {
	case i > 0 && i <= count:
		return i - 1, nil
	case i < 0 && -i <= count:
		return count + i, nil
	default:
		return 0, fmt.Errorf("index %d out of range (%d defined)", i, count)
	}
}

func parseVec3(tokens []string) ([3]float32, error) {
	var v [3]float32
	if len(tokens) < 4 {
		return v, fmt.Errorf("unsupported syntax for '%s'; expected 3 arguments; got %d", tokens[0], len(tokens)-1)
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(tokens[i+1], 32)
		if err != nil {
			return v, fmt.Errorf("could not parse %s component %d: %q", tokens[0], i, tokens[i+1])
		}
		v[i] = float32(f)
	}
	return v, nil
}
