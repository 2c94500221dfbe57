package model

import (
	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/chewxy/math32"
)

// model is the implementation of the Model interface.
type model struct {
	name      string
	positions [][3]float32
	normals   [][3]float32
	indices   []uint32
}

// Model is an indexed triangle mesh held on the CPU. Several scene nodes may share one
// Model; the renderer uploads it once and reuses the buffers.
//
// Geometry is mutated only while a mesh is being prepared (normal recomputation,
// centering), before it is handed to the frame thread.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Positions returns the vertex positions.
	//
	// Returns:
	//   - [][3]float32: the positions
	Positions() [][3]float32

	// Normals returns the per-vertex normals, parallel to Positions.
	//
	// Returns:
	//   - [][3]float32: the normals
	Normals() [][3]float32

	// Indices returns the triangle indices.
	//
	// Returns:
	//   - []uint32: the indices
	Indices() []uint32

	// VertexCount returns the number of vertices.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// IndexCount returns the number of indices.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// Bounds returns the axis-aligned bounding box of the positions.
	//
	// Returns:
	//   - Bounds: the box, zero for an empty mesh
	Bounds() Bounds

	// BoundingRadius returns the maximum vertex distance from the model origin.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32

	// Validate checks that the mesh is safe to compute normals for and draw.
	//
	// Returns:
	//   - error: an error wrapping ErrDegenerateGeometry, or nil
	Validate() error

	// ComputeVertexNormals replaces the normals with area-weighted averages of the
	// adjacent face normals.
	ComputeVertexNormals()

	// Center translates the positions so the bounding box center sits at the origin.
	//
	// Returns:
	//   - [3]float32: the offset that was subtracted
	Center() [3]float32

	// VertexData returns the interleaved GPUVertex buffer.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns a byte view of the uint32 index buffer.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte
}

var _ Model = &model{}

// NewModel creates a new Model with the specified options applied.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	if len(m.normals) != len(m.positions) {
		m.normals = make([][3]float32, len(m.positions))
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Positions() [][3]float32 {
	return m.positions
}

func (m *model) Normals() [][3]float32 {
	return m.normals
}

func (m *model) Indices() []uint32 {
	return m.indices
}

func (m *model) VertexCount() int {
	return len(m.positions)
}

func (m *model) IndexCount() int {
	return len(m.indices)
}

func (m *model) Bounds() Bounds {
	if len(m.positions) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.positions[0], Max: m.positions[0]}
	for _, p := range m.positions[1:] {
		for i := 0; i < 3; i++ {
			b.Min[i] = math32.Min(b.Min[i], p[i])
			b.Max[i] = math32.Max(b.Max[i], p[i])
		}
	}
	return b
}

func (m *model) BoundingRadius() float32 {
	var maxSq float32
	for _, p := range m.positions {
		if d := p[0]*p[0] + p[1]*p[1] + p[2]*p[2]; d > maxSq {
			maxSq = d
		}
	}
	return math32.Sqrt(maxSq)
}

func (m *model) Center() [3]float32 {
	c := m.Bounds().Center()
	for i := range m.positions {
		m.positions[i][0] -= c[0]
		m.positions[i][1] -= c[1]
		m.positions[i][2] -= c[2]
	}
	return c
}

func (m *model) VertexData() []byte {
	buf := make([]byte, len(m.positions)*24)
	for i := range m.positions {
		v := GPUVertex{Position: m.positions[i], Normal: m.normals[i]}
		v.MarshalTo(buf[i*24:])
	}
	return buf
}

func (m *model) IndexData() []byte {
	return common.SliceToBytes(m.indices)
}
