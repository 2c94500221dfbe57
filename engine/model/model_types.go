package model

// ImportedMesh is the format-neutral mesh produced by the loader backends before it is
// turned into a Model. Normals may be empty when the source format omits them.
type ImportedMesh struct {
	// Name is the mesh identifier, usually the object name or the file stem.
	Name string

	// Positions are the vertex positions in model space.
	Positions [][3]float32

	// Normals are per-vertex normals, parallel to Positions, or nil.
	Normals [][3]float32

	// Indices are triangle indices into Positions.
	Indices []uint32
}

// HasNormals reports whether every vertex carries a normal.
//
// Returns:
//   - bool: true if Normals is parallel to Positions
func (m *ImportedMesh) HasNormals() bool {
	return len(m.Normals) > 0 && len(m.Normals) == len(m.Positions)
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the midpoint of the box.
//
// Returns:
//   - [3]float32: the center
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Size returns the extent of the box along each axis.
//
// Returns:
//   - [3]float32: the size
func (b Bounds) Size() [3]float32 {
	return [3]float32{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}
