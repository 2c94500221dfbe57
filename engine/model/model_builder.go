package model

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithPositions sets the vertex positions. The slice is retained, not copied.
//
// Parameters:
//   - positions: the vertex positions
//
// Returns:
//   - ModelBuilderOption: a function that applies the positions to a model
func WithPositions(positions [][3]float32) ModelBuilderOption {
	return func(m *model) {
		m.positions = positions
	}
}

// WithNormals sets per-vertex normals. Normals that do not match the vertex count are
// replaced with zero vectors by NewModel.
//
// Parameters:
//   - normals: the vertex normals
//
// Returns:
//   - ModelBuilderOption: a function that applies the normals to a model
func WithNormals(normals [][3]float32) ModelBuilderOption {
	return func(m *model) {
		m.normals = normals
	}
}

// WithIndices sets the triangle indices.
//
// Parameters:
//   - indices: the triangle indices
//
// Returns:
//   - ModelBuilderOption: a function that applies the indices to a model
func WithIndices(indices []uint32) ModelBuilderOption {
	return func(m *model) {
		m.indices = indices
	}
}

// WithImportedMesh copies the geometry of a loader-produced mesh into the Model.
//
// Parameters:
//   - mesh: the imported mesh
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh to a model
func WithImportedMesh(mesh ImportedMesh) ModelBuilderOption {
	return func(m *model) {
		if m.name == "" {
			m.name = mesh.Name
		}
		m.positions = mesh.Positions
		m.indices = mesh.Indices
		if mesh.HasNormals() {
			m.normals = mesh.Normals
		}
	}
}
