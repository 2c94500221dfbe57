package loader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tetrahedronOBJ = `# tetrahedron
v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
f 1 3 2
f 1 2 4
f 1 4 3
f 2 3 4
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOBJAndCache(t *testing.T) {
	path := writeTemp(t, "tetra.obj", tetrahedronOBJ)
	l := NewLoader()

	m, err := l.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, 12, m.IndexCount())
	assert.NoError(t, m.Validate())

	again, err := l.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Same(t, m, again)
	assert.Len(t, l.Models(), 1)
	assert.Same(t, m, l.Get(path))
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeTemp(t, "wolf.fbx", "binary")
	_, err := NewLoader().Load(context.Background(), path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "missing.obj"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadEmptyMesh(t *testing.T) {
	path := writeTemp(t, "empty.obj", "# nothing here\nv 0 0 0\n")
	_, err := NewLoader().Load(context.Background(), path)
	assert.ErrorIs(t, err, ErrEmptyMesh)
}

func TestLoadAsync(t *testing.T) {
	l := NewLoader(WithWorkers(2))
	good := writeTemp(t, "tetra.obj", tetrahedronOBJ)
	bad := filepath.Join(t.TempDir(), "missing.obj")

	okCh := l.LoadAsync(context.Background(), good)
	badCh := l.LoadAsync(context.Background(), bad)

	for _, tc := range []struct {
		ch      <-chan Result
		path    string
		wantErr bool
	}{
		{okCh, good, false},
		{badCh, bad, true},
	} {
		select {
		case res := <-tc.ch:
			assert.Equal(t, tc.path, res.Path)
			if tc.wantErr {
				assert.Error(t, res.Err)
				assert.Nil(t, res.Model)
			} else {
				require.NoError(t, res.Err)
				assert.Equal(t, 4, res.Model.VertexCount())
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("no result for %s", tc.path)
		}
	}
}

func TestLoadReaderSTL(t *testing.T) {
	l := NewLoader()
	m, err := l.LoadReader("tri", strings.NewReader(asciiSTL), BackendTypeSTL)
	require.NoError(t, err)
	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, "tri", m.Name())
}

func TestBackendTypeFor(t *testing.T) {
	tests := []struct {
		path    string
		want    LoaderBackendType
		wantErr bool
	}{
		{"models/wolf.obj", BackendTypeOBJ, false},
		{"models/WOLF.OBJ", BackendTypeOBJ, false},
		{"part.stl", BackendTypeSTL, false},
		{"https://example.com/wolf.obj?v=2", BackendTypeOBJ, false},
		{"wolf.glb", 0, true},
		{"noext", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := BackendTypeFor(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
