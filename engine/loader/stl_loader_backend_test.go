package loader

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const asciiSTL = `solid tri
facet normal 0 0 -1
  outer loop
    vertex 0 0 0
    vertex 0 1 0
    vertex 1 0 0
  endloop
endfacet
facet normal 0 -1 0
  outer loop
    vertex 0 0 0
    vertex 1 0 0
    vertex 0 0 1
  endloop
endfacet
endsolid tri
`

func binarySTL(tris [][3][3]float32) []byte {
	var buf bytes.Buffer
	header := make([]byte, stlHeaderSize)
	copy(header, "solid exported as binary")
	buf.Write(header)
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(tris)))
	for _, tri := range tris {
		for i := 0; i < 3; i++ {
			_ = binary.Write(&buf, binary.LittleEndian, float32(0))
		}
		for _, c := range tri {
			for _, v := range c {
				_ = binary.Write(&buf, binary.LittleEndian, math.Float32bits(v))
			}
		}
		_ = binary.Write(&buf, binary.LittleEndian, uint16(0))
	}
	return buf.Bytes()
}

func TestSTLASCIIWeldsCorners(t *testing.T) {
	mesh, err := newSTLLoaderBackend().LoadReader(strings.NewReader(asciiSTL), "tri")
	require.NoError(t, err)

	assert.Len(t, mesh.Positions, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, mesh.Indices)
	assert.False(t, mesh.HasNormals())
}

func TestSTLBinary(t *testing.T) {
	data := binarySTL([][3][3]float32{
		{{0, 0, 0}, {0, 1, 0}, {1, 0, 0}},
		{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}},
	})
	require.True(t, isBinarySTL(data))

	mesh, err := newSTLLoaderBackend().LoadReader(bytes.NewReader(data), "bin")
	require.NoError(t, err)
	assert.Len(t, mesh.Positions, 4)
	assert.Len(t, mesh.Indices, 6)
	assert.Equal(t, [3]float32{0, 1, 0}, mesh.Positions[1])
}

func TestSTLErrors(t *testing.T) {
	tests := []struct {
		name string
		src  []byte
		want error
	}{
		{"garbage", []byte("not a mesh"), ErrMalformedMesh},
		{"bad coordinate", []byte("solid x\nvertex 0 a 0\n"), ErrMalformedMesh},
		{"empty solid", []byte("solid x\nendsolid x\n"), ErrEmptyMesh},
		{"empty binary", binarySTL(nil), ErrEmptyMesh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newSTLLoaderBackend().LoadReader(bytes.NewReader(tt.src), tt.name)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
