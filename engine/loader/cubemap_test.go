package loader

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidPNG(t *testing.T, size int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// faceColor gives each face a distinct red channel so ordering can be checked.
func faceColor(i int) color.RGBA {
	return color.RGBA{R: uint8(10 * (i + 1)), G: 0, B: 0, A: 255}
}

func writeFaces(t *testing.T, sizes [6]int) [6]string {
	t.Helper()
	dir := t.TempDir()
	var paths [6]string
	for i, name := range faceNames {
		paths[i] = filepath.Join(dir, name+".png")
		require.NoError(t, os.WriteFile(paths[i], solidPNG(t, sizes[i], faceColor(i)), 0o644))
	}
	return paths
}

func TestLoadCubeMapKeepsFaceOrder(t *testing.T) {
	paths := writeFaces(t, [6]int{8, 8, 8, 8, 8, 8})
	cm := NewLoader().LoadCubeMap(context.Background(), paths)

	require.False(t, cm.Fallback)
	assert.Equal(t, uint32(8), cm.Size)
	for i, face := range cm.Faces {
		assert.Equal(t, uint32(8), face.Width)
		assert.Equal(t, faceColor(i).R, face.Pixels[0], "face %s", faceNames[i])
	}
}

func TestLoadCubeMapResamplesMismatchedFaces(t *testing.T) {
	paths := writeFaces(t, [6]int{8, 16, 8, 4, 8, 8})
	cm := NewLoader().LoadCubeMap(context.Background(), paths)

	require.False(t, cm.Fallback)
	for i, face := range cm.Faces {
		assert.Equal(t, uint32(8), face.Width, "face %s", faceNames[i])
		assert.Equal(t, uint32(8), face.Height, "face %s", faceNames[i])
		assert.Len(t, face.Pixels, 8*8*4)
	}
	assert.Equal(t, faceColor(1).R, cm.Faces[common.FaceNegX].Pixels[0])
}

func TestLoadCubeMapFallsBackOnMissingFace(t *testing.T) {
	paths := writeFaces(t, [6]int{8, 8, 8, 8, 8, 8})
	paths[common.FaceNegZ] = filepath.Join(t.TempDir(), "missing.png")

	cm := NewLoader().LoadCubeMap(context.Background(), paths)
	require.True(t, cm.Fallback)
	for _, face := range cm.Faces {
		assert.Equal(t, []byte{0x20, 0x20, 0x20, 0xff}, face.Pixels[:4])
	}
}

func TestLoadCubeMapFallsBackOnNonImage(t *testing.T) {
	paths := writeFaces(t, [6]int{8, 8, 8, 8, 8, 8})
	require.NoError(t, os.WriteFile(paths[common.FacePosY], []byte("definitely not an image"), 0o644))

	cm := NewLoader(WithFallbackColor(0x102030)).LoadCubeMap(context.Background(), paths)
	require.True(t, cm.Fallback)
	assert.Equal(t, []byte{0x10, 0x20, 0x30, 0xff}, cm.Faces[0].Pixels[:4])
}

func TestDecodeCubeMapRejectsNonImage(t *testing.T) {
	var faces [6]common.ImportedTexture
	for i := range faces {
		faces[i] = common.ImportedTexture{Name: faceNames[i], Source: "mem", Data: []byte("nope")}
	}
	_, err := DecodeCubeMap(faces)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
