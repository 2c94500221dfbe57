// package common contains plain data types and math helpers shared across the engine. They are not interface-wrapped structs.
package common

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
)

// TextureStagingData holds RGBA pixel data pending GPU upload.
type TextureStagingData struct {
	// Pixels is the RGBA pixel data, 4 bytes per pixel, row-major.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// ImportedTexture is an encoded image held in memory together with its origin.
type ImportedTexture struct {
	// Name is an identifier for this texture (e.g. "px" for a cube face).
	Name string

	// Source is where the bytes were read from, used in error messages.
	Source string

	// Data contains the raw encoded image bytes (PNG/JPEG).
	Data []byte

	// Width is the texture width in pixels (populated after Decode).
	Width int

	// Height is the texture height in pixels (populated after Decode).
	Height int
}

// Decode decodes the texture bytes to an RGBA image.
// Supports PNG and JPEG formats.
//
// Returns:
//   - *image.RGBA: the decoded pixels with bounds starting at (0, 0)
//   - error: error if decoding fails
func (t *ImportedTexture) Decode() (*image.RGBA, error) {
	if t == nil {
		return nil, fmt.Errorf("texture is nil")
	}
	if len(t.Data) == 0 {
		return nil, fmt.Errorf("texture %q from %s has no data", t.Name, t.Source)
	}

	img, _, err := image.Decode(bytes.NewReader(t.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %q from %s: %w", t.Name, t.Source, err)
	}

	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	t.Width = b.Dx()
	t.Height = b.Dy()
	return rgba, nil
}

// Staging converts a decoded RGBA image into upload-ready staging data.
//
// Parameters:
//   - img: the decoded image
//
// Returns:
//   - TextureStagingData: the pixel buffer and its dimensions
func Staging(img *image.RGBA) TextureStagingData {
	b := img.Bounds()
	return TextureStagingData{
		Pixels: img.Pix,
		Width:  uint32(b.Dx()),
		Height: uint32(b.Dy()),
	}
}

// CubeFace indexes the six faces of a cube map in GPU layer order.
type CubeFace int

const (
	FacePosX CubeFace = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// CubeMap is a six-faced environment image with square faces of equal size. It backs both
// the scene background and the reflection lookups of environment-mapped materials.
type CubeMap struct {
	// Faces holds the pixel data ordered +X, -X, +Y, -Y, +Z, -Z.
	Faces [6]TextureStagingData

	// Size is the edge length in pixels shared by every face.
	Size uint32

	// Fallback reports that the faces are a solid color because the images could not be read.
	Fallback bool
}

// SolidCubeMap builds a cube map whose faces are a single color.
//
// Parameters:
//   - size: edge length of each face in pixels
//   - rgb: the fill color, 0-255 per channel
//
// Returns:
//   - *CubeMap: the filled cube map, marked as a fallback
func SolidCubeMap(size uint32, rgb [3]uint8) *CubeMap {
	if size == 0 {
		size = 1
	}
	cm := &CubeMap{Size: size, Fallback: true}
	for f := range cm.Faces {
		pix := make([]byte, int(size*size)*4)
		for i := 0; i < len(pix); i += 4 {
			pix[i], pix[i+1], pix[i+2], pix[i+3] = rgb[0], rgb[1], rgb[2], 255
		}
		cm.Faces[f] = TextureStagingData{Pixels: pix, Width: size, Height: size}
	}
	return cm
}
