package loader

import (
	"context"
	"fmt"
	"image"

	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/h2non/filetype"
	"golang.org/x/image/draw"
)

// DefaultFallbackColor fills the cube map when any face cannot be read.
const DefaultFallbackColor uint32 = 0x202020

// fallbackSize is the face edge of the solid fallback cube map.
const fallbackSize = 4

// faceNames label the faces in +X, -X, +Y, -Y, +Z, -Z order.
var faceNames = [6]string{"px", "nx", "py", "ny", "pz", "nz"}

// DecodeCubeMap decodes six encoded faces into a cube map. Faces are resampled to the edge
// length of the first face when their sizes differ.
//
// Parameters:
//   - faces: encoded PNG or JPEG images ordered +X, -X, +Y, -Y, +Z, -Z
//
// Returns:
//   - *common.CubeMap: the decoded cube map
//   - error: error if any face is not a supported image
func DecodeCubeMap(faces [6]common.ImportedTexture) (*common.CubeMap, error) {
	cm := &common.CubeMap{}
	for i := range faces {
		face := &faces[i]
		if !filetype.IsImage(face.Data) {
			return nil, fmt.Errorf("%w: face %s from %s is not an image", ErrUnsupportedFormat, faceNames[i], face.Source)
		}
		kind, _ := filetype.Match(face.Data)
		if kind.Extension != "png" && kind.Extension != "jpg" {
			return nil, fmt.Errorf("%w: face %s from %s is %s", ErrUnsupportedFormat, faceNames[i], face.Source, kind.MIME.Value)
		}

		img, err := face.Decode()
		if err != nil {
			return nil, err
		}

		if i == 0 {
			cm.Size = uint32(img.Bounds().Dx())
		}
		if img.Bounds().Dx() != int(cm.Size) || img.Bounds().Dy() != int(cm.Size) {
			img = resample(img, int(cm.Size))
		}
		cm.Faces[i] = common.Staging(img)
	}
	return cm, nil
}

func resample(src *image.RGBA, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

func (l *loader) LoadCubeMap(ctx context.Context, faces [6]string) *common.CubeMap {
	var textures [6]common.ImportedTexture
	for i, path := range faces {
		data, err := l.fetcher.fetch(ctx, path)
		if err != nil {
			logger.Warningf("cube map face %s unavailable, using fallback color %06x: %v", faceNames[i], l.fallbackColor, err)
			return l.fallbackCubeMap()
		}
		textures[i] = common.ImportedTexture{Name: faceNames[i], Source: path, Data: data}
	}

	cm, err := DecodeCubeMap(textures)
	if err != nil {
		logger.Warningf("cube map could not be decoded, using fallback color %06x: %v", l.fallbackColor, err)
		return l.fallbackCubeMap()
	}
	logger.Infof("loaded cube map with %dpx faces", cm.Size)
	return cm
}

func (l *loader) fallbackCubeMap() *common.CubeMap {
	c := l.fallbackColor
	return common.SolidCubeMap(fallbackSize, [3]uint8{uint8(c >> 16), uint8(c >> 8), uint8(c)})
}
