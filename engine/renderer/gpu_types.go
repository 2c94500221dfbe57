package renderer

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

//go:embed assets/mesh.wgsl
var meshShaderSource string

//go:embed assets/background.wgsl
var backgroundShaderSource string

// Shading flag values written to GPUObjectUniforms.Flags[2]. They mirror material.Shading.
const (
	shadingPhong    float32 = 0
	shadingPhysical float32 = 1
	shadingUnlit    float32 = 2
)

// GPUObjectUniforms is the per-node uniform block consumed by mesh.wgsl at group 0, binding 0.
// Size: 240 bytes (std140-compatible, every member 16-byte aligned).
type GPUObjectUniforms struct {
	ViewProjection [16]float32 // offset   0: camera view-projection
	Model          [16]float32 // offset  64: node world matrix
	BaseColor      [4]float32  // offset 128: rgb, opacity
	LightPosition  [4]float32  // offset 144: xyz, intensity
	LightColor     [4]float32  // offset 160: rgb, 1 when a point light is present
	Ambient        [4]float32  // offset 176: summed ambient rgb, unused
	CameraPosition [4]float32  // offset 192: xyz, reflectivity
	Params         [4]float32  // offset 208: refraction ratio, transmission, roughness, ior
	Flags          [4]float32  // offset 224: env mapped, unused, shading, unused
}

// Size returns the size of the GPUObjectUniforms struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (u *GPUObjectUniforms) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal encodes the uniforms in little-endian order.
//
// Returns:
//   - []byte: the encoded block
func (u *GPUObjectUniforms) Marshal() []byte {
	buf := make([]byte, 0, u.Size())
	buf = appendFloats(buf, u.ViewProjection[:]...)
	buf = appendFloats(buf, u.Model[:]...)
	buf = appendFloats(buf, u.BaseColor[:]...)
	buf = appendFloats(buf, u.LightPosition[:]...)
	buf = appendFloats(buf, u.LightColor[:]...)
	buf = appendFloats(buf, u.Ambient[:]...)
	buf = appendFloats(buf, u.CameraPosition[:]...)
	buf = appendFloats(buf, u.Params[:]...)
	buf = appendFloats(buf, u.Flags[:]...)
	return buf
}

// GPUBackgroundUniforms is consumed by background.wgsl at group 0, binding 0.
// Size: 80 bytes.
type GPUBackgroundUniforms struct {
	InverseViewProjection [16]float32 // offset  0: unprojects NDC to world space
	CameraPosition        [4]float32  // offset 64: xyz, unused
}

// Size returns the size of the GPUBackgroundUniforms struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (u *GPUBackgroundUniforms) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal encodes the uniforms in little-endian order.
//
// Returns:
//   - []byte: the encoded block
func (u *GPUBackgroundUniforms) Marshal() []byte {
	buf := make([]byte, 0, u.Size())
	buf = appendFloats(buf, u.InverseViewProjection[:]...)
	buf = appendFloats(buf, u.CameraPosition[:]...)
	return buf
}

func appendFloats(buf []byte, values ...float32) []byte {
	for _, v := range values {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	return buf
}
