package material

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-gallery/common"
)

// Parameter names accepted by Material.Set and reported by Material.Params.
const (
	ParamColor           = "color"
	ParamOpacity         = "opacity"
	ParamTransmission    = "transmission"
	ParamRefractionRatio = "refractionRatio"
	ParamReflectivity    = "reflectivity"
	ParamRoughness       = "roughness"
	ParamIOR             = "ior"
)

// ErrUnknownParam is returned by Set for a parameter name the material does not have.
var ErrUnknownParam = errors.New("unknown material parameter")

// Shading selects the lighting model a material is drawn with.
type Shading int

const (
	// ShadingPhong is lit Blinn-Phong with environment reflection or refraction.
	ShadingPhong Shading = iota
	// ShadingPhysical adds transmission and roughness to the environment term.
	ShadingPhysical
	// ShadingUnlit draws the flat base color.
	ShadingUnlit
)

// String returns the lowercase name of the shading model.
func (s Shading) String() string {
	switch s {
	case ShadingPhong:
		return "phong"
	case ShadingPhysical:
		return "physical"
	case ShadingUnlit:
		return "unlit"
	default:
		return "unknown"
	}
}

// material is the implementation of the Material interface.
type material struct {
	mu *sync.Mutex

	name            string
	shading         Shading
	color           [3]float32
	opacity         float32
	transmission    float32
	refractionRatio float32
	reflectivity    float32
	roughness       float32
	ior             float32
	envMapped       bool
	version         uint64
}

// Material is a named, live-editable set of shading parameters. Meshes hold the
// Material itself rather than a copy, so an edit made through Set is picked up by the
// next render without touching any geometry.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Shading retrieves the lighting model.
	//
	// Returns:
	//   - Shading: the shading mode
	Shading() Shading

	// Color retrieves the linear base color.
	//
	// Returns:
	//   - [3]float32: RGB in [0, 1]
	Color() [3]float32

	// Opacity retrieves the alpha applied to the final color.
	//
	// Returns:
	//   - float32: opacity in [0, 1]
	Opacity() float32

	// Transmission retrieves how much light passes through the surface (physical shading).
	//
	// Returns:
	//   - float32: transmission in [0, 1]
	Transmission() float32

	// RefractionRatio retrieves the ratio of indices of refraction used when sampling the
	// environment through the surface.
	//
	// Returns:
	//   - float32: the refraction ratio
	RefractionRatio() float32

	// Reflectivity retrieves how strongly the environment is mixed into the lit color.
	//
	// Returns:
	//   - float32: reflectivity in [0, 1]
	Reflectivity() float32

	// Roughness retrieves the microfacet roughness (physical shading).
	//
	// Returns:
	//   - float32: roughness in [0, 1]
	Roughness() float32

	// IOR retrieves the index of refraction (physical shading).
	//
	// Returns:
	//   - float32: the index of refraction
	IOR() float32

	// EnvMapped reports whether the material samples the scene environment map.
	//
	// Returns:
	//   - bool: true if environment mapped
	EnvMapped() bool

	// Version increments on every successful edit. Renderers may compare it to skip uploads.
	//
	// Returns:
	//   - uint64: the edit counter
	Version() uint64

	// Params returns a snapshot of every editable parameter keyed by name. The color is
	// reported as a packed 0xRRGGBB value.
	//
	// Returns:
	//   - map[string]float64: the parameter values
	Params() map[string]float64

	// Set updates one parameter by name. Color takes a packed 0xRRGGBB value.
	//
	// Parameters:
	//   - param: the parameter name
	//   - value: the new value
	//
	// Returns:
	//   - error: ErrUnknownParam for an unknown name
	Set(param string, value float64) error

	// SetColor sets the base color.
	//
	// Parameters:
	//   - rgb: RGB in [0, 1]
	SetColor(rgb [3]float32)
}

var _ Material = &material{}

// NewMaterial creates a Phong material named name with the given options applied.
// Defaults match an environment-mapped Phong surface: white, opaque, reflectivity 1,
// refraction ratio 0.98, IOR 1.5.
//
// Parameters:
//   - name: the material identifier
//   - options: a variadic list of MaterialBuilderOption functions
//
// Returns:
//   - Material: the configured material
func NewMaterial(name string, options ...MaterialBuilderOption) Material {
	m := &material{
		mu:              &sync.Mutex{},
		name:            name,
		shading:         ShadingPhong,
		color:           [3]float32{1, 1, 1},
		opacity:         1,
		refractionRatio: 0.98,
		reflectivity:    1,
		roughness:       1,
		ior:             1.5,
		envMapped:       true,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Shading() Shading {
	return m.shading
}

func (m *material) Color() [3]float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.color
}

func (m *material) Opacity() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opacity
}

func (m *material) Transmission() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transmission
}

func (m *material) RefractionRatio() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refractionRatio
}

func (m *material) Reflectivity() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reflectivity
}

func (m *material) Roughness() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roughness
}

func (m *material) IOR() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ior
}

func (m *material) EnvMapped() bool {
	return m.envMapped
}

func (m *material) Version() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.version
}

func (m *material) Params() map[string]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return map[string]float64{
		ParamColor:           float64(common.RGBToHex(m.color)),
		ParamOpacity:         float64(m.opacity),
		ParamTransmission:    float64(m.transmission),
		ParamRefractionRatio: float64(m.refractionRatio),
		ParamReflectivity:    float64(m.reflectivity),
		ParamRoughness:       float64(m.roughness),
		ParamIOR:             float64(m.ior),
	}
}

func (m *material) Set(param string, value float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch param {
	case ParamColor:
		m.color = common.HexToRGB(uint32(value))
	case ParamOpacity:
		m.opacity = unit(value)
	case ParamTransmission:
		m.transmission = unit(value)
	case ParamRefractionRatio:
		m.refractionRatio = float32(value)
	case ParamReflectivity:
		m.reflectivity = unit(value)
	case ParamRoughness:
		m.roughness = unit(value)
	case ParamIOR:
		m.ior = float32(value)
	default:
		return fmt.Errorf("material %s: %w: %q", m.name, ErrUnknownParam, param)
	}
	m.version++
	return nil
}

func (m *material) SetColor(rgb [3]float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.color = rgb
	m.version++
}

// ParamNames lists every parameter name accepted by Set, sorted.
//
// Returns:
//   - []string: the parameter names
func ParamNames() []string {
	names := []string{
		ParamColor, ParamOpacity, ParamTransmission, ParamRefractionRatio,
		ParamReflectivity, ParamRoughness, ParamIOR,
	}
	sort.Strings(names)
	return names
}

func unit(v float64) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return float32(v)
	}
}
