package material

import "github.com/Carmen-Shannon/oxy-gallery/common"

// MaterialBuilderOption is a functional option for configuring a Material via NewMaterial.
type MaterialBuilderOption func(*material)

// WithShading sets the lighting model.
//
// Parameters:
//   - shading: the shading mode
//
// Returns:
//   - MaterialBuilderOption: a function that sets the shading mode
func WithShading(shading Shading) MaterialBuilderOption {
	return func(m *material) {
		m.shading = shading
		if shading == ShadingUnlit {
			m.envMapped = false
		}
	}
}

// WithHexColor sets the base color from a packed 0xRRGGBB value.
//
// Parameters:
//   - hex: the packed color
//
// Returns:
//   - MaterialBuilderOption: a function that sets the color
func WithHexColor(hex uint32) MaterialBuilderOption {
	return func(m *material) {
		m.color = common.HexToRGB(hex)
	}
}

// WithOpacity sets the alpha of the final color.
//
// Parameters:
//   - opacity: opacity in [0, 1]
//
// Returns:
//   - MaterialBuilderOption: a function that sets the opacity
func WithOpacity(opacity float32) MaterialBuilderOption {
	return func(m *material) {
		m.opacity = opacity
	}
}

// WithTransmission sets how much light passes through the surface.
//
// Parameters:
//   - transmission: transmission in [0, 1]
//
// Returns:
//   - MaterialBuilderOption: a function that sets the transmission
func WithTransmission(transmission float32) MaterialBuilderOption {
	return func(m *material) {
		m.transmission = transmission
	}
}

// WithRefractionRatio sets the environment refraction ratio.
//
// Parameters:
//   - ratio: the refraction ratio
//
// Returns:
//   - MaterialBuilderOption: a function that sets the refraction ratio
func WithRefractionRatio(ratio float32) MaterialBuilderOption {
	return func(m *material) {
		m.refractionRatio = ratio
	}
}

// WithReflectivity sets how strongly the environment is mixed in.
//
// Parameters:
//   - reflectivity: reflectivity in [0, 1]
//
// Returns:
//   - MaterialBuilderOption: a function that sets the reflectivity
func WithReflectivity(reflectivity float32) MaterialBuilderOption {
	return func(m *material) {
		m.reflectivity = reflectivity
	}
}

// WithRoughness sets the microfacet roughness.
//
// Parameters:
//   - roughness: roughness in [0, 1]
//
// Returns:
//   - MaterialBuilderOption: a function that sets the roughness
func WithRoughness(roughness float32) MaterialBuilderOption {
	return func(m *material) {
		m.roughness = roughness
	}
}

// WithIOR sets the index of refraction.
//
// Parameters:
//   - ior: the index of refraction
//
// Returns:
//   - MaterialBuilderOption: a function that sets the IOR
func WithIOR(ior float32) MaterialBuilderOption {
	return func(m *material) {
		m.ior = ior
	}
}

// WithEnvMap sets whether the material samples the environment map.
//
// Parameters:
//   - enabled: true to sample the environment
//
// Returns:
//   - MaterialBuilderOption: a function that sets environment mapping
func WithEnvMap(enabled bool) MaterialBuilderOption {
	return func(m *material) {
		m.envMapped = enabled
	}
}
