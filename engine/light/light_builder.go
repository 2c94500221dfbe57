package light

import "github.com/Carmen-Shannon/oxy-gallery/common"

// LightBuilderOption is a functional option for configuring a Light via NewLight.
type LightBuilderOption func(*lightImpl)

// WithName sets the light's identifier.
//
// Parameters:
//   - name: the light name
//
// Returns:
//   - LightBuilderOption: a function that sets the name
func WithName(name string) LightBuilderOption {
	return func(l *lightImpl) {
		l.name = name
	}
}

// WithPosition sets the light's initial position. Ignored for ambient lights.
//
// Parameters:
//   - x, y, z: world-space position
//
// Returns:
//   - LightBuilderOption: a function that sets the position
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		if l.lightType != LightTypeAmbient {
			l.position = [3]float32{x, y, z}
		}
	}
}

// WithColor sets the light's linear RGB color.
//
// Parameters:
//   - r, g, b: color components in [0, 1]
//
// Returns:
//   - LightBuilderOption: a function that sets the color
func WithColor(r, g, b float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = [3]float32{r, g, b}
	}
}

// WithHexColor sets the light's color from a packed 0xRRGGBB value.
//
// Parameters:
//   - hex: the packed color
//
// Returns:
//   - LightBuilderOption: a function that sets the color
func WithHexColor(hex uint32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = common.HexToRGB(hex)
	}
}

// WithIntensity sets the light's brightness multiplier.
//
// Parameters:
//   - intensity: the intensity
//
// Returns:
//   - LightBuilderOption: a function that sets the intensity
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithDistance sets the cutoff distance of a point light, 0 for unlimited.
//
// Parameters:
//   - distance: the cutoff distance
//
// Returns:
//   - LightBuilderOption: a function that sets the distance
func WithDistance(distance float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.distance = distance
	}
}

// WithEnabled sets whether the light starts enabled.
//
// Parameters:
//   - enabled: true to enable
//
// Returns:
//   - LightBuilderOption: a function that sets the enabled state
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}
