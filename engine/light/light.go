package light

import "sync"

// LightType identifies how a light contributes to shading.
type LightType int

const (
	// LightTypeAmbient lights every surface uniformly. It has no position.
	LightTypeAmbient LightType = iota

	// LightTypePoint emits from a single position in all directions.
	LightTypePoint
)

// String returns the lowercase name of the light type.
func (t LightType) String() string {
	switch t {
	case LightTypeAmbient:
		return "ambient"
	case LightTypePoint:
		return "point"
	default:
		return "unknown"
	}
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu *sync.Mutex

	name      string
	lightType LightType
	position  [3]float32
	color     [3]float32
	intensity float32
	distance  float32 // 0 means no falloff cutoff
	enabled   bool
}

// Light is a light source in the scene. Point lights are moved every frame by the
// animation loop; an optional marker mesh follows the light through the scene.
type Light interface {
	// Name retrieves the light identifier.
	//
	// Returns:
	//   - string: the light name
	Name() string

	// Type retrieves the light type.
	//
	// Returns:
	//   - LightType: ambient or point
	Type() LightType

	// Position retrieves the world-space position. Ambient lights report the origin.
	//
	// Returns:
	//   - [3]float32: the position
	Position() [3]float32

	// Color retrieves the linear RGB color.
	//
	// Returns:
	//   - [3]float32: the color
	Color() [3]float32

	// Intensity retrieves the scalar brightness multiplier.
	//
	// Returns:
	//   - float32: the intensity
	Intensity() float32

	// Distance retrieves the cutoff distance, 0 for unlimited.
	//
	// Returns:
	//   - float32: the distance
	Distance() float32

	// Enabled reports whether the light contributes to shading.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetPosition moves the light.
	//
	// Parameters:
	//   - x, y, z: world-space position
	SetPosition(x, y, z float32)

	// SetColor sets the linear RGB color.
	//
	// Parameters:
	//   - r, g, b: color components in [0, 1]
	SetColor(r, g, b float32)

	// SetIntensity sets the brightness multiplier.
	//
	// Parameters:
	//   - intensity: the new intensity
	SetIntensity(intensity float32)

	// SetEnabled toggles the light.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the given type with the options applied.
// Defaults are white, intensity 1, enabled, at the origin.
//
// Parameters:
//   - lightType: the type of light
//   - opts: a variadic list of LightBuilderOption functions
//
// Returns:
//   - Light: the configured light
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:        &sync.Mutex{},
		name:      lightType.String(),
		lightType: lightType,
		color:     [3]float32{1, 1, 1},
		intensity: 1,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Name() string {
	return l.name
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.position
}

func (l *lightImpl) Color() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.intensity
}

func (l *lightImpl) Distance() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.distance
}

func (l *lightImpl) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	if l.lightType == LightTypeAmbient {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.position = [3]float32{x, y, z}
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.color = [3]float32{r, g, b}
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}
