package light

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLightDefaults(t *testing.T) {
	l := NewLight(LightTypePoint)
	assert.Equal(t, "point", l.Name())
	assert.Equal(t, [3]float32{1, 1, 1}, l.Color())
	assert.Equal(t, float32(1), l.Intensity())
	assert.True(t, l.Enabled())
}

func TestAmbientHasNoPosition(t *testing.T) {
	l := NewLight(LightTypeAmbient, WithPosition(1, 2, 3), WithHexColor(0xffffff))
	assert.Equal(t, [3]float32{}, l.Position())

	l.SetPosition(4, 5, 6)
	assert.Equal(t, [3]float32{}, l.Position())
	assert.Equal(t, [3]float32{1, 1, 1}, l.Color())
}

func TestPointLightSetters(t *testing.T) {
	l := NewLight(LightTypePoint, WithName("orbit"), WithIntensity(2))
	l.SetIntensity(1.5)
	l.SetPosition(100, 0, 0)

	assert.Equal(t, "orbit", l.Name())
	assert.Equal(t, float32(1.5), l.Intensity())
	assert.Equal(t, [3]float32{100, 0, 0}, l.Position())
}
