package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func distance(a, b [3]float32) float32 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return math32.Sqrt(dx*dx + dy*dy + dz*dz)
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera(WithViewport(800, 600))

	assert.Equal(t, float32(50), c.Fov())
	assert.Equal(t, float32(1), c.Near())
	assert.Equal(t, float32(1000), c.Far())
	assert.Equal(t, [3]float32{0, 0, -30}, c.Position())
	assert.Equal(t, [3]float32{0, 0, 0}, c.Target())
	assert.InDelta(t, 800.0/600.0, c.Aspect(), 1e-6)
}

func TestSetAspectChangesOnlyAspect(t *testing.T) {
	c := NewCamera(WithViewport(800, 600))
	fov, near, far, pos, target := c.Fov(), c.Near(), c.Far(), c.Position(), c.Target()
	view := c.ViewMatrix()

	c.SetAspect(1920.0 / 1080.0)

	assert.InDelta(t, 1.7778, c.Aspect(), 1e-4)
	assert.Equal(t, fov, c.Fov())
	assert.Equal(t, near, c.Near())
	assert.Equal(t, far, c.Far())
	assert.Equal(t, pos, c.Position())
	assert.Equal(t, target, c.Target())
	assert.Equal(t, view, c.ViewMatrix())
}

func TestLookAtKeepsPosition(t *testing.T) {
	c := NewCamera(WithPosition(10, 5, -30), WithTarget(3, 3, 3))
	c.LookAt([3]float32{0, 0, 0})

	assert.Equal(t, [3]float32{10, 5, -30}, c.Position())
	assert.Equal(t, [3]float32{0, 0, 0}, c.Target())

	// The origin must land on the view axis: x and y in view space are zero.
	view := c.ViewMatrix()
	assert.InDelta(t, 0, view[12], 1e-4)
	assert.InDelta(t, 0, view[13], 1e-4)
}

func TestControllerSyncFromCamera(t *testing.T) {
	ctrl := NewCameraController()
	NewCamera(WithController(ctrl))

	assert.InDelta(t, 30, ctrl.Radius(), 1e-5)
	assert.InDelta(t, 0, ctrl.Elevation(), 1e-6)
	assert.InDelta(t, math32.Pi, math32.Abs(ctrl.Azimuth()), 1e-6)
}

func TestUpdateWithoutInputDoesNotMove(t *testing.T) {
	c := NewCamera(WithController(NewCameraController()))
	before := c.Position()
	c.Update()
	assert.Equal(t, before, c.Position())
}

func TestDampingEasesOut(t *testing.T) {
	ctrl := NewCameraController(WithDampingFactor(0.1))
	c := NewCamera(WithController(ctrl))
	start := ctrl.Azimuth()

	ctrl.Rotate(1, 0)
	c.Update()
	first := ctrl.Azimuth() - start
	assert.InDelta(t, 0.1, first, 1e-5)

	c.Update()
	second := ctrl.Azimuth() - start - first
	assert.InDelta(t, 0.09, second, 1e-5)

	for i := 0; i < 500; i++ {
		c.Update()
	}
	assert.InDelta(t, 1, ctrl.Azimuth()-start, 1e-3)
	assert.InDelta(t, 30, distance(c.Position(), c.Target()), 1e-3)
}

func TestDampingDisabledAppliesImmediately(t *testing.T) {
	ctrl := NewCameraController(WithDamping(false))
	c := NewCamera(WithController(ctrl))
	start := ctrl.Azimuth()

	ctrl.Rotate(0.5, 0)
	c.Update()
	assert.InDelta(t, 0.5, ctrl.Azimuth()-start, 1e-6)

	before := c.Position()
	c.Update()
	assert.Equal(t, before, c.Position())
}

func TestElevationAndRadiusClamp(t *testing.T) {
	ctrl := NewCameraController(WithDamping(false), WithRadiusBounds(10, 40))
	c := NewCamera(WithController(ctrl))

	ctrl.Rotate(0, 10)
	ctrl.Zoom(100)
	c.Update()

	assert.LessOrEqual(t, ctrl.Elevation(), math32.Pi/2)
	assert.Equal(t, float32(10), ctrl.Radius())
	assert.InDelta(t, 10, distance(c.Position(), c.Target()), 1e-4)
}

func TestOrbitKeepsTarget(t *testing.T) {
	ctrl := NewCameraController()
	c := NewCamera(WithController(ctrl))

	ctrl.Drag(120, -40)
	for i := 0; i < 20; i++ {
		c.Update()
		c.LookAt([3]float32{0, 0, 0})
		require.Equal(t, [3]float32{0, 0, 0}, c.Target())
		assert.InDelta(t, 30, distance(c.Position(), c.Target()), 1e-3)
	}
	assert.NotEqual(t, [3]float32{0, 0, -30}, c.Position())
}

func TestReset(t *testing.T) {
	ctrl := NewCameraController(WithDamping(false))
	c := NewCamera(WithController(ctrl))
	home := c.Position()

	ctrl.Rotate(1, 0.3)
	c.Update()
	ctrl.Reset()
	c.Update()

	pos := c.Position()
	for i := range home {
		assert.InDelta(t, home[i], pos[i], 1e-4)
	}
}
