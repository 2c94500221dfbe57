package animator

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-gallery/engine/camera"
	"github.com/Carmen-Shannon/oxy-gallery/engine/game_object"
	"github.com/Carmen-Shannon/oxy-gallery/engine/light"
	"github.com/Carmen-Shannon/oxy-gallery/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lightHeight = 10

func newTestScene() (scene.Scene, light.Light, game_object.GameObject) {
	cam := camera.NewCamera(camera.WithViewport(800, 600))
	sc := scene.NewScene("test", cam)
	for _, name := range []string{"diamond", "diamond2", "diamond3"} {
		sc.AddGroup(game_object.NewGroup(name))
	}
	sc.AddLight(light.NewLight(light.LightTypeAmbient), nil)
	point := light.NewLight(light.LightTypePoint, light.WithPosition(0, lightHeight, 0), light.WithIntensity(1.5))
	marker := game_object.NewGameObject(game_object.WithLight(point))
	sc.AddLight(point, marker)
	return sc, point, marker
}

func yaw(g game_object.GameObject) float32 {
	_, ry, _ := g.Rotation()
	return ry
}

func TestTickAtZero(t *testing.T) {
	sc, point, marker := newTestScene()
	NewAnimator().Tick(0, sc)

	for _, g := range sc.Groups() {
		assert.Equal(t, float32(0), yaw(g), g.Name())
	}
	assert.Equal(t, [3]float32{100, lightHeight, 0}, point.Position())

	x, y, z := marker.Position()
	assert.Equal(t, point.Position(), [3]float32{x, y, z})
}

func TestTickAtQuarterTurn(t *testing.T) {
	sc, point, _ := newTestScene()
	NewAnimator().Tick(math.Pi/2, sc)

	p := point.Position()
	assert.InDelta(t, 0, p[0], 1e-4)
	assert.Equal(t, float32(lightHeight), p[1])
	assert.InDelta(t, 100, p[2], 1e-4)

	for _, g := range sc.Groups() {
		assert.InDelta(t, math.Pi/2, yaw(g), 1e-6)
	}
}

func TestLightStaysOnOrbit(t *testing.T) {
	sc, point, _ := newTestScene()
	a := NewAnimator()

	for _, phase := range []float64{-0.3, -1, -2.5, -7, -100.25, -3.4e8, 12.75} {
		a.Tick(phase, sc)
		p := point.Position()
		r2 := float64(p[0])*float64(p[0]) + float64(p[2])*float64(p[2])
		assert.InDelta(t, 100*100, r2, 1e-1, "phase %v", phase)
		assert.Equal(t, float32(lightHeight), p[1])
	}
}

func TestTickIsIdempotent(t *testing.T) {
	sc, point, _ := newTestScene()
	a := NewAnimator()

	a.Tick(-1234.5678, sc)
	first := point.Position()
	var yaws []float32
	for _, g := range sc.Groups() {
		yaws = append(yaws, yaw(g))
	}
	view := sc.Camera().ViewMatrix()

	a.Tick(-1234.5678, sc)
	assert.Equal(t, first, point.Position())
	for i, g := range sc.Groups() {
		assert.Equal(t, yaws[i], yaw(g))
	}
	assert.Equal(t, view, sc.Camera().ViewMatrix())
}

func TestLargePhaseKeepsPrecision(t *testing.T) {
	sc, _, _ := newTestScene()
	phase := -0.0002 * 1.7e12
	NewAnimator().Tick(phase, sc)

	want := math.Remainder(phase, 2*math.Pi)
	g, ok := sc.Group("diamond")
	require.True(t, ok)
	assert.InDelta(t, want, yaw(g), 1e-6)
	assert.LessOrEqual(t, math.Abs(float64(yaw(g))), math.Pi+1e-6)
}

func TestPhaseOffset(t *testing.T) {
	sc, _, _ := newTestScene()
	a := NewAnimator(WithPhaseOffset("diamond2", math.Pi/4))
	a.Tick(0.5, sc)

	d, _ := sc.Group("diamond")
	d2, _ := sc.Group("diamond2")
	assert.InDelta(t, 0.5, yaw(d), 1e-6)
	assert.InDelta(t, 0.5+math.Pi/4, yaw(d2), 1e-6)
	assert.Equal(t, math.Pi/4, a.PhaseOffset("diamond2"))
	assert.Zero(t, a.PhaseOffset("diamond3"))
}

func TestTickPreservesGroupTilt(t *testing.T) {
	sc, _, _ := newTestScene()
	wolf := game_object.NewGroup("wolf")
	wolf.SetRotation(-math.Pi/2, 0, 0)
	sc.AddGroup(wolf)

	NewAnimator().Tick(1, sc)
	rx, ry, rz := wolf.Rotation()
	assert.InDelta(t, -math.Pi/2, rx, 1e-6)
	assert.InDelta(t, 1, ry, 1e-6)
	assert.Zero(t, rz)
}

func TestTickAimsCameraWithoutMovingIt(t *testing.T) {
	sc, _, _ := newTestScene()
	cam := sc.Camera()
	cam.SetPosition([3]float32{12, 4, -20})
	cam.LookAt([3]float32{5, 5, 5})

	NewAnimator().Tick(-2, sc)

	assert.Equal(t, [3]float32{12, 4, -20}, cam.Position())
	assert.Equal(t, [3]float32{0, 0, 0}, cam.Target())
}

func TestRadiusOption(t *testing.T) {
	sc, point, _ := newTestScene()
	a := NewAnimator(WithRadius(40), WithRadius(-1))
	assert.Equal(t, 40.0, a.Radius())

	a.Tick(0, sc)
	assert.Equal(t, [3]float32{40, lightHeight, 0}, point.Position())
}
