// Package animator rotates scene groups and orbits the point light from the animation phase.
package animator

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-gallery/engine/scene"
)

// DefaultOrbitRadius is the distance from the vertical axis at which point lights orbit.
const DefaultOrbitRadius = 100.0

// animator is the implementation of the Animator interface.
type animator struct {
	mu *sync.Mutex

	radius  float64
	offsets map[string]float64
	target  [3]float32
}

// Animator drives the per-frame transforms of a scene from a single phase value.
// The result depends only on the phase, so ticking twice with the same phase leaves the
// scene unchanged.
type Animator interface {
	// Tick applies the phase to the scene. Every visual group is yawed to the phase plus its
	// offset, every enabled point light is placed on a circle of Radius around the vertical
	// axis at its current height, light markers follow their lights, and the camera is aimed
	// at the target without moving.
	//
	// Parameters:
	//   - phase: the animation phase in radians, unwrapped
	//   - sc: the scene to update
	Tick(phase float64, sc scene.Scene)

	// Radius returns the light orbit radius.
	//
	// Returns:
	//   - float64: the orbit radius
	Radius() float64

	// PhaseOffset returns the offset added to the phase for the named group.
	//
	// Parameters:
	//   - group: the group name
	//
	// Returns:
	//   - float64: the offset in radians, zero when none is set
	PhaseOffset(group string) float64

	// Target returns the point the camera is aimed at each tick.
	//
	// Returns:
	//   - [3]float32: the look-at target
	Target() [3]float32
}

var _ Animator = &animator{}

// NewAnimator creates a new Animator orbiting lights at DefaultOrbitRadius and aiming the
// camera at the origin.
//
// Parameters:
//   - options: a variadic list of AnimatorBuilderOption functions
//
// Returns:
//   - Animator: the configured animator
func NewAnimator(options ...AnimatorBuilderOption) Animator {
	a := &animator{
		mu:      &sync.Mutex{},
		radius:  DefaultOrbitRadius,
		offsets: make(map[string]float64),
	}
	for _, option := range options {
		option(a)
	}
	return a
}

func (a *animator) Tick(phase float64, sc scene.Scene) {
	if sc == nil {
		return
	}

	a.mu.Lock()
	radius, target := a.radius, a.target
	offsets := make(map[string]float64, len(a.offsets))
	for k, v := range a.offsets {
		offsets[k] = v
	}
	a.mu.Unlock()

	for _, g := range sc.Groups() {
		rx, _, rz := g.Rotation()
		g.SetRotation(rx, narrowAngle(phase+offsets[g.Name()]), rz)
	}

	x, z := radius*math.Cos(phase), radius*math.Sin(phase)
	for _, l := range sc.PointLights() {
		p := l.Position()
		l.SetPosition(float32(x), p[1], float32(z))
	}
	sc.SyncMarkers()

	if cam := sc.Camera(); cam != nil {
		cam.LookAt(target)
	}
}

func (a *animator) Radius() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.radius
}

func (a *animator) PhaseOffset(group string) float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.offsets[group]
}

func (a *animator) Target() [3]float32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.target
}

// narrowAngle folds an unbounded angle into [-pi, pi] before converting it to float32, so
// large phases keep their precision in the transform.
func narrowAngle(angle float64) float32 {
	return float32(math.Remainder(angle, 2*math.Pi))
}
