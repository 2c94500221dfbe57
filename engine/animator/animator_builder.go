package animator

// AnimatorBuilderOption is a functional option for configuring an Animator.
type AnimatorBuilderOption func(*animator)

// WithRadius sets the light orbit radius. Non-positive values are ignored.
//
// Parameters:
//   - radius: the orbit radius
//
// Returns:
//   - AnimatorBuilderOption: a function that sets the radius
func WithRadius(radius float64) AnimatorBuilderOption {
	return func(a *animator) {
		if radius > 0 {
			a.radius = radius
		}
	}
}

// WithPhaseOffset shifts the rotation of one named group relative to the shared phase.
//
// Parameters:
//   - group: the group name
//   - offset: the offset in radians
//
// Returns:
//   - AnimatorBuilderOption: a function that sets the offset
func WithPhaseOffset(group string, offset float64) AnimatorBuilderOption {
	return func(a *animator) {
		a.offsets[group] = offset
	}
}

// WithTarget sets the point the camera is aimed at each tick.
//
// Parameters:
//   - x, y, z: the world-space target
//
// Returns:
//   - AnimatorBuilderOption: a function that sets the target
func WithTarget(x, y, z float32) AnimatorBuilderOption {
	return func(a *animator) {
		a.target = [3]float32{x, y, z}
	}
}
