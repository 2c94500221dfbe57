package camera

// CameraController is an orbit control with inertial damping. It owns only the camera
// position, expressed as spherical coordinates (radius, azimuth, elevation) around the
// camera's target. Pointer input accumulates into pending deltas that Update bleeds off
// a fraction at a time, so motion eases out after input stops.
type CameraController interface {
	// Sync seeds the spherical coordinates from a position relative to a target and
	// discards any pending motion.
	//
	// Parameters:
	//   - position: world-space camera position
	//   - target: world-space orbit center
	Sync(position, target [3]float32)

	// Update applies one step of pending motion around target.
	//
	// Parameters:
	//   - target: the orbit center for this frame
	//
	// Returns:
	//   - [3]float32: the new camera position
	//   - bool: false if nothing moved and the position was not recomputed
	Update(target [3]float32) ([3]float32, bool)

	// Rotate queues an orbit by the given angles.
	//
	// Parameters:
	//   - dAzimuth: change in horizontal angle around the vertical axis, in radians
	//   - dElevation: change in vertical angle above the horizontal plane, in radians
	Rotate(dAzimuth, dElevation float32)

	// Drag queues an orbit from a pointer drag, scaled by MouseSensitivity.
	// Dragging right orbits left and dragging down tilts up, matching grab-the-world feel.
	//
	// Parameters:
	//   - dx, dy: pointer movement in pixels
	Drag(dx, dy float32)

	// Zoom queues a change in distance. Positive delta moves closer to the target.
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed
	Zoom(delta float32)

	// Reset restores the spherical coordinates captured by the first Sync.
	Reset()

	// Radius returns the current orbit radius.
	//
	// Returns:
	//   - float32: distance from target
	Radius() float32

	// Azimuth returns the current horizontal angle.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// Elevation returns the current vertical angle.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32

	// DampingFactor returns the fraction of pending motion applied per Update.
	//
	// Returns:
	//   - float32: the damping factor in (0, 1]
	DampingFactor() float32

	// MouseSensitivity returns the radians-per-pixel drag scale.
	//
	// Returns:
	//   - float32: the sensitivity
	MouseSensitivity() float32
}
