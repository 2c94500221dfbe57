package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithRadiusBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - min: closest allowed distance to the target
//   - max: farthest allowed distance from the target
//
// Returns:
//   - CameraControllerOption: a function that sets the radius bounds
func WithRadiusBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minRadius = min
		cc.maxRadius = max
	}
}

// WithElevationBounds sets the minimum and maximum elevation in radians.
//
// Parameters:
//   - min: lowest allowed elevation
//   - max: highest allowed elevation
//
// Returns:
//   - CameraControllerOption: a function that sets the elevation bounds
func WithElevationBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minElevation = min
		cc.maxElevation = max
	}
}

// WithDamping enables or disables inertial damping.
//
// Parameters:
//   - enabled: true to ease motion out over several updates
//
// Returns:
//   - CameraControllerOption: a function that sets damping
func WithDamping(enabled bool) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.damping = enabled
	}
}

// WithDampingFactor sets the fraction of pending motion applied per update.
// Values outside (0, 1] are ignored.
//
// Parameters:
//   - factor: the damping factor
//
// Returns:
//   - CameraControllerOption: a function that sets the damping factor
func WithDampingFactor(factor float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if factor > 0 && factor <= 1 {
			cc.dampingFactor = factor
		}
	}
}

// WithMouseSensitivity sets the radians-per-pixel scale used by Drag.
//
// Parameters:
//   - sensitivity: the drag scale
//
// Returns:
//   - CameraControllerOption: a function that sets the sensitivity
func WithMouseSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.mouseSensitivity = sensitivity
	}
}

// WithZoomSpeed sets the distance moved per unit of zoom input.
//
// Parameters:
//   - speed: the zoom scale
//
// Returns:
//   - CameraControllerOption: a function that sets the zoom speed
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = speed
	}
}
