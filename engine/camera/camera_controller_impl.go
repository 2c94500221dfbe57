package camera

import (
	"sync"

	"github.com/chewxy/math32"
)

// restEpsilon is the pending-motion magnitude below which the controller is considered at rest.
const restEpsilon = 1e-6

type cameraControllerImpl struct {
	mu *sync.Mutex

	radius    float32
	azimuth   float32 // around the vertical axis, 0 looks down -Z from +Z
	elevation float32 // above the horizontal plane

	home      [3]float32 // radius, azimuth, elevation captured by the first Sync
	homeSaved bool

	pendingAzimuth   float32
	pendingElevation float32
	pendingZoom      float32
	dirty            bool

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	damping          bool
	dampingFactor    float32
	mouseSensitivity float32
	zoomSpeed        float32
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates an orbit controller with damping enabled.
//
// Parameters:
//   - options: a variadic list of CameraControllerOption functions
//
// Returns:
//   - CameraController: the configured controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:     &sync.Mutex{},
		radius: 30,

		minRadius:    5,
		maxRadius:    500,
		minElevation: -math32.Pi/2 + 0.01,
		maxElevation: math32.Pi/2 - 0.01,

		damping:          true,
		dampingFactor:    0.05,
		mouseSensitivity: 0.005,
		zoomSpeed:        2,
	}
	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *cameraControllerImpl) Sync(position, target [3]float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	dx := position[0] - target[0]
	dy := position[1] - target[1]
	dz := position[2] - target[2]

	cc.radius = clamp(math32.Sqrt(dx*dx+dy*dy+dz*dz), cc.minRadius, cc.maxRadius)
	cc.azimuth = math32.Atan2(dx, dz)
	cc.elevation = clamp(math32.Atan2(dy, math32.Sqrt(dx*dx+dz*dz)), cc.minElevation, cc.maxElevation)
	cc.pendingAzimuth, cc.pendingElevation, cc.pendingZoom = 0, 0, 0
	cc.dirty = false

	if !cc.homeSaved {
		cc.home = [3]float32{cc.radius, cc.azimuth, cc.elevation}
		cc.homeSaved = true
	}
}

func (cc *cameraControllerImpl) Update(target [3]float32) ([3]float32, bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	moving := math32.Abs(cc.pendingAzimuth) > restEpsilon ||
		math32.Abs(cc.pendingElevation) > restEpsilon ||
		math32.Abs(cc.pendingZoom) > restEpsilon
	if !moving && !cc.dirty {
		return [3]float32{}, false
	}

	step := float32(1)
	if cc.damping {
		step = cc.dampingFactor
	}

	cc.azimuth += cc.pendingAzimuth * step
	cc.elevation = clamp(cc.elevation+cc.pendingElevation*step, cc.minElevation, cc.maxElevation)
	cc.radius = clamp(cc.radius-cc.pendingZoom*step, cc.minRadius, cc.maxRadius)

	if cc.damping {
		cc.pendingAzimuth *= 1 - cc.dampingFactor
		cc.pendingElevation *= 1 - cc.dampingFactor
		cc.pendingZoom *= 1 - cc.dampingFactor
	} else {
		cc.pendingAzimuth, cc.pendingElevation, cc.pendingZoom = 0, 0, 0
	}
	if math32.Abs(cc.pendingAzimuth) <= restEpsilon {
		cc.pendingAzimuth = 0
	}
	if math32.Abs(cc.pendingElevation) <= restEpsilon {
		cc.pendingElevation = 0
	}
	if math32.Abs(cc.pendingZoom) <= restEpsilon {
		cc.pendingZoom = 0
	}
	cc.dirty = false

	return cc.positionAround(target), true
}

func (cc *cameraControllerImpl) Rotate(dAzimuth, dElevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.pendingAzimuth += dAzimuth
	cc.pendingElevation += dElevation
}

func (cc *cameraControllerImpl) Drag(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.pendingAzimuth -= dx * cc.mouseSensitivity
	cc.pendingElevation += dy * cc.mouseSensitivity
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.pendingZoom += delta * cc.zoomSpeed
}

func (cc *cameraControllerImpl) Reset() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.homeSaved {
		return
	}
	cc.radius, cc.azimuth, cc.elevation = cc.home[0], cc.home[1], cc.home[2]
	cc.pendingAzimuth, cc.pendingElevation, cc.pendingZoom = 0, 0, 0
	cc.dirty = true
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) DampingFactor() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.dampingFactor
}

func (cc *cameraControllerImpl) MouseSensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.mouseSensitivity
}

// positionAround converts the spherical coordinates to a world position. Callers must hold mu.
func (cc *cameraControllerImpl) positionAround(target [3]float32) [3]float32 {
	cosElev, sinElev := math32.Cos(cc.elevation), math32.Sin(cc.elevation)
	cosAzim, sinAzim := math32.Cos(cc.azimuth), math32.Sin(cc.azimuth)
	return [3]float32{
		target[0] + cc.radius*cosElev*sinAzim,
		target[1] + cc.radius*sinElev,
		target[2] + cc.radius*cosElev*cosAzim,
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
