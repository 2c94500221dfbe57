package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/chewxy/math32"
)

// cameraImpl is the implementation of the Camera interface.
type cameraImpl struct {
	mu *sync.Mutex

	up       [3]float32
	position [3]float32
	target   [3]float32

	fov    float32 // degrees
	aspect float32
	near   float32
	far    float32

	viewMatrix                  [16]float32
	projectionMatrix            [16]float32
	viewProjectionMatrix        [16]float32
	inverseViewProjectionMatrix [16]float32

	controller CameraController
}

// Camera is a perspective camera. Its orientation is never stored directly: it is
// always derived by looking from Position toward Target, so whoever owns the target
// owns the orientation. An attached CameraController only ever writes the position.
type Camera interface {
	// Fov retrieves the vertical field of view.
	//
	// Returns:
	//   - float32: the field of view in degrees
	Fov() float32

	// Aspect retrieves the viewport aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near retrieves the near clipping plane distance.
	//
	// Returns:
	//   - float32: the near plane distance
	Near() float32

	// Far retrieves the far clipping plane distance.
	//
	// Returns:
	//   - float32: the far plane distance
	Far() float32

	// Up retrieves the world up vector used to orient the view.
	//
	// Returns:
	//   - [3]float32: the up vector
	Up() [3]float32

	// Position retrieves the camera position in world space.
	//
	// Returns:
	//   - [3]float32: the position
	Position() [3]float32

	// Target retrieves the world-space point the camera is aimed at.
	//
	// Returns:
	//   - [3]float32: the look-at target
	Target() [3]float32

	// ViewMatrix retrieves the world-to-view matrix (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix retrieves the perspective projection matrix (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix retrieves projection * view.
	//
	// Returns:
	//   - [16]float32: the combined matrix
	ViewProjectionMatrix() [16]float32

	// InverseViewProjectionMatrix retrieves the inverse of projection * view, used to
	// reconstruct world-space view rays for the background pass.
	//
	// Returns:
	//   - [16]float32: the inverse matrix
	InverseViewProjectionMatrix() [16]float32

	// Controller retrieves the attached interactive controller, or nil.
	//
	// Returns:
	//   - CameraController: the controller
	Controller() CameraController

	// SetAspect sets the aspect ratio and recomputes the projection. No other field changes.
	//
	// Parameters:
	//   - aspect: width / height
	SetAspect(aspect float32)

	// SetFov sets the vertical field of view.
	//
	// Parameters:
	//   - fov: field of view in degrees
	SetFov(fov float32)

	// SetPosition moves the camera without changing its target.
	//
	// Parameters:
	//   - position: the new world-space position
	SetPosition(position [3]float32)

	// LookAt aims the camera at a world-space point.
	//
	// Parameters:
	//   - target: the point to look at
	LookAt(target [3]float32)

	// SetController attaches an interactive controller and seeds it from the current
	// position and target.
	//
	// Parameters:
	//   - ctrl: the controller, or nil to detach
	SetController(ctrl CameraController)

	// Update steps the attached controller, if any, and applies the position it produces.
	Update()
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with the given options applied.
// Defaults are a 50 degree field of view, aspect 1, near 1, far 1000, positioned at
// (0, 0, -30) and aimed at the origin.
//
// Parameters:
//   - options: a variadic list of CameraBuilderOption functions
//
// Returns:
//   - Camera: the configured camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:       &sync.Mutex{},
		up:       [3]float32{0, 1, 0},
		position: [3]float32{0, 0, -30},
		fov:      50,
		aspect:   1,
		near:     1,
		far:      1000,
	}
	for _, option := range options {
		option(c)
	}
	if c.controller != nil {
		c.controller.Sync(c.position, c.target)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Up() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Position() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Target() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) InverseViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inverseViewProjectionMatrix
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetPosition(position [3]float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
	c.updateMatrices()
}

func (c *cameraImpl) LookAt(target [3]float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = target
	c.updateMatrices()
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
	if ctrl != nil {
		ctrl.Sync(c.position, c.target)
	}
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return
	}
	if pos, moved := c.controller.Update(c.target); moved {
		c.position = pos
		c.updateMatrices()
	}
}

// updateMatrices recomputes every derived matrix. Callers must hold mu.
func (c *cameraImpl) updateMatrices() {
	common.LookAt(c.viewMatrix[:], c.position, c.target, c.up)
	common.Perspective(c.projectionMatrix[:], c.fov*math32.Pi/180, c.aspect, c.near, c.far)
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])

	// The background pass only needs view rays, so translation is dropped before inverting.
	var rotView, rotViewProj [16]float32
	rotView = c.viewMatrix
	rotView[12], rotView[13], rotView[14] = 0, 0, 0
	common.Mul4(rotViewProj[:], c.projectionMatrix[:], rotView[:])
	common.Invert4(c.inverseViewProjectionMatrix[:], rotViewProj[:])
}
