package viewport

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-gallery/engine/camera"
	"github.com/Carmen-Shannon/oxy-gallery/log"
)

var logger = log.New("viewport")

// OutputSizer is the part of the renderer the viewport drives.
type OutputSizer interface {
	// SetOutputSize resizes the render target to width*ratio by height*ratio device pixels.
	SetOutputSize(width, height int, pixelRatio float32)
}

// controller is the implementation of the Controller interface.
type controller struct {
	mu *sync.Mutex

	cam    camera.Camera
	output OutputSizer

	width  int
	height int
	ratio  float32
	seen   bool
}

// Controller keeps the camera aspect and the renderer output size in step with the window.
type Controller interface {
	// OnResize applies a new window size. A size identical to the previous one makes no
	// calls. A zero width or height is recorded and forwarded to the renderer but leaves the
	// camera aspect unchanged.
	//
	// Parameters:
	//   - width: the window width in logical pixels
	//   - height: the window height in logical pixels
	//   - pixelRatio: device pixels per logical pixel
	OnResize(width, height int, pixelRatio float32)

	// Size returns the last size applied.
	//
	// Returns:
	//   - int: width
	//   - int: height
	//   - float32: pixel ratio
	Size() (int, int, float32)

	// SetOutput replaces the renderer being resized. The current size is pushed to it.
	//
	// Parameters:
	//   - output: the renderer, nil to detach
	SetOutput(output OutputSizer)
}

var _ Controller = &controller{}

// NewController creates a viewport controller for the given camera.
//
// Parameters:
//   - cam: the camera whose aspect is kept in sync (must not be nil)
//   - options: a variadic list of ControllerBuilderOption functions
//
// Returns:
//   - Controller: the configured controller
func NewController(cam camera.Camera, options ...ControllerBuilderOption) Controller {
	if cam == nil {
		panic("viewport: NewController requires a non-nil Camera")
	}
	c := &controller{
		mu:    &sync.Mutex{},
		cam:   cam,
		ratio: 1,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *controller) OnResize(width, height int, pixelRatio float32) {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}

	c.mu.Lock()
	if c.seen && c.width == width && c.height == height && c.ratio == pixelRatio {
		c.mu.Unlock()
		return
	}
	c.width, c.height, c.ratio, c.seen = width, height, pixelRatio, true
	output := c.output
	c.mu.Unlock()

	if width > 0 && height > 0 {
		c.cam.SetAspect(float32(width) / float32(height))
	} else {
		logger.Debugf("zero-area viewport %dx%d, keeping aspect %.4f", width, height, c.cam.Aspect())
	}
	if output != nil {
		output.SetOutputSize(width, height, pixelRatio)
	}
}

func (c *controller) Size() (int, int, float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height, c.ratio
}

func (c *controller) SetOutput(output OutputSizer) {
	c.mu.Lock()
	c.output = output
	w, h, r, seen := c.width, c.height, c.ratio, c.seen
	c.mu.Unlock()

	if output != nil && seen {
		output.SetOutputSize(w, h, r)
	}
}
