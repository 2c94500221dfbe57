package window

import (
	"context"
	"fmt"
	"time"

	"github.com/Carmen-Shannon/oxy-gallery/log"
	"github.com/cogentcore/webgpu/wgpu"
)

var logger = log.New("window")

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving the logical width and height and the device pixel ratio
	SetResizeCallback(callback func(width, height int, pixelRatio float32))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in, negative = down/zoom out)
	SetScrollCallback(callback func(delta float32))

	// SetDragCallback sets the callback for cursor motion while the left button is held.
	//
	// Parameters:
	//   - callback: function receiving the cursor delta in screen coordinates
	SetDragCallback(callback func(dx, dy float32))

	// SetKeyDownCallback sets the callback for key press events. Escape is handled by the
	// window and closes it.
	//
	// Parameters:
	//   - callback: function receiving the key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// NextFrame polls pending events and reports whether another frame should run.
	//
	// Parameters:
	//   - ctx: cancels the loop when done
	//
	// Returns:
	//   - time.Time: the frame timestamp
	//   - bool: false once the window closed or ctx is done
	NextFrame(ctx context.Context) (time.Time, bool)

	// IsRunning reports whether the window is still open.
	//
	// Returns:
	//   - bool: true while the window is open
	IsRunning() bool

	// Close destroys the window.
	//
	// Returns:
	//   - error: error if the window is not initialized
	Close() error

	// Size returns the logical window size.
	//
	// Returns:
	//   - int: width in screen coordinates
	//   - int: height in screen coordinates
	Size() (int, int)

	// FramebufferSize returns the drawable size in physical pixels.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	FramebufferSize() (int, int)

	// PixelRatio returns framebuffer pixels per screen coordinate.
	//
	// Returns:
	//   - float32: the ratio, 1 when unknown
	PixelRatio() float32
}

type engineWindow struct {
	title string

	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	// width and height are the logical client size.
	width  int
	height int

	fbWidth  int
	fbHeight int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	drag dragTracker

	onResize  func(width, height int, pixelRatio float32)
	onScroll  func(delta float32)
	onDrag    func(dx, dy float32)
	onKeyDown func(keyCode uint32)
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:     "oxy-gallery",
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  320,
		minHeight: 240,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	logger.Infof("window %q %dx%d (framebuffer %dx%d)", w.title, w.width, w.height, w.fbWidth, w.fbHeight)
	return w
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int, pixelRatio float32)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetDragCallback(callback func(dx, dy float32)) {
	w.onDrag = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) NextFrame(ctx context.Context) (time.Time, bool) {
	if ctx.Err() != nil {
		return time.Time{}, false
	}
	if !platformProcessMessages(w) {
		return time.Time{}, false
	}
	return time.Now(), true
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) Size() (int, int) {
	return w.width, w.height
}

func (w *engineWindow) FramebufferSize() (int, int) {
	return w.fbWidth, w.fbHeight
}

func (w *engineWindow) PixelRatio() float32 {
	return pixelRatio(w.fbWidth, w.width)
}

// resized records new sizes and forwards them to the resize callback.
func (w *engineWindow) resized(width, height, fbWidth, fbHeight int) {
	w.width, w.height = width, height
	w.fbWidth, w.fbHeight = fbWidth, fbHeight
	if w.onResize != nil {
		w.onResize(width, height, pixelRatio(fbWidth, width))
	}
}
