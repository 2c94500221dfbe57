package renderer

import (
	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/Carmen-Shannon/oxy-gallery/engine/model"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// DrawItem is one mesh draw prepared on the CPU.
type DrawItem struct {
	// NodeID identifies the scene node; the backend keys per-node uniform buffers by it.
	NodeID uint64
	// Model is the shared mesh, uploaded once per Model value.
	Model model.Model
	// Uniforms is the per-node uniform block for this frame.
	Uniforms GPUObjectUniforms
	// Transparent items are drawn after opaque ones with blending and no depth writes.
	Transparent bool
	// Depth is the squared distance from the camera, used to order transparent items.
	Depth float32
}

// Frame is the complete description of one rendered frame.
type Frame struct {
	// Environment is the cube map sampled by the background and by env-mapped materials.
	// A nil environment skips the background pass and binds a neutral cube.
	Environment *common.CubeMap
	// Background holds the uniforms for the full-screen background pass.
	Background GPUBackgroundUniforms
	// Items are ordered opaque first, then transparent back to front.
	Items []DrawItem
}

// RendererBackend is the GPU side of the Renderer. The Renderer prepares a Frame on the
// CPU and hands it to the backend, so it can be exercised without a GPU.
type RendererBackend interface {
	// ConfigureSurface (re)creates the swapchain, MSAA and depth targets.
	//
	// Parameters:
	//   - width: surface width in physical pixels
	//   - height: surface height in physical pixels
	ConfigureSurface(width, height int)

	// SetPresentMode selects the present mode used by the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the present mode
	SetPresentMode(mode PresentMode)

	// UploadMesh creates the vertex and index buffers for a model. Repeated calls for the
	// same model are no-ops.
	//
	// Parameters:
	//   - m: the model
	//
	// Returns:
	//   - error: error if buffer creation fails
	UploadMesh(m model.Model) error

	// UploadEnvironment replaces the bound cube texture.
	//
	// Parameters:
	//   - cube: the cube map
	//
	// Returns:
	//   - error: error if the faces are unequal or texture creation fails
	UploadEnvironment(cube *common.CubeMap) error

	// DrawFrame records and presents one frame.
	//
	// Parameters:
	//   - frame: the prepared frame
	//
	// Returns:
	//   - error: error if the surface texture cannot be acquired or encoding fails
	DrawFrame(frame *Frame) error

	// Release frees every GPU object owned by the backend.
	Release()
}
