package renderer

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/Carmen-Shannon/oxy-gallery/engine/model"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-gallery/engine/scene"
	"github.com/Carmen-Shannon/oxy-gallery/log"
	"github.com/cogentcore/webgpu/wgpu"
)

var logger = log.New("renderer")

// SurfaceSource is the window side the renderer draws into.
type SurfaceSource interface {
	// SurfaceDescriptor returns the platform surface descriptor for WebGPU.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the descriptor
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// FramebufferSize returns the drawable size in physical pixels.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	FramebufferSize() (int, int)
}

// renderer implements the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount

	width, height int     // logical size
	pixelRatio    float32 // device pixel ratio
	surfaceWidth  int     // physical size the surface is configured with
	surfaceHeight int
	surfaceDirty  bool

	environment *common.CubeMap // last uploaded cube map
	meshes      map[model.Model]struct{}
}

// Renderer draws a scene.Scene through the selected GPU backend. Each Render call prepares
// the frame on the CPU from the scene's camera, lights, background and drawable nodes,
// uploads any meshes or cube maps it has not seen, and presents.
type Renderer interface {
	// Render draws one frame of the scene. A zero-sized output skips the frame.
	//
	// Parameters:
	//   - sc: the scene to draw
	//
	// Returns:
	//   - error: error if an upload or the frame submission fails
	Render(sc scene.Scene) error

	// SetOutputSize sets the logical output size and device pixel ratio. The surface is
	// reconfigured at width·ratio by height·ratio before the next frame.
	//
	// Parameters:
	//   - width: logical width
	//   - height: logical height
	//   - pixelRatio: device pixel ratio
	SetOutputSize(width, height int, pixelRatio float32)

	// OutputSize returns the logical output size and pixel ratio last set.
	//
	// Returns:
	//   - int: logical width
	//   - int: logical height
	//   - float32: pixel ratio
	OutputSize() (int, int, float32)

	// SetPresentMode changes how frames are presented; it takes effect on the next surface
	// configuration.
	//
	// Parameters:
	//   - mode: the present mode
	SetPresentMode(mode PresentMode)

	// Release frees the backend's GPU objects.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer drawing into the surface of the given window. It panics if
// the GPU adapter or device cannot be obtained.
//
// Parameters:
//   - backendType: the GPU backend to use
//   - surface: the window providing the surface; may be nil when WithBackend is given
//   - options: functional options applied before the backend is created
//
// Returns:
//   - Renderer: the renderer
func NewRenderer(backendType RendererBackendType, surface SurfaceSource, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		pixelRatio:  1,
		meshes:      make(map[model.Model]struct{}),
	}

	for _, opt := range options {
		opt(r)
	}

	if r.backend == nil {
		msaa := MSAA4x
		if r.pendingMSAA != nil {
			msaa = *r.pendingMSAA
		}
		switch backendType {
		case BackendTypeWGPU:
			fallthrough
		default:
			r.backend = newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
		}
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	if surface != nil {
		w, h := surface.FramebufferSize()
		r.width, r.height = w, h
		r.surfaceWidth, r.surfaceHeight = w, h
		r.surfaceDirty = true
	}
	return r
}

func (r *renderer) Render(sc scene.Scene) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.surfaceWidth <= 0 || r.surfaceHeight <= 0 {
		return nil
	}
	if r.surfaceDirty {
		r.backend.ConfigureSurface(r.surfaceWidth, r.surfaceHeight)
		r.surfaceDirty = false
	}

	frame := buildFrame(sc)
	if frame.Environment != nil && frame.Environment != r.environment {
		if err := r.backend.UploadEnvironment(frame.Environment); err != nil {
			return fmt.Errorf("failed to upload environment: %w", err)
		}
		r.environment = frame.Environment
	}
	for i := range frame.Items {
		m := frame.Items[i].Model
		if _, ok := r.meshes[m]; ok {
			continue
		}
		if err := r.backend.UploadMesh(m); err != nil {
			return fmt.Errorf("failed to upload mesh %q: %w", m.Name(), err)
		}
		r.meshes[m] = struct{}{}
	}

	if err := r.backend.DrawFrame(frame); err != nil {
		return fmt.Errorf("failed to draw frame: %w", err)
	}
	return nil
}

func (r *renderer) SetOutputSize(width, height int, pixelRatio float32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	r.width, r.height, r.pixelRatio = width, height, pixelRatio

	sw := int(float32(width)*pixelRatio + 0.5)
	sh := int(float32(height)*pixelRatio + 0.5)
	if sw == r.surfaceWidth && sh == r.surfaceHeight {
		return
	}
	r.surfaceWidth, r.surfaceHeight = sw, sh
	r.surfaceDirty = true
	logger.Debugf("output size %dx%d @%.2f -> surface %dx%d", width, height, pixelRatio, sw, sh)
}

func (r *renderer) OutputSize() (int, int, float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height, r.pixelRatio
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.SetPresentMode(mode)
	r.surfaceDirty = true
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.Release()
	r.environment = nil
	r.meshes = make(map[model.Model]struct{})
}

// buildFrame prepares the draw list and uniforms for one frame. Only the first enabled point
// light contributes direct lighting.
func buildFrame(sc scene.Scene) *Frame {
	cam := sc.Camera()
	viewProjection := cam.ViewProjectionMatrix()
	eye := cam.Position()

	var lightPosition, lightColor [4]float32
	if points := sc.PointLights(); len(points) > 0 {
		p, c := points[0].Position(), points[0].Color()
		lightPosition = [4]float32{p[0], p[1], p[2], points[0].Intensity()}
		lightColor = [4]float32{c[0], c[1], c[2], 1}
	}
	ambient := sc.Ambient()

	frame := &Frame{
		Environment: sc.Background(),
		Background: GPUBackgroundUniforms{
			InverseViewProjection: cam.InverseViewProjectionMatrix(),
			CameraPosition:        [4]float32{eye[0], eye[1], eye[2], 1},
		},
	}

	drawables := sc.Drawables()
	frame.Items = make([]DrawItem, 0, len(drawables))
	for _, d := range drawables {
		mat := d.Object.Material()
		color := mat.Color()

		u := GPUObjectUniforms{
			ViewProjection: viewProjection,
			Model:          d.World,
			BaseColor:      [4]float32{color[0], color[1], color[2], mat.Opacity()},
			LightPosition:  lightPosition,
			LightColor:     lightColor,
			Ambient:        [4]float32{ambient[0], ambient[1], ambient[2], 0},
			CameraPosition: [4]float32{eye[0], eye[1], eye[2], mat.Reflectivity()},
			Params:         [4]float32{mat.RefractionRatio(), mat.Transmission(), mat.Roughness(), mat.IOR()},
		}
		if mat.EnvMapped() && frame.Environment != nil {
			u.Flags[0] = 1
		}
		u.Flags[2] = shadingFlag(mat.Shading())

		center := common.TransformPoint(d.World[:], [3]float32{})
		dx, dy, dz := center[0]-eye[0], center[1]-eye[1], center[2]-eye[2]
		frame.Items = append(frame.Items, DrawItem{
			NodeID:      d.Object.ID(),
			Model:       d.Object.Model(),
			Uniforms:    u,
			Transparent: mat.Opacity() < 1,
			Depth:       dx*dx + dy*dy + dz*dz,
		})
	}

	sort.SliceStable(frame.Items, func(i, j int) bool {
		a, b := frame.Items[i], frame.Items[j]
		if a.Transparent != b.Transparent {
			return !a.Transparent
		}
		if a.Transparent {
			return a.Depth > b.Depth
		}
		return false
	})
	return frame
}

func shadingFlag(s material.Shading) float32 {
	switch s {
	case material.ShadingPhysical:
		return shadingPhysical
	case material.ShadingUnlit:
		return shadingUnlit
	default:
		return shadingPhong
	}
}
