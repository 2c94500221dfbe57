package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/Carmen-Shannon/oxy-gallery/engine/model"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// neutralEnvironment is bound until a real cube map is uploaded.
var neutralEnvironment = common.SolidCubeMap(1, [3]uint8{0x20, 0x20, 0x20})

// meshVertexLayout matches model.GPUVertex: position at location 0, normal at location 1.
var meshVertexLayout = wgpu.VertexBufferLayout{
	ArrayStride: 24,
	StepMode:    wgpu.VertexStepModeVertex,
	Attributes: []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
	},
}

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode
	sampleCount MSAASampleCount

	uniformLayout     *wgpu.BindGroupLayout
	environmentLayout *wgpu.BindGroupLayout

	opaquePipeline      pipeline.Pipeline
	transparentPipeline pipeline.Pipeline
	backgroundPipeline  pipeline.Pipeline

	environment *environmentResources
	background  *uniformResources
	meshes      map[model.Model]*meshResources
	objects     map[uint64]*uniformResources
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) RendererBackend {
	runtime.LockOSThread()
	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: sampleCount,
		meshes:      make(map[model.Model]*meshResources),
		objects:     make(map[uint64]*uniformResources),
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		panic(err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Gallery Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		panic(err)
	}
	w.device = d
	w.queue = d.GetQueue()

	if err := w.createLayouts(); err != nil {
		panic(err)
	}
	if err := w.UploadEnvironment(neutralEnvironment); err != nil {
		panic(err)
	}
	w.background, err = w.newUniformResources("Background", uint64((&GPUBackgroundUniforms{}).Size()))
	if err != nil {
		panic(err)
	}

	w.opaquePipeline = pipeline.NewPipeline("Mesh Opaque", meshShaderSource,
		pipeline.WithVertexLayouts(meshVertexLayout),
	)
	w.transparentPipeline = pipeline.NewPipeline("Mesh Transparent", meshShaderSource,
		pipeline.WithVertexLayouts(meshVertexLayout),
		pipeline.WithDepthWriteEnabled(false),
		pipeline.WithBlendEnabled(true),
	)
	w.backgroundPipeline = pipeline.NewPipeline("Background", backgroundShaderSource,
		pipeline.WithDepthWriteEnabled(false),
		pipeline.WithDepthCompare(wgpu.CompareFunctionAlways),
	)

	return w
}

func (b *wgpuRendererBackendImpl) createLayouts() error {
	var err error
	b.uniformLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Uniform Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type: wgpu.BufferBindingTypeUniform,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create uniform layout: %w", err)
	}

	b.environmentLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Environment Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimensionCube,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create environment layout: %w", err)
	}
	return nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	firstConfigure := b.surfaceFormat == nil
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseTargets()

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1
	size := wgpu.Extent3D{
		Width:              uint32(width),
		Height:             uint32(height),
		DepthOrArrayLayers: 1,
	}

	var err error
	if msaaEnabled {
		// The pass draws into the MSAA texture and resolves into the swapchain view.
		b.msaaTexture, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "MSAA Texture",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			panic(err)
		}
		b.msaaTextureView, err = b.msaaTexture.CreateView(nil)
		if err != nil {
			panic(err)
		}
	}

	// Depth sample count must match the color attachment.
	b.depthTexture, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	b.depthTextureView, err = b.depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    b.msaaTextureView, // nil when MSAA is off; set per frame
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: storeOp,
				ClearValue: wgpu.Color{
					R: 0.125, G: 0.125, B: 0.125, A: 1.0,
				},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}

	if firstConfigure {
		for _, p := range []pipeline.Pipeline{b.backgroundPipeline, b.opaquePipeline, b.transparentPipeline} {
			if err := b.createRenderPipeline(p); err != nil {
				panic(fmt.Errorf("failed to create pipeline %q: %w", p.Key(), err))
			}
		}
	}
	logger.Debugf("surface configured %dx%d (msaa %d)", width, height, count)
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

// createRenderPipeline builds the GPU pipeline for p with group 0 as the uniform layout and
// group 1 as the environment layout. Callers must hold mu.
func (b *wgpuRendererBackendImpl) createRenderPipeline(p pipeline.Pipeline) error {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: p.Key(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: p.Source(),
		},
	})
	if err != nil {
		return err
	}
	defer module.Release()

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.Key(),
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.uniformLayout, b.environmentLayout},
	})
	if err != nil {
		return err
	}

	target := wgpu.ColorTargetState{
		Format:    *b.surfaceFormat,
		WriteMask: wgpu.ColorWriteMaskAll,
	}
	if p.BlendEnabled() {
		target.Blend = p.BlendState()
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.Key() + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: p.VertexEntryPoint(),
			Buffers:    p.VertexLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: p.FragmentEntryPoint(),
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: p.DepthWriteEnabled(),
			DepthCompare:      p.DepthCompare(),
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return err
	}
	p.SetRenderPipeline(created)
	return nil
}

func (b *wgpuRendererBackendImpl) UploadMesh(m model.Model) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.meshes[m]; ok {
		return nil
	}
	if m.VertexCount() == 0 || m.IndexCount() == 0 {
		return fmt.Errorf("mesh %q has no geometry", m.Name())
	}

	res := &meshResources{label: m.Name(), indexCount: uint32(m.IndexCount())}
	vertexData := m.VertexData()
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: m.Name() + " Vertex Buffer",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	b.queue.WriteBuffer(buf, 0, vertexData)
	res.vertexBuffer = buf

	indexData := m.IndexData()
	buf, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: m.Name() + " Index Buffer",
		Size:  uint64(len(indexData)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		res.release()
		return err
	}
	b.queue.WriteBuffer(buf, 0, indexData)
	res.indexBuffer = buf

	b.meshes[m] = res
	return nil
}

func (b *wgpuRendererBackendImpl) UploadEnvironment(cube *common.CubeMap) error {
	if cube == nil {
		return errors.New("cube map is nil")
	}
	for i, face := range cube.Faces {
		if face.Width != cube.Size || face.Height != cube.Size || len(face.Pixels) != int(cube.Size*cube.Size*4) {
			return fmt.Errorf("cube face %d is %dx%d, expected %dx%d", i, face.Width, face.Height, cube.Size, cube.Size)
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	res := &environmentResources{}
	var err error
	res.texture, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     "Environment Cube",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              cube.Size,
			Height:             cube.Size,
			DepthOrArrayLayers: 6,
		},
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return err
	}

	for layer, face := range cube.Faces {
		b.queue.WriteTexture(
			&wgpu.ImageCopyTexture{
				Texture:  res.texture,
				MipLevel: 0,
				Origin:   wgpu.Origin3D{Z: uint32(layer)},
				Aspect:   wgpu.TextureAspectAll,
			},
			face.Pixels,
			&wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  face.Width * 4,
				RowsPerImage: face.Height,
			},
			&wgpu.Extent3D{
				Width:              face.Width,
				Height:             face.Height,
				DepthOrArrayLayers: 1,
			},
		)
	}

	res.view, err = res.texture.CreateView(&wgpu.TextureViewDescriptor{
		Label:           "Environment Cube View",
		Format:          wgpu.TextureFormatRGBA8UnormSrgb,
		Dimension:       wgpu.TextureViewDimensionCube,
		BaseMipLevel:    0,
		MipLevelCount:   1,
		BaseArrayLayer:  0,
		ArrayLayerCount: 6,
		Aspect:          wgpu.TextureAspectAll,
	})
	if err != nil {
		res.release()
		return err
	}

	res.sampler, err = b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Environment Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		res.release()
		return err
	}

	res.bindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Environment Bind Group",
		Layout: b.environmentLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: res.view},
			{Binding: 1, Sampler: res.sampler},
		},
	})
	if err != nil {
		res.release()
		return err
	}

	if b.environment != nil {
		b.environment.release()
	}
	b.environment = res
	return nil
}

// newUniformResources creates a uniform buffer of size bytes and its group 0 bind group.
func (b *wgpuRendererBackendImpl) newUniformResources(label string, size uint64) (*uniformResources, error) {
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Uniform Buffer",
		Size:  size,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label + " Bind Group",
		Layout: b.uniformLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: buf, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		buf.Release()
		return nil, err
	}
	return &uniformResources{buffer: buf, bindGroup: bg}, nil
}

func (b *wgpuRendererBackendImpl) DrawFrame(frame *Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.renderPassDescriptor == nil {
		return errors.New("surface is not configured")
	}

	// Uniform writes are queued ahead of the submit that reads them.
	seen := make(map[uint64]struct{}, len(frame.Items))
	for i := range frame.Items {
		item := &frame.Items[i]
		res, ok := b.objects[item.NodeID]
		if !ok {
			var err error
			res, err = b.newUniformResources(fmt.Sprintf("Node %d", item.NodeID), uint64(item.Uniforms.Size()))
			if err != nil {
				return fmt.Errorf("failed to create uniforms for node %d: %w", item.NodeID, err)
			}
			b.objects[item.NodeID] = res
		}
		b.queue.WriteBuffer(res.buffer, 0, item.Uniforms.Marshal())
		seen[item.NodeID] = struct{}{}
	}
	if frame.Environment != nil {
		b.queue.WriteBuffer(b.background.buffer, 0, frame.Background.Marshal())
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	if b.sampleCount > 1 {
		b.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		b.renderPassDescriptor.ColorAttachments[0].View = view
	}
	pass := encoder.BeginRenderPass(b.renderPassDescriptor)

	if frame.Environment != nil {
		pass.SetPipeline(b.backgroundPipeline.RenderPipeline())
		pass.SetBindGroup(0, b.background.bindGroup, nil)
		pass.SetBindGroup(1, b.environment.bindGroup, nil)
		pass.Draw(3, 1, 0, 0)
	}

	for i := range frame.Items {
		item := &frame.Items[i]
		mesh, ok := b.meshes[item.Model]
		if !ok {
			continue
		}
		p := b.opaquePipeline
		if item.Transparent {
			p = b.transparentPipeline
		}
		pass.SetPipeline(p.RenderPipeline())
		pass.SetBindGroup(0, b.objects[item.NodeID].bindGroup, nil)
		pass.SetBindGroup(1, b.environment.bindGroup, nil)
		pass.SetVertexBuffer(0, mesh.vertexBuffer, 0, wgpu.WholeSize)
		pass.SetIndexBuffer(mesh.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		pass.DrawIndexed(mesh.indexCount, 1, 0, 0, 0)
	}

	pass.End()
	pass.Release()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	b.surface.Present()

	for id, res := range b.objects {
		if _, ok := seen[id]; !ok {
			res.release()
			delete(b.objects, id)
		}
	}
	return nil
}

// releaseTargets frees the size-dependent render targets. Callers must hold mu.
func (b *wgpuRendererBackendImpl) releaseTargets() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for m, res := range b.meshes {
		res.release()
		delete(b.meshes, m)
	}
	for id, res := range b.objects {
		res.release()
		delete(b.objects, id)
	}
	if b.background != nil {
		b.background.release()
	}
	if b.environment != nil {
		b.environment.release()
	}
	for _, p := range []pipeline.Pipeline{b.backgroundPipeline, b.opaquePipeline, b.transparentPipeline} {
		p.Release()
	}
	b.releaseTargets()
	b.renderPassDescriptor = nil
	if b.uniformLayout != nil {
		b.uniformLayout.Release()
	}
	if b.environmentLayout != nil {
		b.environmentLayout.Release()
	}
	b.queue.Release()
	b.device.Release()
	b.adapter.Release()
	b.surface.Release()
	b.instance.Release()
}
