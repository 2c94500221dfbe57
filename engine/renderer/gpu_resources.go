package renderer

import "github.com/cogentcore/webgpu/wgpu"

// meshResources holds the GPU buffers of one shared Model.
type meshResources struct {
	label        string
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   uint32
}

func (m *meshResources) release() {
	if m.vertexBuffer != nil {
		m.vertexBuffer.Release()
		m.vertexBuffer = nil
	}
	if m.indexBuffer != nil {
		m.indexBuffer.Release()
		m.indexBuffer = nil
	}
}

// uniformResources is a uniform buffer and the group 0 bind group that exposes it. One is
// kept per drawn node and one for the background pass.
type uniformResources struct {
	buffer    *wgpu.Buffer
	bindGroup *wgpu.BindGroup
}

func (u *uniformResources) release() {
	if u.bindGroup != nil {
		u.bindGroup.Release()
		u.bindGroup = nil
	}
	if u.buffer != nil {
		u.buffer.Release()
		u.buffer = nil
	}
}

// environmentResources is the cube texture bound at group 1.
type environmentResources struct {
	texture   *wgpu.Texture
	view      *wgpu.TextureView
	sampler   *wgpu.Sampler
	bindGroup *wgpu.BindGroup
}

func (e *environmentResources) release() {
	if e.bindGroup != nil {
		e.bindGroup.Release()
		e.bindGroup = nil
	}
	if e.sampler != nil {
		e.sampler.Release()
		e.sampler = nil
	}
	if e.view != nil {
		e.view.Release()
		e.view = nil
	}
	if e.texture != nil {
		e.texture.Release()
		e.texture = nil
	}
}
