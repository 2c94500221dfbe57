package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline implements the Pipeline interface.
type pipeline struct {
	key    string
	source string

	vertexEntryPoint   string
	fragmentEntryPoint string
	vertexLayouts      []wgpu.VertexBufferLayout

	depthWriteEnabled bool
	depthCompare      wgpu.CompareFunction
	cullMode          wgpu.CullMode
	frontFace         wgpu.FrontFace
	blendEnabled      bool
	blendState        *wgpu.BlendState

	renderPipeline *wgpu.RenderPipeline
}

// Pipeline describes a render pipeline built from a single WGSL module. The backend reads
// the state to create the GPU pipeline and stores the result back with SetRenderPipeline.
type Pipeline interface {
	// Key returns the label used for the pipeline and its GPU objects.
	//
	// Returns:
	//   - string: the pipeline key
	Key() string

	// Source returns the WGSL source holding both entry points.
	//
	// Returns:
	//   - string: the shader source
	Source() string

	// VertexEntryPoint returns the name of the vertex stage function.
	//
	// Returns:
	//   - string: the entry point
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the fragment stage function.
	//
	// Returns:
	//   - string: the entry point
	FragmentEntryPoint() string

	// VertexLayouts returns the vertex buffer layouts, empty for full-screen passes.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the layouts
	VertexLayouts() []wgpu.VertexBufferLayout

	// DepthWriteEnabled reports whether fragments write depth.
	//
	// Returns:
	//   - bool: true when depth writes are on
	DepthWriteEnabled() bool

	// DepthCompare returns the depth test function.
	//
	// Returns:
	//   - wgpu.CompareFunction: the compare function
	DepthCompare() wgpu.CompareFunction

	// CullMode returns the face culling mode.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode
	CullMode() wgpu.CullMode

	// FrontFace returns the front face winding.
	//
	// Returns:
	//   - wgpu.FrontFace: the winding
	FrontFace() wgpu.FrontFace

	// BlendEnabled reports whether alpha blending is applied to the color target.
	//
	// Returns:
	//   - bool: true when blending is on
	BlendEnabled() bool

	// BlendState returns the blend state used when blending is enabled.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state
	BlendState() *wgpu.BlendState

	// RenderPipeline returns the created GPU pipeline, or nil before creation.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the GPU pipeline
	RenderPipeline() *wgpu.RenderPipeline

	// SetRenderPipeline stores the created GPU pipeline.
	//
	// Parameters:
	//   - p: the GPU pipeline
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// Release frees the GPU pipeline if one was created.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a pipeline description with depth testing, depth writes, no culling,
// CCW front faces and blending off. The entry points default to vs_main and fs_main.
//
// Parameters:
//   - key: the pipeline label
//   - source: the WGSL source
//   - opts: functional options applied after the defaults
//
// Returns:
//   - Pipeline: the pipeline description
func NewPipeline(key, source string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		key:                key,
		source:             source,
		vertexEntryPoint:   "vs_main",
		fragmentEntryPoint: "fs_main",
		depthWriteEnabled:  true,
		depthCompare:       wgpu.CompareFunctionLess,
		cullMode:           wgpu.CullModeNone,
		frontFace:          wgpu.FrontFaceCCW,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) Key() string {
	return p.key
}

func (p *pipeline) Source() string {
	return p.source
}

func (p *pipeline) VertexEntryPoint() string {
	return p.vertexEntryPoint
}

func (p *pipeline) FragmentEntryPoint() string {
	return p.fragmentEntryPoint
}

func (p *pipeline) VertexLayouts() []wgpu.VertexBufferLayout {
	return p.vertexLayouts
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) DepthCompare() wgpu.CompareFunction {
	return p.depthCompare
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
