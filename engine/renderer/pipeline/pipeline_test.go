package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("mesh", "// wgsl")

	assert.Equal(t, "mesh", p.Key())
	assert.Equal(t, "// wgsl", p.Source())
	assert.Equal(t, "vs_main", p.VertexEntryPoint())
	assert.Equal(t, "fs_main", p.FragmentEntryPoint())
	assert.True(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.CompareFunctionLess, p.DepthCompare())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.False(t, p.BlendEnabled())
	assert.NotNil(t, p.BlendState())
	assert.Nil(t, p.RenderPipeline())
	assert.Empty(t, p.VertexLayouts())
}

func TestPipelineOptions(t *testing.T) {
	layout := wgpu.VertexBufferLayout{ArrayStride: 24, StepMode: wgpu.VertexStepModeVertex}
	p := NewPipeline("background", "",
		WithEntryPoints("vs_sky", "fs_sky"),
		WithVertexLayouts(layout),
		WithDepthWriteEnabled(false),
		WithDepthCompare(wgpu.CompareFunctionAlways),
		WithCullMode(wgpu.CullModeBack),
		WithFrontFace(wgpu.FrontFaceCW),
		WithBlendEnabled(true),
	)

	assert.Equal(t, "vs_sky", p.VertexEntryPoint())
	assert.Equal(t, "fs_sky", p.FragmentEntryPoint())
	assert.Len(t, p.VertexLayouts(), 1)
	assert.False(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.CompareFunctionAlways, p.DepthCompare())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	assert.Equal(t, wgpu.FrontFaceCW, p.FrontFace())
	assert.True(t, p.BlendEnabled())
}

func TestReleaseWithoutPipeline(t *testing.T) {
	p := NewPipeline("mesh", "")
	assert.NotPanics(t, p.Release)
}
