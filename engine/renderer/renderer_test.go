package renderer

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/Carmen-Shannon/oxy-gallery/engine/camera"
	"github.com/Carmen-Shannon/oxy-gallery/engine/game_object"
	"github.com/Carmen-Shannon/oxy-gallery/engine/light"
	"github.com/Carmen-Shannon/oxy-gallery/engine/model"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-gallery/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	configured   [][2]int
	presentModes []PresentMode
	meshUploads  map[model.Model]int
	envUploads   []*common.CubeMap
	frames       []*Frame
	drawErr      error
	released     bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{meshUploads: make(map[model.Model]int)}
}

func (f *fakeBackend) ConfigureSurface(width, height int) {
	f.configured = append(f.configured, [2]int{width, height})
}

func (f *fakeBackend) SetPresentMode(mode PresentMode) {
	f.presentModes = append(f.presentModes, mode)
}

func (f *fakeBackend) UploadMesh(m model.Model) error {
	f.meshUploads[m]++
	return nil
}

func (f *fakeBackend) UploadEnvironment(cube *common.CubeMap) error {
	f.envUploads = append(f.envUploads, cube)
	return nil
}

func (f *fakeBackend) DrawFrame(frame *Frame) error {
	f.frames = append(f.frames, frame)
	return f.drawErr
}

func (f *fakeBackend) Release() {
	f.released = true
}

func newTestRenderer(backend RendererBackend) Renderer {
	r := NewRenderer(BackendTypeWGPU, nil, WithBackend(backend))
	r.SetOutputSize(800, 600, 1)
	return r
}

func newTestScene() scene.Scene {
	cam := camera.NewCamera(camera.WithViewport(800, 600))
	sc := scene.NewScene("test", cam, scene.WithBackground(common.SolidCubeMap(2, [3]uint8{10, 20, 30})))
	sc.AddLight(light.NewLight(light.LightTypeAmbient, light.WithHexColor(0x222222)), nil)
	sc.AddLight(light.NewLight(light.LightTypePoint, light.WithPosition(100, 0, 0), light.WithIntensity(2)), nil)
	return sc
}

func TestRenderSkipsZeroSize(t *testing.T) {
	backend := newFakeBackend()
	r := NewRenderer(BackendTypeWGPU, nil, WithBackend(backend))

	require.NoError(t, r.Render(newTestScene()))
	assert.Empty(t, backend.frames)
	assert.Empty(t, backend.configured)
}

func TestSetOutputSizeConfiguresPhysicalPixelsOnce(t *testing.T) {
	backend := newFakeBackend()
	r := NewRenderer(BackendTypeWGPU, nil, WithBackend(backend))
	sc := newTestScene()

	r.SetOutputSize(800, 600, 2)
	require.NoError(t, r.Render(sc))
	r.SetOutputSize(800, 600, 2)
	require.NoError(t, r.Render(sc))

	assert.Equal(t, [][2]int{{1600, 1200}}, backend.configured)
	w, h, ratio := r.OutputSize()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
	assert.Equal(t, float32(2), ratio)
}

func TestSetOutputSizeDefaultsRatio(t *testing.T) {
	r := newTestRenderer(newFakeBackend())
	r.SetOutputSize(640, 480, 0)
	_, _, ratio := r.OutputSize()
	assert.Equal(t, float32(1), ratio)
}

func TestRenderUploadsSharedMeshAndEnvironment(t *testing.T) {
	backend := newFakeBackend()
	r := newTestRenderer(backend)
	sc := newTestScene()

	cone := model.NewCone(5, 10, 8, 1)
	mat := material.NewMaterial("shared")
	for i := 0; i < 3; i++ {
		sc.Add(game_object.NewGameObject(game_object.WithModel(cone), game_object.WithMaterial(mat)))
	}

	require.NoError(t, r.Render(sc))
	require.NoError(t, r.Render(sc))

	assert.Equal(t, 1, backend.meshUploads[cone])
	require.Len(t, backend.envUploads, 1)
	assert.Same(t, sc.Background(), backend.envUploads[0])
	require.Len(t, backend.frames, 2)
	assert.Len(t, backend.frames[0].Items, 3)
}

func TestBuildFrameUniforms(t *testing.T) {
	sc := newTestScene()
	mat := material.NewMaterial("diamond",
		material.WithHexColor(0xff0000),
		material.WithRefractionRatio(0.9),
		material.WithReflectivity(0.5),
	)
	node := game_object.NewGameObject(
		game_object.WithModel(model.NewCone(5, 10, 8, 1)),
		game_object.WithMaterial(mat),
		game_object.WithPosition(-15, 7, 0),
	)
	sc.Add(node)

	frame := buildFrame(sc)
	require.Len(t, frame.Items, 1)
	item := frame.Items[0]
	u := item.Uniforms

	assert.Equal(t, node.ID(), item.NodeID)
	assert.Equal(t, sc.Camera().ViewProjectionMatrix(), u.ViewProjection)
	assert.Equal(t, float32(-15), u.Model[12])
	assert.Equal(t, float32(7), u.Model[13])
	assert.Equal(t, [4]float32{1, 0, 0, 1}, u.BaseColor)
	assert.Equal(t, [4]float32{100, 0, 0, 2}, u.LightPosition)
	assert.Equal(t, float32(1), u.LightColor[3])
	assert.InDelta(t, 0x22/255.0, u.Ambient[0], 1e-6)
	assert.Equal(t, float32(0.5), u.CameraPosition[3])
	assert.InDelta(t, 0.9, u.Params[0], 1e-6)
	assert.Equal(t, float32(1), u.Flags[0])
	assert.Equal(t, shadingPhong, u.Flags[2])
	assert.False(t, item.Transparent)
}

func TestBuildFrameWithoutBackgroundDisablesEnvMapping(t *testing.T) {
	cam := camera.NewCamera(camera.WithViewport(800, 600))
	sc := scene.NewScene("bare", cam)
	sc.Add(game_object.NewGameObject(
		game_object.WithModel(model.NewSphere(1, 8, 6)),
		game_object.WithMaterial(material.NewMaterial("marker", material.WithShading(material.ShadingUnlit))),
	))

	frame := buildFrame(sc)
	require.Len(t, frame.Items, 1)
	assert.Nil(t, frame.Environment)
	assert.Equal(t, float32(0), frame.Items[0].Uniforms.Flags[0])
	assert.Equal(t, shadingUnlit, frame.Items[0].Uniforms.Flags[2])
	assert.Equal(t, [4]float32{}, frame.Items[0].Uniforms.LightColor)
}

func TestBuildFrameOrdersTransparentBackToFront(t *testing.T) {
	sc := newTestScene()
	cone := model.NewCone(1, 1, 4, 1)
	glass := material.NewMaterial("glass", material.WithOpacity(0.5))
	solid := material.NewMaterial("solid")

	near := game_object.NewGameObject(game_object.WithName("near"), game_object.WithModel(cone), game_object.WithMaterial(glass), game_object.WithPosition(0, 0, -20))
	far := game_object.NewGameObject(game_object.WithName("far"), game_object.WithModel(cone), game_object.WithMaterial(glass), game_object.WithPosition(0, 0, 20))
	opaque := game_object.NewGameObject(game_object.WithName("opaque"), game_object.WithModel(cone), game_object.WithMaterial(solid))
	sc.Add(near, far, opaque)

	frame := buildFrame(sc)
	require.Len(t, frame.Items, 3)
	assert.Equal(t, opaque.ID(), frame.Items[0].NodeID)
	assert.Equal(t, far.ID(), frame.Items[1].NodeID)
	assert.Equal(t, near.ID(), frame.Items[2].NodeID)
	assert.True(t, frame.Items[1].Transparent)
}

func TestRenderPicksUpMaterialEdits(t *testing.T) {
	backend := newFakeBackend()
	r := newTestRenderer(backend)
	sc := newTestScene()
	mat := material.NewMaterial("diamond")
	sc.Add(game_object.NewGameObject(game_object.WithModel(model.NewCone(1, 1, 4, 1)), game_object.WithMaterial(mat)))

	require.NoError(t, r.Render(sc))
	require.NoError(t, mat.Set(material.ParamReflectivity, 0.25))
	require.NoError(t, r.Render(sc))

	assert.Equal(t, float32(1), backend.frames[0].Items[0].Uniforms.CameraPosition[3])
	assert.Equal(t, float32(0.25), backend.frames[1].Items[0].Uniforms.CameraPosition[3])
}

func TestRenderWrapsDrawError(t *testing.T) {
	backend := newFakeBackend()
	backend.drawErr = errors.New("surface lost")
	r := newTestRenderer(backend)

	err := r.Render(newTestScene())
	require.Error(t, err)
	assert.ErrorIs(t, err, backend.drawErr)
}

func TestPresentModeAndRelease(t *testing.T) {
	backend := newFakeBackend()
	r := NewRenderer(BackendTypeWGPU, nil, WithBackend(backend), WithPresentMode(PresentModeUncapped))
	r.SetPresentMode(PresentModeVSync)
	r.Release()

	assert.Equal(t, []PresentMode{PresentModeUncapped, PresentModeVSync}, backend.presentModes)
	assert.True(t, backend.released)
}

func TestObjectUniformsLayout(t *testing.T) {
	u := GPUObjectUniforms{}
	u.BaseColor = [4]float32{0.25, 0.5, 0.75, 1}
	u.Flags[2] = shadingPhysical

	buf := u.Marshal()
	require.Len(t, buf, 240)
	assert.Equal(t, 240, u.Size())
	assert.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[132:136])))
	assert.Equal(t, shadingPhysical, math.Float32frombits(binary.LittleEndian.Uint32(buf[232:236])))

	bg := GPUBackgroundUniforms{CameraPosition: [4]float32{1, 2, 3, 1}}
	bgBuf := bg.Marshal()
	require.Len(t, bgBuf, 80)
	assert.Equal(t, float32(3), math.Float32frombits(binary.LittleEndian.Uint32(bgBuf[72:76])))
}
