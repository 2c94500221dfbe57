package viewport

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gallery/engine/camera"
	"github.com/stretchr/testify/assert"
)

type sizeCall struct {
	w, h  int
	ratio float32
}

type fakeOutput struct {
	calls []sizeCall
}

func (f *fakeOutput) SetOutputSize(width, height int, pixelRatio float32) {
	f.calls = append(f.calls, sizeCall{width, height, pixelRatio})
}

func TestResizeScenario(t *testing.T) {
	cam := camera.NewCamera()
	out := &fakeOutput{}
	vp := NewController(cam, WithOutput(out))

	vp.OnResize(800, 600, 1)
	assert.InDelta(t, 1.3333, cam.Aspect(), 1e-4)

	fov, near, far, pos, target := cam.Fov(), cam.Near(), cam.Far(), cam.Position(), cam.Target()
	view := cam.ViewMatrix()

	vp.OnResize(1920, 1080, 2)
	assert.InDelta(t, 1.7778, cam.Aspect(), 1e-4)
	assert.Equal(t, fov, cam.Fov())
	assert.Equal(t, near, cam.Near())
	assert.Equal(t, far, cam.Far())
	assert.Equal(t, pos, cam.Position())
	assert.Equal(t, target, cam.Target())
	assert.Equal(t, view, cam.ViewMatrix())

	assert.Equal(t, []sizeCall{{800, 600, 1}, {1920, 1080, 2}}, out.calls)
}

func TestResizeIsIdempotent(t *testing.T) {
	cam := camera.NewCamera()
	out := &fakeOutput{}
	vp := NewController(cam, WithOutput(out))

	vp.OnResize(1024, 768, 1)
	aspect := cam.Aspect()
	vp.OnResize(1024, 768, 1)

	assert.Len(t, out.calls, 1)
	assert.Equal(t, aspect, cam.Aspect())

	vp.OnResize(1024, 768, 2)
	assert.Len(t, out.calls, 2)
}

func TestZeroSizeKeepsAspect(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero height", 800, 0},
		{"zero width", 0, 600},
		{"minimized", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := camera.NewCamera()
			out := &fakeOutput{}
			vp := NewController(cam, WithOutput(out))
			vp.OnResize(800, 600, 1)

			vp.OnResize(tt.w, tt.h, 1)
			assert.InDelta(t, 800.0/600.0, cam.Aspect(), 1e-6)
			w, h, _ := vp.Size()
			assert.Equal(t, tt.w, w)
			assert.Equal(t, tt.h, h)
			assert.Len(t, out.calls, 2)

			vp.OnResize(800, 600, 1)
			assert.Len(t, out.calls, 3)
		})
	}
}

func TestSetOutputPushesCurrentSize(t *testing.T) {
	vp := NewController(camera.NewCamera())
	vp.OnResize(640, 480, 1.5)

	out := &fakeOutput{}
	vp.SetOutput(out)
	assert.Equal(t, []sizeCall{{640, 480, 1.5}}, out.calls)
}

func TestNonPositiveRatioDefaultsToOne(t *testing.T) {
	out := &fakeOutput{}
	vp := NewController(camera.NewCamera(), WithOutput(out))
	vp.OnResize(10, 10, 0)
	_, _, r := vp.Size()
	assert.Equal(t, float32(1), r)
}
