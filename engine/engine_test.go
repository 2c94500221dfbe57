package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-gallery/engine/camera"
	"github.com/Carmen-Shannon/oxy-gallery/engine/clock"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gallery/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls []string
}

type fakeUpdater struct {
	rec    *recorder
	phases []float64
	onTick func()
}

func (u *fakeUpdater) Tick(phase float64, sc scene.Scene) {
	u.rec.calls = append(u.rec.calls, "tick")
	u.phases = append(u.phases, phase)
	if u.onTick != nil {
		u.onTick()
	}
}

type fakeRenderer struct {
	rec *recorder
	err error
}

func (r *fakeRenderer) Render(sc scene.Scene) error {
	r.rec.calls = append(r.rec.calls, "render")
	return r.err
}
func (r *fakeRenderer) SetOutputSize(width, height int, pixelRatio float32) {}
func (r *fakeRenderer) OutputSize() (int, int, float32)                     { return 0, 0, 1 }
func (r *fakeRenderer) SetPresentMode(mode renderer.PresentMode)            {}
func (r *fakeRenderer) Release()                                            {}

func newTestScene() scene.Scene {
	return scene.NewScene("test", camera.NewCamera())
}

func TestNewEnginePanicsWithoutScene(t *testing.T) {
	assert.Panics(t, func() { NewEngine(nil, &fakeUpdater{rec: &recorder{}}) })
	assert.Panics(t, func() { NewEngine(newTestScene(), nil) })
}

func TestStepOrdering(t *testing.T) {
	rec := &recorder{}
	e := NewEngine(newTestScene(), &fakeUpdater{rec: rec},
		WithRenderer(&fakeRenderer{rec: rec}),
		WithTickCallback(func(float64) { rec.calls = append(rec.calls, "callback") }),
	)

	e.Post(func(scene.Scene) { rec.calls = append(rec.calls, "posted") })
	require.NoError(t, e.Step(time.UnixMilli(0)))
	assert.Equal(t, []string{"posted", "callback", "tick", "render"}, rec.calls)

	// Posted work runs once.
	rec.calls = nil
	require.NoError(t, e.Step(time.UnixMilli(16)))
	assert.Equal(t, []string{"callback", "tick", "render"}, rec.calls)
}

func TestStepPassesClockPhase(t *testing.T) {
	u := &fakeUpdater{rec: &recorder{}}
	e := NewEngine(newTestScene(), u)

	require.NoError(t, e.Step(time.UnixMilli(1000)))
	require.NoError(t, e.Step(time.UnixMilli(2000)))
	require.Len(t, u.phases, 2)
	assert.InDelta(t, -0.2, u.phases[0], 1e-9)
	assert.InDelta(t, -0.4, u.phases[1], 1e-9)
}

func TestStepWrapsRenderError(t *testing.T) {
	rec := &recorder{}
	boom := errors.New("surface lost")
	e := NewEngine(newTestScene(), &fakeUpdater{rec: rec}, WithRenderer(&fakeRenderer{rec: rec, err: boom}))

	err := e.Step(time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, e.Frames())
}

func TestStepRecoversPanic(t *testing.T) {
	u := &fakeUpdater{rec: &recorder{}, onTick: func() { panic("bad frame") }}
	e := NewEngine(newTestScene(), u)

	var err error
	assert.NotPanics(t, func() { err = e.Step(time.Now()) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad frame")

	// The panic signalled quit, so Run returns at once.
	assert.NoError(t, e.Run(context.Background()))
}

func TestStateTransitions(t *testing.T) {
	e := NewEngine(newTestScene(), &fakeUpdater{rec: &recorder{}})
	assert.Equal(t, Uninitialized, e.State())
	assert.Equal(t, "uninitialized", e.State().String())

	require.NoError(t, e.Step(time.Now()))
	assert.Equal(t, Running, e.State())
	assert.Equal(t, "running", e.State().String())
}

func TestRunWithCountedRequester(t *testing.T) {
	rec := &recorder{}
	u := &fakeUpdater{rec: rec}
	mc := clock.NewManual(time.UnixMilli(5000))
	e := NewEngine(newTestScene(), u,
		WithClock(mc),
		WithRenderer(&fakeRenderer{rec: rec}),
		WithFrameRequester(NewCountedRequester(3, nil)),
	)

	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, uint64(3), e.Frames())
	assert.Len(t, u.phases, 3)
	for _, p := range u.phases {
		assert.InDelta(t, -1.0, p, 1e-9)
	}
	assert.Equal(t, Running, e.State())
}

func TestRunStopsOnQuit(t *testing.T) {
	var e Engine
	u := &fakeUpdater{rec: &recorder{}}
	u.onTick = func() {
		if len(u.phases) == 2 {
			e.Quit()
		}
	}
	e = NewEngine(newTestScene(), u, WithFrameRequester(NewIntervalRequester(0)))

	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, uint64(2), e.Frames())

	// Quit is idempotent.
	assert.NotPanics(t, e.Quit)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	u := &fakeUpdater{rec: &recorder{}}
	u.onTick = func() { cancel() }
	e := NewEngine(newTestScene(), u, WithFrameRequester(NewIntervalRequester(time.Millisecond)))

	require.NoError(t, e.Run(ctx))
	assert.Equal(t, uint64(1), e.Frames())
}

func TestPostFromOtherGoroutine(t *testing.T) {
	e := NewEngine(newTestScene(), &fakeUpdater{rec: &recorder{}})
	done := make(chan struct{})
	go func() {
		e.Post(func(sc scene.Scene) { sc.SetCamera(camera.NewCamera(camera.WithFov(30))) })
		close(done)
	}()
	<-done

	require.NoError(t, e.Step(time.Now()))
	assert.InDelta(t, 30, e.Scene().Camera().Fov(), 1e-6)
}

func TestWithFrameLimit(t *testing.T) {
	e := NewEngine(newTestScene(), &fakeUpdater{rec: &recorder{}}, WithFrameLimit(50)).(*engine)
	assert.Equal(t, 20*time.Millisecond, e.frameLimit)

	e = NewEngine(newTestScene(), &fakeUpdater{rec: &recorder{}}, WithFrameLimit(0)).(*engine)
	assert.Zero(t, e.frameLimit)
}

type countingRequester struct {
	calls int
}

func (r *countingRequester) NextFrame(ctx context.Context) (time.Time, bool) {
	r.calls++
	return time.Now(), true
}

func TestCountedRequesterDelegates(t *testing.T) {
	inner := &countingRequester{}
	r := NewCountedRequester(2, inner)

	_, ok := r.NextFrame(context.Background())
	assert.True(t, ok)
	_, ok = r.NextFrame(context.Background())
	assert.True(t, ok)
	_, ok = r.NextFrame(context.Background())
	assert.False(t, ok)
	assert.Equal(t, 2, inner.calls)
}

func TestIntervalRequesterStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok := NewIntervalRequester(time.Hour).NextFrame(ctx)
	assert.False(t, ok)
	_, ok = NewIntervalRequester(0).NextFrame(ctx)
	assert.False(t, ok)
}
