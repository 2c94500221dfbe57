package engine

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-gallery/engine/clock"
	"github.com/Carmen-Shannon/oxy-gallery/engine/profiler"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gallery/engine/scene"
	"github.com/Carmen-Shannon/oxy-gallery/engine/window"
	"github.com/Carmen-Shannon/oxy-gallery/log"
)

var logger = log.New("engine")

// State is the lifecycle state of an Engine.
type State int

const (
	// Uninitialized is the state before the first frame.
	Uninitialized State = iota
	// Running is the state from the first frame on.
	Running
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	default:
		return "uninitialized"
	}
}

// Updater advances the scene to a given animation phase.
type Updater interface {
	// Tick applies the phase to the scene.
	//
	// Parameters:
	//   - phase: the animation phase in radians
	//   - sc: the scene to update
	Tick(phase float64, sc scene.Scene)
}

// FrameRequester paces the frame loop.
type FrameRequester interface {
	// NextFrame blocks until the next frame is due.
	//
	// Parameters:
	//   - ctx: cancels the wait
	//
	// Returns:
	//   - time.Time: the frame timestamp
	//   - bool: false when no further frames will run
	NextFrame(ctx context.Context) (time.Time, bool)
}

// engine is the implementation of the Engine interface.
type engine struct {
	mu *sync.Mutex

	scene     scene.Scene
	updater   Updater
	clock     clock.Clock
	requester FrameRequester
	renderer  renderer.Renderer
	window    window.Window

	profiler         *profiler.Profiler
	profilingEnabled bool
	frameLimit       time.Duration
	tickCallback     func(phase float64)

	posted []func(scene.Scene)
	state  State
	frames uint64

	quitChannel chan struct{}
	quitOnce    sync.Once
}

// Engine owns the frame loop. Each frame drains posted work, runs the tick callback,
// advances the camera controller, applies the updater at the clock's phase and renders.
type Engine interface {
	// Scene returns the scene driven by the engine.
	//
	// Returns:
	//   - scene.Scene: the scene
	Scene() scene.Scene

	// Window returns the window attached with WithWindow, or nil.
	//
	// Returns:
	//   - window.Window: the window
	Window() window.Window

	// Renderer returns the renderer attached with WithRenderer, or nil.
	//
	// Returns:
	//   - renderer.Renderer: the renderer
	Renderer() renderer.Renderer

	// Step runs one frame at the given time. A panic inside the frame is logged, returned
	// as an error and signals quit.
	//
	// Parameters:
	//   - now: the wall-clock time of the frame
	//
	// Returns:
	//   - error: error if rendering failed or the frame panicked
	Step(now time.Time) error

	// Run locks the calling goroutine to its OS thread and steps frames until the frame
	// requester stops, ctx is done or Quit is called. Render errors are logged and the loop
	// continues.
	//
	// Parameters:
	//   - ctx: ends the loop when done
	//
	// Returns:
	//   - error: error if a frame panicked
	Run(ctx context.Context) error

	// Post queues work to run on the frame thread at the start of the next frame.
	// Safe to call from any goroutine.
	//
	// Parameters:
	//   - fn: the work, called with the engine's scene
	Post(fn func(scene.Scene))

	// State returns the lifecycle state.
	//
	// Returns:
	//   - State: the current state
	State() State

	// Frames returns the number of frames stepped.
	//
	// Returns:
	//   - uint64: the frame count
	Frames() uint64

	// Quit signals Run to return after the current frame. Safe to call multiple times.
	Quit()

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine driving sc with updater. Without WithFrameRequester the
// window paces the loop when one is attached, otherwise frames run at 60 per second.
//
// Parameters:
//   - sc: the scene (must not be nil)
//   - updater: the per-frame updater (must not be nil)
//   - options: a variadic list of EngineBuilderOption functions
//
// Returns:
//   - Engine: the configured engine
func NewEngine(sc scene.Scene, updater Updater, options ...EngineBuilderOption) Engine {
	if sc == nil {
		panic("engine: NewEngine requires a non-nil Scene")
	}
	if updater == nil {
		panic("engine: NewEngine requires a non-nil Updater")
	}

	e := &engine{
		mu:          &sync.Mutex{},
		scene:       sc,
		updater:     updater,
		clock:       clock.System{},
		quitChannel: make(chan struct{}),
	}
	for _, opt := range options {
		opt(e)
	}

	if e.requester == nil {
		if e.window != nil {
			e.requester = e.window
		} else {
			e.requester = NewIntervalRequester(time.Second / 60)
		}
	}
	if e.profilingEnabled && e.profiler == nil {
		e.profiler = profiler.NewProfiler()
	}
	return e
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Step(now time.Time) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("frame recovered from panic: %v", r)
			err = fmt.Errorf("frame panicked: %v", r)
			e.signalQuit()
		}
	}()

	e.mu.Lock()
	e.state = Running
	posted := e.posted
	e.posted = nil
	callback := e.tickCallback
	var prof *profiler.Profiler
	if e.profilingEnabled {
		prof = e.profiler
	}
	e.mu.Unlock()

	for _, fn := range posted {
		fn(e.scene)
	}

	phase := clock.PhaseAt(now)
	if callback != nil {
		callback(phase)
	}
	if cam := e.scene.Camera(); cam != nil {
		cam.Update()
	}
	e.updater.Tick(phase, e.scene)

	if e.renderer != nil {
		if err := e.renderer.Render(e.scene); err != nil {
			return fmt.Errorf("failed to render frame: %w", err)
		}
	}

	e.mu.Lock()
	e.frames++
	e.mu.Unlock()

	if prof != nil {
		prof.Tick(now)
	}
	return nil
}

func (e *engine) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-e.quitChannel:
			cancel()
		case <-ctx.Done():
		}
	}()

	logger.Infof("engine running")
	for {
		select {
		case <-e.quitChannel:
			return nil
		default:
		}

		if _, ok := e.requester.NextFrame(ctx); !ok {
			logger.Infof("frame requester stopped after %d frames", e.Frames())
			return nil
		}

		start := time.Now()
		if err := e.Step(e.clock.Now()); err != nil {
			select {
			case <-e.quitChannel:
				return err
			default:
				logger.Errorf("%v", err)
			}
		}

		if e.frameLimit > 0 {
			if remaining := e.frameLimit - time.Since(start); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
}

func (e *engine) Post(fn func(scene.Scene)) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.posted = append(e.posted, fn)
}

func (e *engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *engine) Frames() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frames
}

// Quit signals all engine goroutines to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler()
	}
}

func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}
