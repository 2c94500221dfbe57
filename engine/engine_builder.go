package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-gallery/engine/clock"
	"github.com/Carmen-Shannon/oxy-gallery/engine/profiler"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gallery/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
type EngineBuilderOption func(*engine)

// WithClock replaces the wall clock the phase is read from.
//
// Parameters:
//   - c: the clock
//
// Returns:
//   - EngineBuilderOption: a function that sets the clock
func WithClock(c clock.Clock) EngineBuilderOption {
	return func(e *engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithFrameRequester replaces the frame pacing source.
//
// Parameters:
//   - r: the frame requester
//
// Returns:
//   - EngineBuilderOption: a function that sets the requester
func WithFrameRequester(r FrameRequester) EngineBuilderOption {
	return func(e *engine) {
		e.requester = r
	}
}

// WithRenderer sets the renderer each frame is drawn with.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - EngineBuilderOption: a function that sets the renderer
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithWindow attaches a window. It paces the loop unless WithFrameRequester is also given.
//
// Parameters:
//   - w: the window
//
// Returns:
//   - EngineBuilderOption: a function that sets the window
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithProfiling enables or disables the frame profiler.
//
// Parameters:
//   - enabled: whether to report frame statistics
//
// Returns:
//   - EngineBuilderOption: a function that sets profiling
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler enables profiling with the given profiler.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - EngineBuilderOption: a function that sets the profiler
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
		e.profilingEnabled = p != nil
	}
}

// WithFrameLimit caps the frame rate. Pass 0 to uncap.
//
// Parameters:
//   - fps: the maximum frames per second
//
// Returns:
//   - EngineBuilderOption: a function that sets the frame limit
func WithFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.frameLimit = 0
			return
		}
		e.frameLimit = time.Duration(float64(time.Second) / fps)
	}
}

// WithTickCallback registers a function called each frame after posted work and before
// the updater.
//
// Parameters:
//   - callback: called with the frame's phase
//
// Returns:
//   - EngineBuilderOption: a function that sets the callback
func WithTickCallback(callback func(phase float64)) EngineBuilderOption {
	return func(e *engine) {
		e.tickCallback = callback
	}
}
