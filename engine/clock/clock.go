// Package clock derives the animation phase from wall-clock time.
package clock

import (
	"sync"
	"time"
)

// PhaseRate is the negative scale applied to wall-clock milliseconds to produce the phase.
const PhaseRate = -0.0002

// Clock is a source of wall-clock time. The engine reads it once per frame.
type Clock interface {
	// Now returns the current wall-clock time.
	//
	// Returns:
	//   - time.Time: the current time
	Now() time.Time
}

// Phase converts milliseconds since the Unix epoch into the animation phase in radians.
// It is a pure function: the phase strictly decreases as time advances and is never
// wrapped, so trigonometric consumers see it modulo 2π on their own.
//
// Parameters:
//   - nowMillis: wall-clock time in milliseconds
//
// Returns:
//   - float64: the animation phase
func Phase(nowMillis float64) float64 {
	return PhaseRate * nowMillis
}

// PhaseAt is Phase applied to a time.Time with sub-millisecond precision.
//
// Parameters:
//   - t: the wall-clock time
//
// Returns:
//   - float64: the animation phase
func PhaseAt(t time.Time) float64 {
	return Phase(float64(t.UnixNano()) / float64(time.Millisecond))
}

// System is the Clock backed by time.Now.
type System struct{}

var _ Clock = System{}

func (System) Now() time.Time {
	return time.Now()
}

// Manual is a Clock that only moves when told to. Safe for concurrent use.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

var _ Clock = &Manual{}

// NewManual creates a Manual clock stopped at start.
//
// Parameters:
//   - start: the initial time
//
// Returns:
//   - *Manual: the clock
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d.
//
// Parameters:
//   - d: the duration to add
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Set moves the clock to t.
//
// Parameters:
//   - t: the new time
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}
