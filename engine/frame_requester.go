package engine

import (
	"context"
	"time"
)

// IntervalRequester is a FrameRequester that releases a frame every interval. It drives
// the loop when no window is attached.
type IntervalRequester struct {
	interval time.Duration
}

var _ FrameRequester = &IntervalRequester{}

// NewIntervalRequester creates an IntervalRequester. Non-positive intervals release frames
// back to back.
//
// Parameters:
//   - interval: the time between frames
//
// Returns:
//   - *IntervalRequester: the requester
func NewIntervalRequester(interval time.Duration) *IntervalRequester {
	return &IntervalRequester{interval: interval}
}

func (r *IntervalRequester) NextFrame(ctx context.Context) (time.Time, bool) {
	if r.interval <= 0 {
		if ctx.Err() != nil {
			return time.Time{}, false
		}
		return time.Now(), true
	}

	timer := time.NewTimer(r.interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return time.Time{}, false
	case now := <-timer.C:
		return now, true
	}
}

// CountedRequester releases a fixed number of frames, then stops. Frames are paced by the
// wrapped requester, or released immediately when there is none.
type CountedRequester struct {
	remaining int
	next      FrameRequester
}

var _ FrameRequester = &CountedRequester{}

// NewCountedRequester creates a CountedRequester for n frames.
//
// Parameters:
//   - n: the number of frames
//   - next: the pacing requester, nil for none
//
// Returns:
//   - *CountedRequester: the requester
func NewCountedRequester(n int, next FrameRequester) *CountedRequester {
	return &CountedRequester{remaining: n, next: next}
}

func (r *CountedRequester) NextFrame(ctx context.Context) (time.Time, bool) {
	if ctx.Err() != nil || r.remaining <= 0 {
		return time.Time{}, false
	}
	r.remaining--
	if r.next != nil {
		return r.next.NextFrame(ctx)
	}
	return time.Now(), true
}
