package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickReportsOncePerInterval(t *testing.T) {
	var reports []Stats
	p := NewProfiler(WithReporter(func(s Stats) { reports = append(reports, s) }))

	start := time.Unix(1000, 0)
	assert.False(t, p.Tick(start))

	// 60 frames over one second.
	reported := false
	for i := 1; i <= 60; i++ {
		now := start.Add(time.Duration(i) * time.Second / 60)
		reported = p.Tick(now)
	}
	assert.True(t, reported)
	require.Len(t, reports, 1)
	assert.Equal(t, 60, reports[0].Frames)
	assert.InDelta(t, 60, reports[0].FPS, 1e-6)
	assert.Greater(t, reports[0].HeapMB, 0.0)
	assert.Equal(t, reports[0], p.Last())
}

func TestTickHonorsInterval(t *testing.T) {
	count := 0
	p := NewProfiler(WithInterval(500*time.Millisecond), WithReporter(func(Stats) { count++ }))

	start := time.Unix(0, 0)
	p.Tick(start)
	p.Tick(start.Add(400 * time.Millisecond))
	assert.Zero(t, count)
	p.Tick(start.Add(500 * time.Millisecond))
	assert.Equal(t, 1, count)
	assert.InDelta(t, 4, p.Last().FPS, 1e-6)
}

func TestWithIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler(WithInterval(0))
	assert.Equal(t, time.Second, p.updateInterval)
}
