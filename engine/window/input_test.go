package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDragTracker(t *testing.T) {
	var d dragTracker

	_, _, dragging := d.move(10, 10)
	assert.False(t, dragging, "motion without a press is not a drag")

	d.press(100, 50)
	dx, dy, dragging := d.move(110, 45)
	assert.True(t, dragging)
	assert.Equal(t, float32(10), dx)
	assert.Equal(t, float32(-5), dy)

	dx, dy, _ = d.move(110, 45)
	assert.Zero(t, dx)
	assert.Zero(t, dy)

	d.release()
	_, _, dragging = d.move(200, 200)
	assert.False(t, dragging)
}

func TestPixelRatio(t *testing.T) {
	tests := []struct {
		name        string
		fb, window  int
		expectRatio float32
	}{
		{"standard", 800, 800, 1},
		{"retina", 1600, 800, 2},
		{"minimized", 0, 0, 1},
		{"unknown window", 800, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectRatio, pixelRatio(tt.fb, tt.window))
		})
	}
}

func TestResizedForwardsLogicalSizeAndRatio(t *testing.T) {
	w := &engineWindow{}
	var got [3]float32
	w.SetResizeCallback(func(width, height int, ratio float32) {
		got = [3]float32{float32(width), float32(height), ratio}
	})

	w.resized(960, 540, 1920, 1080)

	assert.Equal(t, [3]float32{960, 540, 2}, got)
	fw, fh := w.FramebufferSize()
	assert.Equal(t, 1920, fw)
	assert.Equal(t, 1080, fh)
	assert.Equal(t, float32(2), w.PixelRatio())
}
