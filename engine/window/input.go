package window

// dragTracker turns button and cursor events into drag deltas.
type dragTracker struct {
	active       bool
	lastX, lastY float64
}

func (d *dragTracker) press(x, y float64) {
	d.active = true
	d.lastX, d.lastY = x, y
}

func (d *dragTracker) release() {
	d.active = false
}

// move returns the delta since the last event and whether a drag is in progress.
func (d *dragTracker) move(x, y float64) (dx, dy float32, dragging bool) {
	if !d.active {
		return 0, 0, false
	}
	dx, dy = float32(x-d.lastX), float32(y-d.lastY)
	d.lastX, d.lastY = x, y
	return dx, dy, true
}

// pixelRatio is framebuffer pixels per screen coordinate, 1 when either size is unknown.
func pixelRatio(framebufferWidth, windowWidth int) float32 {
	if framebufferWidth <= 0 || windowWidth <= 0 {
		return 1
	}
	return float32(framebufferWidth) / float32(windowWidth)
}
