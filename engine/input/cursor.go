package input

import "sync"

// CursorTracker converts absolute cursor samples into frame-to-frame offsets.
// The first sample after construction or Reset only records a baseline, so the
// jump from wherever the cursor happened to be never reaches the camera.
type CursorTracker struct {
	mu     *sync.Mutex
	lastX  float64
	lastY  float64
	primed bool
}

// NewCursorTracker creates a tracker awaiting its first baseline sample.
//
// Returns:
//   - *CursorTracker: the newly created tracker
func NewCursorTracker() *CursorTracker {
	return &CursorTracker{
		mu: &sync.Mutex{},
	}
}

// Sample records an absolute cursor position and returns the offset since the previous sample.
// The y offset is inverted because screen y grows downward while pitch grows upward.
//
// Parameters:
//   - x, y: absolute cursor position in screen units
//
// Returns:
//   - xoffset: horizontal delta (positive = right)
//   - yoffset: vertical delta (positive = up)
//   - ok: false when this sample only established the baseline
func (t *CursorTracker) Sample(x, y float64) (xoffset, yoffset float32, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.primed {
		t.lastX, t.lastY = x, y
		t.primed = true
		return 0, 0, false
	}

	xoffset = float32(x - t.lastX)
	yoffset = float32(t.lastY - y)
	t.lastX, t.lastY = x, y
	return xoffset, yoffset, true
}

// Reset discards the baseline so the next sample is treated as the first one.
// Call it whenever the cursor is captured, released or the window regains focus.
func (t *CursorTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.primed = false
}
