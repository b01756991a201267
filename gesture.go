package artistloader

import (
	"math"
	"time"
)

const (
	defaultDragThreshold = 3.0                    // pixels of cumulative movement
	defaultTapDuration   = 300 * time.Millisecond // longest press that still counts as a tap
)

// GesturePhase is the state of a Gesture.
type GesturePhase uint8

const (
	GestureIdle     GesturePhase = iota // no pointer-down recorded
	GesturePending                      // down recorded, tap or drag undecided
	GestureDragging                     // movement crossed the threshold
)

// GestureResult is what a Release resolved the gesture to.
type GestureResult uint8

const (
	GestureNone    GestureResult = iota // nothing to do (idle, or a press held too long)
	GestureTap                          // short, still press
	GestureDragEnd                      // a drag finished
)

// Gesture tells a tap from a drag for one pointer-down origin. It is a plain
// value: every transition happens synchronously inside Press, Move, Release
// or Cancel, there are no timers.
type Gesture struct {
	// Threshold is the cumulative pointer travel, in pixels, after which a
	// pending press becomes a drag. Zero means defaultDragThreshold.
	Threshold float64
	// TapDuration is the longest press that still counts as a tap. Zero
	// means defaultTapDuration.
	TapDuration time.Duration

	phase     GesturePhase
	startX    float64
	startY    float64
	lastX     float64
	lastY     float64
	travelled float64
	startTime time.Time
}

// Phase returns the current state.
func (g *Gesture) Phase() GesturePhase {
	return g.phase
}

// Active reports whether a press is being tracked (pending or dragging).
func (g *Gesture) Active() bool {
	return g.phase != GestureIdle
}

// Dragging reports whether the gesture has become a drag.
func (g *Gesture) Dragging() bool {
	return g.phase == GestureDragging
}

// Origin returns the position recorded by Press.
func (g *Gesture) Origin() (x, y float64) {
	return g.startX, g.startY
}

// Press records a pointer-down origin. Any previous gesture is discarded.
func (g *Gesture) Press(x, y float64, t time.Time) {
	g.phase = GesturePending
	g.startX, g.startY = x, y
	g.lastX, g.lastY = x, y
	g.travelled = 0
	g.startTime = t
}

// Move feeds a pointer position. It returns the delta since the previous
// event and whether the gesture is dragging after this event. The event that
// crosses the threshold already reports dragging, so its delta counts.
func (g *Gesture) Move(x, y float64) (dx, dy float64, dragging bool) {
	if g.phase == GestureIdle {
		return 0, 0, false
	}
	dx = x - g.lastX
	dy = y - g.lastY
	g.lastX, g.lastY = x, y
	if g.phase == GesturePending {
		g.travelled += math.Sqrt(dx*dx + dy*dy)
		if g.travelled > g.threshold() {
			g.phase = GestureDragging
		}
	}
	return dx, dy, g.phase == GestureDragging
}

// Release resolves the gesture at pointer-up and resets to idle.
func (g *Gesture) Release(t time.Time) GestureResult {
	var res GestureResult
	switch g.phase {
	case GesturePending:
		if t.Sub(g.startTime) < g.tapDuration() {
			res = GestureTap
		}
	case GestureDragging:
		res = GestureDragEnd
	}
	g.Cancel()
	return res
}

// Cancel drops any tracked press without resolving it.
func (g *Gesture) Cancel() {
	threshold, tap := g.Threshold, g.TapDuration
	*g = Gesture{Threshold: threshold, TapDuration: tap}
}

func (g *Gesture) threshold() float64 {
	if g.Threshold > 0 {
		return g.Threshold
	}
	return defaultDragThreshold
}

func (g *Gesture) tapDuration() time.Duration {
	if g.TapDuration > 0 {
		return g.TapDuration
	}
	return defaultTapDuration
}
