package object

import (
	"math"
	"time"
)

// Balloon is one answer option drifting up the play area.
// Positions are percentages of the play area: X across, VerticalPosition
// from the bottom edge (0) upwards.
type Balloon struct {
	ID               string        // Stable for the balloon's lifetime
	Label            string        // Option text, never changes
	Slot             int           // Left-to-right index within the round
	BasePosition     float64       // Horizontal anchor in [0,100]
	Phase            float64       // Wiggle phase in [0, 2π)
	Speed            float64       // Rise per nominal tick, in percent
	VerticalPosition float64       // Bottom of the balloon body
	X                float64       // Current horizontal position (anchor + wiggle)
	Popped           bool          // Set once when the player pops it
	PoppedAt         time.Duration // Simulator clock at the pop
	Crossed          bool          // Reached the top boundary unpopped
}

// Active reports whether the balloon still takes part in pops and misses.
func (b *Balloon) Active() bool {
	return !b.Popped && !b.Crossed
}

// Wiggle returns the horizontal position at the given elapsed time.
// It depends only on elapsed time and the balloon's own phase, never on
// how many ticks have run.
func (b *Balloon) Wiggle(elapsed time.Duration, amplitude float64, period time.Duration) float64 {
	if period <= 0 {
		return b.BasePosition
	}
	return b.BasePosition + amplitude*math.Sin(b.Phase+elapsed.Seconds()/period.Seconds())
}

// SlotPosition returns the evenly spaced anchor for slot i of n balloons.
func SlotPosition(i, n int) float64 {
	return float64(i+1) * 100 / float64(n+1)
}
