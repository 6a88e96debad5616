package simulator

import (
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/tomz197/balloons/internal/object"
)

// TickResult lists what happened during one Tick.
type TickResult struct {
	Crossed []string // Balloons that reached the top this tick, reported once
	Removed []string // Balloons dropped from the live set this tick
}

// Simulator owns the live balloon set of the current round.
// It is not safe for concurrent use.
type Simulator struct {
	motion   Motion
	rng      *rand.Rand
	balloons []*object.Balloon
	elapsed  time.Duration
	margin   float64
}

// New creates a simulator. rng supplies phases and speeds.
func New(motion Motion, rng *rand.Rand) *Simulator {
	return &Simulator{
		motion: motion,
		rng:    rng,
		margin: motion.margin(),
	}
}

// Spawn replaces the live set with one balloon per option, evenly spread
// across the width in option order.
func (s *Simulator) Spawn(options []string) []*object.Balloon {
	n := len(options)
	s.balloons = make([]*object.Balloon, 0, n)
	for i, label := range options {
		b := &object.Balloon{
			ID:           uuid.NewString(),
			Label:        label,
			Slot:         i,
			BasePosition: object.SlotPosition(i, n),
			Phase:        s.rng.Float64() * 2 * math.Pi,
			Speed:        s.motion.SpeedMin + s.rng.Float64()*(s.motion.SpeedMax-s.motion.SpeedMin),
		}
		b.X = b.Wiggle(s.elapsed, s.motion.Amplitude, s.motion.Period)
		s.balloons = append(s.balloons, b)
	}
	return slices.Clone(s.balloons)
}

// Tick advances every balloon by dt. All positions are computed from one
// elapsed-time snapshot before any crossing is evaluated.
func (s *Simulator) Tick(dt time.Duration) TickResult {
	var res TickResult
	if dt < 0 {
		return res
	}
	s.elapsed += dt
	step := float64(dt) / float64(s.motion.TickInterval)

	for _, b := range s.balloons {
		if b.Popped {
			continue // Frozen where it was hit
		}
		b.VerticalPosition += b.Speed * step
		b.X = b.Wiggle(s.elapsed, s.motion.Amplitude, s.motion.Period)
	}

	kept := s.balloons[:0]
	for _, b := range s.balloons {
		if b.Popped {
			if s.elapsed-b.PoppedAt >= s.motion.Grace {
				res.Removed = append(res.Removed, b.ID)
				continue
			}
			kept = append(kept, b)
			continue
		}
		if !b.Crossed && b.VerticalPosition+s.margin >= 100 {
			b.Crossed = true
			res.Crossed = append(res.Crossed, b.ID)
		}
		if b.Crossed && b.VerticalPosition >= s.motion.RemoveAt {
			res.Removed = append(res.Removed, b.ID)
			continue
		}
		kept = append(kept, b)
	}
	clear(s.balloons[len(kept):])
	s.balloons = kept

	return res
}

// Pop marks the balloon popped. It returns false for unknown ids and for
// balloons that were already popped or have escaped over the top.
func (s *Simulator) Pop(id string) (*object.Balloon, bool) {
	b := s.Get(id)
	if b == nil || !b.Active() {
		return nil, false
	}
	b.Popped = true
	b.PoppedAt = s.elapsed
	return b, true
}

// Get returns the live balloon with id, or nil.
func (s *Simulator) Get(id string) *object.Balloon {
	for _, b := range s.balloons {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// Live returns the current balloon set in slot order.
func (s *Simulator) Live() []*object.Balloon {
	return slices.Clone(s.balloons)
}

// Len returns the number of balloons still on the board.
func (s *Simulator) Len() int {
	return len(s.balloons)
}

// Clear drops every balloon.
func (s *Simulator) Clear() {
	clear(s.balloons)
	s.balloons = s.balloons[:0]
}

// SetPlayAreaHeight updates the play area size and recomputes the
// boundary margin derived from the balloon height.
func (s *Simulator) SetPlayAreaHeight(height float64) {
	s.motion.PlayAreaHeight = height
	s.margin = s.motion.margin()
}

// Margin returns the balloon height as percent of the play area.
func (s *Simulator) Margin() float64 {
	return s.margin
}
