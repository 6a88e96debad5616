package game

import (
	"cmp"
	"slices"
	"time"
)

type action int

const (
	actionNextRound action = iota
	actionClearMessage
)

// transition is a delayed state change. It only applies if the game and
// round it was scheduled for are still current when it comes due.
type transition struct {
	at         time.Duration
	seq        uint64
	generation uint64
	round      int
	token      uint64 // Message sequence for actionClearMessage
	action     action
}

// scheduler holds pending transitions keyed on the engine clock.
type scheduler struct {
	pending []transition
	seq     uint64
}

func (s *scheduler) schedule(t transition) {
	s.seq++
	t.seq = s.seq
	s.pending = append(s.pending, t)
}

// due removes and returns the transitions whose time has come, oldest first.
func (s *scheduler) due(now time.Duration) []transition {
	var ready []transition
	kept := s.pending[:0]
	for _, t := range s.pending {
		if t.at <= now {
			ready = append(ready, t)
		} else {
			kept = append(kept, t)
		}
	}
	s.pending = kept
	slices.SortFunc(ready, func(a, b transition) int {
		if c := cmp.Compare(a.at, b.at); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	return ready
}

func (s *scheduler) len() int {
	return len(s.pending)
}
