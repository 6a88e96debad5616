package game

// BalloonView is the presentation copy of a balloon.
type BalloonView struct {
	ID     string
	Label  string
	Slot   int     // Left-to-right position, 0-based
	X      float64 // Percent of width
	Y      float64 // Percent of height, bottom of the balloon body
	Popped bool
}

// Snapshot is a read-only view of an engine after a tick or event.
type Snapshot struct {
	Game          uint64 // Changes on every Start and Restart
	Phase         Phase
	Score         int
	TimerEnabled  bool
	TimeRemaining int
	Message       string
	MessageKind   MessageKind
	Prompt        string // Target-script text of the current prompt
	Round         int
	BalloonSize   float64 // Body height, percent of the play area
	Balloons      []BalloonView
}

// Snapshot copies the state a presenter needs. The answer is not included.
func (e *Engine) Snapshot() *Snapshot {
	s := &Snapshot{
		Game:          e.generation,
		Phase:         e.phase,
		Score:         e.score,
		TimerEnabled:  e.settings.Timer.Enabled,
		TimeRemaining: e.timeRemaining,
		Message:       e.message,
		MessageKind:   e.messageKind,
		Round:         e.round,
		BalloonSize:   e.sim.Margin(),
	}
	if e.question != nil {
		s.Prompt = e.question.Prompt.TargetScript
	}
	live := e.sim.Live()
	s.Balloons = make([]BalloonView, 0, len(live))
	for _, b := range live {
		s.Balloons = append(s.Balloons, BalloonView{
			ID:     b.ID,
			Label:  b.Label,
			Slot:   b.Slot,
			X:      b.X,
			Y:      b.VerticalPosition,
			Popped: b.Popped,
		})
	}
	return s
}

// BalloonInSlot returns the unpopped balloon at slot, if any.
func (s *Snapshot) BalloonInSlot(slot int) (BalloonView, bool) {
	for _, b := range s.Balloons {
		if b.Slot == slot && !b.Popped {
			return b, true
		}
	}
	return BalloonView{}, false
}

// Labels lists the labels of balloons that can still be popped.
func (s *Snapshot) Labels() []string {
	labels := make([]string, 0, len(s.Balloons))
	for _, b := range s.Balloons {
		if !b.Popped {
			labels = append(labels, b.Label)
		}
	}
	return labels
}
