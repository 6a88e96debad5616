package simulator

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"
)

func fixedMotion(speed float64) Motion {
	m := DefaultMotion()
	m.SpeedMin = speed
	m.SpeedMax = speed
	m.BalloonHeight = 0
	return m
}

func newTestSimulator(m Motion) *Simulator {
	return New(m, rand.New(rand.NewPCG(11, 13)))
}

func TestSpawnLayout(t *testing.T) {
	m := DefaultMotion()
	s := newTestSimulator(m)
	balloons := s.Spawn([]string{"a", "b", "c", "d"})

	if len(balloons) != 4 || s.Len() != 4 {
		t.Fatalf("expected 4 balloons, got %d (len %d)", len(balloons), s.Len())
	}
	ids := map[string]bool{}
	for i, b := range balloons {
		want := float64(i+1) * 100 / 5
		if b.BasePosition != want {
			t.Fatalf("balloon %d: base %f, want %f", i, b.BasePosition, want)
		}
		if b.Phase < 0 || b.Phase >= 2*math.Pi {
			t.Fatalf("balloon %d: phase %f out of range", i, b.Phase)
		}
		if b.Speed < m.SpeedMin || b.Speed > m.SpeedMax {
			t.Fatalf("balloon %d: speed %f outside band", i, b.Speed)
		}
		if b.VerticalPosition != 0 || b.Popped || b.Crossed {
			t.Fatalf("balloon %d: unexpected initial state %+v", i, b)
		}
		if b.Slot != i {
			t.Fatalf("balloon %d: slot %d", i, b.Slot)
		}
		if ids[b.ID] || b.ID == "" {
			t.Fatalf("balloon %d: id %q not unique", i, b.ID)
		}
		ids[b.ID] = true
	}

	s.Spawn([]string{"x"})
	if s.Len() != 1 || s.Live()[0].Label != "x" {
		t.Fatalf("spawn must replace the balloon set, got %d balloons", s.Len())
	}
}

func TestTickReachesTopAndReportsCrossingBeforeRemoval(t *testing.T) {
	m := fixedMotion(0.5)
	s := newTestSimulator(m)
	b := s.Spawn([]string{"only"})[0]

	for i := 1; i < 200; i++ {
		res := s.Tick(m.TickInterval)
		if len(res.Crossed) != 0 {
			t.Fatalf("crossed too early at tick %d (vertical %f)", i, b.VerticalPosition)
		}
	}
	res := s.Tick(m.TickInterval)
	if math.Abs(b.VerticalPosition-100) > 1e-9 {
		t.Fatalf("expected vertical ~100 after 200 ticks, got %f", b.VerticalPosition)
	}
	if len(res.Crossed) != 1 || res.Crossed[0] != b.ID {
		t.Fatalf("expected crossing reported on tick 200, got %+v", res)
	}
	if s.Len() != 1 {
		t.Fatalf("balloon must stay until it clears the removal line")
	}

	crossings := 0
	removedAt := 0
	for i := 201; i <= 240 && removedAt == 0; i++ {
		res := s.Tick(m.TickInterval)
		crossings += len(res.Crossed)
		if len(res.Removed) == 1 {
			removedAt = i
		}
	}
	if crossings != 0 {
		t.Fatalf("crossing must be reported once, got %d extra reports", crossings)
	}
	if removedAt != 220 {
		t.Fatalf("expected removal at tick 220 (vertical 110), got %d", removedAt)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty board, got %d", s.Len())
	}
}

func TestMarginFollowsPlayAreaHeight(t *testing.T) {
	m := fixedMotion(1)
	m.BalloonHeight = 10
	m.PlayAreaHeight = 80
	s := newTestSimulator(m)
	if s.Margin() != 12.5 {
		t.Fatalf("expected margin 12.5, got %f", s.Margin())
	}

	s.Spawn([]string{"a"})
	crossedAt := 0
	for i := 1; i <= 100 && crossedAt == 0; i++ {
		if len(s.Tick(m.TickInterval).Crossed) > 0 {
			crossedAt = i
		}
	}
	if crossedAt != 88 {
		t.Fatalf("expected crossing once vertical+12.5 >= 100 (tick 88), got %d", crossedAt)
	}

	s.SetPlayAreaHeight(40)
	if s.Margin() != 25 {
		t.Fatalf("expected margin 25 after resize, got %f", s.Margin())
	}
}

func TestSimultaneousCrossingsAllReported(t *testing.T) {
	m := fixedMotion(10)
	s := newTestSimulator(m)
	s.Spawn([]string{"a", "b", "c"})
	var crossed []string
	for i := 0; i < 10; i++ {
		crossed = append(crossed, s.Tick(m.TickInterval).Crossed...)
	}
	if len(crossed) != 3 {
		t.Fatalf("expected 3 crossings in the same tick, got %v", crossed)
	}
}

func TestWiggleIndependentOfTickRate(t *testing.T) {
	m := DefaultMotion()
	coarse := New(m, rand.New(rand.NewPCG(1, 1)))
	fine := New(m, rand.New(rand.NewPCG(1, 1)))
	coarse.Spawn([]string{"a", "b"})
	fine.Spawn([]string{"a", "b"})

	for i := 0; i < 10; i++ {
		coarse.Tick(100 * time.Millisecond)
	}
	for i := 0; i < 40; i++ {
		fine.Tick(25 * time.Millisecond)
	}

	cb, fb := coarse.Live(), fine.Live()
	for i := range cb {
		if math.Abs(cb[i].X-fb[i].X) > 1e-9 {
			t.Fatalf("balloon %d: x differs between tick rates: %f vs %f", i, cb[i].X, fb[i].X)
		}
		if math.Abs(cb[i].VerticalPosition-fb[i].VerticalPosition) > 1e-9 {
			t.Fatalf("balloon %d: height differs between tick rates: %f vs %f", i, cb[i].VerticalPosition, fb[i].VerticalPosition)
		}
		if math.Abs(cb[i].X-cb[i].BasePosition) > m.Amplitude+1e-9 {
			t.Fatalf("balloon %d: wiggle exceeds amplitude", i)
		}
	}
}

func TestPoppedBalloonLingersForGrace(t *testing.T) {
	m := fixedMotion(0.4)
	s := newTestSimulator(m)
	balloons := s.Spawn([]string{"a", "b"})
	s.Tick(m.TickInterval)

	popped, ok := s.Pop(balloons[0].ID)
	if !ok || !popped.Popped {
		t.Fatalf("expected pop to succeed")
	}
	if _, ok := s.Pop(balloons[0].ID); ok {
		t.Fatalf("second pop of the same balloon must fail")
	}
	if _, ok := s.Pop("unknown"); ok {
		t.Fatalf("pop of unknown id must fail")
	}

	height := popped.VerticalPosition
	for i := 0; i < 5; i++ {
		if res := s.Tick(m.TickInterval); len(res.Removed) != 0 {
			t.Fatalf("popped balloon removed before grace period at step %d", i)
		}
	}
	if popped.VerticalPosition != height {
		t.Fatalf("popped balloon must not keep rising")
	}
	res := s.Tick(m.TickInterval)
	if len(res.Removed) != 1 || res.Removed[0] != popped.ID {
		t.Fatalf("expected popped balloon removed after 300ms, got %+v", res)
	}
	if s.Len() != 1 || s.Get(balloons[1].ID) == nil {
		t.Fatalf("other balloon must remain live")
	}
}

func TestPoppedBalloonNeverCrosses(t *testing.T) {
	m := fixedMotion(50)
	m.Grace = time.Hour
	s := newTestSimulator(m)
	b := s.Spawn([]string{"a"})[0]
	s.Tick(m.TickInterval)
	s.Pop(b.ID)
	for i := 0; i < 5; i++ {
		if len(s.Tick(m.TickInterval).Crossed) != 0 {
			t.Fatalf("popped balloon reported as crossed")
		}
	}
}

func TestEscapedBalloonCannotBePopped(t *testing.T) {
	m := fixedMotion(100)
	s := newTestSimulator(m)
	b := s.Spawn([]string{"a"})[0]
	s.Tick(m.TickInterval)
	if !b.Crossed {
		t.Fatalf("expected balloon to cross")
	}
	if _, ok := s.Pop(b.ID); ok {
		t.Fatalf("crossed balloon must not be poppable")
	}
}

func TestMotionValidate(t *testing.T) {
	if err := DefaultMotion().Validate(); err != nil {
		t.Fatalf("default motion invalid: %v", err)
	}
	bad := DefaultMotion()
	bad.SpeedMax = bad.SpeedMin / 2
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for inverted speed band")
	}
	bad = DefaultMotion()
	bad.RemoveAt = 90
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for remove_at below the boundary")
	}
}
