package game

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/tomz197/balloons/internal/vocab"
)

const ritual = "Ritual and Religion"

const tick = 50 * time.Millisecond

func ritualCatalog() *vocab.Catalog {
	return vocab.NewCatalog([]vocab.Record{
		{English: "priest", TargetScript: "ܟܗܢܐ", Category: ritual},
		{English: "altar", TargetScript: "ܡܕܒܚܐ", Category: ritual},
		{English: "church", TargetScript: "ܥܕܬܐ", Category: ritual},
		{English: "prayer", TargetScript: "ܨܠܘܬܐ", Category: ritual},
		{English: "angel", TargetScript: "ܡܠܐܟܐ", Category: ritual},
		{English: "cross", TargetScript: "ܨܠܝܒܐ", Category: ritual},
		{English: "fish", TargetScript: "ܢܘܢܐ", Category: "Animals"},
	})
}

// untimedSettings returns defaults without the countdown so rounds can run
// for as long as a test needs.
func untimedSettings() Settings {
	s := DefaultSettings()
	s.Timer.Enabled = false
	return s
}

func startEngine(t *testing.T, settings Settings) *Engine {
	t.Helper()
	e := New(settings, rand.New(rand.NewPCG(21, 34)))
	if err := e.Start(ritualCatalog()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return e
}

// advance runs n ticks of the nominal cadence.
func advance(e *Engine, n int) {
	for i := 0; i < n; i++ {
		e.Advance(tick)
	}
}

// advanceFor runs ticks until d has elapsed.
func advanceFor(e *Engine, d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += tick {
		e.Advance(tick)
	}
}

func answerBalloon(t *testing.T, e *Engine) BalloonView {
	t.Helper()
	q, ok := e.Question()
	if !ok {
		t.Fatalf("no current question")
	}
	for _, b := range e.Snapshot().Balloons {
		if b.Label == q.Answer() && !b.Popped {
			return b
		}
	}
	t.Fatalf("no balloon carries the answer %q", q.Answer())
	return BalloonView{}
}

func wrongBalloon(t *testing.T, e *Engine) BalloonView {
	t.Helper()
	q, _ := e.Question()
	for _, b := range e.Snapshot().Balloons {
		if b.Label != q.Answer() && !b.Popped {
			return b
		}
	}
	t.Fatalf("no distractor balloon left")
	return BalloonView{}
}
