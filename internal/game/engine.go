// Package game runs the round and score state machine of the balloon quiz.
//
// An Engine is driven entirely by calls from a single owner: Advance for the
// passage of time, PopBalloon and Restart for player actions. Delays such as
// the pause before the next round are scheduled on the engine's own clock and
// are dropped if the game or round they belong to is gone by the time they
// fire. Engine is not safe for concurrent use.
package game

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/tomz197/balloons/internal/quiz"
	"github.com/tomz197/balloons/internal/simulator"
	"github.com/tomz197/balloons/internal/vocab"
)

// ErrNotLoaded is returned by Restart before a catalog has been started.
var ErrNotLoaded = errors.New("game: vocabulary not loaded")

// Engine is one player's game.
type Engine struct {
	settings Settings
	rng      *rand.Rand
	catalog  *vocab.Catalog
	sim      *simulator.Simulator
	sched    scheduler

	clock      time.Duration
	generation uint64
	round      int

	phase           Phase
	score           int
	timeRemaining   int
	timerAccum      time.Duration
	secondsPlayed   int
	question        *quiz.Question
	message         string
	messageKind     MessageKind
	messageSeq      uint64
	missedThisRound bool
	wrongThisRound  bool
}

// New creates an engine in the Loading phase. A nil rng is replaced by a
// randomly seeded one.
func New(settings Settings, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Engine{
		settings: settings,
		rng:      rng,
		sim:      simulator.New(settings.Motion, rng),
		phase:    PhaseLoading,
	}
}

// Start leaves Loading with the given catalog and begins the first round.
// A catalog without records in the configured category yields
// *quiz.EmptyCatalogError and leaves the engine in Loading.
func (e *Engine) Start(catalog *vocab.Catalog) error {
	if len(catalog.InCategory(e.settings.Category)) == 0 {
		return &quiz.EmptyCatalogError{Category: e.settings.Category}
	}
	e.catalog = catalog
	e.reset()
	return nil
}

// Restart begins a fresh game with the catalog given to Start.
func (e *Engine) Restart() error {
	if e.catalog == nil {
		return ErrNotLoaded
	}
	e.reset()
	return nil
}

// reset clears score, message, board and timer, invalidates every pending
// transition and starts the first round.
func (e *Engine) reset() {
	e.generation++
	e.round = 0
	e.score = 0
	e.setMessage("", MessageNone)
	e.sim.Clear()
	e.timeRemaining = 0
	if e.settings.Timer.Enabled {
		e.timeRemaining = e.settings.Timer.StartSeconds
	}
	e.timerAccum = 0
	e.secondsPlayed = 0
	e.startRound()
}

// startRound draws a new question and replaces the balloon set.
func (e *Engine) startRound() {
	e.round++
	e.missedThisRound = false
	e.wrongThisRound = false

	q, err := quiz.SelectQuestion(e.catalog, e.settings.Category, e.settings.OptionCount, e.rng)
	if err != nil {
		// The catalog is immutable and was checked in Start.
		e.question = nil
		e.sim.Clear()
		e.phase = PhaseGameOver
		e.setMessage(err.Error(), MessageGameOver)
		return
	}
	e.question = &q
	e.sim.Spawn(q.Options)
	e.setMessage("", MessageNone)
	e.phase = PhaseAwaitingPop
}

// Advance moves the game forward by dt: due transitions first, then balloon
// motion and miss detection, then the countdown, and finally a new round if
// the board has emptied.
func (e *Engine) Advance(dt time.Duration) {
	if e.phase == PhaseLoading || dt <= 0 {
		return
	}
	e.clock += dt
	e.runDue()
	if e.phase == PhaseGameOver {
		return
	}

	res := e.sim.Tick(dt)
	if len(res.Crossed) > 0 {
		e.miss()
	}

	e.tickTimer(dt)
	if e.phase == PhaseGameOver {
		return
	}

	// A resolved round waits for its scheduled transition even when the
	// board has already emptied.
	if e.phase == PhaseAwaitingPop && e.sim.Len() == 0 {
		e.startRound()
	}
}

// PopBalloon scores a pop. It returns false when the pop is ignored: wrong
// phase, unknown id, or a balloon that is already popped or gone.
func (e *Engine) PopBalloon(id string) bool {
	if e.phase != PhaseAwaitingPop || e.question == nil {
		return false
	}
	if e.settings.Timer.Enabled && e.timeRemaining <= 0 {
		return false
	}
	b, ok := e.sim.Pop(id)
	if !ok {
		return false
	}

	if e.question.IsCorrect(b.Label) {
		points := e.settings.Scoring.CorrectValue
		if e.settings.Scoring.FirstAttemptOnly && e.wrongThisRound {
			points = 0
		}
		e.score += points
		e.setMessage(NoticeCorrect, MessageCorrect)
		e.phase = PhaseResolving
		e.after(e.settings.Delays.Round, actionNextRound, 0)
		return true
	}

	e.wrongThisRound = true
	e.score += e.settings.Scoring.IncorrectValue
	e.setMessage(NoticeIncorrect, MessageIncorrect)
	e.after(e.settings.Delays.MessageClear, actionClearMessage, e.messageSeq)
	return true
}

// miss applies the once-per-round penalty for an escaped balloon.
func (e *Engine) miss() {
	if e.phase != PhaseAwaitingPop || e.missedThisRound {
		return
	}
	e.missedThisRound = true
	e.score += e.settings.Scoring.MissValue
	e.setMessage(NoticeMiss, MessageMiss)
	e.phase = PhaseResolving
	e.after(e.settings.Delays.Miss, actionNextRound, 0)
}

// tickTimer counts down whole seconds of engine time.
func (e *Engine) tickTimer(dt time.Duration) {
	if !e.settings.Timer.Enabled {
		return
	}
	e.timerAccum += dt
	for e.timerAccum >= time.Second && e.timeRemaining > 0 {
		e.timerAccum -= time.Second
		e.timeRemaining--
		e.secondsPlayed++
		if e.timeRemaining == 0 {
			e.gameOver()
			return
		}
	}
}

func (e *Engine) gameOver() {
	if e.settings.Timer.TimeBonusOnEnd {
		e.score += e.secondsPlayed
	}
	e.phase = PhaseGameOver
	e.setMessage(NoticeGameOver, MessageGameOver)
}

func (e *Engine) setMessage(msg string, kind MessageKind) {
	e.messageSeq++
	e.message = msg
	e.messageKind = kind
}

// after schedules act for the current game and round.
func (e *Engine) after(delay time.Duration, act action, token uint64) {
	e.sched.schedule(transition{
		at:         e.clock + delay,
		generation: e.generation,
		round:      e.round,
		token:      token,
		action:     act,
	})
}

// runDue applies the transitions that have come due, skipping stale ones.
func (e *Engine) runDue() {
	for _, t := range e.sched.due(e.clock) {
		if t.generation != e.generation || t.round != e.round || e.phase == PhaseGameOver {
			continue
		}
		switch t.action {
		case actionNextRound:
			if e.phase == PhaseResolving {
				e.sim.Clear()
				e.startRound()
			}
		case actionClearMessage:
			if t.token == e.messageSeq {
				e.setMessage("", MessageNone)
			}
		}
	}
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.score
}

// TimeRemaining returns the countdown in whole seconds (0 without a timer).
func (e *Engine) TimeRemaining() int {
	return e.timeRemaining
}

// Message returns the current notice, possibly empty.
func (e *Engine) Message() string {
	return e.message
}

// Round returns the number of rounds started in this game.
func (e *Engine) Round() int {
	return e.round
}

// Question returns the current question, if any.
func (e *Engine) Question() (quiz.Question, bool) {
	if e.question == nil {
		return quiz.Question{}, false
	}
	return *e.question, true
}

// MissedThisRound reports whether the current round already took its miss penalty.
func (e *Engine) MissedThisRound() bool {
	return e.missedThisRound
}

// Settings returns the settings the engine was built with.
func (e *Engine) Settings() Settings {
	return e.settings
}
