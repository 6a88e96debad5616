package client

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/balloons/internal/game"
	"github.com/tomz197/balloons/internal/input"
	"github.com/tomz197/balloons/internal/loop/server"
	"github.com/tomz197/balloons/internal/quiz"
	"github.com/tomz197/balloons/internal/vocab"
)

func testServer(settings game.Settings) *server.Server {
	return server.NewServer(server.Options{
		Catalog: vocab.NewCatalog([]vocab.Record{
			{English: "priest", TargetScript: "ܟܗܢܐ", Category: "Ritual and Religion"},
			{English: "altar", TargetScript: "ܡܕܒܚܐ", Category: "Ritual and Religion"},
			{English: "prayer", TargetScript: "ܨܠܘܬܐ", Category: "Ritual and Religion"},
		}),
		Settings: settings,
		Logger:   log.New(io.Discard),
		NewRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(5, 6))
		},
	})
}

func newTestClient(t *testing.T, srv *server.Server) (*Client, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	c := NewClient(srv, bufio.NewReader(strings.NewReader("")), &out, ClientOptions{
		TermSizeFunc: func() (int, int, error) { return 120, 44, nil },
		Username:     "ana",
		NoColor:      true,
	})
	srv.Step(0)
	return c, &out
}

// press feeds events to the client for one frame.
func press(c *Client, events ...input.Event) {
	c.state.Input = input.Input{Events: events}
	c.update()
}

func typeText(c *Client, text string) {
	var events []input.Event
	for _, r := range text {
		events = append(events, input.Event{Kind: input.KeyRune, Rune: r})
	}
	press(c, events...)
}

func startPlaying(t *testing.T, c *Client, srv *server.Server) *game.Snapshot {
	t.Helper()
	press(c, input.Event{Kind: input.KeyEnter})
	if c.state.GameState != GameStatePlaying {
		t.Fatalf("expected playing state, got %d", c.state.GameState)
	}
	srv.Step(0)
	press(c)
	snap := c.handle.Snapshot()
	if snap == nil || len(c.state.sprites) != 3 {
		t.Fatalf("expected 3 sprites after start")
	}
	return snap
}

func popped(snap *game.Snapshot, id string) bool {
	for _, b := range snap.Balloons {
		if b.ID == id {
			return b.Popped
		}
	}
	return false
}

func TestDigitPopsSlot(t *testing.T) {
	srv := testServer(game.DefaultSettings())
	c, _ := newTestClient(t, srv)
	snap := startPlaying(t, c, srv)
	first, _ := snap.BalloonInSlot(0)

	press(c, input.Event{Kind: input.KeyRune, Rune: '1'})
	srv.Step(0)

	after := c.handle.Snapshot()
	if !popped(after, first.ID) {
		t.Fatalf("expected slot 1 to be popped")
	}
	if after.Message == "" {
		t.Fatalf("expected a notice after a pop")
	}
}

func TestTypedAnswerPopsMatchingBalloon(t *testing.T) {
	srv := testServer(game.DefaultSettings())
	c, _ := newTestClient(t, srv)
	snap := startPlaying(t, c, srv)
	target, _ := snap.BalloonInSlot(1)

	typeText(c, strings.ToUpper(target.Label))
	if string(c.state.Typed) != strings.ToUpper(target.Label) {
		t.Fatalf("expected typed text to accumulate, got %q", string(c.state.Typed))
	}
	press(c, input.Event{Kind: input.KeyEnter})
	srv.Step(0)

	if len(c.state.Typed) != 0 {
		t.Fatalf("expected typed text cleared after Enter")
	}
	if !popped(c.handle.Snapshot(), target.ID) {
		t.Fatalf("expected %q to be popped", target.Label)
	}
}

func TestClickPopsBalloonUnderPointer(t *testing.T) {
	srv := testServer(game.DefaultSettings())
	c, _ := newTestClient(t, srv)
	startPlaying(t, c, srv)

	sprite := c.state.sprites[2]
	col, row := c.canvas.LogicalToTerminal(sprite.CX, sprite.CY)
	press(c, input.Event{Kind: input.MouseClick, Col: col + c.canvas.OffsetCol(), Row: row + c.canvas.OffsetRow()})
	srv.Step(0)

	if !popped(c.handle.Snapshot(), sprite.ID) {
		t.Fatalf("expected the clicked balloon to be popped")
	}
}

func TestPopBurstsIntoParticles(t *testing.T) {
	srv := testServer(game.DefaultSettings())
	c, _ := newTestClient(t, srv)
	startPlaying(t, c, srv)

	press(c, input.Event{Kind: input.KeyRune, Rune: '2'})
	srv.Step(0)
	press(c)
	if len(c.state.effects) == 0 {
		t.Fatalf("expected pop particles")
	}
	n := len(c.state.effects)
	press(c)
	if len(c.state.effects) > n {
		t.Fatalf("expected a balloon to burst only once")
	}
}

func TestGameOverAndRestartIgnoresStaleSnapshot(t *testing.T) {
	settings := game.DefaultSettings()
	settings.Timer.StartSeconds = 1
	srv := testServer(settings)
	c, _ := newTestClient(t, srv)
	startPlaying(t, c, srv)

	srv.Step(time.Second)
	c.processServerEvents()
	if c.state.GameState != GameStateGameOver {
		t.Fatalf("expected game over, got %d", c.state.GameState)
	}

	press(c, input.Event{Kind: input.KeyRune, Rune: 'r'})
	press(c)
	if c.state.GameState != GameStatePlaying {
		t.Fatalf("expected the finished game's snapshot to be ignored, got state %d", c.state.GameState)
	}
	if len(c.state.sprites) != 0 {
		t.Fatalf("expected no sprites before the new game is published")
	}

	srv.Step(0)
	press(c)
	if snap := c.handle.Snapshot(); snap.Phase != game.PhaseAwaitingPop || snap.Score != 0 {
		t.Fatalf("expected a fresh game, got %s score %d", snap.Phase, snap.Score)
	}
	if c.state.GameState != GameStatePlaying || len(c.state.sprites) != 3 {
		t.Fatalf("expected to be playing the new game")
	}
}

func TestEscapeClearsTypingThenQuits(t *testing.T) {
	srv := testServer(game.DefaultSettings())
	c, _ := newTestClient(t, srv)
	startPlaying(t, c, srv)

	typeText(c, "pri")
	press(c, input.Event{Kind: input.KeyBackspace})
	if string(c.state.Typed) != "pr" {
		t.Fatalf("expected backspace to remove a rune, got %q", string(c.state.Typed))
	}
	press(c, input.Event{Kind: input.KeyEscape})
	if len(c.state.Typed) != 0 || !c.state.Running {
		t.Fatalf("expected escape to clear typing first")
	}
	press(c, input.Event{Kind: input.KeyEscape})
	if c.state.Running {
		t.Fatalf("expected the second escape to quit")
	}
}

func TestStartFailureEndsSession(t *testing.T) {
	settings := game.DefaultSettings()
	settings.Category = "Weather"
	srv := testServer(settings)
	c, _ := newTestClient(t, srv)

	press(c, input.Event{Kind: input.KeyEnter})
	srv.Step(0)
	c.processServerEvents()

	if c.state.Running {
		t.Fatalf("expected the client to stop")
	}
	var empty *quiz.EmptyCatalogError
	if !errors.As(c.err, &empty) {
		t.Fatalf("expected an empty catalog error, got %v", c.err)
	}
}

func TestDrawFrameShowsHUD(t *testing.T) {
	srv := testServer(game.DefaultSettings())
	c, out := newTestClient(t, srv)
	snap := startPlaying(t, c, srv)

	if err := c.drawFrame(); err != nil {
		t.Fatalf("draw: %v", err)
	}
	frame := out.String()
	for _, want := range []string{"Pop the balloon for:", snap.Prompt, "Score 0", "Time 60", "1 " + snap.Balloons[0].Label} {
		if !strings.Contains(frame, want) {
			t.Fatalf("expected %q in frame", want)
		}
	}
}

func TestShutdownScreenCountsDown(t *testing.T) {
	srv := testServer(game.DefaultSettings())
	c, _ := newTestClient(t, srv)

	go srv.Shutdown(10 * time.Millisecond)
	deadline := time.Now().Add(time.Second)
	for c.state.GameState != GameStateShutdown && time.Now().Before(deadline) {
		c.processServerEvents()
		time.Sleep(time.Millisecond)
	}
	if c.state.GameState != GameStateShutdown {
		t.Fatalf("expected the shutdown screen")
	}
	c.state.delta = 11 * time.Second
	press(c)
	if c.state.Running {
		t.Fatalf("expected the client to leave after the countdown")
	}
}
