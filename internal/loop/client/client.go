// Package client renders one player's balloon game to a terminal and turns
// their keys and clicks into server commands.
package client

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/tomz197/balloons/internal/draw"
	"github.com/tomz197/balloons/internal/game"
	"github.com/tomz197/balloons/internal/input"
	"github.com/tomz197/balloons/internal/loop/config"
	"github.com/tomz197/balloons/internal/loop/server"
	"github.com/tomz197/balloons/internal/object"
	"github.com/tomz197/balloons/internal/quiz"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates one frame of output
	styles       styles
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	err          error // Reason the session ended early
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	NoColor      bool // Render the HUD without colour
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	handle := gs.RegisterClient(opts.Username)
	state := NewClientState()
	state.termSizeFunc = termSizeFunc
	state.View = object.Screen{Width: config.ViewWidth, Height: config.ViewHeight}

	termWidth, termHeight, _ := termSizeFunc()
	width, height, offsetCol, offsetRow := fitTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(width, height, config.ViewWidth, config.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		server:       gs,
		handle:       handle,
		state:        state,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		styles:       newStyles(w, opts.NoColor),
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
	}
}

// Run starts the client loop. Blocks until the player quits, the
// connection closes or the server stops. A game that could not start is
// reported as an error.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	draw.EnableMouse(c.writer)
	draw.ClearScreen(c.writer)
	defer func() {
		draw.DisableMouse(c.writer)
		draw.ShowCursor(c.writer)
	}()

	lastTime := time.Now()
	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()
		c.update()

		if err := c.drawFrame(); err != nil {
			c.server.UnregisterClient(c.handle.ID)
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	c.server.UnregisterClient(c.handle.ID)
	draw.ClearScreen(c.writer)
	return c.err
}

// processInput reads this frame's input and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if c.state.Input.Closed {
		c.state.Running = false
	}
	if c.state.Input.Active() {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventGameOver:
				c.state.FinalScore = event.Score
				c.state.GameState = GameStateGameOver
			case server.EventStartFailed:
				c.err = fmt.Errorf("start game: %w", event.Err)
				c.state.Running = false
			case server.EventServerShutdown:
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, keeping the canvas within the
// max render resolution and room for the HUD below it.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	width, height, offsetCol, offsetRow := fitTermSize(termWidth, termHeight)

	if width != c.canvas.TerminalWidth() || height != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(width, height)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// fitTermSize clamps terminal dimensions to the max render resolution.
func fitTermSize(termWidth, termHeight int) (width, height, offsetCol, offsetRow int) {
	return draw.FitView(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight, config.HUDRows)
}

// update applies input for the current screen.
func (c *Client) update() {
	for _, ev := range c.state.Input.Events {
		if ev.Kind == input.KeyInterrupt {
			c.state.Running = false
			return
		}
	}

	switch c.state.GameState {
	case GameStateStart:
		c.updateStartState()
	case GameStatePlaying:
		c.updatePlayingState()
	case GameStateGameOver:
		c.updateGameOverState()
	case GameStateShutdown:
		c.updateShutdownState()
	}
	c.state.updateEffects()
}

// updateStartState handles the title screen.
func (c *Client) updateStartState() {
	for _, ev := range c.state.Input.Events {
		switch {
		case ev.Kind == input.KeyEnter || (ev.Kind == input.KeyRune && ev.Rune == ' '):
			c.startGame(server.CommandStart)
			return
		case isQuit(ev):
			c.state.Running = false
			return
		}
	}
}

// updatePlayingState turns keys and clicks into pops and follows the
// latest snapshot.
func (c *Client) updatePlayingState() {
	snap := c.currentSnapshot()
	for _, ev := range c.state.Input.Events {
		switch ev.Kind {
		case input.KeyRune:
			if ev.Rune >= '1' && ev.Rune <= '9' {
				c.popSlot(snap, int(ev.Rune-'1'))
			} else if len(c.state.Typed) < config.MaxTypedLength {
				c.state.Typed = append(c.state.Typed, ev.Rune)
			}
		case input.KeyBackspace:
			if n := len(c.state.Typed); n > 0 {
				c.state.Typed = c.state.Typed[:n-1]
			}
		case input.KeyEnter:
			c.popTyped(snap)
		case input.KeyTab:
			c.startGame(server.CommandRestart)
			return
		case input.KeyEscape:
			if len(c.state.Typed) > 0 {
				c.state.Typed = c.state.Typed[:0]
			} else {
				c.state.Running = false
				return
			}
		case input.MouseClick:
			c.popAt(ev.Col, ev.Row)
		}
	}

	c.syncSprites(snap)
	if snap != nil && snap.Phase == game.PhaseGameOver {
		c.state.FinalScore = snap.Score
		c.state.GameState = GameStateGameOver
	}
}

// currentSnapshot returns the latest snapshot of the game being played,
// nil while a requested game has not been published yet.
func (c *Client) currentSnapshot() *game.Snapshot {
	snap := c.handle.Snapshot()
	if c.state.awaitingGame {
		if snap == nil || snap.Game == c.state.staleGame {
			return nil
		}
		c.state.awaitingGame = false
	}
	return snap
}

// updateGameOverState waits for a restart or quit.
func (c *Client) updateGameOverState() {
	c.syncSprites(c.handle.Snapshot())
	for _, ev := range c.state.Input.Events {
		switch {
		case ev.Kind == input.KeyEnter || ev.Kind == input.KeyTab ||
			(ev.Kind == input.KeyRune && (ev.Rune == ' ' || ev.Rune == 'r' || ev.Rune == 'R')):
			c.startGame(server.CommandRestart)
			return
		case isQuit(ev):
			c.state.Running = false
			return
		}
	}
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	for _, ev := range c.state.Input.Events {
		if isQuit(ev) {
			c.state.Running = false
			return
		}
	}
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}

func isQuit(ev input.Event) bool {
	return ev.Kind == input.KeyEscape || (ev.Kind == input.KeyRune && (ev.Rune == 'q' || ev.Rune == 'Q'))
}

// startGame asks the server for a new game and resets local state.
// Snapshots of the previous game are ignored until the new one appears.
func (c *Client) startGame(kind server.CommandKind) {
	if snap := c.handle.Snapshot(); snap != nil {
		c.state.staleGame = snap.Game
		c.state.awaitingGame = true
	}
	c.server.Send(c.handle.ID, server.Command{Kind: kind})
	c.state.Typed = c.state.Typed[:0]
	c.state.sprites = nil
	c.state.clearEffects()
	c.state.GameState = GameStatePlaying
}

func (c *Client) pop(id string) {
	c.server.Send(c.handle.ID, server.Command{Kind: server.CommandPop, BalloonID: id})
}

// popSlot pops the balloon in the given left-to-right slot.
func (c *Client) popSlot(snap *game.Snapshot, slot int) {
	if snap == nil {
		return
	}
	if b, ok := snap.BalloonInSlot(slot); ok {
		c.pop(b.ID)
	}
}

// popTyped pops the balloon whose label best matches the typed answer.
func (c *Client) popTyped(snap *game.Snapshot) {
	typed := string(c.state.Typed)
	c.state.Typed = c.state.Typed[:0]
	if snap == nil || typed == "" {
		return
	}
	label, ok := quiz.MatchLabel(typed, snap.Labels())
	if !ok {
		return
	}
	for _, b := range snap.Balloons {
		if b.Label == label && !b.Popped {
			c.pop(b.ID)
			return
		}
	}
}

// popAt pops the topmost balloon under a mouse click.
func (c *Client) popAt(col, row int) {
	x, y, ok := c.canvas.TerminalToLogical(col, row)
	if !ok {
		return
	}
	for i := len(c.state.sprites) - 1; i >= 0; i-- {
		if s := c.state.sprites[i]; s.Contains(x, y) {
			c.pop(s.ID)
			return
		}
	}
}

// syncSprites rebuilds the balloon sprites from a snapshot and bursts the
// ones that were popped since the last frame.
func (c *Client) syncSprites(snap *game.Snapshot) {
	c.state.sprites = c.state.sprites[:0]
	if snap == nil {
		return
	}
	height := snap.BalloonSize / 100 * c.state.View.Height
	live := make(map[string]bool, len(snap.Balloons))
	for _, b := range snap.Balloons {
		s := object.NewSprite(b.ID, b.Label, b.Slot, b.X, b.Y, height, b.Popped, c.state.View)
		c.state.sprites = append(c.state.sprites, s)
		live[b.ID] = true
		if b.Popped && !c.state.seenPopped[b.ID] {
			c.state.seenPopped[b.ID] = true
			s.Pop(config.PopParticles, c.state)
		}
	}
	for id := range c.state.seenPopped {
		if !live[id] {
			delete(c.state.seenPopped, id)
		}
	}
}
