package client

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/balloons/internal/draw"
	"github.com/tomz197/balloons/internal/game"
	"github.com/tomz197/balloons/internal/loop/config"
	"github.com/tomz197/balloons/internal/object"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On screen or inactivity transitions, do a full terminal clear so UI
	// elements from the previous screen don't persist.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()
	ctx := object.DrawContext{
		Canvas: c.canvas,
		Writer: c.chunkWriter,
		View:   c.state.View,
	}

	showBoard := c.state.GameState == GameStatePlaying || c.state.GameState == GameStateGameOver
	if showBoard && !c.state.isInactive {
		for _, s := range c.state.sprites {
			if err := s.Draw(ctx); err != nil {
				return err
			}
		}
		for _, obj := range c.state.effects {
			if err := obj.Draw(ctx); err != nil {
				return err
			}
		}
	}

	c.canvas.Render(c.chunkWriter)
	c.canvas.RenderBorder(c.chunkWriter)

	if showBoard && !c.state.isInactive {
		for _, s := range c.state.sprites {
			if s.Popped {
				continue
			}
			if err := s.CaptionText(c.canvas).Draw(ctx); err != nil {
				return err
			}
		}
	}

	if err := c.drawUI(ctx); err != nil {
		return err
	}
	return c.chunkWriter.Flush()
}

// drawUI draws the overlay for the current screen.
func (c *Client) drawUI(ctx object.DrawContext) error {
	centerX := c.canvas.TerminalWidth() / 2
	centerY := c.canvas.TerminalHeight() / 2

	if c.state.GameState == GameStateShutdown {
		return drawTexts(ctx, c.shutdownScreen(centerX, centerY))
	}
	if c.state.isInactive {
		return drawTexts(ctx, c.inactivityScreen(centerX, centerY))
	}

	switch c.state.GameState {
	case GameStateStart:
		return drawTexts(ctx, c.startScreen(centerX, centerY))
	case GameStatePlaying:
		c.drawHUD(c.currentSnapshot())
	case GameStateGameOver:
		c.drawHUD(c.handle.Snapshot())
		return drawTexts(ctx, c.gameOverScreen(centerX, centerY))
	}
	return nil
}

func drawTexts(ctx object.DrawContext, texts []object.Text) error {
	for _, t := range texts {
		if err := t.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}

// drawHUD writes the prompt, status and typed answer rows below the canvas.
// Every row is padded to the canvas width so shorter values overwrite
// longer ones from earlier frames.
func (c *Client) drawHUD(snap *game.Snapshot) {
	width := c.canvas.TerminalWidth()
	row := c.canvas.TerminalHeight() + 1
	if c.canvas.OffsetRow() >= 1 {
		row++ // Below the border
	}
	st := c.styles
	cw := c.chunkWriter

	if snap == nil {
		cw.WriteAt(1, row, line(st.hint, "Loading...", width, lipgloss.Center))
		cw.WriteAt(1, row+1, line(st.status, "", width, lipgloss.Left))
		cw.WriteAt(1, row+2, line(st.status, "", width, lipgloss.Left))
		return
	}

	cw.WriteAt(1, row, line(st.prompt, "Pop the balloon for:  "+snap.Prompt, width, lipgloss.Center))

	left := fmt.Sprintf(" Score %d   Round %d", snap.Score, snap.Round)
	if snap.TimerEnabled {
		left += fmt.Sprintf("   Time %d", snap.TimeRemaining)
	}
	right := ""
	if top := c.server.TopScores(); len(top) > 0 {
		right = fmt.Sprintf("Best %s %d ", top[0].Username, top[0].Score)
	}
	third := width / 3
	status := line(st.status, left, third, lipgloss.Left) +
		line(st.message[snap.MessageKind], snap.Message, width-2*third, lipgloss.Center) +
		line(st.status, right, third, lipgloss.Right)
	cw.WriteAt(1, row+1, status)

	typed := " > " + string(c.state.Typed) + "_"
	hint := "1-9 pop  type+Enter answer  click pop  Tab restart  Esc quit "
	if width-len(hint) < config.MaxTypedLength+4 {
		cw.WriteAt(1, row+2, line(st.typed, typed, width, lipgloss.Left))
		return
	}
	cw.WriteAt(1, row+2, line(st.typed, typed, width-len(hint), lipgloss.Left)+line(st.hint, hint, len(hint), lipgloss.Right))
}

var titleArt = []string{
	` ___   _   _    _    ___   ___  _  _ ___ `,
	`| _ ) /_\ | |  | |  / _ \ / _ \| \| / __|`,
	`| _ \/ _ \| |__| |_| (_) | (_) | .' \__ \`,
	`|___/_/ \_\____|____\___/ \___/|_|\_|___/`,
}

// startScreen lays out the title screen.
func (c *Client) startScreen(centerX, centerY int) []object.Text {
	top := centerY - 9
	var texts []object.Text
	for i, l := range titleArt {
		texts = append(texts, object.Centered(centerX, top+i, l, draw.ColorBold))
	}
	y := top + len(titleArt) + 1
	texts = append(texts, object.Centered(centerX, y, "~ Pop the balloon with the right translation ~", ""))

	controls := []string{
		"Controls",
		"1-9  . . . . . . Pop balloon by number",
		"Click  . . . . . . . Pop balloon",
		"Type + Enter  . . Pop by answer",
		"Tab  . . . . . . . . . Restart",
		"Esc  . . . . . . . . . . Quit",
	}
	for i, l := range controls {
		texts = append(texts, object.Centered(centerX, y+2+i, l, ""))
	}
	y += 2 + len(controls) + 1

	if time.Now().UnixMilli()/600%2 == 0 {
		texts = append(texts, object.Centered(centerX, y, ">>  Press ENTER to Start  <<", draw.ColorBold))
	}
	return append(texts, c.leaderboard(centerX, y+2)...)
}

// gameOverScreen lays out the final score over the frozen board.
func (c *Client) gameOverScreen(centerX, centerY int) []object.Text {
	top := centerY - 5
	texts := []object.Text{
		object.Centered(centerX, top, "  GAME OVER  ", draw.ColorBold),
		object.Centered(centerX, top+2, fmt.Sprintf("  Final score: %d  ", c.state.FinalScore), ""),
	}
	texts = append(texts, c.leaderboard(centerX, top+4)...)
	if time.Now().UnixMilli()/600%2 == 0 {
		texts = append(texts, object.Centered(centerX, top+6+config.TopScoreCount, "  >>  Press ENTER to Play Again, Q to Quit  <<  ", draw.ColorBold))
	}
	return texts
}

// leaderboard lists the top scores starting at row y.
func (c *Client) leaderboard(centerX, y int) []object.Text {
	top := c.server.TopScores()
	if len(top) == 0 {
		return nil
	}
	texts := []object.Text{object.Centered(centerX, y, "  Top scores  ", draw.ColorBrightCyan)}
	for i, e := range top {
		entry := fmt.Sprintf("  %d. %-*s %5d  ", i+1, config.MaxUsernameLength, e.Username, e.Score)
		texts = append(texts, object.Centered(centerX, y+1+i, entry, ""))
	}
	return texts
}

// inactivityScreen lays out the inactivity warning.
func (c *Client) inactivityScreen(centerX, centerY int) []object.Text {
	remaining := int(config.InactivityDisconnectUser - time.Since(c.lastInput).Seconds())
	return []object.Text{
		object.Centered(centerX, centerY-2, "INACTIVITY WARNING", draw.ColorBold),
		object.Centered(centerX, centerY, fmt.Sprintf("You have been inactive for too long. You will be disconnected in %d seconds.", remaining), ""),
		object.Centered(centerX, centerY+2, "Press any key to continue", ""),
	}
}

// shutdownScreen lays out the server shutdown notice.
func (c *Client) shutdownScreen(centerX, centerY int) []object.Text {
	remaining := int(c.state.shutdownTimer) + 1
	return []object.Text{
		object.Centered(centerX, centerY-3, "SERVER SHUTTING DOWN", draw.ColorBold),
		object.Centered(centerX, centerY-1, "The server is restarting for maintenance.", ""),
		object.Centered(centerX, centerY, "Please reconnect in a moment.", ""),
		object.Centered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining), ""),
		object.Centered(centerX, centerY+4, "Press Q to disconnect now", ""),
	}
}
