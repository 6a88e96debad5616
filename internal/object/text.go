package object

import (
	"unicode/utf8"

	"github.com/tomz197/balloons/internal/draw"
)

// Text is a one-line overlay at a 1-based canvas position.
type Text struct {
	Col   int
	Row   int
	Value string
	Style string // ANSI attributes, reset after the text
}

// Centered returns a Text whose middle sits on col.
func Centered(col, row int, value, style string) Text {
	return Text{Col: col - utf8.RuneCountInString(value)/2, Row: row, Value: value, Style: style}
}

// Draw writes the text, clipped to the canvas, and marks the cells it
// covered so the canvas repaints them on the next frame.
func (t Text) Draw(ctx DrawContext) error {
	if t.Value == "" {
		return nil
	}
	width := ctx.Canvas.TerminalWidth()
	if t.Row < 1 || t.Row > ctx.Canvas.TerminalHeight() {
		return nil
	}
	runes := []rune(t.Value)
	col := t.Col
	if col < 1 {
		runes = runes[min(1-col, len(runes)):]
		col = 1
	}
	if over := col + len(runes) - 1 - width; over > 0 {
		runes = runes[:max(len(runes)-over, 0)]
	}
	if len(runes) == 0 {
		return nil
	}

	ctx.Writer.MoveCursor(col, t.Row)
	if t.Style != "" {
		ctx.Writer.WriteString(t.Style)
	}
	ctx.Writer.WriteString(string(runes))
	if t.Style != "" {
		ctx.Writer.WriteString(draw.ColorReset)
	}
	ctx.Canvas.MarkTextDirty(col, t.Row, len(runes))
	return nil
}

// Update is a no-op for static text.
func (t Text) Update(UpdateContext) (bool, error) {
	return false, nil
}
