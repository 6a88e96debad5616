package object

import (
	"strconv"

	"github.com/tomz197/balloons/internal/draw"
	"github.com/tomz197/balloons/internal/physics"
)

// stringLength is the length of a balloon's string in logical units.
const stringLength = 6

// Sprite is the on-screen form of a balloon: a body ellipse in logical
// view coordinates with a string below and a numbered label on top.
type Sprite struct {
	ID     string
	Label  string
	Slot   int
	CX, CY float64 // Body centre
	RX, RY float64 // Body radii
	Color  draw.Color
	Popped bool
}

// NewSprite places a balloon whose body bottom sits at play-area
// percentages (x, y). height is the body height in view units.
func NewSprite(id, label string, slot int, x, y, height float64, popped bool, view Screen) Sprite {
	vx, vy := view.ToView(x, y)
	ry := height / 2
	return Sprite{
		ID:     id,
		Label:  label,
		Slot:   slot,
		CX:     vx,
		CY:     vy - ry,
		RX:     ry * 0.9,
		RY:     ry,
		Color:  draw.BalloonColors[slot%len(draw.BalloonColors)],
		Popped: popped,
	}
}

// Caption is the label drawn under the balloon, prefixed with its key.
func (s Sprite) Caption() string {
	return strconv.Itoa(s.Slot+1) + " " + s.Label
}

// Contains reports whether a logical point hits the balloon body. The
// body is padded by one unit so small balloons stay clickable.
func (s Sprite) Contains(px, py float64) bool {
	if s.Popped {
		return false
	}
	return physics.PointInEllipse(px, py, s.CX, s.CY, s.RX+1, s.RY+1)
}

// Draw renders the body and its string. Popped balloons are left to
// their particles.
func (s Sprite) Draw(ctx DrawContext) error {
	if s.Popped {
		return nil
	}
	bottom := s.CY + s.RY
	ctx.Canvas.DrawLine(draw.Point{X: s.CX, Y: bottom}, draw.Point{X: s.CX, Y: bottom + stringLength}, draw.ColorGray)
	ctx.Canvas.FillEllipse(s.CX, s.CY, s.RX, s.RY, s.Color)
	ctx.Canvas.SetFloat(s.CX-s.RX/2, s.CY-s.RY/2, draw.ColorWhite)
	return nil
}

// CaptionText places the caption across the middle of the body. It is
// written after the canvas is rendered so the pixels don't cover it.
func (s Sprite) CaptionText(canvas *draw.Canvas) Text {
	col, row := canvas.LogicalToTerminal(s.CX, s.CY)
	return Centered(col, row, s.Caption(), draw.ColorBold)
}

// Pop bursts the sprite into count particles.
func (s Sprite) Pop(count int, spawner Spawner) {
	SpawnPop(s.CX, s.CY, count, s.Color, spawner)
}

// Update is a no-op; sprites are rebuilt from each snapshot.
func (s Sprite) Update(UpdateContext) (bool, error) {
	return false, nil
}
