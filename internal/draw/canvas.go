package draw

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// maxChunkSize is the largest single write, sized to a typical MTU.
const maxChunkSize = 1400

// cell is what one terminal cell showed after the last Render.
type cell struct {
	top, bottom Color
	valid       bool
}

// Canvas is a colour pixel buffer with 2x vertical resolution. Game code
// draws in logical coordinates which are scaled to terminal pixels.
// Render only emits cells that changed since the previous frame.
type Canvas struct {
	termWidth      int
	termHeight     int
	subPixelHeight int
	pixels         []Color // [y*termWidth + x]
	shown          []cell  // [row*termWidth + col], last rendered frame

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64
	scaleY        float64

	// 0-based terminal offsets of the canvas origin.
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
	numBuf    [20]byte
}

// NewCanvas creates a canvas with a 1:1 mapping between logical units and pixels.
func NewCanvas(width, height int) *Canvas {
	return NewScaledCanvas(width, height, float64(width), float64(height*2))
}

// NewScaledCanvas creates a canvas of termWidth x termHeight cells that
// maps logicalWidth x logicalHeight onto its pixels.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize changes the terminal area while keeping the logical size.
// The next Render repaints every cell.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]Color, c.subPixelHeight*termWidth)
		c.shown = make([]cell, termHeight*termWidth)
	}
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset sets the 0-based terminal column and row of the canvas origin.
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels. What the terminal shows is untouched until Render.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render repaint every cell, e.g. after the
// screen was cleared.
func (c *Canvas) ForceRedraw() {
	clear(c.shown)
}

// MarkTextDirty makes the next Render repaint width cells starting at the
// 1-based canvas position (col, row). Call it for cells a text overlay
// wrote over so the overlay is erased once it is no longer drawn.
func (c *Canvas) MarkTextDirty(col, row, width int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := max(col-1, 0); x < min(col-1+width, c.termWidth); x++ {
		c.shown[r*c.termWidth+x].valid = false
	}
}

func (c *Canvas) setPixel(x, y int, color Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = color
	}
}

// Pixel returns the colour at pixel coordinates, ColorNone when out of range.
func (c *Canvas) Pixel(x, y int) Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return ColorNone
	}
	return c.pixels[y*c.termWidth+x]
}

// SetFloat sets the pixel under a logical coordinate.
func (c *Canvas) SetFloat(x, y float64, color Color) {
	c.setPixel(int(math.Round(x*c.scaleX)), int(math.Round(y*c.scaleY)), color)
}

// Render writes the cells that changed since the last Render to w.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	var fg, bg Color
	styled := false
	lastCol, lastRow := -1, -1

	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			now := cell{
				top:    c.pixels[row*2*c.termWidth+col],
				bottom: c.pixels[(row*2+1)*c.termWidth+col],
				valid:  true,
			}
			idx := row*c.termWidth + col
			if c.shown[idx] == now {
				continue
			}
			c.shown[idx] = now

			ch, cellFg, cellBg := glyph(now)
			if !styled || cellFg != fg || cellBg != bg {
				c.renderBuf.WriteString("\033[")
				c.renderBuf.WriteString(fgCodes[cellFg])
				c.renderBuf.WriteByte(';')
				c.renderBuf.WriteString(bgCodes[cellBg])
				c.renderBuf.WriteByte('m')
				fg, bg, styled = cellFg, cellBg, true
			}
			if row != lastRow || col != lastCol+1 {
				c.moveTo(col+1+c.offsetCol, row+1+c.offsetRow)
			}
			c.renderBuf.WriteRune(ch)
			lastCol, lastRow = col, row
		}
	}
	if styled {
		c.renderBuf.WriteString(ColorReset)
	}
	writeChunked(w, c.renderBuf.String())
}

func (c *Canvas) moveTo(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// glyph picks the character and colours for a cell.
func glyph(cl cell) (rune, Color, Color) {
	switch {
	case cl.top == ColorNone && cl.bottom == ColorNone:
		return BlockEmpty, ColorNone, ColorNone
	case cl.top == cl.bottom:
		return BlockFull, cl.top, ColorNone
	case cl.bottom == ColorNone:
		return BlockUpperHalf, cl.top, ColorNone
	case cl.top == ColorNone:
		return BlockLowerHalf, cl.bottom, ColorNone
	default:
		return BlockUpperHalf, cl.top, cl.bottom
	}
}

func writeChunked(w io.Writer, data string) {
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

// RenderBorder frames the canvas when the terminal has room around it.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1
	hasV := c.offsetRow >= 1

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	line := strings.Repeat("─", c.termWidth)

	var buf strings.Builder
	if hasV {
		if hasH {
			buf.WriteString("\033[" + strconv.Itoa(top) + ";" + strconv.Itoa(left) + "H┌" + line + "┐")
			buf.WriteString("\033[" + strconv.Itoa(bottom) + ";" + strconv.Itoa(left) + "H└" + line + "┘")
		} else {
			buf.WriteString("\033[" + strconv.Itoa(top) + ";" + strconv.Itoa(left+1) + "H" + line)
			buf.WriteString("\033[" + strconv.Itoa(bottom) + ";" + strconv.Itoa(left+1) + "H" + line)
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			r := strconv.Itoa(row)
			buf.WriteString("\033[" + r + ";" + strconv.Itoa(left) + "H│\033[" + r + ";" + strconv.Itoa(right) + "H│")
		}
	}
	io.WriteString(w, buf.String())
}

// LogicalWidth returns the logical width.
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height in sub-pixels.
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the canvas width in terminal columns.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the canvas height in terminal rows.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to a 1-based canvas
// position (col, row), without the centering offset.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}

// TerminalToLogical converts a 1-based screen position, as reported by a
// mouse click, to logical coordinates inside that cell.
// ok is false when the position lies outside the canvas.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64, ok bool) {
	cx := col - 1 - c.offsetCol
	cy := row - 1 - c.offsetRow
	if cx < 0 || cx >= c.termWidth || cy < 0 || cy >= c.termHeight {
		return 0, 0, false
	}
	x = float64(cx) / c.scaleX
	y = (float64(cy)*2 + 0.5) / c.scaleY
	return x, y, true
}
