// Package draw renders the play area to an ANSI terminal using half-block
// characters, giving each terminal cell two vertically stacked pixels.
package draw

import (
	"fmt"
	"io"
)

// Point is a position in logical canvas coordinates.
type Point struct {
	X, Y float64
}

// Block characters used by the renderer.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
	BlockEmpty     = ' '
)

// Color is a pixel colour. ColorNone marks an empty pixel.
type Color uint8

// Palette. Values index fgCodes and bgCodes.
const (
	ColorNone Color = iota
	ColorWhite
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorGray
)

// BalloonColors is the rotation used to tint balloons by slot.
var BalloonColors = []Color{ColorRed, ColorBlue, ColorYellow, ColorGreen, ColorMagenta, ColorCyan}

var fgCodes = [...]string{"39", "97", "91", "92", "93", "94", "95", "96", "90"}
var bgCodes = [...]string{"49", "107", "101", "102", "103", "104", "105", "106", "100"}

// ANSI attribute sequences for text overlays.
const (
	ColorReset      = "\033[0m"
	ColorBold       = "\033[1m"
	ColorBrightCyan = "\033[96m"
)

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// EnableMouse turns on click reporting in SGR extended mode.
func EnableMouse(w io.Writer) {
	fmt.Fprint(w, "\033[?1000h\033[?1006h")
}

// DisableMouse turns click reporting off again.
func DisableMouse(w io.Writer) {
	fmt.Fprint(w, "\033[?1006l\033[?1000l")
}

// MoveCursor moves cursor to a specific position (1-based).
func MoveCursor(w io.Writer, x, y int) {
	fmt.Fprintf(w, "\033[%d;%dH", y, x)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
