package client

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/tomz197/balloons/internal/game"
)

// styles holds the HUD styles for one connection.
type styles struct {
	prompt  lipgloss.Style
	status  lipgloss.Style
	hint    lipgloss.Style
	typed   lipgloss.Style
	title   lipgloss.Style
	message map[game.MessageKind]lipgloss.Style
}

// newStyles binds styles to the connection's writer. SSH sessions are not
// detected as terminals, so the colour profile is set explicitly.
func newStyles(w io.Writer, noColor bool) styles {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	} else {
		r.SetColorProfile(termenv.ANSI256)
	}
	base := r.NewStyle()
	return styles{
		prompt: base.Bold(true).Foreground(lipgloss.Color("255")),
		status: base.Foreground(lipgloss.Color("252")),
		hint:   base.Foreground(lipgloss.Color("244")),
		typed:  base.Foreground(lipgloss.Color("39")),
		title:  base.Bold(true).Foreground(lipgloss.Color("205")),
		message: map[game.MessageKind]lipgloss.Style{
			game.MessageNone:      base,
			game.MessageCorrect:   base.Bold(true).Foreground(lipgloss.Color("42")),
			game.MessageIncorrect: base.Bold(true).Foreground(lipgloss.Color("196")),
			game.MessageMiss:      base.Bold(true).Foreground(lipgloss.Color("220")),
			game.MessageGameOver:  base.Bold(true).Foreground(lipgloss.Color("201")),
		},
	}
}

// line renders text padded or cut to exactly width cells.
func line(style lipgloss.Style, text string, width int, align lipgloss.Position) string {
	return style.Inline(true).Width(width).MaxWidth(width).Align(align).Render(text)
}
