package model

import (
	"io"
	"strings"

	"github.com/KonyakB/GameOfLife/log"
)

const (
	gridPosAlive = '█'
	gridPosDead  = '·'

	ansiClearScreen = "\033[H\033[2J"
)

// TerminalRenderer draws a grid as text, one glyph per cell and one line per row
type TerminalRenderer struct {
	Out   io.Writer
	Alive rune
	Dead  rune
}

// NewTerminalRenderer returns a renderer writing to out with the default glyphs
func NewTerminalRenderer(out io.Writer) *TerminalRenderer {
	return &TerminalRenderer{
		Out:   out,
		Alive: gridPosAlive,
		Dead:  gridPosDead,
	}
}

// Render returns the textual form of the grid
func (r *TerminalRenderer) Render(g *Grid) string {
	var sb strings.Builder
	sb.Grow(g.rows * (g.columns + 1) * 3)
	for i := range g.rows {
		for j := range g.columns {
			if g.cellAt(i, j).alive {
				sb.WriteRune(r.Alive)
			} else {
				sb.WriteRune(r.Dead)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Display renders the grid to the output sink
func (r *TerminalRenderer) Display(g *Grid) error {
	_, err := io.WriteString(r.Out, r.Render(g))
	return err
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	if _, err := io.WriteString(r.Out, ansiClearScreen); err != nil {
		log.Error("Error clearing terminal: %v", err)
	}
}
