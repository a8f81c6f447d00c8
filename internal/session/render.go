package session

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/grrosti/memory-game/internal/board"
)

// hiddenGlyph marks a face-down card.
const hiddenGlyph = "*"

var (
	accent = lipgloss.Color("#8BC34A")
	warn   = lipgloss.Color("#FFC107")
	muted  = lipgloss.Color("#6B7280")
)

// Renderer draws a board as a text grid with 1-based row and column headers.
// Colours are applied only when the writer is a colour terminal.
type Renderer struct {
	out     io.Writer
	header  lipgloss.Style
	hidden  lipgloss.Style
	matched lipgloss.Style
	pending lipgloss.Style
	plain   lipgloss.Style
}

// NewRenderer returns a Renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	r := lipgloss.NewRenderer(out)
	return &Renderer{
		out:     out,
		header:  r.NewStyle().Foreground(muted),
		hidden:  r.NewStyle().Foreground(muted),
		matched: r.NewStyle().Foreground(accent),
		pending: r.NewStyle().Foreground(warn).Bold(true),
		plain:   r.NewStyle(),
	}
}

// Draw writes the grid. Face-up cells show their value, face-down cells show
// hiddenGlyph, and cells listed in pending are highlighted.
func (r *Renderer) Draw(b *board.Board, pending ...board.Coord) {
	width := cellWidth(b)
	pad := func(s string) string { return s + strings.Repeat(" ", width-lipgloss.Width(s)) }
	isPending := func(c board.Coord) bool {
		for _, p := range pending {
			if p == c {
				return true
			}
		}
		return false
	}

	var sb strings.Builder
	rule := strings.Repeat("-", b.Cols*(width+1)+4)
	sb.WriteString(rule + "\n")

	sb.WriteString("    ")
	for c := 0; c < b.Cols; c++ {
		sb.WriteString(r.header.Render(pad(fmt.Sprint(c+1))) + " ")
	}
	sb.WriteString("\n")

	for row := 0; row < b.Rows; row++ {
		sb.WriteString(r.header.Render(fmt.Sprintf("%-2d", row+1)) + "| ")
		for col := 0; col < b.Cols; col++ {
			at := board.Coord{Row: row, Col: col}
			cell, _ := b.Cell(at)
			switch {
			case !cell.FaceUp:
				sb.WriteString(r.hidden.Render(pad(hiddenGlyph)))
			case isPending(at):
				sb.WriteString(r.pending.Render(pad(cell.Value)))
			case cell.Matched:
				sb.WriteString(r.matched.Render(pad(cell.Value)))
			default:
				sb.WriteString(r.plain.Render(pad(cell.Value)))
			}
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(rule + "\n")
	fmt.Fprint(r.out, sb.String())
}

// cellWidth fits the longest value and the widest column number.
func cellWidth(b *board.Board) int {
	w := len(fmt.Sprint(b.Cols))
	for row := 0; row < b.Rows; row++ {
		for col := 0; col < b.Cols; col++ {
			v, _ := b.CellValue(board.Coord{Row: row, Col: col})
			if n := lipgloss.Width(v); n > w {
				w = n
			}
		}
	}
	return w
}
