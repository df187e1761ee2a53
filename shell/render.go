package shell

import (
	"fmt"
	"io"
	"strings"

	"quoridor/game"
)

// Render draws the grid with row and column indexes, then the wall budget of
// every player.
func Render(w io.Writer, gs *game.GameState) {
	b := gs.Board()
	var sb strings.Builder

	sb.WriteString("    ")
	for col := 0; col < b.Dim(); col++ {
		fmt.Fprintf(&sb, "%3d", col)
	}
	sb.WriteString("\n")

	for row := 0; row < b.Dim(); row++ {
		fmt.Fprintf(&sb, "%3d ", row)
		for col := 0; col < b.Dim(); col++ {
			fmt.Fprintf(&sb, " %c ", glyph(b.At(game.Cell{Row: row, Col: col})))
		}
		sb.WriteString("\n")
	}

	for i, p := range gs.Players() {
		marker := " "
		if i == gs.Turn() {
			marker = ">"
		}
		fmt.Fprintf(&sb, "%s player %s at %s, goal row %d, %d walls left\n", marker, p.Name, p.Position, p.GoalRow, p.Walls)
	}
	io.WriteString(w, sb.String())
}

func glyph(s game.Square) rune {
	switch s {
	case game.Open:
		return '.'
	case game.Wall:
		return '#'
	case game.Slot:
		return ' '
	}
	return rune(s)
}
