package game

import (
	"fmt"
	"strconv"
	"strings"
)

type MoveKind int

const (
	NoMoveKind MoveKind = iota
	StepMove            // Step or jump to a path cell
	WallMove            // Wall placement at an odd/odd anchor
)

// WallPlacement locates a wall by its anchor and orientation.
type WallPlacement struct {
	Row         int
	Col         int
	Orientation Orientation
}

// Move is either a step to To or a wall placement. Only the payload matching
// Kind is meaningful.
type Move struct {
	Kind MoveKind
	To   Cell
	Wall WallPlacement
}

// NoMove is returned when a player has nothing to play.
var NoMove = Move{}

func NewStep(to Cell) Move {
	return Move{Kind: StepMove, To: to}
}

func NewWall(row, col int, o Orientation) Move {
	return Move{Kind: WallMove, Wall: WallPlacement{Row: row, Col: col, Orientation: o}}
}

func (m Move) IsNone() bool {
	return m.Kind == NoMoveKind
}

func (m Move) String() string {
	switch m.Kind {
	case StepMove:
		return "step " + m.To.String()
	case WallMove:
		return fmt.Sprintf("wall %d,%d %s", m.Wall.Row, m.Wall.Col, m.Wall.Orientation)
	case NoMoveKind:
		return "none"
	}
	return fmt.Sprintf("unknown(%d)", int(m.Kind))
}

// ParseMove reads the notation produced by Move.String.
func ParseMove(s string) (Move, error) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return NoMove, fmt.Errorf("cannot parse move %q", s)
	}
	cell, err := ParseCell(fields[1])
	if err != nil {
		return NoMove, err
	}
	switch fields[0] {
	case "step":
		if len(fields) != 2 {
			return NoMove, fmt.Errorf("cannot parse move %q", s)
		}
		return NewStep(cell), nil
	case "wall":
		if len(fields) != 3 {
			return NoMove, fmt.Errorf("cannot parse move %q", s)
		}
		o, err := ParseOrientation(fields[2])
		if err != nil {
			return NoMove, err
		}
		return NewWall(cell.Row, cell.Col, o), nil
	}
	return NoMove, fmt.Errorf("cannot parse move %q: %w", s, ErrUnknownMove)
}

// ParseCell reads a "row,col" pair.
func ParseCell(s string) (Cell, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Cell{}, fmt.Errorf("cannot parse cell %q", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Cell{}, fmt.Errorf("cannot parse cell %q: %w", s, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Cell{}, fmt.Errorf("cannot parse cell %q: %w", s, err)
	}
	return Cell{Row: row, Col: col}, nil
}

func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(s) {
	case "h", "horizontal":
		return Horizontal, nil
	case "v", "vertical":
		return Vertical, nil
	}
	return Horizontal, fmt.Errorf("unknown orientation %q", s)
}
