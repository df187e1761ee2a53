package game

import (
	"bytes"
	"fmt"
)

// Square is the content of one grid position.
type Square byte

const (
	Slot Square = ' ' // Free wall slot or crossing
	Open Square = 'o' // Free path cell
	Wall Square = '#' // Wall segment
)

// Occupant returns the square marking a path cell held by the named player.
func Occupant(name string) Square {
	return Square(name[0])
}

func (s Square) Occupied() bool {
	return s != Slot && s != Open && s != Wall
}

type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "v"
	}
	return "h"
}

// Cell is a grid coordinate. Path cells have both coordinates even.
type Cell struct {
	Row int
	Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("%d,%d", c.Row, c.Col)
}

func (c Cell) add(dr, dc int) Cell {
	return Cell{Row: c.Row + dr, Col: c.Col + dc}
}

// between returns the slot halfway between two path cells two units apart.
func between(a, b Cell) Cell {
	return Cell{Row: (a.Row + b.Row) / 2, Col: (a.Col + b.Col) / 2}
}

// IsPathCell reports whether c lies on the even/even lattice.
func IsPathCell(c Cell) bool {
	return c.Row%2 == 0 && c.Col%2 == 0
}

// Board is the (2N-1)x(2N-1) grid of path cells and wall slots.
type Board struct {
	size    int
	dim     int
	squares []Square // Row-major
}

// NewBoard returns a fresh board for a logical side length of size.
func NewBoard(size int) *Board {
	dim := 2*size - 1
	b := &Board{
		size:    size,
		dim:     dim,
		squares: make([]Square, dim*dim),
	}
	for i := range b.squares {
		b.squares[i] = Slot
	}
	for r := 0; r < dim; r += 2 {
		for c := 0; c < dim; c += 2 {
			b.squares[r*dim+c] = Open
		}
	}
	return b
}

func (b *Board) Size() int { return b.size }
func (b *Board) Dim() int  { return b.dim }

func (b *Board) Clone() *Board {
	squares := make([]Square, len(b.squares))
	copy(squares, b.squares)
	return &Board{size: b.size, dim: b.dim, squares: squares}
}

func (b *Board) Equal(other *Board) bool {
	return b.size == other.size && bytes.Equal(b.bytes(), other.bytes())
}

func (b *Board) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < b.dim && c.Col >= 0 && c.Col < b.dim
}

// At returns the square at c. c must be in bounds.
func (b *Board) At(c Cell) Square {
	return b.squares[c.Row*b.dim+c.Col]
}

func (b *Board) set(c Cell, s Square) {
	b.squares[c.Row*b.dim+c.Col] = s
}

func (b *Board) IsWall(c Cell) bool {
	return b.At(c) == Wall
}

// PlacePlayer marks the player's position with its identity.
func (b *Board) PlacePlayer(p *Player) {
	b.set(p.Position, Occupant(p.Name))
}

// ClearCell frees a path cell.
func (b *Board) ClearCell(c Cell) {
	b.set(c, Open)
}

// wallSlots returns the three slots covered by a wall at the anchor. The
// slots may be out of bounds.
func wallSlots(row, col int, o Orientation) [3]Cell {
	if o == Vertical {
		return [3]Cell{{row - 1, col}, {row, col}, {row + 1, col}}
	}
	return [3]Cell{{row, col - 1}, {row, col}, {row, col + 1}}
}

// CanPlaceWall reports whether PlaceWall would succeed, ignoring connectivity.
func (b *Board) CanPlaceWall(row, col int, o Orientation) bool {
	if row%2 == 0 || col%2 == 0 {
		return false
	}
	for _, s := range wallSlots(row, col, o) {
		if !b.InBounds(s) || b.At(s) == Wall {
			return false
		}
	}
	return true
}

// PlaceWall writes a wall spanning three slots centred on the odd/odd anchor.
// It leaves the board untouched and returns false when the anchor is not
// odd/odd, the wall would leave the grid, or any slot already holds a wall.
// Connectivity is the caller's concern.
func (b *Board) PlaceWall(row, col int, o Orientation) bool {
	if !b.CanPlaceWall(row, col, o) {
		return false
	}
	for _, s := range wallSlots(row, col, o) {
		b.set(s, Wall)
	}
	return true
}

// PathExists reports whether some unwalled route leads from start to goalRow.
func (b *Board) PathExists(start Cell, goalRow int) bool {
	return PathExists(b, start, goalRow)
}

// WallCount returns the number of wall segments on the board.
func (b *Board) WallCount() int {
	return bytes.Count(b.bytes(), []byte{byte(Wall)})
}

func (b *Board) bytes() []byte {
	out := make([]byte, len(b.squares))
	for i, s := range b.squares {
		out[i] = byte(s)
	}
	return out
}
