package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	t.Run("building a standard board", func(t *testing.T) {
		b := NewBoard(9)

		require.Equal(t, 17, b.Dim(), "Grid side should be 2N-1")
		require.Equal(t, Open, b.At(Cell{0, 0}), "Even/even squares should be path cells")
		require.Equal(t, Open, b.At(Cell{16, 16}), "Even/even squares should be path cells")
		require.Equal(t, Slot, b.At(Cell{0, 1}), "Squares between path cells should be wall slots")
		require.Equal(t, Slot, b.At(Cell{1, 1}), "Odd/odd squares should be crossing slots")
		require.Zero(t, b.WallCount(), "A fresh board has no walls")
	})
}

func TestBoardPlaceWall(t *testing.T) {
	t.Run("placing a horizontal wall", func(t *testing.T) {
		b := NewBoard(9)

		require.True(t, b.PlaceWall(1, 1, Horizontal))
		for _, c := range []Cell{{1, 0}, {1, 1}, {1, 2}} {
			require.True(t, b.IsWall(c), "Wall should cover %v", c)
		}
		require.Equal(t, 3, b.WallCount(), "A wall spans exactly three slots")
	})

	t.Run("placing a vertical wall", func(t *testing.T) {
		b := NewBoard(9)

		require.True(t, b.PlaceWall(3, 5, Vertical))
		for _, c := range []Cell{{2, 5}, {3, 5}, {4, 5}} {
			require.True(t, b.IsWall(c), "Wall should cover %v", c)
		}
	})

	t.Run("placing a wall twice at the same anchor", func(t *testing.T) {
		b := NewBoard(9)
		require.True(t, b.PlaceWall(1, 1, Horizontal))
		before := b.Clone()

		require.False(t, b.PlaceWall(1, 1, Horizontal), "Second placement should fail")
		require.True(t, b.Equal(before), "Failed placement should not mutate the board")
	})

	t.Run("crossing an existing wall", func(t *testing.T) {
		b := NewBoard(9)
		require.True(t, b.PlaceWall(1, 1, Horizontal))

		require.False(t, b.PlaceWall(1, 1, Vertical), "Walls should not cross at a shared anchor")
		require.False(t, b.PlaceWall(1, 3, Horizontal), "Walls should not overlap along an axis")
		require.True(t, b.PlaceWall(1, 5, Horizontal), "Adjacent walls that do not overlap are allowed")
	})

	t.Run("rejecting bad anchors", func(t *testing.T) {
		b := NewBoard(9)

		require.False(t, b.PlaceWall(2, 1, Horizontal), "Even row anchor should fail")
		require.False(t, b.PlaceWall(1, 2, Vertical), "Even column anchor should fail")
		require.False(t, b.PlaceWall(17, 1, Horizontal), "Anchor outside the grid should fail")
		require.False(t, b.PlaceWall(-1, 1, Vertical), "Anchor outside the grid should fail")
		require.Zero(t, b.WallCount(), "Failed placements should not mutate the board")
	})
}

func TestBoardClone(t *testing.T) {
	t.Run("mutating a clone", func(t *testing.T) {
		b := NewBoard(5)
		clone := b.Clone()

		require.True(t, clone.PlaceWall(3, 3, Vertical))

		require.Zero(t, b.WallCount(), "Original should not see the clone's wall")
		require.False(t, b.Equal(clone))
	})
}
