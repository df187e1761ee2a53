package shell

import (
	"bytes"
	"strings"
	"testing"

	"quoridor/config"
	"quoridor/game"

	"github.com/stretchr/testify/require"
)

func testController(t *testing.T, size int) (*ShellController, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	sc, err := newController(&config.Config{
		Size:       size,
		HumanLevel: "easy",
		AILevel:    "medium",
		Seed:       7,
		Presets:    config.DefaultPresets(),
	}, &out)
	require.NoError(t, err)
	return sc, &out
}

func TestRender(t *testing.T) {
	sc, out := testController(t, 3)

	Render(out, sc.state)

	lines := strings.Split(out.String(), "\n")
	require.Equal(t, "      0  1  2  3  4", lines[0])
	require.Equal(t, "  0  .     1     . ", lines[1])
	require.Equal(t, "  1                ", lines[2])
	require.Equal(t, "  4  .     2     . ", lines[5])
	require.Equal(t, "> player 1 at 0,2, goal row 4, 10 walls left", lines[6])
	require.Equal(t, "  player 2 at 4,2, goal row 0, 10 walls left", lines[7])
}

func TestRenderWalls(t *testing.T) {
	b := game.NewBoard(3)
	require.True(t, b.PlaceWall(1, 1, game.Horizontal))
	gs := game.NewGameState(b, []*game.Player{
		game.NewPlayer("1", game.Cell{Row: 0, Col: 0}, 4, 0),
		game.NewPlayer("2", game.Cell{Row: 4, Col: 4}, 0, 1),
	}, 1, nil)
	var out bytes.Buffer

	Render(&out, gs)

	lines := strings.Split(out.String(), "\n")
	require.Equal(t, "  1  #  #  #       ", lines[2])
	require.Equal(t, "  player 1 at 0,0, goal row 4, 0 walls left", lines[6])
	require.Equal(t, "> player 2 at 4,4, goal row 0, 1 walls left", lines[7])
}

func TestExecute(t *testing.T) {
	t.Run("blank lines do nothing", func(t *testing.T) {
		sc, out := testController(t, 3)
		require.NoError(t, sc.Execute(""))
		require.Empty(t, out.String())
	})

	t.Run("help lists the commands", func(t *testing.T) {
		sc, out := testController(t, 3)
		require.NoError(t, sc.Execute("help"))
		require.Contains(t, out.String(), "wall <r> <c> h|v")
	})

	t.Run("unknown commands are reported", func(t *testing.T) {
		sc, _ := testController(t, 3)
		require.ErrorContains(t, sc.Execute("dance"), "unknown command")
	})

	t.Run("unbalanced quotes are reported", func(t *testing.T) {
		sc, _ := testController(t, 3)
		require.Error(t, sc.Execute(`move "2,2`))
	})

	t.Run("exit asks to quit", func(t *testing.T) {
		sc, _ := testController(t, 3)
		require.ErrorIs(t, sc.Execute("exit"), errQuit)
	})

	t.Run("moves lists the legal moves", func(t *testing.T) {
		sc, out := testController(t, 3)
		require.NoError(t, sc.Execute("moves"))
		require.Contains(t, out.String(), "step 2,2\n")
	})

	t.Run("hint suggests a move and the shortest route", func(t *testing.T) {
		sc, out := testController(t, 3)
		require.NoError(t, sc.Execute("hint"))
		require.Contains(t, out.String(), "hint: ")
		require.Contains(t, out.String(), "shortest route is 2 steps")
	})

	t.Run("new starts another game", func(t *testing.T) {
		sc, _ := testController(t, 3)
		require.NoError(t, sc.Execute("new 4"))
		require.Equal(t, 4, sc.state.Board().Size())
		require.Equal(t, 0, sc.state.Turn())

		require.Error(t, sc.Execute("new 1"))
		require.Error(t, sc.Execute("new big"))
	})

	t.Run("level changes the AI tier", func(t *testing.T) {
		sc, out := testController(t, 3)
		require.NoError(t, sc.Execute("level HARD"))
		require.Equal(t, "hard", sc.aiLevel.Name)
		require.Contains(t, out.String(), "AI level set to hard")

		require.ErrorIs(t, sc.Execute("level nightmare"), config.ErrUnknownPreset)
		require.Error(t, sc.Execute("level"))
	})
}

func TestExecuteMoves(t *testing.T) {
	t.Run("an illegal step leaves the game as it was", func(t *testing.T) {
		sc, _ := testController(t, 3)
		before := sc.state

		require.ErrorIs(t, sc.Execute("move up"), game.ErrIllegalMove)
		require.Same(t, before, sc.state)
	})

	t.Run("the AI answers and takes a winning jump", func(t *testing.T) {
		sc, out := testController(t, 3)

		require.NoError(t, sc.Execute("move down"))

		require.Contains(t, out.String(), "player 2 plays step 0,2")
		require.Contains(t, out.String(), "player 2 wins!")
		winner, ok := sc.state.Winner()
		require.True(t, ok)
		require.Equal(t, "2", winner)

		require.ErrorIs(t, sc.Execute("move 2,0"), errGameOver)
		require.ErrorIs(t, sc.Execute("ai"), errGameOver)
		require.ErrorIs(t, sc.Execute("hint"), errGameOver)
	})

	t.Run("a cell can be named directly", func(t *testing.T) {
		sc, _ := testController(t, 3)
		require.NoError(t, sc.Execute("move 2,2"))
		require.Equal(t, game.Cell{Row: 0, Col: 2}, sc.state.Player(1).Position)
	})

	t.Run("a direction towards the opponent jumps", func(t *testing.T) {
		sc, out := testController(t, 3)
		sc.state = game.NewGameState(game.NewBoard(3), []*game.Player{
			game.NewPlayer("1", game.Cell{Row: 0, Col: 2}, 4, 10),
			game.NewPlayer("2", game.Cell{Row: 2, Col: 2}, 0, 10),
		}, 0, nil)

		require.NoError(t, sc.Execute("move down"))

		require.Equal(t, game.Cell{Row: 4, Col: 2}, sc.state.Player(0).Position)
		require.Contains(t, out.String(), "player 1 wins!")
	})

	t.Run("walls are placed before the AI answers", func(t *testing.T) {
		sc, _ := testController(t, 3)

		require.NoError(t, sc.Execute("wall 1 1 h"))

		require.True(t, sc.state.Board().IsWall(game.Cell{Row: 1, Col: 0}))
		require.Equal(t, 9, sc.state.Player(0).Walls)
		require.Equal(t, 0, sc.state.Turn(), "The AI should have answered")
	})

	t.Run("malformed walls are rejected", func(t *testing.T) {
		sc, _ := testController(t, 3)
		require.Error(t, sc.Execute("wall 1 1"))
		require.Error(t, sc.Execute("wall 1 x h"))
		require.Error(t, sc.Execute("wall 1 1 d"))
		require.ErrorIs(t, sc.Execute("wall 2 2 h"), game.ErrIllegalMove)
	})

	t.Run("ai plays for the player to move", func(t *testing.T) {
		sc, out := testController(t, 3)
		require.NoError(t, sc.Execute("ai"))
		require.Contains(t, out.String(), "player 1 plays ")
		require.Equal(t, 1, sc.state.Turn())
	})
}

func TestSearchTablesPerPlayer(t *testing.T) {
	var out bytes.Buffer
	sc, err := newController(&config.Config{
		Size:       3,
		HumanLevel: "medium",
		AILevel:    "easy",
		Seed:       3,
		Presets:    config.DefaultPresets(),
	}, &out)
	require.NoError(t, err)
	require.Len(t, sc.ais, 2)
	require.Len(t, sc.hinters, 2)

	require.NoError(t, sc.Execute("hint"))
	first := sc.hinters[0].Table().Len()
	require.Positive(t, first)
	require.Zero(t, sc.hinters[1].Table().Len(), "Player 2's hints should not be searched yet")

	sc.state = sc.state.MustApply(game.NewStep(game.Cell{Row: 0, Col: 0}))
	require.NoError(t, sc.Execute("hint"))

	require.Positive(t, sc.hinters[1].Table().Len())
	require.Equal(t, first, sc.hinters[0].Table().Len(), "Player 1's table should be left alone")
	require.NotSame(t, sc.ais[0], sc.ais[1])
}
