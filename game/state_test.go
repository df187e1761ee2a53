package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// customState places player "1" (racing down) and player "2" (racing up) on
// a fresh board of the given size. Walls listed are placed before the players.
func customState(t *testing.T, rules *Rules, p1, p2 Cell, turn int, walls ...WallPlacement) *GameState {
	t.Helper()
	b := NewBoard(rules.Size)
	for _, w := range walls {
		require.True(t, b.PlaceWall(w.Row, w.Col, w.Orientation), "Setup wall %v should fit", w)
	}
	players := []*Player{
		NewPlayer("1", p1, b.Dim()-1, rules.Walls),
		NewPlayer("2", p2, 0, rules.Walls),
	}
	return NewGameState(b, players, turn, rules)
}

func stepsOf(moves []Move) []Move {
	var steps []Move
	for _, m := range moves {
		if m.Kind == StepMove {
			steps = append(steps, m)
		}
	}
	return steps
}

func TestNewGame(t *testing.T) {
	t.Run("opening position", func(t *testing.T) {
		gs := NewGame(NewStandardRules())

		require.Equal(t, Cell{0, 8}, gs.Player(0).Position)
		require.Equal(t, Cell{16, 8}, gs.Player(1).Position)
		require.Equal(t, 16, gs.Player(0).GoalRow)
		require.Equal(t, 0, gs.Player(1).GoalRow)
		require.Equal(t, 0, gs.Turn(), "Player 1 should open")
		require.False(t, gs.IsTerminal())
	})

	t.Run("even board sizes keep players on path cells", func(t *testing.T) {
		gs := NewGame(NewStandardRules(WithSize(4)))

		require.True(t, IsPathCell(gs.Player(0).Position))
		require.True(t, IsPathCell(gs.Player(1).Position))
	})
}

func TestGameStateLegalMoves(t *testing.T) {
	t.Run("opening steps", func(t *testing.T) {
		gs := NewGame(NewStandardRules())

		steps := stepsOf(gs.LegalMoves())
		require.Equal(t, []Move{
			NewStep(Cell{2, 8}),
			NewStep(Cell{0, 6}),
			NewStep(Cell{0, 10}),
		}, steps)
	})

	t.Run("steps come before walls", func(t *testing.T) {
		gs := NewGame(NewStandardRules(WithNeutralWallRate(1)))

		moves := gs.LegalMoves()
		seenWall := false
		for _, m := range moves {
			if m.Kind == WallMove {
				seenWall = true
				continue
			}
			require.False(t, seenWall, "Step %s listed after a wall", m)
		}
		require.True(t, seenWall, "Opening position should offer walls")
	})

	t.Run("every offered wall slows the opponent when neutral walls are off", func(t *testing.T) {
		gs := NewGame(NewStandardRules(WithNeutralWallRate(0)))
		opp := gs.Opponent()
		before := Distance(gs.Board(), opp.Position, opp.GoalRow)

		walls := 0
		for _, m := range gs.LegalMoves() {
			if m.Kind != WallMove {
				continue
			}
			walls++
			next := gs.MustApply(m)
			after := Distance(next.Board(), opp.Position, opp.GoalRow)
			require.Greater(t, after, before, "Wall %s should lengthen the opponent's route", m)
		}
		require.NotZero(t, walls, "A wall in front of the opponent should be offered")
	})

	t.Run("no walls without a budget", func(t *testing.T) {
		gs := NewGame(NewStandardRules(WithWalls(0), WithNeutralWallRate(1)))

		moves := gs.LegalMoves()
		require.Equal(t, stepsOf(moves), moves)
	})

	t.Run("straight jump over the opponent", func(t *testing.T) {
		gs := customState(t, NewStandardRules(), Cell{6, 8}, Cell{8, 8}, 0)

		steps := stepsOf(gs.LegalMoves())
		require.Contains(t, steps, NewStep(Cell{10, 8}))
		require.NotContains(t, steps, NewStep(Cell{8, 8}), "The opponent's cell is never a destination")
		require.NotContains(t, steps, NewStep(Cell{8, 6}), "Diagonals only apply when the straight landing is blocked")
		require.NotContains(t, steps, NewStep(Cell{8, 10}))
	})

	t.Run("diagonal jumps when a wall is behind the opponent", func(t *testing.T) {
		gs := customState(t, NewStandardRules(), Cell{6, 8}, Cell{8, 8}, 0,
			WallPlacement{Row: 9, Col: 7, Orientation: Horizontal})

		steps := stepsOf(gs.LegalMoves())
		require.Contains(t, steps, NewStep(Cell{8, 6}))
		require.Contains(t, steps, NewStep(Cell{8, 10}))
		require.NotContains(t, steps, NewStep(Cell{10, 8}))
	})

	t.Run("diagonal jumps when the opponent is on the board edge", func(t *testing.T) {
		gs := customState(t, NewStandardRules(), Cell{14, 8}, Cell{16, 8}, 0)

		steps := stepsOf(gs.LegalMoves())
		require.Contains(t, steps, NewStep(Cell{16, 6}))
		require.Contains(t, steps, NewStep(Cell{16, 10}))
	})

	t.Run("walls that would cut a goal off are not offered", func(t *testing.T) {
		rules := NewStandardRules(WithSize(3), WithNeutralWallRate(1))
		gs := customState(t, rules, Cell{0, 0}, Cell{4, 4}, 0)

		gs = gs.MustApply(NewWall(1, 1, Vertical))
		require.NotContains(t, gs.LegalMoves(), NewWall(3, 1, Horizontal))
	})
}

func TestGameStateApply(t *testing.T) {
	t.Run("stepping forward", func(t *testing.T) {
		gs := NewGame(NewStandardRules())

		next, err := gs.Apply(NewStep(Cell{2, 8}))
		require.NoError(t, err)
		require.Equal(t, Cell{2, 8}, next.Player(0).Position)
		require.Equal(t, 1, next.Turn(), "Turn should pass to the opponent")
		require.Equal(t, Cell{0, 8}, gs.Player(0).Position, "Original state should not change")
	})

	t.Run("placing a wall", func(t *testing.T) {
		gs := NewGame(NewStandardRules())

		next, err := gs.Apply(NewWall(15, 7, Horizontal))
		require.NoError(t, err)
		require.Equal(t, 9, next.Player(0).Walls, "Wall budget should shrink")
		require.Equal(t, 3, next.Board().WallCount())
		require.Equal(t, 1, next.Turn())
		require.Equal(t, 10, gs.Player(0).Walls, "Original state should not change")
		require.Zero(t, gs.Board().WallCount(), "Original board should not change")
	})

	t.Run("illegal step", func(t *testing.T) {
		gs := NewGame(NewStandardRules())

		_, err := gs.Apply(NewStep(Cell{4, 8}))
		require.True(t, errors.Is(err, ErrIllegalMove))
	})

	t.Run("wall without a budget", func(t *testing.T) {
		gs := NewGame(NewStandardRules(WithWalls(0)))

		_, err := gs.Apply(NewWall(15, 7, Horizontal))
		require.True(t, errors.Is(err, ErrIllegalMove))
	})

	t.Run("wall that cuts a goal off", func(t *testing.T) {
		rules := NewStandardRules(WithSize(3))
		gs := customState(t, rules, Cell{0, 0}, Cell{4, 4}, 0)

		gs = gs.MustApply(NewWall(1, 1, Vertical))
		_, err := gs.Apply(NewWall(3, 1, Horizontal))
		require.True(t, errors.Is(err, ErrIllegalMove))
	})

	t.Run("unknown move kind", func(t *testing.T) {
		gs := NewGame(NewStandardRules())

		_, err := gs.Apply(Move{Kind: MoveKind(7)})
		require.True(t, errors.Is(err, ErrUnknownMove))

		_, err = gs.Apply(NoMove)
		require.True(t, errors.Is(err, ErrUnknownMove))
	})

	t.Run("must apply panics on illegal moves", func(t *testing.T) {
		gs := NewGame(NewStandardRules())

		require.Panics(t, func() { gs.MustApply(NewStep(Cell{8, 8})) })
	})

	t.Run("random playouts keep every goal reachable", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		for game := 0; game < 5; game++ {
			gs := NewGame(NewStandardRules(WithSize(5), WithNeutralWallRate(0.5), WithSeed(uint64(game))))
			for ply := 0; ply < 120 && !gs.IsTerminal(); ply++ {
				moves := gs.LegalMoves()
				require.NotEmpty(t, moves)
				gs = gs.MustApply(moves[rng.Intn(len(moves))])
				for _, p := range gs.Players() {
					require.True(t, gs.Board().PathExists(p.Position, p.GoalRow),
						"Player %s lost its route after ply %d", p.Name, ply)
				}
			}
		}
	})
}

func TestGameStateClone(t *testing.T) {
	newRules := func() *Rules { return NewStandardRules(WithSize(5), WithNeutralWallRate(0)) }
	moves := []Move{
		NewStep(Cell{2, 4}),
		NewStep(Cell{6, 4}),
		NewWall(5, 3, Horizontal),
		NewStep(Cell{6, 2}),
	}

	t.Run("a clone replays like a fresh game", func(t *testing.T) {
		original := NewGame(newRules())
		clone := original.Clone()
		fresh := NewGame(newRules())
		require.True(t, clone.Equal(original))
		require.Equal(t, original.Hash(), clone.Hash())

		for _, m := range moves {
			clone = clone.MustApply(m)
			fresh = fresh.MustApply(m)
		}

		require.True(t, clone.Equal(fresh))
		require.Equal(t, fresh.Hash(), clone.Hash())
		require.True(t, original.Equal(NewGame(newRules())), "Playing on the clone should leave the original alone")
	})

	t.Run("players and board are not shared", func(t *testing.T) {
		original := NewGame(newRules())
		clone := original.Clone()

		clone.Player(0).Position = Cell{2, 4}
		clone.Player(0).Walls = 3
		require.True(t, clone.Board().PlaceWall(1, 1, Horizontal))

		require.Equal(t, Cell{0, 4}, original.Player(0).Position)
		require.Equal(t, DefaultWalls, original.Player(0).Walls)
		require.False(t, original.Board().IsWall(Cell{1, 1}))
		require.NotSame(t, original.Player(1), clone.Player(1))
	})
}

func TestGameStateHash(t *testing.T) {
	t.Run("same position reached two ways", func(t *testing.T) {
		rules := NewStandardRules()
		played := NewGame(rules)
		for _, m := range []Move{
			NewStep(Cell{2, 8}),
			NewWall(3, 7, Horizontal),
			NewStep(Cell{2, 10}),
			NewStep(Cell{14, 8}),
		} {
			played = played.MustApply(m)
		}

		built := customState(t, rules, Cell{2, 10}, Cell{14, 8}, 0,
			WallPlacement{Row: 3, Col: 7, Orientation: Horizontal})
		built.Player(1).Walls = 9

		require.True(t, played.Equal(built))
		require.Equal(t, played.Hash(), built.Hash())
	})

	t.Run("turn is part of the hash", func(t *testing.T) {
		rules := NewStandardRules()
		first := customState(t, rules, Cell{0, 8}, Cell{16, 8}, 0)
		second := customState(t, rules, Cell{0, 8}, Cell{16, 8}, 1)

		require.False(t, first.Equal(second))
		require.NotEqual(t, first.Hash(), second.Hash())
	})

	t.Run("walls left are part of the hash", func(t *testing.T) {
		gs := NewGame(NewStandardRules())
		other := gs.Clone()
		other.Player(1).Walls--

		require.NotEqual(t, gs.Hash(), other.Hash())
	})
}

func TestGameStateWinner(t *testing.T) {
	t.Run("no winner at the start", func(t *testing.T) {
		_, ok := NewGame(NewStandardRules()).Winner()
		require.False(t, ok)
	})

	t.Run("reaching the goal row", func(t *testing.T) {
		gs := customState(t, NewStandardRules(), Cell{14, 4}, Cell{8, 8}, 0)

		gs = gs.MustApply(NewStep(Cell{16, 4}))
		winner, ok := gs.Winner()
		require.True(t, ok)
		require.Equal(t, "1", winner)
		require.True(t, gs.IsTerminal(), "Game should be over even though player 2 is to move")
	})
}
