package game

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/samber/lo"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrUnknownMove = errors.New("unknown move")
)

// GameState is one position: the board, both players and whose turn it is.
// States returned to callers are never mutated; Apply works on a clone.
type GameState struct {
	board   *Board
	players []*Player
	turn    int
	rules   *Rules

	hash   StateHash
	hashed bool
}

// NewGameState assembles a state from its parts and marks the players on the
// board. A nil rules value selects the standard rules for the board size.
func NewGameState(b *Board, players []*Player, turn int, rules *Rules) *GameState {
	if rules == nil {
		rules = NewStandardRules(WithSize(b.Size()))
	}
	for _, p := range players {
		b.PlacePlayer(p)
	}
	return &GameState{
		board:   b,
		players: players,
		turn:    turn,
		rules:   rules,
	}
}

// NewGame returns the opening position: player "1" on the top edge racing
// down, player "2" on the bottom edge racing up, player "1" to move.
func NewGame(rules *Rules) *GameState {
	b := NewBoard(rules.Size)
	last := b.Dim() - 1
	mid := 2 * ((rules.Size - 1) / 2)
	players := []*Player{
		NewPlayer("1", Cell{0, mid}, last, rules.Walls),
		NewPlayer("2", Cell{last, mid}, 0, rules.Walls),
	}
	return NewGameState(b, players, 0, rules)
}

func (gs *GameState) Board() *Board      { return gs.board }
func (gs *GameState) Rules() *Rules      { return gs.rules }
func (gs *GameState) Turn() int          { return gs.turn }
func (gs *GameState) Players() []*Player { return gs.players }
func (gs *GameState) Player(i int) *Player {
	return gs.players[i]
}

// Current returns the player to move.
func (gs *GameState) Current() *Player {
	return gs.players[gs.turn]
}

// Opponent returns the player waiting for its turn.
func (gs *GameState) Opponent() *Player {
	return gs.players[gs.next()]
}

func (gs *GameState) next() int {
	return (gs.turn + 1) % len(gs.players)
}

// Clone returns a state that shares nothing mutable with gs except the rules.
func (gs *GameState) Clone() *GameState {
	players := make([]*Player, len(gs.players))
	for i, p := range gs.players {
		players[i] = p.Clone()
	}
	b := gs.board.Clone()
	for _, p := range players {
		b.PlacePlayer(p)
	}
	return &GameState{
		board:   b,
		players: players,
		turn:    gs.turn,
		rules:   gs.rules,
	}
}

// LegalMoves lists the moves of the player to move: steps and jumps first,
// in up/down/left/right order, then wall placements near the opponent.
func (gs *GameState) LegalMoves() []Move {
	moves := gs.stepMoves()
	if gs.Current().Walls > 0 {
		moves = append(moves, gs.wallMoves()...)
	}
	return moves
}

func (gs *GameState) stepMoves() []Move {
	mover := gs.Current()
	moves := make([]Move, 0, 5)
	for _, d := range directions {
		target := mover.Position.add(d.Row, d.Col)
		if !gs.board.InBounds(target) || gs.board.IsWall(between(mover.Position, target)) {
			continue
		}
		square := gs.board.At(target)
		if square.Occupied() {
			for _, landing := range mover.JumpTargets(target, gs.board) {
				moves = append(moves, NewStep(landing))
			}
			continue
		}
		if square == Open {
			moves = append(moves, NewStep(target))
		}
	}
	return moves
}

// wallMoves tries both orientations at every anchor close to the opponent.
// A placement must keep every goal reachable, and walls that do not lengthen
// the opponent's route are only kept at the rules' neutral wall rate.
func (gs *GameState) wallMoves() []Move {
	opp := gs.Opponent()
	before := Distance(gs.board, opp.Position, opp.GoalRow)

	var moves []Move
	for _, anchor := range gs.wallAnchors(opp.Position) {
		for _, o := range []Orientation{Horizontal, Vertical} {
			if !gs.board.CanPlaceWall(anchor.Row, anchor.Col, o) {
				continue
			}
			trial := gs.board.Clone()
			if !trial.PlaceWall(anchor.Row, anchor.Col, o) || !gs.reachable(trial) {
				continue
			}
			after := Distance(trial, opp.Position, opp.GoalRow)
			if after > before || gs.rules.keepNeutralWall() {
				moves = append(moves, NewWall(anchor.Row, anchor.Col, o))
			}
		}
	}
	return moves
}

// wallAnchors returns the odd/odd anchors within the wall window around c, in
// row-major order. The window always covers the anchors directly ahead of c.
func (gs *GameState) wallAnchors(c Cell) []Cell {
	reach := 2*gs.rules.WallWindow - 1
	last := gs.board.Dim() - 2
	var anchors []Cell
	for dr := -reach; dr <= reach; dr += 2 {
		for dc := -reach; dc <= reach; dc += 2 {
			anchor := c.add(dr, dc)
			if anchor.Row < 1 || anchor.Row > last || anchor.Col < 1 || anchor.Col > last {
				continue
			}
			anchors = append(anchors, anchor)
		}
	}
	return anchors
}

// reachable reports whether every player can still reach its goal row on b.
func (gs *GameState) reachable(b *Board) bool {
	return lo.EveryBy(gs.players, func(p *Player) bool {
		return PathExists(b, p.Position, p.GoalRow)
	})
}

// Apply plays m for the player to move and returns the resulting state.
func (gs *GameState) Apply(m Move) (*GameState, error) {
	next := gs.Clone()
	mover := next.Current()
	switch m.Kind {
	case StepMove:
		if !mover.MoveTo(m.To, next.board) {
			return nil, fmt.Errorf("%w: %s for player %s", ErrIllegalMove, m, mover.Name)
		}
	case WallMove:
		w := m.Wall
		if mover.Walls <= 0 || !next.board.PlaceWall(w.Row, w.Col, w.Orientation) || !next.reachable(next.board) {
			return nil, fmt.Errorf("%w: %s for player %s", ErrIllegalMove, m, mover.Name)
		}
		mover.UseWall()
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMove, m)
	}
	next.turn = next.next()
	return next, nil
}

// MustApply is Apply for moves taken from LegalMoves. It panics on failure.
func (gs *GameState) MustApply(m Move) *GameState {
	next, err := gs.Apply(m)
	if err != nil {
		panic(err)
	}
	return next
}

// IsTerminal reports whether some player stands on its goal row.
func (gs *GameState) IsTerminal() bool {
	_, ok := gs.Winner()
	return ok
}

// Winner returns the name of the player standing on its goal row.
func (gs *GameState) Winner() (string, bool) {
	for _, p := range gs.players {
		if p.AtGoal() {
			return p.Name, true
		}
	}
	return "", false
}

// Hash digests the board, every player's position and walls, and the turn.
// It is computed once per state.
func (gs *GameState) Hash() StateHash {
	if gs.hashed {
		return gs.hash
	}
	hasher := xxhash.New()
	hasher.Write(gs.board.bytes())
	for _, p := range gs.players {
		binary.Write(hasher, binary.LittleEndian, int64(p.Position.Row))
		binary.Write(hasher, binary.LittleEndian, int64(p.Position.Col))
		binary.Write(hasher, binary.LittleEndian, int64(p.Walls))
	}
	binary.Write(hasher, binary.LittleEndian, int64(gs.turn))
	gs.hash = StateHash(hasher.Sum64())
	gs.hashed = true
	return gs.hash
}

// Equal compares board contents, players and turn.
func (gs *GameState) Equal(other *GameState) bool {
	if gs.turn != other.turn || len(gs.players) != len(other.players) || !gs.board.Equal(other.board) {
		return false
	}
	for i, p := range gs.players {
		if *p != *other.players[i] {
			return false
		}
	}
	return true
}
