package searcher

import (
	"math"

	"quoridor/game"

	"github.com/rs/zerolog/log"
)

// SelectMove picks a move for the player to move. A move that wins on the
// spot is always taken. Otherwise, with probability exploration, a uniformly
// random legal move is returned; else the move with the best search value,
// the earliest one on ties. It returns game.NoMove when there is nothing to
// play.
func (s *Searcher) SelectMove(state *game.GameState, depth, perspective int, exploration float64) game.Move {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.NoMove
	}

	if move, ok := s.forcedMove(state, moves, exploration); ok {
		return move
	}

	best := moves[0]
	bestValue := math.Inf(-1)
	for _, scored := range s.scoreMoves(state, moves, depth, perspective) {
		if scored.Value > bestValue {
			best = scored.Move
			bestValue = scored.Value
		}
	}
	log.Debug().Str("move", best.String()).Float64("value", bestValue).Int("depth", depth).Msg("selected-move")
	return best
}

// ScoreMoves searches every legal move and returns their values in legal move
// order.
func (s *Searcher) ScoreMoves(state *game.GameState, depth, perspective int) []ScoredMove {
	return s.scoreMoves(state, state.LegalMoves(), depth, perspective)
}

func (s *Searcher) scoreMoves(state *game.GameState, moves []game.Move, depth, perspective int) []ScoredMove {
	opponent := 1 - perspective
	scored := make([]ScoredMove, 0, len(moves))
	for _, move := range moves {
		child, err := state.Apply(move)
		if err != nil {
			log.Warn().Err(err).Str("move", move.String()).Msg("skipping unplayable move")
			continue
		}
		value := -s.AlphaBeta(child, depth-1, opponent, math.Inf(-1), math.Inf(1))
		scored = append(scored, ScoredMove{Move: move, Value: value})
	}
	return scored
}

// forcedMove returns the move played without searching: a step that wins on
// the spot, else with probability exploration a uniformly random legal move.
func (s *Searcher) forcedMove(state *game.GameState, moves []game.Move, exploration float64) (game.Move, bool) {
	if move, ok := winningMove(state, moves); ok {
		s.metrics.SetImmediateWin()
		return move, true
	}
	if exploration > 0 && s.rng.Float64() < exploration {
		s.metrics.SetExplored()
		return moves[s.rng.Intn(len(moves))], true
	}
	return game.NoMove, false
}

// winningMove finds a step that puts the mover on its goal row.
func winningMove(state *game.GameState, moves []game.Move) (game.Move, bool) {
	for _, move := range moves {
		if move.Kind != game.StepMove {
			continue
		}
		if move.To.Row == state.Current().GoalRow {
			return move, true
		}
	}
	return game.NoMove, false
}
