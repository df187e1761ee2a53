package searcher

import (
	"math"

	"quoridor/game"
)

// AlphaBeta returns the value of state for the player at index perspective,
// searching depth plies with alpha-beta pruning. Nodes where the perspective
// player is to move maximize, the others minimize.
//
// A table entry searched at least as deep as depth is returned as is, even
// when it was cut off under a different window.
func (s *Searcher) AlphaBeta(state *game.GameState, depth, perspective int, alpha, beta float64) float64 {
	s.metrics.AddNode()

	hash := state.Hash()
	if s.table != nil {
		if entry, ok := s.table.Lookup(hash); ok && entry.Depth >= depth {
			s.metrics.AddTableHit()
			return entry.Value
		}
	}

	if state.IsTerminal() {
		return s.terminalScore(state, perspective)
	}
	if depth <= 0 {
		return s.evaluate(state, perspective)
	}

	moves := state.LegalMoves()
	if len(moves) == 0 {
		return s.evaluate(state, perspective)
	}

	var value float64
	if state.Turn() == perspective {
		value = math.Inf(-1)
		for _, move := range moves {
			child := state.MustApply(move)
			value = max(value, s.AlphaBeta(child, depth-1, perspective, alpha, beta))
			alpha = max(alpha, value)
			if alpha >= beta {
				s.metrics.AddCutoff()
				break
			}
		}
	} else {
		value = math.Inf(1)
		for _, move := range moves {
			child := state.MustApply(move)
			value = min(value, s.AlphaBeta(child, depth-1, perspective, alpha, beta))
			beta = min(beta, value)
			if alpha >= beta {
				s.metrics.AddCutoff()
				break
			}
		}
	}

	if s.table != nil {
		s.table.Store(hash, depth, value)
	}
	return value
}

// Minimax is the exhaustive search AlphaBeta prunes. It ignores the table.
func (s *Searcher) Minimax(state *game.GameState, depth, perspective int) float64 {
	if state.IsTerminal() {
		return s.terminalScore(state, perspective)
	}
	if depth <= 0 {
		return s.evaluate(state, perspective)
	}

	moves := state.LegalMoves()
	if len(moves) == 0 {
		return s.evaluate(state, perspective)
	}

	maximizing := state.Turn() == perspective
	value := math.Inf(1)
	if maximizing {
		value = math.Inf(-1)
	}
	for _, move := range moves {
		v := s.Minimax(state.MustApply(move), depth-1, perspective)
		if maximizing {
			value = max(value, v)
		} else {
			value = min(value, v)
		}
	}
	return value
}

func (s *Searcher) terminalScore(state *game.GameState, perspective int) float64 {
	winner, _ := state.Winner()
	if winner == state.Player(perspective).Name {
		return s.winScore
	}
	return -s.winScore
}
