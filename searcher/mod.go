package searcher

import (
	"quoridor/experiments/metrics"
	"quoridor/game"
)

// WinScore is the magnitude returned for decided games. It dominates any
// heuristic score while staying finite.
const WinScore = 1000.0

// MoveFinder picks a move for the player to move and reports how the search
// went.
type MoveFinder interface {
	FindMove(state *game.GameState, depth int, exploration float64) (game.Move, metrics.SearchMetric)
	// Reset forgets everything learned in previous games.
	Reset()
}

// ScoredMove is a root move with the value the search gave it from the
// mover's point of view.
type ScoredMove struct {
	Move  game.Move
	Value float64
}
