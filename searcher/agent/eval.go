package agent

import (
	"quoridor/experiments/metrics"
	"quoridor/game"
	"quoridor/searcher"
)

type evaluationAgent struct {
	finder      searcher.MoveFinder
	depth       int
	exploration float64
}

// NewEvaluationAgent returns an agent that plays the searcher's best move,
// exploring at random with probability exploration.
func NewEvaluationAgent(finder searcher.MoveFinder, depth int, exploration float64) Agent {
	if depth < 1 {
		panic("Search depth must be at least 1")
	}
	return &evaluationAgent{
		finder:      finder,
		depth:       depth,
		exploration: exploration,
	}
}

func (a *evaluationAgent) FindMove(state *game.GameState) (game.Move, metrics.SearchMetric) {
	return a.finder.FindMove(state, a.depth, a.exploration)
}

func (a *evaluationAgent) Reset() {
	a.finder.Reset()
}
