package agent

import (
	"quoridor/config"
	"quoridor/experiments/metrics"
	"quoridor/game"
	"quoridor/searcher"
)

type Agent interface {
	// FindMove returns a move for the player to move and the metrics of the search behind it
	FindMove(state *game.GameState) (game.Move, metrics.SearchMetric)
	// Reset prepares the agent for a new game
	Reset()
}

// NewPresetAgent returns an agent playing at a difficulty tier. It owns its
// transposition table.
func NewPresetAgent(p config.Preset, options ...searcher.Option) Agent {
	options = append([]searcher.Option{searcher.WithWeights(p.Weights()), searcher.WithMetrics()}, options...)
	s := searcher.NewSearcher(searcher.NewTranspositionTable(), options...)
	return NewEvaluationAgent(s, p.Depth, p.Exploration)
}
