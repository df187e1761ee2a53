package agent

import (
	"math"

	"quoridor/experiments/metrics"
	"quoridor/game"
	"quoridor/searcher"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"
)

type softmaxAgent struct {
	searcher    *searcher.Searcher
	depth       int
	exploration float64
	temperature float64
	rng         *rand.Rand
}

// NewSoftmaxAgent returns an agent that samples its move from a softmax over
// the searched move values. Lower temperatures play closer to the best move.
// A winning step is always played and exploration moves are drawn first, as
// for the other agents.
func NewSoftmaxAgent(s *searcher.Searcher, depth int, exploration, temperature float64, rng *rand.Rand) Agent {
	if depth < 1 {
		panic("Search depth must be at least 1")
	}
	if exploration < 0 || exploration > 1 {
		panic("Exploration must be within [0, 1]")
	}
	if temperature <= 0 {
		panic("Temperature must be positive")
	}
	return &softmaxAgent{
		searcher:    s,
		depth:       depth,
		exploration: exploration,
		temperature: temperature,
		rng:         rng,
	}
}

func (a *softmaxAgent) FindMove(state *game.GameState) (game.Move, metrics.SearchMetric) {
	forced, scored, metric := a.searcher.ScoreRoot(state, a.depth, a.exploration)
	metric.Depth = a.depth
	if len(scored) == 0 {
		return forced, metric
	}
	return sample(adjustTemperature(scored, a.temperature), a.rng.Float64()), metric
}

func (a *softmaxAgent) Reset() {
	a.searcher.Reset()
}

// adjustTemperature turns move values into probabilities. The best value is
// subtracted first so win scores do not overflow.
func adjustTemperature(scored []searcher.ScoredMove, temperature float64) []searcher.ScoredMove {
	best := lo.MaxBy(scored, func(a, b searcher.ScoredMove) bool { return a.Value > b.Value }).Value
	policy := lo.Map(scored, func(sm searcher.ScoredMove, _ int) searcher.ScoredMove {
		return searcher.ScoredMove{Move: sm.Move, Value: math.Exp((sm.Value - best) / temperature)}
	})
	sum := lo.SumBy(policy, func(sm searcher.ScoredMove) float64 { return sm.Value })
	for i := range policy {
		policy[i].Value /= sum
	}
	return policy
}

// sample walks the cumulative distribution up to r in [0, 1).
func sample(policy []searcher.ScoredMove, r float64) game.Move {
	cumulative := 0.0
	for _, sm := range policy {
		cumulative += sm.Value
		if r < cumulative {
			return sm.Move
		}
	}
	return policy[len(policy)-1].Move // Rounding errors
}
