package searcher

import (
	"math"

	"quoridor/experiments/metrics"
	"quoridor/game"

	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

type Option func(s *Searcher)

// Searcher runs depth-limited alpha-beta searches for one side of a game.
// It is not safe for concurrent use; parallel games each need their own.
type Searcher struct {
	table    *TranspositionTable
	evaluate game.Evaluate
	rng      *rand.Rand
	winScore float64
	metrics  metrics.Collector
}

func WithWeights(w game.Weights) Option {
	return func(s *Searcher) {
		s.evaluate = w.Evaluator()
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(s *Searcher) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

// WithRand sets the source used for exploration moves.
func WithRand(rng *rand.Rand) Option {
	return func(s *Searcher) {
		if rng != nil {
			s.rng = rng
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(s *Searcher) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

func WithWinScore(score float64) Option {
	return func(s *Searcher) {
		if score > 0 && !math.IsInf(score, 1) {
			s.winScore = score
		}
	}
}

func WithMetrics() Option {
	return func(s *Searcher) {
		s.metrics = metrics.NewCollector()
	}
}

// NewSearcher returns a searcher memoizing into table. A nil table disables
// memoization.
func NewSearcher(table *TranspositionTable, options ...Option) *Searcher {
	s := &Searcher{ // Default values
		table:    table,
		evaluate: game.DefaultWeights.Evaluator(),
		winScore: WinScore,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(frand.Uint64n(math.MaxUint64)))
	}
	return s
}

func (s *Searcher) Table() *TranspositionTable {
	return s.table
}

// Reset clears the transposition table before an independent game.
func (s *Searcher) Reset() {
	if s.table != nil {
		s.table.Reset()
	}
}

// FindMove selects a move for the player to move and returns the metrics of
// the search that produced it.
func (s *Searcher) FindMove(state *game.GameState, depth int, exploration float64) (game.Move, metrics.SearchMetric) {
	s.metrics.Start(depth, exploration)
	move := s.SelectMove(state, depth, state.Turn(), exploration)
	if s.table != nil {
		s.metrics.SetTableSize(s.table.Len())
	}
	return move, s.metrics.Complete()
}

// ScoreRoot is FindMove for callers that pick among the searched moves
// themselves. A winning step or an exploration move is returned as forced
// with no scores; otherwise every legal move is scored in legal move order.
// Both are empty when there is nothing to play.
func (s *Searcher) ScoreRoot(state *game.GameState, depth int, exploration float64) (forced game.Move, scored []ScoredMove, metric metrics.SearchMetric) {
	s.metrics.Start(depth, exploration)
	defer func() {
		if s.table != nil {
			s.metrics.SetTableSize(s.table.Len())
		}
		metric = s.metrics.Complete()
	}()

	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.NoMove, nil, metric
	}
	if move, ok := s.forcedMove(state, moves, exploration); ok {
		return move, nil, metric
	}
	return game.NoMove, s.scoreMoves(state, moves, depth, state.Turn()), metric
}
