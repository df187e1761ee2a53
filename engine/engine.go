package engine

import "quoridor/experiments/metrics"

type Engine interface {
	// Run plays a game till there's a winner, a player has no move, or the move cap is reached
	Run() (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
