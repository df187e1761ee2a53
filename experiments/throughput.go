package experiments

import (
	"fmt"
	"io"
	"slices"
	"time"

	"quoridor/experiments/metrics"

	"github.com/samber/lo"
)

// DepthThroughput is the search speed observed at one depth.
type DepthThroughput struct {
	Depth         int
	Searches      int
	Nodes         int
	Duration      time.Duration
	NodesPerMove  float64
	NodesPerSec   float64
	TableHitRatio float64
}

// Throughput groups searched moves by depth. Moves that won on the spot or
// were picked at random did not search and are left out.
func Throughput(moves []metrics.MoveRecord) []DepthThroughput {
	searched := lo.Filter(moves, func(m metrics.MoveRecord, _ int) bool {
		return !m.ImmediateWin && !m.Explored && m.Nodes > 0
	})
	byDepth := lo.GroupBy(searched, func(m metrics.MoveRecord) int { return m.Depth })

	depths := lo.Keys(byDepth)
	slices.Sort(depths)

	stats := make([]DepthThroughput, 0, len(depths))
	for _, depth := range depths {
		group := byDepth[depth]
		nodes := lo.SumBy(group, func(m metrics.MoveRecord) int { return m.Nodes })
		hits := lo.SumBy(group, func(m metrics.MoveRecord) int { return m.TableHits })
		duration := lo.SumBy(group, func(m metrics.MoveRecord) time.Duration { return m.Duration })

		s := DepthThroughput{
			Depth:        depth,
			Searches:     len(group),
			Nodes:        nodes,
			Duration:     duration,
			NodesPerMove: float64(nodes) / float64(len(group)),
		}
		if duration > 0 {
			s.NodesPerSec = float64(nodes) / duration.Seconds()
		}
		if nodes > 0 {
			s.TableHitRatio = float64(hits) / float64(nodes)
		}
		stats = append(stats, s)
	}
	return stats
}

func PrintThroughput(w io.Writer, stats []DepthThroughput) {
	fmt.Fprintf(w, "%5s %9s %12s %12s %12s %9s\n", "depth", "searches", "nodes/move", "nodes/sec", "total time", "tt hits")
	for _, s := range stats {
		fmt.Fprintf(w, "%5d %9d %12.1f %12.0f %12s %8.1f%%\n",
			s.Depth, s.Searches, s.NodesPerMove, s.NodesPerSec, s.Duration.Round(time.Millisecond), 100*s.TableHitRatio)
	}
}
