package experiments

import (
	"fmt"
	"io"
	"math"
	"time"

	"quoridor/experiments/metrics"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat/distuv"
)

// Confidence is the two-sided confidence level, in percent, of reported
// win-rate intervals.
const Confidence = 95.0

// ZValue returns the two-tailed z value for a confidence level in percent.
func ZValue(confidence float64) float64 {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: 1,
	}
	return dist.Quantile((1 + confidence/100) / 2)
}

// WinRateInterval estimates a win rate and its normal-approximation
// confidence interval, clamped to [0, 1].
func WinRateInterval(wins, games int, confidence float64) (rate, low, high float64) {
	if games <= 0 {
		return 0, 0, 0
	}
	rate = float64(wins) / float64(games)
	half := ZValue(confidence) * math.Sqrt(rate*(1-rate)/float64(games))
	return rate, math.Max(0, rate-half), math.Min(1, rate+half)
}

// Summarize aggregates the games of one matchup.
func Summarize(m metrics.Matchup, games []metrics.GameRecord, elapsed time.Duration) metrics.MatchupSummary {
	wins1 := lo.CountBy(games, func(g metrics.GameRecord) bool { return g.Winner == "1" })
	wins2 := lo.CountBy(games, func(g metrics.GameRecord) bool { return g.Winner == "2" })
	rate, low, high := WinRateInterval(wins1, len(games), Confidence)

	summary := metrics.MatchupSummary{
		Matchup:     m.ID,
		Tier1:       m.Tier1,
		Tier2:       m.Tier2,
		Games:       len(games),
		Wins1:       wins1,
		Wins2:       wins2,
		Draws:       len(games) - wins1 - wins2,
		WinRate1:    rate,
		WinRateLow:  low,
		WinRateHigh: high,
		Seconds:     elapsed.Seconds(),
	}
	if len(games) > 0 {
		moves := lo.SumBy(games, func(g metrics.GameRecord) int { return g.TotalMoves })
		summary.AverageMoves = float64(moves) / float64(len(games))
	}
	return summary
}

// PrintSummary writes one line per matchup.
func PrintSummary(w io.Writer, summaries []metrics.MatchupSummary) {
	fmt.Fprintf(w, "%-8s %-8s %6s %6s %6s %6s %22s %9s %8s\n",
		"tier1", "tier2", "games", "wins1", "wins2", "draws", "win rate 1", "avg moves", "seconds")
	for _, s := range summaries {
		fmt.Fprintf(w, "%-8s %-8s %6d %6d %6d %6d %6.2f [%5.2f, %5.2f] %9.1f %8.1f\n",
			s.Tier1, s.Tier2, s.Games, s.Wins1, s.Wins2, s.Draws,
			s.WinRate1, s.WinRateLow, s.WinRateHigh, s.AverageMoves, s.Seconds)
	}
}

// PrintLengthHistogram plots how many moves the games took.
func PrintLengthHistogram(w io.Writer, games []metrics.GameRecord, bins int) error {
	if len(games) == 0 {
		return nil
	}
	lengths := lo.Map(games, func(g metrics.GameRecord, _ int) float64 { return float64(g.TotalMoves) })
	hist := histogram.Hist(bins, lengths)
	return histogram.Fprint(w, hist, histogram.Linear(40))
}
