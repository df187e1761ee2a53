package experiments

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"quoridor/config"
	"quoridor/engine"
	"quoridor/experiments/metrics"
	"quoridor/game"
	"quoridor/searcher"
	"quoridor/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"
)

// DefaultTierPairs are the tier combinations benchmarked by default.
var DefaultTierPairs = [][2]string{
	{"easy", "easy"},
	{"easy", "medium"},
	{"easy", "hard"},
	{"medium", "medium"},
	{"medium", "hard"},
	{"hard", "hard"},
}

// Matchups numbers tier pairs from 1.
func Matchups(pairs [][2]string) []metrics.Matchup {
	matchups := make([]metrics.Matchup, len(pairs))
	for i, pair := range pairs {
		matchups[i] = metrics.Matchup{ID: i + 1, Tier1: pair[0], Tier2: pair[1]}
	}
	return matchups
}

type Benchmark struct {
	presets     config.Presets
	size        int
	games       int
	maxMoves    int
	parallel    int
	temperature float64
	seed        uint64
}

// NewBenchmark reads the benchmark settings from c. A zero seed is replaced
// by a random one so the run can still be reproduced from the report.
func NewBenchmark(c *config.Config) *Benchmark {
	seed := c.Seed
	if seed == 0 {
		seed = frand.Uint64n(math.MaxUint64) + 1
	}
	return &Benchmark{
		presets:     c.Presets,
		size:        c.Size,
		games:       c.Games,
		maxMoves:    c.MaxMoves,
		parallel:    c.Parallel,
		temperature: c.Temperature,
		seed:        seed,
	}
}

type Report struct {
	Seed      uint64
	Matchups  []metrics.Matchup
	Games     []metrics.GameRecord
	Moves     []metrics.MoveRecord
	Summaries []metrics.MatchupSummary
}

type gameResult struct {
	seed  uint64
	game  metrics.GameMetric
	moves []metrics.MoveMetric
}

// Run plays every matchup and collects the records. Games of a matchup run
// concurrently, each with its own agents, tables and random sources.
func (b *Benchmark) Run(ctx context.Context, matchups []metrics.Matchup) (*Report, error) {
	report := &Report{Seed: b.seed, Matchups: matchups}

	log.Info().Uint64("seed", b.seed).Msgf("starting benchmark of %d matchups, %d games each...", len(matchups), b.games)

	for mi, m := range matchups {
		p1, err := b.presets.Get(m.Tier1)
		if err != nil {
			return nil, err
		}
		p2, err := b.presets.Get(m.Tier2)
		if err != nil {
			return nil, err
		}

		log.Info().Msgf("starting matchup %d of %d between %s and %s...", mi+1, len(matchups), m.Tier1, m.Tier2)
		start := time.Now()

		results := make([]gameResult, b.games)
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(b.parallel)
		for i := 0; i < b.games; i++ {
			seed := b.seed + uint64(3*(mi*b.games+i))
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				winner, gameMetric, moveMetrics := b.playGame(p1, p2, seed)
				results[i] = gameResult{seed: seed, game: gameMetric, moves: moveMetrics}
				log.Debug().Msgf("completed matchup %d of %d game %d with winner: %q", mi+1, len(matchups), i+1, winner)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("matchup %d interrupted: %w", m.ID, err)
		}

		first := len(report.Games)
		for _, r := range results {
			id := len(report.Games) + 1
			report.Games = append(report.Games, metrics.GameRecord{
				ID:         id,
				Matchup:    m.ID,
				Seed:       r.seed,
				GameMetric: r.game,
			})
			for _, mm := range r.moves {
				report.Moves = append(report.Moves, metrics.MoveRecord{Game: id, MoveMetric: mm})
			}
		}
		summary := Summarize(m, report.Games[first:], time.Since(start))
		report.Summaries = append(report.Summaries, summary)

		log.Info().Msgf("completed matchup %d of %d: %s won %d, %s won %d, %d draws",
			mi+1, len(matchups), m.Tier1, summary.Wins1, m.Tier2, summary.Wins2, summary.Draws)
	}

	log.Info().Msg("completed benchmark")
	return report, nil
}

// playGame runs a single game between two tiers and returns the winner.
func (b *Benchmark) playGame(p1, p2 config.Preset, seed uint64) (string, metrics.GameMetric, []metrics.MoveMetric) {
	rules := game.NewStandardRules(game.WithSize(b.size), game.WithSeed(seed))
	agents := []agent.Agent{
		b.createAgent(p1, seed+1),
		b.createAgent(p2, seed+2),
	}
	e := engine.NewLocalEngine(game.NewGame(rules), agents, b.maxMoves)
	return e.Run()
}

func (b *Benchmark) createAgent(p config.Preset, seed uint64) agent.Agent {
	if b.temperature > 0 {
		s := searcher.NewSearcher(searcher.NewTranspositionTable(), searcher.WithWeights(p.Weights()), searcher.WithSeed(seed), searcher.WithMetrics())
		return agent.NewSoftmaxAgent(s, p.Depth, p.Exploration, b.temperature, rand.New(rand.NewSource(seed)))
	}
	return agent.NewPresetAgent(p, searcher.WithSeed(seed))
}

// Print writes the summary table, search throughput and one game length
// histogram per matchup.
func (r *Report) Print(w io.Writer) error {
	fmt.Fprintf(w, "seed %d\n\n", r.Seed)
	PrintSummary(w, r.Summaries)
	fmt.Fprintln(w)
	PrintThroughput(w, Throughput(r.Moves))
	for _, m := range r.Matchups {
		games := make([]metrics.GameRecord, 0)
		for _, g := range r.Games {
			if g.Matchup == m.ID {
				games = append(games, g)
			}
		}
		fmt.Fprintf(w, "\ngame lengths, %s vs %s\n", m.Tier1, m.Tier2)
		if err := PrintLengthHistogram(w, games, 10); err != nil {
			return fmt.Errorf("failed to plot game lengths: %w", err)
		}
	}
	return nil
}

// Save writes the CSV records and the YAML summary under outDir, and the
// records to the SQLite database at sqlitePath when it is set.
func (r *Report) Save(ctx context.Context, outDir, sqlitePath string) (string, error) {
	writer, err := metrics.NewWriter(outDir)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteMatchups(r.Matchups); err != nil {
		return "", fmt.Errorf("failed to store matchups: %w", err)
	}
	log.Info().Msg("stored matchups")

	if err := writer.WriteGameRecords(r.Games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(r.Moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	summary := metrics.Summary{Seed: r.Seed, Confidence: Confidence, Matchups: r.Summaries}
	if err := writer.WriteSummary(summary); err != nil {
		return "", fmt.Errorf("failed to write summary: %w", err)
	}
	log.Info().Msg("stored summary")

	if sqlitePath != "" {
		sink, err := metrics.OpenSQLite(ctx, sqlitePath)
		if err != nil {
			return "", err
		}
		defer sink.Close()
		if err := sink.Write(ctx, r.Matchups, r.Games, r.Moves); err != nil {
			return "", fmt.Errorf("failed to store records in %s: %w", sqlitePath, err)
		}
		log.Info().Str("run", sink.Run()).Msgf("stored records in %s", sqlitePath)
	}

	return writer.Dir(), nil
}
