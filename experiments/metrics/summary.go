package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// MatchupSummary aggregates the games of one matchup.
type MatchupSummary struct {
	Matchup      int     `yaml:"matchup"`
	Tier1        string  `yaml:"tier1"`
	Tier2        string  `yaml:"tier2"`
	Games        int     `yaml:"games"`
	Wins1        int     `yaml:"wins1"`
	Wins2        int     `yaml:"wins2"`
	Draws        int     `yaml:"draws"`
	WinRate1     float64 `yaml:"win_rate1"`
	WinRateLow   float64 `yaml:"win_rate1_low"`
	WinRateHigh  float64 `yaml:"win_rate1_high"`
	AverageMoves float64 `yaml:"average_moves"`
	Seconds      float64 `yaml:"seconds"`
}

type Summary struct {
	Seed       uint64           `yaml:"seed"`
	Confidence float64          `yaml:"confidence"`
	Matchups   []MatchupSummary `yaml:"matchups"`
}

func (w *Writer) WriteSummary(summary Summary) error {
	path := filepath.Join(w.baseDir, "summary.yaml")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return enc.Close()
}

// ReadSummary loads a summary written by WriteSummary.
func ReadSummary(path string) (Summary, error) {
	var summary Summary
	data, err := os.ReadFile(path)
	if err != nil {
		return summary, fmt.Errorf("failed to read summary file: %w", err)
	}
	if err := yaml.Unmarshal(data, &summary); err != nil {
		return summary, fmt.Errorf("failed to decode summary: %w", err)
	}
	return summary, nil
}
