package config

import (
	"fmt"
	"strings"

	"quoridor/game"
	"quoridor/meta"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ModePlay    = "play"
	ModeBench   = "bench"
	ModePresets = "presets"
)

type Config struct {
	Mode        string
	Size        int
	HumanLevel  string // Tier used for hints
	AILevel     string
	Games       int // Per benchmark matchup
	MaxMoves    int
	Parallel    int
	Temperature float64 // Above zero, benchmark agents sample moves instead of playing the best
	OutDir      string
	SQLitePath  string
	PresetsFile string
	Seed        uint64 // Zero picks a random seed
	Debug       bool

	Presets Presets
}

// Load reads settings from args, then QUORIDOR_* environment variables, then
// the presets file if one is named.
func (c *Config) Load(args []string) error {
	fs := pflag.NewFlagSet("quoridor", pflag.ContinueOnError)
	fs.String("mode", ModePlay, "what to run: play, bench or presets")
	fs.Int("size", game.DefaultSize, "logical side length of the board")
	fs.String("human-level", "hard", "difficulty tier used for hints")
	fs.String("ai-level", "medium", "difficulty tier of the computer player")
	fs.Int("games", meta.NUM_GAMES, "games per benchmark matchup")
	fs.Int("max-moves", meta.MAX_MOVES, "moves after which a game is a draw")
	fs.Int("parallel", meta.PARALLEL_GAMES, "benchmark games played at once")
	fs.Float64("temperature", 0, "softmax temperature for benchmark agents; 0 plays the best move")
	fs.String("out-dir", "results", "directory for benchmark results")
	fs.String("sqlite", "", "optional SQLite database for benchmark records")
	fs.String("presets-file", "", "YAML file overriding the difficulty presets")
	fs.Uint64("seed", 0, "random seed; 0 picks one")
	fs.Bool("debug", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	v := viper.New()
	v.SetEnvPrefix("QUORIDOR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	c.Mode = v.GetString("mode")
	c.Size = v.GetInt("size")
	c.HumanLevel = v.GetString("human-level")
	c.AILevel = v.GetString("ai-level")
	c.Games = v.GetInt("games")
	c.MaxMoves = v.GetInt("max-moves")
	c.Parallel = v.GetInt("parallel")
	c.Temperature = v.GetFloat64("temperature")
	c.OutDir = v.GetString("out-dir")
	c.SQLitePath = v.GetString("sqlite")
	c.PresetsFile = v.GetString("presets-file")
	c.Seed = v.GetUint64("seed")
	c.Debug = v.GetBool("debug")

	presets, err := loadPresets(v, c.PresetsFile)
	if err != nil {
		return err
	}
	c.Presets = presets
	return c.Validate()
}

// loadPresets starts from the built-in tiers and applies the presets file on
// top. Fields missing from the file keep their built-in values.
func loadPresets(v *viper.Viper, path string) (Presets, error) {
	presets := DefaultPresets()
	if path == "" {
		return presets, nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}
	for name := range v.GetStringMap("presets") {
		p, ok := presets[name]
		if !ok {
			p = Preset{}
		}
		if err := v.UnmarshalKey("presets."+name, &p); err != nil {
			return nil, fmt.Errorf("failed to decode preset %s: %w", name, err)
		}
		p.Name = name
		presets[name] = p
	}
	return presets, nil
}

func (c *Config) Validate() error {
	switch c.Mode {
	case ModePlay, ModeBench, ModePresets:
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if c.Size < 2 {
		return fmt.Errorf("board size %d must be at least 2", c.Size)
	}
	if c.Games < 1 || c.MaxMoves < 1 || c.Parallel < 1 {
		return fmt.Errorf("games, max-moves and parallel must be positive")
	}
	if c.Temperature < 0 {
		return fmt.Errorf("temperature %v must not be negative", c.Temperature)
	}
	if err := c.Presets.Validate(); err != nil {
		return err
	}
	for _, level := range []string{c.HumanLevel, c.AILevel} {
		if _, err := c.Presets.Get(level); err != nil {
			return err
		}
	}
	return nil
}
