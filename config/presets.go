package config

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"quoridor/game"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownPreset = errors.New("unknown preset")
	ErrInvalidPreset = errors.New("invalid preset")
)

// Preset is a named difficulty tier: how deep the AI searches, how often it
// plays a random move instead, and how it weighs a position.
type Preset struct {
	Name        string  `yaml:"-" mapstructure:"-"`
	Depth       int     `yaml:"depth" mapstructure:"depth"`
	Exploration float64 `yaml:"exploration" mapstructure:"exploration"`
	Advance     float64 `yaml:"advance" mapstructure:"advance"`
	Block       float64 `yaml:"block" mapstructure:"block"`
	Walls       float64 `yaml:"walls" mapstructure:"walls"`
	Lead        float64 `yaml:"lead" mapstructure:"lead"`
}

func (p Preset) Weights() game.Weights {
	return game.Weights{
		Advance: p.Advance,
		Block:   p.Block,
		Walls:   p.Walls,
		Lead:    p.Lead,
	}
}

func (p Preset) Validate() error {
	if p.Depth < 1 {
		return fmt.Errorf("%w: %s: depth %d must be at least 1", ErrInvalidPreset, p.Name, p.Depth)
	}
	if p.Exploration < 0 || p.Exploration > 1 {
		return fmt.Errorf("%w: %s: exploration %v must be within [0, 1]", ErrInvalidPreset, p.Name, p.Exploration)
	}
	return nil
}

type Presets map[string]Preset

// DefaultPresets returns the built-in easy, medium and hard tiers.
func DefaultPresets() Presets {
	return Presets{
		"easy":   {Name: "easy", Depth: 1, Exploration: 0.4, Advance: 1.0, Block: 0.5, Walls: 0.2, Lead: 0.3},
		"medium": {Name: "medium", Depth: 2, Exploration: 0.2, Advance: 1.2, Block: 0.8, Walls: 0.3, Lead: 0.5},
		"hard":   {Name: "hard", Depth: 3, Exploration: 0.1, Advance: 1.5, Block: 1.0, Walls: 0.4, Lead: 0.7},
	}
}

// Get looks a tier up by name, ignoring case.
func (ps Presets) Get(name string) (Preset, error) {
	p, ok := ps[strings.ToLower(name)]
	if !ok {
		return Preset{}, fmt.Errorf("%w %q, known presets: %s", ErrUnknownPreset, name, strings.Join(ps.Names(), ", "))
	}
	return p, nil
}

// Names lists the tiers from the shallowest search to the deepest.
func (ps Presets) Names() []string {
	names := lo.Keys(ps)
	slices.SortFunc(names, func(a, b string) int {
		if d := ps[a].Depth - ps[b].Depth; d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	return names
}

func (ps Presets) Validate() error {
	for _, name := range ps.Names() {
		if err := ps[name].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// WritePresets dumps the tiers in the format the presets file is read in.
func WritePresets(w io.Writer, ps Presets) error {
	doc := struct {
		Presets Presets `yaml:"presets"`
	}{Presets: ps}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode presets: %w", err)
	}
	return enc.Close()
}
