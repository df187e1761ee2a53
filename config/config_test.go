package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "presets.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	is := is.New(t)
	var c Config

	is.NoErr(c.Load(nil))
	is.Equal(c.Mode, ModePlay)
	is.Equal(c.Size, 9)
	is.Equal(c.AILevel, "medium")
	is.Equal(c.HumanLevel, "hard")
	is.Equal(c.Games, 50)
	is.Equal(c.MaxMoves, 200)
	is.Equal(c.Seed, uint64(0))
	is.Equal(c.Presets, DefaultPresets())
}

func TestLoadFlags(t *testing.T) {
	is := is.New(t)
	var c Config

	err := c.Load([]string{"--mode", "bench", "--size", "5", "--games", "10", "--seed", "99", "--debug"})
	is.NoErr(err)
	is.Equal(c.Mode, ModeBench)
	is.Equal(c.Size, 5)
	is.Equal(c.Games, 10)
	is.Equal(c.Seed, uint64(99))
	is.True(c.Debug)
}

func TestLoadEnvironment(t *testing.T) {
	is := is.New(t)
	t.Setenv("QUORIDOR_AI_LEVEL", "hard")
	t.Setenv("QUORIDOR_MAX_MOVES", "80")
	var c Config

	is.NoErr(c.Load(nil))
	is.Equal(c.AILevel, "hard")
	is.Equal(c.MaxMoves, 80)

	is.NoErr(c.Load([]string{"--ai-level", "easy"}))
	is.Equal(c.AILevel, "easy") // flags win over the environment
}

func TestLoadPresetsFile(t *testing.T) {
	is := is.New(t)
	path := writeFile(t, `
presets:
  easy:
    depth: 2
  expert:
    depth: 4
    exploration: 0
    advance: 2
    block: 1.5
`)
	var c Config

	is.NoErr(c.Load([]string{"--presets-file", path, "--ai-level", "expert"}))

	easy, err := c.Presets.Get("easy")
	is.NoErr(err)
	is.Equal(easy.Depth, 2)
	is.Equal(easy.Exploration, 0.4) // untouched fields keep the built-in value

	expert, err := c.Presets.Get("Expert")
	is.NoErr(err)
	is.Equal(expert.Name, "expert")
	is.Equal(expert.Depth, 4)
	is.Equal(expert.Weights().Block, 1.5)
	is.Equal(c.Presets.Names(), []string{"easy", "medium", "hard", "expert"})
}

func TestLoadRejectsBadSettings(t *testing.T) {
	t.Run("unknown tier", func(t *testing.T) {
		is := is.New(t)
		var c Config

		err := c.Load([]string{"--ai-level", "nightmare"})
		is.True(errors.Is(err, ErrUnknownPreset))
	})

	t.Run("invalid tier in the presets file", func(t *testing.T) {
		is := is.New(t)
		path := writeFile(t, "presets:\n  easy:\n    depth: 0\n")
		var c Config

		err := c.Load([]string{"--presets-file", path})
		is.True(errors.Is(err, ErrInvalidPreset))
	})

	t.Run("missing presets file", func(t *testing.T) {
		is := is.New(t)
		var c Config

		err := c.Load([]string{"--presets-file", filepath.Join(t.TempDir(), "nope.yaml")})
		is.True(err != nil)
	})

	t.Run("unknown mode", func(t *testing.T) {
		is := is.New(t)
		var c Config

		is.True(c.Load([]string{"--mode", "tournament"}) != nil)
	})

	t.Run("tiny board", func(t *testing.T) {
		is := is.New(t)
		var c Config

		is.True(c.Load([]string{"--size", "1"}) != nil)
	})
}

func TestPresets(t *testing.T) {
	t.Run("exploration out of range", func(t *testing.T) {
		is := is.New(t)
		p := Preset{Name: "wild", Depth: 1, Exploration: 1.5}

		is.True(errors.Is(p.Validate(), ErrInvalidPreset))
	})

	t.Run("written presets load back unchanged", func(t *testing.T) {
		is := is.New(t)
		var buf bytes.Buffer
		is.NoErr(WritePresets(&buf, DefaultPresets()))
		path := writeFile(t, buf.String())
		var c Config

		is.NoErr(c.Load([]string{"--presets-file", path}))
		is.Equal(c.Presets, DefaultPresets())
	})
}
