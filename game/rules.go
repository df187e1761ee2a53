package game

import (
	"golang.org/x/exp/rand"
)

// Rules holds the per-game parameters shared by every state of a game. A
// Rules value is shared between clones, so everything except the move
// generation RNG is read-only once the game has started.
type Rules struct {
	Size            int     // Logical side length N; the grid is 2N-1 wide
	Walls           int     // Walls per player at the start
	WallWindow      int     // Path cells around the opponent searched for wall anchors
	NeutralWallRate float64 // Chance of keeping a wall that does not slow the opponent down

	rng *rand.Rand
}

type RuleOption func(r *Rules)

func WithSize(size int) RuleOption {
	return func(r *Rules) {
		if size >= 2 {
			r.Size = size
		}
	}
}

func WithWalls(walls int) RuleOption {
	return func(r *Rules) {
		if walls >= 0 {
			r.Walls = walls
		}
	}
}

func WithWallWindow(cells int) RuleOption {
	return func(r *Rules) {
		if cells >= 1 {
			r.WallWindow = cells
		}
	}
}

func WithNeutralWallRate(rate float64) RuleOption {
	return func(r *Rules) {
		if rate >= 0 && rate <= 1 {
			r.NeutralWallRate = rate
		}
	}
}

func WithSeed(seed uint64) RuleOption {
	return func(r *Rules) {
		r.rng = rand.New(rand.NewSource(seed))
	}
}

func NewStandardRules(options ...RuleOption) *Rules {
	r := &Rules{ // Default values
		Size:            DefaultSize,
		Walls:           DefaultWalls,
		WallWindow:      2,
		NeutralWallRate: 0.05,
	}
	for _, option := range options {
		option(r)
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewSource(1))
	}
	return r
}

// Dim returns the side length of the underlying grid.
func (r *Rules) Dim() int {
	return 2*r.Size - 1
}

// keepNeutralWall decides whether a wall that leaves the opponent's distance
// unchanged is still offered.
func (r *Rules) keepNeutralWall() bool {
	switch {
	case r.NeutralWallRate <= 0:
		return false
	case r.NeutralWallRate >= 1:
		return true
	}
	return r.rng.Float64() < r.NeutralWallRate
}
