package game

const (
	DefaultSize  = 9  // Logical side length of the board
	DefaultWalls = 10 // Walls per player at the start of a game

	// EndgameDistance is the goal distance at or below which remaining walls
	// weigh double in the evaluation.
	EndgameDistance = 4
)

type StateHash uint64

// Evaluate scores a non-terminal state from the perspective of the player at
// the given index. Higher is better for that player.
type Evaluate func(gs *GameState, perspective int) float64
