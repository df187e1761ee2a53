package game

// UnreachablePenalty stands in for the goal distance of a player whose goal
// cannot be reached, keeping scores finite.
const UnreachablePenalty = 100

// Weights tunes the static evaluation.
type Weights struct {
	Advance float64 // Penalty per step the player still needs
	Block   float64 // Reward per step the opponent still needs
	Walls   float64 // Reward per wall held over the opponent; doubled near the end
	Lead    float64 // Reward per step of race lead
}

// DefaultWeights are the weights used when none are configured.
var DefaultWeights = Weights{Advance: 1.2, Block: 0.8, Walls: 0.05, Lead: 0.5}

// Evaluator binds a set of weights into an Evaluate function.
func (w Weights) Evaluator() Evaluate {
	return func(gs *GameState, perspective int) float64 {
		return gs.Evaluate(perspective, w)
	}
}

// Evaluate scores the state for the player at index perspective from the goal
// distances of both players and their remaining walls.
func (gs *GameState) Evaluate(perspective int, w Weights) float64 {
	me := gs.players[perspective]
	opp := gs.players[(perspective+1)%len(gs.players)]

	dMe := goalDistance(gs.board, me)
	dOpp := goalDistance(gs.board, opp)

	wallWeight := w.Walls
	if dMe <= EndgameDistance || dOpp <= EndgameDistance {
		wallWeight *= 2
	}

	advance := -w.Advance * float64(dMe)
	block := w.Block * float64(dOpp)
	walls := wallWeight * float64(me.Walls-opp.Walls)
	lead := w.Lead * float64(dOpp-dMe)

	return advance + block + walls + lead
}

func goalDistance(b *Board, p *Player) int {
	d := Distance(b, p.Position, p.GoalRow)
	if d == Unreachable {
		return UnreachablePenalty
	}
	return d
}
