package engine

import (
	"time"

	"quoridor/experiments/metrics"
	"quoridor/game"
	"quoridor/meta"
	"quoridor/searcher/agent"

	"github.com/rs/zerolog/log"
)

type LocalEngine struct {
	State    *game.GameState
	Agents   []agent.Agent // Indexed like the state's players
	MaxMoves int
}

func NewLocalEngine(state *game.GameState, agents []agent.Agent, maxMoves int) *LocalEngine {
	if len(agents) != len(state.Players()) {
		panic("number of agents does not match number of players")
	}
	if maxMoves <= 0 {
		maxMoves = meta.MAX_MOVES
	}
	return &LocalEngine{
		State:    state,
		Agents:   agents,
		MaxMoves: maxMoves,
	}
}

// Run executes the game loop until a player reaches its goal. A game that
// hits the move cap, or whose player to move has nothing to play, is a draw
// and reports an empty winner.
func (e *LocalEngine) Run() (string, metrics.GameMetric, []metrics.MoveMetric) {
	for _, a := range e.Agents {
		a.Reset()
	}

	gameMetric := metrics.GameMetric{
		StartingPlayer: e.State.Turn(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Msgf("player %s is starting", e.State.Current().Name)

	step := 1
	for !e.State.IsTerminal() && step <= e.MaxMoves {
		turn := e.State.Turn()
		move, searchMetric := e.Agents[turn].FindMove(e.State)
		if move.IsNone() {
			log.Warn().Msgf("player %s has no move at step %d", e.State.Current().Name, step)
			break
		}

		next, err := e.State.Apply(move)
		if err != nil {
			log.Error().Err(err).Msgf("agent for player %s returned an illegal move", e.State.Current().Name)
			legal := e.State.LegalMoves()
			if len(legal) == 0 {
				break
			}
			move = legal[0]
			next = e.State.MustApply(move)
		}
		if move.Kind == game.WallMove {
			gameMetric.WallsPlaced++
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       turn,
			Move:         move.String(),
			SearchMetric: searchMetric,
		})
		e.State = next
		step++
	}

	winner, ok := e.State.Winner()
	if ok {
		log.Debug().Msgf("game ended after %d moves with winner: %s", len(moveMetrics), winner)
	} else {
		log.Debug().Msgf("game stopped after %d moves without a winner", len(moveMetrics))
	}

	gameMetric.Winner = winner
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	return winner, gameMetric, moveMetrics
}
