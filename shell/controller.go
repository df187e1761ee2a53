package shell

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"quoridor/config"
	"quoridor/game"
	"quoridor/searcher"
	"quoridor/searcher/agent"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"
)

var (
	errQuit     = errors.New("quit")
	errGameOver = errors.New("the game is over, start another with `new`")
)

// humanPlayer is the index of the player typing commands; the AI plays the
// other side.
const humanPlayer = 0

var directions = map[string]game.Cell{
	"up":    {Row: -2, Col: 0},
	"down":  {Row: 2, Col: 0},
	"left":  {Row: 0, Col: -2},
	"right": {Row: 0, Col: 2},
}

type ShellController struct {
	l   *readline.Instance
	out io.Writer

	presets  config.Presets
	aiLevel  config.Preset
	hintTier config.Preset
	size     int
	seed     uint64

	state *game.GameState
	// Indexed by player; each table only holds searches for its own side.
	ais     []agent.Agent
	hinters []*searcher.Searcher
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func NewShellController(c *config.Config) (*ShellController, error) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mquoridor>\033[0m ",
		HistoryFile:     "/tmp/quoridor-readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start readline: %w", err)
	}
	sc, err := newController(c, l.Stdout())
	if err != nil {
		l.Close()
		return nil, err
	}
	sc.l = l
	return sc, nil
}

func newController(c *config.Config, out io.Writer) (*ShellController, error) {
	aiLevel, err := c.Presets.Get(c.AILevel)
	if err != nil {
		return nil, err
	}
	hintTier, err := c.Presets.Get(c.HumanLevel)
	if err != nil {
		return nil, err
	}
	seed := c.Seed
	if seed == 0 {
		seed = frand.Uint64n(math.MaxUint64) + 1
	}
	sc := &ShellController{
		out:      out,
		presets:  c.Presets,
		aiLevel:  aiLevel,
		hintTier: hintTier,
		size:     c.Size,
		seed:     seed,
	}
	sc.newGame(c.Size)
	return sc, nil
}

func (sc *ShellController) newGame(size int) {
	sc.size = size
	sc.seed++
	rules := game.NewStandardRules(game.WithSize(size), game.WithSeed(sc.seed))
	sc.state = game.NewGame(rules)
	sc.newAgents()
	sc.hinters = make([]*searcher.Searcher, len(sc.state.Players()))
	for i := range sc.hinters {
		sc.hinters[i] = searcher.NewSearcher(searcher.NewTranspositionTable(), searcher.WithWeights(sc.hintTier.Weights()))
	}
	log.Debug().Int("size", size).Str("ai-level", sc.aiLevel.Name).Msg("new-game")
}

func (sc *ShellController) newAgents() {
	sc.ais = make([]agent.Agent, len(sc.state.Players()))
	for i := range sc.ais {
		sc.ais[i] = agent.NewPresetAgent(sc.aiLevel, searcher.WithSeed(sc.seed+uint64(i)))
	}
}

func (sc *ShellController) showMessage(msg string) {
	io.WriteString(sc.out, msg)
	io.WriteString(sc.out, "\n")
}

// Execute runs one command line. It returns errQuit when the player asks to
// leave.
func (sc *ShellController) Execute(line string) error {
	fields, err := shellquote.Split(line)
	if err != nil {
		return fmt.Errorf("cannot parse command: %w", err)
	}
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "show":
		Render(sc.out, sc.state)
	case "move":
		return sc.humanMove(args, sc.parseStep)
	case "wall":
		return sc.humanMove(args, parseWall)
	case "ai":
		return sc.aiMove()
	case "moves":
		for _, m := range sc.state.LegalMoves() {
			sc.showMessage(m.String())
		}
	case "hint":
		return sc.hint()
	case "new":
		size := sc.size
		if len(args) > 0 {
			size, err = strconv.Atoi(args[0])
			if err != nil || size < 2 {
				return fmt.Errorf("board size must be a number of at least 2")
			}
		}
		sc.newGame(size)
		Render(sc.out, sc.state)
	case "level":
		if len(args) != 1 {
			return fmt.Errorf("usage: level <%s>", strings.Join(sc.presets.Names(), "|"))
		}
		p, err := sc.presets.Get(args[0])
		if err != nil {
			return err
		}
		sc.aiLevel = p
		sc.newAgents()
		sc.showMessage(fmt.Sprintf("AI level set to %s (depth %d)", p.Name, p.Depth))
	case "help":
		usage(sc.out)
	case "exit", "quit", "bye":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q, try `help`", cmd)
	}
	return nil
}

// humanMove plays the parsed move for the player to move, then lets the AI
// answer when it is its turn.
func (sc *ShellController) humanMove(args []string, parse func([]string) (game.Move, error)) error {
	if sc.state.IsTerminal() {
		return errGameOver
	}
	m, err := parse(args)
	if err != nil {
		return err
	}
	if err := sc.play(m); err != nil {
		return err
	}
	if !sc.state.IsTerminal() && sc.state.Turn() != humanPlayer {
		return sc.aiMove()
	}
	return nil
}

func (sc *ShellController) aiMove() error {
	if sc.state.IsTerminal() {
		return errGameOver
	}
	m, metric := sc.ais[sc.state.Turn()].FindMove(sc.state)
	if m.IsNone() {
		sc.showMessage(fmt.Sprintf("player %s has no move, the game is a draw", sc.state.Current().Name))
		return nil
	}
	log.Debug().Int("nodes", metric.Nodes).Dur("duration", metric.Duration).Msg("ai-search")
	sc.showMessage(fmt.Sprintf("player %s plays %s", sc.state.Current().Name, m))
	return sc.play(m)
}

func (sc *ShellController) play(m game.Move) error {
	next, err := sc.state.Apply(m)
	if err != nil {
		return err
	}
	sc.state = next
	Render(sc.out, sc.state)
	if winner, ok := sc.state.Winner(); ok {
		sc.showMessage(fmt.Sprintf("player %s wins!", winner))
	}
	return nil
}

func (sc *ShellController) hint() error {
	if sc.state.IsTerminal() {
		return errGameOver
	}
	best := sc.hinters[sc.state.Turn()].SelectMove(sc.state, sc.hintTier.Depth, sc.state.Turn(), 0)
	if best.IsNone() {
		return fmt.Errorf("no legal move")
	}
	current := sc.state.Current()
	path := game.ShortestPath(sc.state.Board(), current.Position, current.GoalRow)
	if path == nil {
		sc.showMessage(fmt.Sprintf("hint: %s (%s search); no route to the goal", best, sc.hintTier.Name))
		return nil
	}
	sc.showMessage(fmt.Sprintf("hint: %s (%s search); shortest route is %d steps", best, sc.hintTier.Name, len(path)-1))
	return nil
}

// parseStep reads `move up|down|left|right` or `move r,c`. A direction that
// points at the opponent jumps to the first legal landing.
func (sc *ShellController) parseStep(args []string) (game.Move, error) {
	if len(args) != 1 {
		return game.NoMove, fmt.Errorf("usage: move up|down|left|right|r,c")
	}
	d, ok := directions[strings.ToLower(args[0])]
	if !ok {
		cell, err := game.ParseCell(args[0])
		if err != nil {
			return game.NoMove, err
		}
		return game.NewStep(cell), nil
	}

	mover := sc.state.Current()
	b := sc.state.Board()
	target := game.Cell{Row: mover.Position.Row + d.Row, Col: mover.Position.Col + d.Col}
	if b.InBounds(target) && b.At(target).Occupied() {
		landings := mover.JumpTargets(target, b)
		if len(landings) == 0 {
			return game.NoMove, fmt.Errorf("%w: cannot jump %s", game.ErrIllegalMove, args[0])
		}
		target = landings[0]
	}
	return game.NewStep(target), nil
}

// parseWall reads `wall r c h|v`.
func parseWall(args []string) (game.Move, error) {
	if len(args) != 3 {
		return game.NoMove, fmt.Errorf("usage: wall <row> <col> h|v")
	}
	row, err := strconv.Atoi(args[0])
	if err != nil {
		return game.NoMove, fmt.Errorf("bad wall row %q", args[0])
	}
	col, err := strconv.Atoi(args[1])
	if err != nil {
		return game.NoMove, fmt.Errorf("bad wall column %q", args[1])
	}
	o, err := game.ParseOrientation(args[2])
	if err != nil {
		return game.NoMove, err
	}
	return game.NewWall(row, col, o), nil
}

func (sc *ShellController) Loop() {
	defer sc.l.Close()

	Render(sc.out, sc.state)
	sc.showMessage("type `help` for commands")
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}

		err = sc.Execute(strings.TrimSpace(line))
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			sc.showMessage(err.Error())
		}
	}
	log.Debug().Msg("exiting readline loop")
}

func usage(w io.Writer) {
	io.WriteString(w, `commands:
  show                      draw the board
  move up|down|left|right   step, jumping over the opponent if it is in the way
  move <r>,<c>              step or jump to a cell
  wall <r> <c> h|v          place a wall at an odd/odd anchor
  ai                        let the AI play for the player to move
  moves                     list the legal moves
  hint                      suggest a move
  new [size]                start a new game
  level <tier>              change the AI difficulty
  help                      show this message
  exit                      leave
`)
}
