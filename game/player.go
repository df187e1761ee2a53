package game

// Player is one side of the game.
type Player struct {
	Name     string // "1" or "2"; also the board marker
	Position Cell   // Always a path cell
	GoalRow  int    // Row the player races towards
	Walls    int    // Walls left to place
}

func NewPlayer(name string, position Cell, goalRow, walls int) *Player {
	return &Player{
		Name:     name,
		Position: position,
		GoalRow:  goalRow,
		Walls:    walls,
	}
}

func (p *Player) Clone() *Player {
	clone := *p
	return &clone
}

// AtGoal reports whether the player stands on its goal row.
func (p *Player) AtGoal() bool {
	return p.Position.Row == p.GoalRow
}

// Step moves the player one path cell along an axis. When the target holds
// the opponent, the step becomes a jump. It returns false and leaves the
// board untouched when the step is illegal.
func (p *Player) Step(target Cell, b *Board) bool {
	if !adjacent(p.Position, target) || !b.InBounds(target) {
		return false
	}
	if b.IsWall(between(p.Position, target)) {
		return false
	}
	switch square := b.At(target); {
	case square.Occupied():
		return p.Jump(target, b)
	case square == Open:
		p.relocate(target, b)
		return true
	}
	return false
}

// Jump moves the player over the opponent standing on over, landing on the
// first legal landing cell: straight behind the opponent, else one of the
// diagonals.
func (p *Player) Jump(over Cell, b *Board) bool {
	landings := p.JumpTargets(over, b)
	if len(landings) == 0 {
		return false
	}
	p.relocate(landings[0], b)
	return true
}

// JumpTo jumps over the opponent on over to one particular landing cell.
func (p *Player) JumpTo(over, landing Cell, b *Board) bool {
	for _, target := range p.JumpTargets(over, b) {
		if target == landing {
			p.relocate(landing, b)
			return true
		}
	}
	return false
}

// JumpTargets lists the landing cells for jumping over the opponent on over.
// It is either exactly the straight landing or the legal diagonal landings,
// never both. The gate between the player and over must be open.
func (p *Player) JumpTargets(over Cell, b *Board) []Cell {
	if !adjacent(p.Position, over) || !b.InBounds(over) || !b.At(over).Occupied() {
		return nil
	}
	if b.IsWall(between(p.Position, over)) {
		return nil
	}
	dr, dc := over.Row-p.Position.Row, over.Col-p.Position.Col

	straight := over.add(dr, dc)
	if landable(b, over, straight) {
		return []Cell{straight}
	}

	var sides [2]Cell
	if dr != 0 {
		sides = [2]Cell{over.add(0, -2), over.add(0, 2)}
	} else {
		sides = [2]Cell{over.add(-2, 0), over.add(2, 0)}
	}
	var landings []Cell
	for _, side := range sides {
		if landable(b, over, side) {
			landings = append(landings, side)
		}
	}
	return landings
}

// MoveTo moves the player to target, which is either an adjacent path cell or
// the landing cell of a jump.
func (p *Player) MoveTo(target Cell, b *Board) bool {
	if adjacent(p.Position, target) {
		if b.InBounds(target) && b.At(target).Occupied() {
			return false // Jumps are addressed by their landing cell
		}
		return p.Step(target, b)
	}
	dr, dc := target.Row-p.Position.Row, target.Col-p.Position.Col
	var candidates []Cell
	switch {
	case dc == 0 && (dr == 4 || dr == -4):
		candidates = []Cell{p.Position.add(dr/2, 0)}
	case dr == 0 && (dc == 4 || dc == -4):
		candidates = []Cell{p.Position.add(0, dc/2)}
	case abs(dr) == 2 && abs(dc) == 2:
		candidates = []Cell{p.Position.add(dr, 0), p.Position.add(0, dc)}
	}
	for _, over := range candidates {
		if p.JumpTo(over, target, b) {
			return true
		}
	}
	return false
}

// UseWall spends a wall if the player has one left.
func (p *Player) UseWall() bool {
	if p.Walls > 0 {
		p.Walls--
		return true
	}
	return false
}

func (p *Player) relocate(to Cell, b *Board) {
	b.ClearCell(p.Position)
	p.Position = to
	b.PlacePlayer(p)
}

// landable reports whether a jump from over can land on target.
func landable(b *Board, over, target Cell) bool {
	return b.InBounds(target) && !b.IsWall(between(over, target)) && b.At(target) == Open
}

func adjacent(a, b Cell) bool {
	dr, dc := abs(a.Row-b.Row), abs(a.Col-b.Col)
	return (dr == 2 && dc == 0) || (dr == 0 && dc == 2)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
