package game

import "slices"

// Unreachable is returned by Distance when the goal row cannot be reached.
// Legal play never produces it since wall placement keeps every goal reachable.
const Unreachable = -1

var directions = [4]Cell{
	{-2, 0}, // Up
	{2, 0},  // Down
	{0, -2}, // Left
	{0, 2},  // Right
}

// neighbours returns the path cells reachable from c in one unwalled step.
// Occupied cells are included.
func neighbours(b *Board, c Cell) []Cell {
	out := make([]Cell, 0, 4)
	for _, d := range directions {
		next := c.add(d.Row, d.Col)
		if !b.InBounds(next) || b.IsWall(between(c, next)) {
			continue
		}
		out = append(out, next)
	}
	return out
}

// PathExists runs a breadth-first search from start and stops at the first
// cell on goalRow.
func PathExists(b *Board, start Cell, goalRow int) bool {
	return Distance(b, start, goalRow) != Unreachable
}

// Distance returns the number of steps from start to the nearest cell on
// goalRow, or Unreachable.
func Distance(b *Board, start Cell, goalRow int) int {
	type frontier struct {
		cell Cell
		dist int
	}
	visited := make([]bool, b.dim*b.dim)
	visited[start.Row*b.dim+start.Col] = true
	queue := []frontier{{start, 0}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current.cell.Row == goalRow {
			return current.dist
		}
		for _, next := range neighbours(b, current.cell) {
			idx := next.Row*b.dim + next.Col
			if visited[idx] {
				continue
			}
			visited[idx] = true
			queue = append(queue, frontier{next, current.dist + 1})
		}
	}
	return Unreachable
}

// ShortestPath returns one shortest route from start to goalRow, both ends
// included, or nil if there is none.
func ShortestPath(b *Board, start Cell, goalRow int) []Cell {
	parent := make(map[Cell]Cell)
	parent[start] = start
	queue := []Cell{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current.Row == goalRow {
			path := []Cell{current}
			for current != start {
				current = parent[current]
				path = append(path, current)
			}
			slices.Reverse(path)
			return path
		}
		for _, next := range neighbours(b, current) {
			if _, ok := parent[next]; ok {
				continue
			}
			parent[next] = current
			queue = append(queue, next)
		}
	}
	return nil
}
