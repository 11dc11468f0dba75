// Package pathfinding runs breadth-first searches over flat obstacle grids.
package pathfinding

import (
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
)

// Finder searches a caller-supplied obstacle grid (core.CellOpen /
// core.CellBlocked, indexed y*Width+x). It keeps no state between calls, so
// a fresh grid should be built for every query.
type Finder struct {
	grid          []int
	width, height int

	// IncludeStart prepends the start cell to returned paths
	IncludeStart bool
}

// NewFinder wraps an obstacle grid of the given dimensions
func NewFinder(grid []int, width, height int) *Finder {
	return &Finder{grid: grid, width: width, height: height}
}

// Find returns the cells from the step after start up to and including
// goal. The result is empty when start equals goal or goal is unreachable.
// The start cell itself is never tested for passability; the goal must be
// open to be reached.
func (f *Finder) Find(start, goal core.Coordinate) []core.Coordinate {
	if start == goal {
		return []core.Coordinate{}
	}
	return f.search(start, goal)
}

func (f *Finder) search(start, goal core.Coordinate) []core.Coordinate {
	came := map[core.Coordinate]core.Coordinate{start: start}
	queue := []core.Coordinate{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range current.ValidNeighbors(f.width, f.height) {
			if _, seen := came[next]; seen {
				continue
			}
			if !f.open(next) {
				continue
			}
			came[next] = current
			queue = append(queue, next)
		}
	}

	if _, reached := came[goal]; !reached {
		return []core.Coordinate{}
	}

	path := []core.Coordinate{goal}
	for current := came[goal]; current != start; current = came[current] {
		path = append(path, current)
	}
	if f.IncludeStart {
		path = append(path, start)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func (f *Finder) open(c core.Coordinate) bool {
	idx := c.ToIndex(f.width)
	if idx < 0 || idx >= len(f.grid) {
		return false
	}
	return f.grid[idx] == core.CellOpen
}

// Find is a convenience wrapper for one-off queries
func Find(grid []int, width, height int, start, goal core.Coordinate) []core.Coordinate {
	return NewFinder(grid, width, height).Find(start, goal)
}
