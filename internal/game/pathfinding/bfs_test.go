package pathfinding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
)

func openGrid(w, h int) []int {
	return make([]int, w*h)
}

func assertContiguous(t *testing.T, start core.Coordinate, path []core.Coordinate) {
	t.Helper()
	prev := start
	for i, step := range path {
		assert.Equal(t, 1, core.ManhattanDistance(prev, step), "step %d %s -> %s is not one orthogonal move", i, prev, step)
		prev = step
	}
}

func TestFind_OpenGrid(t *testing.T) {
	start := core.NewCoordinate(0, 0)
	goal := core.NewCoordinate(4, 4)

	path := Find(openGrid(5, 5), 5, 5, start, goal)

	require.Len(t, path, 8)
	assert.Equal(t, goal, path[len(path)-1])
	assert.NotContains(t, path, start)
	assertContiguous(t, start, path)
}

func TestFind_SameCell(t *testing.T) {
	grid := openGrid(5, 5)
	for _, p := range []core.Coordinate{{X: 0, Y: 0}, {X: 2, Y: 3}, {X: 4, Y: 4}, {X: -1, Y: 7}} {
		path := Find(grid, 5, 5, p, p)
		assert.NotNil(t, path)
		assert.Empty(t, path, "find(%s,%s)", p, p)
	}
}

func TestFind_GoalSurrounded(t *testing.T) {
	grid := openGrid(5, 5)
	goal := core.NewCoordinate(2, 2)
	for _, n := range goal.Neighbors() {
		grid[n.ToIndex(5)] = core.CellBlocked
	}

	path := Find(grid, 5, 5, core.NewCoordinate(0, 0), goal)
	assert.Empty(t, path)
}

func TestFind_BlockedGoal(t *testing.T) {
	grid := openGrid(5, 5)
	goal := core.NewCoordinate(3, 0)
	grid[goal.ToIndex(5)] = core.CellBlocked

	assert.Empty(t, Find(grid, 5, 5, core.NewCoordinate(0, 0), goal))
}

func TestFind_RoutesAroundWall(t *testing.T) {
	// A vertical wall at x=2 with a gap at y=4.
	grid := openGrid(5, 5)
	for y := 0; y < 4; y++ {
		grid[core.NewCoordinate(2, y).ToIndex(5)] = core.CellBlocked
	}
	start := core.NewCoordinate(0, 0)
	goal := core.NewCoordinate(4, 0)

	path := Find(grid, 5, 5, start, goal)

	require.Len(t, path, 12)
	assert.Contains(t, path, core.NewCoordinate(2, 4))
	assertContiguous(t, start, path)
	for _, step := range path {
		assert.Equal(t, core.CellOpen, grid[step.ToIndex(5)], "path crosses blocked cell %s", step)
	}
}

func TestFind_BlockedStartStillExpands(t *testing.T) {
	m := core.NewGridMap(10, 8)
	grid := m.ExportObstacleGrid()
	start := core.NewCoordinate(2, 5)
	grid[start.ToIndex(m.W)] = core.CellBlocked

	path := Find(grid, m.W, m.H, start, core.NewCoordinate(3, 1))

	require.Len(t, path, 5)
	assertContiguous(t, start, path)
}

func TestFind_AdjacentGoal(t *testing.T) {
	path := Find(openGrid(3, 3), 3, 3, core.NewCoordinate(1, 1), core.NewCoordinate(1, 2))
	assert.Equal(t, []core.Coordinate{{X: 1, Y: 2}}, path)
}

func TestFinder_IncludeStart(t *testing.T) {
	f := NewFinder(openGrid(4, 1), 4, 1)
	f.IncludeStart = true

	path := f.Find(core.NewCoordinate(0, 0), core.NewCoordinate(3, 0))
	assert.Equal(t, []core.Coordinate{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}, path)
}

func TestFinder_Reusable(t *testing.T) {
	f := NewFinder(openGrid(5, 5), 5, 5)
	first := f.Find(core.NewCoordinate(0, 0), core.NewCoordinate(0, 4))
	second := f.Find(core.NewCoordinate(0, 0), core.NewCoordinate(0, 4))
	assert.Equal(t, first, second)
	assert.Len(t, first, 4)
}
