package battle

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/pathfinding"
	"github.com/mitchelldurbincs/GridTactics/internal/game/states"
	"github.com/mitchelldurbincs/GridTactics/internal/game/units"
)

// enterAutoSelectAction runs the enemy policy for the current unit: strike
// the player when adjacent, otherwise step along the shortest path toward
// it, otherwise burn one AP.
func (b *Battle) enterAutoSelectAction() {
	enemy := b.current
	if !enemy.HasAp() {
		b.setPhase(states.PhaseUnitEnd, "no ap")
		return
	}

	player := b.player()
	if b.grid.ManhattanDistance(enemy.Position(), player.Position()) == 1 {
		b.melee(enemy, player)
		return
	}

	grid := b.enemyObstacleGrid(enemy)
	path := pathfinding.Find(grid, b.grid.W, b.grid.H, enemy.Position(), player.Position())
	if len(path) > 0 {
		b.move(enemy, path[0])
		return
	}

	enemy.UseAp()
	b.wasteAp(enemy, 1, "no path to player")
	b.setPhase(states.PhaseUnitEnd, "ap wasted")
}

// enemyObstacleGrid is the map's obstacle grid with every other living
// enemy's cell blocked. The player's cell stays open so it can be the goal.
func (b *Battle) enemyObstacleGrid(self *units.Unit) []int {
	grid := b.grid.ExportObstacleGrid()
	b.occupiedCells(func(u *units.Unit) bool {
		return u != self && u.Faction() != units.FactionPlayer
	}).Each(func(c core.Coordinate) {
		grid[c.ToIndex(b.grid.W)] = core.CellBlocked
	})
	return grid
}

// occupiedCells collects the cells of living units accepted by keep. A nil
// keep accepts every living unit.
func (b *Battle) occupiedCells(keep func(*units.Unit) bool) mapset.Set[core.Coordinate] {
	cells := mapset.New[core.Coordinate]()
	for _, u := range b.roster {
		if !u.IsAlive() {
			continue
		}
		if keep != nil && !keep(u) {
			continue
		}
		cells.Put(u.Position())
	}
	return cells
}
