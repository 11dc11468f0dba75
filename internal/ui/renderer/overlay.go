package renderer

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
	"github.com/mitchelldurbincs/GridTactics/internal/game/units"
)

var (
	SelectionColor   = color.RGBA{255, 255, 100, 255} // Yellow highlight
	ActiveColor      = color.RGBA{255, 255, 255, 160}
	ValidMoveColor   = color.RGBA{100, 255, 100, 96}  // Semi-transparent green
	ValidAttackColor = color.RGBA{255, 100, 100, 128} // Semi-transparent red
	HoverColor       = color.RGBA{255, 255, 255, 64}  // Semi-transparent white
)

// TargetColor picks the highlight for a legal action
func TargetColor(kind units.ActionKind) color.Color {
	switch kind {
	case units.ActionMove:
		return ValidMoveColor
	case units.ActionAttackMelee:
		return ValidAttackColor
	default:
		core.Unreachable("action kind", kind)
		return nil
	}
}

func (br *BoardRenderer) drawOverlays(screen *ebiten.Image, grid *core.GridMap, scene Scene) {
	// Legal actions of the selected unit
	targets := scene.Targets()
	for _, t := range targets {
		br.drawTileOverlay(screen, t.Cell, TargetColor(t.Kind))
	}

	// Draw hover highlight only over cells that take a click
	if br.hasHover && grid.IsInBounds(br.hover.X, br.hover.Y) && isTarget(targets, br.hover) {
		br.drawTileOverlay(screen, br.hover, HoverColor)
	}

	if u := scene.CurrentUnit(); u != nil && u.IsAlive() {
		br.drawBorder(screen, u.Position(), ActiveColor, 1)
	}
	if u := scene.SelectedUnit(); u != nil {
		br.drawBorder(screen, u.Position(), SelectionColor, 3)
	}
}

func isTarget(targets []events.Target, c core.Coordinate) bool {
	for _, t := range targets {
		if t.Cell == c {
			return true
		}
	}
	return false
}

func (br *BoardRenderer) drawTileOverlay(screen *ebiten.Image, c core.Coordinate, col color.Color) {
	screenX := float32(c.X * br.tileSize)
	screenY := float32(c.Y * br.tileSize)
	size := float32(br.tileSize)

	vector.DrawFilledRect(screen, screenX, screenY, size, size, col, false)
}

func (br *BoardRenderer) drawBorder(screen *ebiten.Image, c core.Coordinate, col color.Color, thickness float32) {
	screenX := float32(c.X * br.tileSize)
	screenY := float32(c.Y * br.tileSize)
	size := float32(br.tileSize)

	// Top
	vector.DrawFilledRect(screen, screenX, screenY, size, thickness, col, false)
	// Bottom
	vector.DrawFilledRect(screen, screenX, screenY+size-thickness, size, thickness, col, false)
	// Left
	vector.DrawFilledRect(screen, screenX, screenY, thickness, size, col, false)
	// Right
	vector.DrawFilledRect(screen, screenX+size-thickness, screenY, thickness, size, col, false)
}
