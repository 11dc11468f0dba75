package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"

	"github.com/mitchelldurbincs/GridTactics/internal/ui/hud"
	"github.com/mitchelldurbincs/GridTactics/internal/ui/renderer"
)

const lineHeight = 15

func (g *Game) drawUI(screen *ebiten.Image) {
	x := 8
	if grid := g.battle.Map(); grid != nil {
		x += grid.W * g.cfg.TileSize
	}
	y := 18

	turnStr := fmt.Sprintf("Turn: %d", g.panel.Turn())
	text.Draw(screen, turnStr, g.defaultFont, x, y, color.White)
	y += lineHeight
	text.Draw(screen, g.panel.Phase(), g.defaultFont, x, y, color.Gray{160})
	y += 2 * lineHeight

	// Unit stats
	active, hasActive := g.panel.Active()
	for _, u := range g.panel.Units() {
		c := renderer.FactionColors[u.Faction]
		if !u.Alive {
			c = renderer.CorpseColor
		}
		line := hud.StatLine(u)
		if hasActive && u.ID == active.ID {
			line = "> " + line
		} else {
			line = "  " + line
		}
		text.Draw(screen, line, g.defaultFont, x, y, c)
		y += lineHeight
	}
	y += lineHeight

	for _, entry := range g.panel.Log() {
		text.Draw(screen, entry, g.defaultFont, x, y, color.Gray{200})
		y += lineHeight
	}

	// Controls help
	helpY := g.cfg.Window.Height - 65
	text.Draw(screen, "Controls:", g.defaultFont, 5, helpY, color.White)
	text.Draw(screen, "Click: Select/Act", g.defaultFont, 5, helpY+15, color.Gray{200})
	text.Draw(screen, "Right click/ESC: Deselect", g.defaultFont, 5, helpY+30, color.Gray{200})
	text.Draw(screen, "Space/W: Wait   Q: Quit", g.defaultFont, 5, helpY+45, color.Gray{200})

	if g.gameOver() {
		banner := g.panel.Outcome()
		msgX := g.cfg.Window.Width/2 - len(banner)*3
		text.Draw(screen, banner, g.defaultFont, msgX, g.cfg.Window.Height/2, color.White)
	}

	// Status message
	if g.messageTimer > 0 && g.statusMessage != "" {
		msgX := g.cfg.Window.Width/2 - len(g.statusMessage)*3
		msgY := g.cfg.Window.Height - 20
		text.Draw(screen, g.statusMessage, g.defaultFont, msgX, msgY, color.White)
	}
}
