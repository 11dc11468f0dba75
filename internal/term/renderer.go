package term

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
	"github.com/mitchelldurbincs/GridTactics/internal/game/units"
	"github.com/mitchelldurbincs/GridTactics/internal/ui/hud"
)

// CellWidth is how many terminal columns one map cell takes
const CellWidth = 2

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	floorStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	moveStyle   = tcell.StyleDefault.Background(tcell.ColorDarkGreen)
	attackStyle = tcell.StyleDefault.Background(tcell.ColorDarkRed)
	corpseStyle = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dimStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Scene is the read-only battle state the terminal draws
type Scene interface {
	Map() *core.GridMap
	Units() []*units.Unit
	Targets() []events.Target
	SelectedUnit() *units.Unit
}

// Renderer draws the board and side panel
type Renderer struct {
	screen tcell.Screen
	panel  *hud.Panel
}

func NewRenderer(screen tcell.Screen, panel *hud.Panel) *Renderer {
	return &Renderer{screen: screen, panel: panel}
}

// Render draws the whole frame and shows it
func (r *Renderer) Render(scene Scene) {
	r.screen.Clear()

	grid := scene.Map()
	if grid == nil {
		r.text(0, 0, "Preparing battle...", textStyle)
		r.screen.Show()
		return
	}

	r.drawTiles(grid)
	r.drawTargets(scene)
	r.drawUnits(scene)
	r.drawPanel(grid.W*CellWidth + 2)

	r.screen.Show()
}

func (r *Renderer) drawTiles(grid *core.GridMap) {
	for _, tile := range grid.Tiles() {
		ch, style := '.', floorStyle
		if tile.Kind == core.TileBorder {
			ch, style = '#', borderStyle
		}
		r.cell(core.NewCoordinate(tile.X, tile.Y), ch, style)
	}
}

func (r *Renderer) drawTargets(scene Scene) {
	for _, t := range scene.Targets() {
		style := moveStyle
		if t.Kind == units.ActionAttackMelee {
			style = attackStyle
		}
		r.cell(t.Cell, '.', style)
	}
}

func (r *Renderer) drawUnits(scene Scene) {
	roster := scene.Units()
	for _, u := range roster {
		if !u.IsAlive() {
			r.cell(u.Position(), 'x', corpseStyle)
		}
	}

	selected := scene.SelectedUnit()
	targets := scene.Targets()
	for _, u := range roster {
		if !u.IsAlive() {
			continue
		}
		style := tcell.StyleDefault.Foreground(factionColor(u.Faction())).Bold(true)
		for _, t := range targets {
			if t.Cell == u.Position() {
				style = style.Background(tcell.ColorDarkRed)
			}
		}
		if u == selected {
			style = style.Reverse(true)
		}
		r.cell(u.Position(), Glyph(u), style)
	}
}

func (r *Renderer) drawPanel(x int) {
	y := 0
	r.text(x, y, fmt.Sprintf("Turn %d  %s", r.panel.Turn(), r.panel.Phase()), textStyle)
	y += 2

	active, hasActive := r.panel.Active()
	for _, u := range r.panel.Units() {
		prefix := "  "
		if hasActive && u.ID == active.ID {
			prefix = "> "
		}
		style := tcell.StyleDefault.Foreground(factionColor(u.Faction))
		if !u.Alive {
			style = corpseStyle
		}
		r.text(x, y, prefix+hud.StatLine(u), style)
		y++
	}
	y++

	for _, line := range r.panel.Log() {
		r.text(x, y, line, dimStyle)
		y++
	}
	y++

	if outcome := r.panel.Outcome(); outcome != "" {
		r.text(x, y, strings.ToUpper(outcome)+" - press q to quit", textStyle.Bold(true))
		return
	}
	r.text(x, y, "click: select/act  w: wait  esc: deselect  q: quit", dimStyle)
}

// cell draws ch in the left column of a map cell, padding the rest
func (r *Renderer) cell(c core.Coordinate, ch rune, style tcell.Style) {
	x := c.X * CellWidth
	r.screen.SetContent(x, c.Y, ch, nil, style)
	for i := 1; i < CellWidth; i++ {
		r.screen.SetContent(x+i, c.Y, ' ', nil, style)
	}
}

func (r *Renderer) text(x, y int, msg string, style tcell.Style) {
	for i, ch := range []rune(msg) {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

// Glyph is the map symbol of a living unit: the player is '@', enemies
// use the first letter of their name.
func Glyph(u *units.Unit) rune {
	if u.Faction() == units.FactionPlayer {
		return '@'
	}
	for _, ch := range strings.ToLower(u.Name()) {
		return ch
	}
	return 'e'
}

func factionColor(f units.Faction) tcell.Color {
	switch f {
	case units.FactionPlayer:
		return tcell.ColorYellow
	case units.FactionEnemy:
		return tcell.ColorRed
	default:
		core.Unreachable("faction", f)
		return tcell.ColorDefault
	}
}
