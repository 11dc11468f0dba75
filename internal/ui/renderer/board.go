package renderer

import (
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
	"github.com/mitchelldurbincs/GridTactics/internal/game/units"
)

// -----------------------------------------------------------------------------
// Colour definitions
// -----------------------------------------------------------------------------

var FactionColors = map[units.Faction]color.Color{
	units.FactionPlayer: color.RGBA{50, 100, 200, 255}, // Blue
	units.FactionEnemy:  color.RGBA{200, 50, 50, 255},  // Red
}

var (
	BorderColor      = color.RGBA{40, 36, 44, 255}
	FloorColor       = color.RGBA{96, 90, 80, 255}
	FloorAltHueShift = 12
	CorpseColor      = color.RGBA{70, 70, 70, 255}
	ImpactColor      = color.RGBA{255, 230, 120, 255}
	HPBarBackColor   = color.RGBA{30, 30, 30, 255}
	HPBarColor       = color.RGBA{80, 200, 80, 255}
	LabelTextColor   = color.White
)

// Scene is the read-only battle state the board draws
type Scene interface {
	Map() *core.GridMap
	Units() []*units.Unit
	Targets() []events.Target
	SelectedUnit() *units.Unit
	CurrentUnit() *units.Unit
}

// Animator supplies in-flight sprite positions
type Animator interface {
	Position(id int, rest core.Coordinate) (x, y float64)
	Impact(id int) bool
}

// -----------------------------------------------------------------------------
// Renderer
// -----------------------------------------------------------------------------

type BoardRenderer struct {
	tileSize    int
	defaultFont font.Face
	tile        *ebiten.Image

	hover    core.Coordinate
	hasHover bool
}

// NewBoardRenderer returns a renderer ready to use.
func NewBoardRenderer(tileSize int, f font.Face) *BoardRenderer {
	return &BoardRenderer{
		tileSize:    tileSize,
		defaultFont: f,
		tile:        ebiten.NewImage(tileSize, tileSize),
	}
}

// SetHover marks the cell under the cursor
func (br *BoardRenderer) SetHover(c core.Coordinate, ok bool) {
	br.hover = c
	br.hasHover = ok
}

// Draw renders the map, overlays and units on the supplied Ebiten screen.
func (br *BoardRenderer) Draw(screen *ebiten.Image, scene Scene, anim Animator) {
	grid := scene.Map()
	if grid == nil {
		return
	}

	br.drawTiles(screen, grid)
	br.drawOverlays(screen, grid, scene)

	// Corpses first so the living are drawn over them
	roster := scene.Units()
	for _, u := range roster {
		if !u.IsAlive() {
			br.drawUnit(screen, u, anim)
		}
	}
	for _, u := range roster {
		if u.IsAlive() {
			br.drawUnit(screen, u, anim)
		}
	}
}

func (br *BoardRenderer) drawTiles(screen *ebiten.Image, grid *core.GridMap) {
	for _, tile := range grid.Tiles() {
		c := BorderColor
		if tile.Kind == core.TileFloor {
			c = FloorColor
			if (tile.X+tile.Y)%2 == 1 {
				c = shiftColor(FloorColor, FloorAltHueShift).(color.RGBA)
			}
		}
		br.tile.Fill(c)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(tile.X*br.tileSize), float64(tile.Y*br.tileSize))
		screen.DrawImage(br.tile, op)
	}
}

func (br *BoardRenderer) drawUnit(screen *ebiten.Image, u *units.Unit, anim Animator) {
	gx, gy := float64(u.Position().X), float64(u.Position().Y)
	if anim != nil {
		gx, gy = anim.Position(u.ID(), u.Position())
	}

	size := float32(br.tileSize)
	inset := size / 6
	x := float32(gx)*size + inset
	y := float32(gy)*size + inset
	body := size - 2*inset

	if !u.IsAlive() {
		vector.DrawFilledRect(screen, x+body/4, y+body/2, body/2, body/4, CorpseColor, false)
		return
	}

	fill := FactionColors[u.Faction()]
	if fill == nil {
		fill = color.White
	}
	if anim != nil && anim.Impact(u.ID()) {
		fill = ImpactColor
	}
	vector.DrawFilledRect(screen, x, y, body, body, fill, false)
	br.drawFacing(screen, u.Facing(), x, y, body)
	br.drawHPBar(screen, u, x, y+body+2, body)

	// Sprite frame label until real sprite sheets are wired
	if br.defaultFont != nil {
		label := u.AssetKey()
		if label == "" {
			label = u.Name()
		}
		if len(label) > 3 {
			label = label[:3]
		}
		label += strconv.Itoa(u.AssetFrame())

		b := text.BoundString(br.defaultFont, label)
		textW := b.Max.X - b.Min.X
		textH := b.Max.Y - b.Min.Y
		tx := int(x) + (int(body)-textW)/2
		ty := int(y) + (int(body)+textH)/2
		text.Draw(screen, label, br.defaultFont, tx, ty, LabelTextColor)
	}
}

func (br *BoardRenderer) drawFacing(screen *ebiten.Image, d core.Direction, x, y, body float32) {
	const mark = 4
	off := d.Offset()
	cx := x + body/2 + float32(off.X)*(body/2-mark)
	cy := y + body/2 + float32(off.Y)*(body/2-mark)
	vector.DrawFilledRect(screen, cx-mark/2, cy-mark/2, mark, mark, color.White, false)
}

func (br *BoardRenderer) drawHPBar(screen *ebiten.Image, u *units.Unit, x, y, width float32) {
	const height = 3
	vector.DrawFilledRect(screen, x, y, width, height, HPBarBackColor, false)
	if u.MaxHP() > 0 {
		filled := width * float32(u.HP()) / float32(u.MaxHP())
		vector.DrawFilledRect(screen, x, y, filled, height, HPBarColor, false)
	}
}

// shiftColor returns a slightly lighter version of c.
func shiftColor(c color.Color, amount int) color.Color {
	r, g, b, a := c.RGBA()
	inc := uint32(amount) << 8 // amount*256

	r = clamp16(r + inc)
	g = clamp16(g + inc)
	b = clamp16(b + inc)
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func clamp16(v uint32) uint32 {
	const max = 0xFFFF
	if v > max {
		return max
	}
	return v
}
