package core

import "fmt"

// TileKind classifies a map cell.
type TileKind int

const (
	TileBorder TileKind = iota
	TileFloor
)

func (k TileKind) String() string {
	switch k {
	case TileBorder:
		return "BORDER"
	case TileFloor:
		return "FLOOR"
	default:
		return fmt.Sprintf("TileKind(%d)", int(k))
	}
}

// Obstacle grid cell values
const (
	CellOpen    = 0
	CellBlocked = 1
)

// Tile is a single map cell. Tiles never change after the map is built.
type Tile struct {
	X, Y     int
	Kind     TileKind
	Walkable bool
}

// GridMap is a W×H board whose outer ring is impassable border and whose
// interior is open floor. Tiles are stored row-major.
type GridMap struct {
	W, H  int
	tiles []Tile
}

// NewGridMap generates the tile set for a width×height map. Negative
// dimensions produce an empty map.
func NewGridMap(width, height int) *GridMap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	m := &GridMap{W: width, H: height, tiles: make([]Tile, 0, width*height)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			border := x == 0 || y == 0 || x == width-1 || y == height-1
			kind := TileFloor
			if border {
				kind = TileBorder
			}
			m.tiles = append(m.tiles, Tile{X: x, Y: y, Kind: kind, Walkable: !border})
		}
	}
	return m
}

func (m *GridMap) Idx(x, y int) int { return y*m.W + x }

// Tiles returns a copy of every tile in row-major order
func (m *GridMap) Tiles() []Tile {
	out := make([]Tile, len(m.tiles))
	copy(out, m.tiles)
	return out
}

// TileAt returns the tile at (x,y); ok is false outside the map
func (m *GridMap) TileAt(x, y int) (Tile, bool) {
	if !m.IsInBounds(x, y) {
		return Tile{}, false
	}
	return m.tiles[m.Idx(x, y)], true
}

// IsInBounds checks if coordinates are within map boundaries
func (m *GridMap) IsInBounds(x, y int) bool {
	return x >= 0 && x < m.W && y >= 0 && y < m.H
}

// CanEnter reports whether a unit may stand on (x,y). Only floor tiles
// qualify; border tiles and out-of-range coordinates are rejected.
func (m *GridMap) CanEnter(x, y int) bool {
	t, ok := m.TileAt(x, y)
	return ok && t.Kind == TileFloor
}

// ManhattanDistance is the grid distance between two cells
func (m *GridMap) ManhattanDistance(a, b Coordinate) int {
	return ManhattanDistance(a, b)
}

// ExportObstacleGrid flattens the static tile kinds into a pathfinding grid
// indexed y*W+x: CellOpen for floor, CellBlocked for border. The slice is
// freshly allocated so callers may mark extra blocked cells on it.
func (m *GridMap) ExportObstacleGrid() []int {
	grid := make([]int, len(m.tiles))
	for i, t := range m.tiles {
		if t.Kind == TileFloor {
			grid[i] = CellOpen
		} else {
			grid[i] = CellBlocked
		}
	}
	return grid
}
