package core

import "fmt"

// Coordinate is a cell position on the grid. It doubles as a relative
// offset when used for unit actions.
type Coordinate struct {
	X, Y int
}

// NewCoordinate creates a new coordinate with the given x and y values
func NewCoordinate(x, y int) Coordinate {
	return Coordinate{X: x, Y: y}
}

// IsValid checks if the coordinate lies inside a width×height grid
func (c Coordinate) IsValid(width, height int) bool {
	return c.X >= 0 && c.X < width && c.Y >= 0 && c.Y < height
}

// ToIndex converts the coordinate to a row-major grid index
func (c Coordinate) ToIndex(width int) int {
	return c.Y*width + c.X
}

// Neighbors returns the four orthogonal neighbors in North, East, South, West order
func (c Coordinate) Neighbors() []Coordinate {
	out := make([]Coordinate, 0, len(Directions))
	for _, d := range Directions {
		out = append(out, c.Add(d.Offset()))
	}
	return out
}

// ValidNeighbors returns the orthogonal neighbors that fall inside the grid
func (c Coordinate) ValidNeighbors(width, height int) []Coordinate {
	valid := make([]Coordinate, 0, 4)
	for _, n := range c.Neighbors() {
		if n.IsValid(width, height) {
			valid = append(valid, n)
		}
	}
	return valid
}

func (c Coordinate) Add(other Coordinate) Coordinate {
	return Coordinate{X: c.X + other.X, Y: c.Y + other.Y}
}

func (c Coordinate) Sub(other Coordinate) Coordinate {
	return Coordinate{X: c.X - other.X, Y: c.Y - other.Y}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// ManhattanDistance returns |a.x-b.x| + |a.y-b.y|
func ManhattanDistance(a, b Coordinate) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Direction is a cardinal facing. It carries no gameplay weight.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every cardinal direction in clockwise order
var Directions = []Direction{North, East, South, West}

// Offset returns the unit step for the direction
func (d Direction) Offset() Coordinate {
	switch d {
	case North:
		return Coordinate{X: 0, Y: -1}
	case East:
		return Coordinate{X: 1, Y: 0}
	case South:
		return Coordinate{X: 0, Y: 1}
	case West:
		return Coordinate{X: -1, Y: 0}
	default:
		Unreachable("direction", d)
		return Coordinate{}
	}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// DirectionTo picks the facing from c toward other. Horizontal movement wins
// when the delta is diagonal. ok is false when the two coordinates are equal.
func (c Coordinate) DirectionTo(other Coordinate) (Direction, bool) {
	delta := other.Sub(c)
	switch {
	case delta.X == 0 && delta.Y == 0:
		return South, false
	case abs(delta.X) >= abs(delta.Y) && delta.X > 0:
		return East, true
	case abs(delta.X) >= abs(delta.Y):
		return West, true
	case delta.Y > 0:
		return South, true
	default:
		return North, true
	}
}
