package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManhattanDistance(t *testing.T) {
	tests := []struct {
		a, b     Coordinate
		expected int
	}{
		{NewCoordinate(0, 0), NewCoordinate(0, 0), 0},
		{NewCoordinate(0, 0), NewCoordinate(4, 4), 8},
		{NewCoordinate(3, 1), NewCoordinate(2, 2), 2},
		{NewCoordinate(3, 1), NewCoordinate(3, 2), 1},
		{NewCoordinate(-2, 5), NewCoordinate(1, -1), 9},
	}

	for _, tt := range tests {
		t.Run(tt.a.String()+"->"+tt.b.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, ManhattanDistance(tt.a, tt.b))
			assert.Equal(t, tt.expected, ManhattanDistance(tt.b, tt.a))
		})
	}
}

func TestManhattanDistance_Metric(t *testing.T) {
	m := NewGridMap(6, 5)

	var cells []Coordinate
	for _, tile := range m.Tiles() {
		cells = append(cells, NewCoordinate(tile.X, tile.Y))
	}

	for _, a := range cells {
		for _, b := range cells {
			ab := m.ManhattanDistance(a, b)
			assert.Equal(t, ab, m.ManhattanDistance(b, a), "symmetry %s %s", a, b)
			for _, c := range cells {
				assert.LessOrEqual(t, m.ManhattanDistance(a, c), ab+m.ManhattanDistance(b, c),
					"triangle inequality %s %s %s", a, b, c)
			}
		}
	}
}

func TestCoordinate_IndexRoundTrip(t *testing.T) {
	width := 10
	seen := make(map[int]bool)
	for y := 0; y < 8; y++ {
		for x := 0; x < width; x++ {
			idx := NewCoordinate(x, y).ToIndex(width)
			assert.False(t, seen[idx], "index %d reused", idx)
			seen[idx] = true
		}
	}
	assert.Len(t, seen, 80)
	assert.Equal(t, 13, NewCoordinate(3, 1).ToIndex(width))
}

func TestCoordinate_Neighbors(t *testing.T) {
	c := NewCoordinate(2, 2)
	assert.Equal(t, []Coordinate{{2, 1}, {3, 2}, {2, 3}, {1, 2}}, c.Neighbors())

	corner := NewCoordinate(0, 0)
	assert.ElementsMatch(t, []Coordinate{{1, 0}, {0, 1}}, corner.ValidNeighbors(5, 5))
}

func TestDirection(t *testing.T) {
	origin := NewCoordinate(5, 5)

	tests := []struct {
		target   Coordinate
		expected Direction
	}{
		{NewCoordinate(5, 4), North},
		{NewCoordinate(6, 5), East},
		{NewCoordinate(5, 6), South},
		{NewCoordinate(4, 5), West},
		{NewCoordinate(8, 6), East},
		{NewCoordinate(5, 1), North},
	}

	for _, tt := range tests {
		t.Run(tt.expected.String(), func(t *testing.T) {
			d, ok := origin.DirectionTo(tt.target)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, d)
		})
	}

	_, ok := origin.DirectionTo(origin)
	assert.False(t, ok)

	for _, d := range Directions {
		assert.Equal(t, origin, origin.Add(d.Offset()).Sub(d.Offset()))
		assert.Equal(t, 1, ManhattanDistance(origin, origin.Add(d.Offset())))
	}
}

func TestUnreachable(t *testing.T) {
	assert.PanicsWithValue(t, "unreachable: unexpected direction value Direction(9) (core.Direction)", func() {
		Direction(9).Offset()
	})
}
