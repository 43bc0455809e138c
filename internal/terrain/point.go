package terrain

import "fmt"

// Coord is a grid coordinate. It is the identity of a Point.
type Coord struct {
	X, Y int
}

// String returns the coordinate as "(x,y)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns c offset by d, without wrapping.
func (c Coord) Add(d Coord) Coord {
	return Coord{c.X + d.X, c.Y + d.Y}
}

// Scale returns c with both components multiplied by k.
func (c Coord) Scale(k int) Coord {
	return Coord{c.X * k, c.Y * k}
}

// Step moves c by one unit offset d on a torus of side size.
// Overflow wraps to 0 and underflow wraps to size-1.
func (c Coord) Step(d Coord, size int) Coord {
	return Coord{wrap(c.X+d.X, size), wrap(c.Y+d.Y, size)}
}

func wrap(v, size int) int {
	if v >= size {
		return 0
	}
	if v < 0 {
		return size - 1
	}
	return v
}

// cardinals is the unit step table. Its order is also the neighbor probe
// order used when linking a new point: +x, -x, +y, -y.
var cardinals = [4]Coord{
	{1, 0},
	{-1, 0},
	{0, 1},
	{0, -1},
}

// Point is a grid cell carrying a scalar value (height).
type Point struct {
	Coord
	Value float32
}

// NewPoint creates a point at (x, y).
func NewPoint(x, y int, value float32) Point {
	return Point{Coord: Coord{x, y}, Value: value}
}

// PositionSet tracks occupied coordinates and the index of the point at each.
type PositionSet map[Coord]int

// NewPositionSet indexes points by coordinate. Later duplicates win.
func NewPositionSet(points []Point) PositionSet {
	set := make(PositionSet, len(points))
	for i, p := range points {
		set[p.Coord] = i
	}
	return set
}

// Has reports whether c is occupied.
func (s PositionSet) Has(c Coord) bool {
	_, ok := s[c]
	return ok
}

// Touches reports whether any 4-neighbor of c is occupied.
// Neighbors are not wrapped.
func (s PositionSet) Touches(c Coord) bool {
	for _, d := range cardinals {
		if s.Has(c.Add(d)) {
			return true
		}
	}
	return false
}

// FirstNeighbor returns the index of the first occupied 4-neighbor of c in
// probe order, or false if c touches nothing.
func (s PositionSet) FirstNeighbor(c Coord) (int, bool) {
	for _, d := range cardinals {
		if i, ok := s[c.Add(d)]; ok {
			return i, true
		}
	}
	return 0, false
}

// Link joins two points. Links are always axis-aligned.
type Link struct {
	From, To Point
}

// AxisAligned reports whether the endpoints share an x or a y.
func (l Link) AxisAligned() bool {
	return l.From.X == l.To.X || l.From.Y == l.To.Y
}

// Scaled returns the link with both endpoints multiplied by k and their
// values reset to value.
func (l Link) Scaled(k int, value float32) Link {
	return Link{
		From: Point{Coord: l.From.Scale(k), Value: value},
		To:   Point{Coord: l.To.Scale(k), Value: value},
	}
}

// Trace rasterizes every integer point between a and b inclusive, ordered
// from a to b. Each traced point carries TracedValue.
func Trace(a, b Coord) ([]Point, error) {
	if a.X != b.X && a.Y != b.Y {
		return nil, fmt.Errorf("%w: %v-%v", ErrNotAxisAligned, a, b)
	}

	step := Coord{sign(b.X - a.X), sign(b.Y - a.Y)}
	n := abs(b.X-a.X) + abs(b.Y-a.Y) + 1

	points := make([]Point, 0, n)
	c := a
	for range n {
		points = append(points, Point{Coord: c, Value: TracedValue})
		c = c.Add(step)
	}
	return points, nil
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
