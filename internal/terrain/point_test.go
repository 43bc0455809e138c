package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordStepWraps(t *testing.T) {
	size := 16

	assert.Equal(t, Coord{0, 3}, Coord{15, 3}.Step(Coord{1, 0}, size))
	assert.Equal(t, Coord{15, 3}, Coord{0, 3}.Step(Coord{-1, 0}, size))
	assert.Equal(t, Coord{4, 0}, Coord{4, 15}.Step(Coord{0, 1}, size))
	assert.Equal(t, Coord{4, 15}, Coord{4, 0}.Step(Coord{0, -1}, size))
	assert.Equal(t, Coord{8, 8}, Coord{7, 8}.Step(Coord{1, 0}, size))
}

func TestCoordStepStaysInBounds(t *testing.T) {
	size := 5
	rng := NewRand(7)
	c := Coord{0, 0}
	for range 10000 {
		c = c.Step(cardinals[rng.IntN(len(cardinals))], size)
		require.True(t, c.X >= 0 && c.X < size && c.Y >= 0 && c.Y < size, "left grid at %v", c)
	}
}

func TestPositionSetTouches(t *testing.T) {
	set := NewPositionSet([]Point{NewPoint(5, 5, SeedValue)})

	assert.True(t, set.Has(Coord{5, 5}))
	assert.True(t, set.Touches(Coord{6, 5}))
	assert.True(t, set.Touches(Coord{5, 4}))
	assert.False(t, set.Touches(Coord{6, 6}), "diagonals are not adjacent")
	assert.False(t, set.Touches(Coord{5, 5}), "a cell does not touch itself")
}

func TestPositionSetFirstNeighborOrder(t *testing.T) {
	// Occupy every neighbor of (5,5); +x must win, then -x, +y, -y.
	points := []Point{
		NewPoint(5, 4, 0), // -y
		NewPoint(5, 6, 0), // +y
		NewPoint(4, 5, 0), // -x
		NewPoint(6, 5, 0), // +x
	}
	set := NewPositionSet(points)

	for _, want := range []int{3, 2, 1, 0} {
		i, ok := set.FirstNeighbor(Coord{5, 5})
		require.True(t, ok)
		assert.Equal(t, want, i)
		delete(set, points[i].Coord)
	}

	_, ok := set.FirstNeighbor(Coord{5, 5})
	assert.False(t, ok)
}

func TestTrace(t *testing.T) {
	points, err := Trace(Coord{3, 5}, Coord{3, 2})
	require.NoError(t, err)

	require.Len(t, points, 4)
	assert.Equal(t, Coord{3, 5}, points[0].Coord)
	assert.Equal(t, Coord{3, 2}, points[3].Coord)

	set := NewPositionSet(points)
	for y := 2; y <= 5; y++ {
		assert.True(t, set.Has(Coord{3, y}), "missing (3,%d)", y)
	}
	for _, p := range points {
		assert.Equal(t, TracedValue, p.Value)
	}
}

func TestTraceHorizontalAndSingle(t *testing.T) {
	points, err := Trace(Coord{0, 7}, Coord{4, 7})
	require.NoError(t, err)
	assert.Len(t, points, 5)

	points, err = Trace(Coord{2, 2}, Coord{2, 2})
	require.NoError(t, err)
	assert.Equal(t, []Point{{Coord: Coord{2, 2}, Value: TracedValue}}, points)
}

func TestTraceNotAxisAligned(t *testing.T) {
	_, err := Trace(Coord{0, 0}, Coord{1, 1})
	assert.ErrorIs(t, err, ErrNotAxisAligned)
}

func TestLinkScaled(t *testing.T) {
	l := Link{From: NewPoint(3, 4, ContactValue), To: NewPoint(3, 5, SeedValue)}
	s := l.Scaled(2, TracedValue)

	assert.Equal(t, Coord{6, 8}, s.From.Coord)
	assert.Equal(t, Coord{6, 10}, s.To.Coord)
	assert.Equal(t, TracedValue, s.From.Value)
	assert.True(t, s.AxisAligned())
}
