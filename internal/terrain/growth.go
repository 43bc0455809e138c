package terrain

import (
	"fmt"
	"math/rand/v2"

	"github.com/chewxy/math32"
	"go.uber.org/zap"
)

// NewRand returns a seeded PCG generator for growth calls.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

// Init grows a fresh DLA cluster of target points seeded at the grid center.
// Existing points and links are discarded.
func (t Terrain) Init(rng *rand.Rand, target int) (Terrain, error) {
	return t.with(nil, nil).Grow(rng, target)
}

// Grow adds random-walk points to the existing cluster until it holds target
// points. An empty terrain is seeded with the center point first.
//
// Walkers spawn at a uniformly random cell and step in a random cardinal
// direction, wrapping around the grid edges, until they land on or next to
// the cluster. Walkers landing on an occupied cell are discarded.
func (t Terrain) Grow(rng *rand.Rand, target int) (Terrain, error) {
	if t.GSize < 1 {
		return t, fmt.Errorf("%w: gsize %d", ErrInvalidSize, t.GSize)
	}
	if target < 1 || target > t.GSize*t.GSize {
		return t, fmt.Errorf("%w: %d points on a %dx%d grid", ErrInvalidTarget, target, t.GSize, t.GSize)
	}

	g := grower{
		rng:    rng,
		gsize:  t.GSize,
		mode:   t.Mode,
		points: append(make([]Point, 0, max(target, len(t.Points))), t.Points...),
	}
	if t.Mode.TracksLinks() {
		g.links = append([]Link(nil), t.Links...)
	}
	g.set = NewPositionSet(g.points)

	if len(g.points) == 0 {
		g.commitSeed(t.Center())
	}

	walkers := 0
	for len(g.points) < target {
		walkers++
		if err := g.release(); err != nil {
			return t, err
		}
	}

	t.Logger().Debug("growth finished",
		zap.Int("points", len(g.points)),
		zap.Int("links", len(g.links)),
		zap.Int("walkers", walkers),
		zap.Int("gsize", t.GSize))

	return t.with(g.points, g.links), nil
}

type grower struct {
	rng    *rand.Rand
	gsize  int
	mode   GrowthMode
	points []Point
	links  []Link
	set    PositionSet
}

func (g *grower) commitSeed(c Coord) {
	g.set[c] = len(g.points)
	g.points = append(g.points, Point{Coord: c, Value: SeedValue})
}

// release walks one walker to the cluster and commits it if it landed on a
// free cell.
func (g *grower) release() error {
	walker := NewPoint(g.rng.IntN(g.gsize), g.rng.IntN(g.gsize), WalkerValue)

	for !g.set.Has(walker.Coord) && !g.set.Touches(walker.Coord) {
		walker.Coord = walker.Step(cardinals[g.rng.IntN(len(cardinals))], g.gsize)
	}

	if g.set.Has(walker.Coord) {
		return nil
	}

	walker.Value = g.commitValue(walker.Coord)

	if g.mode.TracksLinks() {
		i, ok := g.set.FirstNeighbor(walker.Coord)
		if !ok {
			return fmt.Errorf("%w: %v", ErrDetachedPoint, walker.Coord)
		}
		g.links = append(g.links, Link{From: walker, To: g.points[i]})
	}

	g.set[walker.Coord] = len(g.points)
	g.points = append(g.points, walker)
	return nil
}

func (g *grower) commitValue(c Coord) float32 {
	if g.mode != ModeDistanceWeighted {
		return ContactValue
	}

	center := float32(g.gsize) / 2
	maxRange := math32.Sqrt(2 * center * center)
	dx := float32(c.X) - center
	dy := float32(c.Y) - center
	r := math32.Sqrt(dx*dx + dy*dy)

	return (1 - r/maxRange) * SeedValue
}
