package terrain

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"
)

// Upscale doubles the grid resolution without adding detail.
//
// Every link is scaled by two and re-traced, so the cluster stays connected
// at the new resolution. In linked mode the scaled links become the new link
// collection. Modes without links trace a spanning tree of 4-adjacent pairs
// instead and keep no links afterwards. Distance weighted points carry their
// values through the upscale; traced midpoints take the mean of both ends.
func (t Terrain) Upscale() (Terrain, error) {
	links := t.Links
	if !t.Mode.TracksLinks() {
		links = spanningLinks(t.Points, t.Center())
	}

	set := make(PositionSet, 2*len(links)+1)
	points := make([]Point, 0, 2*len(links)+1)
	scaledLinks := make([]Link, 0, len(links))

	for _, l := range links {
		scaled := l.Scaled(2, TracedValue)

		traced, err := Trace(scaled.From.Coord, scaled.To.Coord)
		if err != nil {
			return t, fmt.Errorf("tracing link %v-%v: %w", l.From.Coord, l.To.Coord, err)
		}
		if t.Mode == ModeDistanceWeighted {
			carryValues(traced, l)
		}

		for _, p := range traced {
			if set.Has(p.Coord) {
				continue
			}
			set[p.Coord] = len(points)
			points = append(points, p)
		}
		scaledLinks = append(scaledLinks, scaled)
	}

	t.GSize *= 2
	if t.Mode.TracksLinks() {
		return t.with(points, scaledLinks), nil
	}

	// Points the tree missed are scaled alone.
	for _, p := range t.Points {
		c := p.Scale(2)
		if set.Has(c) {
			continue
		}
		value := TracedValue
		if t.Mode == ModeDistanceWeighted {
			value = p.Value
		}
		set[c] = len(points)
		points = append(points, Point{Coord: c, Value: value})
	}

	return t.with(points, nil), nil
}

// spanningLinks walks the 4-neighbor graph of points breadth first from
// root, or from the first point when root is free, and links every point it
// reaches to the point it was found from.
func spanningLinks(points []Point, root Coord) []Link {
	if len(points) == 0 {
		return nil
	}
	set := NewPositionSet(points)
	start, ok := set[root]
	if !ok {
		start = 0
	}

	seen := map[Coord]bool{points[start].Coord: true}
	queue := []int{start}
	links := make([]Link, 0, len(points)-1)
	for head := 0; head < len(queue); head++ {
		parent := points[queue[head]]
		for _, d := range cardinals {
			i, ok := set[parent.Add(d)]
			if !ok || seen[points[i].Coord] {
				continue
			}
			seen[points[i].Coord] = true
			links = append(links, Link{From: points[i], To: parent})
			queue = append(queue, i)
		}
	}
	return links
}

// carryValues copies the link's endpoint values onto a trace of its scaled
// endpoints.
func carryValues(traced []Point, l Link) {
	last := len(traced) - 1
	mid := (l.From.Value + l.To.Value) / 2
	for i := range traced {
		switch i {
		case 0:
			traced[i].Value = l.From.Value
		case last:
			traced[i].Value = l.To.Value
		default:
			traced[i].Value = mid
		}
	}
}

// CrispTarget is the point count a crisp layer grows to after upscaling a
// terrain that held previous points, capped at the grid area.
func CrispTarget(previous, gsize int) int {
	return min((previous+1)*2, gsize*gsize)
}

// UpscaleCycle upscales once and grows a crisp layer of detail at the new
// resolution.
func (t Terrain) UpscaleCycle(rng *rand.Rand) (Terrain, error) {
	previous := len(t.Points)

	up, err := t.Upscale()
	if err != nil {
		return t, err
	}

	traced := len(up.Points)
	out, err := up.Grow(rng, CrispTarget(previous, up.GSize))
	if err != nil {
		return t, fmt.Errorf("growing crisp layer: %w", err)
	}

	t.Logger().Info("upscaled",
		zap.Int("gsize", out.GSize),
		zap.Int("traced", traced),
		zap.Int("points", len(out.Points)),
		zap.Int("links", len(out.Links)))

	return out, nil
}

// UpscaleN runs n upscale cycles.
func (t Terrain) UpscaleN(rng *rand.Rand, n int) (Terrain, error) {
	for i := range n {
		next, err := t.UpscaleCycle(rng)
		if err != nil {
			return t, fmt.Errorf("upscale cycle %d: %w", i+1, err)
		}
		t = next
	}
	return t, nil
}
