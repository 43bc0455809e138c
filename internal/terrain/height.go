package terrain

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"go.uber.org/zap"
)

// Height field shape.
const (
	PeakHeight  float32 = 32.0
	FloorHeight float32 = 1.0
	DecayPerHop float32 = 1.0 / 8.0
)

const unvisited = -1

// DisconnectedPolicy decides what happens to points the origin cannot reach.
type DisconnectedPolicy int

// Disconnected point policies.
const (
	DropDisconnected  DisconnectedPolicy = iota // Remove them from the terrain
	ClampDisconnected                           // Keep them at FloorHeight
)

// String returns the config name of the policy.
func (p DisconnectedPolicy) String() string {
	switch p {
	case DropDisconnected:
		return "drop"
	case ClampDisconnected:
		return "clamp"
	default:
		return fmt.Sprintf("DisconnectedPolicy(%d)", int(p))
	}
}

// ParseDisconnectedPolicy converts a config name to a policy.
func ParseDisconnectedPolicy(s string) (DisconnectedPolicy, error) {
	switch strings.ToLower(s) {
	case "drop", "":
		return DropDisconnected, nil
	case "clamp":
		return ClampDisconnected, nil
	default:
		return 0, fmt.Errorf("unknown disconnected policy %q", s)
	}
}

// HeightAt maps a graph distance to a height: a linear decay from
// PeakHeight floored at FloorHeight.
func HeightAt(distance int) float32 {
	return math32.Max(FloorHeight, PeakHeight-float32(distance)*DecayPerHop)
}

// Distances runs a breadth-first search from origin over the 4-neighbor
// graph of occupied coordinates. Unreachable coordinates map to -1.
func Distances(set PositionSet, origin Coord) (map[Coord]int, error) {
	if !set.Has(origin) {
		return nil, fmt.Errorf("%w: %v", ErrOriginUnoccupied, origin)
	}

	dist := make(map[Coord]int, len(set))
	for c := range set {
		dist[c] = unvisited
	}
	dist[origin] = 0

	queue := []Coord{origin}
	for head := 0; head < len(queue); head++ {
		current := queue[head]
		for _, d := range cardinals {
			next := current.Add(d)
			if nd, ok := dist[next]; !ok || nd != unvisited {
				continue
			}
			dist[next] = dist[current] + 1
			queue = append(queue, next)
		}
	}

	return dist, nil
}

// EvaluateHeight replaces every point's value with HeightAt its graph
// distance from origin. Unreachable points are handled by policy. The link
// collection is cleared since it no longer matches the points.
func (t Terrain) EvaluateHeight(origin Coord, policy DisconnectedPolicy) (Terrain, error) {
	dist, err := Distances(t.Positions(), origin)
	if err != nil {
		return t, err
	}

	points := make([]Point, 0, len(t.Points))
	unreachable := 0
	for _, p := range t.Points {
		d := dist[p.Coord]
		if d == unvisited {
			unreachable++
			if policy == DropDisconnected {
				continue
			}
			points = append(points, Point{Coord: p.Coord, Value: FloorHeight})
			continue
		}
		points = append(points, Point{Coord: p.Coord, Value: HeightAt(d)})
	}

	t.Logger().Info("evaluated height",
		zap.Stringer("origin", origin),
		zap.Int("points", len(points)),
		zap.Int("unreachable", unreachable),
		zap.Stringer("policy", policy))

	return t.with(points, nil), nil
}
