// Package terrain grows, upscales and shades DLA terrain on a square grid.
//
// Every stage takes a Terrain by value and returns its replacement; no stage
// mutates the points or links of its input.
package terrain

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ScaleFactor converts a base size into the initial grid side.
const ScaleFactor = 8

// Point values assigned by the generator.
const (
	SeedValue    float32 = 50.0  // Growth seed at the grid center
	WalkerValue  float32 = 100.0 // Walker in flight
	ContactValue float32 = 200.0 // Committed walker
	TracedValue  float32 = 150.0 // Upscaled and traced link points
	FillerValue  float32 = 1.0   // Grid completion baseline
)

// Terrain errors.
var (
	ErrInvalidSize      = errors.New("invalid grid size")
	ErrInvalidTarget    = errors.New("invalid growth target")
	ErrDetachedPoint    = errors.New("committed point has no occupied neighbor")
	ErrNotAxisAligned   = errors.New("link endpoints are not axis-aligned")
	ErrOriginUnoccupied = errors.New("height origin is not occupied")
)

// GrowthMode selects how committed walkers are valued and whether links are tracked.
type GrowthMode int

// Growth modes.
const (
	ModePlain            GrowthMode = iota // Fixed contact value, no links
	ModeLinked                             // Fixed contact value, one link per point
	ModeDistanceWeighted                   // Value decays with distance from center, no links
)

// String returns the config name of the mode.
func (m GrowthMode) String() string {
	switch m {
	case ModePlain:
		return "plain"
	case ModeLinked:
		return "linked"
	case ModeDistanceWeighted:
		return "distance"
	default:
		return fmt.Sprintf("GrowthMode(%d)", int(m))
	}
}

// ParseGrowthMode converts a config name to a GrowthMode.
func ParseGrowthMode(s string) (GrowthMode, error) {
	switch strings.ToLower(s) {
	case "plain":
		return ModePlain, nil
	case "linked", "":
		return ModeLinked, nil
	case "distance":
		return ModeDistanceWeighted, nil
	default:
		return 0, fmt.Errorf("unknown growth mode %q", s)
	}
}

// TracksLinks reports whether growth in this mode records links.
func (m GrowthMode) TracksLinks() bool {
	return m == ModeLinked
}

// Terrain is a point cloud on a gsize x gsize grid.
type Terrain struct {
	Points []Point
	Links  []Link
	GSize  int
	Mode   GrowthMode

	log *zap.Logger
}

// Option configures a Terrain.
type Option func(*Terrain)

// WithLogger sets the logger used by pipeline stages.
func WithLogger(log *zap.Logger) Option {
	return func(t *Terrain) {
		if log != nil {
			t.log = log
		}
	}
}

// New creates an empty terrain with side baseSize * ScaleFactor.
func New(baseSize int, mode GrowthMode, opts ...Option) (Terrain, error) {
	if baseSize < 1 {
		return Terrain{}, fmt.Errorf("%w: base size %d", ErrInvalidSize, baseSize)
	}

	t := Terrain{
		GSize: baseSize * ScaleFactor,
		Mode:  mode,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&t)
	}

	t.log.Debug("new terrain", zap.Int("gsize", t.GSize), zap.Stringer("mode", mode))
	return t, nil
}

// Center returns the grid center, rounding down for odd sizes.
func (t Terrain) Center() Coord {
	return Coord{t.GSize / 2, t.GSize / 2}
}

// Positions indexes the current points by coordinate.
func (t Terrain) Positions() PositionSet {
	return NewPositionSet(t.Points)
}

// Logger returns the terrain's logger.
func (t Terrain) Logger() *zap.Logger {
	if t.log == nil {
		return zap.NewNop()
	}
	return t.log
}

// with returns a copy of t carrying new points and links.
func (t Terrain) with(points []Point, links []Link) Terrain {
	t.Points = points
	t.Links = links
	return t
}
