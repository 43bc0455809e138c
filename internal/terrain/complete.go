package terrain

import (
	"go.uber.org/zap"

	"github.com/Faultbox/terragen/pkg/formats"
	"github.com/Faultbox/terragen/pkg/palette"
)

// ActiveThreshold is the value above which a tile uses the active palette slot.
const ActiveThreshold float32 = 1.0

// Complete fills every unoccupied grid cell with a FillerValue point, so the
// result holds exactly one point per cell.
func (t Terrain) Complete() Terrain {
	set := t.Positions()

	points := make([]Point, len(t.Points), max(len(t.Points), t.GSize*t.GSize))
	copy(points, t.Points)

	for x := range t.GSize {
		for y := range t.GSize {
			if !set.Has(Coord{x, y}) {
				points = append(points, NewPoint(x, y, FillerValue))
			}
		}
	}

	t.Logger().Info("completed grid",
		zap.Int("filled", len(points)-len(t.Points)),
		zap.Int("points", len(points)))

	return t.with(points, t.Links)
}

// TileUV selects the palette slot for a point value.
func TileUV(value float32) palette.UV {
	if value > ActiveThreshold {
		return palette.GlowYellow
	}
	return palette.BaseBlack
}

// Tiles projects every point to a render tile and takes the points out of t.
func (t *Terrain) Tiles() []formats.Tile {
	tiles := make([]formats.Tile, len(t.Points))
	for i, p := range t.Points {
		tiles[i] = formats.NewTile(p.X, p.Y, TileUV(p.Value), p.Value)
	}

	t.Logger().Info("projected tiles", zap.Int("tiles", len(tiles)))

	t.Points = nil
	t.Links = nil
	return tiles
}
