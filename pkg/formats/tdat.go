package formats

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/Faultbox/terragen/pkg/palette"
)

// TileRecordSize is the encoded size of one tile: x, y, u, v, height.
const TileRecordSize = 20

// TDAT format errors.
var (
	ErrTruncatedTileData = errors.New("truncated tile data")
)

// Tile is a render-facing terrain record.
type Tile struct {
	X      int32
	Y      int32
	UV     palette.UV
	Height float32
}

// NewTile creates a tile at (x, y).
func NewTile(x, y int, uv palette.UV, height float32) Tile {
	return Tile{X: int32(x), Y: int32(y), UV: uv, Height: height}
}

// WriteTiles encodes tiles as consecutive little-endian records.
// There is no header; the tile count is len(data) / TileRecordSize.
func WriteTiles(w io.Writer, tiles []Tile) error {
	bw := bufio.NewWriter(w)

	var rec [TileRecordSize]byte
	for i, t := range tiles {
		encodeTile(rec[:], t)
		if _, err := bw.Write(rec[:]); err != nil {
			return fmt.Errorf("writing tile %d: %w", i, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing tiles: %w", err)
	}
	return nil
}

func encodeTile(rec []byte, t Tile) {
	binary.LittleEndian.PutUint32(rec[0:], uint32(t.X))
	binary.LittleEndian.PutUint32(rec[4:], uint32(t.Y))
	binary.LittleEndian.PutUint32(rec[8:], math.Float32bits(t.UV.U))
	binary.LittleEndian.PutUint32(rec[12:], math.Float32bits(t.UV.V))
	binary.LittleEndian.PutUint32(rec[16:], math.Float32bits(t.Height))
}

// ParseTiles decodes a tile buffer from raw bytes.
func ParseTiles(data []byte) ([]Tile, error) {
	if len(data)%TileRecordSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %d",
			ErrTruncatedTileData, len(data), TileRecordSize)
	}

	tiles := make([]Tile, len(data)/TileRecordSize)
	for i := range tiles {
		rec := data[i*TileRecordSize : (i+1)*TileRecordSize]
		tiles[i] = Tile{
			X: int32(binary.LittleEndian.Uint32(rec[0:])),
			Y: int32(binary.LittleEndian.Uint32(rec[4:])),
			UV: palette.UV{
				U: math.Float32frombits(binary.LittleEndian.Uint32(rec[8:])),
				V: math.Float32frombits(binary.LittleEndian.Uint32(rec[12:])),
			},
			Height: math.Float32frombits(binary.LittleEndian.Uint32(rec[16:])),
		}
	}

	return tiles, nil
}

// ParseTilesFile parses a tile buffer from disk.
func ParseTilesFile(path string) ([]Tile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tile file: %w", err)
	}
	return ParseTiles(data)
}

// TileStats summarizes a decoded tile buffer.
type TileStats struct {
	Count     int
	Width     int32 // max x + 1
	Height    int32 // max y + 1
	MinHeight float32
	MaxHeight float32
	ByUV      map[palette.UV]int
}

// Summarize computes extents, height range and UV usage for tiles.
func Summarize(tiles []Tile) TileStats {
	stats := TileStats{
		Count: len(tiles),
		ByUV:  make(map[palette.UV]int),
	}
	if len(tiles) == 0 {
		return stats
	}

	stats.MinHeight = tiles[0].Height
	stats.MaxHeight = tiles[0].Height

	for _, t := range tiles {
		if t.X+1 > stats.Width {
			stats.Width = t.X + 1
		}
		if t.Y+1 > stats.Height {
			stats.Height = t.Y + 1
		}
		if t.Height < stats.MinHeight {
			stats.MinHeight = t.Height
		}
		if t.Height > stats.MaxHeight {
			stats.MaxHeight = t.Height
		}
		stats.ByUV[t.UV]++
	}

	return stats
}
