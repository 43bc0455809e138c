package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/src-d/go-billy.v4/memfs"

	"github.com/Faultbox/terragen/internal/assets"
	"github.com/Faultbox/terragen/internal/config"
	"github.com/Faultbox/terragen/internal/terrain"
	"github.com/Faultbox/terragen/pkg/formats"
	"github.com/Faultbox/terragen/pkg/palette"
)

func smallParams(mode terrain.GrowthMode) Params {
	return Params{
		BaseSize:      2,
		InitialPoints: 16,
		UpscaleCycles: 1,
		Mode:          mode,
		Seed:          2024,
	}
}

func TestGenerateEndToEnd(t *testing.T) {
	res, err := Generate(smallParams(terrain.ModeLinked), nil)
	require.NoError(t, err)

	assert.Equal(t, 32, res.GSize)
	assert.Len(t, res.Tiles, 32*32)
	assert.Equal(t, 34, res.Grown)
	assert.Equal(t, 34, res.Shaded, "linked growth stays connected")

	seen := make(map[[2]int32]bool, len(res.Tiles))
	peak := 0
	for _, tile := range res.Tiles {
		key := [2]int32{tile.X, tile.Y}
		require.False(t, seen[key], "duplicate tile at %v", key)
		seen[key] = true

		if tile.Height == terrain.PeakHeight {
			peak++
			assert.Equal(t, [2]int32{16, 16}, key)
		}
		if tile.Height > 1 {
			assert.Equal(t, palette.GlowYellow, tile.UV)
		} else {
			assert.Equal(t, palette.BaseBlack, tile.UV)
		}
	}
	assert.Equal(t, 1, peak, "single peak at the origin")

	store := &assets.Store{Filesystem: memfs.New()}
	n, err := Export(store, "Data/tdata.bin", res, nil)
	require.NoError(t, err)
	assert.Equal(t, 20480, n)

	size, err := store.Size("Data/tdata.bin")
	require.NoError(t, err)
	assert.EqualValues(t, 1024*formats.TileRecordSize, size)

	tiles, err := store.ReadTiles("Data/tdata.bin")
	require.NoError(t, err)
	assert.Equal(t, res.Tiles, tiles)
}

func TestGenerateModes(t *testing.T) {
	for _, mode := range []terrain.GrowthMode{terrain.ModePlain, terrain.ModeDistanceWeighted} {
		t.Run(mode.String(), func(t *testing.T) {
			res, err := Generate(smallParams(mode), nil)
			require.NoError(t, err)

			assert.Len(t, res.Tiles, 1024)
			assert.Equal(t, 34, res.Grown)
			assert.Equal(t, res.Grown, res.Shaded, "upscaled cluster stays reachable from the origin")

			raised := 0
			for _, tile := range res.Tiles {
				if tile.Height > terrain.FloorHeight {
					raised++
				}
			}
			assert.Equal(t, res.Shaded, raised)
		})
	}
}

func TestGenerateModesAfterManyUpscales(t *testing.T) {
	for _, mode := range []terrain.GrowthMode{terrain.ModePlain, terrain.ModeDistanceWeighted} {
		t.Run(mode.String(), func(t *testing.T) {
			p := smallParams(mode)
			p.UpscaleCycles = 3
			p.Seed = 99

			res, err := Generate(p, nil)
			require.NoError(t, err)

			assert.Equal(t, 128, res.GSize)
			assert.Greater(t, res.Grown, 16*8)
			assert.Equal(t, res.Grown, res.Shaded)
		})
	}
}

func TestGenerateClampKeepsPoints(t *testing.T) {
	p := smallParams(terrain.ModePlain)
	p.Disconnected = terrain.ClampDisconnected

	res, err := Generate(p, nil)
	require.NoError(t, err)
	assert.Equal(t, res.Grown, res.Shaded)
	assert.Len(t, res.Tiles, 1024)
}

func TestGenerateSkipHeight(t *testing.T) {
	p := smallParams(terrain.ModeLinked)
	p.UpscaleCycles = 0
	p.SkipHeight = true

	res, err := Generate(p, nil)
	require.NoError(t, err)

	assert.Len(t, res.Tiles, 256)
	heights := map[float32]int{}
	for _, tile := range res.Tiles {
		heights[tile.Height]++
	}
	assert.Equal(t, 1, heights[terrain.SeedValue])
	assert.Equal(t, 15, heights[terrain.ContactValue])
	assert.Equal(t, 240, heights[terrain.FillerValue])
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(smallParams(terrain.ModeLinked), nil)
	require.NoError(t, err)
	b, err := Generate(smallParams(terrain.ModeLinked), nil)
	require.NoError(t, err)

	assert.Equal(t, a.Tiles, b.Tiles)
}

func TestGenerateClockSeed(t *testing.T) {
	p := smallParams(terrain.ModeLinked)
	p.Seed = 0

	res, err := Generate(p, nil)
	require.NoError(t, err)
	assert.NotZero(t, res.Seed)
}

func TestGenerateInvalid(t *testing.T) {
	p := smallParams(terrain.ModeLinked)
	p.BaseSize = 0
	_, err := Generate(p, nil)
	assert.ErrorIs(t, err, terrain.ErrInvalidSize)

	p = smallParams(terrain.ModeLinked)
	p.InitialPoints = 0
	_, err = Generate(p, nil)
	assert.ErrorIs(t, err, terrain.ErrInvalidTarget)
}

func TestGenerateLogsStages(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	_, err := Generate(smallParams(terrain.ModeLinked), zap.New(core))
	require.NoError(t, err)

	var stages []string
	for _, e := range logs.FilterMessage("stage finished").All() {
		stages = append(stages, e.ContextMap()["stage"].(string))
	}
	assert.Equal(t, []string{"grow", "upscale", "height", "complete"}, stages)
	assert.NotEmpty(t, logs.FilterMessage("upscaled").All())
}

func TestParamsFromConfig(t *testing.T) {
	g := config.Default().Generation
	g.Mode = "distance"
	g.Disconnected = "clamp"

	p, err := ParamsFromConfig(g)
	require.NoError(t, err)
	assert.Equal(t, terrain.ModeDistanceWeighted, p.Mode)
	assert.Equal(t, terrain.ClampDisconnected, p.Disconnected)
	assert.Equal(t, 5, p.UpscaleCycles)

	g.Mode = "noise"
	_, err = ParamsFromConfig(g)
	assert.Error(t, err)
}
