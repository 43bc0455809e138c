// Package pipeline runs the terrain generation stages in order and exports
// the resulting tile buffer.
package pipeline

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/terragen/internal/assets"
	"github.com/Faultbox/terragen/internal/config"
	"github.com/Faultbox/terragen/internal/logger"
	"github.com/Faultbox/terragen/internal/terrain"
	"github.com/Faultbox/terragen/pkg/formats"
)

// Params fixes one generator run.
type Params struct {
	BaseSize      int
	InitialPoints int
	UpscaleCycles int
	Mode          terrain.GrowthMode
	Disconnected  terrain.DisconnectedPolicy
	SkipHeight    bool
	Seed          uint64 // 0 picks a seed from the clock
}

// ParamsFromConfig converts the generation section of a config.
func ParamsFromConfig(g config.GenerationConfig) (Params, error) {
	mode, err := terrain.ParseGrowthMode(g.Mode)
	if err != nil {
		return Params{}, err
	}
	policy, err := terrain.ParseDisconnectedPolicy(g.Disconnected)
	if err != nil {
		return Params{}, err
	}
	return Params{
		BaseSize:      g.BaseSize,
		InitialPoints: g.InitialPoints,
		UpscaleCycles: g.UpscaleCycles,
		Mode:          mode,
		Disconnected:  policy,
		SkipHeight:    g.SkipHeight,
		Seed:          g.Seed,
	}, nil
}

// Result is the output of a generator run.
type Result struct {
	Tiles   []formats.Tile
	GSize   int
	Seed    uint64 // Seed actually used
	Grown   int    // Points after growth and upscaling
	Shaded  int    // Points surviving height evaluation
	Elapsed time.Duration
}

// Generate runs growth, upscaling, height evaluation, grid completion and
// tile projection.
func Generate(p Params, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	start := time.Now()

	seed := p.Seed
	if seed == 0 {
		seed = uint64(start.UnixNano())
	}
	rng := terrain.NewRand(seed)
	log.Info("generating terrain",
		zap.Uint64("seed", seed),
		zap.Int("base_size", p.BaseSize),
		zap.Stringer("mode", p.Mode))

	t, err := terrain.New(p.BaseSize, p.Mode, terrain.WithLogger(log.Named("terrain")))
	if err != nil {
		return nil, err
	}

	done := logger.Stage(log, "grow")
	if t, err = t.Init(rng, p.InitialPoints); err != nil {
		return nil, fmt.Errorf("growing terrain: %w", err)
	}
	done(zap.Int("points", len(t.Points)), zap.Int("gsize", t.GSize))

	done = logger.Stage(log, "upscale")
	if t, err = t.UpscaleN(rng, p.UpscaleCycles); err != nil {
		return nil, err
	}
	done(zap.Int("points", len(t.Points)), zap.Int("gsize", t.GSize))
	grown := len(t.Points)

	if !p.SkipHeight {
		done = logger.Stage(log, "height")
		if t, err = t.EvaluateHeight(t.Center(), p.Disconnected); err != nil {
			return nil, fmt.Errorf("evaluating height: %w", err)
		}
		done(zap.Int("points", len(t.Points)))
	}
	shaded := len(t.Points)

	done = logger.Stage(log, "complete")
	t = t.Complete()
	done(zap.Int("points", len(t.Points)))

	gsize := t.GSize
	tiles := t.Tiles()

	return &Result{
		Tiles:   tiles,
		GSize:   gsize,
		Seed:    seed,
		Grown:   grown,
		Shaded:  shaded,
		Elapsed: time.Since(start),
	}, nil
}

// Export writes the result's tile buffer to path in store.
func Export(store *assets.Store, path string, res *Result, log *zap.Logger) (int, error) {
	if log == nil {
		log = zap.NewNop()
	}

	done := logger.Stage(log, "write")
	n, err := store.WriteTiles(path, res.Tiles)
	if err != nil {
		return 0, err
	}
	done(zap.String("path", path), zap.Int("tiles", len(res.Tiles)), zap.Int("bytes", n))

	return n, nil
}
