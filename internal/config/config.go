// Package config handles generator configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/terragen/internal/terrain"
)

// MaxBaseSize bounds base_size so the grid side after the largest allowed
// upscale still fits an int32 tile coordinate.
const MaxBaseSize = 1024

// Config holds all generator settings.
type Config struct {
	Generation GenerationConfig `yaml:"generation"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GenerationConfig holds terrain pipeline parameters.
type GenerationConfig struct {
	BaseSize      int    `yaml:"base_size"`      // Grid side is base_size * 8
	InitialPoints int    `yaml:"initial_points"` // DLA target before upscaling
	UpscaleCycles int    `yaml:"upscale_cycles"` // Each cycle doubles the grid side
	Mode          string `yaml:"mode"`           // plain, linked or distance
	Seed          uint64 `yaml:"seed"`           // 0 picks a seed from the clock
	Disconnected  string `yaml:"disconnected"`   // drop or clamp
	SkipHeight    bool   `yaml:"skip_height"`    // Keep growth values instead of graph distance heights
}

// OutputConfig holds where the tile buffer is written.
type OutputConfig struct {
	Dir  string `yaml:"dir"`  // Root directory for assets
	Path string `yaml:"path"` // Tile buffer path relative to Dir
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Generation: GenerationConfig{
			BaseSize:      2,
			InitialPoints: 16,
			UpscaleCycles: 5,
			Mode:          "linked",
			Seed:          0,
			Disconnected:  "drop",
		},
		Output: OutputConfig{
			Dir:  "..",
			Path: "Data/tdata.bin",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks that generation settings describe a runnable pipeline.
func (c *Config) Validate() error {
	g := c.Generation
	if g.BaseSize < 1 || g.BaseSize > MaxBaseSize {
		return fmt.Errorf("base_size must be in [1, %d], got %d", MaxBaseSize, g.BaseSize)
	}
	side := g.BaseSize * terrain.ScaleFactor
	if g.InitialPoints < 1 || g.InitialPoints > side*side {
		return fmt.Errorf("initial_points must be in [1, %d], got %d", side*side, g.InitialPoints)
	}
	if g.UpscaleCycles < 0 || g.UpscaleCycles > 8 {
		return fmt.Errorf("upscale_cycles must be in [0, 8], got %d", g.UpscaleCycles)
	}
	if _, err := terrain.ParseGrowthMode(g.Mode); err != nil {
		return err
	}
	if _, err := terrain.ParseDisconnectedPolicy(g.Disconnected); err != nil {
		return err
	}
	if c.Output.Path == "" {
		return errors.New("output path must not be empty")
	}
	return nil
}
