package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagSeed     = flag.Uint64("seed", 0, "Random seed (0 = from clock)")
	flagUpscales = flag.Int("upscales", -1, "Number of upscale cycles")
	flagOut      = flag.String("out", "", "Tile buffer output path")
	flagMode     = flag.String("mode", "", "Growth mode: plain, linked, distance")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// flagPassed reports whether the named flag was set on the command line.
func flagPassed(name string) bool {
	passed := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			passed = true
		}
	})
	return passed
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if flagPassed("seed") {
		cfg.Generation.Seed = *flagSeed
	}
	if *flagUpscales >= 0 {
		cfg.Generation.UpscaleCycles = *flagUpscales
	}
	if *flagOut != "" {
		cfg.Output.Path = *flagOut
	}
	if *flagMode != "" {
		cfg.Generation.Mode = *flagMode
	}
}
