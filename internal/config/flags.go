package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging and low-resolution preview quality")
	flagShape      = flag.String("shape", "", "Base shape name (or 'random')")
	flagElevation  = flag.String("elevation", "", "Elevation variant name")
	flagSeed       = flag.Int64("seed", 0, "Generation seed (0 = derive from time)")
	flagName       = flag.String("name", "", "Planet name (empty = generate)")
	flagOutput     = flag.String("output", "", "Output directory")
	flagResolution = flag.Int("resolution", 0, "Field samples per axis")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Mesh.Resolution = 40
		cfg.Textures.TexelsPerUnit = 0.1
	}
	if *flagShape != "" {
		cfg.Planet.Shape = *flagShape
	}
	if *flagElevation != "" {
		cfg.Planet.Elevation = *flagElevation
	}
	if *flagSeed != 0 {
		cfg.Planet.Seed = *flagSeed
	}
	if *flagName != "" {
		cfg.Planet.Name = *flagName
	}
	if *flagOutput != "" {
		cfg.Output.Dir = *flagOutput
	}
	if *flagResolution > 0 {
		cfg.Mesh.Resolution = *flagResolution
	}
}
