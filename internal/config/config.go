// Package config handles generator configuration loading and management.
package config

// Config holds all generator settings.
type Config struct {
	Planet   PlanetConfig  `yaml:"planet"`
	Mesh     MeshConfig    `yaml:"mesh"`
	Textures TextureConfig `yaml:"textures"`
	Output   OutputConfig  `yaml:"output"`
	Preview  PreviewConfig `yaml:"preview"`
	Logging  LoggingConfig `yaml:"logging"`
}

// PlanetConfig selects the field the planet is built from.
type PlanetConfig struct {
	// Shape is the name of the base shape SDF, or "random".
	Shape string `yaml:"shape"`
	// Elevation is the name of the terrain elevation variant.
	Elevation string `yaml:"elevation"`
	// Seed drives all noise generators and the name/shape picks.
	// Zero means derive one from the current time.
	Seed int64 `yaml:"seed"`
	// Name labels the exported map. Empty means generate one.
	Name string `yaml:"name"`
}

// MeshConfig holds resolution and simplification budgets.
type MeshConfig struct {
	// Resolution is the number of field samples per axis.
	Resolution int `yaml:"resolution"`
	// RenderTriangles caps the render mesh triangle count.
	RenderTriangles int `yaml:"render_triangles"`
	// NavigationTriangles caps the navigation mesh triangle count.
	NavigationTriangles int `yaml:"navigation_triangles"`
	// CollisionTriangles caps the collision mesh triangle count.
	CollisionTriangles int `yaml:"collision_triangles"`
	// ChunkTriangles caps triangles per render chunk.
	ChunkTriangles int `yaml:"chunk_triangles"`
	// ChunkVertices caps vertices per render chunk.
	ChunkVertices int `yaml:"chunk_vertices"`
}

// TextureConfig holds texture synthesis settings.
type TextureConfig struct {
	// TexelsPerUnit sets atlas texel density relative to mesh units.
	TexelsPerUnit float64 `yaml:"texels_per_unit"`
	// Padding is the gap between atlas charts, in texels.
	Padding int `yaml:"padding"`
	// Oversample renders textures at a multiple of atlas resolution.
	Oversample int `yaml:"oversample"`
	// Downscale resamples oversampled textures back to atlas resolution.
	Downscale bool `yaml:"downscale"`
	// Format is the raster output format: "png" or "webp".
	Format string `yaml:"format"`
}

// OutputConfig holds export destination settings.
type OutputConfig struct {
	// Dir is the root output directory; each run writes to Dir/<name>.
	Dir string `yaml:"dir"`
}

// PreviewConfig holds external viewer settings.
type PreviewConfig struct {
	// Command is the viewer executable; empty disables the preview.
	// The output directory is appended as the last argument.
	Command string `yaml:"command"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Planet: PlanetConfig{
			Shape:     "sphere",
			Elevation: "lakes",
		},
		Mesh: MeshConfig{
			Resolution:          200,
			RenderTriangles:     250000,
			NavigationTriangles: 30000,
			CollisionTriangles:  20000,
			ChunkTriangles:      10000,
			ChunkVertices:       8000,
		},
		Textures: TextureConfig{
			TexelsPerUnit: 2,
			Padding:       2,
			Oversample:    2,
			Downscale:     false,
			Format:        "png",
		},
		Output: OutputConfig{
			Dir: "output",
		},
		Preview: PreviewConfig{
			Command: "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
