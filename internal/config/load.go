package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the generator cannot work with.
func (c *Config) Validate() error {
	if c.Mesh.Resolution < 8 {
		return fmt.Errorf("mesh resolution %d too low, need at least 8", c.Mesh.Resolution)
	}
	if c.Mesh.ChunkTriangles < 1 || c.Mesh.ChunkVertices < 3 {
		return fmt.Errorf("chunk budgets must be positive, got %d triangles / %d vertices",
			c.Mesh.ChunkTriangles, c.Mesh.ChunkVertices)
	}
	if c.Textures.TexelsPerUnit <= 0 {
		return fmt.Errorf("texels_per_unit must be positive, got %v", c.Textures.TexelsPerUnit)
	}
	if c.Textures.Oversample < 1 {
		return fmt.Errorf("oversample must be at least 1, got %d", c.Textures.Oversample)
	}
	switch c.Textures.Format {
	case "png", "webp":
	default:
		return fmt.Errorf("unknown texture format %q (want png or webp)", c.Textures.Format)
	}
	return nil
}

// findConfigFile looks for a config file in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./planetgen.yaml",
		"./config.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
