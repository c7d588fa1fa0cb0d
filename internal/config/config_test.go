package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Planet.Shape != "sphere" {
		t.Errorf("default shape = %q, want sphere", cfg.Planet.Shape)
	}
	if cfg.Mesh.Resolution != 200 {
		t.Errorf("default resolution = %d, want 200", cfg.Mesh.Resolution)
	}
	if cfg.Textures.Format != "png" {
		t.Errorf("default texture format = %q, want png", cfg.Textures.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "planetgen.yaml")
	yaml := `
planet:
  shape: torus
  elevation: islands
  seed: 1234
mesh:
  resolution: 64
textures:
  format: webp
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("loadFromFile() error = %v", err)
	}

	if cfg.Planet.Shape != "torus" {
		t.Errorf("shape = %q, want torus", cfg.Planet.Shape)
	}
	if cfg.Planet.Seed != 1234 {
		t.Errorf("seed = %d, want 1234", cfg.Planet.Seed)
	}
	if cfg.Mesh.Resolution != 64 {
		t.Errorf("resolution = %d, want 64", cfg.Mesh.Resolution)
	}
	if cfg.Textures.Format != "webp" {
		t.Errorf("format = %q, want webp", cfg.Textures.Format)
	}
	// Untouched values keep their defaults.
	if cfg.Mesh.ChunkTriangles != 10000 {
		t.Errorf("chunk_triangles = %d, want default 10000", cfg.Mesh.ChunkTriangles)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"low resolution", func(c *Config) { c.Mesh.Resolution = 4 }, true},
		{"zero chunk budget", func(c *Config) { c.Mesh.ChunkTriangles = 0 }, true},
		{"negative texel density", func(c *Config) { c.Textures.TexelsPerUnit = -1 }, true},
		{"zero oversample", func(c *Config) { c.Textures.Oversample = 0 }, true},
		{"bad format", func(c *Config) { c.Textures.Format = "bmp" }, true},
		{"webp format", func(c *Config) { c.Textures.Format = "webp" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
