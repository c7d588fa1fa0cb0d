// Package material classifies points on the planet surface into terrain
// types and derives the shading and traversal attributes the texture and
// navigation stages consume.
package material

import (
	gomath "math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/planetgen/internal/field"
)

// TerrainType is the coarse surface class of a point. Navigation encodes
// it into a texture coordinate, so the set is fixed at eight values.
type TerrainType int

const (
	TypeDeepWater TerrainType = iota
	TypeShallowWater
	TypeSand
	TypeGrass
	TypeForest
	TypeDirt
	TypeRock
	TypeSnow

	typeCount = 8
)

var typeNames = [typeCount]string{
	"deepWater", "shallowWater", "sand", "grass", "forest", "dirt", "rock", "snow",
}

func (t TerrainType) String() string {
	if t < 0 || int(t) >= typeCount {
		return "unknown"
	}
	return typeNames[t]
}

// TexCoord packs the type into the navigation texcoord convention: the
// slot center of eight equal bands over [0, 1].
func (t TerrainType) TexCoord() float64 {
	return (float64(t) + 0.5) / typeCount
}

// Tile is the full surface sample at one point: inputs resolved from the
// field plus all derived outputs.
type Tile struct {
	Position  mgl64.Vec3 // domain coordinates, [-1,1]^3
	Normal    mgl64.Vec3
	Elevation float64
	Slope     float64 // 0 flat, 1 vertical relative to the radial up

	Type       TerrainType
	Albedo     mgl64.Vec3
	Roughness  float64
	Metallic   float64
	Height     float64
	Difficulty float64
}

// Surface evaluates tiles against one resolved field. Safe for concurrent
// use once constructed.
type Surface struct {
	field  *field.Field
	jitter *field.Noise // dithers class boundaries
	hue    *field.Noise // low frequency albedo variation
	relief *field.Noise // high frequency height detail
}

// New builds the surface classifier for a field. The seed feeds the
// classifier's own noises and is independent of the field's seed.
func New(f *field.Field, seed int64) *Surface {
	rng := rand.New(rand.NewSource(seed))
	return &Surface{
		field: f,
		jitter: field.NewNoise(field.NoiseConfig{
			Type:      field.NoiseSimplex,
			Fractal:   field.FractalFbm,
			Octaves:   2,
			Frequency: 0.01,
			Seed:      rng.Int63(),
		}),
		hue: field.NewNoise(field.NoiseConfig{
			Type:      field.NoisePerlin,
			Fractal:   field.FractalFbm,
			Octaves:   3,
			Frequency: 0.002,
			Seed:      rng.Int63(),
		}),
		relief: field.NewNoise(field.NoiseConfig{
			Type:      field.NoiseSimplex,
			Fractal:   field.FractalFbm,
			Octaves:   4,
			Frequency: 0.05,
			Seed:      rng.Int63(),
		}),
	}
}

// base albedos in linear-ish sRGB, one per terrain type.
var baseAlbedo = [typeCount]mgl64.Vec3{
	{0.08, 0.14, 0.20}, // deep seabed
	{0.24, 0.30, 0.26}, // shallow seabed
	{0.76, 0.69, 0.50}, // sand
	{0.26, 0.48, 0.19}, // grass
	{0.13, 0.30, 0.13}, // forest
	{0.42, 0.32, 0.22}, // dirt
	{0.45, 0.44, 0.42}, // rock
	{0.93, 0.94, 0.96}, // snow
}

var baseRoughness = [typeCount]float64{0.35, 0.45, 0.80, 0.70, 0.75, 0.85, 0.90, 0.45}

var baseDifficulty = [typeCount]float64{1, 1, 0.5, 0.15, 0.55, 0.35, 0.85, 0.7}

// Sample fills in every derived attribute of the tile from its position
// and normal. Position is in domain coordinates.
func (s *Surface) Sample(t *Tile) {
	world := t.Position.Mul(field.PlanetRadius)
	t.Elevation = s.field.Elevation(t.Position)
	t.Slope = slope(t.Position, t.Normal)
	t.Type = s.classify(world, t.Elevation, t.Slope)

	j := s.hue.Eval(world) * 0.06
	t.Albedo = baseAlbedo[t.Type].Add(mgl64.Vec3{j, j, j})
	for i := 0; i < 3; i++ {
		t.Albedo[i] = clamp01(t.Albedo[i])
	}
	t.Roughness = clamp01(baseRoughness[t.Type] + s.jitter.Eval(world)*0.08)
	t.Metallic = 0
	if t.Type == TypeRock {
		t.Metallic = 0.05
	}
	t.Height = clamp01(0.5 + s.relief.Eval(world)*0.35)
	t.Difficulty = clamp01(baseDifficulty[t.Type] + t.Slope*0.6)
}

// classify picks the terrain type from elevation and slope with a noise
// dither so class borders do not follow iso-lines exactly.
func (s *Surface) classify(world mgl64.Vec3, elevation, slope float64) TerrainType {
	e := elevation + s.jitter.Eval(world)*18
	switch {
	case e < -150:
		return TypeDeepWater
	case e < 0:
		return TypeShallowWater
	case e < 18:
		return TypeSand
	}
	if e > 600 && slope < 0.5 {
		return TypeSnow
	}
	if slope > 0.55 || e > 420 {
		return TypeRock
	}
	if slope > 0.35 {
		return TypeDirt
	}
	// Forest patches inside the grass band, from the same dither noise at
	// a shifted octave so the patches are larger than the border fuzz.
	if s.hue.Eval(world.Mul(0.5)) > 0.25 {
		return TypeForest
	}
	return TypeGrass
}

// slope measures deviation of the surface normal from the radial up
// direction at p.
func slope(p, normal mgl64.Vec3) float64 {
	l := p.Len()
	if l < 1e-9 {
		return 0
	}
	d := normal.Dot(p.Mul(1 / l))
	if d < 0 {
		d = 0
	}
	return 1 - d
}

func clamp01(v float64) float64 {
	return gomath.Min(gomath.Max(v, 0), 1)
}
