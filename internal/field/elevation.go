package field

import (
	gomath "math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// ElevationFunc maps a world-space point to a terrain height in world units.
// Positive heights rise above the base shape, negative ones carve below it.
type ElevationFunc func(p mgl64.Vec3) float64

// elevationBuilders maps configuration names to elevation constructors.
// Each constructor takes its noise seeds from rng in a fixed order, so a
// given generation seed always produces the same terrain.
var elevationBuilders = map[string]func(rng *rand.Rand) ElevationFunc{
	"none":    newElevationNone,
	"simple":  newElevationSimple,
	"legacy":  newElevationLegacy,
	"lakes":   newElevationLakes,
	"islands": newElevationIslands,
}

func newElevationNone(rng *rand.Rand) ElevationFunc {
	return func(mgl64.Vec3) float64 {
		return 100
	}
}

func newElevationSimple(rng *rand.Rand) ElevationFunc {
	elev := NewNoise(NoiseConfig{
		Type:      NoiseSimplex,
		Fractal:   FractalRidged,
		Octaves:   6,
		Gain:      0.4,
		Frequency: 0.0005,
		Seed:      rng.Int63(),
	})
	return func(p mgl64.Vec3) float64 {
		a := elev.Eval(p) // min: -0.8, mean: 0.28, max: 1
		a = -a + 0.3
		a = gomath.Pow(a*1.3-0.35, 3) + 0.1
		return 100 - a*1000
	}
}

func newElevationLegacy(rng *rand.Rand) ElevationFunc {
	scaleNoise := NewNoise(NoiseConfig{
		Type:      NoiseValue,
		Fractal:   FractalFbm,
		Octaves:   4,
		Frequency: 0.0005,
		Seed:      rng.Int63(),
	})
	elevNoise := NewNoise(NoiseConfig{
		Type:    NoiseValue,
		Fractal: FractalFbm,
		Octaves: 4,
		Seed:    rng.Int63(),
	})
	return func(p mgl64.Vec3) float64 {
		scale := scaleNoise.Eval(p)*0.0005 + 0.0015
		a := elevNoise.Eval(p.Mul(scale))
		a += 0.11 // slightly prefer terrain over ocean
		if a < 0 {
			a = -gomath.Pow(-a, 0.85)
		} else {
			a = gomath.Pow(a, 1.7)
		}
		return a * 2500
	}
}

// mountainsOverlay blends ridge peaks and terraced plateaus into a base land
// height. Underwater terrain is left untouched: the cover factor fades to
// zero as land drops below the waterline.
type mountainsOverlay struct {
	mask    *Noise
	ridge   *Noise
	terrace *Noise
}

func newMountainsOverlay(rng *rand.Rand) *mountainsOverlay {
	return &mountainsOverlay{
		mask: NewNoise(NoiseConfig{
			Type:      NoisePerlin,
			Frequency: 0.0015,
			Seed:      rng.Int63(),
		}),
		ridge: NewNoise(NoiseConfig{
			Type:       NoiseSimplex,
			Fractal:    FractalRidged,
			Octaves:    4,
			Lacunarity: 1.5,
			Gain:       -0.4,
			Frequency:  0.001,
			Seed:       rng.Int63(),
		}),
		terrace: NewNoise(NoiseConfig{
			Type:      NoisePerlin,
			Fractal:   FractalFbm,
			Octaves:   3,
			Gain:      0.3,
			Frequency: 0.002,
			Seed:      rng.Int63(),
		}),
	}
}

func (m *mountainsOverlay) apply(p mgl64.Vec3, land float64) float64 {
	cover := 1 - saturate(land*-0.1) // no mountains in the water
	if cover < 1e-7 {
		return land
	}

	mask := m.mask.Eval(p)
	rm := smoothstep(saturate(mask*7 - 0.3))
	tm := smoothstep(saturate(mask*-7 - 1.5))

	ridge := m.ridge.Eval(p)
	ridge = gomath.Max(ridge-0.1, 0)
	ridge = gomath.Pow(ridge, 1.6)
	ridge *= rm * cover
	ridge *= 1000

	terraces := m.terrace.Eval(p)
	terraces = gomath.Max(terraces+0.1, 0) * 2.5
	terraces = terrace(terraces, 4)
	terraces *= tm * cover
	terraces *= 250

	return land + smoothMax(0, gomath.Max(ridge, terraces), 50)
}

// newShorelineElevation is the shared core of the lakes and islands
// variants; the land exponent decides how much of the planet is ocean.
func newShorelineElevation(rng *rand.Rand, landPower float64) ElevationFunc {
	elevLand := NewNoise(NoiseConfig{
		Type:      NoiseValue,
		Fractal:   FractalFbm,
		Octaves:   4,
		Frequency: 0.0013,
		Seed:      rng.Int63(),
	})
	mountains := newMountainsOverlay(rng)
	return func(p mgl64.Vec3) float64 {
		land := elevLand.Eval(p)*0.5 + 0.5
		land = saturate(land)
		land = 1 - gomath.Pow(land, landPower)
		land = land*2 - 1
		land = land/(gomath.Abs(land)+0.17) + 0.15
		land *= 150
		return mountains.apply(p, land)
	}
}

func newElevationLakes(rng *rand.Rand) ElevationFunc {
	return newShorelineElevation(rng, 1.24)
}

func newElevationIslands(rng *rand.Rand) ElevationFunc {
	return newShorelineElevation(rng, 0.83)
}
