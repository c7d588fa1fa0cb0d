package field

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// NoiseType selects the base noise lattice function.
type NoiseType int

const (
	NoiseValue NoiseType = iota
	NoisePerlin
	NoiseSimplex
)

// FractalType selects how octaves are combined.
type FractalType int

const (
	FractalNone FractalType = iota
	FractalFbm
	FractalRidged
)

// NoiseConfig describes a noise generator. Zero fields get defaults
// (frequency 1, octaves 3, lacunarity 2, gain 0.5).
type NoiseConfig struct {
	Type       NoiseType
	Fractal    FractalType
	Octaves    int
	Lacunarity float64
	Gain       float64
	Frequency  float64
	Seed       int64
}

// Noise is a deterministic 3D noise generator. All evaluation methods are
// safe for concurrent use; the generator is immutable after construction.
type Noise struct {
	cfg     NoiseConfig
	simplex opensimplex.Noise
	perm    [512]int
}

// NewNoise constructs an explicitly seeded noise generator.
func NewNoise(cfg NoiseConfig) *Noise {
	if cfg.Frequency == 0 {
		cfg.Frequency = 1
	}
	if cfg.Octaves == 0 {
		cfg.Octaves = 3
	}
	if cfg.Lacunarity == 0 {
		cfg.Lacunarity = 2
	}
	if cfg.Gain == 0 {
		cfg.Gain = 0.5
	}
	n := &Noise{cfg: cfg}
	if cfg.Type == NoiseSimplex {
		n.simplex = opensimplex.New(cfg.Seed)
	}

	// Seeded permutation table for the value and perlin lattices,
	// Fisher-Yates with an LCG stream.
	var p [256]int
	for i := range p {
		p[i] = i
	}
	s := cfg.Seed
	for i := 255; i > 0; i-- {
		s = s*6364136223846793005 + 1442695040888963407
		j := int((s>>33)&0x7FFFFFFF) % (i + 1)
		p[i], p[j] = p[j], p[i]
	}
	for i := 0; i < 512; i++ {
		n.perm[i] = p[i&255]
	}
	return n
}

// Eval evaluates the noise at p, applying frequency and fractal settings.
// Output is roughly within [-1, 1] for a single octave.
func (n *Noise) Eval(p mgl64.Vec3) float64 {
	x := p[0] * n.cfg.Frequency
	y := p[1] * n.cfg.Frequency
	z := p[2] * n.cfg.Frequency

	switch n.cfg.Fractal {
	case FractalFbm:
		return n.fbm(x, y, z)
	case FractalRidged:
		return n.ridged(x, y, z)
	default:
		return n.single(x, y, z)
	}
}

func (n *Noise) fbm(x, y, z float64) float64 {
	sum := n.single(x, y, z)
	amp := 1.0
	for i := 1; i < n.cfg.Octaves; i++ {
		x *= n.cfg.Lacunarity
		y *= n.cfg.Lacunarity
		z *= n.cfg.Lacunarity
		amp *= n.cfg.Gain
		sum += n.single(x, y, z) * amp
	}
	return sum
}

func (n *Noise) ridged(x, y, z float64) float64 {
	sum := 1 - gomath.Abs(n.single(x, y, z))
	amp := 1.0
	for i := 1; i < n.cfg.Octaves; i++ {
		x *= n.cfg.Lacunarity
		y *= n.cfg.Lacunarity
		z *= n.cfg.Lacunarity
		amp *= n.cfg.Gain
		sum -= (1 - gomath.Abs(n.single(x, y, z))) * amp
	}
	return sum
}

func (n *Noise) single(x, y, z float64) float64 {
	switch n.cfg.Type {
	case NoiseSimplex:
		return n.simplex.Eval3(x, y, z)
	case NoisePerlin:
		return n.perlin(x, y, z)
	default:
		return n.value(x, y, z)
	}
}

// value is lattice value noise: hashed corner values with smooth
// trilinear interpolation. Output in [-1, 1].
func (n *Noise) value(x, y, z float64) float64 {
	x0, y0, z0 := fastFloor(x), fastFloor(y), fastFloor(z)
	fx := smooth(x - float64(x0))
	fy := smooth(y - float64(y0))
	fz := smooth(z - float64(z0))

	c000 := n.latticeValue(x0, y0, z0)
	c100 := n.latticeValue(x0+1, y0, z0)
	c010 := n.latticeValue(x0, y0+1, z0)
	c110 := n.latticeValue(x0+1, y0+1, z0)
	c001 := n.latticeValue(x0, y0, z0+1)
	c101 := n.latticeValue(x0+1, y0, z0+1)
	c011 := n.latticeValue(x0, y0+1, z0+1)
	c111 := n.latticeValue(x0+1, y0+1, z0+1)

	cx00 := lerp(c000, c100, fx)
	cx10 := lerp(c010, c110, fx)
	cx01 := lerp(c001, c101, fx)
	cx11 := lerp(c011, c111, fx)
	cy0 := lerp(cx00, cx10, fy)
	cy1 := lerp(cx01, cx11, fy)
	return lerp(cy0, cy1, fz)
}

// perlin is classic gradient noise. Output roughly in [-1, 1].
func (n *Noise) perlin(x, y, z float64) float64 {
	x0, y0, z0 := fastFloor(x), fastFloor(y), fastFloor(z)
	dx := x - float64(x0)
	dy := y - float64(y0)
	dz := z - float64(z0)
	fx := smooth(dx)
	fy := smooth(dy)
	fz := smooth(dz)

	g := func(ix, iy, iz int, ox, oy, oz float64) float64 {
		h := n.hash(ix, iy, iz) % 12
		grad := grad3[h]
		return grad[0]*(dx-ox) + grad[1]*(dy-oy) + grad[2]*(dz-oz)
	}

	cx00 := lerp(g(x0, y0, z0, 0, 0, 0), g(x0+1, y0, z0, 1, 0, 0), fx)
	cx10 := lerp(g(x0, y0+1, z0, 0, 1, 0), g(x0+1, y0+1, z0, 1, 1, 0), fx)
	cx01 := lerp(g(x0, y0, z0+1, 0, 0, 1), g(x0+1, y0, z0+1, 1, 0, 1), fx)
	cx11 := lerp(g(x0, y0+1, z0+1, 0, 1, 1), g(x0+1, y0+1, z0+1, 1, 1, 1), fx)
	cy0 := lerp(cx00, cx10, fy)
	cy1 := lerp(cx01, cx11, fy)
	return lerp(cy0, cy1, fz)
}

// grad3 are gradient vectors shared by the perlin lattice.
var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

func (n *Noise) hash(x, y, z int) int {
	return n.perm[(x&255)+n.perm[(y&255)+n.perm[z&255]]]
}

func (n *Noise) latticeValue(x, y, z int) float64 {
	return float64(n.hash(x, y, z))/127.5 - 1
}

func fastFloor(x float64) int {
	i := int(x)
	if x < float64(i) {
		return i - 1
	}
	return i
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// smooth is the quintic fade curve.
func smooth(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}
