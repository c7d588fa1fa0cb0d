package field

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeFunc is a signed distance to the planet base shape, in world units.
// Negative inside, positive outside.
type ShapeFunc func(p mgl64.Vec3) float64

// PlanetRadius is the nominal size of generated planets in world units.
// Noise frequencies and elevation magnitudes are tuned against it.
const PlanetRadius = 2500.0

// shapeNames maps configuration names to shape SDFs. Order matters only for
// the "random" pick, which indexes into shapeOrder.
var shapeNames = map[string]ShapeFunc{
	"hexagon":         sdfHexagon,
	"square":          sdfSquare,
	"sphere":          sdfSphere,
	"torus":           sdfTorus,
	"tube":            sdfTube,
	"disk":            sdfDisk,
	"capsule":         sdfCapsule,
	"box":             sdfBox,
	"cube":            sdfCube,
	"tetrahedron":     sdfTetrahedron,
	"octahedron":      sdfOctahedron,
	"knot":            sdfKnot,
	"mobiusstrip":     sdfMobiusStrip,
	"fibers":          sdfFibers,
	"triangularprism": sdfTriangularPrism,
	"hexagonalprism":  sdfHexagonalPrism,
	"h2o":             sdfH2O,
	"h3o":             sdfH3O,
	"h4o":             sdfH4O,
}

// shapeOrder lists shape names in a stable order for seeded random picks.
var shapeOrder = []string{
	"hexagon", "square", "sphere", "torus", "tube", "disk", "capsule",
	"box", "cube", "tetrahedron", "octahedron", "knot", "mobiusstrip",
	"fibers", "h2o", "h3o", "h4o", "triangularprism", "hexagonalprism",
}

func sdfSphere(p mgl64.Vec3) float64 {
	return p.Len() - PlanetRadius
}

func sdfTorus(p mgl64.Vec3) float64 {
	const major = PlanetRadius * 0.75
	const minor = PlanetRadius * 0.27
	q := mgl64.Vec2{mgl64.Vec2{p[0], p[2]}.Len() - major, p[1]}
	return q.Len() - minor
}

func sdfTube(p mgl64.Vec3) float64 {
	// Capped cylinder along Z with rounded rims.
	const radius = PlanetRadius * 0.55
	const halfLen = PlanetRadius * 0.9
	const round = PlanetRadius * 0.1
	d := mgl64.Vec2{
		mgl64.Vec2{p[0], p[1]}.Len() - radius + round,
		gomath.Abs(p[2]) - halfLen + round,
	}
	outside := mgl64.Vec2{gomath.Max(d[0], 0), gomath.Max(d[1], 0)}.Len()
	inside := gomath.Min(gomath.Max(d[0], d[1]), 0)
	return outside + inside - round
}

func sdfDisk(p mgl64.Vec3) float64 {
	const radius = PlanetRadius * 0.8
	const halfThick = PlanetRadius * 0.1
	const round = PlanetRadius * 0.08
	d := mgl64.Vec2{
		mgl64.Vec2{p[0], p[2]}.Len() - radius + round,
		gomath.Abs(p[1]) - halfThick + round,
	}
	outside := mgl64.Vec2{gomath.Max(d[0], 0), gomath.Max(d[1], 0)}.Len()
	inside := gomath.Min(gomath.Max(d[0], d[1]), 0)
	return outside + inside - round
}

func sdfCapsule(p mgl64.Vec3) float64 {
	const halfLen = PlanetRadius * 0.5
	const radius = PlanetRadius * 0.45
	y := clampf(p[1], -halfLen, halfLen)
	return p.Sub(mgl64.Vec3{0, y, 0}).Len() - radius
}

func sdfBox(p mgl64.Vec3) float64 {
	return roundedBox(p, mgl64.Vec3{PlanetRadius * 0.9, PlanetRadius * 0.45, PlanetRadius * 0.6}, PlanetRadius*0.08)
}

func sdfCube(p mgl64.Vec3) float64 {
	half := PlanetRadius * 0.6
	return roundedBox(p, mgl64.Vec3{half, half, half}, PlanetRadius*0.08)
}

func sdfSquare(p mgl64.Vec3) float64 {
	// Flat rounded board.
	return roundedBox(p, mgl64.Vec3{PlanetRadius * 0.8, PlanetRadius * 0.1, PlanetRadius * 0.8}, PlanetRadius*0.06)
}

func sdfHexagon(p mgl64.Vec3) float64 {
	// Flat hexagonal board: hexagonal prism with small height.
	return hexPrism(p, PlanetRadius*0.8, PlanetRadius*0.1) - PlanetRadius*0.04
}

func sdfHexagonalPrism(p mgl64.Vec3) float64 {
	return hexPrism(p, PlanetRadius*0.55, PlanetRadius*0.8) - PlanetRadius*0.04
}

func sdfTriangularPrism(p mgl64.Vec3) float64 {
	const h = PlanetRadius * 0.6
	const halfLen = PlanetRadius * 0.8
	q := mgl64.Vec3{gomath.Abs(p[0]), p[1], gomath.Abs(p[2])}
	d1 := q[2] - halfLen
	d2 := gomath.Max(q[0]*0.866025+p[1]*0.5, -p[1]) - h*0.5
	return gomath.Max(d1, d2) - PlanetRadius*0.04
}

func sdfTetrahedron(p mgl64.Vec3) float64 {
	const s = PlanetRadius * 0.7
	// Plane-based tetrahedron distance (scaled, approximately exact).
	d := gomath.Max(
		gomath.Max(-p[0]-p[1]-p[2], p[0]+p[1]-p[2]),
		gomath.Max(-p[0]+p[1]+p[2], p[0]-p[1]+p[2]),
	)
	return (d-s)/gomath.Sqrt(3) - PlanetRadius*0.05
}

func sdfOctahedron(p mgl64.Vec3) float64 {
	const s = PlanetRadius * 0.85
	m := gomath.Abs(p[0]) + gomath.Abs(p[1]) + gomath.Abs(p[2])
	return (m-s)*0.57735027 - PlanetRadius*0.04
}

func sdfKnot(p mgl64.Vec3) float64 {
	// Two strands twisted one and a half turns around a ring, forming a
	// trefoil. Distance is taken in the cross-section plane rotated with
	// the angle around Y, which keeps the field continuous across the
	// atan2 seam.
	const major = PlanetRadius * 0.78
	const strand = PlanetRadius * 0.3
	const tube = PlanetRadius * 0.18
	a := gomath.Atan2(p[2], p[0])
	qx := mgl64.Vec2{p[0], p[2]}.Len() - major
	qx, qy := rot2(qx, p[1], a*1.5)
	qy = gomath.Abs(qy) - strand
	return mgl64.Vec2{qx, qy}.Len() - tube
}

func sdfMobiusStrip(p mgl64.Vec3) float64 {
	// Flat ring whose rectangular cross-section makes a half twist per
	// loop. The section is symmetric under a half-turn, so the seam
	// rotation jump of pi is invisible.
	const major = PlanetRadius * 0.8
	const halfWidth = PlanetRadius * 0.42
	const halfThick = PlanetRadius * 0.1
	const round = PlanetRadius * 0.05
	a := gomath.Atan2(p[2], p[0])
	qx := mgl64.Vec2{p[0], p[2]}.Len() - major
	qx, qy := rot2(qx, p[1], a*0.5)
	dx := gomath.Abs(qx) - halfWidth + round
	dy := gomath.Abs(qy) - halfThick + round
	outside := mgl64.Vec2{gomath.Max(dx, 0), gomath.Max(dy, 0)}.Len()
	return outside + gomath.Min(gomath.Max(dx, dy), 0) - round
}

func sdfFibers(p mgl64.Vec3) float64 {
	// Rope of three strands braided around a ring, blended like the
	// molecule shapes.
	const major = PlanetRadius * 0.75
	const braid = PlanetRadius * 0.26
	const tube = PlanetRadius * 0.16
	a := gomath.Atan2(p[2], p[0])
	qx := mgl64.Vec2{p[0], p[2]}.Len() - major
	d := gomath.Inf(1)
	for i := 0; i < 3; i++ {
		t := a*2 + float64(i)*2*gomath.Pi/3
		cx := gomath.Cos(t) * braid
		cy := gomath.Sin(t) * braid
		d = smoothMin(d, mgl64.Vec2{qx - cx, p[1] - cy}.Len()-tube, PlanetRadius*0.05)
	}
	return d
}

func sdfH2O(p mgl64.Vec3) float64 {
	o := sphereAt(p, mgl64.Vec3{0, 0, 0}, PlanetRadius*0.6)
	h1 := sphereAt(p, mgl64.Vec3{-PlanetRadius * 0.55, PlanetRadius * 0.45, 0}, PlanetRadius*0.4)
	h2 := sphereAt(p, mgl64.Vec3{PlanetRadius * 0.55, PlanetRadius * 0.45, 0}, PlanetRadius*0.4)
	return smoothMin(smoothMin(o, h1, PlanetRadius*0.12), h2, PlanetRadius*0.12)
}

func sdfH3O(p mgl64.Vec3) float64 {
	d := sphereAt(p, mgl64.Vec3{0, 0, 0}, PlanetRadius*0.6)
	for i := 0; i < 3; i++ {
		a := float64(i) * 2 * gomath.Pi / 3
		c := mgl64.Vec3{gomath.Cos(a) * PlanetRadius * 0.62, PlanetRadius * 0.3, gomath.Sin(a) * PlanetRadius * 0.62}
		d = smoothMin(d, sphereAt(p, c, PlanetRadius*0.38), PlanetRadius*0.12)
	}
	return d
}

func sdfH4O(p mgl64.Vec3) float64 {
	d := sphereAt(p, mgl64.Vec3{0, 0, 0}, PlanetRadius*0.6)
	// Tetrahedral arrangement.
	dirs := []mgl64.Vec3{
		{1, 1, 1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1},
	}
	for _, dir := range dirs {
		c := dir.Normalize().Mul(PlanetRadius * 0.68)
		d = smoothMin(d, sphereAt(p, c, PlanetRadius*0.36), PlanetRadius*0.12)
	}
	return d
}

func sphereAt(p, center mgl64.Vec3, radius float64) float64 {
	return p.Sub(center).Len() - radius
}

func roundedBox(p, half mgl64.Vec3, round float64) float64 {
	q := mgl64.Vec3{
		gomath.Abs(p[0]) - half[0] + round,
		gomath.Abs(p[1]) - half[1] + round,
		gomath.Abs(p[2]) - half[2] + round,
	}
	outside := mgl64.Vec3{
		gomath.Max(q[0], 0), gomath.Max(q[1], 0), gomath.Max(q[2], 0),
	}.Len()
	inside := gomath.Min(gomath.Max(q[0], gomath.Max(q[1], q[2])), 0)
	return outside + inside - round
}

// hexPrism is a hexagonal prism with hex radius r in the XZ plane and
// half-height h along Y.
func hexPrism(p mgl64.Vec3, r, h float64) float64 {
	d2 := hexagon2D(p[0], p[2], r)
	dy := gomath.Abs(p[1]) - h
	outside := mgl64.Vec2{gomath.Max(d2, 0), gomath.Max(dy, 0)}.Len()
	inside := gomath.Min(gomath.Max(d2, dy), 0)
	return outside + inside
}

// hexagon2D is the signed distance to a regular hexagon of radius r.
func hexagon2D(px, pz, r float64) float64 {
	const kx, kz, kr = -0.866025404, 0.5, 0.577350269
	x := gomath.Abs(px)
	z := gomath.Abs(pz)
	d := 2 * gomath.Min(kx*x+kz*z, 0)
	x -= d * kx
	z -= d * kz
	x -= clampf(x, -kr*r, kr*r)
	z -= r
	return mgl64.Vec2{x, z}.Len() * signf(z)
}

func clampf(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// rot2 rotates the 2D point (x, y) by angle a.
func rot2(x, y, a float64) (float64, float64) {
	s, c := gomath.Sincos(a)
	return c*x - s*y, s*x + c*y
}

func signf(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
