package texture

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/planetgen/internal/mesh"
)

// Fragment is one texel covered by a triangle, with the surface attributes
// interpolated at the texel center.
type Fragment struct {
	X, Y     int
	Position mgl64.Vec3
	Normal   mgl64.Vec3
}

// FragmentFunc receives every covered texel exactly once per triangle.
type FragmentFunc func(frag Fragment)

// Mask records which texels the rasterizer touched. Untouched texels are
// later filled by inpainting.
type Mask struct {
	Width  int
	Height int
	bits   []bool
}

// NewMask returns an empty coverage mask.
func NewMask(width, height int) *Mask {
	return &Mask{Width: width, Height: height, bits: make([]bool, width*height)}
}

// Covered reports whether the texel at (x, y) was written.
func (mk *Mask) Covered(x, y int) bool { return mk.bits[y*mk.Width+x] }

// Rasterize scans every triangle of the mesh over a width by height texel
// grid addressed by the mesh's UVs and invokes fn for each covered texel.
// It returns the coverage mask.
func Rasterize(m *mesh.Mesh, width, height int, fn FragmentFunc) *Mask {
	mask := NewMask(width, height)
	fw, fh := float64(width), float64(height)
	for t := 0; t < m.TriangleCount(); t++ {
		var pts [3]mgl64.Vec2
		var verts [3]mesh.Vertex
		for e := 0; e < 3; e++ {
			verts[e] = m.Vertices[m.Indices[t*3+e]]
			pts[e] = mgl64.Vec2{verts[e].UV[0] * fw, verts[e].UV[1] * fh}
		}
		rasterTriangle(pts, verts, mask, fn)
	}
	return mask
}

// rasterTriangle fills one UV-space triangle by barycentric point-in-test
// over its bounding box.
func rasterTriangle(pts [3]mgl64.Vec2, verts [3]mesh.Vertex, mask *Mask, fn FragmentFunc) {
	minX := int(gomath.Floor(min3(pts[0][0], pts[1][0], pts[2][0])))
	maxX := int(gomath.Ceil(max3(pts[0][0], pts[1][0], pts[2][0])))
	minY := int(gomath.Floor(min3(pts[0][1], pts[1][1], pts[2][1])))
	maxY := int(gomath.Ceil(max3(pts[0][1], pts[1][1], pts[2][1])))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= mask.Width {
		maxX = mask.Width - 1
	}
	if maxY >= mask.Height {
		maxY = mask.Height - 1
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			c := mgl64.Vec2{float64(x) + 0.5, float64(y) + 0.5}
			b, ok := barycentric(pts, c)
			if !ok {
				continue
			}
			pos := verts[0].Position.Mul(b[0]).
				Add(verts[1].Position.Mul(b[1])).
				Add(verts[2].Position.Mul(b[2]))
			nrm := verts[0].Normal.Mul(b[0]).
				Add(verts[1].Normal.Mul(b[1])).
				Add(verts[2].Normal.Mul(b[2]))
			if l := nrm.Len(); l > 1e-12 {
				nrm = nrm.Mul(1 / l)
			}
			mask.bits[y*mask.Width+x] = true
			fn(Fragment{X: x, Y: y, Position: pos, Normal: nrm})
		}
	}
}

// barycentric returns the barycentric coordinates of p inside the triangle,
// or ok=false when p lies outside. A small negative tolerance keeps texels
// on shared edges covered by at least one of the two triangles.
func barycentric(pts [3]mgl64.Vec2, p mgl64.Vec2) (mgl64.Vec3, bool) {
	v0 := pts[1].Sub(pts[0])
	v1 := pts[2].Sub(pts[0])
	v2 := p.Sub(pts[0])
	den := v0[0]*v1[1] - v1[0]*v0[1]
	if gomath.Abs(den) < 1e-12 {
		return mgl64.Vec3{}, false
	}
	v := (v2[0]*v1[1] - v1[0]*v2[1]) / den
	w := (v0[0]*v2[1] - v2[0]*v0[1]) / den
	u := 1 - v - w
	const tol = -1e-7
	if u < tol || v < tol || w < tol {
		return mgl64.Vec3{}, false
	}
	return mgl64.Vec3{u, v, w}, true
}

func min3(a, b, c float64) float64 { return gomath.Min(a, gomath.Min(b, c)) }
func max3(a, b, c float64) float64 { return gomath.Max(a, gomath.Max(b, c)) }
