package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/planetgen/internal/field"
)

// Grid is a dense cube of field samples over the [-1,1]^3 domain.
// It is read-only after construction and consumed exactly once.
type Grid struct {
	N    int
	data []float32
}

// SampleGrid evaluates fn at n^3 lattice points. Any non-finite sample
// aborts with field.ErrNotFinite since it would corrupt extraction silently.
func SampleGrid(fn func(mgl64.Vec3) float64, n int) (*Grid, error) {
	g := &Grid{N: n, data: make([]float32, n*n*n)}
	inv := 2 / float64(n-1)
	i := 0
	for z := 0; z < n; z++ {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				p := mgl64.Vec3{
					float64(x)*inv - 1,
					float64(y)*inv - 1,
					float64(z)*inv - 1,
				}
				d := fn(p)
				if err := field.CheckFinite(d, p); err != nil {
					return nil, fmt.Errorf("sampling grid: %w", err)
				}
				g.data[i] = float32(d)
				i++
			}
		}
	}
	return g, nil
}

func (g *Grid) at(x, y, z int) float64 {
	return float64(g.data[(z*g.N+y)*g.N+x])
}

// point maps lattice coordinates back to the [-1,1]^3 domain.
func (g *Grid) point(x, y, z int) mgl64.Vec3 {
	inv := 2 / float64(g.N-1)
	return mgl64.Vec3{
		float64(x)*inv - 1,
		float64(y)*inv - 1,
		float64(z)*inv - 1,
	}
}

// Extract polygonizes the zero level set of the grid with a surface-nets
// dual contouring pass: one vertex per straddling cell at the mean of its
// edge crossings, one quad per straddling lattice edge. Vertices are shared
// between faces, so the output is naturally manifold with no welding pass.
// Quads are then split along their shorter diagonal and smooth vertex
// normals accumulated, matching the renderer's Phong shading expectations.
func Extract(g *Grid) (*Mesh, error) {
	verts, quads := dualCells(g)
	if len(verts) == 0 || len(quads) == 0 {
		return nil, ErrEmptyMesh
	}

	m := &Mesh{Vertices: make([]Vertex, len(verts)), Scale: 1}
	for i, p := range verts {
		m.Vertices[i].Position = p
	}
	m.Indices = make([]uint32, 0, len(quads)*6)
	for _, q := range quads {
		triangulateQuad(m, q)
	}
	for i := range m.Vertices {
		if l := m.Vertices[i].Normal.Len(); l > 1e-12 {
			m.Vertices[i].Normal = m.Vertices[i].Normal.Mul(1 / l)
		}
	}
	return m, nil
}

// dualCells runs the two surface-nets passes: cell vertices, then edge quads.
func dualCells(g *Grid) ([]mgl64.Vec3, [][4]uint32) {
	n := g.N
	cells := n - 1
	cellVertex := make([]int32, cells*cells*cells)
	for i := range cellVertex {
		cellVertex[i] = -1
	}
	cellIndex := func(x, y, z int) int {
		return (z*cells+y)*cells + x
	}

	var verts []mgl64.Vec3

	// Pass 1: one vertex per cell whose corners straddle the surface,
	// placed at the mean of the zero crossings on its edges.
	for z := 0; z < cells; z++ {
		for y := 0; y < cells; y++ {
			for x := 0; x < cells; x++ {
				var corner [8]float64
				neg, pos := false, false
				for c := 0; c < 8; c++ {
					corner[c] = g.at(x+(c&1), y+(c>>1&1), z+(c>>2&1))
					if corner[c] < 0 {
						neg = true
					} else {
						pos = true
					}
				}
				if !neg || !pos {
					continue
				}
				sum := mgl64.Vec3{}
				count := 0
				for _, e := range cellEdges {
					d0, d1 := corner[e[0]], corner[e[1]]
					if (d0 < 0) == (d1 < 0) {
						continue
					}
					t := d0 / (d0 - d1)
					p0 := g.point(x+(e[0]&1), y+(e[0]>>1&1), z+(e[0]>>2&1))
					p1 := g.point(x+(e[1]&1), y+(e[1]>>1&1), z+(e[1]>>2&1))
					sum = sum.Add(p0.Add(p1.Sub(p0).Mul(t)))
					count++
				}
				cellVertex[cellIndex(x, y, z)] = int32(len(verts))
				verts = append(verts, sum.Mul(1/float64(count)))
			}
		}
	}

	// Pass 2: a quad for every interior lattice edge with a sign change,
	// joining the four cells around it. Winding follows the crossing
	// direction so triangle normals point out of the solid.
	var quads [][4]uint32
	for z := 0; z < n; z++ {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				d0 := g.at(x, y, z)
				for axis := 0; axis < 3; axis++ {
					xi, yi, zi := x, y, z
					switch axis {
					case 0:
						xi++
					case 1:
						yi++
					default:
						zi++
					}
					if xi >= n || yi >= n || zi >= n {
						continue
					}
					d1 := g.at(xi, yi, zi)
					if (d0 < 0) == (d1 < 0) {
						continue
					}
					quad, ok := edgeQuad(cellVertex, cellIndex, cells, x, y, z, axis)
					if !ok {
						continue
					}
					if d0 >= 0 {
						quad[1], quad[3] = quad[3], quad[1]
					}
					quads = append(quads, quad)
				}
			}
		}
	}
	return verts, quads
}

// cellEdges lists the 12 cube edges as corner-bit pairs.
var cellEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// edgeQuad collects the four cell vertices around the lattice edge starting
// at (x,y,z) along axis, ordered counterclockwise as seen from the positive
// axis direction. Edges on the domain boundary have fewer than four cells
// and produce no face.
func edgeQuad(cellVertex []int32, cellIndex func(int, int, int) int, cells, x, y, z, axis int) ([4]uint32, bool) {
	// Offsets of the four cells in the two axes orthogonal to the edge,
	// cyclic so (B-A)x(C-A) points along the edge axis.
	offsets := [4][2]int{{-1, -1}, {0, -1}, {0, 0}, {-1, 0}}
	var quad [4]uint32
	for i, off := range offsets {
		cx, cy, cz := x, y, z
		switch axis {
		case 0: // u=y, v=z
			cy += off[0]
			cz += off[1]
		case 1: // u=z, v=x
			cz += off[0]
			cx += off[1]
		default: // u=x, v=y
			cx += off[0]
			cy += off[1]
		}
		if cx < 0 || cy < 0 || cz < 0 || cx >= cells || cy >= cells || cz >= cells {
			return quad, false
		}
		vi := cellVertex[cellIndex(cx, cy, cz)]
		if vi < 0 {
			return quad, false
		}
		quad[i] = uint32(vi)
	}
	return quad, true
}

// triangulateQuad splits a quad along its shorter diagonal to avoid
// degenerate slivers, and accumulates the face normal into all four
// vertices for later smoothing.
func triangulateQuad(m *Mesh, q [4]uint32) {
	p := func(i int) mgl64.Vec3 { return m.Vertices[q[i]].Position }

	first := p(0).Sub(p(2)).Len() < p(1).Sub(p(3)).Len()
	if first {
		m.Indices = append(m.Indices, q[0], q[1], q[2], q[0], q[2], q[3])
	} else {
		m.Indices = append(m.Indices, q[1], q[2], q[3], q[1], q[3], q[0])
	}

	n := p(1).Sub(p(0)).Cross(p(2).Sub(p(0)))
	if n.Len() < 1e-12 {
		return
	}
	n = n.Normalize()
	for _, i := range q {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Add(n)
	}
}
