// Package atlas computes per-chunk UV parameterizations: charts of nearly
// coplanar triangles, projected to 2D and packed into a single rectangular
// texture space with padding between charts.
package atlas

import (
	"errors"
	gomath "math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/planetgen/internal/mesh"
)

// ErrDegenerateChunk reports a chunk that cannot be parameterized (no
// triangles or no surface area). The failure is local to the chunk.
var ErrDegenerateChunk = errors.New("degenerate chunk parameterization")

// normalCone is the minimum dot product between a triangle normal and its
// chart's seed normal. Keeping charts inside this cone keeps the planar
// projection injective.
const normalCone = 0.65

// Layout is the result of parameterizing one chunk: the chunk mesh
// re-emitted with UVs (vertices duplicated at chart seams) and the packed
// atlas extent in texels.
type Layout struct {
	Mesh   *mesh.Mesh
	Width  int
	Height int
	Charts int
}

type chart struct {
	triangles []int32
	normal    mgl64.Vec3

	// Planar projection basis and the chart's placement in the atlas.
	axisU, axisV mgl64.Vec2
	basisU       mgl64.Vec3
	basisV       mgl64.Vec3
	min          mgl64.Vec2
	w, h         int
	originX      int
	originY      int
}

// Parameterize computes the UV layout for one chunk at the given texel
// density and chart padding.
func Parameterize(m *mesh.Mesh, texelsPerUnit float64, padding int) (*Layout, error) {
	tc := m.TriangleCount()
	if tc == 0 || len(m.Vertices) == 0 {
		return nil, ErrDegenerateChunk
	}

	normals, ok := faceNormals(m)
	if !ok {
		return nil, ErrDegenerateChunk
	}

	charts := buildCharts(m, normals)
	for _, c := range charts {
		projectChart(m, c, texelsPerUnit)
	}

	width, height := packCharts(charts, padding)
	if width <= 0 || height <= 0 {
		return nil, ErrDegenerateChunk
	}

	return &Layout{
		Mesh:   emitMesh(m, charts, width, height, texelsPerUnit),
		Width:  width,
		Height: height,
		Charts: len(charts),
	}, nil
}

// faceNormals computes per-triangle unit normals. Returns false when the
// chunk has no measurable surface area.
func faceNormals(m *mesh.Mesh) ([]mgl64.Vec3, bool) {
	tc := m.TriangleCount()
	normals := make([]mgl64.Vec3, tc)
	anyArea := false
	for t := 0; t < tc; t++ {
		a := m.Vertices[m.Indices[t*3]].Position
		b := m.Vertices[m.Indices[t*3+1]].Position
		c := m.Vertices[m.Indices[t*3+2]].Position
		n := b.Sub(a).Cross(c.Sub(a))
		if l := n.Len(); l >= mesh.MinTriangleCross {
			normals[t] = n.Mul(1 / l)
			anyArea = true
		}
	}
	return normals, anyArea
}

// buildCharts groups triangles into connected regions whose normals stay
// within the chart's normal cone.
func buildCharts(m *mesh.Mesh, normals []mgl64.Vec3) []*chart {
	tc := m.TriangleCount()
	vertexTris := make([][]int32, len(m.Vertices))
	for t := 0; t < tc; t++ {
		for e := 0; e < 3; e++ {
			v := m.Indices[t*3+e]
			vertexTris[v] = append(vertexTris[v], int32(t))
		}
	}

	assigned := make([]bool, tc)
	var charts []*chart
	for seed := 0; seed < tc; seed++ {
		if assigned[seed] {
			continue
		}
		c := &chart{normal: normals[seed]}
		queue := []int32{int32(seed)}
		assigned[seed] = true
		for len(queue) > 0 {
			t := queue[0]
			queue = queue[1:]
			c.triangles = append(c.triangles, t)
			for e := 0; e < 3; e++ {
				for _, nt := range vertexTris[m.Indices[t*3+int32(e)]] {
					if assigned[nt] {
						continue
					}
					if normals[nt].Dot(c.normal) < normalCone {
						continue
					}
					assigned[nt] = true
					queue = append(queue, nt)
				}
			}
		}
		charts = append(charts, c)
	}
	return charts
}

// projectChart builds an orthonormal basis perpendicular to the chart
// normal and measures the chart's 2D extent in texels.
func projectChart(m *mesh.Mesh, c *chart, texelsPerUnit float64) {
	n := c.normal
	if n.Len() == 0 {
		// Chart seeded by a zero-area triangle on an uncleaned mesh.
		n = mgl64.Vec3{0, 0, 1}
	}
	// Pick the axis least aligned with the normal for a stable tangent.
	up := mgl64.Vec3{1, 0, 0}
	if gomath.Abs(n[0]) > gomath.Abs(n[1]) {
		up = mgl64.Vec3{0, 1, 0}
	}
	c.basisU = up.Cross(n).Normalize()
	c.basisV = n.Cross(c.basisU)

	first := true
	var min, max mgl64.Vec2
	c.eachVertex(m, func(v uint32) {
		p := m.Vertices[v].Position
		uv := mgl64.Vec2{p.Dot(c.basisU), p.Dot(c.basisV)}
		if first {
			min, max = uv, uv
			first = false
		} else {
			min[0] = gomath.Min(min[0], uv[0])
			min[1] = gomath.Min(min[1], uv[1])
			max[0] = gomath.Max(max[0], uv[0])
			max[1] = gomath.Max(max[1], uv[1])
		}
	})
	c.min = min
	c.w = int(gomath.Ceil((max[0]-min[0])*texelsPerUnit)) + 1
	c.h = int(gomath.Ceil((max[1]-min[1])*texelsPerUnit)) + 1
}

// eachVertex visits every vertex referenced by the chart, with repeats.
func (c *chart) eachVertex(m *mesh.Mesh, fn func(v uint32)) {
	for _, t := range c.triangles {
		for e := 0; e < 3; e++ {
			fn(m.Indices[int(t)*3+e])
		}
	}
}

// packCharts places charts into rows of a shelf. Charts are sorted by
// height so rows stay dense; sorting is stable over the build order, so
// packing is deterministic.
func packCharts(charts []*chart, padding int) (width, height int) {
	totalArea := 0
	maxW := 0
	for _, c := range charts {
		totalArea += (c.w + padding) * (c.h + padding)
		if c.w > maxW {
			maxW = c.w
		}
	}
	width = int(gomath.Ceil(gomath.Sqrt(float64(totalArea))))
	if width < maxW+2*padding {
		width = maxW + 2*padding
	}

	order := make([]int, len(charts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return charts[order[a]].h > charts[order[b]].h
	})

	x, y, rowH := padding, padding, 0
	for _, ci := range order {
		c := charts[ci]
		if x+c.w+padding > width {
			x = padding
			y += rowH + padding
			rowH = 0
		}
		c.originX = x
		c.originY = y
		x += c.w + padding
		if c.h > rowH {
			rowH = c.h
		}
	}
	height = y + rowH + padding
	return width, height
}

// emitMesh re-emits chunk vertices with final UVs. A source vertex used by
// several charts is duplicated once per chart, so triangles never share
// vertices across chart seams.
func emitMesh(m *mesh.Mesh, charts []*chart, width, height int, texelsPerUnit float64) *mesh.Mesh {
	out := &mesh.Mesh{Scale: m.Scale}
	invW := 1 / float64(width)
	invH := 1 / float64(height)
	for _, c := range charts {
		remap := make(map[uint32]uint32, len(c.triangles)*2)
		for _, t := range c.triangles {
			for e := 0; e < 3; e++ {
				src := m.Indices[int(t)*3+e]
				dst, ok := remap[src]
				if !ok {
					v := m.Vertices[src]
					p := v.Position
					local := mgl64.Vec2{
						(p.Dot(c.basisU) - c.min[0]) * texelsPerUnit,
						(p.Dot(c.basisV) - c.min[1]) * texelsPerUnit,
					}
					v.UV = mgl64.Vec2{
						(float64(c.originX) + local[0]) * invW,
						(float64(c.originY) + local[1]) * invH,
					}
					dst = uint32(len(out.Vertices))
					remap[src] = dst
					out.Vertices = append(out.Vertices, v)
				}
				out.Indices = append(out.Indices, dst)
			}
		}
	}
	return out
}
