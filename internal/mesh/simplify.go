package mesh

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"
)

// Simplify reduces m until its triangle count fits the budget, using
// uniform lattice vertex clustering. Clustered vertices collapse to their
// average position, which keeps the outer silhouette within roughly one
// cluster cell. Degenerate and duplicate triangles are removed and smooth
// normals rebuilt. A mesh already under budget is only cleaned up.
func Simplify(m *Mesh, targetTriangles int) {
	m.RemoveDegenerateTriangles()
	if m.TriangleCount() <= targetTriangles {
		m.RecomputeNormals()
		return
	}

	min, max := m.Bounds()
	extent := max.Sub(min)
	longest := gomath.Max(extent[0], gomath.Max(extent[1], extent[2]))

	// Start near the current vertex density and coarsen geometrically
	// until the triangle budget is met.
	cell := m.MeanEdgeLength()
	if cell <= 0 {
		cell = longest / 64
	}
	for iter := 0; iter < 48; iter++ {
		clustered := clusterVertices(m, min, cell)
		clustered.RemoveDegenerateTriangles()
		if clustered.TriangleCount() <= targetTriangles {
			clustered.RecomputeNormals()
			*m = *clustered
			return
		}
		cell *= 1.26
	}

	// Budget unreachable within iteration cap; keep the coarsest result.
	clustered := clusterVertices(m, min, cell)
	clustered.RemoveDegenerateTriangles()
	clustered.RecomputeNormals()
	*m = *clustered
}

// clusterVertices merges all vertices that share a lattice cell of the
// given size, remapping triangles onto the merged set.
func clusterVertices(m *Mesh, origin mgl64.Vec3, cell float64) *Mesh {
	type cellKey [3]int32
	keyOf := func(p mgl64.Vec3) cellKey {
		return cellKey{
			int32(gomath.Floor((p[0] - origin[0]) / cell)),
			int32(gomath.Floor((p[1] - origin[1]) / cell)),
			int32(gomath.Floor((p[2] - origin[2]) / cell)),
		}
	}

	clusterOf := make(map[cellKey]uint32, len(m.Vertices))
	remap := make([]uint32, len(m.Vertices))
	var sums []mgl64.Vec3
	var counts []int

	for i, v := range m.Vertices {
		k := keyOf(v.Position)
		ci, ok := clusterOf[k]
		if !ok {
			ci = uint32(len(sums))
			clusterOf[k] = ci
			sums = append(sums, mgl64.Vec3{})
			counts = append(counts, 0)
		}
		sums[ci] = sums[ci].Add(v.Position)
		counts[ci]++
		remap[i] = ci
	}

	out := &Mesh{
		Vertices: make([]Vertex, len(sums)),
		Scale:    m.Scale,
	}
	for i := range sums {
		out.Vertices[i].Position = sums[i].Mul(1 / float64(counts[i]))
	}
	out.Indices = make([]uint32, 0, len(m.Indices))
	for t := 0; t < m.TriangleCount(); t++ {
		i0 := remap[m.Indices[t*3]]
		i1 := remap[m.Indices[t*3+1]]
		i2 := remap[m.Indices[t*3+2]]
		if i0 == i1 || i1 == i2 || i0 == i2 {
			continue
		}
		out.Indices = append(out.Indices, i0, i1, i2)
	}
	return out
}
