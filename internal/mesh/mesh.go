// Package mesh extracts triangle meshes from sampled distance fields and
// derives the simplified variants the exporter consumes.
package mesh

import (
	"errors"
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrEmptyMesh reports that the field never crossed zero inside the
// sampled domain, which signals a misconfigured shape/elevation pairing.
var ErrEmptyMesh = errors.New("generated empty mesh")

// Vertex carries position, smooth normal and, for render meshes, an atlas UV.
type Vertex struct {
	Position mgl64.Vec3
	Normal   mgl64.Vec3
	UV       mgl64.Vec2
}

// Mesh is an indexed triangle mesh. Indices come in triples; every index
// references a valid vertex.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32

	// Scale is the uniform factor applied by Normalize, recorded so
	// density-dependent later steps can map back to the original domain.
	Scale float64
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Clone returns a deep copy. Pipeline branches clone the base mesh so no
// mutable state is shared between them.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Vertices: make([]Vertex, len(m.Vertices)),
		Indices:  make([]uint32, len(m.Indices)),
		Scale:    m.Scale,
	}
	copy(c.Vertices, m.Vertices)
	copy(c.Indices, m.Indices)
	return c
}

// MeanEdgeLength averages the three edge lengths of every triangle.
func (m *Mesh) MeanEdgeLength() float64 {
	tc := m.TriangleCount()
	if tc == 0 {
		return 0
	}
	sum := 0.0
	for t := 0; t < tc; t++ {
		for e := 0; e < 3; e++ {
			p1 := m.Vertices[m.Indices[t*3+e]].Position
			p2 := m.Vertices[m.Indices[t*3+(e+1)%3]].Position
			sum += p1.Sub(p2).Len()
		}
	}
	return sum / float64(tc*3)
}

// Normalize rescales the mesh so the mean edge length equals 1 and returns
// the applied factor. This decouples absolute size from grid resolution,
// keeping texel densities and simplification thresholds resolution
// independent.
func (m *Mesh) Normalize() float64 {
	mean := m.MeanEdgeLength()
	if mean == 0 {
		return 1
	}
	scale := 1 / mean
	for i := range m.Vertices {
		m.Vertices[i].Position = m.Vertices[i].Position.Mul(scale)
	}
	m.Scale = scale
	return scale
}

// RecomputeNormals rebuilds smooth vertex normals by accumulating face
// normals into their vertices and renormalizing.
func (m *Mesh) RecomputeNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = mgl64.Vec3{}
	}
	tc := m.TriangleCount()
	for t := 0; t < tc; t++ {
		a := m.Vertices[m.Indices[t*3]].Position
		b := m.Vertices[m.Indices[t*3+1]].Position
		c := m.Vertices[m.Indices[t*3+2]].Position
		n := b.Sub(a).Cross(c.Sub(a))
		if n.Len() < 1e-12 {
			continue
		}
		n = n.Normalize()
		for e := 0; e < 3; e++ {
			v := &m.Vertices[m.Indices[t*3+e]]
			v.Normal = v.Normal.Add(n)
		}
	}
	for i := range m.Vertices {
		if l := m.Vertices[i].Normal.Len(); l > 1e-12 {
			m.Vertices[i].Normal = m.Vertices[i].Normal.Mul(1 / l)
		}
	}
}

// Bounds returns the axis-aligned bounding box of the vertex positions.
func (m *Mesh) Bounds() (min, max mgl64.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	min = m.Vertices[0].Position
	max = min
	for _, v := range m.Vertices[1:] {
		for a := 0; a < 3; a++ {
			min[a] = gomath.Min(min[a], v.Position[a])
			max[a] = gomath.Max(max[a], v.Position[a])
		}
	}
	return
}

// MinTriangleCross is the smallest edge cross-product length a triangle may
// have before it counts as degenerate. Area measurements elsewhere use the
// same threshold, so a cleaned mesh never yields zero-length face normals.
const MinTriangleCross = 1e-12

// RemoveDegenerateTriangles drops triangles with repeated indices or
// near-zero area, plus exact duplicate triangles.
func (m *Mesh) RemoveDegenerateTriangles() {
	seen := make(map[[3]uint32]struct{}, m.TriangleCount())
	out := m.Indices[:0]
	for t := 0; t < m.TriangleCount(); t++ {
		i0, i1, i2 := m.Indices[t*3], m.Indices[t*3+1], m.Indices[t*3+2]
		if i0 == i1 || i1 == i2 || i0 == i2 {
			continue
		}
		a := m.Vertices[i0].Position
		b := m.Vertices[i1].Position
		c := m.Vertices[i2].Position
		if b.Sub(a).Cross(c.Sub(a)).Len() < MinTriangleCross {
			continue
		}
		key := canonicalTriangle(i0, i1, i2)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, i0, i1, i2)
	}
	m.Indices = out
}

// canonicalTriangle rotates the smallest index first, keeping winding.
func canonicalTriangle(a, b, c uint32) [3]uint32 {
	if b < a && b < c {
		return [3]uint32{b, c, a}
	}
	if c < a && c < b {
		return [3]uint32{c, a, b}
	}
	return [3]uint32{a, b, c}
}
