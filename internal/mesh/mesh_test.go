package mesh

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNormalizeMeanEdge(t *testing.T) {
	m := extractSphere(t, 24)
	scale := m.Normalize()
	if scale <= 0 {
		t.Fatalf("scale = %v, want positive", scale)
	}
	if m.Scale != scale {
		t.Errorf("recorded scale %v != returned %v", m.Scale, scale)
	}
	mean := m.MeanEdgeLength()
	if math.Abs(mean-1) > 1e-9 {
		t.Errorf("mean edge length after Normalize = %v, want 1", mean)
	}
}

func TestNormalizeSingleTriangle(t *testing.T) {
	m := &Mesh{
		Vertices: []Vertex{
			{Position: mgl64.Vec3{0, 0, 0}},
			{Position: mgl64.Vec3{4, 0, 0}},
			{Position: mgl64.Vec3{0, 4, 0}},
		},
		Indices: []uint32{0, 1, 2},
	}
	m.Normalize()
	if mean := m.MeanEdgeLength(); math.Abs(mean-1) > 1e-12 {
		t.Errorf("mean edge length = %v, want 1", mean)
	}
}

func TestCloneIndependent(t *testing.T) {
	m := extractSphere(t, 16)
	c := m.Clone()
	c.Vertices[0].Position = mgl64.Vec3{99, 99, 99}
	c.Indices[0] = 7
	if m.Vertices[0].Position == (mgl64.Vec3{99, 99, 99}) {
		t.Error("clone shares vertex storage with original")
	}
	if m.Indices[0] == 7 && c.Indices[0] == m.Indices[0] {
		t.Error("clone shares index storage with original")
	}
}

func TestRemoveDegenerateTriangles(t *testing.T) {
	m := &Mesh{
		Vertices: []Vertex{
			{Position: mgl64.Vec3{0, 0, 0}},
			{Position: mgl64.Vec3{1, 0, 0}},
			{Position: mgl64.Vec3{0, 1, 0}},
		},
		Indices: []uint32{
			0, 1, 2, // valid
			0, 0, 1, // repeated index
			0, 1, 2, // duplicate
			1, 0, 2, // distinct winding of the same vertices, kept
		},
	}
	m.RemoveDegenerateTriangles()
	if got := m.TriangleCount(); got != 2 {
		t.Errorf("TriangleCount() after cleanup = %d, want 2", got)
	}
}

func TestSimplifyBudget(t *testing.T) {
	base := extractSphere(t, 32)
	base.Normalize()

	for _, target := range []int{len(base.Indices) / 3 / 4, 500, 200} {
		m := base.Clone()
		Simplify(m, target)
		if got := m.TriangleCount(); got > target {
			t.Errorf("Simplify(%d): %d triangles over budget", target, got)
		}
		if m.TriangleCount() == 0 {
			t.Errorf("Simplify(%d) destroyed the mesh", target)
		}
		for tri := 0; tri < m.TriangleCount(); tri++ {
			for e := 0; e < 3; e++ {
				if int(m.Indices[tri*3+e]) >= len(m.Vertices) {
					t.Fatalf("index out of range after simplify")
				}
			}
		}
	}
}

func TestSimplifyPreservesSilhouette(t *testing.T) {
	m := extractSphere(t, 32)
	m.Normalize()
	minB, maxB := m.Bounds()
	before := maxB.Sub(minB)

	Simplify(m, 300)
	minA, maxA := m.Bounds()
	after := maxA.Sub(minA)

	for a := 0; a < 3; a++ {
		if math.Abs(after[a]-before[a]) > before[a]*0.2 {
			t.Errorf("axis %d extent changed too much: %v -> %v", a, before[a], after[a])
		}
	}
}

func TestSimplifyUnderBudgetKeepsMesh(t *testing.T) {
	m := extractSphere(t, 16)
	want := m.TriangleCount()
	Simplify(m, want*10)
	if got := m.TriangleCount(); got != want {
		t.Errorf("TriangleCount() = %d, want unchanged %d", got, want)
	}
}

func TestSplitInvariants(t *testing.T) {
	m := extractSphere(t, 24)
	m.Normalize()

	const maxTris, maxVerts = 150, 120
	chunks := Split(m, maxTris, maxVerts)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	total := 0
	seen := make(map[[3][3]float64]int)
	for ci, c := range chunks {
		if c.TriangleCount() > maxTris {
			t.Errorf("chunk %d has %d triangles, budget %d", ci, c.TriangleCount(), maxTris)
		}
		if len(c.Vertices) > maxVerts {
			t.Errorf("chunk %d has %d vertices, budget %d", ci, len(c.Vertices), maxVerts)
		}
		total += c.TriangleCount()
		for tri := 0; tri < c.TriangleCount(); tri++ {
			var key [3][3]float64
			for e := 0; e < 3; e++ {
				p := c.Vertices[c.Indices[tri*3+e]].Position
				key[e] = [3]float64{p[0], p[1], p[2]}
			}
			seen[key]++
		}
	}
	if total != m.TriangleCount() {
		t.Errorf("chunks hold %d triangles, source has %d", total, m.TriangleCount())
	}
	for key, count := range seen {
		if count != 1 {
			t.Errorf("triangle %v appears %d times across chunks", key, count)
		}
	}
}

func TestComputeTileProperties(t *testing.T) {
	m := extractSphere(t, 16)
	props := ComputeTileProperties(m, func(pos, normal mgl64.Vec3) (float64, uint8) {
		return 0.5, 3
	})
	if len(props) != len(m.Vertices) {
		t.Fatalf("got %d properties for %d vertices", len(props), len(m.Vertices))
	}
	for _, p := range props {
		if p.Difficulty != 0.5 || p.Type != 3 {
			t.Fatalf("unexpected property %+v", p)
		}
	}
}
