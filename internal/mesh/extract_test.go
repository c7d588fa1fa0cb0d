package mesh

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func sphereField(radius float64) func(mgl64.Vec3) float64 {
	return func(p mgl64.Vec3) float64 {
		return p.Len() - radius
	}
}

func extractSphere(t *testing.T, n int) *Mesh {
	t.Helper()
	g, err := SampleGrid(sphereField(0.8), n)
	if err != nil {
		t.Fatalf("SampleGrid() error = %v", err)
	}
	m, err := Extract(g)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	return m
}

func TestExtractEmptyField(t *testing.T) {
	g, err := SampleGrid(func(mgl64.Vec3) float64 { return 1 }, 16)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Extract(g); !errors.Is(err, ErrEmptyMesh) {
		t.Errorf("Extract() error = %v, want ErrEmptyMesh", err)
	}
}

func TestExtractNonFiniteField(t *testing.T) {
	_, err := SampleGrid(func(p mgl64.Vec3) float64 {
		if p[0] > 0 {
			return math.NaN()
		}
		return 1
	}, 8)
	if err == nil {
		t.Fatal("expected error for non-finite field")
	}
}

func TestExtractDeterministic(t *testing.T) {
	a := extractSphere(t, 24)
	b := extractSphere(t, 24)
	if len(a.Vertices) != len(b.Vertices) || len(a.Indices) != len(b.Indices) {
		t.Fatalf("counts differ: %d/%d vs %d/%d",
			len(a.Vertices), len(a.Indices), len(b.Vertices), len(b.Indices))
	}
	for i := range a.Vertices {
		if a.Vertices[i] != b.Vertices[i] {
			t.Fatalf("vertex %d differs", i)
		}
	}
	for i := range a.Indices {
		if a.Indices[i] != b.Indices[i] {
			t.Fatalf("index %d differs", i)
		}
	}
}

func TestExtractSphereManifold(t *testing.T) {
	m := extractSphere(t, 24)

	// Every directed edge must have exactly one opposite, meaning every
	// undirected edge is shared by exactly two triangles.
	edges := make(map[[2]uint32]int)
	for tri := 0; tri < m.TriangleCount(); tri++ {
		for e := 0; e < 3; e++ {
			a := m.Indices[tri*3+e]
			b := m.Indices[tri*3+(e+1)%3]
			edges[[2]uint32{a, b}]++
		}
	}
	for edge, count := range edges {
		if count != 1 {
			t.Fatalf("directed edge %v used %d times, want 1", edge, count)
		}
		if edges[[2]uint32{edge[1], edge[0]}] != 1 {
			t.Fatalf("edge %v has no opposite half-edge", edge)
		}
	}
}

func TestSimplifiedSphereStaysManifold(t *testing.T) {
	m := extractSphere(t, 24)
	m.Normalize()
	Simplify(m, m.TriangleCount()) // under budget, cleanup only

	edges := make(map[[2]uint32]int)
	for tri := 0; tri < m.TriangleCount(); tri++ {
		for e := 0; e < 3; e++ {
			a := m.Indices[tri*3+e]
			b := m.Indices[tri*3+(e+1)%3]
			edges[[2]uint32{a, b}]++
		}
	}
	for edge, count := range edges {
		if count != 1 || edges[[2]uint32{edge[1], edge[0]}] != 1 {
			t.Fatalf("edge %v not shared by exactly two triangles after cleanup", edge)
		}
	}

	sum := 0.0
	for _, v := range m.Vertices {
		sum += v.Normal.Dot(v.Position.Normalize())
	}
	if avg := sum / float64(len(m.Vertices)); avg < 0.9 {
		t.Errorf("average normal/position alignment = %v after simplify, want near 1", avg)
	}
}

func TestExtractSphereNormalsOutward(t *testing.T) {
	m := extractSphere(t, 24)
	sum := 0.0
	for _, v := range m.Vertices {
		sum += v.Normal.Dot(v.Position.Normalize())
		if math.Abs(v.Normal.Len()-1) > 1e-6 {
			t.Fatalf("normal not unit length: %v", v.Normal)
		}
	}
	avg := sum / float64(len(m.Vertices))
	if avg < 0.9 {
		t.Errorf("average normal/position alignment = %v, want near 1", avg)
	}
}

func TestExtractSphereRadius(t *testing.T) {
	m := extractSphere(t, 32)
	for _, v := range m.Vertices {
		r := v.Position.Len()
		if math.Abs(r-0.8) > 0.1 {
			t.Fatalf("vertex at radius %v, want ~0.8", r)
		}
	}
}
