package material

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/planetgen/internal/field"
)

func testSurface(t *testing.T) *Surface {
	t.Helper()
	f, err := field.New("sphere", "lakes", 7)
	if err != nil {
		t.Fatal(err)
	}
	return New(f, 42)
}

func TestTexCoordBands(t *testing.T) {
	if got := TypeDeepWater.TexCoord(); got != 0.5/8 {
		t.Errorf("deep water texcoord = %v", got)
	}
	if got := TypeSnow.TexCoord(); got != 7.5/8 {
		t.Errorf("snow texcoord = %v", got)
	}
	for ty := TypeDeepWater; ty <= TypeSnow; ty++ {
		if tc := ty.TexCoord(); tc <= 0 || tc >= 1 {
			t.Errorf("%v texcoord %v outside (0,1)", ty, tc)
		}
	}
}

func TestSampleRanges(t *testing.T) {
	s := testSurface(t)
	for _, p := range newPoints(300) {
		tile := Tile{Position: p, Normal: p.Normalize()}
		s.Sample(&tile)
		for i := 0; i < 3; i++ {
			if tile.Albedo[i] < 0 || tile.Albedo[i] > 1 {
				t.Fatalf("albedo %v at %v", tile.Albedo, p)
			}
		}
		if tile.Roughness < 0 || tile.Roughness > 1 {
			t.Fatalf("roughness %v at %v", tile.Roughness, p)
		}
		if tile.Metallic < 0 || tile.Metallic > 1 {
			t.Fatalf("metallic %v at %v", tile.Metallic, p)
		}
		if tile.Height < 0 || tile.Height > 1 {
			t.Fatalf("height %v at %v", tile.Height, p)
		}
		if tile.Difficulty < 0 || tile.Difficulty > 1 {
			t.Fatalf("difficulty %v at %v", tile.Difficulty, p)
		}
		if tile.Type < TypeDeepWater || tile.Type > TypeSnow {
			t.Fatalf("type %v at %v", tile.Type, p)
		}
	}
}

func TestSampleDeterministic(t *testing.T) {
	a := testSurface(t)
	b := testSurface(t)
	for _, p := range newPoints(50) {
		ta := Tile{Position: p, Normal: p.Normalize()}
		tb := Tile{Position: p, Normal: p.Normalize()}
		a.Sample(&ta)
		b.Sample(&tb)
		if ta != tb {
			t.Fatalf("samples differ at %v: %+v vs %+v", p, ta, tb)
		}
	}
}

func TestSlope(t *testing.T) {
	p := mgl64.Vec3{0, 0, 1}
	if got := slope(p, mgl64.Vec3{0, 0, 1}); got != 0 {
		t.Errorf("radial normal slope = %v, want 0", got)
	}
	if got := slope(p, mgl64.Vec3{1, 0, 0}); got != 1 {
		t.Errorf("tangent normal slope = %v, want 1", got)
	}
	if got := slope(p, mgl64.Vec3{0, 0, -1}); got != 1 {
		t.Errorf("inverted normal slope = %v, want 1 (clamped)", got)
	}
}

func TestClassifyElevationOrder(t *testing.T) {
	s := testSurface(t)
	w := mgl64.Vec3{100, 200, 300}
	deep := s.classify(w, -500, 0)
	high := s.classify(w, 2000, 0)
	if deep != TypeDeepWater {
		t.Errorf("elevation -500 classified as %v", deep)
	}
	if high != TypeSnow {
		t.Errorf("flat elevation 2000 classified as %v", high)
	}
	if steep := s.classify(w, 2000, 0.9); steep != TypeRock {
		t.Errorf("steep elevation 2000 classified as %v", steep)
	}
}

// newPoints returns deterministic pseudo-random points on and around the
// unit sphere surface.
func newPoints(n int) []mgl64.Vec3 {
	pts := make([]mgl64.Vec3, 0, n)
	s := int64(12345)
	next := func() float64 {
		s = s*6364136223846793005 + 1442695040888963407
		return float64((s>>33)&0xFFFFFF)/float64(0xFFFFFF)*2 - 1
	}
	for i := 0; i < n; i++ {
		p := mgl64.Vec3{next(), next(), next()}
		if p.Len() < 1e-3 {
			p = mgl64.Vec3{1, 0, 0}
		}
		pts = append(pts, p.Normalize().Mul(0.9))
	}
	return pts
}
