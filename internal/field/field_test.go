package field

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewUnknownModes(t *testing.T) {
	if _, err := New("doughnut", "lakes", 1); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("unknown shape: err = %v, want ErrUnknownMode", err)
	}
	if _, err := New("sphere", "alps", 1); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("unknown elevation: err = %v, want ErrUnknownMode", err)
	}
}

func TestNewRandomShape(t *testing.T) {
	f, err := New("random", "none", 99)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if f.ShapeName == "random" || f.ShapeName == "" {
		t.Errorf("random shape not resolved, got %q", f.ShapeName)
	}
	// Same seed resolves to the same shape.
	g, err := New("random", "none", 99)
	if err != nil {
		t.Fatal(err)
	}
	if g.ShapeName != f.ShapeName {
		t.Errorf("random pick not deterministic: %q vs %q", f.ShapeName, g.ShapeName)
	}
}

func TestAllModesFinite(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, shape := range ShapeModes() {
		for _, elev := range ElevationModes() {
			f, err := New(shape, elev, 1357)
			if err != nil {
				t.Fatalf("New(%q, %q) error = %v", shape, elev, err)
			}
			for i := 0; i < 500; i++ {
				p := mgl64.Vec3{
					rng.Float64()*2 - 1,
					rng.Float64()*2 - 1,
					rng.Float64()*2 - 1,
				}
				for name, v := range map[string]float64{
					"shape":      f.Shape(p),
					"elevation":  f.Elevation(p),
					"land":       f.Land(p),
					"water":      f.Water(p),
					"navigation": f.Navigation(p),
				} {
					if err := CheckFinite(v, p); err != nil {
						t.Fatalf("%s/%s %s: %v", shape, elev, name, err)
					}
				}
			}
		}
	}
}

func TestSphereSign(t *testing.T) {
	f, err := New("sphere", "none", 1)
	if err != nil {
		t.Fatal(err)
	}
	if d := f.Shape(mgl64.Vec3{0, 0, 0}); d >= 0 {
		t.Errorf("sphere center distance = %v, want negative", d)
	}
	if d := f.Shape(mgl64.Vec3{1, 1, 1}); d <= 0 {
		t.Errorf("sphere corner distance = %v, want positive", d)
	}
}

func TestTwistedShapesSign(t *testing.T) {
	// All three are rings around the Y axis: solid on a strand, empty at
	// the center and far outside. The knot and fibers strands sit off the
	// ring centerline, so each shape gets its own inside point.
	inside := map[string]mgl64.Vec3{
		"knot":        {0.78, 0.3, 0},
		"mobiusstrip": {0.8, 0, 0},
		"fibers":      {0, 0, 0.49},
	}
	for shape, p := range inside {
		f, err := New(shape, "none", 3)
		if err != nil {
			t.Fatalf("New(%q) error = %v", shape, err)
		}
		if d := f.Shape(p); d >= 0 {
			t.Errorf("%s strand distance = %v, want negative", shape, d)
		}
		if d := f.Shape(mgl64.Vec3{0, 0, 0}); d <= 0 {
			t.Errorf("%s center distance = %v, want positive", shape, d)
		}
		if d := f.Shape(mgl64.Vec3{1, 1, 1}); d <= 0 {
			t.Errorf("%s corner distance = %v, want positive", shape, d)
		}
	}
}

func TestTwistedShapesSeamContinuity(t *testing.T) {
	// The twisted cross-sections rotate with atan2 around Y, which jumps
	// by 2*pi across the negative X axis. The fields must not jump there.
	rng := rand.New(rand.NewSource(4))
	for _, shape := range []string{"knot", "mobiusstrip", "fibers"} {
		f, err := New(shape, "none", 3)
		if err != nil {
			t.Fatalf("New(%q) error = %v", shape, err)
		}
		for i := 0; i < 200; i++ {
			// Stay away from the Y axis, where the twist angle itself
			// varies steeply.
			x := -0.05 - rng.Float64()*0.95
			y := rng.Float64()*2 - 1
			const eps = 1e-7
			a := f.Shape(mgl64.Vec3{x, y, eps})
			b := f.Shape(mgl64.Vec3{x, y, -eps})
			if math.Abs(a-b) > 1 {
				t.Fatalf("%s discontinuous across seam at x=%v y=%v: %v vs %v", shape, x, y, a, b)
			}
		}
	}
}

func TestCompositeRelations(t *testing.T) {
	f, err := New("sphere", "lakes", 31)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(8))
	for i := 0; i < 1000; i++ {
		p := mgl64.Vec3{rng.Float64()*2 - 1, rng.Float64()*2 - 1, rng.Float64()*2 - 1}
		shape := f.Shape(p)
		elev := f.Elevation(p)
		land := f.Land(p)
		nav := f.Navigation(p)

		wantLand := shape - elev/ElevationRatio
		if math.Abs(land-wantLand) > 1e-9 {
			t.Fatalf("land composite mismatch at %v: %v vs %v", p, land, wantLand)
		}
		wantNav := shape - math.Max(elev, 0)/ElevationRatio
		if math.Abs(nav-wantNav) > 1e-9 {
			t.Fatalf("navigation composite mismatch at %v: %v vs %v", p, nav, wantNav)
		}
		if f.Water(p) != shape {
			t.Fatal("water composite must equal the base shape")
		}
	}
}

func TestMountainsLeaveWaterUntouched(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	m := newMountainsOverlay(rng)
	for i := 0; i < 2000; i++ {
		p := mgl64.Vec3{rng.Float64() * 5000, rng.Float64() * 5000, rng.Float64() * 5000}
		land := -10 - rng.Float64()*500 // well below the waterline
		got := m.apply(p, land)
		if got != land {
			t.Fatalf("overlay modified underwater terrain at %v: %v -> %v", p, land, got)
		}
	}
}

func TestSmoothMax(t *testing.T) {
	// Far from the blend region smoothMax matches a hard max.
	if got := smoothMax(0, 500, 50); math.Abs(got-500) > 1e-9 {
		t.Errorf("smoothMax(0, 500, 50) = %v, want 500", got)
	}
	if got := smoothMax(0, -500, 50); math.Abs(got) > 1e-9 {
		t.Errorf("smoothMax(0, -500, 50) = %v, want 0", got)
	}
	// Within the blend region it exceeds both inputs smoothly.
	mid := smoothMax(0, 0, 50)
	if mid <= 0 || mid > 50 {
		t.Errorf("smoothMax(0, 0, 50) = %v, want in (0, 50]", mid)
	}
}

func TestTerrace(t *testing.T) {
	if got := terrace(2.0, 4); math.Abs(got-2.0) > 1e-9 {
		t.Errorf("terrace(2.0) = %v, want 2.0", got)
	}
	// Monotonic over a span.
	prev := terrace(0, 4)
	for x := 0.01; x < 3; x += 0.01 {
		cur := terrace(x, 4)
		if cur < prev-1e-12 {
			t.Fatalf("terrace not monotonic at %v: %v < %v", x, cur, prev)
		}
		prev = cur
	}
}
