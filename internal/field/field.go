// Package field defines planets as composable signed-distance fields: a base
// shape SDF combined with a layered noise elevation. A resolved Field is
// immutable and safe to evaluate from any goroutine.
package field

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrUnknownMode reports an unrecognized shape or elevation name.
var ErrUnknownMode = errors.New("unknown mode")

// ErrNotFinite reports a NaN or infinite field value. A field producing
// non-finite values is unreliable for the whole grid, so callers treat
// this as fatal.
var ErrNotFinite = errors.New("field value not finite")

// ElevationRatio converts elevation heights into shape-distance units when
// composing the land and navigation fields.
const ElevationRatio = 10

// Field is a resolved planet field: one shape SDF and one elevation
// function, plus the composites derived from them. All evaluation methods
// take a point in the [-1,1]^3 generation domain.
type Field struct {
	ShapeName     string
	ElevationName string
	Seed          int64

	shape     ShapeFunc
	elevation ElevationFunc
}

// New resolves a field from configuration names. The shape name "random"
// picks one of the registered shapes using the seed. Unknown names return
// ErrUnknownMode.
func New(shapeName, elevationName string, seed int64) (*Field, error) {
	rng := rand.New(rand.NewSource(seed))

	if shapeName == "random" {
		shapeName = shapeOrder[rng.Intn(len(shapeOrder))]
	}
	shape, ok := shapeNames[shapeName]
	if !ok {
		return nil, fmt.Errorf("shape %q: %w", shapeName, ErrUnknownMode)
	}

	build, ok := elevationBuilders[elevationName]
	if !ok {
		return nil, fmt.Errorf("elevation %q: %w", elevationName, ErrUnknownMode)
	}

	return &Field{
		ShapeName:     shapeName,
		ElevationName: elevationName,
		Seed:          seed,
		shape:         shape,
		elevation:     build(rng),
	}, nil
}

// ShapeModes returns the registered shape names in a stable order.
func ShapeModes() []string {
	names := make([]string, len(shapeOrder))
	copy(names, shapeOrder)
	return names
}

// ElevationModes returns the registered elevation names in a stable order.
func ElevationModes() []string {
	names := make([]string, 0, len(elevationBuilders))
	for name := range elevationBuilders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Shape is the base shape distance at domain point p.
func (f *Field) Shape(p mgl64.Vec3) float64 {
	return f.shape(p.Mul(PlanetRadius))
}

// Elevation is the raw terrain height at domain point p.
func (f *Field) Elevation(p mgl64.Vec3) float64 {
	return f.elevation(p.Mul(PlanetRadius))
}

// Land is the solid terrain distance: the base shape displaced by elevation.
func (f *Field) Land(p mgl64.Vec3) float64 {
	w := p.Mul(PlanetRadius)
	return f.shape(w) - f.elevation(w)/ElevationRatio
}

// Water is the waterline distance, which is the undisplaced base shape.
func (f *Field) Water(p mgl64.Vec3) float64 {
	return f.shape(p.Mul(PlanetRadius))
}

// Navigation is the navigable surface distance: elevation displaces the
// shape only upward, so water surfaces stay walkable.
func (f *Field) Navigation(p mgl64.Vec3) float64 {
	w := p.Mul(PlanetRadius)
	return f.shape(w) - math.Max(f.elevation(w), 0)/ElevationRatio
}

// CheckFinite validates a field sample, wrapping ErrNotFinite with the
// offending position.
func CheckFinite(v float64, p mgl64.Vec3) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("at (%v, %v, %v): %w", p[0], p[1], p[2], ErrNotFinite)
	}
	return nil
}
