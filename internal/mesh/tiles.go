package mesh

import "github.com/go-gl/mathgl/mgl64"

// TileProperty describes traversability at one navigation-mesh vertex.
// It is consumed by the external doodad placement step.
type TileProperty struct {
	// Difficulty is the traversal cost factor, nominally in [0,1].
	Difficulty float64
	// Type is a small terrain category, 0..7.
	Type uint8
}

// TileClassifier maps a surface sample to its traversability.
type TileClassifier func(position, normal mgl64.Vec3) (difficulty float64, terrainType uint8)

// ComputeTileProperties evaluates the classifier at every vertex of the
// navigation mesh, in vertex order.
func ComputeTileProperties(m *Mesh, classify TileClassifier) []TileProperty {
	props := make([]TileProperty, len(m.Vertices))
	for i, v := range m.Vertices {
		difficulty, terrainType := classify(v.Position, v.Normal)
		props[i] = TileProperty{Difficulty: difficulty, Type: terrainType}
	}
	return props
}
