package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Faultbox/planetgen/internal/mesh"
)

// WriteRenderChunk writes one render chunk as an OBJ with positions,
// normals and atlas UVs, bound to the chunk's material.
func (w *Writer) WriteRenderChunk(index int, m *mesh.Mesh) error {
	path := filepath.Join(w.data, fmt.Sprintf("planet-render-%d.obj", index))
	return writeObj(path, func(out *bufio.Writer) {
		fmt.Fprintln(out, "mtllib planet.mtl")
		fmt.Fprintf(out, "o render-%d\n", index)
		fmt.Fprintf(out, "usemtl planet-%d\n", index)
		for _, v := range m.Vertices {
			fmt.Fprintf(out, "v %g %g %g\n", v.Position[0], v.Position[1], v.Position[2])
		}
		for _, v := range m.Vertices {
			fmt.Fprintf(out, "vn %g %g %g\n", v.Normal[0], v.Normal[1], v.Normal[2])
		}
		for _, v := range m.Vertices {
			fmt.Fprintf(out, "vt %g %g\n", v.UV[0], v.UV[1])
		}
		for t := 0; t < m.TriangleCount(); t++ {
			a := m.Indices[t*3] + 1
			b := m.Indices[t*3+1] + 1
			c := m.Indices[t*3+2] + 1
			fmt.Fprintf(out, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
		}
	})
}

// WriteNavigationMesh writes the navigation OBJ. The texture coordinate of
// each vertex carries its tile properties instead of an atlas position.
func (w *Writer) WriteNavigationMesh(m *mesh.Mesh, props []mesh.TileProperty) error {
	if len(props) != len(m.Vertices) {
		return fmt.Errorf("navigation export: %d tile properties for %d vertices",
			len(props), len(m.Vertices))
	}
	path := filepath.Join(w.data, "planet-navigation.obj")
	return writeObj(path, func(out *bufio.Writer) {
		fmt.Fprintln(out, "o navigation")
		for _, v := range m.Vertices {
			fmt.Fprintf(out, "v %g %g %g\n", v.Position[0], v.Position[1], v.Position[2])
		}
		for _, v := range m.Vertices {
			fmt.Fprintf(out, "vn %g %g %g\n", v.Normal[0], v.Normal[1], v.Normal[2])
		}
		for _, p := range props {
			fmt.Fprintf(out, "vt %g %g\n", p.Difficulty, (float64(p.Type)+0.5)/8)
		}
		for t := 0; t < m.TriangleCount(); t++ {
			a := m.Indices[t*3] + 1
			b := m.Indices[t*3+1] + 1
			c := m.Indices[t*3+2] + 1
			fmt.Fprintf(out, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
		}
	})
}

// WriteCollider writes the collision OBJ, positions and faces only.
func (w *Writer) WriteCollider(m *mesh.Mesh) error {
	path := filepath.Join(w.data, "planet-collider.obj")
	return writeObj(path, func(out *bufio.Writer) {
		fmt.Fprintln(out, "o collider")
		for _, v := range m.Vertices {
			fmt.Fprintf(out, "v %g %g %g\n", v.Position[0], v.Position[1], v.Position[2])
		}
		for t := 0; t < m.TriangleCount(); t++ {
			fmt.Fprintf(out, "f %d %d %d\n",
				m.Indices[t*3]+1, m.Indices[t*3+1]+1, m.Indices[t*3+2]+1)
		}
	})
}

func writeObj(path string, body func(out *bufio.Writer)) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	out := bufio.NewWriterSize(f, 1<<16)
	body(out)
	if err := out.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
