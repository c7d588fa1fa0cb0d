// Package export writes the generated planet to disk: OBJ geometry,
// texture images and the manifest files the game loader reads. One run
// writes one directory under the configured output root.
package export

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"
)

// Manifest describes one generation run for the map manifest file.
type Manifest struct {
	Name      string
	RunID     string
	Seed      int64
	Shape     string
	Elevation string
}

// Writer owns one run's output directory. Geometry and textures go into
// the data subdirectory, manifests into the root.
type Writer struct {
	root   string
	data   string
	format string // "png" or "webp"
}

// NewWriter creates the run directory (and its data subdirectory) under
// outputRoot, replacing any previous run of the same name.
func NewWriter(outputRoot, runName, format string) (*Writer, error) {
	root := filepath.Join(outputRoot, runName)
	if err := os.RemoveAll(root); err != nil {
		return nil, fmt.Errorf("clear previous output: %w", err)
	}
	data := filepath.Join(root, "data")
	if err := os.MkdirAll(data, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &Writer{root: root, data: data, format: format}, nil
}

// Root returns the run directory.
func (w *Writer) Root() string { return w.root }

func (w *Writer) imageName(base string) string {
	return base + "." + w.format
}

// WriteImage encodes img into the data directory under the given base
// name, in the writer's configured format.
func (w *Writer) WriteImage(base string, img image.Image) error {
	path := filepath.Join(w.data, w.imageName(base))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	switch w.format {
	case "webp":
		err = webp.Encode(f, img, &webp.Options{Lossless: true})
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// WriteManifest writes the map manifest into the run root.
func (w *Writer) WriteManifest(m Manifest, chunks int) error {
	f, err := os.Create(filepath.Join(w.root, "unnatural-map.ini"))
	if err != nil {
		return err
	}
	defer f.Close()
	fmt.Fprintln(f, "[map]")
	fmt.Fprintf(f, "name = %s\n", m.Name)
	fmt.Fprintln(f, "version = 0")
	fmt.Fprintln(f, "base = true")
	fmt.Fprintln(f, "[description]")
	fmt.Fprintf(f, "%s (seed %d, %s %s)\n", m.Name, m.Seed, m.Shape, m.Elevation)
	fmt.Fprintln(f, "[authors]")
	fmt.Fprintln(f, "planetgen")
	fmt.Fprintln(f, "[assets]")
	fmt.Fprintln(f, "pack = planet.pack")
	fmt.Fprintln(f, "navigation = planet-navigation.obj")
	fmt.Fprintln(f, "collider = planet-collider.obj")
	fmt.Fprintln(f, "[generator]")
	fmt.Fprintln(f, "name = planetgen")
	fmt.Fprintf(f, "seed = %d\n", m.Seed)
	fmt.Fprintf(f, "shape = %s\n", m.Shape)
	fmt.Fprintf(f, "elevation = %s\n", m.Elevation)
	fmt.Fprintf(f, "run = %s\n", m.RunID)
	fmt.Fprintf(f, "chunks = %d\n", chunks)
	return f.Close()
}

// WriteScene writes the minimal scene file referencing the planet object.
func (w *Writer) WriteScene() error {
	return os.WriteFile(filepath.Join(w.root, "scene.ini"),
		[]byte("[]\nobject = planet.object\n"), 0o644)
}

// WriteScaffolding writes the loader glue files: the material library, the
// per-chunk material descriptors and the object, pack and asset lists.
// Only the listed chunk indices are referenced, so a skipped chunk never
// leaves a dangling file reference.
func (w *Writer) WriteScaffolding(chunkIndices []int) error {
	var mtl, object, asset []byte
	for _, i := range chunkIndices {
		mtl = append(mtl, fmt.Sprintf("newmtl planet-%d\nmap_Kd %s\n",
			i, w.imageName(fmt.Sprintf("planet-albedo-%d", i)))...)
		object = append(object, fmt.Sprintf("planet-render-%d.obj\n", i)...)

		cpm := fmt.Sprintf("[textures]\nalbedo = %s\nspecial = %s\nheight = %s\n",
			w.imageName(fmt.Sprintf("planet-albedo-%d", i)),
			w.imageName(fmt.Sprintf("planet-material-%d", i)),
			w.imageName(fmt.Sprintf("planet-height-%d", i)))
		name := fmt.Sprintf("planet-%d.cpm", i)
		if err := os.WriteFile(filepath.Join(w.data, name), []byte(cpm), 0o644); err != nil {
			return err
		}

		asset = append(asset, fmt.Sprintf("[]\nscheme = texture\nsrgb = true\n%s\n",
			w.imageName(fmt.Sprintf("planet-albedo-%d", i)))...)
		asset = append(asset, fmt.Sprintf("[]\nscheme = texture\n%s\n",
			w.imageName(fmt.Sprintf("planet-material-%d", i)))...)
		asset = append(asset, fmt.Sprintf("[]\nscheme = texture\n%s\n",
			w.imageName(fmt.Sprintf("planet-height-%d", i)))...)
		asset = append(asset, fmt.Sprintf("[]\nscheme = mesh\nplanet-render-%d.obj\n", i)...)
	}
	asset = append(asset, "[]\nscheme = mesh\nplanet-navigation.obj\n"...)
	asset = append(asset, "[]\nscheme = collider\nplanet-collider.obj\n"...)
	asset = append(asset, "[]\nscheme = object\nplanet.object\n"...)
	asset = append(asset, "[]\nscheme = pack\nplanet.pack\n"...)

	files := []struct {
		name string
		body []byte
	}{
		{"planet.mtl", mtl},
		{"planet.object", append([]byte("[]\n"), object...)},
		{"planet.pack", []byte("[]\nplanet.object\n")},
		{"planet.asset", asset},
	}
	for _, fl := range files {
		if err := os.WriteFile(filepath.Join(w.data, fl.name), fl.body, 0o644); err != nil {
			return err
		}
	}
	return nil
}
