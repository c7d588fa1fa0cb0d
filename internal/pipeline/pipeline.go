// Package pipeline orchestrates a full generation run: field resolution,
// surface extraction, the three mesh variants, per-chunk texturing and
// export.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/planetgen/internal/atlas"
	"github.com/Faultbox/planetgen/internal/config"
	"github.com/Faultbox/planetgen/internal/export"
	"github.com/Faultbox/planetgen/internal/field"
	"github.com/Faultbox/planetgen/internal/logger"
	"github.com/Faultbox/planetgen/internal/material"
	"github.com/Faultbox/planetgen/internal/mesh"
	planetname "github.com/Faultbox/planetgen/internal/name"
	"github.com/Faultbox/planetgen/internal/texture"
)

// ErrAllChunksFailed reports that no render chunk survived texturing.
// Individual chunk failures are tolerated, a run with no usable render
// geometry is not.
var ErrAllChunksFailed = errors.New("all render chunks failed")

// Result summarizes a finished run.
type Result struct {
	Name                string
	RunID               string
	Seed                int64
	Shape               string
	Elevation           string
	Dir                 string
	Chunks              int
	ChunksFailed        int
	RenderTriangles     int
	NavigationTriangles int
	CollisionTriangles  int
	Elapsed             time.Duration
}

// Run executes the whole pipeline for one configuration. The base surface
// is extracted once; the render, navigation and collision variants then
// proceed concurrently on their own copies.
func Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	start := time.Now()

	seed := cfg.Planet.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	f, err := field.New(cfg.Planet.Shape, cfg.Planet.Elevation, seed)
	if err != nil {
		return nil, err
	}

	mapName := cfg.Planet.Name
	if mapName == "" {
		mapName = planetname.Generate(rng)
	}
	runID := uuid.NewString()
	logger.Info("starting run",
		zap.String("name", mapName),
		zap.String("run", runID),
		zap.Int64("seed", seed),
		zap.String("shape", f.ShapeName),
		zap.String("elevation", f.ElevationName))

	writer, err := export.NewWriter(cfg.Output.Dir, runDirName(mapName, seed), cfg.Textures.Format)
	if err != nil {
		return nil, err
	}

	logger.Info("sampling density grid", zap.Int("resolution", cfg.Mesh.Resolution))
	grid, err := mesh.SampleGrid(f.Land, cfg.Mesh.Resolution)
	if err != nil {
		return nil, err
	}

	logger.Info("extracting surface")
	base, err := mesh.Extract(grid)
	if err != nil {
		return nil, err
	}
	scale := base.Normalize()
	logger.Info("surface extracted",
		zap.Int("triangles", base.TriangleCount()),
		zap.Int("vertices", len(base.Vertices)),
		zap.Float64("scale", scale))

	surface := material.New(f, seed)
	res := &Result{
		Name:      mapName,
		RunID:     runID,
		Seed:      seed,
		Shape:     f.ShapeName,
		Elevation: f.ElevationName,
		Dir:       writer.Root(),
	}

	var chunkIndices []int
	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		nav := base.Clone()
		mesh.Simplify(nav, cfg.Mesh.NavigationTriangles)
		res.NavigationTriangles = nav.TriangleCount()
		logger.Info("navigation mesh simplified", zap.Int("triangles", nav.TriangleCount()))
		props := mesh.ComputeTileProperties(nav, tileClassifier(surface, nav.Scale))
		if err := writer.WriteNavigationMesh(nav, props); err != nil {
			return fmt.Errorf("navigation: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		col := base.Clone()
		mesh.Simplify(col, cfg.Mesh.CollisionTriangles)
		res.CollisionTriangles = col.TriangleCount()
		logger.Info("collision mesh simplified", zap.Int("triangles", col.TriangleCount()))
		if err := writer.WriteCollider(col); err != nil {
			return fmt.Errorf("collision: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		rend := base.Clone()
		mesh.Simplify(rend, cfg.Mesh.RenderTriangles)
		res.RenderTriangles = rend.TriangleCount()
		chunks := mesh.Split(rend, cfg.Mesh.ChunkTriangles, cfg.Mesh.ChunkVertices)
		res.Chunks = len(chunks)
		logger.Info("render mesh split",
			zap.Int("triangles", rend.TriangleCount()),
			zap.Int("chunks", len(chunks)))

		ok, failed, err := textureChunks(gctx, cfg, writer, surface, chunks)
		if err != nil {
			return err
		}
		chunkIndices = ok
		res.ChunksFailed = failed
		if len(chunks) > 0 && len(ok) == 0 {
			return ErrAllChunksFailed
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	if err := writer.WriteManifest(export.Manifest{
		Name:      mapName,
		RunID:     runID,
		Seed:      seed,
		Shape:     f.ShapeName,
		Elevation: f.ElevationName,
	}, len(chunkIndices)); err != nil {
		return nil, err
	}
	if err := writer.WriteScene(); err != nil {
		return nil, err
	}
	if err := writer.WriteScaffolding(chunkIndices); err != nil {
		return nil, err
	}

	res.Elapsed = time.Since(start)
	logger.Info("run finished",
		zap.String("dir", res.Dir),
		zap.Int("chunks", len(chunkIndices)),
		zap.Int("chunksFailed", res.ChunksFailed),
		zap.Duration("elapsed", res.Elapsed))
	return res, nil
}

// textureChunks parameterizes, rasterizes and exports every render chunk
// on a bounded worker pool. A failing chunk is logged and skipped; only a
// context cancellation aborts the pool.
func textureChunks(ctx context.Context, cfg *config.Config, writer *export.Writer, surface *material.Surface, chunks []*mesh.Mesh) (ok []int, failed int, err error) {
	var (
		mu   sync.Mutex
		done atomic.Int64
	)
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.NumCPU())

	for i, chunk := range chunks {
		i, chunk := i, chunk
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := textureChunk(cfg, writer, surface, i, chunk); err != nil {
				logger.Warn("chunk failed",
					zap.Int("chunk", i),
					zap.Int("triangles", chunk.TriangleCount()),
					zap.Error(err))
				mu.Lock()
				failed++
				mu.Unlock()
			} else {
				mu.Lock()
				ok = append(ok, i)
				mu.Unlock()
			}
			logger.Info("chunk processed",
				zap.Int("chunk", i),
				zap.Int64("done", done.Add(1)),
				zap.Int("total", len(chunks)))
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, 0, err
	}
	sort.Ints(ok)
	return ok, failed, nil
}

// textureChunk runs the full texture synthesis for one chunk: UV layout,
// rasterization through the surface classifier, inpainting and export.
func textureChunk(cfg *config.Config, writer *export.Writer, surface *material.Surface, index int, chunk *mesh.Mesh) error {
	layout, err := atlas.Parameterize(chunk, cfg.Textures.TexelsPerUnit, cfg.Textures.Padding)
	if err != nil {
		return err
	}

	over := cfg.Textures.Oversample
	if over < 1 {
		over = 1
	}
	w, h := layout.Width*over, layout.Height*over

	albedo := texture.New(w, h, 3)
	special := texture.New(w, h, 2)
	height := texture.New(w, h, 1)

	invScale := 1.0
	if chunk.Scale != 0 {
		invScale = 1 / chunk.Scale
	}
	mask := texture.Rasterize(layout.Mesh, w, h, func(frag texture.Fragment) {
		tile := material.Tile{
			Position: frag.Position.Mul(invScale),
			Normal:   frag.Normal,
		}
		surface.Sample(&tile)
		albedo.Set(frag.X, frag.Y,
			float32(tile.Albedo[0]), float32(tile.Albedo[1]), float32(tile.Albedo[2]))
		special.Set(frag.X, frag.Y, float32(tile.Roughness), float32(tile.Metallic))
		height.Set(frag.X, frag.Y, float32(tile.Height))
	})

	texture.Inpaint(mask, texture.InpaintPasses, albedo, special, height)
	albedo.FlipVertical()
	special.FlipVertical()
	height.FlipVertical()

	factor := 1
	if cfg.Textures.Downscale {
		factor = over
	}
	images := map[string]*texture.Image{
		fmt.Sprintf("planet-albedo-%d", index):   albedo,
		fmt.Sprintf("planet-material-%d", index): special,
		fmt.Sprintf("planet-height-%d", index):   height,
	}
	for base, im := range images {
		if err := writer.WriteImage(base, texture.Downscale(im.ToNRGBA(), factor)); err != nil {
			return err
		}
	}
	return writer.WriteRenderChunk(index, layout.Mesh)
}

// tileClassifier adapts the surface classifier to navigation tile
// evaluation. Positions arrive in normalized mesh space and are mapped
// back to field domain coordinates through the recorded scale.
func tileClassifier(surface *material.Surface, scale float64) mesh.TileClassifier {
	inv := 1.0
	if scale != 0 {
		inv = 1 / scale
	}
	return func(position, normal mgl64.Vec3) (float64, uint8) {
		tile := material.Tile{Position: position.Mul(inv), Normal: normal}
		surface.Sample(&tile)
		return tile.Difficulty, uint8(tile.Type)
	}
}

// runDirName builds a filesystem-safe directory name for the run.
func runDirName(mapName string, seed int64) string {
	slug := strings.ToLower(mapName)
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		default:
			return -1
		}
	}, slug)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "planet"
	}
	return fmt.Sprintf("%s-%d", slug, seed)
}
