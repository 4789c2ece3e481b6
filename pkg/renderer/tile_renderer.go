package renderer

import (
	"fmt"
	"image"
	"math/rand/v2"

	"github.com/df07/go-skin-raytracer/pkg/core"
	"github.com/df07/go-skin-raytracer/pkg/scene"
)

// tileStream selects the random stream used for per-tile sampling
const tileStream = 0x711e

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Row-major tile index
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// X returns the tile's left pixel column
func (t Tile) X() int { return t.Bounds.Min.X }

// Y returns the tile's top pixel row
func (t Tile) Y() int { return t.Bounds.Min.Y }

// Width returns the tile width in pixels
func (t Tile) Width() int { return t.Bounds.Dx() }

// Height returns the tile height in pixels
func (t Tile) Height() int { return t.Bounds.Dy() }

// Seed returns the tile's random seed, derived from its position in the image
func (t Tile) Seed(imageWidth int) uint64 {
	return uint64(t.Y()*imageWidth + t.X())
}

// GenerateTiles partitions the image into a row-major grid of tiles.
// Edge tiles are clipped to the image; invalid input yields no tiles.
func GenerateTiles(width, height, tileSize int) []Tile {
	if width <= 0 || height <= 0 || tileSize <= 0 {
		return nil
	}

	tilesX := (width-1)/tileSize + 1 // Ceiling division without overflow
	tilesY := (height-1)/tileSize + 1
	tiles := make([]Tile, 0, tilesX*tilesY)

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, Tile{
				ID:     len(tiles),
				Bounds: image.Rect(x0, y0, x1, y1),
			})
		}
	}

	return tiles
}

// RenderTile supersamples every pixel of the tile and writes the averages into output.
// It only writes inside the tile's bounds, so tiles can render concurrently.
func RenderTile(tile Tile, sc *scene.Scene, cfg Config, output *Image) error {
	if tile.Bounds.Empty() || !tile.Bounds.In(output.Bounds()) {
		return fmt.Errorf("tile %v outside image bounds %v", tile.Bounds, output.Bounds())
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", cfg.Width, cfg.Height)
	}

	spp := max(1, cfg.SamplesPerPixel)
	invSamples := 1.0 / float64(spp)
	random := rand.New(rand.NewPCG(tile.Seed(cfg.Width), tileStream))
	focus := focusDistance(sc.Camera, cfg)

	for py := tile.Bounds.Min.Y; py < tile.Bounds.Max.Y; py++ {
		for px := tile.Bounds.Min.X; px < tile.Bounds.Max.X; px++ {
			accum := core.Color{}

			for s := 0; s < spp; s++ {
				jx, jy := 0.5, 0.5
				if spp > 1 {
					jx = random.Float64()
					jy = random.Float64()
				}

				u := (float64(px) + jx) / float64(cfg.Width)
				v := (float64(py) + jy) / float64(cfg.Height)

				ray := primaryRay(sc.Camera, u, v, cfg, focus, random)
				accum = accum.Add(traceRay(ray, sc, 0, cfg.MaxBounces, cfg.Shading, &cfg, u, v))
			}

			output.SetPixel(px, py, accum.Multiply(invSamples))
		}
	}

	return nil
}
