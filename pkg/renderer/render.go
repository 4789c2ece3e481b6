package renderer

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/df07/go-skin-raytracer/pkg/scene"
)

// ProgressFunc receives the number of tiles completed so far and the total tile count
type ProgressFunc func(done, total int)

// TileError records a tile whose rendering failed
type TileError struct {
	TileIndex int
	Message   string
}

// Error implements the error interface
func (e TileError) Error() string {
	return fmt.Sprintf("tile %d: %s", e.TileIndex, e.Message)
}

// RenderResult is the output of a render: the image plus any per-tile failures
type RenderResult struct {
	Image  *Image
	Errors []TileError
	Stats  RenderStats
}

// Err combines the tile errors into a single error, or nil if every tile succeeded
func (r RenderResult) Err() error {
	var err error
	for _, tileErr := range r.Errors {
		err = multierr.Append(err, tileErr)
	}
	return err
}

// Renderer renders scenes and remembers the tile errors of its most recent render
type Renderer struct {
	logger     *zap.Logger
	renderTile tileRenderFunc

	mu         sync.Mutex
	lastErrors []TileError
}

// NewRenderer creates a renderer. A nil logger disables logging.
func NewRenderer(logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{logger: logger, renderTile: RenderTile}
}

// Render traces the scene into a new image using a tiled parallel renderer.
// Output depends only on the scene and config, not on thread count or scheduling.
func (r *Renderer) Render(sc *scene.Scene, cfg Config, progress ProgressFunc) RenderResult {
	start := time.Now()

	r.mu.Lock()
	r.lastErrors = nil
	r.mu.Unlock()

	img := NewImage(cfg.Width, cfg.Height)
	tiles := GenerateTiles(img.Width, img.Height, cfg.TileSize)

	threads := cfg.ThreadCount
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	pool := NewWorkerPool(tiles, threads)
	pool.render = r.renderTile

	r.logger.Info("render started",
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
		zap.Int("tiles", len(tiles)),
		zap.Int("workers", pool.NumWorkers()),
		zap.Int("samples_per_pixel", cfg.SamplesPerPixel),
		zap.Int("max_bounces", cfg.MaxBounces),
	)

	var errs []TileError
	if len(tiles) > 0 {
		errs = pool.Run(sc, cfg, img, progress)
	}

	for _, tileErr := range errs {
		r.logger.Warn("tile failed",
			zap.Int("tile", tileErr.TileIndex),
			zap.String("error", tileErr.Message),
		)
	}

	stats := RenderStats{
		TotalPixels:  img.Width * img.Height,
		TotalTiles:   len(tiles),
		FailedTiles:  len(errs),
		TotalSamples: successfulSamples(tiles, errs, max(1, cfg.SamplesPerPixel)),
		Workers:      pool.NumWorkers(),
		Duration:     time.Since(start),
	}

	r.logger.Info("render finished",
		zap.Int("failed_tiles", stats.FailedTiles),
		zap.Int("total_samples", stats.TotalSamples),
		zap.Duration("duration", stats.Duration),
	)

	r.mu.Lock()
	r.lastErrors = append([]TileError(nil), errs...)
	r.mu.Unlock()

	return RenderResult{Image: img, Errors: errs, Stats: stats}
}

// LastErrors returns a copy of the tile errors recorded by the most recent render
func (r *Renderer) LastErrors() []TileError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]TileError(nil), r.lastErrors...)
}

// Render renders the scene with a renderer that does not log
func Render(sc *scene.Scene, cfg Config, progress ProgressFunc) RenderResult {
	return NewRenderer(nil).Render(sc, cfg, progress)
}

func successfulSamples(tiles []Tile, errs []TileError, spp int) int {
	failed := make(map[int]bool, len(errs))
	for _, e := range errs {
		failed[e.TileIndex] = true
	}

	total := 0
	for i, tile := range tiles {
		if !failed[i] {
			total += tile.Width() * tile.Height() * spp
		}
	}
	return total
}
