package renderer

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-skin-raytracer/pkg/scene"
)

// tileRenderFunc renders one tile into the shared image
type tileRenderFunc func(tile Tile, sc *scene.Scene, cfg Config, output *Image) error

// WorkerPool renders a fixed set of tiles in parallel. Workers claim tiles from
// an atomic counter so every tile is rendered exactly once.
type WorkerPool struct {
	tiles      []Tile
	numWorkers int
	render     tileRenderFunc

	next      atomic.Int64 // Next tile index to claim
	completed atomic.Int64 // Tiles finished, successfully or not

	mu     sync.Mutex // Guards errors, completion and the progress callback
	errors []TileError
}

// NewWorkerPool creates a pool with up to numWorkers goroutines, never more than there are tiles
func NewWorkerPool(tiles []Tile, numWorkers int) *WorkerPool {
	numWorkers = min(max(numWorkers, 1), max(len(tiles), 1))
	return &WorkerPool{
		tiles:      tiles,
		numWorkers: numWorkers,
		render:     RenderTile,
	}
}

// NumWorkers returns the number of goroutines the pool runs
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// Run renders every tile into output and blocks until all workers have joined.
// Tile failures are recorded and returned sorted by tile index; they never abort other tiles.
func (wp *WorkerPool) Run(sc *scene.Scene, cfg Config, output *Image, progress ProgressFunc) []TileError {
	var g errgroup.Group

	for range wp.numWorkers {
		g.Go(func() error {
			for {
				index := int(wp.next.Add(1) - 1)
				if index >= len(wp.tiles) {
					return nil
				}

				if err := wp.renderSafely(wp.tiles[index], sc, cfg, output); err != nil {
					wp.recordError(TileError{TileIndex: index, Message: err.Error()})
				}

				wp.tileDone(progress)
			}
		})
	}

	// Workers never return errors; Wait is the join point
	_ = g.Wait()

	sort.Slice(wp.errors, func(i, j int) bool {
		return wp.errors[i].TileIndex < wp.errors[j].TileIndex
	})
	return wp.errors
}

// renderSafely converts a panic during tile rendering into an error
func (wp *WorkerPool) renderSafely(tile Tile, sc *scene.Scene, cfg Config, output *Image) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return wp.render(tile, sc, cfg, output)
}

func (wp *WorkerPool) recordError(tileErr TileError) {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	wp.errors = append(wp.errors, tileErr)
}

// tileDone counts a finished tile and reports progress. The callback runs under
// the lock, so calls are serialized and see strictly increasing counts.
func (wp *WorkerPool) tileDone(progress ProgressFunc) {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	done := int(wp.completed.Add(1))
	if progress != nil {
		progress(done, len(wp.tiles))
	}
}

// Completed returns the number of tiles finished so far
func (wp *WorkerPool) Completed() int {
	return int(wp.completed.Load())
}
