package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels  int           // Total number of pixels in the image
	TotalTiles   int           // Number of tiles generated
	FailedTiles  int           // Tiles that recorded an error
	TotalSamples int           // Primary samples traced by successful tiles
	Workers      int           // Worker goroutines used
	Duration     time.Duration // Wall-clock render time
}

// AverageSamples returns primary samples per pixel over the whole image
func (s RenderStats) AverageSamples() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalSamples) / float64(s.TotalPixels)
}
