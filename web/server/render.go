package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/df07/go-skin-raytracer/pkg/renderer"
)

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "complete", "error"
	Data string `json:"data"` // JSON-encoded data
}

// TileUpdate reports render progress after each finished tile
type TileUpdate struct {
	TilesDone  int `json:"tilesDone"`
	TotalTiles int `json:"totalTiles"`
}

// CompleteUpdate carries the finished image and its statistics
type CompleteUpdate struct {
	ImageData string   `json:"imageData"` // Base64 encoded PNG
	Stats     Stats    `json:"stats"`
	Errors    []string `json:"errors"`
	ElapsedMs int64    `json:"elapsedMs"`
}

// handleRender renders the scene and streams progress, log output and the final image via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx := r.Context()

	// A single writer goroutine owns the ResponseWriter; the handler waits for it before returning
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(ctx, w, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}
	if req.Width*req.Height > largeRenderPx && req.SamplesPerPixel > 16 {
		s.logger.Warn("large image with high samples may render slowly",
			zap.Int("width", req.Width),
			zap.Int("height", req.Height),
			zap.Int("samples_per_pixel", req.SamplesPerPixel),
		)
	}

	consoleChan := make(chan ConsoleMessage, 50)
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(s.logger, renderID, consoleChan)

	startTime := time.Now()
	result := renderer.NewRenderer(webLogger.Named("renderer")).Render(s.scene, req.RenderConfig(), func(done, total int) {
		s.handleTileUpdate(ctx, sseEventChan, done, total)
	})

	// Render has returned, so nothing logs to the console channel any more
	close(consoleChan)
	<-consoleDone

	s.handleComplete(ctx, sseEventChan, result, time.Since(startTime))
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvents writes all SSE events from a single goroutine until the channel closes
func (s *Server) writeSSEEvents(ctx context.Context, w http.ResponseWriter, sseEventChan <-chan SSEEvent) {
	flusher, _ := w.(http.Flusher)

	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}

			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				// Client disconnected during write
				return
			}
			if flusher != nil {
				flusher.Flush()
			}

		case <-ctx.Done():
			return
		}
	}
}

// streamConsoleMessages forwards console messages until consoleChan is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			s.logger.Warn("failed to marshal console message", zap.Error(err))
			continue
		}

		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
		default:
			// Channel full, skip message to avoid blocking
		}
	}
}

// handleTileUpdate sends a progress event. It runs on render workers, so it never blocks.
func (s *Server) handleTileUpdate(ctx context.Context, sseEventChan chan<- SSEEvent, done, total int) {
	data, err := json.Marshal(TileUpdate{TilesDone: done, TotalTiles: total})
	if err != nil {
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "tile", Data: string(data)}:
	case <-ctx.Done():
	default:
	}
}

// handleComplete encodes the final image and sends the completion event
func (s *Server) handleComplete(ctx context.Context, sseEventChan chan<- SSEEvent, result renderer.RenderResult, elapsed time.Duration) {
	imageData, err := imageToBase64PNG(result.Image)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	update := CompleteUpdate{
		ImageData: imageData,
		Stats:     newStats(result.Stats),
		Errors:    make([]string, 0, len(result.Errors)),
		ElapsedMs: elapsed.Milliseconds(),
	}
	for _, tileErr := range result.Errors {
		update.Errors = append(update.Errors, tileErr.Error())
	}

	data, err := json.Marshal(update)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Failed to encode result: %v", err))
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: string(data)}:
	case <-ctx.Done():
	}
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan<- SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
	}
}

func newStats(stats renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:    stats.TotalPixels,
		TotalTiles:     stats.TotalTiles,
		FailedTiles:    stats.FailedTiles,
		TotalSamples:   stats.TotalSamples,
		AverageSamples: stats.AverageSamples(),
		Workers:        stats.Workers,
	}
}
