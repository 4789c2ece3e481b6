package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/df07/go-skin-raytracer/pkg/loaders"
	"github.com/df07/go-skin-raytracer/pkg/renderer"
	"github.com/df07/go-skin-raytracer/pkg/scene"
	"github.com/df07/go-skin-raytracer/pkg/shading"
)

// Parameter limits shared by request parsing and the scene-config endpoint
const (
	minImageSize  = 16
	maxImageSize  = 2000
	maxSamples    = 256
	maxBounces    = 10
	maxAperture   = 5.0
	previewTile   = 32
	largeRenderPx = 800 * 600
)

// Server serves renders of a single scene over HTTP
type Server struct {
	port   int
	scene  *scene.Scene
	logger *zap.Logger
}

// NewServer creates a web server for the given scene. A nil logger disables logging.
func NewServer(port int, sc *scene.Scene, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{port: port, scene: sc, logger: logger}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	SamplesPerPixel int     `json:"samplesPerPixel"`
	MaxBounces      int     `json:"maxBounces"`
	SoftShadows     bool    `json:"softShadows"`
	AO              bool    `json:"ao"`
	DOF             bool    `json:"dof"`
	Aperture        float64 `json:"aperture"`
	Gradient        bool    `json:"gradient"`
	Shading         string  `json:"shading"` // "default" or "enhanced"
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalTiles     int     `json:"totalTiles"`
	FailedTiles    int     `json:"failedTiles"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	Workers        int     `json:"workers"`
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/image", s.handleImage)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting web server", zap.String("addr", addr))
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleImage renders synchronously and responds with the PNG
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	result := renderer.NewRenderer(s.logger.Named("renderer")).Render(s.scene, req.RenderConfig(), nil)

	data, err := encodePNG(result.Image)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Failed-Tiles", strconv.Itoa(result.Stats.FailedTiles))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// parseRenderRequest parses and validates the query parameters of a render request
func parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{}

	var err error
	if req.Width, err = parseIntParam(query, "width", 256, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 256, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(query, "spp", 1, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxBounces, err = parseIntParam(query, "bounces", 3, 0, maxBounces); err != nil {
		return nil, err
	}
	if req.SoftShadows, err = parseBoolParam(query, "softShadows", false); err != nil {
		return nil, err
	}
	if req.AO, err = parseBoolParam(query, "ao", false); err != nil {
		return nil, err
	}
	if req.DOF, err = parseBoolParam(query, "dof", false); err != nil {
		return nil, err
	}
	if req.Aperture, err = parseFloatParam(query, "aperture", 0.5, 0, maxAperture); err != nil {
		return nil, err
	}
	if req.Gradient, err = parseBoolParam(query, "gradient", true); err != nil {
		return nil, err
	}

	req.Shading = query.Get("shading")
	switch req.Shading {
	case "":
		req.Shading = "default"
	case "default", "enhanced":
	default:
		return nil, fmt.Errorf("unknown shading preset: %s", req.Shading)
	}

	return req, nil
}

// RenderConfig converts the request into a renderer configuration
func (req *RenderRequest) RenderConfig() renderer.Config {
	cfg := renderer.DefaultConfig()
	cfg.Width = req.Width
	cfg.Height = req.Height
	cfg.SamplesPerPixel = req.SamplesPerPixel
	cfg.MaxBounces = req.MaxBounces
	cfg.TileSize = previewTile
	cfg.SoftShadows = req.SoftShadows
	cfg.AOEnabled = req.AO
	cfg.DOFEnabled = req.DOF
	cfg.Aperture = req.Aperture
	cfg.GradientBackground = req.Gradient
	if req.Shading == "enhanced" {
		cfg.Shading = shading.EnhancedParams()
	}
	return cfg
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func parseBoolParam(values url.Values, key string, defaultValue bool) (bool, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// handleSceneConfig returns the render defaults and parameter limits
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	defaults := renderer.DefaultConfig()

	response := map[string]interface{}{
		"meshes":    len(s.scene.Meshes),
		"triangles": s.scene.TriangleCount(),
		"defaults": map[string]interface{}{
			"width":           defaults.Width,
			"height":          defaults.Height,
			"samplesPerPixel": defaults.SamplesPerPixel,
			"maxBounces":      defaults.MaxBounces,
			"aperture":        defaults.Aperture,
			"gradient":        defaults.GradientBackground,
			"shading":         "default",
		},
		"limits": map[string]interface{}{
			"width":           map[string]int{"min": minImageSize, "max": maxImageSize},
			"height":          map[string]int{"min": minImageSize, "max": maxImageSize},
			"samplesPerPixel": map[string]int{"min": 1, "max": maxSamples},
			"maxBounces":      map[string]int{"min": 0, "max": maxBounces},
			"aperture":        map[string]float64{"min": 0, "max": maxAperture},
		},
	}

	writeJSON(w, http.StatusOK, response)
}

func encodePNG(img *renderer.Image) ([]byte, error) {
	encoded, err := loaders.EncodeImage(img)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, encoded); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// imageToBase64PNG converts a rendered image to base64-encoded PNG
func imageToBase64PNG(img *renderer.Image) (string, error) {
	data, err := encodePNG(img)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
