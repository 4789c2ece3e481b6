package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/df07/go-skin-raytracer/pkg/geometry"
	"github.com/df07/go-skin-raytracer/pkg/scene"
	"github.com/df07/go-skin-raytracer/pkg/shading"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit          bool       `json:"hit"`
	Mesh         int        `json:"mesh"` // Index into the scene's meshes, -1 on a miss
	Face         string     `json:"face,omitempty"`
	IsOuterLayer bool       `json:"isOuterLayer"`
	Point        [3]float64 `json:"point"`
	Normal       [3]float64 `json:"normal"`
	Distance     float64    `json:"distance"`
	Color        string     `json:"color,omitempty"` // Sampled texel as #rrggbb
	Alpha        float64    `json:"alpha"`
	InShadow     bool       `json:"inShadow"`
}

// inspectPixel casts the pinhole ray through the centre of a pixel and describes the first hit
func inspectPixel(sc *scene.Scene, width, height, pixelX, pixelY int) InspectResponse {
	u := (float64(pixelX) + 0.5) / float64(width)
	v := (float64(pixelY) + 0.5) / float64(height)
	ray := sc.Camera.GenerateRay(u, v, float64(width)/float64(height))

	hit := geometry.IntersectScene(ray, sc)
	if !hit.Hit {
		return InspectResponse{Mesh: -1}
	}

	// IntersectScene does not report which mesh was hit, so find the one at the same distance
	meshIndex := -1
	for i := range sc.Meshes {
		if meshHit := geometry.IntersectMesh(ray, &sc.Meshes[i]); meshHit.Hit && meshHit.T == hit.T {
			meshIndex = i
			break
		}
	}

	texel := colorful.Color{R: hit.TextureColor.R, G: hit.TextureColor.G, B: hit.TextureColor.B}

	return InspectResponse{
		Hit:          true,
		Mesh:         meshIndex,
		Face:         hit.Face.String(),
		IsOuterLayer: hit.IsOuterLayer,
		Point:        [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z},
		Normal:       [3]float64{hit.Normal.X, hit.Normal.Y, hit.Normal.Z},
		Distance:     hit.T,
		Color:        texel.Clamped().Hex(),
		Alpha:        hit.TextureColor.A,
		InShadow:     shading.IsInShadow(hit.Point, hit.Normal, sc.Light.Position, sc),
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	width, err := parseIntParam(query, "width", 256, minImageSize, maxImageSize)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	height, err := parseIntParam(query, "height", 256, minImageSize, maxImageSize)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	pixelX, err := strconv.Atoi(query.Get("x"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(query.Get("y"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Pixel (%d, %d) out of bounds", pixelX, pixelY))
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(s.scene, width, height, pixelX, pixelY))
}
