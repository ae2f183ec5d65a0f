package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Color        [3]float64             `json:"color"` // Traced color of the pixel center
	Transparent  *TransparentInfo       `json:"transparent,omitempty"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// TransparentInfo describes a transparent surface in front of the opaque hit
type TransparentInfo struct {
	Distance float64    `json:"distance"`
	Color    [3]float64 `json:"color"`
	Alpha    float64    `json:"alpha"`
}

func vec(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp01()
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo describes a Phong material and its texture
func extractMaterialInfo(mat material.Material, tex material.Texture) map[string]interface{} {
	properties := map[string]interface{}{
		"ambient":    vec(mat.Ambient),
		"diffuse":    vec(mat.Diffuse),
		"specular":   vec(mat.Specular),
		"shininess":  mat.Shininess,
		"color":      hexColor(mat.Diffuse),
		"reflective": mat.IsReflective(),
	}

	switch t := tex.(type) {
	case nil:
	case *material.ImageTexture:
		properties["texture"] = fmt.Sprintf("image %dx%d", t.Width, t.Height)
	case *material.CheckerTexture:
		properties["texture"] = fmt.Sprintf("checker %d", t.Checks)
	default:
		properties["texture"] = fmt.Sprintf("%T", t)
	}
	return properties
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Plane:
		properties["point"] = vec(geom.Point)
		properties["normal"] = vec(geom.Normal)
		return "plane", properties

	case *geometry.Sphere:
		properties["center"] = vec(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Ellipsoid:
		properties["center"] = vec(geom.Center)
		properties["semiAxes"] = vec(geom.SemiAxes)
		return "ellipsoid", properties

	case *geometry.Disk:
		properties["center"] = vec(geom.Center)
		properties["normal"] = vec(geom.Normal)
		properties["radius"] = geom.Radius
		return "disk", properties

	case *geometry.Cylinder:
		properties["center"] = vec(geom.Center)
		properties["radius"] = geom.Radius
		properties["height"] = geom.Height
		properties["capped"] = geom.Capped
		return "cylinder", properties

	case *geometry.Triangle:
		properties["vertices"] = [][3]float64{vec(geom.V0), vec(geom.V1), vec(geom.V2)}
		properties["normal"] = vec(geom.Normal())
		return "triangle", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts a ray through the center of pixel (x, y)
func inspectPixel(sc *scene.Scene, depth, x, y int) InspectResponse {
	ray := sc.Camera.GetRay(float64(x)+0.5, float64(y)+0.5)
	rt := renderer.NewRayTracer(sc.Background)
	rt.Logger = nil

	response := InspectResponse{Color: vec(rt.TraceRay(ray, sc, depth, true))}

	if th := sc.FindTransparentHit(ray); th.IsHit() {
		response.Transparent = &TransparentInfo{
			Distance: th.T,
			Color:    vec(th.Color),
			Alpha:    th.Alpha,
		}
	}

	hit := sc.FindOpaqueHit(ray)
	if !hit.IsHit() {
		return response
	}
	hit.FaceForward(ray)

	obj := sc.OpaqueObjects()[hit.Index]
	geometryType, geometryProps := extractGeometryInfo(sc.Shape(obj.Shape))

	response.Hit = true
	response.GeometryType = geometryType
	response.Point = vec(hit.Point)
	response.Normal = vec(hit.Normal)
	response.Distance = hit.T
	response.Properties = map[string]interface{}{
		"material": extractMaterialInfo(hit.Material, hit.Texture),
		"geometry": geometryProps,
		"uv":       [2]float64{hit.U, hit.V},
	}
	return response
}

// handleInspect reports what the primary ray through a pixel hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	pixelX, errX := strconv.Atoi(r.URL.Query().Get("x"))
	pixelY, errY := strconv.Atoi(r.URL.Query().Get("y"))
	if errX != nil || errY != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid pixel coordinates"})
		return
	}
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	sc, err := loaders.ResolveScene(req.Scene, req.Width, req.Height)
	if err != nil {
		writeError(w, sceneErrorStatus(err), err)
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sc, req.Depth, pixelX, pixelY))
}
