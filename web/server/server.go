package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/golang/glog"
	"golang.org/x/xerrors"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	minSize       = 16
	maxSize       = 2000
	maxDepth      = 16
	maxSamples    = 8
	defaultWidth  = 400
	defaultHeight = 300
	defaultDepth  = 4
)

// Server handles web requests for the ray tracer
type Server struct {
	port int
	mux  *http.ServeMux
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	s := &Server{port: port, mux: http.NewServeMux()}

	s.mux.Handle("/", http.FileServer(http.Dir("static/")))
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/render/stream", s.handleRenderStream)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)

	return s
}

// Handler returns the server's request router
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	glog.Infof("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string `json:"scene"`   // Built-in name or file:<name>
	Width   int    `json:"width"`   // Image width
	Height  int    `json:"height"`  // Image height
	Depth   int    `json:"depth"`   // Reflection bounces
	Samples int    `json:"samples"` // Subpixel samples per axis
}

// ProgressUpdate is one pass of a progressive render sent via SSE
type ProgressUpdate struct {
	PassNumber  int    `json:"passNumber"`
	TotalPasses int    `json:"totalPasses"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG
	Stats       Stats  `json:"stats"`
	IsComplete  bool   `json:"isComplete"`
	ElapsedMs   int64  `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels     int   `json:"totalPixels"`
	SamplesPerPixel int   `json:"samplesPerPixel"`
	TotalRays       int   `json:"totalRays"`
	Workers         int   `json:"workers"`
	DurationMs      int64 `json:"durationMs"`
}

func newStats(rs renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:     rs.TotalPixels,
		SamplesPerPixel: rs.SamplesPerPixel,
		TotalRays:       rs.TotalRays,
		Workers:         rs.Workers,
		DurationMs:      rs.Duration.Milliseconds(),
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and file scenes, grouped
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	all, err := scene.ListAllScenes()
	if err != nil {
		glog.Errorf("Listing scenes: %v", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

// handleRender renders a single frame and responds with a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sc, err := loaders.ResolveScene(req.Scene, req.Width, req.Height)
	if err != nil {
		writeError(w, sceneErrorStatus(err), err)
		return
	}

	rt := renderer.NewRayTracer(sc.Background)
	fb := renderer.NewImageFrameBuffer(req.Width, req.Height)
	stats, err := rt.RenderScene(r.Context(), fb, req.Depth, sc, req.Samples)
	if err != nil {
		glog.Warningf("Render of %q aborted: %v", req.Scene, err)
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	var buf bytes.Buffer
	if err := fb.EncodePNG(&buf); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Render-Stats", stats.String())
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleRenderStream renders passes with 1..samples subpixel samples per axis
// and streams each one via SSE, together with renderer log lines.
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sc, err := loaders.ResolveScene(req.Scene, req.Width, req.Height)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Scene error: %v", err))
		return
	}

	consoleChan := make(chan ConsoleMessage, 64)
	rt := renderer.NewRayTracer(sc.Background)
	rt.Logger = NewWebLogger(req.Scene, consoleChan)

	ctx := r.Context()
	startTime := time.Now()
	for pass := 1; pass <= req.Samples; pass++ {
		fb := renderer.NewImageFrameBuffer(req.Width, req.Height)
		stats, err := rt.RenderScene(ctx, fb, req.Depth, sc, pass)
		if err != nil {
			glog.Warningf("Streaming render of %q stopped: %v", req.Scene, err)
			s.sendSSEError(w, fmt.Sprintf("Render error: %v", err))
			return
		}

		if err := s.drainConsole(w, consoleChan); err != nil {
			return
		}

		imageData, err := imageToBase64PNG(fb.Image())
		if err != nil {
			s.sendSSEError(w, fmt.Sprintf("Encode error: %v", err))
			return
		}
		update := ProgressUpdate{
			PassNumber:  pass,
			TotalPasses: req.Samples,
			ImageData:   imageData,
			Stats:       newStats(stats),
			IsComplete:  pass == req.Samples,
			ElapsedMs:   time.Since(startTime).Milliseconds(),
		}
		if err := s.sendSSEUpdate(w, update); err != nil {
			glog.Warningf("Streaming render of %q: %v", req.Scene, err)
			return
		}
	}

	s.sendSSEEvent(w, "complete", "Rendering completed")
}

// handleSceneConfig returns the defaults and limits of the render parameters
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}
	sc, err := loaders.ResolveScene(sceneName, defaultWidth, defaultHeight)
	if err != nil {
		writeError(w, sceneErrorStatus(err), err)
		return
	}

	type limit struct {
		Min int `json:"min"`
		Max int `json:"max"`
	}
	response := map[string]interface{}{
		"scene":  sceneName,
		"name":   sc.Name,
		"lights": len(sc.Lights()),
		"defaults": RenderRequest{
			Scene:   sceneName,
			Width:   defaultWidth,
			Height:  defaultHeight,
			Depth:   defaultDepth,
			Samples: 1,
		},
		"limits": map[string]limit{
			"width":   {minSize, maxSize},
			"height":  {minSize, maxSize},
			"depth":   {0, maxDepth},
			"samples": {1, maxSamples},
		},
	}
	writeJSON(w, http.StatusOK, response)
}

// parseRenderRequest parses and validates render query parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", defaultWidth, minSize, maxSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", defaultHeight, minSize, maxSize); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(values, "depth", defaultDepth, 0, maxDepth); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 1, 1, maxSamples); err != nil {
		return nil, err
	}

	if req.Width*req.Height > 800*600 && req.Samples > 2 {
		glog.Warningf("Render warning: %dx%d with %d² samples may render slowly", req.Width, req.Height, req.Samples)
	}
	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	value := values.Get(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, xerrors.Errorf("invalid %s: %s", key, value)
	}
	if parsed < min || parsed > max {
		return 0, xerrors.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
	}
	return parsed, nil
}

func sceneErrorStatus(err error) int {
	if xerrors.Is(err, scene.ErrUnknownScene) {
		return http.StatusNotFound
	}
	if xerrors.Is(err, loaders.ErrInvalidScene) || xerrors.Is(err, scene.ErrNoCamera) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		glog.Errorf("Writing JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// drainConsole forwards buffered log lines as "console" events
func (s *Server) drainConsole(w http.ResponseWriter, ch <-chan ConsoleMessage) error {
	for {
		select {
		case msg := <-ch:
			data, err := json.Marshal(msg)
			if err != nil {
				return err
			}
			if err := s.sendSSEEvent(w, "console", string(data)); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// sendSSEUpdate sends a progress update via SSE
func (s *Server) sendSSEUpdate(w http.ResponseWriter, update ProgressUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return err
	}
	return s.sendSSEEvent(w, "progress", string(data))
}

// sendSSEError sends an error via SSE
func (s *Server) sendSSEError(w http.ResponseWriter, message string) error {
	return s.sendSSEEvent(w, "error", message)
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if flusher, ok := w.(http.Flusher); ok {
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
		return nil
	}
	return xerrors.New("streaming not supported")
}
