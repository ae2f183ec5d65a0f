package renderer

import (
	"context"
	"runtime"
	"time"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/xerrors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// DefaultTileSize is the edge length of the square tiles a render is split into
const DefaultTileSize = 32

// RayTracer renders scenes with recursive Whitted ray tracing
type RayTracer struct {
	DefaultColor core.Vec3   // Color of rays that hit nothing
	TileSize     int         // Tile edge in pixels (0 = DefaultTileSize)
	Workers      int         // Parallel tiles (0 = use CPU count)
	Logger       core.Logger // nil disables the summary line
}

// NewRayTracer creates a ray tracer that paints misses with defaultColor
func NewRayTracer(defaultColor core.Vec3) *RayTracer {
	return &RayTracer{
		DefaultColor: defaultColor,
		TileSize:     DefaultTileSize,
		Logger:       NewDefaultLogger(),
	}
}

// TraceRay returns the color seen along ray. depth is the number of mirror
// bounces still allowed; transparent objects are only considered for primary rays.
func (rt *RayTracer) TraceRay(ray core.Ray, s *scene.Scene, depth int, isPrimary bool) core.Vec3 {
	opaque := s.FindOpaqueHit(ray)

	if isPrimary {
		trans := s.FindTransparentHit(ray)
		if trans.IsHit() && trans.T < opaque.T {
			behind := rt.DefaultColor
			if opaque.IsHit() {
				behind = rt.shade(ray, opaque, s, depth)
			}
			return trans.Color.Multiply(trans.Alpha).
				Add(behind.Multiply(1 - trans.Alpha)).
				Clamp01()
		}
	}

	if opaque.IsHit() {
		return rt.shade(ray, opaque, s, depth).Clamp01()
	}
	return rt.DefaultColor.Clamp01()
}

// shade computes local illumination at an opaque hit and, depth permitting,
// adds the mirror reflection.
func (rt *RayTracer) shade(ray core.Ray, hit scene.OpaqueHit, s *scene.Scene, depth int) core.Vec3 {
	hit.FaceForward(ray)

	viewer := ray.Origin
	if s.Camera != nil {
		viewer = s.Camera.Frame().Origin
	}

	occluders := s.Opaque()
	var color core.Vec3
	for _, light := range s.Lights() {
		if !light.On {
			continue
		}
		inShadow := light.PointIsInShadow(hit.Point, hit.Normal, occluders)
		color = color.Add(light.Illuminate(hit.Point, hit.Normal, hit.Material, viewer, inShadow))
	}

	if hit.Texture != nil {
		texel := hit.Texture.GetPixelUV(hit.U, hit.V)
		color = texel.Add(color).Multiply(0.5)
	}

	if depth <= 0 || !hit.Material.IsReflective() {
		return color
	}

	reflected := core.NewRay(
		geometry.MovePointOffSurface(hit.Point, hit.Normal),
		ray.Direction.Reflect(hit.Normal).Normalize(),
	)
	bounce := rt.TraceRay(reflected, s, depth-1, false)
	return color.Add(hit.Material.Specular.MultiplyVec(bounce))
}

// RenderScene traces samplesPerAxis² rays through every pixel of fb, averages
// them and writes the result. Tiles are rendered in parallel; each pixel is
// written exactly once. Cancelling ctx stops further tiles from starting.
func (rt *RayTracer) RenderScene(ctx context.Context, fb FrameBuffer, depth int, s *scene.Scene, samplesPerAxis int) (RenderStats, error) {
	if err := s.Validate(); err != nil {
		return RenderStats{}, xerrors.Errorf("while starting render: %w", err)
	}

	n := max(1, samplesPerAxis)
	width, height := fb.Width(), fb.Height()
	workers := rt.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	tileSize := rt.TileSize
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}

	stats := RenderStats{
		TotalPixels:     width * height,
		SamplesPerPixel: n * n,
		TotalRays:       width * height * n * n,
		Workers:         workers,
	}
	start := time.Now()

	tiles := NewTileGrid(width, height, tileSize)
	eg, ctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(workers))

	var scheduleErr error
	for _, tile := range tiles {
		if scheduleErr = sem.Acquire(ctx, 1); scheduleErr != nil {
			break
		}

		tile := tile
		eg.Go(func() error {
			defer sem.Release(1)
			if err := ctx.Err(); err != nil {
				return err
			}
			rt.renderTile(tile, fb, depth, s, n)
			if glog.V(1) {
				glog.Infof("Tile %d %v done", tile.ID, tile.Bounds)
			}
			return nil
		})
	}

	waitErr := eg.Wait()
	stats.Duration = time.Since(start)
	if scheduleErr != nil {
		return stats, xerrors.Errorf("while scheduling tiles: %w", scheduleErr)
	}
	if waitErr != nil {
		return stats, xerrors.Errorf("while rendering tiles: %w", waitErr)
	}

	if rt.Logger != nil {
		rt.Logger.Printf("Rendered %q %dx%d, %d samples/pixel, depth %d in %v\n",
			s.Name, width, height, stats.SamplesPerPixel, depth, stats.Duration)
	}
	return stats, nil
}

// renderTile box-filters n×n subpixel samples for each pixel in the tile
func (rt *RayTracer) renderTile(tile Tile, fb FrameBuffer, depth int, s *scene.Scene, n int) {
	inv := 1.0 / float64(n)
	weight := 1.0 / float64(n*n)

	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			var sum core.Vec3
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					px := float64(x) + (float64(i)+0.5)*inv
					py := float64(y) + (float64(j)+0.5)*inv
					sum = sum.Add(rt.TraceRay(s.Camera.GetRay(px, py), s, depth, true))
				}
			}
			fb.SetColor(x, y, sum.Multiply(weight))
		}
	}
}
