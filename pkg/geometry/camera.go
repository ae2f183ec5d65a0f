package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Frame is an orthonormal camera frame. W points backwards, away from the
// direction the camera looks.
type Frame struct {
	Origin  core.Vec3
	U, V, W core.Vec3
}

// Camera generates primary rays for fractional pixel coordinates
type Camera interface {
	// GetRay returns a normalized ray through (x, y) in pixel units, where (0, 0)
	// is the top-left corner of the top-left pixel.
	GetRay(x, y float64) core.Ray
	// Frame returns the camera's frame; Frame().Origin is the viewer position.
	Frame() Frame
}

// CameraConfig contains the settings used to build a perspective camera
type CameraConfig struct {
	Position core.Vec3 // Camera position
	LookAt   core.Vec3 // Point the camera looks at
	Up       core.Vec3 // Approximate up direction
	VFov     float64   // Vertical field of view in degrees
	Width    int       // Image width in pixels
	Height   int       // Image height in pixels
}

// PerspectiveCamera is a pinhole camera
type PerspectiveCamera struct {
	frame       Frame
	width       float64
	height      float64
	halfHeight  float64 // tan(vfov/2)
	aspectRatio float64
}

// NewPerspectiveCamera creates a perspective camera from a config
func NewPerspectiveCamera(config CameraConfig) *PerspectiveCamera {
	w := config.Position.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	return &PerspectiveCamera{
		frame: Frame{
			Origin: config.Position,
			U:      u,
			V:      v,
			W:      w,
		},
		width:       float64(config.Width),
		height:      float64(config.Height),
		halfHeight:  math.Tan(core.Deg2Rad(config.VFov) / 2),
		aspectRatio: float64(config.Width) / float64(config.Height),
	}
}

// GetRay implements Camera
func (c *PerspectiveCamera) GetRay(x, y float64) core.Ray {
	px := (2*x/c.width - 1) * c.aspectRatio * c.halfHeight
	py := (1 - 2*y/c.height) * c.halfHeight

	direction := c.frame.U.Multiply(px).
		Add(c.frame.V.Multiply(py)).
		Subtract(c.frame.W).
		Normalize()

	return core.NewRay(c.frame.Origin, direction)
}

// Frame implements Camera
func (c *PerspectiveCamera) Frame() Frame {
	return c.frame
}

// Forward returns the unit direction the camera looks along
func (c *PerspectiveCamera) Forward() core.Vec3 {
	return c.frame.W.Negate()
}

// Project maps a world point to fractional pixel coordinates. ok is false for
// points at or behind the camera plane.
func (c *PerspectiveCamera) Project(p core.Vec3) (x, y float64, ok bool) {
	d := p.Subtract(c.frame.Origin)
	depth := -d.Dot(c.frame.W)
	if depth <= core.Epsilon {
		return 0, 0, false
	}
	px := d.Dot(c.frame.U) / depth
	py := d.Dot(c.frame.V) / depth

	x = (px/(c.aspectRatio*c.halfHeight) + 1) * c.width / 2
	y = (1 - py/c.halfHeight) * c.height / 2
	return x, y, true
}
