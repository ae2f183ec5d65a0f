package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point  core.Vec3 // A point on the plane
	Normal core.Vec3 // Unit normal
	right  core.Vec3
	up     core.Vec3
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3) *Plane {
	n := normal.Normalize()
	right, up := orthonormalBasis(n)
	return &Plane{
		Point:  point,
		Normal: n,
		right:  right,
		up:     up,
	}
}

func (p *Plane) intersect(ray core.Ray) HitRecord {
	denominator := ray.Direction.Dot(p.Normal)

	// Parallel rays never reach the plane
	if math.Abs(denominator) < 1e-8 {
		return NoHitRecord()
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t < core.Epsilon {
		return NoHitRecord()
	}

	hitPoint := ray.At(t)
	local := hitPoint.Subtract(p.Point)

	return HitRecord{
		T:      t,
		Point:  hitPoint,
		Normal: p.Normal,
		U:      fract(local.Dot(p.right)),
		V:      fract(local.Dot(p.up)),
	}
}
