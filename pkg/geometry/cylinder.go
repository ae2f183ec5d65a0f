package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cylinder is a finite cylinder whose axis is parallel to Y. The side spans
// Center.Y ± Height/2; Capped adds the two end disks.
type Cylinder struct {
	Center core.Vec3
	Radius float64
	Height float64
	Capped bool
}

// NewCylinderY creates an open cylinder aligned with the Y axis
func NewCylinderY(center core.Vec3, radius, height float64) *Cylinder {
	return &Cylinder{
		Center: center,
		Radius: radius,
		Height: height,
	}
}

// NewClosedCylinderY creates a Y-aligned cylinder with end caps
func NewClosedCylinderY(center core.Vec3, radius, height float64) *Cylinder {
	c := NewCylinderY(center, radius, height)
	c.Capped = true
	return c
}

func (c *Cylinder) bottom() float64 { return c.Center.Y - c.Height/2 }
func (c *Cylinder) top() float64    { return c.Center.Y + c.Height/2 }

func (c *Cylinder) intersect(ray core.Ray) HitRecord {
	best := c.intersectSide(ray)
	if c.Capped {
		if hit := c.intersectCap(ray, c.top(), core.NewVec3(0, 1, 0)); hit.T < best.T {
			best = hit
		}
		if hit := c.intersectCap(ray, c.bottom(), core.NewVec3(0, -1, 0)); hit.T < best.T {
			best = hit
		}
	}
	return best
}

// intersectSide solves the quadratic restricted to x and z, then clips by height
func (c *Cylinder) intersectSide(ray core.Ray) HitRecord {
	ox := ray.Origin.X - c.Center.X
	oz := ray.Origin.Z - c.Center.Z
	dx := ray.Direction.X
	dz := ray.Direction.Z

	a := dx*dx + dz*dz
	// Ray parallel to the axis never meets the side
	if a < 1e-12 {
		return NoHitRecord()
	}
	b := 2.0 * (ox*dx + oz*dz)
	cc := ox*ox + oz*oz - c.Radius*c.Radius

	for _, t := range core.Quadratic(a, b, cc) {
		if t < core.Epsilon {
			continue
		}
		point := ray.At(t)
		if point.Y < c.bottom() || point.Y > c.top() {
			continue
		}
		normal := core.NewVec3(point.X-c.Center.X, 0, point.Z-c.Center.Z).Normalize()
		return HitRecord{
			T:      t,
			Point:  point,
			Normal: normal,
			U:      angleUV(normal.X, normal.Z),
			V:      (point.Y - c.bottom()) / c.Height,
		}
	}
	return NoHitRecord()
}

func (c *Cylinder) intersectCap(ray core.Ray, y float64, normal core.Vec3) HitRecord {
	if math.Abs(ray.Direction.Y) < 1e-8 {
		return NoHitRecord()
	}
	t := (y - ray.Origin.Y) / ray.Direction.Y
	if t < core.Epsilon {
		return NoHitRecord()
	}
	point := ray.At(t)
	dx := point.X - c.Center.X
	dz := point.Z - c.Center.Z
	distanceSquared := dx*dx + dz*dz
	if distanceSquared > c.Radius*c.Radius {
		return NoHitRecord()
	}
	return HitRecord{
		T:      t,
		Point:  point,
		Normal: normal,
		U:      angleUV(dx, dz),
		V:      math.Sqrt(distanceSquared) / c.Radius,
	}
}
