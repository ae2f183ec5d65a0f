package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Disk represents a circular disk in 3D space
type Disk struct {
	Center core.Vec3 // Center of the disk
	Normal core.Vec3 // Unit normal
	Radius float64
	right  core.Vec3 // In-plane basis used for texture coordinates
	up     core.Vec3
}

// NewDisk creates a new disk
func NewDisk(center, normal core.Vec3, radius float64) *Disk {
	n := normal.Normalize()
	right, up := orthonormalBasis(n)
	return &Disk{
		Center: center,
		Normal: n,
		Radius: radius,
		right:  right,
		up:     up,
	}
}

func (d *Disk) intersect(ray core.Ray) HitRecord {
	denom := d.Normal.Dot(ray.Direction)
	if math.Abs(denom) < 1e-8 {
		return NoHitRecord() // Ray is parallel to disk
	}

	t := d.Normal.Dot(d.Center.Subtract(ray.Origin)) / denom
	if t < core.Epsilon {
		return NoHitRecord()
	}

	hitPoint := ray.At(t)
	centerToHit := hitPoint.Subtract(d.Center)
	distanceSquared := centerToHit.LengthSquared()
	if distanceSquared > d.Radius*d.Radius {
		return NoHitRecord() // Outside disk
	}

	return HitRecord{
		T:      t,
		Point:  hitPoint,
		Normal: d.Normal,
		U:      angleUV(centerToHit.Dot(d.right), centerToHit.Dot(d.up)),
		V:      math.Sqrt(distanceSquared) / d.Radius,
	}
}
