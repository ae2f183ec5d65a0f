package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// State is the mutable per-frame state of a scene. It is owned by the caller
// and applied between render passes, never during one.
type State struct {
	Camera   *geometry.CameraConfig // nil keeps the current camera
	Shapes   map[ShapeID]geometry.Shape
	LightsOn map[LightID]bool
}

// Apply updates the scene with st. Unknown handles are ignored.
func (s *Scene) Apply(st State) {
	if st.Camera != nil {
		s.SetCameraConfig(*st.Camera)
	}
	for id, shape := range st.Shapes {
		s.SetShape(id, shape)
	}
	for id, on := range st.LightsOn {
		if l := s.Light(id); l != nil {
			l.On = on
		}
	}
}

// Animator yields the state for each successive frame
type Animator interface {
	Next() State
}

// PlaneSweep moves a z-facing plane back and forth between MinZ and MaxZ
type PlaneSweep struct {
	Shape ShapeID
	Z     float64
	MinZ  float64
	MaxZ  float64
	Step  float64
}

// NewPlaneSweep creates a sweep starting at z
func NewPlaneSweep(id ShapeID, z, minZ, maxZ, step float64) *PlaneSweep {
	return &PlaneSweep{Shape: id, Z: z, MinZ: minZ, MaxZ: maxZ, Step: step}
}

// Next advances the plane one step. Z stops at either end of the range and
// the sweep turns around there.
func (p *PlaneSweep) Next() State {
	p.Z += p.Step
	switch {
	case p.Z <= p.MinZ:
		p.Z = p.MinZ
		p.Step = math.Abs(p.Step)
	case p.Z >= p.MaxZ:
		p.Z = p.MaxZ
		p.Step = -math.Abs(p.Step)
	}
	plane := geometry.NewPlane(core.NewVec3(0, 0, p.Z), core.NewVec3(0, 0, 1))
	return State{Shapes: map[ShapeID]geometry.Shape{p.Shape: plane}}
}

// Orbit circles the camera around its look-at point
type Orbit struct {
	Base   geometry.CameraConfig
	Radius float64
	Angle  float64 // degrees
	Step   float64 // degrees per frame
}

// NewOrbit creates an orbit starting at angle degrees
func NewOrbit(base geometry.CameraConfig, radius, angle, step float64) *Orbit {
	return &Orbit{Base: base, Radius: radius, Angle: angle, Step: step}
}

// Next moves the camera step degrees further around the orbit
func (o *Orbit) Next() State {
	o.Angle += o.Step
	config := OrbitCameraConfig(o.Base, o.Radius, o.Angle)
	return State{Camera: &config}
}

// OrbitCameraConfig places the camera on a circle of the given radius around
// base.LookAt, raised by radius above it.
func OrbitCameraConfig(base geometry.CameraConfig, radius, angleDeg float64) geometry.CameraConfig {
	rads := core.Deg2Rad(angleDeg)
	base.Position = base.LookAt.Add(core.NewVec3(radius*math.Cos(-rads), radius, radius*math.Sin(-rads)))
	return base
}
