package lights

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Kind selects the behavior of a Light
type Kind int

const (
	Positional Kind = iota
	Spot
)

func (k Kind) String() string {
	switch k {
	case Positional:
		return "positional"
	case Spot:
		return "spot"
	default:
		return "unknown"
	}
}

// MinSpotFOV is the narrowest cone SetFOV accepts
const MinSpotFOV = 0.1

// AttenuationParams are the constant, linear and quadratic distance falloff terms
type AttenuationParams struct {
	Constant  float64
	Linear    float64
	Quadratic float64
}

// DefaultAttenuation is constant 1 with no distance falloff
var DefaultAttenuation = AttenuationParams{Constant: 1}

// Factor returns 1/(c + l*d + q*d^2). Parameters whose denominator is not
// positive at d are outside the model; Factor then returns 1 (no falloff).
func (a AttenuationParams) Factor(distance float64) float64 {
	denom := a.Constant + a.Linear*distance + a.Quadratic*distance*distance
	if denom <= 0 {
		return 1
	}
	return 1 / denom
}

// Light is a point light source. Spot lights additionally restrict their
// contribution to a cone of FOV radians around Direction.
type Light struct {
	Kind        Kind
	Position    core.Vec3
	Color       core.Vec3
	On          bool
	Attenuation bool
	Params      AttenuationParams

	// Spot only
	Direction core.Vec3
	FOV       float64
}

// NewPositionalLight creates a switched-on light radiating in all directions
func NewPositionalLight(position, color core.Vec3) Light {
	return Light{
		Kind:     Positional,
		Position: position,
		Color:    color,
		On:       true,
		Params:   DefaultAttenuation,
	}
}

// NewSpotLight creates a switched-on spot light. fov is the full cone angle in radians.
func NewSpotLight(position, direction core.Vec3, fov float64, color core.Vec3) Light {
	l := NewPositionalLight(position, color)
	l.Kind = Spot
	l.Direction = direction.Normalize()
	l.SetFOV(fov)
	return l
}

// SetDirection points a spot light along (dx, dy, dz)
func (l *Light) SetDirection(dx, dy, dz float64) {
	l.Direction = core.NewVec3(dx, dy, dz).Normalize()
}

// SetFOV sets the spot cone angle, clamped to [MinSpotFOV, π]
func (l *Light) SetFOV(fov float64) {
	l.FOV = math.Max(MinSpotFOV, math.Min(math.Pi, fov))
}

// SetAttenuation enables distance falloff with the given parameters
func (l *Light) SetAttenuation(params AttenuationParams) {
	l.Attenuation = true
	l.Params = params
}

// Illuminate returns this light's contribution at point for a surface with the
// given normal and material as seen from viewer.
func (l Light) Illuminate(point, normal core.Vec3, mat material.Material, viewer core.Vec3, inShadow bool) core.Vec3 {
	if !l.On {
		return core.Vec3{}
	}
	if l.Kind == Spot && !IsInSpotlightCone(l.Position, l.Direction, l.FOV, point) {
		return core.Vec3{}
	}
	if inShadow {
		return AmbientColor(mat.Ambient, l.Color)
	}
	return TotalColor(mat, l.Color, viewer, normal, l.Position, point, l.Attenuation, l.Params)
}

// ShadowFeeler returns the ray from just above point toward the light
func (l Light) ShadowFeeler(point, normal core.Vec3) core.Ray {
	origin := geometry.MovePointOffSurface(point, normal)
	return core.NewRay(origin, l.Position.Subtract(point).Normalize())
}

// PointIsInShadow reports whether an occluder lies strictly between point and the light
func (l Light) PointIsInShadow(point, normal core.Vec3, occluders geometry.Intersector) bool {
	feeler := l.ShadowFeeler(point, normal)
	hit := occluders.ClosestIntersection(feeler)
	if !hit.IsHit() {
		return false
	}
	return hit.T < feeler.Origin.Distance(l.Position)
}

// IsInSpotlightCone reports whether point lies within fov/2 of the axis spotDir
// of a spot light at spotPos.
func IsInSpotlightCone(spotPos, spotDir core.Vec3, fov float64, point core.Vec3) bool {
	toPoint := point.Subtract(spotPos).Normalize()
	cosAngle := math.Max(-1, math.Min(1, spotDir.Normalize().Dot(toPoint)))
	return math.Acos(cosAngle) <= fov/2
}
