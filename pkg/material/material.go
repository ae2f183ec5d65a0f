package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Material holds the Phong reflectance of a surface. Each color channel is in
// [0, 1]; Shininess is the specular exponent and must be non-negative.
// The specular color also acts as the mirror reflectance during ray tracing.
type Material struct {
	Ambient   core.Vec3
	Diffuse   core.Vec3
	Specular  core.Vec3
	Shininess float64
}

// NewMaterial creates a new material
func NewMaterial(ambient, diffuse, specular core.Vec3, shininess float64) Material {
	return Material{
		Ambient:   ambient,
		Diffuse:   diffuse,
		Specular:  specular,
		Shininess: max(0, shininess),
	}
}

// NewSolidMaterial creates a matte material whose ambient term is a fraction of
// the diffuse color and that has no specular highlight or reflection.
func NewSolidMaterial(c core.Vec3) Material {
	return NewMaterial(c.Multiply(0.2), c, core.Vec3{}, 0)
}

// IsReflective reports whether the surface spawns reflection rays
func (m Material) IsReflective() bool {
	return m.Specular.Length() > 0
}
