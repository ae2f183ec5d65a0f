package lights

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// AmbientColor is the unattenuated ambient term
func AmbientColor(matAmbient, lightColor core.Vec3) core.Vec3 {
	return matAmbient.MultiplyVec(lightColor).Clamp01()
}

// DiffuseColor is the Lambert term for unit light vector l and normal n
func DiffuseColor(matDiffuse, lightColor, l, n core.Vec3) core.Vec3 {
	return matDiffuse.MultiplyVec(lightColor).Multiply(math.Max(0, l.Dot(n))).Clamp01()
}

// SpecularColor is the Phong highlight for unit reflection r and view v
func SpecularColor(matSpecular, lightColor core.Vec3, shininess float64, r, v core.Vec3) core.Vec3 {
	return matSpecular.MultiplyVec(lightColor).Multiply(math.Pow(math.Max(0, r.Dot(v)), shininess)).Clamp01()
}

// TotalColor sums ambient, diffuse and specular for a light at lightPos
// seen from eyePos. Attenuation scales diffuse and specular only.
func TotalColor(mat material.Material, lightColor, eyePos, n, lightPos, fragPos core.Vec3,
	attenuationOn bool, params AttenuationParams) core.Vec3 {

	l := lightPos.Subtract(fragPos).Normalize()
	v := eyePos.Subtract(fragPos).Normalize()
	r := n.Multiply(2 * math.Max(0, l.Dot(n))).Subtract(l)

	ambient := AmbientColor(mat.Ambient, lightColor)
	diffuse := DiffuseColor(mat.Diffuse, lightColor, l, n)
	specular := SpecularColor(mat.Specular, lightColor, mat.Shininess, r, v)

	at := 1.0
	if attenuationOn {
		at = params.Factor(lightPos.Distance(fragPos))
	}

	return ambient.Add(diffuse.Add(specular).Multiply(at)).Clamp01()
}
