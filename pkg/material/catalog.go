package material

import (
	"sort"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func rgb(r, g, b float64) core.Vec3 { return core.NewVec3(r, g, b) }
func gray(v float64) core.Vec3      { return core.NewVec3(v, v, v) }

// Classic named materials (ambient, diffuse, specular, shininess)
var (
	Brass          = NewMaterial(rgb(0.329412, 0.223529, 0.027451), rgb(0.780392, 0.568627, 0.113725), rgb(0.992157, 0.941176, 0.807843), 27.8974)
	Bronze         = NewMaterial(rgb(0.2125, 0.1275, 0.054), rgb(0.714, 0.4284, 0.18144), rgb(0.393548, 0.271906, 0.166721), 25.6)
	PolishedBronze = NewMaterial(rgb(0.25, 0.148, 0.06475), rgb(0.4, 0.2368, 0.1036), rgb(0.774597, 0.458561, 0.200621), 76.8)
	Chrome         = NewMaterial(gray(0.25), gray(0.4), gray(0.774597), 76.8)
	Copper         = NewMaterial(rgb(0.19125, 0.0735, 0.0225), rgb(0.7038, 0.27048, 0.0828), rgb(0.256777, 0.137622, 0.086014), 12.8)
	PolishedCopper = NewMaterial(rgb(0.2295, 0.08825, 0.0275), rgb(0.5508, 0.2118, 0.066), rgb(0.580594, 0.223257, 0.0695701), 51.2)
	Gold           = NewMaterial(rgb(0.24725, 0.1995, 0.0745), rgb(0.75164, 0.60648, 0.22648), rgb(0.628281, 0.555802, 0.366065), 51.2)
	PolishedGold   = NewMaterial(rgb(0.24725, 0.2245, 0.0645), rgb(0.34615, 0.3143, 0.0903), rgb(0.797357, 0.723991, 0.208006), 83.2)
	Tin            = NewMaterial(rgb(0.105882, 0.058824, 0.113725), rgb(0.427451, 0.470588, 0.541176), rgb(0.333333, 0.333333, 0.521569), 9.84615)
	Silver         = NewMaterial(gray(0.19225), gray(0.50754), gray(0.508273), 51.2)
	PolishedSilver = NewMaterial(gray(0.23125), gray(0.2775), gray(0.773911), 89.6)
	Emerald        = NewMaterial(rgb(0.0215, 0.1745, 0.0215), rgb(0.07568, 0.61424, 0.07568), rgb(0.633, 0.727811, 0.633), 76.8)
	Jade           = NewMaterial(rgb(0.135, 0.2225, 0.1575), rgb(0.54, 0.89, 0.63), gray(0.316228), 12.8)
	Obsidian       = NewMaterial(rgb(0.05375, 0.05, 0.06625), rgb(0.18275, 0.17, 0.22525), rgb(0.332741, 0.328634, 0.346435), 38.4)
	Pearl          = NewMaterial(rgb(0.25, 0.20725, 0.20725), rgb(1.0, 0.829, 0.829), gray(0.296648), 11.264)
	Ruby           = NewMaterial(rgb(0.1745, 0.01175, 0.01175), rgb(0.61424, 0.04136, 0.04136), rgb(0.727811, 0.626959, 0.626959), 76.8)
	Turquoise      = NewMaterial(rgb(0.1, 0.18725, 0.1745), rgb(0.396, 0.74151, 0.69102), rgb(0.297254, 0.30829, 0.306678), 12.8)
	BlackPlastic   = NewMaterial(gray(0), gray(0.01), gray(0.5), 32)
	CyanPlastic    = NewMaterial(rgb(0, 0.1, 0.06), rgb(0, 0.50980392, 0.50980392), gray(0.50196078), 32)
	GreenPlastic   = NewMaterial(gray(0), rgb(0.1, 0.35, 0.1), rgb(0.45, 0.55, 0.45), 32)
	RedPlastic     = NewMaterial(gray(0), rgb(0.5, 0, 0), rgb(0.7, 0.6, 0.6), 32)
	WhitePlastic   = NewMaterial(gray(0), gray(0.55), gray(0.7), 32)
	YellowPlastic  = NewMaterial(gray(0), rgb(0.5, 0.5, 0), rgb(0.6, 0.6, 0.5), 32)
	BlackRubber    = NewMaterial(gray(0.02), gray(0.01), gray(0.4), 10)
	CyanRubber     = NewMaterial(rgb(0, 0.05, 0.05), rgb(0.4, 0.5, 0.5), rgb(0.04, 0.7, 0.7), 10)
	GreenRubber    = NewMaterial(rgb(0, 0.05, 0), rgb(0.4, 0.5, 0.4), rgb(0.04, 0.7, 0.04), 10)
	RedRubber      = NewMaterial(rgb(0.05, 0, 0), rgb(0.5, 0.4, 0.4), rgb(0.7, 0.04, 0.04), 10)
	WhiteRubber    = NewMaterial(gray(0.05), gray(0.5), gray(0.7), 10)
	YellowRubber   = NewMaterial(rgb(0.05, 0.05, 0), rgb(0.5, 0.5, 0.4), rgb(0.7, 0.7, 0.04), 10)
)

var materialsByName = map[string]Material{
	"brass":          Brass,
	"bronze":         Bronze,
	"polishedbronze": PolishedBronze,
	"chrome":         Chrome,
	"copper":         Copper,
	"polishedcopper": PolishedCopper,
	"gold":           Gold,
	"polishedgold":   PolishedGold,
	"tin":            Tin,
	"silver":         Silver,
	"polishedsilver": PolishedSilver,
	"emerald":        Emerald,
	"jade":           Jade,
	"obsidian":       Obsidian,
	"pearl":          Pearl,
	"ruby":           Ruby,
	"turquoise":      Turquoise,
	"blackplastic":   BlackPlastic,
	"cyanplastic":    CyanPlastic,
	"greenplastic":   GreenPlastic,
	"redplastic":     RedPlastic,
	"whiteplastic":   WhitePlastic,
	"yellowplastic":  YellowPlastic,
	"blackrubber":    BlackRubber,
	"cyanrubber":     CyanRubber,
	"greenrubber":    GreenRubber,
	"redrubber":      RedRubber,
	"whiterubber":    WhiteRubber,
	"yellowrubber":   YellowRubber,
}

// Lookup returns a catalog material by name. Names are case-insensitive and
// ignore '-', '_' and spaces, so "red-plastic" finds RedPlastic.
func Lookup(name string) (Material, bool) {
	m, ok := materialsByName[normalizeName(name)]
	return m, ok
}

// Names returns the sorted catalog names
func Names() []string {
	names := make([]string, 0, len(materialsByName))
	for name := range materialsByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeName(name string) string {
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(name))
}
