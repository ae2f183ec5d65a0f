package material

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Named colors
var (
	Black     = core.NewVec3(0, 0, 0)
	White     = core.NewVec3(1, 1, 1)
	Red       = core.NewVec3(1, 0, 0)
	Green     = core.NewVec3(0, 1, 0)
	Blue      = core.NewVec3(0, 0, 1)
	Yellow    = core.NewVec3(1, 1, 0)
	Cyan      = core.NewVec3(0, 1, 1)
	Magenta   = core.NewVec3(1, 0, 1)
	Orange    = core.NewVec3(1, 0.5, 0)
	Gray      = core.NewVec3(0.5, 0.5, 0.5)
	LightGray = core.NewVec3(0.75, 0.75, 0.75)
	DarkGray  = core.NewVec3(0.25, 0.25, 0.25)
	PaleGreen = core.NewVec3(0.596, 0.984, 0.596)
	SkyBlue   = core.NewVec3(0.529, 0.808, 0.922)
)

var colorsByName = map[string]core.Vec3{
	"black":     Black,
	"white":     White,
	"red":       Red,
	"green":     Green,
	"blue":      Blue,
	"yellow":    Yellow,
	"cyan":      Cyan,
	"magenta":   Magenta,
	"orange":    Orange,
	"gray":      Gray,
	"lightgray": LightGray,
	"darkgray":  DarkGray,
	"palegreen": PaleGreen,
	"skyblue":   SkyBlue,
}

// LookupColor returns a named color; names are case-insensitive
func LookupColor(name string) (core.Vec3, bool) {
	c, ok := colorsByName[normalizeName(name)]
	return c, ok
}
