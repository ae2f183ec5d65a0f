package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CheckerTexture alternates two colors in a grid of Checks x Checks squares
// over the unit UV square.
type CheckerTexture struct {
	Even   core.Vec3
	Odd    core.Vec3
	Checks int
}

// NewCheckerTexture creates a procedural checker texture
func NewCheckerTexture(checks int, even, odd core.Vec3) *CheckerTexture {
	if checks < 1 {
		checks = 1
	}
	return &CheckerTexture{Even: even, Odd: odd, Checks: checks}
}

// GetPixelUV returns Even or Odd depending on the check containing (u, v)
func (c *CheckerTexture) GetPixelUV(u, v float64) core.Vec3 {
	n := float64(c.Checks)
	i := int(wrapUnit(u) * n)
	j := int(wrapUnit(v) * n)
	if (i+j)%2 == 0 {
		return c.Even
	}
	return c.Odd
}

// NewCheckerboardTexture creates a checkerboard pattern baked into an image
func NewCheckerboardTexture(width, height, checkSize int, color1, color2 core.Vec3) *ImageTexture {
	if checkSize < 1 {
		checkSize = 1
	}
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			checkX := x / checkSize
			checkY := y / checkSize

			var color core.Vec3
			if (checkX+checkY)%2 == 0 {
				color = color1
			} else {
				color = color2
			}

			pixels[y*width+x] = color
		}
	}

	return NewImageTexture(width, height, pixels)
}

// NewStripeTexture creates horizontal bands alternating between two colors,
// with the first band at the top of the image.
func NewStripeTexture(width, height, stripes int, color1, color2 core.Vec3) *ImageTexture {
	if stripes < 1 {
		stripes = 1
	}
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		color := color1
		if (y*stripes/height)%2 == 1 {
			color = color2
		}
		for x := 0; x < width; x++ {
			pixels[y*width+x] = color
		}
	}

	return NewImageTexture(width, height, pixels)
}

// NewUVDebugTexture creates a texture showing UV coordinates as colors
// U maps to red channel, V maps to green channel
func NewUVDebugTexture(width, height int) *ImageTexture {
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			u := float64(x) / float64(max(width-1, 1))
			v := 1 - float64(y)/float64(max(height-1, 1))
			pixels[y*width+x] = core.NewVec3(u, v, 0.0)
		}
	}

	return NewImageTexture(width, height, pixels)
}
