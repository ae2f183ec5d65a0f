package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Texture maps surface (u, v) coordinates to a color
type Texture interface {
	GetPixelUV(u, v float64) core.Vec3
}

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x]
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// GetPixelUV samples the texture using nearest-neighbor filtering. UVs wrap
// into [0, 1); v=0 is the bottom row of the image.
func (t *ImageTexture) GetPixelUV(u, v float64) core.Vec3 {
	if t.Width <= 0 || t.Height <= 0 || len(t.Pixels) < t.Width*t.Height {
		return Black
	}

	u = wrapUnit(u)
	v = wrapUnit(v)

	x := clampIndex(int(u*float64(t.Width)), t.Width)
	y := clampIndex(int((1.0-v)*float64(t.Height)), t.Height)

	return t.Pixels[y*t.Width+x]
}

// Set stores a texel; out of range coordinates are ignored
func (t *ImageTexture) Set(x, y int, c core.Vec3) {
	if x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return
	}
	t.Pixels[y*t.Width+x] = c
}

func wrapUnit(x float64) float64 {
	x -= math.Floor(x)
	if x >= 1 {
		return 0
	}
	return x
}

func clampIndex(i, n int) int {
	if i >= n {
		return n - 1
	}
	if i < 0 {
		return 0
	}
	return i
}

// SolidTexture returns the same color everywhere
type SolidTexture struct {
	Color core.Vec3
}

// GetPixelUV returns the solid color
func (s SolidTexture) GetPixelUV(u, v float64) core.Vec3 {
	return s.Color
}
