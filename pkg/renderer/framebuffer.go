package renderer

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/xerrors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// FrameBuffer receives rendered pixels. (0, 0) is the top-left pixel and
// channels are in [0, 1]. SetColor may be called concurrently for distinct pixels.
type FrameBuffer interface {
	SetColor(x, y int, c core.Vec3)
	Width() int
	Height() int
}

// Projector maps world points to pixel coordinates
type Projector interface {
	Project(p core.Vec3) (x, y float64, ok bool)
}

// ImageFrameBuffer is an in-memory RGBA frame buffer with 2D drawing support
type ImageFrameBuffer struct {
	img *image.RGBA
	dc  *gg.Context
}

// NewImageFrameBuffer creates a black frame buffer
func NewImageFrameBuffer(width, height int) *ImageFrameBuffer {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fb := &ImageFrameBuffer{img: img, dc: gg.NewContextForRGBA(img)}
	fb.Clear(core.Vec3{})
	return fb
}

// Width implements FrameBuffer
func (f *ImageFrameBuffer) Width() int { return f.img.Bounds().Dx() }

// Height implements FrameBuffer
func (f *ImageFrameBuffer) Height() int { return f.img.Bounds().Dy() }

// SetColor implements FrameBuffer. Colors are clamped; out of range pixels are ignored.
func (f *ImageFrameBuffer) SetColor(x, y int, c core.Vec3) {
	if !(image.Point{X: x, Y: y}).In(f.img.Bounds()) {
		return
	}
	f.img.SetRGBA(x, y, toRGBA(c))
}

// Color reads a pixel back as a color in [0, 1]
func (f *ImageFrameBuffer) Color(x, y int) core.Vec3 {
	c := f.img.RGBAAt(x, y)
	return core.NewVec3(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
}

// Clear fills the buffer with c
func (f *ImageFrameBuffer) Clear(c core.Vec3) {
	f.dc.SetColor(toRGBA(c))
	f.dc.Clear()
}

// Image returns the underlying image
func (f *ImageFrameBuffer) Image() *image.RGBA {
	return f.img
}

// EncodePNG writes the buffer as a PNG
func (f *ImageFrameBuffer) EncodePNG(w io.Writer) error {
	if err := f.dc.EncodePNG(w); err != nil {
		return xerrors.Errorf("while encoding png: %w", err)
	}
	return nil
}

// SavePNG writes the buffer to a PNG file
func (f *ImageFrameBuffer) SavePNG(path string) error {
	if err := f.dc.SavePNG(path); err != nil {
		return xerrors.Errorf("while saving %s: %w", path, err)
	}
	return nil
}

// DrawAxes overlays the world X (red), Y (green) and Z (blue) axes of the
// given length starting at origin.
func (f *ImageFrameBuffer) DrawAxes(p Projector, origin core.Vec3, length float64) {
	ox, oy, ok := p.Project(origin)
	if !ok {
		return
	}

	axes := []struct {
		dir   core.Vec3
		color core.Vec3
	}{
		{core.NewVec3(1, 0, 0), core.NewVec3(1, 0, 0)},
		{core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0)},
		{core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1)},
	}

	f.dc.SetLineWidth(2)
	for _, axis := range axes {
		ex, ey, ok := p.Project(origin.Add(axis.dir.Multiply(length)))
		if !ok {
			continue
		}
		f.dc.SetColor(toRGBA(axis.color))
		f.dc.DrawLine(ox, oy, ex, ey)
		f.dc.Stroke()
	}
}

func toRGBA(c core.Vec3) color.RGBA {
	c = c.Clamp01()
	return color.RGBA{
		R: uint8(c.X*255 + 0.5),
		G: uint8(c.Y*255 + 0.5),
		B: uint8(c.Z*255 + 0.5),
		A: 255,
	}
}
