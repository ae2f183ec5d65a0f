package loaders

import (
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"

	"github.com/fogleman/gg"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder
	"golang.org/x/xerrors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrUnsupportedImage is returned for files no registered decoder recognizes
var ErrUnsupportedImage = xerrors.New("unsupported image format")

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, top row first
}

// LoadImage loads a PNG, JPEG, PPM, BMP, TIFF or WebP image
func LoadImage(filename string) (*ImageData, error) {
	img, err := gg.LoadImage(filename)
	if err != nil {
		if xerrors.Is(err, image.ErrFormat) {
			return nil, xerrors.Errorf("while decoding %s: %w", filename, ErrUnsupportedImage)
		}
		return nil, xerrors.Errorf("while loading image %s: %w", filename, err)
	}
	return FromImage(img), nil
}

// DecodeImage decodes an image of any registered format from r
func DecodeImage(r io.Reader) (*ImageData, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		if xerrors.Is(err, image.ErrFormat) {
			return nil, ErrUnsupportedImage
		}
		return nil, xerrors.Errorf("while decoding image: %w", err)
	}
	return FromImage(img), nil
}

// FromImage converts an image to a Vec3 color array
func FromImage(img image.Image) *ImageData {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Texture wraps the pixels in an image texture
func (d *ImageData) Texture() *material.ImageTexture {
	return material.NewImageTexture(d.Width, d.Height, d.Pixels)
}

// LoadTexture loads an image file as a texture
func LoadTexture(filename string) (*material.ImageTexture, error) {
	data, err := LoadImage(filename)
	if err != nil {
		return nil, err
	}
	return data.Texture(), nil
}
