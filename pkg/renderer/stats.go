package renderer

import (
	"fmt"
	"image"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	SamplesPerPixel int           // Primary rays per pixel
	TotalRays       int           // Primary rays traced
	Duration        time.Duration // Wall time of the render
	Workers         int           // Tiles rendered in parallel
}

func (s RenderStats) String() string {
	return fmt.Sprintf("%d pixels, %d rays (%d/pixel), %d workers, %v",
		s.TotalPixels, s.TotalRays, s.SamplesPerPixel, s.Workers, s.Duration)
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of img in [0, 1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	if bounds.Empty() {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 0xffff
		}
	}
	return total / float64(bounds.Dx()*bounds.Dy())
}
