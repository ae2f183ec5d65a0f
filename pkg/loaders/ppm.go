package loaders

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"

	"golang.org/x/xerrors"
)

func init() {
	image.RegisterFormat("ppm", "P3", DecodePPM, DecodePPMConfig)
	image.RegisterFormat("ppm", "P6", DecodePPM, DecodePPMConfig)
}

type ppmHeader struct {
	magic  string
	width  int
	height int
	maxVal int
}

// DecodePPM decodes an ASCII (P3) or binary (P6) portable pixmap
func DecodePPM(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	h, err := readPPMHeader(br)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA64(image.Rect(0, 0, h.width, h.height))
	sample := func() (uint16, error) {
		var v int
		switch {
		case h.magic == "P3":
			tok, err := readPPMToken(br)
			if err != nil {
				return 0, err
			}
			if v, err = strconv.Atoi(tok); err != nil {
				return 0, xerrors.Errorf("while parsing ppm sample %q: %w", tok, err)
			}
		case h.maxVal < 256:
			b, err := br.ReadByte()
			if err != nil {
				return 0, err
			}
			v = int(b)
		default:
			var buf [2]byte
			if _, err := io.ReadFull(br, buf[:]); err != nil {
				return 0, err
			}
			v = int(buf[0])<<8 | int(buf[1])
		}
		if v < 0 || v > h.maxVal {
			return 0, xerrors.Errorf("ppm sample %d outside [0, %d]", v, h.maxVal)
		}
		return uint16(v * 0xffff / h.maxVal), nil
	}

	for y := 0; y < h.height; y++ {
		for x := 0; x < h.width; x++ {
			var rgb [3]uint16
			for c := range rgb {
				if rgb[c], err = sample(); err != nil {
					return nil, xerrors.Errorf("while reading ppm pixel (%d,%d): %w", x, y, err)
				}
			}
			img.SetRGBA64(x, y, color.RGBA64{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xffff})
		}
	}

	return img, nil
}

// DecodePPMConfig returns the dimensions of a portable pixmap
func DecodePPMConfig(r io.Reader) (image.Config, error) {
	h, err := readPPMHeader(bufio.NewReader(r))
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.RGBA64Model, Width: h.width, Height: h.height}, nil
}

// EncodePPM writes img as a binary (P6) pixmap with 8 bits per channel
func EncodePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", bounds.Dx(), bounds.Dy()); err != nil {
		return xerrors.Errorf("while writing ppm header: %w", err)
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if _, err := bw.Write([]byte{byte(r >> 8), byte(g >> 8), byte(b >> 8)}); err != nil {
				return xerrors.Errorf("while writing ppm pixels: %w", err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return xerrors.Errorf("while writing ppm pixels: %w", err)
	}
	return nil
}

func readPPMHeader(br *bufio.Reader) (ppmHeader, error) {
	var h ppmHeader
	var err error
	if h.magic, err = readPPMToken(br); err != nil {
		return h, xerrors.Errorf("while reading ppm magic: %w", err)
	}
	if h.magic != "P3" && h.magic != "P6" {
		return h, xerrors.Errorf("ppm magic %q: %w", h.magic, ErrUnsupportedImage)
	}

	fields := []struct {
		name string
		dst  *int
		max  int
	}{
		{"width", &h.width, 1 << 15},
		{"height", &h.height, 1 << 15},
		{"maxval", &h.maxVal, 65535},
	}
	for _, f := range fields {
		tok, err := readPPMToken(br)
		if err != nil {
			return h, xerrors.Errorf("while reading ppm %s: %w", f.name, err)
		}
		v, err := strconv.Atoi(tok)
		if err != nil || v < 1 || v > f.max {
			return h, xerrors.Errorf("invalid ppm %s %q", f.name, tok)
		}
		*f.dst = v
	}
	return h, nil
}

// readPPMToken returns the next whitespace-delimited token, skipping '#'
// comments. The single whitespace byte after the token is consumed.
func readPPMToken(br *bufio.Reader) (string, error) {
	var tok []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				return string(tok), nil
			}
			if err == io.EOF {
				return "", io.ErrUnexpectedEOF
			}
			return "", err
		}
		switch {
		case b == '#' && len(tok) == 0:
			if _, err := br.ReadString('\n'); err != nil && err != io.EOF {
				return "", err
			}
		case isPPMSpace(b):
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, b)
		}
	}
}

func isPPMSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}
