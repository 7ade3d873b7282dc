// Package capture turns a window hard copy written by the host (a BMP file)
// into the image the CLI hands back: optionally scaled, labelled and
// re-encoded as PNG or JPEG.
package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// Format is an output image encoding.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpg"
)

// ParseFormat accepts png, jpg and jpeg (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "png", "":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	default:
		return "", fmt.Errorf("unsupported image format %q (use png or jpg)", s)
	}
}

// Options controls how a hard copy is post-processed.
type Options struct {
	Format  Format
	Quality int     // JPEG quality 1-100
	Scale   float64 // 0 < Scale <= 1; 0 means 1
	Label   string  // drawn in a banner across the top when not empty
}

// Image is an encoded result.
type Image struct {
	Data   []byte
	Format Format
	Width  int
	Height int
}

// Load decodes a BMP hard copy.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open hard copy: %w", err)
	}
	defer f.Close()
	img, err := bmp.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode hard copy %s: %w", path, err)
	}
	return img, nil
}

// Process loads the hard copy at path and applies opts.
func Process(path string, opts Options) (*Image, error) {
	img, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Render(img, opts)
}

// Render scales, labels and encodes img.
func Render(img image.Image, opts Options) (*Image, error) {
	if opts.Scale < 0 || opts.Scale > 1 {
		return nil, fmt.Errorf("scale must be between 0 and 1, got %g", opts.Scale)
	}
	if opts.Format == "" {
		opts.Format = PNG
	}

	out := Scale(img, opts.Scale)
	if opts.Label != "" {
		out = Annotate(out, opts.Label)
	}

	var buf bytes.Buffer
	switch opts.Format {
	case PNG:
		if err := png.Encode(&buf, out); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	case JPEG:
		q := opts.Quality
		if q <= 0 || q > 100 {
			q = 80
		}
		if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: q}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported image format %q", opts.Format)
	}

	b := out.Bounds()
	return &Image{Data: buf.Bytes(), Format: opts.Format, Width: b.Dx(), Height: b.Dy()}, nil
}

// Scale resizes img by factor with Catmull-Rom resampling. A factor of 0 or 1
// returns img unchanged.
func Scale(img image.Image, factor float64) image.Image {
	if factor <= 0 || factor == 1 {
		return img
	}
	b := img.Bounds()
	w := max(1, int(float64(b.Dx())*factor))
	h := max(1, int(float64(b.Dy())*factor))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
