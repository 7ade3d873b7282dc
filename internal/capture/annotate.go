package capture

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	glyphWidth  = 7 // basicfont.Face7x13
	glyphHeight = 13
	bannerPad   = 4
)

var (
	bannerColor  = color.RGBA{R: 0, G: 0, B: 0, A: 160}
	textColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor = color.RGBA{R: 0, G: 0, B: 0, A: 200}
)

// Annotate draws label in a translucent banner across the top of img.
// Labels wider than the image are truncated.
func Annotate(img image.Image, label string) *image.RGBA {
	rgba := ToRGBA(img)
	b := rgba.Bounds()

	bannerH := glyphHeight + 2*bannerPad
	if bannerH > b.Dy() {
		bannerH = b.Dy()
	}
	banner := image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+bannerH)
	draw.Draw(rgba, banner, image.NewUniform(bannerColor), image.Point{}, draw.Over)

	if fit := (b.Dx() - 2*bannerPad) / glyphWidth; fit < len(label) {
		if fit <= 0 {
			return rgba
		}
		label = label[:fit]
	}
	drawTextWithOutline(rgba, label, b.Min.X+bannerPad, b.Min.Y+bannerPad+glyphHeight-2)
	return rgba
}

// ToRGBA converts any image to RGBA.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

// drawTextWithOutline draws text with its baseline at (x, y).
func drawTextWithOutline(img *image.RGBA, text string, x, y int) {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawString(img, text, x+dx, y+dy, outlineColor)
		}
	}
	drawString(img, text, x, y, textColor)
}

func drawString(img *image.RGBA, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}
