package plot

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	colAxis = color.RGBA{60, 60, 60, 255}
	colGrid = color.RGBA{220, 220, 220, 255}
	colText = color.RGBA{30, 30, 30, 255}
)

const (
	fontW = 7  // basicfont.Face7x13 advance
	fontH = 13 // basicfont.Face7x13 line height
)

func newCanvas(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
}

func hLine(img *image.RGBA, x0, x1, y int, c color.Color) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	fillRect(img, image.Rect(x0, y, x1+1, y+1), c)
}

func vLine(img *image.RGBA, x, y0, y1 int, c color.Color) {
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	fillRect(img, image.Rect(x, y0, x+1, y1+1), c)
}

func rectOutline(img *image.RGBA, r image.Rectangle, c color.Color) {
	hLine(img, r.Min.X, r.Max.X-1, r.Min.Y, c)
	hLine(img, r.Min.X, r.Max.X-1, r.Max.Y-1, c)
	vLine(img, r.Min.X, r.Min.Y, r.Max.Y-1, c)
	vLine(img, r.Max.X-1, r.Min.Y, r.Max.Y-1, c)
}

func dot(img *image.RGBA, x, y, radius int, c color.Color) {
	fillRect(img, image.Rect(x-radius, y-radius, x+radius+1, y+radius+1), c)
}

// drawText writes s with its baseline at (x, y).
func drawText(img *image.RGBA, x, y int, s string, c color.Color) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// drawTextCentered centers s horizontally around x.
func drawTextCentered(img *image.RGBA, x, y int, s string, c color.Color) {
	drawText(img, x-len(s)*fontW/2, y, s, c)
}

// withAlpha returns a translucent, non-premultiplied version of c for
// blended fills.
func withAlpha(c color.RGBA, a uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}

// divergingColor maps v in [-1, 1] onto a blue-white-red ramp centered at 0.
func divergingColor(v float64) color.RGBA {
	if v < -1 {
		v = -1
	}
	if v > 1 {
		v = 1
	}
	if v < 0 {
		t := v + 1 // 0 at -1, 1 at 0
		return color.RGBA{uint8(255 * t), uint8(255 * t), 255, 255}
	}
	return color.RGBA{255, uint8(255 * (1 - v)), uint8(255 * (1 - v)), 255}
}

// scale maps v from [lo, hi] to pixel offsets [0, px].
func scale(v, lo, hi float64, px int) int {
	if hi <= lo {
		return 0
	}
	return int((v - lo) / (hi - lo) * float64(px))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 2 {
		return s[:n]
	}
	return s[:n-2] + ".."
}
