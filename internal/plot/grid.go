package plot

import (
	"image"
	"image/draw"
)

// GridRows returns the number of grid rows needed for n cells laid out cols
// across: ceiling division.
func GridRows(n, cols int) int {
	if n <= 0 || cols <= 0 {
		return 0
	}
	return (n + cols - 1) / cols
}

// composeGrid lays the rendered cell images onto one white canvas, cols
// across. Trailing cells beyond len(cells) are left blank, which keeps unused
// grid positions invisible rather than rendering empty axes.
func composeGrid(cells []image.Image, cols, cellW, cellH int) *image.RGBA {
	rows := GridRows(len(cells), cols)
	canvas := image.NewRGBA(image.Rect(0, 0, cols*cellW, rows*cellH))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	for i, cell := range cells {
		if cell == nil {
			continue
		}
		x := (i % cols) * cellW
		y := (i / cols) * cellH
		r := image.Rect(x, y, x+cellW, y+cellH)
		draw.Draw(canvas, r, cell, cell.Bounds().Min, draw.Over)
	}
	return canvas
}
