package plot

import (
	"errors"
	"fmt"
	"image"
)

// Heatmap renders a square matrix (correlation-style, values in [-1, 1]) with
// row names on the left, column indices on top and a colorbar on the right.
// Column order matches row order, so the indices resolve through the row list.
func Heatmap(title string, names []string, values [][]float64, w, h int) ([]byte, error) {
	n := len(names)
	if n == 0 || len(values) != n {
		return nil, errors.New("heatmap needs a square matrix with names")
	}

	const (
		marginLeft   = 190
		marginTop    = 50
		marginBottom = 20
		barWidth     = 40
	)
	plotW := w - marginLeft - barWidth - 20
	plotH := h - marginTop - marginBottom
	if plotW < n || plotH < n {
		return nil, fmt.Errorf("heatmap canvas %dx%d too small for %d columns", w, h, n)
	}

	img := newCanvas(w, h)
	drawText(img, marginLeft, 20, title, colText)

	cw := plotW / n
	chh := plotH / n
	for i := 0; i < n; i++ {
		if len(values[i]) != n {
			return nil, errors.New("heatmap matrix is not square")
		}
		for j := 0; j < n; j++ {
			r := image.Rect(marginLeft+j*cw, marginTop+i*chh, marginLeft+(j+1)*cw, marginTop+(i+1)*chh)
			fillRect(img, r, divergingColor(values[i][j]))
		}
	}

	// row names and column indices
	for i := 0; i < n; i++ {
		label := fmt.Sprintf("%2d %s", i, truncate(names[i], 24))
		drawText(img, 4, marginTop+i*chh+chh/2+fontH/2-2, label, colText)
		drawTextCentered(img, marginLeft+i*cw+cw/2, marginTop-6, fmt.Sprintf("%d", i), colText)
	}

	// colorbar from +1 (top) to -1 (bottom)
	barX := marginLeft + plotW + 12
	for y := 0; y < plotH; y++ {
		v := 1 - 2*float64(y)/float64(plotH-1)
		hLine(img, barX, barX+barWidth/2, marginTop+y, divergingColor(v))
	}
	drawText(img, barX, marginTop-6, "+1", colText)
	drawText(img, barX, marginTop+plotH+fontH, "-1", colText)

	return encodePNG(img)
}

// MaskHeatmap renders a rows-by-columns boolean mask, one column band per
// table column; set cells (missing values) draw light on a dark field. Data
// rows are scaled onto the canvas height, so a band is marked when any row it
// covers is set.
func MaskHeatmap(title string, columns []string, mask [][]bool, w, h int) ([]byte, error) {
	ncol := len(columns)
	if ncol == 0 {
		return nil, errors.New("mask heatmap needs columns")
	}
	nrow := len(mask)

	const (
		marginTop    = 50
		marginBottom = 30
		marginLeft   = 40
	)
	plotW := w - marginLeft - 20
	plotH := h - marginTop - marginBottom

	img := newCanvas(w, h)
	drawText(img, marginLeft, 20, title, colText)
	field := image.Rect(marginLeft, marginTop, marginLeft+plotW, marginTop+plotH)
	fillRect(img, field, divergingColor(-0.85))

	cw := plotW / ncol
	if nrow > 0 {
		for y := 0; y < plotH; y++ {
			row := y * nrow / plotH
			for j := 0; j < ncol; j++ {
				if j < len(mask[row]) && mask[row][j] {
					hLine(img, marginLeft+j*cw, marginLeft+(j+1)*cw-1, marginTop+y, divergingColor(0.9))
				}
			}
		}
	}
	for j := 0; j < ncol; j++ {
		vLine(img, marginLeft+j*cw, marginTop, marginTop+plotH, colGrid)
		drawTextCentered(img, marginLeft+j*cw+cw/2, marginTop+plotH+fontH+2, fmt.Sprintf("%d", j), colText)
	}
	rectOutline(img, field, colAxis)

	return encodePNG(img)
}

// HBars renders a horizontal bar ranking in the given order, top to bottom.
// Negative values extend left of the zero axis. Height grows with the number
// of bars.
func HBars(title string, bars []Value, w int) ([]byte, error) {
	if len(bars) == 0 {
		return nil, errors.New("no bars to draw")
	}

	const (
		rowH         = 24
		marginLeft   = 200
		marginTop    = 44
		marginBottom = 16
	)
	h := marginTop + marginBottom + rowH*len(bars)
	if h < 240 {
		h = 240
	}
	plotW := w - marginLeft - 70

	lo, hi := 0.0, 0.0
	for _, b := range bars {
		if b.Value < lo {
			lo = b.Value
		}
		if b.Value > hi {
			hi = b.Value
		}
	}
	if hi == lo {
		hi = lo + 1
	}

	img := newCanvas(w, h)
	drawText(img, marginLeft, 20, title, colText)
	zeroX := marginLeft + scale(0, lo, hi, plotW)

	for i, b := range bars {
		y0 := marginTop + i*rowH + 3
		y1 := y0 + rowH - 7
		x := marginLeft + scale(b.Value, lo, hi, plotW)
		c := toRGBA(classColor(0))
		if b.Value < 0 {
			c = toRGBA(classColor(1))
			fillRect(img, image.Rect(x, y0, zeroX, y1), c)
		} else {
			fillRect(img, image.Rect(zeroX, y0, x, y1), c)
		}
		drawText(img, 6, y1-2, truncate(b.Name, 26), colText)
		valX := x + 4
		if b.Value < 0 {
			valX = zeroX + 4
		}
		drawText(img, valX, y1-2, fmt.Sprintf("%.3f", b.Value), colText)
	}
	vLine(img, zeroX, marginTop, h-marginBottom, colAxis)

	return encodePNG(img)
}
