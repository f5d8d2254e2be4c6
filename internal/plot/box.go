package plot

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

type boxStats struct {
	q1, median, q3   float64
	loWhisk, hiWhisk float64
	fliers           []float64
}

// computeBox derives quartiles, 1.5·IQR whiskers clamped to the data, and the
// points beyond them.
func computeBox(vals []float64) (boxStats, error) {
	if len(vals) == 0 {
		return boxStats{}, errors.New("empty group")
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)

	var bs boxStats
	bs.q1 = stat.Quantile(0.25, stat.Empirical, sorted, nil)
	bs.median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	bs.q3 = stat.Quantile(0.75, stat.Empirical, sorted, nil)
	iqr := bs.q3 - bs.q1
	loFence := bs.q1 - 1.5*iqr
	hiFence := bs.q3 + 1.5*iqr

	bs.loWhisk, bs.hiWhisk = bs.q1, bs.q3
	for _, v := range sorted {
		if v >= loFence {
			bs.loWhisk = v
			break
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] <= hiFence {
			bs.hiWhisk = sorted[i]
			break
		}
	}
	for _, v := range sorted {
		if v < loFence || v > hiFence {
			bs.fliers = append(bs.fliers, v)
		}
	}
	return bs, nil
}

const maxFliersDrawn = 300

// boxCellVertical renders one box per class side by side on a shared scale.
func boxCellVertical(title string, groups [][]float64, classNames []string, w, h int) (image.Image, error) {
	const (
		marginTop    = 34
		marginBottom = 28
		marginLeft   = 16
	)
	plotH := h - marginTop - marginBottom
	plotW := w - 2*marginLeft

	boxes := make([]boxStats, 0, len(groups))
	kept := make([]int, 0, len(groups))
	lo, hi := math.NaN(), math.NaN()
	for gi, vals := range groups {
		bs, err := computeBox(vals)
		if err != nil {
			continue
		}
		boxes = append(boxes, bs)
		kept = append(kept, gi)
		gLo, gHi := groupRange([][]float64{vals})
		if math.IsNaN(lo) || gLo < lo {
			lo = gLo
		}
		if math.IsNaN(hi) || gHi > hi {
			hi = gHi
		}
	}
	if len(boxes) == 0 {
		return nil, fmt.Errorf("boxplot %q: no values", title)
	}
	lo, hi = paddedRange(lo, hi)

	img := newCanvas(w, h)
	drawTextCentered(img, w/2, 18, title, colText)
	toY := func(v float64) int { return marginTop + plotH - scale(v, lo, hi, plotH) }

	slot := plotW / len(boxes)
	boxW := slot * 6 / 10
	for bi, bs := range boxes {
		gi := kept[bi]
		cx := marginLeft + bi*slot + slot/2
		x0, x1 := cx-boxW/2, cx+boxW/2
		c := toRGBA(classColor(gi))

		// whiskers and caps
		vLine(img, cx, toY(bs.hiWhisk), toY(bs.q3), colAxis)
		vLine(img, cx, toY(bs.q1), toY(bs.loWhisk), colAxis)
		hLine(img, cx-boxW/4, cx+boxW/4, toY(bs.hiWhisk), colAxis)
		hLine(img, cx-boxW/4, cx+boxW/4, toY(bs.loWhisk), colAxis)

		box := image.Rect(x0, toY(bs.q3), x1, toY(bs.q1)+1)
		fillRect(img, box, withAlpha(c, 90))
		rectOutline(img, box, c)
		hLine(img, x0, x1-1, toY(bs.median), colAxis)

		for fi, v := range bs.fliers {
			if fi == maxFliersDrawn {
				break
			}
			dot(img, cx, toY(v), 1, withAlpha(c, 150))
		}
		if gi < len(classNames) {
			drawTextCentered(img, cx, h-10, classNames[gi], colText)
		}
	}
	return img, nil
}

// boxCellHorizontal renders a single horizontal box, the univariate outlier
// view.
func boxCellHorizontal(title string, vals []float64, w, h int) (image.Image, error) {
	bs, err := computeBox(vals)
	if err != nil {
		return nil, fmt.Errorf("boxplot %q: %w", title, err)
	}
	const (
		marginTop  = 34
		marginSide = 18
	)
	plotW := w - 2*marginSide
	lo, hi := groupRange([][]float64{vals})
	lo, hi = paddedRange(lo, hi)

	img := newCanvas(w, h)
	drawTextCentered(img, w/2, 18, title, colText)
	toX := func(v float64) int { return marginSide + scale(v, lo, hi, plotW) }

	cy := marginTop + (h-marginTop)/2
	boxH := (h - marginTop) / 3
	c := toRGBA(classColor(0))

	hLine(img, toX(bs.loWhisk), toX(bs.q1), cy, colAxis)
	hLine(img, toX(bs.q3), toX(bs.hiWhisk), cy, colAxis)
	vLine(img, toX(bs.loWhisk), cy-boxH/4, cy+boxH/4, colAxis)
	vLine(img, toX(bs.hiWhisk), cy-boxH/4, cy+boxH/4, colAxis)

	box := image.Rect(toX(bs.q1), cy-boxH/2, toX(bs.q3)+1, cy+boxH/2)
	fillRect(img, box, withAlpha(c, 90))
	rectOutline(img, box, c)
	vLine(img, toX(bs.median), cy-boxH/2, cy+boxH/2-1, colAxis)

	for fi, v := range bs.fliers {
		if fi == maxFliersDrawn {
			break
		}
		dot(img, toX(v), cy, 1, withAlpha(c, 150))
	}
	return img, nil
}

// BoxGridByClass renders per-feature boxplots grouped by class, cols across.
func BoxGridByClass(feats []FeatureGroups, classNames []string, cols, cellW, cellH int) ([]byte, error) {
	if len(feats) == 0 {
		return nil, errors.New("box grid: no features")
	}
	cells := make([]image.Image, 0, len(feats))
	for _, fg := range feats {
		img, err := boxCellVertical("Boxplot: "+fg.Feature, fg.Groups, classNames, cellW, cellH)
		if err != nil {
			return nil, err
		}
		cells = append(cells, img)
	}
	return encodePNG(composeGrid(cells, cols, cellW, cellH))
}

// UnivariateBoxGrid renders one horizontal boxplot per feature, cols across.
// Each entry's first group is used.
func UnivariateBoxGrid(feats []FeatureGroups, cols, cellW, cellH int) ([]byte, error) {
	if len(feats) == 0 {
		return nil, errors.New("univariate box grid: no features")
	}
	cells := make([]image.Image, 0, len(feats))
	for _, fg := range feats {
		if len(fg.Groups) == 0 {
			return nil, fmt.Errorf("boxplot %q: no values", fg.Feature)
		}
		img, err := boxCellHorizontal("Outliers: "+fg.Feature, fg.Groups[0], cellW, cellH)
		if err != nil {
			return nil, err
		}
		cells = append(cells, img)
	}
	return encodePNG(composeGrid(cells, cols, cellW, cellH))
}
