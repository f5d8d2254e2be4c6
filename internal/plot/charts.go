package plot

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"math"
	"sort"

	chart "github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const histBins = 30

// CountBars renders a vertical bar chart of per-class counts.
func CountBars(title string, labels []string, values []float64, w, h int) ([]byte, error) {
	if len(labels) == 0 || len(labels) != len(values) {
		return nil, errors.New("count bars need matching labels and values")
	}
	bars := make([]chart.Value, len(labels))
	maxVal := 0.0
	for i := range labels {
		c := classColor(i)
		bars[i] = chart.Value{
			Label: labels[i],
			Value: values[i],
			Style: chart.Style{FillColor: c, StrokeColor: c},
		}
		if values[i] > maxVal {
			maxVal = values[i]
		}
	}
	if maxVal <= 0 {
		maxVal = 1
	}
	bc := chart.BarChart{
		Title:    title,
		Width:    w,
		Height:   h,
		BarWidth: 80,
		Bars:     bars,
		// counts render on an explicit zero-anchored axis; the implicit range
		// collapses when every bar has the same height
		YAxis:      chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: maxVal * 1.05}},
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
	}
	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render count bars: %w", err)
	}
	return buf.Bytes(), nil
}

// paddedRange widens a data range so go-chart never sees a zero-width axis.
func paddedRange(lo, hi float64) (float64, float64) {
	if hi < lo {
		lo, hi = hi, lo
	}
	if hi-lo < 1e-12 {
		return lo - 0.5, hi + 0.5
	}
	pad := (hi - lo) * 0.02
	return lo - pad, hi + pad
}

// histSteps turns values into step-style density coordinates over shared bins.
func histSteps(vals []float64, lo, hi float64, bins int) (xs, ys []float64) {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	dividers := make([]float64, bins+1)
	// the top divider sits just past the data so the max value stays in range
	floats.Span(dividers, lo, hi+(hi-lo)*1e-9+1e-12)
	counts := stat.Histogram(nil, dividers, sorted, nil)

	n := float64(len(vals))
	xs = make([]float64, 0, 2*bins)
	ys = make([]float64, 0, 2*bins)
	for i, c := range counts {
		width := dividers[i+1] - dividers[i]
		density := 0.0
		if n > 0 && width > 0 {
			density = c / (n * width)
		}
		xs = append(xs, dividers[i], dividers[i+1])
		ys = append(ys, density, density)
	}
	return xs, ys
}

// histogramCell renders one feature's per-class density histograms, step
// style, each class normalized independently.
func histogramCell(title string, groups [][]float64, classNames []string, w, h int) (image.Image, error) {
	lo, hi := groupRange(groups)
	if math.IsNaN(lo) {
		return nil, fmt.Errorf("histogram %q: no values", title)
	}
	lo, hi = paddedRange(lo, hi)

	var series []chart.Series
	for gi, vals := range groups {
		if len(vals) == 0 {
			continue
		}
		xs, ys := histSteps(vals, lo, hi, histBins)
		series = append(series, chart.ContinuousSeries{
			Name:    classNames[gi],
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: classColor(gi), StrokeWidth: 1.5},
		})
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("histogram %q: all classes empty", title)
	}
	ch := chart.Chart{
		Title:      title,
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 30, Left: 12, Right: 12, Bottom: 12}},
		XAxis:      chart.XAxis{Range: &chart.ContinuousRange{Min: lo, Max: hi}},
		Series:     series,
	}
	return renderChart(ch)
}

// HistogramGrid renders per-feature density histograms by class onto a single
// canvas, cols across, with unused trailing cells hidden.
func HistogramGrid(feats []FeatureGroups, classNames []string, cols, cellW, cellH int) ([]byte, error) {
	if len(feats) == 0 {
		return nil, errors.New("histogram grid: no features")
	}
	cells := make([]image.Image, 0, len(feats))
	for _, fg := range feats {
		img, err := histogramCell(fg.Feature, fg.Groups, classNames, cellW, cellH)
		if err != nil {
			return nil, err
		}
		cells = append(cells, img)
	}
	return encodePNG(composeGrid(cells, cols, cellW, cellH))
}

// kdeCurve evaluates a Gaussian kernel density estimate on an even grid.
// Bandwidth is Silverman's rule of thumb.
func kdeCurve(vals []float64, points int) (xs, ys []float64, err error) {
	if len(vals) < 2 {
		return nil, nil, errors.New("kde needs at least 2 values")
	}
	sigma := stat.StdDev(vals, nil)
	n := float64(len(vals))
	bw := 1.06 * sigma * math.Pow(n, -0.2)
	if bw <= 0 || math.IsNaN(bw) {
		bw = 1e-3
	}
	lo := floats.Min(vals) - 3*bw
	hi := floats.Max(vals) + 3*bw

	xs = make([]float64, points)
	floats.Span(xs, lo, hi)
	ys = make([]float64, points)
	for i, x := range xs {
		sum := 0.0
		for _, v := range vals {
			sum += distuv.UnitNormal.Prob((x - v) / bw)
		}
		ys[i] = sum / (n * bw)
	}
	return xs, ys, nil
}

// kdeCell renders one feature's per-class filled density estimates.
func kdeCell(title string, groups [][]float64, classNames []string, w, h int) (image.Image, error) {
	var series []chart.Series
	for gi, vals := range groups {
		xs, ys, err := kdeCurve(vals, 120)
		if err != nil {
			continue
		}
		c := classColor(gi)
		series = append(series, chart.ContinuousSeries{
			Name:    classNames[gi],
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: c,
				StrokeWidth: 1.5,
				FillColor:   c.WithAlpha(60),
			},
		})
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("kde %q: no class has enough values", title)
	}
	ch := chart.Chart{
		Title:      title,
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 30, Left: 12, Right: 12, Bottom: 12}},
		Series:     series,
	}
	return renderChart(ch)
}

// KDEGrid renders per-feature density estimates by class, cols across.
func KDEGrid(feats []FeatureGroups, classNames []string, cols, cellW, cellH int) ([]byte, error) {
	if len(feats) == 0 {
		return nil, errors.New("kde grid: no features")
	}
	cells := make([]image.Image, 0, len(feats))
	for _, fg := range feats {
		img, err := kdeCell("KDE: "+fg.Feature, fg.Groups, classNames, cellW, cellH)
		if err != nil {
			return nil, err
		}
		cells = append(cells, img)
	}
	return encodePNG(composeGrid(cells, cols, cellW, cellH))
}

// scatterCell renders per-class point clouds of y against x.
func scatterCell(title, xName, yName string, xs, ys [][]float64, classNames []string, w, h int, legend bool) (image.Image, error) {
	var series []chart.Series
	var xlo, xhi, ylo, yhi float64
	xlo, xhi = groupRange(xs)
	ylo, yhi = groupRange(ys)
	if math.IsNaN(xlo) || math.IsNaN(ylo) {
		return nil, fmt.Errorf("scatter %q: no values", title)
	}
	xlo, xhi = paddedRange(xlo, xhi)
	ylo, yhi = paddedRange(ylo, yhi)

	for gi := range xs {
		if len(xs[gi]) == 0 {
			continue
		}
		c := classColor(gi)
		series = append(series, chart.ContinuousSeries{
			Name:    classNames[gi],
			XValues: xs[gi],
			YValues: ys[gi],
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    2,
				DotColor:    c.WithAlpha(160),
			},
		})
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("scatter %q: all classes empty", title)
	}
	ch := chart.Chart{
		Title:      title,
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 30, Left: 12, Right: 12, Bottom: 16}},
		XAxis:      chart.XAxis{Name: xName, Range: &chart.ContinuousRange{Min: xlo, Max: xhi}},
		YAxis:      chart.YAxis{Name: yName, Range: &chart.ContinuousRange{Min: ylo, Max: yhi}},
		Series:     series,
	}
	if legend {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}
	return renderChart(ch)
}

// Scatter renders a single scatter figure of y against x, colored by class.
func Scatter(title, xName, yName string, xs, ys [][]float64, classNames []string, w, h int) ([]byte, error) {
	img, err := scatterCell(title, xName, yName, xs, ys, classNames, w, h, true)
	if err != nil {
		return nil, err
	}
	return encodePNG(img)
}

// PairGrid renders a corner-only pairwise matrix over vars: scatter cells
// below the diagonal, per-class histograms on it. data is indexed
// [class][var][row], rows aligned within each class.
func PairGrid(vars []string, classNames []string, data [][][]float64, cellW, cellH int) ([]byte, error) {
	nv := len(vars)
	if nv == 0 {
		return nil, errors.New("pair grid: no variables")
	}
	for _, perClass := range data {
		if len(perClass) != nv {
			return nil, errors.New("pair grid: data is not aligned with vars")
		}
	}
	cells := make([]image.Image, nv*nv)
	for i := 0; i < nv; i++ {
		for j := 0; j <= i; j++ {
			var img image.Image
			var err error
			if i == j {
				groups := make([][]float64, len(data))
				for ci := range data {
					groups[ci] = data[ci][i]
				}
				img, err = histogramCell(vars[i], groups, classNames, cellW, cellH)
			} else {
				xs := make([][]float64, len(data))
				ys := make([][]float64, len(data))
				for ci := range data {
					xs[ci] = data[ci][j]
					ys[ci] = data[ci][i]
				}
				img, err = scatterCell("", vars[j], vars[i], xs, ys, classNames, cellW, cellH, false)
			}
			if err != nil {
				return nil, fmt.Errorf("pair cell (%s, %s): %w", vars[i], vars[j], err)
			}
			cells[i*nv+j] = img
		}
	}
	return encodePNG(composeGrid(cells, nv, cellW, cellH))
}

// groupRange finds the min and max across all groups; NaN when empty.
func groupRange(groups [][]float64) (lo, hi float64) {
	lo, hi = math.NaN(), math.NaN()
	for _, vals := range groups {
		for _, v := range vals {
			if math.IsNaN(v) {
				continue
			}
			if math.IsNaN(lo) || v < lo {
				lo = v
			}
			if math.IsNaN(hi) || v > hi {
				hi = v
			}
		}
	}
	return lo, hi
}
