package plot_test

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/Aather-nabi/EDA-HIGGS/internal/plot"
)

var classes = []string{"0", "1"}

// twoClasses builds deterministic, overlapping value groups for two classes.
func twoClasses(n int, shift float64) [][]float64 {
	groups := make([][]float64, 2)
	for ci := range groups {
		vals := make([]float64, n)
		for i := range vals {
			vals[i] = math.Sin(float64(i*7+ci*3)) + shift*float64(ci)
		}
		groups[ci] = vals
	}
	return groups
}

// decodePNG fails the test unless data is a decodable PNG of the given size.
func decodePNG(t *testing.T, data []byte, w, h int) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != w || b.Dy() != h {
		t.Fatalf("image is %dx%d, want %dx%d", b.Dx(), b.Dy(), w, h)
	}
}

func TestCountBars(t *testing.T) {
	data, err := plot.CountBars("Counts", []string{"0", "1"}, []float64{120, 80}, 400, 300)
	if err != nil {
		t.Fatalf("count bars: %v", err)
	}
	decodePNG(t, data, 400, 300)
}

func TestCountBarsEqualCounts(t *testing.T) {
	// a balanced label split must still render; the implicit data range
	// would be a single value
	data, err := plot.CountBars("Counts", []string{"0", "1"}, []float64{50, 50}, 400, 300)
	if err != nil {
		t.Fatalf("count bars on equal counts: %v", err)
	}
	decodePNG(t, data, 400, 300)
}

func TestCountBarsAllZero(t *testing.T) {
	data, err := plot.CountBars("Counts", []string{"0", "1"}, []float64{0, 0}, 400, 300)
	if err != nil {
		t.Fatalf("count bars on zero counts: %v", err)
	}
	decodePNG(t, data, 400, 300)
}

func TestCountBarsMismatch(t *testing.T) {
	if _, err := plot.CountBars("Counts", []string{"0"}, []float64{1, 2}, 400, 300); err == nil {
		t.Fatal("expected an error for mismatched labels and values")
	}
}

func TestHistogramGrid(t *testing.T) {
	feats := []plot.FeatureGroups{
		{Feature: "a", Groups: twoClasses(40, 0.5)},
		{Feature: "b", Groups: twoClasses(40, 1.0)},
	}
	data, err := plot.HistogramGrid(feats, classes, 3, 320, 240)
	if err != nil {
		t.Fatalf("histogram grid: %v", err)
	}
	// two cells on a 3-wide grid still produce one full-width row
	decodePNG(t, data, 3*320, 240)
}

func TestHistogramGridConstantValues(t *testing.T) {
	feats := []plot.FeatureGroups{
		{Feature: "flat", Groups: [][]float64{{2, 2, 2}, {2, 2, 2}}},
	}
	data, err := plot.HistogramGrid(feats, classes, 3, 320, 240)
	if err != nil {
		t.Fatalf("histogram grid on constant values: %v", err)
	}
	decodePNG(t, data, 3*320, 240)
}

func TestKDEGrid(t *testing.T) {
	feats := []plot.FeatureGroups{
		{Feature: "a", Groups: twoClasses(40, 0.5)},
		{Feature: "b", Groups: twoClasses(40, 1.0)},
		{Feature: "c", Groups: twoClasses(40, 2.0)},
		{Feature: "d", Groups: twoClasses(40, 0.0)},
	}
	data, err := plot.KDEGrid(feats, classes, 3, 320, 240)
	if err != nil {
		t.Fatalf("kde grid: %v", err)
	}
	decodePNG(t, data, 3*320, 2*240)
}

func TestScatter(t *testing.T) {
	xs := twoClasses(50, 0.5)
	ys := twoClasses(50, 1.5)
	data, err := plot.Scatter("a vs b", "a", "b", xs, ys, classes, 480, 480)
	if err != nil {
		t.Fatalf("scatter: %v", err)
	}
	decodePNG(t, data, 480, 480)
}

func TestPairGrid(t *testing.T) {
	vars := []string{"a", "b", "c"}
	data := make([][][]float64, 2)
	for ci := range data {
		data[ci] = make([][]float64, len(vars))
		for vi := range vars {
			vals := make([]float64, 30)
			for i := range vals {
				vals[i] = math.Cos(float64(i*11+vi*5+ci*2)) + float64(vi)
			}
			data[ci][vi] = vals
		}
	}
	out, err := plot.PairGrid(vars, classes, data, 240, 240)
	if err != nil {
		t.Fatalf("pair grid: %v", err)
	}
	decodePNG(t, out, 3*240, 3*240)
}

func TestPairGridMisaligned(t *testing.T) {
	data := [][][]float64{{{1, 2}}, {{1, 2}}}
	if _, err := plot.PairGrid([]string{"a", "b"}, classes, data, 240, 240); err == nil {
		t.Fatal("expected an error for data not aligned with vars")
	}
}

func TestHeatmap(t *testing.T) {
	names := []string{"alpha", "beta", "gamma"}
	values := [][]float64{
		{1, 0.4, -0.7},
		{0.4, 1, 0.1},
		{-0.7, 0.1, 1},
	}
	data, err := plot.Heatmap("Correlation", names, values, 640, 480)
	if err != nil {
		t.Fatalf("heatmap: %v", err)
	}
	decodePNG(t, data, 640, 480)
}

func TestHeatmapNotSquare(t *testing.T) {
	_, err := plot.Heatmap("bad", []string{"a", "b"}, [][]float64{{1, 0}}, 640, 480)
	if err == nil {
		t.Fatal("expected an error for a non-square matrix")
	}
}

func TestMaskHeatmap(t *testing.T) {
	cols := []string{"a", "b", "c", "d"}
	mask := make([][]bool, 20)
	for i := range mask {
		mask[i] = make([]bool, len(cols))
		mask[i][i%len(cols)] = i%5 == 0
	}
	data, err := plot.MaskHeatmap("Missing", cols, mask, 640, 240)
	if err != nil {
		t.Fatalf("mask heatmap: %v", err)
	}
	decodePNG(t, data, 640, 240)
}

func TestHBars(t *testing.T) {
	bars := []plot.Value{
		{Name: "first", Value: 0.8},
		{Name: "second", Value: 0.3},
		{Name: "third", Value: -0.4},
	}
	data, err := plot.HBars("Ranking", bars, 600)
	if err != nil {
		t.Fatalf("hbars: %v", err)
	}
	// short rankings keep the minimum canvas height
	decodePNG(t, data, 600, 240)
}

func TestHBarsEmpty(t *testing.T) {
	if _, err := plot.HBars("empty", nil, 600); err == nil {
		t.Fatal("expected an error for an empty ranking")
	}
}

func TestBoxGridByClass(t *testing.T) {
	feats := []plot.FeatureGroups{
		{Feature: "a", Groups: twoClasses(40, 0.5)},
		{Feature: "b", Groups: twoClasses(40, 1.0)},
	}
	data, err := plot.BoxGridByClass(feats, classes, 3, 320, 240)
	if err != nil {
		t.Fatalf("box grid: %v", err)
	}
	decodePNG(t, data, 3*320, 240)
}

func TestUnivariateBoxGrid(t *testing.T) {
	vals := make([]float64, 60)
	for i := range vals {
		vals[i] = math.Sin(float64(i * 13))
	}
	vals[0] = 40 // an obvious flier
	feats := []plot.FeatureGroups{
		{Feature: "a", Groups: [][]float64{vals}},
		{Feature: "b", Groups: [][]float64{vals}},
		{Feature: "c", Groups: [][]float64{vals}},
		{Feature: "d", Groups: [][]float64{vals}},
	}
	data, err := plot.UnivariateBoxGrid(feats, 3, 320, 240)
	if err != nil {
		t.Fatalf("univariate box grid: %v", err)
	}
	decodePNG(t, data, 3*320, 2*240)
}
