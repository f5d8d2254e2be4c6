// Package plot renders the report figures as PNG bytes. Chart-shaped figures
// (bars, histograms, densities, scatters) go through go-chart; heatmaps,
// horizontal bar rankings and boxplots are rasterized directly because the
// chart library has no type for them. Multi-panel figures render each panel
// separately and compose them onto a single canvas.
package plot

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Value is a named number used by ranked bar figures.
type Value struct {
	Name  string
	Value float64
}

// FeatureGroups carries one feature's values split by class, aligned with the
// class-name list the caller passes alongside.
type FeatureGroups struct {
	Feature string
	Groups  [][]float64
}

// classPalette colors one series per label class.
var classPalette = []drawing.Color{
	chart.ColorBlue,
	chart.ColorRed,
	chart.ColorGreen,
	chart.ColorOrange,
}

func classColor(i int) drawing.Color {
	return classPalette[i%len(classPalette)]
}

func toRGBA(c drawing.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func renderChart(ch chart.Chart) (image.Image, error) {
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode chart png: %w", err)
	}
	return img, nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
