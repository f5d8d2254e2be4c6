package eda

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/google/uuid"

	"github.com/Aather-nabi/EDA-HIGGS/internal/dataset"
	"github.com/Aather-nabi/EDA-HIGGS/internal/plot"
)

// Options configures a report run. Zero values fall back to the defaults the
// config package also carries.
type Options struct {
	OutputDir   string
	DataFile    string
	Seed        int64
	ChartWidth  int
	ChartHeight int
}

// StepResult records the outcome of one report step. A failed step carries
// its error; a skipped step carries the reason. Artifacts lists the files the
// step wrote, relative to the output directory.
type StepResult struct {
	Name      string
	Artifacts []string
	Err       error
	Skipped   bool
	Reason    string
}

// Generator runs the fixed battery of report steps over one loaded table.
// Steps are isolated: a failure is recorded and printed, and the remaining
// steps still run.
type Generator struct {
	df    dataframe.DataFrame
	opts  Options
	runID string

	// correlation matrix shared between the matrix and the
	// correlation-with-target steps
	corr *CorrMatrix
}

// NewGenerator creates the output directory and prepares a run.
func NewGenerator(df dataframe.DataFrame, opts Options) (*Generator, error) {
	if opts.OutputDir == "" {
		opts.OutputDir = filepath.Join("results", "eda")
	}
	if opts.ChartWidth <= 0 {
		opts.ChartWidth = 1280
	}
	if opts.ChartHeight <= 0 {
		opts.ChartHeight = 960
	}
	if opts.Seed == 0 {
		opts.Seed = 42
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Generator{df: df, opts: opts, runID: uuid.NewString()}, nil
}

// OutputDir reports where artifacts are written.
func (g *Generator) OutputDir() string {
	return g.opts.OutputDir
}

type step struct {
	name       string
	needsLabel bool
	run        func() ([]string, error)
}

// skipError lets a step declare itself skipped; the runner records it with
// its reason instead of as a failure.
type skipError struct {
	reason string
}

func (e *skipError) Error() string {
	return e.reason
}

// Run executes every report step in order and returns one result per step.
// Label-dependent steps are skipped, not failed, when the table has no label
// column; label-free steps run regardless.
func (g *Generator) Run() []StepResult {
	hasLabel := hasColumn(g.df, dataset.LabelColumn)
	features := dataset.SelectFeatures(g.df.Names())
	fmt.Printf("Run %s: using features %v\n", g.runID, features)

	steps := []step{
		{name: "dataset info", run: g.infoStep},
		{name: "describe", run: g.describeStep},
		{name: "missing values", run: g.missingStep},
		{name: "target distribution", needsLabel: true, run: g.targetDistStep},
		{name: "feature histograms", needsLabel: true, run: func() ([]string, error) { return g.histogramStep(features) }},
		{name: "correlation matrix", run: g.correlationStep},
		{name: "missing value heatmap", run: g.missingHeatmapStep},
		{name: "correlation with target", needsLabel: true, run: g.corrWithTargetStep},
		{name: "kde plots", needsLabel: true, run: func() ([]string, error) { return g.kdeStep(features) }},
		{name: "boxplots by label", needsLabel: true, run: func() ([]string, error) { return g.boxByLabelStep(features) }},
		{name: "pairplot", needsLabel: true, run: func() ([]string, error) { return g.pairplotStep(features) }},
		{name: "feature variance", run: g.varianceStep},
		{name: "jointplot scatter", needsLabel: true, run: g.scatterStep},
		{name: "outlier boxplots", run: g.outlierStep},
		{name: "summary overview", run: g.summaryStep},
	}

	results := make([]StepResult, 0, len(steps))
	for _, s := range steps {
		if s.needsLabel && !hasLabel {
			fmt.Printf("⚠ Skipped %s: no label column\n", s.name)
			results = append(results, StepResult{Name: s.name, Skipped: true, Reason: "no label column"})
			continue
		}
		artifacts, err := runStep(s.run)
		var skip *skipError
		if errors.As(err, &skip) {
			fmt.Printf("⚠ Skipped %s: %s\n", s.name, skip.reason)
			results = append(results, StepResult{Name: s.name, Skipped: true, Reason: skip.reason})
			continue
		}
		if err != nil {
			fmt.Printf("⚠ Step %s failed: %v\n", s.name, err)
		} else {
			fmt.Printf("✓ %s\n", s.name)
		}
		results = append(results, StepResult{Name: s.name, Artifacts: artifacts, Err: err})
	}

	if err := g.writeManifest(results); err != nil {
		fmt.Printf("⚠ Could not write run manifest: %v\n", err)
	}
	return results
}

// runStep isolates a step: panics from library internals surface as errors
// instead of aborting the run.
func runStep(fn func() ([]string, error)) (artifacts []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

func (g *Generator) path(name string) string {
	return filepath.Join(g.opts.OutputDir, name)
}

// infoStep writes column names, dtypes and non-null counts.
func (g *Generator) infoStep() ([]string, error) {
	const name = "0_info.txt"
	names := g.df.Names()
	types := g.df.Types()

	var b strings.Builder
	fmt.Fprintf(&b, "Rows: %d\n", g.df.Nrow())
	fmt.Fprintf(&b, "Data columns (total %d):\n", g.df.Ncol())
	for i, col := range names {
		nonNull := 0
		for _, v := range g.df.Col(col).Float() {
			if !math.IsNaN(v) {
				nonNull++
			}
		}
		fmt.Fprintf(&b, " %2d  %-26s %8d non-null  %s\n", i, col, nonNull, types[i])
	}
	if err := writeFileAtomic(g.path(name), []byte(b.String())); err != nil {
		return nil, err
	}
	return []string{name}, nil
}

// describeStep writes the transposed describe table.
func (g *Generator) describeStep() ([]string, error) {
	const name = "1_describe.csv"
	rows := make([][]string, 0, g.df.Ncol())
	for _, cs := range Describe(g.df) {
		rows = append(rows, []string{
			cs.Name, fmt.Sprintf("%d", cs.Count),
			formatFloat(cs.Mean), formatFloat(cs.Std), formatFloat(cs.Min),
			formatFloat(cs.Q25), formatFloat(cs.Q50), formatFloat(cs.Q75),
			formatFloat(cs.Max),
		})
	}
	header := []string{"", "count", "mean", "std", "min", "25%", "50%", "75%", "max"}
	if err := writeCSV(g.path(name), header, rows); err != nil {
		return nil, err
	}
	return []string{name}, nil
}

// missingStep writes per-column null counts.
func (g *Generator) missingStep() ([]string, error) {
	const name = "2_missing_values.csv"
	rows := make([][]string, 0, g.df.Ncol())
	for _, p := range MissingCounts(g.df) {
		rows = append(rows, []string{p.Name, fmt.Sprintf("%d", int(p.Value))})
	}
	if err := writeCSV(g.path(name), []string{"column", "missing"}, rows); err != nil {
		return nil, err
	}
	return []string{name}, nil
}

// targetDistStep plots the label distribution.
func (g *Generator) targetDistStep() ([]string, error) {
	const name = "1_target_distribution.png"
	pos, neg := LabelCounts(g.df)
	png, err := plot.CountBars("Target Label Distribution",
		[]string{"0", "1"}, []float64{float64(neg), float64(pos)},
		g.opts.ChartWidth/2+100, g.opts.ChartHeight/2+100)
	if err != nil {
		return nil, err
	}
	if err := writeFileAtomic(g.path(name), png); err != nil {
		return nil, err
	}
	return []string{name}, nil
}

// histogramStep plots overlaid per-class density histograms for the selected
// features on a 3-column grid.
func (g *Generator) histogramStep(features []string) ([]string, error) {
	const name = "2_feature_histograms.png"
	feats, err := featureGroups(g.df, features)
	if err != nil {
		return nil, err
	}
	png, err := plot.HistogramGrid(feats, classNames, 3, 420, 300)
	if err != nil {
		return nil, err
	}
	if err := writeFileAtomic(g.path(name), png); err != nil {
		return nil, err
	}
	return []string{name}, nil
}

// correlationStep computes the full Pearson matrix, keeps it for the
// correlation-with-target step, and writes heatmap plus CSV.
func (g *Generator) correlationStep() ([]string, error) {
	const (
		imgName = "3_correlation_matrix.png"
		csvName = "3_correlation_matrix.csv"
	)
	cm, err := Correlations(g.df)
	if err != nil {
		return nil, err
	}
	g.corr = cm

	png, err := plot.Heatmap("Correlation Matrix", cm.Columns, cm.Values, g.opts.ChartWidth, g.opts.ChartHeight)
	if err != nil {
		return nil, err
	}
	if err := writeFileAtomic(g.path(imgName), png); err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(cm.Columns))
	for i, col := range cm.Columns {
		row := make([]string, 0, len(cm.Columns)+1)
		row = append(row, col)
		for j := range cm.Columns {
			row = append(row, formatFloat(cm.Values[i][j]))
		}
		rows = append(rows, row)
	}
	header := append([]string{""}, cm.Columns...)
	if err := writeCSV(g.path(csvName), header, rows); err != nil {
		return []string{imgName}, err
	}
	return []string{imgName, csvName}, nil
}

// missingHeatmapStep renders the rows-by-columns NaN mask.
func (g *Generator) missingHeatmapStep() ([]string, error) {
	const name = "4_missing_value_heatmap.png"
	names := g.df.Names()
	mask := make([][]bool, g.df.Nrow())
	for i := range mask {
		mask[i] = make([]bool, len(names))
	}
	for j, col := range names {
		for i, v := range g.df.Col(col).Float() {
			if math.IsNaN(v) {
				mask[i][j] = true
			}
		}
	}
	png, err := plot.MaskHeatmap("Missing Value Heatmap", names, mask, g.opts.ChartWidth, g.opts.ChartHeight/2)
	if err != nil {
		return nil, err
	}
	if err := writeFileAtomic(g.path(name), png); err != nil {
		return nil, err
	}
	return []string{name}, nil
}

// corrWithTargetStep ranks features by correlation with the label, reusing
// the matrix from the correlation step.
func (g *Generator) corrWithTargetStep() ([]string, error) {
	const (
		imgName = "5_corr_with_target.png"
		csvName = "5_corr_with_target.csv"
	)
	if g.corr == nil {
		return nil, fmt.Errorf("correlation matrix unavailable")
	}
	pairs, err := LabelCorrelations(g.corr)
	if err != nil {
		return nil, err
	}

	bars := make([]plot.Value, len(pairs))
	rows := make([][]string, len(pairs))
	for i, p := range pairs {
		bars[i] = plot.Value{Name: p.Name, Value: p.Value}
		rows[i] = []string{p.Name, formatFloat(p.Value)}
	}
	png, err := plot.HBars("Correlation with Target Label", bars, g.opts.ChartWidth*3/4)
	if err != nil {
		return nil, err
	}
	if err := writeFileAtomic(g.path(imgName), png); err != nil {
		return nil, err
	}
	if err := writeCSV(g.path(csvName), []string{"column", dataset.LabelColumn}, rows); err != nil {
		return []string{imgName}, err
	}
	return []string{imgName, csvName}, nil
}

// kdeStep plots density estimates for up to six features on a seeded sample.
func (g *Generator) kdeStep(features []string) ([]string, error) {
	const name = "6_kde_plots.png"
	if len(features) > 6 {
		features = features[:6]
	}
	sample := sampleRows(g.df, KDESampleSize(g.df.Nrow()), g.opts.Seed)
	feats, err := featureGroups(sample, features)
	if err != nil {
		return nil, err
	}
	png, err := plot.KDEGrid(feats, classNames, 3, 420, 300)
	if err != nil {
		return nil, err
	}
	if err := writeFileAtomic(g.path(name), png); err != nil {
		return nil, err
	}
	return []string{name}, nil
}

// boxByLabelStep draws per-feature boxplots grouped by class.
func (g *Generator) boxByLabelStep(features []string) ([]string, error) {
	const name = "7_boxplots_by_label.png"
	feats, err := featureGroups(g.df, features)
	if err != nil {
		return nil, err
	}
	png, err := plot.BoxGridByClass(feats, classNames, 3, 420, 300)
	if err != nil {
		return nil, err
	}
	if err := writeFileAtomic(g.path(name), png); err != nil {
		return nil, err
	}
	return []string{name}, nil
}

// pairplotStep draws the corner-only pairwise matrix of the first four
// selected features on a smaller sample, colored by class.
func (g *Generator) pairplotStep(features []string) ([]string, error) {
	const name = "8_pairplot_sample.png"
	if len(features) > 4 {
		features = features[:4]
	}
	if len(features) == 0 {
		return nil, fmt.Errorf("no features to pair")
	}
	k := pairSampleMax
	if n := KDESampleSize(g.df.Nrow()); n < k {
		k = n
	}
	sample := sampleRows(g.df, k, g.opts.Seed)

	labels := sample.Col(dataset.LabelColumn).Float()
	data := make([][][]float64, len(classNames))
	for ci := range data {
		data[ci] = make([][]float64, len(features))
	}
	for vi, feat := range features {
		vals := sample.Col(feat).Float()
		for i, v := range vals {
			ci := classIndex(labels[i])
			if ci < 0 {
				continue
			}
			data[ci][vi] = append(data[ci][vi], v)
		}
	}
	png, err := plot.PairGrid(features, classNames, data, 300, 300)
	if err != nil {
		return nil, err
	}
	if err := writeFileAtomic(g.path(name), png); err != nil {
		return nil, err
	}
	return []string{name}, nil
}

// varianceStep ranks columns by variance, top 15.
func (g *Generator) varianceStep() ([]string, error) {
	const (
		imgName = "9_feature_variance.png"
		csvName = "9_feature_variance.csv"
	)
	pairs := Variances(g.df, 15)
	if len(pairs) == 0 {
		return nil, fmt.Errorf("no numeric columns")
	}
	bars := make([]plot.Value, len(pairs))
	rows := make([][]string, len(pairs))
	for i, p := range pairs {
		bars[i] = plot.Value{Name: p.Name, Value: p.Value}
		rows[i] = []string{p.Name, formatFloat(p.Value)}
	}
	png, err := plot.HBars("Top 15 Most Variable Features", bars, g.opts.ChartWidth*3/4)
	if err != nil {
		return nil, err
	}
	if err := writeFileAtomic(g.path(imgName), png); err != nil {
		return nil, err
	}
	if err := writeCSV(g.path(csvName), []string{"column", "variance"}, rows); err != nil {
		return []string{imgName}, err
	}
	return []string{imgName, csvName}, nil
}

// scatterStep plots lepton_pT against missing_energy_magnitude on a sample,
// when both columns exist; absent columns skip the step.
func (g *Generator) scatterStep() ([]string, error) {
	const (
		name = "10_jointplot_scatter.png"
		xCol = "lepton_pT"
		yCol = "missing_energy_magnitude"
	)
	if !hasColumn(g.df, xCol) || !hasColumn(g.df, yCol) {
		return nil, &skipError{reason: fmt.Sprintf("columns %s and %s not both present", xCol, yCol)}
	}
	k := scatterMax
	if n := KDESampleSize(g.df.Nrow()); n < k {
		k = n
	}
	sample := sampleRows(g.df, k, g.opts.Seed)

	labels := sample.Col(dataset.LabelColumn).Float()
	xvals := sample.Col(xCol).Float()
	yvals := sample.Col(yCol).Float()
	xs := make([][]float64, len(classNames))
	ys := make([][]float64, len(classNames))
	for i := range labels {
		ci := classIndex(labels[i])
		if ci < 0 {
			continue
		}
		xs[ci] = append(xs[ci], xvals[i])
		ys[ci] = append(ys[ci], yvals[i])
	}
	png, err := plot.Scatter(xCol+" vs "+yCol, xCol, yCol, xs, ys, classNames,
		g.opts.ChartWidth*3/4, g.opts.ChartWidth*3/4)
	if err != nil {
		return nil, err
	}
	if err := writeFileAtomic(g.path(name), png); err != nil {
		return nil, err
	}
	return []string{name}, nil
}

// outlierStep draws univariate boxplots for the first six numeric non-label
// columns on a 2x3 grid.
func (g *Generator) outlierStep() ([]string, error) {
	const name = "11_outlier_iqr.png"
	var feats []plot.FeatureGroups
	for _, col := range g.df.Names() {
		if col == dataset.LabelColumn {
			continue
		}
		feats = append(feats, plot.FeatureGroups{
			Feature: col,
			Groups:  [][]float64{dropNaN(g.df.Col(col).Float())},
		})
		if len(feats) == 6 {
			break
		}
	}
	png, err := plot.UnivariateBoxGrid(feats, 3, 420, 330)
	if err != nil {
		return nil, err
	}
	if err := writeFileAtomic(g.path(name), png); err != nil {
		return nil, err
	}
	return []string{name}, nil
}

// summaryStep writes the run overview: shape and label balance.
func (g *Generator) summaryStep() ([]string, error) {
	const name = "12_summary_overview.csv"
	pos, neg := LabelCounts(g.df)
	row := []string{
		fmt.Sprintf("%d", g.df.Nrow()),
		fmt.Sprintf("%d", g.df.Ncol()),
		fmt.Sprintf("%d", pos),
		fmt.Sprintf("%d", neg),
	}
	header := []string{"rows", "columns", "positive_labels", "negative_labels"}
	if err := writeCSV(g.path(name), header, [][]string{row}); err != nil {
		return nil, err
	}
	return []string{name}, nil
}

// classNames are the label classes in index order: background, signal.
var classNames = []string{"0", "1"}

func classIndex(label float64) int {
	switch label {
	case 0:
		return 0
	case 1:
		return 1
	default:
		return -1
	}
}

// featureGroups splits each feature's values by label class.
func featureGroups(df dataframe.DataFrame, features []string) ([]plot.FeatureGroups, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("no features selected")
	}
	labels := df.Col(dataset.LabelColumn).Float()
	out := make([]plot.FeatureGroups, 0, len(features))
	for _, feat := range features {
		groups := make([][]float64, len(classNames))
		for i, v := range df.Col(feat).Float() {
			ci := classIndex(labels[i])
			if ci < 0 || math.IsNaN(v) {
				continue
			}
			groups[ci] = append(groups[ci], v)
		}
		out = append(out, plot.FeatureGroups{Feature: feat, Groups: groups})
	}
	return out, nil
}
