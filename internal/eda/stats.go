package eda

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/Aather-nabi/EDA-HIGGS/internal/dataset"
)

// ColumnStats carries the describe() battery for one column.
type ColumnStats struct {
	Name  string
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Q25   float64
	Q50   float64
	Q75   float64
	Max   float64
}

// Describe computes per-column count, mean, std, min, quartiles and max.
// NaN values are excluded from every statistic; Count is the non-null count.
func Describe(df dataframe.DataFrame) []ColumnStats {
	out := make([]ColumnStats, 0, df.Ncol())
	for _, name := range df.Names() {
		vals := dropNaN(df.Col(name).Float())
		cs := ColumnStats{Name: name, Count: len(vals)}
		if len(vals) > 0 {
			sorted := append([]float64(nil), vals...)
			sort.Float64s(sorted)
			cs.Mean = stat.Mean(vals, nil)
			cs.Std = stat.StdDev(vals, nil)
			cs.Min = sorted[0]
			cs.Q25 = stat.Quantile(0.25, stat.Empirical, sorted, nil)
			cs.Q50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
			cs.Q75 = stat.Quantile(0.75, stat.Empirical, sorted, nil)
			cs.Max = sorted[len(sorted)-1]
		}
		out = append(out, cs)
	}
	return out
}

// Pair is a named value used by the ranked artifacts.
type Pair struct {
	Name  string
	Value float64
}

// MissingCounts returns the per-column NaN count, in column order.
func MissingCounts(df dataframe.DataFrame) []Pair {
	out := make([]Pair, 0, df.Ncol())
	for _, name := range df.Names() {
		n := 0
		for _, v := range df.Col(name).Float() {
			if math.IsNaN(v) {
				n++
			}
		}
		out = append(out, Pair{Name: name, Value: float64(n)})
	}
	return out
}

// CorrMatrix holds the symmetric pairwise Pearson correlation matrix over all
// columns, in column order.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64
}

// Correlations computes the full Pearson correlation matrix of the table.
func Correlations(df dataframe.DataFrame) (*CorrMatrix, error) {
	names := df.Names()
	n := df.Nrow()
	if n < 2 {
		return nil, fmt.Errorf("correlation needs at least 2 rows, have %d", n)
	}
	if len(names) < 2 {
		return nil, errors.New("correlation needs at least 2 columns")
	}

	data := mat.NewDense(n, len(names), nil)
	for j, name := range names {
		for i, v := range df.Col(name).Float() {
			data.Set(i, j, v)
		}
	}
	sym := mat.NewSymDense(len(names), nil)
	stat.CorrelationMatrix(sym, data, nil)

	vals := make([][]float64, len(names))
	for i := range names {
		vals[i] = make([]float64, len(names))
		for j := range names {
			vals[i][j] = sym.At(i, j)
		}
	}
	return &CorrMatrix{Columns: names, Values: vals}, nil
}

// LabelCorrelations extracts the correlation of every feature with the label,
// excluding the label itself, sorted descending by value.
func LabelCorrelations(cm *CorrMatrix) ([]Pair, error) {
	idx := -1
	for i, c := range cm.Columns {
		if c == dataset.LabelColumn {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, errors.New("correlation matrix has no label column")
	}
	out := make([]Pair, 0, len(cm.Columns)-1)
	for i, c := range cm.Columns {
		if i == idx {
			continue
		}
		out = append(out, Pair{Name: c, Value: cm.Values[idx][i]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out, nil
}

// Variances returns per-column variances sorted descending, truncated to topK.
func Variances(df dataframe.DataFrame, topK int) []Pair {
	out := make([]Pair, 0, df.Ncol())
	for _, name := range df.Names() {
		vals := dropNaN(df.Col(name).Float())
		if len(vals) == 0 {
			continue
		}
		out = append(out, Pair{Name: name, Value: stat.Variance(vals, nil)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	if topK > 0 && len(out) > topK {
		out = out[:topK]
	}
	return out
}

// LabelCounts counts positive (label==1) and negative (label==0) rows.
func LabelCounts(df dataframe.DataFrame) (positive, negative int) {
	if !hasColumn(df, dataset.LabelColumn) {
		return 0, 0
	}
	for _, v := range df.Col(dataset.LabelColumn).Float() {
		switch v {
		case 1:
			positive++
		case 0:
			negative++
		}
	}
	return positive, negative
}

func hasColumn(df dataframe.DataFrame, name string) bool {
	for _, c := range df.Names() {
		if c == name {
			return true
		}
	}
	return false
}

func dropNaN(vals []float64) []float64 {
	out := vals[:0:0]
	for _, v := range vals {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
