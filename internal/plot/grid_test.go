package plot_test

import (
	"testing"

	"github.com/Aather-nabi/EDA-HIGGS/internal/plot"
)

func TestGridRows(t *testing.T) {
	tests := []struct {
		n, cols int
		want    int
	}{
		{n: 0, cols: 3, want: 0},
		{n: 1, cols: 3, want: 1},
		{n: 3, cols: 3, want: 1},
		{n: 4, cols: 3, want: 2},
		{n: 6, cols: 3, want: 2},
		{n: 7, cols: 3, want: 3},
		{n: 5, cols: 2, want: 3},
		{n: 5, cols: 0, want: 0},
	}
	for _, tc := range tests {
		if got := plot.GridRows(tc.n, tc.cols); got != tc.want {
			t.Errorf("GridRows(%d, %d) = %d, want %d", tc.n, tc.cols, got, tc.want)
		}
	}
}
