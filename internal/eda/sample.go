package eda

import (
	"math/rand"
	"sort"

	"github.com/go-gota/gota/dataframe"
)

// Sample size policy for the density and pairwise plots. The KDE sample grows
// with the table (one row in fifty) but stays within fixed bounds; the
// pairplot and scatter samples are flat caps on top of it.
const (
	kdeSampleMin  = 2000
	kdeSampleMax  = 20000
	pairSampleMax = 5000
	scatterMax    = 15000
)

// KDESampleSize clamps rows/50 to [2000, 20000], and never exceeds rows.
func KDESampleSize(rows int) int {
	n := rows / 50
	if n < kdeSampleMin {
		n = kdeSampleMin
	}
	if n > kdeSampleMax {
		n = kdeSampleMax
	}
	if n > rows {
		n = rows
	}
	return n
}

// SampleIndices picks k distinct row indices out of n, deterministically for a
// given seed. The result is in ascending order; k >= n returns every index.
func SampleIndices(n, k int, seed int64) []int {
	if n <= 0 {
		return nil
	}
	if k >= n {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	rng := rand.New(rand.NewSource(seed))
	idx := append([]int(nil), rng.Perm(n)[:k]...)
	sort.Ints(idx)
	return idx
}

// sampleRows returns a table of at most k rows drawn with the shared seed.
func sampleRows(df dataframe.DataFrame, k int, seed int64) dataframe.DataFrame {
	if k >= df.Nrow() {
		return df
	}
	return df.Subset(SampleIndices(df.Nrow(), k, seed))
}
