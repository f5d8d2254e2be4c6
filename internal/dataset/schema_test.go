package dataset_test

import (
	"testing"

	"github.com/Aather-nabi/EDA-HIGGS/internal/dataset"
)

func TestColumns(t *testing.T) {
	cols := dataset.Columns()
	if len(cols) != 29 {
		t.Fatalf("len = %d, want 29", len(cols))
	}
	if cols[0] != dataset.LabelColumn {
		t.Fatalf("first = %q, want label", cols[0])
	}
	seen := map[string]bool{}
	for _, c := range cols {
		if seen[c] {
			t.Fatalf("duplicate column %q", c)
		}
		seen[c] = true
	}
}

func TestSelectFeatures(t *testing.T) {
	cases := []struct {
		name      string
		available []string
		want      []string
	}{
		{
			name:      "preferred subset present",
			available: dataset.Columns(),
			want: []string{
				"lepton_pT", "lepton_eta", "missing_energy_magnitude",
				"jet1_pt", "jet1_b-tag", "m_jj", "m_wwbb",
			},
		},
		{
			name:      "partial preferred",
			available: []string{"label", "m_jj", "lepton_pT", "jet3_phi"},
			want:      []string{"lepton_pT", "m_jj"},
		},
		{
			name:      "fallback to first numeric non-label",
			available: []string{"label", "a", "b", "c", "d", "e", "f", "g", "h", "i"},
			want:      []string{"a", "b", "c", "d", "e", "f", "g"},
		},
		{
			name:      "fallback shorter than seven",
			available: []string{"label", "x", "y"},
			want:      []string{"x", "y"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := dataset.SelectFeatures(tc.available)
			if len(got) == 0 {
				t.Fatal("selection is empty")
			}
			if len(got) > 7 {
				t.Fatalf("selected %d features, want at most 7", len(got))
			}
			for _, f := range got {
				if f == dataset.LabelColumn {
					t.Fatal("selection contains the label column")
				}
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
		})
	}
}
