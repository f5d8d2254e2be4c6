package dataset

// Column names follow the UCI Machine Learning Repository description of the
// HIGGS dataset: the first column is the binary signal/background label,
// followed by 21 low-level kinematic measurements and 7 high-level derived
// invariant-mass features. The file itself carries no header, so these names
// are applied positionally.

// LabelColumn is the binary target: 1 for signal events, 0 for background.
const LabelColumn = "label"

var lowLevel = []string{
	"lepton_pT", "lepton_eta", "lepton_phi",
	"missing_energy_magnitude", "missing_energy_phi",
	"jet1_pt", "jet1_eta", "jet1_phi", "jet1_b-tag",
	"jet2_pt", "jet2_eta", "jet2_phi", "jet2_b-tag",
	"jet3_pt", "jet3_eta", "jet3_phi", "jet3_b-tag",
	"jet4_pt", "jet4_eta", "jet4_phi", "jet4_b-tag",
}

var highLevel = []string{
	"m_jj", "m_jjj", "m_lv", "m_jlv", "m_bb", "m_wbb", "m_wwbb",
}

// Columns returns the full ordered 29-column schema.
func Columns() []string {
	out := make([]string, 0, 1+len(lowLevel)+len(highLevel))
	out = append(out, LabelColumn)
	out = append(out, lowLevel...)
	out = append(out, highLevel...)
	return out
}

// preferredFeatures are the default picks for visualization: a spread of
// momenta, angles, a b-tag and two invariant masses.
var preferredFeatures = []string{
	"lepton_pT", "lepton_eta", "missing_energy_magnitude",
	"jet1_pt", "jet1_b-tag", "m_jj", "m_wwbb",
}

const maxSelectedFeatures = 7

// SelectFeatures chooses the columns to visualize from the available numeric
// columns: the preferred list filtered to what exists, or, when none of the
// preferred names survive, the first numeric non-label columns. The result
// never contains the label and never exceeds seven names.
func SelectFeatures(available []string) []string {
	present := make(map[string]bool, len(available))
	for _, c := range available {
		present[c] = true
	}
	var out []string
	for _, f := range preferredFeatures {
		if present[f] {
			out = append(out, f)
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, c := range available {
		if c == LabelColumn {
			continue
		}
		out = append(out, c)
		if len(out) == maxSelectedFeatures {
			break
		}
	}
	return out
}
