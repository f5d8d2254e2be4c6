package dataset_test

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/Aather-nabi/EDA-HIGGS/internal/dataset"
)

// csvRow renders one fake event: a 0/1 label and 28 float fields.
func csvRow(rng *rand.Rand, label int) string {
	fields := make([]string, 0, 29)
	fields = append(fields, fmt.Sprintf("%d.000000000000000000e+00", label))
	for i := 0; i < 28; i++ {
		fields = append(fields, fmt.Sprintf("%g", rng.Float64()*3))
	}
	return strings.Join(fields, ",")
}

func writeFixture(t *testing.T, name string, rows int, compress bool) string {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	var sb strings.Builder
	for i := 0; i < rows; i++ {
		sb.WriteString(csvRow(rng, i%2))
		sb.WriteString("\n")
	}
	path := filepath.Join(t.TempDir(), name)
	if compress {
		f, err := os.Create(path)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		zw := gzip.NewWriter(f)
		if _, err := zw.Write([]byte(sb.String())); err != nil {
			t.Fatalf("gzip write: %v", err)
		}
		if err := zw.Close(); err != nil {
			t.Fatalf("gzip close: %v", err)
		}
		if err := f.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
		return path
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadAppliesSchemaAndRowLimit(t *testing.T) {
	path := writeFixture(t, "higgs.csv", 10, false)

	cases := []struct {
		name  string
		nrows int
		want  int
	}{
		{"limit above row count", 50, 10},
		{"limit below row count", 4, 4},
		{"no limit", 0, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			df, err := dataset.Load(path, tc.nrows)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if df.Nrow() != tc.want {
				t.Fatalf("rows = %d, want %d", df.Nrow(), tc.want)
			}
			if df.Ncol() != 29 {
				t.Fatalf("cols = %d, want 29", df.Ncol())
			}
			names := df.Names()
			if names[0] != dataset.LabelColumn {
				t.Fatalf("first column = %q, want %q", names[0], dataset.LabelColumn)
			}
			if names[28] != "m_wwbb" {
				t.Fatalf("last column = %q, want m_wwbb", names[28])
			}
		})
	}
}

func TestLoadGzip(t *testing.T) {
	path := writeFixture(t, "higgs.csv.gz", 6, true)
	df, err := dataset.Load(path, 0)
	if err != nil {
		t.Fatalf("load gzip: %v", err)
	}
	if df.Nrow() != 6 || df.Ncol() != 29 {
		t.Fatalf("shape = (%d, %d), want (6, 29)", df.Nrow(), df.Ncol())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := dataset.Load(filepath.Join(t.TempDir(), "nope.csv"), 100)
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	var nf *dataset.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
}

func TestLoadLabelValues(t *testing.T) {
	path := writeFixture(t, "higgs.csv", 4, false)
	df, err := dataset.Load(path, 0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	labels := df.Col(dataset.LabelColumn).Float()
	for i, v := range labels {
		if v != 0 && v != 1 {
			t.Fatalf("label[%d] = %v, want 0 or 1", i, v)
		}
	}
}
