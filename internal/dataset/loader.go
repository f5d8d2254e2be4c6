package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/klauspost/compress/gzip"
)

// NotFoundError indicates the dataset file does not exist on disk.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("dataset file not found: %s", e.Path)
}

// Load reads the HIGGS dataset from a headerless, comma-separated file
// (gzip-compressed when the path ends in .gz) and applies the fixed 29-column
// schema positionally. When nrows > 0 at most that many data rows are read.
// Every column is parsed as a float; the file encodes the label in float
// notation (1.000000000000000000e+00) too, and 0/1 survive the parse exactly.
// Malformed rows are not repaired; the reader's parse error propagates.
func Load(path string, nrows int) (dataframe.DataFrame, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return dataframe.DataFrame{}, &NotFoundError{Path: path}
		}
		return dataframe.DataFrame{}, fmt.Errorf("stat dataset: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("open gzip stream: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	fmt.Printf("Loading data from %s...\n", path)
	records, err := readRecords(r, nrows)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, Columns())
	rows = append(rows, records...)
	df := dataframe.LoadRecords(rows,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.Float),
	)
	if df.Error() != nil {
		return dataframe.DataFrame{}, fmt.Errorf("build dataframe: %w", df.Error())
	}

	fmt.Printf("Loaded %d rows and %d columns.\n", df.Nrow(), df.Ncol())
	return df, nil
}

func readRecords(r io.Reader, nrows int) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1

	var out [][]string
	for nrows <= 0 || len(out) < nrows {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(out)+1, err)
		}
		out = append(out, append([]string(nil), rec...))
	}
	return out, nil
}
