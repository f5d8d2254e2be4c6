package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Aather-nabi/EDA-HIGGS/internal/config"
)

func TestDefault(t *testing.T) {
	d := config.Default()
	if d.DataFile != "HIGGS.csv.gz" {
		t.Errorf("DataFile = %q", d.DataFile)
	}
	if d.NRows != 500000 {
		t.Errorf("NRows = %d", d.NRows)
	}
	if d.SampleSeed != 42 {
		t.Errorf("SampleSeed = %d", d.SampleSeed)
	}

	// Load with no overriding sources resolves to exactly the defaults
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	loaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *loaded != *d {
		t.Fatalf("defaults diverged:\n got %+v\nwant %+v", loaded, d)
	}
}

func TestLoadDefaults(t *testing.T) {
	// a config file that sets nothing leaves every default in place
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.DataFile != "HIGGS.csv.gz" {
		t.Errorf("DataFile = %q", c.DataFile)
	}
	if c.NRows != 500000 {
		t.Errorf("NRows = %d", c.NRows)
	}
	if c.OutputDir != filepath.Join("results", "eda") {
		t.Errorf("OutputDir = %q", c.OutputDir)
	}
	if c.ChartWidth != 1280 || c.ChartHeight != 960 {
		t.Errorf("chart geometry = %dx%d", c.ChartWidth, c.ChartHeight)
	}
	if c.SampleSeed != 42 {
		t.Errorf("SampleSeed = %d", c.SampleSeed)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "data_file: /data/higgs.csv\nnrows: 1234\nchart_width: 800\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.DataFile != "/data/higgs.csv" {
		t.Errorf("DataFile = %q", c.DataFile)
	}
	if c.NRows != 1234 {
		t.Errorf("NRows = %d", c.NRows)
	}
	if c.ChartWidth != 800 {
		t.Errorf("ChartWidth = %d", c.ChartWidth)
	}
	// untouched keys keep their defaults
	if c.ChartHeight != 960 {
		t.Errorf("ChartHeight = %d", c.ChartHeight)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	in := &config.Global{
		DataFile:    "higgs_sample.csv",
		NRows:       5000,
		OutputDir:   "out",
		ChartWidth:  640,
		ChartHeight: 480,
		SampleSeed:  7,
	}
	if err := config.Save(in, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *out != *in {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", out, in)
	}
}
