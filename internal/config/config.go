package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// DataFile is the default dataset path used when no argument is given.
	DataFile string `mapstructure:"data_file" yaml:"data_file"`
	// NRows caps how many data rows are loaded; 0 loads everything.
	NRows int `mapstructure:"nrows" yaml:"nrows"`
	// OutputDir receives every report artifact.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// Chart geometry for the larger single-figure artifacts.
	ChartWidth  int `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight int `mapstructure:"chart_height" yaml:"chart_height"`

	// SampleSeed drives every sampled plot so runs are repeatable.
	SampleSeed int64 `mapstructure:"sample_seed" yaml:"sample_seed"`
}

// Default returns the built-in configuration, the values every other source
// overrides.
func Default() *Global {
	return &Global{
		DataFile:    "HIGGS.csv.gz",
		NRows:       500000,
		OutputDir:   filepath.Join("results", "eda"),
		ChartWidth:  1280,
		ChartHeight: 960,
		SampleSeed:  42,
	}
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (applied by the caller) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("HIGGSEDA")
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("data_file", d.DataFile)
	v.SetDefault("nrows", d.NRows)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("chart_width", d.ChartWidth)
	v.SetDefault("chart_height", d.ChartHeight)
	v.SetDefault("sample_seed", d.SampleSeed)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".higgs-eda"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Save writes the given configuration to cfgFile, or to
// ~/.higgs-eda/config.yaml when cfgFile is empty.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".higgs-eda")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
