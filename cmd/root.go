package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/Aather-nabi/EDA-HIGGS/internal/config"
	"github.com/Aather-nabi/EDA-HIGGS/internal/dataset"
	"github.com/Aather-nabi/EDA-HIGGS/internal/eda"
)

var (
	// Global flags (wired to config at load time)
	cfgFile    string
	flagNRows  int
	flagOutput string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "higgs-eda [data-file]",
	Short: "Exploratory data analysis reports for the UCI HIGGS dataset",
	Long: `higgs-eda loads up to N rows of the HIGGS dataset (headerless CSV,
optionally gzip-compressed, 29 fixed columns) and writes a battery of
statistical reports and chart images into the output directory.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			// config load failed earlier; degrade to the built-in defaults
			cfg = cfgpkg.Default()
		}
		path := cfg.DataFile
		if len(args) == 1 {
			path = args[0]
		}
		f := cmd.Flags()
		if f.Changed("nrows") {
			cfg.NRows = flagNRows
		}
		if f.Changed("output") {
			cfg.OutputDir = flagOutput
		}

		fmt.Printf("Loading up to %d rows...\n", cfg.NRows)
		df, err := dataset.Load(path, cfg.NRows)
		if err != nil {
			return fmt.Errorf("load dataset: %w", err)
		}

		gen, err := eda.NewGenerator(df, eda.Options{
			OutputDir:   cfg.OutputDir,
			DataFile:    path,
			Seed:        cfg.SampleSeed,
			ChartWidth:  cfg.ChartWidth,
			ChartHeight: cfg.ChartHeight,
		})
		if err != nil {
			return err
		}

		results := gen.Run()
		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
			}
		}
		if failed > 0 {
			fmt.Printf("⚠ %d of %d steps failed; remaining results saved in %s\n", failed, len(results), gen.OutputDir())
			return nil
		}
		fmt.Printf("✓ EDA complete. All results saved in %s\n", gen.OutputDir())
		return nil
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.higgs-eda/config.yaml)")
	rootCmd.Flags().IntVar(&flagNRows, "nrows", 500000, "number of rows to load (0 loads all)")
	rootCmd.Flags().StringVar(&flagOutput, "output", "", "output directory for artifacts (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}
