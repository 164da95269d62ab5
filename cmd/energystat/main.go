// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command energystat compares the energy consumed by two experimental
// profiles across repeated runs.
//
// Each run is a CSV file, such as EnergiBridge output, with a
// cumulative energy column. Files whose paths contain "profile1" or
// "profile2" are assigned to the respective profile. For each profile,
// energystat computes the energy of every run, checks the runs for
// normality with the Shapiro-Wilk test, and then compares the profiles
// with Welch's t-test and Cohen's d if both look normal, or with the
// Mann-Whitney U test and the difference of medians otherwise.
//
// Usage:
//
//	energystat [compare] [flags]
//	energystat plot --out plots.svg [flags]
//
// Settings come from, in increasing precedence, built-in defaults, the
// YAML file named by --config, ENERGYSTAT_* environment variables
// (also read from a .env file in the current directory), and flags.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/greensoft-lab/energystat/analysis"
	"github.com/greensoft-lab/energystat/config"
	"github.com/greensoft-lab/energystat/energyfmt"
	"github.com/greensoft-lab/energystat/plot"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// cli holds the state shared by the energystat commands.
type cli struct {
	stdout io.Writer

	// Flags.
	configPath string
	envFile    string
	dataFolder string
	column     string
	alpha      float64
	format     string
	verbose    bool
	out        string
	bins       int

	// newLogger builds the logger once flags are parsed.
	newLogger func(verbose bool) (*zap.Logger, error)
	log       *zap.Logger
}

func productionLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

func newCLI(stdout io.Writer) *cli {
	return &cli{stdout: stdout, newLogger: productionLogger}
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "energystat",
		Short: "Compare the energy consumption of two profiles",
		Long: `energystat decides whether two sets of repeated energy measurements
differ significantly and reports the size of the difference.

Run without a subcommand to compare the profiles.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := c.newLogger(c.verbose)
			if err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			c.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
		RunE: c.runCompare,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "read settings from YAML `file`")
	pf.StringVar(&c.envFile, "env-file", ".env", "load environment variables from `file` if it exists")
	pf.StringVarP(&c.dataFolder, "data", "d", "", "read measurement files from `dir`")
	pf.StringVar(&c.column, "column", "", "cumulative energy column `header`")
	pf.Float64Var(&c.alpha, "alpha", 0, "significance level for all tests")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	compare := &cobra.Command{
		Use:   "compare",
		Short: "Test whether the profiles differ and report the effect size",
		Args:  cobra.NoArgs,
		RunE:  c.runCompare,
	}
	root.Flags().StringVar(&c.format, "format", "", "report `format`: text or json")
	compare.Flags().StringVar(&c.format, "format", "", "report `format`: text or json")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "Draw violin, box, and histogram plots of both profiles as SVG",
		Args:  cobra.NoArgs,
		RunE:  c.runPlot,
	}
	plotCmd.Flags().StringVarP(&c.out, "out", "o", "energy_plots.svg", "write the SVG document to `file` (- for stdout)")
	plotCmd.Flags().IntVar(&c.bins, "bins", plot.DefaultBins, "number of histogram bins")

	root.AddCommand(compare, plotCmd)
	return root
}

// loadConfig resolves the configuration from all sources.
func (c *cli) loadConfig(cmd *cobra.Command) (config.Config, error) {
	if c.envFile != "" {
		if err := config.LoadDotEnv(c.envFile); err != nil {
			return config.Config{}, err
		}
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataFolder = c.dataFolder
	}
	if flags.Changed("column") {
		cfg.EnergyColumn = c.column
	}
	if flags.Changed("alpha") {
		cfg.Alpha = c.alpha
	}
	if f := flags.Lookup("format"); f != nil && f.Changed {
		cfg.Format = c.format
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	c.log.Debug("configuration",
		zap.String("data_folder", cfg.DataFolder),
		zap.String("energy_column", cfg.EnergyColumn),
		zap.Float64("alpha", cfg.Alpha))
	return cfg, nil
}

func (c *cli) runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}
	report, err := analysis.New(cfg, analysis.WithLogger(c.log)).Run()
	if err != nil {
		return err
	}
	if cfg.Format == config.FormatJSON {
		return report.WriteJSON(c.stdout)
	}
	return report.WriteText(c.stdout)
}

func (c *cli) runPlot(cmd *cobra.Command, args []string) error {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}
	groups, err := analysis.New(cfg, analysis.WithLogger(c.log)).Load()
	if err != nil {
		return err
	}
	opts := plot.Options{
		Unit:  groups.Unit,
		Bins:  c.bins,
		Title: fmt.Sprintf("Energy per run (%s)", cfg.EnergyColumn),
	}
	all := []energyfmt.Group{groups.Profile1, groups.Profile2}

	if c.out == "-" {
		return plot.Render(c.stdout, all, opts)
	}
	f, err := os.Create(c.out)
	if err != nil {
		return err
	}
	if err := plot.Render(f, all, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	c.log.Info("wrote plots", zap.String("file", c.out))
	return nil
}

func main() {
	c := newCLI(os.Stdout)
	if err := c.rootCmd().Execute(); err != nil {
		if c.log != nil {
			c.log.Error("energystat failed", zap.Error(err))
			_ = c.log.Sync()
		} else {
			fmt.Fprintf(os.Stderr, "energystat: %v\n", err)
		}
		os.Exit(1)
	}
}
