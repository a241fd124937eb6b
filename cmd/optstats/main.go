// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// optstats aggregates and analyzes saved optimization runs.
//
// Usage:
//
//	optstats corr    --dir=<outdir> [--out=<file.tsv>]
//	optstats matrix  --dir=<outdir> [--out=<file.tsv>]
//	optstats best    --dir=<outdir> [--out=<file.csv>]
//	optstats summary --dir=<outdir>
package main

import (
	"fmt"
	"os"

	"github.com/emer/etable/etable"
	"github.com/goki/gi/gi"
	"github.com/spf13/cobra"

	"github.com/nsimlab/neurofit/analysis"
)

var flags struct {
	dir string
	out string
}

var rootCmd = &cobra.Command{
	Use:   "optstats",
	Short: "Statistics over saved neuron optimization runs",
	Long: `optstats reads the versioned run logs produced by spnopt and gpopt
from a directory and aggregates them: parameter-fitness correlations,
a full correlation matrix, the best individual per run (as CSV for
import into statistics tooling), and a per-model summary.`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

var corrCmd = &cobra.Command{
	Use:   "corr",
	Short: "Correlate each parameter with the combined fitness",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := analysis.LoadAll(flags.dir)
		if err != nil {
			return err
		}
		return emit(analysis.ParamCorrs(all, nil))
	},
}

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Pairwise correlation matrix of all parameters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := analysis.LoadAll(flags.dir)
		if err != nil {
			return err
		}
		return emit(analysis.CorrMatrix(all, nil))
	},
}

var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Best individual of each run, as comma-separated CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := analysis.LoadAll(flags.dir)
		if err != nil {
			return err
		}
		best := analysis.BestTable(all)
		if flags.out != "" {
			return analysis.SaveCSV(best, flags.out)
		}
		return best.WriteCSV(os.Stdout, etable.Comma, etable.Headers)
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Per-model run summary and archive size",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := analysis.LoadAll(flags.dir)
		if err != nil {
			return err
		}
		if err := emit(analysis.Summary(all)); err != nil {
			return err
		}
		sz, err := analysis.ArchiveSize(flags.dir)
		if err != nil {
			return err
		}
		fmt.Printf("archive: %s\n", sz)
		return nil
	},
}

// emit writes a table to --out as .tsv, or to stdout.
func emit(dt *etable.Table) error {
	if flags.out != "" {
		return dt.SaveCSV(gi.FileName(flags.out), etable.Tab, etable.Headers)
	}
	return dt.WriteCSV(os.Stdout, etable.Tab, etable.Headers)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.dir, "dir", "d", ".", "Directory holding the run logs")
	pf.StringVarP(&flags.out, "out", "o", "", "Output file (default: stdout)")
	rootCmd.AddCommand(corrCmd)
	rootCmd.AddCommand(matrixCmd)
	rootCmd.AddCommand(bestCmd)
	rootCmd.AddCommand(summaryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
