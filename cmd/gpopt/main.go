// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// gpopt fits globus pallidus neuron models (proto, arky) to recorded
// current-injection data.
//
// Usage:
//
//	gpopt --config=<run.yaml> [--model=proto|arky] [--runs=N] [--seed=S] [--procs=P]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/nsimlab/neurofit/archive"
	"github.com/nsimlab/neurofit/evolve"
	"github.com/nsimlab/neurofit/fit"
	"github.com/nsimlab/neurofit/fitness"
	"github.com/nsimlab/neurofit/gp"
)

var flags struct {
	config string
	model  string
	outDir string
	runs   int
	seed   int64
	procs  int
}

var rootCmd = &cobra.Command{
	Use:   "gpopt",
	Short: "Evolutionary fitting of globus pallidus neuron models",
	Long: `gpopt optimizes the parameters of a globus pallidus neuron model
(prototypical or arkypallidal) against a measurement file: either
extracted features or raw IV traces.  Every generation of every run is
appended to a versioned run log in the output directory.`,
	Args: cobra.NoArgs,
	RunE: run,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&flags.config, "config", "c", "", "Run configuration YAML (required)")
	f.StringVar(&flags.model, "model", "", "Model override: proto or arky")
	f.StringVarP(&flags.outDir, "out", "o", "", "Output directory override")
	f.IntVar(&flags.runs, "runs", 1, "Number of independent optimization runs")
	f.Int64Var(&flags.seed, "seed", 0, "Random seed override (runs use seed, seed+1, ...)")
	f.IntVar(&flags.procs, "procs", 0, "Parallel evaluations, 0 = all cores")
	rootCmd.MarkFlagRequired("config")
}

func run(cmd *cobra.Command, args []string) error {
	cf, err := archive.OpenConfig(flags.config)
	if err != nil {
		return err
	}
	if flags.model != "" {
		cf.Model = flags.model
	}
	if flags.outDir != "" {
		cf.OutDir = flags.outDir
	}
	if flags.seed != 0 {
		cf.Evolve.Seed = flags.seed
	}
	if flags.procs != 0 {
		cf.Evolve.Workers = flags.procs
	}

	typ, err := gp.TypeFromName(cf.Model)
	if err != nil {
		return err
	}
	md := gp.New(typ)
	cf.Inject.Apply(md.Inject())
	md.Win.SetInject(md.Inj.Delay, md.Inj.Width)
	if err := md.Inject().Validate(); err != nil {
		return err
	}

	mes, err := fit.LoadMeasurement(cf.Measurement, md.Windows())
	if err != nil {
		return err
	}
	pb := fit.NewProblem(md, mes)
	specs, err := cf.FixSpecs(md.Specs())
	if err != nil {
		return err
	}
	pb.Override = specs

	if err := os.MkdirAll(cf.OutDir, 0755); err != nil {
		return err
	}
	label := cf.Label
	if label == "" {
		label = md.Name()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	paramNames := make([]string, len(specs))
	for i, sp := range specs {
		paramNames[i] = sp.Name
	}
	for ri := 0; ri < flags.runs; ri++ {
		ep := cf.Evolve
		ep.Seed += int64(ri)
		lg := archive.NewRunLog(paramNames, pb.Names())
		fmt.Printf("run %d/%d: model %s, pop %d, %d generations, seed %d\n",
			ri+1, flags.runs, md.Name(), ep.PopSize, ep.NGen, ep.Seed)
		res, err := evolve.Run(ctx, pb, &ep, func(gen int, pop []*fitness.Scored) {
			lg.LogGen(gen, pop)
			fmt.Printf("  gen %3d: best %.4f\n", gen, pop[0].Total)
		})
		if err != nil {
			return err
		}
		fnm := archive.VersionedPath(cf.OutDir, label, ".tsv")
		if err := lg.Save(fnm); err != nil {
			return err
		}
		fmt.Printf("run %d done after %d generations (converged=%v): best %.4f -> %s\n",
			ri+1, res.Gens, res.Converged, res.Best.Total, fnm)
		for i, nm := range paramNames {
			fmt.Printf("  %-12s %g\n", nm, res.Best.Params[i])
		}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
