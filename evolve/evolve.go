// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package evolve runs the evolutionary parameter optimization: an elitist
genetic algorithm with uniform crossover and Gaussian mutation over
bounded parameter vectors.  Individuals are evaluated in parallel; the
fitness semantics live in the Problem implementation.
*/
package evolve

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"

	"github.com/emer/emergent/erand"
	"golang.org/x/sync/errgroup"

	"github.com/nsimlab/neurofit/fitness"
)

// ParamSpec describes one optimizable parameter.
type ParamSpec struct {
	Name  string  `desc:"short name used in logs"`
	Path  string  `desc:"params path the value is applied to, e.g. Cell.NaF.Gbar"`
	Min   float64 `desc:"lower bound"`
	Max   float64 `desc:"upper bound"`
	Fixed bool    `desc:"pin the parameter at Min instead of optimizing it"`
}

// Params configures the optimization run.
type Params struct {
	PopSize    int     `def:"100" desc:"population size"`
	NGen       int     `def:"50" desc:"maximum number of generations"`
	EliteFrac  float64 `def:"0.2" desc:"fraction of the population kept as elites"`
	MutSigma   float64 `def:"0.15" desc:"mutation stddev as a fraction of the parameter range"`
	CrossProb  float64 `def:"0.5" desc:"per-gene probability of taking the second parent"`
	Seed       int64   `def:"42" desc:"random seed"`
	Workers    int     `desc:"parallel evaluations, 0 = GOMAXPROCS"`
	ConvWindow int     `def:"8" desc:"generations examined for convergence"`
	ConvCutoff float64 `def:"0.01" desc:"relative best-fitness spread ending the run"`
}

func (ep *Params) Defaults() {
	ep.PopSize = 100
	ep.NGen = 50
	ep.EliteFrac = 0.2
	ep.MutSigma = 0.15
	ep.CrossProb = 0.5
	ep.Seed = 42
	ep.ConvWindow = 8
	ep.ConvCutoff = 0.01
}

// Validate checks the run configuration.
func (ep *Params) Validate() error {
	if ep.PopSize < 2 {
		return fmt.Errorf("evolve: PopSize must be at least 2, got %d", ep.PopSize)
	}
	if ep.NGen < 1 {
		return fmt.Errorf("evolve: NGen must be at least 1, got %d", ep.NGen)
	}
	if ep.EliteFrac <= 0 || ep.EliteFrac > 1 {
		return fmt.Errorf("evolve: EliteFrac must be in (0, 1], got %g", ep.EliteFrac)
	}
	return nil
}

// Problem is the optimization target.  Eval must be safe for
// concurrent use; it returns the per-component fitness values and the
// combined total for one parameter vector.  Simulation failures should
// be reported as an infinite total, not an error -- a returned error
// aborts the whole run.
type Problem interface {
	Specs() []ParamSpec
	Eval(ctx context.Context, vec []float64) (comps []float64, total float64, err error)
}

// Result is the outcome of a run.
type Result struct {
	Gens       int               `desc:"generations actually run"`
	Converged  bool              `desc:"run ended by convergence rather than NGen"`
	Best       *fitness.Scored   `desc:"best individual overall"`
	Pop        []*fitness.Scored `desc:"final population, sorted"`
	BestTotals []float64         `desc:"best total per generation"`
}

// Run performs the optimization.  The optional report callback is
// invoked after each generation with the sorted population.
func Run(ctx context.Context, pb Problem, ep *Params, report func(gen int, pop []*fitness.Scored)) (*Result, error) {
	if err := ep.Validate(); err != nil {
		return nil, err
	}
	specs := pb.Specs()
	if len(specs) == 0 {
		return nil, fmt.Errorf("evolve: problem has no parameters")
	}
	rand.Seed(ep.Seed)

	pop := make([][]float64, ep.PopSize)
	for i := range pop {
		pop[i] = initVec(specs)
	}

	res := &Result{}
	nElite := int(float64(ep.PopSize)*ep.EliteFrac + 0.5)
	if nElite < 1 {
		nElite = 1
	}
	var scored []*fitness.Scored
	for gen := 0; gen < ep.NGen; gen++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var err error
		scored, err = evalPop(ctx, pb, pop, ep.Workers)
		if err != nil {
			return nil, err
		}
		fitness.Sort(scored)
		res.Gens = gen + 1
		res.BestTotals = append(res.BestTotals, scored[0].Total)
		if report != nil {
			report(gen, scored)
		}
		if fitness.Finished(res.BestTotals, ep.ConvWindow, ep.ConvCutoff) {
			res.Converged = true
			break
		}
		if gen == ep.NGen-1 {
			break
		}
		// elites survive unchanged, the rest are bred from them
		next := make([][]float64, ep.PopSize)
		for i := 0; i < nElite; i++ {
			next[i] = scored[i].Params
		}
		for i := nElite; i < ep.PopSize; i++ {
			pa := scored[rand.Intn(nElite)].Params
			pb2 := scored[rand.Intn(nElite)].Params
			next[i] = breed(specs, pa, pb2, ep)
		}
		pop = next
	}
	res.Pop = scored
	res.Best = scored[0]
	return res, nil
}

// initVec draws a uniform random vector within the parameter bounds.
func initVec(specs []ParamSpec) []float64 {
	vec := make([]float64, len(specs))
	for i, sp := range specs {
		if sp.Fixed {
			vec[i] = sp.Min
			continue
		}
		rp := erand.RndParams{Dist: erand.Uniform, Mean: (sp.Min + sp.Max) / 2, Var: (sp.Max - sp.Min) / 2}
		vec[i] = rp.Gen(-1)
	}
	return vec
}

// breed produces one child by uniform crossover of two parents plus
// Gaussian mutation, clamped to the bounds.
func breed(specs []ParamSpec, pa, pb []float64, ep *Params) []float64 {
	child := make([]float64, len(specs))
	for i, sp := range specs {
		if sp.Fixed {
			child[i] = sp.Min
			continue
		}
		v := pa[i]
		if rand.Float64() < ep.CrossProb {
			v = pb[i]
		}
		rng := sp.Max - sp.Min
		mut := erand.RndParams{Dist: erand.Gaussian, Mean: 0, Var: ep.MutSigma * rng}
		v += mut.Gen(-1)
		if v < sp.Min {
			v = sp.Min
		}
		if v > sp.Max {
			v = sp.Max
		}
		child[i] = v
	}
	return child
}

// evalPop evaluates all individuals in parallel.
func evalPop(ctx context.Context, pb Problem, pop [][]float64, workers int) ([]*fitness.Scored, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	scored := make([]*fitness.Scored, len(pop))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range pop {
		i := i
		g.Go(func() error {
			comps, total, err := pb.Eval(gctx, pop[i])
			if err != nil {
				return err
			}
			scored[i] = &fitness.Scored{Params: pop[i], Scores: comps, Total: total}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scored, nil
}
