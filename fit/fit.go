// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package fit glues the cell model, feature extraction and fitness
measures into an evolve.Problem: one evaluation applies a parameter
vector to a fresh cell, runs the current-injection protocol, extracts
features and scores them against the measurement.
*/
package fit

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/emer/emergent/params"

	"github.com/nsimlab/neurofit/cell"
	"github.com/nsimlab/neurofit/evolve"
	"github.com/nsimlab/neurofit/features"
	"github.com/nsimlab/neurofit/fitness"
	"github.com/nsimlab/neurofit/trace"
)

// BaselinePath is the special parameter path that sets the resting
// potential via Cell.SetBaseline instead of a struct field.
const BaselinePath = "Baseline"

// Model is a fittable neuron type: it provides a conditioned cell, the
// optimizable parameters, and the injection protocol.
type Model interface {
	// Name identifies the model (e.g. "D1", "proto").
	Name() string

	// NewCell returns a fresh cell with the model's conductance
	// condition applied, ready for parameter overrides.
	NewCell() (*cell.Cell, error)

	// Specs lists the optimizable parameters.
	Specs() []evolve.ParamSpec

	// Inject is the current-injection protocol.
	Inject() *cell.InjectParams

	// Windows are the feature-extraction windows matching Inject.
	Windows() *features.WindowParams
}

// Problem implements evolve.Problem for a model against a measurement.
type Problem struct {
	Model    Model               `desc:"the neuron model being fit"`
	Mes      features.Set        `desc:"measured features"`
	Measure  *fitness.Measure    `desc:"fitness measure"`
	Override []evolve.ParamSpec  `desc:"replaces the model specs when non-nil, e.g. with pinned values"`
}

// NewProblem returns a Problem with the standard fitness measure, its
// spike-fill penalty set to the protocol duration.
func NewProblem(md Model, mes features.Set) *Problem {
	ms := fitness.New()
	ms.Params.SpikeFill = md.Inject().InjInterval()
	return &Problem{Model: md, Mes: mes, Measure: ms}
}

// Specs implements evolve.Problem.
func (pb *Problem) Specs() []evolve.ParamSpec {
	if pb.Override != nil {
		return pb.Override
	}
	return pb.Model.Specs()
}

// Names returns the fitness component names, for logging.
func (pb *Problem) Names() []string {
	return pb.Measure.Names()
}

// Eval implements evolve.Problem: build the cell, run the protocol,
// extract and score features.  Simulation blowups come back as an
// infinite total; errors are reserved for misconfiguration.
func (pb *Problem) Eval(ctx context.Context, vec []float64) ([]float64, float64, error) {
	sims, err := pb.Simulate(ctx, vec)
	if err != nil {
		return nil, 0, err
	}
	for _, tr := range sims {
		if !finiteTrace(tr) {
			comps := make([]float64, len(pb.Measure.Funcs))
			for i := range comps {
				comps[i] = math.NaN()
			}
			return comps, math.Inf(1), nil
		}
	}
	fs := features.SetFromTraces(sims, pb.Model.Windows())
	comps, total := pb.Measure.Eval(fs, pb.Mes)
	return comps, total, nil
}

// Simulate applies the parameter vector and runs the full protocol,
// returning the voltage traces.
func (pb *Problem) Simulate(ctx context.Context, vec []float64) ([]*trace.Trace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, err := Build(pb.Model, vec)
	if err != nil {
		return nil, err
	}
	return cell.RunIV(c, pb.Model.Inject())
}

// Build returns the model's cell with the parameter vector applied.
func Build(md Model, vec []float64) (*cell.Cell, error) {
	specs := md.Specs()
	if len(vec) != len(specs) {
		return nil, fmt.Errorf("fit: %d values for %d parameters", len(vec), len(specs))
	}
	c, err := md.NewCell()
	if err != nil {
		return nil, err
	}
	sheet := Sheet(specs, vec)
	if len(*sheet) > 0 {
		if _, err := sheet.Apply(c, false); err != nil {
			return nil, err
		}
	}
	c.Update()
	for i, sp := range specs {
		if sp.Path == BaselinePath {
			c.SetBaseline(float32(vec[i]))
		}
	}
	c.Init()
	return c, nil
}

// Sheet renders a parameter vector as an applicable param sheet,
// skipping special paths handled outside the struct hierarchy.
func Sheet(specs []evolve.ParamSpec, vec []float64) *params.Sheet {
	pars := params.Params{}
	for i, sp := range specs {
		if sp.Path == BaselinePath {
			continue
		}
		pars[sp.Path] = strconv.FormatFloat(vec[i], 'g', -1, 64)
	}
	if len(pars) == 0 {
		return &params.Sheet{}
	}
	return &params.Sheet{
		{Sel: "Cell", Desc: "optimized parameter vector", Params: pars},
	}
}

func finiteTrace(tr *trace.Trace) bool {
	for _, v := range tr.Vm {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
