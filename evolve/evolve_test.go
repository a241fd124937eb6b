// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evolve

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// sphere is a minimal test problem: fitness is the squared distance
// from the origin, minimum 0 at (0, 0, 0).
type sphere struct {
	fixed bool
}

func (sp *sphere) Specs() []ParamSpec {
	specs := []ParamSpec{
		{Name: "x", Path: "X", Min: -5, Max: 5},
		{Name: "y", Path: "Y", Min: -5, Max: 5},
		{Name: "z", Path: "Z", Min: -5, Max: 5},
	}
	if sp.fixed {
		specs[2].Fixed = true
		specs[2].Min = 3
	}
	return specs
}

func (sp *sphere) Eval(ctx context.Context, vec []float64) ([]float64, float64, error) {
	total := 0.0
	comps := make([]float64, len(vec))
	for i, x := range vec {
		comps[i] = x * x
		total += x * x
	}
	return comps, total, nil
}

func testParams() *Params {
	ep := &Params{}
	ep.Defaults()
	ep.PopSize = 24
	ep.NGen = 20
	ep.ConvWindow = 100 // never converge early in these tests
	ep.Workers = 4
	return ep
}

func TestRunMonotonic(t *testing.T) {
	ep := testParams()
	res, err := Run(context.Background(), &sphere{}, ep, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Gens != ep.NGen {
		t.Errorf("gens: got %d, want %d", res.Gens, ep.NGen)
	}
	// elitism guarantees the per-generation best never gets worse
	for i := 1; i < len(res.BestTotals); i++ {
		if res.BestTotals[i] > res.BestTotals[i-1] {
			t.Errorf("best worsened at gen %d: %g -> %g", i, res.BestTotals[i-1], res.BestTotals[i])
		}
	}
	if res.Best.Total != res.BestTotals[len(res.BestTotals)-1] {
		t.Errorf("best total %g != last generation best %g", res.Best.Total, res.BestTotals[len(res.BestTotals)-1])
	}
	for _, x := range res.Best.Params {
		if x < -5 || x > 5 {
			t.Errorf("parameter out of bounds: %g", x)
		}
	}
}

func TestRunReproducible(t *testing.T) {
	ep := testParams()
	a, err := Run(context.Background(), &sphere{}, ep, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Run(context.Background(), &sphere{}, ep, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a.Best.Params, b.Best.Params); diff != "" {
		t.Errorf("same seed, different result (-a +b):\n%s", diff)
	}
}

func TestFixedParam(t *testing.T) {
	ep := testParams()
	res, err := Run(context.Background(), &sphere{fixed: true}, ep, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range res.Pop {
		if s.Params[2] != 3 {
			t.Fatalf("fixed parameter moved: got %g, want 3", s.Params[2])
		}
	}
	// the fixed dimension keeps the total away from zero
	if res.Best.Total < 9 {
		t.Errorf("total: got %g, want >= 9", res.Best.Total)
	}
}

func TestValidate(t *testing.T) {
	ep := testParams()
	ep.PopSize = 1
	if _, err := Run(context.Background(), &sphere{}, ep, nil); err == nil {
		t.Error("expected error for PopSize 1")
	}
}

func TestCancel(t *testing.T) {
	ep := testParams()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, &sphere{}, ep, nil); err == nil {
		t.Error("expected error from canceled context")
	}
}
