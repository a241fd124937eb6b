// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fitness

import (
	"math"
	"testing"

	"github.com/nsimlab/neurofit/features"
	"github.com/nsimlab/neurofit/vartype"
)

// mesSet is a small measurement: one hyperpolarizing, one spiking.
func mesSet() features.Set {
	return features.Set{
		{
			Injection:     -150,
			Baseline:      vartype.New(-80, 1),
			Steady:        vartype.New(-90, 1),
			Response:      vartype.New(-10, 1),
			Rectification: vartype.New(2, 0.5),
			FallingTau:    vartype.New(0.05, 0.01),
			FallingAmp:    vartype.New(-10, 1),
			ChargingHalf:  vartype.New(0.03, 0.005),
			SpikeHeight:   vartype.NaN,
			SpikeWidth:    vartype.NaN,
			SpikeAHP:      vartype.NaN,
			MeanISI:       vartype.NaN,
			Latency:       math.NaN(),
			ISISpread:     math.NaN(),
		},
		{
			Injection:    150,
			Baseline:     vartype.New(-80, 1),
			Steady:       vartype.New(-60, 1),
			Response:     vartype.New(20, 1),
			FallingTau:   vartype.NaN,
			FallingAmp:   vartype.NaN,
			ChargingHalf: vartype.New(0.01, 0.005),
			SpikeCount:   3,
			SpikeTimes:   []float64{0.25, 0.3, 0.35},
			SpikeHeight:  vartype.New(20, 2),
			SpikeWidth:   vartype.New(0.001, 0.0002),
			SpikeAHP:     vartype.New(15, 2),
			Latency:      0.05,
			MeanISI:      vartype.New(0.05, 0.005),
			ISISpread:    0.001,
			Rectification: vartype.NaN,
		},
	}
}

func TestPerfectMatch(t *testing.T) {
	ms := New()
	mes := mesSet()
	comps, total := ms.Eval(mes, mes)
	if total != 0 {
		t.Errorf("self fitness: got %g, want 0", total)
	}
	for i, c := range comps {
		if !math.IsNaN(c) && c != 0 {
			t.Errorf("component %s: got %g, want 0 or NaN", ms.Funcs[i].Name, c)
		}
	}
}

func TestWorseIsHigher(t *testing.T) {
	ms := New()
	mes := mesSet()
	near := mesSet()
	near[0].Baseline.X = -81
	far := mesSet()
	far[0].Baseline.X = -85
	_, tn := ms.Eval(near, mes)
	_, tf := ms.Eval(far, mes)
	if !(tn > 0 && tf > tn) {
		t.Errorf("ordering: near=%g far=%g, want 0 < near < far", tn, tf)
	}
}

func TestSpikeCountAndTime(t *testing.T) {
	ms := New()
	mes := mesSet()
	sim := mesSet()
	sim[1].SpikeCount = 5
	sim[1].SpikeTimes = []float64{0.25, 0.3, 0.35, 0.4, 0.45}
	cs, _ := ms.Eval(sim, mes)
	got := map[string]float64{}
	for i, nm := range ms.Names() {
		got[nm] = cs[i]
	}
	if got["spike_count"] <= 0 {
		t.Errorf("spike_count: got %g, want > 0", got["spike_count"])
	}
	// two unmatched spikes penalized by the fill interval
	wantST := math.Sqrt(2*ms.Params.SpikeFill*ms.Params.SpikeFill/5) / ms.Params.MinDevTime
	if math.Abs(got["spike_time"]-wantST) > 1e-9 {
		t.Errorf("spike_time: got %g, want %g", got["spike_time"], wantST)
	}
}

func TestTotalSkipsNaN(t *testing.T) {
	ms := New()
	comps := make([]float64, len(ms.Funcs))
	for i := range comps {
		comps[i] = math.NaN()
	}
	if !math.IsInf(ms.Total(comps), 1) {
		t.Errorf("all-NaN total: got %g, want +Inf", ms.Total(comps))
	}
	comps[0] = 2
	if ms.Total(comps) != 2 {
		t.Errorf("single component total: got %g, want 2", ms.Total(comps))
	}
}

func TestSortBest(t *testing.T) {
	pop := []*Scored{
		{Total: 3}, {Total: math.NaN()}, {Total: 1}, {Total: 2},
	}
	Sort(pop)
	if pop[0].Total != 1 || pop[1].Total != 2 || pop[2].Total != 3 || !math.IsNaN(pop[3].Total) {
		t.Errorf("sort order wrong: %v %v %v %v", pop[0].Total, pop[1].Total, pop[2].Total, pop[3].Total)
	}
	if b := Best(pop); b.Total != 1 {
		t.Errorf("best: got %g, want 1", b.Total)
	}
}

func TestMultiBest(t *testing.T) {
	a := &Scored{Scores: []float64{1, 3}, Total: 2}
	b := &Scored{Scores: []float64{3, 1}, Total: 2.1}
	c := &Scored{Scores: []float64{2, 2}, Total: 2.05} // on the front too
	d := &Scored{Scores: []float64{4, 4}, Total: 4}    // dominated by all
	e := &Scored{Scores: []float64{math.NaN(), math.NaN()}, Total: math.NaN()}
	got := MultiBest([]*Scored{e, d, b, a, c}, 5, 0)
	if len(got) != 3 {
		t.Fatalf("got %d, want 3", len(got))
	}
	if got[0] != a || got[1] != c || got[2] != b {
		t.Errorf("front order wrong: %v", got)
	}
	// a dominated individual never fills out a short front
	got = MultiBest([]*Scored{d, a}, 3, 0)
	if len(got) != 1 || got[0] != a {
		t.Errorf("dominated fill: got %v, want just the best", got)
	}
	// near-duplicate front members are pruned
	c2 := &Scored{Scores: []float64{0.95, 3.05}, Total: 2.04}
	got = MultiBest([]*Scored{a, b, c2}, 3, 0.5)
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("similarity pruning: got %v, want a and b", got)
	}
}

func TestChargingCurveSpiking(t *testing.T) {
	ms := New()
	mes := mesSet()
	sim := mesSet()
	// only the spiking sweep contributes to the charging-curve component
	sim[0].ChargingHalf = vartype.New(0.3, 0.005)
	cs, _ := ms.Eval(sim, mes)
	for i, nm := range ms.Names() {
		if nm == "charging_curve" && cs[i] != 0 {
			t.Errorf("charging_curve: got %g, want 0", cs[i])
		}
	}
	// no spiking measurement at all: the component is undefined
	mes = mes[:1]
	cs, _ = ms.Eval(mes, mes)
	for i, nm := range ms.Names() {
		if nm == "charging_curve" && !math.IsNaN(cs[i]) {
			t.Errorf("charging_curve without spikes: got %g, want NaN", cs[i])
		}
	}
}

func TestNonsimilar(t *testing.T) {
	lo := []float64{0, 0}
	hi := []float64{10, 10}
	a := &Scored{Params: []float64{1, 1}, Total: 1}
	b := &Scored{Params: []float64{1.1, 1.1}, Total: 2} // too close to a
	c := &Scored{Params: []float64{9, 9}, Total: 3}
	got := Nonsimilar([]*Scored{a, b, c}, lo, hi, 0.1)
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Errorf("got %d kept, want a and c", len(got))
	}
}

func TestFinished(t *testing.T) {
	if Finished([]float64{5, 4, 3}, 5, 0.01) {
		t.Error("finished before window filled")
	}
	if Finished([]float64{5, 4, 3, 2, 1}, 5, 0.01) {
		t.Error("finished while still improving")
	}
	flat := []float64{5, 4, 1.0001, 1.0002, 1.0001, 1.0, 1.0002}
	if !Finished(flat, 5, 0.01) {
		t.Error("not finished on flat tail")
	}
}
