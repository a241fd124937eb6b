// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package fitness compares the feature set of a simulated cell against a
measured one.  Each fitness component reduces one feature across all
matched injection currents to a deviation-normalized root-mean-square
difference, and the combined fitness is the weighted rms of the
components (NaN components are skipped, so a measurement lacking some
feature does not poison the total).
*/
package fitness

import (
	"math"

	"github.com/nsimlab/neurofit/features"
	"github.com/nsimlab/neurofit/vartype"
)

// Params are the weighting knobs of the fitness measures.
type Params struct {
	MinDevVm   float64 `def:"0.5" desc:"deviation floor for voltage features (mV)"`
	MinDevTime float64 `def:"0.005" desc:"deviation floor for time features (sec)"`
	SpikeFill  float64 `def:"0.9" desc:"error assigned to an unmatched spike (sec) -- the injection interval"`
}

func (pr *Params) Defaults() {
	pr.MinDevVm = 0.5
	pr.MinDevTime = 0.005
	pr.SpikeFill = 0.9
}

// Func is one named fitness component.
type Func struct {
	Name   string
	Weight float64
	Eval   func(sim, mes features.Set, pr *Params) float64
}

// Measure is a weighted collection of fitness components.
type Measure struct {
	Params Params `view:"inline" desc:"weighting knobs"`
	Funcs  []Func `view:"-" desc:"the components"`
}

// New returns the standard measure with all components at weight 1.
func New() *Measure {
	ms := &Measure{}
	ms.Params.Defaults()
	ms.Funcs = StdFuncs()
	return ms
}

// Names returns the component names in evaluation order.
func (ms *Measure) Names() []string {
	nms := make([]string, len(ms.Funcs))
	for i, f := range ms.Funcs {
		nms[i] = f.Name
	}
	return nms
}

// Eval computes all component values and the combined total for a
// simulated feature set against the measurement.
func (ms *Measure) Eval(sim, mes features.Set) (comps []float64, total float64) {
	comps = make([]float64, len(ms.Funcs))
	for i, f := range ms.Funcs {
		comps[i] = f.Eval(sim, mes, &ms.Params)
	}
	return comps, ms.Total(comps)
}

// Total combines component values into the weighted rms, skipping NaNs.
// All-NaN gives +Inf so a failed simulation always loses.
func (ms *Measure) Total(comps []float64) float64 {
	ss, ws := 0.0, 0.0
	for i, c := range comps {
		if math.IsNaN(c) {
			continue
		}
		w := ms.Funcs[i].Weight
		ss += w * c * c
		ws += w
	}
	if ws == 0 {
		return math.Inf(1)
	}
	return math.Sqrt(ss / ws)
}

// varFitness reduces one Var feature to the rms of
// deviation-normalized sim-mes differences across matched injections.
func varFitness(sim, mes features.Set, minDev float64,
	keep func(r *features.Record) bool,
	get func(r *features.Record) vartype.Var) float64 {
	var ds []float64
	for i := range mes {
		mr := &mes[i]
		if keep != nil && !keep(mr) {
			continue
		}
		sr := sim.Find(mr.Injection)
		if sr == nil {
			continue
		}
		d := vartype.SubDev(get(sr), get(mr), minDev)
		ds = append(ds, d.Relative())
	}
	return vartype.RMSPlain(ds)
}

// hyper keeps hyperpolarizing sweeps, at or below -10 pA.
func hyper(r *features.Record) bool { return r.Injection <= -10 }

// subthresh keeps injections at or below 110 pA, where the steady-state
// response is a meaningful depolarization rather than spike drive.
func subthresh(r *features.Record) bool { return r.Injection <= 110 }

// spiking keeps measurements with at least one spike.
func spiking(r *features.Record) bool { return r.SpikeCount >= 1 }

// StdFuncs returns the standard fitness components, all at weight 1.
func StdFuncs() []Func {
	return []Func{
		{"baseline", 1, func(s, m features.Set, pr *Params) float64 {
			return varFitness(s, m, pr.MinDevVm, nil,
				func(r *features.Record) vartype.Var { return r.Baseline })
		}},
		{"response", 1, func(s, m features.Set, pr *Params) float64 {
			return varFitness(s, m, pr.MinDevVm, subthresh,
				func(r *features.Record) vartype.Var { return r.Response })
		}},
		{"rectification", 1, func(s, m features.Set, pr *Params) float64 {
			return varFitness(s, m, pr.MinDevVm, hyper,
				func(r *features.Record) vartype.Var { return r.Rectification })
		}},
		{"falling_curve_time", 1, func(s, m features.Set, pr *Params) float64 {
			return varFitness(s, m, pr.MinDevTime, hyper,
				func(r *features.Record) vartype.Var { return r.FallingTau })
		}},
		{"charging_curve", 1, func(s, m features.Set, pr *Params) float64 {
			return varFitness(s, m, pr.MinDevTime, spiking,
				func(r *features.Record) vartype.Var { return r.ChargingHalf })
		}},
		{"spike_count", 1, SpikeCount},
		{"spike_time", 1, SpikeTime},
		{"spike_latency", 1, func(s, m features.Set, pr *Params) float64 {
			return varFitness(s, m, pr.MinDevTime, nil,
				func(r *features.Record) vartype.Var { return vartype.Exact(r.Latency) })
		}},
		{"mean_isi", 1, func(s, m features.Set, pr *Params) float64 {
			return varFitness(s, m, pr.MinDevTime, nil,
				func(r *features.Record) vartype.Var { return r.MeanISI })
		}},
		{"isi_spread", 1, func(s, m features.Set, pr *Params) float64 {
			return varFitness(s, m, pr.MinDevTime, nil,
				func(r *features.Record) vartype.Var { return vartype.Exact(r.ISISpread) })
		}},
		{"spike_height", 1, func(s, m features.Set, pr *Params) float64 {
			return varFitness(s, m, pr.MinDevVm, nil,
				func(r *features.Record) vartype.Var { return r.SpikeHeight })
		}},
		{"spike_width", 1, func(s, m features.Set, pr *Params) float64 {
			return varFitness(s, m, pr.MinDevTime, nil,
				func(r *features.Record) vartype.Var { return r.SpikeWidth })
		}},
		{"spike_ahp", 1, func(s, m features.Set, pr *Params) float64 {
			return varFitness(s, m, pr.MinDevVm, nil,
				func(r *features.Record) vartype.Var { return r.SpikeAHP })
		}},
	}
}

// SpikeCount is the rms difference in spike counts across injections,
// normalized by sqrt(measured count + 1).
func SpikeCount(sim, mes features.Set, pr *Params) float64 {
	var ds []float64
	for i := range mes {
		mr := &mes[i]
		sr := sim.Find(mr.Injection)
		if sr == nil {
			continue
		}
		d := float64(sr.SpikeCount-mr.SpikeCount) / math.Sqrt(float64(mr.SpikeCount)+1)
		ds = append(ds, d)
	}
	return vartype.RMSPlain(ds)
}

// SpikeTime is the rms difference of paired spike times, normalized by
// the time deviation floor.  Unmatched spikes on either side are
// penalized with the SpikeFill interval.
func SpikeTime(sim, mes features.Set, pr *Params) float64 {
	var ds []float64
	any := false
	for i := range mes {
		mr := &mes[i]
		sr := sim.Find(mr.Injection)
		if sr == nil {
			continue
		}
		ns, nm := len(sr.SpikeTimes), len(mr.SpikeTimes)
		if ns > 0 || nm > 0 {
			any = true
		}
		n := ns
		if nm > n {
			n = nm
		}
		for k := 0; k < n; k++ {
			d := pr.SpikeFill
			if k < ns && k < nm {
				d = sr.SpikeTimes[k] - mr.SpikeTimes[k]
			}
			ds = append(ds, d/pr.MinDevTime)
		}
	}
	if !any {
		return math.NaN()
	}
	return vartype.RMSPlain(ds)
}
