// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package features extracts the electrophysiological features used for
model fitting from a voltage trace: baseline and steady-state potential,
response and rectification, the falling-curve time constant, the
charging curve, and spike shape / timing statistics.

Every feature that reduces a sample series is reported as a vartype.Var
(value +- deviation) so fitness measures can weight by uncertainty.
*/
package features

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/nsimlab/neurofit/trace"
	"github.com/nsimlab/neurofit/vartype"
)

// WindowParams defines the analysis windows of the injection protocol,
// all times in seconds from trace start.
type WindowParams struct {
	BaselineBefore float64 `desc:"baseline is taken before this time (current onset)"`
	BaselineAfter  float64 `desc:"... and after this time (current offset)"`
	SteadyAfter    float64 `desc:"steady-state window start"`
	SteadyBefore   float64 `desc:"steady-state window end"`
	SteadyCutoff   float64 `def:"80" desc:"percentile cutoff excluding spikes from the steady-state mean"`
	FallingWindow  int     `def:"20" desc:"smoothing window for the falling-curve search (samples)"`
	SpikeThresh    float64 `def:"0" desc:"minimum peak potential to count as a spike (mV)"`
	SpikeHyst      float64 `def:"20" desc:"repolarization below SpikeThresh-SpikeHyst ends a spike (mV)"`
}

func (wp *WindowParams) Defaults() {
	wp.BaselineBefore = 0.2
	wp.BaselineAfter = 0.6
	wp.SteadyAfter = 0.3
	wp.SteadyBefore = 0.6
	wp.SteadyCutoff = 80
	wp.FallingWindow = 20
	wp.SpikeThresh = 0
	wp.SpikeHyst = 20
}

// SetInject derives the analysis windows from an injection protocol
// with given onset delay and pulse width (sec).
func (wp *WindowParams) SetInject(delay, width float64) {
	wp.BaselineBefore = delay
	wp.BaselineAfter = delay + width
	wp.SteadyAfter = delay + 0.25*width
	wp.SteadyBefore = delay + width
}

// Record holds all features extracted from one trace.
type Record struct {
	Injection     float64     `desc:"injected current (pA)"`
	Baseline      vartype.Var `desc:"resting potential outside the pulse (mV)"`
	Steady        vartype.Var `desc:"steady-state potential during the pulse (mV)"`
	Response      vartype.Var `desc:"Steady - Baseline (mV)"`
	Rectification vartype.Var `desc:"sag: Steady minus the hyperpolarization trough (mV)"`
	FallingTau    vartype.Var `desc:"falling-curve exponential time constant (sec)"`
	FallingAmp    vartype.Var `desc:"falling-curve exponential amplitude (mV)"`
	ChargingHalf  vartype.Var `desc:"time to half of the response after onset (sec)"`
	SpikeCount    int         `desc:"number of spikes"`
	SpikeTimes    []float64   `desc:"spike peak times (sec)"`
	SpikeHeight   vartype.Var `desc:"mean spike peak potential (mV)"`
	SpikeWidth    vartype.Var `desc:"mean spike width at half height (sec)"`
	SpikeAHP      vartype.Var `desc:"mean after-hyperpolarization depth (mV)"`
	Latency       float64     `desc:"first spike time after onset (sec), NaN if none"`
	MeanISI       vartype.Var `desc:"mean inter-spike interval (sec)"`
	ISISpread     float64     `desc:"max - min inter-spike interval (sec), NaN below 2 ISIs"`
}

// percentile returns the p-th percentile (0-100) of xs.
func percentile(xs []float64, p float64) float64 {
	s := make([]float64, len(xs))
	copy(s, xs)
	sort.Float64s(s)
	return stat.Quantile(p/100, stat.Empirical, s, nil)
}

// trimmedMean is the mean +- sem of values between the 5th and 95th
// percentile -- robust against stimulus artifacts.
func trimmedMean(xs []float64) vartype.Var {
	if len(xs) == 0 {
		return vartype.NaN
	}
	lo := percentile(xs, 5)
	hi := percentile(xs, 95)
	var cut []float64
	for _, x := range xs {
		if x > lo && x < hi {
			cut = append(cut, x)
		}
	}
	if len(cut) == 0 {
		return vartype.Mean(xs)
	}
	return vartype.Mean(cut)
}

// BaselineOf returns the baseline potential: the trimmed mean of all
// samples outside the [BaselineBefore, BaselineAfter] pulse window.
func BaselineOf(tr *trace.Trace, wp *WindowParams) vartype.Var {
	var out []float64
	for i, v := range tr.Vm {
		t := tr.Time(i)
		if t < wp.BaselineBefore || t > wp.BaselineAfter {
			out = append(out, v)
		}
	}
	return trimmedMean(out)
}

// SteadyOf returns the steady-state potential during the pulse: the mean
// of the sub-cutoff-percentile samples in [SteadyAfter, SteadyBefore],
// which excludes spikes.
func SteadyOf(tr *trace.Trace, wp *WindowParams) vartype.Var {
	data := tr.Window(wp.SteadyAfter, wp.SteadyBefore)
	if len(data) == 0 {
		return vartype.NaN
	}
	cutoff := percentile(data, wp.SteadyCutoff)
	var cut []float64
	for _, x := range data {
		if x <= cutoff {
			cut = append(cut, x)
		}
	}
	if len(cut) == 0 {
		return vartype.Mean(data)
	}
	return vartype.Mean(cut)
}

// chargingHalf returns the time after onset at which the trace first
// reaches halfway from baseline to steady.
func chargingHalf(tr *trace.Trace, wp *WindowParams, baseline, steady vartype.Var) vartype.Var {
	if baseline.IsNaN() || steady.IsNaN() {
		return vartype.NaN
	}
	half := baseline.X + (steady.X-baseline.X)/2
	rising := steady.X >= baseline.X
	i0 := tr.IndexAt(wp.BaselineBefore)
	i1 := tr.IndexAt(wp.SteadyBefore)
	for i := i0; i <= i1; i++ {
		v := tr.Vm[i]
		if (rising && v >= half) || (!rising && v <= half) {
			return vartype.Exact(tr.Time(i) - wp.BaselineBefore)
		}
	}
	return vartype.NaN
}

// FromTrace extracts all features from one trace.
func FromTrace(tr *trace.Trace, wp *WindowParams) Record {
	rec := Record{Injection: tr.Injection}
	rec.Baseline = BaselineOf(tr, wp)
	rec.Steady = SteadyOf(tr, wp)
	rec.Response = vartype.Sub(rec.Steady, rec.Baseline)
	rec.ChargingHalf = chargingHalf(tr, wp, rec.Baseline, rec.Steady)

	// the falling curve and rectification only make sense for
	// hyperpolarizing pulses -- on spiking traces the steepest
	// downward slope would be a spike downstroke
	rec.FallingAmp, rec.FallingTau = vartype.NaN, vartype.NaN
	rec.Rectification = vartype.NaN
	if tr.Injection < 0 {
		ccut := fallingCurve(tr, wp)
		rec.FallingAmp, rec.FallingTau = fitFallingCurve(ccut, tr.Dt, rec.Baseline)
		rec.Rectification = rectification(ccut, rec.Steady)
	}

	sp := findSpikes(tr, wp)
	rec.SpikeCount = len(sp)
	rec.SpikeTimes = make([]float64, len(sp))
	for i, s := range sp {
		rec.SpikeTimes[i] = tr.Time(s)
	}
	rec.SpikeHeight, rec.SpikeWidth, rec.SpikeAHP = spikeShape(tr, wp, sp)
	rec.Latency, rec.MeanISI, rec.ISISpread = spikeTiming(rec.SpikeTimes, wp)
	return rec
}

// Set is the feature records of one cell (or one simulated individual)
// across all injection currents, sorted by injection.
type Set []Record

// SetFromTraces extracts features for every trace.
func SetFromTraces(trs []*trace.Trace, wp *WindowParams) Set {
	fs := make(Set, len(trs))
	for i, tr := range trs {
		fs[i] = FromTrace(tr, wp)
	}
	sort.Slice(fs, func(i, j int) bool { return fs[i].Injection < fs[j].Injection })
	return fs
}

// injTol is the matching tolerance on injection currents (pA).
const injTol = 1e-6

// Find returns the record matching the given injection current, or nil.
func (fs Set) Find(inj float64) *Record {
	for i := range fs {
		if math.Abs(fs[i].Injection-inj) < injTol {
			return &fs[i]
		}
	}
	return nil
}

// Filter returns the subset of records satisfying keep.
func (fs Set) Filter(keep func(r *Record) bool) Set {
	var out Set
	for i := range fs {
		if keep(&fs[i]) {
			out = append(out, fs[i])
		}
	}
	return out
}
