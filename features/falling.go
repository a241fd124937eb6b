// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/nsimlab/neurofit/trace"
	"github.com/nsimlab/neurofit/vartype"
)

// fallingCurve locates the falling (charging) segment of the trace
// after pulse onset: it finds the steepest downward slope in the pulse
// window, walks back to the segment start, and extends forward to the
// trough.
func fallingCurve(tr *trace.Trace, wp *WindowParams) []float64 {
	i0 := tr.IndexAt(wp.BaselineBefore)
	i1 := tr.IndexAt(wp.SteadyBefore)
	if i1-i0 < 3 {
		return nil
	}
	d := tr.Diff()
	// steepest downward slope in the window
	steep := i0
	for i := i0; i < i1 && i < len(d); i++ {
		if d[i] < d[steep] {
			steep = i
		}
	}
	if d[steep] >= 0 {
		return nil
	}
	start := steep
	for start > i0 && tr.Vm[start-1] > tr.Vm[start] {
		start--
	}
	// trough: minimum of the window-smoothed trace after the steep point
	end := steep
	min := math.Inf(1)
	w := wp.FallingWindow
	if w < 1 {
		w = 1
	}
	for i := steep; i <= i1; i++ {
		hi := i + w
		if hi > i1 {
			hi = i1
		}
		s := 0.0
		for j := i; j <= hi; j++ {
			s += tr.Vm[j]
		}
		s /= float64(hi - i + 1)
		if s < min {
			min = s
			end = i
		}
	}
	if end <= start+1 {
		return nil
	}
	return tr.Vm[start : end+1]
}

// minFallingLen is the shortest segment worth fitting.
const minFallingLen = 5

// fitFallingCurve fits the saturating exponential
// amp*(1-exp(-t/tau)) to the falling segment relative to baseline
// (amp is negative for hyperpolarizing pulses).  The time constant is
// optimized in log space to keep it positive.  Deviations are the
// residual rms of the fit.
func fitFallingCurve(ccut []float64, dt float64, baseline vartype.Var) (amp, tau vartype.Var) {
	if len(ccut) < minFallingLen || baseline.IsNaN() {
		return vartype.NaN, vartype.NaN
	}
	sse := func(x []float64) float64 {
		a, tc := x[0], math.Exp(x[1])
		ss := 0.0
		for i, v := range ccut {
			r := (v - baseline.X) - a*(1-math.Exp(-float64(i)*dt/tc))
			ss += r * r
		}
		return ss
	}
	span := float64(len(ccut)-1) * dt
	a0 := ccut[len(ccut)-1] - baseline.X
	p := optimize.Problem{Func: sse}
	x0 := []float64{a0, math.Log(span / 3)}
	res, err := optimize.Minimize(p, x0, nil, &optimize.NelderMead{})
	if err != nil {
		return vartype.NaN, vartype.NaN
	}
	a, tc := res.X[0], math.Exp(res.X[1])
	if tc > 10*span || tc <= 0 || math.IsNaN(a) {
		return vartype.NaN, vartype.NaN
	}
	rms := math.Sqrt(res.F / float64(len(ccut)))
	return vartype.New(a, rms), vartype.New(tc, rms)
}

// rectWindow is the half-width of the trough-average window (samples).
const rectWindow = 11

// rectification returns the sag: steady-state potential minus the mean
// around the hyperpolarization trough of the falling segment.
// Only meaningful for hyperpolarizing pulses; NaN otherwise.
func rectification(ccut []float64, steady vartype.Var) vartype.Var {
	if len(ccut) < rectWindow+1 || steady.IsNaN() {
		return vartype.NaN
	}
	pos := 0
	for i, v := range ccut {
		if v < ccut[pos] {
			pos = i
		}
	}
	if ccut[pos] >= steady.X {
		return vartype.NaN
	}
	lo := pos - rectWindow/2
	if lo < 0 {
		lo = 0
	}
	hi := pos + rectWindow/2
	if hi >= len(ccut) {
		hi = len(ccut) - 1
	}
	bottom := vartype.Mean(ccut[lo : hi+1])
	return vartype.Sub(steady, bottom)
}
