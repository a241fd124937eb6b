// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package trace provides the voltage-trace container produced by the
current-injection protocol (one trace per injection current), and .tsv
persistence of trace sets for measurement input.
*/
package trace

import (
	"fmt"
)

// Trace is one recorded membrane-potential trace for a single
// injection current.
type Trace struct {
	Injection float64   `desc:"injected current (pA)"`
	Dt        float64   `desc:"time per sample (sec)"`
	Vm        []float64 `desc:"membrane potential samples (mV)"`
}

// New returns a trace with preallocated sample storage.
func New(injection, dt float64, n int) *Trace {
	return &Trace{Injection: injection, Dt: dt, Vm: make([]float64, 0, n)}
}

// Len returns the number of samples.
func (tr *Trace) Len() int {
	return len(tr.Vm)
}

// Time returns the time of sample i (sec).
func (tr *Trace) Time(i int) float64 {
	return float64(i) * tr.Dt
}

// Duration returns the total recorded time (sec).
func (tr *Trace) Duration() float64 {
	return float64(len(tr.Vm)) * tr.Dt
}

// IndexAt returns the sample index at time t (sec), clamped to range.
func (tr *Trace) IndexAt(t float64) int {
	i := int(t / tr.Dt)
	if i < 0 {
		return 0
	}
	if i >= len(tr.Vm) {
		return len(tr.Vm) - 1
	}
	return i
}

// Window returns the samples between times t0 and t1 (sec) -- a view,
// not a copy.
func (tr *Trace) Window(t0, t1 float64) []float64 {
	i0 := tr.IndexAt(t0)
	i1 := tr.IndexAt(t1)
	if i1 < i0 {
		i0, i1 = i1, i0
	}
	return tr.Vm[i0 : i1+1]
}

// Diff returns the first difference of the trace divided by Dt
// (dV/dt in mV/sec), one element shorter than Vm.
func (tr *Trace) Diff() []float64 {
	if len(tr.Vm) < 2 {
		return nil
	}
	d := make([]float64, len(tr.Vm)-1)
	for i := range d {
		d[i] = (tr.Vm[i+1] - tr.Vm[i]) / tr.Dt
	}
	return d
}

func (tr *Trace) String() string {
	return fmt.Sprintf("Trace(inj=%g pA, %d samples @ %g s)", tr.Injection, len(tr.Vm), tr.Dt)
}
