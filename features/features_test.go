// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/nsimlab/neurofit/trace"
)

// hypTrace is a noiseless hyperpolarizing response: -80 mV baseline,
// exponential charge to -90 mV with tau 50 ms during the pulse.
func hypTrace() *trace.Trace {
	dt := 2e-4
	n := int(0.9/dt) + 1
	tr := trace.New(-150, dt, n)
	for i := 0; i < n; i++ {
		t := float64(i) * dt
		v := -80.0
		if t >= 0.2 && t <= 0.6 {
			v = -90 + 10*math.Exp(-(t-0.2)/0.05)
		}
		tr.Vm = append(tr.Vm, v)
	}
	return tr
}

// spikeTrace is a depolarizing response with 7 triangular spikes on a
// -60 mV plateau, every 50 ms starting at 0.25 s.
func spikeTrace() *trace.Trace {
	dt := 1e-4
	n := int(0.9/dt) + 1
	tr := trace.New(150, dt, n)
	for i := 0; i < n; i++ {
		t := float64(i) * dt
		v := -80.0
		if t >= 0.2 && t <= 0.6 {
			v = -60
			for k := 0; k < 7; k++ {
				ts := 0.25 + 0.05*float64(k)
				switch {
				case t >= ts-0.001 && t <= ts:
					v = -60 + 80*(t-(ts-0.001))/0.001
				case t > ts && t <= ts+0.001:
					v = 20 - 90*(t-ts)/0.001
				case t > ts+0.001 && t <= ts+0.003:
					v = -70 + 10*(t-(ts+0.001))/0.002
				}
			}
		}
		tr.Vm = append(tr.Vm, v)
	}
	return tr
}

func TestBaselineSteady(t *testing.T) {
	wp := &WindowParams{}
	wp.Defaults()
	rec := FromTrace(hypTrace(), wp)
	if math.Abs(rec.Baseline.X - -80) > 1e-6 {
		t.Errorf("baseline: got %v, want -80", rec.Baseline)
	}
	if rec.Steady.X > -89 || rec.Steady.X < -90 {
		t.Errorf("steady: got %v, want in (-90, -89)", rec.Steady)
	}
	if rec.Response.X > -9 || rec.Response.X < -10.5 {
		t.Errorf("response: got %v, want around -10", rec.Response)
	}
	if rec.SpikeCount != 0 {
		t.Errorf("spike count: got %d, want 0", rec.SpikeCount)
	}
}

func TestFallingCurve(t *testing.T) {
	wp := &WindowParams{}
	wp.Defaults()
	rec := FromTrace(hypTrace(), wp)
	if rec.FallingTau.IsNaN() {
		t.Fatal("falling tau is NaN")
	}
	if rec.FallingTau.X < 0.04 || rec.FallingTau.X > 0.06 {
		t.Errorf("falling tau: got %v, want around 0.05", rec.FallingTau)
	}
	if rec.FallingAmp.X < -10.5 || rec.FallingAmp.X > -9.5 {
		t.Errorf("falling amp: got %v, want around -10", rec.FallingAmp)
	}
	if rec.Rectification.IsNaN() || rec.Rectification.X < 0 {
		t.Errorf("rectification: got %v, want >= 0", rec.Rectification)
	}
	if rec.ChargingHalf.X < 0.02 || rec.ChargingHalf.X > 0.05 {
		t.Errorf("charging half: got %v, want around 0.034", rec.ChargingHalf)
	}
}

func TestSpikes(t *testing.T) {
	wp := &WindowParams{}
	wp.Defaults()
	rec := FromTrace(spikeTrace(), wp)
	if rec.SpikeCount != 7 {
		t.Fatalf("spike count: got %d, want 7", rec.SpikeCount)
	}
	if math.Abs(rec.SpikeTimes[0]-0.25) > 1e-9 {
		t.Errorf("first spike: got %g, want 0.25", rec.SpikeTimes[0])
	}
	if math.Abs(rec.Latency-0.05) > 1e-9 {
		t.Errorf("latency: got %g, want 0.05", rec.Latency)
	}
	if math.Abs(rec.MeanISI.X-0.05) > 1e-9 {
		t.Errorf("mean ISI: got %v, want 0.05", rec.MeanISI)
	}
	if rec.ISISpread > 1e-9 {
		t.Errorf("ISI spread: got %g, want 0", rec.ISISpread)
	}
	if math.Abs(rec.SpikeHeight.X-20) > 1e-6 {
		t.Errorf("spike height: got %v, want 20", rec.SpikeHeight)
	}
	if math.Abs(rec.SpikeWidth.X-2e-4) > 1e-9 {
		t.Errorf("spike width: got %v, want 2e-4", rec.SpikeWidth)
	}
	if math.Abs(rec.SpikeAHP.X-70) > 1e-6 {
		t.Errorf("spike AHP: got %v, want 70", rec.SpikeAHP)
	}
	if rec.Steady.X < -62 || rec.Steady.X > -59 {
		t.Errorf("steady: got %v, want around -60", rec.Steady)
	}
	// falling curve not defined for depolarizing pulses
	if !rec.FallingTau.IsNaN() {
		t.Errorf("falling tau: got %v, want NaN", rec.FallingTau)
	}
}

func TestTwoSpikeTiming(t *testing.T) {
	wp := &WindowParams{}
	wp.Defaults()
	lat, isi, spread := spikeTiming([]float64{0.25, 0.3}, wp)
	if math.Abs(lat-0.05) > 1e-9 {
		t.Errorf("latency: got %g, want 0.05", lat)
	}
	if math.Abs(isi.X-0.05) > 1e-9 {
		t.Errorf("mean ISI: got %v, want 0.05", isi)
	}
	// a single interval has zero spread, not an undefined one
	if spread != 0 {
		t.Errorf("spread: got %g, want 0", spread)
	}
}

func TestSetFind(t *testing.T) {
	wp := &WindowParams{}
	wp.Defaults()
	fs := SetFromTraces([]*trace.Trace{spikeTrace(), hypTrace()}, wp)
	if fs[0].Injection != -150 || fs[1].Injection != 150 {
		t.Errorf("set not sorted by injection: %g, %g", fs[0].Injection, fs[1].Injection)
	}
	if r := fs.Find(-150); r == nil || r.Injection != -150 {
		t.Errorf("Find(-150) failed: %v", r)
	}
	if r := fs.Find(99); r != nil {
		t.Errorf("Find(99): got %v, want nil", r)
	}
	hyp := fs.Filter(func(r *Record) bool { return r.Injection < 0 })
	if len(hyp) != 1 {
		t.Errorf("Filter: got %d records, want 1", len(hyp))
	}
}

// eqOrBothNaN compares with tolerance, treating NaN == NaN.
func eqOrBothNaN(a, b, tol float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return math.Abs(a-b) <= tol
}

func TestSaveOpen(t *testing.T) {
	wp := &WindowParams{}
	wp.Defaults()
	fs := SetFromTraces([]*trace.Trace{hypTrace(), spikeTrace()}, wp)
	fnm := filepath.Join(t.TempDir(), "feat.tsv")
	if err := fs.Save(fnm); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Open(fnm)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(got) != len(fs) {
		t.Fatalf("rows: got %d, want %d", len(got), len(fs))
	}
	for i := range fs {
		w, g := &fs[i], &got[i]
		if g.Injection != w.Injection {
			t.Errorf("row %d injection: got %g, want %g", i, g.Injection, w.Injection)
		}
		wv, gv := w.vars(), g.vars()
		for ci := range wv {
			if !eqOrBothNaN(gv[ci].X, wv[ci].X, 1e-9) {
				t.Errorf("row %d %s: got %v, want %v", i, varCols[ci], gv[ci], wv[ci])
			}
		}
		if g.SpikeCount != w.SpikeCount {
			t.Errorf("row %d spike count: got %d, want %d", i, g.SpikeCount, w.SpikeCount)
		}
		if len(g.SpikeTimes) != len(w.SpikeTimes) {
			t.Errorf("row %d spike times: got %d, want %d", i, len(g.SpikeTimes), len(w.SpikeTimes))
		}
	}
}
