// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"math"

	"github.com/nsimlab/neurofit/trace"
	"github.com/nsimlab/neurofit/vartype"
)

// findSpikes returns the sample indexes of spike peaks: local maxima
// above SpikeThresh, with hysteresis so a spike only ends once the
// trace repolarizes below SpikeThresh - SpikeHyst.
func findSpikes(tr *trace.Trace, wp *WindowParams) []int {
	var peaks []int
	above := false
	pk := -1
	for i, v := range tr.Vm {
		switch {
		case !above && v >= wp.SpikeThresh:
			above = true
			pk = i
		case above && v > tr.Vm[pk]:
			pk = i
		case above && v < wp.SpikeThresh-wp.SpikeHyst:
			peaks = append(peaks, pk)
			above = false
		}
	}
	if above && pk >= 0 {
		peaks = append(peaks, pk)
	}
	return peaks
}

// spikeShape returns the mean spike height, width at half height, and
// after-hyperpolarization depth. Height is the peak potential; width is
// measured where the trace crosses halfway between peak and threshold;
// AHP is how far below threshold the trace drops between spikes.
func spikeShape(tr *trace.Trace, wp *WindowParams, peaks []int) (height, width, ahp vartype.Var) {
	if len(peaks) == 0 {
		return vartype.NaN, vartype.NaN, vartype.NaN
	}
	heights := make([]float64, len(peaks))
	var widths, ahps []float64
	for pi, p := range peaks {
		heights[pi] = tr.Vm[p]
		half := (tr.Vm[p] + wp.SpikeThresh) / 2
		lo := 0
		if pi > 0 {
			lo = peaks[pi-1]
		}
		hi := len(tr.Vm) - 1
		if pi < len(peaks)-1 {
			hi = peaks[pi+1]
		}
		l, r := p, p
		for l > lo && tr.Vm[l-1] >= half {
			l--
		}
		for r < hi && tr.Vm[r+1] >= half {
			r++
		}
		if l > lo && r < hi {
			widths = append(widths, float64(r-l)*tr.Dt)
		}
		// trough before the next spike; for the last spike, bounded by
		// the pulse window so the return to rest is not counted
		end := tr.IndexAt(wp.BaselineAfter)
		if pi < len(peaks)-1 {
			end = peaks[pi+1]
		}
		min := math.Inf(1)
		for i := p; i <= end; i++ {
			if tr.Vm[i] < min {
				min = tr.Vm[i]
			}
		}
		if min < wp.SpikeThresh {
			ahps = append(ahps, wp.SpikeThresh-min)
		}
	}
	height = vartype.Mean(heights)
	if len(widths) > 0 {
		width = vartype.Mean(widths)
	} else {
		width = vartype.NaN
	}
	if len(ahps) > 0 {
		ahp = vartype.Mean(ahps)
	} else {
		ahp = vartype.NaN
	}
	return
}

// spikeTiming returns the first-spike latency after pulse onset, the
// mean inter-spike interval, and the ISI spread (max - min).
func spikeTiming(times []float64, wp *WindowParams) (latency float64, meanISI vartype.Var, spread float64) {
	latency = math.NaN()
	for _, t := range times {
		if t >= wp.BaselineBefore {
			latency = t - wp.BaselineBefore
			break
		}
	}
	if len(times) < 2 {
		return latency, vartype.NaN, math.NaN()
	}
	isis := make([]float64, len(times)-1)
	mn, mx := math.Inf(1), math.Inf(-1)
	for i := 1; i < len(times); i++ {
		isi := times[i] - times[i-1]
		isis[i-1] = isi
		mn = math.Min(mn, isi)
		mx = math.Max(mx, isi)
	}
	meanISI = vartype.Mean(isis)
	return latency, meanISI, mx - mn
}
