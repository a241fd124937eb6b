// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cell

import (
	"fmt"
	"math"

	"github.com/nsimlab/neurofit/trace"
)

// InjectParams is the current-injection protocol: a square current pulse
// of each of the Currents, delivered after Delay for Width, recorded for
// SimTime total.  Times in seconds, currents in pA.
type InjectParams struct {
	Delay    float64   `def:"0.2" desc:"time before current onset (sec)"`
	Width    float64   `def:"0.4" desc:"duration of the current pulse (sec)"`
	SimTime  float64   `def:"0.9" desc:"total simulated time per trace (sec)"`
	Dt       float64   `def:"1e-05" desc:"integration time step (sec)"`
	RecordDt float64   `def:"0.0002" desc:"recording interval (sec) -- must be a multiple of Dt"`
	Currents []float64 `desc:"injection currents, one trace each (pA)"`
}

func (ip *InjectParams) Defaults() {
	ip.Delay = 0.2
	ip.Width = 0.4
	ip.SimTime = 0.9
	ip.Dt = 1e-5
	ip.RecordDt = 2e-4
}

func (ip *InjectParams) Update() {
}

// Validate returns an error for a protocol that cannot be run.
func (ip *InjectParams) Validate() error {
	if len(ip.Currents) == 0 {
		return fmt.Errorf("cell.InjectParams: no injection currents")
	}
	if ip.Dt <= 0 || ip.SimTime <= 0 {
		return fmt.Errorf("cell.InjectParams: Dt and SimTime must be positive")
	}
	steps := ip.RecordDt / ip.Dt
	if steps < 1 || math.Abs(steps-math.Round(steps)) > 1e-9 {
		return fmt.Errorf("cell.InjectParams: RecordDt %g is not a multiple of Dt %g", ip.RecordDt, ip.Dt)
	}
	if ip.Delay+ip.Width > ip.SimTime {
		return fmt.Errorf("cell.InjectParams: pulse extends past SimTime")
	}
	return nil
}

// InjInterval is the time between successive injection sweeps (sec) --
// the fill value penalizing unmatched spikes in the spike-time fitness.
func (ip *InjectParams) InjInterval() float64 {
	return ip.SimTime
}

// RunOne re-initializes the cell and runs the protocol for a single
// injection current, returning the recorded trace.
func RunOne(c *Cell, ip *InjectParams, inj float64) *trace.Trace {
	c.Init()
	dtMs := float32(ip.Dt * 1000)
	rec := int(math.Round(ip.RecordDt / ip.Dt))
	nstep := int(math.Round(ip.SimTime / ip.Dt))
	onset := int(math.Round(ip.Delay / ip.Dt))
	offset := int(math.Round((ip.Delay + ip.Width) / ip.Dt))

	tr := trace.New(inj, ip.RecordDt, nstep/rec+1)
	tr.Vm = append(tr.Vm, float64(c.State.Vm))
	for s := 0; s < nstep; s++ {
		ii := float32(0)
		if s >= onset && s < offset {
			ii = float32(inj)
		}
		vm := c.Step(ii, dtMs)
		if (s+1)%rec == 0 {
			tr.Vm = append(tr.Vm, float64(vm))
		}
	}
	return tr
}

// RunIV runs the full protocol: one trace per injection current, with
// the cell state re-initialized before each.
func RunIV(c *Cell, ip *InjectParams) ([]*trace.Trace, error) {
	if err := ip.Validate(); err != nil {
		return nil, err
	}
	trs := make([]*trace.Trace, len(ip.Currents))
	for i, inj := range ip.Currents {
		trs[i] = RunOne(c, ip, inj)
	}
	return trs, nil
}
