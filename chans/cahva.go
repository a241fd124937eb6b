// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

// CaHVAParams is the high-voltage-activated calcium channel (L/N-type
// aggregate), single m gate.  Its current feeds the calcium pool that
// drives the calcium-activated potassium channels.
type CaHVAParams struct {
	Gbar float32    `desc:"maximal conductance (nS)"`
	Erev float32    `def:"130" desc:"effective calcium reversal potential (mV)"`
	M    GateParams `view:"inline" desc:"activation gate"`
}

func (cp *CaHVAParams) Defaults() {
	cp.Gbar = 0
	cp.Erev = 130
	cp.M.Set(-22, 7, 1, 5, -30, 20)
}

func (cp *CaHVAParams) Update() {
}

// G returns the conductance for gate state m.
func (cp *CaHVAParams) G(m float32) float32 {
	return cp.Gbar * m
}

// I returns the channel current (positive depolarizing) at potential v.
func (cp *CaHVAParams) I(v, m float32) float32 {
	return cp.G(m) * (cp.Erev - v)
}
