// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

// HCNParams is the hyperpolarization-activated cation channel (Ih):
// a single slow gate that opens with hyperpolarization, with a mixed
// cation reversal potential, producing the depolarizing sag and
// supporting autonomous pacemaking in globus pallidus neurons.
type HCNParams struct {
	Gbar float32    `desc:"maximal conductance (nS)"`
	Erev float32    `def:"-30" desc:"mixed cation reversal potential (mV)"`
	M    GateParams `view:"inline" desc:"activation gate (opens with hyperpolarization)"`
}

func (hp *HCNParams) Defaults() {
	hp.Gbar = 0
	hp.Erev = -30
	hp.M.Set(-80, -8, 200, 700, -80, 20)
}

func (hp *HCNParams) Update() {
}

// G returns the conductance for gate state m.
func (hp *HCNParams) G(m float32) float32 {
	return hp.Gbar * m
}

// I returns the channel current (positive depolarizing) at potential v.
func (hp *HCNParams) I(v, m float32) float32 {
	return hp.G(m) * (hp.Erev - v)
}
