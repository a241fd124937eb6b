// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

// NaFParams is the fast transient sodium channel responsible for the
// action potential upstroke: m^3 h kinetics.
type NaFParams struct {
	Gbar float32    `desc:"maximal conductance (nS)"`
	Erev float32    `def:"50" desc:"reversal potential (mV)"`
	M    GateParams `view:"inline" desc:"activation gate"`
	H    GateParams `view:"inline" desc:"inactivation gate"`
}

func (np *NaFParams) Defaults() {
	np.Gbar = 0
	np.Erev = 50
	np.M.Set(-25, 9, 0.05, 0.3, -40, 15)
	np.H.Set(-60, -8, 0.3, 6, -55, 12)
}

func (np *NaFParams) Update() {
}

// G returns the conductance for gate states m, h.
func (np *NaFParams) G(m, h float32) float32 {
	return np.Gbar * powi(m, 3) * h
}

// I returns the channel current (positive depolarizing) at potential v.
func (np *NaFParams) I(v, m, h float32) float32 {
	return np.G(m, h) * (np.Erev - v)
}
