// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

// KaParams is the A-type transient potassium channel, m^2 h kinetics.
// The same struct serves the fast (KaF) and slow (KaS) variants via the
// two Defaults methods -- they differ only in kinetics.
type KaParams struct {
	Gbar float32    `desc:"maximal conductance (nS)"`
	Erev float32    `def:"-90" desc:"reversal potential (mV)"`
	M    GateParams `view:"inline" desc:"activation gate"`
	H    GateParams `view:"inline" desc:"inactivation gate"`
}

// FastDefaults sets the rapidly inactivating (KaF) kinetics.
func (kp *KaParams) FastDefaults() {
	kp.Gbar = 0
	kp.Erev = -90
	kp.M.Set(-29, 12, 0.5, 2, -40, 20)
	kp.H.Set(-70, -10, 5, 30, -60, 20)
}

// SlowDefaults sets the slowly inactivating (KaS) kinetics.
func (kp *KaParams) SlowDefaults() {
	kp.Gbar = 0
	kp.Erev = -90
	kp.M.Set(-27, 16, 2, 20, -30, 25)
	kp.H.Set(-60, -15, 100, 500, -50, 30)
}

func (kp *KaParams) Update() {
}

// G returns the conductance for gate states m, h.
func (kp *KaParams) G(m, h float32) float32 {
	return kp.Gbar * powi(m, 2) * h
}

// I returns the channel current (positive depolarizing) at potential v.
func (kp *KaParams) I(v, m, h float32) float32 {
	return kp.G(m, h) * (kp.Erev - v)
}
