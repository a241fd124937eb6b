// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

// KrpParams is the persistent / resurgent potassium channel: m^2 h
// kinetics where inactivation is only partial -- the effective
// inactivation floor HInfMin keeps a sustained component.
type KrpParams struct {
	Gbar    float32    `desc:"maximal conductance (nS)"`
	Erev    float32    `def:"-90" desc:"reversal potential (mV)"`
	HInfMin float32    `def:"0.7" desc:"floor of the inactivation gate -- fraction of conductance that never inactivates"`
	M       GateParams `view:"inline" desc:"activation gate"`
	H       GateParams `view:"inline" desc:"partial inactivation gate"`
}

func (kp *KrpParams) Defaults() {
	kp.Gbar = 0
	kp.Erev = -90
	kp.HInfMin = 0.7
	kp.M.Set(-13, 9, 10, 30, -30, 25)
	kp.H.Set(-55, -19, 1000, 3000, -50, 30)
}

func (kp *KrpParams) Update() {
}

// G returns the conductance for gate states m, h, applying the
// inactivation floor.
func (kp *KrpParams) G(m, h float32) float32 {
	heff := kp.HInfMin + (1-kp.HInfMin)*h
	return kp.Gbar * powi(m, 2) * heff
}

// I returns the channel current (positive depolarizing) at potential v.
func (kp *KrpParams) I(v, m, h float32) float32 {
	return kp.G(m, h) * (kp.Erev - v)
}
