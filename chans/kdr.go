// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

// KDrParams is the delayed-rectifier potassium family: activation-only
// m^MPow kinetics.  The Defaults variants cover the fast-spiking Kv3
// channel, the slowly activating KvS, and the very slow KCNQ (M-current)
// channel of globus pallidus neurons.
type KDrParams struct {
	Gbar float32    `desc:"maximal conductance (nS)"`
	Erev float32    `def:"-90" desc:"reversal potential (mV)"`
	MPow int        `desc:"exponent on the activation gate"`
	M    GateParams `view:"inline" desc:"activation gate"`
}

// Kv3Defaults sets fast delayed-rectifier kinetics supporting rapid
// repolarization and high-frequency firing.
func (kp *KDrParams) Kv3Defaults() {
	kp.Gbar = 0
	kp.Erev = -90
	kp.MPow = 4
	kp.M.Set(-13, 8, 0.5, 4, -30, 20)
}

// KvSDefaults sets slow delayed-rectifier kinetics.
func (kp *KDrParams) KvSDefaults() {
	kp.Gbar = 0
	kp.Erev = -90
	kp.MPow = 2
	kp.M.Set(-30, 10, 5, 30, -40, 25)
}

// KCNQDefaults sets the very slow M-current kinetics.
func (kp *KDrParams) KCNQDefaults() {
	kp.Gbar = 0
	kp.Erev = -90
	kp.MPow = 2
	kp.M.Set(-39, 9, 100, 300, -45, 25)
}

func (kp *KDrParams) Update() {
	if kp.MPow <= 0 {
		kp.MPow = 1
	}
}

// G returns the conductance for gate state m.
func (kp *KDrParams) G(m float32) float32 {
	return kp.Gbar * powi(m, kp.MPow)
}

// I returns the channel current (positive depolarizing) at potential v.
func (kp *KDrParams) I(v, m float32) float32 {
	return kp.G(m) * (kp.Erev - v)
}
