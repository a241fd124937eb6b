// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

// KirParams is the inwardly-rectifying potassium channel that dominates
// the resting conductance of spiny projection neurons.  Activation
// increases with hyperpolarization and is fast enough to treat the gate
// time constant as short but not instantaneous.  VOffset shifts the
// half-activation potential and is itself an optimizable parameter.
type KirParams struct {
	Gbar    float32    `desc:"maximal conductance (nS)"`
	Erev    float32    `def:"-90" desc:"reversal potential (mV)"`
	VOffset float32    `desc:"shift applied to the half-activation potential (mV)"`
	M       GateParams `view:"inline" desc:"inward-rectification gate (opens with hyperpolarization)"`
}

func (kp *KirParams) Defaults() {
	kp.Gbar = 10
	kp.Erev = -90
	kp.VOffset = 0
	kp.M.Set(-52, -13, 0.5, 2, -70, 20)
}

func (kp *KirParams) Update() {
}

// InfFromV is the steady-state opening with the VOffset shift applied.
func (kp *KirParams) InfFromV(v float32) float32 {
	g := kp.M
	g.Vhalf += kp.VOffset
	return g.InfFromV(v)
}

// StepM advances the gate state.
func (kp *KirParams) StepM(m, v, dt float32) float32 {
	g := kp.M
	g.Vhalf += kp.VOffset
	return g.Step(m, v, dt)
}

// G returns the conductance for gate state m.
func (kp *KirParams) G(m float32) float32 {
	return kp.Gbar * m
}

// I returns the channel current (positive depolarizing) at potential v.
func (kp *KirParams) I(v, m float32) float32 {
	return kp.G(m) * (kp.Erev - v)
}
