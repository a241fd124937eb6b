// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package chans provides the voltage- and calcium-gated ion channels used in
computing a point-neuron approximation based on the standard equivalent RC
circuit model of a neuron (i.e., basic Ohms law equations).
Includes the channel complement of striatal spiny projection neurons
(Kir, NaF, KaF, KaS, Krp, BKCa, CaHVA) and of globus pallidus neurons
(NaF, Kv3, KvS, KCNQ, SKCa, BKCa, HCN, CaHVA).

Units throughout: membrane potential mV, time msec, conductance nS,
current pA, calcium concentration uM.
*/
package chans

import (
	"github.com/goki/mat32"
)

// GateParams determines the voltage dependence of one Hodgkin-Huxley
// gating variable: a sigmoidal steady-state opening function and a
// bell-shaped time constant peaking at TauVhalf.
type GateParams struct {
	Vhalf    float32 `desc:"membrane potential of half-maximal gate opening (mV)"`
	Slope    float32 `desc:"slope of the opening function (mV) -- negative for inactivation gates"`
	TauMin   float32 `desc:"minimum gating time constant (msec)"`
	TauMax   float32 `desc:"maximum gating time constant (msec), reached at TauVhalf"`
	TauVhalf float32 `desc:"potential where the time constant peaks (mV)"`
	TauSlope float32 `desc:"width of the time constant bell (mV)"`
}

// Set sets all the gate parameters.
func (gp *GateParams) Set(vhalf, slope, tauMin, tauMax, tauVhalf, tauSlope float32) {
	gp.Vhalf = vhalf
	gp.Slope = slope
	gp.TauMin = tauMin
	gp.TauMax = tauMax
	gp.TauVhalf = tauVhalf
	gp.TauSlope = tauSlope
}

// InfFromV returns the steady-state gate opening at potential v.
func (gp *GateParams) InfFromV(v float32) float32 {
	return 1.0 / (1.0 + mat32.Exp(-(v-gp.Vhalf)/gp.Slope))
}

// TauFromV returns the gating time constant at potential v (msec).
func (gp *GateParams) TauFromV(v float32) float32 {
	x := (v - gp.TauVhalf) / gp.TauSlope
	return gp.TauMin + 2*(gp.TauMax-gp.TauMin)/(mat32.Exp(x)+mat32.Exp(-x))
}

// Step advances gate state m by dt msec at potential v, returning the
// updated state (first-order relaxation toward InfFromV).
func (gp *GateParams) Step(m, v, dt float32) float32 {
	m += (dt / gp.TauFromV(v)) * (gp.InfFromV(v) - m)
	if m < 0 {
		return 0
	}
	if m > 1 {
		return 1
	}
	return m
}

// powi is an integer power for gate exponents (1..4 in practice).
func powi(x float32, p int) float32 {
	g := float32(1)
	for i := 0; i < p; i++ {
		g *= x
	}
	return g
}
