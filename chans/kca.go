// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

import (
	"github.com/goki/mat32"
)

// BKCaParams is the large-conductance calcium- and voltage-activated
// potassium channel: voltage gating whose half-activation shifts
// leftward (more easily opened) as calcium rises above CaRef.
type BKCaParams struct {
	Gbar     float32    `desc:"maximal conductance (nS)"`
	Erev     float32    `def:"-90" desc:"reversal potential (mV)"`
	CaRef    float32    `def:"1" desc:"calcium concentration of the reference activation curve (uM)"`
	CaVShift float32    `def:"20" desc:"leftward Vhalf shift per e-fold calcium increase over CaRef (mV)"`
	M        GateParams `view:"inline" desc:"voltage activation gate at CaRef calcium"`
}

func (bp *BKCaParams) Defaults() {
	bp.Gbar = 0
	bp.Erev = -90
	bp.CaRef = 1
	bp.CaVShift = 20
	bp.M.Set(-10, 11, 0.5, 3, -20, 20)
}

func (bp *BKCaParams) Update() {
}

// InfFromVCa is the steady-state opening at potential v and calcium ca.
func (bp *BKCaParams) InfFromVCa(v, ca float32) float32 {
	g := bp.M
	g.Vhalf -= bp.CaVShift * mat32.Log(ca/bp.CaRef)
	return g.InfFromV(v)
}

// StepM advances the gate state at potential v and calcium ca.
func (bp *BKCaParams) StepM(m, v, ca, dt float32) float32 {
	g := bp.M
	g.Vhalf -= bp.CaVShift * mat32.Log(ca/bp.CaRef)
	return g.Step(m, v, dt)
}

// G returns the conductance for gate state m.
func (bp *BKCaParams) G(m float32) float32 {
	return bp.Gbar * m
}

// I returns the channel current (positive depolarizing) at potential v.
func (bp *BKCaParams) I(v, m float32) float32 {
	return bp.G(m) * (bp.Erev - v)
}

// SKCaParams is the small-conductance calcium-activated potassium
// channel: purely calcium gated, Hill activation, fixed time constant.
type SKCaParams struct {
	Gbar float32 `desc:"maximal conductance (nS)"`
	Erev float32 `def:"-90" desc:"reversal potential (mV)"`
	KD   float32 `def:"0.35" desc:"calcium concentration of half activation (uM)"`
	Pow  float32 `def:"4" desc:"Hill coefficient of calcium activation"`
	Tau  float32 `def:"5" desc:"activation time constant (msec)"`
}

func (sp *SKCaParams) Defaults() {
	sp.Gbar = 0
	sp.Erev = -90
	sp.KD = 0.35
	sp.Pow = 4
	sp.Tau = 5
}

func (sp *SKCaParams) Update() {
}

// InfFromCa is the steady-state Hill activation at calcium ca.
func (sp *SKCaParams) InfFromCa(ca float32) float32 {
	cp := mat32.Pow(ca, sp.Pow)
	return cp / (cp + mat32.Pow(sp.KD, sp.Pow))
}

// StepM advances the gate state at calcium ca.
func (sp *SKCaParams) StepM(m, ca, dt float32) float32 {
	m += (dt / sp.Tau) * (sp.InfFromCa(ca) - m)
	if m < 0 {
		return 0
	}
	if m > 1 {
		return 1
	}
	return m
}

// G returns the conductance for gate state m.
func (sp *SKCaParams) G(m float32) float32 {
	return sp.Gbar * m
}

// I returns the channel current (positive depolarizing) at potential v.
func (sp *SKCaParams) I(v, m float32) float32 {
	return sp.G(m) * (sp.Erev - v)
}
