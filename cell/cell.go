// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package cell implements the point-neuron model being fit: a soma
compartment carrying the full channel complement coupled to a passive
dendritic compartment, integrated by forward Euler, plus the
current-injection protocol that produces the voltage traces.

The model parameters are externally settable through emergent params
Sheets with paths rooted at the type name, e.g. "Cell.NaF.Gbar",
"Cell.Passive.RM" -- this is how the optimizer applies each candidate
parameter vector.

Units: membrane potential mV, time msec inside the integrator (protocol
times are in seconds), conductance nS, current pA, capacitance pF,
resistance Mohm, calcium uM.  pA / pF = mV / msec, and nS = 1000 / Mohm.
*/
package cell

import (
	"github.com/nsimlab/neurofit/chans"
)

// PassiveParams are the passive membrane properties shared by both
// compartments: these correspond to the morphology-level parameters
// (RM, CM, RA) that the optimizer adjusts alongside the conductances.
type PassiveParams struct {
	CM       float32 `def:"180" desc:"total membrane capacitance (pF)"`
	RM       float32 `def:"150" desc:"total membrane (leak) resistance (Mohm)"`
	RA       float32 `def:"4" desc:"axial resistance coupling soma and dendrite (Mohm)"`
	Eleak    float32 `def:"-75" desc:"leak reversal potential (mV)"`
	Vinit    float32 `def:"-80" desc:"initial membrane potential (mV)"`
	DendFrac float32 `def:"0.6" min:"0.05" max:"0.95" desc:"fraction of the membrane in the dendritic compartment"`

	GLeakS float32 `view:"-" desc:"somatic leak conductance (nS)"`
	GLeakD float32 `view:"-" desc:"dendritic leak conductance (nS)"`
	CMS    float32 `view:"-" desc:"somatic capacitance (pF)"`
	CMD    float32 `view:"-" desc:"dendritic capacitance (pF)"`
	GC     float32 `view:"-" desc:"soma-dendrite coupling conductance (nS)"`
}

func (pp *PassiveParams) Defaults() {
	pp.CM = 180
	pp.RM = 150
	pp.RA = 4
	pp.Eleak = -75
	pp.Vinit = -80
	pp.DendFrac = 0.6
	pp.Update()
}

// Update computes the derived per-compartment conductances and
// capacitances -- must be called after any parameter change.
func (pp *PassiveParams) Update() {
	if pp.DendFrac < 0.05 {
		pp.DendFrac = 0.05
	}
	if pp.DendFrac > 0.95 {
		pp.DendFrac = 0.95
	}
	gtot := 1000.0 / pp.RM
	pp.GLeakD = gtot * pp.DendFrac
	pp.GLeakS = gtot - pp.GLeakD
	pp.CMD = pp.CM * pp.DendFrac
	pp.CMS = pp.CM - pp.CMD
	pp.GC = 1000.0 / pp.RA
}

// State holds all of the dynamic variables of the cell: compartment
// potentials, gate states and the calcium pool.
type State struct {
	Vm   float32 `desc:"somatic membrane potential (mV)"`
	Vd   float32 `desc:"dendritic membrane potential (mV)"`
	Ca   float32 `desc:"submembrane calcium concentration (uM)"`
	KirM float32 `desc:"Kir gate"`
	NaFM float32 `desc:"NaF activation"`
	NaFH float32 `desc:"NaF inactivation"`
	KaFM float32 `desc:"KaF activation"`
	KaFH float32 `desc:"KaF inactivation"`
	KaSM float32 `desc:"KaS activation"`
	KaSH float32 `desc:"KaS inactivation"`
	KrpM float32 `desc:"Krp activation"`
	KrpH float32 `desc:"Krp partial inactivation"`
	Kv3M float32 `desc:"Kv3 activation"`
	KvSM float32 `desc:"KvS activation"`
	KCNQ float32 `desc:"KCNQ activation"`
	BKM  float32 `desc:"BKCa gate"`
	SKM  float32 `desc:"SKCa gate"`
	HCNM float32 `desc:"HCN gate"`
	CaM  float32 `desc:"CaHVA activation"`
}

// Cell is the full point-neuron model: passive properties plus one
// instance of every channel type.  Channels not present in a given
// neuron type simply have zero Gbar.
type Cell struct {
	Passive PassiveParams      `view:"inline" desc:"passive membrane properties"`
	Kir     chans.KirParams    `view:"inline" desc:"inward rectifier potassium"`
	NaF     chans.NaFParams    `view:"inline" desc:"fast sodium"`
	KaF     chans.KaParams     `view:"inline" desc:"fast A-type potassium"`
	KaS     chans.KaParams     `view:"inline" desc:"slow A-type potassium"`
	Krp     chans.KrpParams    `view:"inline" desc:"persistent potassium"`
	Kv3     chans.KDrParams    `view:"inline" desc:"fast delayed rectifier"`
	KvS     chans.KDrParams    `view:"inline" desc:"slow delayed rectifier"`
	KCNQ    chans.KDrParams    `view:"inline" desc:"M-current"`
	BKCa    chans.BKCaParams   `view:"inline" desc:"big-conductance KCa"`
	SKCa    chans.SKCaParams   `view:"inline" desc:"small-conductance KCa"`
	HCN     chans.HCNParams    `view:"inline" desc:"hyperpolarization-activated cation"`
	CaHVA   chans.CaHVAParams  `view:"inline" desc:"high-voltage-activated calcium"`
	CaPool  chans.CaPoolParams `view:"inline" desc:"submembrane calcium pool"`
	State   State              `desc:"dynamic state"`
}

// Defaults sets default kinetics for every channel with all active
// conductances zero -- the neuron-type param sheets (spn, gp) set the
// actual conductance levels on top of this.
func (c *Cell) Defaults() {
	c.Passive.Defaults()
	c.Kir.Defaults()
	c.Kir.Gbar = 0
	c.NaF.Defaults()
	c.KaF.FastDefaults()
	c.KaS.SlowDefaults()
	c.Krp.Defaults()
	c.Kv3.Kv3Defaults()
	c.KvS.KvSDefaults()
	c.KCNQ.KCNQDefaults()
	c.BKCa.Defaults()
	c.SKCa.Defaults()
	c.HCN.Defaults()
	c.CaHVA.Defaults()
	c.CaPool.Defaults()
	c.Update()
}

// Update recomputes all derived parameters -- must be called after any
// parameter change (e.g., after a param sheet is applied).
func (c *Cell) Update() {
	c.Passive.Update()
	c.Kir.Update()
	c.NaF.Update()
	c.KaF.Update()
	c.KaS.Update()
	c.Krp.Update()
	c.Kv3.Update()
	c.KvS.Update()
	c.KCNQ.Update()
	c.BKCa.Update()
	c.SKCa.Update()
	c.HCN.Update()
	c.CaHVA.Update()
	c.CaPool.Update()
}

// Init resets the dynamic state: both compartments at Vinit, every gate
// at its steady state for Vinit, calcium at rest.
func (c *Cell) Init() {
	v := c.Passive.Vinit
	st := &c.State
	st.Vm = v
	st.Vd = v
	st.Ca = c.CaPool.Min
	st.KirM = c.Kir.InfFromV(v)
	st.NaFM = c.NaF.M.InfFromV(v)
	st.NaFH = c.NaF.H.InfFromV(v)
	st.KaFM = c.KaF.M.InfFromV(v)
	st.KaFH = c.KaF.H.InfFromV(v)
	st.KaSM = c.KaS.M.InfFromV(v)
	st.KaSH = c.KaS.H.InfFromV(v)
	st.KrpM = c.Krp.M.InfFromV(v)
	st.KrpH = c.Krp.H.InfFromV(v)
	st.Kv3M = c.Kv3.M.InfFromV(v)
	st.KvSM = c.KvS.M.InfFromV(v)
	st.KCNQ = c.KCNQ.M.InfFromV(v)
	st.BKM = c.BKCa.InfFromVCa(v, st.Ca)
	st.SKM = c.SKCa.InfFromCa(st.Ca)
	st.HCNM = c.HCN.M.InfFromV(v)
	st.CaM = c.CaHVA.M.InfFromV(v)
}

// SetBaseline makes vm the resting potential of the model: Vinit is set
// to vm and the leak reversal is adjusted so that the net membrane
// current at vm is zero given the Kir conductance open at that
// potential.  This mirrors clamping a recorded baseline before running
// the injection protocol.
func (c *Cell) SetBaseline(vm float32) {
	c.Passive.Vinit = vm
	gl := c.Passive.GLeakS + c.Passive.GLeakD
	if gl > 0 {
		gkir := c.Kir.G(c.Kir.InfFromV(vm))
		c.Passive.Eleak = vm + (gkir/gl)*(vm-c.Kir.Erev)
	}
}

// Step advances the model by dt msec with injected current iInj (pA)
// into the soma, returning the updated somatic potential.
func (c *Cell) Step(iInj, dt float32) float32 {
	st := &c.State
	v := st.Vm

	ica := c.CaHVA.I(v, st.CaM)
	inet := iInj + ica
	inet += c.Passive.GLeakS * (c.Passive.Eleak - v)
	inet += c.Passive.GC * (st.Vd - v)
	inet += c.Kir.I(v, st.KirM)
	inet += c.NaF.I(v, st.NaFM, st.NaFH)
	inet += c.KaF.I(v, st.KaFM, st.KaFH)
	inet += c.KaS.I(v, st.KaSM, st.KaSH)
	inet += c.Krp.I(v, st.KrpM, st.KrpH)
	inet += c.Kv3.I(v, st.Kv3M)
	inet += c.KvS.I(v, st.KvSM)
	inet += c.KCNQ.I(v, st.KCNQ)
	inet += c.BKCa.I(v, st.BKM)
	inet += c.SKCa.I(v, st.SKM)
	inet += c.HCN.I(v, st.HCNM)

	idend := c.Passive.GLeakD*(c.Passive.Eleak-st.Vd) + c.Passive.GC*(v-st.Vd)

	st.Vm += dt * inet / c.Passive.CMS
	st.Vd += dt * idend / c.Passive.CMD

	v = st.Vm
	st.KirM = c.Kir.StepM(st.KirM, v, dt)
	st.NaFM = c.NaF.M.Step(st.NaFM, v, dt)
	st.NaFH = c.NaF.H.Step(st.NaFH, v, dt)
	st.KaFM = c.KaF.M.Step(st.KaFM, v, dt)
	st.KaFH = c.KaF.H.Step(st.KaFH, v, dt)
	st.KaSM = c.KaS.M.Step(st.KaSM, v, dt)
	st.KaSH = c.KaS.H.Step(st.KaSH, v, dt)
	st.KrpM = c.Krp.M.Step(st.KrpM, v, dt)
	st.KrpH = c.Krp.H.Step(st.KrpH, v, dt)
	st.Kv3M = c.Kv3.M.Step(st.Kv3M, v, dt)
	st.KvSM = c.KvS.M.Step(st.KvSM, v, dt)
	st.KCNQ = c.KCNQ.M.Step(st.KCNQ, v, dt)
	st.Ca = c.CaPool.CaFromI(st.Ca, ica, dt)
	st.BKM = c.BKCa.StepM(st.BKM, v, st.Ca, dt)
	st.SKM = c.SKCa.StepM(st.SKM, st.Ca, dt)
	st.HCNM = c.HCN.M.Step(st.HCNM, v, dt)
	st.CaM = c.CaHVA.M.Step(st.CaM, v, dt)

	return st.Vm
}
