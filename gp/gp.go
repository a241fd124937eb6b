// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package gp provides the globus pallidus neuron models (prototypical and
arkypallidal): conductance conditions, the optimizable parameters and
the current-injection protocol.  Pallidal neurons fire autonomously, so
the protocol includes a zero-current sweep.
*/
package gp

import (
	"fmt"
	"strings"

	"github.com/emer/emergent/params"
	"github.com/goki/ki/kit"

	"github.com/nsimlab/neurofit/cell"
	"github.com/nsimlab/neurofit/evolve"
	"github.com/nsimlab/neurofit/features"
	"github.com/nsimlab/neurofit/fit"
)

// PallidalType is the globus pallidus neuron subtype.
type PallidalType int32

//go:generate stringer -type=PallidalType

var KiT_PallidalType = kit.Enums.AddEnum(PallidalTypeN, kit.NotBitFlag, nil)

func (ev PallidalType) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *PallidalType) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Proto is the prototypical, fast-firing subtype projecting downstream
	Proto PallidalType = iota

	// Arky is the arkypallidal, slow-firing subtype projecting back to striatum
	Arky

	PallidalTypeN
)

// TypeFromName parses a model name ("proto", "arky").
func TypeFromName(nm string) (PallidalType, error) {
	switch strings.ToLower(nm) {
	case "proto":
		return Proto, nil
	case "arky":
		return Arky, nil
	}
	return PallidalTypeN, fmt.Errorf("gp: unknown model %q", nm)
}

// CondSets are the conductance conditions: Base holds the pallidal
// channel complement, proto and arky overlay subtype densities.
var CondSets = params.Sets{
	{Name: "Base", Desc: "shared pallidal conductances", Sheets: params.Sheets{
		"Cell": &params.Sheet{
			{Sel: "Cell", Desc: "pallidal defaults",
				Params: params.Params{
					"Cell.Passive.CM":       "60",
					"Cell.Passive.RM":       "450",
					"Cell.Passive.RA":       "2",
					"Cell.Passive.Eleak":    "-58",
					"Cell.Passive.Vinit":    "-65",
					"Cell.Passive.DendFrac": "0.5",
					"Cell.NaF.Gbar":         "3200",
					"Cell.Kv3.Gbar":         "1100",
					"Cell.KvS.Gbar":         "60",
					"Cell.KCNQ.Gbar":        "20",
					"Cell.SKCa.Gbar":        "8",
					"Cell.BKCa.Gbar":        "25",
					"Cell.HCN.Gbar":         "12",
					"Cell.CaHVA.Gbar":       "1.5",
				}},
		},
	}},
	{Name: "proto", Desc: "prototypical: fast autonomous firing", Sheets: params.Sheets{
		"Cell": &params.Sheet{
			{Sel: "Cell", Desc: "proto overlay",
				Params: params.Params{
					"Cell.NaF.Gbar": "3600",
					"Cell.Kv3.Gbar": "1300",
					"Cell.HCN.Gbar": "16",
				}},
		},
	}},
	{Name: "arky", Desc: "arkypallidal: slower firing, stronger SK", Sheets: params.Sheets{
		"Cell": &params.Sheet{
			{Sel: "Cell", Desc: "arky overlay",
				Params: params.Params{
					"Cell.NaF.Gbar":  "2600",
					"Cell.Kv3.Gbar":  "900",
					"Cell.SKCa.Gbar": "12",
					"Cell.HCN.Gbar":  "8",
				}},
		},
	}},
}

// Model is one pallidal neuron subtype, ready for fitting.
type Model struct {
	Type PallidalType          `desc:"pallidal subtype"`
	Inj  cell.InjectParams     `view:"inline" desc:"injection protocol"`
	Win  features.WindowParams `view:"inline" desc:"feature extraction windows"`
}

// New returns the model for a subtype.  The protocol spans
// hyperpolarizing to moderately depolarizing steps, including zero
// current for the autonomous firing rate.
func New(typ PallidalType) *Model {
	md := &Model{Type: typ}
	md.Inj.Defaults()
	md.Inj.Currents = []float64{-200, -100, -50, 0, 50, 100}
	md.Win.Defaults()
	md.Win.SetInject(md.Inj.Delay, md.Inj.Width)
	return md
}

func (md *Model) Name() string {
	if md.Type == Arky {
		return "arky"
	}
	return "proto"
}

// NewCell returns a cell with the Base condition and the subtype
// overlay applied.
func (md *Model) NewCell() (*cell.Cell, error) {
	c := &cell.Cell{}
	c.Defaults()
	for _, setNm := range []string{"Base", md.Name()} {
		pset, err := CondSets.SetByNameTry(setNm)
		if err != nil {
			return nil, err
		}
		sheet, ok := pset.Sheets["Cell"]
		if !ok {
			return nil, fmt.Errorf("gp: set %s has no Cell sheet", setNm)
		}
		if _, err := sheet.Apply(c, false); err != nil {
			return nil, err
		}
	}
	c.Update()
	return c, nil
}

// Specs lists the optimized parameters for the pallidal channel
// complement.
func (md *Model) Specs() []evolve.ParamSpec {
	return []evolve.ParamSpec{
		{Name: "RA", Path: "Cell.Passive.RA", Min: 0.5, Max: 8},
		{Name: "RM", Path: "Cell.Passive.RM", Min: 150, Max: 900},
		{Name: "CM", Path: "Cell.Passive.CM", Min: 30, Max: 150},
		{Name: "NaFGbar", Path: "Cell.NaF.Gbar", Min: 800, Max: 8000},
		{Name: "Kv3Gbar", Path: "Cell.Kv3.Gbar", Min: 200, Max: 3000},
		{Name: "KvSGbar", Path: "Cell.KvS.Gbar", Min: 5, Max: 300},
		{Name: "KCNQGbar", Path: "Cell.KCNQ.Gbar", Min: 1, Max: 100},
		{Name: "SKGbar", Path: "Cell.SKCa.Gbar", Min: 0, Max: 40},
		{Name: "BKGbar", Path: "Cell.BKCa.Gbar", Min: 0, Max: 80},
		{Name: "HCNGbar", Path: "Cell.HCN.Gbar", Min: 0, Max: 40},
		{Name: "CaHVAGbar", Path: "Cell.CaHVA.Gbar", Min: 0, Max: 8},
		{Name: "Baseline", Path: fit.BaselinePath, Min: -70, Max: -50},
	}
}

func (md *Model) Inject() *cell.InjectParams      { return &md.Inj }
func (md *Model) Windows() *features.WindowParams { return &md.Win }
