// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package spn provides the striatal projection neuron models (direct
pathway D1 and indirect pathway D2): conductance conditions, the
optimizable parameters and the current-injection protocol.
*/
package spn

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

// StriatumType is the projection neuron subtype.
type StriatumType int32

//go:generate stringer -type=StriatumType

var KiT_StriatumType = kit.Enums.AddEnum(StriatumTypeN, kit.NotBitFlag, nil)

func (ev StriatumType) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *StriatumType) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// D1 is the direct pathway subtype expressing D1 dopamine receptors
	D1 StriatumType = iota

	// D2 is the indirect pathway subtype expressing D2 dopamine receptors
	D2

	StriatumTypeN
)

// TypeFromName parses a model name ("D1", "d2", ...).
func TypeFromName(nm string) (StriatumType, error) {
	switch strings.ToLower(nm) {
	case "d1":
		return D1, nil
	case "d2":
		return D2, nil
	}
	return StriatumTypeN, fmt.Errorf("spn: unknown model %q", nm)
}

// CondSets are the conductance conditions: Base holds kinetics and
// passive properties shared by both subtypes, D1 and D2 overlay the
// subtype-specific conductance densities.
var CondSets = params.Sets{
	{Name: "Base", Desc: "shared passive and conductance starting point", Sheets: params.Sheets{
		"Cell": &params.Sheet{
			{Sel: "Cell", Desc: "medium spiny neuron defaults",
				Params: params.Params{
					"Cell.Passive.CM":       "180",
					"Cell.Passive.RM":       "150",
					"Cell.Passive.RA":       "4",
					"Cell.Passive.Eleak":    "-75",
					"Cell.Passive.Vinit":    "-80",
					"Cell.Passive.DendFrac": "0.6",
					"Cell.Kir.Gbar":         "12",
					"Cell.NaF.Gbar":         "2200",
					"Cell.KaF.Gbar":         "600",
					"Cell.KaS.Gbar":         "140",
					"Cell.Krp.Gbar":         "28",
					"Cell.BKCa.Gbar":        "10",
					"Cell.SKCa.Gbar":        "1.5",
					"Cell.CaHVA.Gbar":       "2",
				}},
		},
	}},
	{Name: "D1", Desc: "direct pathway: more excitable dendrites, stronger KaF", Sheets: params.Sheets{
		"Cell": &params.Sheet{
			{Sel: "Cell", Desc: "D1 conductance overlay",
				Params: params.Params{
					"Cell.Kir.Gbar": "14",
					"Cell.KaF.Gbar": "740",
					"Cell.KaS.Gbar": "120",
					"Cell.NaF.Gbar": "2000",
				}},
		},
	}},
	{Name: "D2", Desc: "indirect pathway: higher intrinsic excitability", Sheets: params.Sheets{
		"Cell": &params.Sheet{
			{Sel: "Cell", Desc: "D2 conductance overlay",
				Params: params.Params{
					"Cell.Kir.Gbar": "10",
					"Cell.KaF.Gbar": "560",
					"Cell.KaS.Gbar": "160",
					"Cell.NaF.Gbar": "2400",
				}},
		},
	}},
}

// Model is one striatal projection neuron subtype, ready for fitting.
type Model struct {
	Type StriatumType          `desc:"projection neuron subtype"`
	Inj  cell.InjectParams     `view:"inline" desc:"injection protocol"`
	Win  features.WindowParams `view:"inline" desc:"feature extraction windows"`
}

// New returns the model for a subtype with the standard protocol:
// hyperpolarizing, near-rheobase and suprathreshold current steps.
func New(typ StriatumType) *Model {
	md := &Model{Type: typ}
	md.Inj.Defaults()
	md.Inj.Currents = []float64{-150, 150, 350}
	md.Win.Defaults()
	md.Win.SetInject(md.Inj.Delay, md.Inj.Width)
	return md
}

func (md *Model) Name() string {
	if md.Type == D2 {
		return "D2"
	}
	return "D1"
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
			return nil, fmt.Errorf("spn: set %s has no Cell sheet", setNm)
		}
		if _, err := sheet.Apply(c, false); err != nil {
			return nil, err
		}
	}
	c.Update()
	return c, nil
}

// Specs lists the optimized parameters: passive properties, the
// conductance densities of the subtype channel complement, the Kir
// activation offset and the resting potential.
func (md *Model) Specs() []evolve.ParamSpec {
	return []evolve.ParamSpec{
		{Name: "RA", Path: "Cell.Passive.RA", Min: 1, Max: 12},
		{Name: "RM", Path: "Cell.Passive.RM", Min: 50, Max: 300},
		{Name: "CM", Path: "Cell.Passive.CM", Min: 60, Max: 300},
		{Name: "KirGbar", Path: "Cell.Kir.Gbar", Min: 0, Max: 40},
		{Name: "NaFGbar", Path: "Cell.NaF.Gbar", Min: 400, Max: 6000},
		{Name: "KaFGbar", Path: "Cell.KaF.Gbar", Min: 100, Max: 2000},
		{Name: "KaSGbar", Path: "Cell.KaS.Gbar", Min: 10, Max: 800},
		{Name: "KrpGbar", Path: "Cell.Krp.Gbar", Min: 1, Max: 150},
		{Name: "BKGbar", Path: "Cell.BKCa.Gbar", Min: 0, Max: 50},
		{Name: "CaHVAGbar", Path: "Cell.CaHVA.Gbar", Min: 0, Max: 10},
		{Name: "KirOffset", Path: "Cell.Kir.VOffset", Min: -10, Max: 10},
		{Name: "Baseline", Path: fit.BaselinePath, Min: -85, Max: -70},
	}
}

func (md *Model) Inject() *cell.InjectParams      { return &md.Inj }
func (md *Model) Windows() *features.WindowParams { return &md.Win }
