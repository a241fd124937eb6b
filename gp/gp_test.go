// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gp

import (
	"testing"

	"github.com/nsimlab/neurofit/fit"
)

func TestCondSets(t *testing.T) {
	if err := CondSets.ValidateSheets([]string{"Cell"}); err != nil {
		t.Errorf("sheet names: %v", err)
	}
	for _, nm := range []string{"Base", "proto", "arky"} {
		if _, err := CondSets.SetByNameTry(nm); err != nil {
			t.Errorf("missing set %s: %v", nm, err)
		}
	}
}

func TestNewCell(t *testing.T) {
	proto, err := New(Proto).NewCell()
	if err != nil {
		t.Fatal(err)
	}
	arky, err := New(Arky).NewCell()
	if err != nil {
		t.Fatal(err)
	}
	if proto.NaF.Gbar <= arky.NaF.Gbar {
		t.Errorf("NaF: proto %g should exceed arky %g", proto.NaF.Gbar, arky.NaF.Gbar)
	}
	if proto.SKCa.Gbar >= arky.SKCa.Gbar {
		t.Errorf("SKCa: arky %g should exceed proto %g", arky.SKCa.Gbar, proto.SKCa.Gbar)
	}
	// pallidal cells have no Kir or A-type conductances
	if proto.Kir.Gbar != 0 || proto.KaF.Gbar != 0 {
		t.Errorf("striatal conductances leaked in: Kir %g KaF %g", proto.Kir.Gbar, proto.KaF.Gbar)
	}
	if proto.HCN.Gbar != 16 || arky.HCN.Gbar != 8 {
		t.Errorf("HCN overlays: got %g, %g", proto.HCN.Gbar, arky.HCN.Gbar)
	}
}

func TestTypeFromName(t *testing.T) {
	if typ, err := TypeFromName("Proto"); err != nil || typ != Proto {
		t.Errorf("Proto: got %v, %v", typ, err)
	}
	if typ, err := TypeFromName("arky"); err != nil || typ != Arky {
		t.Errorf("arky: got %v, %v", typ, err)
	}
	if _, err := TypeFromName("d1"); err == nil {
		t.Error("expected error for striatal name")
	}
}

func TestSpecsApply(t *testing.T) {
	md := New(Arky)
	specs := md.Specs()
	vec := make([]float64, len(specs))
	for i, sp := range specs {
		vec[i] = (sp.Min + sp.Max) / 2
	}
	c, err := fit.Build(md, vec)
	if err != nil {
		t.Fatal(err)
	}
	if float64(c.Kv3.Gbar) != (200.0+3000.0)/2 {
		t.Errorf("Kv3: got %g, want midpoint 1600", c.Kv3.Gbar)
	}
	if err := md.Inject().Validate(); err != nil {
		t.Error(err)
	}
}
