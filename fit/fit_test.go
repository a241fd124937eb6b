// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nsimlab/neurofit/cell"
	"github.com/nsimlab/neurofit/evolve"
	"github.com/nsimlab/neurofit/features"
	"github.com/nsimlab/neurofit/trace"
)

// passiveModel is a minimal fittable model: a passive cell with
// membrane resistance, capacitance and resting potential to optimize.
type passiveModel struct {
	inj cell.InjectParams
	win features.WindowParams
}

func newPassiveModel() *passiveModel {
	md := &passiveModel{}
	md.inj.Defaults()
	md.inj.Delay = 0.05
	md.inj.Width = 0.15
	md.inj.SimTime = 0.3
	md.inj.Currents = []float64{-150, 150}
	md.win.Defaults()
	md.win.SetInject(md.inj.Delay, md.inj.Width)
	return md
}

func (md *passiveModel) Name() string { return "passive" }

func (md *passiveModel) NewCell() (*cell.Cell, error) {
	c := &cell.Cell{}
	c.Defaults()
	return c, nil
}

func (md *passiveModel) Specs() []evolve.ParamSpec {
	return []evolve.ParamSpec{
		{Name: "RM", Path: "Cell.Passive.RM", Min: 50, Max: 500},
		{Name: "CM", Path: "Cell.Passive.CM", Min: 50, Max: 400},
		{Name: "baseline", Path: BaselinePath, Min: -90, Max: -60},
	}
}

func (md *passiveModel) Inject() *cell.InjectParams      { return &md.inj }
func (md *passiveModel) Windows() *features.WindowParams { return &md.win }

func TestBuild(t *testing.T) {
	md := newPassiveModel()
	c, err := Build(md, []float64{200, 100, -72})
	if err != nil {
		t.Fatal(err)
	}
	if c.Passive.RM != 200 {
		t.Errorf("RM: got %g, want 200", c.Passive.RM)
	}
	if c.Passive.CM != 100 {
		t.Errorf("CM: got %g, want 100", c.Passive.CM)
	}
	if c.Passive.Vinit != -72 {
		t.Errorf("Vinit: got %g, want -72", c.Passive.Vinit)
	}
	if c.State.Vm != -72 {
		t.Errorf("state not initialized: Vm = %g", c.State.Vm)
	}
	if _, err := Build(md, []float64{200, 100}); err == nil {
		t.Error("expected error for short vector")
	}
}

func TestEvalSelf(t *testing.T) {
	md := newPassiveModel()
	vec := []float64{150, 180, -80}
	pb := NewProblem(md, nil)
	trs, err := pb.Simulate(context.Background(), vec)
	if err != nil {
		t.Fatal(err)
	}
	pb.Mes = features.SetFromTraces(trs, md.Windows())

	_, total, err := pb.Eval(context.Background(), vec)
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 {
		t.Errorf("self fitness: got %g, want 0", total)
	}
	_, other, err := pb.Eval(context.Background(), []float64{300, 180, -80})
	if err != nil {
		t.Fatal(err)
	}
	if !(other > total) {
		t.Errorf("mismatched params should score worse: got %g vs %g", other, total)
	}
}

func TestSpikeFill(t *testing.T) {
	md := newPassiveModel()
	pb := NewProblem(md, nil)
	if pb.Measure.Params.SpikeFill != md.inj.InjInterval() {
		t.Errorf("spike fill: got %g, want %g", pb.Measure.Params.SpikeFill, md.inj.InjInterval())
	}
}

func TestLoadMeasurement(t *testing.T) {
	md := newPassiveModel()
	pb := NewProblem(md, nil)
	trs, err := pb.Simulate(context.Background(), []float64{150, 180, -80})
	if err != nil {
		t.Fatal(err)
	}
	fs := features.SetFromTraces(trs, md.Windows())
	dir := t.TempDir()

	ffnm := filepath.Join(dir, "feat.tsv")
	if err := fs.Save(ffnm); err != nil {
		t.Fatal(err)
	}
	got, err := LoadMeasurement(ffnm, md.Windows())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(fs) {
		t.Errorf("feature file: got %d records, want %d", len(got), len(fs))
	}

	tfnm := filepath.Join(dir, "iv.tsv")
	if err := trace.SaveIV(tfnm, trs); err != nil {
		t.Fatal(err)
	}
	got, err = LoadMeasurement(tfnm, md.Windows())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(trs) {
		t.Errorf("trace file: got %d records, want %d", len(got), len(trs))
	}
	for i := range got {
		if got[i].Injection != fs[i].Injection {
			t.Errorf("record %d injection: got %g, want %g", i, got[i].Injection, fs[i].Injection)
		}
	}
}
