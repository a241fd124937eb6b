// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/nsimlab/neurofit/archive"
	"github.com/nsimlab/neurofit/fitness"
)

// writeLog saves a small run log where fitness rises linearly with RM
// and is unrelated to the second parameter.
func writeLog(t *testing.T, dir, name string, params []string, n int) {
	t.Helper()
	lg := archive.NewRunLog(params, []string{"baseline"})
	pop := make([]*fitness.Scored, n)
	for i := range pop {
		vec := make([]float64, len(params))
		vec[0] = 100 + 10*float64(i)
		for j := 1; j < len(vec); j++ {
			vec[j] = float64((i*7)%5) * 13
		}
		pop[i] = &fitness.Scored{
			Params: vec,
			Scores: []float64{0.1},
			Total:  1 + 0.5*float64(i),
		}
	}
	lg.LogGen(0, pop)
	fnm := archive.VersionedPath(dir, name, ".tsv")
	if err := lg.Save(fnm); err != nil {
		t.Fatal(err)
	}
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "d1", []string{"RM", "CM"}, 6)
	writeLog(t, dir, "d1", []string{"RM", "CM"}, 4)
	writeLog(t, dir, "d2", []string{"RM", "KirGbar"}, 5)

	all, err := LoadAll(dir)
	if err != nil {
		t.Fatal(err)
	}
	if all.Rows != 15 {
		t.Fatalf("rows: got %d, want 15", all.Rows)
	}
	if all.CellString("Run", 0) != "d1_V1" || all.CellString("Model", 0) != "d1" {
		t.Errorf("labels: got %q %q", all.CellString("Run", 0), all.CellString("Model", 0))
	}
	// d2 rows have no CM: must be NaN, not zero
	lastRow := all.Rows - 1
	if all.CellString("Model", lastRow) != "d2" {
		t.Fatalf("last row model: got %q", all.CellString("Model", lastRow))
	}
	if !math.IsNaN(all.CellFloat("CM", lastRow)) {
		t.Errorf("missing column: got %g, want NaN", all.CellFloat("CM", lastRow))
	}
	if math.IsNaN(all.CellFloat("KirGbar", lastRow)) {
		t.Errorf("present column read back NaN")
	}

	cols := ParamCols(all)
	for _, nm := range cols {
		if nm == "Run" || nm == "Gen" || nm == archive.FitnessCol {
			t.Errorf("bookkeeping column %q in params", nm)
		}
	}
}

func TestParamCorrs(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "d1", []string{"RM", "CM"}, 10)
	all, err := LoadAll(dir)
	if err != nil {
		t.Fatal(err)
	}
	cr := ParamCorrs(all, []string{"RM", "CM"})
	if cr.CellString("Param", 0) != "RM" {
		t.Errorf("strongest correlate: got %q, want RM", cr.CellString("Param", 0))
	}
	if r := cr.CellFloat("R", 0); math.Abs(r-1) > 1e-9 {
		t.Errorf("RM correlation: got %g, want 1", r)
	}
	if r := cr.CellFloat("R", 1); math.Abs(r) > 0.9 {
		t.Errorf("CM correlation unexpectedly strong: %g", r)
	}
}

func TestCorrMatrix(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "d1", []string{"RM", "CM"}, 10)
	all, err := LoadAll(dir)
	if err != nil {
		t.Fatal(err)
	}
	cm := CorrMatrix(all, []string{"RM", "CM"})
	if cm.Rows != 2 {
		t.Fatalf("rows: got %d, want 2", cm.Rows)
	}
	for i := 0; i < 2; i++ {
		nm := cm.CellString("Param", i)
		if r := cm.CellFloat(nm, i); math.Abs(r-1) > 1e-9 {
			t.Errorf("diagonal %s: got %g, want 1", nm, r)
		}
	}
	if r01, r10 := cm.CellFloat("CM", 0), cm.CellFloat("RM", 1); math.Abs(r01-r10) > 1e-9 {
		t.Errorf("matrix not symmetric: %g vs %g", r01, r10)
	}
}

func TestBestTable(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "d1", []string{"RM", "CM"}, 6)
	writeLog(t, dir, "d2", []string{"RM", "CM"}, 4)
	all, err := LoadAll(dir)
	if err != nil {
		t.Fatal(err)
	}
	best := BestTable(all)
	if best.Rows != 2 {
		t.Fatalf("rows: got %d, want 2", best.Rows)
	}
	for i := 0; i < best.Rows; i++ {
		if f := best.CellFloat(archive.FitnessCol, i); f != 1 {
			t.Errorf("row %d fitness: got %g, want 1 (the per-run minimum)", i, f)
		}
	}
	fnm := filepath.Join(dir, "best.csv")
	if err := SaveCSV(best, fnm); err != nil {
		t.Fatal(err)
	}
}

func TestSummary(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "d1", []string{"RM", "CM"}, 6)
	writeLog(t, dir, "d1", []string{"RM", "CM"}, 4)
	writeLog(t, dir, "d2", []string{"RM", "CM"}, 5)
	all, err := LoadAll(dir)
	if err != nil {
		t.Fatal(err)
	}
	sum := Summary(all)
	if sum.Rows != 2 {
		t.Fatalf("summary rows: got %d, want 2", sum.Rows)
	}
	sz, err := ArchiveSize(dir)
	if err != nil {
		t.Fatal(err)
	}
	if sz == "" || sz == "0B" {
		t.Errorf("archive size: got %q", sz)
	}
}
