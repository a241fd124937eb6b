// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package analysis aggregates saved optimization runs: it concatenates
run logs into one table, correlates parameters with fitness, extracts
the best individual per run, and summarizes runs per model.
*/
package analysis

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/emer/etable/agg"
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/emer/etable/metric"
	"github.com/emer/etable/split"
	"github.com/goki/gi/gi"

	"github.com/nsimlab/neurofit/archive"
)

// nonParamCols are run-log columns that are not parameters or fitness
// components.
var nonParamCols = map[string]bool{
	"Run": true, "Model": true, "Gen": true, "Ind": true,
	archive.FitnessCol: true,
}

// RunLabel splits a run log file name into the run id (file base) and
// the model label (everything before the version suffix).
func RunLabel(fnm string) (run, model string) {
	run = strings.TrimSuffix(filepath.Base(fnm), filepath.Ext(fnm))
	model = run
	if i := strings.LastIndex(run, "_V"); i > 0 {
		model = run[:i]
	}
	return run, model
}

// LoadAll reads every run log in dir into one table, with Run and
// Model label columns prepended.  Columns are aligned by name across
// runs; values a run does not have are NaN.
func LoadAll(dir string) (*etable.Table, error) {
	fnms, err := archive.Runs(dir)
	if err != nil {
		return nil, err
	}
	if len(fnms) == 0 {
		return nil, fmt.Errorf("analysis: no run logs in %s", dir)
	}
	var cols []string
	seen := map[string]bool{}
	logs := make([]*etable.Table, len(fnms))
	rows := 0
	for i, fnm := range fnms {
		dt, err := archive.OpenRunLog(fnm)
		if err != nil {
			return nil, err
		}
		logs[i] = dt
		rows += dt.Rows
		for _, nm := range dt.ColNames {
			if !seen[nm] {
				seen[nm] = true
				cols = append(cols, nm)
			}
		}
	}
	sch := etable.Schema{
		{Name: "Run", Type: etensor.STRING},
		{Name: "Model", Type: etensor.STRING},
	}
	for _, nm := range cols {
		sch = append(sch, etable.Column{Name: nm, Type: etensor.FLOAT64})
	}
	all := &etable.Table{}
	all.SetFromSchema(sch, rows)
	row := 0
	for i, dt := range logs {
		run, model := RunLabel(fnms[i])
		has := map[string]bool{}
		for _, nm := range dt.ColNames {
			has[nm] = true
		}
		for ri := 0; ri < dt.Rows; ri++ {
			all.SetCellString("Run", row, run)
			all.SetCellString("Model", row, model)
			for _, nm := range cols {
				v := math.NaN()
				if has[nm] {
					v = dt.CellFloat(nm, ri)
				}
				all.SetCellFloat(nm, row, v)
			}
			row++
		}
	}
	return all, nil
}

// ParamCols returns the parameter / component columns of a combined
// table: every numeric column that is not bookkeeping or the total.
func ParamCols(dt *etable.Table) []string {
	var cols []string
	for _, nm := range dt.ColNames {
		if !nonParamCols[nm] {
			cols = append(cols, nm)
		}
	}
	return cols
}

// corr computes the correlation between two columns over rows where
// both are finite.  Fewer than 3 such rows gives NaN.
func corr(dt *etable.Table, ca, cb string) float64 {
	var xs, ys []float64
	for ri := 0; ri < dt.Rows; ri++ {
		x := dt.CellFloat(ca, ri)
		y := dt.CellFloat(cb, ri)
		if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	if len(xs) < 3 {
		return math.NaN()
	}
	return metric.Correlation64(xs, ys)
}

// ParamCorrs correlates each given column with the combined fitness,
// returning a table sorted by descending correlation magnitude.
func ParamCorrs(dt *etable.Table, cols []string) *etable.Table {
	if cols == nil {
		cols = ParamCols(dt)
	}
	out := &etable.Table{}
	out.SetFromSchema(etable.Schema{
		{Name: "Param", Type: etensor.STRING},
		{Name: "R", Type: etensor.FLOAT64},
	}, len(cols))
	rs := make([]float64, len(cols))
	ord := make([]int, len(cols))
	for i, nm := range cols {
		rs[i] = corr(dt, nm, archive.FitnessCol)
		ord[i] = i
	}
	sort.SliceStable(ord, func(a, b int) bool {
		ra, rb := math.Abs(rs[ord[a]]), math.Abs(rs[ord[b]])
		if math.IsNaN(rb) {
			return !math.IsNaN(ra)
		}
		if math.IsNaN(ra) {
			return false
		}
		return ra > rb
	})
	for i, oi := range ord {
		out.SetCellString("Param", i, cols[oi])
		out.SetCellFloat("R", i, rs[oi])
	}
	return out
}

// CorrMatrix returns the pairwise correlation matrix of the given
// columns (all params if nil) as a table with a leading Param column.
func CorrMatrix(dt *etable.Table, cols []string) *etable.Table {
	if cols == nil {
		cols = ParamCols(dt)
	}
	sch := etable.Schema{{Name: "Param", Type: etensor.STRING}}
	for _, nm := range cols {
		sch = append(sch, etable.Column{Name: nm, Type: etensor.FLOAT64})
	}
	out := &etable.Table{}
	out.SetFromSchema(sch, len(cols))
	for i, ra := range cols {
		out.SetCellString("Param", i, ra)
		for _, cb := range cols {
			out.SetCellFloat(cb, i, corr(dt, ra, cb))
		}
	}
	return out
}

// BestTable extracts the lowest-fitness row of each run, preserving
// all columns.  Rows are ordered by run name.
func BestTable(all *etable.Table) *etable.Table {
	bestRow := map[string]int{}
	var runs []string
	for ri := 0; ri < all.Rows; ri++ {
		run := all.CellString("Run", ri)
		f := all.CellFloat(archive.FitnessCol, ri)
		bi, ok := bestRow[run]
		if !ok {
			bestRow[run] = ri
			runs = append(runs, run)
			continue
		}
		bf := all.CellFloat(archive.FitnessCol, bi)
		if !math.IsNaN(f) && (math.IsNaN(bf) || f < bf) {
			bestRow[run] = ri
		}
	}
	sort.Strings(runs)
	sch := etable.Schema{}
	for i, nm := range all.ColNames {
		sch = append(sch, etable.Column{Name: nm, Type: all.Cols[i].DataType()})
	}
	out := &etable.Table{}
	out.SetFromSchema(sch, len(runs))
	for i, run := range runs {
		ri := bestRow[run]
		for ci, nm := range all.ColNames {
			if all.Cols[ci].DataType() == etensor.STRING {
				out.SetCellString(nm, i, all.CellString(nm, ri))
			} else {
				out.SetCellFloat(nm, i, all.CellFloat(nm, ri))
			}
		}
	}
	return out
}

// SaveCSV writes a table as a comma-separated file with headers, the
// format the downstream statistics tooling imports.
func SaveCSV(dt *etable.Table, fnm string) error {
	return dt.SaveCSV(gi.FileName(fnm), etable.Comma, etable.Headers)
}

// Summary groups the combined table by model and aggregates fitness:
// evaluation count, mean and minimum.
func Summary(all *etable.Table) *etable.Table {
	ix := etable.NewIdxView(all)
	spl := split.GroupBy(ix, []string{"Model"})
	split.Agg(spl, archive.FitnessCol, agg.AggCount)
	split.Agg(spl, archive.FitnessCol, agg.AggMean)
	split.Agg(spl, archive.FitnessCol, agg.AggMin)
	return spl.AggsToTable(etable.AddAggName)
}

// ArchiveSize totals the size of the run logs in dir, human readable.
func ArchiveSize(dir string) (string, error) {
	fnms, err := archive.Runs(dir)
	if err != nil {
		return "", err
	}
	var n uint64
	for _, fnm := range fnms {
		fi, err := os.Stat(fnm)
		if err != nil {
			return "", err
		}
		n += uint64(fi.Size())
	}
	return datasize.ByteSize(n).HumanReadable(), nil
}
