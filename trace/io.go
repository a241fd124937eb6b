// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/goki/gi/gi"
)

// IV trace sets are saved as a single .tsv table: a Time column plus one
// Vm_<injection> column per trace.  All traces in a set must share Dt
// and length.

// vmCol is the column-name prefix encoding the injection current.
const vmCol = "Vm_"

// SaveIV writes a set of traces to a .tsv file.
func SaveIV(fname string, trs []*Trace) error {
	if len(trs) == 0 {
		return fmt.Errorf("trace.SaveIV: no traces to save")
	}
	n := trs[0].Len()
	dt := trs[0].Dt
	for _, tr := range trs {
		if tr.Len() != n || tr.Dt != dt {
			return fmt.Errorf("trace.SaveIV: traces differ in length or Dt")
		}
	}
	sch := etable.Schema{
		{Name: "Time", Type: etensor.FLOAT64},
	}
	for _, tr := range trs {
		sch = append(sch, etable.Column{Name: vmCol + strconv.FormatFloat(tr.Injection, 'g', -1, 64), Type: etensor.FLOAT64})
	}
	dt2 := &etable.Table{}
	dt2.SetFromSchema(sch, n)
	for i := 0; i < n; i++ {
		dt2.SetCellFloat("Time", i, trs[0].Time(i))
		for ti, tr := range trs {
			dt2.SetCellFloat(sch[ti+1].Name, i, tr.Vm[i])
		}
	}
	return dt2.SaveCSV(gi.FileName(fname), etable.Tab, etable.Headers)
}

// LoadIV reads a set of traces from a .tsv file written by SaveIV,
// sorted by injection current.
func LoadIV(fname string) ([]*Trace, error) {
	dt := &etable.Table{}
	err := dt.OpenCSV(gi.FileName(fname), etable.Tab)
	if err != nil {
		return nil, err
	}
	if dt.Rows < 2 {
		return nil, fmt.Errorf("trace.LoadIV: %s has too few rows", fname)
	}
	step := dt.CellFloat("Time", 1) - dt.CellFloat("Time", 0)
	if step <= 0 {
		return nil, fmt.Errorf("trace.LoadIV: %s has non-increasing Time column", fname)
	}
	var trs []*Trace
	for _, cn := range dt.ColNames {
		if !strings.HasPrefix(cn, vmCol) {
			continue
		}
		inj, err := strconv.ParseFloat(strings.TrimPrefix(cn, vmCol), 64)
		if err != nil {
			return nil, fmt.Errorf("trace.LoadIV: bad column name %q: %v", cn, err)
		}
		tr := New(inj, step, dt.Rows)
		for i := 0; i < dt.Rows; i++ {
			tr.Vm = append(tr.Vm, dt.CellFloat(cn, i))
		}
		trs = append(trs, tr)
	}
	if len(trs) == 0 {
		return nil, fmt.Errorf("trace.LoadIV: %s has no %s columns", fname, vmCol)
	}
	sort.Slice(trs, func(i, j int) bool { return trs[i].Injection < trs[j].Injection })
	return trs, nil
}
