// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package features

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/goki/gi/gi"

	"github.com/nsimlab/neurofit/vartype"
)

// varCols are the Var-valued feature columns, each saved as a pair of
// columns Name and NameDev.
var varCols = []string{
	"Baseline", "Steady", "Response", "Rectification",
	"FallingTau", "FallingAmp", "ChargingHalf",
	"SpikeHeight", "SpikeWidth", "SpikeAHP", "MeanISI",
}

func (r *Record) vars() []*vartype.Var {
	return []*vartype.Var{
		&r.Baseline, &r.Steady, &r.Response, &r.Rectification,
		&r.FallingTau, &r.FallingAmp, &r.ChargingHalf,
		&r.SpikeHeight, &r.SpikeWidth, &r.SpikeAHP, &r.MeanISI,
	}
}

// ToTable renders the feature set as an etable, one row per injection.
func (fs Set) ToTable() *etable.Table {
	sch := etable.Schema{
		{Name: "Injection", Type: etensor.FLOAT64},
	}
	for _, c := range varCols {
		sch = append(sch, etable.Column{Name: c, Type: etensor.FLOAT64})
		sch = append(sch, etable.Column{Name: c + "Dev", Type: etensor.FLOAT64})
	}
	sch = append(sch, etable.Schema{
		{Name: "SpikeCount", Type: etensor.FLOAT64},
		{Name: "Latency", Type: etensor.FLOAT64},
		{Name: "ISISpread", Type: etensor.FLOAT64},
		{Name: "SpikeTimes", Type: etensor.STRING},
	}...)
	dt := &etable.Table{}
	dt.SetFromSchema(sch, len(fs))
	for ri := range fs {
		r := &fs[ri]
		dt.SetCellFloat("Injection", ri, r.Injection)
		for ci, v := range r.vars() {
			dt.SetCellFloat(varCols[ci], ri, v.X)
			dt.SetCellFloat(varCols[ci]+"Dev", ri, v.Dev)
		}
		dt.SetCellFloat("SpikeCount", ri, float64(r.SpikeCount))
		dt.SetCellFloat("Latency", ri, r.Latency)
		dt.SetCellFloat("ISISpread", ri, r.ISISpread)
		dt.SetCellString("SpikeTimes", ri, formatSpikeTimes(r.SpikeTimes))
	}
	return dt
}

// FromTable reads a feature set back from a table written by ToTable.
func FromTable(dt *etable.Table) (Set, error) {
	if dt.ColIdx("Injection") < 0 {
		return nil, fmt.Errorf("features: no Injection column")
	}
	fs := make(Set, dt.Rows)
	for ri := 0; ri < dt.Rows; ri++ {
		r := &fs[ri]
		r.Injection = dt.CellFloat("Injection", ri)
		for ci, v := range r.vars() {
			v.X = dt.CellFloat(varCols[ci], ri)
			v.Dev = dt.CellFloat(varCols[ci]+"Dev", ri)
		}
		r.SpikeCount = int(dt.CellFloat("SpikeCount", ri))
		r.Latency = dt.CellFloat("Latency", ri)
		r.ISISpread = dt.CellFloat("ISISpread", ri)
		st, err := parseSpikeTimes(dt.CellString("SpikeTimes", ri))
		if err != nil {
			return nil, fmt.Errorf("features: row %d: %v", ri, err)
		}
		r.SpikeTimes = st
	}
	return fs, nil
}

// Save writes the feature set as a tab-separated file with headers.
func (fs Set) Save(fnm string) error {
	return fs.ToTable().SaveCSV(gi.FileName(fnm), etable.Tab, etable.Headers)
}

// Open reads a feature set from a tab-separated file written by Save.
func Open(fnm string) (Set, error) {
	dt := &etable.Table{}
	if err := dt.OpenCSV(gi.FileName(fnm), etable.Tab); err != nil {
		return nil, err
	}
	return FromTable(dt)
}

func formatSpikeTimes(ts []float64) string {
	ss := make([]string, len(ts))
	for i, t := range ts {
		ss[i] = strconv.FormatFloat(t, 'g', -1, 64)
	}
	return strings.Join(ss, ";")
}

func parseSpikeTimes(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ";")
	ts := make([]float64, len(parts))
	for i, p := range parts {
		t, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("bad spike time %q: %v", p, err)
		}
		ts[i] = t
	}
	return ts, nil
}
