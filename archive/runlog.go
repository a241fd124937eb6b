// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/goki/gi/gi"

	"github.com/nsimlab/neurofit/fitness"
)

// FitnessCol is the combined-fitness column of a run log.
const FitnessCol = "Fitness"

// RunLog accumulates every evaluated individual of an optimization
// run: one row per individual per generation, holding the parameter
// vector, the per-component fitness values and the combined total.
type RunLog struct {
	Table      *etable.Table `desc:"the log rows"`
	ParamNames []string      `desc:"parameter column names, in vector order"`
	CompNames  []string      `desc:"fitness component column names, in score order"`
}

// NewRunLog returns an empty log for given parameter and fitness
// component names.
func NewRunLog(paramNames, compNames []string) *RunLog {
	sch := etable.Schema{
		{Name: "Gen", Type: etensor.FLOAT64},
		{Name: "Ind", Type: etensor.FLOAT64},
	}
	for _, nm := range paramNames {
		sch = append(sch, etable.Column{Name: nm, Type: etensor.FLOAT64})
	}
	for _, nm := range compNames {
		sch = append(sch, etable.Column{Name: nm, Type: etensor.FLOAT64})
	}
	sch = append(sch, etable.Column{Name: FitnessCol, Type: etensor.FLOAT64})
	dt := &etable.Table{}
	dt.SetFromSchema(sch, 0)
	return &RunLog{Table: dt, ParamNames: paramNames, CompNames: compNames}
}

// LogGen appends one generation's population, assumed sorted.
func (lg *RunLog) LogGen(gen int, pop []*fitness.Scored) {
	dt := lg.Table
	for ind, s := range pop {
		row := dt.Rows
		dt.AddRows(1)
		dt.SetCellFloat("Gen", row, float64(gen))
		dt.SetCellFloat("Ind", row, float64(ind))
		for i, nm := range lg.ParamNames {
			dt.SetCellFloat(nm, row, s.Params[i])
		}
		for i, nm := range lg.CompNames {
			if i < len(s.Scores) {
				dt.SetCellFloat(nm, row, s.Scores[i])
			}
		}
		dt.SetCellFloat(FitnessCol, row, s.Total)
	}
}

// Save writes the log as a tab-separated file with headers.
func (lg *RunLog) Save(fnm string) error {
	return lg.Table.SaveCSV(gi.FileName(fnm), etable.Tab, etable.Headers)
}

// OpenRunLog reads a run log written by Save.
func OpenRunLog(fnm string) (*etable.Table, error) {
	dt := &etable.Table{}
	if err := dt.OpenCSV(gi.FileName(fnm), etable.Tab); err != nil {
		return nil, err
	}
	if dt.ColIdx(FitnessCol) < 0 {
		return nil, fmt.Errorf("archive: %s: not a run log (no %s column)", fnm, FitnessCol)
	}
	return dt, nil
}

// VersionedPath returns the next free versioned file name in dir:
// name_V1.ext, name_V2.ext, ... never overwriting an existing run.
func VersionedPath(dir, name, ext string) string {
	for v := 1; ; v++ {
		fnm := filepath.Join(dir, fmt.Sprintf("%s_V%d%s", name, v, ext))
		if _, err := os.Stat(fnm); os.IsNotExist(err) {
			return fnm
		}
	}
}

// Runs lists the run log files in a directory, sorted by name.
func Runs(dir string) ([]string, error) {
	fnms, err := filepath.Glob(filepath.Join(dir, "*_V*.tsv"))
	if err != nil {
		return nil, err
	}
	sort.Strings(fnms)
	return fnms, nil
}
