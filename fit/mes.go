// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"github.com/emer/etable/etable"
	"github.com/goki/gi/gi"

	"github.com/nsimlab/neurofit/features"
	"github.com/nsimlab/neurofit/trace"
)

// LoadMeasurement reads a measurement file in either supported form: a
// feature table (one row per injection, written by features.Set.Save)
// or a raw IV trace table (Time plus Vm_<inj> columns), from which
// features are extracted with the given windows.
func LoadMeasurement(fnm string, wp *features.WindowParams) (features.Set, error) {
	dt := &etable.Table{}
	if err := dt.OpenCSV(gi.FileName(fnm), etable.Tab); err != nil {
		return nil, err
	}
	if dt.ColIdx("Injection") >= 0 {
		return features.FromTable(dt)
	}
	trs, err := trace.LoadIV(fnm)
	if err != nil {
		return nil, err
	}
	return features.SetFromTraces(trs, wp), nil
}
