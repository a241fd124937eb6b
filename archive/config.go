// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package archive handles the on-disk side of an optimization: YAML run
configuration, the per-generation run log written as a versioned .tsv
file, and discovery of past runs in an output directory.
*/
package archive

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nsimlab/neurofit/cell"
	"github.com/nsimlab/neurofit/evolve"
)

// KnownModels are the neuron model names a config may name,
// case-insensitive.
var KnownModels = []string{"D1", "D2", "proto", "arky"}

// InjectConfig optionally overrides parts of a model's injection
// protocol.  Nil fields keep the model default.
type InjectConfig struct {
	Delay    *float64  `yaml:"delay,omitempty"`
	Width    *float64  `yaml:"width,omitempty"`
	SimTime  *float64  `yaml:"simtime,omitempty"`
	Dt       *float64  `yaml:"dt,omitempty"`
	RecordDt *float64  `yaml:"recorddt,omitempty"`
	Currents []float64 `yaml:"currents,omitempty"`
}

// Apply overlays the non-nil overrides onto the protocol.
func (ic *InjectConfig) Apply(ip *cell.InjectParams) {
	if ic.Delay != nil {
		ip.Delay = *ic.Delay
	}
	if ic.Width != nil {
		ip.Width = *ic.Width
	}
	if ic.SimTime != nil {
		ip.SimTime = *ic.SimTime
	}
	if ic.Dt != nil {
		ip.Dt = *ic.Dt
	}
	if ic.RecordDt != nil {
		ip.RecordDt = *ic.RecordDt
	}
	if len(ic.Currents) > 0 {
		ip.Currents = ic.Currents
	}
}

// RunConfig is one optimization run as described by a YAML file.
type RunConfig struct {
	Model       string             `yaml:"model" desc:"neuron model name, e.g. D1, D2, proto, arky"`
	Measurement string             `yaml:"measurement" desc:"measurement file (feature table or IV traces)"`
	OutDir      string             `yaml:"outdir" desc:"directory run logs are written to"`
	Label       string             `yaml:"label" desc:"run label used in the log file name; defaults to the model name"`
	Evolve      evolve.Params      `yaml:"evolve" desc:"optimization settings"`
	Inject      InjectConfig       `yaml:"inject" desc:"protocol overrides"`
	Fixed       map[string]float64 `yaml:"fixed" desc:"parameters pinned by name to a fixed value"`
}

// Defaults returns a config with standard optimization settings.
func Defaults() *RunConfig {
	cf := &RunConfig{OutDir: "."}
	cf.Evolve.Defaults()
	return cf
}

// OpenConfig reads a YAML run configuration, with defaults for
// anything the file does not mention.
func OpenConfig(fnm string) (*RunConfig, error) {
	b, err := os.ReadFile(fnm)
	if err != nil {
		return nil, err
	}
	cf := Defaults()
	if err := yaml.Unmarshal(b, cf); err != nil {
		return nil, fmt.Errorf("archive: %s: %v", fnm, err)
	}
	if err := cf.Validate(); err != nil {
		return nil, err
	}
	return cf, nil
}

// Validate checks the parts the file must provide.
func (cf *RunConfig) Validate() error {
	if cf.Model == "" {
		return fmt.Errorf("archive: config missing model")
	}
	known := false
	for _, nm := range KnownModels {
		if strings.EqualFold(cf.Model, nm) {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("archive: unknown model %q, must be one of %v", cf.Model, KnownModels)
	}
	if cf.Measurement == "" {
		return fmt.Errorf("archive: config missing measurement")
	}
	return cf.Evolve.Validate()
}

// FixSpecs returns the specs with any configured fixed values pinned.
func (cf *RunConfig) FixSpecs(specs []evolve.ParamSpec) ([]evolve.ParamSpec, error) {
	if len(cf.Fixed) == 0 {
		return specs, nil
	}
	out := make([]evolve.ParamSpec, len(specs))
	copy(out, specs)
	byName := map[string]int{}
	for i, sp := range out {
		byName[sp.Name] = i
	}
	for nm, val := range cf.Fixed {
		i, ok := byName[nm]
		if !ok {
			return nil, fmt.Errorf("archive: fixed parameter %q not in model specs", nm)
		}
		out[i].Fixed = true
		out[i].Min = val
		out[i].Max = val
	}
	return out, nil
}

// Save writes the config back out as YAML.
func (cf *RunConfig) Save(fnm string) error {
	b, err := yaml.Marshal(cf)
	if err != nil {
		return err
	}
	return os.WriteFile(fnm, b, 0644)
}
