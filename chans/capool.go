// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

// CaPoolParams is a single submembrane calcium pool driven by the
// calcium channel current, decaying back to the resting level.
type CaPoolParams struct {
	Tau  float32 `def:"20" desc:"decay time constant back to Min (msec)"`
	Rise float32 `def:"0.005" desc:"concentration increase per pA of calcium current per msec (uM)"`
	Min  float32 `def:"0.05" desc:"resting calcium concentration (uM)"`
}

func (cp *CaPoolParams) Defaults() {
	cp.Tau = 20
	cp.Rise = 0.005
	cp.Min = 0.05
}

func (cp *CaPoolParams) Update() {
}

// CaFromI advances the pool concentration ca by dt msec, given the
// (depolarizing, positive) calcium current ica in pA.
func (cp *CaPoolParams) CaFromI(ca, ica, dt float32) float32 {
	if ica < 0 {
		ica = 0
	}
	ca += dt * (cp.Rise*ica - (ca-cp.Min)/cp.Tau)
	if ca < cp.Min {
		ca = cp.Min
	}
	return ca
}
