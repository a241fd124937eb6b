// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vartype

import (
	"math"
	"testing"
)

const difTol = 1.0e-10

func TestSub(t *testing.T) {
	a := New(5, 3)
	b := New(2, 4)
	d := Sub(a, b)
	if math.Abs(d.X-3) > difTol {
		t.Errorf("Sub X: got %v, want 3", d.X)
	}
	if math.Abs(d.Dev-5) > difTol { // 3-4-5 triangle
		t.Errorf("Sub Dev: got %v, want 5", d.Dev)
	}
}

func TestSubDev(t *testing.T) {
	a := Exact(1)
	b := New(0.5, 0.012)
	d := SubDev(a, b, 0.005)
	if math.Abs(d.X-0.5) > difTol {
		t.Errorf("SubDev X: got %v, want 0.5", d.X)
	}
	want := math.Sqrt(0.012*0.012 + 0.005*0.005)
	if math.Abs(d.Dev-want) > difTol {
		t.Errorf("SubDev Dev: got %v, want %v", d.Dev, want)
	}
	if !SubDev(NaN, b, 0.005).IsNaN() {
		t.Errorf("SubDev with NaN operand should be NaN")
	}
}

func TestMean(t *testing.T) {
	m := Mean([]float64{1, 2, 3, 4, 5})
	if math.Abs(m.X-3) > difTol {
		t.Errorf("Mean X: got %v, want 3", m.X)
	}
	// sd = sqrt(2.5), sem = sd / sqrt(5)
	want := math.Sqrt(2.5) / math.Sqrt(5)
	if math.Abs(m.Dev-want) > difTol {
		t.Errorf("Mean Dev: got %v, want %v", m.Dev, want)
	}
	if !Mean(nil).IsNaN() {
		t.Errorf("Mean of empty should be NaN")
	}
	one := Mean([]float64{7})
	if one.X != 7 || one.Dev != 0 {
		t.Errorf("Mean of single: got %v", one)
	}
}

func TestRMS(t *testing.T) {
	vs := []Var{{3, 1}, {4, 1}}
	got := RMS(vs)
	want := math.Sqrt((9.0 + 16.0) / 2)
	if math.Abs(got-want) > difTol {
		t.Errorf("RMS: got %v, want %v", got, want)
	}
	if !math.IsNaN(RMS([]Var{{3, 1}, NaN})) {
		t.Errorf("RMS with NaN element should be NaN")
	}
	// zero dev contributes raw value
	got = RMS([]Var{{2, 0}})
	if math.Abs(got-2) > difTol {
		t.Errorf("RMS zero-dev: got %v, want 2", got)
	}
}

func TestRMSPlain(t *testing.T) {
	got := RMSPlain([]float64{3, math.NaN(), 4})
	want := math.Sqrt((9.0 + 16.0) / 2)
	if math.Abs(got-want) > difTol {
		t.Errorf("RMSPlain: got %v, want %v", got, want)
	}
	if !math.IsNaN(RMSPlain([]float64{math.NaN()})) {
		t.Errorf("RMSPlain all-NaN should be NaN")
	}
}
