// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package vartype provides a scalar value with an associated deviation
(x +- dev): error-propagating arithmetic on such values, and helpers for
reducing measurement series down to them.  All of the extracted
electrophysiological features are reported as vartype values so that the
fitness measures can weight differences by measurement uncertainty.
*/
package vartype

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Var is a value with an associated deviation (standard error).
type Var struct {
	X   float64 `desc:"the value"`
	Dev float64 `desc:"deviation (standard error) of the value"`
}

// NaN is the null Var -- both value and deviation are NaN.
var NaN = Var{math.NaN(), math.NaN()}

// New returns a Var with given value and deviation.
func New(x, dev float64) Var {
	return Var{x, dev}
}

// Exact returns a Var with zero deviation.
func Exact(x float64) Var {
	return Var{x, 0}
}

// IsNaN returns true if the value is NaN.
func (v Var) IsNaN() bool {
	return math.IsNaN(v.X)
}

// Relative is the value in units of its deviation (X / Dev).
func (v Var) Relative() float64 {
	return v.X / v.Dev
}

func (v Var) String() string {
	return fmt.Sprintf("%g±%g", v.X, v.Dev)
}

// Add returns a + b with deviations added in quadrature.
func Add(a, b Var) Var {
	return Var{a.X + b.X, math.Hypot(a.Dev, b.Dev)}
}

// Sub returns a - b with deviations added in quadrature.
func Sub(a, b Var) Var {
	return Var{a.X - b.X, math.Hypot(a.Dev, b.Dev)}
}

// SubDev returns a - b with the deviation taken from the second
// (measurement) operand only, floored at minDev:
// dev = sqrt(b.Dev^2 + minDev^2).  This is the weighting used when
// comparing a simulated value (whose own deviation is meaningless)
// against a measured one.
func SubDev(a, b Var, minDev float64) Var {
	if a.IsNaN() || b.IsNaN() {
		return NaN
	}
	return Var{a.X - b.X, math.Sqrt(b.Dev*b.Dev + minDev*minDev)}
}

// Mul returns a scaled by exact factor c.
func (v Var) Mul(c float64) Var {
	return Var{v.X * c, v.Dev * math.Abs(c)}
}

// Mean reduces a series to its mean +- standard error.
// An empty series gives NaN.
func Mean(xs []float64) Var {
	n := len(xs)
	if n == 0 {
		return NaN
	}
	if n == 1 {
		return Var{xs[0], 0}
	}
	m, sd := stat.MeanStdDev(xs, nil)
	return Var{m, sd / math.Sqrt(float64(n))}
}

// RMS returns the root-mean-square of the deviation-normalized values
// (X / Dev per element).  Any NaN element gives NaN.  Elements with zero
// deviation contribute their raw value.
func RMS(vs []Var) float64 {
	if len(vs) == 0 {
		return math.NaN()
	}
	ss := 0.0
	for _, v := range vs {
		if v.IsNaN() {
			return math.NaN()
		}
		x := v.X
		if v.Dev > 0 {
			x = v.X / v.Dev
		}
		ss += x * x
	}
	return math.Sqrt(ss / float64(len(vs)))
}

// RMSPlain returns the root-mean-square of raw float values,
// ignoring NaN elements.  All-NaN (or empty) input gives NaN.
func RMSPlain(xs []float64) float64 {
	ss := 0.0
	n := 0
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		ss += x * x
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return math.Sqrt(ss / float64(n))
}
