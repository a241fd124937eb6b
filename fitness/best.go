// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fitness

import (
	"math"
	"sort"
)

// Scored is one evaluated individual: its parameter vector, the
// per-component fitness values, and the combined total.
type Scored struct {
	Params []float64 `desc:"parameter vector"`
	Scores []float64 `desc:"per-component fitness values"`
	Total  float64   `desc:"combined fitness (lower is better)"`
}

// better orders totals ascending with NaN last.
func better(a, b float64) bool {
	if math.IsNaN(b) {
		return !math.IsNaN(a)
	}
	if math.IsNaN(a) {
		return false
	}
	return a < b
}

// Sort orders the population by ascending total fitness, NaN last.
// The sort is stable so earlier individuals win ties.
func Sort(pop []*Scored) {
	sort.SliceStable(pop, func(i, j int) bool { return better(pop[i].Total, pop[j].Total) })
}

// Best returns the individual with the lowest total, or nil for an
// empty population.
func Best(pop []*Scored) *Scored {
	var best *Scored
	for _, s := range pop {
		if best == nil || better(s.Total, best.Total) {
			best = s
		}
	}
	return best
}

// comp treats NaN component values as +Inf for dominance comparison.
func comp(x float64) float64 {
	if math.IsNaN(x) {
		return math.Inf(1)
	}
	return x
}

// dominates reports whether a is at least as good as b on every
// component and strictly better on at least one.
func dominates(a, b *Scored) bool {
	strict := false
	for i := range a.Scores {
		ai, bi := comp(a.Scores[i]), comp(b.Scores[i])
		if ai > bi {
			return false
		}
		if ai < bi {
			strict = true
		}
	}
	return strict
}

// MultiBest returns up to n individuals from the Pareto front of the
// component scores, ordered by total.  Individuals without a finite
// total are dropped, and front members whose score vector is within
// similarity * total of an already kept one are pruned as duplicates.
func MultiBest(pop []*Scored, n int, similarity float64) []*Scored {
	var srt []*Scored
	for _, s := range pop {
		if math.IsNaN(s.Total) || math.IsInf(s.Total, 0) {
			continue
		}
		srt = append(srt, s)
	}
	Sort(srt)
	var front []*Scored
	for _, s := range srt {
		dom := false
		for _, f := range front {
			if dominates(f, s) {
				dom = true
				break
			}
		}
		if !dom {
			front = append(front, s)
		}
	}
	var out []*Scored
	for _, s := range front {
		near := false
		for _, k := range out {
			if scoreDist(s, k) < similarity*s.Total {
				near = true
				break
			}
		}
		if near {
			continue
		}
		out = append(out, s)
		if len(out) == n {
			break
		}
	}
	return out
}

// scoreDist is the euclidean distance between score vectors, skipping
// components that are NaN on either side.
func scoreDist(a, b *Scored) float64 {
	ss := 0.0
	for i := range a.Scores {
		if math.IsNaN(a.Scores[i]) || math.IsNaN(b.Scores[i]) {
			continue
		}
		d := a.Scores[i] - b.Scores[i]
		ss += d * d
	}
	return math.Sqrt(ss)
}

// Nonsimilar filters a sorted-by-preference population down to
// individuals whose normalized parameter distance to every kept one is
// at least minDist.  lo and hi give the parameter ranges used for
// normalization.
func Nonsimilar(pop []*Scored, lo, hi []float64, minDist float64) []*Scored {
	var kept []*Scored
	for _, s := range pop {
		ok := true
		for _, k := range kept {
			if paramDist(s.Params, k.Params, lo, hi) < minDist {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, s)
		}
	}
	return kept
}

// paramDist is the rms of per-parameter differences normalized by the
// parameter ranges.
func paramDist(a, b, lo, hi []float64) float64 {
	ss := 0.0
	for i := range a {
		rng := hi[i] - lo[i]
		if rng == 0 {
			continue
		}
		d := (a[i] - b[i]) / rng
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(a)))
}

// Finished reports convergence: the best totals of the last window
// generations spread by less than cutoff relative to their mean.
func Finished(bestTotals []float64, window int, cutoff float64) bool {
	if len(bestTotals) < window {
		return false
	}
	last := bestTotals[len(bestTotals)-window:]
	mn, mx, sum := math.Inf(1), math.Inf(-1), 0.0
	for _, t := range last {
		if math.IsNaN(t) {
			return false
		}
		mn = math.Min(mn, t)
		mx = math.Max(mx, t)
		sum += t
	}
	mean := sum / float64(window)
	if mean == 0 {
		return mx == mn
	}
	return (mx-mn)/math.Abs(mean) < cutoff
}
