// Copyright (c) 2025, The Neurofit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package neurofit is the overall repository for parameter optimization of
conductance-based point-neuron models against current-injection recordings,
implemented in the Go language (golang).

This top-level of the repository has no functional code -- everything is
organized into the following sub-packages:

* vartype: value-with-deviation scalars and the error-propagating
arithmetic the features and fitness measures are built on.

* chans: voltage- and calcium-gated ion channel parameters and gating kinetics
used by the cell model (Kir, NaF, KaF / KaS, Krp, delayed rectifiers, BKCa,
SKCa, HCN, CaHVA).

* cell: the point-neuron model itself (soma + passive dendrite RC circuit)
and the current-injection protocol that produces voltage traces.

* trace, features: voltage-trace containers and extraction of the
electrophysiological features used for fitting (baseline, steady-state
response, rectification, falling-curve time constant, spike shape and
timing statistics).

* fitness: per-feature fitness measures comparing simulated against measured
features at matching injection currents, combined fitness, Pareto best-set
selection and convergence detection.

* evolve: the population-based optimizer that searches the parameter space.

* fit: glue tying a cell model, measurement data and parameter specs into an
optimization problem.

* archive, analysis: persistence of per-individual results as run-log tables,
and the aggregation / correlation / best-individual reporting over a
directory of such runs.

* spn, gp: the spiny projection neuron (D1 / D2) and globus pallidus
(proto / arky) model definitions.

* cmd: the runnable optimization and analysis programs (spnopt, gpopt,
optstats).
*/
package neurofit
