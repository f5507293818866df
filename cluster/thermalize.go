// Copyright ©2026 The Vertexcluster Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

import "math"

// convergenceDelta returns the per-iteration movement threshold below
// which thermalize considers the block settled at the current beta.
// deltaMode0 is the threshold used verbatim under convergence mode 0;
// callers pass DeltaHighT during the main cooling descent and
// DeltaLowT once outlier rejection takes over, matching which regime
// each call site represents.
func (w *blockWorker) convergenceDelta(deltaMode0 float64) float64 {
	switch w.params.ConvergenceMode {
	case 0:
		return deltaMode0
	case 1:
		b := w.beta
		if b < 1 {
			b = 1
		}
		return w.params.DeltaLowT / math.Sqrt(b)
	default:
		return w.params.DeltaLowT
	}
}

// thermalize relaxes the block at the current beta by repeating update
// until every vertex's movement in the last step falls below the
// convergence threshold, or thermalizeMaxIterations is reached.
//
// The coupling window is only recomputed once accumulated movement
// since the last recomputation, and the latest step's movement, both
// exceed thermalizeReassignMinZ: window walks are amortized, not
// redone every iteration.
func (w *blockWorker) thermalize(deltaMode0, rho0 float64) {
	delta := w.convergenceDelta(deltaMode0)
	var accMax float64

	w.setVtxRange()

	for iter := 0; iter < thermalizeMaxIterations; iter++ {
		w.update(rho0, false)

		maxMove := 0.0
		for i := 0; i < w.nv(); i++ {
			if m := w.orderedVertex(i).Aux1; m > maxMove {
				maxMove = m
			}
		}
		accMax += maxMove

		if accMax > thermalizeReassignMinZ && maxMove > thermalizeReassignMinZ {
			w.setVtxRange()
			accMax = 0
		}

		if maxMove < delta {
			return
		}
	}
	w.params.logger().Debug("thermalize: iteration cap reached", "block", w.g, "nv", w.nv())
}
