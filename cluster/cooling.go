// Copyright ©2026 The Vertexcluster Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

import "math"

// coolingWhileSplitting runs the main annealing loop: at each step it
// merges to a fixpoint, attempts one split, cools beta by
// CoolingFactor, and re-thermalizes, until beta reaches the freeze-out
// point sqrt(CoolingFactor)/TMin.
func (w *blockWorker) coolingWhileSplitting() {
	betaFreeze := math.Sqrt(w.params.CoolingFactor) / w.params.TMin

	for w.beta < betaFreeze {
		w.mergeToFixpoint()
		w.split(1.0)
		w.beta /= w.params.CoolingFactor
		w.thermalize(w.params.DeltaHighT, 0)
		w.setVtxRange()
		w.update(0, false)
	}
}

// reMergeTracks merges to a fixpoint after cooling ends, re-deriving
// the coupling window and vertex positions between passes.
func (w *blockWorker) reMergeTracks() {
	nprev := w.nv()
	if !w.merge() {
		return
	}
	for w.nv() != nprev {
		nprev = w.nv()
		w.setVtxRange()
		w.update(0, false)
		w.merge()
	}
}

// reSplitTracks makes up to resplitMaxRounds further attempts to split,
// relaxing its temperature threshold by 10% each round it succeeds.
func (w *blockWorker) reSplitTracks() {
	threshold := 1.0
	nprev := w.nv()
	w.split(threshold)
	for try := 0; nprev != w.nv() && try < resplitMaxRounds; try++ {
		w.thermalize(w.params.DeltaHighT, 0)
		nprev = w.nv()
		w.mergeToFixpoint()
		threshold *= 1.1
		w.split(threshold)
	}
}

// rejectOutliers ramps in an outlier background density, re-merges and
// re-purges as the block cools the rest of the way to TStop.
func (w *blockWorker) rejectOutliers() {
	rho0 := 0.0
	if w.params.DzCutOff > 0 {
		n := w.nv()
		if n > 1 {
			rho0 = 1 / float64(n)
		} else {
			rho0 = 1
		}
		for i := 0; i < rejectOutlierRampSteps; i++ {
			w.update(float64(i)*rho0/rejectOutlierRampSteps, false)
		}
	}

	w.thermalize(w.params.DeltaLowT, rho0)

	nprev := w.nv()
	w.merge()
	for nprev != w.nv() {
		w.setVtxRange()
		w.update(rho0, false)
		nprev = w.nv()
		w.merge()
	}

	betaPurge := 1 / w.params.TPurge
	for w.beta < betaPurge {
		w.beta = math.Min(w.beta/w.params.CoolingFactor, betaPurge)
		w.thermalize(w.params.DeltaLowT, rho0)
	}

	nprev = w.nv()
	w.purge(rho0)
	for nprev != w.nv() {
		w.thermalize(w.params.DeltaLowT, rho0)
		nprev = w.nv()
		w.purge(rho0)
	}

	betaStop := 1 / w.params.TStop
	for w.beta < betaStop {
		w.beta = math.Min(w.beta/w.params.CoolingFactor, betaStop)
		w.thermalize(w.params.DeltaLowT, rho0)
	}

	w.setVtxRange()
}

// run executes the full per-block deterministic-annealing pipeline
// described by the top-level orchestration: initialize, estimate beta0,
// thermalize, cool while splitting, re-merge, re-split and finally
// reject outliers down to TStop.
func (w *blockWorker) run() {
	w.initialize()
	w.osumtkwt = w.sumTrackWeights()

	w.beta = w.getBeta0()
	w.thermalize(w.params.DeltaHighT, 0)

	w.coolingWhileSplitting()
	w.reMergeTracks()
	w.reSplitTracks()
	w.rejectOutliers()
}
