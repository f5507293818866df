// Copyright ©2026 The Vertexcluster Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// getBeta0 picks the block's first annealing inverse-temperature. It
// estimates the critical temperature of the block's track ensemble
// treated as a single Gaussian cluster, then returns the point
// coolingFactor^n/TMin of the schedule with
// n = 1 - floor(ln(Tc/TMin)/ln(coolingFactor)). That temperature is at
// or above Tc; unless the logarithm ratio is a whole number it is one
// cooling step above the lowest schedule temperature that is.
func (w *blockWorker) getBeta0() float64 {
	n := len(w.tracks)
	z := make([]float64, n)
	wt := make([]float64, n)
	for i, t := range w.tracks {
		z[i] = t.Z
		wt[i] = t.Weight * t.OneOverDZ2
	}
	zhat := stat.Mean(z, wt)

	// num carries an extra OneOverDZ2 factor beyond wt, so it is its
	// own per-track term rather than a reweighting of wt; den is
	// exactly wt and is summed directly instead of being recomputed.
	num := make([]float64, n)
	for i, t := range w.tracks {
		dz := t.Z - zhat
		num[i] = t.Weight * t.OneOverDZ2 * dz * dz * t.OneOverDZ2
	}
	sumDen := floats.Sum(wt)
	var tc float64
	if sumDen > 0 {
		tc = 2 * floats.Sum(num) / sumDen
	}

	tMin := w.params.TMin
	cf := w.params.CoolingFactor
	if tc > tMin {
		steps := 1 - int(math.Floor(math.Log(tc/tMin)/math.Log(cf)))
		return math.Pow(cf, float64(steps)) / tMin
	}
	return cf / tMin
}
