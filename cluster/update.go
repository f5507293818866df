// Copyright ©2026 The Vertexcluster Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

import "math"

// update runs one mean-field relaxation pass at the worker's current
// beta: every track distributes its weight across the vertices in its
// coupling window, then every vertex recomputes its position and
// density from the tracks that coupled to it.
//
// rho0 is the outlier background density; updateTc, set only by split
// at its own entry, also accumulates swE so the critical temperature
// estimate that split computes next is valid.
func (w *blockWorker) update(rho0 float64, updateTc bool) {
	zInit := rho0 * math.Exp(-w.beta*w.params.DzCutOff*w.params.DzCutOff)

	for i := range w.tracks {
		t := &w.tracks[i]
		t.ensureScratch(w.vmax)

		sumZ := zInit
		for pos := t.Kmin; pos < t.Kmax; pos++ {
			local := pos - w.base
			v := w.vertex(w.vc.Order[pos])
			dz := t.Z - v.Z
			arg := -w.beta * dz * dz * t.OneOverDZ2
			e := math.Exp(arg)
			t.vertExparg[local] = arg
			t.vertExp[local] = e
			sumZ += v.Rho * e
		}
		if math.IsNaN(sumZ) || math.IsInf(sumZ, 0) {
			sumZ = 0
		}
		t.SumZ = sumZ

		for pos := t.Kmin; pos < t.Kmax; pos++ {
			local := pos - w.base
			if sumZ <= zInitEps {
				t.vertSE[local] = 0
				t.vertSW[local] = 0
				t.vertSWZ[local] = 0
				t.vertSWE[local] = 0
				continue
			}
			v := w.vertex(w.vc.Order[pos])
			e := t.vertExp[local]
			frac := t.Weight / sumZ
			se := e * frac
			sw := v.Rho * e * frac * t.OneOverDZ2
			t.vertSE[local] = se
			t.vertSW[local] = sw
			t.vertSWZ[local] = sw * t.Z
			if updateTc {
				t.vertSWE[local] = -sw * t.vertExparg[local] / w.beta
			} else {
				t.vertSWE[local] = 0
			}
		}
	}

	for i := 0; i < w.nv(); i++ {
		v := w.vertex(w.order[i])
		v.SW, v.SE, v.SWZ, v.SWE = 0, 0, 0, 0
	}

	for i := range w.tracks {
		t := &w.tracks[i]
		for pos := t.Kmin; pos < t.Kmax; pos++ {
			local := pos - w.base
			v := w.vertex(w.vc.Order[pos])
			v.SW += t.vertSW[local]
			v.SE += t.vertSE[local]
			v.SWZ += t.vertSWZ[local]
			v.SWE += t.vertSWE[local]
		}
	}

	invOsumtkwt := 0.0
	if w.osumtkwt > 0 {
		invOsumtkwt = 1 / w.osumtkwt
	}
	for i := 0; i < w.nv(); i++ {
		v := w.vertex(w.order[i])
		if v.SW > 0 {
			zNew := v.SWZ / v.SW
			v.Aux1 = math.Abs(zNew - v.Z)
			v.Z = zNew
		} else {
			v.Aux1 = 0
		}
		v.Rho *= v.SE * invOsumtkwt
	}
}
