// Copyright ©2026 The Vertexcluster Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

import "math"

// purge removes the single worst vertex in the block, if any vertex
// qualifies: one whose tracks are neither numerous nor confidently
// assigned. It reports whether a vertex was removed.
func (w *blockWorker) purge(rho0 float64) bool {
	nprev := w.nv()
	if nprev < 2 {
		return false
	}

	rhoconst := rho0 * math.Exp(-w.beta*w.params.DzCutOff*w.params.DzCutOff)
	lo, hi := w.base, w.base+nprev

	w.setVtxRange()

	for i := 0; i < nprev; i++ {
		v := w.orderedVertex(i)
		v.Aux1, v.Aux2 = 0, 0
	}

	for i := range w.tracks {
		t := &w.tracks[i]
		trackAux1 := 0.0
		if t.SumZ > zInitEps && t.Weight > w.params.UniqueTrkMinP {
			trackAux1 = 1 / t.SumZ
		}
		for pos := t.Kmin; pos < t.Kmax; pos++ {
			v := w.orderedAt(pos)
			ppcut := w.params.UniqueTrkWeight * v.Rho / (v.Rho + rhoconst)
			dz := t.Z - v.Z
			tvAux1 := math.Exp(-w.beta * t.OneOverDZ2 * dz * dz)
			p := v.Rho * tvAux1 * trackAux1
			v.Aux1 += p
			if p > ppcut {
				v.Aux2++
			}
		}
	}

	// blockSentinel only needs to exceed any real Aux1 accumulated in
	// this block: Aux1 sums probability-like terms over this block's
	// own tracks only (pos ranges are local), so the block's own track
	// count bounds it, unlike the original's tracks.nT(), which is a
	// grid-global count because that kernel grid-strides threads over
	// the whole track array rather than a per-block slice.
	blockSentinel := float64(len(w.tracks))
	sumpmin := blockSentinel
	k0 := hi
	for pos := lo; pos < hi; pos++ {
		v := w.orderedAt(pos)
		if v.Aux2 < uniqueTrackCountMin && v.Aux1 < sumpmin {
			sumpmin = v.Aux1
			k0 = pos
		}
	}
	if k0 == hi {
		return false
	}

	for pos := k0; pos < hi-1; pos++ {
		w.vc.Order[pos] = w.vc.Order[pos+1]
	}
	w.setNV(nprev - 1)

	for i := range w.tracks {
		t := &w.tracks[i]
		if t.Kmax > k0 {
			t.Kmax--
		}
		if t.Kmin > k0 || (t.Kmax < t.Kmin+1 && t.Kmin > w.base) {
			t.Kmin--
		}
	}

	w.setVtxRange()
	return true
}

// purgeToFixpoint repeats purge until a pass removes nothing.
func (w *blockWorker) purgeToFixpoint(rho0 float64) {
	for w.purge(rho0) {
	}
}
