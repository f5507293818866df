// Copyright ©2026 The Vertexcluster Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

import "math"

// orderZ returns the Z of the vertex at sorted position pos (a global
// index into the VertexCollection's Order array, base <= pos <
// base+VMax).
func (w *blockWorker) orderZ(pos int) float64 {
	return w.vc.Slots[w.vc.Order[pos]].Z
}

// lowerBound walks pos, which must already sit near the answer, to the
// first sorted position in [lo, hi] whose vertex Z is >= target.
func (w *blockWorker) lowerBound(pos int, target float64, lo, hi int) int {
	for pos > lo && w.orderZ(pos-1) >= target {
		pos--
	}
	for pos < hi && w.orderZ(pos) < target {
		pos++
	}
	return pos
}

// upperBound walks pos to the first sorted position in [lo, hi] whose
// vertex Z is > target.
func (w *blockWorker) upperBound(pos int, target float64, lo, hi int) int {
	for pos > lo && w.orderZ(pos-1) > target {
		pos--
	}
	for pos < hi && w.orderZ(pos) <= target {
		pos++
	}
	return pos
}

// setVtxRange recomputes every track's [Kmin, Kmax) coupling window
// against the block's current vertex order. The walk starts from each
// track's existing window, so cost is amortized to the number of
// vertices the window actually moved past since the last call.
func (w *blockWorker) setVtxRange() {
	lo := w.base
	hi := w.base + w.nv()
	zrangeParam := w.params.ZRange

	for i := range w.tracks {
		t := &w.tracks[i]
		zrange := zrangeParam / math.Sqrt(w.beta*t.OneOverDZ2)
		if zrange < vtxRangeMinZ {
			zrange = vtxRangeMinZ
		}

		kmin := w.lowerBound(t.Kmin, t.Z-zrange, lo, hi)
		kmax := w.upperBound(t.Kmax, t.Z+zrange, lo, hi)

		if kmin > kmax {
			// The two walks crossed: collapse to an empty window at
			// whichever end of the block's vertex list is nearer.
			mid := (lo + hi) / 2
			if kmin <= mid {
				kmin, kmax = lo, lo
			} else {
				kmin, kmax = hi, hi
			}
		}
		t.Kmin, t.Kmax = kmin, kmax
	}
}
