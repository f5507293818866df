// Copyright ©2026 The Vertexcluster Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

type criticalPair struct {
	dist float64
	pos  int // sorted position of the left vertex of the pair
}

// merge performs at most one vertex merge per call: it queues every
// adjacent sorted pair at most ZMerge apart, then collapses the pair
// with the largest queued distance into its right-hand neighbor.
// Callers wrap merge in a fixpoint loop (see mergeToFixpoint) since one
// call never merges more than one pair.
//
// Picking the largest rather than the smallest queued distance matches
// the original kernel's pair-selection loop, which tracks a running
// maximum despite its "minVal" naming.
func (w *blockWorker) merge() bool {
	nprev := w.nv()
	if nprev < 2 {
		return false
	}

	lo, hi := w.base, w.base+nprev
	for pos := lo; pos < hi-1; pos++ {
		w.orderedAt(pos).Aux1 = math.Abs(w.orderZ(pos) - w.orderZ(pos+1))
	}

	var critical []criticalPair
	for pos := lo; pos < hi-1; pos++ {
		d := w.orderedAt(pos).Aux1
		if scalar.EqualWithinAbs(w.orderZ(pos), w.orderZ(pos+1), w.params.ZMerge) {
			if len(critical) >= mergeSplitQueueCap {
				w.params.logger().Debug("merge: candidate queue exhausted", "block", w.g)
				break
			}
			critical = append(critical, criticalPair{dist: d, pos: pos})
		}
	}
	if len(critical) == 0 {
		return false
	}

	ik := 0
	maxVal := -1.0
	for i, c := range critical {
		if c.dist > maxVal {
			maxVal = c.dist
			ik = i
		}
	}

	ivertexO := critical[ik].pos
	left := w.vc.Order[ivertexO]
	right := w.vc.Order[ivertexO+1]

	vl, vr := w.vertex(left), w.vertex(right)
	vl.IsGood = false
	rho := vl.Rho + vr.Rho
	if rho > rhoMergeEps {
		vr.Z = (vl.Rho*vl.Z + vr.Rho*vr.Z) / rho
	} else {
		vr.Z = 0.5 * (vl.Z + vr.Z)
	}
	vr.Rho = rho
	vr.SW += vl.SW

	for pos := ivertexO; pos < hi-1; pos++ {
		w.vc.Order[pos] = w.vc.Order[pos+1]
	}
	w.setNV(nprev - 1)

	for i := range w.tracks {
		t := &w.tracks[i]
		if t.Kmax > ivertexO {
			t.Kmax--
		}
		if t.Kmin > ivertexO || (t.Kmax < t.Kmin+1 && t.Kmin > w.base) {
			t.Kmin--
		}
	}

	w.setVtxRange()
	return true
}

// orderedAt returns the vertex at global sorted position pos.
func (w *blockWorker) orderedAt(pos int) *Vertex {
	return &w.vc.Slots[w.vc.Order[pos]]
}

// mergeToFixpoint repeats merge, with an intervening update, until a
// pass produces no further merge.
func (w *blockWorker) mergeToFixpoint() {
	if !w.merge() {
		return
	}
	for {
		prev := w.nv()
		w.update(0, false)
		if !w.merge() || w.nv() == prev {
			return
		}
	}
}
