// Copyright ©2026 The Vertexcluster Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// split performs at most one vertex bifurcation per call: it refreshes
// every occupied vertex's critical temperature Tc, queues those with
// Tc*beta above threshold, and bifurcates the hottest one into two daughters
// straddling its position. It reports whether a split happened.
func (w *blockWorker) split(threshold float64) bool {
	w.update(0, true)

	nprev := w.nv()
	if nprev >= w.vmax {
		return false
	}
	lo, hi := w.base, w.base+nprev

	for i := 0; i < nprev; i++ {
		v := w.orderedVertex(i)
		if v.SW > 0 {
			v.Aux1 = 2 * v.SWE / v.SW
		} else {
			v.Aux1 = 0
		}
	}

	var critical []criticalPair
	for pos := lo; pos < hi; pos++ {
		v := w.orderedAt(pos)
		if v.Aux1*w.beta > threshold {
			if len(critical) >= mergeSplitQueueCap {
				w.params.logger().Debug("split: candidate queue exhausted", "block", w.g)
				break
			}
			critical = append(critical, criticalPair{dist: math.Abs(v.Aux1), pos: pos})
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
	ivertex := w.vc.Order[ivertexO]
	vtx := w.vertex(ivertex)

	prevSlot, hasPrev := ivertex, false
	if ivertexO > lo {
		prevSlot, hasPrev = w.vc.Order[ivertexO-1], true
	}
	nextSlot, hasNext := ivertex, false
	if ivertexO < hi-1 {
		nextSlot, hasNext = w.vc.Order[ivertexO+1], true
	}

	var p1, p2, z1, z2, w1, w2 float64
	for i := range w.tracks {
		t := &w.tracks[i]
		if t.SumZ <= zInitEps {
			continue
		}
		tl := 0.0
		if t.Z < vtx.Z {
			tl = 1
		}
		tr := 1 - tl

		arg := (t.Z - vtx.Z) * math.Sqrt(w.beta*t.OneOverDZ2)
		if math.Abs(arg) < splitArgClip {
			e := math.Exp(-arg)
			tl = e / (e + 1)
			tr = 1 / (e + 1)
		}

		dz := t.Z - vtx.Z
		p := vtx.Rho * t.Weight * math.Exp(-w.beta*dz*dz*t.OneOverDZ2) / t.SumZ
		pw := p * t.OneOverDZ2

		p1 += p * tl
		p2 += p * tr
		z1 += pw * tl * t.Z
		z2 += pw * tr * t.Z
		w1 += pw * tl
		w2 += pw * tr
	}
	if p1+p2 <= 0 {
		return false
	}

	if w1 > 0 {
		z1 /= w1
	} else {
		z1 = vtx.Z - splitEpsilon
	}
	if w2 > 0 {
		z2 /= w2
	} else {
		z2 = vtx.Z + splitEpsilon
	}

	if hasPrev {
		lim := 0.6*vtx.Z + 0.4*w.vertex(prevSlot).Z
		if z1 < lim {
			z1 = lim
		}
	}
	if hasNext {
		lim := 0.6*vtx.Z + 0.4*w.vertex(nextSlot).Z
		if z2 > lim {
			z2 = lim
		}
	}

	if scalar.EqualWithinAbs(z2, z1, splitEpsilon) {
		return false
	}

	nnew := -1
	for s := w.base; s < w.base+w.vmax; s++ {
		if !w.vc.Slots[s].IsGood {
			nnew = s
			break
		}
	}
	if nnew == -1 {
		w.params.logger().Debug("split: block vertex capacity exhausted", "block", w.g)
		return false
	}

	pk1 := p1 * vtx.Rho / (p1 + p2)
	pk2 := p2 * vtx.Rho / (p1 + p2)
	vtx.Z = z2
	vtx.Rho = pk2

	w.vc.Slots[nnew] = Vertex{Z: z1, Rho: pk1, IsGood: true}

	for pos := hi; pos > ivertexO; pos-- {
		w.vc.Order[pos] = w.vc.Order[pos-1]
	}
	w.vc.Order[ivertexO] = nnew
	w.setNV(nprev + 1)

	for i := range w.tracks {
		t := &w.tracks[i]
		if t.Kmin > ivertexO {
			t.Kmin++
		}
		if t.Kmax >= ivertexO || t.Kmax == t.Kmin {
			t.Kmax++
		}
	}
	return true
}
