// Copyright ©2026 The Vertexcluster Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/primaryvertex/vertexcluster/internal/radix"
)

const (
	arbitrateMaxZ       = 30
	arbitrateMaxRho     = 10000
	arbitrateMinTrkProb = mintrkweight
	unassignedSentinel  = 10000
)

// Arbitrate gathers every block's surviving vertices into a single
// sorted list, hard-assigns every track to at most one vertex, and
// finalizes the result by dropping under-populated or too-close
// vertices. It must run after Clusterize has completed on the same
// tracks and vertices.
//
// Arbitrate does not itself spawn goroutines: the original design
// described this phase as a single worker gathering cross-block state,
// and nothing about it parallelizes usefully once it has. ctx is
// checked once at entry so a caller chaining this after a canceled
// Clusterize doesn't do needless work.
func (c *Clusterizer) Arbitrate(ctx context.Context, tracks []Track, vertices *VertexCollection, params *ClusterParams, nBlocks, b int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	resortVerticesAndAssign(tracks, vertices, params, nBlocks)
	finalizeVertices(tracks, vertices, params)
	return nil
}

// resortVerticesAndAssign gathers the geometrically-accepted vertices
// of every block into a single list sorted ascending by Z, then
// recomputes and hard-assigns every track's vertex coupling against
// that list.
func resortVerticesAndAssign(tracks []Track, vertices *VertexCollection, params *ClusterParams, nBlocks int) {
	beta := 1 / params.TStop

	var zs, rhos []float64
gather:
	for g := 0; g < nBlocks; g++ {
		base := vertices.BlockBase(g)
		nv := vertices.BlockNV(g)
		for i := 0; i < nv; i++ {
			slot := vertices.Order[base+i]
			v := &vertices.Slots[slot]
			if v.Rho < arbitrateMaxRho && math.Abs(v.Z) < arbitrateMaxZ {
				zs = append(zs, v.Z)
				rhos = append(rhos, v.Rho)
				if len(zs) == maxGlobalVertices {
					params.logger().Debug("arbitrate: global vertex gather capacity reached")
					break gather
				}
			}
		}
	}
	nTrue := len(zs)
	vertices.SetGlobalNV(nTrue)

	order := radix.SortIndex(zs)
	for i, srcIdx := range order {
		vertices.Slots[i].Z = zs[srcIdx]
		vertices.Slots[i].Rho = rhos[srcIdx]
		vertices.Slots[i].IsGood = true
		vertices.Order[i] = i
	}

	for i := range tracks {
		t := &tracks[i]
		if !t.IsGood {
			continue
		}
		zrange := params.ZRange / math.Sqrt(beta*t.OneOverDZ2)
		if zrange < vtxRangeMinZ {
			zrange = vtxRangeMinZ
		}

		kmin := lowerBoundGlobal(vertices.Slots[:nTrue], t.Z-zrange)
		kmax := upperBoundGlobal(vertices.Slots[:nTrue], t.Z+zrange)
		if kmin <= kmax {
			t.Kmin = kmin
			t.Kmax = kmax + 1
		} else {
			lo, hi := kmin, kmax
			if lo > hi {
				lo, hi = hi, lo
			}
			if lo < 0 {
				lo = 0
			}
			t.Kmin = lo
			t.Kmax = hi + 1
			if t.Kmax > nTrue {
				t.Kmax = nTrue
			}
		}
	}

	rho0 := 1.0
	if nTrue > 1 {
		rho0 = 1 / float64(nTrue)
	}
	zSumInit := rho0 * math.Exp(-beta*params.DzCutOff*params.DzCutOff)

	for i := range tracks {
		t := &tracks[i]
		if !t.IsGood {
			continue
		}
		sumZ := zSumInit
		for k := t.Kmin; k < t.Kmax; k++ {
			v := &vertices.Slots[k]
			dz := t.Z - v.Z
			sumZ += v.Rho * math.Exp(-beta*dz*dz*t.OneOverDZ2)
		}
		invZ := 0.0
		if sumZ > zInitEps {
			invZ = 1 / sumZ
		}

		pMax := -1.0
		iMax := unassignedSentinel
		for k := t.Kmin; k < t.Kmax; k++ {
			v := &vertices.Slots[k]
			dz := t.Z - v.Z
			p := v.Rho * math.Exp(-beta*dz*dz*t.OneOverDZ2) * invZ
			if p > pMax && p > arbitrateMinTrkProb {
				pMax = p
				iMax = k
			}
		}
		t.Kmin = iMax
		t.Kmax = iMax + 1
	}
}

// lowerBoundGlobal returns the first index in the ascending-by-Z slice
// whose Z is >= target, or len(vs) if none qualifies.
func lowerBoundGlobal(vs []Vertex, target float64) int {
	lo, hi := 0, len(vs)
	for lo < hi {
		mid := (lo + hi) / 2
		if vs[mid].Z < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// upperBoundGlobal returns the last index in the ascending-by-Z slice
// whose Z is <= target, or -1 if none qualifies.
func upperBoundGlobal(vs []Vertex, target float64) int {
	lo, hi := 0, len(vs)
	for lo < hi {
		mid := (lo + hi) / 2
		if vs[mid].Z <= target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo - 1
}

// finalizeVertices collects each surviving vertex's hard-assigned,
// deduplicated track list and drops vertices that end up under-
// populated or too close to the previous good vertex.
func finalizeVertices(tracks []Track, vertices *VertexCollection, params *ClusterParams) {
	nTrue := vertices.GlobalNV()

	for k := 0; k < nTrue; k++ {
		v := &vertices.Slots[k]
		v.TrackID = v.TrackID[:0]
		v.TrackWeight = v.TrackWeight[:0]
		for i := range tracks {
			t := &tracks[i]
			if !t.IsGood || t.Kmin != k {
				continue
			}
			isNew := true
			for _, already := range v.TrackID {
				if tracks[already].TTIndex == t.TTIndex {
					isNew = false
					break
				}
			}
			if !isNew {
				continue
			}
			v.TrackID = append(v.TrackID, i)
			v.TrackWeight = append(v.TrackWeight, 1.0)
		}
		v.NTracks = len(v.TrackID)
		if v.NTracks < finalizeMinTracks {
			v.IsGood = false
		}
	}

	for k := 0; k < nTrue; k++ {
		v := &vertices.Slots[k]
		if !v.IsGood {
			continue
		}
		prev := k - 1
		for prev >= 0 && !vertices.Slots[prev].IsGood {
			prev--
		}
		if prev < 0 {
			continue
		}
		if scalar.EqualWithinAbs(v.Z, vertices.Slots[prev].Z, 2*params.VertexSize) {
			v.IsGood = false
		}
	}

	k := 0
	for k < nTrue {
		if vertices.Slots[k].IsGood {
			k++
			continue
		}
		for l := k; l < nTrue-1; l++ {
			vertices.Slots[l] = vertices.Slots[l+1]
		}
		nTrue--
	}
	vertices.SetGlobalNV(nTrue)
	for i := 0; i < nTrue; i++ {
		vertices.Order[i] = i
	}
}
