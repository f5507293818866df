// Copyright ©2026 The Vertexcluster Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

import (
	"math"
	"testing"
)

// newTestWorker builds a single-block worker with no tracks over an
// empty vertex collection; callers seed the vertices they need, for
// exercising merge/split mechanics directly.
func newTestWorker(params *ClusterParams, vmax int) (*blockWorker, *VertexCollection) {
	vc := NewVertexCollection(1, vmax)
	w := newBlockWorker(0, nil, vc, params)
	return w, vc
}

// Scenario 3: two seed vertices closer than zMerge collapse into one at
// their density-weighted midpoint.
func TestMergeCollapsesCloseVertices(t *testing.T) {
	params := DefaultClusterParams()
	w, vc := newTestWorker(&params, 4)

	vc.Slots[0] = Vertex{Z: 0.000, Rho: 1, IsGood: true}
	vc.Slots[1] = Vertex{Z: 0.005, Rho: 1, IsGood: true}
	vc.Order[0], vc.Order[1] = 0, 1
	w.setNV(2)

	if !w.merge() {
		t.Fatal("merge() = false, want true for a pair closer than ZMerge")
	}
	if w.nv() != 1 {
		t.Fatalf("nv() = %d after merge, want 1", w.nv())
	}
	survivor := w.orderedVertex(0)
	if math.Abs(survivor.Z-0.0025) > 1e-9 {
		t.Errorf("survivor Z = %v, want the midpoint 0.0025 (equal rho)", survivor.Z)
	}
	if survivor.Rho != 2 {
		t.Errorf("survivor Rho = %v, want 2 (summed)", survivor.Rho)
	}
}

func TestMergeNoCandidateBelowThreshold(t *testing.T) {
	params := DefaultClusterParams()
	w, vc := newTestWorker(&params, 4)

	vc.Slots[0] = Vertex{Z: 0, Rho: 1, IsGood: true}
	vc.Slots[1] = Vertex{Z: 10, Rho: 1, IsGood: true}
	vc.Order[0], vc.Order[1] = 0, 1
	w.setNV(2)

	if w.merge() {
		t.Fatal("merge() = true, want false: pair is far beyond ZMerge")
	}
	if w.nv() != 2 {
		t.Fatalf("nv() = %d, want unchanged 2", w.nv())
	}
}

// Scenario 4: a single vertex straddled by two tight sub-clusters splits
// into two daughters once its critical temperature clears the
// threshold.
func TestSplitBifurcatesHotVertex(t *testing.T) {
	params := DefaultClusterParams()

	zs := []float64{-0.5, -0.5, -0.5, -0.5, 0.5, 0.5, 0.5, 0.5}
	tracks := make([]Track, len(zs))
	for i, z := range zs {
		tracks[i] = NewTrack(z, 0.05*0.05, 1, i)
	}

	vc := NewVertexCollection(1, 4)
	w := newBlockWorker(0, tracks, vc, &params)
	w.initialize()
	w.osumtkwt = w.sumTrackWeights()
	// The ensemble's critical temperature is 2*0.5²/0.05² = 200; split at
	// a tenth of it, so Tc*beta = 10 is comfortably above the threshold.
	w.beta = 10.0 / 200
	w.setVtxRange()

	if !w.split(1.0) {
		t.Fatal("split(1.0) = false, want true for a vertex well above its critical temperature")
	}
	if w.nv() != 2 {
		t.Fatalf("nv() = %d after split, want 2", w.nv())
	}

	v0, v1 := w.orderedVertex(0), w.orderedVertex(1)
	if v0.Z >= v1.Z {
		t.Fatalf("split daughters not ordered ascending: %v, %v", v0.Z, v1.Z)
	}
	if math.Abs(v0.Z+0.5) > 0.2 {
		t.Errorf("left daughter Z = %v, want close to -0.5", v0.Z)
	}
	if math.Abs(v1.Z-0.5) > 0.2 {
		t.Errorf("right daughter Z = %v, want close to 0.5", v1.Z)
	}
}

func TestSplitRejectsDegenerateVertex(t *testing.T) {
	params := DefaultClusterParams()
	tracks := []Track{
		NewTrack(0, 1, 1, 0),
		NewTrack(0, 1, 1, 1),
	}
	vc := NewVertexCollection(1, 4)
	w := newBlockWorker(0, tracks, vc, &params)
	w.initialize()
	w.osumtkwt = w.sumTrackWeights()
	w.beta = 1
	w.setVtxRange()

	if w.split(1.0) {
		t.Fatal("split(1.0) = true, want false: both tracks sit at the same Z, so no separation is possible")
	}
	if w.nv() != 1 {
		t.Fatalf("nv() = %d, want unchanged 1", w.nv())
	}
}
