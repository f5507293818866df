// Copyright ©2026 The Vertexcluster Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

import (
	"context"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// runSingleBlock drives the full Clusterize+Arbitrate pipeline over a
// single block covering every supplied track, the shape every literal
// end-to-end scenario in the testable-properties list uses (N <= B).
func runSingleBlock(t *testing.T, tracks []Track, params ClusterParams) *VertexCollection {
	t.Helper()
	vc := NewVertexCollection(1, len(tracks))
	c := &Clusterizer{}
	ctx := context.Background()
	if err := c.Clusterize(ctx, tracks, vc, &params, 1, len(tracks)); err != nil {
		t.Fatalf("Clusterize: %v", err)
	}
	if err := c.Arbitrate(ctx, tracks, vc, &params, 1, len(tracks)); err != nil {
		t.Fatalf("Arbitrate: %v", err)
	}
	return vc
}

func goodVertices(vc *VertexCollection) []Vertex {
	var out []Vertex
	for i := 0; i < vc.GlobalNV(); i++ {
		if vc.Slots[i].IsGood {
			out = append(out, vc.Slots[i])
		}
	}
	return out
}

// Scenario 1: a single tight cluster converges to one vertex holding
// every track.
func TestPipelineSingleCluster(t *testing.T) {
	zs := []float64{-0.02, -0.01, 0, 0, 0.01, 0.02}
	tracks := make([]Track, len(zs))
	for i, z := range zs {
		tracks[i] = NewTrack(z, 0.02*0.02, 1, i)
	}
	params := DefaultClusterParams()

	vc := runSingleBlock(t, tracks, params)
	good := goodVertices(vc)
	if len(good) != 1 {
		t.Fatalf("got %d good vertices, want 1: %+v", len(good), good)
	}
	if math.Abs(good[0].Z) > 0.05 {
		t.Errorf("vertex Z = %v, want close to 0", good[0].Z)
	}
	if good[0].NTracks != 6 {
		t.Errorf("vertex NTracks = %d, want 6", good[0].NTracks)
	}
}

// Scenario 2: two well-separated clusters converge to two vertices.
func TestPipelineTwoClusters(t *testing.T) {
	zs := []float64{-1, -1, -1, 1, 1, 1}
	tracks := make([]Track, len(zs))
	for i, z := range zs {
		tracks[i] = NewTrack(z, 0.02*0.02, 1, i)
	}
	params := DefaultClusterParams()

	vc := runSingleBlock(t, tracks, params)
	good := goodVertices(vc)
	if len(good) != 2 {
		t.Fatalf("got %d good vertices, want 2: %+v", len(good), good)
	}
	if good[0].Z >= good[1].Z {
		t.Fatalf("output vertex Z values not strictly increasing: %v, %v", good[0].Z, good[1].Z)
	}

	gotZ := []float64{good[0].Z, good[1].Z}
	wantZ := []float64{-1, 1}
	if diff := cmp.Diff(wantZ, gotZ, cmpopts.EquateApprox(0, 0.1)); diff != "" {
		t.Errorf("vertex Z values mismatch (-want +got):\n%s", diff)
	}
}

// Scenario 5: a single far outlier ends up unassigned (kmin stored as
// the sentinel) rather than dragging the main vertex off target.
func TestPipelineOutlierRejection(t *testing.T) {
	tracks := make([]Track, 0, 11)
	for i := 0; i < 10; i++ {
		tracks = append(tracks, NewTrack(0, 0.01*0.01, 1, i))
	}
	outlier := NewTrack(10, 0.01*0.01, 1, 10)
	tracks = append(tracks, outlier)
	params := DefaultClusterParams()

	vc := runSingleBlock(t, tracks, params)
	good := goodVertices(vc)
	if len(good) != 1 {
		t.Fatalf("got %d good vertices, want 1: %+v", len(good), good)
	}
	if math.Abs(good[0].Z) > 0.1 {
		t.Errorf("surviving vertex Z = %v, want close to 0", good[0].Z)
	}

	if tracks[10].Kmin != unassignedSentinel {
		t.Errorf("outlier track Kmin = %d, want unassignedSentinel=%d", tracks[10].Kmin, unassignedSentinel)
	}
	for _, id := range good[0].TrackID {
		if tracks[id].TTIndex == outlier.TTIndex {
			t.Errorf("outlier track was assigned to the surviving vertex")
		}
	}
}

// Invariants from the testable-properties list, checked after a
// multi-cluster run that exercises merge, split and purge together.
func TestPipelineInvariants(t *testing.T) {
	zs := []float64{-2, -2, -2, 0, 0, 0, 2, 2, 2}
	tracks := make([]Track, len(zs))
	for i, z := range zs {
		tracks[i] = NewTrack(z, 0.03*0.03, 1, i)
	}
	params := DefaultClusterParams()
	vc := runSingleBlock(t, tracks, params)

	good := goodVertices(vc)
	for i := 1; i < len(good); i++ {
		if good[i-1].Z >= good[i].Z {
			t.Fatalf("output vertex Z values not strictly increasing: %+v", good)
		}
		if math.Abs(good[i].Z-good[i-1].Z) <= 2*params.VertexSize {
			t.Fatalf("adjacent output vertices closer than 2*VertexSize: %+v", good)
		}
	}

	seen := make(map[int]int)
	for vi, v := range good {
		for _, id := range v.TrackID {
			if other, ok := seen[tracks[id].TTIndex]; ok {
				t.Fatalf("track %d assigned to both vertex %d and %d", tracks[id].TTIndex, other, vi)
			}
			seen[tracks[id].TTIndex] = vi
		}
	}
}
