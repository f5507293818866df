// Copyright ©2026 The Vertexcluster Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

import (
	"math"
	"testing"
)

func TestGetBeta0OnSchedule(t *testing.T) {
	params := DefaultClusterParams()

	tracks := []Track{
		NewTrack(-1, 0.1*0.1, 1, 0),
		NewTrack(0, 0.1*0.1, 1, 1),
		NewTrack(1, 0.1*0.1, 1, 2),
	}
	vc := NewVertexCollection(1, 4)
	w := newBlockWorker(0, tracks, vc, &params)

	beta0 := w.getBeta0()
	if beta0 <= 0 {
		t.Fatalf("getBeta0() = %v, want positive", beta0)
	}

	// beta0 must land on the coolingFactor^n/TMin schedule: some
	// non-negative integer power of CoolingFactor divided by TMin.
	ratio := beta0 * params.TMin
	n := math.Log(ratio) / math.Log(params.CoolingFactor)
	if math.Abs(n-math.Round(n)) > 1e-9 {
		t.Errorf("beta0*TMin = %v is not a power of CoolingFactor=%v", ratio, params.CoolingFactor)
	}
}

func TestGetBeta0TightClusterUsesFloor(t *testing.T) {
	params := DefaultClusterParams()

	// A cluster tight enough that its estimated Tc sits below TMin: the
	// schedule floor coolingFactor/TMin applies.
	tracks := []Track{
		NewTrack(0, 1, 1, 0),
		NewTrack(0, 1, 1, 1),
	}
	vc := NewVertexCollection(1, 4)
	w := newBlockWorker(0, tracks, vc, &params)

	got := w.getBeta0()
	want := params.CoolingFactor / params.TMin
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("getBeta0() = %v, want floor %v", got, want)
	}
}
