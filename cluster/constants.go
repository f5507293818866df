// Copyright ©2026 The Vertexcluster Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

// Numerical guards and fixed capacities named per the re-architecture
// guidance to tie floating-point guard values to named constants instead
// of scattering magic numbers through the cooling loop.
const (
	// maxVertexCapacity is the total number of vertex slots available
	// across all blocks of a single Clusterize call (G·VMax ≤ this).
	maxVertexCapacity = 512

	// maxGlobalVertices bounds the gather buffer used by arbitration's
	// resort step.
	maxGlobalVertices = 1024

	// mergeSplitQueueCap bounds the number of simultaneously-queued
	// critical merge or split candidates considered in a single pass.
	mergeSplitQueueCap = 128

	// zInitEps is the minimum partition function Z below which a track
	// is treated as uncoupled from every vertex this iteration.
	zInitEps = 1e-100

	// rhoMergeEps guards the merged-density denominator in merge; below
	// it the two vertices are combined at their midpoint instead of a
	// density-weighted position.
	rhoMergeEps = 1e-100

	// vtxRangeMinZ is the floor applied to the temperature-scaled
	// coupling half-width computed by setVtxRange and by arbitration's
	// global re-range.
	vtxRangeMinZ = 0.1

	// thermalizeReassignMinZ gates when thermalize reruns setVtxRange:
	// only once the accumulated vertex movement and the latest step's
	// movement both exceed this threshold.
	thermalizeReassignMinZ = 0.01

	// thermalizeMaxIterations caps the fixed-temperature relaxation
	// loop; exceeding it is an accepted, degraded outcome.
	thermalizeMaxIterations = 1000

	// splitEpsilon is the minimum separation used both for split's
	// "did we actually produce two distinct vertices" guard and for the
	// fallback offset when one side of a split collects no weight.
	splitEpsilon = 1e-3

	// splitArgClip bounds the softened winner-takes-all exponent in
	// split; beyond it exp() would under/overflow so the hard 0/1
	// assignment is kept.
	splitArgClip = 20.0

	// mintrkweight is the minimum posterior probability required for a
	// hard track-to-vertex assignment during arbitration.
	mintrkweight = 0.5

	// uniqueTrackCountMin is the minimum number of uniquely-coupled
	// tracks a vertex must retain to survive purge.
	uniqueTrackCountMin = 2

	// finalizeMinTracks is the minimum number of hard-assigned tracks a
	// vertex must retain to survive finalization.
	finalizeMinTracks = 2

	// resplitMaxRounds bounds reSplitTracks' threshold-relaxation loop.
	resplitMaxRounds = 10

	// rejectOutlierRampSteps is the number of update calls used to ramp
	// the outlier background density from 0 to its target value.
	rejectOutlierRampSteps = 5
)
