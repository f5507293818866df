// Copyright ©2026 The Vertexcluster Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

import (
	"io"
	"log/slog"
)

// ClusterParams collects the tunables that drive a single Clusterize and
// Arbitrate pass. All fields are read-only once passed in; the zero value
// is not meaningful, use DefaultClusterParams or set every field.
type ClusterParams struct {
	// ZRange is the half-width multiplier applied to the
	// temperature-scaled track resolution when computing a track's
	// candidate-vertex coupling window.
	ZRange float64

	// ZMerge is the vertex separation at or below which two adjacent
	// vertices are queued for merging.
	ZMerge float64

	// DzCutOff bounds the number of track-resolution sigmas a track may
	// sit from a vertex and still couple to it during arbitration.
	DzCutOff float64

	// UniqueTrkMinP is the track weight a track must exceed to
	// contribute to purge's per-vertex probability sums and unique-track
	// counts.
	UniqueTrkMinP float64

	// UniqueTrkWeight scales purge's probability cut: a track counts as
	// uniquely coupled to a vertex when its probability exceeds
	// UniqueTrkWeight*rho/(rho+rhoconst).
	UniqueTrkWeight float64

	// VertexSize sets the minimum spacing of finalized vertices: a
	// vertex within 2*VertexSize of the previous kept vertex is dropped.
	VertexSize float64

	// TMin anchors both ends of the cooling schedule: getBeta0 uses it
	// to pick the first annealing temperature at or above Tc, and the
	// freeze-out beta tested after the final cooling step is
	// sqrt(CoolingFactor)/TMin.
	TMin float64

	// TPurge is the temperature at which the purge phase begins
	// removing under-populated vertices.
	TPurge float64

	// TStop is the final temperature: after purging, the block cools
	// down to it with thermalization only, and arbitration assigns
	// tracks at beta = 1/TStop.
	TStop float64

	// CoolingFactor scales the temperature at each cooling step; must
	// be in (0, 1).
	CoolingFactor float64

	// DeltaHighT and DeltaLowT bound the thermalization convergence
	// test during the main cooling loop and during outlier rejection
	// respectively.
	DeltaHighT float64
	DeltaLowT  float64

	// ConvergenceMode selects the thermalization convergence threshold:
	// 0 uses the threshold of the phase (DeltaHighT or DeltaLowT), 1 uses
	// DeltaLowT/sqrt(max(beta, 1)), any other value uses DeltaLowT. In
	// every mode the threshold is compared with the largest single
	// vertex displacement of the last step.
	ConvergenceMode int

	// Logger receives debug-level records when the cooling loop hits
	// thermalizeMaxIterations or when a block exhausts its vertex
	// slot capacity. A nil Logger is replaced by a discarding logger.
	Logger *slog.Logger
}

// DefaultClusterParams returns the parameter set used throughout the
// reference end-to-end scenarios: block size 8 with 50% overlap, a
// cooling factor of 0.6 run down from T=4 to T=0.5.
func DefaultClusterParams() ClusterParams {
	return ClusterParams{
		ZRange:          4,
		ZMerge:          0.01,
		DzCutOff:        4,
		UniqueTrkMinP:   0.0,
		UniqueTrkWeight: 0.8,
		VertexSize:      0.01,
		TMin:            4.0,
		TPurge:          2.0,
		TStop:           0.5,
		CoolingFactor:   0.6,
		DeltaHighT:      0.01,
		DeltaLowT:       1e-4,
		ConvergenceMode: 0,
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// logger returns p.Logger, or a discarding logger if unset.
func (p *ClusterParams) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return p.Logger
}
