// Copyright ©2026 The Vertexcluster Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cluster implements a data-parallel primary-vertex clusterizer
// that groups charged-particle tracks into primary interaction vertices
// along a beam axis using deterministic annealing.
//
// The pipeline has three stages, run in order by the caller:
//
//	tracks, nBlocks := cluster.CreateBlocks(inputTracks, blockSize, overlap)
//	vertices := cluster.NewVertexCollection(nBlocks, blockSize)
//	c := &cluster.Clusterizer{}
//	c.Clusterize(ctx, tracks, vertices, params, nBlocks, blockSize)
//	c.Arbitrate(ctx, tracks, vertices, params, nBlocks, blockSize)
//
// CreateBlocks replicates tracks into overlapping windows so that any
// true vertex lies fully inside at least one block. Clusterize runs one
// independent deterministic-annealing solver per block, in parallel.
// Arbitrate merges the per-block vertex candidates into a single sorted
// collection, re-assigns every track to at most one vertex (a track
// that no vertex claims with probability above 0.5 stays unassigned),
// and drops under-populated or too-close vertices.
package cluster // import "github.com/primaryvertex/vertexcluster/cluster"
