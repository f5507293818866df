// Copyright ©2026 The Vertexcluster Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/primaryvertex/vertexcluster/internal/blockqueue"
)

// Clusterizer runs the per-block deterministic-annealing pipeline over
// every block of a track collection. Its zero value is ready to use.
type Clusterizer struct {
	// MaxWorkers bounds the number of goroutines used by Clusterize; a
	// value <= 0 defaults to runtime.GOMAXPROCS(0).
	MaxWorkers int
}

// Clusterize runs nBlocks independent per-block deterministic-annealing
// solvers over tracks, recording results into vertices. Blocks are
// dispatched to a bounded goroutine pool through a lock-free queue
// rather than one goroutine per block, so a clusterization with more
// blocks than CPUs doesn't oversubscribe the scheduler.
//
// tracks must be ordered so that block g owns tracks[g*b : min((g+1)*b,
// len(tracks))], the layout CreateBlocks produces. It returns the first
// error encountered, if ctx was canceled mid-run; partial results for
// in-flight blocks are still written to vertices.
func (c *Clusterizer) Clusterize(ctx context.Context, tracks []Track, vertices *VertexCollection, params *ClusterParams, nBlocks, b int) error {
	workers := c.MaxWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > nBlocks {
		workers = nBlocks
	}
	if workers < 1 {
		return nil
	}

	q := blockqueue.New(nBlocks)
	g, ctx := errgroup.WithContext(ctx)

	for n := 0; n < workers; n++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}

				blockIdx, ok := q.Next()
				if !ok {
					return nil
				}

				lo := blockIdx * b
				hi := lo + b
				if hi > len(tracks) {
					hi = len(tracks)
				}
				if lo >= hi {
					continue
				}

				w := newBlockWorker(blockIdx, tracks[lo:hi], vertices, params)
				w.run()
			}
		})
	}
	return g.Wait()
}
