// Copyright ©2026 The Vertexcluster Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

// blockWorker holds the state one goroutine owns while running the
// deterministic-annealing pipeline on a single block. It plays the role
// the original kernel gives a block of GPU threads sharing a barrier and
// a scratchpad: here there is one goroutine and no barrier, because
// every phase below already runs its track loop and its vertex loop to
// completion before the next phase starts, which is what a barrier
// would have enforced anyway.
type blockWorker struct {
	g     int // block index
	base  int // first global vertex slot owned by this block, g*vmax
	vmax  int
	vc    *VertexCollection
	order []int // == vc.OrderWindow(g); physical slot per sorted position

	tracks []Track // this block's track window

	beta     float64
	osumtkwt float64

	params *ClusterParams
}

func newBlockWorker(g int, tracks []Track, vc *VertexCollection, params *ClusterParams) *blockWorker {
	return &blockWorker{
		g:      g,
		base:   vc.BlockBase(g),
		vmax:   vc.VMax,
		vc:     vc,
		order:  vc.OrderWindow(g),
		tracks: tracks,
		params: params,
	}
}

func (w *blockWorker) nv() int        { return w.vc.BlockNV(w.g) }
func (w *blockWorker) setNV(n int)    { w.vc.SetBlockNV(w.g, n) }
func (w *blockWorker) vertex(slot int) *Vertex { return &w.vc.Slots[slot] }

// orderedVertex returns the vertex at sorted position i (0 <= i < nv()).
func (w *blockWorker) orderedVertex(i int) *Vertex {
	return &w.vc.Slots[w.order[i]]
}
