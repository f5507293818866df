// Copyright ©2026 The Vertexcluster Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

// initialize resets a block to its starting state: every vertex slot in
// the block's window is cleared, the first slot becomes the block's
// sole vertex at rho=1, and every track in the block couples only to
// that one vertex.
func (w *blockWorker) initialize() {
	window := w.vc.BlockWindow(w.g)
	for i := range window {
		window[i] = Vertex{}
	}

	window[0] = Vertex{Rho: 1, IsGood: true}
	w.order[0] = w.base
	w.setNV(1)

	for i := range w.tracks {
		w.tracks[i].Kmin = w.base
		w.tracks[i].Kmax = w.base + 1
	}
}

// sumTrackWeights returns the block's total track weight, osumtkwt.
func (w *blockWorker) sumTrackWeights() float64 {
	var s float64
	for i := range w.tracks {
		s += w.tracks[i].Weight
	}
	return s
}
