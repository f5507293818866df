// Copyright ©2026 The Vertexcluster Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

// Vertex is one candidate vertex slot. Slot storage never moves during
// clustering: merge, split and purge all operate by permuting the
// VertexCollection's Order indirection and adjusting occupancy counts,
// never by relocating a slot's Z/Rho/etc. into another index.
type Vertex struct {
	Z   float64
	Rho float64

	SW  float64
	SE  float64
	SWZ float64
	SWE float64

	// Aux1, Aux2 are overloaded by phase: pairwise distance during
	// merge, critical temperature during split, track-probability sum
	// and unique-track count during purge.
	Aux1 float64
	Aux2 float64

	IsGood bool

	// TrackID, TrackWeight and NTracks are populated only for finalized
	// vertices at arbitration time.
	TrackID     []int
	TrackWeight []float64
	NTracks     int
}

// VertexCollection holds the vertex-slot arena shared by every block
// during Clusterize, later repurposed as the single global vertex list
// during Arbitrate.
//
// Slots is addressed in two regimes: during Clusterize, block g owns
// the half-open window Slots[g*VMax : (g+1)*VMax); after Arbitrate has
// run, the first GlobalNV() entries of Slots (read through Order) are
// the finalized, sorted vertices.
//
// nv holds each block's current occupancy (nv[g] = nV_g) during
// Clusterize; Arbitrate repurposes nv[0] to hold the single global
// vertex count, matching the "block-leader slot" convention of the
// source algorithm without literally aliasing vertex-slot storage for
// the occupancy counter (see DESIGN.md).
//
// Order is the per-block sorted-indirection array described in the
// data model: Order[g*VMax+i] names the physical Slots index holding
// the i-th vertex of block g's window when sorted ascending by Z. Every
// Clusterize phase reads and writes vertex state through Order; Slots
// storage itself never moves there. Arbitrate instead writes the sorted
// vertices directly into Slots[0:GlobalNV()] and compacts them in
// place, so afterwards Order[0:GlobalNV()] is the identity over the
// single finalized, sorted vertex list.
type VertexCollection struct {
	Slots []Vertex
	Order []int
	VMax  int
	nv    []int
}

// NewVertexCollection allocates a vertex arena sized for nBlocks
// clusterizer blocks, each with room for vmax candidate vertices, plus
// arbitration headroom up to maxGlobalVertices.
func NewVertexCollection(nBlocks, vmax int) *VertexCollection {
	if nBlocks*vmax > maxVertexCapacity {
		panic("cluster: nBlocks*VMax exceeds the 512-slot block arena")
	}
	n := nBlocks * vmax
	if n < maxGlobalVertices {
		n = maxGlobalVertices
	}
	return &VertexCollection{
		Slots: make([]Vertex, n),
		Order: make([]int, n),
		VMax:  vmax,
		nv:    make([]int, max(nBlocks, 1)),
	}
}

// BlockBase returns the first slot index owned by block g.
func (vc *VertexCollection) BlockBase(g int) int { return g * vc.VMax }

// BlockWindow returns the slot sub-slice owned by block g.
func (vc *VertexCollection) BlockWindow(g int) []Vertex {
	base := vc.BlockBase(g)
	return vc.Slots[base : base+vc.VMax]
}

// OrderWindow returns the order-indirection sub-slice owned by block g.
func (vc *VertexCollection) OrderWindow(g int) []int {
	base := vc.BlockBase(g)
	return vc.Order[base : base+vc.VMax]
}

// BlockNV returns the current occupancy of block g's window.
func (vc *VertexCollection) BlockNV(g int) int { return vc.nv[g] }

// SetBlockNV sets the current occupancy of block g's window.
func (vc *VertexCollection) SetBlockNV(g, n int) { vc.nv[g] = n }

// GlobalNV returns the vertex count established by Arbitrate.
func (vc *VertexCollection) GlobalNV() int { return vc.nv[0] }

// SetGlobalNV records the vertex count established by Arbitrate.
func (vc *VertexCollection) SetGlobalNV(n int) { vc.nv[0] = n }
