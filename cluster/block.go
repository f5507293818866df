// Copyright ©2026 The Vertexcluster Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cluster

import "math"

// CreateBlocks replicates tracksIn into overlapping windows of size b so
// that any true vertex lies fully inside at least one block, then returns
// the concatenated windows and the block count.
//
// With overlap in (0, 1], the number of blocks is
// G = ceil((N-1) / (overlap*b)), or 1 when N <= b. Block g's window
// copies input tracks starting at g*int(overlap*b), one per local slot,
// stopping as soon as either the local slot reaches b, the source index
// reaches N, or the running output length reaches the block-layout's
// total capacity. That last condition can end the output partway
// through a block; blocks after that point receive no tracks, although
// they still count in nBlocks.
func CreateBlocks(tracksIn []Track, b int, overlap float64) (tracksOut []Track, nBlocks int) {
	n := len(tracksIn)
	if n == 0 {
		return nil, 0
	}
	if overlap <= 0 || overlap > 1 {
		panic("cluster: overlap must be in (0, 1]")
	}
	if b <= 0 {
		panic("cluster: block size must be positive")
	}

	stride := int(overlap * float64(b))
	if stride <= 0 {
		stride = 1
	}

	if n <= b {
		nBlocks = 1
	} else {
		nBlocks = int(math.Ceil(float64(n-1) / float64(stride)))
	}

	total := (nBlocks-1)*b + n - b*(n/stride)
	if total < 0 {
		total = 0
	}

	out := make([]Track, 0, total)
	for g := 0; g < nBlocks && len(out) < total; g++ {
		base := g * stride
		for local := 0; local < b && len(out) < total; local++ {
			src := base + local
			if src >= n {
				break
			}
			tr := tracksIn[src]
			tr.Order = len(out)
			out = append(out, tr)
		}
	}
	return out, nBlocks
}
