// Copyright ©2026 The Vertexcluster Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package blockqueue provides a lock-free dispenser of integer work
// items, letting a fixed pool of goroutines pull the next block index
// to process instead of each being pinned to one block up front.
package blockqueue

import "sync/atomic"

// Queue dispenses the integers [0, n) exactly once each, in increasing
// order, safe for concurrent use by multiple goroutines calling Next.
type Queue struct {
	head int64
	n    int
}

// New returns a Queue that dispenses [0, n).
func New(n int) *Queue {
	return &Queue{n: n}
}

// Next returns the next work item and true, or 0 and false once every
// item in [0, n) has been dispensed.
func (q *Queue) Next() (int, bool) {
	i := int(atomic.AddInt64(&q.head, 1)) - 1
	if i >= q.n {
		return 0, false
	}
	return i, true
}
