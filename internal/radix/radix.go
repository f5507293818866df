// Copyright ©2026 The Vertexcluster Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package radix implements a stable least-significant-byte-first radix
// sort over float64 keys, in the style of the bounded-size sorts CMS's
// Alpaka tooling runs inside a single block of GPU threads (there,
// cms::alpakatools::radixSort; here, one goroutine, no device memory).
package radix

import "math"

const (
	radixBits  = 8
	radixSize  = 1 << radixBits
	radixMask  = radixSize - 1
	radixPasses = 8 // one per byte of a uint64 key
)

// floatToOrderedUint64 maps a float64 to a uint64 that preserves
// ordering: for x < y, floatToOrderedUint64(x) < floatToOrderedUint64(y).
func floatToOrderedUint64(f float64) uint64 {
	b := math.Float64bits(f)
	if b&(1<<63) != 0 {
		return ^b
	}
	return b | (1 << 63)
}

// SortIndex returns a permutation order of [0, len(keys)) such that
// keys[order[0]] <= keys[order[1]] <= ... <= keys[order[len-1]]. The
// sort is stable: equal keys keep their relative input order.
func SortIndex(keys []float64) []int {
	n := len(keys)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if n < 2 {
		return order
	}

	ukeys := make([]uint64, n)
	for i, k := range keys {
		ukeys[i] = floatToOrderedUint64(k)
	}

	src := order
	dst := make([]int, n)
	var count [radixSize]int

	for pass := 0; pass < radixPasses; pass++ {
		shift := uint(pass * radixBits)

		for i := range count {
			count[i] = 0
		}
		for _, idx := range src {
			b := int((ukeys[idx] >> shift) & radixMask)
			count[b]++
		}
		sum := 0
		for i := range count {
			c := count[i]
			count[i] = sum
			sum += c
		}
		for _, idx := range src {
			b := int((ukeys[idx] >> shift) & radixMask)
			dst[count[b]] = idx
			count[b]++
		}
		src, dst = dst, src
	}
	return src
}
