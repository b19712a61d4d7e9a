// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package parallel

// Batches splits n items into contiguous [start, end) ranges of at most
// size items each. A size of 0 or less yields a single batch.
func Batches(n, size int) [][2]int {
	if n <= 0 {
		return nil
	}
	if size <= 0 || size >= n {
		return [][2]int{{0, n}}
	}
	out := make([][2]int, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		out = append(out, [2]int{start, min(start+size, n)})
	}
	return out
}

// MapBatches runs fn over every batch of n items on the pool and returns
// the per-batch results in batch order. Each call owns its result, so no
// synchronisation is needed while the batches run; callers join the
// results sequentially afterwards.
//
// A nil pool runs every batch on the calling goroutine.
func MapBatches[T any](p *WorkerPool, n, batchSize int, fn func(start, end int) T) []T {
	batches := Batches(n, batchSize)
	out := make([]T, len(batches))
	run := func(i int) {
		out[i] = fn(batches[i][0], batches[i][1])
	}
	if p == nil {
		for i := range batches {
			run(i)
		}
		return out
	}
	p.Run(len(batches), run)
	return out
}
